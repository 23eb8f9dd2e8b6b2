// Package series implements the period-keyed numeric series every computation passes around.
//
// Binary operators iterate over the keys of their first operand; a key missing on the
// other side counts as zero. Callers are expected to align periods beforehand.
package series

import "sort"

// Series maps a period identifier (e.g. "2016") to an amount.
type Series map[string]float64

// Zero returns a series with every period set to 0.
func Zero(periods []string) Series {
	s := make(Series, len(periods))
	for _, p := range periods {
		s[p] = 0
	}
	return s
}

// Clone returns an independent copy.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Restrict returns the values of s for the given periods only; missing periods become 0.
func (s Series) Restrict(periods []string) Series {
	out := make(Series, len(periods))
	for _, p := range periods {
		out[p] = s[p]
	}
	return out
}

// SortedKeys returns the period identifiers in ascending string order.
func SortedKeys(s Series) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add returns a + b.
func Add(a, b Series) Series {
	out := make(Series, len(a))
	for k, v := range a {
		out[k] = v + b[k]
	}
	return out
}

// Subtract returns a - b.
func Subtract(a, b Series) Series {
	out := make(Series, len(a))
	for k, v := range a {
		out[k] = v - b[k]
	}
	return out
}

// MultiplyWithScalar returns s * factor.
func MultiplyWithScalar(s Series, factor float64) Series {
	out := make(Series, len(s))
	for k, v := range s {
		out[k] = v * factor
	}
	return out
}

// Map applies fn to every value.
func Map(s Series, fn func(period string, v float64) float64) Series {
	out := make(Series, len(s))
	for k, v := range s {
		out[k] = fn(k, v)
	}
	return out
}

// Sum adds all series element-wise. An empty list yields an empty series.
func Sum(list []Series) Series {
	if len(list) == 0 {
		return Series{}
	}
	out := list[0].Clone()
	for _, s := range list[1:] {
		for k := range out {
			out[k] += s[k]
		}
	}
	return out
}

// Average returns the element-wise mean of all series.
func Average(list []Series) Series {
	if len(list) == 0 {
		return Series{}
	}
	return MultiplyWithScalar(Sum(list), 1/float64(len(list)))
}

// Diff returns first differences over the sorted keys; the first key keeps its own value.
func Diff(s Series) Series {
	out := make(Series, len(s))
	prev := 0.0
	for _, k := range SortedKeys(s) {
		out[k] = s[k] - prev
		prev = s[k]
	}
	return out
}

// Accumulate returns the running sum over the sorted keys.
func Accumulate(s Series) Series {
	out := make(Series, len(s))
	total := 0.0
	for _, k := range SortedKeys(s) {
		total += s[k]
		out[k] = total
	}
	return out
}
