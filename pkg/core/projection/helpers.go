package projection

import (
	"fmt"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/series"
	"scenario_projection/pkg/core/units"
)

// parseEntries parses a period-keyed financing map over periods; blanks are zero.
func parseEntries(field string, entries map[string]scenario.Text, periods []string) (series.Series, error) {
	out := series.Zero(periods)
	for _, p := range periods {
		v, err := optionalValue(fmt.Sprintf("%s[%s]", field, p), entries[p])
		if err != nil {
			return nil, err
		}
		out[p] = v
	}
	return out, nil
}

func optionalValue(field string, text scenario.Text) (float64, error) {
	if units.IsBlank(text.String()) {
		return 0, nil
	}
	v, err := units.ParseValue(text.String())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func optionalPercentage(field string, text scenario.Text) (float64, error) {
	if units.IsBlank(text.String()) {
		return 0, nil
	}
	v, err := units.ParsePercentage(text.String())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// running accumulates s in the order of periods, starting from opening.
// Period identifiers are walked in slice order, not string order, so
// "9" -> "10" stays correct.
func running(periods []string, s series.Series, opening float64) series.Series {
	out := make(series.Series, len(periods))
	total := opening
	for _, p := range periods {
		total += s[p]
		out[p] = total
	}
	return out
}

// withOpening returns a series over [initial]+periods holding opening in the
// initial column and s elsewhere.
func withOpening(initial string, opening float64, s series.Series, periods []string) series.Series {
	out := s.Restrict(periods)
	out[initial] = opening
	return out
}

func item(id, name string, values series.Series) LineItem {
	return LineItem{ID: id, Name: name, Values: values}
}

func total(id, name string, values series.Series) LineItem {
	return LineItem{ID: id, Name: name, Values: values, ClassName: ClassTotal}
}

func grandTotal(id, name string, values series.Series) LineItem {
	return LineItem{ID: id, Name: name, Values: values, ClassName: ClassGrandTotal}
}

// zeroPlaceholder is a not-yet-implemented row shown as zeros.
func zeroPlaceholder(id, name string, periods []string) LineItem {
	return LineItem{ID: id, Name: name, Values: series.Zero(periods), Placeholder: true}
}

// emptyPlaceholder is a not-yet-implemented row with no values at all.
func emptyPlaceholder(id, name string) LineItem {
	return LineItem{ID: id, Name: name, Values: series.Series{}, Placeholder: true}
}
