// Package units converts user-typed numbers ("23k", "+5%", "6B") to floats and back.
// Decimal arithmetic is used throughout so that what the user typed is what the engine sees.
package units

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Magnitudes maps a unit suffix to its multiplier.
var Magnitudes = map[string]decimal.Decimal{
	"k": decimal.New(1, 3),
	"M": decimal.New(1, 6),
	"B": decimal.New(1, 9),
	"T": decimal.New(1, 12),
}

var (
	valuePattern      = regexp.MustCompile(`^([+-]?)(\d+\.?\d*|\.\d+)\s*([A-Za-z]?)$`)
	percentagePattern = regexp.MustCompile(`^([+-]?)(\d+\.?\d*|\.\d+)\s*%$`)
	hundred           = decimal.NewFromInt(100)
)

// ParseValue parses a number with an optional sign and magnitude suffix (k, M, B, T).
func ParseValue(text string) (float64, error) {
	d, err := parseValueDecimal(text)
	if err != nil {
		return 0, err
	}
	f := d.InexactFloat64()
	if !finite(f) {
		return 0, &ErrInvalidValue{Text: text}
	}
	return f, nil
}

// ParsePercentage parses "<number>%" and returns the fraction (5% -> 0.05).
func ParsePercentage(text string) (float64, error) {
	m := percentagePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, &ErrInvalidPercentage{Text: text}
	}
	d, err := numberToDecimal(m[1], m[2])
	if err != nil {
		return 0, &ErrInvalidPercentage{Text: text}
	}
	f := d.Div(hundred).InexactFloat64()
	if !finite(f) {
		return 0, &ErrInvalidPercentage{Text: text}
	}
	return f, nil
}

// finite rejects digit strings too long for a float64.
func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// IsBlank reports whether text carries no value at all.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Normalize multiplies the value in text by magnitude. A trailing decimal point
// typed by the user survives the conversion so an input field can keep it.
func Normalize(text string, magnitude float64) (string, error) {
	return rescale(text, magnitude, decimal.Decimal.Mul)
}

// Denormalize divides the value in text by magnitude, keeping a trailing decimal point.
func Denormalize(text string, magnitude float64) (string, error) {
	if magnitude == 0 {
		return "", &ErrInvalidValue{Text: text}
	}
	return rescale(text, magnitude, decimal.Decimal.Div)
}

func rescale(text string, magnitude float64, op func(decimal.Decimal, decimal.Decimal) decimal.Decimal) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}
	d, err := parseValueDecimal(trimmed)
	if err != nil {
		return "", err
	}
	out := op(d, decimal.NewFromFloat(magnitude)).String()
	if strings.HasSuffix(trimmed, ".") && !strings.Contains(out, ".") {
		out += "."
	}
	return out, nil
}

func parseValueDecimal(text string) (decimal.Decimal, error) {
	m := valuePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return decimal.Zero, &ErrInvalidValue{Text: text}
	}
	d, err := numberToDecimal(m[1], m[2])
	if err != nil {
		return decimal.Zero, &ErrInvalidValue{Text: text}
	}
	if m[3] == "" {
		return d, nil
	}
	mult, ok := Magnitudes[m[3]]
	if !ok {
		return decimal.Zero, &ErrInvalidValue{Text: text, Suffix: m[3]}
	}
	return d.Mul(mult), nil
}

// numberToDecimal accepts the forms the patterns allow: "5", "5.", ".5", "5.25".
func numberToDecimal(sign, digits string) (decimal.Decimal, error) {
	digits = strings.TrimSuffix(digits, ".")
	if strings.HasPrefix(digits, ".") {
		digits = "0" + digits
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, err
	}
	if sign == "-" {
		d = d.Neg()
	}
	return d, nil
}
