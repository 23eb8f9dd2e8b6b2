package units

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

type band struct {
	above  decimal.Decimal
	unit   decimal.Decimal
	suffix string
	places int32
}

// Bands are checked top-down; the first threshold the absolute value exceeds wins.
var bands = []band{
	{above: decimal.New(1, 13), unit: Magnitudes["T"], suffix: "T", places: 0},
	{above: decimal.New(1, 12), unit: Magnitudes["T"], suffix: "T", places: 1},
	{above: decimal.New(1, 10), unit: Magnitudes["B"], suffix: "B", places: 0},
	{above: decimal.New(1, 9), unit: Magnitudes["B"], suffix: "B", places: 1},
	{above: decimal.New(1, 7), unit: Magnitudes["M"], suffix: "M", places: 0},
	{above: decimal.New(1, 6), unit: Magnitudes["M"], suffix: "M", places: 1},
	{above: decimal.New(1, 4), unit: Magnitudes["k"], suffix: "k", places: 0},
	{above: decimal.New(1, 3), unit: Magnitudes["k"], suffix: "k", places: 1},
}

// FormatValueWithUnit renders v with the largest fitting unit, e.g. 15000 -> "15k", 1500 -> "1.5k".
// Values of 1000 and below are rounded to an integer without unit.
func FormatValueWithUnit(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := decimal.NewFromFloat(v)
	abs := d.Abs()
	for _, b := range bands {
		if abs.GreaterThan(b.above) {
			return d.Div(b.unit).Round(b.places).String() + b.suffix
		}
	}
	return d.Round(0).String()
}
