package pricing

import (
	"fmt"
	"strings"

	"scenario_projection/pkg/core/scenario"
)

// ErrUnknownPriceType is returned when no strategy matches a price type.
type ErrUnknownPriceType struct {
	Type  scenario.PriceType
	Valid []scenario.PriceType
}

func (e *ErrUnknownPriceType) Error() string {
	valid := make([]string, len(e.Valid))
	for i, t := range e.Valid {
		valid[i] = string(t)
	}
	return fmt.Sprintf("unknown price type %q (valid types: %s)", e.Type, strings.Join(valid, ", "))
}
