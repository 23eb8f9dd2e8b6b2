package units

import "fmt"

// ErrInvalidValue is returned when text is not a number with an optional k/M/B/T suffix.
type ErrInvalidValue struct {
	Text   string
	Suffix string // set when only the suffix was wrong
}

func (e *ErrInvalidValue) Error() string {
	if e.Suffix != "" {
		return fmt.Sprintf("invalid value %q: unknown unit %q (valid units: k, M, B, T)", e.Text, e.Suffix)
	}
	return fmt.Sprintf("invalid value %q", e.Text)
}

// ErrInvalidPercentage is returned when text is not a number followed by '%'.
type ErrInvalidPercentage struct {
	Text string
}

func (e *ErrInvalidPercentage) Error() string {
	return fmt.Sprintf("invalid percentage %q", e.Text)
}
