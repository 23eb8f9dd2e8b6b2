package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a user-entered number such as "23k", "+5%" or "2016". It is kept verbatim
// and parsed by the engine, so malformed input is reported at computation time.
// Decoding accepts JSON strings, numbers and null.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// String returns the raw text.
func (t Text) String() string { return string(t) }
