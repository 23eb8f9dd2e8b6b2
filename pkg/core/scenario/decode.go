package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scenario_projection/pkg/core/utils"
)

// ErrDecode wraps every failure to turn input bytes into a Scenario.
var ErrDecode = errors.New("scenario: cannot decode document")

// Format names an input encoding.
type Format string

const (
	FormatAuto  Format = ""
	FormatJSON  Format = "json"
	FormatHJSON Format = "hjson"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps a user-supplied name or file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "hjson":
		return FormatHJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("unknown scenario format %q (valid: json, hjson, yaml)", name)
}

// Decode reads a scenario document. JSON is tried strictly first, then repaired,
// then as Hjson. FormatAuto picks JSON for documents starting with '{' and YAML otherwise.
func Decode(data []byte, format Format) (Scenario, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Scenario{}, fmt.Errorf("%w: empty document", ErrDecode)
	}

	if format == FormatAuto {
		if trimmed[0] == '{' {
			format = FormatJSON
		} else {
			format = FormatYAML
		}
	}

	var s Scenario
	switch format {
	case FormatJSON:
		if _, err := utils.SmartParse(string(trimmed), &s); err != nil {
			return Scenario{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	case FormatHJSON:
		js, err := utils.ParseHJSON(string(trimmed))
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if err := json.Unmarshal([]byte(js), &s); err != nil {
			return Scenario{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	case FormatYAML:
		js, err := utils.YAMLToJSON(string(trimmed))
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if err := json.Unmarshal([]byte(js), &s); err != nil {
			return Scenario{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	default:
		return Scenario{}, fmt.Errorf("%w: unsupported format %q", ErrDecode, format)
	}
	return s, nil
}

// DecodeFile reads a scenario from disk, choosing the format from the file extension.
func DecodeFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		format = FormatAuto
	}
	return Decode(data, format)
}
