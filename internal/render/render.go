// Package render serializes the built logging configuration mapping into the
// formats the host side can consume.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

// Format selects the output encoding.
type Format string

const (
	// FormatJSON emits the mapping as a JSON document.
	FormatJSON Format = "json"
	// FormatYAML emits the mapping as a YAML document.
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for output formats the renderer does not know.
	ErrUnsupportedFormat = errors.New("output format must be json or yaml")
	// ErrNilConfig is returned when there is no configuration to render.
	ErrNilConfig = errors.New("nothing to render: configuration is nil")
)

// ParseFormat normalises a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedFormat, raw)
	}
}

// Render encodes the configuration in the requested format. JSON output is
// indented unless compact is set; YAML is always block style and ignores the
// compact flag.
func Render(cfg *logconf.Config, format Format, compact bool) ([]byte, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	switch format {
	case FormatJSON:
		var (
			data []byte
			err  error
		)
		if compact {
			data, err = json.Marshal(cfg)
		} else {
			data, err = json.MarshalIndent(cfg, "", "  ")
		}
		if err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedFormat, string(format))
	}
}
