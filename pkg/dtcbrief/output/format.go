// Package output serializes conversion results into task-tracker artifacts.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"gopkg.in/yaml.v3"
)

// Format is an output artifact format.
type Format string

const (
	// FormatCSV is the ClickUp CSV import layout.
	FormatCSV Format = "csv"
	// FormatJSON is the full ConversionResult as JSON.
	FormatJSON Format = "json"
	// FormatYAML is the full ConversionResult as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be csv, json, or yaml)", s)
	}
}

// Extension returns the file extension for the format, with a leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/csv"
	}
}

// Encode writes result to w in the given format.
func Encode(w io.Writer, result *models.ConversionResult, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, result.Tasks)
	case FormatJSON:
		data, err := ToJSON(result, true)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
}

// ToJSON serializes a conversion result.
func ToJSON(result *models.ConversionResult, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// Bytes encodes result into memory.
func Bytes(result *models.ConversionResult, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, result, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
