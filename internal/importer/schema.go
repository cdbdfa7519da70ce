package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// BoardFile is the on-disk form of a whole board, used for import and
// export. Dates are YYYY-MM-DD and completion stamps RFC3339.
type BoardFile struct {
	Teams      []string         `json:"teams" yaml:"teams"`
	Categories []CategoryImport `json:"categories" yaml:"categories"`
	Holidays   []string         `json:"holidays,omitempty" yaml:"holidays,omitempty"`
	Policy     *PolicyImport    `json:"policy,omitempty" yaml:"policy,omitempty"`
	Tickets    []TicketImport   `json:"tickets" yaml:"tickets"`
}

type CategoryImport struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// PolicyImport leaves unset toggles at their defaults.
type PolicyImport struct {
	AllowTeamParallelism *bool `json:"allow_team_parallelism,omitempty" yaml:"allow_team_parallelism,omitempty"`
	PrioritizeExecuting  *bool `json:"prioritize_executing,omitempty" yaml:"prioritize_executing,omitempty"`
	AvoidTimelineGaps    *bool `json:"avoid_timeline_gaps,omitempty" yaml:"avoid_timeline_gaps,omitempty"`
}

type TicketImport struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Team        string  `json:"team" yaml:"team"`
	Category    string  `json:"category" yaml:"category"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	StartDate   string  `json:"start_date" yaml:"start_date"`
	Duration    int     `json:"duration" yaml:"duration"`
	IsDependent bool    `json:"is_dependent,omitempty" yaml:"is_dependent,omitempty"`
	Order       *int    `json:"order,omitempty" yaml:"order,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions or format names
// with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported board file format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
}

// ParseFormat accepts a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatJSONC, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnsupportedFormat)
}

// LoadFile reads and parses a board file, choosing the decoder by extension.
func LoadFile(path string) (*BoardFile, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, format)
}

// Decode parses data in the given format. JSONC comments and trailing
// commas are stripped before JSON decoding.
func Decode(data []byte, format Format) (*BoardFile, error) {
	var f BoardFile
	switch format {
	case FormatJSONC:
		data = jsonc.ToJSON(data)
		fallthrough
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing board file: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing board file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return &f, nil
}

// Encode writes f to w. JSONC is written as plain JSON.
func Encode(w io.Writer, f *BoardFile, format Format) error {
	switch format {
	case FormatJSON, FormatJSONC:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding board file: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding board file: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}
