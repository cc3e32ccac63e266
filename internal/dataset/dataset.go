// Package dataset reads loop measurement tables and exposes them as
// typed observations.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Canonical column names after header normalization.
const (
	ColCurrent = "Current(A)"
	ColRadius  = "Radius(m)"
	ColField   = "MagneticField(T)"
)

// fieldAliases maps accepted magnetic-field header spellings to the
// canonical name. Keys are lower-cased, whitespace-stripped forms.
var fieldAliases = map[string]bool{
	"magneticfield(t)": true,
	"magneticfield":    true,
	"b(t)":             true,
	"field(t)":         true,
	"b":                true,
}

var (
	// ErrMissingColumn reports a required column absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedValue reports a cell that could not be parsed as a number.
	ErrMalformedValue = errors.New("malformed value")
)

// Observation is a single measured record. Field is NaN when the
// magnetic-field cell was absent or empty, which is allowed for
// prediction-only rows.
type Observation struct {
	Current float64 // amperes, must be > 0 for the pipeline
	Radius  float64 // meters, must be > 0 for the pipeline
	Field   float64 // tesla, NaN when not measured
}

// HasField reports whether a measured magnetic field is present.
func (o Observation) HasField() bool {
	return !math.IsNaN(o.Field)
}

// LoadCSV reads observations from a CSV file.
func LoadCSV(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	obs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obs, nil
}

// Read parses CSV observations from r. The first record is the header;
// names are whitespace-trimmed and the magnetic-field column accepts
// the aliases in fieldAliases. Unrecognized columns are ignored.
func Read(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	currentIdx, radiusIdx, fieldIdx := -1, -1, -1
	for i, name := range header {
		switch normalizeHeader(name) {
		case "current(a)":
			currentIdx = i
		case "radius(m)":
			radiusIdx = i
		default:
			if fieldAliases[normalizeHeader(name)] {
				fieldIdx = i
			}
		}
	}
	if currentIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColCurrent)
	}
	if radiusIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColRadius)
	}

	var obs []Observation
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++

		current, err := parseCell(rec, currentIdx, row, ColCurrent, true)
		if err != nil {
			return nil, err
		}
		radius, err := parseCell(rec, radiusIdx, row, ColRadius, true)
		if err != nil {
			return nil, err
		}

		field := math.NaN()
		if fieldIdx >= 0 {
			field, err = parseCell(rec, fieldIdx, row, ColField, false)
			if err != nil {
				return nil, err
			}
		}

		obs = append(obs, Observation{Current: current, Radius: radius, Field: field})
	}

	return obs, nil
}

// Fields returns the measured magnetic-field values, one per
// observation, NaN where absent.
func Fields(obs []Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Field
	}
	return out
}

// AllHaveField reports whether every observation carries ground truth.
func AllHaveField(obs []Observation) bool {
	for _, o := range obs {
		if !o.HasField() {
			return false
		}
	}
	return len(obs) > 0
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// parseCell parses a numeric cell. Required cells must be present and
// numeric; an optional cell that is missing or empty parses to NaN.
func parseCell(rec []string, idx, row int, col string, required bool) (float64, error) {
	if idx >= len(rec) || strings.TrimSpace(rec[idx]) == "" {
		if required {
			return 0, fmt.Errorf("row %d: column %s: %w: empty", row, col, ErrMalformedValue)
		}
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %s: %w: %q", row, col, ErrMalformedValue, rec[idx])
	}
	return v, nil
}
