// Package insights loads a CSV dataset and computes quick summary statistics
// for its first numeric column.
package insights

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNotFound means the path does not exist.
	ErrNotFound = errors.New("csv not found")
	// ErrEmpty means the file has a header row but no data rows.
	ErrEmpty = errors.New("csv has no rows")
)

// Dataset is a rectangular table with ordered headers.
type Dataset struct {
	Path    string
	Headers []string
	Rows    []map[string]string
}

// Stats summarizes one numeric column.
type Stats struct {
	Column string
	Count  int
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
}

// String renders the stats with three decimals.
func (s Stats) String() string {
	return fmt.Sprintf("Quick stats for '%s': count=%d, mean=%.3f, median=%.3f, stdev=%.3f",
		s.Column, s.Count, s.Mean, s.Median, s.StdDev)
}

// Load reads path into a Dataset. A missing path yields ErrNotFound; a file
// with only a header yields the (empty) dataset together with ErrEmpty.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if ds != nil {
		ds.Path = path
	}
	return ds, err
}

// Read parses CSV from r. The first record is the header row.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return &Dataset{}, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	ds := &Dataset{Headers: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(ds.Rows)+1, err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) == 0 {
		return ds, ErrEmpty
	}
	return ds, nil
}

// NumericColumn returns the first header whose first non-empty value parses
// as a number. Only that column is analyzed, even if others are numeric too.
func (d *Dataset) NumericColumn() (string, bool) {
	for _, h := range d.Headers {
		for _, row := range d.Rows {
			v, ok := row[h]
			if !ok || v == "" {
				continue
			}
			if _, err := parseNumber(v); err == nil {
				return h, true
			}
			break
		}
	}
	return "", false
}

// Describe computes stats for column. Values that do not parse are skipped.
// It returns false when no value parsed.
func (d *Dataset) Describe(column string) (Stats, bool) {
	var vals []float64
	for _, row := range d.Rows {
		v, err := parseNumber(row[column])
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return Stats{}, false
	}

	mean, variance := stat.PopMeanVariance(vals, nil)
	return Stats{
		Column: column,
		Count:  len(vals),
		Mean:   mean,
		Median: median(vals),
		StdDev: math.Sqrt(variance),
	}, true
}

// Report is the outcome of analyzing a file.
type Report struct {
	Path    string
	Rows    int
	Columns int
	Stats   *Stats // nil when no numeric column was found
}

// String renders the report as the chat reply shows it.
func (r Report) String() string {
	msg := fmt.Sprintf("Loaded %s with %d rows and %d columns.", r.Path, r.Rows, r.Columns)
	if r.Stats != nil {
		msg += "\n" + r.Stats.String()
	}
	return msg
}

// Analyze loads path and describes its first numeric column.
func Analyze(path string) (*Dataset, Report, error) {
	ds, err := Load(path)
	if err != nil {
		return ds, Report{Path: path}, err
	}
	rep := Report{Path: path, Rows: len(ds.Rows), Columns: len(ds.Headers)}
	if col, ok := ds.NumericColumn(); ok {
		if s, ok := ds.Describe(col); ok {
			rep.Stats = &s
		}
	}
	return ds, rep, nil
}

// parseNumber accepts surrounding whitespace and rejects non-finite values.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
