/*
Package profile loads measured load profiles (solar, wind, electrical and
thermal demand) from the ';'-delimited CSV files the model definitions
feed on, and provides the series arithmetic the examples use: peak lookup,
peak normalization and seeded synthetic series.
*/
package profile

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/ohowland/esm_core/internal/pkg/component"
)

// Delimiter is the field separator of the profile files.
const Delimiter = ';'

// LoadColumn reads the named column of a profile file. The first column is
// the index and is skipped; the remaining columns are addressed by their
// header names. periods > 0 truncates to the first periods rows and fails
// when the file is shorter; periods <= 0 loads the whole column. Any
// unreadable file or unparsable cell aborts the load, there are no retries.
func LoadColumn(path, column string, periods int) (component.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = Delimiter
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("load profile %s: header: %w", path, err)
	}
	col := -1
	for i, name := range header {
		if i == 0 {
			continue // index column
		}
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("load profile %s: no column %q", path, column)
	}

	series := make(component.Series, 0)
	for row := 1; periods <= 0 || len(series) < periods; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load profile %s: row %d: %w", path, row, err)
		}
		if col >= len(record) {
			return nil, fmt.Errorf("load profile %s: row %d: %d fields, column %d missing",
				path, row, len(record), col)
		}
		v, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: row %d: %w", path, row, err)
		}
		series = append(series, component.Float(v))
	}
	if periods > 0 && len(series) < periods {
		return nil, fmt.Errorf("load profile %s: %d rows, want %d", path, len(series), periods)
	}
	return series, nil
}

// Max returns the series peak, 0 for an empty series.
func Max(s component.Series) component.Float {
	if len(s) == 0 {
		return 0
	}
	return component.Float(floats.Max(s.Values()))
}

// Normalize scales a series by its peak so values land in [0, 1]. Zeros
// stay zero; an all-zero series comes back unchanged rather than dividing
// by its zero peak.
func Normalize(s component.Series) component.Series {
	out := append(component.Series(nil), s...)
	max := float64(Max(s))
	if max == 0 {
		return out
	}
	vs := out.Values()
	floats.Scale(1/max, vs)
	for i, v := range vs {
		out[i] = component.Float(v)
	}
	return out
}

// Uniform draws n integer-valued steps from [lo, hi) using the passed
// source. Synthetic stand-in profiles stay reproducible because the caller
// owns the seed; there is no package-level generator.
func Uniform(rng *rand.Rand, lo, hi, n int) component.Series {
	s := make(component.Series, n)
	for i := range s {
		s[i] = component.Float(lo + rng.Intn(hi-lo))
	}
	return s
}
