package profile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Writer appends rows to a load profile file in the format LoadColumn
// reads back: an index column followed by one column per channel.
type Writer struct {
	f       *os.File
	w       *csv.Writer
	columns int
}

// NewWriter creates the profile file and writes the header row.
func NewWriter(path string, index string, columns []string) (*Writer, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("profile %s: no columns", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	w.Comma = Delimiter

	header := append([]string{index}, columns...)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}

	return &Writer{f: f, w: w, columns: len(columns)}, nil
}

// Append writes one row: the index cell followed by the channel values.
func (w *Writer) Append(index string, values []float64) error {
	if len(values) != w.columns {
		return fmt.Errorf("profile row %s: got %d values, header has %d columns", index, len(values), w.columns)
	}
	row := make([]string, 0, len(values)+1)
	row = append(row, index)
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return w.w.Write(row)
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
