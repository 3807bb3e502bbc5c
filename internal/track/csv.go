package track

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV parses a centerline file: '#' comment lines, no header, and rows of
// x_m, y_m[, w_tr_right_m, w_tr_left_m]. Width columns must be present on
// every row or on none.
func ReadCSV(r io.Reader, name string) (Path, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Path{}, fmt.Errorf("reading track %q: %w", name, err)
	}

	points := make([]Coordinate, 0, len(rows))
	var widths []Width
	for i, row := range rows {
		if len(row) != 2 && len(row) != 4 {
			return Path{}, fmt.Errorf("track %q row %d: want 2 or 4 columns, got %d", name, i+1, len(row))
		}
		vals := make([]float64, len(row))
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return Path{}, fmt.Errorf("track %q row %d column %d: %w", name, i+1, j+1, err)
			}
			vals[j] = v
		}
		points = append(points, Coordinate{X: vals[0], Y: vals[1]})

		switch {
		case len(vals) == 4 && (i == 0 || widths != nil):
			widths = append(widths, Width{Right: vals[2], Left: vals[3]})
		case len(vals) == 4 || widths != nil:
			return Path{}, fmt.Errorf("track %q row %d: width columns must be on every row or none", name, i+1)
		}
	}

	return NewPath(name, points, widths)
}

// LoadCSV reads a track file from disk. The path name is the file's base name
// without extension.
func LoadCSV(file string) (Path, error) {
	f, err := os.Open(file)
	if err != nil {
		return Path{}, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return ReadCSV(f, name)
}

// WriteCSV writes coordinates as x_m,y_m rows.
func WriteCSV(w io.Writer, coords []Coordinate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"# x_m", "y_m"}); err != nil {
		return err
	}
	for _, c := range coords {
		row := []string{
			strconv.FormatFloat(c.X, 'f', -1, 64),
			strconv.FormatFloat(c.Y, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
