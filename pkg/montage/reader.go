package montage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/vizaj/pkg/geometry"
)

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func parseFloat(op string, row, col int, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, NewError(op).Cell(row, col).Context(s).Cause(ErrNonNumeric).Err()
	}
	return v, nil
}

// ReadCoordinatesCSV reads one "c0,c1,c2" row per node. Montage files store
// the depth axis first, so a row maps to (x, y, z) = (c1, c2, c0).
func ReadCoordinatesCSV(r io.Reader) ([]geometry.Vector3, error) {
	records, err := newCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read coordinates: %w", err)
	}

	positions := make([]geometry.Vector3, 0, len(records))
	for i, rec := range records {
		if len(rec) < 3 {
			return nil, NewError("coordinates").Row(i).
				Context(fmt.Sprintf("%d columns", len(rec))).Cause(ErrNonNumeric).Err()
		}
		var c [3]float64
		for col := 0; col < 3; col++ {
			if c[col], err = parseFloat("coordinates", i, col, rec[col]); err != nil {
				return nil, err
			}
		}
		positions = append(positions, geometry.Vec(c[1], c[2], c[0]))
	}
	return positions, nil
}

// ReadLabelsCSV reads one label per row (first column)
func ReadLabelsCSV(r io.Reader) ([]string, error) {
	records, err := newCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	labels := make([]string, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		labels = append(labels, strings.TrimSpace(rec[0]))
	}
	return labels, nil
}

// ReadMatrixCSV reads a row-major comma-separated matrix, one row per line
func ReadMatrixCSV(r io.Reader) ([][]float64, error) {
	records, err := newCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = make([]float64, len(rec))
		for j, cell := range rec {
			if rows[i][j], err = parseFloat("matrix", i, j, cell); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}

// ReadJSON decodes a montage document. Coordinates are taken as (x, y, z).
// Links come from "edges" when present, otherwise from "matrix".
func ReadJSON(r io.Reader) (*Montage, []Link, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("decode montage: %w", err)
	}

	labels := f.Labels
	if len(labels) == 0 {
		labels = make([]string, len(f.Coordinates))
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}
	positions := make([]geometry.Vector3, len(f.Coordinates))
	for i, c := range f.Coordinates {
		positions[i] = geometry.Vec(c[0], c[1], c[2])
	}

	m, err := New(labels, positions)
	if err != nil {
		return nil, nil, err
	}

	var links []Link
	switch {
	case len(f.Edges) > 0:
		links, err = LinksFromList(m, f.Edges)
	case len(f.Matrix) > 0:
		links, err = LinksFromMatrix(m, f.Matrix)
	}
	if err != nil {
		return nil, nil, err
	}
	return m, links, nil
}
