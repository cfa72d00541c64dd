package montage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Sources names the files of one session. Either JSON or Positions with
// Matrix must be set; Labels is optional.
type Sources struct {
	Positions string
	Labels    string
	Matrix    string
	JSON      string
}

// ErrNoSources is returned when neither a JSON file nor a positions and
// matrix pair is given
var ErrNoSources = errors.New("no montage sources given")

// LoadFiles reads a montage and its links from disk
func LoadFiles(src Sources) (*Montage, []Link, error) {
	if src.JSON != "" {
		f, err := os.Open(src.JSON)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return ReadJSON(f)
	}
	if src.Positions == "" || src.Matrix == "" {
		return nil, nil, ErrNoSources
	}

	positions, err := readFile(src.Positions, ReadCoordinatesCSV)
	if err != nil {
		return nil, nil, err
	}

	var labels []string
	if src.Labels != "" {
		if labels, err = readFile(src.Labels, ReadLabelsCSV); err != nil {
			return nil, nil, err
		}
	} else {
		labels = make([]string, len(positions))
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}

	m, err := New(labels, positions)
	if err != nil {
		return nil, nil, err
	}

	rows, err := readFile(src.Matrix, ReadMatrixCSV)
	if err != nil {
		return nil, nil, err
	}
	links, err := LinksFromMatrix(m, rows)
	if err != nil {
		return nil, nil, err
	}
	return m, links, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
