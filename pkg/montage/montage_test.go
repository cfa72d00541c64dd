package montage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T) *Montage {
	t.Helper()
	m, err := New(
		[]string{"Fp1", "Fp2", "O1", "O2"},
		[]geometry.Vector3{
			geometry.Vec(0, 0, 0),
			geometry.Vec(10, 0, 0),
			geometry.Vec(0, 10, 0),
			geometry.Vec(10, 10, 0),
		},
	)
	require.NoError(t, err)
	return m
}

func f(v float64) *float64 { return &v }

func TestNewMontage(t *testing.T) {
	m := square(t)
	assert.Equal(t, 4, m.Len())
	assert.InDelta(t, math.Sqrt(200), m.MaxDistance(), 1e-12)
	assert.InDelta(t, 10/math.Sqrt(200), m.NormDist(0, 1), 1e-12)
	assert.InDelta(t, 1.0, m.NormDist(0, 3), 1e-12)
	assert.Equal(t, []string{"Fp1", "Fp2", "O1", "O2"}, m.Labels())
	assert.Equal(t, geometry.Vec(5, 5, 0), m.Centroid())
	assert.False(t, m.IsPlanar())

	_, err := New([]string{"a"}, nil)
	assert.ErrorIs(t, err, ErrNodeCountMismatch)
}

func TestLinksFromMatrix(t *testing.T) {
	m := square(t)
	rows := [][]float64{
		{0, 0.5, 0.2, 0.1},
		{0.5, 0, 0, 0.3},
		{0.2, 0, 0, 0.9},
		{0.1, 0.3, 0.9, 0},
	}
	links, err := LinksFromMatrix(m, rows)
	require.NoError(t, err)
	require.Len(t, links, 5, "zero entry (2,1) is skipped")

	assert.Equal(t, Link{Node1: 1, Node2: 0, Strength: 0.5, NormDist: m.NormDist(1, 0)}, links[0])
	for _, l := range links {
		assert.Greater(t, l.Node1, l.Node2, "lower triangle only")
	}
}

func TestLinksFromMatrixErrors(t *testing.T) {
	m := square(t)
	tests := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"row count", [][]float64{{0}}, ErrNodeCountMismatch},
		{"ragged", [][]float64{{0, 1, 1, 1}, {1, 0, 1}, {1, 1, 0, 1}, {1, 1, 1, 0}}, ErrNotSquare},
		{"nan", [][]float64{{0, 0, 0, 0}, {math.NaN(), 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, ErrNonNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LinksFromMatrix(m, tt.rows)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var ie *IngestError
			assert.True(t, errors.As(err, &ie))
		})
	}
}

func TestLinksFromList(t *testing.T) {
	m := square(t)
	links, err := LinksFromList(m, []EdgeRecord{
		{Source: 0, Target: 3, Strength: f(0.7)},
		{Source: 1, Target: 2, Strength: f(0)},
		{Source: 2, Target: 3, Strength: f(-0.4)},
	})
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, 1.0, links[0].NormDist)
	assert.Equal(t, -0.4, links[1].Strength)

	tests := []struct {
		name string
		recs []EdgeRecord
		want error
	}{
		{"self loop", []EdgeRecord{{Source: 1, Target: 1, Strength: f(1)}}, ErrSelfLoop},
		{"missing strength", []EdgeRecord{{Source: 0, Target: 1}}, ErrInvalidRecord},
		{"unknown node", []EdgeRecord{{Source: 0, Target: 9, Strength: f(1)}}, ErrUnknownNode},
		{"duplicate", []EdgeRecord{{Source: 0, Target: 1, Strength: f(1)}, {Source: 1, Target: 0, Strength: f(2)}}, ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LinksFromList(m, tt.recs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadCSV(t *testing.T) {
	positions, err := ReadCoordinatesCSV(strings.NewReader("1,2,3\n4, 5, 6\n"))
	require.NoError(t, err)
	assert.Equal(t, []geometry.Vector3{geometry.Vec(2, 3, 1), geometry.Vec(5, 6, 4)}, positions)

	labels, err := ReadLabelsCSV(strings.NewReader("Fp1\nFp2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fp1", "Fp2"}, labels)

	rows, err := ReadMatrixCSV(strings.NewReader("0,0.5\n0.5,0\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0.5}, {0.5, 0}}, rows)

	_, err = ReadMatrixCSV(strings.NewReader("0,x\n"))
	assert.ErrorIs(t, err, ErrNonNumeric)
	assert.Contains(t, err.Error(), "row 1 col 2")
}

func TestReadJSON(t *testing.T) {
	doc := `{
		"labels": ["a", "b", "c"],
		"coordinates": [[0,0,0],[1,0,0],[0,1,0]],
		"edges": [{"source": 0, "target": 1, "strength": 0.5}, {"source": 2, "target": 1, "strength": 0.25}]
	}`
	m, links, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	assert.False(t, m.IsPlanar())
	require.Len(t, links, 2)
	assert.Equal(t, 2, links[1].Node1)

	m, links, err = ReadJSON(strings.NewReader(`{"coordinates": [[0,0,0],[0,0,1]], "matrix": [[0,1],[1,0]]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, m.Labels())
	assert.Len(t, links, 1)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	positions := write("pos.csv", "0,1,0\n0,-1,0\n1,0,1\n")
	labels := write("labels.csv", "Fz\nPz\nT7\n")
	matrix := write("matrix.csv", "0,0,0\n0.5,0,0\n0.2,0.9,0\n")

	m, links, err := LoadFiles(Sources{Positions: positions, Labels: labels, Matrix: matrix})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fz", "Pz", "T7"}, m.Labels())
	assert.Len(t, links, 3)

	m, _, err = LoadFiles(Sources{Positions: positions, Matrix: matrix})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, m.Labels())

	_, _, err = LoadFiles(Sources{Positions: positions})
	assert.ErrorIs(t, err, ErrNoSources)

	_, _, err = LoadFiles(Sources{Positions: filepath.Join(dir, "missing.csv"), Matrix: matrix})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
