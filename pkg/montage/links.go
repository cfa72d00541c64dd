package montage

import (
	"math"

	"github.com/dd0wney/vizaj/pkg/validation"
)

// LinksFromMatrix reads the lower triangle of a dense symmetric connectivity
// matrix. rows must be square with one row per node. Zero entries are not
// connections and are skipped; NaN or infinite entries are rejected.
func LinksFromMatrix(m *Montage, rows [][]float64) ([]Link, error) {
	n := m.Len()
	if len(rows) != n {
		return nil, NewError("matrix").
			Context("rows vs nodes").Cause(ErrNodeCountMismatch).Err()
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, NewError("matrix").Row(i).Cause(ErrNotSquare).Err()
		}
	}

	links := make([]Link, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, NewError("matrix").Cell(i, j).Cause(ErrNonNumeric).Err()
			}
			if v == 0 {
				continue
			}
			links = append(links, newLink(m, i, j, v))
		}
	}
	return links, nil
}

// LinksFromList converts explicit edge records. Records are validated
// structurally, endpoints must exist, self-loops and repeated pairs are
// rejected, and zero-strength records are skipped.
func LinksFromList(m *Montage, records []EdgeRecord) ([]Link, error) {
	n := m.Len()
	seen := make(map[[2]int]struct{}, len(records))
	links := make([]Link, 0, len(records))

	for i, rec := range records {
		if rec.Source == rec.Target {
			return nil, NewError("edges").Row(i).Cause(ErrSelfLoop).Err()
		}
		if err := validation.Struct(rec); err != nil {
			return nil, NewError("edges").Row(i).Context(err.Error()).Cause(ErrInvalidRecord).Err()
		}
		if rec.Source >= n || rec.Target >= n {
			return nil, NewError("edges").Row(i).Cause(ErrUnknownNode).Err()
		}
		v := *rec.Strength
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, NewError("edges").Row(i).Cause(ErrNonNumeric).Err()
		}

		key := pairKey(rec.Source, rec.Target)
		if _, dup := seen[key]; dup {
			return nil, NewError("edges").Row(i).Cause(ErrDuplicateEdge).Err()
		}
		seen[key] = struct{}{}

		if v == 0 {
			continue
		}
		links = append(links, newLink(m, rec.Source, rec.Target, v))
	}
	return links, nil
}

func newLink(m *Montage, i, j int, strength float64) Link {
	return Link{
		Node1:    i,
		Node2:    j,
		Strength: strength,
		NormDist: m.NormDist(i, j),
	}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
