// Package colormap maps link strengths onto palette colors.
package colormap

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColorMap is returned for a palette name that does not exist
var ErrUnknownColorMap = errors.New("unknown color map")

// Range of a mapper with no links loaded
const (
	defaultMin = 0.0
	defaultMax = 1.0
)

// degenerateNudge widens a zero-width range so interpolation stays defined
const degenerateNudge = 0.001

// State is the active palette and strength range
type State struct {
	Name string  `json:"name" yaml:"name"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
}

// Colorable is anything the mapper can paint
type Colorable interface {
	Strength() float64
	SetColor(colorful.Color)
}

// Mapper holds the color state. It is the only writer of edge colors.
type Mapper struct {
	palette *Palette
	min     float64
	max     float64
	stale   bool
}

// NewMapper creates a mapper for the named palette over [0, 1]
func NewMapper(name string) (*Mapper, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColorMap, name)
	}
	return &Mapper{palette: p, min: defaultMin, max: defaultMax}, nil
}

// State returns the current palette name and range
func (m *Mapper) State() State {
	return State{Name: m.palette.name, Min: m.min, Max: m.max}
}

// SetColorMap switches palette. The range is kept. Colors are stale until
// the next Apply.
func (m *Mapper) SetColorMap(name string) error {
	p, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColorMap, name)
	}
	m.palette = p
	m.stale = true
	return nil
}

// SetRange sets the strength range. An inverted range is swapped and an
// empty one has its minimum lowered so max > min always holds.
func (m *Mapper) SetRange(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		lo -= degenerateNudge
	}
	m.min, m.max = lo, hi
	m.stale = true
}

// ColorFor returns the color of strength v. Values outside the range take
// the nearest end color.
func (m *Mapper) ColorFor(v float64) colorful.Color {
	return m.palette.At((v - m.min) / (m.max - m.min))
}

// ColorForNormalized returns the color at alpha in [0, 1]
func (m *Mapper) ColorForNormalized(alpha float64) colorful.Color {
	return m.palette.At(alpha)
}

// Apply paints every edge from its strength and clears the stale flag
func Apply[E Colorable](m *Mapper, edges []E) {
	for _, e := range edges {
		e.SetColor(m.ColorFor(e.Strength()))
	}
	m.stale = false
}

// Stale reports whether colors need repainting
func (m *Mapper) Stale() bool {
	return m.stale
}

// Invalidate forgets the strength range of a dropped link set. The range
// returns to [0, 1] and colors are stale until the next Apply.
func (m *Mapper) Invalidate() {
	m.min, m.max = defaultMin, defaultMax
	m.stale = true
}

// RangeOf returns the min and max of strengths, or ok=false when none are
// finite
func RangeOf(strengths []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range strengths {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		lo = min(lo, s)
		hi = max(hi, s)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}
