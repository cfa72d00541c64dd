package engine

import (
	"github.com/dd0wney/vizaj/pkg/algorithms"
	"github.com/dd0wney/vizaj/pkg/logging"
)

// SetDensity shows the strongest links up to density d and returns the
// applied value. Out-of-range values are clamped, never rejected.
func (e *Engine) SetDensity(d float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "set_density"
	s := e.span(op, logging.Float64("requested", d))

	applied := e.filter.SetDensity(d)
	e.params.Density = applied

	e.done(s, op, nil, logging.Density(applied), logging.VisibleCount(e.filter.VisibleCount()))
	return applied
}

// EcoFilter sets the density that gives a mean degree of three
func (e *Engine) EcoFilter() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "eco_filter"
	s := e.span(op)

	applied := e.filter.EcoFilter()
	e.params.Density = applied

	e.done(s, op, nil, logging.Density(applied), logging.VisibleCount(e.filter.VisibleCount()))
	return applied
}

// Density returns the applied density and its current upper bound
func (e *Engine) Density() (density, maxDensity float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filter.Density(), e.filter.MaxDensity()
}

// Counts returns the visible and total link counts
func (e *Engine) Counts() (visible, total int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filter.VisibleCount(), e.filter.Len()
}

// Degrees returns the visible degree of every node
func (e *Engine) Degrees() algorithms.Degrees {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.degrees.Degrees()
}

// MeanDegree returns Σdeg / n over the visible links
func (e *Engine) MeanDegree() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.degrees.Degrees().Mean()
}

// DegreeIndicator returns the degree line value of node i
func (e *Engine) DegreeIndicator(i int) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.degrees.Degrees().Indicator(i, e.params.DegreeLineLength)
}
