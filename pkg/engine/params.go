package engine

import (
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/visualization"
)

// ApplyParams replaces every parameter at once, as when a parameters file is
// reloaded, and redraws the collection at the new density. Colors are
// re-ranged over the full set.
func (e *Engine) ApplyParams(p config.Params) (LoadResult, error) {
	const op = "apply_params"

	p, err := p.Resolve()
	if err != nil {
		return LoadResult{}, err
	}
	if p.Profile == visualization.ProfileVolume && p.Thickness == 0 {
		p.Thickness = DefaultVolumeThickness
	}
	if err := p.Validate(); err != nil {
		return LoadResult{}, err
	}
	profile, err := visualization.ProfileFor(p.Profile)
	if err != nil {
		return LoadResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.span(op, logging.Density(p.Density))
	curve, err := visualization.NewCurveStrategy(p.Curve.For(e.montage))
	if err != nil {
		e.done(s, op, err)
		return LoadResult{}, err
	}
	if err := e.colors.SetColorMap(p.ColorMap); err != nil {
		e.done(s, op, err)
		return LoadResult{}, err
	}
	e.params = p
	e.curve = curve
	e.profile = profile
	result := e.redraw()

	e.done(s, op, nil, logging.VisibleCount(e.filter.VisibleCount()))
	return result, nil
}
