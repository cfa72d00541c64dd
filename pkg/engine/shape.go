package engine

import (
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/validation"
	"github.com/dd0wney/vizaj/pkg/visualization"
)

// SetShapeParams reshapes every link. The endpoints and alignment are
// unchanged, so each curve is regenerated and its mesh updated in place.
func (e *Engine) SetShapeParams(shape visualization.ShapeParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setShapeLocked("set_shape", shape, "")
}

// ApplyPreset sets the shape to a named premade geometry
func (e *Engine) ApplyPreset(name string) error {
	shape, err := visualization.Preset(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setShapeLocked("apply_preset", shape, name)
}

// setShapeLocked stores shape and the preset it came from, "" for a custom
// shape, and reshapes every link. Callers hold the write lock.
func (e *Engine) setShapeLocked(op string, shape visualization.ShapeParams, preset string) error {
	s := e.span(op, logging.String("preset", preset))

	next := e.params
	next.Shape = shape
	next.Preset = preset
	if err := next.Validate(); err != nil {
		e.done(s, op, err)
		return err
	}
	e.params = next
	updated, rebuilt := e.reshape()

	e.done(s, op, nil, logging.Int("updated", updated), logging.Int("rebuilt", rebuilt))
	return nil
}

// reshape regenerates curves from the stored links and pushes the new
// vertices into the existing meshes. It falls back to a full redraw if any
// curve fails.
func (e *Engine) reshape() (updated, rebuilt int) {
	if e.montage == nil {
		return 0, 0
	}
	alignment := e.alignment()
	popts := e.profileOptions()

	for _, edge := range e.filter.Edges() {
		curve, err := e.curveFor(edge.Link, alignment)
		if err != nil {
			e.logger.Warn("reshape failed, redrawing", logging.Link(edge.Link.Node1, edge.Link.Node2), logging.Error(err))
			r := e.redraw()
			return 0, r.Loaded
		}
		edge.Curve = curve
		if edge.Mesh.UpdateVertices(e.profile.Geometry(curve, edge.Link, popts)) {
			updated++
			continue
		}
		edge.Mesh = e.profile.Generate(curve, edge.Link, popts)
		rebuilt++
	}
	if rebuilt > 0 {
		e.recordMesh()
	}
	return updated, rebuilt
}

// SetAlignmentTarget moves the point every link bends away from. The local
// bases depend on it, so the collection is rebuilt and links that become
// degenerate are dropped.
func (e *Engine) SetAlignmentTarget(target float64) (LoadResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "set_alignment_target"
	s := e.span(op, logging.Float64("target", target))

	next := e.params
	next.AlignmentTarget = target
	if err := next.Validate(); err != nil {
		e.done(s, op, err)
		return LoadResult{}, err
	}
	e.params = next
	result := e.redraw()

	e.done(s, op, nil, logging.Count(len(result.Degenerate)))
	return result, nil
}

// SetThickness sets the tube thickness. A positive thickness selects the
// volume profile and zero selects the line profile.
func (e *Engine) SetThickness(thickness float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "set_thickness"
	s := e.span(op, logging.Float64("thickness", thickness))

	err := validation.NewConfigValidator("Params").
		RangeFloat("Thickness", thickness, 0, config.MaxThickness).
		Validate()
	if err != nil {
		e.done(s, op, err)
		return err
	}

	kind := visualization.ProfileLine
	if thickness > 0 {
		kind = visualization.ProfileVolume
	}
	e.params.Thickness = thickness
	if kind != e.profile.Kind() {
		e.switchProfile(kind)
	} else if kind == visualization.ProfileVolume {
		e.resizeTubes()
	}

	e.done(s, op, nil)
	return nil
}

// DefaultVolumeThickness is applied when the volume profile is selected
// while the thickness is zero
const DefaultVolumeThickness = 1.0

// SetProfile switches the mesh profile. Meshes are regenerated from the
// stored curves without recomputing them. The line profile forces the
// thickness to zero; the volume profile raises a zero thickness to
// DefaultVolumeThickness.
func (e *Engine) SetProfile(kind visualization.ProfileKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := visualization.ProfileFor(kind); err != nil {
		return err
	}
	switch {
	case kind == visualization.ProfileLine:
		e.params.Thickness = 0
	case e.params.Thickness == 0:
		e.params.Thickness = DefaultVolumeThickness
	}
	if kind == e.profile.Kind() {
		if kind == visualization.ProfileVolume {
			e.resizeTubes()
		}
		return nil
	}
	e.switchProfile(kind)
	return nil
}

func (e *Engine) switchProfile(kind visualization.ProfileKind) {
	const op = "switch_profile"
	s := e.span(op, logging.String("profile", string(kind)))

	// kind has been checked by the callers
	e.profile, _ = visualization.ProfileFor(kind)
	e.params.Profile = kind
	popts := e.profileOptions()
	for _, edge := range e.filter.Edges() {
		edge.Mesh = e.profile.Generate(edge.Curve, edge.Link, popts)
	}
	e.recordMesh()

	e.done(s, op, nil, logging.EdgeCount(e.filter.Len()))
}

func (e *Engine) resizeTubes() {
	popts := e.profileOptions()
	for _, edge := range e.filter.Edges() {
		if edge.Mesh.UpdateVertices(e.profile.Geometry(edge.Curve, edge.Link, popts)) {
			edge.Mesh.Radius = visualization.TubeRadius(edge.Link, popts)
			continue
		}
		edge.Mesh = e.profile.Generate(edge.Curve, edge.Link, popts)
	}
}

// SetCurve changes the curve strategy and redraws every link
func (e *Engine) SetCurve(kind visualization.CurveKind) (LoadResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	curve, err := visualization.NewCurveStrategy(kind.For(e.montage))
	if err != nil {
		return LoadResult{}, err
	}
	if kind == "" {
		kind = curve.Kind()
	}
	e.curve = curve
	e.params.Curve = kind
	return e.redraw(), nil
}

// SetDegreeLineLength scales the per-node degree indicator
func (e *Engine) SetDegreeLineLength(length float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.params
	next.DegreeLineLength = length
	if err := next.Validate(); err != nil {
		return err
	}
	e.params = next
	return nil
}
