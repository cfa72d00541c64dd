// Package engine ties the link pipeline together: curve generation, mesh
// profiles, density filtering, degree tracking and color mapping over one
// montage.
//
// Every exported method is safe for concurrent use. Mutations take the write
// lock for their whole duration, so a reader never observes a half-built
// link collection.
package engine

import (
	"fmt"
	"sync"

	"github.com/dd0wney/vizaj/pkg/algorithms"
	"github.com/dd0wney/vizaj/pkg/colormap"
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/filter"
	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/metrics"
	"github.com/dd0wney/vizaj/pkg/montage"
	"github.com/dd0wney/vizaj/pkg/parallel"
	"github.com/dd0wney/vizaj/pkg/visualization"
	"github.com/google/uuid"
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger, NopLogger by default
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l.With(logging.Component("engine"))
	}
}

// WithMetrics sets the metrics registry, a private registry by default
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// WithWorkers bounds the goroutines used for mesh generation, GOMAXPROCS by
// default
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// parallelMeshBatch is the link count below which meshes are built inline
const parallelMeshBatch = 64

// LoadOptions controls how LoadEdges picks the density
type LoadOptions struct {
	// KeepDensity reapplies the previous density instead of eco filtering
	KeepDensity bool
}

// LoadResult reports what LoadEdges accepted
type LoadResult struct {
	Loaded     int
	Degenerate []montage.Link
	Density    float64
}

// Engine owns the renderable link collection of one montage
type Engine struct {
	mu sync.RWMutex

	params    config.Params
	montage   *montage.Montage
	montageID string
	center    geometry.Vector3
	links     []montage.Link

	curve   visualization.CurveStrategy
	profile visualization.MeshProfile
	filter  *filter.Filter
	degrees *algorithms.Tracker[*filter.RenderableEdge]
	colors  *colormap.Mapper

	logger  logging.Logger
	metrics *metrics.Registry
	workers int
}

// New creates an engine with the given parameters. A named preset in params
// overrides params.Shape.
func New(params config.Params, opts ...Option) (*Engine, error) {
	params, err := params.Resolve()
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	curve, err := visualization.NewCurveStrategy(params.Curve)
	if err != nil {
		return nil, err
	}
	profile, err := visualization.ProfileFor(params.Profile)
	if err != nil {
		return nil, err
	}
	colors, err := colormap.NewMapper(params.ColorMap)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		params:  params,
		curve:   curve,
		profile: profile,
		filter:  filter.New(),
		degrees: algorithms.NewTracker[*filter.RenderableEdge](0),
		colors:  colors,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.NewRegistry()
	}

	e.filter.OnChange(e.degrees.Refresh)
	e.filter.OnChange(e.recordVisibility)
	return e, nil
}

func (e *Engine) recordVisibility(visible []*filter.RenderableEdge) {
	d := e.degrees.Degrees()
	_, maxDegree := d.Max()
	e.metrics.RecordVisibility(e.filter.Density(), len(visible), d.Mean(), max(maxDegree, 0))
}

// span starts timing op; finish it with done
func (e *Engine) span(op string, fields ...logging.Field) *logging.Span {
	return logging.Start(e.logger, op, fields...)
}

func (e *Engine) done(s *logging.Span, op string, err error, fields ...logging.Field) {
	e.metrics.RecordOperation(op, err, s.End(err, fields...))
}

// SetMontage replaces the montage and drops every link. The curve strategy
// is chosen here, once per montage.
func (e *Engine) SetMontage(m *montage.Montage) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m == nil {
		return ErrNoMontage
	}
	const op = "set_montage"
	s := e.span(op, logging.NodeCount(m.Len()))

	curve, err := visualization.NewCurveStrategy(e.params.Curve.For(m))
	if err != nil {
		e.done(s, op, err)
		return err
	}

	e.teardown()
	e.montage = m
	e.montageID = uuid.NewString()
	e.center = m.Centroid()
	e.curve = curve
	e.degrees.Reset(m.Len())
	e.metrics.RecordLoad(m.Len(), 0, 0)

	e.logger.Info("montage loaded",
		logging.MontageID(e.montageID),
		logging.NodeCount(m.Len()),
		logging.String("curve", string(curve.Kind())))
	e.done(s, op, nil)
	return nil
}

// Montage returns the current montage and its generation id
func (e *Engine) Montage() (*montage.Montage, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.montage, e.montageID
}

// LoadEdges replaces the link collection. Links whose curve cannot be built,
// such as links between coincident nodes, are excluded and reported. Colors
// are ranged over the full set. The density is eco filtered unless
// opts.KeepDensity is set.
func (e *Engine) LoadEdges(links []montage.Link, opts LoadOptions) (LoadResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "load_edges"
	s := e.span(op, logging.EdgeCount(len(links)))

	if e.montage == nil {
		e.done(s, op, ErrNoMontage)
		return LoadResult{}, ErrNoMontage
	}
	n := e.montage.Len()
	var bad []montage.Link
	for _, l := range links {
		if l.Node1 < 0 || l.Node2 < 0 || l.Node1 >= n || l.Node2 >= n {
			bad = append(bad, l)
		}
	}
	if len(bad) > 0 {
		e.metrics.RecordRejected(metrics.ReasonInvalid, len(bad))
		err := fmt.Errorf("%w: %d links, first %v, with %d nodes", ErrLinkOutOfRange, len(bad), bad[0], n)
		e.done(s, op, err)
		return LoadResult{}, err
	}

	e.teardown()
	e.links = append([]montage.Link(nil), links...)
	result := e.build(opts)

	e.done(s, op, nil,
		logging.VisibleCount(e.filter.VisibleCount()),
		logging.Count(len(result.Degenerate)))
	return result, nil
}

// build generates every renderable edge from e.links. Callers hold the write
// lock and have torn down the previous collection.
func (e *Engine) build(opts LoadOptions) LoadResult {
	var result LoadResult
	alignment := e.alignment()
	popts := e.profileOptions()

	edges := make([]*filter.RenderableEdge, 0, len(e.links))
	for _, l := range e.links {
		curve, err := e.curveFor(l, alignment)
		if err != nil {
			result.Degenerate = append(result.Degenerate, l)
			e.logger.Warn("link excluded",
				logging.MontageID(e.montageID),
				logging.Link(l.Node1, l.Node2),
				logging.Error(err))
			continue
		}
		edges = append(edges, &filter.RenderableEdge{Link: l, Curve: curve})
	}
	e.generateMeshes(edges, popts)

	e.filter.Load(edges, e.montage.Len())
	e.rangeColors(false)

	if opts.KeepDensity {
		result.Density = e.filter.SetDensity(e.params.Density)
	} else {
		result.Density = e.filter.EcoFilter()
	}
	e.params.Density = result.Density
	result.Loaded = len(edges)

	e.metrics.RecordLoad(e.montage.Len(), len(edges), len(result.Degenerate))
	e.recordMesh()
	return result
}

// generateMeshes fills edge.Mesh for every edge. Profiles are stateless, so
// edges are independent of each other.
func (e *Engine) generateMeshes(edges []*filter.RenderableEdge, popts visualization.ProfileOptions) {
	gen := func(i int) {
		edges[i].Mesh = e.profile.Generate(edges[i].Curve, edges[i].Link, popts)
	}
	stats, err := parallel.ForEach(e.workers, len(edges), parallelMeshBatch, e.logger, gen)
	e.metrics.RecordMeshBuild(stats.Workers, stats.Panics)
	if err != nil {
		e.logger.Error("parallel mesh generation failed, retrying inline", logging.Error(err))
		for i, edge := range edges {
			if edge.Mesh == nil {
				gen(i)
			}
		}
	}
}

// alignment returns the point links bend away from, below the montage centroid
func (e *Engine) alignment() geometry.Vector3 {
	return visualization.AlignmentPoint(e.center, e.params.AlignmentTarget)
}

func (e *Engine) curveFor(l montage.Link, alignment geometry.Vector3) (visualization.CurveSpec, error) {
	a, b := e.montage.Position(l.Node1), e.montage.Position(l.Node2)
	if a == b {
		return visualization.CurveSpec{}, fmt.Errorf("%w: coincident endpoints", visualization.ErrDegenerateBasis)
	}
	return e.curve.Generate(a, b, alignment, e.params.Shape)
}

// redraw rebuilds every edge from the stored links, keeping the density
func (e *Engine) redraw() LoadResult {
	if e.montage == nil {
		return LoadResult{}
	}
	e.filter.Clear()
	return e.build(LoadOptions{KeepDensity: true})
}

// teardown drops the whole link collection. params.Density keeps the last
// applied value for KeepDensity reloads.
func (e *Engine) teardown() {
	e.filter.Clear()
	e.links = nil
	e.colors.Invalidate()
}

func (e *Engine) profileOptions() visualization.ProfileOptions {
	n := 0
	if e.montage != nil {
		n = e.montage.Len()
	}
	return visualization.ProfileOptions{Thickness: e.params.Thickness, NodeCount: n}
}

func (e *Engine) recordMesh() {
	total := 0
	for _, edge := range e.filter.Edges() {
		total += edge.Mesh.VertexCount()
	}
	e.metrics.RecordMeshVertices(string(e.profile.Kind()), total, visualization.ProfileKinds)
}

// Clear drops the montage and every link
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardown()
	e.params.Density = 0
	e.montage = nil
	e.montageID = ""
	e.center = geometry.Vector3{}
	e.degrees.Reset(0)
	e.metrics.RecordLoad(0, 0, 0)
	e.logger.Debug("engine cleared")
}

// Params returns the current parameters
func (e *Engine) Params() config.Params {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}
