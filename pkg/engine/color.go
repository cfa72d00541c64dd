package engine

import (
	"github.com/dd0wney/vizaj/pkg/colormap"
	"github.com/dd0wney/vizaj/pkg/filter"
	"github.com/dd0wney/vizaj/pkg/logging"
)

// SetColorMap switches palette and repaints every link over the current range
func (e *Engine) SetColorMap(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.colors.SetColorMap(name); err != nil {
		return err
	}
	e.params.ColorMap = name
	colormap.Apply(e.colors, e.filter.Edges())
	e.logger.Debug("color map changed", logging.String("color_map", name))
	return nil
}

// RescaleColors recomputes the strength range, from the visible links only
// when visibleOnly is set, otherwise from every link, and repaints.
func (e *Engine) RescaleColors(visibleOnly bool) colormap.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rangeColors(visibleOnly)
	return e.colors.State()
}

// rangeColors sets the range and repaints. An empty source keeps the
// previous range.
func (e *Engine) rangeColors(visibleOnly bool) {
	source := e.filter.Edges()
	if visibleOnly {
		source = e.filter.Visible()
	}
	if lo, hi, ok := colormap.RangeOf(strengths(source)); ok {
		e.colors.SetRange(lo, hi)
	}
	colormap.Apply(e.colors, e.filter.Edges())
}

// ColorState returns the active palette and range
func (e *Engine) ColorState() colormap.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.colors.State()
}

func strengths(edges []*filter.RenderableEdge) []float64 {
	out := make([]float64, len(edges))
	for i, edge := range edges {
		out[i] = edge.Strength()
	}
	return out
}
