package visualization

import (
	"fmt"
	"sort"
)

var presets = map[string]ShapeParams{
	"Default":        {Height: 0.75, TopHandleDistance: 0.5, NodeAngle: 0.375, NodeHandleDistance: 0},
	"Bell":           {Height: 0.75, TopHandleDistance: 0.5, NodeAngle: 0, NodeHandleDistance: 0.5},
	"Triangle":       {Height: 0.75, TopHandleDistance: 0, NodeAngle: 0, NodeHandleDistance: 0},
	"Circle":         {Height: 0.5, TopHandleDistance: 0.5, NodeAngle: 0.5, NodeHandleDistance: 0.5},
	"Circle2":        {Height: 0.9, TopHandleDistance: 1, NodeAngle: 0.8, NodeHandleDistance: 1},
	"Rounded square": {Height: 0.5, TopHandleDistance: 1, NodeAngle: 0.5, NodeHandleDistance: 1},
	"Peak":           {Height: 0.75, TopHandleDistance: 0, NodeAngle: 0, NodeHandleDistance: 1},
	"Straight":       {},
}

// DefaultShapeParams are the shape values a fresh session starts with
func DefaultShapeParams() ShapeParams {
	return ShapeParams{
		Height:             0.75,
		TopHandleDistance:  0.5,
		NodeAngle:          0.375,
		NodeHandleDistance: 0.1,
	}
}

// Preset returns the named premade link geometry
func Preset(name string) (ShapeParams, error) {
	p, ok := presets[name]
	if !ok {
		return ShapeParams{}, fmt.Errorf("unknown link geometry preset %q", name)
	}
	return p, nil
}

// PresetNames lists the premade link geometries in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
