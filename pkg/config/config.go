// Package config holds every user-tunable engine parameter, with defaults,
// validation and YAML or JSON persistence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/vizaj/pkg/colormap"
	"github.com/dd0wney/vizaj/pkg/validation"
	"github.com/dd0wney/vizaj/pkg/visualization"
	"gopkg.in/yaml.v3"
)

// Limits of the interactive controls
const (
	MaxHeight          = 2.0
	MaxThickness       = 4.0
	MaxAlignmentTarget = 1e6
	MinAlignmentTarget = -1e6
)

// Params is the full set of engine parameters
type Params struct {
	Density          float64                   `json:"density" yaml:"density"`
	Shape            visualization.ShapeParams `json:"shape" yaml:"shape"`
	Preset           string                    `json:"preset,omitempty" yaml:"preset,omitempty"`
	Thickness        float64                   `json:"thickness" yaml:"thickness"`
	ColorMap         string                    `json:"colorMap" yaml:"color_map"`
	AlignmentTarget  float64                   `json:"alignmentTarget" yaml:"alignment_target"`
	Profile          visualization.ProfileKind `json:"profile" yaml:"profile"`
	Curve            visualization.CurveKind   `json:"curve" yaml:"curve"`
	DegreeLineLength float64                   `json:"degreeLineLength" yaml:"degree_line_length"`
}

// Default returns the parameters of a fresh session
func Default() Params {
	return Params{
		Density:          0.2,
		Shape:            visualization.DefaultShapeParams(),
		Thickness:        0,
		ColorMap:         colormap.Default,
		AlignmentTarget:  visualization.DefaultAlignmentTarget,
		Profile:          visualization.ProfileLine,
		Curve:            visualization.CurveScalp,
		DegreeLineLength: 1,
	}
}

// Validate reports every out-of-range parameter
func (p Params) Validate() error {
	return validation.NewConfigValidator("Params").
		RangeFloat("Density", p.Density, 0, 1).
		RangeFloat("Shape.Height", p.Shape.Height, 0, MaxHeight).
		RangeFloat("Shape.TopHandleDistance", p.Shape.TopHandleDistance, 0, 1).
		Finite("Shape.TopPointAngle", p.Shape.TopPointAngle).
		RangeFloat("Shape.NodeAngle", p.Shape.NodeAngle, 0, 1).
		RangeFloat("Shape.NodeHandleDistance", p.Shape.NodeHandleDistance, 0, 1).
		RangeFloat("Thickness", p.Thickness, 0, MaxThickness).
		OneOf("ColorMap", p.ColorMap, colormap.Names()).
		RangeFloat("AlignmentTarget", p.AlignmentTarget, MinAlignmentTarget, MaxAlignmentTarget).
		OneOf("Profile", string(p.Profile), visualization.ProfileKinds).
		OneOf("Curve", string(p.Curve), visualization.CurveKinds).
		NonNegativeFloat("DegreeLineLength", p.DegreeLineLength).
		When(p.Preset != "", func(cv *validation.ConfigValidator) {
			cv.Custom("Preset", func() error {
				_, err := visualization.Preset(p.Preset)
				return err
			})
		}).
		When(p.Thickness > 0, func(cv *validation.ConfigValidator) {
			cv.OneOf("Profile", string(p.Profile), []string{string(visualization.ProfileVolume)})
		}).
		Validate()
}

// Resolve refills blank enum fields with their defaults and applies the
// named preset, if any, over Shape
func (p Params) Resolve() (Params, error) {
	d := Default()
	p.ColorMap = validation.DefaultOr(p.ColorMap, d.ColorMap)
	p.Profile = validation.DefaultOr(p.Profile, d.Profile)
	p.Curve = validation.DefaultOr(p.Curve, d.Curve)
	if p.Preset == "" {
		return p, nil
	}
	shape, err := visualization.Preset(p.Preset)
	if err != nil {
		return p, err
	}
	p.Shape = shape
	return p, nil
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	}
	return 0, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
}

// Load reads parameters from a YAML or JSON file. Missing fields keep their
// defaults.
func Load(path string) (Params, error) {
	f, err := formatOf(path)
	if err != nil {
		return Params{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, f == formatJSON)
}

// Parse decodes parameters over the defaults and validates them
func Parse(data []byte, isJSON bool) (Params, error) {
	p := Default()
	var err error
	if isJSON {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return Params{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if p, err = p.Resolve(); err != nil {
		return Params{}, err
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Save writes parameters to path, choosing the encoding by extension
func Save(path string, p Params) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	if f == formatJSON {
		data, err = json.MarshalIndent(p, "", "  ")
	} else {
		data, err = yaml.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
