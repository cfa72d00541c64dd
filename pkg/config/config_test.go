package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/vizaj/pkg/visualization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, 0.2, p.Density)
	assert.Equal(t, 30.0, p.AlignmentTarget)
	assert.Equal(t, "rainbow", p.ColorMap)
	assert.Equal(t, visualization.ProfileLine, p.Profile)
	assert.Equal(t, 0.1, p.Shape.NodeHandleDistance)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"density above one", func(p *Params) { p.Density = 1.5 }, "Params.Density"},
		{"negative height", func(p *Params) { p.Shape.Height = -0.1 }, "Params.Shape.Height"},
		{"node angle", func(p *Params) { p.Shape.NodeAngle = 2 }, "Params.Shape.NodeAngle"},
		{"thickness", func(p *Params) { p.Thickness = 9; p.Profile = visualization.ProfileVolume }, "Params.Thickness"},
		{"color map", func(p *Params) { p.ColorMap = "viridis" }, "Params.ColorMap"},
		{"alignment", func(p *Params) { p.AlignmentTarget = 2e6 }, "Params.AlignmentTarget"},
		{"profile", func(p *Params) { p.Profile = "ribbon" }, "Params.Profile"},
		{"curve", func(p *Params) { p.Curve = "spiral" }, "Params.Curve"},
		{"preset", func(p *Params) { p.Preset = "Wobbly" }, "Params.Preset"},
		{"thick line", func(p *Params) { p.Thickness = 1 }, "Params.Profile"},
		{"degree line", func(p *Params) { p.DegreeLineLength = -1 }, "Params.DegreeLineLength"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	p := Default()
	p.Density = -1
	p.ColorMap = ""
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors")
}

func TestParseYAMLOverDefaults(t *testing.T) {
	data := []byte("density: 0.35\ncolor_map: blackbody\nshape:\n  height: 1.2\n")
	p, err := Parse(data, false)
	require.NoError(t, err)

	assert.Equal(t, 0.35, p.Density)
	assert.Equal(t, "blackbody", p.ColorMap)
	assert.Equal(t, 1.2, p.Shape.Height)
	assert.Equal(t, 30.0, p.AlignmentTarget, "unset fields keep defaults")
}

func TestParseAppliesPreset(t *testing.T) {
	p, err := Parse([]byte(`{"preset": "Straight"}`), true)
	require.NoError(t, err)
	assert.Equal(t, visualization.ShapeParams{}, p.Shape)
}

func TestParseBlankEnumsUseDefaults(t *testing.T) {
	p, err := Parse([]byte("color_map: \"\"\nprofile: \"\"\ncurve: \"\"\n"), false)
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.ColorMap, p.ColorMap)
	assert.Equal(t, d.Profile, p.Profile)
	assert.Equal(t, d.Curve, p.Curve)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("density: [1, 2"), false)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"density": 4}`), true)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := Default()
	p.Density = 0.42
	p.Thickness = 1.5
	p.Profile = visualization.ProfileVolume

	for _, name := range []string{"params.yaml", "params.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, p))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("params.toml")
	assert.ErrorContains(t, err, "unsupported config extension")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
