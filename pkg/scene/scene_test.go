package scene

import (
	"bytes"
	"testing"

	"github.com/dd0wney/vizaj/pkg/colormap"
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/geometry"
	"github.com/dd0wney/vizaj/pkg/visualization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	curve := visualization.CurveSpec{}
	for i := range curve.Points {
		curve.Points[i] = geometry.Vec(float64(i), 1, -2)
	}
	s := &Snapshot{
		MontageID:    "3f1c",
		Params:       config.Default(),
		Density:      0.5,
		MaxDensity:   1,
		TotalLinks:   3,
		VisibleLinks: 2,
		MeanDegree:   4.0 / 3.0,
		ColorMap:     colormap.State{Name: "rainbow", Min: 0.1, Max: 0.9},
		Nodes: []Node{
			{Index: 0, Label: "Fz", Position: geometry.Vec(0, 8, 4), Degree: 1, Indicator: 0.5},
			{Index: 1, Label: "Cz", Position: geometry.Vec(0, 10, 0), Degree: 2},
			{Index: 2, Label: "Pz", Position: geometry.Vec(0, 8, -4), Degree: 1, Indicator: 0.5},
		},
	}
	for i, pair := range [][2]int{{1, 0}, {2, 1}, {2, 0}} {
		s.Links = append(s.Links, Link{
			Node1:    pair[0],
			Node2:    pair[1],
			Strength: 0.9 - 0.4*float64(i),
			Visible:  i < 2,
			Color:    "#00ff00",
			Curve:    curve,
			Profile:  visualization.ProfileLine,
		})
	}
	return s
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.json":      FormatJSON,
		"out.YAML":      FormatYAML,
		"scene.yml":     FormatYAML,
		"scene.json.sz": FormatSnappy,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("scene.bin")
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	want := sampleSnapshot()
	for _, f := range []Format{FormatJSON, FormatYAML, FormatSnappy} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			_, err := Write(&buf, want, f)
			require.NoError(t, err)

			got, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, want.Links, got.Links)
			assert.Equal(t, want.Nodes, got.Nodes)
			assert.Equal(t, want.Params, got.Params)
			assert.Equal(t, want.ColorMap, got.ColorMap)
		})
	}
}

func TestSnappyCompresses(t *testing.T) {
	s := sampleSnapshot()
	for i := 0; i < 6; i++ {
		s.Links = append(s.Links, s.Links...)
	}
	plain, err := Marshal(s, FormatJSON)
	require.NoError(t, err)
	packed, err := Marshal(s, FormatSnappy)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain)/2)
}

func TestUnmarshalCorrupt(t *testing.T) {
	_, err := Unmarshal([]byte("not snappy"), FormatSnappy)
	assert.Error(t, err)

	_, err = Unmarshal([]byte("{"), FormatJSON)
	assert.Error(t, err)

	_, err = Marshal(sampleSnapshot(), Format("xml"))
	assert.Error(t, err)
}

func TestVisibleAndTopDegrees(t *testing.T) {
	s := sampleSnapshot()
	assert.Len(t, s.Visible(), 2)

	top := s.TopDegrees(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Cz", top[0].Label)
	assert.Equal(t, "Fz", top[1].Label, "ties keep index order")
	assert.Len(t, s.TopDegrees(10), 3)
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"":     FormatJSON,
		"json": FormatJSON,
		"YAML": FormatYAML,
		"yml":  FormatYAML,
		"sz":   FormatSnappy,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/yaml", FormatYAML.ContentType())
	assert.Equal(t, "application/octet-stream", FormatSnappy.ContentType())
}
