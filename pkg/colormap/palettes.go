package colormap

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Default is the color map used when none is configured
const Default = "rainbow"

type stop struct {
	at    float64
	color colorful.Color
}

// Palette is a piecewise-linear color ramp over [0, 1]
type Palette struct {
	name  string
	stops []stop
}

type hexStop struct {
	at  float64
	hex string
}

var palettes = map[string]*Palette{
	"rainbow": mustPalette("rainbow", []hexStop{
		{0, "#0000ff"}, {0.2, "#00ffff"}, {0.5, "#00ff00"}, {0.8, "#ffff00"}, {1, "#ff0000"},
	}),
	"cooltowarm": mustPalette("cooltowarm", []hexStop{
		{0, "#3c4ec2"}, {0.2, "#9bbcff"}, {0.5, "#dcdcdc"}, {0.8, "#f6a385"}, {1, "#b40426"},
	}),
	"blackbody": mustPalette("blackbody", []hexStop{
		{0, "#000000"}, {0.2, "#780000"}, {0.5, "#e63200"}, {0.8, "#ffff00"}, {1, "#ffffff"},
	}),
	"grayscale": mustPalette("grayscale", []hexStop{
		{0, "#000000"}, {0.2, "#404040"}, {0.5, "#7f7f80"}, {0.8, "#bfbfbf"}, {1, "#ffffff"},
	}),
}

func mustPalette(name string, stops []hexStop) *Palette {
	p := &Palette{name: name}
	for _, s := range stops {
		c, err := colorful.Hex(s.hex)
		if err != nil {
			panic(fmt.Sprintf("colormap %s: %v", name, err))
		}
		p.stops = append(p.stops, stop{at: s.at, color: c})
	}
	return p
}

// Name returns the palette name
func (p *Palette) Name() string {
	return p.name
}

// At returns the color at alpha, clamped to [0, 1]
func (p *Palette) At(alpha float64) colorful.Color {
	if math.IsNaN(alpha) || alpha <= p.stops[0].at {
		return p.stops[0].color
	}
	last := p.stops[len(p.stops)-1]
	if alpha >= last.at {
		return last.color
	}
	for i := 1; i < len(p.stops); i++ {
		hi := p.stops[i]
		if alpha <= hi.at {
			lo := p.stops[i-1]
			t := (alpha - lo.at) / (hi.at - lo.at)
			return lo.color.BlendRgb(hi.color, t)
		}
	}
	return last.color
}

// Lookup returns the named palette
func Lookup(name string) (*Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// Names returns every palette name in sorted order
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
