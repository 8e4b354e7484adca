package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette is the cyclic set of colors assigned to timers by rank
type Palette []color.Color

var namedColors = map[string]color.Color{
	"blue":    color.RGBA{R: 0, G: 0, B: 255, A: 255},
	"red":     color.RGBA{R: 255, G: 0, B: 0, A: 255},
	"magenta": color.RGBA{R: 191, G: 0, B: 191, A: 255},
	"green":   color.RGBA{R: 0, G: 128, B: 0, A: 255},
	"cyan":    color.RGBA{R: 0, G: 191, B: 191, A: 255},
	"yellow":  color.RGBA{R: 191, G: 191, B: 0, A: 255},
	"orange":  color.RGBA{R: 255, G: 165, B: 0, A: 255},
	"gray":    color.RGBA{R: 128, G: 128, B: 128, A: 255},
	"black":   color.RGBA{R: 0, G: 0, B: 0, A: 255},
}

var shortColors = map[string]string{
	"b": "blue",
	"r": "red",
	"m": "magenta",
	"g": "green",
	"c": "cyan",
	"y": "yellow",
	"k": "black",
}

// DefaultPalette is blue, red, magenta
func DefaultPalette() Palette {
	return Palette{namedColors["blue"], namedColors["red"], namedColors["magenta"]}
}

// ParsePalette reads a comma separated list of color names, single letter
// abbreviations or #rrggbb values. An empty list yields the default palette.
func ParsePalette(value string) (Palette, error) {
	if strings.TrimSpace(value) == "" {
		return DefaultPalette(), nil
	}

	var p Palette
	for _, part := range strings.Split(value, ",") {
		c, err := parseColor(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

func parseColor(value string) (color.Color, error) {
	name := strings.ToLower(value)
	if long, ok := shortColors[name]; ok {
		name = long
	}
	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	if strings.HasPrefix(name, "#") && len(name) == 7 {
		rgb, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.RGBA{
				R: uint8(rgb >> 16),
				G: uint8(rgb >> 8),
				B: uint8(rgb),
				A: 255,
			}, nil
		}
	}
	return nil, fmt.Errorf("invalid color %q", value)
}

// ColorFor returns the color of the timer at rank. The index is offset by
// one so the last timer of a three-timer run gets the first color.
func (p Palette) ColorFor(rank int) color.Color {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	idx := (rank + 1) % len(p)
	if idx < 0 {
		idx += len(p)
	}
	return p[idx]
}

// withAlpha returns c with the given opacity in [0, 1]
func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.Transparent
	}
	// un-premultiply
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(alpha*255 + 0.5),
	}
}
