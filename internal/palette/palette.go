// Package palette assigns display colours to labels so that project and category
// colours stay visually apart.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Palette is an ordered list of distinct #RRGGBB colours.
type Palette []string

// Default is the palette used for project and category colours.
var Default = Palette{
	"#EF4444", // red
	"#F97316", // orange
	"#F59E0B", // amber
	"#EAB308", // yellow
	"#84CC16", // lime
	"#22C55E", // green
	"#10B981", // emerald
	"#14B8A6", // teal
	"#06B6D4", // cyan
	"#0EA5E9", // sky
	"#3B82F6", // blue
	"#6366F1", // indigo
	"#8B5CF6", // violet
	"#A855F7", // purple
	"#D946EF", // fuchsia
	"#EC4899", // pink
	"#F43F5E", // rose
	"#A16207", // brown
	"#78716C", // stone
	"#64748B", // slate
}

// Luminance weights for the perceptual distance.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// RGB is a colour with 0-255 channels.
type RGB struct {
	R, G, B float64
}

// ParseHex parses a #RRGGBB colour.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("parse color %q: want #RRGGBB", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return RGB{
		R: float64(v >> 16 & 0xFF),
		G: float64(v >> 8 & 0xFF),
		B: float64(v & 0xFF),
	}, nil
}

// Distance is the luminance-weighted Euclidean distance between two colours.
func Distance(a, b RGB) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt(weightR*dr*dr + weightG*dg*dg + weightB*db*db)
}

// Assign picks a colour for a new name in the registry whose current mapping is own,
// keeping it as far as possible from the colours in other.
//
// Palette colours already used in own are skipped. Among the rest, the colour whose
// nearest neighbour in other is farthest away wins; ties go to the earlier palette
// entry. When nothing is left or other is empty the pick is sequential:
// p[len(own) mod len(p)].
func (p Palette) Assign(own, other map[string]string) string {
	if len(p) == 0 {
		return ""
	}
	fallback := p[len(own)%len(p)]

	opposing := parseAll(other)
	if len(opposing) == 0 {
		return fallback
	}

	used := make(map[string]bool, len(own))
	for _, c := range own {
		used[normalize(c)] = true
	}

	best := ""
	bestDist := -1.0
	for _, candidate := range p {
		if used[normalize(candidate)] {
			continue
		}
		rgb, err := ParseHex(candidate)
		if err != nil {
			continue
		}
		nearest := math.Inf(1)
		for _, o := range opposing {
			if d := Distance(rgb, o); d < nearest {
				nearest = d
			}
		}
		if nearest > bestDist {
			best = candidate
			bestDist = nearest
		}
	}

	if best == "" {
		return fallback
	}
	return best
}

// Contains reports whether color is one of the palette colours.
func (p Palette) Contains(color string) bool {
	color = normalize(color)
	for _, c := range p {
		if normalize(c) == color {
			return true
		}
	}
	return false
}

func parseAll(colors map[string]string) []RGB {
	out := make([]RGB, 0, len(colors))
	for _, c := range colors {
		if rgb, err := ParseHex(c); err == nil {
			out = append(out, rgb)
		}
	}
	return out
}

func normalize(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
