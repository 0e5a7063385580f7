package scene

import (
	"math"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/colornames"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromHex returns a new opaque Color from the 24-bit RGB value given (i.e. 0xff0000 for red).
func NewColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

// ParseColor parses a color from a string, which can be a CSS color name ("red", "cornflowerblue"),
// or a hexadecimal value in "#rgb", "#rrggbb", "#rrggbbaa" or "0xrrggbb" form.
func ParseColor(s string) (Color, error) {

	s = strings.ToLower(strings.TrimSpace(s))

	if named, ok := colornames.Map[s]; ok {
		return Color{
			R: float32(named.R) / 255,
			G: float32(named.G) / 255,
			B: float32(named.B) / 255,
			A: float32(named.A) / 255,
		}, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, errors.Newf("invalid color %q", s).WithType(ErrTypeInvalidColor)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, errors.Newf("invalid color %q", s).
			WithType(ErrTypeInvalidColor).
			Wrap(err)
	}

	if len(hex) == 6 {
		return NewColorFromHex(uint32(v)), nil
	}

	c := NewColorFromHex(uint32(v >> 8))
	c.A = float32(v&0xff) / 255
	return c, nil

}

// Hex returns the 24-bit RGB value of the Color, ignoring alpha.
func (color Color) Hex() uint32 {
	r := uint32(math.Round(float64(clamp01(color.R)) * 255))
	g := uint32(math.Round(float64(clamp01(color.G)) * 255))
	b := uint32(math.Round(float64(clamp01(color.B)) * 255))
	return r<<16 | g<<8 | b
}

// RGBA64 returns the components of the Color as float64s.
func (color Color) RGBA64() (float64, float64, float64, float64) {
	return float64(color.R), float64(color.G), float64(color.B), float64(color.A)
}

// Mix returns a copy of the Color, linearly blended with the other Color by the percentage given.
func (color Color) Mix(other Color, percent float32) Color {
	return Color{
		R: color.R + (other.R-color.R)*percent,
		G: color.G + (other.G-color.G)*percent,
		B: color.B + (other.B-color.B)*percent,
		A: color.A + (other.A-color.A)*percent,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	} else if v > 1 {
		return 1
	}
	return v
}
