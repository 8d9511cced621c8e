package config

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"

	"github.com/iburimskiy/loopvis/internal/vmath"
)

// ParseColor parses any CSS colour string, "#rrggbb" being the usual form.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := css.Parse(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{
		R: uint8(255*c.R + 0.5),
		G: uint8(255*c.G + 0.5),
		B: uint8(255*c.B + 0.5),
		A: uint8(255*c.A + 0.5),
	}, nil
}

// ColorOr parses s and falls back to def when s is malformed.
func ColorOr(s string, def color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

// NormalizedRGB parses s into [0,1] floats, black when malformed.
func NormalizedRGB(s string) vmath.Vec3 {
	c := ColorOr(s, color.NRGBA{A: 255})
	return vmath.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func ColorToHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
