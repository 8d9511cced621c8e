package game

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// hsvToHex converts HSV to "#rrggbb" (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToHex(h, s, v float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to8(r), to8(g), to8(b))
}

// randomPalette returns n colours with hues spread around a random base so
// neighbouring stops never clash.
func randomPalette(rng *rand.Rand, n int) []string {
	base := rng.Float64() * 360
	spread := 25 + rng.Float64()*50
	out := make([]string, n)
	for i := range out {
		h := base + float64(i)*spread
		s := 0.55 + 0.4*rng.Float64()
		v := 0.45 + 0.5*rng.Float64()
		out[i] = hsvToHex(h, s, v)
	}
	return out
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
