package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseFloat parses raw, returning 0 for anything that is not a finite number.
func ParseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseInt parses raw as an integer, truncating decimals. Malformed input is 0.
func ParseInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	f := ParseFloat(raw)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// ParseBool accepts strconv forms plus on/off and yes/no. Malformed is false.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "y":
		return true
	case "off", "no", "n":
		return false
	}
	v, _ := strconv.ParseBool(strings.TrimSpace(raw))
	return v
}

// SplitAssignment splits "key=value".
func SplitAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", errors.Errorf("config: expected key=value, got %q", s)
	}
	return strings.TrimSpace(key), value, nil
}

func normKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "_", ""))
}

// Set edits one field from its string form. Numeric fields fall back to 0
// on malformed input; only an unknown key is an error.
func (c *Stellar) Set(key, raw string) error {
	switch normKey(key) {
	case "mode", "activetool":
		if m, ok := ParseMode(raw); ok {
			c.Mode = m
		}
	case "width":
		c.Width = ParseInt(raw)
	case "height":
		c.Height = ParseInt(raw)
	case "starcount":
		c.StarCount = ParseInt(raw)
	case "speedz":
		c.SpeedZ = ParseFloat(raw)
	case "driftx":
		c.DriftX = ParseFloat(raw)
	case "drifty":
		c.DriftY = ParseFloat(raw)
	case "traillength":
		c.TrailLength = ParseFloat(raw)
	case "minsize":
		c.MinSize = ParseFloat(raw)
	case "maxsize":
		c.MaxSize = ParseFloat(raw)
	case "randomness":
		c.Randomness = ParseFloat(raw)
	case "perspective":
		c.Perspective = ParseFloat(raw)
	case "safemargin":
		c.SafeMargin = ParseFloat(raw)
	case "bgcolor":
		c.BgColor = strings.TrimSpace(raw)
	case "starcolor":
		c.StarColor = strings.TrimSpace(raw)
	case "glowcolor":
		c.GlowColor = strings.TrimSpace(raw)
	case "glowenabled", "glow":
		c.GlowEnabled = ParseBool(raw)
	case "ispaused", "paused":
		c.IsPaused = ParseBool(raw)
	case "islooping", "looping":
		c.IsLooping = ParseBool(raw)
	case "loopduration", "loop":
		c.LoopDuration = ParseFloat(raw)
	default:
		return errors.Wrapf(ErrUnknownKey, "stellar %q", key)
	}
	return nil
}

func (c *Gradient) Set(key, raw string) error {
	switch normKey(key) {
	case "mode", "activetool":
		if m, ok := ParseMode(raw); ok {
			c.Mode = m
		}
	case "type":
		if t, ok := ParseGradientType(raw); ok {
			c.Type = t
		}
	case "width":
		c.Width = ParseInt(raw)
	case "height":
		c.Height = ParseInt(raw)
	case "colors":
		var colors []string
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				colors = append(colors, s)
			}
		}
		if len(colors) > MaxStops {
			colors = colors[:MaxStops]
		}
		if len(colors) >= MinStops {
			c.Colors = colors
		}
	case "angle":
		c.Angle = ParseFloat(raw)
	case "posx":
		c.PosX = ParseFloat(raw)
	case "posy":
		c.PosY = ParseFloat(raw)
	case "scale":
		c.Scale = ParseFloat(raw)
	case "grain":
		c.Grain = ParseFloat(raw)
	case "isanimated", "animated":
		c.IsAnimated = ParseBool(raw)
	case "animationspeed":
		c.AnimationSpeed = ParseFloat(raw)
	case "seed":
		c.Seed = ParseFloat(raw)
	case "loopduration", "loop":
		c.LoopDuration = ParseFloat(raw)
	default:
		return errors.Wrapf(ErrUnknownKey, "gradient %q", key)
	}
	return nil
}
