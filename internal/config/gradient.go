package config

import (
	"slices"
	"strings"
	"time"
)

// GradientType selects the pattern field evaluator.
type GradientType int

const (
	Linear GradientType = iota
	Radial
	Conic
	Mesh
	Stripes
	Waves
	Aurora
)

var gradientTypeNames = [...]string{"LINEAR", "RADIAL", "CONIC", "MESH", "STRIPES", "WAVES", "AURORA"}

func (t GradientType) String() string {
	if t < 0 || int(t) >= len(gradientTypeNames) {
		return "UNKNOWN"
	}
	return gradientTypeNames[t]
}

func ParseGradientType(s string) (GradientType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range gradientTypeNames {
		if name == s {
			return GradientType(i), true
		}
	}
	return Linear, false
}

// GradientTypes lists every pattern in cycling order.
func GradientTypes() []GradientType {
	types := make([]GradientType, len(gradientTypeNames))
	for i := range types {
		types[i] = GradientType(i)
	}
	return types
}

// Gradient configures the pattern shader.
type Gradient struct {
	Mode   Mode
	Type   GradientType
	Width  int
	Height int

	Colors []string
	Angle  float64 // degrees
	PosX   float64 // percent, 0 at the left edge
	PosY   float64 // percent, 0 at the top edge
	Scale  float64
	Grain  float64

	IsAnimated     bool
	AnimationSpeed float64
	Seed           float64
	LoopDuration   float64 // seconds
}

func DefaultGradient(seed float64) Gradient {
	return Gradient{
		Mode:           ModeMotion,
		Type:           Mesh,
		Width:          1920,
		Height:         1080,
		Colors:         []string{"#3b82f6", "#8b5cf6", "#ec4899", "#f97316"},
		Angle:          45,
		PosX:           50,
		PosY:           50,
		Scale:          1,
		Grain:          0.15,
		IsAnimated:     true,
		AnimationSpeed: 1,
		Seed:           seed,
		LoopDuration:   DefaultLoopSeconds,
	}
}

func (c *Gradient) Loop() time.Duration {
	return loopDuration(c.LoopDuration)
}

func (c *Gradient) Animated() bool {
	return c.Mode == ModeMotion && c.IsAnimated
}

// Clone returns a copy that shares no slice storage with c.
func (c Gradient) Clone() Gradient {
	c.Colors = slices.Clone(c.Colors)
	return c
}

// AddStop appends a white stop. It is a no-op at MaxStops.
func (c *Gradient) AddStop() bool {
	if len(c.Colors) >= MaxStops {
		return false
	}
	c.Colors = append(slices.Clone(c.Colors), NewStopColor)
	return true
}

// RemoveStop drops stop i. It is a no-op at MinStops or for a bad index.
func (c *Gradient) RemoveStop(i int) bool {
	if len(c.Colors) <= MinStops || i < 0 || i >= len(c.Colors) {
		return false
	}
	c.Colors = slices.Delete(slices.Clone(c.Colors), i, i+1)
	return true
}

// StopColors returns the stop list clamped to [MinStops, MaxStops]. Extra
// entries are dropped and a short list is padded by repeating its last colour
// (white when empty).
func (c *Gradient) StopColors() []string {
	stops := c.Colors
	if len(stops) > MaxStops {
		stops = stops[:MaxStops]
	}
	out := slices.Clone(stops)
	for len(out) < MinStops {
		pad := NewStopColor
		if len(out) > 0 {
			pad = out[len(out)-1]
		}
		out = append(out, pad)
	}
	return out
}

// GradientPatch is a partial Gradient update. Nil fields are left alone.
type GradientPatch struct {
	Colors []string `json:"colors,omitempty"`
	Type   *string  `json:"type,omitempty"`
	Angle  *float64 `json:"angle,omitempty"`
}

func (p GradientPatch) Validate() error {
	if p.Colors != nil && len(p.Colors) < MinStops {
		return errTooFewStops
	}
	for _, s := range p.Colors {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	if p.Type != nil {
		if _, ok := ParseGradientType(*p.Type); !ok {
			return errUnknownType(*p.Type)
		}
	}
	return nil
}

// Apply returns c with p merged in. c itself is not modified; colours past
// MaxStops are dropped.
func (p GradientPatch) Apply(c Gradient) Gradient {
	c = c.Clone()
	if p.Colors != nil {
		colors := p.Colors
		if len(colors) > MaxStops {
			colors = colors[:MaxStops]
		}
		c.Colors = slices.Clone(colors)
	}
	if p.Type != nil {
		if t, ok := ParseGradientType(*p.Type); ok {
			c.Type = t
		}
	}
	if p.Angle != nil {
		c.Angle = *p.Angle
	}
	return c
}
