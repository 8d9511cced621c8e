package config

import (
	"strings"
	"time"
)

// Stellar configures the warp field generator.
type Stellar struct {
	Mode   Mode
	Width  int
	Height int

	StarCount   int
	SpeedZ      float64
	DriftX      float64
	DriftY      float64
	TrailLength float64
	MinSize     float64
	MaxSize     float64
	Randomness  float64
	Perspective float64
	SafeMargin  float64

	BgColor     string
	StarColor   string
	GlowColor   string
	GlowEnabled bool

	IsPaused     bool
	IsLooping    bool
	LoopDuration float64 // seconds
}

func DefaultStellar() Stellar {
	return Stellar{
		Mode:         ModeMotion,
		Width:        1920,
		Height:       1080,
		StarCount:    1500,
		SpeedZ:       45,
		DriftX:       0,
		DriftY:       0,
		TrailLength:  50,
		MinSize:      0.1,
		MaxSize:      3.5,
		Randomness:   0.75,
		Perspective:  800,
		SafeMargin:   20,
		BgColor:      "#020617",
		StarColor:    "#ffffff",
		GlowColor:    "#38bdf8",
		GlowEnabled:  true,
		IsPaused:     false,
		IsLooping:    true,
		LoopDuration: DefaultLoopSeconds,
	}
}

func (c *Stellar) Loop() time.Duration {
	return loopDuration(c.LoopDuration)
}

// Animated reports whether particles move along their loop.
func (c *Stellar) Animated() bool {
	return c.Mode == ModeMotion && c.IsLooping
}

var stellarPresets = map[string]func(*Stellar){
	"DEFAULT": func(*Stellar) {},
	"WARP": func(c *Stellar) {
		c.SpeedZ = 80
		c.TrailLength = 120
		c.StarCount = 2000
	},
	"HYPERSPACE": func(c *Stellar) {
		c.SpeedZ = 150
		c.TrailLength = 200
		c.DriftX = 5
		c.StarColor = "#e0f2fe"
		c.GlowColor = "#0ea5e9"
	},
	"NEBULA_DRIFT": func(c *Stellar) {
		c.SpeedZ = 10
		c.TrailLength = 30
		c.StarColor = "#fae8ff"
		c.GlowColor = "#d946ef"
		c.StarCount = 3000
	},
}

// StellarPresetNames lists the presets in display order.
func StellarPresetNames() []string {
	return []string{"DEFAULT", "WARP", "HYPERSPACE", "NEBULA_DRIFT"}
}

// StellarPreset returns the default config modified by the named preset.
func StellarPreset(name string) (Stellar, bool) {
	apply, ok := stellarPresets[strings.ToUpper(strings.TrimSpace(name))]
	c := DefaultStellar()
	if !ok {
		return c, false
	}
	apply(&c)
	return c, true
}

// StellarPatch is a partial Stellar update. Nil fields are left alone.
type StellarPatch struct {
	BgColor   *string  `json:"bgColor,omitempty"`
	StarColor *string  `json:"starColor,omitempty"`
	GlowColor *string  `json:"glowColor,omitempty"`
	SpeedZ    *float64 `json:"speedZ,omitempty"`
	StarCount *int     `json:"starCount,omitempty"`
	DriftX    *float64 `json:"driftX,omitempty"`
	DriftY    *float64 `json:"driftY,omitempty"`
}

// Validate rejects patches that would put the generator in a broken state.
func (p StellarPatch) Validate() error {
	for _, s := range []*string{p.BgColor, p.StarColor, p.GlowColor} {
		if s == nil {
			continue
		}
		if _, err := ParseColor(*s); err != nil {
			return err
		}
	}
	if p.StarCount != nil && *p.StarCount < 0 {
		return errNegative("starCount")
	}
	return nil
}

// Apply returns c with p merged in. c itself is not modified.
func (p StellarPatch) Apply(c Stellar) Stellar {
	if p.BgColor != nil {
		c.BgColor = *p.BgColor
	}
	if p.StarColor != nil {
		c.StarColor = *p.StarColor
	}
	if p.GlowColor != nil {
		c.GlowColor = *p.GlowColor
	}
	if p.SpeedZ != nil {
		c.SpeedZ = *p.SpeedZ
	}
	if p.StarCount != nil {
		c.StarCount = *p.StarCount
	}
	if p.DriftX != nil {
		c.DriftX = *p.DriftX
	}
	if p.DriftY != nil {
		c.DriftY = *p.DriftY
	}
	return c
}
