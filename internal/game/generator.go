package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/gradient"
	"github.com/iburimskiy/loopvis/internal/phase"
	"github.com/iburimskiy/loopvis/internal/stellar"
	"github.com/iburimskiy/loopvis/internal/surface"
)

// renderFunc paints the frame at phase.
type renderFunc func(dst *surface.Surface, phase float64)

// generator adapts one tool's config and renderer to the preview loop.
type generator interface {
	Tool() string
	Driver() *phase.Driver
	Mode() config.Mode
	SetMode(config.Mode)
	Size() (int, int)
	Loop() time.Duration
	Animated() bool
	ToggleAnimated()
	Paused() bool
	TogglePause()
	Reseed(seed uint64)
	Render(dst *surface.Surface, phase float64)
	// Offline returns a renderer over a copy of the current config, safe to
	// run on another goroutine.
	Offline() renderFunc
	Status() string
}

type stellarGen struct {
	driver *phase.Driver
	cfg    config.Stellar
	r      *stellar.Renderer
	preset int
}

func newStellarGen(clock phase.Clock, cfg config.Stellar, seed uint64) *stellarGen {
	return &stellarGen{
		driver: phase.NewDriver(clock),
		cfg:    cfg,
		r:      stellar.NewRenderer(seed),
	}
}

func (g *stellarGen) Tool() string { return "stellar" }
func (g *stellarGen) Driver() *phase.Driver { return g.driver }
func (g *stellarGen) Mode() config.Mode { return g.cfg.Mode }
func (g *stellarGen) SetMode(m config.Mode) { g.cfg.Mode = m }
func (g *stellarGen) Size() (int, int) { return g.cfg.Width, g.cfg.Height }
func (g *stellarGen) Loop() time.Duration { return g.cfg.Loop() }
func (g *stellarGen) Animated() bool { return g.cfg.Animated() }
func (g *stellarGen) ToggleAnimated() { g.cfg.IsLooping = !g.cfg.IsLooping }
func (g *stellarGen) Paused() bool { return g.cfg.IsPaused }
func (g *stellarGen) TogglePause() { g.cfg.IsPaused = !g.cfg.IsPaused }
func (g *stellarGen) Reseed(seed uint64) { g.r.Reseed(seed) }
func (g *stellarGen) Render(dst *surface.Surface, ph float64) { g.r.Render(dst, &g.cfg, ph) }

func (g *stellarGen) Offline() renderFunc {
	cfg := g.cfg
	r := stellar.NewRenderer(g.r.Seed())
	return func(dst *surface.Surface, ph float64) {
		r.Render(dst, &cfg, ph)
	}
}

// NextPreset swaps in the next preset, keeping mode, size and loop length.
func (g *stellarGen) NextPreset() string {
	names := config.StellarPresetNames()
	g.preset = (g.preset + 1) % len(names)
	next, _ := config.StellarPreset(names[g.preset])
	next.Mode = g.cfg.Mode
	next.Width, next.Height = g.cfg.Width, g.cfg.Height
	next.LoopDuration = g.cfg.LoopDuration
	next.IsPaused = g.cfg.IsPaused
	g.cfg = next
	return names[g.preset]
}

func (g *stellarGen) Status() string {
	return fmt.Sprintf("STELLAR %s | %d stars | speed %.0f | trail %.0f",
		config.StellarPresetNames()[g.preset], g.cfg.StarCount, g.cfg.SpeedZ, g.cfg.TrailLength)
}

type gradientGen struct {
	driver *phase.Driver
	cfg    config.Gradient
	r      *gradient.Renderer
	paused bool
}

func newGradientGen(clock phase.Clock, cfg config.Gradient) *gradientGen {
	return &gradientGen{
		driver: phase.NewDriver(clock),
		cfg:    cfg.Clone(),
		r:      gradient.NewRenderer(),
	}
}

func (g *gradientGen) Tool() string { return "gradient" }
func (g *gradientGen) Driver() *phase.Driver { return g.driver }
func (g *gradientGen) Mode() config.Mode { return g.cfg.Mode }
func (g *gradientGen) SetMode(m config.Mode) { g.cfg.Mode = m }
func (g *gradientGen) Size() (int, int) { return g.cfg.Width, g.cfg.Height }
func (g *gradientGen) Loop() time.Duration { return g.cfg.Loop() }
func (g *gradientGen) Animated() bool { return g.cfg.Animated() }
func (g *gradientGen) ToggleAnimated() { g.cfg.IsAnimated = !g.cfg.IsAnimated }
func (g *gradientGen) Paused() bool { return g.paused }
func (g *gradientGen) TogglePause() { g.paused = !g.paused }

// Reseed moves the mesh blob orbits.
func (g *gradientGen) Reseed(seed uint64) {
	g.cfg.Seed = float64(seed%10000) / 10000
}

func (g *gradientGen) Render(dst *surface.Surface, ph float64) {
	g.r.Render(dst, &g.cfg, ph)
}

func (g *gradientGen) Offline() renderFunc {
	cfg := g.cfg.Clone()
	r := &gradient.Renderer{Workers: g.r.Workers}
	return func(dst *surface.Surface, ph float64) {
		r.Render(dst, &cfg, ph)
	}
}

func (g *gradientGen) NextType() config.GradientType {
	types := config.GradientTypes()
	g.cfg.Type = types[(int(g.cfg.Type)+1)%len(types)]
	return g.cfg.Type
}

func (g *gradientGen) Status() string {
	return fmt.Sprintf("GRADIENT %s | %d stops | angle %.0f | grain %.2f",
		g.cfg.Type, len(g.cfg.StopColors()), g.cfg.Angle, g.cfg.Grain)
}
