// Package game is the ebiten preview window: it drives the phase, renders the
// active generator, feeds the recorder and draws the HUD.
package game

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/cue"
	"github.com/iburimskiy/loopvis/internal/logx"
	"github.com/iburimskiy/loopvis/internal/phase"
	"github.com/iburimskiy/loopvis/internal/suggest"
	"github.com/iburimskiy/loopvis/internal/surface"
)

const (
	suggestTimeout = 30 * time.Second
	flashFor       = 4 * time.Second
	syncCycles     = 8
)

type Options struct {
	Tool     string
	Stellar  config.Stellar
	Gradient config.Gradient
	Seed     uint64

	OutDir    string
	Formats   []string
	SyncTrack bool
	Mute      bool

	// Nil services disable suggestions.
	StellarService  suggest.StellarService
	GradientService suggest.GradientService

	Clock phase.Clock
}

// jobDone carries the outcome of work run off the render loop.
type jobDone struct {
	msg    string
	err    error
	export bool
}

type App struct {
	opts  Options
	clock phase.Clock
	rng   *rand.Rand

	stellar  *stellarGen
	gradient *gradientGen
	active   generator

	surf *surface.Surface
	tex  *ebiten.Image
	ph   float64

	format    capture.Format
	formatErr error
	rec       *capture.Recorder
	exporting bool

	cues    *cue.Player
	notices *notifier

	stellarReq  *suggest.Pending[suggest.StellarSuggestion]
	gradientReq *suggest.Pending[suggest.GradientSuggestion]
	theme       string

	jobs   chan jobDone
	ctx    context.Context
	cancel context.CancelFunc

	hideHUD    bool
	flash      string
	flashUntil time.Time
	lastErr    error
}

func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = phase.SystemClock{}
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if len(opts.Formats) == 0 {
		opts.Formats = capture.DefaultPreference
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(opts.Clock.Now().UnixNano())
	}

	a := &App{
		opts:        opts,
		clock:       opts.Clock,
		rng:         rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1)),
		surf:        surface.New(0, 0),
		cues:        &cue.Player{Muted: opts.Mute},
		notices:     newNotifier(),
		stellarReq:  suggest.NewPending[suggest.StellarSuggestion](),
		gradientReq: suggest.NewPending[suggest.GradientSuggestion](),
		jobs:        make(chan jobDone, 4),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.stellar = newStellarGen(a.clock, opts.Stellar, opts.Seed)
	a.gradient = newGradientGen(a.clock, opts.Gradient)
	a.active = a.stellar
	if opts.Tool == a.gradient.Tool() {
		a.active = a.gradient
	}

	a.format, a.formatErr = capture.Choose(opts.Formats)
	if a.formatErr != nil {
		logx.Error.Printf("recording disabled: %v", a.formatErr)
	} else {
		logx.Info.Printf("recording as %s", a.format.MIME)
		a.rec = capture.NewRecorder(a.clock, a.format, opts.OutDir)
	}
	return a
}

// Close stops everything still running. Safe to call more than once.
func (a *App) Close() {
	a.cancel()
	a.stellarReq.Close()
	a.gradientReq.Close()
	if a.rec != nil {
		a.rec.Cancel()
	}
	a.cues.Silence()
}

func (a *App) Update() error {
	if err := a.handleInput(); err != nil {
		a.Close()
		return err
	}
	a.collect()

	g := a.active
	d := g.Driver()
	d.SetPaused(g.Paused())
	a.ph = d.Phase(g.Loop(), g.Animated())
	g.Render(a.surf, a.ph)

	if a.rec != nil && a.rec.Recording() {
		res, err := a.rec.Offer(a.surf.Image())
		if err != nil {
			a.fail(err)
		}
		if res != nil {
			a.finished(res)
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.upload() {
		a.drawFitted(screen)
	}
	if !a.hideHUD {
		a.drawHUD(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// upload copies the surface into the preview texture.
func (a *App) upload() bool {
	w, h := a.surf.Size()
	if w == 0 || h == 0 {
		return false
	}
	if a.tex != nil {
		if b := a.tex.Bounds(); b.Dx() != w || b.Dy() != h {
			a.tex.Deallocate()
			a.tex = nil
		}
	}
	if a.tex == nil {
		a.tex = ebiten.NewImage(w, h)
	}
	a.tex.WritePixels(a.surf.Image().Pix)
	return true
}

// drawFitted letterboxes the frame into the window.
func (a *App) drawFitted(screen *ebiten.Image) {
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	fw, fh := float64(a.tex.Bounds().Dx()), float64(a.tex.Bounds().Dy())
	scale := min(sw/fw, sh/fh)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((sw-fw*scale)/2, (sh-fh*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(a.tex, op)
}

// collect applies results that arrived from background work.
func (a *App) collect() {
	for drained := false; !drained; {
		select {
		case j := <-a.jobs:
			if j.export {
				a.exporting = false
			}
			if j.err != nil {
				a.fail(j.err)
			} else if j.msg != "" {
				a.say(j.msg)
			}
		default:
			drained = true
		}
	}

	if out, ok := a.stellarReq.Poll(); ok {
		a.applyStellar(out)
	}
	if out, ok := a.gradientReq.Poll(); ok {
		a.applyGradient(out)
	}
}

func (a *App) applyStellar(out suggest.Outcome[suggest.StellarSuggestion]) {
	if out.Err != nil {
		a.fail(errors.Wrap(out.Err, "suggestion"))
		return
	}
	cfg, err := suggest.ApplyStellar(a.stellar.cfg, out.Value)
	if err != nil {
		a.fail(errors.Wrap(err, "suggestion"))
		return
	}
	a.stellar.cfg = cfg
	a.stellar.Reseed(a.rng.Uint64())
	a.theme = out.Value.ThemeName
	a.say("theme: " + a.theme)
}

func (a *App) applyGradient(out suggest.Outcome[suggest.GradientSuggestion]) {
	if out.Err != nil {
		a.fail(errors.Wrap(out.Err, "suggestion"))
		return
	}
	cfg, err := suggest.ApplyGradient(a.gradient.cfg, out.Value)
	if err != nil {
		a.fail(errors.Wrap(err, "suggestion"))
		return
	}
	a.gradient.cfg = cfg
	a.theme = out.Value.ThemeName
	a.say("theme: " + a.theme)
}

func (a *App) suggesting() bool {
	return a.stellarReq.Loading() || a.gradientReq.Loading()
}

func (a *App) requestSuggestion() {
	switch g := a.active.(type) {
	case *stellarGen:
		svc := a.opts.StellarService
		if svc == nil {
			a.notices.Notify(suggest.ErrUnavailable.Error() + ": set GEMINI_API_KEY")
			return
		}
		cfg := g.cfg
		a.stellarReq.Start(suggestTimeout, func(ctx context.Context) (suggest.StellarSuggestion, error) {
			return svc.SuggestStellar(ctx, cfg)
		})
	case *gradientGen:
		svc := a.opts.GradientService
		if svc == nil {
			a.notices.Notify(suggest.ErrUnavailable.Error() + ": set GEMINI_API_KEY")
			return
		}
		cfg := g.cfg.Clone()
		a.gradientReq.Start(suggestTimeout, func(ctx context.Context) (suggest.GradientSuggestion, error) {
			return svc.SuggestGradient(ctx, cfg)
		})
	}
}

// say shows a transient HUD line.
func (a *App) say(msg string) {
	logx.Info.Println(msg)
	a.flash = msg
	a.flashUntil = a.clock.Now().Add(flashFor)
}

func (a *App) fail(err error) {
	logx.Error.Println(err)
	a.lastErr = err
}

func (a *App) outPath(name string) string {
	return filepath.Join(a.opts.OutDir, name)
}

func ensureDir(dir string) error {
	return errors.Wrap(os.MkdirAll(dir, 0o755), "output directory")
}

func syncTrackPath(video string) string {
	return strings.TrimSuffix(video, filepath.Ext(video)) + ".wav"
}
