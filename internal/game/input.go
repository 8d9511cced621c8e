package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/config"
)

func (a *App) handleInput() error {
	pressed := inpututil.IsKeyJustPressed
	if pressed(ebiten.KeyEscape) || pressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case pressed(ebiten.KeyTab):
		a.switchTool()
	case pressed(ebiten.KeyV):
		a.toggleMode()
	case pressed(ebiten.KeySpace):
		a.active.TogglePause()
	case pressed(ebiten.KeyA):
		a.active.ToggleAnimated()
	case pressed(ebiten.KeyR):
		a.active.Reseed(a.rng.Uint64())
	case pressed(ebiten.KeyH):
		a.hideHUD = !a.hideHUD
	case pressed(ebiten.KeyS) && shift:
		a.saveStillAs()
	case pressed(ebiten.KeyS):
		a.saveStill()
	case pressed(ebiten.KeyC):
		a.copyStill()
	case pressed(ebiten.KeyM):
		a.toggleManual()
	case pressed(ebiten.KeyL):
		a.startLoop()
	case pressed(ebiten.KeyBackspace):
		a.cancelRecording()
	case pressed(ebiten.KeyE):
		a.exportLoop()
	case pressed(ebiten.KeyG):
		a.requestSuggestion()
	default:
		a.handleToolKeys(pressed)
	}
	return nil
}

// handleToolKeys covers the controls that only one tool has.
func (a *App) handleToolKeys(pressed func(ebiten.Key) bool) {
	switch g := a.active.(type) {
	case *stellarGen:
		if pressed(ebiten.KeyP) {
			a.say("preset " + g.NextPreset())
		}
	case *gradientGen:
		switch {
		case pressed(ebiten.KeyT):
			a.say("pattern " + g.NextType().String())
		case pressed(ebiten.KeyUp):
			if !g.cfg.AddStop() {
				a.say("at most 5 stops")
			}
		case pressed(ebiten.KeyDown):
			if !g.cfg.RemoveStop(len(g.cfg.Colors) - 1) {
				a.say("at least 2 stops")
			}
		case pressed(ebiten.KeyX):
			g.cfg.Colors = randomPalette(a.rng, len(g.cfg.StopColors()))
		}
	}
}

func (a *App) recording() bool {
	return a.rec != nil && a.rec.Recording()
}

func (a *App) switchTool() {
	if a.recording() {
		a.fail(errors.Wrap(capture.ErrBusy, "stop recording before switching tools"))
		return
	}
	if a.active == generator(a.stellar) {
		a.active = a.gradient
	} else {
		a.active = a.stellar
	}
	a.theme = ""
}

func (a *App) toggleMode() {
	if a.recording() {
		a.fail(errors.Wrap(capture.ErrBusy, "stop recording before changing mode"))
		return
	}
	g := a.active
	if g.Mode() == config.ModeStill {
		g.SetMode(config.ModeMotion)
		g.Driver().Reset()
	} else {
		g.SetMode(config.ModeStill)
	}
	a.say("mode " + g.Mode().String())
}

func (a *App) cancelRecording() {
	if !a.recording() {
		return
	}
	a.rec.Cancel()
	a.say("recording discarded")
}
