package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/config"
)

const lineHeight = 16

var recRed = color.RGBA{R: 239, G: 68, B: 68, A: 255}

const (
	commonHelp   = "Tab tool  V mode  Space pause  A loop  R reseed  S still  C copy  M rec  L loop rec  E export  G suggest  H hide  Q quit"
	stellarHelp  = "P preset"
	gradientHelp = "T pattern  Up/Down stops  X palette"
)

// hudLines is the status block drawn in the top-left corner.
func (a *App) hudLines() []string {
	g := a.active
	state := fmt.Sprintf("%s | phase %.3f | loop %s", g.Mode(), a.ph, g.Loop())
	if g.Paused() {
		state += " | PAUSED"
	}
	if g.Mode() == config.ModeMotion && !g.Animated() {
		state += " | static"
	}
	lines := []string{g.Status(), state}

	switch {
	case a.suggesting():
		lines = append(lines, "asking for a theme...")
	case a.theme != "":
		lines = append(lines, "theme: "+a.theme)
	}
	if a.flash != "" && a.clock.Now().Before(a.flashUntil) {
		lines = append(lines, a.flash)
	}
	if a.lastErr != nil {
		lines = append(lines, "Error: "+a.lastErr.Error())
	}
	return lines
}

// recLabel is the recording indicator text, empty when idle.
func (a *App) recLabel() string {
	switch {
	case a.recording() && a.rec.Mode() == capture.Loop:
		return "LOOP SYNCING " + formatDuration(a.rec.Elapsed())
	case a.recording():
		return "REC " + formatDuration(a.rec.Elapsed())
	case a.exporting:
		return "EXPORTING"
	}
	return ""
}

func (a *App) drawHUD(screen *ebiten.Image) {
	for i, line := range a.hudLines() {
		ebitenutil.DebugPrintAt(screen, line, 12, 12+i*lineHeight)
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if label := a.recLabel(); label != "" {
		x := w - 12 - 7*len(label)
		vector.DrawFilledCircle(screen, float32(x-12), 20, 5, recRed, true)
		ebitenutil.DebugPrintAt(screen, label, x, 12)
	}

	help := stellarHelp
	if a.active == generator(a.gradient) {
		help = gradientHelp
	}
	ebitenutil.DebugPrintAt(screen, help, 12, h-12-2*lineHeight)
	ebitenutil.DebugPrintAt(screen, commonHelp, 12, h-12-lineHeight)
}
