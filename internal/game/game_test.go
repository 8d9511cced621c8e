package game

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/logx"
	"github.com/iburimskiy/loopvis/internal/phase"
	"github.com/iburimskiy/loopvis/internal/suggest"
	"github.com/iburimskiy/loopvis/internal/surface"
)

func testApp(t *testing.T) (*App, *phase.ManualClock) {
	t.Helper()
	logx.Quiet()
	clock := phase.NewManualClock(time.Unix(1000, 0))
	st := config.DefaultStellar()
	st.Width, st.Height, st.StarCount = 64, 36, 50
	gr := config.DefaultGradient(0.5)
	gr.Width, gr.Height = 32, 18
	a := New(Options{
		Stellar:  st,
		Gradient: gr,
		Seed:     7,
		OutDir:   t.TempDir(),
		Formats:  []string{"image/gif"},
		Mute:     true,
		Clock:    clock,
	})
	a.notices.show = func(string) error { return nil }
	t.Cleanup(a.Close)
	return a, clock
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                              "00:00",
		59 * time.Second:               "00:59",
		61 * time.Second:               "01:01",
		12*time.Minute + 5*time.Second: "12:05",
	}
	for d, want := range cases {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v): Expected %s, got %s", d, want, got)
		}
	}
}

func TestHSVToHex(t *testing.T) {
	cases := []struct {
		h, s, v float64
		want    string
	}{
		{0, 1, 1, "#ff0000"},
		{120, 1, 1, "#00ff00"},
		{240, 1, 1, "#0000ff"},
		{-120, 1, 1, "#0000ff"},
		{0, 0, 1, "#ffffff"},
		{0, 0, 0, "#000000"},
	}
	for _, c := range cases {
		if got := hsvToHex(c.h, c.s, c.v); got != c.want {
			t.Errorf("hsvToHex(%v, %v, %v): Expected %s, got %s", c.h, c.s, c.v, c.want, got)
		}
	}
}

func TestRandomPaletteParses(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := config.MinStops; n <= config.MaxStops; n++ {
		p := randomPalette(rng, n)
		if len(p) != n {
			t.Fatalf("Expected %d colours, got %d", n, len(p))
		}
		for _, c := range p {
			if _, err := config.ParseColor(c); err != nil {
				t.Errorf("palette colour %q does not parse: %v", c, err)
			}
		}
	}
}

func TestSyncTrackPath(t *testing.T) {
	if got := syncTrackPath("out/stellar-loop-1.webm"); got != "out/stellar-loop-1.wav" {
		t.Errorf("Expected out/stellar-loop-1.wav, got %s", got)
	}
}

func TestNotifierShowsOnce(t *testing.T) {
	logx.Quiet()
	shown := make(chan string, 4)
	n := newNotifier()
	n.show = func(msg string) error {
		shown <- msg
		return nil
	}
	if !n.Notify("no encoder") {
		t.Error("Expected first notice shown")
	}
	if n.Notify("no encoder") {
		t.Error("Expected repeated notice suppressed")
	}
	select {
	case msg := <-shown:
		if msg != "no encoder" {
			t.Errorf("unexpected notice %q", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected notice dialog")
	}
	select {
	case msg := <-shown:
		t.Errorf("Expected one dialog, also got %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOfflineRendererIsIndependent(t *testing.T) {
	a, _ := testApp(t)
	render := a.stellar.Offline()
	before := surface.New(0, 0)
	render(before, 0.3)

	a.stellar.cfg.BgColor = "#ff0000"
	a.stellar.Reseed(99)
	after := surface.New(0, 0)
	render(after, 0.3)

	if !reflect.DeepEqual(before.Image().Pix, after.Image().Pix) {
		t.Error("Expected offline renderer unaffected by later edits")
	}
}

func TestOfflineGradientHoldsStillFrame(t *testing.T) {
	a, _ := testApp(t)
	a.gradient.cfg.Type = config.Waves
	a.gradient.cfg.IsAnimated = false
	render := a.gradient.Offline()
	first, later := surface.New(0, 0), surface.New(0, 0)
	render(first, 0)
	render(later, 0.5)
	if !reflect.DeepEqual(first.Image().Pix, later.Image().Pix) {
		t.Error("Expected a loop export of a static gradient to repeat one frame")
	}
}

func TestNextPresetKeepsFrame(t *testing.T) {
	a, _ := testApp(t)
	a.stellar.cfg.LoopDuration = 6
	name := a.stellar.NextPreset()
	if name != "WARP" || a.stellar.cfg.SpeedZ != 80 {
		t.Errorf("Expected WARP preset, got %s %+v", name, a.stellar.cfg)
	}
	if a.stellar.cfg.Width != 64 || a.stellar.cfg.LoopDuration != 6 {
		t.Error("Expected size and loop kept across presets")
	}
}

func TestNextTypeCycles(t *testing.T) {
	a, _ := testApp(t)
	start := a.gradient.cfg.Type
	for range config.GradientTypes() {
		a.gradient.NextType()
	}
	if a.gradient.cfg.Type != start {
		t.Errorf("Expected full cycle back to %s, got %s", start, a.gradient.cfg.Type)
	}
}

func TestFailedSuggestionKeepsConfig(t *testing.T) {
	a, _ := testApp(t)
	before := a.stellar.cfg
	a.applyStellar(suggest.Outcome[suggest.StellarSuggestion]{Err: errors.Wrap(suggest.ErrUnavailable, "offline")})
	if !reflect.DeepEqual(before, a.stellar.cfg) {
		t.Error("Expected config unchanged")
	}
	if errors.Cause(a.lastErr) != suggest.ErrUnavailable {
		t.Errorf("Expected ErrUnavailable shown, got %v", a.lastErr)
	}
	if a.theme != "" {
		t.Errorf("Expected no theme, got %q", a.theme)
	}
}

func TestGradientSuggestionApplied(t *testing.T) {
	a, _ := testApp(t)
	typ := "LINEAR"
	a.applyGradient(suggest.Outcome[suggest.GradientSuggestion]{Value: suggest.GradientSuggestion{
		ThemeName:     "Natural Dusk",
		GradientPatch: config.GradientPatch{Colors: []string{"#000000", "#ffffff"}, Type: &typ},
	}})
	if a.gradient.cfg.Type != config.Linear || len(a.gradient.cfg.Colors) != 2 || a.theme != "Natural Dusk" {
		t.Errorf("unexpected gradient after suggestion: %+v", a.gradient.cfg)
	}
}

func TestRecordingLabels(t *testing.T) {
	a, clock := testApp(t)
	if a.rec == nil {
		t.Fatal("Expected gif recording available")
	}
	if a.recLabel() != "" {
		t.Error("Expected no label when idle")
	}

	a.startLoop()
	clock.Advance(2 * time.Second)
	if got := a.recLabel(); got != "LOOP SYNCING 00:02" {
		t.Errorf("Expected LOOP SYNCING 00:02, got %q", got)
	}
	a.toggleManual()
	if !a.recording() {
		t.Error("Expected loop recording to ignore the manual toggle")
	}
	a.cancelRecording()

	a.toggleManual()
	clock.Advance(65 * time.Second)
	if got := a.recLabel(); got != "REC 01:05" {
		t.Errorf("Expected REC 01:05, got %q", got)
	}
	a.switchTool()
	if errors.Cause(a.lastErr) != capture.ErrBusy || a.active != generator(a.stellar) {
		t.Error("Expected tool switch refused while recording")
	}
	a.cancelRecording()
}

func TestStillModeRefusesRecording(t *testing.T) {
	a, _ := testApp(t)
	a.stellar.SetMode(config.ModeStill)
	a.startLoop()
	if a.recording() {
		t.Error("Expected no recording in still mode")
	}
	if !strings.Contains(a.flash, "motion") {
		t.Errorf("Expected hint about motion mode, got %q", a.flash)
	}
}

func TestSaveStillWritesPNG(t *testing.T) {
	a, _ := testApp(t)
	a.stellar.Render(a.surf, 0)
	a.saveStill()
	if a.lastErr != nil {
		t.Fatal(a.lastErr)
	}
	if !strings.HasPrefix(a.flash, "saved ") || !strings.HasSuffix(a.flash, "stellar-still-1000000.png") {
		t.Errorf("unexpected flash %q", a.flash)
	}
}

func TestExportStill(t *testing.T) {
	logx.Quiet()
	dir := t.TempDir()
	gr := config.DefaultGradient(0.2)
	gr.Width, gr.Height = 16, 9
	path, err := Export(context.Background(), Options{
		Tool:     "gradient",
		Gradient: gr,
		OutDir:   dir,
		Clock:    phase.NewManualClock(time.Unix(1000, 0)),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "gradient-still-1000000.png"); path != want {
		t.Errorf("Expected %s, got %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}

func TestExportLoopGIF(t *testing.T) {
	logx.Quiet()
	dir := t.TempDir()
	st := config.DefaultStellar()
	st.Width, st.Height, st.StarCount = 32, 18, 40
	st.LoopDuration = 0.2
	path, err := Export(context.Background(), Options{
		Stellar:   st,
		Seed:      3,
		OutDir:    dir,
		Formats:   []string{"image/gif"},
		SyncTrack: true,
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".gif" {
		t.Errorf("Expected a gif, got %s", path)
	}
	for _, p := range []string{path, syncTrackPath(path)} {
		if _, err := os.Stat(p); err != nil {
			t.Error(err)
		}
	}
}
