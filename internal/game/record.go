package game

import (
	"image"
	"path/filepath"

	"github.com/faiface/beep"
	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/cue"
	"github.com/iburimskiy/loopvis/internal/logx"
	"github.com/iburimskiy/loopvis/internal/surface"
)

// saveStill writes the current frame next to the other exports.
func (a *App) saveStill() {
	if a.surf.Empty() {
		return
	}
	if err := ensureDir(a.opts.OutDir); err != nil {
		a.fail(err)
		return
	}
	path := capture.StillPath(a.opts.OutDir, a.active.Tool(), a.clock.Now())
	if err := capture.SaveStill(path, a.surf.Image()); err != nil {
		a.fail(err)
		return
	}
	a.say("saved " + path)
}

// saveStillAs asks for a path off the render loop and saves a snapshot there.
func (a *App) saveStillAs() {
	if a.surf.Empty() {
		return
	}
	img := a.surf.Snapshot()
	name := filepath.Base(capture.StillPath("", a.active.Tool(), a.clock.Now()))
	go func() {
		path, err := saveDialog(name)
		if err != nil {
			a.jobs <- jobDone{err: errors.Wrap(err, "save dialog")}
			return
		}
		if path == "" {
			return
		}
		if err := capture.SaveStill(path, img); err != nil {
			a.jobs <- jobDone{err: err}
			return
		}
		a.jobs <- jobDone{msg: "saved " + path}
	}()
}

func (a *App) copyStill() {
	if a.surf.Empty() {
		return
	}
	if err := capture.CopyStill(a.surf.Image()); err != nil {
		if errors.Cause(err) == capture.ErrUnsupported {
			a.notices.Notify("Clipboard is not available on this system.")
		}
		a.fail(err)
		return
	}
	a.say("copied still to clipboard")
}

// canRecord reports, once per distinct reason, why recording cannot start.
func (a *App) canRecord() bool {
	switch {
	case a.rec == nil:
		a.notices.Notify("Recording is not supported here: " + a.formatErr.Error())
		return false
	case a.active.Mode() != config.ModeMotion:
		a.say("switch to motion mode (V) to record")
		return false
	}
	return true
}

// toggleManual starts a manual recording, or stops the one running.
func (a *App) toggleManual() {
	if !a.canRecord() {
		return
	}
	if a.rec.Recording() {
		res, err := a.rec.Stop()
		if err != nil {
			if errors.Cause(err) == capture.ErrBusy {
				a.say("loop recording stops on its own")
				return
			}
			a.fail(err)
			return
		}
		a.finished(res)
		return
	}
	a.startRecording(capture.Manual)
}

func (a *App) startLoop() {
	if !a.canRecord() {
		return
	}
	if a.rec.Recording() {
		a.say("already recording")
		return
	}
	a.startRecording(capture.Loop)
}

func (a *App) startRecording(mode capture.RecordMode) {
	if err := ensureDir(a.opts.OutDir); err != nil {
		a.fail(err)
		return
	}
	w, h := a.active.Size()
	if err := a.rec.Start(a.active.Tool(), mode, a.active.Loop(), w, h); err != nil {
		a.fail(err)
		return
	}
	logx.Info.Printf("recording %s %s", a.active.Tool(), mode)
	a.playCue(cue.StartCue())
}

// finished reports a completed recording and writes its sync track.
func (a *App) finished(res *capture.Result) {
	a.playCue(cue.StopCue())
	a.say("saved " + res.Path)
	if res.Mode != capture.Loop || !a.opts.SyncTrack {
		return
	}
	path := syncTrackPath(res.Path)
	if err := cue.WriteSyncTrack(path, res.Duration, syncCycles); err != nil {
		a.fail(err)
		return
	}
	logx.Info.Printf("sync track %s", path)
}

func (a *App) playCue(s beep.Streamer) {
	if err := a.cues.Play(s); err != nil && errors.Cause(err) != cue.ErrNoAudio {
		logx.Error.Printf("cue: %v", err)
	}
}

// exportLoop renders one exact loop at phases k/N on a goroutine.
func (a *App) exportLoop() {
	switch {
	case a.rec == nil:
		a.notices.Notify("Recording is not supported here: " + a.formatErr.Error())
		return
	case a.exporting:
		a.say("export already running")
		return
	}
	if err := ensureDir(a.opts.OutDir); err != nil {
		a.fail(err)
		return
	}
	g := a.active
	render := g.Offline()
	w, h := g.Size()
	loop := g.Loop()
	format := a.format
	path := a.outPath(capture.Filename(g.Tool(), "loop", a.clock.Now(), format.Ext))
	withSync := a.opts.SyncTrack
	ctx := a.ctx

	a.exporting = true
	a.say("exporting " + filepath.Base(path))
	go func() {
		surf := surface.New(w, h)
		res, err := capture.ExportLoop(ctx, format, path, loop, w, h, func(ph float64) *image.RGBA {
			render(surf, ph)
			return surf.Image()
		})
		if err == nil && withSync {
			err = cue.WriteSyncTrack(syncTrackPath(res.Path), loop, syncCycles)
		}
		if err != nil {
			a.jobs <- jobDone{err: err, export: true}
			return
		}
		a.jobs <- jobDone{msg: "exported " + res.Path, export: true}
	}()
}
