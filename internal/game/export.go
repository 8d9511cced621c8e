package game

import (
	"context"
	"image"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/capture"
	"github.com/iburimskiy/loopvis/internal/cue"
	"github.com/iburimskiy/loopvis/internal/phase"
	"github.com/iburimskiy/loopvis/internal/surface"
)

// Export renders the selected tool without opening a window: a still at
// phase 0, or one exact loop in the first supported format. It returns the
// written path.
func Export(ctx context.Context, opts Options, still bool) (string, error) {
	if opts.Clock == nil {
		opts.Clock = phase.SystemClock{}
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	var g generator = newStellarGen(opts.Clock, opts.Stellar, opts.Seed)
	if opts.Tool == "gradient" {
		g = newGradientGen(opts.Clock, opts.Gradient)
	}
	if err := ensureDir(opts.OutDir); err != nil {
		return "", err
	}
	now := opts.Clock.Now()

	if still {
		surf := surface.New(0, 0)
		g.Render(surf, 0)
		if surf.Empty() {
			return "", errors.New("nothing to export at zero size")
		}
		path := capture.StillPath(opts.OutDir, g.Tool(), now)
		return path, capture.SaveStill(path, surf.Image())
	}

	prefs := opts.Formats
	if len(prefs) == 0 {
		prefs = capture.DefaultPreference
	}
	format, err := capture.Choose(prefs)
	if err != nil {
		return "", err
	}
	w, h := g.Size()
	render := g.Offline()
	surf := surface.New(w, h)
	path := capture.Filename(g.Tool(), "loop", now, format.Ext)
	res, err := capture.ExportLoop(ctx, format, filepath.Join(opts.OutDir, path), g.Loop(), w, h, func(ph float64) *image.RGBA {
		render(surf, ph)
		return surf.Image()
	})
	if err != nil {
		return "", err
	}
	if opts.SyncTrack {
		if err := cue.WriteSyncTrack(syncTrackPath(res.Path), res.Duration, syncCycles); err != nil {
			return res.Path, err
		}
	}
	return res.Path, nil
}
