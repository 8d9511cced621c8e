package capture

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
)

// FrameFunc renders the frame at phase in [0,1).
type FrameFunc func(phase float64) *image.RGBA

// ExportLoop renders one loop offline at phases k/N and streams it to a new
// sink at path. Wall-clock jitter cannot drop or duplicate frames.
func ExportLoop(ctx context.Context, format Format, path string, loop time.Duration, width, height int, frame FrameFunc) (*Result, error) {
	if loop <= 0 {
		return nil, errors.Errorf("invalid loop duration %v", loop)
	}
	sink, err := format.Open(path, width, height, format.FPS)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", format.MIME)
	}
	n := FrameCount(loop, format.FPS)
	for k := 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			sink.Abort()
			return nil, err
		}
		if err := sink.WriteFrame(frame(float64(k) / float64(n))); err != nil {
			sink.Abort()
			return nil, errors.Wrapf(err, "export frame %d", k)
		}
	}
	if err := sink.Close(); err != nil {
		return nil, errors.Wrapf(err, "finalize %s", path)
	}
	return &Result{Path: path, Mode: Loop, Frames: n, Duration: loop}, nil
}
