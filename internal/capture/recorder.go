package capture

import (
	"image"
	"image/draw"
	"math"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/phase"
)

type RecordMode int

const (
	// Manual records until Stop.
	Manual RecordMode = iota
	// Loop records exactly one loop period, then stops itself.
	Loop
)

func (m RecordMode) String() string {
	if m == Loop {
		return "loop"
	}
	return "motion"
}

// Result describes a finished recording.
type Result struct {
	Path     string
	Mode     RecordMode
	Frames   int
	Duration time.Duration
}

// FrameCount is the number of frames covering one loop at fps, never 0.
func FrameCount(loop time.Duration, fps int) int {
	return max(1, int(math.Round(loop.Seconds()*float64(fps))))
}

// Recorder is the IDLE -> RECORDING(manual|loop) -> IDLE state machine. The
// render loop offers every frame; the recorder keeps those that fall on its
// own frame clock. It is not safe for concurrent use.
type Recorder struct {
	clock  phase.Clock
	format Format
	dir    string

	recording bool
	mode      RecordMode
	sink      Sink
	path      string
	start     time.Time
	loop      time.Duration
	frames    int
	limit     int
	last      *image.RGBA
}

func NewRecorder(clock phase.Clock, format Format, dir string) *Recorder {
	return &Recorder{clock: clock, format: format, dir: dir}
}

func (r *Recorder) Format() Format { return r.format }

func (r *Recorder) Recording() bool { return r.recording }

func (r *Recorder) Mode() RecordMode { return r.mode }

// Elapsed is the time since Start, 0 when idle.
func (r *Recorder) Elapsed() time.Duration {
	if !r.recording {
		return 0
	}
	return r.clock.Now().Sub(r.start)
}

func (r *Recorder) ElapsedSeconds() int {
	return int(r.Elapsed() / time.Second)
}

// Start opens a sink and enters the recording state. A loop recording needs a
// positive loop duration.
func (r *Recorder) Start(tool string, mode RecordMode, loop time.Duration, width, height int) error {
	if r.recording {
		return errors.WithStack(ErrBusy)
	}
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid frame size %dx%d", width, height)
	}
	if mode == Loop && loop <= 0 {
		return errors.Errorf("invalid loop duration %v", loop)
	}
	now := r.clock.Now()
	path := filepath.Join(r.dir, Filename(tool, mode.String(), now, r.format.Ext))
	sink, err := r.format.Open(path, width, height, r.format.FPS)
	if err != nil {
		return errors.Wrapf(err, "open %s", r.format.MIME)
	}

	r.recording = true
	r.mode = mode
	r.sink = sink
	r.path = path
	r.start = now
	r.loop = loop
	r.frames = 0
	r.limit = 0
	if mode == Loop {
		r.limit = FrameCount(loop, r.format.FPS)
	}
	return nil
}

// Offer hands the current frame to the recorder. It returns a Result when a
// loop recording completed on this call. A slow render loop gets the current
// frame repeated into every slot that came due since the last call, so the
// clip keeps wall-clock time.
func (r *Recorder) Offer(img *image.RGBA) (*Result, error) {
	if !r.recording {
		return nil, nil
	}
	elapsed := r.clock.Now().Sub(r.start)
	if r.mode == Loop && elapsed >= r.loop {
		return r.finish(elapsed)
	}
	interval := time.Second / time.Duration(r.format.FPS)
	for r.due(elapsed, interval) {
		if err := r.write(img); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (r *Recorder) due(elapsed, interval time.Duration) bool {
	if r.limit > 0 && r.frames >= r.limit {
		return false
	}
	return elapsed >= time.Duration(r.frames)*interval-interval/2
}

// write sends one frame to the sink. Loop recordings keep a copy of the last
// frame for padding. A failed write cancels the recording.
func (r *Recorder) write(img *image.RGBA) error {
	if err := r.sink.WriteFrame(img); err != nil {
		r.Cancel()
		return errors.Wrap(err, "record frame")
	}
	r.frames++
	if r.mode == Loop && img != r.last {
		if r.last == nil || r.last.Rect.Size() != img.Rect.Size() {
			r.last = image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
		}
		draw.Draw(r.last, r.last.Rect, img, img.Rect.Min, draw.Src)
	}
	return nil
}

// Stop ends a manual recording. Loop recordings ignore it and end on their
// own after one period.
func (r *Recorder) Stop() (*Result, error) {
	if !r.recording {
		return nil, errors.WithStack(ErrNotRecording)
	}
	if r.mode == Loop {
		return nil, errors.Wrap(ErrBusy, "loop recording stops itself")
	}
	return r.finish(r.clock.Now().Sub(r.start))
}

// Cancel discards the recording in progress. It is a no-op when idle.
func (r *Recorder) Cancel() {
	if !r.recording {
		return
	}
	sink := r.sink
	r.reset()
	sink.Abort()
}

func (r *Recorder) finish(elapsed time.Duration) (*Result, error) {
	// the frame that triggers the stop is already past the wrap, so a loop
	// short of frames is padded with the last one inside the period
	for r.mode == Loop && r.last != nil && r.frames < r.limit {
		if err := r.write(r.last); err != nil {
			return nil, err
		}
	}
	res := &Result{Path: r.path, Mode: r.mode, Frames: r.frames, Duration: elapsed}
	if r.mode == Loop {
		res.Duration = r.loop
	}
	sink := r.sink
	r.reset()
	if err := sink.Close(); err != nil {
		return nil, errors.Wrapf(err, "finalize %s", res.Path)
	}
	return res, nil
}

func (r *Recorder) reset() {
	r.recording = false
	r.sink = nil
	r.path = ""
	r.frames = 0
	r.limit = 0
	r.last = nil
}
