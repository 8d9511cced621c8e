package capture

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/pkg/errors"
	"github.com/setanarut/apng"
	xdraw "golang.org/x/image/draw"
)

// Animated image fallbacks hold every frame until Close, so they record at a
// lower rate and width than the video formats.
const (
	animFrameDelay = 4 // hundredths of a second
	animFPS        = 100 / animFrameDelay
	maxAnimWidth   = 960
)

var errNoFrames = errors.New("no frames recorded")

// checkSize rejects frames that do not match the size the sink was opened
// with, as the video sink does.
func checkSize(img *image.RGBA, size image.Point) error {
	if img.Rect.Size() != size {
		return errors.Errorf("frame size %v, recording %v", img.Rect.Size(), size)
	}
	return nil
}

// shrink returns a copy of img at most maxAnimWidth wide.
func shrink(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxAnimWidth {
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(out, out.Rect, img, b.Min, draw.Src)
		return out
	}
	h = max(1, h*maxAnimWidth/w)
	out := image.NewRGBA(image.Rect(0, 0, maxAnimWidth, h))
	xdraw.ApproxBiLinear.Scale(out, out.Rect, img, b, xdraw.Src, nil)
	return out
}

type apngSink struct {
	path   string
	size   image.Point
	frames []image.Image
}

func openAPNG(path string, w, h, _ int) (Sink, error) {
	return &apngSink{path: path, size: image.Pt(w, h)}, nil
}

func (s *apngSink) WriteFrame(img *image.RGBA) error {
	if err := checkSize(img, s.size); err != nil {
		return err
	}
	s.frames = append(s.frames, shrink(img))
	return nil
}

func (s *apngSink) Close() error {
	if len(s.frames) == 0 {
		return errNoFrames
	}
	apng.Save(s.path, s.frames, animFrameDelay)
	s.frames = nil
	if _, err := os.Stat(s.path); err != nil {
		return errors.Wrap(err, "apng not written")
	}
	return nil
}

func (s *apngSink) Abort() {
	s.frames = nil
}

type gifSink struct {
	path   string
	size   image.Point
	frames []*image.Paletted
}

func openGIF(path string, w, h, _ int) (Sink, error) {
	return &gifSink{path: path, size: image.Pt(w, h)}, nil
}

func (s *gifSink) WriteFrame(img *image.RGBA) error {
	if err := checkSize(img, s.size); err != nil {
		return err
	}
	src := shrink(img)
	p := image.NewPaletted(src.Rect, palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Rect, src, image.Point{})
	s.frames = append(s.frames, p)
	return nil
}

func (s *gifSink) Close() error {
	if len(s.frames) == 0 {
		return errNoFrames
	}
	delays := make([]int, len(s.frames))
	for i := range delays {
		delays[i] = animFrameDelay
	}
	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrap(err, "create gif")
	}
	err = gif.EncodeAll(f, &gif.GIF{Image: s.frames, Delay: delays})
	s.frames = nil
	if err != nil {
		f.Close()
		return errors.Wrap(err, "encode gif")
	}
	return errors.Wrap(f.Close(), "close gif")
}

func (s *gifSink) Abort() {
	s.frames = nil
}
