// Package surface is the resizable RGBA pixel surface both generators paint
// into and the capture adapter reads from.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

type Surface struct {
	img *image.RGBA

	// stroke scratch, reused across calls
	ras  *vector.Rasterizer
	mask *image.Alpha
	src  *image.Uniform
}

func New(width, height int) *Surface {
	s := &Surface{
		img: image.NewRGBA(image.Rectangle{}),
		ras: vector.NewRasterizer(0, 0),
		src: image.NewUniform(color.Transparent),
	}
	s.Resize(width, height)
	return s
}

// Resize reallocates the pixel buffer when the size changes. Non-positive
// sizes leave an empty surface that every draw call ignores. Reports whether
// the size changed.
func (s *Surface) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	w, h := s.Size()
	if w == width && h == height {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Empty() bool {
	return len(s.img.Pix) == 0
}

// Image exposes the live buffer. Callers must not keep it across frames.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Snapshot copies the current frame.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Fill paints every pixel opaque c.
func (s *Surface) Fill(c color.Color) {
	if s.Empty() {
		return
	}
	n := color.RGBAModel.Convert(c).(color.RGBA)
	pix := s.img.Pix
	pix[0], pix[1], pix[2], pix[3] = n.R, n.G, n.B, 255
	// exponential copy
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// SetRGB writes one opaque pixel. Out of bounds writes are dropped.
func (s *Surface) SetRGB(x, y int, r, g, b uint8) {
	if !(image.Point{x, y}.In(s.img.Rect)) {
		return
	}
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, b, 255
}

// Row returns the pixel bytes of row y.
func (s *Surface) Row(y int) []uint8 {
	w, _ := s.Size()
	i := s.img.PixOffset(0, y)
	return s.img.Pix[i : i+4*w]
}

func (s *Surface) maskFor(w, h int) *image.Alpha {
	if s.mask == nil || cap(s.mask.Pix) < w*h {
		s.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return s.mask
	}
	s.mask.Pix = s.mask.Pix[:w*h]
	s.mask.Stride = w
	s.mask.Rect = image.Rect(0, 0, w, h)
	return s.mask
}

// compositeMask draws c at alpha through the scratch mask placed at origin.
func (s *Surface) compositeMask(origin image.Point, c color.NRGBA, alpha float64) {
	c.A = uint8(float64(c.A)*alpha + 0.5)
	if c.A == 0 {
		return
	}
	s.src.C = c
	r := s.mask.Rect.Add(origin)
	draw.DrawMask(s.img, r, s.src, image.Point{}, s.mask, image.Point{}, draw.Over)
}
