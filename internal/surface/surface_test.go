package surface

import (
	"image"
	"image/color"
	"testing"
)

func TestFillAndResize(t *testing.T) {
	s := New(7, 5)
	s.Fill(color.RGBA{R: 2, G: 6, B: 23, A: 255})
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			if got := s.Image().RGBAAt(x, y); got != (color.RGBA{2, 6, 23, 255}) {
				t.Fatalf("pixel (%d,%d): expected fill colour, got %v", x, y, got)
			}
		}
	}
	if !s.Resize(3, 3) {
		t.Error("Expected resize to report a change")
	}
	if s.Resize(3, 3) {
		t.Error("Expected same-size resize to be a no-op")
	}
	s.Resize(0, 10)
	if !s.Empty() {
		t.Error("Expected zero width to leave an empty surface")
	}
	// drawing on an empty surface must not panic
	s.Fill(color.White)
	s.StrokeLine(0, 0, 10, 10, 3, color.NRGBA{255, 255, 255, 255}, 1)
}

func TestStrokeLineCoversSegment(t *testing.T) {
	s := New(40, 20)
	s.Fill(color.Black)
	s.StrokeLine(5, 10, 35, 10, 4, color.NRGBA{255, 255, 255, 255}, 1)

	if got := s.Image().RGBAAt(20, 10); got.R < 250 {
		t.Errorf("Expected centre of stroke to be white, got %v", got)
	}
	if got := s.Image().RGBAAt(20, 2); got.R != 0 {
		t.Errorf("Expected pixel far from stroke untouched, got %v", got)
	}
	// round cap reaches past the end point by the radius
	if got := s.Image().RGBAAt(36, 10); got.R == 0 {
		t.Errorf("Expected round cap past the end point, got %v", got)
	}
}

func TestStrokeLineAlpha(t *testing.T) {
	s := New(20, 20)
	s.Fill(color.Black)
	s.StrokeLine(2, 10, 18, 10, 6, color.NRGBA{255, 255, 255, 255}, 0.5)
	got := s.Image().RGBAAt(10, 10)
	if got.R < 120 || got.R > 135 {
		t.Errorf("Expected half-blended grey, got %v", got)
	}
}

func TestStrokeLineFarOffscreen(t *testing.T) {
	s := New(32, 32)
	s.Fill(color.Black)
	// projected trails can land hundreds of thousands of pixels away
	s.StrokeLine(-3e5, 16, 3e5, 16, 2, color.NRGBA{255, 0, 0, 255}, 1)
	if got := s.Image().RGBAAt(16, 16); got.R < 200 {
		t.Errorf("Expected clipped stroke to cross the surface, got %v", got)
	}
	s.StrokeLine(-5e5, -5e5, -4e5, -4e5, 2, color.NRGBA{0, 255, 0, 255}, 1)
	if got := s.Image().RGBAAt(0, 0); got.G != 0 {
		t.Errorf("Expected fully offscreen stroke to be dropped, got %v", got)
	}
}

func TestWideStrokeMaskStaysOnSurface(t *testing.T) {
	s := New(20, 10)
	s.Fill(color.Black)
	// a near particle whose stroke is far wider than the surface
	s.StrokeLine(-200, 5, 220, 5, 600, color.NRGBA{255, 255, 255, 255}, 1)
	if got := s.mask.Rect; got.Dx() > 20 || got.Dy() > 10 {
		t.Errorf("Expected mask clipped to 20x10, got %v", got)
	}
	for _, p := range []image.Point{{0, 0}, {19, 9}, {10, 5}} {
		if got := s.Image().RGBAAt(p.X, p.Y); got.R < 250 {
			t.Errorf("Expected full coverage at %v, got %v", p, got)
		}
	}

	// partially visible capsule: coverage to the left of the origin must
	// still fill the edge column
	s.Fill(color.Black)
	s.StrokeLine(-50, 5, 5, 5, 4, color.NRGBA{255, 255, 255, 255}, 1)
	if got := s.Image().RGBAAt(0, 5); got.R < 250 {
		t.Errorf("Expected clipped stroke to cover the left edge, got %v", got)
	}
	if got := s.Image().RGBAAt(12, 5); got.R != 0 {
		t.Errorf("Expected nothing past the cap, got %v", got)
	}
}

func TestGlowSpreadsPastStroke(t *testing.T) {
	s := New(40, 40)
	s.Fill(color.Black)
	s.Glow(10, 20, 30, 20, 2, 6, color.NRGBA{0, 0, 255, 255}, 1)
	if got := s.Image().RGBAAt(20, 24); got.B == 0 {
		t.Errorf("Expected glow halo below the stroke, got %v", got)
	}
	if got := s.Image().RGBAAt(20, 35); got.B != 0 {
		t.Errorf("Expected no glow beyond the blur radius, got %v", got)
	}
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, 5, 20, 5, 0, 0, 10, 10)
	if !ok || x0 != 0 || x1 != 10 || y0 != 5 || y1 != 5 {
		t.Errorf("Expected (0,5)-(10,5), got (%v,%v)-(%v,%v) ok=%v", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := clipSegment(-10, -10, -5, -1, 0, 0, 10, 10); ok {
		t.Error("Expected rejected segment")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New(4, 4)
	s.Fill(color.White)
	snap := s.Snapshot()
	s.Fill(color.Black)
	if snap.RGBAAt(1, 1).R != 255 {
		t.Error("Expected snapshot to keep the old frame")
	}
}
