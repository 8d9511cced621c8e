package gradient

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/phase"
	"github.com/iburimskiy/loopvis/internal/surface"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

func testConfig(typ config.GradientType) config.Gradient {
	c := config.DefaultGradient(0.37)
	c.Type = typ
	c.Width, c.Height = 64, 36
	return c
}

func maxDiff(a, b vmath.Vec3) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

func TestInterpolate(t *testing.T) {
	black, white := vmath.Vec3{0, 0, 0}, vmath.Vec3{1, 1, 1}
	s := Stops{black, white, black}

	if got := s.Interpolate(0.5, BlendSmooth); got != white {
		t.Errorf("Expected middle stop at 0.5, got %v", got)
	}
	if got := s.Interpolate(-1, BlendSmooth); got != black {
		t.Errorf("Expected first stop below 0, got %v", got)
	}
	if got := s.Interpolate(2, BlendLinear); got != black {
		t.Errorf("Expected last stop above 1, got %v", got)
	}

	two := Stops{black, white}
	if got := two.Interpolate(0.25, BlendLinear)[0]; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Expected linear 0.25, got %v", got)
	}
	if got := two.Interpolate(0.25, BlendSmooth)[0]; math.Abs(got-0.15625) > 1e-12 {
		t.Errorf("Expected smoothstep 0.15625, got %v", got)
	}
}

func TestLinearBlackToWhite(t *testing.T) {
	c := testConfig(config.Linear)
	c.Colors = []string{"#000000", "#ffffff"}
	c.Angle = 0
	p := ParamsFrom(&c)

	if got := ColorAt(0, 0.5, 0, &p); got != (vmath.Vec3{}) {
		t.Errorf("Expected black at the left edge, got %v", got)
	}
	if got := ColorAt(1, 0.5, 0, &p); got != (vmath.Vec3{1, 1, 1}) {
		t.Errorf("Expected white at the right edge, got %v", got)
	}
}

func TestEveryPatternLoopsSeamlessly(t *testing.T) {
	loops := []time.Duration{time.Second, 4 * time.Second, 7500 * time.Millisecond}
	for _, typ := range config.GradientTypes() {
		c := testConfig(typ)
		p := ParamsFrom(&c)
		for _, d := range loops {
			start := p.At(phase.Phase(0, d))
			end := p.At(phase.Phase(d-time.Nanosecond, d))
			for i := 0; i < 7; i++ {
				for j := 0; j < 5; j++ {
					u, v := (float64(i)+0.37)/7, (float64(j)+0.61)/5
					if diff := maxDiff(start.ColorAt(u, v), end.ColorAt(u, v)); diff > 1e-6 {
						t.Errorf("%s loop %v: seam diff %g at (%.3f, %.3f)", typ, d, diff, u, v)
					}
				}
			}
		}
	}
}

func TestStripesShiftByWholeStops(t *testing.T) {
	c := testConfig(config.Stripes)
	p := ParamsFrom(&c)
	a, b := p.At(0.3), p.At(1.3)
	for i := 0; i < 20; i++ {
		u, v := (float64(i)+0.41)/20, 0.53
		if a.StripeIndex(u, v) != b.StripeIndex(u, v) {
			t.Errorf("Expected stripe index to repeat one cycle later at u=%.3f", u)
		}
		if idx := a.StripeIndex(u, v); idx < 0 || idx >= len(p.Stops) {
			t.Errorf("stripe index %d out of range", idx)
		}
	}
}

func TestStopCountClampedForShading(t *testing.T) {
	c := testConfig(config.Waves)
	c.Colors = []string{"#ff0000"}
	if got := len(ParamsFrom(&c).Stops); got != config.MinStops {
		t.Errorf("Expected %d stops, got %d", config.MinStops, got)
	}
	c.Colors = []string{"#111", "#222", "#333", "#444", "#555", "#666", "#777"}
	if got := len(ParamsFrom(&c).Stops); got != config.MaxStops {
		t.Errorf("Expected %d stops, got %d", config.MaxStops, got)
	}
}

func TestValueNoiseRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		x, y := float64(i)*0.173-40, float64(i)*0.291-60
		if n := ValueNoise(x, y); n < 0 || n > 1 {
			t.Fatalf("noise out of range at (%g, %g): %g", x, y, n)
		}
	}
}

func TestValueNoiseLattice(t *testing.T) {
	n := 3.0 + 2*57
	if got, want := ValueNoise(3.5, 2), vmath.Lerp(hash1(n), hash1(n+1), 0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected lower row blend %g, got %g", want, got)
	}
	// near the top edge the upper row weight follows y, so x barely matters
	top := hash1(n + 58)
	for _, x := range []float64{3.1, 3.5, 3.9} {
		if got := ValueNoise(x, 2.999999); math.Abs(got-top) > 1e-6 {
			t.Errorf("x=%g: Expected %g near the upper corner, got %g", x, top, got)
		}
	}
}

func TestDitherBounded(t *testing.T) {
	c := vmath.Vec3{0.2, 0.5, 0.8}
	for _, grain := range []float64{0, 0.15, 0.5, 3} {
		amp := GrainAmplitude(grain)
		if amp > 1.0/255+config.MaxGrain*0.05+1e-12 {
			t.Errorf("grain %g: amplitude %g not clamped", grain, amp)
		}
		for x := 0; x < 50; x++ {
			d := Dither(c, float64(x)+0.5, 7.5, amp)
			if maxDiff(c, d) > amp/2 {
				t.Errorf("grain %g: dither moved colour by %g", grain, maxDiff(c, d))
			}
		}
	}
}

func TestRenderLinearEdges(t *testing.T) {
	c := testConfig(config.Linear)
	c.Colors = []string{"#000000", "#ffffff"}
	c.Angle = 0
	c.Grain = 0
	s := surface.New(0, 0)
	NewRenderer().Render(s, &c, 0)

	w, h := s.Size()
	if w != c.Width || h != c.Height {
		t.Fatalf("Expected %dx%d surface, got %dx%d", c.Width, c.Height, w, h)
	}
	img := s.Image()
	for y := 0; y < h; y++ {
		left := img.RGBAAt(0, y)
		right := img.RGBAAt(w-1, y)
		if left.R > 2 || left.A != 255 {
			t.Errorf("row %d: Expected near black on the left, got %v", y, left)
		}
		if right.R < 253 {
			t.Errorf("row %d: Expected near white on the right, got %v", y, right)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	for _, typ := range config.GradientTypes() {
		c := testConfig(typ)
		a, b := surface.New(0, 0), surface.New(0, 0)
		NewRenderer().Render(a, &c, 0.25)
		(&Renderer{Workers: 1}).Render(b, &c, 0.25)
		if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
			t.Errorf("%s: Expected identical frames across worker counts", typ)
		}
	}
}

func TestRenderPinsPhaseWhenNotAnimated(t *testing.T) {
	moving := testConfig(config.Mesh)
	a, b := surface.New(0, 0), surface.New(0, 0)
	NewRenderer().Render(a, &moving, 0)
	NewRenderer().Render(b, &moving, 0.25)
	if bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Fatal("Expected an animated mesh to change between phases")
	}

	off := testConfig(config.Mesh)
	off.IsAnimated = false
	still := testConfig(config.Mesh)
	still.Mode = config.ModeStill
	for _, c := range []config.Gradient{off, still} {
		NewRenderer().Render(b, &c, 0.25)
		if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
			t.Errorf("Expected phase 0 frame for mode=%v animated=%v", c.Mode, c.IsAnimated)
		}
	}
}

func TestRenderZeroSize(t *testing.T) {
	c := testConfig(config.Mesh)
	c.Width = 0
	s := surface.New(10, 10)
	NewRenderer().Render(s, &c, 0)
	if !s.Empty() {
		t.Error("Expected empty surface for zero width")
	}
}
