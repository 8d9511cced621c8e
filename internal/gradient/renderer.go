package gradient

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/surface"
)

const bandRows = 16

// Renderer paints the pattern shader into a surface, one row band per worker.
// It holds no per-frame state.
type Renderer struct {
	Workers int
}

func NewRenderer() *Renderer {
	return &Renderer{Workers: runtime.GOMAXPROCS(0)}
}

// Render paints one frame at phase into dst, resizing dst to the config. A
// config that is not animated always renders phase 0.
func (r *Renderer) Render(dst *surface.Surface, c *config.Gradient, phase float64) {
	_ = r.RenderContext(context.Background(), dst, c, phase)
}

// RenderContext is Render with cancellation between row bands.
func (r *Renderer) RenderContext(ctx context.Context, dst *surface.Surface, c *config.Gradient, phase float64) error {
	dst.Resize(c.Width, c.Height)
	if dst.Empty() {
		return nil
	}
	if !c.Animated() {
		phase = 0
	}
	w, h := dst.Size()
	params := ParamsFrom(c)
	frame := params.At(phase)
	amp := GrainAmplitude(params.Grain)

	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for y0 := 0; y0 < h; y0 += bandRows {
		y1 := min(y0+bandRows, h)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				shadeRow(dst.Row(y), &frame, y, w, h, amp)
			}
			return nil
		})
	}
	return g.Wait()
}

// shadeRow fills one row. Row 0 is the top of the image; the shader's uv
// origin is bottom-left.
func shadeRow(row []uint8, f *Frame, y, w, h int, amp float64) {
	fy := float64(h-1-y) + 0.5
	v := fy / float64(h)
	for x := 0; x < w; x++ {
		fx := float64(x) + 0.5
		c := Dither(f.ColorAt(fx/float64(w), v), fx, fy, amp)
		r, g, b := c.Bytes()
		p := row[4*x : 4*x+4 : 4*x+4]
		p[0], p[1], p[2], p[3] = r, g, b, 255
	}
}
