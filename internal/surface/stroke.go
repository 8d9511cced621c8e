package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// StrokeLine draws an antialiased round-capped segment from (x0,y0) to
// (x1,y1). alpha scales c's own alpha.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64) {
	if s.Empty() || width <= 0 || alpha <= 0 {
		return
	}
	r := width / 2
	w, h := s.Size()

	// Anything further than r outside the surface cannot touch a pixel.
	var ok bool
	x0, y0, x1, y1, ok = clipSegment(x0, y0, x1, y1, -r, -r, float64(w)+r, float64(h)+r)
	if !ok {
		return
	}

	// The mask only covers the visible part; the rasterizer accumulates
	// coverage from outside its bounds into the edge columns.
	minX := max(int(math.Floor(math.Min(x0, x1)-r))-1, 0)
	minY := max(int(math.Floor(math.Min(y0, y1)-r))-1, 0)
	maxX := min(int(math.Ceil(math.Max(x0, x1)+r))+1, w)
	maxY := min(int(math.Ceil(math.Max(y0, y1)+r))+1, h)
	bw, bh := maxX-minX, maxY-minY
	if bw <= 0 || bh <= 0 {
		return
	}

	mask := s.maskFor(bw, bh)
	s.ras.Reset(bw, bh)
	s.ras.DrawOp = draw.Src
	ox, oy := float64(minX), float64(minY)
	capsule(s.ras, x0-ox, y0-oy, x1-ox, y1-oy, r)
	s.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	s.compositeMask(image.Point{minX, minY}, c, alpha)
}

// Glow approximates a blurred shadow of the stroke with stacked translucent
// halos reaching blur pixels past the stroke edge.
func (s *Surface) Glow(x0, y0, x1, y1, width, blur float64, c color.NRGBA, alpha float64) {
	if blur <= 0 {
		return
	}
	const layers = 3
	for i := layers; i >= 1; i-- {
		spread := blur * float64(i) / layers
		s.StrokeLine(x0, y0, x1, y1, width+2*spread, c, alpha*0.18)
	}
}

type pather interface {
	MoveTo(ax, ay float32)
	LineTo(bx, by float32)
	CubeTo(bx, by, cx, cy, dx, dy float32)
	ClosePath()
}

// capsule adds the outline of a round-capped segment of radius r.
func capsule(p pather, x0, y0, x1, y1, r float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	var ux, uy float64
	if l < 1e-9 {
		ux, uy = 1, 0
	} else {
		ux, uy = dx/l, dy/l
	}
	nx, ny := -uy, ux

	p.MoveTo(f32(x0+nx*r), f32(y0+ny*r))
	p.LineTo(f32(x1+nx*r), f32(y1+ny*r))
	quarter(p, x1, y1, nx, ny, ux, uy, r)
	quarter(p, x1, y1, ux, uy, -nx, -ny, r)
	p.LineTo(f32(x0-nx*r), f32(y0-ny*r))
	quarter(p, x0, y0, -nx, -ny, -ux, -uy, r)
	quarter(p, x0, y0, -ux, -uy, nx, ny, r)
	p.ClosePath()
}

// quarter continues a path from c+a*r to c+b*r along the circle around c.
// a and b must be orthonormal.
func quarter(p pather, cx, cy, ax, ay, bx, by, r float64) {
	px, py := cx+ax*r, cy+ay*r
	qx, qy := cx+bx*r, cy+by*r
	k := kappa * r
	p.CubeTo(
		f32(px+bx*k), f32(py+by*k),
		f32(qx+ax*k), f32(qy+ay*k),
		f32(qx), f32(qy),
	)
}

// clipSegment is Liang-Barsky against [xmin,xmax]x[ymin,ymax].
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func f32(v float64) float32 { return float32(v) }
