// Implements a raster backend to render SVG shapes,
// by wrapping rasterx.
// Shapes are first rasterized into a coverage Mask, which
// is then painted on a Layer and composited on the canvas.
package svgraster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// coverage at or above this level is a covered pixel
const coverageThreshold = 128

// maxStrokeArea bounds the product of a stroked segment length by the
// stroke width (in pixels), so that the stroker normals fit in 26.6
// fixed point.
const maxStrokeArea = 1 << 19

// Mask is the coverage of one shape: a pixel is either
// fully covered or not covered at all.
type Mask struct {
	Alpha *image.Alpha
	Rect  image.Rectangle // the covered pixels are inside Rect
}

// Empty returns true if no pixel is covered.
func (m Mask) Empty() bool { return m.Rect.Empty() }

// Covers returns true if the pixel (x, y) is covered.
func (m Mask) Covers(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return false
	}
	return m.Alpha.Pix[m.Alpha.PixOffset(x, y)] != 0
}

// Renderer computes the coverage of basic shapes, using
// the rasterx scanner.
// The returned Masks share the same buffer: they are only valid until
// the next call. A Renderer is not safe for concurrent use.
type Renderer struct {
	mask    *image.Alpha
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	stroker *rasterx.Stroker
	last    image.Rectangle // area written by the previous call
}

// NewRenderer returns a renderer for a width x height canvas.
func NewRenderer(width, height int) *Renderer {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, mask, mask.Bounds())
	scanner.SetColor(color.Opaque)
	return &Renderer{
		mask:    mask,
		scanner: scanner,
		filler:  rasterx.NewFiller(width, height, scanner),
		stroker: rasterx.NewStroker(width, height, scanner),
	}
}

// Bounds returns the size of the canvas.
func (rd *Renderer) Bounds() image.Rectangle { return rd.mask.Bounds() }

// reset clears the previous mask and the accumulated path
func (rd *Renderer) reset() {
	if !rd.last.Empty() {
		draw.Draw(rd.mask, rd.last, image.Transparent, image.Point{}, draw.Src)
		rd.last = image.Rectangle{}
	}
	rd.filler.Clear()
}

// flush draws the accumulated path and returns its
// binarized coverage.
func (rd *Renderer) flush() Mask {
	ext := rd.scanner.GetPathExtent()
	if ext.Min.X > ext.Max.X || ext.Min.Y > ext.Max.Y { // nothing added
		return Mask{Alpha: rd.mask}
	}
	rd.scanner.Draw()
	rect := image.Rectangle{
		Min: image.Point{X: ext.Min.X.Floor(), Y: ext.Min.Y.Floor()},
		Max: image.Point{X: ext.Max.X.Ceil() + 1, Y: ext.Max.Y.Ceil() + 1},
	}.Intersect(rd.mask.Bounds())
	rd.last = rect
	binarize(rd.mask, rect)
	return Mask{Alpha: rd.mask, Rect: rect}
}

// binarize maps the coverage in rect to 0 or 0xff
func binarize(m *image.Alpha, rect image.Rectangle) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := m.Pix[m.PixOffset(rect.Min.X, y):m.PixOffset(rect.Max.X, y)]
		for i, a := range row {
			if a >= coverageThreshold {
				row[i] = 0xff
			} else {
				row[i] = 0
			}
		}
	}
}

// Ellipse returns the coverage of the filled axis-aligned ellipse.
// A non positive radius covers nothing.
func (rd *Renderer) Ellipse(cx, cy, rx, ry float64) Mask {
	rd.reset()
	if rx <= 0 || ry <= 0 {
		return Mask{Alpha: rd.mask}
	}
	rasterx.AddEllipse(cx, cy, rx, ry, 0, rd.filler)
	return rd.flush()
}

// Rect returns the coverage of the filled rectangle [minX, maxX) x [minY, maxY).
// An empty rectangle covers nothing.
func (rd *Renderer) Rect(minX, minY, maxX, maxY float64) Mask {
	rd.reset()
	if maxX <= minX || maxY <= minY {
		return Mask{Alpha: rd.mask}
	}
	// only the part over the canvas matters
	b := rd.mask.Bounds()
	minX, minY = math.Max(minX, float64(b.Min.X-1)), math.Max(minY, float64(b.Min.Y-1))
	maxX, maxY = math.Min(maxX, float64(b.Max.X+1)), math.Min(maxY, float64(b.Max.Y+1))
	if maxX <= minX || maxY <= minY {
		return Mask{Alpha: rd.mask}
	}
	rasterx.AddRect(minX, minY, maxX, maxY, 0, rd.filler)
	return rd.flush()
}

// clipRect is a floating point rectangle
type clipRect struct {
	min, max f64.Vec2
}

// strokeClip returns the canvas bounds, enlarged so that strokes
// of the given width starting outside can't reach the canvas.
func strokeClip(bounds image.Rectangle, width int) clipRect {
	m := float64(width)/2 + 2
	return clipRect{
		min: f64.Vec2{float64(bounds.Min.X) - m, float64(bounds.Min.Y) - m},
		max: f64.Vec2{float64(bounds.Max.X) + m, float64(bounds.Max.Y) + m},
	}
}

func (r clipRect) contains(p f64.Vec2) bool {
	return r.min[0] <= p[0] && p[0] <= r.max[0] && r.min[1] <= p[1] && p[1] <= r.max[1]
}

// clip returns the part of the segment [a, b] inside r (Liang-Barsky),
// and whether each end has been moved.
func (r clipRect) clip(a, b f64.Vec2) (ca, cb f64.Vec2, movedA, movedB, ok bool) {
	d := f64.Vec2{b[0] - a[0], b[1] - a[1]}
	t0, t1 := 0., 1.
	for _, e := range [4][2]float64{
		{-d[0], a[0] - r.min[0]},
		{d[0], r.max[0] - a[0]},
		{-d[1], a[1] - r.min[1]},
		{d[1], r.max[1] - a[1]},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return ca, cb, false, false, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return ca, cb, false, false, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return ca, cb, false, false, false
			}
			t1 = math.Min(t1, t)
		}
	}
	ca, cb = a, b
	if t0 > 0 {
		ca = f64.Vec2{a[0] + t0*d[0], a[1] + t0*d[1]}
	}
	if t1 < 1 {
		cb = f64.Vec2{a[0] + t1*d[0], a[1] + t1*d[1]}
	}
	return ca, cb, t0 > 0, t1 < 1, true
}

// toFloat returns the center of the pixel line for odd widths,
// so that the stroke covers whole pixels.
func toFloat(p image.Point, width int) f64.Vec2 {
	x, y := float64(p.X), float64(p.Y)
	if width%2 == 1 {
		x, y = x+0.5, y+0.5
	}
	return f64.Vec2{x, y}
}

func toFixed(p f64.Vec2) fixed.Point26_6 { return rasterx.ToFixedP(p[0], p[1]) }

// polylineStroke feeds the stroker, splitting long segments
type polylineStroke struct {
	stroker  *rasterx.Stroker
	maxPiece float64
	started  bool
	last     f64.Vec2
}

func (ps *polylineStroke) start(p f64.Vec2) {
	ps.stroker.Start(toFixed(p))
	ps.started, ps.last = true, p
}

func (ps *polylineStroke) line(p f64.Vec2) {
	n := math.Ceil(math.Hypot(p[0]-ps.last[0], p[1]-ps.last[1]) / ps.maxPiece)
	for i := 1.; i < n; i++ {
		t := i / n
		ps.stroker.Line(toFixed(f64.Vec2{ps.last[0] + t*(p[0]-ps.last[0]), ps.last[1] + t*(p[1]-ps.last[1])}))
	}
	ps.stroker.Line(toFixed(p))
	ps.last = p
}

func (ps *polylineStroke) stop(closed bool) {
	if ps.started {
		ps.stroker.Stop(closed)
	}
	ps.started = false
}

// Polyline returns the coverage of the segments joining `pts`,
// stroked with the given width (in pixels) and rounded joins.
// If closed is true, the last point is joined to the first.
// Less than two points cover nothing.
// Segments are clipped to the neighborhood of the canvas.
func (rd *Renderer) Polyline(pts []image.Point, width int, closed bool) Mask {
	rd.reset()
	if len(pts) < 2 || width <= 0 {
		return Mask{Alpha: rd.mask}
	}
	rd.stroker.SetStroke(fixed.I(width), 4<<6, rasterx.ButtCap, nil, rasterx.RoundGap, rasterx.Round)
	ps := polylineStroke{stroker: rd.stroker, maxPiece: math.Max(1, maxStrokeArea/float64(width))}

	clip := strokeClip(rd.mask.Bounds(), width)
	fp := make([]f64.Vec2, len(pts))
	outside := -1
	for i, p := range pts {
		fp[i] = toFloat(p, width)
		if outside == -1 && !clip.contains(fp[i]) {
			outside = i
		}
	}

	if outside == -1 { // no clipping needed
		ps.start(fp[0])
		for _, p := range fp[1:] {
			ps.line(p)
		}
		ps.stop(closed)
		return rd.flush()
	}

	if closed {
		// start and end on a point outside, so that
		// the joins of the visible vertices are kept
		fp = append(append(fp[outside:len(fp):len(fp)], fp[:outside]...), fp[outside])
	}
	for i := 1; i < len(fp); i++ {
		a, b, movedA, movedB, ok := clip.clip(fp[i-1], fp[i])
		if !ok {
			ps.stop(false)
			continue
		}
		if movedA || !ps.started {
			ps.stop(false)
			ps.start(a)
		}
		ps.line(b)
		if movedB {
			ps.stop(false)
		}
	}
	ps.stop(false)
	return rd.flush()
}
