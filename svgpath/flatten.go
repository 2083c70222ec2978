package svgpath

import (
	"image"
	"math"
)

// DefaultSamples is the number of points sampled
// on each cubic Bezier curve.
const DefaultSamples = 1001

// Polyline is the flattened form of a Path.
type Polyline struct {
	Points []image.Point
	Closed bool // the last point is the start of the subpath
}

// add appends p, unless it repeats the last point
func (pl *Polyline) add(p image.Point) {
	if n := len(pl.Points); n != 0 && pl.Points[n-1] == p {
		return
	}
	pl.Points = append(pl.Points, p)
}

// Flattener converts paths to polylines, approximating
// curves with straight segments.
type Flattener struct {
	// Samples is the number of points evaluated on each curve,
	// including its end points. Values below 2 use DefaultSamples.
	Samples int
}

func (f Flattener) samples() int {
	if f.Samples < 2 {
		return DefaultSamples
	}
	return f.Samples
}

// Flatten interprets the commands of `p`, starting with the cursor
// at the origin.
// The first move only positions the cursor and records the start
// of the subpath; the following ones draw a straight segment.
// A Close command draws a segment back to the start and ends
// the interpretation.
func (f Flattener) Flatten(p Path) Polyline {
	var (
		out           Polyline
		cursor, start image.Point
		started       bool
	)
	for _, cmd := range p {
		switch cmd := cmd.(type) {
		case MoveTo:
			to := cmd.To
			if cmd.Relative {
				to = to.Add(cursor)
			}
			if !started {
				started = true
				start = to
			}
			out.add(to)
			cursor = to
		case CurveTo:
			c1, c2, to := cmd.C1, cmd.C2, cmd.To
			if cmd.Relative {
				c1, c2, to = c1.Add(cursor), c2.Add(cursor), to.Add(cursor)
			}
			if !started {
				started = true
				start = cursor
			}
			f.cubic(&out, cursor, c1, c2, to)
			cursor = to
		case Close:
			if !started {
				return out
			}
			out.add(start)
			out.Closed = true
			return out
		}
	}
	return out
}

// cubic samples the Bezier curve p0, p1, p2, p3 into `out`
func (f Flattener) cubic(out *Polyline, p0, p1, p2, p3 image.Point) {
	n := f.samples()
	for i := 0; i < n; i++ {
		u := float64(i) / float64(n-1)
		out.add(image.Point{
			X: bezier(u, p0.X, p1.X, p2.X, p3.X),
			Y: bezier(u, p0.Y, p1.Y, p2.Y, p3.Y),
		})
	}
}

// bezier evaluates the cubic Bernstein blend at u,
// rounded to the nearest integer.
func bezier(u float64, a, b, c, d int) int {
	v := 1 - u
	r := v*v*v*float64(a) + 3*u*v*v*float64(b) + 3*u*u*v*float64(c) + u*u*u*float64(d)
	return int(math.Round(r))
}
