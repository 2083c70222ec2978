package svgdraw

import (
	"image"

	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/benoitkugler/svgpng/svgpath"
	"github.com/benoitkugler/svgpng/svgraster"
	"github.com/pkg/errors"
)

// rasterizeFunc paints one shape on the context layer.
type rasterizeFunc func(c *Context, node svgicon.ShapeNode, st svgicon.Style) error

var drawFuncs = map[svgicon.Kind]rasterizeFunc{
	svgicon.Circle:   circleF,
	svgicon.Ellipse:  ellipseF,
	svgicon.Rect:     rectF,
	svgicon.Line:     lineF,
	svgicon.Polyline: polylineF,
	svgicon.Path:     pathF,
}

// paintFilled paints the outer mask with the stroke, then the
// inner mask with the fill, on top.
// Masks share the renderer buffer, so they are built one at a time.
func paintFilled(c *Context, st svgicon.Style, outer, inner func() svgraster.Mask) {
	c.layer.Paint(outer(), st.Stroke.NRGBA(st.Opacity))
	c.layer.Paint(inner(), st.Fill.NRGBA(st.Opacity))
}

// lineWidth is the width used for open strokes
func lineWidth(st svgicon.Style) int {
	if st.StrokeWidth < 1 {
		return 1
	}
	return st.StrokeWidth
}

func circleF(c *Context, node svgicon.ShapeNode, st svgicon.Style) error {
	v, err := node.Lengths(c.conv, "cx", "cy", "r")
	if err != nil {
		return err
	}
	return drawEllipse(c, st, v[0], v[1], v[2], v[2])
}

func ellipseF(c *Context, node svgicon.ShapeNode, st svgicon.Style) error {
	v, err := node.Lengths(c.conv, "cx", "cy", "rx", "ry")
	if err != nil {
		return err
	}
	return drawEllipse(c, st, v[0], v[1], v[2], v[3])
}

func drawEllipse(c *Context, st svgicon.Style, cx, cy, rx, ry int) error {
	h := st.StrokeWidth / 2
	x, y := float64(cx), float64(cy)
	paintFilled(c, st,
		func() svgraster.Mask { return c.raster.Ellipse(x, y, float64(rx+h), float64(ry+h)) },
		func() svgraster.Mask { return c.raster.Ellipse(x, y, float64(rx-h), float64(ry-h)) },
	)
	return nil
}

func rectF(c *Context, node svgicon.ShapeNode, st svgicon.Style) error {
	v, err := node.Lengths(c.conv, "x", "y", "width", "height")
	if err != nil {
		return err
	}
	x, y, w, hg := v[0], v[1], v[2], v[3]
	h := st.StrokeWidth / 2
	paintFilled(c, st,
		func() svgraster.Mask {
			return c.raster.Rect(float64(x-h), float64(y-h), float64(x+w+h), float64(y+hg+h))
		},
		func() svgraster.Mask {
			return c.raster.Rect(float64(x+h), float64(y+h), float64(x+w-h), float64(y+hg-h))
		},
	)
	return nil
}

func lineF(c *Context, node svgicon.ShapeNode, st svgicon.Style) error {
	v, err := node.Lengths(c.conv, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	pts := []image.Point{{X: v[0], Y: v[1]}, {X: v[2], Y: v[3]}}
	c.layer.Paint(c.raster.Polyline(pts, lineWidth(st), false), st.Stroke.NRGBA(st.Opacity))
	return nil
}

// polylineF draws nothing for an absent or empty points list.
func polylineF(c *Context, node svgicon.ShapeNode, st svgicon.Style) error {
	pts, err := svgpath.ParsePoints(node.Attrs["points"], c.conv)
	if err != nil {
		return errors.Wrap(err, "points")
	}
	c.layer.Paint(c.raster.Polyline(pts, lineWidth(st), false), st.Stroke.NRGBA(st.Opacity))
	return nil
}

// pathF strokes the flattened path data.
// A path with cx and cy attributes is drawn as an ellipse.
func pathF(c *Context, node svgicon.ShapeNode, st svgicon.Style) error {
	if node.Has("cx") && node.Has("cy") {
		return ellipseF(c, node, st)
	}
	d, ok := node.Attr("d")
	if !ok {
		return errors.Wrapf(svgicon.ErrMissingAttribute, "d on <%s>", node.Kind)
	}
	path, err := svgpath.Parse(d, c.conv)
	if err != nil {
		return errors.Wrap(err, "d")
	}
	pl := c.flattener.Flatten(path)
	c.layer.Paint(c.raster.Polyline(pl.Points, lineWidth(st), pl.Closed), st.Stroke.NRGBA(st.Opacity))
	return nil
}
