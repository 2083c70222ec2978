// Given a parsed SVG document, implements how to
// draw it on a raster canvas.
// Each shape is painted in an isolated layer, which is then
// composited over the canvas, in document order.
package svgdraw

import (
	"fmt"
	"image"

	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/benoitkugler/svgpng/svgpath"
	"github.com/benoitkugler/svgpng/svgraster"
	"github.com/pkg/errors"
)

// ShapeError is returned (or logged) when a shape
// can't be rendered.
type ShapeError struct {
	Index int // position in the document
	Kind  svgicon.Kind
	Err   error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape %d <%s>: %s", e.Index, e.Kind, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Context holds the state used while rendering one document.
// It is not safe for concurrent use.
type Context struct {
	Doc    *svgicon.Document
	Canvas *image.RGBA

	conv      svgicon.Converter
	flattener svgpath.Flattener
	layer     *svgraster.Layer
	raster    *svgraster.Renderer
	opts      renderOptions
}

// NewContext returns a context with a transparent canvas
// sized after the document.
func NewContext(doc *svgicon.Document, opts ...RenderOption) (*Context, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, errors.Wrapf(svgicon.ErrUnsupportedDimensions, "%dx%d", doc.Width, doc.Height)
	}
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &Context{
		Doc:       doc,
		Canvas:    image.NewRGBA(image.Rect(0, 0, doc.Width, doc.Height)),
		conv:      doc.Converter(),
		flattener: svgpath.Flattener{Samples: o.samples},
		layer:     svgraster.NewLayer(doc.Width, doc.Height),
		raster:    svgraster.NewRenderer(doc.Width, doc.Height),
		opts:      o,
	}, nil
}

// Render draws every shape of the document and returns the canvas.
// Faulty shapes are handled according to the error mode option.
func Render(doc *svgicon.Document, opts ...RenderOption) (*image.RGBA, error) {
	c, err := NewContext(doc, opts...)
	if err != nil {
		return nil, err
	}
	if err = c.DrawAll(); err != nil {
		return nil, err
	}
	return c.Canvas, nil
}

// DrawAll draws the shapes in document order.
// In StrictErrorMode, it stops at the first faulty shape.
func (c *Context) DrawAll() error {
	for i, node := range c.Doc.Shapes {
		err := c.DrawShape(node)
		if err == nil {
			continue
		}
		err = &ShapeError{Index: i, Kind: node.Kind, Err: err}
		switch c.opts.errorMode {
		case svgicon.StrictErrorMode:
			return err
		case svgicon.WarnErrorMode:
			c.opts.logger.Println(err)
		}
	}
	return nil
}

// DrawShape paints `node` and composites it on the canvas.
// On error, the canvas is left unchanged.
func (c *Context) DrawShape(node svgicon.ShapeNode) error {
	st, err := svgicon.ResolveStyle(node, c.conv)
	if err != nil {
		return err
	}
	draw, ok := drawFuncs[node.Kind]
	if !ok {
		return errors.Errorf("unsupported shape kind %s", node.Kind)
	}
	if err = draw(c, node, st); err != nil {
		c.layer.Clear()
		return err
	}
	svgraster.Composite(c.Canvas, c.layer)
	return nil
}
