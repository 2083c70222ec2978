package svgdraw

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"strings"
	"testing"

	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/benoitkugler/svgpng/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	transparent = color.RGBA{}
	black       = color.RGBA{0, 0, 0, 0xff}
	white       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red         = color.RGBA{0xff, 0, 0, 0xff}
	green       = color.RGBA{0, 0xff, 0, 0xff}
	blue        = color.RGBA{0, 0, 0xff, 0xff}
)

func loadDocument(t *testing.T, width, height, shapes string) *svgicon.Document {
	t.Helper()
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="` + width + `" height="` + height + `"><g>` + shapes + `</g></svg>`
	doc, err := svgicon.ReadDocumentStream(strings.NewReader(src), svgicon.IgnoreErrorMode)
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, shapes string, opts ...RenderOption) *image.RGBA {
	t.Helper()
	img, err := Render(loadDocument(t, "100", "100", shapes), opts...)
	require.NoError(t, err)
	return img
}

type pixel struct {
	x, y int
	want color.RGBA
}

func assertPixels(t *testing.T, img *image.RGBA, pixels []pixel) {
	t.Helper()
	for _, p := range pixels {
		assert.Equal(t, p.want, img.RGBAAt(p.x, p.y), "pixel (%d, %d)", p.x, p.y)
	}
}

func TestCircleStrokeRing(t *testing.T) {
	img := render(t, `<circle cx="50" cy="50" r="20" fill="#ffffff" stroke="#000000" stroke-width="4" opacity="1"/>`)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	assertPixels(t, img, []pixel{
		{50, 50, white},
		{60, 50, white},
		{50, 30, black},
		{70, 50, black},
		{50, 26, transparent},
		{75, 50, transparent},
		{0, 0, transparent},
		{99, 0, transparent},
		{0, 99, transparent},
		{99, 99, transparent},
	})
}

func TestEllipse(t *testing.T) {
	img := render(t, `<ellipse cx="50" cy="50" rx="40" ry="10" style="fill:#ff0000;stroke-width:0"/>`)
	assertPixels(t, img, []pixel{
		{50, 50, red},
		{20, 50, red},
		{50, 35, transparent},
		{95, 50, transparent},
	})
}

func TestHalfOpacity(t *testing.T) {
	img := render(t, `<rect x="10" y="10" width="20" height="20" fill="white" stroke="white" opacity="0.5"/>`)
	assertPixels(t, img, []pixel{
		{15, 15, color.RGBA{127, 127, 127, 127}},
		{50, 50, transparent},
	})
}

func TestDocumentOrder(t *testing.T) {
	img := render(t, `
		<rect x="0" y="0" width="60" height="60" fill="#ff0000"/>
		<rect x="40" y="40" width="60" height="60" fill="#0000ff"/>`)
	assertPixels(t, img, []pixel{
		{10, 10, red},
		{50, 50, blue},
		{90, 90, blue},
		{90, 10, transparent},
	})
}

func TestRectStroke(t *testing.T) {
	img := render(t, `<rect x="20" y="20" width="40" height="40" fill="rgb(0,255,0)" stroke="blue" stroke-width="6"/>`)
	assertPixels(t, img, []pixel{
		{40, 40, green},
		{17, 40, blue},
		{22, 40, blue},
		{62, 40, blue},
		{16, 40, transparent},
		{40, 63, transparent},
	})
}

func TestStrokeNone(t *testing.T) {
	img := render(t, `<circle cx="50" cy="50" r="20" fill="red" stroke="none" stroke-width="4"/>`)
	assertPixels(t, img, []pixel{
		{50, 50, red},
		{50, 30, transparent},
	})
}

func TestLine(t *testing.T) {
	img := render(t, `<line x1="10" y1="50" x2="90" y2="50" stroke="#0000ff" stroke-width="3"/>`)
	assertPixels(t, img, []pixel{
		{50, 50, blue},
		{50, 49, blue},
		{50, 51, blue},
		{50, 45, transparent},
		{5, 50, transparent},
	})

	// a zero width line is still visible
	img = render(t, `<line x1="10" y1="50" x2="90" y2="50" stroke="#0000ff"/>`)
	assertPixels(t, img, []pixel{
		{50, 50, blue},
		{50, 52, transparent},
	})
}

func TestPolyline(t *testing.T) {
	img := render(t, `<polyline points="10,10 90,10 90,90" stroke="red" stroke-width="2"/>`)
	assertPixels(t, img, []pixel{
		{50, 10, red},
		{90, 50, red},
		{50, 50, transparent},
		{10, 90, transparent},
	})

	for _, shape := range []string{
		`<polyline stroke="red"/>`,
		`<polyline points="" stroke="red"/>`,
		`<polyline points="10,10" stroke="red"/>`,
	} {
		img = render(t, shape, WithErrorMode(svgicon.StrictErrorMode))
		assertPixels(t, img, []pixel{{10, 10, transparent}})
	}
}

func TestPathClose(t *testing.T) {
	img := render(t, `<path d="M 10,10 C 10,50 50,50 50,10 Z" stroke="#ff0000" stroke-width="2" fill="none"/>`)
	assertPixels(t, img, []pixel{
		{30, 10, red},
		{11, 20, red},
		{30, 20, transparent},
		{80, 80, transparent},
	})
}

func TestPathEllipseOverride(t *testing.T) {
	img := render(t, `<path d="M 0,0" cx="50" cy="50" rx="10" ry="10" fill="#00ff00"/>`)
	assertPixels(t, img, []pixel{
		{50, 50, green},
		{0, 0, transparent},
	})
}

func TestSamples(t *testing.T) {
	shape := `<path d="M 10,50 C 10,10 90,10 90,50" stroke="red" stroke-width="2"/>`
	fine := render(t, shape)
	coarse := render(t, shape, WithSamples(3))
	// with 3 samples, the curve is a straight segment
	// from (10,50) to (50,20)
	assert.Equal(t, red, coarse.RGBAAt(30, 34))
	assert.Equal(t, transparent, fine.RGBAAt(30, 34))
}

func TestMillimeters(t *testing.T) {
	doc := loadDocument(t, "20mm", "10mm", `<rect x="0" y="0" width="10" height="10" fill="red"/>`)
	img, err := Render(doc)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 76, 38), img.Bounds())
	assertPixels(t, img, []pixel{
		{30, 30, red},
		{40, 30, transparent},
	})
}

func TestLargeShapes(t *testing.T) {
	img := render(t, `<rect x="0" y="0" width="1e6" height="1e6" fill="red"/>`)
	assertPixels(t, img, []pixel{{50, 50, red}, {5, 5, red}, {20, 20, red}, {99, 99, red}})

	img = render(t, `<rect x="-4000000" y="-4000000" width="4194304" height="4194304" fill="none" stroke="red" stroke-width="1024"/>`)
	assertPixels(t, img, []pixel{{50, 50, transparent}})

	img = render(t, `<circle cx="50" cy="50" r="1e6" fill="red" stroke-width="0"/>`)
	assertPixels(t, img, []pixel{{5, 5, red}, {50, 50, red}})

	img = render(t, `<line x1="0" y1="0" x2="1e6" y2="1e6" stroke="red"/>`)
	assertPixels(t, img, []pixel{{50, 50, red}, {50, 10, transparent}})

	img = render(t, `<polyline points="10,10 4000000,10 4000000,90 10,90" stroke="red" stroke-width="2"/>`)
	assertPixels(t, img, []pixel{{50, 10, red}, {99, 90, red}, {50, 90, red}, {50, 50, transparent}})

	// relative moves add up beyond the length limit
	img = render(t, `<path d="M 10,10 c 0,0 4000000,0 4000000,0 0,0 0,80 0,80 c 0,0 -4000000,0 -4000000,0 Z" stroke="red" stroke-width="2" fill="none"/>`)
	assertPixels(t, img, []pixel{{50, 10, red}, {50, 90, red}, {10, 50, red}, {50, 50, transparent}})
}

const faultyShapes = `
	<rect x="0" y="0" width="10" fill="red"/>
	<path d="M 0,0 C 1,1" stroke="red"/>
	<circle cx="50" cy="50" r="10" fill="blue"/>`

func TestErrorModes(t *testing.T) {
	doc := loadDocument(t, "100", "100", faultyShapes)

	_, err := Render(doc, WithErrorMode(svgicon.StrictErrorMode))
	require.Error(t, err)
	assert.ErrorIs(t, err, svgicon.ErrMissingAttribute)
	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Index)
	assert.Equal(t, svgicon.Rect, se.Kind)

	var buf bytes.Buffer
	img, err := Render(doc, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	assert.Equal(t, blue, img.RGBAAt(50, 50))
	assert.Equal(t, transparent, img.RGBAAt(5, 5))
	logged := buf.String()
	assert.Contains(t, logged, "shape 0 <rect>")
	assert.Contains(t, logged, "shape 1 <path>")
	assert.Equal(t, 2, strings.Count(logged, "\n"))

	buf.Reset()
	img, err = Render(doc, WithErrorMode(svgicon.IgnoreErrorMode), WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	assert.Equal(t, blue, img.RGBAAt(50, 50))
	assert.Empty(t, buf.String())
}

func TestShapeErrors(t *testing.T) {
	for _, test := range []struct {
		shape string
		want  error
	}{
		{`<circle cx="10" cy="10"/>`, svgicon.ErrMissingAttribute},
		{`<line x1="10" y1="10" x2="20"/>`, svgicon.ErrMissingAttribute},
		{`<path stroke="red"/>`, svgicon.ErrMissingAttribute},
		{`<path d="M 0,0" cx="1" cy="1" rx="2"/>`, svgicon.ErrMissingAttribute},
		{`<path d="M 0,0 C 1,1 2,2"/>`, svgpath.ErrMissingCoordinates},
		{`<path d="0,0 M 1,1"/>`, svgpath.ErrNoCommand},
		{`<path d="M 0,0 L 1,1"/>`, svgpath.ErrUnsupportedCommand},
		{`<polyline points="0,0 1;1"/>`, svgpath.ErrMalformedPoint},
		{`<rect x="0" y="0" width="10cm" height="10"/>`, svgicon.ErrInvalidUnit},
		{`<rect x="0" y="0" width="1e9" height="1e9"/>`, svgicon.ErrInvalidUnit},
		{`<circle cx="50" cy="50" r="1e30"/>`, svgicon.ErrInvalidUnit},
		{`<line x1="0" y1="0" x2="1e9" y2="1e9" stroke="red"/>`, svgicon.ErrInvalidUnit},
		{`<rect x="0" y="0" width="10" height="10" stroke-width="1e30"/>`, svgicon.ErrInvalidUnit},
		{`<path d="M 0,0 C 1,1 2,2 1e30,0"/>`, svgpath.ErrMalformedPoint},
		{`<polyline points="0,0 1e9,1e9" stroke="red"/>`, svgpath.ErrMalformedPoint},
		{`<rect x="0" y="0" width="10" height="10" opacity="NaN"/>`, svgicon.ErrInvalidOpacity},
		{`<rect x="0" y="0" width="10" height="10" fill="#12"/>`, svgicon.ErrInvalidColor},
		{`<rect x="0" y="0" width="10" height="10" opacity="half"/>`, svgicon.ErrInvalidOpacity},
	} {
		doc := loadDocument(t, "100", "100", test.shape)
		_, err := Render(doc, WithErrorMode(svgicon.StrictErrorMode))
		assert.ErrorIs(t, err, test.want, test.shape)
	}
}

func TestInvalidDocument(t *testing.T) {
	_, err := Render(&svgicon.Document{Width: 0, Height: 10})
	assert.ErrorIs(t, err, svgicon.ErrUnsupportedDimensions)
}
