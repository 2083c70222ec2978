package svgraster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Layer is an isolated, initially transparent buffer
// receiving the paint of one shape before compositing.
type Layer struct {
	img   *image.RGBA
	dirty image.Rectangle // painted area since the last Clear
}

// NewLayer returns a transparent layer of the given size.
func NewLayer(width, height int) *Layer {
	return &Layer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the layer content, premultiplied.
func (l *Layer) Image() *image.RGBA { return l.img }

// Dirty returns the area painted since the last Clear.
func (l *Layer) Dirty() image.Rectangle { return l.dirty }

// Paint sets the pixels covered by `m` to `c`, replacing
// any previous paint: a fill painted over a stroke hides it.
// A transparent color erases the covered pixels.
func (l *Layer) Paint(m Mask, c color.NRGBA) {
	rect := m.Rect.Intersect(l.img.Bounds())
	if rect.Empty() {
		return
	}
	pc := color.RGBAModel.Convert(c).(color.RGBA)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if !m.Covers(x, y) {
				continue
			}
			i := l.img.PixOffset(x, y)
			s := l.img.Pix[i : i+4 : i+4]
			s[0], s[1], s[2], s[3] = pc.R, pc.G, pc.B, pc.A
		}
	}
	l.dirty = l.dirty.Union(rect)
}

// Clear makes the painted area transparent again.
func (l *Layer) Clear() {
	if l.dirty.Empty() {
		return
	}
	draw.Draw(l.img, l.dirty, image.Transparent, image.Point{}, draw.Src)
	l.dirty = image.Rectangle{}
}

// Composite blends the layer over the canvas, with the
// Porter-Duff "over" operator, and then clears the layer.
func Composite(canvas *image.RGBA, l *Layer) {
	if !l.dirty.Empty() {
		draw.Draw(canvas, l.dirty, l.img, l.dirty.Min, draw.Over)
	}
	l.Clear()
}
