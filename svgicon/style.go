package svgicon

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Style holds the paint parameters of one shape.
type Style struct {
	Fill, Stroke Paint
	StrokeWidth  int   // in pixels
	Opacity      uint8 // alpha applied to every painted pixel
}

// MaxStrokeWidth is the largest stroke width, in pixels.
const MaxStrokeWidth = 1 << 10

// DefaultStyle fills and strokes black, fully opaque,
// with a zero stroke width.
var DefaultStyle = Style{Opacity: 0xff}

// MergeStyle returns the attributes as a map, with the entries of
// the style attribute (if any) overriding the plain attributes.
// The style attribute itself is not included.
func MergeStyle(attrs []xml.Attr) map[string]string {
	out := make(map[string]string, len(attrs))
	var style string
	for _, attr := range attrs {
		name := attr.Name.Local
		if strings.ToLower(name) == "style" {
			style = attr.Value
			continue
		}
		out[name] = attr.Value
	}
	for k, v := range ParseStyle(style) {
		out[k] = v
	}
	return out
}

// ParseStyle splits a "key:value;key:value" declaration list.
// Entries without a colon are ignored.
func ParseStyle(style string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(style, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(kv[1])
	}
	return out
}

// ParseOpacity converts an opacity in [0, 1] to an alpha value,
// truncating. An empty value is fully opaque; values outside
// [0, 1] are clamped. NaN and infinities are invalid.
func ParseOpacity(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0xff, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(ErrInvalidOpacity, "%q", v)
	}
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return uint8(f * 255), nil
}

// ResolveStyle reads the paint parameters of `node`, using
// `conv` for the stroke width.
func ResolveStyle(node ShapeNode, conv Converter) (Style, error) {
	st := DefaultStyle
	var err error
	if st.Fill, err = ResolvePaint(node.Attrs["fill"]); err != nil {
		return st, errors.Wrap(err, "fill")
	}
	if st.Stroke, err = ResolvePaint(node.Attrs["stroke"]); err != nil {
		return st, errors.Wrap(err, "stroke")
	}
	if st.StrokeWidth, err = conv.Convert(node.Attrs["stroke-width"]); err != nil {
		return st, errors.Wrap(err, "stroke-width")
	}
	if st.StrokeWidth < 0 {
		st.StrokeWidth = 0
	} else if st.StrokeWidth > MaxStrokeWidth {
		return st, errors.Wrapf(ErrInvalidUnit, "stroke-width %d out of range", st.StrokeWidth)
	}
	if st.Opacity, err = ParseOpacity(node.Attrs["opacity"]); err != nil {
		return st, err
	}
	return st, nil
}

// Lengths converts the required attributes `names` of `node`,
// in order. A missing attribute is an error, it never defaults to zero.
func (n ShapeNode) Lengths(conv Converter, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		v, ok := n.Attrs[name]
		if !ok {
			return nil, errors.Wrapf(ErrMissingAttribute, "%s on <%s>", name, n.Kind)
		}
		px, err := conv.Convert(v)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		out[i] = px
	}
	return out, nil
}
