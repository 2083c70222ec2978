package svgpath

import (
	"image"
	"strings"

	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/pkg/errors"
)

// ParsePoint reads a "x,y" pair, converting each coordinate with `conv`.
func ParsePoint(tok string, conv svgicon.Converter) (image.Point, error) {
	xy := strings.Split(tok, ",")
	if len(xy) != 2 || xy[0] == "" || xy[1] == "" {
		return image.Point{}, errors.Wrapf(ErrMalformedPoint, "%q", tok)
	}
	x, err := conv.Convert(xy[0])
	if err != nil {
		return image.Point{}, errors.Wrapf(ErrMalformedPoint, "%q: %s", tok, err)
	}
	y, err := conv.Convert(xy[1])
	if err != nil {
		return image.Point{}, errors.Wrapf(ErrMalformedPoint, "%q: %s", tok, err)
	}
	return image.Point{X: x, Y: y}, nil
}

// ParsePoints reads a white space separated list of "x,y" pairs,
// as found in the points attribute of a polyline.
func ParsePoints(v string, conv svgicon.Converter) ([]image.Point, error) {
	fields := strings.Fields(v)
	out := make([]image.Point, 0, len(fields))
	for _, tok := range fields {
		p, err := ParsePoint(tok, conv)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
