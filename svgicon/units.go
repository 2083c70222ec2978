package svgicon

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2"
)

// MMToPixel is the number of pixels in one millimeter.
const MMToPixel = 3.7795275591

// MaxLength is the largest length, in pixels, accepted by Converter.
// Sums of a few such lengths stay in the range of the 26.6 fixed point
// coordinates used by the rasterizer.
const MaxLength = 1 << 22

// UnitMode is the interpretation of bare numbers
// in a document.
type UnitMode uint8

const (
	Pixels UnitMode = iota
	Millimeters
)

func (m UnitMode) String() string {
	switch m {
	case Pixels:
		return "px"
	case Millimeters:
		return "mm"
	default:
		return "<unknown UnitMode>"
	}
}

// Converter converts length literals to pixels.
// Explicit "mm" and "px" suffixes are honored whatever the
// mode; bare numbers use Mode.
type Converter struct {
	Mode UnitMode
}

// splitDimension returns the number and the (lower cased) unit of `v`.
func splitDimension(v string) (float64, string, error) {
	nn, nu := parse.Dimension([]byte(v))
	if nn > 0 && nn < len(v) && v[nn] == '.' {
		// trailing dot, as in "5." or "5.mm"
		nn++
		for nu = 0; nn+nu < len(v) && isLetter(v[nn+nu]); nu++ {
		}
	}
	if nn == 0 || nn+nu != len(v) {
		return 0, "", errors.Wrapf(ErrInvalidUnit, "%q", v)
	}
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		return 0, "", errors.Wrapf(ErrInvalidUnit, "%q", v)
	}
	return num, strings.ToLower(v[nn:]), nil
}

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// Float returns the length `raw` in pixels, without rounding.
// An empty literal is zero.
// Lengths larger than MaxLength (in absolute value) are rejected.
func (c Converter) Float(raw string) (float64, error) {
	f, err := c.float(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.Abs(f) > MaxLength {
		return 0, errors.Wrapf(ErrInvalidUnit, "%q: out of range", raw)
	}
	return f, nil
}

func (c Converter) float(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	num, unit, err := splitDimension(raw)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "mm":
		return num * MMToPixel, nil
	case "px":
		return num, nil
	case "":
		if c.Mode == Millimeters {
			return num * MMToPixel, nil
		}
		return num, nil
	}
	return 0, errors.Wrapf(ErrInvalidUnit, "%q", raw)
}

// Convert returns the length `raw` in pixels,
// rounded to the nearest integer.
func (c Converter) Convert(raw string) (int, error) {
	f, err := c.Float(raw)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

// dimension converts a document width or height, rounding up.
func (c Converter) dimension(raw string) (int, error) {
	f, err := c.Float(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedDimensions, "%q", raw)
	}
	px := int(math.Ceil(f))
	if px <= 0 {
		return 0, errors.Wrapf(ErrUnsupportedDimensions, "%q", raw)
	}
	return px, nil
}

// dimensionMode returns the document unit mode implied
// by the root width literal.
func dimensionMode(width string) (UnitMode, error) {
	_, unit, err := splitDimension(width)
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedDimensions, "%q", width)
	}
	switch unit {
	case "mm":
		return Millimeters, nil
	case "", "px":
		return Pixels, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedDimensions, "unit %q", unit)
}
