package svgicon

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// RGB is an opaque color triple.
type RGB struct {
	R, G, B uint8
}

// NRGBA returns the color with the given alpha.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Paint is either a color or nothing ("none").
type Paint struct {
	Color RGB
	None  bool
}

// NRGBA returns the paint with the given alpha.
// A none paint is fully transparent.
func (p Paint) NRGBA(alpha uint8) color.NRGBA {
	if p.None {
		return color.NRGBA{}
	}
	return p.Color.NRGBA(alpha)
}

// ResolveColor parses a color literal: #rrggbb, rgb(r,g,b)
// or a CSS color keyword. An empty literal is black.
// An rgb() function with a number of components other than 3 is
// also black.
func ResolveColor(text string) (RGB, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return RGB{}, nil
	}
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHexColor(text)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		return parseRGBFunction(text, text[4:len(text)-1])
	}
	if c, ok := colornames.Map[lower]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	return RGB{}, errors.Wrapf(ErrInvalidColor, "%q", text)
}

// ResolvePaint is like ResolveColor, but also accepts "none".
func ResolvePaint(text string) (Paint, error) {
	if strings.EqualFold(strings.TrimSpace(text), "none") {
		return Paint{None: true}, nil
	}
	c, err := ResolveColor(text)
	return Paint{Color: c}, err
}

func parseHexColor(text string) (RGB, error) {
	hex := text[1:]
	if len(hex) != 6 {
		return RGB{}, errors.Wrapf(ErrInvalidColor, "%q: expected 6 hex digits", text)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, errors.Wrapf(ErrInvalidColor, "%q", text)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func parseRGBFunction(text, args string) (RGB, error) {
	comps := strings.Split(args, ",")
	if len(comps) != 3 {
		return RGB{}, nil
	}
	var out [3]uint8
	for i, comp := range comps {
		v, err := strconv.ParseUint(strings.TrimSpace(comp), 10, 8)
		if err != nil {
			return RGB{}, errors.Wrapf(ErrInvalidColor, "%q: component %d", text, i+1)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}
