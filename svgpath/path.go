// Implements an abstract representation of
// svg paths, which can then be flattened
// into polylines for painting drivers.
package svgpath

import (
	"fmt"
	"image"
	"strings"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathCubicTo
	pathClose
)

// Command groups the supported SVG path commands
type Command interface {
	command() pathCommand
}

// MoveTo moves the cursor to To; if Relative,
// To is an offset from the cursor.
type MoveTo struct {
	To       image.Point
	Relative bool
}

// CurveTo is a cubic Bezier from the cursor.
// If Relative, each point is an offset from the cursor.
type CurveTo struct {
	C1, C2, To image.Point
	Relative   bool
}

// Close goes back to the start of the subpath.
type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (CurveTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG commands,
// with the implicit repetitions already expanded.
type Path []Command

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("%s %d,%d", letter('M', op.Relative), op.To.X, op.To.Y)
		case CurveTo:
			chunks[i] = fmt.Sprintf("%s %d,%d %d,%d %d,%d", letter('C', op.Relative),
				op.C1.X, op.C1.Y, op.C2.X, op.C2.Y, op.To.X, op.To.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

func letter(abs byte, relative bool) string {
	if relative {
		return string(abs + 'a' - 'A')
	}
	return string(abs)
}
