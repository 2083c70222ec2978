package svgpath

import (
	"image"
	"strings"

	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/pkg/errors"
)

var (
	ErrNoCommand          = errors.New("coordinates before any command")
	ErrMissingCoordinates = errors.New("missing coordinates")
	ErrMalformedPoint     = errors.New("malformed coordinate pair")
	ErrUnsupportedCommand = errors.New("unsupported path command")
)

// isOperator returns true for single letter tokens
func isOperator(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	c := tok[0]
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// arity returns the number of coordinate pairs used by `op`,
// or -1 if it is not supported.
func arity(op byte) int {
	switch op {
	case 'M', 'm':
		return 1
	case 'C', 'c':
		return 3
	case 'Z', 'z':
		return 0
	default:
		return -1
	}
}

// Parse compiles the path data `d` into a list of commands.
// Tokens are separated by white space, and are either a command
// letter (M, m, C, c, Z, z) or a "x,y" coordinate pair.
// Commands are sticky: coordinate pairs following a complete
// command repeat it.
// Parsing stops at the first close command: the remaining
// tokens are ignored, since only one subpath is supported.
func Parse(d string, conv svgicon.Converter) (Path, error) {
	tokens := strings.Fields(d)
	var (
		path Path
		op   byte // current command, 0 before the first one
	)
	for i := 0; i < len(tokens); {
		if tok := tokens[i]; isOperator(tok) {
			op = tok[0]
			n := arity(op)
			if n == -1 {
				return nil, errors.Wrapf(ErrUnsupportedCommand, "%q at token %d", tok, i)
			}
			if n == 0 {
				return append(path, Close{}), nil
			}
			i++
		} else if op == 0 {
			return nil, errors.Wrapf(ErrNoCommand, "%q at token %d", tok, i)
		}

		pts, err := readPoints(tokens, i, arity(op), conv)
		if err != nil {
			return nil, errors.Wrapf(err, "command %c", op)
		}
		i += len(pts)

		relative := 'a' <= op && op <= 'z'
		switch op {
		case 'M', 'm':
			path = append(path, MoveTo{To: pts[0], Relative: relative})
		case 'C', 'c':
			path = append(path, CurveTo{C1: pts[0], C2: pts[1], To: pts[2], Relative: relative})
		}
	}
	return path, nil
}

// readPoints reads `n` coordinate pairs starting at tokens[start]
func readPoints(tokens []string, start, n int, conv svgicon.Converter) ([]image.Point, error) {
	out := make([]image.Point, n)
	for j := range out {
		i := start + j
		if i >= len(tokens) || isOperator(tokens[i]) {
			return nil, errors.Wrapf(ErrMissingCoordinates, "expected %d pairs, got %d", n, j)
		}
		p, err := ParsePoint(tokens[i], conv)
		if err != nil {
			return nil, errors.Wrapf(err, "token %d", i)
		}
		out[j] = p
	}
	return out, nil
}
