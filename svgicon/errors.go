package svgicon

import "github.com/pkg/errors"

// ErrorMode is the for setting how the renderer responds to
// elements or shapes it cannot handle.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips the faulty shapes silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs the faulty shapes and skips them.
	WarnErrorMode
	// StrictErrorMode stops at the first faulty shape.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

var (
	ErrUnsupportedDimensions = errors.New("unsupported dimensions")
	ErrMissingAttribute      = errors.New("missing required attribute")
	ErrInvalidUnit           = errors.New("invalid unit")
	ErrInvalidColor          = errors.New("invalid color")
	ErrInvalidOpacity        = errors.New("invalid opacity")
)
