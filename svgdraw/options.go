package svgdraw

import (
	"log"

	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/benoitkugler/svgpng/svgpath"
)

type renderOptions struct {
	samples   int
	errorMode svgicon.ErrorMode
	logger    *log.Logger
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		samples:   svgpath.DefaultSamples,
		errorMode: svgicon.WarnErrorMode,
		logger:    log.Default(),
	}
}

// RenderOption customizes the rendering of a document.
type RenderOption interface {
	apply(o *renderOptions)
}

// funcOption wraps a function that modifies renderOptions into an
// implementation of the RenderOption interface.
type funcOption struct {
	f func(o *renderOptions)
}

func (fo *funcOption) apply(o *renderOptions) {
	fo.f(o)
}

func newFuncOption(f func(o *renderOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithSamples sets the number of points sampled on each
// path curve. Values below 2 are ignored.
func WithSamples(n int) RenderOption {
	return newFuncOption(func(o *renderOptions) {
		if n < 2 {
			return
		}
		o.samples = n
	})
}

// WithErrorMode sets how faulty shapes are handled.
// The default is svgicon.WarnErrorMode.
func WithErrorMode(mode svgicon.ErrorMode) RenderOption {
	return newFuncOption(func(o *renderOptions) {
		o.errorMode = mode
	})
}

// WithLogger sets the logger used for warnings.
func WithLogger(l *log.Logger) RenderOption {
	return newFuncOption(func(o *renderOptions) {
		if l == nil {
			return
		}
		o.logger = l
	})
}
