package image

import (
	"sync"

	"golang.org/x/image/draw"
)

// Context holds the read-only configuration shared by every raster
// conversion. A Context is never mutated after construction and is safe for
// concurrent use.
type Context struct {
	// Interpolator resamples rasters during downsampling.
	Interpolator draw.Interpolator
}

// NewContext creates a Context using the given interpolator.
// A nil interpolator selects draw.ApproxBiLinear.
func NewContext(interp draw.Interpolator) *Context {
	if interp == nil {
		interp = draw.ApproxBiLinear
	}
	return &Context{Interpolator: interp}
}

var (
	defaultContext     *Context
	defaultContextOnce sync.Once
)

// DefaultContext returns the process-wide Context, building it on first use.
func DefaultContext() *Context {
	defaultContextOnce.Do(func() {
		defaultContext = NewContext(nil)
	})
	return defaultContext
}
