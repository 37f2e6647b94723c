// Package filter implements the pixel reconstruction kernels. Every filter is
// immutable after construction and safe to share between goroutines.
package filter

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidExtent is returned for non-positive filter widths
var ErrInvalidExtent = errors.New("filter: width and height must be positive")

// Filter weights a sample by its offset (x, y) from the pixel center
type Filter interface {
	Evaluate(x, y float64) float64
	// Width and Height are the half extents of the support
	Width() float64
	Height() float64
}

// extent holds the half extents and their reciprocals, computed once
type extent struct {
	xWidth, yWidth       float64
	invXWidth, invYWidth float64
}

func newExtent(xWidth, yWidth float64) extent {
	return extent{
		xWidth:    xWidth,
		yWidth:    yWidth,
		invXWidth: 1 / xWidth,
		invYWidth: 1 / yWidth,
	}
}

func (e extent) Width() float64  { return e.xWidth }
func (e extent) Height() float64 { return e.yWidth }

// Default kernel parameters used by New
const (
	DefaultGaussianAlpha = 2.0
	DefaultMitchellB     = 1.0 / 3.0
	DefaultMitchellC     = 1.0 / 3.0
	DefaultLanczosTau    = 3.0
)

var constructors = map[string]func(w, h float64) Filter{
	"box":      func(w, h float64) Filter { return NewBox(w, h) },
	"triangle": func(w, h float64) Filter { return NewTriangle(w, h) },
	"gaussian": func(w, h float64) Filter { return NewGaussian(w, h, DefaultGaussianAlpha) },
	"mitchell": func(w, h float64) Filter { return NewMitchell(w, h, DefaultMitchellB, DefaultMitchellC) },
	"lanczos":  func(w, h float64) Filter { return NewLanczosSinc(w, h, DefaultLanczosTau) },
}

// New builds a filter by name with default kernel parameters. Extents are
// validated here so the render loop can assume a well-formed kernel.
func New(name string, width, height float64) (Filter, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidExtent, width, height)
	}
	create, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("filter: unknown filter %q (available: %v)", name, Names())
	}
	return create(width, height), nil
}

// Names lists the filters known to New
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
