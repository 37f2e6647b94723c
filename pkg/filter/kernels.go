package filter

import "math"

// Box weights every sample inside its support equally
type Box struct {
	extent
}

// NewBox creates a box filter
func NewBox(xWidth, yWidth float64) *Box {
	return &Box{extent: newExtent(xWidth, yWidth)}
}

func (f *Box) Evaluate(x, y float64) float64 {
	return 1
}

// Triangle falls off linearly to zero at the support edge on both axes
type Triangle struct {
	extent
}

// NewTriangle creates a triangle filter
func NewTriangle(xWidth, yWidth float64) *Triangle {
	return &Triangle{extent: newExtent(xWidth, yWidth)}
}

func (f *Triangle) Evaluate(x, y float64) float64 {
	return math.Max(0, f.xWidth-math.Abs(x)) * math.Max(0, f.yWidth-math.Abs(y))
}

// Gaussian is a product of 1D Gaussians shifted down so the weight reaches
// zero at the support edge
type Gaussian struct {
	extent
	alpha      float64
	expX, expY float64
}

// NewGaussian creates a Gaussian filter with falloff alpha
func NewGaussian(xWidth, yWidth, alpha float64) *Gaussian {
	return &Gaussian{
		extent: newExtent(xWidth, yWidth),
		alpha:  alpha,
		expX:   math.Exp(-alpha * xWidth * xWidth),
		expY:   math.Exp(-alpha * yWidth * yWidth),
	}
}

func (f *Gaussian) Evaluate(x, y float64) float64 {
	return f.gaussian(x, f.expX) * f.gaussian(y, f.expY)
}

func (f *Gaussian) gaussian(d, floor float64) float64 {
	return math.Max(0, math.Exp(-f.alpha*d*d)-floor)
}

// Mitchell is the Mitchell-Netravali cubic with shape parameters B and C
type Mitchell struct {
	extent
	b, c float64
}

// NewMitchell creates a Mitchell-Netravali filter
func NewMitchell(xWidth, yWidth, b, c float64) *Mitchell {
	return &Mitchell{extent: newExtent(xWidth, yWidth), b: b, c: c}
}

func (f *Mitchell) Evaluate(x, y float64) float64 {
	return f.mitchell1D(x*f.invXWidth) * f.mitchell1D(y*f.invYWidth)
}

// mitchell1D evaluates the cubic on the support normalized to [-1, 1]
func (f *Mitchell) mitchell1D(x float64) float64 {
	x = math.Abs(2 * x)
	b, c := f.b, f.c
	if x > 2 {
		return 0
	}
	if x > 1 {
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
}

// LanczosSinc is a sinc windowed by a wider Lanczos lobe; tau sets the
// number of sinc cycles inside the support
type LanczosSinc struct {
	extent
	tau float64
}

// NewLanczosSinc creates a Lanczos-windowed sinc filter
func NewLanczosSinc(xWidth, yWidth, tau float64) *LanczosSinc {
	return &LanczosSinc{extent: newExtent(xWidth, yWidth), tau: tau}
}

func (f *LanczosSinc) Evaluate(x, y float64) float64 {
	return f.sinc1D(x*f.invXWidth) * f.sinc1D(y*f.invYWidth)
}

func (f *LanczosSinc) sinc1D(x float64) float64 {
	x = math.Abs(x)
	if x < 1e-5 {
		return 1
	}
	if x > 1 {
		return 0
	}
	x *= math.Pi
	sinc := math.Sin(x*f.tau) / (x * f.tau)
	lanczos := math.Sin(x) / x
	return sinc * lanczos
}
