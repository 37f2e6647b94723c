// Package sampling provides the Monte Carlo building blocks of the renderer:
// warping functions, low-discrepancy sequences, importance-sampling weights
// and the samplers that produce per-pixel sample positions.
package sampling

// Sample is one camera sample. The sampler fills it in place; cameras and the
// integrator only read it. Auxiliary arrays are sized when registered and
// addressed through the handle returned by Add1D/Add2D.
type Sample struct {
	X, Y         float64 // Raster-space position
	LensU, LensV float64 // Lens position in [0,1)²
	Time         float64 // Shutter time
	Weight       float64 // Reconstruction weight, 1 unless a filter is applied

	oneD [][]float64
	twoD [][]float64
}

// NewSample creates an empty sample with unit weight
func NewSample() *Sample {
	return &Sample{Weight: 1}
}

// Add1D registers an array of n scalar values and returns its handle
func (s *Sample) Add1D(n int) int {
	s.oneD = append(s.oneD, make([]float64, n))
	return len(s.oneD) - 1
}

// Add2D registers an array of n 2D points (2n values) and returns its handle
func (s *Sample) Add2D(n int) int {
	s.twoD = append(s.twoD, make([]float64, 2*n))
	return len(s.twoD) - 1
}

// Get1D returns the 1D array for a handle from Add1D
func (s *Sample) Get1D(handle int) []float64 {
	return s.oneD[handle]
}

// Get2D returns the interleaved (u, v) array for a handle from Add2D
func (s *Sample) Get2D(handle int) []float64 {
	return s.twoD[handle]
}

// Num1D returns the number of registered 1D arrays
func (s *Sample) Num1D() int { return len(s.oneD) }

// Num2D returns the number of registered 2D arrays
func (s *Sample) Num2D() int { return len(s.twoD) }
