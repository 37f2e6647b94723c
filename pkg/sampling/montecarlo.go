package sampling

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/rng"
)

// OneMinusEpsilon is the largest float64 below 1. Sequence generators clamp
// to it so that no sample ever lands exactly on 1.
const OneMinusEpsilon = 0x1.fffffffffffffp-1

// ConcentricSampleDisk maps a point in [0,1]² onto the unit disk with
// Shirley's concentric mapping. The square is split into four triangular
// sectors so that areas are preserved and neighborhoods stay compact.
func ConcentricSampleDisk(u1, u2 float64) (dx, dy float64) {
	// Map to [-1,1]² and handle the degenerate center
	sx := 2*u1 - 1
	sy := 2*u2 - 1
	if sx == 0 && sy == 0 {
		return 0, 0
	}

	var r, theta float64
	if sx >= -sy {
		if sx > sy {
			// First sector
			r = sx
			if sy > 0 {
				theta = sy / r
			} else {
				theta = 8 + sy/r
			}
		} else {
			// Second sector
			r = sy
			theta = 2 - sx/r
		}
	} else {
		if sx <= sy {
			// Third sector
			r = -sx
			theta = 4 - sy/r
		} else {
			// Fourth sector
			r = -sy
			theta = 6 + sx/r
		}
	}

	theta *= math.Pi / 4
	return r * math.Cos(theta), r * math.Sin(theta)
}

// UniformSampleDisk maps [0,1)² onto the unit disk with the polar mapping.
// Kept for comparison; it distorts area near the center.
func UniformSampleDisk(u1, u2 float64) (dx, dy float64) {
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	return r * math.Cos(theta), r * math.Sin(theta)
}

// UniformSampleHemisphere returns a direction on the +Z hemisphere
func UniformSampleHemisphere(u1, u2 float64) core.Vec3 {
	z := u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformHemispherePDF is the solid-angle density of UniformSampleHemisphere
func UniformHemispherePDF() float64 {
	return 1 / (2 * math.Pi)
}

// CosineSampleHemisphere returns a cosine-weighted direction on the +Z
// hemisphere using Malley's method over the concentric disk
func CosineSampleHemisphere(u1, u2 float64) core.Vec3 {
	x, y := ConcentricSampleDisk(u1, u2)
	z := math.Sqrt(math.Max(0, 1-x*x-y*y))
	return core.NewVec3(x, y, z)
}

// CosineHemispherePDF is the density of CosineSampleHemisphere
func CosineHemispherePDF(cosTheta float64) float64 {
	return cosTheta / math.Pi
}

// UniformSampleSphere returns a uniformly distributed direction
func UniformSampleSphere(u1, u2 float64) core.Vec3 {
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePDF is the density of UniformSampleSphere
func UniformSpherePDF() float64 {
	return 1 / (4 * math.Pi)
}

// UniformSampleCone samples a direction about +Z within the cone whose
// half-angle cosine is cosThetaMax
func UniformSampleCone(u1, u2, cosThetaMax float64) core.Vec3 {
	cosTheta := (1 - u1) + u1*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u2
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// UniformConePDF is the density of UniformSampleCone
func UniformConePDF(cosThetaMax float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// BalanceHeuristic weights a sample from strategy f when nf samples were
// drawn from f and ng from g
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f+g == 0 {
		return 0
	}
	return f / (f + g)
}

// PowerHeuristic is the balance heuristic with exponent 2
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f == 0 && g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}

// StratifiedSample1D fills samples with one value per stratum of [0,1)
func StratifiedSample1D(samples []float64, random rng.PRNG, jitter bool) {
	inv := 1 / float64(len(samples))
	for i := range samples {
		delta := 0.5
		if jitter {
			delta = random.Float64()
		}
		samples[i] = math.Min((float64(i)+delta)*inv, OneMinusEpsilon)
	}
}

// StratifiedSample2D fills samples with nx*ny interleaved (x, y) pairs,
// one per cell of an nx by ny grid
func StratifiedSample2D(samples []float64, nx, ny int, random rng.PRNG, jitter bool) {
	dx := 1 / float64(nx)
	dy := 1 / float64(ny)
	i := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			jx, jy := 0.5, 0.5
			if jitter {
				jx = random.Float64()
				jy = random.Float64()
			}
			samples[i] = math.Min((float64(x)+jx)*dx, OneMinusEpsilon)
			samples[i+1] = math.Min((float64(y)+jy)*dy, OneMinusEpsilon)
			i += 2
		}
	}
}

// LatinHypercube fills an n by dims flattened slice with jittered strata
// along the diagonal, then shuffles each dimension independently across the
// strata so every 1D projection stays stratified.
func LatinHypercube(samples []float64, n, dims int, random rng.PRNG) {
	delta := 1 / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			samples[dims*i+j] = math.Min((float64(i)+random.Float64())*delta, OneMinusEpsilon)
		}
	}

	for j := 0; j < dims; j++ {
		for i := 0; i < n; i++ {
			other := i + random.IntN(n-i)
			samples[dims*i+j], samples[dims*other+j] = samples[dims*other+j], samples[dims*i+j]
		}
	}
}
