package core

import "math"

// Solvers used by geometric routines report failure with NaN results instead
// of errors so a failed per-sample query never aborts a whole pass. Callers
// must check math.IsNaN before using the results.

// SolveQuadratic returns the real roots of a*t^2 + b*t + c = 0 with t0 <= t1.
// Both roots are NaN when the equation has no real solution.
func SolveQuadratic(a, b, c float64) (t0, t1 float64) {
	if a == 0 {
		if b == 0 {
			return math.NaN(), math.NaN()
		}
		t := -c / b
		return t, t
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return math.NaN(), math.NaN()
	}

	// Numerically stable form avoids cancellation when b ~ sqrt(discriminant)
	root := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = -0.5 * (b - root)
	} else {
		q = -0.5 * (b + root)
	}

	t0 = q / a
	if q != 0 {
		t1 = c / q
	} else {
		t1 = t0
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1
}

// SolveLinear3 solves the 3x3 system A·x = b using Cramer's rule. All
// components of the result are NaN when A is singular.
func SolveLinear3(a [3][3]float64, b [3]float64) Vec3 {
	det := det3(a)
	if det == 0 || math.IsNaN(det) {
		return Vec3{math.NaN(), math.NaN(), math.NaN()}
	}

	var result [3]float64
	for col := 0; col < 3; col++ {
		m := a
		for row := 0; row < 3; row++ {
			m[row][col] = b[row]
		}
		result[col] = det3(m) / det
	}
	return Vec3{result[0], result[1], result[2]}
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}
