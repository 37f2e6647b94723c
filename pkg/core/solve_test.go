package core

import (
	"math"
	"testing"
)

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		t0, t1  float64
		noRoots bool
	}{
		{"two roots", 1, -3, 2, 1, 2, false},
		{"double root", 1, -2, 1, 1, 1, false},
		{"no real roots", 1, 0, 1, 0, 0, true},
		{"linear", 0, 2, -4, 2, 2, false},
		{"degenerate", 0, 0, 1, 0, 0, true},
		{"negative roots", 1, 5, 6, -3, -2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1 := SolveQuadratic(tt.a, tt.b, tt.c)
			if tt.noRoots {
				if !math.IsNaN(t0) || !math.IsNaN(t1) {
					t.Errorf("Expected NaN roots, got %f, %f", t0, t1)
				}
				return
			}
			if math.Abs(t0-tt.t0) > 1e-9 || math.Abs(t1-tt.t1) > 1e-9 {
				t.Errorf("Expected roots (%f, %f), got (%f, %f)", tt.t0, tt.t1, t0, t1)
			}
		})
	}
}

func TestSolveLinear3(t *testing.T) {
	a := [3][3]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 4}}
	x := SolveLinear3(a, [3]float64{1, 2, 4})
	if !x.ApproxEqual(NewVec3(1, 1, 1), 1e-9) {
		t.Errorf("Expected (1,1,1), got %v", x)
	}

	singular := [3][3]float64{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}
	if !SolveLinear3(singular, [3]float64{1, 2, 3}).IsNaN() {
		t.Error("Expected NaN result for singular system")
	}
}

func TestScaleDifferentials(t *testing.T) {
	rd := RayDifferential{
		Ray:              NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)),
		HasDifferentials: true,
		RxOrigin:         NewVec3(1, 0, 0),
		RxDirection:      NewVec3(0.2, 0, 1),
		RyOrigin:         NewVec3(0, -2, 0),
		RyDirection:      NewVec3(0, 0.4, 1),
	}

	rd.ScaleDifferentials(0.5)

	if !rd.RxOrigin.ApproxEqual(NewVec3(0.5, 0, 0), 1e-12) || !rd.RyOrigin.ApproxEqual(NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected origins halfway to the primary ray, got %v %v", rd.RxOrigin, rd.RyOrigin)
	}
	if !rd.RxDirection.ApproxEqual(NewVec3(0.1, 0, 1), 1e-12) || !rd.RyDirection.ApproxEqual(NewVec3(0, 0.2, 1), 1e-12) {
		t.Errorf("Expected directions halfway to the primary ray, got %v %v", rd.RxDirection, rd.RyDirection)
	}
	if rd.Origin != NewVec3(0, 0, 0) || rd.Direction != NewVec3(0, 0, 1) {
		t.Error("Primary ray should not change")
	}
}

func TestIntersectionRecord(t *testing.T) {
	is := NewIntersection(nil)
	if is.Hit() {
		t.Fatal("Fresh intersection should not report a hit")
	}

	if !is.Record(5) || is.Distance != 5 {
		t.Errorf("Expected distance 5, got %f", is.Distance)
	}
	if is.Record(7) {
		t.Error("Farther hit should not replace closer one")
	}
	if is.Record(math.NaN()) || is.Record(-1) {
		t.Error("NaN and negative distances must be ignored")
	}

	is.Reset(NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)))
	if !math.IsInf(is.Distance, 1) {
		t.Errorf("Reset should restore infinite distance, got %f", is.Distance)
	}
}
