// math/math_test.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestClamp(t *testing.T) {
	if c := Clamp(5, 1, 3); c != 3 {
		t.Errorf("Clamp(5,1,3) = %d, expected 3", c)
	}
	if c := Clamp(-5, 1, 3); c != 1 {
		t.Errorf("Clamp(-5,1,3) = %d, expected 1", c)
	}
	if c := Clamp(2, 1, 3); c != 2 {
		t.Errorf("Clamp(2,1,3) = %d, expected 2", c)
	}
}

func TestExtent2D(t *testing.T) {
	e := Extent2DFromPoints([][2]float64{{1, 2}, {-3, 4}, {0, -1}})
	if e.P0 != [2]float64{-3, -1} || e.P1 != [2]float64{1, 4} {
		t.Errorf("unexpected extent %+v", e)
	}
	if e.Width() != 4 || e.Height() != 5 {
		t.Errorf("got width %f height %f, expected 4, 5", e.Width(), e.Height())
	}
	if c := e.Center(); c != [2]float64{-1, 1.5} {
		t.Errorf("got center %v, expected (-1, 1.5)", c)
	}
	if !e.Inside([2]float64{0, 0}) || e.Inside([2]float64{2, 0}) {
		t.Errorf("Inside failed for %+v", e)
	}

	empty := EmptyExtent2D()
	if !empty.IsEmpty() {
		t.Errorf("EmptyExtent2D not reported empty")
	}
	if !gomath.IsInf(empty.P0[0], 1) || !gomath.IsInf(empty.P1[1], -1) {
		t.Errorf("empty extent corners are not infinity sentinels: %+v", empty)
	}
	if e.IsEmpty() {
		t.Errorf("non-empty extent reported empty")
	}
}

func TestExtent2DOverlaps(t *testing.T) {
	a := Extent2D{P0: [2]float64{0, 0}, P1: [2]float64{2, 2}}
	b := Extent2D{P0: [2]float64{1, 1}, P1: [2]float64{3, 3}}
	c := Extent2D{P0: [2]float64{5, 5}, P1: [2]float64{6, 6}}
	if !Overlaps(a, b) {
		t.Errorf("expected %+v and %+v to overlap", a, b)
	}
	if Overlaps(a, c) {
		t.Errorf("did not expect %+v and %+v to overlap", a, c)
	}
}

func TestPointSegmentDistance(t *testing.T) {
	type testCase struct {
		p, v, w  [2]float64
		expected float64
	}
	for _, tc := range []testCase{
		// Perpendicular foot inside the segment
		{p: [2]float64{1, 1}, v: [2]float64{0, 0}, w: [2]float64{2, 0}, expected: 1},
		// Foot beyond the far endpoint; distance is to the endpoint
		{p: [2]float64{5, 0}, v: [2]float64{0, 0}, w: [2]float64{2, 0}, expected: 3},
		// Foot before the near endpoint
		{p: [2]float64{-3, 4}, v: [2]float64{0, 0}, w: [2]float64{2, 0}, expected: 5},
		// Degenerate zero-length segment
		{p: [2]float64{3, 4}, v: [2]float64{0, 0}, w: [2]float64{0, 0}, expected: 5},
	} {
		if d := PointSegmentDistance(tc.p, tc.v, tc.w); gomath.Abs(d-tc.expected) > 1e-12 {
			t.Errorf("PointSegmentDistance(%v, %v, %v) = %g, expected %g",
				tc.p, tc.v, tc.w, d, tc.expected)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize2([2]float64{3, 4})
	if gomath.Abs(n[0]-0.6) > 1e-12 || gomath.Abs(n[1]-0.8) > 1e-12 {
		t.Errorf("Normalize2(3,4) = %v", n)
	}
	if z := Normalize2([2]float64{0, 0}); z != [2]float64{0, 0} {
		t.Errorf("Normalize2 of zero vector = %v", z)
	}

	c := Cross3([3]float64{1, 0, 0}, [3]float64{0, 1, 0})
	if c != [3]float64{0, 0, 1} {
		t.Errorf("Cross3(x, y) = %v, expected z", c)
	}
}
