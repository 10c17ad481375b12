// math/vec.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// Various useful functions for arithmetic with 2D and 3D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2(a, b [2]float64) [2]float64 {
	return [2]float64{a[0] + b[0], a[1] + b[1]}
}

// midpoint of a and b
func Mid2(a, b [2]float64) [2]float64 {
	return Scale2(Add2(a, b), 0.5)
}

// a-b
func Sub2(a, b [2]float64) [2]float64 {
	return [2]float64{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2(a [2]float64, s float64) [2]float64 {
	return [2]float64{s * a[0], s * a[1]}
}

func Dot(a, b [2]float64) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Length of v
func Length2(v [2]float64) float64 {
	return gomath.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Distance between two points
func Distance2(a, b [2]float64) float64 {
	return Length2(Sub2(a, b))
}

// Squared distance between two points; avoids the square root when only
// comparisons against a squared radius are needed.
func DistanceSquared2(a, b [2]float64) float64 {
	d := Sub2(a, b)
	return d[0]*d[0] + d[1]*d[1]
}

// Normalizes the given vector.
func Normalize2(a [2]float64) [2]float64 {
	l := Length2(a)
	if l == 0 {
		return [2]float64{0, 0}
	}
	return Scale2(a, 1/l)
}

///////////////////////////////////////////////////////////////////////////
// 3D, for terrain vertex normals

func Add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3(a [3]float64, s float64) [3]float64 {
	return [3]float64{s * a[0], s * a[1], s * a[2]}
}

func Cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length3(v [3]float64) float64 {
	return gomath.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func Normalize3(a [3]float64) [3]float64 {
	l := Length3(a)
	if l == 0 {
		return [3]float64{0, 0, 0}
	}
	return Scale3(a, 1/l)
}
