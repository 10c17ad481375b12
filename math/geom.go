// math/geom.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float64
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
// The corners are infinity sentinels so that any Union gives a valid box.
func EmptyExtent2D() Extent2D {
	inf := gomath.Inf(1)
	return Extent2D{P0: [2]float64{inf, inf}, P1: [2]float64{-inf, -inf}}
}

// Extent2DFromPoints returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromPoints(pts [][2]float64) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		e = Union(e, p)
	}
	return e
}

func (e Extent2D) Width() float64 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float64 {
	return e.P1[1] - e.P0[1]
}

func (e Extent2D) Area() float64 {
	return e.Width() * e.Height()
}

func (e Extent2D) Center() [2]float64 {
	return [2]float64{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2}
}

// IsEmpty reports whether the extent has been updated from its initial
// inverted state; an extent built from zero points is empty.
func (e Extent2D) IsEmpty() bool {
	return e.P0[0] > e.P1[0] || e.P0[1] > e.P1[1]
}

// Expand expands the extent by the given distance in all directions.
func (e Extent2D) Expand(d float64) Extent2D {
	return Extent2D{
		P0: [2]float64{e.P0[0] - d, e.P0[1] - d},
		P1: [2]float64{e.P1[0] + d, e.P1[1] + d}}
}

func (e Extent2D) Inside(p [2]float64) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

// Overlaps returns true if the two provided Extent2Ds overlap.
func Overlaps(a Extent2D, b Extent2D) bool {
	x := (a.P1[0] >= b.P0[0]) && (a.P0[0] <= b.P1[0])
	y := (a.P1[1] >= b.P0[1]) && (a.P0[1] <= b.P1[1])
	return x && y
}

func Union(e Extent2D, p [2]float64) Extent2D {
	e.P0[0] = min(e.P0[0], p[0])
	e.P0[1] = min(e.P0[1], p[1])
	e.P1[0] = max(e.P1[0], p[0])
	e.P1[1] = max(e.P1[1], p[1])
	return e
}

///////////////////////////////////////////////////////////////////////////
// Geometry

// PointSegmentDistance returns the minimum distance between the line
// segment vw and the point p.
// https://stackoverflow.com/a/1501725
func PointSegmentDistance(p, v, w [2]float64) float64 {
	return gomath.Sqrt(PointSegmentDistanceSquared(p, v, w))
}

// PointSegmentDistanceSquared is PointSegmentDistance without the final
// square root: the closest point on vw to p is v + t*(w-v) with
// t = clamp(((p-v)·(w-v))/|w-v|², 0, 1).
func PointSegmentDistanceSquared(p, v, w [2]float64) float64 {
	l := Sub2(w, v)
	l2 := Dot(l, l)
	if l2 == 0 {
		return DistanceSquared2(p, v)
	}
	t := Clamp(Dot(Sub2(p, v), l)/l2, 0, 1)
	proj := Add2(v, Scale2(l, t))
	return DistanceSquared2(p, proj)
}
