// spatial/points.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package spatial provides the two immutable indices built over a set of
// projected tracks: a point index for radius queries and a segment index
// for "is this near any track" queries. Both are build-once; any change
// to the track selection rebuilds them from scratch.
package spatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"

	"github.com/trailscape/trailscape/math"
	"github.com/trailscape/trailscape/proj"
)

// TrackPoint is one projected sample in the point index, tagged with its
// owning track and position within it.
type TrackPoint struct {
	X, Y    float64
	Alt     float64
	TrackID string
	Index   int
}

func (p TrackPoint) Point() orb.Point { return orb.Point{p.X, p.Y} }

// PointIndex answers radius queries over all projected track points.
type PointIndex struct {
	qt *quadtree.Quadtree
	n  int
}

// BuildPointIndex indexes every point of every track; it returns nil when
// there are no points at all.
func BuildPointIndex(tracks []proj.ProjectedTrack) *PointIndex {
	ext := math.EmptyExtent2D()
	n := 0
	for _, t := range tracks {
		for _, p := range t.Points {
			ext = math.Union(ext, [2]float64{p.X, p.Y})
			n++
		}
	}
	if n == 0 {
		return nil
	}

	qt := quadtree.New(orb.Bound{
		Min: orb.Point{ext.P0[0], ext.P0[1]},
		Max: orb.Point{ext.P1[0], ext.P1[1]},
	})
	for _, t := range tracks {
		for i, p := range t.Points {
			// Add only fails for points outside the bound, which cannot
			// happen since the bound was just computed over them.
			_ = qt.Add(TrackPoint{X: p.X, Y: p.Y, Alt: p.Alt, TrackID: t.ID, Index: i})
		}
	}
	return &PointIndex{qt: qt, n: n}
}

// Len returns the number of indexed points.
func (idx *PointIndex) Len() int { return idx.n }

// QueryRadius returns all points within Euclidean distance r of (x, y):
// a rectangular prefilter through the quadtree followed by an exact
// squared-distance check.
func (idx *PointIndex) QueryRadius(x, y, r float64) []TrackPoint {
	ptrs := idx.qt.InBound(nil, orb.Bound{
		Min: orb.Point{x - r, y - r},
		Max: orb.Point{x + r, y + r},
	})

	var out []TrackPoint
	r2 := r * r
	for _, p := range ptrs {
		tp := p.(TrackPoint)
		if math.DistanceSquared2([2]float64{x, y}, [2]float64{tp.X, tp.Y}) <= r2 {
			out = append(out, tp)
		}
	}
	return out
}

// Nearest returns the closest indexed point within distance r of (x, y).
func (idx *PointIndex) Nearest(x, y, r float64) (TrackPoint, bool) {
	ptrs := idx.qt.KNearest(nil, orb.Point{x, y}, 1, r)
	if len(ptrs) == 0 {
		return TrackPoint{}, false
	}
	return ptrs[0].(TrackPoint), true
}
