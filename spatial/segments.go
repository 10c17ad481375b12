// spatial/segments.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package spatial

import (
	"github.com/tidwall/rtree"

	"github.com/trailscape/trailscape/math"
	"github.com/trailscape/trailscape/proj"
)

// Segment is one consecutive-point segment of a projected track, with its
// bounding rectangle precomputed for bulk loading.
type Segment struct {
	P0, P1  [2]float64
	TrackID string
	Index   int // segment index within the owning track
	Length  float64
}

func (s Segment) bounds() (mn, mx [2]float64) {
	mn = [2]float64{min(s.P0[0], s.P1[0]), min(s.P0[1], s.P1[1])}
	mx = [2]float64{max(s.P0[0], s.P1[0]), max(s.P0[1], s.P1[1])}
	return
}

// SegmentIndex is a bounding-rectangle tree over all track segments.
type SegmentIndex struct {
	tr rtree.RTreeG[Segment]
	n  int
}

// BuildSegmentIndex loads every consecutive point pair of every track; it
// returns nil when no track has two or more points.
func BuildSegmentIndex(tracks []proj.ProjectedTrack) *SegmentIndex {
	idx := &SegmentIndex{}
	for _, t := range tracks {
		for i := 0; i+1 < len(t.Points); i++ {
			p0 := [2]float64{t.Points[i].X, t.Points[i].Y}
			p1 := [2]float64{t.Points[i+1].X, t.Points[i+1].Y}
			s := Segment{
				P0: p0, P1: p1,
				TrackID: t.ID,
				Index:   i,
				Length:  math.Distance2(p0, p1),
			}
			mn, mx := s.bounds()
			idx.tr.Insert(mn, mx, s)
			idx.n++
		}
	}
	if idx.n == 0 {
		return nil
	}
	return idx
}

// Len returns the number of indexed segments.
func (idx *SegmentIndex) Len() int { return idx.n }

// SegmentsNear returns the candidate segments whose bounding rectangles
// overlap the (x±r, y±r) query box. Candidates are not distance-refined;
// use NearAny for an exact test.
func (idx *SegmentIndex) SegmentsNear(x, y, r float64) []Segment {
	var out []Segment
	idx.tr.Search([2]float64{x - r, y - r}, [2]float64{x + r, y + r},
		func(mn, mx [2]float64, s Segment) bool {
			out = append(out, s)
			return true
		})
	return out
}

// NearAny reports whether (x, y) lies within distance r of any track
// segment, refining rectangle candidates with the exact clamped
// point-segment distance.
func (idx *SegmentIndex) NearAny(x, y, r float64) bool {
	q := [2]float64{x, y}
	r2 := r * r
	found := false
	idx.tr.Search([2]float64{x - r, y - r}, [2]float64{x + r, y + r},
		func(mn, mx [2]float64, s Segment) bool {
			if math.PointSegmentDistanceSquared(q, s.P0, s.P1) <= r2 {
				found = true
				return false // stop the search
			}
			return true
		})
	return found
}
