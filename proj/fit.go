// proj/fit.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package proj

import (
	"github.com/trailscape/trailscape/geo"
	"github.com/trailscape/trailscape/math"
)

const (
	// fitFactor is the fraction of the viewport the projected bounding
	// box is scaled to fill along its tighter axis.
	fitFactor = 0.95

	// boundarySamples is the number of segments each bounding-box edge is
	// sampled at when measuring the provisional projection's extent; the
	// conic projection curves the box edges, so corners alone undershoot.
	boundarySamples = 16

	// degenerateScale is the fixed pixel scale used when the bounding box
	// has no area to fit (e.g. a single-point track).
	degenerateScale = 150
)

// Fit derives the projection that maps the padded bounding box of all
// tracks into a width x height pixel viewport, scaled to fitFactor of the
// viewport and centered.
//
// The conic projection's pixel extent has no closed form for an arbitrary
// box, so the fit is two-pass: build a provisional unit-scale projection
// centered on the box, measure the projected boundary, then rebuild with
// the scale and translate that center it.
func Fit(tracks []geo.Track, width, height float64) *Albers {
	b := geo.BoundsOf(tracks)
	return FitBounds(b, width, height)
}

// FitBounds is Fit for an already-computed bounding box.
func FitBounds(b geo.BoundingBox, width, height float64) *Albers {
	centerLat, centerLng := b.Center()

	if b.IsDegenerate() || width <= 0 || height <= 0 {
		// Nothing to measure; a fixed small-scale projection centered on
		// the box still projects every point somewhere sensible.
		return NewAlbers(centerLat, centerLng, centerLat-1, centerLat+1,
			degenerateScale, width/2, height/2)
	}

	provisional := NewAlbers(centerLat, centerLng, b.MinLat, b.MaxLat, 1, 0, 0)

	ext := math.EmptyExtent2D()
	for _, p := range boundaryPolygon(b) {
		x, y := provisional.Project(p[0], p[1])
		ext = math.Union(ext, [2]float64{x, y})
	}

	// The provisional projection already flips y into screen space, so the
	// final pixel coordinates are an affine map of the measured ones:
	// scale about the extent center, then translate to the viewport center.
	scale := fitFactor / max(ext.Width()/width, ext.Height()/height)
	c := ext.Center()
	tx := width/2 - scale*c[0]
	ty := height/2 - scale*c[1]

	return NewAlbers(centerLat, centerLng, b.MinLat, b.MaxLat, scale, tx, ty)
}

// boundaryPolygon returns (lng, lat) samples along the box's four edges.
func boundaryPolygon(b geo.BoundingBox) [][2]float64 {
	pts := make([][2]float64, 0, 4*boundarySamples)
	for i := 0; i < boundarySamples; i++ {
		t := float64(i) / boundarySamples
		pts = append(pts,
			[2]float64{math.Lerp(t, b.MinLng, b.MaxLng), b.MinLat}, // south
			[2]float64{b.MaxLng, math.Lerp(t, b.MinLat, b.MaxLat)}, // east
			[2]float64{math.Lerp(t, b.MaxLng, b.MinLng), b.MaxLat}, // north
			[2]float64{b.MinLng, math.Lerp(t, b.MaxLat, b.MinLat)}, // west
		)
	}
	return pts
}
