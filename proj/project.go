// proj/project.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package proj

import (
	gomath "math"

	"github.com/trailscape/trailscape/geo"
)

// ProjectedPoint is a track sample in pixel space. Alt is the altitude
// normalized to [0, 100] across the whole projection pass (for vertical
// exaggeration in 3D); it is 0 when no altitude data exists. HasAlt marks
// samples that carry an altitude (measured or synthetic), letting
// altitude consumers skip the rest rather than read their zero Alt as
// sea level.
type ProjectedPoint struct {
	X, Y   float64
	Alt    float64
	HasAlt bool
}

// ProjectedTrack is a track in pixel space. Tracks are created fresh on
// every projection pass and never mutated: the projection parameters
// depend on the aggregate bounding box of all selected tracks, so any
// change to the selection recomputes everything.
//
// HasAltitudeData is false when the Alt values are synthetic (derived
// from the activity's total elevation gain rather than measured), letting
// consumers skip elevation-dependent effects for low-fidelity data.
type ProjectedTrack struct {
	ID, Name        string
	Color           string
	Points          []ProjectedPoint
	HasAltitudeData bool
}

// Palette is the categorical track color cycle; track i out of the
// retained set gets Palette[i % len(Palette)], so a stable track ordering
// gives stable coloring across re-renders.
var Palette = [10]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// ProjectTracks projects every point of every track, dropping tracks with
// no decodable route data. Altitude is normalized to [0, 100] using the
// min/max over all points that carry altitude; if no track carries any,
// a synthetic half-sine profile scaled by each activity's total elevation
// gain is substituted (and flagged via HasAltitudeData == false).
func ProjectTracks(tracks []geo.Track, p Projection) []ProjectedTrack {
	measured := false
	for _, t := range tracks {
		measured = measured || t.HasAltitude
	}

	// Altitude extrema for normalization: measured samples if any exist,
	// otherwise the synthetic profiles.
	minAlt, maxAlt := gomath.Inf(1), gomath.Inf(-1)
	for _, t := range tracks {
		for i, pt := range t.Points {
			if alt, ok := altitudeOf(t, i, pt, measured); ok {
				minAlt = min(minAlt, alt)
				maxAlt = max(maxAlt, alt)
			}
		}
	}
	span := maxAlt - minAlt

	var projected []ProjectedTrack
	for _, t := range tracks {
		if len(t.Points) == 0 {
			continue
		}

		pt := ProjectedTrack{
			ID:              t.ID,
			Name:            t.Name,
			Color:           Palette[len(projected)%len(Palette)],
			Points:          make([]ProjectedPoint, len(t.Points)),
			HasAltitudeData: measured && t.HasAltitude,
		}
		for i, gp := range t.Points {
			x, y := p.Project(gp.Lng, gp.Lat)
			pt.Points[i] = ProjectedPoint{X: x, Y: y}
			if alt, ok := altitudeOf(t, i, gp, measured); ok {
				pt.Points[i].HasAlt = true
				if span > 0 {
					pt.Points[i].Alt = (alt - minAlt) / span * 100
				}
			}
		}
		projected = append(projected, pt)
	}
	return projected
}

// altitudeOf returns the altitude used for point i of track t: the
// measured sample when the pass has measured data, else the synthetic
// half-sine profile when the activity recorded a total gain.
func altitudeOf(t geo.Track, i int, p geo.GeoPoint, measured bool) (float64, bool) {
	if measured {
		return p.Alt, p.HasAlt
	}
	if t.TotalGain > 0 && len(t.Points) > 1 {
		return t.TotalGain * gomath.Sin(gomath.Pi*float64(i)/float64(len(t.Points)-1)), true
	}
	return 0, false
}
