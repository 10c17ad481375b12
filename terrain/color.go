// terrain/color.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/trailscape/trailscape/math"
)

// Shading weights: normalized altitude brightens, slope darkens and
// saturates.
const (
	altitudeLightness = 0.25
	slopeLightness    = 0.20
	slopeSaturation   = 0.30
)

// vertexColors shades each vertex from the base color by altitude and
// slope, then blends in the trail highlight for vertices near any
// original track segment.
func vertexColors(positions, normals [][3]float64, opts MeshOptions, maxEdge float64) [][3]float64 {
	base := hexOr(opts.BaseColor, defaultBaseColor)
	trail := hexOr(opts.TrailColor, defaultTrailColor)
	h, s, l := base.Hsl()

	trailRadius := opts.TrailRadius
	if trailRadius <= 0 {
		char := maxEdge
		if !opts.MapBounds.IsEmpty() {
			char = min(opts.MapBounds.Width(), opts.MapBounds.Height()) / 2
		}
		trailRadius = trailRadiusFraction * char
	}

	colors := make([][3]float64, len(positions))
	for i, p := range positions {
		slope := 1 - math.Abs(normals[i][2])
		shaded := colorful.Hsl(h,
			math.Clamp(s+slope*slopeSaturation, 0, 1),
			math.Clamp(l+p[2]/100*altitudeLightness-slope*slopeLightness, 0, 1))

		if nearTrail(p[0], p[1], trailRadius, opts) {
			shaded = shaded.BlendRgb(trail, trailBlend)
		}

		colors[i] = [3]float64{
			math.Clamp(shaded.R, 0, 1),
			math.Clamp(shaded.G, 0, 1),
			math.Clamp(shaded.B, 0, 1),
		}
	}
	return colors
}

// nearTrail tests proximity to any original track segment, through the
// segment index when one was built and by brute force otherwise.
func nearTrail(x, y, r float64, opts MeshOptions) bool {
	if opts.Segments != nil {
		return opts.Segments.NearAny(x, y, r)
	}
	q := [2]float64{x, y}
	r2 := r * r
	for _, t := range opts.Tracks {
		for i := 0; i+1 < len(t.Points); i++ {
			p0 := [2]float64{t.Points[i].X, t.Points[i].Y}
			p1 := [2]float64{t.Points[i+1].X, t.Points[i+1].Y}
			if math.PointSegmentDistanceSquared(q, p0, p1) <= r2 {
				return true
			}
		}
	}
	return false
}

func hexOr(hex, fallback string) colorful.Color {
	if hex != "" {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	c, _ := colorful.Hex(fallback)
	return c
}
