// terrain/strategies.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	gomath "math"

	"github.com/fogleman/delaunay"

	"github.com/trailscape/trailscape/proj"
	"github.com/trailscape/trailscape/spatial"
)

// searchRadiusSteps sets the sample search radius for the nearest and MLS
// strategies as a multiple of the grid step.
const searchRadiusSteps = 2

// interpolateNearest assigns each grid cell the altitude of the nearest
// original sample within the search radius; cells with no sample in range
// are skipped.
func interpolateNearest(idx *spatial.PointIndex, g grid) []DensePoint {
	if idx == nil {
		return nil
	}
	radius := searchRadiusSteps * g.step

	var out []DensePoint
	for iy := 0; iy < g.ny; iy++ {
		for ix := 0; ix < g.nx; ix++ {
			x, y := g.at(ix, iy)
			if p, ok := idx.Nearest(x, y, radius); ok {
				out = append(out, DensePoint{X: x, Y: y, Z: p.Alt})
			}
		}
	}
	return out
}

// mlsSmooth computes a Gaussian-weighted moving-least-squares average of
// neighboring sample altitudes at each grid cell; cells whose
// neighborhood carries no weight are skipped. Sigma is derived from the
// search radius, putting the radius edge at two standard deviations.
func mlsSmooth(idx *spatial.PointIndex, g grid) []DensePoint {
	if idx == nil {
		return nil
	}
	radius := searchRadiusSteps * g.step
	sigma := radius / 2
	inv2s2 := 1 / (2 * sigma * sigma)

	var out []DensePoint
	for iy := 0; iy < g.ny; iy++ {
		for ix := 0; ix < g.nx; ix++ {
			x, y := g.at(ix, iy)
			var wsum, zsum float64
			for _, p := range idx.QueryRadius(x, y, radius) {
				d2 := (p.X-x)*(p.X-x) + (p.Y-y)*(p.Y-y)
				w := gomath.Exp(-d2 * inv2s2)
				wsum += w
				zsum += w * p.Alt
			}
			if wsum > 0 {
				out = append(out, DensePoint{X: x, Y: y, Z: zsum / wsum})
			}
		}
	}
	return out
}

// barycentricTolerance tolerates boundary rounding when testing whether a
// grid cell lies inside a triangle.
const barycentricTolerance = -1e-6

// barycentric triangulates the original altitude-bearing samples and
// fills each triangle's footprint on the grid with barycentrically
// interpolated altitude. Samples without altitude are excluded: their
// zero Alt would read as sea level and pull interpolated z toward a
// false plateau. Cells shared by adjacent triangles are emitted once,
// deduplicated by quantized grid index.
func barycentric(tracks []proj.ProjectedTrack, g grid) []DensePoint {
	var samples []delaunay.Point
	var alts []float64
	for _, t := range tracks {
		for _, p := range t.Points {
			if !p.HasAlt {
				continue
			}
			samples = append(samples, delaunay.Point{X: p.X, Y: p.Y})
			alts = append(alts, p.Alt)
		}
	}
	if len(samples) < 3 {
		return nil
	}

	tri, err := delaunay.Triangulate(samples)
	if err != nil {
		// Collinear input and the like; the caller falls back.
		panic(err)
	}

	seen := make(map[int]struct{})
	var out []DensePoint
	for t := 0; t+2 < len(tri.Triangles); t += 3 {
		a := samples[tri.Triangles[t]]
		b := samples[tri.Triangles[t+1]]
		c := samples[tri.Triangles[t+2]]
		za := alts[tri.Triangles[t]]
		zb := alts[tri.Triangles[t+1]]
		zc := alts[tri.Triangles[t+2]]

		// Rasterize the triangle's bounding box on the grid.
		ix0, iy0 := g.cell(min(a.X, b.X, c.X), min(a.Y, b.Y, c.Y))
		ix1, iy1 := g.cell(max(a.X, b.X, c.X), max(a.Y, b.Y, c.Y))

		d00x, d00y := b.X-a.X, b.Y-a.Y
		d11x, d11y := c.X-a.X, c.Y-a.Y
		denom := d00x*d11y - d11x*d00y
		if denom == 0 {
			continue // degenerate triangle
		}

		for iy := iy0; iy <= iy1; iy++ {
			for ix := ix0; ix <= ix1; ix++ {
				key := iy*g.nx + ix
				if _, dup := seen[key]; dup {
					continue
				}
				x, y := g.at(ix, iy)
				px, py := x-a.X, y-a.Y
				// Barycentric weights of b and c; a gets the remainder.
				wb := (px*d11y - d11x*py) / denom
				wc := (d00x*py - px*d00y) / denom
				wa := 1 - wb - wc
				if wa < barycentricTolerance || wb < barycentricTolerance || wc < barycentricTolerance {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, DensePoint{X: x, Y: y, Z: wa*za + wb*zb + wc*zc})
			}
		}
	}
	return out
}
