// terrain/mesh.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	gomath "math"
	"time"

	"github.com/fogleman/delaunay"

	"github.com/trailscape/trailscape/math"
	"github.com/trailscape/trailscape/proj"
	"github.com/trailscape/trailscape/spatial"
)

// Mesh is a triangulated terrain surface: flat arrays of vertex
// positions, per-vertex colors, and triangle index triples. Every index
// is < len(Positions), and no kept triangle has an edge longer than the
// configured maximum.
type Mesh struct {
	Positions [][3]float64
	Colors    [][3]float64 // r, g, b in [0, 1]
	Indices   []int32
	Diag      *Diag // populated when MeshOptions.Debug is set
}

// MeshOptions configures BuildMesh.
type MeshOptions struct {
	// Tracks supplies the brute-force trail-proximity fallback used when
	// Segments is nil.
	Tracks []proj.ProjectedTrack
	// Segments, when non-nil, accelerates trail-proximity queries.
	Segments *spatial.SegmentIndex
	// MapBounds is the viewport-space extent the rim extends the mesh to.
	MapBounds math.Extent2D
	// Rim appends flat zero-altitude boundary points along MapBounds'
	// edges so the surface reaches the viewport instead of stopping at
	// data coverage.
	Rim bool
	// MaxEdgeLength filters out triangles with any longer edge,
	// preventing long skinny triangles bridging unrelated data clusters.
	// Zero means estimate it as mean nearest-neighbor spacing x 6.
	MaxEdgeLength float64
	// BaseColor/TrailColor are hex colors; zero values get defaults.
	BaseColor  string
	TrailColor string
	// TrailRadius is the trail-highlight distance; zero means 7.5% of
	// half the shorter MapBounds dimension.
	TrailRadius float64
	Debug       bool
}

const (
	defaultBaseColor  = "#3a7d44"
	defaultTrailColor = "#d35400"

	// Triangle edges up to this multiple of the mean nearest-neighbor
	// spacing are kept when no explicit maximum is configured.
	edgeSpacingFactor = 6

	// Trail highlight distance as a fraction of the characteristic
	// radius (half the shorter map dimension).
	trailRadiusFraction = 0.075

	// Final vertex color is this fraction shaded color, remainder trail
	// highlight, for vertices on a trail.
	trailBlend = 0.4
)

// BuildMesh triangulates the dense point set and colors its vertices.
// Fewer than three input points yields an empty mesh.
func BuildMesh(dense []DensePoint, opts MeshOptions) Mesh {
	start := time.Now()
	if len(dense) < 3 {
		return Mesh{}
	}

	maxEdge := opts.MaxEdgeLength
	if maxEdge <= 0 {
		maxEdge = meanNeighborSpacing(dense) * edgeSpacingFactor
	}

	positions := make([][3]float64, 0, len(dense))
	for _, p := range dense {
		positions = append(positions, [3]float64{p.X, p.Y, p.Z})
	}
	if opts.Rim && !opts.MapBounds.IsEmpty() {
		positions = append(positions, rimPoints(opts.MapBounds, maxEdge/2)...)
	}

	pts := make([]delaunay.Point, len(positions))
	for i, p := range positions {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		// Collinear input; nothing renderable.
		return Mesh{}
	}

	// Drop triangles with an over-long edge.
	maxEdge2 := maxEdge * maxEdge
	indices := make([]int32, 0, len(tri.Triangles))
	for t := 0; t+2 < len(tri.Triangles); t += 3 {
		i0, i1, i2 := tri.Triangles[t], tri.Triangles[t+1], tri.Triangles[t+2]
		if edge2(positions[i0], positions[i1]) > maxEdge2 ||
			edge2(positions[i1], positions[i2]) > maxEdge2 ||
			edge2(positions[i2], positions[i0]) > maxEdge2 {
			continue
		}
		indices = append(indices, int32(i0), int32(i1), int32(i2))
	}

	normals := vertexNormals(positions, indices)
	colors := vertexColors(positions, normals, opts, maxEdge)

	m := Mesh{Positions: positions, Colors: colors, Indices: indices}
	if opts.Debug {
		m.Diag = &Diag{
			Method:    "mesh",
			Points:    len(positions),
			Triangles: len(indices) / 3,
			Elapsed:   time.Since(start),
		}
	}
	return m
}

// edge2 is the squared length of the xy-projected edge between vertices.
func edge2(a, b [3]float64) float64 {
	return math.DistanceSquared2([2]float64{a[0], a[1]}, [2]float64{b[0], b[1]})
}

// meanNeighborSpacing estimates the mean nearest-neighbor distance from a
// strided subset of the points.
func meanNeighborSpacing(dense []DensePoint) float64 {
	const maxProbes = 64
	stride := max(1, len(dense)/maxProbes)

	var sum float64
	var n int
	for i := 0; i < len(dense); i += stride {
		best := gomath.Inf(1)
		for j := range dense {
			if i == j {
				continue
			}
			d2 := math.DistanceSquared2(
				[2]float64{dense[i].X, dense[i].Y},
				[2]float64{dense[j].X, dense[j].Y})
			best = min(best, d2)
		}
		if !gomath.IsInf(best, 1) && best > 0 {
			sum += gomath.Sqrt(best)
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

// rimPoints synthesizes flat boundary points spaced along the four map
// edges.
func rimPoints(b math.Extent2D, spacing float64) [][3]float64 {
	if spacing <= 0 {
		return nil
	}
	var out [][3]float64
	nx := max(2, int(gomath.Ceil(b.Width()/spacing))+1)
	ny := max(2, int(gomath.Ceil(b.Height()/spacing))+1)
	for i := 0; i < nx; i++ {
		x := math.Lerp(float64(i)/float64(nx-1), b.P0[0], b.P1[0])
		out = append(out, [3]float64{x, b.P0[1], 0}, [3]float64{x, b.P1[1], 0})
	}
	for i := 1; i < ny-1; i++ { // corners already emitted
		y := math.Lerp(float64(i)/float64(ny-1), b.P0[1], b.P1[1])
		out = append(out, [3]float64{b.P0[0], y, 0}, [3]float64{b.P1[0], y, 0})
	}
	return out
}

// vertexNormals accumulates area-weighted face normals per vertex and
// normalizes.
func vertexNormals(positions [][3]float64, indices []int32) [][3]float64 {
	normals := make([][3]float64, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		fn := math.Cross3(
			math.Sub3(positions[i1], positions[i0]),
			math.Sub3(positions[i2], positions[i0]))
		normals[i0] = math.Add3(normals[i0], fn)
		normals[i1] = math.Add3(normals[i1], fn)
		normals[i2] = math.Add3(normals[i2], fn)
	}
	for i := range normals {
		n := math.Normalize3(normals[i])
		if n == ([3]float64{}) {
			n = [3]float64{0, 0, 1} // isolated vertex; treat as flat
		}
		if n[2] < 0 {
			n = math.Scale3(n, -1) // orient upward; winding is arbitrary
		}
		normals[i] = n
	}
	return normals
}
