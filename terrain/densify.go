// terrain/densify.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package terrain synthesizes a dense terrain point cloud from sparse
// projected track samples and triangulates it into a renderable mesh.
package terrain

import (
	gomath "math"
	"time"

	"github.com/trailscape/trailscape/log"
	"github.com/trailscape/trailscape/math"
	"github.com/trailscape/trailscape/proj"
	"github.com/trailscape/trailscape/spatial"
)

// Method selects the densification strategy.
type Method string

const (
	MethodAuto          Method = "auto"
	MethodMLS           Method = "mls"
	MethodInterpolation Method = "interpolation"
	MethodDelaunay      Method = "delaunay"
)

// resolve maps "auto" (and anything unrecognized) to the default method.
func (m Method) resolve() Method {
	switch m {
	case MethodMLS, MethodInterpolation, MethodDelaunay:
		return m
	default:
		return MethodMLS
	}
}

// DensePoint is one synthesized terrain sample. Z is the interpolated
// altitude on the projector's normalized 0-100 scale (0 when no altitude
// data exists). Lat/Lng are best-effort inverse-projected coordinates and
// are 0 when no invertible projection was supplied.
type DensePoint struct {
	X, Y, Z  float64
	Lat, Lng float64
}

// DensifyOptions configures Densify.
type DensifyOptions struct {
	Method  Method
	Density float64 // requested points per unit distance; > 0
	Debug   bool
	// Projection, when non-nil, supplies best-effort lat/lng for each
	// dense point via inverse projection.
	Projection proj.Projection
}

// DensifyResult is a fresh point set covering the projected extent; it is
// recomputed wholesale on every invocation, never mutated in place.
type DensifyResult struct {
	Points []DensePoint
	Bounds math.Extent2D
	Diag   *Diag // populated when DensifyOptions.Debug is set
}

// Diag is informational debug output, not a stable contract.
type Diag struct {
	Method    string
	Points    int
	Triangles int
	Elapsed   time.Duration
}

// maxSamples caps the total grid size regardless of the requested
// density, so work stays bounded even for very large extents.
const maxSamples = 200000

// grid is the quantized sampling lattice shared by all three strategies,
// so that they emit points at identical positions for identical inputs.
type grid struct {
	origin [2]float64
	step   float64
	nx, ny int
}

func makeGrid(bounds math.Extent2D, density float64) grid {
	if density <= 0 {
		density = 1
	}
	step := 1 / density
	if a := bounds.Area(); a > 0 {
		// Never exceed ~maxSamples cells over the bounding area.
		step = max(step, gomath.Sqrt(a/maxSamples))
	}
	return grid{
		origin: bounds.P0,
		step:   step,
		nx:     int(bounds.Width()/step) + 1,
		ny:     int(bounds.Height()/step) + 1,
	}
}

func (g grid) at(ix, iy int) (float64, float64) {
	return g.origin[0] + float64(ix)*g.step, g.origin[1] + float64(iy)*g.step
}

// cell quantizes a position to grid indices, clamped into range.
func (g grid) cell(x, y float64) (int, int) {
	ix := int(gomath.Round((x - g.origin[0]) / g.step))
	iy := int(gomath.Round((y - g.origin[1]) / g.step))
	return math.Clamp(ix, 0, g.nx-1), math.Clamp(iy, 0, g.ny-1)
}

// Densify produces a dense, regularly sampled point set with interpolated
// altitude covering the projected extent of the tracks. idx may be nil,
// in which case a point index is built internally. A panic in the
// selected strategy is recovered: the result falls back to the
// interpolation method and a warning is logged, so densification always
// returns some result.
func Densify(tracks []proj.ProjectedTrack, idx *spatial.PointIndex, opts DensifyOptions, lg *log.Logger) DensifyResult {
	start := time.Now()

	bounds := math.EmptyExtent2D()
	for _, t := range tracks {
		for _, p := range t.Points {
			bounds = math.Union(bounds, [2]float64{p.X, p.Y})
		}
	}
	if bounds.IsEmpty() {
		res := DensifyResult{Bounds: bounds}
		if opts.Debug {
			res.Diag = &Diag{Method: string(opts.Method.resolve()), Elapsed: time.Since(start)}
		}
		return res
	}

	if idx == nil {
		idx = spatial.BuildPointIndex(tracks)
	}
	g := makeGrid(bounds, opts.Density)
	method := opts.Method.resolve()

	pts, ok := runStrategy(method, tracks, idx, g, lg)
	if !ok && method != MethodInterpolation {
		lg.Warnf("densify: %s strategy failed, retrying with interpolation", method)
		method = MethodInterpolation
		pts, _ = runStrategy(method, tracks, idx, g, lg)
	}

	if opts.Projection != nil {
		for i := range pts {
			if lng, lat, ok := opts.Projection.Invert(pts[i].X, pts[i].Y); ok {
				pts[i].Lng, pts[i].Lat = lng, lat
			}
		}
	}

	res := DensifyResult{Points: pts, Bounds: bounds}
	if opts.Debug {
		res.Diag = &Diag{
			Method:  string(method),
			Points:  len(pts),
			Elapsed: time.Since(start),
		}
	}
	return res
}

// runStrategy dispatches to the selected strategy, recovering any panic
// so the caller can fall back.
func runStrategy(m Method, tracks []proj.ProjectedTrack, idx *spatial.PointIndex, g grid, lg *log.Logger) (pts []DensePoint, ok bool) {
	ok = true
	defer lg.Catch(func(any) { pts, ok = nil, false })

	switch m {
	case MethodInterpolation:
		if !hasAltitude(tracks) {
			// Nothing to interpolate; fail closed to an empty output.
			return nil, true
		}
		pts = interpolateNearest(idx, g)
	case MethodDelaunay:
		pts = barycentric(tracks, g)
	default:
		pts = mlsSmooth(idx, g)
	}
	return
}

// hasAltitude reports whether any projected sample carries an altitude
// (measured or synthetic); without one the interpolation strategy fails
// closed to an empty output.
func hasAltitude(tracks []proj.ProjectedTrack) bool {
	for _, t := range tracks {
		if t.HasAltitudeData {
			return true
		}
		for _, p := range t.Points {
			if p.HasAlt || p.Alt != 0 {
				return true
			}
		}
	}
	return false
}
