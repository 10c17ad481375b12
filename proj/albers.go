// proj/albers.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package proj fits an equal-area conic map projection to a set of
// geographic tracks and a pixel viewport, and projects tracks through it.
package proj

import (
	gomath "math"
)

// Projection maps geographic (lng, lat) degrees to pixel (x, y), with y
// growing downward. Implementations are stateless once constructed and
// are reused across every point of every track.
type Projection interface {
	Project(lng, lat float64) (x, y float64)
	// Invert is best-effort: ok is false where the pixel position has no
	// geographic preimage.
	Invert(x, y float64) (lng, lat float64, ok bool)
}

// Albers is an equal-area conic projection (unit sphere) composed with a
// pixel-space scale and translate. When the standard parallels are
// symmetric about the equator the cone degenerates; the projection then
// falls back to the cylindrical equal-area limit.
type Albers struct {
	n, c, rho0 float64
	lam0       float64 // central longitude, radians
	cosPar     float64 // cylindrical limit: cosine of the standard parallel
	cyl        bool
	scale      float64
	tx, ty     float64
}

// NewAlbers returns an Albers projection centered on (centerLat,
// centerLng) with standard parallels par1 and par2, all in degrees.
// Pixel coordinates are x*scale + tx, ty - y*scale.
func NewAlbers(centerLat, centerLng, par1, par2, scale, tx, ty float64) *Albers {
	phi0 := radians(centerLat)
	phi1 := radians(par1)
	phi2 := radians(par2)

	a := &Albers{lam0: radians(centerLng), scale: scale, tx: tx, ty: ty}

	a.n = (gomath.Sin(phi1) + gomath.Sin(phi2)) / 2
	if gomath.Abs(a.n) < 1e-9 {
		// Parallels symmetric about the equator; use the cylindrical
		// equal-area limit, referenced to the center latitude so a
		// whole-domain fit keeps a sane aspect ratio.
		a.cyl = true
		a.cosPar = max(gomath.Cos(phi0), 1e-6)
		return a
	}

	a.c = sqr(gomath.Cos(phi1)) + 2*a.n*gomath.Sin(phi1)
	a.rho0 = a.rho(phi0)
	return a
}

func (a *Albers) rho(phi float64) float64 {
	// The radicand is negative only for latitudes outside the cone's
	// projectable range; clamp so those collapse to the apex.
	return gomath.Sqrt(max(0, a.c-2*a.n*gomath.Sin(phi))) / a.n
}

// project maps to unit (pre-scale) coordinates with y growing upward.
func (a *Albers) project(lng, lat float64) (float64, float64) {
	phi := radians(lat)
	dlam := radians(lng) - a.lam0

	if a.cyl {
		return dlam * a.cosPar, gomath.Sin(phi) / a.cosPar
	}

	theta := a.n * dlam
	rho := a.rho(phi)
	return rho * gomath.Sin(theta), a.rho0 - rho*gomath.Cos(theta)
}

func (a *Albers) Project(lng, lat float64) (x, y float64) {
	ux, uy := a.project(lng, lat)
	return a.scale*ux + a.tx, a.ty - a.scale*uy
}

func (a *Albers) Invert(x, y float64) (lng, lat float64, ok bool) {
	ux := (x - a.tx) / a.scale
	uy := (a.ty - y) / a.scale

	if a.cyl {
		s := uy * a.cosPar
		if s < -1 || s > 1 {
			return 0, 0, false
		}
		return degrees(ux/a.cosPar + a.lam0), degrees(gomath.Asin(s)), true
	}

	dy := a.rho0 - uy
	rho := gomath.Sqrt(ux*ux + dy*dy)
	if a.n < 0 {
		rho = -rho
		ux, dy = -ux, -dy
	}
	if rho == 0 {
		return 0, 0, false
	}

	s := (a.c - sqr(rho*a.n)) / (2 * a.n)
	if s < -1 || s > 1 {
		return 0, 0, false
	}
	theta := gomath.Atan2(ux, dy)
	return degrees(a.lam0 + theta/a.n), degrees(gomath.Asin(s)), true
}

func radians(d float64) float64 { return d / 180 * gomath.Pi }
func degrees(r float64) float64 { return r * 180 / gomath.Pi }
func sqr(x float64) float64     { return x * x }
