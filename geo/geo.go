// geo/geo.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo holds the geographic data model for recorded activity
// tracks: raw latitude/longitude/altitude samples, the encoded-polyline
// codec used by activity APIs, and the normalization from API-shaped
// track records into the uniform internal Track.
package geo

// GeoPoint is a single recorded sample. Altitude is optional; HasAlt
// reports whether Alt holds a measured value.
type GeoPoint struct {
	Lat, Lng float64
	Alt      float64
	HasAlt   bool
}

// BoundingBox is a geographic bounding box. MinLat <= MaxLat and
// MinLng <= MaxLng always hold for boxes returned by BoundsOf.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// FullDomain is the fallback box covering the entire valid lat/lng range;
// it is used when no track contributes any points.
func FullDomain() BoundingBox {
	return BoundingBox{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}
}

// Center returns the geographic centroid of the box.
func (b BoundingBox) Center() (lat, lng float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2
}

// IsDegenerate reports whether the box has zero span in either axis, in
// which case it cannot be fit to a viewport directly.
func (b BoundingBox) IsDegenerate() bool {
	return b.MaxLat <= b.MinLat || b.MaxLng <= b.MinLng
}

// boundsAccum is the running state of the extrema scan in BoundsOf.
type boundsAccum struct {
	minLat, maxLat float64
	minLng, maxLng float64
	seen           bool
}

func (a boundsAccum) add(p GeoPoint) boundsAccum {
	if !a.seen {
		return boundsAccum{p.Lat, p.Lat, p.Lng, p.Lng, true}
	}
	return boundsAccum{
		min(a.minLat, p.Lat), max(a.maxLat, p.Lat),
		min(a.minLng, p.Lng), max(a.maxLng, p.Lng),
		true,
	}
}

// BoundsOf folds all tracks' points into a bounding box, then pads each
// side by 10% of the corresponding span so that tracks aren't clipped at
// the viewport edge. With no points at all it returns the full lat/lng
// domain.
func BoundsOf(tracks []Track) BoundingBox {
	acc := boundsAccum{}
	for _, t := range tracks {
		for _, p := range t.Points {
			acc = acc.add(p)
		}
	}
	if !acc.seen {
		return FullDomain()
	}

	padLat := 0.1 * (acc.maxLat - acc.minLat)
	padLng := 0.1 * (acc.maxLng - acc.minLng)
	return BoundingBox{
		MinLat: acc.minLat - padLat,
		MaxLat: acc.maxLat + padLat,
		MinLng: acc.minLng - padLng,
		MaxLng: acc.maxLng + padLng,
	}
}
