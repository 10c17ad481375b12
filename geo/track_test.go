// geo/track_test.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	gomath "math"
	"testing"
)

func TestBoundsOf(t *testing.T) {
	tracks := []Track{
		{Points: []GeoPoint{{Lat: 10, Lng: 20}, {Lat: 20, Lng: 40}}},
		{Points: []GeoPoint{{Lat: 15, Lng: 25}}},
	}
	b := BoundsOf(tracks)

	// Raw extent is lat [10,20], lng [20,40]; each side padded by 10% of
	// the span.
	if gomath.Abs(b.MinLat-9) > 1e-12 || gomath.Abs(b.MaxLat-21) > 1e-12 {
		t.Errorf("lat bounds [%v, %v], expected [9, 21]", b.MinLat, b.MaxLat)
	}
	if gomath.Abs(b.MinLng-18) > 1e-12 || gomath.Abs(b.MaxLng-42) > 1e-12 {
		t.Errorf("lng bounds [%v, %v], expected [18, 42]", b.MinLng, b.MaxLng)
	}
	if b.IsDegenerate() {
		t.Errorf("non-degenerate box reported degenerate")
	}
}

func TestBoundsOfEmpty(t *testing.T) {
	b := BoundsOf(nil)
	if b != FullDomain() {
		t.Errorf("empty input: got %+v, expected the full lat/lng domain", b)
	}

	// Tracks that exist but carry no points also fall back.
	b = BoundsOf([]Track{{ID: "a"}, {ID: "b"}})
	if b != FullDomain() {
		t.Errorf("routeless tracks: got %+v, expected the full lat/lng domain", b)
	}
}

func TestBoundsOfSinglePoint(t *testing.T) {
	b := BoundsOf([]Track{{Points: []GeoPoint{{Lat: 37, Lng: -122}}}})
	if !b.IsDegenerate() {
		t.Errorf("single point should give a degenerate box, got %+v", b)
	}
	lat, lng := b.Center()
	if lat != 37 || lng != -122 {
		t.Errorf("degenerate box center (%v, %v), expected (37, -122)", lat, lng)
	}
}

func TestNormalizeBasicTrack(t *testing.T) {
	enc := EncodePolyline([]GeoPoint{{Lat: 38.5, Lng: -120.2}, {Lat: 40.7, Lng: -120.95}})
	tr := BasicTrack{ID: "1", Name: "ride", Polyline: enc, TotalGain: 321}.Normalize()

	if tr.ID != "1" || tr.Name != "ride" || tr.TotalGain != 321 {
		t.Errorf("metadata not carried through: %+v", tr)
	}
	if len(tr.Points) != 2 || tr.HasAltitude {
		t.Errorf("got %d points, HasAltitude=%v; expected 2 points without altitude",
			len(tr.Points), tr.HasAltitude)
	}
	if !tr.Renderable() {
		t.Errorf("two-point track should be renderable")
	}

	// A malformed polyline yields a routeless track, not an error.
	bad := BasicTrack{ID: "2", Polyline: "_p~iF"}.Normalize()
	if len(bad.Points) != 0 || bad.Renderable() {
		t.Errorf("malformed polyline: got %d points", len(bad.Points))
	}
}

func TestNormalizeDetailedTrack(t *testing.T) {
	d := DetailedTrack{
		ID:   "3",
		Lats: []float64{1, 2, 3},
		Lngs: []float64{4, 5, 6},
		Alts: []float64{100, 110, 105},
		// An intentionally different polyline: the streams must win.
		Polyline: EncodePolyline([]GeoPoint{{Lat: 9, Lng: 9}}),
	}
	tr := d.Normalize()
	if len(tr.Points) != 3 || !tr.HasAltitude {
		t.Fatalf("got %d points, HasAltitude=%v", len(tr.Points), tr.HasAltitude)
	}
	if tr.Points[1] != (GeoPoint{Lat: 2, Lng: 5, Alt: 110, HasAlt: true}) {
		t.Errorf("unexpected point %+v", tr.Points[1])
	}

	// Altitude stream of mismatched length is not merged point-by-point.
	d.Alts = []float64{100}
	tr = d.Normalize()
	if tr.HasAltitude || tr.Points[0].HasAlt {
		t.Errorf("mismatched altitude stream should be dropped")
	}

	// Empty streams fall back to the polyline.
	tr = DetailedTrack{ID: "4", Polyline: d.Polyline}.Normalize()
	if len(tr.Points) != 1 || tr.Points[0].Lat != 9 {
		t.Errorf("polyline fallback failed: %+v", tr.Points)
	}
}
