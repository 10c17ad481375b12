// geo/polyline_test.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	gomath "math"
	"math/rand"
	"testing"
)

func TestDecodePolyline(t *testing.T) {
	// Reference example from the polyline format documentation.
	pts := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	expected := []GeoPoint{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	if len(pts) != len(expected) {
		t.Fatalf("got %d points, expected %d", len(pts), len(expected))
	}
	for i, p := range pts {
		if gomath.Abs(p.Lat-expected[i].Lat) > 1e-5 || gomath.Abs(p.Lng-expected[i].Lng) > 1e-5 {
			t.Errorf("point %d: got (%v, %v), expected (%v, %v)",
				i, p.Lat, p.Lng, expected[i].Lat, expected[i].Lng)
		}
		if p.HasAlt {
			t.Errorf("point %d: polyline decode should not produce altitude", i)
		}
	}
}

func TestDecodePolylineMalformed(t *testing.T) {
	// Truncated and out-of-range inputs must decode to nil, not panic or
	// return partial garbage.
	for _, enc := range []string{
		"_p~iF~ps|U_",       // truncated mid-varint
		"\x1f\x1f",          // bytes below the encoding offset
		"_p~iF",             // latitude without longitude
		string([]byte{200}), // high byte with continuation bit never cleared
	} {
		if pts := DecodePolyline(enc); pts != nil {
			t.Errorf("%q: got %d points from malformed input, expected none", enc, len(pts))
		}
	}

	if pts := DecodePolyline(""); len(pts) != 0 {
		t.Errorf("empty string decoded to %d points", len(pts))
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := 1 + r.Intn(50)
		pts := make([]GeoPoint, n)
		for i := range pts {
			pts[i] = GeoPoint{
				Lat: -90 + 180*r.Float64(),
				Lng: -180 + 360*r.Float64(),
			}
		}

		dec := DecodePolyline(EncodePolyline(pts))
		if len(dec) != n {
			t.Fatalf("trial %d: round trip gave %d points, expected %d", trial, len(dec), n)
		}
		for i := range pts {
			if gomath.Abs(dec[i].Lat-pts[i].Lat) > 1e-5 {
				t.Errorf("trial %d point %d: lat %v -> %v", trial, i, pts[i].Lat, dec[i].Lat)
			}
			if gomath.Abs(dec[i].Lng-pts[i].Lng) > 1e-5 {
				t.Errorf("trial %d point %d: lng %v -> %v", trial, i, pts[i].Lng, dec[i].Lng)
			}
		}
	}
}
