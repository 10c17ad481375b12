// geo/polyline.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import gomath "math"

// The encoded polyline format stores a coordinate sequence as
// delta-encoded integers at 1e-5 degree precision, each written as a
// little-endian sequence of 5-bit groups offset into printable ASCII,
// with the 0x20 bit marking continuation.
// https://developers.google.com/maps/documentation/utilities/polylinealgorithm

const polylinePrecision = 1e5

// DecodePolyline decodes an encoded polyline string. Malformed input
// never produces an error: decoding returns nil and the caller treats the
// track as routeless. The encoding carries no altitude, so all returned
// points have HasAlt == false.
func DecodePolyline(encoded string) []GeoPoint {
	var points []GeoPoint
	index, lat, lng := 0, 0, 0

	decodeValue := func() (int, bool) {
		shift, result := 0, 0
		for {
			if index >= len(encoded) {
				return 0, false
			}
			b := int(encoded[index]) - 63
			if b < 0 {
				return 0, false
			}
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		// Zigzag: odd values are negated complements
		if result&1 != 0 {
			return ^(result >> 1), true
		}
		return result >> 1, true
	}

	for index < len(encoded) {
		dLat, ok := decodeValue()
		if !ok {
			return nil
		}
		dLng, ok := decodeValue()
		if !ok {
			return nil
		}
		lat += dLat
		lng += dLng
		points = append(points, GeoPoint{
			Lat: float64(lat) / polylinePrecision,
			Lng: float64(lng) / polylinePrecision,
		})
	}
	return points
}

// EncodePolyline is the inverse of DecodePolyline; altitude is not
// representable and is dropped.
func EncodePolyline(points []GeoPoint) string {
	result := make([]byte, 0, len(points)*12)
	prevLat, prevLng := 0, 0
	for _, p := range points {
		lat := int(gomath.Round(p.Lat * polylinePrecision))
		lng := int(gomath.Round(p.Lng * polylinePrecision))
		result = appendSigned(result, lat-prevLat)
		result = appendSigned(result, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return string(result)
}

func appendSigned(dst []byte, v int) []byte {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		dst = append(dst, byte((0x20|(u&0x1f))+63))
		u >>= 5
	}
	return append(dst, byte(u+63))
}
