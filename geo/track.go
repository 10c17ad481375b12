// geo/track.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

// Track is the uniform internal record the rest of the pipeline consumes.
// Points is the recorded traversal order and defines the track's line
// segments; a track with fewer than two points cannot be rendered as a
// line. HasAltitude reports whether any point carries a measured altitude
// (as opposed to none, or the synthetic profile a projector may derive
// from TotalGain).
type Track struct {
	ID          string
	Name        string
	Points      []GeoPoint
	TotalGain   float64 // recorded total elevation gain, meters; 0 if unknown
	HasAltitude bool
}

// Renderable reports whether the track has enough points to draw as a line.
func (t Track) Renderable() bool { return len(t.Points) >= 2 }

// TrackSource is the tagged union of the two shapes the activity API
// returns track data in. Normalize converts either into a Track.
type TrackSource interface {
	Normalize() Track
}

// BasicTrack is a summary activity record: the route is only available as
// an encoded polyline, with no per-point altitude.
type BasicTrack struct {
	ID        string
	Name      string
	Polyline  string
	TotalGain float64
}

func (b BasicTrack) Normalize() Track {
	return Track{
		ID:        b.ID,
		Name:      b.Name,
		Points:    DecodePolyline(b.Polyline),
		TotalGain: b.TotalGain,
	}
}

// DetailedTrack is an activity with explicit high-fidelity point streams.
// Lats and Lngs must have equal length; Alts is optional and is only
// merged when its length matches (the streams API reports each at its own
// resolution). Polyline, if present, is the summary fallback used when
// the streams are empty — when streams exist they supersede it entirely.
type DetailedTrack struct {
	ID         string
	Name       string
	Lats, Lngs []float64
	Alts       []float64
	Polyline   string
	TotalGain  float64
}

func (d DetailedTrack) Normalize() Track {
	t := Track{ID: d.ID, Name: d.Name, TotalGain: d.TotalGain}

	n := min(len(d.Lats), len(d.Lngs))
	if n == 0 {
		t.Points = DecodePolyline(d.Polyline)
		return t
	}

	withAlt := len(d.Alts) == n
	t.Points = make([]GeoPoint, n)
	for i := range t.Points {
		t.Points[i] = GeoPoint{Lat: d.Lats[i], Lng: d.Lngs[i]}
		if withAlt {
			t.Points[i].Alt = d.Alts[i]
			t.Points[i].HasAlt = true
		}
	}
	t.HasAltitude = withAlt
	return t
}

// Normalize converts API-shaped records into the uniform internal form.
// Routeless tracks (no decodable polyline, no streams) are retained here;
// the projector drops them from rendering.
func Normalize(sources []TrackSource) []Track {
	tracks := make([]Track, 0, len(sources))
	for _, s := range sources {
		tracks = append(tracks, s.Normalize())
	}
	return tracks
}
