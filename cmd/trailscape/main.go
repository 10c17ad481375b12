// cmd/trailscape/main.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// trailscape reads GPX files, reconstructs a terrain mesh around the
// tracks, and writes a 2D track overview PNG and/or the mesh as a
// Wavefront OBJ with per-vertex colors.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/trailscape/trailscape/geo"
	"github.com/trailscape/trailscape/log"
	"github.com/trailscape/trailscape/pipeline"
	"github.com/trailscape/trailscape/terrain"
)

var (
	width    = flag.Int("width", 1024, "Viewport width in pixels")
	height   = flag.Int("height", 768, "Viewport height in pixels")
	method   = flag.String("method", "auto", "Densification method: auto, mls, interpolation, delaunay")
	density  = flag.Float64("density", 0.25, "Terrain samples per pixel along each axis")
	pngOut   = flag.String("out", "", "Write a 2D track overview PNG to this path")
	objOut   = flag.String("obj", "", "Write the terrain mesh as a Wavefront OBJ to this path")
	logLevel = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	debug    = flag.Bool("debug", false, "Report densification and mesh diagnostics")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: trailscape [flags] file.gpx...\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func errorExit(msg string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if len(flag.Args()) == 0 || (*pngOut == "" && *objOut == "") {
		usage()
	}

	lg := log.NewWriter(os.Stderr, *logLevel)

	var tracks []geo.Track
	for _, fn := range flag.Args() {
		ts, err := loadGPX(fn)
		errorExit(fn, err)
		for _, tr := range ts {
			lg.Debug("track", "id", tr.ID, "name", tr.Name, "points", len(tr.Points),
				"gain", tr.TotalGain, "polyline", geo.EncodePolyline(tr.Points))
		}
		tracks = append(tracks, ts...)
	}
	if len(tracks) == 0 {
		errorExit("no tracks", fmt.Errorf("none of the input files contained track points"))
	}
	lg.Info("loaded tracks", "files", len(flag.Args()), "tracks", len(tracks))

	eng := pipeline.New(lg, pipeline.Options{})
	scene := eng.BuildScene(tracks, float64(*width), float64(*height))

	if *pngOut != "" {
		errorExit(*pngOut, writePNG(*pngOut, scene))
		lg.Info("wrote overview", "path", *pngOut)
	}

	if *objOut != "" {
		res := eng.Terrain(scene,
			terrain.DensifyOptions{Method: terrain.Method(*method), Density: *density, Debug: *debug},
			terrain.MeshOptions{Rim: true, Debug: *debug})
		if *debug && res.Dense.Diag != nil {
			lg.Info("densify", "method", res.Dense.Diag.Method, "points", res.Dense.Diag.Points,
				"elapsed", res.Dense.Diag.Elapsed)
		}
		if *debug && res.Mesh.Diag != nil {
			lg.Info("mesh", "vertices", res.Mesh.Diag.Points, "triangles", res.Mesh.Diag.Triangles,
				"elapsed", res.Mesh.Diag.Elapsed)
		}
		errorExit(*objOut, writeOBJ(*objOut, res.Mesh))
		lg.Info("wrote mesh", "path", *objOut, "vertices", len(res.Mesh.Positions),
			"triangles", len(res.Mesh.Indices)/3)
	}
}

// loadGPX flattens one GPX file into tracks, one per <trk>, merging all
// of a track's segments. Elevation is optional per point.
func loadGPX(fn string) ([]geo.Track, error) {
	g, err := gpx.ParseFile(fn)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))

	var tracks []geo.Track
	for i, trk := range g.Tracks {
		t := geo.Track{
			ID:   fmt.Sprintf("%s-%d", base, i),
			Name: trk.Name,
		}
		if t.Name == "" {
			t.Name = base
		}

		prevAlt, havePrev := 0.0, false
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				gp := geo.GeoPoint{Lat: p.Latitude, Lng: p.Longitude}
				if p.Elevation.NotNull() {
					gp.Alt = p.Elevation.Value()
					gp.HasAlt = true
					t.HasAltitude = true
					if havePrev && gp.Alt > prevAlt {
						t.TotalGain += gp.Alt - prevAlt
					}
					prevAlt, havePrev = gp.Alt, true
				}
				t.Points = append(t.Points, gp)
			}
		}
		if len(t.Points) > 0 {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

// writePNG renders the projected tracks over a plain background, each in
// its assigned palette color.
func writePNG(fn string, s *pipeline.Scene) error {
	dc := gg.NewContext(int(s.Width), int(s.Height))
	dc.SetHexColor("#1b1b1f")
	dc.Clear()

	dc.SetLineWidth(2)
	for _, t := range s.Projected {
		dc.SetHexColor(t.Color)
		for i, p := range t.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.Stroke()
	}
	return dc.SavePNG(fn)
}

// writeOBJ writes the mesh with per-vertex colors using the widespread
// "v x y z r g b" extension; faces are 1-based.
func writeOBJ(fn string, m terrain.Mesh) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	for i, p := range m.Positions {
		c := [3]float64{0.5, 0.5, 0.5}
		if i < len(m.Colors) {
			c = m.Colors[i]
		}
		fmt.Fprintf(w, "v %g %g %g %.4f %.4f %.4f\n", p[0], p[1], p[2], c[0], c[1], c[2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		fmt.Fprintf(w, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
