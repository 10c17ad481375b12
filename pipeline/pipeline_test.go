// pipeline/pipeline_test.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pipeline

import (
	"io"
	"testing"

	"github.com/trailscape/trailscape/geo"
	"github.com/trailscape/trailscape/log"
	"github.com/trailscape/trailscape/terrain"
)

func testTracks() []geo.Track {
	mk := func(id string, latOff float64) geo.Track {
		t := geo.Track{ID: id, Name: id, HasAltitude: true}
		for i := 0; i < 20; i++ {
			t.Points = append(t.Points, geo.GeoPoint{
				Lat:    47.0 + latOff + 0.001*float64(i),
				Lng:    9.0 + 0.002*float64(i),
				Alt:    400 + 10*float64(i),
				HasAlt: true,
			})
		}
		return t
	}
	return []geo.Track{mk("a", 0), mk("b", 0.01)}
}

func testEngine() *Engine {
	return New(log.NewWriter(io.Discard, "warn"), Options{})
}

func TestBuildScene(t *testing.T) {
	e := testEngine()
	s := e.BuildScene(testTracks(), 800, 600)

	if s.Projection == nil {
		t.Fatalf("no projection")
	}
	if len(s.Projected) != 2 {
		t.Fatalf("projected %d tracks, expected 2", len(s.Projected))
	}
	if s.Points == nil || s.Segments == nil {
		t.Errorf("missing spatial indices")
	}
	for _, pt := range s.Projected[0].Points {
		if pt.X < 0 || pt.X > 800 || pt.Y < 0 || pt.Y > 600 {
			t.Errorf("projected point (%v, %v) outside viewport", pt.X, pt.Y)
		}
	}
}

func TestBuildSceneEmpty(t *testing.T) {
	e := testEngine()
	s := e.BuildScene(nil, 800, 600)
	if s.Projection == nil {
		t.Fatalf("no projection for empty selection")
	}

	res := e.Terrain(s, terrain.DensifyOptions{Density: 1}, terrain.MeshOptions{})
	if len(res.Dense.Points) != 0 || len(res.Mesh.Indices) != 0 {
		t.Errorf("empty selection produced %d dense points, %d indices",
			len(res.Dense.Points), len(res.Mesh.Indices))
	}
}

func TestTerrainCache(t *testing.T) {
	e := testEngine()
	s := e.BuildScene(testTracks(), 800, 600)
	dopts := terrain.DensifyOptions{Method: terrain.MethodMLS, Density: 0.1}

	r1 := e.Terrain(s, dopts, terrain.MeshOptions{})
	if len(r1.Dense.Points) == 0 {
		t.Fatalf("no dense points")
	}
	r2 := e.Terrain(s, dopts, terrain.MeshOptions{})
	if r1 != r2 {
		t.Errorf("identical request missed the cache")
	}

	// A different method is a different entry.
	r3 := e.Terrain(s, terrain.DensifyOptions{Method: terrain.MethodInterpolation, Density: 0.1},
		terrain.MeshOptions{})
	if r3 == r1 {
		t.Errorf("different method returned the cached result")
	}

	// So is a different selection.
	s2 := e.BuildScene(testTracks()[:1], 800, 600)
	r4 := e.Terrain(s2, dopts, terrain.MeshOptions{})
	if r4 == r1 {
		t.Errorf("different selection returned the cached result")
	}

	e.InvalidateTerrain()
	r5 := e.Terrain(s, dopts, terrain.MeshOptions{})
	if r5 == r1 {
		t.Errorf("purged result still returned")
	}
}

func TestTerrainCacheMeshOptions(t *testing.T) {
	// Mesh options change the computed colors and geometry, so they are
	// part of the cache key: the same densify request with a different
	// trail radius or rim setting must not return the cached mesh.
	e := testEngine()
	s := e.BuildScene(testTracks(), 800, 600)
	dopts := terrain.DensifyOptions{Method: terrain.MethodMLS, Density: 0.1}

	r1 := e.Terrain(s, dopts, terrain.MeshOptions{TrailRadius: 5})
	r2 := e.Terrain(s, dopts, terrain.MeshOptions{TrailRadius: 50})
	if r1 == r2 {
		t.Errorf("different trail radius returned the cached result")
	}
	r3 := e.Terrain(s, dopts, terrain.MeshOptions{TrailRadius: 5, Rim: true})
	if r3 == r1 {
		t.Errorf("rim toggle returned the cached result")
	}
	if r4 := e.Terrain(s, dopts, terrain.MeshOptions{TrailRadius: 5}); r4 != r1 {
		t.Errorf("identical mesh options missed the cache")
	}
}

func TestSelectionKeyOrderIndependent(t *testing.T) {
	tr := testTracks()
	fwd := selectionKey(tr)
	rev := selectionKey([]geo.Track{tr[1], tr[0]})
	if fwd != rev {
		t.Errorf("selection key depends on order: %q vs %q", fwd, rev)
	}
}

func TestSelectionKeyNoCollisions(t *testing.T) {
	// Ids containing a would-be separator byte must not let distinct
	// selections share a key.
	a := selectionKey([]geo.Track{{ID: "a\x1fb"}, {ID: "c"}})
	b := selectionKey([]geo.Track{{ID: "a"}, {ID: "b\x1fc"}})
	if a == b {
		t.Errorf("distinct selections collide on key %q", a)
	}

	c := selectionKey([]geo.Track{{ID: "1:a"}, {ID: "b"}})
	d := selectionKey([]geo.Track{{ID: "1:a1:b"}})
	if c == d {
		t.Errorf("length-prefixed ids collide on key %q", c)
	}
}
