// pipeline/pipeline.go
// Copyright(c) 2025 trailscape contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package pipeline orchestrates the reconstruction chain: fit projection,
// project tracks, build spatial indices, densify, and build the terrain
// mesh. Because the projection depends on the aggregate bounding box of
// the selected tracks, any selection or viewport change regenerates
// everything downstream; there is no incremental update path. Computed
// terrain is cached per (selection, method, density, viewport) so
// re-selecting a previously computed combination skips recomputation.
package pipeline

import (
	"slices"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/trailscape/trailscape/geo"
	"github.com/trailscape/trailscape/log"
	"github.com/trailscape/trailscape/proj"
	"github.com/trailscape/trailscape/spatial"
	"github.com/trailscape/trailscape/terrain"
)

// Options configures an Engine.
type Options struct {
	// CacheSize bounds the number of cached terrain results; 0 selects
	// the default.
	CacheSize int
}

const defaultCacheSize = 32

// Engine runs the pipeline and caches computed terrain. All computation
// is synchronous and single-threaded per invocation; the cache itself is
// safe for concurrent use.
type Engine struct {
	lg    *log.Logger
	cache *lru.Cache[terrainKey, *TerrainResult]
}

// terrainKey captures every option that changes the computed result, so
// a hit never returns terrain built with different settings. The mesh's
// track/segment/bounds inputs are derived from the selection and so are
// covered by it.
type terrainKey struct {
	selection   string // length-prefixed, sorted track ids
	method      terrain.Method
	density     float64
	width       float64
	height      float64
	rim         bool
	maxEdge     float64
	baseColor   string
	trailColor  string
	trailRadius float64
	debug       bool
}

// Scene is an immutable snapshot of everything derived from one track
// selection and viewport; it is replaced wholesale on any change.
type Scene struct {
	Tracks     []geo.Track
	Projection *proj.Albers
	Projected  []proj.ProjectedTrack
	Points     *spatial.PointIndex
	Segments   *spatial.SegmentIndex
	Width      float64
	Height     float64

	key string
}

// TerrainResult bundles the densified point cloud and the mesh built
// from it.
type TerrainResult struct {
	Dense terrain.DensifyResult
	Mesh  terrain.Mesh
}

func New(lg *log.Logger, opts Options) *Engine {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[terrainKey, *TerrainResult](size)
	return &Engine{lg: lg, cache: cache}
}

// BuildScene runs the upstream pipeline: projection fit over the
// selection's aggregate bounding box, projection of every track, and
// both spatial indices.
func (e *Engine) BuildScene(tracks []geo.Track, width, height float64) *Scene {
	s := &Scene{
		Tracks: tracks,
		Width:  width,
		Height: height,
		key:    selectionKey(tracks),
	}
	s.Projection = proj.Fit(tracks, width, height)
	s.Projected = proj.ProjectTracks(tracks, s.Projection)
	s.Points = spatial.BuildPointIndex(s.Projected)
	s.Segments = spatial.BuildSegmentIndex(s.Projected)

	e.lg.Debug("scene built",
		"tracks", len(tracks), "projected", len(s.Projected),
		"width", width, "height", height)
	return s
}

// Terrain densifies the scene and builds its mesh, consulting the result
// cache first. The returned result is shared with the cache and must be
// treated as immutable.
func (e *Engine) Terrain(s *Scene, dopts terrain.DensifyOptions, mopts terrain.MeshOptions) *TerrainResult {
	key := terrainKey{
		selection:   s.key,
		method:      dopts.Method,
		density:     dopts.Density,
		width:       s.Width,
		height:      s.Height,
		rim:         mopts.Rim,
		maxEdge:     mopts.MaxEdgeLength,
		baseColor:   mopts.BaseColor,
		trailColor:  mopts.TrailColor,
		trailRadius: mopts.TrailRadius,
		debug:       dopts.Debug || mopts.Debug,
	}
	if res, ok := e.cache.Get(key); ok {
		e.lg.Debug("terrain cache hit", "selection", s.key, "method", string(dopts.Method))
		return res
	}

	if dopts.Projection == nil {
		dopts.Projection = s.Projection
	}
	dense := terrain.Densify(s.Projected, s.Points, dopts, e.lg)

	if mopts.Tracks == nil {
		mopts.Tracks = s.Projected
	}
	if mopts.Segments == nil {
		mopts.Segments = s.Segments
	}
	if mopts.MapBounds.IsEmpty() {
		mopts.MapBounds = dense.Bounds
	}
	mesh := terrain.BuildMesh(dense.Points, mopts)

	res := &TerrainResult{Dense: dense, Mesh: mesh}
	e.cache.Add(key, res)
	return res
}

// InvalidateTerrain drops all cached results; callers use it when the
// underlying track data (not just the selection) has changed.
func (e *Engine) InvalidateTerrain() {
	e.cache.Purge()
}

// selectionKey builds a stable key from the sorted track ids. Each id is
// length-prefixed so ids containing any separator byte cannot make two
// distinct selections collide.
func selectionKey(tracks []geo.Track) string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	slices.Sort(ids)

	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(strconv.Itoa(len(id)))
		sb.WriteByte(':')
		sb.WriteString(id)
	}
	return sb.String()
}
