// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"fmt"
	"math"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// vertexEntry is one registered point in the vertex dedup table.
type vertexEntry struct {
	p   lin.V3
	idx int
}

// edgeEntry is one emitted edge pending possible reuse by a later face, per
// §3's edge dedup table.
type edgeEntry struct {
	v1, v2       int
	idx          int
	face0, face1 *Face
}

// Dedup owns the vertex/edge dedup tables and the output tables they feed,
// scoped to a single entity build per §5's ownership rules.
type Dedup struct {
	cfg *Config

	vertBuckets map[[3]int][]*vertexEntry
	Vertexes    []lin.V3

	edgeBuckets map[[2]int][]*edgeEntry
	Edges       [][2]int // dedges[i], i >= 1; index 0 is reserved
}

// NewDedup returns an empty dedup table with dedges[0] reserved, matching
// the output file format's "index 0 reserved" convention.
func NewDedup(cfg *Config) *Dedup {
	return &Dedup{
		cfg:         cfg,
		vertBuckets: make(map[[3]int][]*vertexEntry),
		edgeBuckets: make(map[[2]int][]*edgeEntry),
		Edges:       [][2]int{{0, 0}},
	}
}

// snap rounds each component of p to the nearest integer when within
// ZeroEpsilon of it, per §4.4's GetVertex first step.
func (d *Dedup) snap(p lin.V3) lin.V3 {
	snapAxis := func(v float64) float64 {
		r := math.Round(v)
		if math.Abs(v-r) <= d.cfg.ZeroEpsilon {
			return r
		}
		return v
	}
	return lin.V3{X: snapAxis(p.X), Y: snapAxis(p.Y), Z: snapAxis(p.Z)}
}

func cellOf(p *lin.V3) [3]int {
	return [3]int{int(math.Floor(p.X)), int(math.Floor(p.Y)), int(math.Floor(p.Z))}
}

// GetVertex returns the stable output index for p, interning a new vertex
// if no existing entry is within PointEpsilon per component.
func (d *Dedup) GetVertex(p lin.V3) int {
	p = d.snap(p)
	cell := cellOf(&p)
	for _, e := range d.vertBuckets[cell] {
		if e.p.AeqEps(&p, d.cfg.PointEpsilon) {
			return e.idx
		}
	}

	idx := len(d.Vertexes)
	d.Vertexes = append(d.Vertexes, p)
	entry := &vertexEntry{p: p, idx: idx}

	// register at the 8 cells spanning p +/- PointEpsilon on each axis so a
	// probe at +/-PointEpsilon always finds this vertex regardless of which
	// side of a cell boundary it queries from.
	eps := d.cfg.PointEpsilon
	base := [3]int{int(math.Floor(p.X - eps)), int(math.Floor(p.Y - eps)), int(math.Floor(p.Z - eps))}
	for dx := 0; dx <= 1; dx++ {
		for dy := 0; dy <= 1; dy++ {
			for dz := 0; dz <= 1; dz++ {
				c := [3]int{base[0] + dx, base[1] + dy, base[2] + dz}
				d.vertBuckets[c] = append(d.vertBuckets[c], entry)
			}
		}
	}
	return idx
}

// GetEdge returns the signed edge index for the directed edge p1->p2 owned
// by face requester, reusing a matching reverse edge when one is available
// per §3/§4.4's reuse rule, or emitting a new edge otherwise.
func (d *Dedup) GetEdge(p1, p2 lin.V3, requester *Face) (int32, error) {
	if requester.Contents < ContentsEmpty || requester.Contents > ContentsDetail {
		return 0, fmt.Errorf("dedup: %w", ErrInvalidContents)
	}

	v1 := d.GetVertex(p1)
	v2 := d.GetVertex(p2)

	for _, e := range d.edgeBuckets[[2]int{v2, v1}] {
		if e.face1 == nil && e.face0.Contents == requester.Contents {
			e.face1 = requester
			return -int32(e.idx), nil
		}
	}

	idx := len(d.Edges)
	d.Edges = append(d.Edges, [2]int{v1, v2})
	e := &edgeEntry{v1: v1, v2: v2, idx: idx, face0: requester}
	key := [2]int{v1, v2}
	d.edgeBuckets[key] = append(d.edgeBuckets[key], e)
	return int32(idx), nil
}
