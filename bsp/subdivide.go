// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"log/slog"
	"math"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// SubdivideFace splits f in place when its textured extent on either
// texture axis exceeds the subdivision limit, splicing the resulting chain
// into the intrusive list f currently occupies. prevNext is the link that
// currently points at f (either another face's next field or a list head);
// SubdivideFace repoints it as the chain grows.
//
// texOf resolves a texinfo index to its record - subdivide only needs the
// texture axes and flags, never the full upstream texinfo table.
func SubdivideFace(f *Face, prevNext **Face, cfg *Config, texOf func(i int) TexInfo) {
	tex := texOf(f.TexInfo)
	if !tex.Flags.Subdivided() || !cfg.Game.SurfIsSubdivided(tex.Flags) {
		return
	}

	subdiv := cfg.subdivLimit(f.LMShift[0])
	if f.LMShift[1] > f.LMShift[0] {
		// keep the smaller of the two limits. A larger LMShift[1] can only
		// raise 255<<shift, so subdiv stays at LMShift[0]'s limit and one
		// limit feeds both axis checks.
		if alt := cfg.subdivLimit(f.LMShift[1]); alt < subdiv {
			subdiv = alt
		}
	}

	// every piece carved from f chains onto f's original successor, so the
	// walk stops there and never touches the faces that follow f.
	stop := f.next
	for axis := 0; axis < 2; axis++ {
		// The raw (non-unit) projection vector is passed through: its
		// length carries the texture scale, and extent/distance must be
		// measured in that texel-scale space, not normalized world-space,
		// per §4.1 step 1.
		dir := tex.Vecs[axis]
		subdivideAxis(prevNext, stop, &dir, subdiv, cfg)
	}
}

// subdivideAxis walks the chain anchored at *link up to (not including)
// stop, splitting every face in it whose extent along rawDir exceeds
// subdiv, and re-walking any newly produced back piece so both halves are
// checked in turn. link is updated in place as pieces are spliced in, so
// the caller's anchor always points at the surviving head of the chain.
// rawDir is the texture projection vector as the texinfo stores it - not
// unit length - since the extent comparison against subdiv is defined in
// that texel-scale space.
func subdivideAxis(link **Face, stop *Face, rawDir *lin.V3, subdiv float64, cfg *Config) {
	cur := *link
	for cur != stop {
		next := cur.next
		if splitOneFace(cur, link, rawDir, subdiv, cfg) {
			// cur was replaced by (back, front); re-scan starting at back,
			// which *link now points to, without advancing past front yet.
			cur = *link
			continue
		}
		link = &cur.next
		cur = next
	}
}

// splitOneFace attempts one split of face f along rawDir. On success it
// replaces f at *link with back, chains front after it, and returns true so
// the caller re-examines the (possibly still oversized) back piece. It
// returns false when f fits within subdiv or a split could not be made.
//
// mins/maxs/extent are measured with the raw (non-unit) texture projection
// vector, matching subdiv's texel-scale units; the resulting split plane's
// normal is a separately normalized copy, and the split distance is
// rescaled back into world units by dividing by rawDir's own length - the
// same two-vector relationship the source's surfaces.cc keeps between its
// unit-length split normal and its raw-vector mins/maxs/v.
func splitOneFace(f *Face, link **Face, rawDir *lin.V3, subdiv float64, cfg *Config) bool {
	mins, maxs := f.Winding.TextureExtent(rawDir)
	mins = math.Floor(mins)
	maxs = math.Ceil(maxs)
	extent := maxs - mins
	if extent <= subdiv {
		return false
	}

	v := rawDir.Len()
	unitDir := *rawDir
	unitDir.Unit()

	dist := (mins + subdiv - cfg.SubdivideBias) / v
	plane := Plane{Normal: unitDir, Dist: dist}

	frontW, backW := SplitWinding(f.Winding, plane, cfg.PointEpsilon)
	if len(frontW) == 0 || len(backW) == 0 {
		slog.Warn("bsp: subdivide produced an empty side, keeping face whole",
			"plane", f.Plane, "texinfo", f.TexInfo)
		return false
	}

	back := NewFace(backW, f.Plane, f.Side, f.TexInfo, f.LMShift, f.Contents)
	front := NewFace(frontW, f.Plane, f.Side, f.TexInfo, f.LMShift, f.Contents)

	front.next = f.next
	back.next = front
	*link = back
	return true
}
