// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// tvert is one T-vertex on a weld-edge's sorted parameter list: some face
// has a winding vertex at origin + t*dir. The list is a sentinel-headed
// doubly-linked ring, ascending by t, with the sentinel holding t = +Inf so
// "insert before the first entry greater than t" never needs a nil check.
type tvert struct {
	t          float64
	prev, next *tvert
}

// weldEdge is one canonical infinite line and its sorted T-vertex list.
type weldEdge struct {
	origin, dir lin.V3
	sentinel    *tvert
}

func newWeldEdge(origin, dir lin.V3) *weldEdge {
	s := &tvert{t: math.Inf(1)}
	s.next, s.prev = s, s
	return &weldEdge{origin: origin, dir: dir, sentinel: s}
}

// insert adds t to the sorted list unless an entry within tEps already
// exists, matching §4.3 Phase 2's "skip within T_EPSILON" rule.
func (w *weldEdge) insert(t, tEps float64) {
	for cur := w.sentinel.next; cur != w.sentinel; cur = cur.next {
		if math.Abs(cur.t-t) <= tEps {
			return
		}
		if cur.t > t {
			nv := &tvert{t: t}
			nv.prev, nv.next = cur.prev, cur
			cur.prev.next = nv
			cur.prev = nv
			return
		}
	}
	nv := &tvert{t: t}
	nv.prev, nv.next = w.sentinel.prev, w.sentinel
	w.sentinel.prev.next = nv
	w.sentinel.prev = nv
}

// weldHash buckets weldEdges over the XY-plane of an entity's bounding box,
// per §4.3's 2D grid of WeldHashBuckets cells.
type weldHash struct {
	mins, maxs lin.V3
	scaleX     float64
	scaleY     float64
	n          int // grid side: bucket = row*n + col, so total cells n*n
	buckets    map[int][]*weldEdge
}

func newWeldHash(mins, maxs lin.V3, totalBuckets int) *weldHash {
	n := int(math.Sqrt(float64(totalBuckets)))
	if n < 1 {
		n = 1
	}
	dx := maxs.X - mins.X
	dy := maxs.Y - mins.Y
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	return &weldHash{
		mins: mins, maxs: maxs,
		scaleX:  float64(n) / dx,
		scaleY:  float64(n) / dy,
		n:       n,
		buckets: make(map[int][]*weldEdge),
	}
}

func (h *weldHash) cell(origin *lin.V3) int {
	col := int(math.Floor(h.scaleX * (origin.X - h.mins.X)))
	row := int(math.Floor(h.scaleY * (origin.Y - h.mins.Y)))
	if col < 0 {
		col = 0
	}
	if col >= h.n {
		col = h.n - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= h.n {
		row = h.n - 1
	}
	idx := row*h.n + col
	if idx < 0 {
		idx = 0
	}
	if idx >= h.n*h.n {
		idx = h.n*h.n - 1
	}
	return idx
}

// findOrCreate returns the weldEdge for (origin, dir), reusing an existing
// entry whose origin and dir match within eps per component.
func (h *weldHash) findOrCreate(origin, dir lin.V3, eps float64) *weldEdge {
	key := h.cell(&origin)
	for _, w := range h.buckets[key] {
		if w.origin.AeqEps(&origin, eps) && w.dir.AeqEps(&dir, eps) {
			return w
		}
	}
	w := newWeldEdge(origin, dir)
	h.buckets[key] = append(h.buckets[key], w)
	return w
}

// CanonicalVector derives the canonical (origin, dir) line representation
// for the segment p1->p2 per §4.3: dir is the unit p2-p1 oriented so its
// first non-zero component (x, then y, then z, at equalEps) is positive,
// and origin is the point on the line where t == 0. degenerate reports a
// direction whose length is below equalEps; the caller still gets a usable
// zero-vector line per §7's "warn, continue" rule.
func CanonicalVector(p1, p2 *lin.V3, equalEps float64) (origin, dir lin.V3, degenerate bool) {
	d := *lin.NewV3().Sub(p2, p1)
	length := d.Len()
	if length < equalEps {
		slog.Warn("bsp: degenerate edge in T-junction weld, using zero direction")
		return *p1, lin.V3{}, true
	}
	d.Unit()
	if math.Abs(d.X) < equalEps {
		d.X = 0
	}
	if math.Abs(d.Y) < equalEps {
		d.Y = 0
	}
	if math.Abs(d.Z) < equalEps {
		d.Z = 0
	}
	flip := false
	switch {
	case d.X != 0:
		flip = d.X < 0
	case d.Y != 0:
		flip = d.Y < 0
	default:
		flip = d.Z < 0
	}
	if flip {
		d = *lin.NewV3().Neg(&d)
	}
	t1 := d.Dot(p1)
	origin = *lin.NewV3().Scale(&d, -t1)
	origin.Add(&origin, p1)
	return origin, d, false
}

// TJuncStats counts the T-junction pass's effect, per §4.3's "Counters".
type TJuncStats struct {
	TJuncs     int // total inserted T-vertices
	TJuncFaces int // total face splits in phase 3b
}

// FixTJuncs finds every edge shared between faces in bundle and inserts
// missing vertices so no face has a neighbour's vertex embedded in one of
// its edges without being a vertex of its own, splitting any face that
// grows past cfg.MaxPoints. mins/maxs bound the entity for the weld-edge
// hash grid.
func FixTJuncs(bundle *FaceBundle, mins, maxs lin.V3, cfg *Config) (*TJuncStats, error) {
	hash := newWeldHash(mins, maxs, cfg.WeldHashBuckets)
	stats := &TJuncStats{}

	// Phase 1 - Count: establishes the allocation bound the source
	// preallocates from. This port grows slices on demand instead, but the
	// counted bound is still enforced as a hard cap so a producer bug that
	// would have overflowed the original's fixed pools is still caught.
	cWVerts, cWEdges := 0, 0
	bundle.AllFaces(func(f *Face) {
		cWVerts += 2 * len(f.Winding)
		cWEdges += len(f.Winding)
	})

	// Phase 2 - Find.
	insertedVerts := 0
	insertedEdges := 0
	bundle.AllFaces(func(f *Face) {
		n := len(f.Winding)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			p1, p2 := &f.Winding[i], &f.Winding[j]
			origin, dir, _ := CanonicalVector(p1, p2, cfg.EqualEpsilon)
			w := hash.findOrCreate(origin, dir, cfg.EqualEpsilon)
			insertedEdges++
			if insertedEdges > cWEdges {
				return
			}
			t1 := dir.Dot(p1) - dir.Dot(&origin)
			t2 := dir.Dot(p2) - dir.Dot(&origin)
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			before := countTVerts(w)
			w.insert(t1, cfg.TEpsilon)
			w.insert(t2, cfg.TEpsilon)
			insertedVerts += countTVerts(w) - before
			if insertedVerts > cWVerts {
				return
			}
		}
	})
	if insertedEdges > cWEdges {
		return nil, fmt.Errorf("tjunc: %w (%d edges)", ErrWeldEdgeCapacity, cWEdges)
	}
	if insertedVerts > cWVerts {
		return nil, fmt.Errorf("tjunc: %w (%d verts)", ErrWeldVertCapacity, cWVerts)
	}

	// Phase 3 / 3b - Fix and split, one plane bucket at a time so the
	// repaired list can be written back under the same plane key.
	for _, p := range bundle.Planes() {
		head := bundle.Faces(p)
		var newHead *Face
		for f := head; f != nil; f = f.next {
			fixed, err := fixOneFace(f, hash, cfg, stats)
			if err != nil {
				return nil, err
			}
			for _, piece := range fixed {
				appendFace(&newHead, piece)
			}
		}
		bundle.SetFaces(p, newHead)
	}

	return stats, nil
}

func countTVerts(w *weldEdge) int {
	n := 0
	for cur := w.sentinel.next; cur != w.sentinel; cur = cur.next {
		n++
	}
	return n
}

// fixOneFace runs Phase 3 (insert missing T-vertices until a pass adds
// none) followed by Phase 3b (split if the result exceeds MaxPoints) on a
// single face, returning the one or more faces that replace it.
func fixOneFace(f *Face, hash *weldHash, cfg *Config, stats *TJuncStats) ([]*Face, error) {
	super := make(Winding, len(f.Winding), cfg.MaxSuperfacePoints)
	copy(super, f.Winding)

	for {
		inserted := false
		n := len(super)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			p1, p2 := &super[i], &super[j]
			origin, dir, _ := CanonicalVector(p1, p2, cfg.EqualEpsilon)
			w := hash.findOrCreate(origin, dir, cfg.EqualEpsilon)

			t1 := dir.Dot(p1) - dir.Dot(&origin)
			t2 := dir.Dot(p2) - dir.Dot(&origin)
			swapped := false
			if t1 > t2 {
				t1, t2 = t2, t1
				swapped = true
			}

			cur := w.sentinel.next
			for cur != w.sentinel && cur.t <= t1+cfg.TEpsilon {
				cur = cur.next
			}
			if cur != w.sentinel && cur.t < t2-cfg.TEpsilon {
				pt := *lin.NewV3().Scale(&dir, cur.t)
				pt.Add(&pt, &origin)

				if len(super)+1 > cfg.MaxSuperfacePoints {
					return nil, fmt.Errorf("tjunc: %w (%d)", ErrSuperfaceCapacity, cfg.MaxSuperfacePoints)
				}
				insertAt := j
				if swapped {
					insertAt = i + 1
				}
				super = insertPoint(super, insertAt, pt)
				stats.TJuncs++
				inserted = true
				break
			}
		}
		if !inserted {
			break
		}
	}
	super = super.RemoveDegenerate(cfg.PointEpsilon)

	if len(super) <= cfg.MaxPoints {
		nf := NewFace(super, f.Plane, f.Side, f.TexInfo, f.LMShift, f.Contents)
		nf.owner = f.owner
		return []*Face{nf}, nil
	}
	return splitSuperface(f, super, cfg, stats), nil
}

func insertPoint(w Winding, at int, p lin.V3) Winding {
	w = append(w, lin.V3{})
	copy(w[at+1:], w[at:len(w)-1])
	w[at] = p
	return w
}

// splitSuperface carves an oversized fixed winding into a chain of faces
// each within MaxPoints, per §4.3 Phase 3b.
func splitSuperface(orig *Face, super Winding, cfg *Config, stats *TJuncStats) []*Face {
	var pieces []*Face
	remaining := super
	for len(remaining) > cfg.MaxPoints {
		firstCorner := findCorner(remaining, true, cfg.AngleEpsilon)
		lastCorner := findCorner(remaining, false, cfg.AngleEpsilon)

		// A found corner within two vertices of the chunk boundary would
		// make an awkward seam right at a real feature; rotate once and
		// retry. A winding with no detectable corner at all (every turn
		// below AngleEpsilon, e.g. a near-circular fan) never triggers
		// this - it always just cuts at MaxPoints.
		if firstCorner >= 0 && firstCorner >= cfg.MaxPoints-2 {
			remaining = rotateWinding(remaining, 1)
			continue
		}

		pieceSize := cfg.MaxPoints
		if firstCorner >= 0 && firstCorner+2 < pieceSize {
			pieceSize = firstCorner + 2
		}
		if lastCorner >= 0 && lastCorner+2 < pieceSize {
			pieceSize = lastCorner + 2
		}
		if pieceSize < 3 {
			pieceSize = 3
		}
		if pieceSize > len(remaining) {
			pieceSize = len(remaining)
		}

		piece := make(Winding, pieceSize)
		copy(piece, remaining[:pieceSize])
		pf := NewFace(piece, orig.Plane, orig.Side, orig.TexInfo, orig.LMShift, orig.Contents)
		pf.Original = orig
		pf.owner = orig.owner
		pieces = append(pieces, pf)
		stats.TJuncFaces++

		// shrink by (pieceSize - 2): the two cut vertices remain shared as
		// the new seam between piece and remaining.
		keep := pieceSize - 2
		next := make(Winding, 0, len(remaining)-keep)
		next = append(next, piece[len(piece)-1])
		next = append(next, remaining[pieceSize:]...)
		next = append(next, piece[0])
		remaining = next
	}

	rf := NewFace(remaining, orig.Plane, orig.Side, orig.TexInfo, orig.LMShift, orig.Contents)
	rf.Original = orig
	rf.owner = orig.owner
	pieces = append(pieces, rf)
	return pieces
}

// findCorner returns the first (forward=true) or last (forward=false)
// index >= 1 where the turn angle between consecutive edges exceeds
// angleEps, i.e. dot(edge_i, edge_{i+1}) deviates from 1 by more than
// angleEps.
func findCorner(w Winding, forward bool, angleEps float64) int {
	n := len(w)
	found := -1
	start, stop, step := 1, n, 1
	if !forward {
		start, stop, step = n-1, 0, -1
	}
	for i := start; i != stop; i += step {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		e1 := lin.NewV3().Sub(&w[i], &w[prev])
		e2 := lin.NewV3().Sub(&w[next], &w[i])
		e1.Unit()
		e2.Unit()
		if math.Abs(e1.Dot(e2)-1) > angleEps {
			found = i
			if forward {
				return found
			}
		}
	}
	return found
}

func rotateWinding(w Winding, by int) Winding {
	n := len(w)
	if n == 0 {
		return w
	}
	by = ((by % n) + n) % n
	out := make(Winding, n)
	copy(out, w[by:])
	copy(out[n-by:], w[:by])
	return out
}
