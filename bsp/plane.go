// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"math"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// Plane is a unit normal plus signed distance from the origin:
// dot(Normal, p) - Dist == 0 for any point p on the plane.
type Plane struct {
	Normal lin.V3
	Dist   float64
}

// negate returns the plane with the opposite facing.
func (p Plane) negate() Plane {
	return Plane{Normal: lin.V3{X: -p.Normal.X, Y: -p.Normal.Y, Z: -p.Normal.Z}, Dist: -p.Dist}
}

// Distance returns the signed distance of point p from the plane.
func (p Plane) Distance(pt *lin.V3) float64 {
	n := p.Normal
	return n.Dot(pt) - p.Dist
}

// planesEqual reports whether a and b are the same plane within the given
// positional/directional tolerances: pointEps for the distance, equalEps
// for each normal component.
func planesEqual(a, b Plane, pointEps, equalEps float64) bool {
	return a.Normal.AeqEps(&b.Normal, equalEps) && lin.AeqEps(a.Dist, b.Dist, pointEps)
}

// canonicalize picks one of {p, -p} as the stored direction: the one whose
// first non-zero normal component (checked x, y, z) is positive. It reports
// whether p had to be flipped to reach that canonical direction - that flip
// is exactly the per-face side bit of §3.
func canonicalize(p Plane) (cp Plane, flipped bool) {
	lead := p.Normal.X
	if lin.AeqZ(lead) {
		lead = p.Normal.Y
		if lin.AeqZ(lead) {
			lead = p.Normal.Z
		}
	}
	if lead < 0 {
		return p.negate(), true
	}
	return p, false
}

// planeHash derives a bucket key from the plane equation. Planes that are
// equal within tolerance always land in the same bucket because the
// quantization step is coarser than the equality epsilon used to compare
// candidates within a bucket.
func planeHash(p Plane) int {
	const quantum = 8.0 // coarser than PointEpsilon/EqualEpsilon
	qx := int(math.Floor(p.Normal.X * quantum))
	qy := int(math.Floor(p.Normal.Y * quantum))
	qz := int(math.Floor(p.Normal.Z * quantum))
	qd := int(math.Floor(p.Dist))
	h := qx
	h = h*131 + qy
	h = h*131 + qz
	h = h*131 + qd
	if h < 0 {
		h = -h
	}
	return h
}

// PlaneSet interns planes: a plane and its reverse share one index. Planes
// is append-only and indices are stable once assigned, so it doubles as the
// output plane table. Bucket contents are insertion ordered (plain slices,
// not a Go map) so that plane-index assignment is deterministic across runs
// of the same input - a bare map with unspecified iteration order would
// destabilize every downstream index.
type PlaneSet struct {
	Planes  []Plane
	buckets map[int][]int
}

// NewPlaneSet returns an empty plane table.
func NewPlaneSet() *PlaneSet {
	return &PlaneSet{buckets: make(map[int][]int)}
}

// Intern returns the stable index of p (interning a new entry if this is
// the first time this plane has been seen) and whether p had to be flipped
// to reach the stored canonical direction.
func (ps *PlaneSet) Intern(p Plane, pointEps, equalEps float64) (index int, side bool) {
	cp, flipped := canonicalize(p)
	key := planeHash(cp)
	for _, idx := range ps.buckets[key] {
		if planesEqual(ps.Planes[idx], cp, pointEps, equalEps) {
			return idx, flipped
		}
	}
	idx := len(ps.Planes)
	ps.Planes = append(ps.Planes, cp)
	ps.buckets[key] = append(ps.buckets[key], idx)
	return idx, flipped
}

// At returns the stored canonical plane for index i, optionally reversed
// when side is true - the plane a face with this Plane/Side pair actually
// lies on.
func (ps *PlaneSet) At(index int, side bool) Plane {
	p := ps.Planes[index]
	if side {
		return p.negate()
	}
	return p
}
