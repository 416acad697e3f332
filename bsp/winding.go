// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"math"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// pointSide classifies a point against a plane at the given tolerance.
type pointSide int8

const (
	sideBack  pointSide = -1
	sideOn    pointSide = 0
	sideFront pointSide = 1
)

func classify(d, eps float64) pointSide {
	switch {
	case d > eps:
		return sideFront
	case d < -eps:
		return sideBack
	default:
		return sideOn
	}
}

// SplitWinding cuts w by plane p, returning the portion in front of p and
// the portion behind it. Either side can come back empty if w lies
// entirely to one side. The edge-crossing interpolation is the same
// distance-weighted lerp used by the engine's Sutherland-Hodgman clipper
// (physics.plane_edge_intersection) generalized from "clip away one side"
// to "keep both sides".
func SplitWinding(w Winding, p Plane, pointEps float64) (front, back Winding) {
	n := len(w)
	if n == 0 {
		return nil, nil
	}

	dists := make([]float64, n)
	sides := make([]pointSide, n)
	counts := [3]int{}
	for i := range w {
		d := p.Distance(&w[i])
		dists[i] = d
		s := classify(d, pointEps)
		sides[i] = s
		counts[s+1]++
	}

	if counts[sideFront+1] == 0 {
		return nil, w.Clone()
	}
	if counts[sideBack+1] == 0 {
		return w.Clone(), nil
	}

	front = make(Winding, 0, n+4)
	back = make(Winding, 0, n+4)
	for i := 0; i < n; i++ {
		pt := w[i]
		if sides[i] != sideBack {
			front = append(front, pt)
		}
		if sides[i] != sideFront {
			back = append(back, pt)
		}
		if sides[i] == sideOn {
			continue
		}
		j := (i + 1) % n
		if sides[j] == sideOn || sides[j] == sides[i] {
			continue
		}
		t := dists[i] / (dists[i] - dists[j])
		mid := lin.NewV3().Lerp(&w[i], &w[j], t)
		front = append(front, *mid)
		back = append(back, *mid)
	}
	return front, back
}

// Area returns the polygon area of a planar, convex winding using a
// fan-triangulation from the first vertex.
func (w Winding) Area() float64 {
	if len(w) < 3 {
		return 0
	}
	total := 0.0
	for i := 1; i+1 < len(w); i++ {
		a := lin.NewV3().Sub(&w[i], &w[0])
		b := lin.NewV3().Sub(&w[i+1], &w[0])
		total += lin.NewV3().Cross(a, b).Len()
	}
	return total * 0.5
}

// TextureExtent returns the [min, max] of dot(p, axis) over every point of
// the winding, used by Subdivide to measure a face's extent along one of
// its two texture axes.
func (w Winding) TextureExtent(axis *lin.V3) (mins, maxs float64) {
	mins, maxs = lin.Large, -lin.Large
	for i := range w {
		v := axis.Dot(&w[i])
		mins = math.Min(mins, v)
		maxs = math.Max(maxs, v)
	}
	return mins, maxs
}

// PlaneOf derives the plane a convex winding lies on from its own geometry:
// the normal is the cross product of the first pair of edge vectors (from
// point 0) found to be non-collinear, oriented by the winding's own point
// order (right-hand rule - CCW as seen from the side the winding faces).
// ok is false when every point is collinear (a degenerate winding has no
// supporting plane).
func (w Winding) PlaneOf() (p Plane, ok bool) {
	if len(w) < 3 {
		return Plane{}, false
	}
	for i := 1; i+1 < len(w); i++ {
		a := lin.NewV3().Sub(&w[i], &w[0])
		b := lin.NewV3().Sub(&w[i+1], &w[0])
		n := lin.NewV3().Cross(a, b)
		if n.Len() < 1e-9 {
			continue
		}
		n.Unit()
		return Plane{Normal: *n, Dist: n.Dot(&w[0])}, true
	}
	return Plane{}, false
}

// RemoveDegenerate drops consecutive duplicate points (within pointEps),
// which a split or a T-junction insertion can occasionally produce.
func (w Winding) RemoveDegenerate(pointEps float64) Winding {
	if len(w) < 2 {
		return w
	}
	out := make(Winding, 0, len(w))
	for i := range w {
		prev := w[(i-1+len(w))%len(w)]
		if w[i].Dist(&prev) <= pointEps {
			continue
		}
		out = append(out, w[i])
	}
	return out
}
