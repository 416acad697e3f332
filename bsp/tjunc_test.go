// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"math"
	"testing"

	"github.com/tyfighter/ericw-tools/math/lin"
)

func TestCanonicalVectorOrientsPositiveLead(t *testing.T) {
	p1 := &lin.V3{X: 0, Y: 0, Z: 0}
	p2 := &lin.V3{X: -4, Y: 0, Z: 0}
	_, dir, degenerate := CanonicalVector(p1, p2, 1.0/1000.0)
	if degenerate {
		t.Fatalf("non-zero edge should not be degenerate")
	}
	if dir.X <= 0 {
		t.Errorf("canonical direction should have a positive leading component, got %+v", dir)
	}
}

func TestCanonicalVectorDegenerate(t *testing.T) {
	p := &lin.V3{X: 5, Y: 5, Z: 5}
	_, dir, degenerate := CanonicalVector(p, p, 1.0/1000.0)
	if !degenerate {
		t.Errorf("zero-length edge should be reported degenerate")
	}
	if dir != (lin.V3{}) {
		t.Errorf("degenerate edge should canonicalize to the zero vector, got %+v", dir)
	}
}

// S3 from the spec's concrete scenarios: a third, larger coplanar face
// must receive a new vertex where two smaller neighbouring faces meet it.
func TestFixTJuncsInsertsMissingVertex(t *testing.T) {
	small1 := NewFace(Winding{
		{X: 0, Y: 0, Z: 0}, {X: 64, Y: 0, Z: 0}, {X: 64, Y: 64, Z: 0}, {X: 0, Y: 64, Z: 0},
	}, 0, false, 0, [2]int{4, 4}, ContentsSolid)

	small2 := NewFace(Winding{
		{X: 64, Y: 0, Z: 0}, {X: 128, Y: 0, Z: 0}, {X: 128, Y: 32, Z: 0}, {X: 64, Y: 32, Z: 0},
	}, 0, false, 0, [2]int{4, 4}, ContentsSolid)

	big := NewFace(Winding{
		{X: 0, Y: 0, Z: 0}, {X: 128, Y: 0, Z: 0}, {X: 128, Y: -64, Z: 0}, {X: 0, Y: -64, Z: 0},
	}, 0, false, 0, [2]int{4, 4}, ContentsSolid)

	var head *Face
	PrependFace(&head, big)
	PrependFace(&head, small2)
	PrependFace(&head, small1)

	bundle := &FaceBundle{byPlane: make(map[int]*Face)}
	bundle.SetFaces(0, head)

	cfg := NewConfig()
	mins := lin.V3{X: -10, Y: -74, Z: -10}
	maxs := lin.V3{X: 138, Y: 74, Z: 10}

	stats, err := FixTJuncs(bundle, mins, maxs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TJuncs < 1 {
		t.Errorf("expected at least one inserted T-vertex, got %d", stats.TJuncs)
	}

	found := false
	for f := bundle.Faces(0); f != nil; f = f.Next() {
		// only the big face has points below y=0; small1 already owns
		// (64,0,0) as a corner, so it must not satisfy this check.
		isBig := false
		for _, p := range f.Winding {
			if p.Y < 0 {
				isBig = true
			}
		}
		if !isBig || len(f.Winding) != 5 {
			continue
		}
		for _, p := range f.Winding {
			if lin.Aeq(p.X, 64) && lin.Aeq(p.Y, 0) {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected the shared face to grow to 5 vertices including (64,0,0)")
	}
}

func TestFixTJuncsSplitsOversizedWinding(t *testing.T) {
	const n = 300
	w := make(Winding, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		w[i] = lin.V3{X: 100 * math.Cos(angle), Y: 100 * math.Sin(angle), Z: 0}
	}
	f := NewFace(w, 0, false, 0, [2]int{4, 4}, ContentsSolid)

	bundle := &FaceBundle{byPlane: make(map[int]*Face)}
	bundle.SetFaces(0, f)

	cfg := NewConfig()
	mins := lin.V3{X: -110, Y: -110, Z: -10}
	maxs := lin.V3{X: 110, Y: 110, Z: 10}

	stats, err := FixTJuncs(bundle, mins, maxs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if faceListLen(bundle.Faces(0)) < 2 {
		t.Errorf("a 300-vertex winding should split into at least 2 pieces")
	}
	for p := bundle.Faces(0); p != nil; p = p.Next() {
		if len(p.Winding) > cfg.MaxPoints {
			t.Errorf("piece has %d vertices, exceeds MaxPoints %d", len(p.Winding), cfg.MaxPoints)
		}
	}
	if stats.TJuncFaces < 1 {
		t.Errorf("expected at least one recorded face split, got %d", stats.TJuncFaces)
	}
}
