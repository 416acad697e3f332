// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"testing"

	"github.com/tyfighter/ericw-tools/math/lin"
)

func cubeCorners() (a, b, c, d, e, f, g, h lin.V3) {
	return lin.V3{X: -64, Y: -64, Z: -64}, lin.V3{X: 64, Y: -64, Z: -64},
		lin.V3{X: 64, Y: 64, Z: -64}, lin.V3{X: -64, Y: 64, Z: -64},
		lin.V3{X: -64, Y: -64, Z: 64}, lin.V3{X: 64, Y: -64, Z: 64},
		lin.V3{X: 64, Y: 64, Z: 64}, lin.V3{X: -64, Y: 64, Z: 64}
}

// cubeTree builds a 6-node chain, one interior node per face plane, each
// holding the single face that lies on its plane - satisfying §4.4's
// "every face in a node's list shares the node's plane" invariant in the
// simplest possible shape.
func cubeTree() *Node {
	a, b, c, d, e, f, g, h := cubeCorners()
	windings := []Winding{
		{a, d, c, b}, // bottom, -Z
		{e, f, g, h}, // top, +Z
		{a, b, f, e}, // -Y
		{d, h, g, c}, // +Y
		{a, e, h, d}, // -X
		{b, c, g, f}, // +X
	}

	leaf := &Node{Plane: PlaneLeaf}
	var root *Node
	var tail *Node
	for i, w := range windings {
		face := NewFace(w, i, false, 0, [2]int{4, 4}, ContentsSolid)
		n := &Node{Plane: i, Faces: face}
		n.Children[1] = leaf
		if root == nil {
			root = n
		} else {
			tail.Children[0] = n
		}
		tail = n
	}
	tail.Children[0] = leaf
	return root
}

func noSubdivideTexInfo(i int) TexInfo {
	return TexInfo{Vecs: [2]lin.V3{{X: 1}, {Y: 1}}}
}

// S1 from the spec's concrete scenarios: a single cube emits 8 vertices,
// 12 edges, 24 surfedges, 6 faces, every edge reused exactly once.
func TestCompileSingleCube(t *testing.T) {
	ent := &Entity{
		Tree:     cubeTree(),
		TexInfos: []TexInfo{{Vecs: [2]lin.V3{{X: 1}, {Y: 1}}}},
		Mins:     lin.V3{X: -65, Y: -65, Z: -65},
		Maxs:     lin.V3{X: 65, Y: 65, Z: 65},
	}
	cfg := NewConfig(Subdivide(100000))
	model, _, err := Compile(ent, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(model.Vertexes) != 8 {
		t.Errorf("vertexes = %d, want 8", len(model.Vertexes))
	}
	if got := len(model.Edges) - 1; got != 12 {
		t.Errorf("edges = %d, want 12", got)
	}
	if len(model.SurfEdges) != 24 {
		t.Errorf("surfedges = %d, want 24", len(model.SurfEdges))
	}
	if len(model.Faces) != 6 {
		t.Errorf("faces = %d, want 6", len(model.Faces))
	}
	if len(model.ExportedLMShifts) != len(model.Faces) {
		t.Errorf("exported_lmshifts length %d must equal faces length %d", len(model.ExportedLMShifts), len(model.Faces))
	}

	negatives := 0
	for _, se := range model.SurfEdges {
		if se < 0 {
			negatives++
		}
	}
	if negatives != 12 {
		t.Errorf("expected exactly 12 negative-signed surfedges (one per reused edge), got %d", negatives)
	}

	if model.Planes == nil || len(model.Planes.Planes) != 6 {
		t.Errorf("expected 6 distinct interned planes (one per cube face), got %v", model.Planes)
	}
}

// cubeChain is cubeTree generalized to an arbitrary corner offset and a
// caller-chosen run of plane indices, so two disjoint cubes can be built
// that deliberately reuse each other's plane numbers.
func cubeChain(offset lin.V3, planeBase int, leaf *Node) *Node {
	a, b, c, d, e, f, g, h := cubeCorners()
	for _, p := range []*lin.V3{&a, &b, &c, &d, &e, &f, &g, &h} {
		p.Add(p, &offset)
	}
	windings := []Winding{
		{a, d, c, b},
		{e, f, g, h},
		{a, b, f, e},
		{d, h, g, c},
		{a, e, h, d},
		{b, c, g, f},
	}

	var root, tail *Node
	for i, w := range windings {
		face := NewFace(w, planeBase+i, false, 0, [2]int{4, 4}, ContentsSolid)
		n := &Node{Plane: planeBase + i, Faces: face}
		n.Children[1] = leaf
		if root == nil {
			root = n
		} else {
			tail.Children[0] = n
		}
		tail = n
	}
	tail.Children[0] = leaf
	return root
}

// S2 from the spec's concrete scenarios: two disjoint cubes whose floor and
// ceiling planes are numerically identical (both span z in [-64,64]) must
// each emit their own 6 faces, not collide at emission time just because
// GatherNodeFaces bucketed their coplanar faces together.
func TestCompileTwoCubesSharePlaneIndices(t *testing.T) {
	leaf := &Node{Plane: PlaneLeaf}
	cubeA := cubeChain(lin.V3{}, 0, leaf)
	cubeB := cubeChain(lin.V3{X: 400}, 0, leaf) // same plane indices 0-5 as cubeA

	divider := &Node{Plane: 99}
	divider.Children[0] = cubeA
	divider.Children[1] = cubeB

	ent := &Entity{
		Tree:     divider,
		TexInfos: []TexInfo{{Vecs: [2]lin.V3{{X: 1}, {Y: 1}}}},
		Mins:     lin.V3{X: -65, Y: -65, Z: -65},
		Maxs:     lin.V3{X: 465, Y: 65, Z: 65},
	}
	cfg := NewConfig(Subdivide(100000))
	model, _, err := Compile(ent, cfg)
	if err != nil {
		t.Fatalf("unexpected error (shared plane indices across unrelated nodes should not double-emit): %v", err)
	}

	if len(model.Vertexes) != 16 {
		t.Errorf("vertexes = %d, want 16 (8 per cube, no overlap)", len(model.Vertexes))
	}
	if got := len(model.Edges) - 1; got != 24 {
		t.Errorf("edges = %d, want 24 (12 per cube)", got)
	}
	if len(model.Faces) != 12 {
		t.Errorf("faces = %d, want 12 (6 per cube)", len(model.Faces))
	}
}

// S6 from the spec's concrete scenarios: a SKIP face must not appear in
// dfaces, contribute to dedges, or appear in exported_lmshifts.
func TestCompileSkipFaceExcluded(t *testing.T) {
	normal := NewFace(Winding{
		{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 4, Y: 4, Z: 0}, {X: 0, Y: 4, Z: 0},
	}, 0, false, 0, [2]int{4, 4}, ContentsSolid)
	skip := NewFace(Winding{
		{X: 0, Y: 0, Z: 10}, {X: 4, Y: 0, Z: 10}, {X: 4, Y: 4, Z: 10}, {X: 0, Y: 4, Z: 10},
	}, 0, false, 1, [2]int{4, 4}, ContentsSolid)

	var faces *Face
	PrependFace(&faces, skip)
	PrependFace(&faces, normal)

	root := &Node{Plane: 0, Faces: faces}
	root.Children[0] = &Node{Plane: PlaneLeaf}
	root.Children[1] = &Node{Plane: PlaneLeaf}

	ent := &Entity{
		Tree: root,
		TexInfos: []TexInfo{
			{Vecs: [2]lin.V3{{X: 1}, {Y: 1}}},               // texinfo 0: normal
			{Vecs: [2]lin.V3{{X: 1}, {Y: 1}}, Flags: TexSkip}, // texinfo 1: skip
		},
		Mins: lin.V3{X: -1, Y: -1, Z: -1},
		Maxs: lin.V3{X: 10, Y: 10, Z: 20},
	}
	cfg := NewConfig(Subdivide(100000))
	model, _, err := Compile(ent, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(model.Faces) != 1 {
		t.Errorf("expected exactly 1 emitted face (SKIP excluded), got %d", len(model.Faces))
	}
	if len(model.ExportedLMShifts) != 1 {
		t.Errorf("exported_lmshifts must track 1:1 with faces, got %d", len(model.ExportedLMShifts))
	}
	if len(model.SurfEdges) != 4 {
		t.Errorf("expected 4 surfedges from the one non-skip face, got %d", len(model.SurfEdges))
	}
}
