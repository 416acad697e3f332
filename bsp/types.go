// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import "github.com/tyfighter/ericw-tools/math/lin"

// PlaneLeaf is the sentinel plane index used by leaf nodes - a leaf holds
// no faces and has no children.
const PlaneLeaf = -1

// TexFlags are the extended texinfo flags a face's texture projection
// carries. Faces flagged Skip or Hint are left unsplit by subdivision,
// dropped at emission time, and never contribute edges.
type TexFlags uint32

const (
	// TexSkip marks a face that is never drawn.
	TexSkip TexFlags = 1 << iota
	// TexHint marks a BSP-splitting-only face, never drawn.
	TexHint
)

// Subdivided reports whether a face carrying these flags is eligible for
// subdivision and emission at all.
func (f TexFlags) Subdivided() bool { return f&(TexSkip|TexHint) == 0 }

// TexInfo is a texture projection record. Vecs holds the xyz part of the
// two texture projection axes, not normalized: each vector's length carries
// the texture scale. The offset terms a
// full texinfo carries are owned by the upstream map-file/CSG producers and
// are not needed by this package.
type TexInfo struct {
	Vecs  [2]lin.V3
	Flags TexFlags
}

// Contents classifies the solid/liquid/empty volume on one side of a face.
// Two faces with differing Contents never weld into a single shared edge -
// see GetEdge.
type Contents int32

const (
	ContentsEmpty Contents = iota
	ContentsSolid
	ContentsWater
	ContentsSlime
	ContentsLava
	ContentsSky
	ContentsDetail
)

// Winding is an ordered sequence of points forming a convex polygon.
// Invariants: at least 3 points, no duplicate consecutive points, all
// points within PointEpsilon of the owning face's plane.
type Winding []lin.V3

// Clone returns an independent copy of w.
func (w Winding) Clone() Winding {
	c := make(Winding, len(w))
	copy(c, w)
	return c
}

// Face is a textured convex polygon lying on one side (Side) of plane
// Plane. It is created by upstream CSG, mutated in place by Subdivide and
// TJunc, and consumed by FindFaceEdges/EmitFace.
type Face struct {
	Winding  Winding
	Plane    int
	Side     bool
	TexInfo  int
	LMShift  [2]int
	Contents Contents

	// Original points at the face a T-junction split piece was carved
	// from. Only set on pieces produced by splitSuperface; nil otherwise.
	Original *Face

	edges     []int32 // owned signed edge indices, set by FindFaceEdges
	outputNum int     // -1 until EmitFace runs

	// owner is the Region GatherNodeFaces gathered this face into. Plane
	// indices are not unique to one node - two unrelated nodes can share a
	// plane (two separate boxes with coplanar floors, say) - so owner, not
	// Plane, is what GrowNodeRegion uses to tell which faces in a shared
	// plane bucket are actually this node's own.
	owner *Region

	next *Face // intrusive singly-linked list link
}

// NewFace allocates a face with no output number assigned yet.
func NewFace(w Winding, plane int, side bool, texinfo int, lmshift [2]int, contents Contents) *Face {
	return &Face{
		Winding:   w,
		Plane:     plane,
		Side:      side,
		TexInfo:   texinfo,
		LMShift:   lmshift,
		Contents:  contents,
		outputNum: -1,
	}
}

// Emitted reports whether EmitFace has already produced an output record
// for this face.
func (f *Face) Emitted() bool { return f.outputNum >= 0 }

// Next returns the next face in whatever intrusive list currently owns f
// (a node's face list, or a subdivide/gather/tjunc output chain).
func (f *Face) Next() *Face { return f.next }

// appendFace prepends face f onto the intrusive list headed by *head.
func appendFace(head **Face, f *Face) {
	f.next = *head
	*head = f
}

// PrependFace prepends face f onto the intrusive list headed by *head. It
// is exported so an upstream CSG/tree-builder collaborator outside this
// package can build a Node's initial face list.
func PrependFace(head **Face, f *Face) { appendFace(head, f) }

// faceListLen counts the faces in an intrusive list, used only for
// diagnostics/counting passes - never on a hot path.
func faceListLen(head *Face) int {
	n := 0
	for f := head; f != nil; f = f.next {
		n++
	}
	return n
}

// Node is one node of the BSP tree built by the (external) tree-builder
// collaborator. An interior node has Plane != PlaneLeaf, two children, and
// an intrusive list of faces lying on its plane. A leaf holds no faces.
type Node struct {
	Plane    int
	Children [2]*Node
	Faces    *Face
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool { return n.Plane == PlaneLeaf }
