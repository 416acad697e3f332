// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

// Region is a topology-only skeleton of one interior node of the tree that
// GatherNodeFaces consumed: its plane index and children, but no faces.
// GrowNodeRegion walks a Region tree after TJunc/Dedup have repopulated the
// plane buckets, pulling out exactly the faces this region's own node
// contributed - see FaceBundle.popOwned, keyed on Face.owner rather than on
// plane index alone, since two unrelated nodes can share a plane number.
// This lets the Gatherer free the original Node tree (per its "destroying"
// contract in §4.2) while the Emitter still gets the per-interior-node face
// grouping it needs to record firstface/numfaces, without requiring the
// tree and the plane-bucket bundle to coexist.
type Region struct {
	Plane    int
	Children [2]*Region

	// FirstFace/NumFaces are populated by GrowNodeRegion during emission;
	// zero until then.
	FirstFace int
	NumFaces  int
}

// IsLeaf reports whether r is a leaf region.
func (r *Region) IsLeaf() bool { return r == nil || r.Plane == PlaneLeaf }

// FaceBundle is the plane-keyed face bundle produced by GatherNodeFaces.
// Bucket order is reverse-visitation per §4.2, which later phases do not
// depend on. planeOrder records the order in which plane keys were first
// seen, so later phases that must visit every face (T-junction counting,
// weld-edge finding) do so in a deterministic, reproducible sequence
// instead of Go's unspecified map iteration order.
type FaceBundle struct {
	byPlane    map[int]*Face
	planeOrder []int
}

// Faces returns the intrusive face list gathered for plane index p, or nil
// if no surviving face lies on that plane.
func (b *FaceBundle) Faces(p int) *Face { return b.byPlane[p] }

// SetFaces replaces the face list gathered for plane index p. TJunc uses
// this to install repaired windings back into the bundle under the same
// plane key they were gathered from.
func (b *FaceBundle) SetFaces(p int, head *Face) {
	if head == nil {
		delete(b.byPlane, p)
		for i, q := range b.planeOrder {
			if q == p {
				b.planeOrder = append(b.planeOrder[:i:i], b.planeOrder[i+1:]...)
				break
			}
		}
		return
	}
	if _, seen := b.byPlane[p]; !seen {
		b.planeOrder = append(b.planeOrder, p)
	}
	b.byPlane[p] = head
}

// Planes returns every plane index with a face list, in first-seen order.
func (b *FaceBundle) Planes() []int { return b.planeOrder }

// AllFaces calls fn once for every face across every plane bucket, visiting
// buckets in Planes order and each bucket's list head-to-tail.
func (b *FaceBundle) AllFaces(fn func(f *Face)) {
	for _, p := range b.planeOrder {
		for f := b.byPlane[p]; f != nil; f = f.next {
			fn(f)
		}
	}
}

// popOwned removes and returns, in bucket order, every face on plane p whose
// owner is r, leaving the rest of the bucket - faces gathered from some
// other node that happens to share the same plane index - in place for that
// node's own region to claim later. GrowNodeRegion uses this so two
// non-sibling nodes on the same plane never emit each other's faces.
func (b *FaceBundle) popOwned(p int, r *Region) *Face {
	var matchedHead, matchedTail, restHead, restTail *Face
	for f := b.byPlane[p]; f != nil; {
		next := f.next
		f.next = nil
		if f.owner == r {
			if matchedTail == nil {
				matchedHead = f
			} else {
				matchedTail.next = f
			}
			matchedTail = f
		} else {
			if restTail == nil {
				restHead = f
			} else {
				restTail.next = f
			}
			restTail = f
		}
		f = next
	}
	b.SetFaces(p, restHead)
	return matchedHead
}

// GatherNodeFaces walks root depth-first, consuming it: faces with an
// empty winding (annihilated by a sibling split) are released, surviving
// faces are prepended to the bucket keyed by their plane index, and every
// node is released once both children have been processed. It returns the
// plane-keyed bundle together with a Region skeleton preserving root's
// topology for the Emitter's later firstface/numfaces walk.
func GatherNodeFaces(root *Node) (*FaceBundle, *Region) {
	bundle := &FaceBundle{byPlane: make(map[int]*Face)}
	region := gatherNode(root, bundle)
	return bundle, region
}

func gatherNode(n *Node, bundle *FaceBundle) *Region {
	if n == nil || n.IsLeaf() {
		return nil
	}

	r := &Region{Plane: n.Plane}

	for f := n.Faces; f != nil; {
		next := f.next
		if len(f.Winding) > 0 {
			f.owner = r
			head := bundle.Faces(f.Plane)
			appendFace(&head, f)
			bundle.SetFaces(f.Plane, head)
		}
		f = next
	}

	r.Children[0] = gatherNode(n.Children[0], bundle)
	r.Children[1] = gatherNode(n.Children[1], bundle)
	return r
}
