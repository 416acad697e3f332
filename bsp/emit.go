// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"fmt"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// MaxLightmaps is the number of parallel lightmap styles a face carries;
// the output struct always allocates all four slots, filling unused ones
// with 255.
const MaxLightmaps = 4

// DFace is one output face record per §6.
type DFace struct {
	PlaneNum   int
	Side       bool
	TexInfo    int
	FirstEdge  int
	NumEdges   int
	Styles     [MaxLightmaps]uint8
	LightOfs   int32
}

// Model is the output table the pipeline mutates; Compile builds a new one
// for each entity. Planes, texinfos, vertexes, edges and faces all live
// here and outlive the per-entity dedup tables and face chains that fed
// them. Per-node firstface/numfaces are recorded on each Region, not here.
type Model struct {
	// Planes is this entity's own canonical plane table: EmitFace derives
	// each emitted face's supporting plane from its winding and interns it
	// here via PlaneSet.Intern, so two faces on the same geometric plane -
	// whatever upstream plane index they happened to carry - always emit
	// the same DFace.PlaneNum, with DFace.Side recording the reverse bit.
	Planes   *PlaneSet
	TexInfos []TexInfo

	Vertexes  []lin.V3 // copied from Dedup.Vertexes once emission finishes
	Edges     [][2]int
	SurfEdges []int32
	Faces     []DFace

	// ExportedLMShifts is parallel to Faces; len(ExportedLMShifts) ==
	// len(Faces) always.
	ExportedLMShifts []int

	// NeedsLMShiftLump is set by the counting pass whenever any surviving
	// face's shift differs from the engine default of 4.
	NeedsLMShiftLump bool
}

func (f *Face) skippable(texOf func(i int) TexInfo) bool {
	return !texOf(f.TexInfo).Flags.Subdivided()
}

// FindFaceEdges allocates f's owned signed edge array from d, skipping
// SKIP/HINT faces and failing if the winding is larger than cfg.MaxEdges.
// The array is released by EmitFace immediately after use.
func FindFaceEdges(f *Face, d *Dedup, cfg *Config, texOf func(i int) TexInfo) error {
	if f.skippable(texOf) {
		return nil
	}
	n := len(f.Winding)
	if n < 3 {
		return fmt.Errorf("emit: %w", ErrDegenerateWinding)
	}
	if n > cfg.MaxEdges {
		return fmt.Errorf("emit: %w (%d > %d)", ErrFaceEdgeCapacity, n, cfg.MaxEdges)
	}

	edges := make([]int32, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		e, err := d.GetEdge(f.Winding[i], f.Winding[j], f)
		if err != nil {
			return err
		}
		edges[i] = e
	}
	f.edges = edges
	return nil
}

// EmitFace appends f's output face record to m, per §4.4's EmitFace
// contract. SKIP/HINT faces are silently skipped and leave no trace. It is
// an error to call EmitFace twice for the same face.
func EmitFace(f *Face, m *Model, cfg *Config, texOf func(i int) TexInfo) error {
	if f.skippable(texOf) {
		return nil
	}
	if f.Emitted() {
		return fmt.Errorf("emit: %w", ErrDoubleEmit)
	}

	first := len(m.SurfEdges)
	for _, e := range f.edges {
		m.SurfEdges = append(m.SurfEdges, e)
	}
	f.edges = nil

	if m.Planes == nil {
		m.Planes = NewPlaneSet()
	}
	planeNum, side := f.Plane, f.Side
	if p, ok := f.Winding.PlaneOf(); ok {
		idx, flipped := m.Planes.Intern(p, cfg.PointEpsilon, cfg.EqualEpsilon)
		planeNum, side = idx, f.Side != flipped
	}

	df := DFace{
		PlaneNum:  planeNum,
		Side:      side,
		TexInfo:   f.TexInfo,
		FirstEdge: first,
		NumEdges:  len(m.SurfEdges) - first,
		LightOfs:  -1,
	}
	for i := range df.Styles {
		df.Styles[i] = 255
	}

	f.outputNum = len(m.Faces)
	m.Faces = append(m.Faces, df)
	m.ExportedLMShifts = append(m.ExportedLMShifts, f.LMShift[0])
	return nil
}

// GrowNodeRegion recursively records firstface/numfaces for every interior
// region, emitting each region's faces from bundle before recursing into
// its children, per §4.4's GrowNodeRegion contract. Leaves do nothing.
func GrowNodeRegion(r *Region, bundle *FaceBundle, m *Model, d *Dedup, cfg *Config, texOf func(i int) TexInfo) error {
	if r.IsLeaf() {
		return nil
	}

	r.FirstFace = len(m.Faces)
	for f := bundle.popOwned(r.Plane, r); f != nil; f = f.next {
		if err := FindFaceEdges(f, d, cfg, texOf); err != nil {
			return err
		}
		if err := EmitFace(f, m, cfg, texOf); err != nil {
			return err
		}
	}
	r.NumFaces = len(m.Faces) - r.FirstFace

	if err := GrowNodeRegion(r.Children[0], bundle, m, d, cfg, texOf); err != nil {
		return err
	}
	return GrowNodeRegion(r.Children[1], bundle, m, d, cfg, texOf)
}

// CountSurvivors walks bundle, counting surviving faces and total winding
// vertices, and reports whether any face's lightmap shift differs from the
// engine default of 4 (the "needs lightmap-shift lump" flag of §4.4's
// counting pass). The counts are advisory only, used for progress/capacity
// hints - never for correctness.
func CountSurvivors(bundle *FaceBundle, texOf func(i int) TexInfo) (faces, verts int, needsLMShifts bool) {
	bundle.AllFaces(func(f *Face) {
		if f.skippable(texOf) {
			return
		}
		faces++
		verts += len(f.Winding)
		if f.LMShift[0] != 4 || f.LMShift[1] != 4 {
			needsLMShifts = true
		}
	})
	return
}
