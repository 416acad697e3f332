// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bsp turns the convex brush faces of a single map entity into the
// compact face/edge/vertex tables a real-time renderer loads at runtime.
//
// The pipeline, always run single-threaded per entity, is:
//
//	Subdivide  -> carve faces wider than the lightmap block limit
//	Gather     -> walk the finished node tree, bucket faces by plane
//	TJunc      -> weld T-junction cracks, split oversized windings
//	Dedup/Emit -> intern vertices and edges, write the output model
//
// Everything upstream of Subdivide (map-file parsing, brush CSG) and
// everything downstream of Emit (portals, visibility, lighting, file
// serialization) belongs to other parts of the toolchain and is represented
// here only by the interfaces this package needs from them.
//
// File layout mirrors the phases above, the way physics/*.go in the vu
// engine this was adapted from maps one file per simulation stage:
//
//	types.go      : Winding, Face, Node, TexInfo, Contents - shared data
//	plane.go      : Plane and plane interning (PlaneSet), consumed by EmitFace
//	winding.go    : winding split/clip geometry, winding's own plane equation
//	options.go    : Config, functional options, YAML loading
//	errors.go     : sentinel errors for the fatal/warn error classes
//	subdivide.go  : SubdivideFace
//	gather.go     : GatherNodeFaces
//	tjunc.go      : weld-edge hashing, FixTJuncs
//	dedup.go      : GetVertex, GetEdge
//	emit.go       : FindFaceEdges, EmitFace, GrowNodeRegion, Model
//	pipeline.go   : Compile - wires the phases together for one entity
package bsp
