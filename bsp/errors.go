// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import "errors"

// Sentinel errors for the "internal error" class of §7: data-corruption
// conditions that indicate an upstream producer contract violation or an
// exhausted preallocation. These are never retried - a failed compile is
// re-run from scratch by the caller. Wrap with fmt.Errorf("...: %w", Err...)
// at the call site and compare with errors.Is.
var (
	// ErrWeldEdgeCapacity is returned when the T-junction weld-edge pool
	// allocated from the Phase 1 count is exhausted.
	ErrWeldEdgeCapacity = errors.New("bsp: weld-edge capacity exceeded")

	// ErrWeldVertCapacity is returned when the T-junction T-vertex pool
	// allocated from the Phase 1 count is exhausted.
	ErrWeldVertCapacity = errors.New("bsp: weld-vertex capacity exceeded")

	// ErrSuperfaceCapacity is returned when a T-junction fix superface
	// would grow past MaxSuperfacePoints.
	ErrSuperfaceCapacity = errors.New("bsp: superface capacity exceeded")

	// ErrFaceEdgeCapacity is returned when a face's winding has more
	// vertices than MaxEdges allows at FindFaceEdges time.
	ErrFaceEdgeCapacity = errors.New("bsp: face edge capacity exceeded")

	// ErrInvalidContents is returned when a face with an invalid contents
	// tag requests an edge from the edge dedup table.
	ErrInvalidContents = errors.New("bsp: face has invalid contents")

	// ErrDoubleEmit is returned when EmitFace is called on a face that
	// already has an output face number (assertion in §7).
	ErrDoubleEmit = errors.New("bsp: face already emitted")

	// ErrDegenerateWinding is returned by callers that require a winding
	// with at least 3 points and none was given.
	ErrDegenerateWinding = errors.New("bsp: winding has fewer than 3 points")
)
