// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

import (
	"log/slog"

	"github.com/tyfighter/ericw-tools/math/lin"
)

// Entity is the upstream contract consumed from CSG + the tree builder: a
// built BSP tree for one entity's brushes, plus the face chain's texinfo
// table and bounding box (needed by the T-junction weld-edge hash).
type Entity struct {
	Tree     *Node
	TexInfos []TexInfo
	Mins     lin.V3
	Maxs     lin.V3
}

// Stats is the advisory, non-authoritative summary of one Compile call.
type Stats struct {
	TJunc          TJuncStats
	SurvivingFaces int
	SurvivingVerts int
	NeedsLMShifts  bool
}

func (e *Entity) texOf(i int) TexInfo {
	if i < 0 || i >= len(e.TexInfos) {
		return TexInfo{}
	}
	return e.TexInfos[i]
}

// Compile runs the full Subdivide -> Gather -> TJunc -> Dedup/Emit pipeline
// for one entity and returns the populated output Model. It never calls
// os.Exit; callers decide how to react to a returned error, per §7's
// "internal error" class being the caller's concern, not this package's.
func Compile(ent *Entity, cfg *Config) (*Model, *Stats, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	subdivideTree(ent.Tree, cfg, ent.texOf)

	bundle, region := GatherNodeFaces(ent.Tree)

	tjstats, err := FixTJuncs(bundle, ent.Mins, ent.Maxs, cfg)
	if err != nil {
		return nil, nil, err
	}

	survFaces, survVerts, needsShifts := CountSurvivors(bundle, ent.texOf)
	slog.Info("bsp: compiling entity",
		"faces", survFaces, "verts", survVerts, "tjuncs", tjstats.TJuncs, "splits", tjstats.TJuncFaces)

	model := &Model{TexInfos: ent.TexInfos}
	dedup := NewDedup(cfg)

	if err := GrowNodeRegion(region, bundle, model, dedup, cfg, ent.texOf); err != nil {
		return nil, nil, err
	}

	model.Vertexes = dedup.Vertexes
	model.Edges = dedup.Edges
	model.NeedsLMShiftLump = needsShifts

	stats := &Stats{
		TJunc:          *tjstats,
		SurvivingFaces: survFaces,
		SurvivingVerts: survVerts,
		NeedsLMShifts:  needsShifts,
	}
	return model, stats, nil
}

// subdivideTree walks every interior node's face list and subdivides each
// face in place before the tree is handed to the Gatherer.
func subdivideTree(n *Node, cfg *Config, texOf func(i int) TexInfo) {
	if n == nil || n.IsLeaf() {
		return
	}
	link := &n.Faces
	for *link != nil {
		f := *link
		SubdivideFace(f, link, cfg, texOf)
		link = &(*link).next
	}
	subdivideTree(n.Children[0], cfg, texOf)
	subdivideTree(n.Children[1], cfg, texOf)
}
