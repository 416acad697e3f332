// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tyfighter/ericw-tools/bsp"
	"github.com/tyfighter/ericw-tools/math/lin"
)

// entityFile is a direct YAML rendering of a bsp.Entity, standing in for
// the real map-parser/CSG/tree-builder pipeline this package does not
// implement. It exists so qbspc has something runnable to drive the core
// with; a production toolchain would replace this file's loadEntity with
// the output of those upstream stages.
type entityFile struct {
	Mins     [3]float64    `yaml:"mins"`
	Maxs     [3]float64    `yaml:"maxs"`
	TexInfos []texInfoFile `yaml:"texinfos"`
	Tree     *nodeFile     `yaml:"tree"`
}

type texInfoFile struct {
	Vecs  [2][3]float64 `yaml:"vecs"`
	Flags uint32        `yaml:"flags"`
}

type nodeFile struct {
	Plane    int         `yaml:"plane"`
	Children [2]*nodeFile `yaml:"children"`
	Faces    []faceFile   `yaml:"faces"`
}

type faceFile struct {
	Winding  [][3]float64 `yaml:"winding"`
	Plane    int          `yaml:"plane"`
	Side     bool         `yaml:"side"`
	TexInfo  int          `yaml:"texinfo"`
	LMShift  [2]int       `yaml:"lmshift"`
	Contents int32        `yaml:"contents"`
}

func loadEntity(path string) (*bsp.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ef entityFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return nil, err
	}

	texInfos := make([]bsp.TexInfo, len(ef.TexInfos))
	for i, t := range ef.TexInfos {
		texInfos[i] = bsp.TexInfo{
			Vecs:  [2]lin.V3{v3Of(t.Vecs[0]), v3Of(t.Vecs[1])},
			Flags: bsp.TexFlags(t.Flags),
		}
	}

	return &bsp.Entity{
		Tree:     nodeOf(ef.Tree),
		TexInfos: texInfos,
		Mins:     v3Of(ef.Mins),
		Maxs:     v3Of(ef.Maxs),
	}, nil
}

func v3Of(a [3]float64) lin.V3 { return lin.V3{X: a[0], Y: a[1], Z: a[2]} }

func nodeOf(nf *nodeFile) *bsp.Node {
	if nf == nil {
		return nil
	}
	n := &bsp.Node{Plane: nf.Plane}
	n.Children[0] = nodeOf(nf.Children[0])
	n.Children[1] = nodeOf(nf.Children[1])

	var head *bsp.Face
	for i := len(nf.Faces) - 1; i >= 0; i-- {
		ff := nf.Faces[i]
		w := make(bsp.Winding, len(ff.Winding))
		for j, p := range ff.Winding {
			w[j] = v3Of(p)
		}
		f := bsp.NewFace(w, ff.Plane, ff.Side, ff.TexInfo, ff.LMShift, bsp.Contents(ff.Contents))
		bsp.PrependFace(&head, f)
	}
	n.Faces = head
	return n
}
