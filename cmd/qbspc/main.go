// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command qbspc drives the BSP compilation core over a single entity tree
// read from a worklist file prepared by an upstream map-parser/CSG/tree-
// builder stage (out of scope for this package). It owns the parts the
// core itself never does: flag parsing, logging setup, and turning a
// returned error into a process exit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tyfighter/ericw-tools/bsp"
)

func main() {
	var (
		optionsPath = flag.String("options", "", "path to a YAML compiler-options file")
		dxSubdivide = flag.Float64("subdivide", 0, "override the compile-time subdivision limit")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var opts []bsp.Option
	if *optionsPath != "" {
		data, err := os.ReadFile(*optionsPath)
		if err != nil {
			fatal(fmt.Errorf("reading options file: %w", err))
		}
		fileOpts, err := bsp.LoadOptions(data)
		if err != nil {
			fatal(err)
		}
		opts = append(opts, fileOpts...)
	}
	if *dxSubdivide > 0 {
		opts = append(opts, bsp.Subdivide(*dxSubdivide))
	}
	cfg := bsp.NewConfig(opts...)

	entPath := flag.Arg(0)
	if entPath == "" {
		fmt.Fprintln(os.Stderr, "usage: qbspc [-options file.yaml] [-subdivide n] [-v] <entity-tree-file>")
		os.Exit(2)
	}
	ent, err := loadEntity(entPath)
	if err != nil {
		fatal(fmt.Errorf("loading entity %q: %w", entPath, err))
	}

	model, stats, err := bsp.Compile(ent, cfg)
	if err != nil {
		fatal(fmt.Errorf("compile: %w", err))
	}

	slog.Info("qbspc: compile complete",
		"vertexes", len(model.Vertexes),
		"edges", len(model.Edges)-1,
		"faces", len(model.Faces),
		"tjuncs", stats.TJunc.TJuncs,
		"splits", stats.TJunc.TJuncFaces,
	)
}

func fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}
