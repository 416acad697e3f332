// Copyright © 2026 ericw-tools contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bsp

// options.go reduces the Compile API footprint using functional options,
// the same pattern vu.Config/vu.Attr use for engine setup.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TargetGame supplies the one predicate §4.1 needs from the target engine:
// whether a texinfo's flags mark its faces as eligible for subdivision at
// all. Quake and Quake2-family games answer this differently. The
// predicate sees only texinfo flags, never a face's Contents, so Quake2's
// CONTENTS_DETAIL brushes (ContentsDetail) have no effect on it.
type TargetGame interface {
	SurfIsSubdivided(flags TexFlags) bool
}

// defaultTargetGame subdivides every face not flagged Skip or Hint.
type defaultTargetGame struct{}

func (defaultTargetGame) SurfIsSubdivided(flags TexFlags) bool { return flags.Subdivided() }

// DefaultTargetGame is the TargetGame used when Compile is not given one.
var DefaultTargetGame TargetGame = defaultTargetGame{}

// Config holds every tunable of the compilation core. The zero Config is
// not usable - build one with NewConfig, which applies the package
// defaults before the caller's options override them.
type Config struct {
	// DxSubdivide is the compile-time subdivision limit in texture units;
	// §4.1's subdiv is min(DxSubdivide, 255<<clamp(lmshift,0,4)).
	DxSubdivide float64

	// SubdivideBias is the "-16" over-estimate in the split-plane distance
	// formula of §4.1/§9. Preserved as a named, non-zero constant per the
	// spec's open question - its magnitude is not to be changed without
	// empirical study of affected engines.
	SubdivideBias float64

	// PointEpsilon is positional equality for vertex dedup (~1/128 unit).
	PointEpsilon float64
	// EqualEpsilon is direction-vector component equality.
	EqualEpsilon float64
	// TEpsilon is scalar-parameter equality along a welded edge.
	TEpsilon float64
	// AngleEpsilon is the corner-detection tolerance used by superface
	// splitting.
	AngleEpsilon float64
	// ZeroEpsilon is the snap-to-integer threshold used by GetVertex.
	ZeroEpsilon float64

	// MaxPoints is the maximum winding size emitted by the T-junction fixer.
	MaxPoints int
	// MaxEdges is the maximum winding size FindFaceEdges accepts.
	MaxEdges int
	// MaxSuperfacePoints bounds the scratch buffer used while fixing
	// T-junctions on one face.
	MaxSuperfacePoints int
	// WeldHashBuckets is the size of the 2D weld-edge grid (§4.3).
	WeldHashBuckets int

	Game TargetGame
}

// NewConfig returns a Config with the package defaults applied, then each
// opt applied in order.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		DxSubdivide:        240,
		SubdivideBias:      16,
		PointEpsilon:       1.0 / 128.0,
		EqualEpsilon:       1.0 / 1000.0,
		TEpsilon:           1.0 / 256.0,
		AngleEpsilon:       1.0 / 1000.0,
		ZeroEpsilon:        1.0 / 1000.0,
		MaxPoints:          256,
		MaxEdges:           64,
		MaxSuperfacePoints: 8192,
		WeldHashBuckets:    1024,
		Game:               DefaultTargetGame,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option is the type for functional Config overrides.
type Option func(*Config)

// Subdivide sets the compile-time subdivision limit in texture units.
//
//	cfg := bsp.NewConfig(bsp.Subdivide(240))
func Subdivide(dxSubdivide float64) Option {
	return func(c *Config) {
		if dxSubdivide > 0 {
			c.DxSubdivide = dxSubdivide
		}
	}
}

// Epsilons overrides the five geometric tolerances at once. Pass 0 for any
// value to leave the default in place.
func Epsilons(point, equal, t, angle, zero float64) Option {
	return func(c *Config) {
		if point > 0 {
			c.PointEpsilon = point
		}
		if equal > 0 {
			c.EqualEpsilon = equal
		}
		if t > 0 {
			c.TEpsilon = t
		}
		if angle > 0 {
			c.AngleEpsilon = angle
		}
		if zero > 0 {
			c.ZeroEpsilon = zero
		}
	}
}

// Limits overrides the three winding-size caps. Pass 0 for any value to
// leave the default in place.
func Limits(maxPoints, maxEdges, maxSuperfacePoints int) Option {
	return func(c *Config) {
		if maxPoints > 0 {
			c.MaxPoints = maxPoints
		}
		if maxEdges > 0 {
			c.MaxEdges = maxEdges
		}
		if maxSuperfacePoints > 0 {
			c.MaxSuperfacePoints = maxSuperfacePoints
		}
	}
}

// Game sets the target-game subdivision predicate.
func Game(g TargetGame) Option {
	return func(c *Config) {
		if g != nil {
			c.Game = g
		}
	}
}

// optionsFile is the on-disk YAML shape for Config, loaded by LoadOptions.
// Unlike Config itself it carries no TargetGame - the caller always
// supplies that in code via the Game option.
type optionsFile struct {
	DxSubdivide  float64 `yaml:"dx_subdivide"`
	PointEpsilon float64 `yaml:"point_epsilon"`
	EqualEpsilon float64 `yaml:"equal_epsilon"`
	TEpsilon     float64 `yaml:"t_epsilon"`
	AngleEpsilon float64 `yaml:"angle_epsilon"`
	ZeroEpsilon  float64 `yaml:"zero_epsilon"`
	MaxPoints    int     `yaml:"max_points"`
	MaxEdges     int     `yaml:"max_edges"`
}

// LoadOptions parses a YAML compiler-options document into a slice of
// Options suitable for NewConfig, the same yaml.Unmarshal + wrapped-error
// idiom load.Shd uses for shader configuration.
func LoadOptions(data []byte) ([]Option, error) {
	var f optionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("LoadOptions: yaml %w", err)
	}
	return []Option{
		Subdivide(f.DxSubdivide),
		Epsilons(f.PointEpsilon, f.EqualEpsilon, f.TEpsilon, f.AngleEpsilon, f.ZeroEpsilon),
		Limits(f.MaxPoints, f.MaxEdges, 0),
	}, nil
}

// subdivLimit returns the effective subdivision limit for a face with the
// given lightmap shift, per §4.1: min(dxSubdivide, 255<<clamp(lmshift,0,4)).
func (c *Config) subdivLimit(lmshift int) float64 {
	if lmshift < 0 {
		panic("bsp: negative lightmap shift from producer")
	}
	if lmshift > 4 {
		lmshift = 4
	}
	subdiv := float64(int(255) << uint(lmshift))
	if subdiv >= c.DxSubdivide {
		subdiv = c.DxSubdivide
	}
	return subdiv
}
