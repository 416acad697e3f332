// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the 3D vector math needed by the bsp compiler:
// points, directions, and the handful of scalar helpers used for epsilon
// comparisons and clamping.
//
// Package lin started as part of the vu (virtual universe) 3D engine's
// linear math library. The matrix, quaternion, and transform types from
// that library are not needed by a static geometry compiler and were
// trimmed; only the vector and scalar pieces remain.
package lin

// Design Notes:
//
// 1) This is a CPU based 3D math library. Some general guidelines,
//    verified with benchmarks in the original engine, are followed
//    throughout:
//     - avoid instantiating new structures
//     - use pointers to structures
//     - prefer multiply over divide

import "math"

// Various linear math constants.
const (
	// Large is a convenience number used as a sentinel for min/max scans.
	Large float64 = math.MaxFloat32

	// Epsilon is used to distinguish when a float is close enough to a number.
	Epsilon float64 = 0.000001
)

// AeqZ (~=) almost-equals returns true if the difference between x and zero
// is so small that it doesn't matter.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if the difference between a and b is
// so small that it doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// AeqEps is Aeq with a caller supplied tolerance instead of the package
// default Epsilon. The bsp compiler uses several distinct epsilons
// (point, direction, parametric, angle) so the tolerance can't be fixed.
func AeqEps(a, b, eps float64) bool { return math.Abs(a-b) < eps }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float64) float64 { return (b-a)*ratio + a }

// Max3 returns the largest of the 3 numbers.
func Max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// Min3 returns the smallest of the 3 numbers.
func Min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }

// Clamp returns a scalar value (one of: s, lb, ub) guaranteed to be within
// the range given by lower bound lb and upper bound ub.
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// Round return rounded version of x with prec precision.
// Special cases are:
//
//	Round(±0) = ±0
//	Round(±Inf) = ±Inf
//	Round(NaN) = NaN
func Round(val float64, prec int) float64 {
	if val == 0 || math.IsInf(val, 0) || math.IsNaN(val) {
		return val
	}
	var rounder float64
	pow := math.Pow(10, float64(prec))
	intermed := val * pow
	if intermed < 0.0 {
		intermed -= 0.5
	} else {
		intermed += 0.5
	}
	rounder = float64(int64(intermed))
	return rounder / float64(pow)
}
