// SPDX-FileCopyrightText : © 2014-2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lin

import (
	"testing"
)

// While the functions below are not complicated, they are foundational such that it is
// better to test each one of them then have the bugs discovered later from other code.
// Where applicable, check that the output vector can also be used as one or both
// of the input vectors.

func TestSetV3(t *testing.T) {
	v, a := &V3{}, &V3{1, 2, 3}
	if !v.Set(a).Eq(a) {
		t.Errorf("%s is not the same as %s", v.Dump(), a.Dump())
	}
}

func TestMinimumV3(t *testing.T) {
	v, a, want := &V3{1, -2, 3}, &V3{-1, 2, -3}, &V3{-1, -2, -3}
	if !v.Min(v, a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestMaxiumumV3(t *testing.T) {
	v, a, want := &V3{1, -2, 3}, &V3{-1, 2, -3}, &V3{1, 2, 3}
	if !v.Max(v, a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestAddV3(t *testing.T) {
	v, a, want := &V3{1, 2, 3}, &V3{1, 2, 3}, &V3{2, 4, 6}
	if !v.Add(v, a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestSubtractV3(t *testing.T) {
	v, a, want := &V3{1, 2, 3}, &V3{1, 2, 3}, &V3{0, 0, 0}
	if !v.Sub(v, a).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestScaleV3(t *testing.T) {
	v, want := &V3{1, 2, 3}, &V3{2, 4, 6}
	if !v.Scale(v, 2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestInverseScaleV3(t *testing.T) {
	v, want := &V3{2, 4, 6}, &V3{1, 2, 3}
	if !v.Div(2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestDotV3(t *testing.T) {
	v, a := &V3{1, 2, 3}, &V3{1, 2, 3}
	if v.Dot(a) != 14 {
		t.Errorf("Dot product wrong %f", v.Dot(a))
	}
}

func TestLengthV3(t *testing.T) {
	v := &V3{0, 3, 4}
	if v.Len() != 5 {
		t.Errorf("Length wrong %f", v.Len())
	}
}

func TestDistanceV3(t *testing.T) {
	v, a := &V3{0, 0, 0}, &V3{0, 3, 4}
	if v.Dist(a) != 5 {
		t.Errorf("Distance wrong %f", v.Dist(a))
	}
}

func TestNormalizeV3(t *testing.T) {
	v, want := &V3{0, 3, 4}, &V3{0, 0.6, 0.8}
	if !v.Unit().Aeq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestCrossV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{1, 0, 0}, &V3{0, 1, 0}, &V3{0, 0, 1}
	if !v.Cross(a, b).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestLerpV3(t *testing.T) {
	v, a, b, want := &V3{}, &V3{0, 0, 0}, &V3{10, 10, 10}, &V3{5, 5, 5}
	if !v.Lerp(a, b, 0.5).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestAeqEpsV3(t *testing.T) {
	v, a := &V3{1, 1, 1}, &V3{1.005, 1.005, 1.005}
	if !v.AeqEps(a, 0.01) {
		t.Error("AeqEps should have matched within tolerance")
	}
	if v.AeqEps(a, 0.001) {
		t.Error("AeqEps should not have matched within tolerance")
	}
}
