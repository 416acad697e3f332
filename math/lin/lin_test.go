// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import (
	"fmt"
	"testing"
)

func TestAeqmately(t *testing.T) {
	var f1 = 0.0
	var f2 = 0.000001
	var f3 = -0.0001
	if Aeq(f1, f2) && !Aeq(f1, f3) {
		t.Error("Aeq")
	}
}

func TestApproimatelyZero(t *testing.T) {
	var f1 = 0.0000001
	var f2 = -0.0000001
	var f3 = -0.0001
	if !AeqZ(f1) || !AeqZ(f2) || AeqZ(f3) {
		t.Error("Aeqz")
	}
}

func TestAeqEps(t *testing.T) {
	if !AeqEps(1.0, 1.009, 0.01) || AeqEps(1.0, 1.02, 0.01) {
		t.Error("AeqEps")
	}
}

func TestLerp(t *testing.T) {
	if !Aeq(Lerp(10, 5, 0.5), 7.5) {
		t.Error("Lerp")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(20, -30, -15) != -15 || Clamp(20, 30, 60) != 30 || Clamp(20, 10, 50) != 20 {
		t.Error("Clamp")
	}
}

func TestMinMax3(t *testing.T) {
	if Max3(1, 5, 3) != 5 || Min3(1, 5, 3) != 1 {
		t.Error("Max3/Min3")
	}
}

func TestRound(t *testing.T) {
	f1, f2 := Round(1.48, 0), Round(1.51, 0)
	if f1 != 1.0 || f2 != 2.0 {
		t.Error("Failed to round floats", f1, f2)
	}
	f1, f2 = Round(-0.49, 0), Round(0.49, 0)
	if f1 != 0.0 || f2 != 0.0 {
		t.Error("Failed to round floats", f1, f2)
	}
}

// ============================================================================
// Test helpers for the other test case files in this package.

// Dictate how errors get printed.
const format = "\ngot\n%s\nwanted\n%s"

// Convienience method for getting a vector as a string.
func (v *V3) Dump() string { return fmt.Sprintf("%2.9f", *v) }
