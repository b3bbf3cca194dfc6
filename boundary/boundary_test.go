// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boundary

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestZeroFieldStaysZero(t *testing.T) {
	const nx, ny = 10, 8
	a := New(nx, ny, 1.0, 1.0)
	ez := make([]float64, nx*ny)
	for step := 0; step < 5; step++ {
		a.ApplyLeft(ez, nx, ny)
		a.ApplyRight(ez, nx, ny)
		a.ApplyTop(ez, nx, ny)
		a.ApplyBottom(ez, nx, ny)
	}
	for i, v := range ez {
		if v != 0.0 {
			t.Fatalf("ez[%d] = %v after absorbing updates on zero field, want 0", i, v)
		}
	}
}

func TestResetZeroesHistory(t *testing.T) {
	const nx, ny = 10, 8
	a := New(nx, ny, 1.0, 1.0)
	ez := make([]float64, nx*ny)
	for i := range ez {
		ez[i] = 1.0
	}
	a.ApplyLeft(ez, nx, ny)
	if a.left.at(1, 0, 1) == 0.0 {
		t.Fatal("ApplyLeft left no history behind, test setup invalid")
	}
	a.ZeroX()
	if a.left.at(1, 0, 1) != 0.0 {
		t.Error("ZeroX left non-zero history behind")
	}
}

func TestCoefficientsMatchedMediumAreFinite(t *testing.T) {
	a := New(5, 5, 0.7, 0.7)
	if math.IsNaN(a.coef0) || math.IsNaN(a.coef1) || math.IsNaN(a.coef2) ||
		math.IsInf(a.coef0, 0) || math.IsInf(a.coef1, 0) || math.IsInf(a.coef2, 0) {
		t.Fatal("coefficients are not finite for a normal medium")
	}
}

func TestCornerModeDefaultExcludesEnds(t *testing.T) {
	a := New(5, 5, 1.0, 1.0)
	if a.corner != CornerExclude {
		t.Errorf("default corner mode = %v, want CornerExclude", a.corner)
	}
	if a.skip() != 1 {
		t.Errorf("skip() = %d under CornerExclude, want 1", a.skip())
	}
	a.SetCornerMode(CornerInclude)
	if a.skip() != 0 {
		t.Errorf("skip() = %d under CornerInclude, want 0", a.skip())
	}
}
