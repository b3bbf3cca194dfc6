// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCoefficientsSymmetric(t *testing.T) {
	hb := New()
	for n := 1; n <= K; n++ {
		a := hb.b[K+n]
		b := hb.b[K-n]
		if !approxEqual(a, b, 1e-12) {
			t.Errorf("tap %d not symmetric: b[K+%d]=%v b[K-%d]=%v", n, n, a, n, b)
		}
	}
}

func TestCoefficientsDCNormalized(t *testing.T) {
	hb := New()
	var sum float64
	for _, c := range hb.b {
		sum += c
	}
	if !approxEqual(sum, 1.0, 1e-9) {
		t.Errorf("coefficients sum to %v, want 1", sum)
	}
}

func TestApplyZeroConstantInput(t *testing.T) {
	hb := New()
	const l = 16
	x := make([]float64, l)
	for i := range x {
		x[i] = 3.5
	}
	y := make([]float64, l)
	hb.ApplyZero(y, 1, x, 1, l)
	for i := K; i < l-K; i++ {
		if !approxEqual(y[i], 3.5, 1e-9) {
			t.Errorf("ApplyZero interior y[%d]=%v, want 3.5 (DC preservation)", i, y[i])
		}
	}
}

func TestApplyHoldConstantInputEverywhere(t *testing.T) {
	hb := New()
	const l = 16
	x := make([]float64, l)
	for i := range x {
		x[i] = -2.0
	}
	y := make([]float64, l)
	hb.ApplyHold(y, 1, x, 1, l)
	for i := 0; i < l; i++ {
		if !approxEqual(y[i], -2.0, 1e-9) {
			t.Errorf("ApplyHold y[%d]=%v, want -2.0", i, y[i])
		}
	}
}

func TestApplyPeriodicConstantInputEverywhere(t *testing.T) {
	hb := New()
	const l = 16
	x := make([]float64, l)
	for i := range x {
		x[i] = 7.0
	}
	y := make([]float64, l)
	hb.ApplyPeriodic(y, 1, x, 1, l)
	for i := 0; i < l; i++ {
		if !approxEqual(y[i], 7.0, 1e-9) {
			t.Errorf("ApplyPeriodic y[%d]=%v, want 7.0", i, y[i])
		}
	}
}

func TestApplyZeroImpulseRoundTrip(t *testing.T) {
	hb := New()
	const l = 32
	x := make([]float64, l)
	x[l/2] = 1.0
	y := make([]float64, l)
	hb.ApplyZero(y, 1, x, 1, l)

	var sum float64
	for _, v := range y {
		sum += v
	}
	if !approxEqual(sum, 1.0, 1e-9) {
		t.Errorf("impulse response sums to %v, want 1 (energy preserved through DC gain)", sum)
	}
	if !approxEqual(y[l/2], hb.b[K], 1e-12) {
		t.Errorf("y[center]=%v, want center tap %v", y[l/2], hb.b[K])
	}
}

func TestApplyStrided(t *testing.T) {
	hb := New()
	const l = 16
	x := make([]float64, 2*l)
	for i := 0; i < l; i++ {
		x[2*i] = 1.0
	}
	y := make([]float64, 2*l)
	hb.ApplyZero(y, 2, x, 2, l)
	for i := K; i < l-K; i++ {
		if !approxEqual(y[2*i], 1.0, 1e-9) {
			t.Errorf("strided y[%d]=%v, want 1.0", 2*i, y[2*i])
		}
	}
}
