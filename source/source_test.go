// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"math"
	"testing"
)

const courant = 0.7071067811865476 // 1/sqrt(2)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewDefaults(t *testing.T) {
	s := New(courant)
	if s.Kind != Monochromatic {
		t.Errorf("default Kind = %v, want Monochromatic", s.Kind)
	}
	if s.Additive {
		t.Error("default Additive = true, want false")
	}
	if s.X != 0.05 || s.Y != 0.05 {
		t.Errorf("default position = (%v,%v), want (0.05,0.05)", s.X, s.Y)
	}
	if s.Amp != 1.0 {
		t.Errorf("default Amp = %v, want 1.0", s.Amp)
	}
	if s.PPW != 30.0 {
		t.Errorf("default PPW = %v, want 30", s.PPW)
	}
	if s.Theta() != 0.0 {
		t.Errorf("default Theta = %v, want 0", s.Theta())
	}
}

func TestMonochromaticIgnitionZeroAtStart(t *testing.T) {
	s := New(courant)
	if v := s.Get(0); !approxEqual(v, 0.0, 1e-12) {
		t.Errorf("Monochromatic Get(0) = %v, want 0 (sin(0))", v)
	}
}

func TestPhasePeriod(t *testing.T) {
	s := New(courant)
	n := int(math.Ceil(2 * math.Pi / s.DTheta()))
	theta0 := s.Theta()
	for i := 0; i < n; i++ {
		s.Advance()
	}
	// 2*pi/dtheta = ppw/S is not an integer, so after n steps the phase has
	// completed one full turn and overshoots it by n*dtheta - 2*pi.
	got := math.Sin(s.Theta())
	want := math.Sin(theta0 + float64(n)*s.DTheta() - 2*math.Pi)
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("after %d steps sin(theta)=%v, want ~%v", n, got, want)
	}
}

func TestResetZerosPhaseOnly(t *testing.T) {
	s := New(courant)
	s.Kind = SquareWave
	s.X, s.Y = 0.3, 0.4
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	s.ResetTheta()
	if s.Theta() != 0.0 {
		t.Errorf("ResetTheta left Theta = %v, want 0", s.Theta())
	}
	if s.Kind != SquareWave || s.X != 0.3 || s.Y != 0.4 {
		t.Error("ResetTheta mutated kind/position, it should not")
	}
}

func TestFullResetRestoresDefaults(t *testing.T) {
	s := New(courant)
	s.Kind = Sawtooth
	s.X, s.Y = 10, 10
	s.SetPPW(5)
	s.Advance()
	s.Reset()
	if s.Kind != Monochromatic || s.X != 0.05 || s.Y != 0.05 || s.PPW != 30.0 {
		t.Error("Reset did not restore construction defaults")
	}
}

func TestSquareWaveOddHarmonicSymmetry(t *testing.T) {
	s := New(courant)
	s.Kind = SquareWave
	s.theta = math.Pi / 2
	a := s.Get(0)
	s.theta = math.Pi + math.Pi/2
	b := s.Get(0)
	if !approxEqual(a, -b, 1e-9) {
		t.Errorf("SquareWave(theta+pi) = %v, want -SquareWave(theta) = %v", b, -a)
	}
}

func TestRickerPeakAtDelay(t *testing.T) {
	s := New(courant)
	s.Kind = RickerPulse
	s.Delay = 2.0
	s.PPW = 30.0
	qd := int(s.Delay * s.PPW / s.courant)
	peak := s.Get(qd)
	before := s.Get(qd - 5)
	after := s.Get(qd + 5)
	if peak < before || peak < after {
		t.Errorf("Ricker pulse not maximal at delay: peak=%v before=%v after=%v", peak, before, after)
	}
	if !approxEqual(peak, s.Amp, 1e-9) {
		t.Errorf("Ricker peak = %v, want Amp = %v", peak, s.Amp)
	}
}

func TestRickerPeriodicInUpdateCount(t *testing.T) {
	s := New(courant)
	s.Kind = RickerPulse
	qd := int(s.Delay * s.PPW / s.courant)
	period := 2 * qd
	a := s.Get(3)
	b := s.Get(3 + period)
	if !approxEqual(a, b, 1e-9) {
		t.Errorf("Ricker pulse not periodic: Get(3)=%v Get(3+period)=%v", a, b)
	}
}

func TestNoSourceIsZero(t *testing.T) {
	s := New(courant)
	s.Kind = NoSource
	if v := s.Get(100); v != 0.0 {
		t.Errorf("NoSource Get(100) = %v, want 0", v)
	}
}

func TestSetPPWRecomputesDTheta(t *testing.T) {
	s := New(courant)
	s.SetPPW(60.0)
	want := 2.0 * math.Pi * courant / 60.0
	if !approxEqual(s.DTheta(), want, 1e-12) {
		t.Errorf("DTheta = %v, want %v", s.DTheta(), want)
	}
}
