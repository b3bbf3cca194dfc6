// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source implements the FDTD excitation waveforms: a phase-driven
// sinusoid/square/sawtooth family and a time-indexed Ricker pulse.
package source

import "math"

// Kind selects the excitation waveform.
type Kind int

const (
	NoSource Kind = iota
	Monochromatic
	RickerPulse
	SquareWave
	Sawtooth
)

// Source holds the state of a single point excitation: waveform kind,
// hard/additive injection mode, world position, amplitude, points-per-
// wavelength, phase accumulator and pulse delay multiplier.
type Source struct {
	Kind     Kind
	Additive bool

	X, Y  float64
	Amp   float64
	PPW   float64
	Delay float64 // delay multiplier (pulse), in wavelengths

	theta   float64 // phase accumulator
	dtheta  float64 // phase increment per accepted step
	courant float64 // Courant factor S, needed for dtheta and Ricker timing
}

// New returns a Source defaulted per spec.md §6 Initialize: position
// (0.05, 0.05), monochromatic, ppw=30, amp=1, non-additive, delay=2.
// courant is the Courant factor S of the owning solver.
func New(courant float64) *Source {
	s := &Source{courant: courant}
	s.Reset()
	return s
}

// Reset restores construction defaults (kind, position, ppw, amp, additive,
// delay) and zeros the phase.
func (s *Source) Reset() {
	s.Kind = Monochromatic
	s.Additive = false
	s.X = 0.05
	s.Y = 0.05
	s.Amp = 1.0
	s.Delay = 2.0
	s.SetPPW(30.0)
	s.ResetTheta()
}

// ResetTheta zeros the phase accumulator only; used by Solver.reset, which
// must not touch kind/position/ppw.
func (s *Source) ResetTheta() {
	s.theta = 0.0
}

// SetPPW sets the points-per-wavelength and recomputes the per-step phase
// increment dtheta = 2*pi*S/ppw. ppw is floored at 2 by the caller
// (Solver.SourceTune); New/Reset pass ppw unclamped.
func (s *Source) SetPPW(ppw float64) {
	s.PPW = ppw
	s.dtheta = 2.0 * math.Pi * s.courant / ppw
}

// DTheta returns the current per-step phase increment.
func (s *Source) DTheta() float64 { return s.dtheta }

// Advance moves the phase forward by one step's increment. Must be called
// exactly once per accepted timestep, after Get has sampled the current
// value — never before.
func (s *Source) Advance() {
	s.theta += s.dtheta
}

// Theta returns the current phase.
func (s *Source) Theta() float64 { return s.theta }

// Get returns the sample for update counter q, using the current phase for
// the phase-driven waveforms (Monochromatic, SquareWave, Sawtooth) and q
// directly for RickerPulse.
func (s *Source) Get(q int) float64 {
	switch s.Kind {
	case Monochromatic:
		return s.Amp * math.Sin(s.theta)
	case SquareWave:
		sum := 0.0
		for _, k := range [...]int{1, 3, 5, 7} {
			sum += math.Sin(float64(k)*s.theta) / float64(k)
		}
		return s.Amp * (4.0 / math.Pi) * sum
	case Sawtooth:
		sum := 0.0
		sign := 1.0
		for k := 1; k <= 5; k++ {
			sum += sign * math.Sin(float64(k)*s.theta) / float64(k)
			sign = -sign
		}
		return s.Amp * (2.0 / math.Pi) * sum
	case RickerPulse:
		return s.ricker(q)
	case NoSource:
		return 0.0
	default:
		return 0.0
	}
}

// ricker returns the periodic Ricker-pulse sample at update counter q. The
// pulse is periodic with period 2*qd, peaking at q == qd (mod 2*qd).
func (s *Source) ricker(q int) float64 {
	qd := int(s.Delay * s.PPW / s.courant)
	period := 2 * qd
	if period <= 0 {
		return 0.0
	}
	qeff := q % period
	if qeff < 0 {
		qeff += period
	}
	eta := math.Pi * s.courant * float64(qeff-qd) / s.PPW
	eta2 := eta * eta
	return s.Amp * (1.0 - 2.0*eta2) * math.Exp(-eta2)
}

// SigmaDelta returns 1/(lhat^2 * mu0 * mur * pi * c / ppw), the conductivity
// (times space step) needed to achieve a skin depth of lhat cells at the
// source wavelength.
func (s *Source) SigmaDelta(lhat, mu0, mur, c float64) float64 {
	recip := lhat * lhat * mu0 * mur * math.Pi * c / s.PPW
	return 1.0 / recip
}
