// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filter implements the separable FIR smoothing kernel used by the
// FDTD solver to damp grid-scale noise.
package filter

import "math"

// K is the number of taps on either side of the center tap. The kernel has
// 2*K+1 taps; K is fixed at package scope rather than parameterized, matching
// the historical C++ template argument.
const K = 5

// Halfband is a symmetric linear-phase (2K+1)-tap FIR lowpass kernel built
// from a Hamming-windowed ideal halfband impulse response and DC-normalized
// so that a constant input produces the same constant output.
type Halfband struct {
	b    [2*K + 1]float64
	head [K]float64
	tail [K]float64
}

// New builds a DC-normalized halfband kernel.
func New() *Halfband {
	hb := &Halfband{}
	hb.init()
	return hb
}

func (hb *Halfband) init() {
	var sum float64
	for n := -K; n <= K; n++ {
		npi := float64(n) * math.Pi
		var b float64
		if n != 0 {
			b = math.Sin(npi/2.0) / npi
		} else {
			b = 0.5
		}
		w := 0.54 + 0.46*math.Cos(npi/K)
		b *= w
		hb.b[K+n] = b
		sum += b
	}
	for i := range hb.b {
		hb.b[i] /= sum
	}
}

// setHead fills the K virtual past samples.
func (hb *Halfband) setHead(v float64) {
	for i := range hb.head {
		hb.head[i] = v
	}
}

// setTail fills the K virtual future samples.
func (hb *Halfband) setTail(v float64) {
	for i := range hb.tail {
		hb.tail[i] = v
	}
}

// virtual returns x[i] for i in [-K, L+K), pulling from head/tail outside
// [0, L).
func (hb *Halfband) virtual(x []float64, stridex, i, l int) float64 {
	if i < 0 {
		return hb.head[i+K]
	}
	if i >= l {
		return hb.tail[i-l]
	}
	return x[i*stridex]
}

// Apply convolves a length-L strided sequence x into a length-L strided
// sequence y, using the current head/tail virtual samples for the first and
// last K outputs.
func (hb *Halfband) Apply(y []float64, stridey int, x []float64, stridex int, l int) {
	for i := 0; i < l; i++ {
		var s float64
		for n := -K; n <= K; n++ {
			s += hb.b[n+K] * hb.virtual(x, stridex, i+n, l)
		}
		y[i*stridey] = s
	}
}

// ApplyZero applies the kernel with zero-extended boundaries.
func (hb *Halfband) ApplyZero(y []float64, stridey int, x []float64, stridex int, l int) {
	hb.setHead(0)
	hb.setTail(0)
	hb.Apply(y, stridey, x, stridex, l)
}

// ApplyHold applies the kernel with replicate-extended (hold) boundaries.
func (hb *Halfband) ApplyHold(y []float64, stridey int, x []float64, stridex int, l int) {
	hb.setHead(x[0])
	hb.setTail(x[(l-1)*stridex])
	hb.Apply(y, stridey, x, stridex, l)
}

// ApplyPeriodic applies the kernel with wrap-extended (periodic) boundaries.
func (hb *Halfband) ApplyPeriodic(y []float64, stridey int, x []float64, stridex int, l int) {
	for i := 0; i < K; i++ {
		hb.head[K-i-1] = x[(l-i-1)*stridex]
		hb.tail[i] = x[i*stridex]
	}
	hb.Apply(y, stridey, x, stridex, l)
}
