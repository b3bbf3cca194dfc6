// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boundary implements the second-order Mur absorbing boundary
// condition used at the edges of the FDTD grid.
package boundary

import "math"

// Edge identifies one of the four grid edges.
type Edge int

const (
	Left Edge = iota
	Right
	Top
	Bottom
)

// CornerMode controls whether the transverse end cells (index 0 and N-1
// along an edge) are included in the stencil.
type CornerMode int

const (
	// CornerExclude skips the two transverse end cells of every edge. This
	// is the default and the only mode reachable through Solver's public
	// boundary setters: combining corner-inclusion with periodicity on the
	// orthogonal axis is known to destabilize the scheme.
	CornerExclude CornerMode = iota
	CornerInclude
)

// ring holds, for one edge, the two most recent timesteps (q=0 is most
// recent) of the outermost three cell depths along a transverse length n.
type ring struct {
	// data[depth][step][transverse] flattened as depth*2*n + step*n + t
	data []float64
	n    int
}

func newRing(n int) *ring {
	return &ring{data: make([]float64, 3*2*n), n: n}
}

func (r *ring) at(depth, step, t int) float64 {
	return r.data[depth*2*r.n+step*r.n+t]
}

func (r *ring) set(depth, step, t int, v float64) {
	r.data[depth*2*r.n+step*r.n+t] = v
}

func (r *ring) zero() {
	for i := range r.data {
		r.data[i] = 0.0
	}
}

// Absorbing implements the Mur second-order one-way wave operator on all
// four edges of an NX by NY Ez grid, addressed by field view rather than by
// holding a pointer into the owning solver's storage.
type Absorbing struct {
	left, right, top, bottom *ring
	coef0, coef1, coef2      float64
	corner                   CornerMode
}

// New builds an Absorbing boundary sized for an nx by ny grid, with
// coefficients derived from a representative pair of update constants
// (cezh0, chye0) and corners excluded by default.
func New(nx, ny int, cezh0, chye0 float64) *Absorbing {
	a := &Absorbing{
		left:   newRing(ny),
		right:  newRing(ny),
		top:    newRing(nx),
		bottom: newRing(nx),
		corner: CornerExclude,
	}
	a.SetCoefficients(cezh0, chye0)
	return a
}

// SetCoefficients recomputes coef0..coef2 from a representative pair of
// update constants (cezh0, chye0), as the medium or grid spacing changes.
func (a *Absorbing) SetCoefficients(cezh0, chye0 float64) {
	tau := math.Sqrt(cezh0 * chye0)
	den := 1.0/tau + 2.0 + tau
	a.coef0 = -(1.0/tau - 2.0 + tau) / den
	a.coef1 = -2.0 * (tau - 1.0/tau) / den
	a.coef2 = 4.0 * (tau + 1.0/tau) / den
}

// SetCornerMode overrides the default corner-exclusion policy. Enabling
// CornerInclude together with periodicity on the orthogonal axis is known
// to produce instability; callers that combine the two are responsible for
// the consequences. Solver never calls this with CornerInclude itself.
func (a *Absorbing) SetCornerMode(m CornerMode) { a.corner = m }

// ZeroX clears the left/right edge histories.
func (a *Absorbing) ZeroX() {
	a.left.zero()
	a.right.zero()
}

// ZeroY clears the top/bottom edge histories.
func (a *Absorbing) ZeroY() {
	a.top.zero()
	a.bottom.zero()
}

func (a *Absorbing) skip() int {
	if a.corner == CornerInclude {
		return 0
	}
	return 1
}

// ApplyLeft updates Ez's leftmost column (index 0) in a row-major NX-stride
// field view, using and then advancing the left edge's ring history.
func (a *Absorbing) ApplyLeft(ez []float64, nx, ny int) {
	skip := a.skip()
	for iy := skip; iy < ny-skip; iy++ {
		idx := func(ix int) int { return nx*iy + ix }
		ez[idx(0)] = a.coef0*(ez[idx(2)]+a.left.at(0, 1, iy)) +
			a.coef1*(a.left.at(0, 0, iy)+a.left.at(2, 0, iy)-ez[idx(1)]-a.left.at(1, 1, iy)) +
			a.coef2*a.left.at(1, 0, iy) - a.left.at(2, 1, iy)
		for w := 0; w < 3; w++ {
			a.left.set(w, 1, iy, a.left.at(w, 0, iy))
			a.left.set(w, 0, iy, ez[idx(w)])
		}
	}
}

// ApplyRight updates Ez's rightmost column (index nx-1).
func (a *Absorbing) ApplyRight(ez []float64, nx, ny int) {
	skip := a.skip()
	for iy := skip; iy < ny-skip; iy++ {
		idx := func(ix int) int { return nx*iy + ix }
		ez[idx(nx-1)] = a.coef0*(ez[idx(nx-3)]+a.right.at(0, 1, iy)) +
			a.coef1*(a.right.at(0, 0, iy)+a.right.at(2, 0, iy)-ez[idx(nx-2)]-a.right.at(1, 1, iy)) +
			a.coef2*a.right.at(1, 0, iy) - a.right.at(2, 1, iy)
		for w := 0; w < 3; w++ {
			a.right.set(w, 1, iy, a.right.at(w, 0, iy))
			a.right.set(w, 0, iy, ez[idx(nx-1-w)])
		}
	}
}

// ApplyTop updates Ez's topmost row (index ny-1).
func (a *Absorbing) ApplyTop(ez []float64, nx, ny int) {
	skip := a.skip()
	for ix := skip; ix < nx-skip; ix++ {
		idx := func(iy int) int { return nx*iy + ix }
		ez[idx(ny-1)] = a.coef0*(ez[idx(ny-3)]+a.top.at(0, 1, ix)) +
			a.coef1*(a.top.at(0, 0, ix)+a.top.at(2, 0, ix)-ez[idx(ny-2)]-a.top.at(1, 1, ix)) +
			a.coef2*a.top.at(1, 0, ix) - a.top.at(2, 1, ix)
		for w := 0; w < 3; w++ {
			a.top.set(w, 1, ix, a.top.at(w, 0, ix))
			a.top.set(w, 0, ix, ez[idx(ny-1-w)])
		}
	}
}

// ApplyBottom updates Ez's bottommost row (index 0).
func (a *Absorbing) ApplyBottom(ez []float64, nx, ny int) {
	skip := a.skip()
	for ix := skip; ix < nx-skip; ix++ {
		idx := func(iy int) int { return nx*iy + ix }
		ez[idx(0)] = a.coef0*(ez[idx(2)]+a.bottom.at(0, 1, ix)) +
			a.coef1*(a.bottom.at(0, 0, ix)+a.bottom.at(2, 0, ix)-ez[idx(1)]-a.bottom.at(1, 1, ix)) +
			a.coef2*a.bottom.at(1, 0, ix) - a.bottom.at(2, 1, ix)
		for w := 0; w < 3; w++ {
			a.bottom.set(w, 1, ix, a.bottom.at(w, 0, ix))
			a.bottom.set(w, 0, ix, ez[idx(w)])
		}
	}
}
