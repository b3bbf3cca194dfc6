// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fdtd implements the staggered-grid Yee FDTD stepper for the 2D
// TMz mode of Maxwell's equations (Ez, Hx, Hy), its absorbing/periodic/PEC
// boundary treatment, excitation injection, halfband smoothing and
// rasterization to a pixel buffer.
package fdtd

import "math"

// Vacuum constants, computed once at package load rather than re-derived
// per call.
var (
	Mu0  = 1.25663706212e-6 // vacuum permeability, N/A^2
	Eps0 = 8.8541878128e-12 // vacuum permittivity, F/m
	Eta0 = math.Sqrt(Mu0 / Eps0)
	C0   = 1.0 / math.Sqrt(Mu0*Eps0)
	S    = 1.0 / math.Sqrt(2.0) // Courant factor
)
