// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colormap provides concrete fdtd.Colormap implementations.
// It is a separate package from fdtd so that new palettes can be added
// without modifying the solver/rasterizer core.
package colormap

import "math"

// clamp01 confines t to [0,1]; values outside the normalization range
// supplied to RasterizeEz/RasterizeEzFast are saturated rather than wrapped.
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func pack(r, g, b float64, a uint8) uint32 {
	ri := uint8(clamp01(r)*255.0 + 0.5)
	gi := uint8(clamp01(g)*255.0 + 0.5)
	bi := uint8(clamp01(b)*255.0 + 0.5)
	return uint32(a)<<24 | uint32(bi)<<16 | uint32(gi)<<8 | uint32(ri)
}

// viridisControl holds one stop of the piecewise-linear viridis
// approximation (t in [0,1], RGB in [0,1]).
type viridisControl struct {
	t, r, g, b float64
}

var viridisStops = [...]viridisControl{
	{0.0, 0.267004, 0.004874, 0.329415},
	{0.25, 0.229739, 0.322361, 0.545706},
	{0.5, 0.127568, 0.566949, 0.550556},
	{0.75, 0.369214, 0.788888, 0.382914},
	{1.0, 0.993248, 0.906157, 0.143936},
}

// Viridis is the perceptually-uniform blue-green-yellow palette, built by
// linear interpolation between five representative stops of matplotlib's
// viridis map.
func Viridis(t float64) uint32 {
	t = clamp01(t)
	for i := 0; i < len(viridisStops)-1; i++ {
		a, b := viridisStops[i], viridisStops[i+1]
		if t >= a.t && t <= b.t {
			f := (t - a.t) / (b.t - a.t)
			r := a.r + f*(b.r-a.r)
			g := a.g + f*(b.g-a.g)
			bl := a.b + f*(b.b-a.b)
			return pack(r, g, bl, 255)
		}
	}
	last := viridisStops[len(viridisStops)-1]
	return pack(last.r, last.g, last.b, 255)
}

// Jet is the classic blue-cyan-yellow-red palette, computed directly from
// piecewise-linear ramps rather than a stop table.
func Jet(t float64) uint32 {
	t = clamp01(t)
	r := clamp01(1.5 - math.Abs(4.0*t-3.0))
	g := clamp01(1.5 - math.Abs(4.0*t-2.0))
	b := clamp01(1.5 - math.Abs(4.0*t-1.0))
	return pack(r, g, b, 255)
}

// Diverging is a red-white-blue palette suited to signed fields like Ez,
// where t=0.5 represents zero.
func Diverging(t float64) uint32 {
	t = clamp01(t)
	if t < 0.5 {
		f := t / 0.5
		return pack(f, f, 1.0, 255)
	}
	f := (t - 0.5) / 0.5
	return pack(1.0, 1.0-f, 1.0-f, 255)
}
