// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdtd

import "github.com/chewxy/math32"

// Colormap maps a normalized value t (nominally in [0,1], but not
// guaranteed to be clamped by the caller) to a packed 32-bit little-endian
// RGBA pixel (A<<24 | B<<16 | G<<8 | R). Concrete colormaps (viridis, jet)
// are external to this package; see package colormap.
type Colormap func(t float64) uint32

const rasterEpsilon = 1e-8

// RasterizeEz fills buf (row-major, length w*h) with Ez rasterized over the
// world-space viewport [xmin,xmax]x[ymin,ymax], using bilinear
// interpolation in 64-bit floating point and the given colormap. The image
// y axis is inverted relative to world y (row 0 is ymax). A no-op if
// ezmin>=ezmax or len(buf)!=w*h.
func (s *Solver) RasterizeEz(buf []uint32, w, h int, cmap Colormap, ezmin, ezmax, xmin, xmax, ymin, ymax float64) {
	if len(buf) != w*h || ezmin >= ezmax {
		return
	}
	crange := ezmax - ezmin
	maxXhat := float64(s.nx-1) - rasterEpsilon
	maxYhat := float64(s.ny-1) - rasterEpsilon

	for i := 0; i < w; i++ {
		x := xmin + float64(i)*(xmax-xmin)/float64(w)
		xhat := clamp((x-s.gridXmin)/s.delta, 0, maxXhat)
		for j := 0; j < h; j++ {
			y := ymax - float64(j)*(ymax-ymin)/float64(h)
			yhat := clamp((y-s.gridYmin)/s.delta, 0, maxYhat)
			ezij := s.interpolateEz64(xhat, yhat)
			t := (ezij - ezmin) / crange
			buf[i+j*w] = cmap(t)
		}
	}
}

// RasterizeEzFast is the 32-bit-interpolation counterpart of RasterizeEz,
// trading the precision documented in spec §5 for speed.
func (s *Solver) RasterizeEzFast(buf []uint32, w, h int, cmap Colormap, ezmin, ezmax, xmin, xmax, ymin, ymax float64) {
	if len(buf) != w*h || ezmin >= ezmax {
		return
	}
	crange := float32(ezmax - ezmin)
	ezminf := float32(ezmin)
	maxXhat := float32(s.nx-1) - float32(rasterEpsilon)
	maxYhat := float32(s.ny-1) - float32(rasterEpsilon)

	for i := 0; i < w; i++ {
		x := float32(xmin) + float32(i)*float32(xmax-xmin)/float32(w)
		xhat := clamp32((x-float32(s.gridXmin))/float32(s.delta), 0, maxXhat)
		for j := 0; j < h; j++ {
			y := float32(ymax) - float32(j)*float32(ymax-ymin)/float32(h)
			yhat := clamp32((y-float32(s.gridYmin))/float32(s.delta), 0, maxYhat)
			ezij := s.interpolateEz32(xhat, yhat)
			t := (ezij - ezminf) / crange
			buf[i+j*w] = cmap(float64(t))
		}
	}
}

// RasterizeTestPattern fills buf with a diagnostic pattern combining pixel
// indices and the update counter, independent of the field state.
func (s *Solver) RasterizeTestPattern(buf []uint32, w, h int, cmap Colormap) {
	if len(buf) != w*h {
		return
	}
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			v := (i + j + s.counter) % 255
			buf[i+j*w] = cmap(float64(v) / 254.0)
		}
	}
}

func (s *Solver) interpolateEz64(xhat, yhat float64) float64 {
	xi := int(xhat)
	yi := int(yhat)
	etax := xhat - float64(xi)
	etay := yhat - float64(yi)

	ez := s.ez.Values
	i00 := s.idx(xi, yi)
	v00 := ez[i00]
	v01 := ez[s.idx(xi, yi+1)]
	v10 := ez[s.idx(xi+1, yi)]
	v11 := ez[s.idx(xi+1, yi+1)]

	return (1-etax)*(1-etay)*v00 + (1-etax)*etay*v01 + etax*(1-etay)*v10 + etax*etay*v11
}

func (s *Solver) interpolateEz32(xhat, yhat float32) float32 {
	xi := int(xhat)
	yi := int(yhat)
	etax := xhat - float32(xi)
	etay := yhat - float32(yi)

	ez := s.ez.Values
	v00 := float32(ez[s.idx(xi, yi)])
	v01 := float32(ez[s.idx(xi, yi+1)])
	v10 := float32(ez[s.idx(xi+1, yi)])
	v11 := float32(ez[s.idx(xi+1, yi+1)])

	return (1-etax)*(1-etay)*v00 + (1-etax)*etay*v01 + etax*(1-etay)*v10 + etax*etay*v11
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp32(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Pack encodes an 8-bit RGBA quad into the little-endian 32-bit pixel
// format used throughout the core: A<<24 | B<<16 | G<<8 | R.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}
