// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdtd

import (
	"fmt"
	"math"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/floats"

	"github.com/emer/fdtd/boundary"
	"github.com/emer/fdtd/filter"
	"github.com/emer/fdtd/source"
)

// Solver owns the grid, field and coefficient storage, boundary mode flags,
// the excitation Source, the AbsorbingBoundary and the smoothing filter for
// a fixed-size NX by NY TMz FDTD simulation. A Solver is not safe for
// concurrent use; independent Solvers are fully isolated.
type Solver struct {
	nx, ny int

	gridXmin, gridYmin, delta float64

	ez, hx, hy                          *etensor.Float64
	chxh, chxe, chyh, chye, ceze, cezh  *etensor.Float64

	mur, epr, sigmam, sigma float64

	periodicX, periodicY                                   bool
	absorbingLeft, absorbingRight, absorbingTop, absorbingBottom bool
	pecX, pecY                                              bool

	abc *boundary.Absorbing
	src *source.Source
	hbf *filter.Halfband

	scratch []float64

	counter int
}

// NewSolver allocates a Solver for an nx by ny grid. It returns an error,
// rather than panicking, for the one failure mode that has no prior valid
// state to preserve: nx<3 or ny<3 (§4.4's interior updates need at least a
// 3-cell span on each axis).
func NewSolver(nx, ny int) (*Solver, error) {
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("fdtd: NewSolver requires nx>=3 and ny>=3, got nx=%d ny=%d", nx, ny)
	}
	s := &Solver{
		nx: nx,
		ny: ny,
		ez: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		hx: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		hy: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),

		chxh: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		chxe: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		chyh: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		chye: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		ceze: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),
		cezh: etensor.NewFloat64([]int{ny, nx}, nil, []string{"y", "x"}),

		hbf: filter.New(),
		src: source.New(S),
	}
	maxdim := nx
	if ny > maxdim {
		maxdim = ny
	}
	s.scratch = make([]float64, maxdim)
	s.abc = boundary.New(nx, ny, 1.0, 1.0) // placeholder coefficients until Initialize sets the medium
	return s, nil
}

// Initialize sets the grid origin and spacing, installs periodic boundaries
// on both axes, a uniform vacuum medium, a zero field, a zero update
// counter and the default Source. It must be called once, before Step.
func (s *Solver) Initialize(xmin, ymin, delta float64) {
	s.gridXmin = xmin
	s.gridYmin = ymin
	s.delta = delta

	s.SetPeriodicX()
	s.SetPeriodicY()
	s.SetUniformMedium(1.0, 1.0, 0.0, 0.0)

	s.Reset()
	s.src.Reset()
}

// Reset zeros the field, boundary histories and update counter, and resets
// the source phase. It does not touch the medium, boundary mode, or source
// kind/position/ppw.
func (s *Solver) Reset() {
	zero(s.ez.Values)
	zero(s.hx.Values)
	zero(s.hy.Values)
	s.abc.ZeroX()
	s.abc.ZeroY()
	s.counter = 0
	s.src.ResetTheta()
}

func zero(x []float64) {
	for i := range x {
		x[i] = 0.0
	}
}

func (s *Solver) idx(ix, iy int) int { return s.nx*iy + ix }

// NX returns the grid width.
func (s *Solver) NX() int { return s.nx }

// NY returns the grid height.
func (s *Solver) NY() int { return s.ny }

// Size returns NX*NY.
func (s *Solver) Size() int { return s.nx * s.ny }

// Delta returns the uniform grid spacing.
func (s *Solver) Delta() float64 { return s.delta }

// Timestep returns delta*S/c.
func (s *Solver) Timestep() float64 { return s.delta * S / C0 }

// UpdateCount returns the number of Step calls since the last Reset.
func (s *Solver) UpdateCount() int { return s.counter }

// UpdateTime returns UpdateCount()*Timestep().
func (s *Solver) UpdateTime() float64 { return float64(s.counter) * s.Timestep() }

// Xmin returns the world x coordinate of the grid origin column.
func (s *Solver) Xmin() float64 { return s.gridXmin }

// Xmax returns the world x coordinate of the last grid column.
func (s *Solver) Xmax() float64 { return s.gridXmin + float64(s.nx-1)*s.delta }

// Ymin returns the world y coordinate of the grid origin row.
func (s *Solver) Ymin() float64 { return s.gridYmin }

// Ymax returns the world y coordinate of the last grid row.
func (s *Solver) Ymax() float64 { return s.gridYmin + float64(s.ny-1)*s.delta }

// ---- medium ----

// SetUniformMedium sets the globally-uniform relative permeability,
// relative permittivity, magnetic conductivity and electric conductivity,
// and recomputes all six per-cell update coefficient arrays. It does not
// zero the field.
func (s *Solver) SetUniformMedium(mur, epr, sigmam, sigma float64) {
	s.mur, s.epr, s.sigmam, s.sigma = mur, epr, sigmam, sigma

	ch := S / (mur * Eta0)
	ce := Eta0 * S / epr

	sh := (sigmam * s.delta / 2.0) * ch
	ahh := (1.0 - sh) / (1.0 + sh)
	ahe := 1.0 / (1.0 + sh)

	se := (sigma * s.delta / 2.0) * ce
	aeh := 1.0 / (1.0 + se)
	aee := (1.0 - se) / (1.0 + se)

	fillConst(s.chxh.Values, ahh)
	fillConst(s.chxe.Values, ahe*ch)
	fillConst(s.chyh.Values, ahh)
	fillConst(s.chye.Values, ahe*ch)
	fillConst(s.ceze.Values, aee)
	fillConst(s.cezh.Values, aeh*ce)

	if s.abc != nil {
		s.abc.SetCoefficients(s.cezh.Values[0], s.chye.Values[0])
	}
}

func fillConst(x []float64, v float64) {
	for i := range x {
		x[i] = v
	}
}

// SetVacuum installs the vacuum medium (mur=epr=1, sigmam=sigma=0).
func (s *Solver) SetVacuum() { s.SetUniformMedium(1.0, 1.0, 0.0, 0.0) }

// IsVacuum reports whether the medium is exactly vacuum.
func (s *Solver) IsVacuum() bool {
	return s.mur == 1.0 && s.epr == 1.0 && s.sigmam == 0.0 && s.sigma == 0.0
}

// SetDamping sets the electric conductivity so that the source's current
// wavelength has a skin depth of lhat cells, preserving mur, epr and sigmam.
func (s *Solver) SetDamping(lhat float64) {
	sigmaDelta := s.src.SigmaDelta(lhat, Mu0, s.mur, C0)
	s.SetUniformMedium(s.mur, s.epr, s.sigmam, sigmaDelta/s.delta)
}

// ---- boundary ----

const (
	taperPeriodic  = 8
	taperAbsorbing = 12
)

func (s *Solver) taperBorderX(width int) {
	if width > s.nx/2 {
		width = s.nx / 2
	}
	for iy := 0; iy < s.ny; iy++ {
		for w := 0; w < width; w++ {
			sw := float64(w) / float64(width)
			swsq := sw * sw
			lo := s.idx(w, iy)
			hi := s.idx(s.nx-1-w, iy)
			s.ez.Values[lo] *= swsq
			s.ez.Values[hi] *= swsq
			s.hx.Values[lo] *= swsq
			s.hx.Values[hi] *= swsq
			s.hy.Values[lo] *= swsq
			s.hy.Values[hi] *= swsq
		}
	}
}

func (s *Solver) taperBorderY(width int) {
	if width > s.ny/2 {
		width = s.ny / 2
	}
	for ix := 0; ix < s.nx; ix++ {
		for w := 0; w < width; w++ {
			sw := float64(w) / float64(width)
			swsq := sw * sw
			lo := s.idx(ix, w)
			hi := s.idx(ix, s.ny-1-w)
			s.ez.Values[lo] *= swsq
			s.ez.Values[hi] *= swsq
			s.hx.Values[lo] *= swsq
			s.hx.Values[hi] *= swsq
			s.hy.Values[lo] *= swsq
			s.hy.Values[hi] *= swsq
		}
	}
}

func (s *Solver) zeroBoundaryEzX() {
	for iy := 0; iy < s.ny; iy++ {
		s.ez.Values[s.idx(0, iy)] = 0.0
		s.ez.Values[s.idx(s.nx-1, iy)] = 0.0
	}
}

func (s *Solver) zeroBoundaryEzY() {
	for ix := 0; ix < s.nx; ix++ {
		s.ez.Values[s.idx(ix, 0)] = 0.0
		s.ez.Values[s.idx(ix, s.ny-1)] = 0.0
	}
}

// SetPeriodicX marks the x axis periodic, zeros the left/right edge
// histories, and tapers the outer 8 cells to damp transients.
func (s *Solver) SetPeriodicX() {
	s.absorbingLeft, s.absorbingRight = false, false
	s.pecX = false
	s.periodicX = true
	s.abc.ZeroX()
	s.taperBorderX(taperPeriodic)
}

// SetPeriodicY is the y-axis analog of SetPeriodicX.
func (s *Solver) SetPeriodicY() {
	s.absorbingTop, s.absorbingBottom = false, false
	s.pecY = false
	s.periodicY = true
	s.abc.ZeroY()
	s.taperBorderY(taperPeriodic)
}

// SetAbsorbingX marks left and right absorbing, zeros the x-edge histories,
// and tapers the outer 12 cells. If the y axis is already absorbing on
// both edges, its histories are re-zeroed and re-tapered too.
func (s *Solver) SetAbsorbingX() {
	s.periodicX = false
	s.pecX = false
	s.absorbingLeft, s.absorbingRight = true, true
	s.abc.ZeroX()
	s.taperBorderX(taperAbsorbing)
	if s.IsAbsorbingY() {
		s.abc.ZeroY()
		s.taperBorderY(taperAbsorbing)
	}
}

// SetAbsorbingY is the y-axis analog of SetAbsorbingX.
func (s *Solver) SetAbsorbingY() {
	s.periodicY = false
	s.pecY = false
	s.absorbingTop, s.absorbingBottom = true, true
	s.abc.ZeroY()
	s.taperBorderY(taperAbsorbing)
	if s.IsAbsorbingX() {
		s.abc.ZeroX()
		s.taperBorderX(taperAbsorbing)
	}
}

// SetPECX marks the x axis a perfect electric conductor and zeros the two
// Ez edge columns immediately.
func (s *Solver) SetPECX() {
	s.periodicX = false
	s.absorbingLeft, s.absorbingRight = false, false
	s.pecX = true
	s.zeroBoundaryEzX()
}

// SetPECY is the y-axis analog of SetPECX.
func (s *Solver) SetPECY() {
	s.periodicY = false
	s.absorbingTop, s.absorbingBottom = false, false
	s.pecY = true
	s.zeroBoundaryEzY()
}

// IsPeriodicX reports whether the x axis is periodic.
func (s *Solver) IsPeriodicX() bool { return s.periodicX }

// IsPeriodicY reports whether the y axis is periodic.
func (s *Solver) IsPeriodicY() bool { return s.periodicY }

// IsAbsorbingX reports whether both x edges are absorbing.
func (s *Solver) IsAbsorbingX() bool {
	return s.absorbingLeft && s.absorbingRight && !s.periodicX
}

// IsAbsorbingY reports whether both y edges are absorbing.
func (s *Solver) IsAbsorbingY() bool {
	return s.absorbingTop && s.absorbingBottom && !s.periodicY
}

// IsMixedX reports whether exactly one x edge is absorbing.
func (s *Solver) IsMixedX() bool {
	return (s.absorbingLeft != s.absorbingRight) && !s.periodicX
}

// IsMixedY reports whether exactly one y edge is absorbing.
func (s *Solver) IsMixedY() bool {
	return (s.absorbingTop != s.absorbingBottom) && !s.periodicY
}

// ---- source ----

// SourceMove shifts the source position by (dx, dy).
func (s *Solver) SourceMove(dx, dy float64) { s.src.X += dx; s.src.Y += dy }

// SourcePlace sets the source position to (x, y).
func (s *Solver) SourcePlace(x, y float64) { s.src.X, s.src.Y = x, y }

// SourceType sets the excitation waveform kind.
func (s *Solver) SourceType(k source.Kind) { s.src.Kind = k }

// SourceTune adjusts the points-per-wavelength by dppw, flooring at 2.
func (s *Solver) SourceTune(dppw float64) {
	ppw := s.src.PPW + dppw
	if ppw < 2.0 {
		ppw = 2.0
	}
	s.src.SetPPW(ppw)
}

// SourceTuneGet returns the current points-per-wavelength.
func (s *Solver) SourceTuneGet() float64 { return s.src.PPW }

// SourceAmplitude returns the current source amplitude.
func (s *Solver) SourceAmplitude() float64 { return s.src.Amp }

// SetSourceAmplitude sets the source amplitude.
func (s *Solver) SetSourceAmplitude(a float64) { s.src.Amp = a }

// SourceAdditive reports whether the source injects additively.
func (s *Solver) SourceAdditive() bool { return s.src.Additive }

// SetSourceAdditive sets hard (false) vs additive (true) injection.
func (s *Solver) SetSourceAdditive(a bool) { s.src.Additive = a }

// ---- step ----

// Step advances the field by one Δt, executing, in order: the H update,
// the interior E update, x-axis boundary resolution, y-axis boundary
// resolution, source injection, phase advance and counter increment.
func (s *Solver) Step() {
	s.updateHxHy()
	s.updateEzInterior()
	s.resolveBoundaryX()
	s.resolveBoundaryY()
	s.applySource()
	s.src.Advance()
	s.counter++
}

func (s *Solver) updateHxHy() {
	nx, ny := s.nx, s.ny
	ez, hx, hy := s.ez.Values, s.hx.Values, s.hy.Values
	chxh, chxe := s.chxh.Values, s.chxe.Values
	chyh, chye := s.chyh.Values, s.chye.Values

	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny-1; iy++ {
			i := s.idx(ix, iy)
			hx[i] = chxh[i]*hx[i] - chxe[i]*(ez[s.idx(ix, iy+1)]-ez[i])
		}
	}
	for ix := 0; ix < nx-1; ix++ {
		for iy := 0; iy < ny; iy++ {
			i := s.idx(ix, iy)
			hy[i] = chyh[i]*hy[i] + chye[i]*(ez[s.idx(ix+1, iy)]-ez[i])
		}
	}
}

func (s *Solver) updateEzInterior() {
	nx, ny := s.nx, s.ny
	ez, hx, hy := s.ez.Values, s.hx.Values, s.hy.Values
	ceze, cezh := s.ceze.Values, s.cezh.Values

	for ix := 1; ix < nx-1; ix++ {
		for iy := 1; iy < ny-1; iy++ {
			i := s.idx(ix, iy)
			dxhy := hy[i] - hy[s.idx(ix-1, iy)]
			dyhx := hx[i] - hx[s.idx(ix, iy-1)]
			ez[i] = ceze[i]*ez[i] + cezh[i]*(dxhy-dyhx)
		}
	}
}

func (s *Solver) resolveBoundaryX() {
	if s.periodicX {
		s.makeEzPeriodicX()
		return
	}
	if s.pecX {
		s.zeroBoundaryEzX()
		return
	}
	if s.absorbingLeft {
		s.abc.ApplyLeft(s.ez.Values, s.nx, s.ny)
	}
	if s.absorbingRight {
		s.abc.ApplyRight(s.ez.Values, s.nx, s.ny)
	}
}

func (s *Solver) resolveBoundaryY() {
	if s.periodicY {
		s.makeEzPeriodicY()
		return
	}
	if s.pecY {
		s.zeroBoundaryEzY()
		return
	}
	if s.absorbingTop {
		s.abc.ApplyTop(s.ez.Values, s.nx, s.ny)
	}
	if s.absorbingBottom {
		s.abc.ApplyBottom(s.ez.Values, s.nx, s.ny)
	}
}

func (s *Solver) makeEzPeriodicX() {
	nx, ny := s.nx, s.ny
	ez, hx, hy := s.ez.Values, s.hx.Values, s.hy.Values
	ceze, cezh := s.ceze.Values, s.cezh.Values

	for iy := 1; iy < ny-1; iy++ {
		i := s.idx(0, iy)
		dxhy := hy[i] - hy[s.idx(nx-2, iy)]
		dyhx := hx[i] - hx[s.idx(0, iy-1)]
		ez[i] = ceze[i]*ez[i] + cezh[i]*(dxhy-dyhx)
	}
	for iy := 1; iy < ny-1; iy++ {
		i := s.idx(nx-1, iy)
		dxhy := hy[s.idx(0, iy)] - hy[s.idx(nx-2, iy)]
		dyhx := hx[i] - hx[s.idx(nx-1, iy-1)]
		ez[i] = ceze[i]*ez[i] + cezh[i]*(dxhy-dyhx)
	}
}

func (s *Solver) makeEzPeriodicY() {
	nx, ny := s.nx, s.ny
	ez, hx, hy := s.ez.Values, s.hx.Values, s.hy.Values
	ceze, cezh := s.ceze.Values, s.cezh.Values

	for ix := 1; ix < nx-1; ix++ {
		i := s.idx(ix, 0)
		dxhy := hy[i] - hy[s.idx(ix-1, 0)]
		dyhx := hx[i] - hx[s.idx(ix, ny-2)]
		ez[i] = ceze[i]*ez[i] + cezh[i]*(dxhy-dyhx)
	}
	for ix := 1; ix < nx-1; ix++ {
		i := s.idx(ix, ny-1)
		dxhy := hy[i] - hy[s.idx(ix-1, ny-1)]
		dyhx := hx[s.idx(ix, 0)] - hx[s.idx(ix, ny-2)]
		ez[i] = ceze[i]*ez[i] + cezh[i]*(dxhy-dyhx)
	}
}

func (s *Solver) applySource() {
	if s.src.Kind == source.NoSource {
		return
	}
	ix := int(math.Round((s.src.X - s.gridXmin) / s.delta))
	iy := int(math.Round((s.src.Y - s.gridYmin) / s.delta))
	if ix < 0 || ix >= s.nx || iy < 0 || iy >= s.ny {
		return
	}
	sample := s.src.Get(s.counter)
	i := s.idx(ix, iy)
	if s.src.Additive {
		s.ez.Values[i] += sample
	} else {
		s.ez.Values[i] = sample
	}
}

// ---- measurement ----

// SuperimposeGaussian adds a Gaussian bump centered at grid-index
// coordinates (xc, yc) with standard deviations (sigmax, sigmay), expressed
// in grid cells, onto the interior of the Ez field.
func (s *Solver) SuperimposeGaussian(xc, yc, sigmax, sigmay float64) {
	ez := s.ez.Values
	for ix := 1; ix < s.nx-1; ix++ {
		xhat := (float64(ix) - xc) / sigmax
		for iy := 1; iy < s.ny-1; iy++ {
			yhat := (float64(iy) - yc) / sigmay
			ez[s.idx(ix, iy)] += math.Exp(-0.5 * (xhat*xhat + yhat*yhat))
		}
	}
}

// EnergyE returns the approximate electric field energy at update time
// UpdateCount()*Timestep(). Not synchronized with EnergyB, which samples
// the magnetic field half a timestep earlier; see EnergyB.
func (s *Solver) EnergyE() float64 {
	sum := floats.Dot(s.ez.Values, s.ez.Values)
	d := s.delta
	return s.epr * Eps0 * (sum * d * d / 2.0)
}

// EnergyB returns the approximate magnetic field energy, sampled at
// (UpdateCount()-1/2)*Timestep() — a half-step earlier than EnergyE. The
// two are not corrected for this offset; summing them is an approximation.
func (s *Solver) EnergyB() float64 {
	sum := floats.Dot(s.hx.Values, s.hx.Values) + floats.Dot(s.hy.Values, s.hy.Values)
	d := s.delta
	return s.mur * Mu0 * (sum * d * d / 2.0)
}

// MinimumEz returns the minimum Ez value over the whole grid.
func (s *Solver) MinimumEz() float64 { return floats.Min(s.ez.Values) }

// MaximumEz returns the maximum Ez value over the whole grid.
func (s *Solver) MaximumEz() float64 { return floats.Max(s.ez.Values) }

// HalfbandFilterXY applies the separable halfband smoothing kernel (with
// zero-extended boundaries) to Ez, Hx and Hy along x then y, then tapers the
// outer 8 cells and re-zeros the absorbing edge histories, since the
// filtered field values they were tracking are now stale.
func (s *Solver) HalfbandFilterXY() {
	s.filterXY(s.ez.Values)
	s.filterXY(s.hx.Values)
	s.filterXY(s.hy.Values)

	const taper = 8
	s.taperBorderX(taper)
	s.abc.ZeroX()
	s.taperBorderY(taper)
	s.abc.ZeroY()
}

func (s *Solver) filterXY(field []float64) {
	nx, ny := s.nx, s.ny
	scratch := s.scratch

	for iy := 0; iy < ny; iy++ {
		row := field[iy*nx : iy*nx+nx]
		s.hbf.ApplyZero(scratch, 1, row, 1, nx)
		copy(row, scratch[:nx])
	}
	for ix := 0; ix < nx; ix++ {
		s.hbf.ApplyZero(scratch, 1, field[ix:], nx, ny)
		for iy := 0; iy < ny; iy++ {
			field[s.idx(ix, iy)] = scratch[iy]
		}
	}
}
