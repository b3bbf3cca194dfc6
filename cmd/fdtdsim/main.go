// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fdtdsim runs a headless 2D TMz FDTD simulation and writes a PNG
// snapshot of the Ez field every -every steps, for -steps total steps.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/fdtd/colormap"
	"github.com/emer/fdtd/fdtd"
	"github.com/emer/fdtd/source"
)

func main() {
	nx := flag.Int("nx", 200, "grid width")
	ny := flag.Int("ny", 200, "grid height")
	steps := flag.Int("steps", 400, "number of timesteps to run")
	every := flag.Int("every", 20, "write a frame every N steps")
	outdir := flag.String("outdir", "frames", "output directory for PNG frames")
	ppw := flag.Float64("ppw", 30.0, "source points per wavelength")
	kind := flag.String("source", "monochromatic", "monochromatic|ricker|square|sawtooth")
	boundaryMode := flag.String("boundary", "absorbing", "periodic|absorbing|pec")
	palette := flag.String("palette", "diverging", "viridis|jet|diverging")
	flag.Parse()

	s, err := fdtd.NewSolver(*nx, *ny)
	if err != nil {
		log.Fatalf("fdtdsim: %v", err)
	}
	s.Initialize(0.0, 0.0, 0.01)
	s.SourcePlace(float64(*nx)/2*0.01, float64(*ny)/2*0.01)
	s.SourceTune(*ppw - s.SourceTuneGet())

	switch *kind {
	case "monochromatic":
		s.SourceType(source.Monochromatic)
	case "ricker":
		s.SourceType(source.RickerPulse)
	case "square":
		s.SourceType(source.SquareWave)
	case "sawtooth":
		s.SourceType(source.Sawtooth)
	default:
		log.Fatalf("fdtdsim: unknown -source %q", *kind)
	}

	switch *boundaryMode {
	case "periodic":
		s.SetPeriodicX()
		s.SetPeriodicY()
	case "absorbing":
		s.SetAbsorbingX()
		s.SetAbsorbingY()
	case "pec":
		s.SetPECX()
		s.SetPECY()
	default:
		log.Fatalf("fdtdsim: unknown -boundary %q", *boundaryMode)
	}

	cmap := resolveColormap(*palette)

	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		log.Fatalf("fdtdsim: %v", err)
	}

	buf := make([]uint32, *nx**ny)
	frame := 0
	for step := 0; step <= *steps; step++ {
		if step%*every == 0 {
			if err := writeFrame(*outdir, frame, buf, s, cmap); err != nil {
				log.Fatalf("fdtdsim: %v", err)
			}
			frame++
		}
		if step < *steps {
			s.Step()
		}
	}
	fmt.Printf("fdtdsim: wrote %d frames to %s\n", frame, *outdir)
}

func resolveColormap(name string) fdtd.Colormap {
	switch name {
	case "viridis":
		return colormap.Viridis
	case "jet":
		return colormap.Jet
	default:
		return colormap.Diverging
	}
}

func writeFrame(outdir string, frame int, buf []uint32, s *fdtd.Solver, cmap fdtd.Colormap) error {
	nx, ny := s.NX(), s.NY()
	lo, hi := s.MinimumEz(), s.MaximumEz()
	if hi-lo < 1e-12 {
		lo, hi = -1.0, 1.0
	}
	s.RasterizeEz(buf, nx, ny, cmap, lo, hi, s.Xmin(), s.Xmax(), s.Ymin(), s.Ymax())

	img := image.NewRGBA(image.Rect(0, 0, nx, ny))
	for i, px := range buf {
		r := uint8(px)
		g := uint8(px >> 8)
		b := uint8(px >> 16)
		a := uint8(px >> 24)
		img.Set(i%nx, i/nx, color.RGBA{R: r, G: g, B: b, A: a})
	}

	path := filepath.Join(outdir, fmt.Sprintf("frame%04d.png", frame))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
