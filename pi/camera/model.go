/*
DESCRIPTION
  model.go provides the pinhole camera model (intrinsic matrix plus
  Brown-Conrady lens distortion) recovered by calibration, along with
  projection of planar target points into pixel space.

AUTHORS
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License in
  gpl.txt. If not, see http://www.gnu.org/licenses.
*/

// Package camera provides the pinhole camera model used for calibration:
// the intrinsic matrix, the lens distortion coefficients, per-view poses,
// the planar target geometry and a renderer for synthetic target views.
package camera

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxCoeffs is the largest number of distortion coefficients understood by
// the model: k1, k2, p1, p2, k3, k4, k5, k6.
const MaxCoeffs = 8

// Inverse distortion iteration limits.
const (
	undistortIters = 40
	undistortTol   = 1e-12
)

var (
	errShape      = errors.New("intrinsic matrix must be 3x3")
	errFocal      = errors.New("focal lengths must be positive")
	errTooManyCfs = fmt.Errorf("too many distortion coefficients, expected at most %d", MaxCoeffs)
)

// Model is a calibrated pinhole camera. K is the 3x3 intrinsic matrix with
// zero skew, Dist holds distortion coefficients in OpenCV order
// (k1, k2, p1, p2, k3 and optionally the rational terms k4, k5, k6).
type Model struct {
	K    *mat.Dense
	Dist []float64
}

// NewModel returns a Model with the given focal lengths, principal point and
// distortion coefficients.
func NewModel(fx, fy, cx, cy float64, dist ...float64) (*Model, error) {
	k := mat.NewDense(3, 3, []float64{
		fx, 0, cx,
		0, fy, cy,
		0, 0, 1,
	})
	return ModelFromMatrix(k, dist)
}

// ModelFromMatrix returns a Model using a copy of the intrinsic matrix k and
// the distortion coefficients dist.
func ModelFromMatrix(k mat.Matrix, dist []float64) (*Model, error) {
	if r, c := k.Dims(); r != 3 || c != 3 {
		return nil, errShape
	}
	if len(dist) > MaxCoeffs {
		return nil, errTooManyCfs
	}
	if k.At(0, 0) <= 0 || k.At(1, 1) <= 0 {
		return nil, errFocal
	}
	m := &Model{K: mat.DenseCopyOf(k), Dist: make([]float64, len(dist))}
	copy(m.Dist, dist)
	return m, nil
}

// Fx returns the horizontal focal length in pixels.
func (m *Model) Fx() float64 { return m.K.At(0, 0) }

// Fy returns the vertical focal length in pixels.
func (m *Model) Fy() float64 { return m.K.At(1, 1) }

// Cx returns the horizontal principal point coordinate.
func (m *Model) Cx() float64 { return m.K.At(0, 2) }

// Cy returns the vertical principal point coordinate.
func (m *Model) Cy() float64 { return m.K.At(1, 2) }

// Coeffs returns the distortion coefficients padded with zeros to MaxCoeffs.
func (m *Model) Coeffs() [MaxCoeffs]float64 {
	var c [MaxCoeffs]float64
	copy(c[:], m.Dist)
	return c
}

// Distort applies lens distortion to the normalized image coordinates
// (x, y), returning the distorted normalized coordinates.
func (m *Model) Distort(x, y float64) (float64, float64) {
	c := m.Coeffs()
	k1, k2, p1, p2, k3, k4, k5, k6 := c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7]

	r2 := x*x + y*y
	r4 := r2 * r2
	r6 := r4 * r2
	radial := (1 + k1*r2 + k2*r4 + k3*r6) / (1 + k4*r2 + k5*r4 + k6*r6)
	xd := x*radial + 2*p1*x*y + p2*(r2+2*x*x)
	yd := y*radial + p1*(r2+2*y*y) + 2*p2*x*y
	return xd, yd
}

// Undistort inverts Distort by fixed-point iteration, returning the ideal
// normalized coordinates that distort to (xd, yd).
func (m *Model) Undistort(xd, yd float64) (float64, float64) {
	c := m.Coeffs()
	k1, k2, p1, p2, k3, k4, k5, k6 := c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7]

	x, y := xd, yd
	for i := 0; i < undistortIters; i++ {
		r2 := x*x + y*y
		r4 := r2 * r2
		r6 := r4 * r2
		inv := (1 + k4*r2 + k5*r4 + k6*r6) / (1 + k1*r2 + k2*r4 + k3*r6)
		dx := 2*p1*x*y + p2*(r2+2*x*x)
		dy := p1*(r2+2*y*y) + 2*p2*x*y
		nx := (xd - dx) * inv
		ny := (yd - dy) * inv
		done := (nx-x)*(nx-x)+(ny-y)*(ny-y) < undistortTol*undistortTol
		x, y = nx, ny
		if done {
			break
		}
	}
	return x, y
}

// Pixel maps distorted normalized coordinates to pixel coordinates.
func (m *Model) Pixel(x, y float64) r2.Vec {
	return r2.Vec{X: m.Fx()*x + m.Cx(), Y: m.Fy()*y + m.Cy()}
}

// Normalize maps pixel coordinates to (distorted) normalized coordinates.
func (m *Model) Normalize(p r2.Vec) (float64, float64) {
	return (p.X - m.Cx()) / m.Fx(), (p.Y - m.Cy()) / m.Fy()
}

// Project projects target points through pose p and the model, returning
// the pixel positions in the same order as obj. As in OpenCV projectPoints,
// points lying in the camera plane are taken to have unit inverse depth.
func (m *Model) Project(obj []r3.Vec, p Pose) []r2.Vec {
	rot := p.Rotation()
	out := make([]r2.Vec, len(obj))
	for i, o := range obj {
		c := r3.Add(rot.Rotate(o), p.Tvec)
		iz := 1.0
		if c.Z != 0 {
			iz = 1 / c.Z
		}
		out[i] = m.Pixel(m.Distort(c.X*iz, c.Y*iz))
	}
	return out
}

// String implements fmt.Stringer.
func (m *Model) String() string {
	return fmt.Sprintf("fx=%.4f fy=%.4f cx=%.4f cy=%.4f dist=%v", m.Fx(), m.Fy(), m.Cx(), m.Cy(), m.Dist)
}
