/*
DESCRIPTION
  model_test.go provides testing for the camera model, poses and target
  geometry.

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

package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestModelFromMatrix(t *testing.T) {
	tests := []struct {
		name    string
		k       mat.Matrix
		dist    []float64
		wantErr bool
	}{
		{
			name: "valid",
			k:    mat.NewDense(3, 3, []float64{600, 0, 320, 0, 610, 240, 0, 0, 1}),
			dist: []float64{-0.2, 0.05, 0, 0, 0},
		},
		{
			name: "no distortion",
			k:    mat.NewDense(3, 3, []float64{600, 0, 320, 0, 610, 240, 0, 0, 1}),
		},
		{
			name:    "bad shape",
			k:       mat.NewDense(2, 3, []float64{600, 0, 320, 0, 610, 240}),
			wantErr: true,
		},
		{
			name:    "zero focal length",
			k:       mat.NewDense(3, 3, []float64{0, 0, 320, 0, 610, 240, 0, 0, 1}),
			wantErr: true,
		},
		{
			name:    "too many coefficients",
			k:       mat.NewDense(3, 3, []float64{600, 0, 320, 0, 610, 240, 0, 0, 1}),
			dist:    make([]float64, MaxCoeffs+1),
			wantErr: true,
		},
	}

	for _, test := range tests {
		m, err := ModelFromMatrix(test.k, test.dist)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error state, got: %v, wantErr: %v", test.name, err, test.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if m.Fx() != 600 || m.Fy() != 610 || m.Cx() != 320 || m.Cy() != 240 {
			t.Errorf("%s: did not get expected intrinsics: %v", test.name, m)
		}
		if len(m.Dist) != len(test.dist) {
			t.Errorf("%s: did not get expected coefficient count, got: %d, want: %d", test.name, len(m.Dist), len(test.dist))
		}
	}
}

// TestModelCopies checks that a Model does not alias the caller's data.
func TestModelCopies(t *testing.T) {
	k := mat.NewDense(3, 3, []float64{600, 0, 320, 0, 600, 240, 0, 0, 1})
	dist := []float64{-0.1, 0.01}
	m, err := ModelFromMatrix(k, dist)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	k.Set(0, 0, 1)
	dist[0] = 1
	if m.Fx() != 600 || m.Dist[0] != -0.1 {
		t.Errorf("model aliases its inputs: %v", m)
	}
}

// TestUndistort checks that Undistort inverts Distort over the field of view.
func TestUndistort(t *testing.T) {
	models := [][]float64{
		{-0.2, 0.05, 0.001, -0.001, 0},
		{0.1, -0.02, 0, 0, 0.001},
		{-0.25, 0.07, 0.0005, 0.0005, -0.01, 0.01, 0, 0},
	}
	for i, dist := range models {
		m, err := NewModel(600, 600, 320, 240, dist...)
		if err != nil {
			t.Fatalf("could not create model %d: %v", i, err)
		}
		for x := -0.5; x <= 0.5; x += 0.125 {
			for y := -0.4; y <= 0.4; y += 0.1 {
				xd, yd := m.Distort(x, y)
				xu, yu := m.Undistort(xd, yd)
				if !scalar.EqualWithinAbs(xu, x, tol) || !scalar.EqualWithinAbs(yu, y, tol) {
					t.Errorf("model %d: undistort(distort(%v, %v)) = (%v, %v)", i, x, y, xu, yu)
				}
			}
		}
	}
}

func TestProject(t *testing.T) {
	m, err := NewModel(600, 500, 320, 240)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	p := Pose{Tvec: r3.Vec{Z: 10}}
	obj := []r3.Vec{{}, {X: 1}, {X: -2, Y: 3}}
	got := m.Project(obj, p)
	want := [][2]float64{{320, 240}, {380, 240}, {200, 390}}
	for i := range want {
		if !scalar.EqualWithinAbs(got[i].X, want[i][0], tol) || !scalar.EqualWithinAbs(got[i].Y, want[i][1], tol) {
			t.Errorf("point %d: did not get expected projection, got: %v, want: %v", i, got[i], want[i])
		}
	}

	// A point in the camera plane is projected with unit inverse depth, as
	// OpenCV does: camera point (1, 0, 0) images at (320+600, 240).
	inPlane := m.Project([]r3.Vec{{X: 1, Z: -10}}, p)[0]
	if !scalar.EqualWithinAbs(inPlane.X, 920, tol) || !scalar.EqualWithinAbs(inPlane.Y, 240, tol) {
		t.Errorf("did not get expected in-plane projection, got: %v, want: (920, 240)", inPlane)
	}
}

// TestProjectDistorted checks that distortion moves points by the expected
// radial amount.
func TestProjectDistorted(t *testing.T) {
	const k1 = -0.2
	m, err := NewModel(600, 600, 320, 240, k1)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	got := m.Project([]r3.Vec{{X: 5}}, Pose{Tvec: r3.Vec{Z: 10}})[0]
	want := 320 + 600*0.5*(1+k1*0.25)
	if !scalar.EqualWithinAbs(got.X, want, tol) || !scalar.EqualWithinAbs(got.Y, 240, tol) {
		t.Errorf("did not get expected projection, got: %v, want: (%v, 240)", got, want)
	}
}

func TestPoseRotation(t *testing.T) {
	p := Pose{Rvec: r3.Vec{Z: math.Pi / 2}, Tvec: r3.Vec{Z: 1}}
	got := p.Apply(r3.Vec{X: 1})
	want := r3.Vec{Y: 1, Z: 1}
	if r3.Norm(r3.Sub(got, want)) > tol {
		t.Errorf("did not get expected rotation, got: %v, want: %v", got, want)
	}

	if got := (Pose{}).Apply(r3.Vec{X: 1, Y: 2, Z: 3}); got != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("zero pose should be the identity, got: %v", got)
	}

	r := p.Matrix()
	if !scalar.EqualWithinAbs(r.Det(), 1, tol) {
		t.Errorf("rotation matrix is not proper, det: %v", r.Det())
	}
}

func TestFacing(t *testing.T) {
	p := Facing(12, 8, r3.Vec{X: 0.3, Y: -0.2, Z: 0.1}, 1, -2, 25)
	got := p.Apply(r3.Vec{X: 5.5, Y: 3.5})
	want := r3.Vec{X: 1, Y: -2, Z: 25}
	if r3.Norm(r3.Sub(got, want)) > tol {
		t.Errorf("target centre not placed as expected, got: %v, want: %v", got, want)
	}
}

func TestObjectPoints(t *testing.T) {
	pts := ObjectPoints(4, 3)
	if len(pts) != 12 {
		t.Fatalf("did not get expected point count, got: %d, want: 12", len(pts))
	}
	want := []r3.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {Y: 1}}
	for i, w := range want {
		if pts[i] != w {
			t.Errorf("point %d: got: %v, want: %v", i, pts[i], w)
		}
	}
	if pts[11] != (r3.Vec{X: 3, Y: 2}) {
		t.Errorf("last point: got: %v, want: (3, 2, 0)", pts[11])
	}
	if ObjectPoints(0, 5) != nil {
		t.Errorf("expected no points for an empty pattern")
	}
}
