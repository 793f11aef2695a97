//go:build withcv
// +build withcv

/*
DESCRIPTION
  cv.go converts camera models and poses to and from OpenCV matrices.

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
	"fmt"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mats returns the model as a 3x3 CV_64F intrinsic matrix and a 1xN CV_64F
// distortion vector. The caller must close both.
func (m *Model) Mats() (k, dist gocv.Mat) {
	k = gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k.SetDoubleAt(i, j, m.K.At(i, j))
		}
	}
	n := len(m.Dist)
	if n == 0 {
		return k, gocv.NewMat()
	}
	dist = gocv.NewMatWithSize(1, n, gocv.MatTypeCV64F)
	for i, c := range m.Dist {
		dist.SetDoubleAt(0, i, c)
	}
	return k, dist
}

// ModelFromMats returns a Model from an OpenCV intrinsic matrix and
// distortion vector, as produced by calibrateCamera.
func ModelFromMats(k, dist gocv.Mat) (*Model, error) {
	if k.Rows() != 3 || k.Cols() != 3 {
		return nil, fmt.Errorf("unexpected intrinsic matrix size %dx%d", k.Rows(), k.Cols())
	}
	km := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			km.Set(i, j, k.GetDoubleAt(i, j))
		}
	}
	return ModelFromMatrix(km, vector(dist))
}

// PosesFromMats returns the poses held by the Nx1 three channel rotation and
// translation vector matrices produced by calibrateCamera.
func PosesFromMats(rvecs, tvecs gocv.Mat) ([]Pose, error) {
	if rvecs.Rows() != tvecs.Rows() {
		return nil, fmt.Errorf("rotation and translation counts differ: %d != %d", rvecs.Rows(), tvecs.Rows())
	}
	poses := make([]Pose, rvecs.Rows())
	for i := range poses {
		r := rvecs.GetVecdAt(i, 0)
		t := tvecs.GetVecdAt(i, 0)
		if len(r) < 3 || len(t) < 3 {
			return nil, fmt.Errorf("pose %d is not three dimensional", i)
		}
		poses[i] = Pose{
			Rvec: r3.Vec{X: r[0], Y: r[1], Z: r[2]},
			Tvec: r3.Vec{X: t[0], Y: t[1], Z: t[2]},
		}
	}
	return poses, nil
}

// vector flattens a single row or single column CV_64F Mat.
func vector(m gocv.Mat) []float64 {
	if m.Empty() {
		return nil
	}
	rows, cols := m.Rows(), m.Cols()
	v := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v = append(v, m.GetDoubleAt(i, j))
		}
	}
	return v
}
