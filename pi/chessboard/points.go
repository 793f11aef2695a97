//go:build withcv
// +build withcv

/*
DESCRIPTION
  points.go converts corner matrices into point sets and draws detection
  overlays.

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

package chessboard

import (
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// Points returns the corners held by an Nx1 CV_32FC2 Mat.
func Points(corners gocv.Mat) []r2.Vec {
	pts := make([]r2.Vec, corners.Rows())
	for i := range pts {
		v := corners.GetVecfAt(i, 0)
		pts[i] = r2.Vec{X: float64(v[0]), Y: float64(v[1])}
	}
	return pts
}

// Draw overlays the detected corners on img, joining them in detection
// order.
func Draw(img *gocv.Mat, size image.Point, corners gocv.Mat) {
	gocv.DrawChessboardCorners(img, size, corners, true)
}
