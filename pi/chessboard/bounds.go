/*
DESCRIPTION
  bounds.go provides point set checks that do not depend on OpenCV.

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

// Package chessboard detects checkerboard calibration targets in images and
// refines their corners to sub-pixel accuracy.
package chessboard

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// InBounds reports whether every point lies within a w by h image, with
// pixel centres at integer coordinates.
func InBounds(pts []r2.Vec, w, h int) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return false
		}
		if p.X < -0.5 || p.Y < -0.5 || p.X > float64(w)-0.5 || p.Y > float64(h)-0.5 {
			return false
		}
	}
	return true
}

// Displacement returns the largest distance between corresponding points of
// a and b, or NaN when their lengths differ.
func Displacement(a, b []r2.Vec) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var max float64
	for i := range a {
		d := r2.Norm(r2.Sub(a[i], b[i]))
		if d > max {
			max = d
		}
	}
	return max
}
