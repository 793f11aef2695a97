/*
DESCRIPTION
  pattern.go provides the geometry of the planar checkerboard target.

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

import "gonum.org/v1/gonum/spatial/r3"

// ObjectPoints returns the interior corners of a rows by cols checkerboard in
// target units (one unit per square), lying in the z = 0 plane. The first
// coordinate varies fastest, matching the corner order reported by OpenCV for
// a pattern size of (rows, cols).
func ObjectPoints(rows, cols int) []r3.Vec {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	pts := make([]r3.Vec, 0, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			pts = append(pts, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	return pts
}
