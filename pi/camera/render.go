/*
DESCRIPTION
  render.go renders synthetic views of a checkerboard target as seen through
  a camera Model. The views are used to bench test calibration against a
  known ground truth.

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
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Target shades.
const (
	Ink   = 20  // Dark squares.
	Paper = 235 // Light squares and background.
)

// Render draws a rows by cols (interior corners) checkerboard posed at p as
// imaged by m into a size.X by size.Y grayscale image. Each pixel is
// averaged over samples x samples sub-pixel rays; samples below 1 is
// treated as 1. The target has a one square border around the interior
// corners and everything outside it is Paper.
func Render(m *Model, p Pose, rows, cols int, size image.Point, samples int) *image.Gray {
	if samples < 1 {
		samples = 1
	}
	img := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	rot := p.Matrix()
	// Camera centre expressed in target coordinates is -Rᵀt.
	origin := r3.Scale(-1, rot.MulVecTrans(p.Tvec))

	n := float64(samples)
	for v := 0; v < size.Y; v++ {
		for u := 0; u < size.X; u++ {
			var sum float64
			for sy := 0; sy < samples; sy++ {
				for sx := 0; sx < samples; sx++ {
					px := r2.Vec{
						X: float64(u) + (float64(sx)+0.5)/n - 0.5,
						Y: float64(v) + (float64(sy)+0.5)/n - 0.5,
					}
					sum += shade(m, rot, origin, px, rows, cols)
				}
			}
			img.SetGray(u, v, color.Gray{Y: uint8(math.Round(sum / (n * n)))})
		}
	}
	return img
}

// shade returns the target intensity seen along the ray through pixel px.
func shade(m *Model, rot *r3.Mat, origin r3.Vec, px r2.Vec, rows, cols int) float64 {
	x, y := m.Undistort(m.Normalize(px))
	dir := rot.MulVecTrans(r3.Vec{X: x, Y: y, Z: 1})
	if dir.Z == 0 {
		return Paper
	}
	s := -origin.Z / dir.Z
	if s <= 0 {
		return Paper
	}
	hit := r3.Add(origin, r3.Scale(s, dir))
	if hit.X < -1 || hit.X >= float64(rows) || hit.Y < -1 || hit.Y >= float64(cols) {
		return Paper
	}
	if (int(math.Floor(hit.X))+int(math.Floor(hit.Y)))%2 == 0 {
		return Ink
	}
	return Paper
}
