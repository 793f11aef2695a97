/*
DESCRIPTION
  pose.go provides the Pose type describing the position and orientation of
  the calibration target relative to the camera for a single view.

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

	"gonum.org/v1/gonum/spatial/r3"
)

// Pose holds the extrinsics of one view. Rvec is a Rodrigues rotation vector
// (axis scaled by angle in radians) and Tvec the translation, both mapping
// target coordinates into camera coordinates.
type Pose struct {
	Rvec, Tvec r3.Vec
}

// Rotation returns the rotation described by Rvec.
func (p Pose) Rotation() r3.Rotation {
	return r3.NewRotation(r3.Norm(p.Rvec), p.Rvec)
}

// Matrix returns the 3x3 rotation matrix described by Rvec.
func (p Pose) Matrix() *r3.Mat {
	return p.Rotation().Mat()
}

// Apply maps the target point x into camera coordinates.
func (p Pose) Apply(x r3.Vec) r3.Vec {
	return r3.Add(p.Rotation().Rotate(x), p.Tvec)
}

// String implements fmt.Stringer.
func (p Pose) String() string {
	return fmt.Sprintf("r=(%.6f, %.6f, %.6f) t=(%.6f, %.6f, %.6f)",
		p.Rvec.X, p.Rvec.Y, p.Rvec.Z, p.Tvec.X, p.Tvec.Y, p.Tvec.Z)
}

// Facing returns a pose that rotates the target by rvec about its own centre
// and places that centre at dist along the optical axis, offset by (dx, dy).
// rows and cols give the interior corner count of the target, so its centre
// lies at ((rows-1)/2, (cols-1)/2, 0).
func Facing(rows, cols int, rvec r3.Vec, dx, dy, dist float64) Pose {
	p := Pose{Rvec: rvec}
	centre := r3.Vec{X: float64(rows-1) / 2, Y: float64(cols-1) / 2}
	p.Tvec = r3.Sub(r3.Vec{X: dx, Y: dy, Z: dist}, p.Rotation().Rotate(centre))
	return p
}
