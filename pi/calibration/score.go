/*
DESCRIPTION
  score.go measures calibration quality as the reprojection error of the
  target corners through the estimated camera model.

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

package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/camcal/pi/camera"
)

// ReprojectionErrors returns, for each view i, the L2 norm of the difference
// between the observed corners img[i] and obj[i] projected through m and
// poses[i], divided by the number of corners. An error is returned if any
// view's error is not finite.
func ReprojectionErrors(m *camera.Model, poses []camera.Pose, obj [][]r3.Vec, img [][]r2.Vec) ([]float64, error) {
	if len(poses) != len(obj) || len(obj) != len(img) {
		return nil, fmt.Errorf("view counts differ: %d poses, %d object sets, %d image sets", len(poses), len(obj), len(img))
	}
	errs := make([]float64, len(poses))
	for i := range poses {
		if len(obj[i]) != len(img[i]) {
			return nil, fmt.Errorf("view %d: %d object points but %d image points", i, len(obj[i]), len(img[i]))
		}
		if len(obj[i]) == 0 {
			return nil, fmt.Errorf("view %d has no points", i)
		}
		proj := m.Project(obj[i], poses[i])
		e := floats.Distance(flatten(img[i]), flatten(proj), 2) / float64(len(proj))
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("view %d: reprojection error is not finite", i)
		}
		errs[i] = e
	}
	return errs, nil
}

// MeanError returns the mean of the per view errors, or zero when there are
// none.
func MeanError(errs []float64) float64 {
	if len(errs) == 0 {
		return 0
	}
	return stat.Mean(errs, nil)
}

// flatten returns the coordinates of pts as x0, y0, x1, y1, ...
func flatten(pts []r2.Vec) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}
