//go:build withcv
// +build withcv

/*
DESCRIPTION
  solve.go jointly estimates the camera model and the pose of every view
  from a Collection of correspondences.

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
	"errors"
	"fmt"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/camcal/pi/camera"
)

// ErrNoCorrespondences is returned by Solve for an empty Collection.
var ErrNoCorrespondences = errors.New("no correspondences to solve")

// Solution is the output of Solve.
type Solution struct {
	Model *camera.Model
	Poses []camera.Pose // One per view, in Collection order.
	RMS   float64       // Root mean square reprojection error reported by the solver.
}

// Solve minimises the total reprojection error of every view in c over the
// intrinsics, distortion coefficients and view poses. Poorly conditioned
// input, such as few or similar views, yields a poor model rather than an
// error; use the reprojection error to judge the result.
func Solve(c *Collection) (*Solution, error) {
	if c.Len() == 0 {
		return nil, ErrNoCorrespondences
	}

	obj := point3fs(c.obj)
	objPts := gocv.NewPoints3fVector()
	defer objPts.Close()
	imgPts := gocv.NewPoints2fVector()
	defer imgPts.Close()
	for _, v := range c.views {
		o := gocv.NewPoint3fVectorFromPoints(obj)
		objPts.Append(o)
		o.Close()

		i := gocv.NewPoint2fVectorFromPoints(point2fs(v))
		imgPts.Append(i)
		i.Close()
	}

	k, dist := gocv.NewMat(), gocv.NewMat()
	defer k.Close()
	defer dist.Close()
	rvecs, tvecs := gocv.NewMat(), gocv.NewMat()
	defer rvecs.Close()
	defer tvecs.Close()

	rms := gocv.CalibrateCamera(objPts, imgPts, c.size, &k, &dist, &rvecs, &tvecs, 0)
	if math.IsNaN(rms) || k.Empty() {
		return nil, errors.New("solver did not converge")
	}

	m, err := camera.ModelFromMats(k, dist)
	if err != nil {
		return nil, fmt.Errorf("could not convert camera model: %w", err)
	}
	poses, err := camera.PosesFromMats(rvecs, tvecs)
	if err != nil {
		return nil, fmt.Errorf("could not convert poses: %w", err)
	}
	if len(poses) != c.Len() {
		return nil, fmt.Errorf("solver returned %d poses for %d views", len(poses), c.Len())
	}
	return &Solution{Model: m, Poses: poses, RMS: rms}, nil
}

func point3fs(v []r3.Vec) []gocv.Point3f {
	pts := make([]gocv.Point3f, len(v))
	for i, p := range v {
		pts[i] = gocv.Point3f{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
	}
	return pts
}

func point2fs(v []r2.Vec) []gocv.Point2f {
	pts := make([]gocv.Point2f, len(v))
	for i, p := range v {
		pts[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	return pts
}
