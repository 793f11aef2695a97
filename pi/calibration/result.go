//go:build withcv
// +build withcv

/*
DESCRIPTION
  result.go holds the output of a calibration run.

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
	"image"
	"io"

	"gocv.io/x/gocv"

	"github.com/ausocean/camcal/pi/calstore"
	"github.com/ausocean/camcal/pi/camera"
	"github.com/ausocean/camcal/pi/undistort"
)

// Result holds the output of a calibration run. The Mats are owned by the
// Result and released by Close.
type Result struct {
	Model  *camera.Model
	Poses  []camera.Pose // One per used image.
	RMS    float64       // Solver root mean square error.
	Error  float64       // Mean reprojection error in pixels.
	Errors []float64     // Reprojection error of each used image.
	Used   []int         // Input index of each used image.
	Size   image.Point   // Resolution of the calibrated images.

	Overlays []gocv.Mat // Used images annotated with their corners.

	Strategy  undistort.Strategy
	Optimal   *camera.Model   // Camera model of the corrected images.
	ROI       image.Rectangle // Valid region of the corrected images.
	Original  gocv.Mat        // Sample image before correction.
	Corrected gocv.Mat        // Sample image after correction.
	Cropped   gocv.Mat        // Corrected sample cropped to ROI; empty if ROI is.
}

// Save persists the model and poses to an archive at path.
func (r *Result) Save(path string) error {
	return calstore.Save(path, r.Model, r.Poses)
}

// WriteReport writes a summary of r to w.
func (r *Result) WriteReport(w io.Writer) error {
	return WriteReport(w, r.Model, r.Errors)
}

// Close releases the images held by r.
func (r *Result) Close() {
	for i := range r.Overlays {
		r.Overlays[i].Close()
	}
	r.Original.Close()
	r.Corrected.Close()
	r.Cropped.Close()
}
