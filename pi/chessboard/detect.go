//go:build withcv
// +build withcv

/*
DESCRIPTION
  detect.go locates the interior corners of a checkerboard target in a
  grayscale image.

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
)

// Detector finds checkerboard targets with Size interior corners.
type Detector struct {
	Size  image.Point // Interior corners per row (X) and per column (Y).
	Flags gocv.CalibCBFlag
}

// NewDetector returns a Detector for a rows by cols interior corner target
// using adaptive thresholding with image normalisation.
func NewDetector(rows, cols int) *Detector {
	return &Detector{
		Size:  image.Pt(rows, cols),
		Flags: gocv.CalibCBAdaptiveThresh | gocv.CalibCBNormalizeImage,
	}
}

// Count returns the number of corners in a complete detection.
func (d *Detector) Count() int { return d.Size.X * d.Size.Y }

// Find searches the grayscale image gray for the target. On success the
// returned Nx1 CV_32FC2 Mat holds every interior corner in row-major order
// and must be closed by the caller. Partial detections are reported as not
// found and no corners are returned.
func (d *Detector) Find(gray gocv.Mat) (gocv.Mat, bool) {
	corners := gocv.NewMat()
	if gray.Empty() || d.Size.X <= 0 || d.Size.Y <= 0 {
		return corners, false
	}
	if !gocv.FindChessboardCorners(gray, d.Size, &corners, d.Flags) || corners.Rows() != d.Count() {
		corners.Close()
		return gocv.NewMat(), false
	}
	return corners, true
}

// Gray returns a single channel copy of img, converting from BGR or BGRA as
// needed. The caller must close the result.
func Gray(img gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	switch img.Channels() {
	case 3:
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(img, &gray, gocv.ColorBGRAToGray)
	default:
		img.CopyTo(&gray)
	}
	return gray
}
