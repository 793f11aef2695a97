//go:build withcv
// +build withcv

/*
DESCRIPTION
  undistort.go provides Correctors that remove lens distortion from images
  of a calibrated camera and crop the result to its valid region.

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

package undistort

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/camcal/pi/camera"
)

var errNoModel = errors.New("no camera model")

// Corrector removes lens distortion from images of a fixed resolution.
type Corrector interface {
	// Correct returns the corrected full frame and its crop to ROI. Both
	// must be closed by the caller. The crop is empty when ROI is.
	Correct(src gocv.Mat) (full, cropped gocv.Mat, err error)

	// ROI returns the region of the corrected frame holding only valid
	// pixels.
	ROI() image.Rectangle

	// Optimal returns the camera model of the corrected images, which has
	// no distortion.
	Optimal() *camera.Model

	// Close releases the Corrector's resources.
	Close()
}

// New returns a Corrector using strategy s for images of the given size taken
// by a camera described by m. alpha scales the new camera matrix between
// keeping only valid pixels (0) and keeping every source pixel (1).
func New(s Strategy, m *camera.Model, size image.Point, alpha float64) (Corrector, error) {
	b, err := newBase(m, size, alpha)
	if err != nil {
		return nil, err
	}
	switch s {
	case Direct:
		return &direct{base: b}, nil
	case Remap:
		return newRemap(b), nil
	default:
		b.close()
		return nil, fmt.Errorf("unsupported strategy: %v", s)
	}
}

// base holds the state shared by both strategies.
type base struct {
	k, dist, newK gocv.Mat
	optimal       *camera.Model
	roi           image.Rectangle
	size          image.Point
}

func newBase(m *camera.Model, size image.Point, alpha float64) (*base, error) {
	if m == nil {
		return nil, errNoModel
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid image size: %v", size)
	}
	b := &base{size: size}
	b.k, b.dist = m.Mats()
	b.newK, b.roi = gocv.GetOptimalNewCameraMatrixWithParams(b.k, b.dist, size, alpha, size, false)
	if b.newK.Empty() {
		b.close()
		return nil, errors.New("could not compute optimal camera matrix")
	}

	none := gocv.NewMat()
	defer none.Close()
	var err error
	b.optimal, err = camera.ModelFromMats(b.newK, none)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("could not convert optimal camera matrix: %w", err)
	}
	return b, nil
}

func (b *base) ROI() image.Rectangle { return b.roi }

func (b *base) Optimal() *camera.Model { return b.optimal }

func (b *base) check(src gocv.Mat) error {
	if src.Empty() {
		return errors.New("image is empty")
	}
	if got := image.Pt(src.Cols(), src.Rows()); got != b.size {
		return fmt.Errorf("image size %v does not match calibrated size %v", got, b.size)
	}
	return nil
}

func (b *base) close() {
	b.k.Close()
	b.dist.Close()
	b.newK.Close()
}

// direct corrects each image independently.
type direct struct {
	*base
}

func (d *direct) Correct(src gocv.Mat) (gocv.Mat, gocv.Mat, error) {
	if err := d.check(src); err != nil {
		return gocv.NewMat(), gocv.NewMat(), err
	}
	full := gocv.NewMat()
	gocv.Undistort(src, &full, d.k, d.dist, d.newK)
	return full, crop(full, d.roi), nil
}

func (d *direct) Close() { d.close() }

// remap precomputes the pixel maps once and resamples each image with
// bilinear interpolation.
type remap struct {
	*base
	mapX, mapY gocv.Mat
}

func newRemap(b *base) *remap {
	r := &remap{base: b, mapX: gocv.NewMat(), mapY: gocv.NewMat()}
	rect := gocv.NewMat()
	defer rect.Close()
	gocv.InitUndistortRectifyMap(b.k, b.dist, rect, b.newK, b.size, int(gocv.MatTypeCV32FC1), r.mapX, r.mapY)
	return r
}

func (r *remap) Correct(src gocv.Mat) (gocv.Mat, gocv.Mat, error) {
	if err := r.check(src); err != nil {
		return gocv.NewMat(), gocv.NewMat(), err
	}
	full := gocv.NewMat()
	gocv.Remap(src, &full, &r.mapX, &r.mapY, gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{})
	return full, crop(full, r.roi), nil
}

func (r *remap) Close() {
	r.mapX.Close()
	r.mapY.Close()
	r.close()
}

// crop returns a copy of the part of img inside roi, clipped to the frame.
// An empty Mat is returned when nothing remains.
func crop(img gocv.Mat, roi image.Rectangle) gocv.Mat {
	r := roi.Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))
	if r.Empty() {
		return gocv.NewMat()
	}
	region := img.Region(r)
	defer region.Close()
	return region.Clone()
}
