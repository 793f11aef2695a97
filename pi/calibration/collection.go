//go:build withcv
// +build withcv

/*
DESCRIPTION
  collection.go accumulates target correspondences from a sequence of
  images: the known corner positions on the target paired with the refined
  corner positions observed in each image.

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
	"image"
	"time"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/camcal/pi/camera"
	"github.com/ausocean/camcal/pi/chessboard"
)

// ErrSizeMismatch is returned by Add for an image whose resolution differs
// from the first image offered.
var ErrSizeMismatch = errors.New("image size does not match collection")

// Collection holds the correspondences of every image in which the target
// was found. Images are processed one at a time and are never modified.
type Collection struct {
	detector *chessboard.Detector
	refiner  *chessboard.Refiner
	obj      []r3.Vec   // Target corners, shared by every view.
	views    [][]r2.Vec // Observed corners, one set per detection.
	used     []int      // Index of the input image of each view.
	overlays []gocv.Mat // Input images annotated with their corners.
	sample   gocv.Mat   // Copy of the most recent image of the collection's size.
	size     image.Point
	offered  int
	log      logging.Logger
}

// NewCollection returns an empty Collection for the target described by
// cfg.
func NewCollection(cfg Config, log logging.Logger) (*Collection, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Collection{
		detector: chessboard.NewDetector(cfg.Rows, cfg.Cols),
		refiner: &chessboard.Refiner{
			Window:  image.Pt(cfg.Window, cfg.Window),
			MaxIter: cfg.MaxIter,
			Epsilon: cfg.Epsilon,
		},
		obj:    camera.ObjectPoints(cfg.Rows, cfg.Cols),
		sample: gocv.NewMat(),
		log:    log,
	}, nil
}

// Add searches img for the target and, if every corner is found, records
// the refined corners and an annotated copy of img. It reports whether a
// view was recorded. Images in which the target is missing or partial are
// skipped without error and record nothing, though an image of the
// collection's size still becomes the sample. The first recorded view fixes
// the resolution of the collection; once a view is held, images of another
// size are rejected with ErrSizeMismatch.
func (c *Collection) Add(img gocv.Mat) (bool, error) {
	idx := c.offered
	c.offered++

	if img.Empty() {
		c.log.Warning("skipping empty image", "index", idx)
		return false, nil
	}
	size := image.Pt(img.Cols(), img.Rows())
	if len(c.views) != 0 {
		if size != c.size {
			return false, fmt.Errorf("image %d is %v, collection is %v: %w", idx, size, c.size, ErrSizeMismatch)
		}
		c.setSample(img)
	}

	gray := chessboard.Gray(img)
	defer gray.Close()

	timer := time.Now()
	corners, ok := c.detector.Find(gray)
	defer corners.Close()
	if !ok {
		c.log.Info("target not found", "index", idx, "detection duration (sec)", time.Since(timer).Seconds())
		return false, nil
	}
	c.log.Debug("target found", "index", idx, "detection duration (sec)", time.Since(timer).Seconds())

	timer = time.Now()
	c.refiner.Refine(gray, &corners)
	pts := chessboard.Points(corners)
	if len(pts) != len(c.obj) || !chessboard.InBounds(pts, size.X, size.Y) {
		c.log.Warning("discarding corners outside image", "index", idx)
		return false, nil
	}
	c.log.Debug("corners refined", "index", idx, "refinement duration (sec)", time.Since(timer).Seconds())

	overlay := gocv.NewMat()
	if img.Channels() == 1 {
		gocv.CvtColor(img, &overlay, gocv.ColorGrayToBGR)
	} else {
		img.CopyTo(&overlay)
	}
	chessboard.Draw(&overlay, c.detector.Size, corners)

	if len(c.views) == 0 {
		c.size = size
		c.setSample(img)
	}
	c.views = append(c.views, pts)
	c.used = append(c.used, idx)
	c.overlays = append(c.overlays, overlay)
	return true, nil
}

// setSample replaces the sample image with a copy of img.
func (c *Collection) setSample(img gocv.Mat) {
	c.sample.Close()
	c.sample = img.Clone()
}

// Len returns the number of recorded views.
func (c *Collection) Len() int { return len(c.views) }

// Size returns the resolution of the collected images.
func (c *Collection) Size() image.Point { return c.size }

// Used returns the input index of each recorded view.
func (c *Collection) Used() []int { return c.used }

// Object returns the target corner set of each recorded view.
func (c *Collection) Object() [][]r3.Vec {
	obj := make([][]r3.Vec, len(c.views))
	for i := range obj {
		obj[i] = c.obj
	}
	return obj
}

// Image returns the observed corner set of each recorded view.
func (c *Collection) Image() [][]r2.Vec { return c.views }

// Close releases the images held by the Collection.
func (c *Collection) Close() {
	for i := range c.overlays {
		c.overlays[i].Close()
	}
	c.overlays = nil
	c.sample.Close()
}

// release hands the overlays and sample image to the caller, who becomes
// responsible for closing them.
func (c *Collection) release() ([]gocv.Mat, gocv.Mat) {
	overlays, sample := c.overlays, c.sample
	c.overlays, c.sample = nil, gocv.NewMat()
	return overlays, sample
}
