//go:build withcv
// +build withcv

/*
DESCRIPTION
  calibrate.go runs a complete calibration: detection and refinement of the
  target in every image, the joint solve, reprojection scoring and
  correction of a sample image.

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
	"time"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"

	"github.com/ausocean/camcal/pi/undistort"
)

// ErrNoDetections is returned by Calibrate when the target was not found in
// any image. No Result is returned with it.
var ErrNoDetections = errors.New("target not found in any image")

// Calibrator calibrates a camera from images of a checkerboard target.
type Calibrator struct {
	cfg Config
	log logging.Logger
}

// New returns a new Calibrator.
func New(cfg Config, log logging.Logger) (*Calibrator, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Calibrator{cfg: cfg, log: log}, nil
}

// Calibrate estimates the camera model from imgs, which are not modified.
// Images without a complete view of the target, and images whose resolution
// differs from the first, are skipped. The most recent accepted image is
// corrected with the estimated model as a sample. ErrNoDetections is
// returned if no image could be used.
func (c *Calibrator) Calibrate(imgs []gocv.Mat) (*Result, error) {
	col, err := NewCollection(c.cfg, c.log)
	if err != nil {
		return nil, fmt.Errorf("could not create collection: %w", err)
	}
	defer col.Close()

	for i := range imgs {
		_, err := col.Add(imgs[i])
		switch {
		case errors.Is(err, ErrSizeMismatch):
			c.log.Warning("skipping image", "index", i, "error", err)
		case err != nil:
			return nil, fmt.Errorf("could not process image %d: %w", i, err)
		}
	}
	c.log.Info("detection complete", "images", len(imgs), "views", col.Len())
	if col.Len() == 0 {
		return nil, ErrNoDetections
	}

	timer := time.Now()
	sol, err := Solve(col)
	if err != nil {
		return nil, fmt.Errorf("could not solve: %w", err)
	}
	c.log.Debug("solve successful", "solve duration (sec)", time.Since(timer).Seconds(), "rms", sol.RMS)

	errs, err := ReprojectionErrors(sol.Model, sol.Poses, col.Object(), col.Image())
	if err != nil {
		return nil, fmt.Errorf("could not score solution: %w", err)
	}

	timer = time.Now()
	cor, err := undistort.New(c.cfg.Strategy, sol.Model, col.Size(), c.cfg.Alpha)
	if err != nil {
		return nil, fmt.Errorf("could not create corrector: %w", err)
	}
	defer cor.Close()

	overlays, sample := col.release()
	r := &Result{
		Model:    sol.Model,
		Poses:    sol.Poses,
		RMS:      sol.RMS,
		Error:    MeanError(errs),
		Errors:   errs,
		Used:     col.Used(),
		Size:     col.Size(),
		Overlays: overlays,
		Strategy: c.cfg.Strategy,
		Optimal:  cor.Optimal(),
		ROI:      cor.ROI(),
		Original: sample,
	}
	r.Corrected, r.Cropped, err = cor.Correct(sample)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("could not correct sample image: %w", err)
	}
	c.log.Debug("correction successful", "strategy", c.cfg.Strategy.String(), "correction duration (sec)", time.Since(timer).Seconds())
	c.log.Info("calibration complete", "model", sol.Model.String(), "error", r.Error)
	return r, nil
}
