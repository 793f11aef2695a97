//go:build withcv
// +build withcv

/*
DESCRIPTION
  refine.go improves detected corner positions to sub-pixel accuracy.

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

// Refinement defaults.
const (
	DefaultWindow  = 11    // Search window half size in pixels.
	DefaultMaxIter = 50    // Iteration cap.
	DefaultEpsilon = 0.001 // Minimum corner movement per iteration.
)

// Refiner holds the sub-pixel search parameters. Refinement stops after
// MaxIter iterations or once a corner moves less than Epsilon, whichever
// comes first.
type Refiner struct {
	Window  image.Point
	MaxIter int
	Epsilon float64
}

// NewRefiner returns a Refiner with the default parameters.
func NewRefiner() *Refiner {
	return &Refiner{
		Window:  image.Pt(DefaultWindow, DefaultWindow),
		MaxIter: DefaultMaxIter,
		Epsilon: DefaultEpsilon,
	}
}

// Refine moves each corner in corners, in place, to the sub-pixel saddle
// point of gray near its current position. Corner order and count are
// preserved.
func (r *Refiner) Refine(gray gocv.Mat, corners *gocv.Mat) {
	if gray.Empty() || corners.Empty() {
		return
	}
	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, r.MaxIter, r.Epsilon)
	gocv.CornerSubPix(gray, corners, r.Window, image.Pt(-1, -1), criteria)
}
