//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  nocv.go replaces the calibrate program when built without OpenCV support.

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

// calibrate estimates camera intrinsics and lens distortion from images of a
// checkerboard target. This build lacks OpenCV support; build with the
// withcv tag.
package main

import (
	"os"

	"github.com/ausocean/utils/logging"
)

func main() {
	log := logging.New(logging.Info, os.Stderr, false)
	log.Fatal("calibrate requires OpenCV, rebuild with -tags withcv")
}
