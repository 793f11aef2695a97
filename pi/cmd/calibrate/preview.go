/*
DESCRIPTION
  preview.go composes side by side comparison images.

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

package main

import (
	"image"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// sideBySide scales a and b to a common height and places them next to each
// other in an image width pixels wide. Each image keeps its aspect ratio.
func sideBySide(a, b image.Image, width int) *image.RGBA {
	as, bs := a.Bounds().Size(), b.Bounds().Size()
	if as.X == 0 || as.Y == 0 || bs.X == 0 || bs.Y == 0 || width <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	// Find the height h at which the widths sum to width.
	ar := float64(as.X) / float64(as.Y)
	br := float64(bs.X) / float64(bs.Y)
	h := int(math.Round(float64(width) / (ar + br)))
	aw := int(math.Round(float64(h) * ar))

	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.CatmullRom.Scale(dst, image.Rect(0, 0, aw, h), a, a.Bounds(), draw.Src, nil)
	draw.CatmullRom.Scale(dst, image.Rect(aw, 0, width, h), b, b.Bounds(), draw.Src, nil)
	return dst
}

// halfDiagonal returns half the diagonal of an image of the given size, the
// largest distance of any pixel from the image centre.
func halfDiagonal(size image.Point) float64 {
	return math.Hypot(float64(size.X), float64(size.Y)) / 2
}

// trimExt returns the base name of path without its extension.
func trimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
