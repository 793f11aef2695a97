/*
DESCRIPTION
  preview_test.go provides testing for comparison image composition.

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
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

func uniform(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestSideBySide(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	got := sideBySide(uniform(400, 300, red), uniform(200, 300, blue), 600)

	if got.Bounds() != image.Rect(0, 0, 600, 300) {
		t.Fatalf("did not get expected bounds, got: %v", got.Bounds())
	}
	if c := got.RGBAAt(100, 150); c != red {
		t.Errorf("left image not drawn, got: %v", c)
	}
	if c := got.RGBAAt(500, 150); c != blue {
		t.Errorf("right image not drawn, got: %v", c)
	}

	if empty := sideBySide(image.NewRGBA(image.Rect(0, 0, 0, 0)), uniform(2, 2, red), 100); !empty.Bounds().Empty() {
		t.Errorf("expected empty preview for empty input, got: %v", empty.Bounds())
	}
}

func TestTrimExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{"images/board_01.tif", "board_01"},
		{"board.v2.png", "board.v2"},
		{"noext", "noext"},
	}
	for _, test := range tests {
		if got := trimExt(test.in); got != test.want {
			t.Errorf("%q: got: %q, want: %q", test.in, got, test.want)
		}
	}
}

func TestHalfDiagonal(t *testing.T) {
	if got := halfDiagonal(image.Pt(640, 480)); got != 400 {
		t.Errorf("got: %v, want: 400", got)
	}
}
