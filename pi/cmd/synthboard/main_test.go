/*
DESCRIPTION
  main_test.go provides testing for synthetic view generation.

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
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/camcal/pi/camera"
)

func TestParseCoeffs(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "-0.2, 0.05,0.001,-0.001,0", want: 5},
		{in: "0,0,0,0,0,0,0,0", want: 8},
		{in: "0,0,0,0,0,0,0,0,0", wantErr: true},
		{in: "0.1,x", wantErr: true},
	}
	for _, test := range tests {
		got, err := parseCoeffs(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("%q: unexpected error state, got: %v, wantErr: %v", test.in, err, test.wantErr)
			continue
		}
		if err == nil && len(got) != test.want {
			t.Errorf("%q: got %d coefficients, want %d", test.in, len(got), test.want)
		}
	}
}

func TestPoses(t *testing.T) {
	m, err := camera.NewModel(600, 600, 320, 240, -0.2, 0.05)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	s := scene{model: m, rows: 12, cols: 12, size: image.Pt(640, 480), distance: 26, samples: 1}

	poses, err := s.poses(8, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("could not generate poses: %v", err)
	}
	if len(poses) != 8 {
		t.Fatalf("got %d poses, want 8", len(poses))
	}
	for i, p := range poses {
		if !s.visible(p) {
			t.Errorf("pose %d not visible: %v", i, p)
		}
	}

	// A target filling far more than the frame can never be placed.
	s.distance = 2
	if _, err := s.poses(1, rand.New(rand.NewSource(3))); err == nil {
		t.Errorf("expected error for target larger than the frame")
	}
}

func TestWriteTIFF(t *testing.T) {
	m, err := camera.NewModel(100, 100, 40, 30)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	img := camera.Render(m, camera.Facing(4, 4, r3.Vec{}, 0, 0, 10), 4, 4, image.Pt(80, 60), 1)

	path := filepath.Join(t.TempDir(), "view.tif")
	if err := writeTIFF(path, img); err != nil {
		t.Fatalf("could not write image: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open image: %v", err)
	}
	defer f.Close()
	got, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("could not decode image: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("did not get expected bounds, got: %v, want: %v", got.Bounds(), img.Bounds())
	}
}
