/*
DESCRIPTION
  calstore_test.go provides testing for calibration archives.

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

package calstore

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/camcal/pi/camera"
)

func TestSaveLoad(t *testing.T) {
	m, err := camera.NewModel(601.123456789, 598.987654321, 319.5, 241.25, -0.2113, 0.0487, 0.00091, -0.00102, 0.0123)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	poses := []camera.Pose{
		{Rvec: r3.Vec{X: 0.3, Y: -0.1, Z: 0.05}, Tvec: r3.Vec{X: -5.5, Y: -5.5, Z: 26}},
		{Rvec: r3.Vec{X: -0.25, Y: 0.2, Z: -0.1}, Tvec: r3.Vec{X: -4.1, Y: -6.2, Z: 25.3}},
	}

	path := filepath.Join(t.TempDir(), "calib.zip")
	err = Save(path, m, poses)
	if err != nil {
		t.Fatalf("could not save archive: %v", err)
	}

	got, gotPoses, err := Load(path)
	if err != nil {
		t.Fatalf("could not load archive: %v", err)
	}
	if !mat.Equal(got.K, m.K) {
		t.Errorf("intrinsic matrix not preserved:\n got: %v\nwant: %v", mat.Formatted(got.K), mat.Formatted(m.K))
	}
	if len(got.Dist) != len(m.Dist) {
		t.Fatalf("did not get expected coefficient count, got: %d, want: %d", len(got.Dist), len(m.Dist))
	}
	for i := range m.Dist {
		if got.Dist[i] != m.Dist[i] {
			t.Errorf("coefficient %d not preserved, got: %v, want: %v", i, got.Dist[i], m.Dist[i])
		}
	}
	if len(gotPoses) != len(poses) {
		t.Fatalf("did not get expected pose count, got: %d, want: %d", len(gotPoses), len(poses))
	}
	for i := range poses {
		if gotPoses[i] != poses[i] {
			t.Errorf("pose %d not preserved, got: %v, want: %v", i, gotPoses[i], poses[i])
		}
	}

	// No temporary files may be left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("could not read directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the archive in the directory, found %d entries", len(entries))
	}
}

func TestSaveLoadEmpty(t *testing.T) {
	m, err := camera.NewModel(500, 500, 200, 150)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	path := filepath.Join(t.TempDir(), "calib.zip")
	if err := Save(path, m, nil); err != nil {
		t.Fatalf("could not save archive: %v", err)
	}
	got, poses, err := Load(path)
	if err != nil {
		t.Fatalf("could not load archive: %v", err)
	}
	if len(got.Dist) != 0 || len(poses) != 0 {
		t.Errorf("expected no coefficients or poses, got: %v, %v", got.Dist, poses)
	}
	if got.Fx() != 500 || got.Cy() != 150 {
		t.Errorf("unexpected model: %v", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	m, err := camera.NewModel(500, 500, 200, 150, -0.1)
	if err != nil {
		t.Fatalf("could not create model: %v", err)
	}
	dir := t.TempDir()
	good := filepath.Join(dir, "good.zip")
	if err := Save(good, m, []camera.Pose{{Tvec: r3.Vec{Z: 10}}}); err != nil {
		t.Fatalf("could not save archive: %v", err)
	}

	tampered := filepath.Join(dir, "tampered.zip")
	rewrite(t, good, tampered, func(name string, b []byte) []byte {
		if name == entryDist {
			b[len(b)-1] ^= 0xff
		}
		return b
	})
	_, _, err = Load(tampered)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt for tampered archive, got: %v", err)
	}

	missing := filepath.Join(dir, "missing.zip")
	rewrite(t, good, missing, func(name string, b []byte) []byte {
		if name == entryTvecs {
			return nil
		}
		return b
	})
	_, _, err = Load(missing)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt for incomplete archive, got: %v", err)
	}

	if _, _, err := Load(filepath.Join(dir, "none.zip")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

// rewrite copies the archive at src to dst, passing every entry through fn.
// Entries for which fn returns nil are dropped.
func rewrite(t *testing.T, src, dst string, fn func(name string, b []byte) []byte) {
	t.Helper()
	r, err := zip.OpenReader(src)
	if err != nil {
		t.Fatalf("could not open archive: %v", err)
	}
	defer r.Close()

	f, err := os.Create(dst)
	if err != nil {
		t.Fatalf("could not create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range r.File {
		b, err := readEntry(e)
		if err != nil {
			t.Fatalf("could not read entry: %v", err)
		}
		b = fn(e.Name, b)
		if b == nil {
			continue
		}
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("could not create entry: %v", err)
		}
		if _, err := w.Write(b); err != nil {
			t.Fatalf("could not write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("could not close archive: %v", err)
	}
}
