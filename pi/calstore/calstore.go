/*
DESCRIPTION
  calstore.go persists calibration parameters as a single archive holding
  the intrinsic matrix, the distortion coefficients and the rotation and
  translation vectors of every view, with a digest manifest so that damaged
  archives are detected on load.

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

// Package calstore saves and loads calibration archives.
package calstore

import (
	"archive/zip"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/filemap"
	"golang.org/x/crypto/blake2b"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/camcal/pi/camera"
)

// Archive entry names.
const (
	entryMatrix   = "mtx"
	entryDist     = "dist"
	entryRvecs    = "rvecs"
	entryTvecs    = "tvecs"
	entryManifest = "manifest"
)

var arrays = []string{entryMatrix, entryDist, entryRvecs, entryTvecs}

// ErrCorrupt is returned by Load when an archive is incomplete or fails
// digest verification.
var ErrCorrupt = errors.New("corrupt calibration archive")

// Save writes the model m and the view poses to a new archive at path,
// replacing any existing file only once the archive is complete.
func Save(path string, m *camera.Model, poses []camera.Pose) error {
	if m == nil {
		return errors.New("no camera model")
	}

	data := make(map[string][]byte, len(arrays))
	var err error
	data[entryMatrix], err = m.K.MarshalBinary()
	if err != nil {
		return fmt.Errorf("could not encode intrinsic matrix: %w", err)
	}
	data[entryDist], err = encode(1, len(m.Dist), m.Dist)
	if err != nil {
		return fmt.Errorf("could not encode distortion coefficients: %w", err)
	}
	rvecs := make([]float64, 0, 3*len(poses))
	tvecs := make([]float64, 0, 3*len(poses))
	for _, p := range poses {
		rvecs = append(rvecs, p.Rvec.X, p.Rvec.Y, p.Rvec.Z)
		tvecs = append(tvecs, p.Tvec.X, p.Tvec.Y, p.Tvec.Z)
	}
	data[entryRvecs], err = encode(len(poses), 3, rvecs)
	if err != nil {
		return fmt.Errorf("could not encode rotation vectors: %w", err)
	}
	data[entryTvecs], err = encode(len(poses), 3, tvecs)
	if err != nil {
		return fmt.Errorf("could not encode translation vectors: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("could not create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	err = write(tmp, data)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("could not write archive: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("could not close archive: %w", err)
	}
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("could not move archive into place: %w", err)
	}
	return nil
}

// Load reads the model and view poses from the archive at path.
func Load(path string) (*camera.Model, []camera.Pose, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open archive: %w", err)
	}
	defer r.Close()

	data := make(map[string][]byte)
	for _, f := range r.File {
		b, err := readEntry(f)
		if err != nil {
			return nil, nil, fmt.Errorf("could not read %s: %w", f.Name, err)
		}
		data[f.Name] = b
	}

	manifest, ok := data[entryManifest]
	if !ok {
		return nil, nil, fmt.Errorf("%w: no manifest", ErrCorrupt)
	}
	digests := filemap.Split(string(manifest), "\n", " ")
	for _, name := range arrays {
		b, ok := data[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: missing %s", ErrCorrupt, name)
		}
		if digests[name] != digest(b) {
			return nil, nil, fmt.Errorf("%w: digest mismatch for %s", ErrCorrupt, name)
		}
	}

	var k mat.Dense
	err = k.UnmarshalBinary(data[entryMatrix])
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode intrinsic matrix: %w", err)
	}
	dist, err := decode(data[entryDist], -1, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode distortion coefficients: %w", err)
	}
	m, err := camera.ModelFromMatrix(&k, dist)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create camera model: %w", err)
	}

	rvecs, err := decode(data[entryRvecs], 3, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode rotation vectors: %w", err)
	}
	tvecs, err := decode(data[entryTvecs], 3, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode translation vectors: %w", err)
	}
	if len(rvecs) != len(tvecs) {
		return nil, nil, fmt.Errorf("%w: %d rotations but %d translations", ErrCorrupt, len(rvecs)/3, len(tvecs)/3)
	}
	poses := make([]camera.Pose, len(rvecs)/3)
	for i := range poses {
		poses[i] = camera.Pose{
			Rvec: r3.Vec{X: rvecs[3*i], Y: rvecs[3*i+1], Z: rvecs[3*i+2]},
			Tvec: r3.Vec{X: tvecs[3*i], Y: tvecs[3*i+1], Z: tvecs[3*i+2]},
		}
	}
	return m, poses, nil
}

// write writes the arrays in data and their manifest to w as a zip archive.
func write(w io.Writer, data map[string][]byte) error {
	zw := zip.NewWriter(w)
	lines := make([]string, 0, len(arrays))
	for _, name := range arrays {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write(data[name])
		if err != nil {
			return err
		}
		lines = append(lines, name+" "+digest(data[name]))
	}
	f, err := zw.Create(entryManifest)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f, strings.Join(lines, "\n"))
	if err != nil {
		return err
	}
	return zw.Close()
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	_, err = io.Copy(&buf, rc)
	return buf.Bytes(), err
}

// encode returns the binary form of an r by c matrix holding v in row major
// order. An empty matrix encodes as no bytes.
func encode(r, c int, v []float64) ([]byte, error) {
	if r == 0 || c == 0 {
		return nil, nil
	}
	return mat.NewDense(r, c, v).MarshalBinary()
}

// decode returns the elements of a matrix encoded by encode in row major
// order. A non-negative cols or rows is checked against the decoded shape.
func decode(b []byte, cols, rows int) ([]float64, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var d mat.Dense
	err := d.UnmarshalBinary(b)
	if err != nil {
		return nil, err
	}
	r, c := d.Dims()
	if (cols >= 0 && c != cols) || (rows >= 0 && r != rows) {
		return nil, fmt.Errorf("%w: unexpected shape %dx%d", ErrCorrupt, r, c)
	}
	return mat.DenseCopyOf(&d).RawMatrix().Data, nil
}

func digest(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
