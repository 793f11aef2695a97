/*
DESCRIPTION
  synthboard renders views of a checkerboard target through a camera of
  known intrinsics and distortion, writing each as a TIFF image along with
  the ground truth calibration archive. The output is used to bench test
  calibration.

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

// synthboard renders synthetic checkerboard views of a known camera.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/camcal/pi/calstore"
	"github.com/ausocean/camcal/pi/camera"
	"github.com/ausocean/camcal/pi/chessboard"
)

// Logging configuration.
const (
	logFile      = "synthboard.log"
	logMaxSize   = 500 // MB.
	logMaxBackup = 10
	logMaxAge    = 28 // Days.
	logSuppress  = false
)

// View generation limits.
const (
	maxTilt     = 0.35 // Radians about each axis.
	maxOffset   = 2.0  // Squares from the optical axis.
	maxAttempts = 1000 // Pose draws per view before giving up.
)

// scene describes the camera and target to render.
type scene struct {
	model      *camera.Model
	rows, cols int
	size       image.Point
	distance   float64
	samples    int
}

func main() {
	output := flag.String("Output", "synth", "Directory for the rendered views")
	count := flag.Int("Count", 10, "Number of views to render")
	rows := flag.Int("Rows", 12, "Interior corners along the first target axis")
	cols := flag.Int("Cols", 12, "Interior corners along the second target axis")
	width := flag.Int("Width", 640, "Image width in pixels")
	height := flag.Int("Height", 480, "Image height in pixels")
	focal := flag.Float64("Focal", 600, "Focal length in pixels")
	dist := flag.String("Dist", "-0.2,0.05,0.001,-0.001,0", "Comma separated distortion coefficients k1,k2,p1,p2[,k3[,k4,k5,k6]]")
	distance := flag.Float64("Distance", 26, "Target distance in squares")
	samples := flag.Int("Samples", 4, "Supersampling factor per pixel axis")
	seed := flag.Int64("Seed", 1, "Random seed for view poses")
	logLevel := flag.Int("LogLevel", int(logging.Info), "Specifies log level")
	flag.Parse()

	err := os.MkdirAll(*output, 0755)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create output directory: %v\n", err)
		os.Exit(1)
	}
	fileLog := &lumberjack.Logger{
		Filename:   filepath.Join(*output, logFile),
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()
	log := logging.New(int8(*logLevel), io.MultiWriter(os.Stderr, fileLog), logSuppress)

	coeffs, err := parseCoeffs(*dist)
	if err != nil {
		log.Fatal("invalid distortion coefficients", "error", err)
	}
	m, err := camera.NewModel(*focal, *focal, float64(*width)/2, float64(*height)/2, coeffs...)
	if err != nil {
		log.Fatal("invalid camera", "error", err)
	}
	s := scene{
		model:    m,
		rows:     *rows,
		cols:     *cols,
		size:     image.Pt(*width, *height),
		distance: *distance,
		samples:  *samples,
	}

	poses, err := s.poses(*count, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal("could not place target", "error", err)
	}
	for i, p := range poses {
		path := filepath.Join(*output, fmt.Sprintf("view_%02d.tif", i))
		err = writeTIFF(path, camera.Render(m, p, s.rows, s.cols, s.size, s.samples))
		if err != nil {
			log.Fatal("could not write view", "path", path, "error", err)
		}
		log.Debug("rendered view", "path", path, "pose", p.String())
	}

	err = calstore.Save(filepath.Join(*output, "truth.zip"), m, poses)
	if err != nil {
		log.Fatal("could not save ground truth", "error", err)
	}
	log.Info("rendered views", "count", len(poses), "model", m.String())
}

// poses returns n random target poses for which the whole target, border
// included, lies inside the image.
func (s *scene) poses(n int, rnd *rand.Rand) ([]camera.Pose, error) {
	poses := make([]camera.Pose, 0, n)
	for len(poses) < n {
		var ok bool
		for attempt := 0; attempt < maxAttempts && !ok; attempt++ {
			p := camera.Facing(s.rows, s.cols, r3.Vec{
				X: uniform(rnd, maxTilt),
				Y: uniform(rnd, maxTilt),
				Z: uniform(rnd, maxTilt),
			}, uniform(rnd, maxOffset), uniform(rnd, maxOffset), s.distance)
			if s.visible(p) {
				poses = append(poses, p)
				ok = true
			}
		}
		if !ok {
			return nil, fmt.Errorf("no visible pose found for view %d after %d attempts", len(poses), maxAttempts)
		}
	}
	return poses, nil
}

// visible reports whether the outer corners of the target border project
// inside the image.
func (s *scene) visible(p camera.Pose) bool {
	r, c := float64(s.rows), float64(s.cols)
	outline := []r3.Vec{{X: -1, Y: -1}, {X: r, Y: -1}, {X: -1, Y: c}, {X: r, Y: c}}
	return chessboard.InBounds(s.model.Project(outline, p), s.size.X, s.size.Y)
}

// uniform returns a random value in [-max, max).
func uniform(rnd *rand.Rand, max float64) float64 {
	return (2*rnd.Float64() - 1) * max
}

// parseCoeffs parses a comma separated list of distortion coefficients.
func parseCoeffs(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	if len(fields) > camera.MaxCoeffs {
		return nil, fmt.Errorf("too many coefficients: %d", len(fields))
	}
	c := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse coefficient %d: %w", i, err)
		}
		c[i] = v
	}
	return c, nil
}

func writeTIFF(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
