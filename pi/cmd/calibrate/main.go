//go:build withcv
// +build withcv

/*
DESCRIPTION
  calibrate estimates the intrinsic parameters and lens distortion of a
  camera from a set of images of a checkerboard target, then writes the
  corner overlays, a corrected sample image, a report, diagnostic plots and
  a calibration archive to an output directory.

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
// checkerboard target.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ausocean/utils/filemap"
	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/camcal/pi/calibration"
)

// Logging configuration.
const (
	logFile      = "calibrate.log"
	logMaxSize   = 500 // MB.
	logMaxBackup = 10
	logMaxAge    = 28 // Days.
	logSuppress  = false
)

// Defaults.
const (
	defaultImages  = "*.tif"
	defaultOutput  = "calibration"
	defaultArchive = "calib.zip"
	previewWidth   = 1280
)

func main() {
	images := flag.String("Images", defaultImages, "Glob matching the target images")
	output := flag.String("Output", defaultOutput, "Directory for results")
	configFile := flag.String("ConfigFile", "", "File of calibration variables, one name and value per line")
	set := flag.String("Set", "", "Comma separated name=value calibration variables, e.g. Rows=9,Cols=6")
	archive := flag.String("Archive", defaultArchive, "Name of the calibration archive within the output directory")
	logLevel := flag.Int("LogLevel", int(logging.Info), "Specifies log level")
	logPath := flag.String("LogPath", "", "Specifies log path, defaults to the output directory")
	flag.Parse()

	err := os.MkdirAll(*output, 0755)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create output directory: %v\n", err)
		os.Exit(1)
	}
	if *logPath == "" {
		*logPath = filepath.Join(*output, logFile)
	}
	fileLog := &lumberjack.Logger{
		Filename:   *logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()
	log := logging.New(int8(*logLevel), io.MultiWriter(os.Stderr, fileLog), logSuppress)

	cfg, err := loadConfig(*configFile, *set)
	if err != nil {
		log.Fatal("could not load config", "error", err)
	}
	log.Debug("loaded config", "config", fmt.Sprintf("%+v", cfg))

	paths, err := filepath.Glob(*images)
	if err != nil {
		log.Fatal("invalid image pattern", "pattern", *images, "error", err)
	}
	sort.Strings(paths)
	log.Info("found images", "pattern", *images, "count", len(paths))

	imgs := make([]gocv.Mat, len(paths))
	for i, p := range paths {
		imgs[i] = gocv.IMRead(p, gocv.IMReadColor)
		if imgs[i].Empty() {
			log.Warning("could not read image", "path", p)
		}
	}
	defer func() {
		for i := range imgs {
			imgs[i].Close()
		}
	}()

	c, err := calibration.New(cfg, log)
	if err != nil {
		log.Fatal("could not create calibrator", "error", err)
	}
	r, err := c.Calibrate(imgs)
	if errors.Is(err, calibration.ErrNoDetections) {
		log.Fatal("calibration could not be performed", "images", len(imgs), "error", err)
	}
	if err != nil {
		log.Fatal("calibration failed", "error", err)
	}
	defer r.Close()

	err = r.WriteReport(os.Stdout)
	if err != nil {
		log.Error("could not write report", "error", err)
	}
	err = save(r, paths, *output, *archive, log)
	if err != nil {
		log.Fatal("could not save results", "error", err)
	}
	log.Info("results saved", "output", *output)
}

// loadConfig returns the default calibration config updated by the variables
// in the file at path, if given, and then by the name=value list set.
func loadConfig(path, set string) (calibration.Config, error) {
	cfg := calibration.DefaultConfig()
	var err error
	if path != "" {
		cfg, err = calibration.ReadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	if set != "" {
		err = cfg.Update(filemap.Split(set, ",", "="))
		if err != nil {
			return cfg, fmt.Errorf("could not apply variables: %w", err)
		}
	}
	return cfg, nil
}

// save writes every output of r to dir.
func save(r *calibration.Result, paths []string, dir, archive string, log logging.Logger) error {
	for i, o := range r.Overlays {
		name := fmt.Sprintf("corners_%02d_%s.png", r.Used[i], trimExt(paths[r.Used[i]]))
		if !gocv.IMWrite(filepath.Join(dir, name), o) {
			return fmt.Errorf("could not write overlay %s", name)
		}
	}

	images := []struct {
		name string
		img  gocv.Mat
	}{
		{"original.png", r.Original},
		{r.Strategy.String() + ".png", r.Corrected},
		{r.Strategy.String() + "_cropped.png", r.Cropped},
	}
	for _, i := range images {
		if i.img.Empty() {
			log.Warning("skipping empty image", "name", i.name)
			continue
		}
		if !gocv.IMWrite(filepath.Join(dir, i.name), i.img) {
			return fmt.Errorf("could not write %s", i.name)
		}
	}

	err := writePreview(filepath.Join(dir, "comparison.png"), r.Original, r.Corrected)
	if err != nil {
		return fmt.Errorf("could not write comparison: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "report.txt"))
	if err != nil {
		return fmt.Errorf("could not create report: %w", err)
	}
	err = r.WriteReport(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	err = calibration.PlotErrors(filepath.Join(dir, "errors.png"), r.Errors)
	if err != nil {
		return fmt.Errorf("could not plot errors: %w", err)
	}
	err = calibration.PlotDistortion(filepath.Join(dir, "distortion.png"), r.Model, halfDiagonal(r.Size))
	if err != nil {
		return fmt.Errorf("could not plot distortion: %w", err)
	}

	err = r.Save(filepath.Join(dir, archive))
	if err != nil {
		return fmt.Errorf("could not save archive: %w", err)
	}
	log.Info("saved calibration archive", "path", filepath.Join(dir, archive))
	return nil
}

// writePreview writes the original and corrected images side by side.
func writePreview(path string, original, corrected gocv.Mat) error {
	a, err := original.ToImage()
	if err != nil {
		return fmt.Errorf("could not convert original: %w", err)
	}
	b, err := corrected.ToImage()
	if err != nil {
		return fmt.Errorf("could not convert corrected: %w", err)
	}
	m, err := gocv.ImageToMatRGB(sideBySide(a, b, previewWidth))
	if err != nil {
		return fmt.Errorf("could not convert preview: %w", err)
	}
	defer m.Close()
	if !gocv.IMWrite(path, m) {
		return errors.New("could not write preview")
	}
	return nil
}
