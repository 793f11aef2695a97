/*
DESCRIPTION
  config.go holds the calibration parameters and the named variables that
  may be used to change them.

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

// Package calibration estimates the intrinsic parameters and lens distortion
// of a camera from images of a planar checkerboard target, scores the
// estimate by reprojection error and corrects a sample image with it.
package calibration

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ausocean/utils/filemap"
	"github.com/ausocean/utils/sliceutils"

	"github.com/ausocean/camcal/pi/undistort"
)

// Calibration defaults.
const (
	defaultRows    = 12
	defaultCols    = 12
	defaultWindow  = 11
	defaultMaxIter = 50
	defaultEpsilon = 0.001
)

// Config holds the calibration parameters.
type Config struct {
	Rows, Cols int                // Interior corners of the target.
	Window     int                // Half size of the corner refinement window.
	MaxIter    int                // Corner refinement iteration cap.
	Epsilon    float64            // Corner refinement convergence threshold.
	Strategy   undistort.Strategy // How the sample image is corrected.
	Alpha      float64            // Free scaling of the corrected camera matrix, [0, 1].
}

// DefaultConfig returns the default calibration parameters.
func DefaultConfig() Config {
	return Config{
		Rows:     defaultRows,
		Cols:     defaultCols,
		Window:   defaultWindow,
		MaxIter:  defaultMaxIter,
		Epsilon:  defaultEpsilon,
		Strategy: undistort.Remap,
		Alpha:    undistort.DefaultAlpha,
	}
}

// Validate returns an error if the parameters cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Rows < 2 || c.Cols < 2:
		return fmt.Errorf("target must have at least 2x2 interior corners, have %dx%d", c.Rows, c.Cols)
	case c.Window < 1:
		return fmt.Errorf("invalid refinement window: %d", c.Window)
	case c.MaxIter < 1:
		return fmt.Errorf("invalid refinement iteration cap: %d", c.MaxIter)
	case c.Epsilon <= 0:
		return fmt.Errorf("invalid refinement epsilon: %v", c.Epsilon)
	case c.Alpha < 0 || c.Alpha > 1:
		return fmt.Errorf("alpha out of range [0, 1]: %v", c.Alpha)
	}
	if _, err := undistort.ParseStrategy(c.Strategy.String()); err != nil {
		return err
	}
	return nil
}

// variables are the named parameters that Update understands.
var variables = []struct {
	name   string
	update func(c *Config, v string) error
}{
	{
		name: "Rows",
		update: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("could not convert Rows variable value to int: %w", err)
			}
			c.Rows = n
			return nil
		},
	},
	{
		name: "Cols",
		update: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("could not convert Cols variable value to int: %w", err)
			}
			c.Cols = n
			return nil
		},
	},
	{
		name: "WinSize",
		update: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("could not convert WinSize variable value to int: %w", err)
			}
			c.Window = n
			return nil
		},
	},
	{
		name: "MaxIter",
		update: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("could not convert MaxIter variable value to int: %w", err)
			}
			c.MaxIter = n
			return nil
		},
	},
	{
		name: "Epsilon",
		update: func(c *Config, v string) error {
			e, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("could not convert Epsilon variable value to float: %w", err)
			}
			c.Epsilon = e
			return nil
		},
	},
	{
		name: "Strategy",
		update: func(c *Config, v string) error {
			s, err := undistort.ParseStrategy(v)
			if err != nil {
				return fmt.Errorf("could not set Strategy: %w", err)
			}
			c.Strategy = s
			return nil
		},
	},
	{
		name: "Alpha",
		update: func(c *Config, v string) error {
			a, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("could not convert Alpha variable value to float: %w", err)
			}
			c.Alpha = a
			return nil
		},
	},
}

// Variables returns the names of the parameters understood by Update.
func Variables() []string {
	names := make([]string, len(variables))
	for i, v := range variables {
		names[i] = v.name
	}
	return names
}

// Update sets the parameters named in vars. Unknown names are reported
// together after every known name has been applied, and the result is
// validated. c is left unchanged if an error is returned.
func (c *Config) Update(vars map[string]string) error {
	u := *c
	for _, v := range variables {
		if val, ok := vars[v.name]; ok {
			if err := v.update(&u, val); err != nil {
				return err
			}
		}
	}

	names := Variables()
	var unknown []string
	for k := range vars {
		if k != "" && !sliceutils.ContainsString(names, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) != 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown variables: %v", unknown)
	}
	if err := u.Validate(); err != nil {
		return err
	}
	*c = u
	return nil
}

// ReadConfig returns the default parameters updated by the variables held in
// the file at path, one space separated name and value per line.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	vars, err := filemap.ReadFrom(path, "\n", " ")
	if err != nil {
		return c, fmt.Errorf("could not read config file: %w", err)
	}
	err = c.Update(vars)
	if err != nil {
		return c, fmt.Errorf("could not apply config file: %w", err)
	}
	return c, nil
}
