/*
DESCRIPTION
  strategy.go names the available image correction strategies.

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

// Package undistort removes lens distortion from images given a calibrated
// camera model, either directly per image or through precomputed pixel maps.
package undistort

import (
	"fmt"
	"strings"
)

// DefaultAlpha keeps every source pixel in the corrected image.
const DefaultAlpha = 1.0

// Strategy selects how images are corrected.
type Strategy int

// Correction strategies.
const (
	Direct Strategy = iota // Undistort each image directly.
	Remap                  // Precompute pixel maps once and resample.
)

var strategyNames = map[Strategy]string{
	Direct: "direct",
	Remap:  "remap",
}

// Names returns the accepted strategy names.
func Names() []string {
	return []string{strategyNames[Direct], strategyNames[Remap]}
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the Strategy named by s, ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	for k, v := range strategyNames {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown correction strategy: %q", s)
}
