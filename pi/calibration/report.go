/*
DESCRIPTION
  report.go writes a human readable summary of a calibration.

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

package calibration

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ausocean/camcal/pi/camera"
)

// WriteReport writes the camera matrix, the distortion coefficients, the
// mean reprojection error and the error of each view to w.
func WriteReport(w io.Writer, m *camera.Model, errs []float64) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Camera Matrix:")
	for i := 0; i < 3; i++ {
		left, right := " [", "]"
		if i == 0 {
			left = "[["
		}
		if i == 2 {
			right = "]]"
		}
		fmt.Fprintf(bw, "%s%14.6f %14.6f %14.6f%s\n", left, m.K.At(i, 0), m.K.At(i, 1), m.K.At(i, 2), right)
	}

	fmt.Fprintln(bw, "Distortion Coefficients:")
	fmt.Fprint(bw, "[")
	for i, c := range m.Dist {
		if i != 0 {
			fmt.Fprint(bw, " ")
		}
		fmt.Fprintf(bw, "%.6f", c)
	}
	fmt.Fprintln(bw, "]")

	fmt.Fprintf(bw, "Reprojection Error: %.4f\n", MeanError(errs))
	for i, e := range errs {
		fmt.Fprintf(bw, "  view %3d: %.4f\n", i, e)
	}
	return bw.Flush()
}
