/*
DESCRIPTION
  plot.go provides diagnostic plots of a calibration: the reprojection error
  of each view and the radial distortion profile of the lens.

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
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/camcal/pi/camera"
)

// Number of samples along the radius in distortion plots.
const profileSamples = 100

// PlotErrors saves a bar chart of the reprojection error of each view, with
// the mean drawn across it, as a PNG at path.
func PlotErrors(path string, errs []float64) error {
	if len(errs) == 0 {
		return errors.New("no errors to plot")
	}
	return plotToFile(path, "Reprojection Error", "View", "Error (px)", func(p *plot.Plot) error {
		bars, err := plotter.NewBarChart(plotter.Values(errs), vg.Points(20))
		if err != nil {
			return fmt.Errorf("could not create bar chart: %w", err)
		}
		bars.Color = plotutil.Color(0)

		mean := MeanError(errs)
		line := plotter.NewFunction(func(float64) float64 { return mean })
		line.Color = plotutil.Color(1)
		line.Dashes = plotutil.Dashes(1)

		p.Add(bars, line)
		p.Legend.Add("view", bars)
		p.Legend.Add(fmt.Sprintf("mean %.4f", mean), line)

		names := make([]string, len(errs))
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		p.NominalX(names...)
		return nil
	})
}

// PlotDistortion saves a plot of the radial and tangential displacement, in
// pixels, that the lens of m applies along the horizontal axis from the
// principal point out to radius pixels, as a PNG at path.
func PlotDistortion(path string, m *camera.Model, radius float64) error {
	if radius <= 0 {
		return fmt.Errorf("invalid radius: %v", radius)
	}
	r := make([]float64, profileSamples)
	radial := make([]float64, profileSamples)
	tangential := make([]float64, profileSamples)
	for i := range r {
		r[i] = radius * float64(i) / float64(profileSamples-1)
		x := r[i] / m.Fx()
		xd, yd := m.Distort(x, 0)
		radial[i] = (xd - x) * m.Fx()
		tangential[i] = yd * m.Fy()
	}
	return plotToFile(path, "Lens Distortion", "Radius (px)", "Displacement (px)", func(p *plot.Plot) error {
		return plotutil.AddLinePoints(p,
			"Radial", plotterXY(r, radial),
			"Tangential", plotterXY(r, tangential),
		)
	})
}

// plotToFile creates a plot with a specified name and x&y titles using the
// provided draw function, and then saves it as a PNG file at path.
func plotToFile(path, name, xTitle, yTitle string, draw func(*plot.Plot) error) error {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = xTitle
	p.Y.Label.Text = yTitle
	err := draw(p)
	if err != nil {
		return fmt.Errorf("could not draw plot contents: %w", err)
	}
	if err := p.Save(15*vg.Centimeter, 15*vg.Centimeter, path); err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	return nil
}

// plotterXY provides a plotter.XYs type value based on the given x and y data.
func plotterXY(x, y []float64) plotter.XYs {
	xy := make(plotter.XYs, len(x))
	for i := range x {
		xy[i].X = x[i]
		xy[i].Y = y[i]
		if math.IsNaN(xy[i].Y) {
			xy[i].Y = 0
		}
	}
	return xy
}
