/*
 * trace.go, part of goqmc.
 *
 *
 * Copyright 2024 The goqmc Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//Package qmcplot draws the traces of QMC optimizations, to check by eye
//how a run is converging.
package qmcplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	qmc "github.com/rmera/goqmc"
	"github.com/rmera/goqmc/qwalk"
)

//errPoints are points with vertical error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

func basicTracePlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//Trace plots values against the step number, with error bars if errs is not
//nil, and saves the plot to filename. The format is taken from the extension.
func Trace(values, errs []float64, title, ylabel, filename string) error {
	if len(values) == 0 {
		return qmc.NewError("nothing to plot", "values", "qmcplot.Trace")
	}
	if errs != nil && len(errs) != len(values) {
		return qmc.NewError(fmt.Sprintf("%s: %d values, %d errors", qmc.ErrShapeMismatch, len(values), len(errs)), "errs", "qmcplot.Trace")
	}
	p := basicTracePlot(title, ylabel)
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 200, A: 255}
	points.GlyphStyle.Radius = vg.Points(2)
	p.Add(line, points)
	lo, hi := floats.Min(values), floats.Max(values)
	if errs != nil {
		yerrs := make(plotter.YErrors, len(errs))
		low := make([]float64, len(values))
		high := make([]float64, len(values))
		for i, e := range errs {
			yerrs[i].Low, yerrs[i].High = e, e
			low[i] = values[i] - e
			high[i] = values[i] + e
		}
		bars, err := plotter.NewYErrorBars(errPoints{pts, yerrs})
		if err != nil {
			return err
		}
		p.Add(bars)
		lo, hi = floats.Min(low), floats.Max(high)
	}
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 0.5
	}
	p.Y.Min, p.Y.Max = lo-pad, hi+pad
	p.X.Min, p.X.Max = 0.5, float64(len(values))+0.5
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return qmc.NewFileError(err.Error(), filename, "qmcplot.Trace", false)
	}
	return nil
}

//VarianceTrace plots the dispersion of a variance optimization.
func VarianceTrace(out qwalk.VarianceOutput, filename string) error {
	return Trace(out.SigmaTrace, nil, "Variance optimization", "Dispersion (Ha)", filename)
}

//EnergyTrace plots the energies of a linear-method optimization.
func EnergyTrace(out qwalk.LinearOutput, filename string) error {
	return Trace(out.EnergyTrace, out.EnergyTraceErr, "Linear optimization", "Energy (Ha)", filename)
}
