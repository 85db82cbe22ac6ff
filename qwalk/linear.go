/*
 * linear.go, part of goqmc.
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

package qwalk

import (
	"fmt"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"

	qmc "github.com/rmera/goqmc"
)

//LinearOptions control a linear-method optimization.
type LinearOptions struct {
	//TotalNStep is the number of VMC steps used to build the Hamiltonian.
	TotalNStep int `yaml:"total_nstep"`
	//TotalFit is the number of steps used to choose the step size.
	TotalFit int `yaml:"total_fit"`
}

//LinearWriter produces the input of a linear-method optimization.
type LinearWriter struct {
	deck
	Options LinearOptions
}

//NewLinearWriter returns a writer with the default step counts.
func NewLinearWriter(sys, trialfunc qmc.Section) *LinearWriter {
	return &LinearWriter{
		deck:    deck{Sys: sys, TrialFunc: trialfunc},
		Options: LinearOptions{TotalNStep: 2048 * 4, TotalFit: 2048},
	}
}

//SetOptions sets the options named in opts.
func (W *LinearWriter) SetOptions(opts map[string]any) error {
	return setOptions(&W.Options, opts, "LinearWriter.SetOptions")
}

//LoadOptions applies the options in the YAML file path.
func (W *LinearWriter) LoadOptions(path string) error {
	return loadOptions(&W.Options, path, "LinearWriter.LoadOptions")
}

//Input renders the deck.
func (W *LinearWriter) Input() (string, error) {
	if err := W.check("LinearWriter.Input"); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("method { linear \n")
	fmt.Fprintf(&sb, "total_nstep %d \n", W.Options.TotalNStep)
	fmt.Fprintf(&sb, "total_fit %d \n", W.Options.TotalFit)
	sb.WriteString("}\n")
	sb.WriteString(W.Sys.String())
	sb.WriteString(W.TrialFunc.String())
	return sb.String(), nil
}

//WriteInput writes the deck to infile.
func (W *LinearWriter) WriteInput(infile string) error {
	text, err := W.Input()
	if err != nil {
		return err
	}
	return W.write(infile, text, "LinearWriter.WriteInput")
}

//LinearOutput is what a linear-method optimization reports.
type LinearOutput struct {
	File           string    `yaml:"file"`
	EnergyTrace    []float64 `yaml:"energy_trace"`
	EnergyTraceErr []float64 `yaml:"energy_trace_err"`
}

//TotalEnergy returns the last energy and its error, if any.
func (O LinearOutput) TotalEnergy() (energy, err float64, ok bool) {
	n := len(O.EnergyTrace)
	if n == 0 || len(O.EnergyTraceErr) != n {
		return 0, 0, false
	}
	return O.EnergyTrace[n-1], O.EnergyTraceErr[n-1], true
}

//LinearReader reads a linear-method optimization and decides whether it
//needs to be run further.
type LinearReader struct {
	//SigTol is how many combined standard errors an energy increase may
	//be and still count as no change.
	SigTol float64 `yaml:"sigtol"`
	//MinSteps is the least number of steps a converged run has.
	MinSteps int `yaml:"minsteps"`

	Output    LinearOutput `yaml:"-"`
	completed bool
}

//NewLinearReader returns a reader with the default tolerances.
func NewLinearReader() *LinearReader {
	return &LinearReader{SigTol: 2, MinSteps: 2}
}

//Completed reports whether the last collected run needs no more steps.
func (R *LinearReader) Completed() bool { return R.completed }

func (R *LinearReader) read(outfile string) (LinearOutput, error) {
	ret := LinearOutput{File: outfile, EnergyTrace: make([]float64, 0, 10), EnergyTraceErr: make([]float64, 0, 10)}
	lines, err := qmc.ReadLines(outfile)
	if err != nil {
		return LinearOutput{}, err
	}
	for _, line := range lines {
		if !strings.Contains(line, "current energy") {
			continue
		}
		e, ok1 := tokenAt(line, 4)
		de, ok2 := tokenAt(line, 6)
		if ok1 && ok2 {
			ret.EnergyTrace = append(ret.EnergyTrace, e)
			ret.EnergyTraceErr = append(ret.EnergyTraceErr, de)
		}
	}
	return ret, nil
}

//Collect reads outfile and returns StatusOK if the optimization is
//converged, StatusRestart otherwise.
func (R *LinearReader) Collect(outfile string) qmc.Status {
	R.Output = LinearOutput{}
	if fileExists(outfile) {
		out, err := R.read(outfile)
		if err != nil {
			qmc.Logger().Info("linear output unreadable", zap.String("file", outfile), zap.Error(err))
		} else {
			R.Output = out
		}
	}
	R.completed = R.checkComplete()
	if !R.completed {
		return qmc.StatusRestart
	}
	return qmc.StatusOK
}

func (R *LinearReader) checkComplete() bool {
	trace, errs := R.Output.EnergyTrace, R.Output.EnergyTraceErr
	n := len(trace)
	if n < R.MinSteps || n < 2 {
		qmc.Logger().Info("linear optimization incomplete: too few steps", zap.Int("steps", n), zap.Int("minsteps", R.MinSteps))
		return false
	}
	ediff := trace[n-1] - trace[n-2]
	edifferr := math.Sqrt(errs[n-1]*errs[n-1] + errs[n-2]*errs[n-2])
	if ediff > R.SigTol*edifferr {
		qmc.Logger().Info("linear optimization incomplete: energy increased", zap.Float64("change", ediff), zap.Float64("tolerance", R.SigTol*edifferr))
		return false
	}
	return true
}

//Summary writes the collected results to w.
func (R *LinearReader) Summary(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "#### Linear optimization"); err != nil {
		return err
	}
	e, de, ok := R.Output.TotalEnergy()
	if !ok {
		_, err := fmt.Fprintln(w, "no energies")
		return err
	}
	_, err := fmt.Fprintf(w, "steps %d\nenergy %s\nenergy_err %s\n", len(R.Output.EnergyTrace), qmc.FormatFloat(e), qmc.FormatFloat(de))
	return err
}
