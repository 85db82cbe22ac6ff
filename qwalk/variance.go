/*
 * variance.go, part of goqmc.
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
	"strings"

	"go.uber.org/zap"

	qmc "github.com/rmera/goqmc"
)

//VarianceOptions control a variance optimization.
type VarianceOptions struct {
	//Iterations is the number of optimization steps in each method block.
	Iterations int `yaml:"iterations"`
	//MacroIterations is the number of method blocks.
	MacroIterations int `yaml:"macro_iterations"`
}

//VarianceWriter produces the input of a variance optimization.
type VarianceWriter struct {
	deck
	Options VarianceOptions
}

//NewVarianceWriter returns a writer with 3 blocks of 10 iterations.
func NewVarianceWriter(sys, trialfunc qmc.Section) *VarianceWriter {
	return &VarianceWriter{
		deck:    deck{Sys: sys, TrialFunc: trialfunc},
		Options: VarianceOptions{Iterations: 10, MacroIterations: 3},
	}
}

//SetOptions sets the options named in opts.
func (W *VarianceWriter) SetOptions(opts map[string]any) error {
	return setOptions(&W.Options, opts, "VarianceWriter.SetOptions")
}

//LoadOptions applies the options in the YAML file path.
func (W *VarianceWriter) LoadOptions(path string) error {
	return loadOptions(&W.Options, path, "VarianceWriter.LoadOptions")
}

//Input renders the deck.
func (W *VarianceWriter) Input() (string, error) {
	if err := W.check("VarianceWriter.Input"); err != nil {
		return "", err
	}
	var sb strings.Builder
	for j := 0; j < W.Options.MacroIterations; j++ {
		fmt.Fprintf(&sb, "method { optimize iterations %d }\n", W.Options.Iterations)
	}
	sb.WriteString(W.Sys.String())
	sb.WriteString(W.TrialFunc.String())
	return sb.String(), nil
}

//WriteInput writes the deck to infile.
func (W *VarianceWriter) WriteInput(infile string) error {
	text, err := W.Input()
	if err != nil {
		return err
	}
	return W.write(infile, text, "VarianceWriter.WriteInput")
}

//VarianceOutput is what a variance optimization reports.
type VarianceOutput struct {
	File string `yaml:"file"`
	//SigmaTrace is the dispersion of the local energy after each step.
	SigmaTrace []float64 `yaml:"sigma_trace"`
}

//Sigma returns the last dispersion, if any.
func (O VarianceOutput) Sigma() (float64, bool) {
	if len(O.SigmaTrace) == 0 {
		return 0, false
	}
	return O.SigmaTrace[len(O.SigmaTrace)-1], true
}

//VarianceReader reads a variance optimization and decides whether it
//needs to be run further.
type VarianceReader struct {
	//VarTol is the largest acceptable final dispersion.
	VarTol float64 `yaml:"vartol"`
	//VarDiffTol is the largest acceptable increase of the dispersion in the last step.
	VarDiffTol float64 `yaml:"vardifftol"`
	//MinSteps is the least number of steps a converged run has.
	MinSteps int `yaml:"minsteps"`

	Output    VarianceOutput `yaml:"-"`
	completed bool
}

//NewVarianceReader returns a reader with the default tolerances.
func NewVarianceReader() *VarianceReader {
	return &VarianceReader{VarTol: 10, VarDiffTol: 0.1, MinSteps: 2}
}

//Completed reports whether the last collected run needs no more steps.
func (R *VarianceReader) Completed() bool { return R.completed }

func (R *VarianceReader) read(outfile string) (VarianceOutput, error) {
	ret := VarianceOutput{File: outfile, SigmaTrace: make([]float64, 0, 10)}
	lines, err := qmc.ReadLines(outfile)
	if err != nil {
		return VarianceOutput{}, err
	}
	for _, line := range lines {
		if !strings.Contains(line, "dispersion") {
			continue
		}
		if v, ok := tokenAt(line, 4); ok {
			ret.SigmaTrace = append(ret.SigmaTrace, v)
		}
	}
	return ret, nil
}

//Collect reads outfile and returns StatusOK if the optimization is
//converged, StatusRestart otherwise.
func (R *VarianceReader) Collect(outfile string) qmc.Status {
	R.Output = VarianceOutput{}
	if fileExists(outfile) {
		out, err := R.read(outfile)
		if err != nil {
			qmc.Logger().Info("variance output unreadable", zap.String("file", outfile), zap.Error(err))
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

func (R *VarianceReader) checkComplete() bool {
	trace := R.Output.SigmaTrace
	if len(trace) < R.MinSteps || len(trace) == 0 {
		qmc.Logger().Info("variance optimization incomplete: too few steps", zap.Int("steps", len(trace)), zap.Int("minsteps", R.MinSteps))
		return false
	}
	sigma, _ := R.Output.Sigma()
	if sigma > R.VarTol {
		qmc.Logger().Info("variance optimization incomplete: variance above tolerance", zap.Float64("sigma", sigma), zap.Float64("vartol", R.VarTol))
		return false
	}
	if len(trace) >= 2 && trace[len(trace)-1]-trace[len(trace)-2] > R.VarDiffTol {
		qmc.Logger().Info("variance optimization incomplete: variance still changing", zap.Float64("change", trace[len(trace)-1]-trace[len(trace)-2]), zap.Float64("vardifftol", R.VarDiffTol))
		return false
	}
	return true
}

//Summary writes the collected results to w.
func (R *VarianceReader) Summary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "#### Variance optimization\nsigma_trace %s\n", qmc.FormatFloats(R.Output.SigmaTrace))
	return err
}
