/*
 * vmc.go, part of goqmc.
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
	"sort"
	"strings"

	"go.uber.org/zap"

	qmc "github.com/rmera/goqmc"
)

//VMCOptions control a variational Monte Carlo run.
type VMCOptions struct {
	NBlock int `yaml:"nblock"`
	//Averages is an averages section, copied into the method block.
	Averages string `yaml:"averages"`
}

//VMCWriter produces the input of a VMC run.
type VMCWriter struct {
	deck
	Options VMCOptions
}

//NewVMCWriter returns a writer for 100 blocks.
func NewVMCWriter(sys, trialfunc qmc.Section) *VMCWriter {
	return &VMCWriter{
		deck:    deck{Sys: sys, TrialFunc: trialfunc},
		Options: VMCOptions{NBlock: 100},
	}
}

//SetOptions sets the options named in opts.
func (W *VMCWriter) SetOptions(opts map[string]any) error {
	return setOptions(&W.Options, opts, "VMCWriter.SetOptions")
}

//LoadOptions applies the options in the YAML file path.
func (W *VMCWriter) LoadOptions(path string) error {
	return loadOptions(&W.Options, path, "VMCWriter.LoadOptions")
}

//Input renders the deck.
func (W *VMCWriter) Input() (string, error) {
	if err := W.check("VMCWriter.Input"); err != nil {
		return "", err
	}
	outlines := []string{"method { VMC", fmt.Sprintf("  nblock %d", W.Options.NBlock)}
	outlines = append(outlines, averagesLines(W.Options.Averages)...)
	outlines = append(outlines, "}", W.Sys.String(), W.TrialFunc.String())
	return strings.Join(outlines, "\n"), nil
}

//WriteInput writes the deck to infile.
func (W *VMCWriter) WriteInput(infile string) error {
	text, err := W.Input()
	if err != nil {
		return err
	}
	return W.write(infile, text, "VMCWriter.WriteInput")
}

//MCReader reads the report of a VMC or DMC run and decides whether more
//blocks are needed.
type MCReader struct {
	//ErrTol is the largest acceptable error in the total energy.
	ErrTol float64 `yaml:"errtol"`
	//MinBlocks is the least number of blocks after warmup.
	MinBlocks int `yaml:"minblocks"`
	//Gosling is the command used to build the report from the log, when
	//Report is nil.
	Gosling string `yaml:"gosling"`
	//Report, if set, replaces running Gosling.
	Report ReportFunc `yaml:"-"`

	Output    Report `yaml:"-"`
	method    string
	completed bool
}

//VMCReader reads the results of a VMC run.
type VMCReader struct {
	MCReader `yaml:",inline"`
}

//DMCReader reads the results of a DMC run.
type DMCReader struct {
	MCReader `yaml:",inline"`
}

func newMCReader(method string) MCReader {
	return MCReader{ErrTol: 0.01, MinBlocks: 15, Gosling: "gosling", method: method}
}

//NewVMCReader returns a reader with the default tolerances.
func NewVMCReader() *VMCReader {
	return &VMCReader{newMCReader("VMC")}
}

//NewDMCReader returns a reader with the default tolerances.
func NewDMCReader() *DMCReader {
	return &DMCReader{newMCReader("DMC")}
}

//Completed reports whether the last collected run needs no more blocks.
func (R *MCReader) Completed() bool { return R.completed }

func (R *MCReader) report(logfile string) ([]byte, error) {
	if R.Report != nil {
		return R.Report(logfile)
	}
	return Gosling(R.Gosling)(logfile)
}

//Collect builds the report for the log that belongs to outfile (the .o
//suffix replaced by .log) and returns StatusOK if the error and the number
//of blocks are within tolerance, StatusRestart otherwise.
func (R *MCReader) Collect(outfile string) qmc.Status {
	R.Output = Report{}
	if fileExists(outfile) {
		logfile := replaceExt(outfile, ".log")
		data, err := R.report(logfile)
		if err == nil {
			R.Output, err = ParseReport(data)
		}
		if err != nil {
			qmc.Logger().Info("no report", zap.String("method", R.method), zap.String("file", logfile), zap.Error(err))
		} else {
			R.Output.File = outfile
		}
	}
	R.completed = R.checkComplete()
	if !R.completed {
		return qmc.StatusRestart
	}
	return qmc.StatusOK
}

func (R *MCReader) checkComplete() bool {
	if R.Output.Empty() {
		return false
	}
	completed := true
	_, eerr, ok := R.Output.Energy()
	if !ok {
		qmc.Logger().Info("incomplete: no total energy", zap.String("method", R.method))
		completed = false
	} else if eerr > R.ErrTol {
		qmc.Logger().Info("incomplete: error above tolerance", zap.String("method", R.method), zap.Float64("error", eerr), zap.Float64("errtol", R.ErrTol))
		completed = false
	}
	if blocks := R.Output.TotalBlocks - R.Output.WarmupBlocks; blocks < R.MinBlocks {
		qmc.Logger().Info("incomplete: too few blocks", zap.String("method", R.method), zap.Int("blocks", blocks), zap.Int("minblocks", R.MinBlocks))
		completed = false
	}
	return completed
}

//Summary writes the collected results to w.
func (R *MCReader) Summary(w io.Writer) error {
	header := "Variational Monte Carlo"
	if R.method == "DMC" {
		header = "Diffusion Monte Carlo"
	}
	return writeReport(w, header, R.Output)
}

func writeReport(w io.Writer, header string, r Report) error {
	lines := []string{"#### " + header}
	if e, de, ok := r.Energy(); ok {
		lines = append(lines, fmt.Sprintf("total_energy %s +/- %s", qmc.FormatFloat(e), qmc.FormatFloat(de)))
	}
	for _, name := range r.Properties.Names() {
		if name == "total_energy" {
			continue
		}
		if est, ok := r.Properties.Estimate(name); ok {
			lines = append(lines, fmt.Sprintf("%s %s +/- %s", name, qmc.FormatFloats(est.Value), qmc.FormatFloats(est.Error)))
		} else {
			lines = append(lines, name+" (see the JSON report)")
		}
	}
	items := map[string]string{
		"file":          r.File,
		"total blocks":  fmt.Sprint(r.TotalBlocks),
		"warmup blocks": fmt.Sprint(r.WarmupBlocks),
	}
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+" "+items[k])
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
