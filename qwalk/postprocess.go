/*
 * postprocess.go, part of goqmc.
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

//PostprocessOptions control a postprocessing run over a saved trace.
type PostprocessOptions struct {
	//TraceFile is the trace to read, see TraceFile.
	TraceFile string `yaml:"tracefn"`
	//Energy recomputes the energy along with the averages.
	Energy bool `yaml:"energy"`
	//NSkip is the number of warmup blocks to skip.
	NSkip    int    `yaml:"nskip"`
	Averages string `yaml:"averages"`
}

//PostprocessWriter produces the input of a postprocessing run.
type PostprocessWriter struct {
	deck
	Options PostprocessOptions
}

//NewPostprocessWriter returns a writer that reads tracefn.
func NewPostprocessWriter(sys, trialfunc qmc.Section, tracefn string) *PostprocessWriter {
	return &PostprocessWriter{
		deck:    deck{Sys: sys, TrialFunc: trialfunc},
		Options: PostprocessOptions{TraceFile: tracefn},
	}
}

//SetOptions sets the options named in opts.
func (W *PostprocessWriter) SetOptions(opts map[string]any) error {
	return setOptions(&W.Options, opts, "PostprocessWriter.SetOptions")
}

//LoadOptions applies the options in the YAML file path.
func (W *PostprocessWriter) LoadOptions(path string) error {
	return loadOptions(&W.Options, path, "PostprocessWriter.LoadOptions")
}

//Input renders the deck.
func (W *PostprocessWriter) Input() (string, error) {
	if err := W.check("PostprocessWriter.Input"); err != nil {
		return "", err
	}
	if W.Options.TraceFile == "" {
		return "", qmc.NewError(qmc.ErrMissingSection, "tracefn", "PostprocessWriter.Input")
	}
	outlines := []string{
		"method { postprocess",
		fmt.Sprintf("  nskip %d", W.Options.NSkip),
		fmt.Sprintf("  readconfig %s", W.Options.TraceFile),
	}
	if !W.Options.Energy {
		outlines = append(outlines, "  noenergy")
	}
	outlines = append(outlines, averagesLines(W.Options.Averages)...)
	outlines = append(outlines, "}", W.Sys.String(), W.TrialFunc.String())
	return strings.Join(outlines, "\n"), nil
}

//WriteInput writes the deck to infile.
func (W *PostprocessWriter) WriteInput(infile string) error {
	text, err := W.Input()
	if err != nil {
		return err
	}
	return W.write(infile, text, "PostprocessWriter.WriteInput")
}

//PostprocessReader reads the JSON results of a postprocessing run.
type PostprocessReader struct {
	Output    Report
	completed bool
}

//NewPostprocessReader returns an empty reader.
func NewPostprocessReader() *PostprocessReader {
	return new(PostprocessReader)
}

//Completed returns true if the last Collect loaded a report.
func (R *PostprocessReader) Completed() bool { return R.completed }

//Collect loads the JSON results that belong to outfile (the .o suffix
//replaced by .json). It returns StatusOK if they could be read, and
//StatusKilled otherwise.
func (R *PostprocessReader) Collect(outfile string) qmc.Status {
	R.Output = Report{}
	jsonfn := replaceExt(outfile, ".json")
	if fileExists(jsonfn) {
		r, err := ReadReport(jsonfn)
		if err != nil {
			qmc.Logger().Info("postprocess results unreadable", zap.String("file", jsonfn), zap.Error(err))
		} else {
			R.Output = r
		}
	}
	R.completed = !R.Output.Empty()
	if !R.completed {
		return qmc.StatusKilled
	}
	return qmc.StatusOK
}

//Summary writes the collected results to w.
func (R *PostprocessReader) Summary(w io.Writer) error {
	return writeReport(w, "Postprocessing", R.Output)
}
