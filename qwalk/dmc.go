/*
 * dmc.go, part of goqmc.
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
	"strings"

	qmc "github.com/rmera/goqmc"
)

//DMCOptions control a diffusion Monte Carlo run.
type DMCOptions struct {
	NBlock   int     `yaml:"nblock"`
	Timestep float64 `yaml:"timestep"`
	//TMoves enables T-moves for the non-local pseudopotential.
	TMoves bool `yaml:"tmoves"`
	//SaveTrace keeps the walkers in <infile>.trace for postprocessing.
	SaveTrace bool   `yaml:"savetrace"`
	Averages  string `yaml:"averages"`
}

//DMCWriter produces the input of a DMC run.
type DMCWriter struct {
	deck
	Options DMCOptions
}

//NewDMCWriter returns a writer for 100 blocks with a 0.01 timestep,
//T-moves and a saved trace.
func NewDMCWriter(sys, trialfunc qmc.Section) *DMCWriter {
	return &DMCWriter{
		deck:    deck{Sys: sys, TrialFunc: trialfunc},
		Options: DMCOptions{NBlock: 100, Timestep: 0.01, TMoves: true, SaveTrace: true},
	}
}

//SetOptions sets the options named in opts.
func (W *DMCWriter) SetOptions(opts map[string]any) error {
	return setOptions(&W.Options, opts, "DMCWriter.SetOptions")
}

//LoadOptions applies the options in the YAML file path.
func (W *DMCWriter) LoadOptions(path string) error {
	return loadOptions(&W.Options, path, "DMCWriter.LoadOptions")
}

//Input renders the deck that will be written to infile, which names the trace.
func (W *DMCWriter) Input(infile string) (string, error) {
	if err := W.check("DMCWriter.Input"); err != nil {
		return "", err
	}
	outlines := []string{
		"method { DMC",
		fmt.Sprintf("  nblock %d", W.Options.NBlock),
		fmt.Sprintf("  timestep %g", W.Options.Timestep),
	}
	if W.Options.TMoves {
		outlines = append(outlines, "  tmoves")
	}
	if W.Options.SaveTrace {
		outlines = append(outlines, fmt.Sprintf("  save_trace   %s.trace", infile))
	}
	outlines = append(outlines, averagesLines(W.Options.Averages)...)
	outlines = append(outlines, "}", W.Sys.String(), W.TrialFunc.String())
	return strings.Join(outlines, "\n"), nil
}

//TraceFile returns the name of the trace a run of infile saves.
func TraceFile(infile string) string {
	return infile + ".trace"
}

//WriteInput writes the deck to infile.
func (W *DMCWriter) WriteInput(infile string) error {
	text, err := W.Input(infile)
	if err != nil {
		return err
	}
	return W.write(infile, text, "DMCWriter.WriteInput")
}
