/*
 * report.go, part of goqmc.
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
	"encoding/json"
	"os"
	"os/exec"
	"sort"

	qmc "github.com/rmera/goqmc"
)

//Estimate is an averaged quantity with its stochastic error. QWalk reports
//one value per component, most quantities have only one.
type Estimate struct {
	Value []float64 `json:"value" yaml:"value"`
	Error []float64 `json:"error" yaml:"error"`
}

//Properties are the averaged quantities in a report, keyed by name
//(total_energy, kinetic, dipole, obdm...). Each one is kept as the raw JSON
//gosling or the postprocessor wrote, since only some of them have the
//value/error form of an Estimate.
type Properties map[string]json.RawMessage

//Names returns the names of the properties, sorted.
func (P Properties) Names() []string {
	names := make([]string, 0, len(P))
	for k := range P {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Decode unmarshals the property name into out.
func (P Properties) Decode(name string, out any) error {
	raw, ok := P[name]
	if !ok {
		return qmc.NewError("property not in report", name, "qwalk.Properties.Decode")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return qmc.NewError(err.Error(), name, "qwalk.Properties.Decode")
	}
	return nil
}

//Estimate returns the property name as a value/error pair.
func (P Properties) Estimate(name string) (Estimate, bool) {
	var e Estimate
	if err := P.Decode(name, &e); err != nil || len(e.Value) == 0 || len(e.Value) != len(e.Error) {
		return Estimate{}, false
	}
	return e, true
}

//Report is the JSON summary gosling produces from a QWalk log.
type Report struct {
	File         string     `json:"-" yaml:"file"`
	Properties   Properties `json:"properties" yaml:"-"`
	TotalBlocks  int        `json:"total blocks" yaml:"total_blocks"`
	WarmupBlocks int        `json:"warmup blocks" yaml:"warmup_blocks"`
	//loaded is false when no report could be read.
	loaded bool
}

//Empty returns true if no report was loaded.
func (R Report) Empty() bool { return !R.loaded }

//Energy returns the total energy and its error.
func (R Report) Energy() (energy, err float64, ok bool) {
	if !R.loaded {
		return 0, 0, false
	}
	te, ok := R.Properties.Estimate("total_energy")
	if !ok {
		return 0, 0, false
	}
	return te.Value[0], te.Error[0], true
}

//ParseReport decodes a gosling JSON report.
func ParseReport(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, err
	}
	r.loaded = true
	return r, nil
}

//ReadReport decodes the JSON report in the file name.
func ReadReport(name string) (Report, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Report{}, qmc.NewFileError(err.Error(), name, "qwalk.ReadReport", false)
	}
	r, err := ParseReport(data)
	if err != nil {
		return Report{}, qmc.NewFileError(err.Error(), name, "qwalk.ReadReport", false)
	}
	r.File = name
	return r, nil
}

//ReportFunc produces the JSON report for a QWalk log file.
type ReportFunc func(logfile string) ([]byte, error)

//Gosling returns a ReportFunc that runs the gosling program (from the
//QWalk distribution) found as command.
func Gosling(command string) ReportFunc {
	return func(logfile string) ([]byte, error) {
		out, err := exec.Command(command, "-json", logfile).Output()
		if err != nil {
			return nil, qmc.NewFileError("gosling failed: "+err.Error(), logfile, "qwalk.Gosling", false)
		}
		return out, nil
	}
}
