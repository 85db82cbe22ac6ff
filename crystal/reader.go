/*
 * reader.go, part of goqmc.
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

package crystal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	qmc "github.com/rmera/goqmc"
)

//Output holds what was read from a Crystal SCF output.
type Output struct {
	File string `yaml:"file"`
	//TotalEnergy is set only if the SCF converged.
	TotalEnergy float64 `yaml:"total_energy"`
	//LastEnergy is the energy at the last cycle of an SCF that ran out of cycles.
	LastEnergy    float64   `yaml:"last_energy"`
	MagMoments    []float64 `yaml:"mag_moments"`
	AtomicCharges []float64 `yaml:"atomic_charges"`
}

//Reader extracts the results of a Crystal SCF run.
type Reader struct {
	Output    Output
	completed bool
}

//NewReader returns an empty reader.
func NewReader() *Reader {
	return new(Reader)
}

//Completed returns true if the last collected output had a converged SCF.
func (R *Reader) Completed() bool { return R.completed }

//Collect reads outfilename. It returns StatusOK if the SCF converged, and
//StatusKilled if it ran out of cycles or the file is missing, truncated
//before the end of the SCF, or not text (which usually means the process
//was killed while writing).
func (R *Reader) Collect(outfilename string) qmc.Status {
	R.Output = Output{}
	R.completed = false
	status := qmc.StatusKilled
	if !fileExists(outfilename) {
		return status
	}
	R.Output.File = outfilename
	lines, err := qmc.ReadLines(outfilename)
	if err != nil {
		qmc.Logger().Info("crystal output is unreadable, the process was probably killed", zap.String("file", outfilename), zap.Error(err))
		return status
	}
	for li, line := range lines {
		switch {
		case strings.Contains(line, "SCF ENDED - CONVERGENCE ON ENERGY"):
			e, ok := field(line, 8)
			if !ok {
				continue
			}
			R.Output.TotalEnergy = e
			qmc.Logger().Info("SCF converged", zap.Float64("total_energy", e))
			status = qmc.StatusOK
			R.completed = true
		case strings.Contains(line, "SCF ENDED - TOO MANY CYCLES"):
			if e, ok := field(line, 8); ok {
				R.Output.LastEnergy = e
				qmc.Logger().Info("SCF ended without convergence", zap.Float64("energy", e))
			}
			status = qmc.StatusKilled
			R.completed = false
		case strings.Contains(line, "TOTAL ATOMIC SPINS"):
			R.Output.MagMoments = readBlock(lines[li+1:], "TTT")
		case strings.Contains(line, "TOTAL ATOMIC CHARGES"):
			R.Output.AtomicCharges = readBlock(lines[li+1:], "SUMMED", "TTT")
		}
	}
	return status
}

//field returns the i-th whitespace-separated field of line as a float.
func field(line string, i int) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) <= i {
		return 0, false
	}
	f, err := strconv.ParseFloat(fields[i], 64)
	return f, err == nil
}

//readBlock parses the numbers in lines until one containing any of the
//stop markers, or the end of the slice.
func readBlock(lines []string, stops ...string) []float64 {
	ret := make([]float64, 0, 8)
	for _, line := range lines {
		for _, s := range stops {
			if strings.Contains(line, s) {
				return ret
			}
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				continue
			}
			ret = append(ret, v)
		}
	}
	return ret
}

//Summary writes the collected results to w.
func (R *Reader) Summary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Crystal total energy %s\n", qmc.FormatFloat(R.Output.TotalEnergy))
	return err
}

//Diagnosis is the detailed state of a Crystal run, as found by Diagnose.
type Diagnosis string

const (
	DiagNotStarted        Diagnosis = "not_started"
	DiagOK                Diagnosis = "ok"
	DiagTooManyCycles     Diagnosis = "too_many_cycles"
	DiagFinished          Diagnosis = "finished"
	DiagSCFFail           Diagnosis = "scf_fail"
	DiagNotEnoughDecrease Diagnosis = "not_enough_decrease"
	DiagDivergence        Diagnosis = "divergence"
	DiagNotFinished       Diagnosis = "not_finished"
)

//DefaultAcceptableSCF is the largest net energy change, summed over the SCF
//cycles after the first, that Diagnose accepts for an unfinished run.
const DefaultAcceptableSCF = 10.0

//Diagnose inspects a possibly unfinished Crystal output and tells why it
//stopped, or how it is going. Undecodable bytes are ignored.
func Diagnose(outfilename string, acceptableSCF float64) Diagnosis {
	if !fileExists(outfilename) {
		return DiagNotStarted
	}
	r, err := qmc.OpenOutput(outfilename)
	if err != nil {
		return DiagNotStarted
	}
	data, _ := io.ReadAll(r)
	r.Close()
	outlines := strings.Split(strings.ToValidUTF8(string(data), ""), "\n")
	for _, line := range outlines {
		if !strings.Contains(line, "ENDED") {
			continue
		}
		switch {
		case strings.Contains(line, "CONVERGENCE"):
			return DiagOK
		case strings.Contains(line, "TOO MANY CYCLES"):
			return DiagTooManyCycles
		default:
			return DiagFinished
		}
	}
	var detots, etots []float64
	for _, line := range outlines {
		if !strings.Contains(line, "DETOT") {
			continue
		}
		if d, ok := field(line, 5); ok {
			detots = append(detots, d)
		}
		if e, ok := field(line, 3); ok {
			etots = append(etots, e)
		}
	}
	if len(detots) == 0 {
		return DiagSCFFail
	}
	net := 0.0
	for _, d := range detots[1:] {
		net += d
	}
	if net > acceptableSCF {
		return DiagNotEnoughDecrease
	}
	if len(etots) > 0 && etots[len(etots)-1] > 0 {
		return DiagDivergence
	}
	return DiagNotFinished
}
