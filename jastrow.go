/*
 * jastrow.go, part of goqmc.
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

package qmc

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

//Jastrow is a Jastrow correlation factor, kept as the QWalk section text.
type Jastrow struct {
	Text string
}

//ExportQWalkWF returns the Jastrow section. Options are ignored.
func (J *Jastrow) ExportQWalkWF(WFOptions) (string, error) {
	return J.Text, nil
}

//DefaultJastrow returns an unoptimized two-body Jastrow (electron-electron
//and electron-ion terms) for the species of S, meant to be optimized before
//it is used in production runs.
//cutoff is the basis cutoff in bohr. If it is not positive, the largest
//cutoff the cell allows is used, which requires a periodic system.
func (S *System) DefaultJastrow(cutoff float64) (*Jastrow, error) {
	if cutoff <= 0 {
		if !S.Periodic() {
			return nil, NewError(ErrNotPeriodic+": finite systems need an explicit cutoff", "cutoff", "DefaultJastrow")
		}
		cutoff = BasisCutoff(S.LatVecs)
	}
	return NewJastrow(S.Species(), cutoff), nil
}

//NewJastrow builds the unoptimized two-body Jastrow for the given species.
func NewJastrow(species []string, cutoff float64) *Jastrow {
	c := FormatFloat(cutoff)
	eebasis := []string{
		"  eebasis {",
		"    ee",
		"    cutoff_cusp",
		"    gamma 24.0",
		"    cusp 1.0",
		"    cutoff " + c,
		"  }",
	}
	outlines := []string{"jastrow2", "group {", "  optimizebasis"}
	outlines = append(outlines, eebasis...)
	outlines = append(outlines, eebasis...)
	outlines = append(outlines,
		"  twobody_spin {",
		"    freeze",
		"    like_coefficients { 0.25 0.0 }",
		"    unlike_coefficients { 0.0 0.5 }",
		"  }",
		"}",
		"group {",
		"  optimize_basis")
	for _, sp := range species {
		outlines = append(outlines,
			"  eibasis {",
			"    "+sp,
			"    polypade",
			"    beta0 0.2",
			"    nfunc 3",
			"    rcut "+c,
			"  }")
	}
	outlines = append(outlines, "  onebody {")
	for _, sp := range species {
		outlines = append(outlines, fmt.Sprintf("    coefficients { %s 0.0 0.0 0.0}", sp))
	}
	outlines = append(outlines,
		"  }",
		"  eebasis {",
		"    ee",
		"    polypade",
		"    beta0 0.5",
		"    nfunc 3",
		"    rcut "+c,
		"  }",
		"  twobody {",
		"    coefficients { 0.0 0.0 0.0 }",
		"  }",
		"}")
	return &Jastrow{Text: strings.Join(outlines, "\n")}
}

//SeparateJastrow extracts the jastrow2/jastrow3 section from a QWalk
//wave function file, for instance one written by an optimization run.
//If optimizeBasis is false the optimizebasis keyword is dropped; freezeAll
//appends FREEZE to every ONEBODY/TWOBODY line so the parameters stay fixed.
//Only the upper case keywords QWalk writes in its wave function output are
//frozen; hand-written lower case sections are left as they are.
func SeparateJastrow(wffile string, optimizeBasis, freezeAll bool) (*Jastrow, error) {
	f, err := os.Open(wffile)
	if err != nil {
		return nil, NewFileError(err.Error(), wffile, "SeparateJastrow", true)
	}
	defer f.Close()
	var jastlines []string
	injastrow := false
	nopen, nclose := 0, 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		lower := strings.ToLower(line)
		if strings.Contains(lower, "jastrow2") || strings.Contains(lower, "jastrow3") {
			injastrow = true
		}
		if !injastrow {
			continue
		}
		if !optimizeBasis && strings.Contains(lower, "optimizebasis") {
			words := make([]string, 0, 4)
			for _, w := range strings.Fields(line) {
				if strings.ToLower(w) != "optimizebasis" {
					words = append(words, w)
				}
			}
			line = strings.Join(words, " ")
			if line == "" {
				continue
			}
		}
		if freezeAll && strings.Contains(line, "BODY") {
			line += " FREEZE"
		}
		nopen += strings.Count(line, "{")
		nclose += strings.Count(line, "}")
		if nopen < nclose {
			injastrow = false
		} else {
			jastlines = append(jastlines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, NewFileError(err.Error(), wffile, "SeparateJastrow", true)
	}
	return &Jastrow{Text: strings.Join(jastlines, "\n")}, nil
}
