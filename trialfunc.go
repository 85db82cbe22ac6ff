/*
 * trialfunc.go, part of goqmc.
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
	"fmt"
	"strings"
)

//WFOptions are the optimization flags a wave function section may carry.
type WFOptions struct {
	//OptimizeDet adds optimize_det, so determinant weights are optimized.
	OptimizeDet bool `yaml:"optimize_det"`
	//RotateOrbs lists groups of (1-based) orbitals to rotate among each other.
	//nil means no orbital optimization.
	RotateOrbs [][]int `yaml:"rotate_orbs"`
}

//Slater is a (multi)determinant wave function.
type Slater struct {
	Orbitals OrbitalExporter
	//OrbFile is where the orbitals are (or will be) written, see Orbitals.WriteOrbFile.
	OrbFile string
	//States[det][spin] lists the 1-based orbitals occupied in each determinant.
	States [][][]int
	//Weights has one weight per determinant.
	Weights []float64
	//ShiftDownOrb offsets the spin-down states by the number of spin-up
	//orbitals, for unrestricted orbital sets.
	ShiftDownOrb bool
}

//NewSlater returns a single determinant wave function with weight 1.
func NewSlater(orbitals OrbitalExporter, orbfile string, states [][][]int) *Slater {
	return &Slater{Orbitals: orbitals, OrbFile: orbfile, States: states, Weights: []float64{1.0}}
}

//check verifies the shape of States and Weights and the 1-based indexing.
func (S *Slater) check() error {
	if len(S.States) != len(S.Weights) {
		return NewError(fmt.Sprintf("%s: %d determinants, %d weights", ErrShapeMismatch, len(S.States), len(S.Weights)), "weights", "Slater")
	}
	for d, det := range S.States {
		if len(det) != 2 {
			return NewError(fmt.Sprintf("%s: determinant %d has %d spin channels, want 2", ErrShapeMismatch, d, len(det)), "states", "Slater")
		}
		for _, spin := range det {
			for _, orb := range spin {
				if orb == 0 {
					return NewError(ErrZeroIndex, "states", "Slater")
				}
			}
		}
	}
	return nil
}

//ExportQWalkWF renders the slater section. The receiver is not modified.
func (S *Slater) ExportQWalkWF(opts WFOptions) (string, error) {
	if err := S.check(); err != nil {
		return "", errDecorate(err, "ExportQWalkWF")
	}
	if S.Orbitals == nil {
		return "", NewError(ErrMissingSection, "orbitals", "ExportQWalkWF")
	}
	shift := 0
	if S.ShiftDownOrb {
		shift = S.Orbitals.NMOSpin(0)
	}
	outlines := []string{
		"slater",
		S.Orbitals.ExportQWalkOrbitals(S.OrbFile),
		fmt.Sprintf("detwt { %s }", FormatFloats(S.Weights)),
		"states {",
	}
	for d, det := range S.States {
		down := make([]int, len(det[1]))
		for i, orb := range det[1] {
			down[i] = orb + shift
		}
		w := FormatFloat(S.Weights[d])
		outlines = append(outlines,
			fmt.Sprintf("  # Spin up orbitals detweight %s.", w),
			"  "+FormatInts(det[0]),
			fmt.Sprintf("  # Spin down orbitals detweight %s.", w),
			"  "+FormatInts(down))
	}
	outlines = append(outlines, "}")
	if opts.OptimizeDet {
		outlines = append(outlines, "optimize_det")
	}
	if opts.RotateOrbs != nil {
		outlines = append(outlines, "optimize_mo", "optimize_data { ", "  det { ")
		for _, group := range opts.RotateOrbs {
			outlines = append(outlines, "    orb_group { ", "      "+FormatInts(group), "    }")
		}
		outlines = append(outlines, "  }", "}")
	}
	return strings.Join(outlines, "\n"), nil
}

//SlaterJastrow is the product of a Slater determinant and a Jastrow factor.
type SlaterJastrow struct {
	Slater  WaveFunction
	Jastrow WaveFunction
}

//ExportQWalkWF renders the slater-jastrow section. The options are passed
//to both factors.
func (S *SlaterJastrow) ExportQWalkWF(opts WFOptions) (string, error) {
	if S.Slater == nil || S.Jastrow == nil {
		return "", NewError(ErrMissingSection, "slater-jastrow", "ExportQWalkWF")
	}
	wf1, err := S.Slater.ExportQWalkWF(opts)
	if err != nil {
		return "", errDecorate(err, "SlaterJastrow")
	}
	wf2, err := S.Jastrow.ExportQWalkWF(opts)
	if err != nil {
		return "", errDecorate(err, "SlaterJastrow")
	}
	outlines := []string{"slater-jastrow", "  wf1 {"}
	outlines = append(outlines, Indent(wf1, "    ")...)
	outlines = append(outlines, "  }", "  wf2 {")
	outlines = append(outlines, Indent(wf2, "    ")...)
	outlines = append(outlines, "  }")
	return strings.Join(outlines, "\n"), nil
}

//ExportTrialFunc wraps the section of wf in a trialfunc block.
func ExportTrialFunc(wf WaveFunction, opts WFOptions) (string, error) {
	if wf == nil {
		return "", NewError(ErrMissingSection, "trialfunc", "ExportTrialFunc")
	}
	sec, err := wf.ExportQWalkWF(opts)
	if err != nil {
		return "", errDecorate(err, "ExportTrialFunc")
	}
	outlines := []string{"trialfunc { "}
	outlines = append(outlines, Indent(sec, "  ")...)
	outlines = append(outlines, "}")
	return strings.Join(outlines, "\n"), nil
}
