/*
 * orbitals.go, part of goqmc.
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
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Orbitals is a set of single-particle orbitals: a basis and the coefficients
//of each orbital in it, one matrix per spin channel. Rows of each matrix are
//orbitals and columns are AOs, ordered by AtomOrder, then shell, then
//magnetic sub-state.
//Writers that receive an Orbitals never modify it.
type Orbitals struct {
	Basis     BasisSet
	Eigvecs   []*mat.CDense
	Eigvals   [][]float64
	AtomOrder []string
	KPoint    [3]float64
	KWeight   float64
}

//NMO returns the total number of orbitals over all spin channels.
func (O *Orbitals) NMO() int {
	n := 0
	for _, e := range O.Eigvecs {
		r, _ := e.Dims()
		n += r
	}
	return n
}

//NMOSpin returns the number of orbitals in the spin channel s.
func (O *Orbitals) NMOSpin(s int) int {
	if s < 0 || s >= len(O.Eigvecs) {
		return 0
	}
	r, _ := O.Eigvecs[s].Dims()
	return r
}

//IsComplex returns true if any coefficient, in any spin channel, has a
//non-zero imaginary part.
func (O *Orbitals) IsComplex() bool {
	for _, e := range O.Eigvecs {
		raw := e.RawCMatrix()
		r, c := e.Dims()
		for i := 0; i < r; i++ {
			for _, v := range raw.Data[i*raw.Stride : i*raw.Stride+c] {
				if imag(v) != 0 {
					return true
				}
			}
		}
	}
	return false
}

//Validate checks that every spin channel has as many AO columns as the
//basis and atom order imply.
func (O *Orbitals) Validate() error {
	if err := O.Basis.Validate(); err != nil {
		return errDecorate(err, "Orbitals.Validate")
	}
	nao, err := O.Basis.NAO(O.AtomOrder)
	if err != nil {
		return errDecorate(err, "Orbitals.Validate")
	}
	for s, e := range O.Eigvecs {
		if _, c := e.Dims(); c != nao {
			return NewError(fmt.Sprintf("%s: spin channel %d has %d AO columns, basis implies %d", ErrShapeMismatch, s, c, nao), "eigvecs", "Orbitals.Validate")
		}
	}
	return nil
}

//WriteOrbFile writes the orbital coefficients in the format QWalk reads
//(see WriteOrbFileTo).
func (O *Orbitals) WriteOrbFile(outfn string) error {
	f, err := os.Create(outfn)
	if err != nil {
		return NewFileError(err.Error(), outfn, "WriteOrbFile", true)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := O.WriteOrbFileTo(w); err != nil {
		return errDecorate(err, "WriteOrbFile")
	}
	return w.Flush()
}

//WriteOrbFileTo writes to w one header line per (orbital, atom, AO) that
//maps those indices to the position of the coefficient, then the
//COEFFICIENTS block, normalized for QWalk, 5 values per line.
//Coefficients are written as (re,im) pairs if any of them is complex.
//The receiver is not modified.
func (O *Orbitals) WriteOrbFileTo(w io.Writer) error {
	if err := O.Validate(); err != nil {
		return errDecorate(err, "WriteOrbFileTo")
	}
	naoAtom := O.Basis.CountAOs()
	nmo := O.NMO()
	coefcnt := 0
	for moidx := 0; moidx < nmo; moidx++ {
		for atidx, atom := range O.AtomOrder {
			for aoidx := 0; aoidx < naoAtom[atom]; aoidx++ {
				if _, err := fmt.Fprintf(w, " %5d %5d %5d %5d\n", moidx+1, aoidx+1, atidx+1, coefcnt+1); err != nil {
					return err
				}
				coefcnt++
			}
		}
	}
	if _, err := fmt.Fprint(w, "COEFFICIENTS\n"); err != nil {
		return err
	}
	iscomplex := O.IsComplex()
	printcnt := 0
	for _, e := range O.Eigvecs {
		norm, err := Normalize(e, O.Basis, O.AtomOrder)
		if err != nil {
			return errDecorate(err, "WriteOrbFileTo")
		}
		r, c := norm.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v := norm.At(i, j)
				if iscomplex {
					_, err = fmt.Fprintf(w, "(%.12e,%.12e) ", real(v), imag(v))
				} else {
					_, err = fmt.Fprintf(w, "% -15.12e ", real(v))
				}
				if err != nil {
					return err
				}
				printcnt++
				if printcnt%5 == 0 {
					if _, err := fmt.Fprint(w, "\n"); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

//ExportQWalkOrbitals renders the (c)orbitals section that points QWalk to orbfn.
func (O *Orbitals) ExportQWalkOrbitals(orbfn string) string {
	c := ""
	if O.IsComplex() {
		c = "c"
	}
	outlines := []string{
		c + "orbitals {",
		"  magnify 1",
		fmt.Sprintf("  nmo %d", O.NMO()),
		fmt.Sprintf("  orbfile %s", orbfn),
		O.Basis.ExportQWalkBasis(),
		"  centers { useglobal }",
		"}",
	}
	return strings.Join(outlines, "\n")
}
