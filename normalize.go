/*
 * normalize.go, part of goqmc.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//The SCF code and QWalk use different normalizations for the real spherical
//harmonics. The following constants convert from the former to the latter.
//f orbital normalizations are from
//<http://winter.group.shef.ac.uk/orbitron/AOs/4f/equations.html>
var (
	snorm  = 1 / math.Sqrt(4*math.Pi)
	pnorm  = snorm * math.Sqrt(3)
	dnorms = [5]float64{
		0.5 * math.Sqrt(5/(4*math.Pi)),
		math.Sqrt(15 / (4 * math.Pi)),
		math.Sqrt(15 / (4 * math.Pi)),
		0.5 * math.Sqrt(15/(4*math.Pi)),
		math.Sqrt(15 / (4 * math.Pi)),
	}
	fnorms = [7]float64{
		math.Sqrt(7 / (16 * math.Pi)),
		math.Sqrt(21 / (32 * math.Pi)),
		math.Sqrt(21 / (32 * math.Pi)),
		math.Sqrt(105 / (16 * math.Pi)), //xyz
		math.Sqrt(105 / (4 * math.Pi)),
		math.Sqrt(35 / (32 * math.Pi)),
		math.Sqrt(35 / (32 * math.Pi)),
	}
)

//AOLabels expands atomOrder against basis into one channel per AO column,
//in the order the eigenvector solver used: atom, then shell, then magnetic
//sub-state.
func AOLabels(basis BasisSet, atomOrder []string) ([]Channel, error) {
	labels := make([]Channel, 0, 9*len(atomOrder))
	for _, species := range atomOrder {
		shells, ok := basis.Lookup(species)
		if !ok {
			return nil, NewError(ErrUnknownSpecies, species, "AOLabels")
		}
		for _, el := range shells {
			for m := 0; m < el.Channel.Degeneracy(); m++ {
				labels = append(labels, el.Channel)
			}
		}
	}
	return labels, nil
}

//NormConstants returns the factor applied to each AO column with the given labels.
//The D and F factors depend on the magnetic sub-state, so they cycle within
//each shell. G and H columns are left unscaled.
func NormConstants(labels []Channel) []float64 {
	ret := make([]float64, len(labels))
	var nd, nf int
	for i, l := range labels {
		switch l {
		case S:
			ret[i] = snorm
		case P:
			ret[i] = pnorm
		case D:
			ret[i] = dnorms[nd%len(dnorms)]
			nd++
		case F:
			ret[i] = fnorms[nf%len(fnorms)]
			nf++
		default:
			ret[i] = 1
		}
	}
	return ret
}

//Normalize returns a copy of eigvec (rows are orbitals, columns are AOs)
//with each column rescaled from the SCF code normalization to QWalk's.
//eigvec is not modified.
func Normalize(eigvec *mat.CDense, basis BasisSet, atomOrder []string) (*mat.CDense, error) {
	r, c := eigvec.Dims()
	ret := mat.NewCDense(r, c, nil)
	ret.Copy(eigvec)
	if _, err := NormalizeInPlace(ret, basis, atomOrder); err != nil {
		return nil, errDecorate(err, "Normalize")
	}
	return ret, nil
}

//NormalizeInPlace is like Normalize, but overwrites eigvec, and returns it.
func NormalizeInPlace(eigvec *mat.CDense, basis BasisSet, atomOrder []string) (*mat.CDense, error) {
	labels, err := AOLabels(basis, atomOrder)
	if err != nil {
		return nil, errDecorate(err, "NormalizeInPlace")
	}
	r, c := eigvec.Dims()
	if c != len(labels) {
		return nil, NewError(fmt.Sprintf("%s: eigenvectors have %d AO columns, basis implies %d", ErrShapeMismatch, c, len(labels)), "eigvecs", "NormalizeInPlace")
	}
	norms := NormConstants(labels)
	for j, k := range norms {
		if k == 1 {
			continue
		}
		for i := 0; i < r; i++ {
			eigvec.Set(i, j, eigvec.At(i, j)*complex(k, 0))
		}
	}
	return eigvec, nil
}

//Real2Complex copies a real matrix into a complex one, which is the
//representation Orbitals uses for both real and complex eigenvectors.
func Real2Complex(m mat.Matrix) *mat.CDense {
	r, c := m.Dims()
	ret := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Set(i, j, complex(m.At(i, j), 0))
		}
	}
	return ret
}
