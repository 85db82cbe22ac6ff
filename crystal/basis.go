/*
 * basis.go, part of goqmc.
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
	"math"
	"strconv"
	"strings"

	qmc "github.com/rmera/goqmc"
)

//Crystal's index for each angular momentum channel in basis set input.
var basisIndex = map[string]int{"s": 0, "p": 2, "d": 3, "f": 4}

//Electrons each shell holds when filling the formal charges.
var maxCharge = map[string]float64{"s": 2, "p": 6, "d": 10, "f": 15}

var channelLetter = map[qmc.Channel]string{qmc.S: "s", qmc.P: "p", qmc.D: "d", qmc.F: "f"}

//GenerateBasis returns the pseudopotential and basis input for symbol,
//taken from the library. The occupied contracted shells are kept, without
//primitives with exponents at or below Cutoff, and augmented with
//uncontracted s and p functions (also d for transition metals) with
//exponents BasisParams[0]*BasisParams[2]^i, i < BasisParams[1].
func (W *Writer) GenerateBasis(symbol string) ([]string, error) {
	if W.Library == nil {
		return nil, qmc.NewError(qmc.ErrMissingSection, "library", "GenerateBasis")
	}
	entry, err := W.Library.Entry(symbol)
	if err != nil {
		return nil, errDecorate(err, "GenerateBasis")
	}
	pseudo, err := W.LibraryPseudoLines(symbol)
	if err != nil {
		return nil, errDecorate(err, "GenerateBasis")
	}
	basis, err := W.Library.Basis(symbol, W.BasisName)
	if err != nil {
		return nil, errDecorate(err, "GenerateBasis")
	}
	tm := qmc.IsTransitionMetal(symbol)
	nangular := map[string]int{"s": 1, "p": 1, "d": 1, "f": 1, "g": 0}
	if tm {
		nangular["s"] = 2
	}
	atomCharge, err := strconv.ParseFloat(strings.TrimSpace(entry.CoreCharge), 64)
	if err != nil {
		return nil, qmc.NewError(err.Error(), "core_charge", "GenerateBasis")
	}
	initial, charged := W.InitialCharges[symbol]
	if charged {
		atomCharge -= initial
	}
	found := make(map[string]int)
	totcharge := 0.0
	ncontract := 0
	var ret []string
	for _, contraction := range basis.Contractions {
		angular := contraction.Angular
		if found[angular] >= nangular[angular] {
			continue
		}
		var part []string
		for _, term := range contraction.Terms {
			exp, err := strconv.ParseFloat(strings.TrimSpace(term.Exp), 64)
			if err != nil {
				return nil, qmc.NewError(err.Error(), "basis", "GenerateBasis")
			}
			if exp > W.Cutoff {
				part = append(part, fmt.Sprintf("  %s %s", term.Exp, term.Coeff))
			}
		}
		if len(part) == 0 {
			continue
		}
		idx, ok := basisIndex[angular]
		if !ok {
			return nil, qmc.NewError(qmc.ErrUnknownChannel+" "+angular, symbol, "GenerateBasis")
		}
		found[angular]++
		charge := math.Min(atomCharge-totcharge, maxCharge[angular])
		//The 4s of a charged transition metal is left empty.
		if tm && charged && initial > 0 && found[angular] > 1 && angular == "s" {
			charge = 0
		}
		totcharge += charge
		ret = append(ret, fmt.Sprintf("0 %d %d %g 1", idx, len(part), charge))
		ret = append(ret, part...)
		ncontract++
	}
	uncontracted := []string{"s", "p"}
	if tm {
		uncontracted = append(uncontracted, "d")
	}
	for _, angular := range uncontracted {
		for i := 0; i < int(W.BasisParams[1]); i++ {
			exp := W.BasisParams[0] * math.Pow(W.BasisParams[2], float64(i))
			ret = append(ret, fmt.Sprintf("0 %d 1 0 1", basisIndex[angular]), qmc.FormatFloat(exp)+" 1.0")
			ncontract++
		}
	}
	code, err := qmc.CrystalCode(symbol)
	if err != nil {
		return nil, errDecorate(err, "GenerateBasis")
	}
	head := []string{fmt.Sprintf("%d %d", code, ncontract)}
	return append(append(head, pseudo...), ret...), nil
}

//LibraryPseudoLines returns the INPUT pseudopotential block for symbol,
//with the numbers as written in the library.
func (W *Writer) LibraryPseudoLines(symbol string) ([]string, error) {
	entry, err := W.Library.Entry(symbol)
	if err != nil {
		return nil, errDecorate(err, "LibraryPseudoLines")
	}
	pp, err := W.Library.Pseudo(symbol)
	if err != nil {
		return nil, errDecorate(err, "LibraryPseudoLines")
	}
	m, err := projectorCounts(symbol, pp)
	if err != nil {
		return nil, errDecorate(err, "LibraryPseudoLines")
	}
	ret := []string{"INPUT", fmt.Sprintf("%s %d %s", strings.TrimSpace(entry.CoreCharge), len(entry.Local), qmc.FormatInts(m))}
	for _, t := range append(append([]qmc.LibraryTerm{}, entry.Local...), entry.NonLocal...) {
		ret = append(ret, strings.Join([]string{strings.TrimSpace(t.Exp), strings.TrimSpace(t.Coef), strings.TrimSpace(t.RToN)}, " "))
	}
	return ret, nil
}

//projectorCounts checks the channel ordering of pp and returns the number
//of non-local terms in each of the 5 channels Crystal accepts.
func projectorCounts(species string, pp *qmc.Pseudopotential) ([]int, error) {
	if err := pp.CheckChannels(species); err != nil {
		return nil, err
	}
	counts := pp.NonLocalCounts()
	for _, c := range counts[5:] {
		if c != 0 {
			return nil, qmc.NewError(qmc.ErrUnknownChannel+": Crystal accepts up to g projectors", species, "projectorCounts")
		}
	}
	return counts[:5], nil
}

//PseudoLines returns the INPUT pseudopotential block for pp.
func PseudoLines(species string, pp *qmc.Pseudopotential) ([]string, error) {
	m, err := projectorCounts(species, pp)
	if err != nil {
		return nil, errDecorate(err, "PseudoLines")
	}
	ret := []string{"INPUT", fmt.Sprintf("%s %d %s", qmc.FormatFloat(pp.CoreCharge), len(pp.Local), qmc.FormatInts(m))}
	for _, g := range append(append([]qmc.Gaussian{}, pp.Local...), pp.NonLocal...) {
		ret = append(ret, fmt.Sprintf("%s %s %d", qmc.FormatFloat(g.Exp), qmc.FormatFloat(g.Coef), g.RToN))
	}
	return ret, nil
}

//BasisLines returns the Crystal pseudopotential and basis input for species
//from a basis set and a pseudopotential. Shells are filled with the
//valence electrons in order, reduced by charge.
func BasisLines(basis qmc.BasisSet, species string, pp *qmc.Pseudopotential, charge float64) ([]string, error) {
	elements, ok := basis.Lookup(species)
	if !ok {
		return nil, qmc.NewError(qmc.ErrUnknownSpecies, species, "BasisLines")
	}
	if pp == nil {
		return nil, qmc.NewError(qmc.ErrNoPseudopotential, species, "BasisLines")
	}
	code, err := qmc.CrystalCode(species)
	if err != nil {
		return nil, errDecorate(err, "BasisLines")
	}
	pseudo, err := PseudoLines(species, pp)
	if err != nil {
		return nil, errDecorate(err, "BasisLines")
	}
	ret := append([]string{fmt.Sprintf("%d %d", code, len(elements))}, pseudo...)
	left := pp.CoreCharge - charge
	for _, el := range elements {
		letter, ok := channelLetter[el.Channel]
		if !ok {
			return nil, qmc.NewError(fmt.Sprintf("%s %s in Crystal input", qmc.ErrUnknownChannel, el.Channel), species, "BasisLines")
		}
		if len(el.Exponents) != len(el.Coefs) {
			return nil, qmc.NewError(qmc.ErrShapeMismatch+": exponents and coefficients", species, "BasisLines")
		}
		occ := math.Max(0, math.Min(left, maxCharge[letter]))
		left -= occ
		ret = append(ret, fmt.Sprintf("0 %d %d %g 1", basisIndex[letter], el.NPrim(), occ))
		for i := range el.Exponents {
			ret = append(ret, fmt.Sprintf("  %s %s", qmc.FormatFloat(el.Exponents[i]), qmc.FormatFloat(el.Coefs[i])))
		}
	}
	return ret, nil
}
