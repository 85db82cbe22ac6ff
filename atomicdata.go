/*
 * atomicdata.go, part of goqmc.
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

import "strings"

//periodicTable lists element symbols ordered by atomic number, starting at H.
var periodicTable = []string{"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne", "Na",
	"Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca", "Sc", "Ti", "V", "Cr",
	"Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu", "Hf",
	"Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po",
	"At", "Rn", "Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm",
	"Bk", "Cf", "Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs",
	"Mt", "Ds", "Rg", "Cp", "Uut", "Uuq", "Uup", "Uuh", "Uus", "Uuo"}

//Transition metals get an extra s contraction and uncontracted d functions
//when a basis is generated from a library.
var transitionMetals = []string{"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn"}

//AtomicNumber returns the atomic number for the element symbol.
//The symbol is case-insensitive.
func AtomicNumber(symbol string) (int, error) {
	sym := Capitalize(symbol)
	for i, v := range periodicTable {
		if v == sym {
			return i + 1, nil
		}
	}
	return 0, NewError(ErrUnknownElement, symbol, "AtomicNumber")
}

//Symbol returns the element symbol for the atomic number z.
func Symbol(z int) (string, error) {
	if z < 1 || z > len(periodicTable) {
		return "", NewError(ErrUnknownElement, "", "Symbol")
	}
	return periodicTable[z-1], nil
}

//CrystalCode is the atom code Crystal uses for an element described with a
//pseudopotential, i.e. Z+200.
func CrystalCode(symbol string) (int, error) {
	z, err := AtomicNumber(symbol)
	if err != nil {
		return 0, errDecorate(err, "CrystalCode")
	}
	return z + 200, nil
}

//IsTransitionMetal returns true for the 3d transition metals.
func IsTransitionMetal(symbol string) bool {
	return isInString(transitionMetals, Capitalize(symbol))
}

//Capitalize returns the symbol with its first letter in upper case and the rest in lower case.
func Capitalize(symbol string) string {
	if symbol == "" {
		return symbol
	}
	return strings.ToUpper(symbol[:1]) + strings.ToLower(symbol[1:])
}
