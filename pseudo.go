/*
 * pseudo.go, part of goqmc.
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
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//Gaussian is one term r^(RToN) Coef exp(-Exp r^2) of a pseudopotential.
//Angular is only meaningful for non-local terms.
type Gaussian struct {
	Angular int     `yaml:"angular"`
	Exp     float64 `yaml:"exp"`
	Coef    float64 `yaml:"coef"`
	RToN    int     `yaml:"r_to_n"`
}

//Pseudopotential replaces the core electrons of a species.
type Pseudopotential struct {
	CoreCharge float64    `yaml:"core_charge"`
	Local      []Gaussian `yaml:"local"`
	NonLocal   []Gaussian `yaml:"nonlocal"`
}

//maxPseudoChannel is the highest non-local channel the codes accept, plus one.
const maxPseudoChannel = 6

//NonLocalCounts returns the number of non-local terms in each angular channel.
func (P *Pseudopotential) NonLocalCounts() []int {
	counts := make([]int, maxPseudoChannel)
	for _, g := range P.NonLocal {
		if g.Angular >= 0 && g.Angular < maxPseudoChannel {
			counts[g.Angular]++
		}
	}
	return counts
}

//CheckChannels verifies the positional invariants the decks rely on: the
//non-local terms must be sorted by angular channel, and no channel may be
//empty while a higher one is populated. Nothing is reordered.
func (P *Pseudopotential) CheckChannels(species string) error {
	last := -1
	for _, g := range P.NonLocal {
		if g.Angular < 0 || g.Angular >= maxPseudoChannel {
			return NewError(fmt.Sprintf("%s %d", ErrUnknownChannel, g.Angular), species, "CheckChannels")
		}
		if g.Angular < last {
			return NewError(fmt.Sprintf("%s (channel %d after %d)", ErrChannelOrder, g.Angular, last), species, "CheckChannels")
		}
		last = g.Angular
	}
	counts := P.NonLocalCounts()
	for i := 0; i < len(counts)-1; i++ {
		if counts[i] == 0 && counts[i+1] != 0 {
			return NewError(fmt.Sprintf("%s (channel %d empty, channel %d populated)", ErrChannelGap, i, i+1), species, "CheckChannels")
		}
	}
	return nil
}

//Library is a pseudopotential and basis set database in the BFD XML format.
//The name of the root element is not checked.
type Library struct {
	Entries []LibraryPseudo `xml:"Pseudopotential"`
	name    string
}

//LibraryPseudo is the entry for one element.
type LibraryPseudo struct {
	Symbol     string         `xml:"symbol,attr"`
	CoreCharge string         `xml:"Effective_core_charge"`
	Local      []LibraryTerm  `xml:"Gaussian_expansion>Local_component"`
	NonLocal   []LibraryTerm  `xml:"Gaussian_expansion>Non-local_component"`
	BasisSets  []LibraryBasis `xml:"Basis-set"`
}

//LibraryTerm is a pseudopotential term as written in the library.
type LibraryTerm struct {
	Exp  string `xml:"Exp"`
	Coef string `xml:"Coeff"`
	RToN string `xml:"r_to_n"`
	Proj string `xml:"Proj"`
}

//LibraryBasis is a named basis set for one element.
type LibraryBasis struct {
	Name         string               `xml:"name,attr"`
	Contractions []LibraryContraction `xml:"Contraction"`
}

//LibraryContraction is one contracted shell, with the exponents and
//coefficients kept as they appear in the file.
type LibraryContraction struct {
	Angular string `xml:"Angular_momentum,attr"`
	Terms   []struct {
		Exp   string `xml:"Exp,attr"`
		Coeff string `xml:"Coeff,attr"`
	} `xml:"Basis-term"`
}

//LoadLibrary reads a BFD-style XML database.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewFileError(err.Error(), path, "LoadLibrary", true)
	}
	L := new(Library)
	if err := xml.Unmarshal(data, L); err != nil {
		return nil, NewFileError(err.Error(), path, "LoadLibrary", true)
	}
	L.name = path
	return L, nil
}

//Entry returns the raw library entry for symbol.
func (L *Library) Entry(symbol string) (*LibraryPseudo, error) {
	sym := Capitalize(symbol)
	for i := range L.Entries {
		if L.Entries[i].Symbol == sym {
			return &L.Entries[i], nil
		}
	}
	return nil, NewFileError(fmt.Sprintf("%s %s", ErrNoPseudopotential, symbol), L.name, "Library.Entry", true)
}

//Pseudo returns the pseudopotential for symbol.
func (L *Library) Pseudo(symbol string) (*Pseudopotential, error) {
	e, err := L.Entry(symbol)
	if err != nil {
		return nil, errDecorate(err, "Library.Pseudo")
	}
	P := new(Pseudopotential)
	if P.CoreCharge, err = strconv.ParseFloat(strings.TrimSpace(e.CoreCharge), 64); err != nil {
		return nil, NewFileError(err.Error(), L.name, "Library.Pseudo", true)
	}
	for _, t := range e.Local {
		g, err := t.gaussian(false)
		if err != nil {
			return nil, NewFileError(err.Error(), L.name, "Library.Pseudo", true)
		}
		P.Local = append(P.Local, g)
	}
	for _, t := range e.NonLocal {
		g, err := t.gaussian(true)
		if err != nil {
			return nil, NewFileError(err.Error(), L.name, "Library.Pseudo", true)
		}
		P.NonLocal = append(P.NonLocal, g)
	}
	return P, nil
}

//Basis returns the named basis set for symbol, or nil if not present.
func (L *Library) Basis(symbol, name string) (*LibraryBasis, error) {
	e, err := L.Entry(symbol)
	if err != nil {
		return nil, errDecorate(err, "Library.Basis")
	}
	for i := range e.BasisSets {
		if e.BasisSets[i].Name == name {
			return &e.BasisSets[i], nil
		}
	}
	return nil, NewFileError(fmt.Sprintf("no basis set %q for %s", name, symbol), L.name, "Library.Basis", true)
}

func (t LibraryTerm) gaussian(nonlocal bool) (Gaussian, error) {
	var g Gaussian
	var err error
	if g.Exp, err = strconv.ParseFloat(strings.TrimSpace(t.Exp), 64); err != nil {
		return g, err
	}
	if g.Coef, err = strconv.ParseFloat(strings.TrimSpace(t.Coef), 64); err != nil {
		return g, err
	}
	if g.RToN, err = strconv.Atoi(strings.TrimSpace(t.RToN)); err != nil {
		return g, err
	}
	if nonlocal {
		if g.Angular, err = strconv.Atoi(strings.TrimSpace(t.Proj)); err != nil {
			return g, err
		}
	}
	return g, nil
}
