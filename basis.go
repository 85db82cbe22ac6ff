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

package qmc

import (
	"fmt"
	"math"
	"strings"
)

//Channel is an angular momentum channel of a shell of atomic orbitals.
type Channel int

const (
	S Channel = iota
	P
	D
	F
	G
	H
)

//The labels used for each channel in the orbital files written by the SCF code.
var channelLabels = [...]string{"S", "P", "5D", "7F_crystal", "G", "H"}

//Degeneracy returns the number of magnetic sub-states (and thus AOs) of the channel.
func (c Channel) Degeneracy() int {
	return 2*int(c) + 1
}

//Label returns the code-native label of the channel (S, P, 5D, 7F_crystal, G, H).
func (c Channel) Label() string {
	if c < S || c > H {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelLabels[c]
}

//String returns the spectroscopic letter of the channel.
func (c Channel) String() string {
	if c < S || c > H {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return "SPDFGH"[c : c+1]
}

//ParseChannel accepts either a spectroscopic letter (s, p, d...) or one of
//the code-native labels (5D, 7F_crystal).
func ParseChannel(label string) (Channel, error) {
	for i, v := range channelLabels {
		if label == v {
			return Channel(i), nil
		}
	}
	l := strings.ToUpper(strings.TrimSpace(label))
	if len(l) == 1 {
		if i := strings.Index("SPDFGH", l); i >= 0 {
			return Channel(i), nil
		}
	}
	return 0, NewError(ErrUnknownChannel, label, "ParseChannel")
}

//BasisElement is one contracted shell: a channel and its primitives.
//Exponents and Coefs must have the same length.
type BasisElement struct {
	Channel   Channel   `yaml:"channel"`
	Exponents []float64 `yaml:"exponents"`
	Coefs     []float64 `yaml:"coefs"`
}

//NPrim returns the number of primitives in the shell.
func (b BasisElement) NPrim() int {
	return len(b.Coefs)
}

//SpeciesBasis holds the shells centered on one chemical species, in the
//order in which they were used to compute the eigenvectors.
type SpeciesBasis struct {
	Species  string         `yaml:"species"`
	Elements []BasisElement `yaml:"elements"`
}

//BasisSet maps species to their shells. It is a slice, not a map, because the
//order of species and of shells within a species is significant.
type BasisSet []SpeciesBasis

//Lookup returns the shells for species.
func (B BasisSet) Lookup(species string) ([]BasisElement, bool) {
	for _, v := range B {
		if v.Species == species {
			return v.Elements, true
		}
	}
	return nil, false
}

//Validate checks that every shell has as many exponents as coefficients.
func (B BasisSet) Validate() error {
	for _, sp := range B {
		for i, el := range sp.Elements {
			if len(el.Exponents) != len(el.Coefs) {
				return NewError(fmt.Sprintf("%s: shell %d has %d exponents and %d coefficients", ErrShapeMismatch, i, len(el.Exponents), len(el.Coefs)), sp.Species, "BasisSet.Validate")
			}
			if el.Channel < S || el.Channel > H {
				return NewError(ErrUnknownChannel, sp.Species, "BasisSet.Validate")
			}
		}
	}
	return nil
}

//CountAOs returns the number of atomic orbitals on each species.
func (B BasisSet) CountAOs() map[string]int {
	ret := make(map[string]int, len(B))
	for _, sp := range B {
		n := 0
		for _, el := range sp.Elements {
			n += el.Channel.Degeneracy()
		}
		ret[sp.Species] = n
	}
	return ret
}

//NAO returns the total number of atomic orbitals for the atoms in atomOrder.
func (B BasisSet) NAO(atomOrder []string) (int, error) {
	counts := B.CountAOs()
	n := 0
	for _, at := range atomOrder {
		c, ok := counts[at]
		if !ok {
			return 0, NewError(ErrUnknownSpecies, at, "BasisSet.NAO")
		}
		n += c
	}
	return n, nil
}

//MinExponent returns the smallest exponent in the basis, or +Inf for an empty basis.
func (B BasisSet) MinExponent() float64 {
	min := math.Inf(1)
	for _, sp := range B {
		for _, el := range sp.Elements {
			for _, e := range el.Exponents {
				min = math.Min(min, e)
			}
		}
	}
	return min
}

//ExportQWalkBasis renders the basis section QWalk reads along with an orbital file.
func (B BasisSet) ExportQWalkBasis() string {
	outlines := make([]string, 0, 10*len(B))
	for _, sp := range B {
		outlines = append(outlines,
			"basis { ",
			"  "+Capitalize(sp.Species),
			"  aospline",
			"  normtype CRYSTAL",
			"  gamess {")
		for _, el := range sp.Elements {
			outlines = append(outlines, fmt.Sprintf("    %s %d", el.Channel.Label(), el.NPrim()))
			for i := 0; i < el.NPrim(); i++ {
				outlines = append(outlines, fmt.Sprintf("    %d %.16f %.16f", i, el.Exponents[i], el.Coefs[i]))
			}
		}
		outlines = append(outlines, "  }", "}")
	}
	return strings.Join(outlines, "\n")
}
