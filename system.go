/*
 * system.go, part of goqmc.
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
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Site is an atom in the system. Abc are fractional coordinates (periodic
//systems only) and Xyz Cartesian coordinates in bohr.
type Site struct {
	Species string     `yaml:"species"`
	Abc     [3]float64 `yaml:"abc"`
	Xyz     [3]float64 `yaml:"xyz"`
}

//LatticeParams are the cell lengths (Angstrom) and angles (degrees).
type LatticeParams struct {
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	C     float64 `yaml:"c"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
}

//Vectors returns the lattice vectors (rows, Angstrom) for the parameters,
//with the c vector along z.
func (L LatticeParams) Vectors() *mat.Dense {
	alpha, beta, gamma := L.Alpha*Deg2Rad, L.Beta*Deg2Rad, L.Gamma*Deg2Rad
	val := (math.Cos(alpha)*math.Cos(beta) - math.Cos(gamma)) / (math.Sin(alpha) * math.Sin(beta))
	val = math.Max(-1, math.Min(1, val))
	gammaStar := math.Acos(val)
	return mat.NewDense(3, 3, []float64{
		L.A * math.Sin(beta), 0, L.A * math.Cos(beta),
		-L.B * math.Sin(alpha) * math.Cos(gammaStar), L.B * math.Sin(alpha) * math.Sin(gammaStar), L.B * math.Cos(alpha),
		0, 0, L.C,
	})
}

//System holds the atoms of a calculation, their pseudopotentials, the spin
//and, for periodic systems, the lattice. A nil LatVecs means a finite system.
type System struct {
	Positions     []Site                      `yaml:"positions"`
	Pseudo        map[string]*Pseudopotential `yaml:"pseudo"`
	GroupNumber   int                         `yaml:"group_number"`
	Params        LatticeParams               `yaml:"lattice"`
	LatVecs       *mat.Dense                  `yaml:"-"`
	NSpin         [2]int                      `yaml:"nspin"`
	CutoffDivider float64                     `yaml:"cutoff_divider"`
	KPoint        [3]float64                  `yaml:"kpoint"`
}

//NewSystem returns an empty finite system with symmetry group 1.
func NewSystem() *System {
	return &System{Pseudo: make(map[string]*Pseudopotential), GroupNumber: 1, CutoffDivider: 7.5}
}

//Periodic returns true if the system has lattice vectors.
func (S *System) Periodic() bool {
	return S.LatVecs != nil
}

//SetLattice makes the system periodic with the given cell. The lattice
//vectors are stored in bohr.
func (S *System) SetLattice(p LatticeParams) {
	S.Params = p
	v := p.Vectors()
	v.Scale(Bohr, v)
	S.LatVecs = v
}

//AddFractional adds an atom at the fractional coordinates abc. The system must be periodic.
func (S *System) AddFractional(species string, abc [3]float64) error {
	if !S.Periodic() {
		return NewError(ErrNotPeriodic, species, "AddFractional")
	}
	var xyz [3]float64
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			xyz[j] += abc[i] * S.LatVecs.At(i, j)
		}
	}
	S.Positions = append(S.Positions, Site{Species: species, Abc: abc, Xyz: xyz})
	return nil
}

//Species returns the species in the system in order of first appearance.
func (S *System) Species() []string {
	ret := make([]string, 0, 4)
	for _, p := range S.Positions {
		if !isInString(ret, p.Species) {
			ret = append(ret, p.Species)
		}
	}
	return ret
}

//pseudoOrder lists the species with a pseudopotential: those in the system
//first, then any others in alphabetical order.
func (S *System) pseudoOrder() []string {
	ret := make([]string, 0, len(S.Pseudo))
	for _, sp := range S.Species() {
		if _, ok := S.Pseudo[sp]; ok {
			ret = append(ret, sp)
		}
	}
	extra := make([]string, 0)
	for sp := range S.Pseudo {
		if !isInString(ret, sp) {
			extra = append(extra, sp)
		}
	}
	sort.Strings(extra)
	return append(ret, extra...)
}

//LookupPseudopotentials fills S.Pseudo from lib for every species in the
//system, or only for the ones given.
func (S *System) LookupPseudopotentials(lib *Library, species ...string) error {
	if len(species) == 0 {
		species = S.Species()
	}
	if S.Pseudo == nil {
		S.Pseudo = make(map[string]*Pseudopotential)
	}
	for _, sp := range species {
		p, err := lib.Pseudo(sp)
		if err != nil {
			return errDecorate(err, "LookupPseudopotentials")
		}
		S.Pseudo[sp] = p
	}
	return nil
}

//SpaceGroupFormat returns the lattice parameters Crystal expects for the
//given space group, in order: all six for triclinic groups, down to a
//single length for cubic ones.
func SpaceGroupFormat(group int, p LatticeParams) ([]float64, error) {
	switch {
	case group >= 1 && group < 3:
		return []float64{p.A, p.B, p.C, p.Alpha, p.Beta, p.Gamma}, nil
	case group >= 3 && group < 16:
		return []float64{p.A, p.B, p.C, p.Beta}, nil
	case group >= 16 && group < 75:
		return []float64{p.A, p.B, p.C}, nil
	case group >= 75 && group < 195:
		return []float64{p.A, p.C}, nil
	case group >= 195 && group < 231:
		return []float64{p.A}, nil
	}
	return nil, NewError(fmt.Sprintf("%s %d", ErrBadGroup, group), "group_number", "SpaceGroupFormat")
}

//ExportCrystalGeom returns the lines of the Crystal geometry section.
//supercell may be nil.
func (S *System) ExportCrystalGeom(supercell [][]int) ([]string, error) {
	if !S.Periodic() {
		return nil, NewError(ErrNotPeriodic, "lattice", "ExportCrystalGeom")
	}
	params, err := SpaceGroupFormat(S.GroupNumber, S.Params)
	if err != nil {
		return nil, errDecorate(err, "ExportCrystalGeom")
	}
	geomlines := []string{"CRYSTAL", "0 0 0",
		strconv.Itoa(S.GroupNumber),
		FormatFloats(params),
		strconv.Itoa(len(S.Positions))}
	for _, site := range S.Positions {
		code, err := CrystalCode(site.Species)
		if err != nil {
			return nil, errDecorate(err, "ExportCrystalGeom")
		}
		geomlines = append(geomlines, fmt.Sprintf("%d %g %g %g", code, site.Abc[0], site.Abc[1], site.Abc[2]))
	}
	if supercell != nil {
		geomlines = append(geomlines, "SUPERCELL")
		for _, row := range supercell {
			geomlines = append(geomlines, FormatInts(row))
		}
	}
	return geomlines, nil
}

//signed pads a positive number with a leading space, as a "% " verb would.
func signed(f float64) string {
	s := FormatFloat(f)
	if !strings.HasPrefix(s, "-") {
		s = " " + s
	}
	return s
}

func triple(v [3]float64) string {
	return fmt.Sprintf("%-15s %-15s %-15s", signed(v[0]), signed(v[1]), signed(v[2]))
}

//ExportQWalkSys renders the system section, followed by one pseudo section
//per species.
func (S *System) ExportQWalkSys() (string, error) {
	outlines := make([]string, 0, 20+len(S.Positions))
	nspin := fmt.Sprintf("  nspin { %d %d }", S.NSpin[0], S.NSpin[1])
	if S.Periodic() {
		outlines = append(outlines, "system { periodic", nspin, "  latticevec {")
		for i := 0; i < 3; i++ {
			outlines = append(outlines, "    "+triple([3]float64{S.LatVecs.At(i, 0), S.LatVecs.At(i, 1), S.LatVecs.At(i, 2)}))
		}
		outlines = append(outlines,
			"  }",
			"  origin { 0 0 0 }",
			fmt.Sprintf("  cutoff_divider %s", FormatFloat(S.CutoffDivider)),
			fmt.Sprintf("  kpoint { %4s   %4s   %4s }", FormatFloat(S.KPoint[0]), FormatFloat(S.KPoint[1]), FormatFloat(S.KPoint[2])))
	} else {
		outlines = append(outlines, "system { molecule", nspin)
	}
	for _, site := range S.Positions {
		pp, ok := S.Pseudo[site.Species]
		if !ok {
			return "", NewError(ErrNoPseudopotential, site.Species, "ExportQWalkSys")
		}
		outlines = append(outlines, fmt.Sprintf("  atom { %s %s coor %s }", site.Species, FormatFloat(pp.CoreCharge), triple(site.Xyz)))
	}
	outlines = append(outlines, "}")
	for _, species := range S.pseudoOrder() {
		pp := S.Pseudo[species]
		if err := pp.CheckChannels(species); err != nil {
			return "", errDecorate(err, "ExportQWalkSys")
		}
		counts := make([]int, 0, maxPseudoChannel+1)
		for _, c := range pp.NonLocalCounts() {
			if c > 0 {
				counts = append(counts, c)
			}
		}
		numTypes := 1 + len(counts)
		aip := 6
		if numTypes > 2 {
			aip = 12
		}
		counts = append(counts, len(pp.Local))
		outlines = append(outlines,
			"pseudo {",
			"  "+species,
			fmt.Sprintf("  aip %d", aip),
			fmt.Sprintf("  basis { %s", species),
			"    rgaussian",
			"    oldqmc {",
			fmt.Sprintf("      0.0 %d", numTypes),
			"      "+FormatInts(counts))
		for _, g := range append(append([]Gaussian{}, pp.NonLocal...), pp.Local...) {
			outlines = append(outlines, fmt.Sprintf("      %d   %-12s %-12s", g.RToN+2, FormatFloat(g.Exp), signed(g.Coef)))
		}
		outlines = append(outlines, "    }", "  }", "}")
	}
	return strings.Join(outlines, "\n") + "\n", nil
}

//BasisCutoff returns the largest radius a basis function may have in the
//cell: slightly under half the smallest distance between opposite faces.
func BasisCutoff(latvecs mat.Matrix) float64 {
	v := make([]r3.Vec, 3)
	for i := range v {
		v[i] = r3.Vec{X: latvecs.At(i, 0), Y: latvecs.At(i, 1), Z: latvecs.At(i, 2)}
	}
	cross01 := r3.Cross(v[0], v[1])
	cross12 := r3.Cross(v[1], v[2])
	cross02 := r3.Cross(v[0], v[2])
	heights := []float64{
		math.Abs(r3.Dot(v[0], cross12) / r3.Norm(cross12)),
		math.Abs(r3.Dot(v[1], cross02) / r3.Norm(cross02)),
		math.Abs(r3.Dot(v[2], cross01) / r3.Norm(cross01)),
	}
	return math.Min(heights[0], math.Min(heights[1], heights[2])) / cutoffDividerSafety
}

//FindCutoffDivider returns the cutoff divider for a periodic system whose
//most diffuse basis function has exponent minExp.
func FindCutoffDivider(latvecs mat.Matrix, minExp float64) float64 {
	cutoffLength := math.Sqrt(-math.Log(basisTolerance) / minExp)
	return BasisCutoff(latvecs) * 2.0 / cutoffLength
}

//ReadXYZ reads a molecule from XYZ data (coordinates in Angstrom).
//The returned system is finite and has no pseudopotentials yet.
func ReadXYZ(r io.Reader) (*System, error) {
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, NewFileError("Ill formatted XYZ data", "", "ReadXYZ", true)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, NewFileError("Ill formatted XYZ data", "", "ReadXYZ", true)
	}
	if _, err = xyz.ReadString('\n'); err != nil { //the comment line
		return nil, NewFileError("Ill formatted XYZ data", "", "ReadXYZ", true)
	}
	S := NewSystem()
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, NewFileError(fmt.Sprintf("missing atom %d", i+1), "", "ReadXYZ", true)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, NewFileError(fmt.Sprintf("line %d ill formed", i+3), "", "ReadXYZ", true)
		}
		site := Site{Species: Capitalize(fields[0])}
		for j := 0; j < 3; j++ {
			c, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, NewFileError(err.Error(), "", "ReadXYZ", true)
			}
			site.Xyz[j] = c * Bohr
		}
		S.Positions = append(S.Positions, site)
	}
	return S, nil
}
