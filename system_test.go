/*
 * system_test.go, part of goqmc.
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
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func hydrogen() *System {
	S := NewSystem()
	S.NSpin = [2]int{1, 0}
	S.Positions = []Site{{Species: "H"}}
	S.Pseudo["H"] = &Pseudopotential{CoreCharge: 1, Local: []Gaussian{{Exp: 1, Coef: -1, RToN: -1}}}
	return S
}

func TestExportQWalkSysMolecule(Te *testing.T) {
	S := hydrogen()
	sys, err := S.ExportQWalkSys()
	require.NoError(Te, err)
	zero := " 0.0" + strings.Repeat(" ", 11)
	expected := strings.Join([]string{
		"system { molecule",
		"  nspin { 1 0 }",
		"  atom { H 1.0 coor " + zero + " " + zero + " " + zero + " }",
		"}",
		"pseudo {",
		"  H",
		"  aip 6",
		"  basis { H",
		"    rgaussian",
		"    oldqmc {",
		"      0.0 1",
		"      1",
		"      1   1.0" + strings.Repeat(" ", 10) + "-1.0" + strings.Repeat(" ", 8),
		"    }",
		"  }",
		"}",
	}, "\n") + "\n"
	assert.Equal(Te, expected, sys)

	S.Positions = append(S.Positions, Site{Species: "He"})
	_, err = S.ExportQWalkSys()
	assert.True(Te, IsConfigError(err))
}

func TestExportQWalkSysNonLocal(Te *testing.T) {
	S := hydrogen()
	S.Pseudo["H"].NonLocal = []Gaussian{{Angular: 0, Exp: 2, Coef: 3}, {Angular: 1, Exp: 1, Coef: 0.5}}
	sys, err := S.ExportQWalkSys()
	require.NoError(Te, err)
	assert.Contains(Te, sys, "\n  aip 12\n")
	assert.Contains(Te, sys, "\n      0.0 3\n      1 1 1\n")

	S.Pseudo["H"].NonLocal = []Gaussian{{Angular: 1, Exp: 1, Coef: 0.5}}
	_, err = S.ExportQWalkSys()
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrChannelGap)

	S.Pseudo["H"].NonLocal = []Gaussian{{Angular: 1}, {Angular: 0}}
	_, err = S.ExportQWalkSys()
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrChannelOrder)
}

func TestExportQWalkSysPeriodic(Te *testing.T) {
	S := hydrogen()
	S.SetLattice(LatticeParams{A: 3, B: 3, C: 3, Alpha: 90, Beta: 90, Gamma: 90})
	require.True(Te, S.Periodic())
	sys, err := S.ExportQWalkSys()
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(sys, "system { periodic\n  nspin { 1 0 }\n  latticevec {\n"))
	assert.Contains(Te, sys, "\n  origin { 0 0 0 }\n  cutoff_divider 7.5\n  kpoint {  0.0    0.0    0.0 }\n")
	assert.InDelta(Te, 3*Bohr, S.LatVecs.At(2, 2), 1e-12)
}

func TestSpaceGroupFormat(Te *testing.T) {
	p := LatticeParams{A: 1, B: 2, C: 3, Alpha: 80, Beta: 85, Gamma: 95}
	cases := []struct {
		group int
		want  []float64
	}{
		{1, []float64{1, 2, 3, 80, 85, 95}},
		{14, []float64{1, 2, 3, 85}},
		{62, []float64{1, 2, 3}},
		{194, []float64{1, 3}},
		{225, []float64{1}},
	}
	for _, c := range cases {
		got, err := SpaceGroupFormat(c.group, p)
		require.NoError(Te, err)
		assert.Equal(Te, c.want, got, c.group)
	}
	for _, g := range []int{0, 231} {
		_, err := SpaceGroupFormat(g, p)
		assert.True(Te, IsConfigError(err), g)
	}
}

func TestCrystalGeom(Te *testing.T) {
	S := NewSystem()
	assert.Error(Te, S.AddFractional("O", [3]float64{}))
	_, err := S.ExportCrystalGeom(nil)
	assert.Error(Te, err)

	S.LatVecs = mat.NewDense(3, 3, []float64{2, 0, 0, 0, 2, 0, 0, 0, 2})
	S.Params = LatticeParams{A: 1.058, B: 1.058, C: 1.058, Alpha: 90, Beta: 90, Gamma: 90}
	S.GroupNumber = 221
	require.NoError(Te, S.AddFractional("O", [3]float64{0.5, 0.5, 0.5}))
	assert.Equal(Te, [3]float64{1, 1, 1}, S.Positions[0].Xyz)
	geom, err := S.ExportCrystalGeom([][]int{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	require.NoError(Te, err)
	assert.Equal(Te, []string{"CRYSTAL", "0 0 0", "221", "1.058", "1", "208 0.5 0.5 0.5",
		"SUPERCELL", "2 0 0", "0 2 0", "0 0 2"}, geom)
}

func TestBasisCutoff(Te *testing.T) {
	cell := mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10})
	assert.InDelta(Te, 10/2.000001, BasisCutoff(cell), 1e-12)
	//a sheared cell is limited by its smallest height, not its vector lengths
	sheared := mat.NewDense(3, 3, []float64{10, 0, 0, 5, 5, 0, 0, 0, 10})
	assert.InDelta(Te, 5/2.000001, BasisCutoff(sheared), 1e-12)

	minExp := -math.Log(basisTolerance)
	assert.InDelta(Te, 2*BasisCutoff(cell), FindCutoffDivider(cell, minExp), 1e-12)
}

func TestSpecies(Te *testing.T) {
	S := NewSystem()
	S.Positions = []Site{{Species: "O"}, {Species: "H"}, {Species: "O"}, {Species: "Mn"}}
	assert.Equal(Te, []string{"O", "H", "Mn"}, S.Species())
	S.Pseudo = map[string]*Pseudopotential{"Mn": {}, "O": {}, "Zn": {}, "C": {}}
	assert.Equal(Te, []string{"O", "Mn", "C", "Zn"}, S.pseudoOrder())
}

func TestReadXYZ(Te *testing.T) {
	S, err := ReadXYZ(strings.NewReader("2\nwater fragment\nO 0 0 0\nh 0.0 0.0 1.0"))
	require.NoError(Te, err)
	require.Len(Te, S.Positions, 2)
	assert.Equal(Te, "H", S.Positions[1].Species)
	assert.InDelta(Te, Bohr, S.Positions[1].Xyz[2], 1e-12)
	assert.False(Te, S.Periodic())

	for _, bad := range []string{"", "two\n\n", "2\n\nO 0 0 0\n", "1\n\nO 0 0\n", "1\n\nO 0 x 0\n"} {
		_, err := ReadXYZ(strings.NewReader(bad))
		assert.Error(Te, err, bad)
	}
}

func TestAtomicData(Te *testing.T) {
	z, err := AtomicNumber("mn")
	require.NoError(Te, err)
	assert.Equal(Te, 25, z)
	s, err := Symbol(8)
	require.NoError(Te, err)
	assert.Equal(Te, "O", s)
	assert.True(Te, IsTransitionMetal("FE"))
	assert.False(Te, IsTransitionMetal("O"))
	_, err = CrystalCode("Xx")
	assert.Error(Te, err)
}
