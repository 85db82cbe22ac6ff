/*
 * trialfunc_test.go, part of goqmc.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//fakeOrbitals stands for an orbital set with nup spin-up orbitals.
type fakeOrbitals struct {
	nup int
}

func (f fakeOrbitals) ExportQWalkOrbitals(orbfn string) string {
	return "orbitals { " + orbfn + " }"
}

func (f fakeOrbitals) NMOSpin(s int) int {
	if s == 0 {
		return f.nup
	}
	return 0
}

//textWF is a wave function section given verbatim.
type textWF string

func (t textWF) ExportQWalkWF(WFOptions) (string, error) { return string(t), nil }

func TestSlater(Te *testing.T) {
	S := NewSlater(fakeOrbitals{nup: 4}, "qw.orb", [][][]int{{{1, 2}, {1}}})
	S.ShiftDownOrb = true
	sec, err := S.ExportQWalkWF(WFOptions{})
	require.NoError(Te, err)
	assert.Equal(Te, strings.Join([]string{
		"slater",
		"orbitals { qw.orb }",
		"detwt { 1.0 }",
		"states {",
		"  # Spin up orbitals detweight 1.0.",
		"  1 2",
		"  # Spin down orbitals detweight 1.0.",
		"  5",
		"}",
	}, "\n"), sec)
	assert.Equal(Te, []int{1}, S.States[0][1], "the states must not be shifted in place")

	sec, err = S.ExportQWalkWF(WFOptions{OptimizeDet: true, RotateOrbs: [][]int{{1, 2}, {3, 4}}})
	require.NoError(Te, err)
	assert.True(Te, strings.HasSuffix(sec, strings.Join([]string{
		"}",
		"optimize_det",
		"optimize_mo",
		"optimize_data { ",
		"  det { ",
		"    orb_group { ",
		"      1 2",
		"    }",
		"    orb_group { ",
		"      3 4",
		"    }",
		"  }",
		"}",
	}, "\n")))

	multi := &Slater{Orbitals: fakeOrbitals{}, States: [][][]int{{{1}, {1}}, {{2}, {2}}}, Weights: []float64{0.9, -0.1}}
	sec, err = multi.ExportQWalkWF(WFOptions{})
	require.NoError(Te, err)
	assert.Contains(Te, sec, "detwt { 0.9 -0.1 }")
	assert.Contains(Te, sec, "  # Spin down orbitals detweight -0.1.\n  2\n}")

	zero := NewSlater(fakeOrbitals{}, "qw.orb", [][][]int{{{0, 1}, {1}}})
	_, err = zero.ExportQWalkWF(WFOptions{})
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrZeroIndex)

	short := NewSlater(fakeOrbitals{}, "qw.orb", [][][]int{{{1}, {1}}, {{2}, {2}}})
	_, err = short.ExportQWalkWF(WFOptions{})
	assert.True(Te, IsConfigError(err))

	_, err = NewSlater(nil, "qw.orb", [][][]int{{{1}, {1}}}).ExportQWalkWF(WFOptions{})
	assert.Error(Te, err)
}

func TestTrialFunc(Te *testing.T) {
	wf := &SlaterJastrow{Slater: textWF("slater"), Jastrow: &Jastrow{Text: "jastrow2\ngroup { }"}}
	tf, err := ExportTrialFunc(wf, WFOptions{})
	require.NoError(Te, err)
	assert.Equal(Te, strings.Join([]string{
		"trialfunc { ",
		"  slater-jastrow",
		"    wf1 {",
		"      slater",
		"    }",
		"    wf2 {",
		"      jastrow2",
		"      group { }",
		"    }",
		"}",
	}, "\n"), tf)

	sec, err := TrialFuncSection(wf, WFOptions{})
	require.NoError(Te, err)
	assert.True(Te, sec.IsSet())
	assert.Equal(Te, tf, sec.String())

	_, err = TrialFuncSection(nil, WFOptions{})
	assert.True(Te, IsConfigError(err))
	_, err = ExportTrialFunc(&SlaterJastrow{Slater: textWF("slater")}, WFOptions{})
	assert.Error(Te, err)

	var unset Section
	assert.False(Te, unset.IsSet())
	assert.True(Te, Text("").IsSet())

	sys, err := SystemSection(hydrogen())
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(sys.String(), "system { molecule"))
	_, err = SystemSection(nil)
	assert.Error(Te, err)
}

func TestDefaultJastrow(Te *testing.T) {
	S := NewSystem()
	S.Positions = []Site{{Species: "Mn"}, {Species: "O"}}
	_, err := S.DefaultJastrow(0)
	assert.True(Te, IsConfigError(err))

	J, err := S.DefaultJastrow(3)
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(J.Text, "jastrow2\ngroup {\n  optimizebasis\n  eebasis {\n    ee\n    cutoff_cusp\n"))
	assert.Contains(Te, J.Text, "  eibasis {\n    Mn\n    polypade\n    beta0 0.2\n    nfunc 3\n    rcut 3.0\n  }\n  eibasis {\n    O\n")
	assert.Contains(Te, J.Text, "  onebody {\n    coefficients { Mn 0.0 0.0 0.0}\n    coefficients { O 0.0 0.0 0.0}\n  }")
	assert.Equal(Te, 2, strings.Count(J.Text, "    cutoff 3.0\n"))
	sec, err := J.ExportQWalkWF(WFOptions{OptimizeDet: true})
	require.NoError(Te, err)
	assert.Equal(Te, J.Text, sec)
}

func TestSeparateJastrow(Te *testing.T) {
	wf := strings.Join([]string{
		"slater-jastrow",
		"wf1 { slater }",
		"wf2 {",
		"jastrow2",
		"group {",
		"  optimizebasis",
		"  eebasis { ee cutoff_cusp }",
		"  twobody_spin {",
		"    freeze",
		"  }",
		"}",
		"}",
	}, "\n")
	name := filepath.Join(Te.TempDir(), "qw.wfout")
	require.NoError(Te, os.WriteFile(name, []byte(wf), 0644))

	J, err := SeparateJastrow(name, false, false)
	require.NoError(Te, err)
	assert.Equal(Te, strings.Join([]string{
		"jastrow2",
		"group {",
		"  eebasis { ee cutoff_cusp }",
		"  twobody_spin {",
		"    freeze",
		"  }",
		"}",
	}, "\n"), J.Text)

	J, err = SeparateJastrow(name, true, true)
	require.NoError(Te, err)
	assert.Contains(Te, J.Text, "  optimizebasis\n")
	assert.NotContains(Te, J.Text, "FREEZE")

	wfout := strings.Join([]string{
		"SLATER-JASTROW",
		"WF2 {",
		"JASTROW2",
		"GROUP {",
		"  ONEBODY {",
		"    COEFFICIENTS { O 0.1 0.2 0.3 }",
		"  }",
		"  TWOBODY {",
		"    COEFFICIENTS { 0.4 0.5 0.6 }",
		"  }",
		"  twobody_spin {",
		"  }",
		"}",
		"}",
	}, "\n")
	outname := filepath.Join(Te.TempDir(), "qw.opt.wfout")
	require.NoError(Te, os.WriteFile(outname, []byte(wfout), 0644))
	J, err = SeparateJastrow(outname, true, true)
	require.NoError(Te, err)
	assert.Contains(Te, J.Text, "  ONEBODY { FREEZE\n")
	assert.Contains(Te, J.Text, "  TWOBODY { FREEZE\n")
	assert.Contains(Te, J.Text, "\n  twobody_spin {\n")
	assert.Equal(Te, 2, strings.Count(J.Text, "FREEZE"))

	_, err = SeparateJastrow(filepath.Join(Te.TempDir(), "none"), true, false)
	assert.Error(Te, err)
}
