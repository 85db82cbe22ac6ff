/*
 * orbitals_test.go, part of goqmc.
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
	"bytes"
	"errors"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func spdBasis() BasisSet {
	return BasisSet{
		{Species: "O", Elements: []BasisElement{
			{Channel: S, Exponents: []float64{5.0, 1.0}, Coefs: []float64{0.3, 0.7}},
			{Channel: P, Exponents: []float64{2.0}, Coefs: []float64{1.0}},
			{Channel: D, Exponents: []float64{0.8}, Coefs: []float64{1.0}},
		}},
		{Species: "H", Elements: []BasisElement{
			{Channel: S, Exponents: []float64{2.0, 0.5}, Coefs: []float64{0.4, 0.6}},
		}},
	}
}

func TestChannels(Te *testing.T) {
	for label, want := range map[string]Channel{"S": S, "p": P, "5D": D, "7F_crystal": F, "g": G} {
		c, err := ParseChannel(label)
		require.NoError(Te, err, label)
		assert.Equal(Te, want, c, label)
	}
	_, err := ParseChannel("Q")
	assert.True(Te, IsConfigError(err))
	assert.Equal(Te, "5D", D.Label())
	assert.Equal(Te, "F", F.String())
	assert.Equal(Te, 7, F.Degeneracy())
}

func TestAOLabels(Te *testing.T) {
	labels, err := AOLabels(spdBasis(), []string{"O"})
	require.NoError(Te, err)
	assert.Equal(Te, []Channel{S, P, P, P, D, D, D, D, D}, labels)

	n, err := spdBasis().NAO([]string{"O", "H", "H"})
	require.NoError(Te, err)
	assert.Equal(Te, 11, n)

	_, err = AOLabels(spdBasis(), []string{"Fe"})
	assert.Error(Te, err)
	assert.Equal(Te, 0.5, spdBasis().MinExponent())
}

func TestNormConstants(Te *testing.T) {
	norms := NormConstants([]Channel{S, P, D, D, D, D, D, D, G})
	assert.InDelta(Te, 1/math.Sqrt(4*math.Pi), norms[0], 1e-15)
	assert.InDelta(Te, math.Sqrt(3/(4*math.Pi)), norms[1], 1e-15)
	assert.Equal(Te, dnorms[0], norms[2])
	assert.Equal(Te, dnorms[4], norms[6])
	//the D sub-states cycle over each shell
	assert.Equal(Te, dnorms[0], norms[7])
	assert.Equal(Te, 1.0, norms[8])
}

func TestNormalize(Te *testing.T) {
	basis := BasisSet{{Species: "H", Elements: []BasisElement{{Channel: S, Exponents: []float64{1}, Coefs: []float64{1}}, {Channel: P, Exponents: []float64{1}, Coefs: []float64{1}}}}}
	eig := Real2Complex(mat.NewDense(1, 4, []float64{1, 1, 1, 1}))
	norm, err := Normalize(eig, basis, []string{"H"})
	require.NoError(Te, err)
	assert.InDelta(Te, snorm, real(norm.At(0, 0)), 1e-15)
	assert.InDelta(Te, pnorm, real(norm.At(0, 3)), 1e-15)
	assert.Equal(Te, complex(1, 0), eig.At(0, 0), "Normalize must not touch its argument")

	same, err := NormalizeInPlace(eig, basis, []string{"H"})
	require.NoError(Te, err)
	assert.Same(Te, eig, same)
	assert.InDelta(Te, snorm, real(eig.At(0, 0)), 1e-15)

	_, err = Normalize(mat.NewCDense(1, 3, nil), basis, []string{"H"})
	assert.True(Te, IsConfigError(err))
}

func testOrbitals() *Orbitals {
	basis := BasisSet{{Species: "H", Elements: []BasisElement{{Channel: S, Exponents: []float64{2.0, 0.5}, Coefs: []float64{0.4, 0.6}}}}}
	return &Orbitals{
		Basis:     basis,
		Eigvecs:   []*mat.CDense{Real2Complex(mat.NewDense(2, 2, []float64{1, 1, 1, -1}))},
		AtomOrder: []string{"H", "H"},
	}
}

func TestOrbFile(Te *testing.T) {
	O := testOrbitals()
	assert.Equal(Te, 2, O.NMO())
	assert.Equal(Te, 2, O.NMOSpin(0))
	assert.Equal(Te, 0, O.NMOSpin(1))
	assert.False(Te, O.IsComplex())

	var b bytes.Buffer
	require.NoError(Te, O.WriteOrbFileTo(&b))
	lines := strings.Split(b.String(), "\n")
	require.Len(Te, lines, 6)
	assert.Equal(Te, "     1     1     1     1", lines[0])
	assert.Equal(Te, "     2     1     2     4", lines[3])
	assert.Equal(Te, "COEFFICIENTS", lines[4])
	coefs := strings.Fields(lines[5])
	require.Len(Te, coefs, 4)
	last, err := strconv.ParseFloat(coefs[3], 64)
	require.NoError(Te, err)
	assert.InDelta(Te, -snorm, last, 1e-12)
	//the receiver is untouched
	assert.Equal(Te, complex(-1, 0), O.Eigvecs[0].At(1, 1))

	sec := O.ExportQWalkOrbitals("qw.orb")
	assert.True(Te, strings.HasPrefix(sec, "orbitals {\n  magnify 1\n  nmo 2\n  orbfile qw.orb\nbasis { \n  H\n  aospline\n  normtype CRYSTAL\n  gamess {\n    S 2\n"))
	assert.True(Te, strings.HasSuffix(sec, "  centers { useglobal }\n}"))

	O.Eigvecs[0].Set(0, 1, complex(0, 1))
	assert.True(Te, O.IsComplex())
	assert.True(Te, strings.HasPrefix(O.ExportQWalkOrbitals("qw.orb"), "corbitals {"))
	b.Reset()
	require.NoError(Te, O.WriteOrbFileTo(&b))
	assert.Contains(Te, b.String(), "(0.000000000000e+00,2.820947917739e-01)")

	O.Eigvecs = append(O.Eigvecs, mat.NewCDense(1, 3, nil))
	assert.Error(Te, O.Validate())
}

//oh2Orbitals is an unrestricted set on O (S, P, D and two F shells) and two
//H (S, P) atoms: 31 AOs, 2 up and 1 down orbitals.
func oh2Orbitals() *Orbitals {
	one := func(c Channel) BasisElement {
		return BasisElement{Channel: c, Exponents: []float64{1.0}, Coefs: []float64{1.0}}
	}
	basis := BasisSet{
		{Species: "O", Elements: []BasisElement{
			{Channel: S, Exponents: []float64{10.0, 2.0}, Coefs: []float64{0.4, 0.6}},
			one(P), one(D), one(F), one(F),
		}},
		{Species: "H", Elements: []BasisElement{one(S), one(P)}},
	}
	O := &Orbitals{Basis: basis, AtomOrder: []string{"O", "H", "H"}}
	for s, nmo := range []int{2, 1} {
		data := make([]float64, nmo*31)
		for i := 0; i < nmo; i++ {
			for j := 0; j < 31; j++ {
				data[i*31+j] = float64((3*s+5*i+7*j)%13-6) / 4
			}
		}
		O.Eigvecs = append(O.Eigvecs, Real2Complex(mat.NewDense(nmo, 31, data)))
	}
	return O
}

func TestOrbFileReference(Te *testing.T) {
	O := oh2Orbitals()
	labels, err := AOLabels(O.Basis, O.AtomOrder)
	require.NoError(Te, err)
	require.Len(Te, labels, 31)
	assert.Equal(Te, []Channel{S, P, P, P, D, D, D, D, D}, labels[:9])
	assert.Equal(Te, []Channel{S, P, P, P, S, P, P, P}, labels[23:])

	var b bytes.Buffer
	require.NoError(Te, O.WriteOrbFileTo(&b))
	expected, err := os.ReadFile("testdata/o_h2.orb")
	require.NoError(Te, err)
	assert.Equal(Te, string(expected), b.String())
}

func TestNormConstantsF(Te *testing.T) {
	labels := make([]Channel, 14)
	for i := range labels {
		labels[i] = F
	}
	norms := NormConstants(labels)
	assert.Equal(Te, fnorms[:], norms[:7])
	assert.Equal(Te, fnorms[:], norms[7:])
	assert.InDelta(Te, math.Sqrt(105/(16*math.Pi)), norms[3], 1e-15)
	assert.InDelta(Te, math.Sqrt(35/(32*math.Pi)), norms[13], 1e-15)
}

func TestNormalizeRoundTrip(Te *testing.T) {
	O := oh2Orbitals()
	labels, err := AOLabels(O.Basis, O.AtomOrder)
	require.NoError(Te, err)
	norms := NormConstants(labels)
	rnd := rand.New(rand.NewSource(7))
	eig := mat.NewCDense(4, len(labels), nil)
	for i := 0; i < 4; i++ {
		for j := range labels {
			eig.Set(i, j, complex(rnd.NormFloat64(), rnd.NormFloat64()))
		}
	}
	norm, err := Normalize(eig, O.Basis, O.AtomOrder)
	require.NoError(Te, err)
	for i := 0; i < 4; i++ {
		for j, k := range norms {
			back := norm.At(i, j) / complex(k, 0)
			assert.InDelta(Te, real(eig.At(i, j)), real(back), 1e-12)
			assert.InDelta(Te, imag(eig.At(i, j)), imag(back), 1e-12)
		}
	}
}

//breakFailer fails on bare line breaks only, like the ones that end each
//row of coefficients.
type breakFailer struct{}

func (breakFailer) Write(p []byte) (int, error) {
	if string(p) == "\n" {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestOrbFileWriteError(Te *testing.T) {
	assert.Error(Te, oh2Orbitals().WriteOrbFileTo(breakFailer{}))
}
