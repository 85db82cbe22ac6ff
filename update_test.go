/*
 * update_test.go, part of goqmc.
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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"
)

type stageOptions struct {
	Cutoff  float64    `yaml:"cutoff"`
	KMesh   [3]int     `yaml:"kmesh"`
	Levels  []int      `yaml:"levshift"`
	LatVecs *mat.Dense `yaml:"-"`
	hidden  int
}

type otherOptions struct {
	Cutoff float64 `yaml:"cutoff"`
	Spin   bool    `yaml:"spin"`
}

type badTypeOptions struct {
	Cutoff int
}

func TestMergeRefused(Te *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	target := stageOptions{Cutoff: 0}
	updated, diags, err := Merge(&target, stageOptions{Cutoff: 1}, nil, nil)
	require.NoError(Te, err)
	assert.False(Te, updated)
	assert.Equal(Te, []Diagnostic{{Field: "Cutoff", Reason: ReasonRefused}}, diags)
	assert.Equal(Te, 0.0, target.Cutoff)
	assert.Equal(Te, 1, logs.Len())
	assert.Equal(Te, "Cutoff: "+ReasonRefused, diags[0].String())
}

func TestMergeAllowed(Te *testing.T) {
	target := stageOptions{Cutoff: 0, hidden: 3}
	updated, diags, err := Merge(&target, &stageOptions{Cutoff: 1, KMesh: [3]int{4, 4, 4}, hidden: 5}, nil, []string{"cutoff", "KMesh"})
	require.NoError(Te, err)
	assert.True(Te, updated)
	assert.Empty(Te, diags)
	assert.Equal(Te, 1.0, target.Cutoff)
	assert.Equal(Te, [3]int{4, 4, 4}, target.KMesh)
	assert.Equal(Te, 3, target.hidden)
}

func TestMergeMissingAndSkipped(Te *testing.T) {
	target := stageOptions{Cutoff: 2}
	updated, diags, err := Merge(&target, otherOptions{Cutoff: 5, Spin: true}, []string{"cutoff"}, []string{"spin"})
	require.NoError(Te, err)
	assert.False(Te, updated)
	assert.Equal(Te, []Diagnostic{{Field: "Spin", Reason: ReasonMissing}}, diags)
	assert.Equal(Te, 2.0, target.Cutoff)

	_, diags, err = Merge(&target, badTypeOptions{Cutoff: 2}, nil, nil)
	require.NoError(Te, err)
	assert.Equal(Te, []Diagnostic{{Field: "Cutoff", Reason: ReasonBadType}}, diags)
}

func TestMergeDeepEquality(Te *testing.T) {
	target := stageOptions{LatVecs: mat.NewDense(2, 2, []float64{1, 2, 3, 4})}
	source := stageOptions{LatVecs: mat.NewDense(2, 2, []float64{1, 2, 3, 4}), Levels: []int{}}
	updated, diags, err := Merge(&target, source, nil, nil)
	require.NoError(Te, err)
	assert.False(Te, updated)
	assert.Empty(Te, diags)

	source.LatVecs.Set(0, 0, 7)
	_, diags, err = Merge(&target, source, nil, nil)
	require.NoError(Te, err)
	assert.Equal(Te, []Diagnostic{{Field: "LatVecs", Reason: ReasonRefused}}, diags)

	assert.True(Te, DeepEqual(mat.NewCDense(1, 1, []complex128{1i}), mat.NewCDense(1, 1, []complex128{1i})))
	assert.False(Te, DeepEqual(mat.NewCDense(1, 1, nil), mat.NewCDense(1, 2, nil)))
}

func TestMergeNotStruct(Te *testing.T) {
	target := stageOptions{}
	_, _, err := Merge(target, stageOptions{}, nil, nil)
	assert.True(Te, IsConfigError(err))
	_, _, err = Merge(&target, 3, nil, nil)
	assert.True(Te, IsConfigError(err))
}

type loopOptions struct {
	Iterations int                `yaml:"iterations"`
	Tags       map[string]float64 `yaml:"tags"`
	Zeta       int                `yaml:"zeta"`
	Name       string
	Internal   int `yaml:"-"`
}

func TestOptionNames(Te *testing.T) {
	names, err := OptionNames(&loopOptions{})
	require.NoError(Te, err)
	assert.Equal(Te, []string{"iterations", "tags", "zeta", "name"}, names)
	_, err = OptionNames(loopOptions{})
	assert.Error(Te, err)
}

func TestSetOptions(Te *testing.T) {
	o := loopOptions{Iterations: 10, Tags: map[string]float64{"a": 1}}
	require.NoError(Te, SetOptions(&o, map[string]any{"iterations": 5, "name": "run"}))
	assert.Equal(Te, 5, o.Iterations)
	assert.Equal(Te, "run", o.Name)
	assert.Equal(Te, map[string]float64{"a": 1}, o.Tags)

	err := SetOptions(&o, map[string]any{"iterations": 6, "bogus": 1})
	require.Error(Te, err)
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, "bogus", e.Field())
	assert.Equal(Te, 5, o.Iterations)

	err = SetOptions(&o, map[string]any{"tags": map[string]any{"b": 2.0}, "zeta": "many"})
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, "zeta", e.Field())
	assert.Equal(Te, map[string]float64{"a": 1}, o.Tags)
	assert.Equal(Te, 0, o.Zeta)

	assert.Error(Te, SetOptions(&o, map[string]any{"internal": 1}))
}

func TestLoadOptions(Te *testing.T) {
	dir := Te.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(Te, os.WriteFile(good, []byte("iterations: 3\ntags:\n  c: 0.5\n"), 0644))
	var o loopOptions
	require.NoError(Te, LoadOptions(good, &o))
	assert.Equal(Te, 3, o.Iterations)
	assert.Equal(Te, map[string]float64{"c": 0.5}, o.Tags)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(Te, os.WriteFile(bad, []byte("iteration: 3\n"), 0644))
	err := LoadOptions(bad, &o)
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, bad, e.FileName())
	assert.Equal(Te, "iteration", e.Field())
	assert.True(Te, e.Critical())

	assert.Error(Te, LoadOptions(filepath.Join(dir, "none.yaml"), &o))
}
