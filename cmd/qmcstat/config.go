/*
 * config.go, part of goqmc.
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

package main

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	qmc "github.com/rmera/goqmc"
	"github.com/rmera/goqmc/crystal"
	"github.com/rmera/goqmc/qwalk"
)

//config holds the tolerances used to decide whether a stage is complete.
//Each reader section is a mapping of the reader's option names.
type config struct {
	AcceptableSCF float64        `yaml:"acceptable_scf"`
	Variance      map[string]any `yaml:"variance"`
	Linear        map[string]any `yaml:"linear"`
	VMC           map[string]any `yaml:"vmc"`
	DMC           map[string]any `yaml:"dmc"`
}

func defaultConfig() config {
	return config{AcceptableSCF: crystal.DefaultAcceptableSCF}
}

//loadConfig reads a YAML configuration. An empty path gives the defaults.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, qmc.NewFileError(err.Error(), path, "loadConfig", true)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, qmc.NewFileError(err.Error(), path, "loadConfig", true)
	}
	return c, nil
}

//kinds are the stages qmcstat knows how to read.
var kinds = []string{"crystal", "variance", "linear", "vmc", "dmc", "postprocess"}

//stageReader is a reader that can also print what it collected.
type stageReader interface {
	qmc.Reader
	Summary(w io.Writer) error
}

//newReader builds the reader for kind, with the tolerances in c.
func newReader(kind string, c config) (stageReader, error) {
	var r stageReader
	var err error
	switch kind {
	case "crystal":
		r = crystal.NewReader()
	case "variance":
		v := qwalk.NewVarianceReader()
		err = setTolerances(v, c.Variance, kind)
		r = v
	case "linear":
		l := qwalk.NewLinearReader()
		err = setTolerances(l, c.Linear, kind)
		r = l
	case "vmc":
		v := qwalk.NewVMCReader()
		err = setTolerances(&v.MCReader, c.VMC, kind)
		r = v
	case "dmc":
		d := qwalk.NewDMCReader()
		err = setTolerances(&d.MCReader, c.DMC, kind)
		r = d
	case "postprocess":
		r = qwalk.NewPostprocessReader()
	default:
		return nil, qmc.NewError("unknown stage, use one of crystal, variance, linear, vmc, dmc or postprocess", kind, "newReader")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func setTolerances(target any, opts map[string]any, kind string) error {
	if len(opts) == 0 {
		return nil
	}
	if err := qmc.SetOptions(target, opts); err != nil {
		return qmc.DecorateError(err, "setTolerances("+kind+")")
	}
	return nil
}
