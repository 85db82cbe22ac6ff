/*
 * deck.go, part of goqmc.
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

//Package qwalk writes the input of, and reads the output from, the stages
//of a QWalk quantum Monte Carlo calculation: variance and linear-method
//optimizations, VMC, DMC and postprocessing.
package qwalk

import (
	"go.uber.org/zap"

	qmc "github.com/rmera/goqmc"
)

//deck holds what every QWalk writer needs: the system and trial function
//sections, and whether the deck has been written.
type deck struct {
	Sys       qmc.Section
	TrialFunc qmc.Section
	completed bool
}

//Completed returns true once the deck has been written successfully.
func (D *deck) Completed() bool { return D.completed }

//check returns an error if a section is missing.
func (D *deck) check(caller string) error {
	if !D.TrialFunc.IsSet() {
		return qmc.NewError(qmc.ErrMissingSection, "trialfunc", caller)
	}
	if !D.Sys.IsSet() {
		return qmc.NewError(qmc.ErrMissingSection, "system", caller)
	}
	return nil
}

//write writes text to infile and marks the deck as completed.
func (D *deck) write(infile, text, caller string) error {
	if err := qmc.WriteDeck(infile, text); err != nil {
		return errDecorate(err, caller)
	}
	qmc.Logger().Debug("qwalk input written", zap.String("file", infile), zap.String("method", caller))
	D.completed = true
	return nil
}

//setOptions applies opts to o, which must point to the options struct of
//a writer, keeping o untouched on error.
func setOptions(o any, opts map[string]any, caller string) error {
	if err := qmc.SetOptions(o, opts); err != nil {
		return errDecorate(err, caller)
	}
	return nil
}

func loadOptions(o any, path, caller string) error {
	if err := qmc.LoadOptions(path, o); err != nil {
		return errDecorate(err, caller)
	}
	return nil
}
