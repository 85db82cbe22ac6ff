/*
 * interfaces.go, part of goqmc.
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

//WaveFunction is anything that can render a QWalk wave function section.
type WaveFunction interface {
	ExportQWalkWF(opts WFOptions) (string, error)
}

//OrbitalExporter is the part of Orbitals a Slater determinant needs.
type OrbitalExporter interface {
	//ExportQWalkOrbitals renders the orbitals section pointing to orbfn.
	ExportQWalkOrbitals(orbfn string) string

	//NMOSpin returns the number of orbitals in spin channel s.
	NMOSpin(s int) int
}

//SystemExporter is anything that can render a QWalk system section, such as *System.
type SystemExporter interface {
	ExportQWalkSys() (string, error)
}

//Prober reports the state of the external process running a stage.
type Prober interface {
	CheckStatus() JobState
}

//Completer is the part of a Reader the status resolver needs.
type Completer interface {
	Completed() bool
}

//Reader parses the output of a stage. Collect can be called any number of
//times; every call re-reads outfile and recomputes Completed. Unreadable or
//truncated output is reported through the returned status, never as an error.
type Reader interface {
	Completer
	Collect(outfile string) Status
}

//Writer renders the input deck of a stage. Completed becomes true only
//once WriteInput has written the deck successfully.
type Writer interface {
	Completer
	WriteInput(infile string) error
}
