/*
 * conversion.go, part of goqmc.
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

//This provides useful conversion factors and other constants

//Conversions
const (
	Bohr    = 1.88972598858 //bohr per Angstrom
	A2Bohr  = Bohr
	Bohr2A  = 1 / Bohr
	Deg2Rad = 0.017453292519943295
)

//Others
const (
	//cutoffDividerSafety keeps the basis cutoff strictly below half the
	//smallest cell height.
	cutoffDividerSafety = 2.000001
	//basisTolerance is the value at which a Gaussian tail is considered zero
	//when computing the cutoff divider.
	basisTolerance = 1e-8
)
