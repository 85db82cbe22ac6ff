/*
 * doc.go, part of goqmc.
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

/*Package qmc is the core of goQMC, a library to prepare, and follow up, the
stages of a quantum Monte Carlo calculation on a molecule or a crystal.

A typical calculation goes through a periodic DFT run with Crystal, whose
orbitals are translated to QWalk's conventions, then through variance and
linear-method optimizations of a Slater-Jastrow trial function, and ends
with VMC and DMC runs. Each stage has a Writer, that renders its input
deck, and a Reader, that parses the output and decides whether the stage
is converged or has to be run again.

	**Capabilities**

    Periodic table, angular momentum channels, and BFD pseudopotential and
	basis libraries.

    Normalization of orbital coefficients from Crystal's spherical harmonics
	to QWalk's, and the QWalk orbital file.

    QWalk system, basis, orbital, Slater, Jastrow and Slater-Jastrow
	sections.

    Status resolution for a stage, from its reader, the state of the job
	and the file system.

    Audited merging of configuration objects, for resubmitting corrected jobs.

The writers and readers live in the crystal and qwalk subpackages.
Plots of optimization traces are in qmcplot, and the qmcstat command
follows a set of stages from the command line.

Library packages log through Logger, which discards everything until a
logger is installed with SetLogger.
*/
package qmc
