/*
 * handy.go, part of goqmc.
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

package qwalk

import (
	"os"
	"strconv"
	"strings"

	qmc "github.com/rmera/goqmc"
)

func errDecorate(err error, caller string) error {
	return qmc.DecorateError(err, "qwalk."+caller)
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

//replaceExt replaces the trailing ".o" of a QWalk output name with ext.
//Other names are returned unchanged.
func replaceExt(outfile, ext string) string {
	if strings.HasSuffix(outfile, ".o") {
		return strings.TrimSuffix(outfile, ".o") + ext
	}
	return outfile
}

//tokenAt parses the i-th field of line as a float.
func tokenAt(line string, i int) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) <= i {
		return 0, false
	}
	f, err := strconv.ParseFloat(fields[i], 64)
	return f, err == nil
}

//averagesLines indents every line of the averages section, including the
//single empty line of an empty section.
func averagesLines(averages string) []string {
	return qmc.Indent(averages, "  ")
}
