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

package qmc

import (
	"math"
	"strconv"
	"strings"
)

//Some internal convenience functions.

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//errDecorate adds caller to the decorations of err if err is a goqmc Error.
//Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}

//DecorateError adds caller to the decorations of err if err is a goqmc Error.
//It is meant for the subpackages.
func DecorateError(err error, caller string) error {
	return errDecorate(err, caller)
}

//FormatFloat prints f the way the QMC decks have always been printed: the
//shortest representation that round-trips, in fixed notation with at least
//one decimal ("2.0") for exponents from -4 to 15, and in exponent notation
//("1e+16", "1.5e-05") outside that range.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

//FormatFloats joins the formatted values with single spaces.
func FormatFloats(fs []float64) string {
	strs := make([]string, len(fs))
	for i, v := range fs {
		strs[i] = FormatFloat(v)
	}
	return strings.Join(strs, " ")
}

//FormatInts joins the values with single spaces.
func FormatInts(is []int) string {
	strs := make([]string, len(is))
	for i, v := range is {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, " ")
}

//Indent prefixes every line of block with prefix.
func Indent(block, prefix string) []string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return lines
}
