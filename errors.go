/*
 * errors.go, part of goqmc.
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
	"fmt"
)

//Error is the error type returned by goqmc packages. Configuration errors
//(caller bugs) are always critical. Field names the offending option or
//attribute, if any.
type Error struct {
	message  string
	field    string
	filename string
	deco     []string
	critical bool
}

//NewError builds a critical configuration error about field.
//caller is the name of the function that detected the problem.
func NewError(message, field, caller string) Error {
	return Error{message: message, field: field, deco: []string{caller}, critical: true}
}

//NewFileError builds an error related to the file filename.
func NewFileError(message, filename, caller string, critical bool) Error {
	return Error{message: message, filename: filename, deco: []string{caller}, critical: critical}
}

func (err Error) Error() string {
	msg := err.message
	if err.field != "" {
		msg = fmt.Sprintf("%s: %s", err.field, msg)
	}
	if err.filename != "" {
		msg = fmt.Sprintf("%s (file %s)", msg, err.filename)
	}
	return msg
}

//Decorate adds dec to the decoration slice of the error and returns
//the resulting slice. An empty dec just returns the current slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Field returns the option or attribute the error refers to, or an empty string.
func (err Error) Field() string { return err.field }

//FileName returns the file associated with the error, if any.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//IsConfigError reports whether err (or something it wraps) is a critical goqmc Error.
func IsConfigError(err error) bool {
	var e Error
	if errors.As(err, &e) {
		return e.critical
	}
	return false
}

//Error messages.
const (
	ErrUnknownOption     = "unknown option"
	ErrMissingSection    = "section must be set before rendering input"
	ErrUnknownSpecies    = "species not present in basis"
	ErrShapeMismatch     = "shape mismatch"
	ErrChannelGap        = "non-local pseudopotential channels must be contiguous"
	ErrChannelOrder      = "non-local pseudopotential channels must be in ascending order"
	ErrUnknownChannel    = "unknown angular momentum channel"
	ErrNotPeriodic       = "operation requires a periodic system"
	ErrZeroIndex         = "orbital indices are 1-based, found 0"
	ErrUnknownElement    = "unknown chemical element"
	ErrBadGroup          = "invalid space group number"
	ErrNotStruct         = "expected a pointer to a struct"
	ErrInvalidOption     = "invalid option value"
	ErrNoPseudopotential = "no pseudopotential for species"
)
