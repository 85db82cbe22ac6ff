/*
 * files.go, part of goqmc.
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
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstdCloser lets a *zstd.Decoder, whose Close returns nothing, be an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//stacked closes the decompressor, then the file beneath it.
type stacked struct {
	io.ReadCloser
	f *os.File
}

func (s stacked) Close() error {
	err := s.ReadCloser.Close()
	if ferr := s.f.Close(); err == nil {
		err = ferr
	}
	return err
}

//OpenOutput opens the output file name for reading. Files ending in .gz
//or .zst are decompressed on the fly.
func OpenOutput(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var r io.ReadCloser
	switch {
	case strings.HasSuffix(name, ".gz"):
		r, err = gzip.NewReader(bufio.NewReader(f))
	case strings.HasSuffix(name, ".zst"):
		var d *zstd.Decoder
		d, err = zstd.NewReader(bufio.NewReader(f))
		r = zstdCloser{d}
	default:
		return f, nil
	}
	if err != nil {
		f.Close()
		return nil, NewFileError("Can't decompress "+err.Error(), name, "OpenOutput", false)
	}
	return stacked{r, f}, nil
}

//ReadLines returns the lines of the output file name, decompressed if
//needed. A file that is not valid text gives an error.
func ReadLines(name string) ([]string, error) {
	r, err := OpenOutput(name)
	if err != nil {
		return nil, errDecorate(err, "ReadLines")
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewFileError(err.Error(), name, "ReadLines", false)
	}
	if !utf8.Valid(data) {
		return nil, NewFileError("not a text file", name, "ReadLines", false)
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	if len(data) == 0 {
		return []string{}, nil
	}
	return strings.Split(string(data), "\n"), nil
}

//ReadXYZFile reads a molecule from the XYZ file xyzname. See ReadXYZ.
func ReadXYZFile(xyzname string) (*System, error) {
	f, err := OpenOutput(xyzname)
	if err != nil {
		return nil, NewFileError(err.Error(), xyzname, "ReadXYZFile", true)
	}
	defer f.Close()
	S, err := ReadXYZ(f)
	if e, ok := err.(Error); ok {
		e.filename = xyzname
		return nil, errDecorate(e, "ReadXYZFile")
	}
	return S, err
}

//WriteDeck writes the input deck text to path, creating or truncating it.
func WriteDeck(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return NewFileError(err.Error(), path, "WriteDeck", true)
	}
	if _, err = f.WriteString(text); err != nil {
		f.Close()
		return NewFileError(err.Error(), path, "WriteDeck", true)
	}
	if err = f.Close(); err != nil {
		return NewFileError(err.Error(), path, "WriteDeck", true)
	}
	return nil
}
