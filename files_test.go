/*
 * files_test.go, part of goqmc.
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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = "TOTAL ENERGY\n  -1.0\n"

func TestReadLinesCompressed(Te *testing.T) {
	dir := Te.TempDir()

	zname := filepath.Join(dir, "crys.out.zst")
	f, err := os.Create(zname)
	require.NoError(Te, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(Te, err)
	_, err = io.WriteString(zw, sampleOutput)
	require.NoError(Te, err)
	require.NoError(Te, zw.Close())
	require.NoError(Te, f.Close())

	gname := filepath.Join(dir, "crys.out.gz")
	f, err = os.Create(gname)
	require.NoError(Te, err)
	gw := gzip.NewWriter(f)
	_, err = io.WriteString(gw, sampleOutput)
	require.NoError(Te, err)
	require.NoError(Te, gw.Close())
	require.NoError(Te, f.Close())

	plain := filepath.Join(dir, "crys.out")
	require.NoError(Te, WriteDeck(plain, sampleOutput))

	for _, name := range []string{zname, gname, plain} {
		lines, err := ReadLines(name)
		require.NoError(Te, err, name)
		assert.Equal(Te, []string{"TOTAL ENERGY", "  -1.0"}, lines, name)
	}
}

func TestReadLinesErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := ReadLines(filepath.Join(dir, "missing.out"))
	assert.Error(Te, err)

	binary := filepath.Join(dir, "binary.out")
	require.NoError(Te, os.WriteFile(binary, []byte{'o', 'k', 0xff, 0xfe, '\n'}, 0644))
	_, err = ReadLines(binary)
	assert.Error(Te, err)

	fake := filepath.Join(dir, "fake.gz")
	require.NoError(Te, os.WriteFile(fake, []byte("not gzip at all"), 0644))
	_, err = ReadLines(fake)
	assert.Error(Te, err)

	empty := filepath.Join(dir, "empty.out")
	require.NoError(Te, WriteDeck(empty, ""))
	lines, err := ReadLines(empty)
	require.NoError(Te, err)
	assert.Empty(Te, lines)
}

func TestReadXYZFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "h2.xyz")
	require.NoError(Te, WriteDeck(name, "2\nH2\nH 0 0 0\nH 0 0 0.74\n"))
	S, err := ReadXYZFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"H"}, S.Species())

	bad := filepath.Join(Te.TempDir(), "bad.xyz")
	require.NoError(Te, WriteDeck(bad, "3\nH2\nH 0 0 0\n"))
	_, err = ReadXYZFile(bad)
	var e Error
	require.ErrorAs(Te, err, &e)
	assert.Equal(Te, bad, e.FileName())
}
