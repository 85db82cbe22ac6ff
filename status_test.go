/*
 * status_test.go, part of goqmc.
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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type doneFlag bool

func (d doneFlag) Completed() bool { return bool(d) }

func probe(s JobState) Prober {
	return ProberFunc(func() JobState { return s })
}

func TestResolveStatus(Te *testing.T) {
	dir := Te.TempDir()
	missing := filepath.Join(dir, "qw.vmc.o")
	present := filepath.Join(dir, "qw.dmc.o")
	require.NoError(Te, WriteDeck(present, "output\n"))

	cases := []struct {
		name    string
		done    bool
		job     Prober
		outfile string
		want    Status
	}{
		{"fresh", false, nil, missing, NotStarted},
		{"other, no file", false, probe(JobOther), missing, NotStarted},
		{"queued", false, probe(JobQueued), missing, Queued},
		{"running", false, probe(JobRunning), present, Running},
		{"finished", false, probe(JobOther), present, ReadyForAnalysis},
		{"nil probe", false, nil, present, ReadyForAnalysis},
		{"collected", true, probe(JobOther), present, Done},
		{"done wins", true, probe(JobRunning), missing, Done},
	}
	for _, c := range cases {
		assert.Equal(Te, c.want, ResolveStatus(doneFlag(c.done), c.job, c.outfile), c.name)
	}
	assert.Equal(Te, NotStarted, ResolveStatus(nil, nil, missing))
}

func TestLogger(Te *testing.T) {
	assert.NotNil(Te, Logger())
	l := zap.NewExample()
	SetLogger(l)
	assert.Same(Te, l, Logger())
	SetLogger(nil)
	assert.NotSame(Te, l, Logger())
	assert.NotNil(Te, Logger())
}

func TestErrors(Te *testing.T) {
	err := NewError(ErrUnknownOption, "kmesh", "SetOptions")
	assert.Equal(Te, "kmesh: "+ErrUnknownOption, err.Error())
	assert.True(Te, err.Critical())
	decorated := DecorateError(err, "Writer.SetOptions")
	e, ok := decorated.(Error)
	require.True(Te, ok)
	assert.Equal(Te, []string{"SetOptions", "Writer.SetOptions"}, e.Decorate(""))

	ferr := NewFileError("truncated", "crys.out", "Collect", false)
	assert.Equal(Te, "truncated (file crys.out)", ferr.Error())
	assert.False(Te, IsConfigError(ferr))
	assert.False(Te, IsConfigError(nil))
}
