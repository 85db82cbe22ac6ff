/*
 * status.go, part of goqmc.
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
	"os"

	"go.uber.org/zap"
)

//Status is the state of a calculation stage. Readers return one of
//StatusOK, StatusRestart, StatusKilled or StatusUnknown from Collect;
//ResolveStatus returns one of the lifecycle states.
type Status string

//Reader statuses.
const (
	StatusOK      Status = "ok"
	StatusRestart Status = "restart"
	StatusKilled  Status = "killed"
	StatusUnknown Status = "unknown"
)

//Lifecycle states.
const (
	NotStarted       Status = "not_started"
	Running          Status = "running"
	Queued           Status = "queued"
	ReadyForAnalysis Status = "ready_for_analysis"
	Done             Status = "done"
)

//JobState is what the job runner knows about the external process.
type JobState string

const (
	JobRunning JobState = "running"
	JobQueued  JobState = "queued"
	JobOther   JobState = "other"
)

//ProberFunc adapts a function to the Prober interface.
type ProberFunc func() JobState

//CheckStatus calls f.
func (f ProberFunc) CheckStatus() JobState { return f() }

//ResolveStatus combines what the reader, the process probe and the file
//system know about a stage:
//a completed reader means Done, then a running or queued process is reported
//as such, then a missing outfile means NotStarted. Anything else is
//ReadyForAnalysis: the output must be collected.
//A nil probe counts as JobOther.
func ResolveStatus(r Completer, probe Prober, outfile string) Status {
	if r != nil && r.Completed() {
		return Done
	}
	if probe != nil {
		switch probe.CheckStatus() {
		case JobRunning:
			return Running
		case JobQueued:
			return Queued
		}
	}
	if _, err := os.Stat(outfile); err != nil {
		Logger().Debug("output not found", zap.String("file", outfile), zap.Error(err))
		return NotStarted
	}
	return ReadyForAnalysis
}
