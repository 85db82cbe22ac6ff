/*
 * main.go, part of goqmc.
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

//qmcstat reports the state of the stages of a QMC calculation, collects
//their results and plots optimization traces.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	qmc "github.com/rmera/goqmc"
	"github.com/rmera/goqmc/crystal"
	"github.com/rmera/goqmc/qmcplot"
	"github.com/rmera/goqmc/qwalk"
)

var (
	verbose    bool
	configFile string
	jobState   string

	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qmcstat",
		Short: "Inspect the stages of a QMC calculation",
		Long: `qmcstat reads the outputs of Crystal and QWalk runs.

Stages: ` + strings.Join(kinds, ", ") + `.

Tolerances can be given in a YAML file (--config), for instance:
  acceptable_scf: 5
  vmc:
    errtol: 0.005
    minblocks: 30`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			qmc.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug information")
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML file with tolerances")

	statusCmd := &cobra.Command{
		Use:   "status [stage] [outfile]",
		Short: "Print the lifecycle state of a stage",
		Args:  cobra.ExactArgs(2),
		RunE:  runStatus,
	}
	statusCmd.Flags().StringVar(&jobState, "job", string(qmc.JobOther), "state of the job as seen by the queue: running, queued or other")

	collectCmd := &cobra.Command{
		Use:   "collect [stage] [outfile]",
		Short: "Read the results of a stage and print a summary",
		Args:  cobra.ExactArgs(2),
		RunE:  runCollect,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [variance|linear] [outfile] [image]",
		Short: "Plot the trace of an optimization",
		Args:  cobra.ExactArgs(3),
		RunE:  runPlot,
	}

	root.AddCommand(statusCmd, collectCmd, plotCmd)
	return root
}

func readerFor(kind string) (stageReader, config, error) {
	c, err := loadConfig(configFile)
	if err != nil {
		return nil, c, err
	}
	r, err := newReader(kind, c)
	return r, c, err
}

func runStatus(cmd *cobra.Command, args []string) error {
	kind, outfile := args[0], args[1]
	r, _, err := readerFor(kind)
	if err != nil {
		return err
	}
	switch qmc.JobState(jobState) {
	case qmc.JobRunning, qmc.JobQueued, qmc.JobOther:
	default:
		return qmc.NewError("job state must be running, queued or other", jobState, "runStatus")
	}
	probe := qmc.ProberFunc(func() qmc.JobState { return qmc.JobState(jobState) })
	st := qmc.ResolveStatus(r, probe, outfile)
	if st == qmc.ReadyForAnalysis {
		collected := r.Collect(outfile)
		logger.Debug("collected", zap.String("stage", kind), zap.String("status", string(collected)))
		st = qmc.ResolveStatus(r, probe, outfile)
	}
	fmt.Fprintln(cmd.OutOrStdout(), st)
	return nil
}

func runCollect(cmd *cobra.Command, args []string) error {
	kind, outfile := args[0], args[1]
	r, c, err := readerFor(kind)
	if err != nil {
		return err
	}
	st := r.Collect(outfile)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "status %s\n", st)
	if kind == "crystal" {
		fmt.Fprintf(out, "diagnosis %s\n", crystal.Diagnose(outfile, c.AcceptableSCF))
	}
	return r.Summary(out)
}

func runPlot(cmd *cobra.Command, args []string) error {
	kind, outfile, image := args[0], args[1], args[2]
	r, _, err := readerFor(kind)
	if err != nil {
		return err
	}
	st := r.Collect(outfile)
	logger.Debug("collected", zap.String("stage", kind), zap.String("status", string(st)))
	switch v := r.(type) {
	case *qwalk.VarianceReader:
		err = qmcplot.VarianceTrace(v.Output, image)
	case *qwalk.LinearReader:
		err = qmcplot.EnergyTrace(v.Output, image)
	default:
		return qmc.NewError("only variance and linear optimizations have traces", kind, "runPlot")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s written\n", image)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
