// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// insurance reads a medical insurance dataset and explains how
// charges depend on age, number of children, smoking and BMI.
//
// It first compares charges across subgroups, then decomposes
// charges into an age term, a children term and a smoker/BMI term by
// repeatedly fitting the floor of the charges and subtracting it,
// and finally tests the assembled formula against every record.
//
// With no flags it reads insurance.csv from the current directory.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aclements/insurancecost/analysis"
	"github.com/aclements/insurancecost/chart"
	"github.com/aclements/insurancecost/config"
	"github.com/aclements/insurancecost/dataset"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		configPath string
		verbose    bool
		flags      = config.Default()
	)
	cmd := &cobra.Command{
		Use:           "insurance",
		Short:         "Decompose medical insurance charges into age, children and smoker/BMI terms",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			// Explicit flags override the file.
			fs := cmd.Flags()
			if fs.Changed("data") {
				cfg.Data = flags.Data
			}
			if fs.Changed("plots") {
				cfg.Plots = flags.Plots
			}
			if fs.Changed("formula") {
				cfg.Formula = flags.Formula
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg, out)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML `file` of settings")
	cmd.Flags().StringVar(&flags.Data, "data", flags.Data, "CSV `file` of insurance records")
	cmd.Flags().StringVar(&flags.Plots, "plots", flags.Plots, "write PNG charts to `dir`")
	cmd.Flags().StringVar(&flags.Formula, "formula", flags.Formula, "coefficients to test: fitted or literal")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail")
	return cmd
}

func run(cfg config.Config, out io.Writer) error {
	d, err := dataset.Load(cfg.Data)
	if err != nil {
		return err
	}
	slog.Debug("loaded dataset", "path", cfg.Data, "records", d.Len())

	var plotter analysis.Plotter = chart.Discard
	if cfg.Plots != "" {
		plotter = chart.PNG{Dir: cfg.Plots}
	}

	sv, err := analysis.NewSurvey(d, cfg.Confidence)
	if err != nil {
		return err
	}
	printSurvey(out, sv, cfg.Confidence)

	dc, err := analysis.Decompose(d, cfg.Options())
	if err != nil {
		return err
	}
	printDecomposition(out, dc)

	for _, c := range dc.Charts(d) {
		if err := plotter.Plot(c); err != nil {
			return fmt.Errorf("plotting %s: %w", c.Name, err)
		}
		if png, ok := plotter.(chart.PNG); ok {
			slog.Info("wrote chart", "path", png.Path(c))
		}
	}

	formula := dc.Formula()
	if cfg.Formula == config.FormulaLiteral {
		formula = analysis.LiteralFormula()
	}
	fit, err := analysis.GoodnessOfFit(d, formula)
	if err != nil {
		return err
	}
	printFit(out, formula, cfg.Formula, fit)
	return nil
}
