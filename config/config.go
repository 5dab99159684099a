// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of an analysis run. Every
// setting has a default, so a run needs no configuration file.
package config // import "github.com/aclements/insurancecost/config"

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aclements/insurancecost/analysis"
)

// Formula choices for the goodness-of-fit test.
const (
	// FormulaFitted evaluates the coefficients fitted in this run.
	FormulaFitted = "fitted"

	// FormulaLiteral evaluates the published coefficients of the
	// reference run.
	FormulaLiteral = "literal"
)

// Config is the configuration of an analysis run.
type Config struct {
	// Data is the path of the CSV input.
	Data string `yaml:"data"`

	// Plots is a directory to write chart images to. If empty,
	// charts are not rendered.
	Plots string `yaml:"plots"`

	// Formula selects the coefficients of the goodness-of-fit
	// test: FormulaFitted or FormulaLiteral.
	Formula string `yaml:"formula"`

	// Confidence is the level of reported median confidence
	// intervals.
	Confidence float64 `yaml:"confidence"`

	Smokers SmokerConfig `yaml:"smokers"`
}

// SmokerConfig holds the constants of the smoker/BMI stage.
type SmokerConfig struct {
	BMIThreshold float64 `yaml:"bmi_threshold"`
	LeanCutoff   float64 `yaml:"lean_cutoff"`
	ObeseCutoff  float64 `yaml:"obese_cutoff"`
}

// Default returns the configuration of the reference run.
func Default() Config {
	opts := analysis.DefaultOptions()
	return Config{
		Data:       "insurance.csv",
		Formula:    FormulaFitted,
		Confidence: opts.Confidence,
		Smokers: SmokerConfig{
			BMIThreshold: opts.BMIThreshold,
			LeanCutoff:   opts.LeanCutoff,
			ObeseCutoff:  opts.ObeseCutoff,
		},
	}
}

// Load returns the default configuration overridden by the YAML file
// at path. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting in c.
func (c Config) Validate() error {
	switch {
	case c.Data == "":
		return errors.New("config: data path is empty")
	case c.Formula != FormulaFitted && c.Formula != FormulaLiteral:
		return fmt.Errorf("config: formula must be %q or %q, got %q", FormulaFitted, FormulaLiteral, c.Formula)
	case !(c.Confidence > 0 && c.Confidence < 1):
		return fmt.Errorf("config: confidence must be in (0, 1), got %v", c.Confidence)
	case c.Smokers.BMIThreshold <= 0:
		return fmt.Errorf("config: smokers.bmi_threshold must be positive, got %v", c.Smokers.BMIThreshold)
	case c.Smokers.LeanCutoff <= 0 || c.Smokers.ObeseCutoff <= 0:
		return errors.New("config: smokers cutoffs must be positive")
	}
	return nil
}

// Options returns the decomposition options c describes.
func (c Config) Options() analysis.Options {
	return analysis.Options{
		BMIThreshold: c.Smokers.BMIThreshold,
		LeanCutoff:   c.Smokers.LeanCutoff,
		ObeseCutoff:  c.Smokers.ObeseCutoff,
		Confidence:   c.Confidence,
	}
}
