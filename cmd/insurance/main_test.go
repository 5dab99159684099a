// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeData writes records following charges = 3age² + 20age + 100 +
// 500children, plus 400bmi + 2000 for smokers with BMI <= 30 and
// 450bmi + 15000 above.
func writeData(t *testing.T) string {
	t.Helper()
	rows := []struct {
		age      float64
		sex      string
		bmi      float64
		children int
		smoker   string
		region   string
	}{
		{20, "male", 20, 0, "no", "north"},
		{30, "female", 24, 0, "no", "south"},
		{40, "male", 28, 0, "no", "north"},
		{50, "female", 31, 0, "no", "south"},
		{30, "male", 22, 1, "no", "south"},
		{40, "female", 35, 2, "no", "north"},
		{20, "female", 22, 0, "yes", "north"},
		{30, "male", 26, 0, "yes", "south"},
		{40, "female", 32, 1, "yes", "north"},
		{50, "male", 36, 2, "yes", "south"},
	}
	var b strings.Builder
	b.WriteString("age,sex,bmi,children,smoker,region,charges\n")
	for _, r := range rows {
		charges := 3*r.age*r.age + 20*r.age + 100 + 500*float64(r.children)
		if r.smoker == "yes" {
			if r.bmi <= 30 {
				charges += 400*r.bmi + 2000
			} else {
				charges += 450*r.bmi + 15000
			}
		}
		fmt.Fprintf(&b, "%v,%s,%v,%d,%s,%s,%v\n", r.age, r.sex, r.bmi, r.children, r.smoker, r.region, charges)
	}
	path := filepath.Join(t.TempDir(), "insurance.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	data := writeData(t)
	plots := filepath.Join(t.TempDir(), "plots")

	out, logs, err := execute(t, "--data", data, "--plots", plots)
	require.NoError(t, err)

	assert.Contains(t, out, "The average age of patients in the dataset is 35 with a standard deviation of 10.25\n")
	assert.Contains(t, out, "smokers (N 4)")
	// Four smokers are too few to bound the median at 95%.
	assert.Contains(t, out, "95% CI unbounded)")
	assert.NotContains(t, out, "Inf")
	assert.Contains(t, out, "cost = 3*age**2 + 20*age + 100")
	assert.Contains(t, out, "cost = 500*children\n")
	assert.Contains(t, out, "BMI <= 30: cost = 400*bmi + 2000 (2 records below $18000)")
	assert.Contains(t, out, "BMI >  30: cost = 450*bmi + 15000 (2 records below $43000)")
	assert.Contains(t, out, "Predicted charges (fitted coefficients)")
	assert.Contains(t, out, "(1 degrees of freedom")

	for _, name := range []string{"age", "children", "bmi"} {
		assert.FileExists(t, filepath.Join(plots, name+".png"))
	}
	assert.Contains(t, logs, "wrote chart")
}

func TestInterval(t *testing.T) {
	inf := math.Inf(1)
	assert.Equal(t, "$1.50 to $20.00", interval(1.5, 20))
	assert.Equal(t, "unbounded to $20.00", interval(-inf, 20))
	assert.Equal(t, "$1.50 to unbounded", interval(1.5, inf))
	assert.Equal(t, "unbounded", interval(-inf, inf))
}

func TestRunLiteral(t *testing.T) {
	out, _, err := execute(t, "--data", writeData(t), "--formula", "literal")
	require.NoError(t, err)
	assert.Contains(t, out, "Predicted charges (literal coefficients):\n  2.92*age**2 + 35.15*age - 501.62 + 591.27*children - 169.89")
	assert.Contains(t, out, "465.15*bmi + 2705.79 if BMI <= 30, else 451.08*bmi + 18528.39")
}

func TestRunConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data: "+writeData(t)+"\nformula: literal\n"), 0o644))

	out, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "literal coefficients")

	// Flags win over the file.
	out, _, err = execute(t, "--config", cfgPath, "--formula", "fitted")
	require.NoError(t, err)
	assert.Contains(t, out, "fitted coefficients")
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "--data", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "--data", writeData(t), "--formula", "best")
	assert.Error(t, err)

	_, _, err = execute(t, "extra")
	assert.Error(t, err)
}
