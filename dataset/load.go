// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// A ParseError reports a record that could not be loaded.
type ParseError struct {
	File  string // empty when reading from an io.Reader
	Line  int
	Field string // column name, if the error concerns one field
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File + ":")
	}
	fmt.Fprintf(&b, "%d: ", e.Line)
	if e.Field != "" {
		fmt.Fprintf(&b, "field %q: ", e.Field)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errNoHeader      = errors.New("missing header row")
	errMissingColumn = errors.New("missing column")
	errMissingValue  = errors.New("missing value")
	errRange         = errors.New("value out of range")
)

// Load reads the dataset stored as CSV in the named file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.File = path
	}
	return d, err
}

// Read reads a comma-separated dataset from r. The first row must be
// a header naming at least the columns age, sex, bmi, children,
// smoker, region and charges, in any order. Other columns are
// ignored.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errNoHeader}
	} else if err != nil {
		return nil, csvError(err)
	}
	var cols [numFields]int
	for f := range cols {
		cols[f] = -1
		for i, h := range header {
			if strings.TrimSpace(h) == fieldNames[f] {
				cols[f] = i
				break
			}
		}
		if cols[f] < 0 {
			return nil, &ParseError{Line: 1, Field: fieldNames[f], Err: errMissingColumn}
		}
	}

	d := &Dataset{fields: AllFields()}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		var rec Record
		for f := Field(0); f < numFields; f++ {
			col := cols[f]
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				return nil, &ParseError{Line: line, Field: f.String(), Err: errMissingValue}
			}
			if err := rec.set(f, strings.TrimSpace(row[col])); err != nil {
				return nil, &ParseError{Line: line, Field: f.String(), Err: err}
			}
		}
		d.records = append(d.records, rec)
	}
	return d, nil
}

// set coerces s to the type of field f and stores it in r.
func (r *Record) set(f Field, s string) error {
	switch f {
	case Children:
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: %d children", errRange, n)
		}
		r.Children = n
		return nil
	case Sex:
		r.Sex = s
		return nil
	case Smoker:
		if s != "yes" && s != "no" {
			return fmt.Errorf("%w: smoker must be yes or no, got %q", errRange, s)
		}
		r.Smoker = s
		return nil
	case Region:
		r.Region = s
		return nil
	}

	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %s", errRange, s)
	}
	switch f {
	case Age:
		if x <= 0 {
			return fmt.Errorf("%w: age %v", errRange, x)
		}
		r.Age = x
	case BMI:
		if x <= 0 {
			return fmt.Errorf("%w: bmi %v", errRange, x)
		}
		r.BMI = x
	case Charges:
		r.Charges = x
	}
	return nil
}

// csvError converts a syntax error from encoding/csv to a ParseError.
func csvError(err error) error {
	var cerr *csv.ParseError
	if errors.As(err, &cerr) {
		return &ParseError{Line: cerr.Line, Err: cerr.Err}
	}
	return err
}
