// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package presentation prints the outcome of a program run in json and
// tabular formats.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/loader"
	"github.com/open-policy-agent/tiny/metrics"
	"github.com/open-policy-agent/tiny/topdown"
)

// Output contains the outcome of a run to be presented.
type Output struct {
	Errors      OutputErrors     `json:"errors,omitempty"`
	Bindings    map[string]int64 `json:"bindings,omitempty"`
	Metrics     metrics.Metrics  `json:"metrics,omitempty"`
	Explanation []*topdown.Event `json:"explanation,omitempty"`
}

// OutputError is the presentation of a single error. Errors with a known
// structure keep their code and location; any other error is reduced to its
// message.
type OutputError struct {
	Message  string        `json:"message"`
	Code     string        `json:"code,omitempty"`
	Location *ast.Location `json:"location,omitempty"`
	Details  any           `json:"details,omitempty"`
	err      error
}

func (j OutputError) Error() string {
	return j.err.Error()
}

// OutputErrors is the list of errors of one run.
type OutputErrors []OutputError

func (e OutputErrors) Error() string {
	switch len(e) {
	case 0:
		return "no error(s)"
	case 1:
		return "1 error occurred: " + e[0].Error()
	}
	lines := make([]string, len(e))
	for i := range e {
		lines[i] = e[i].Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(lines, "\n"))
}

// NewOutputErrors converts err into its presentation. A nil err yields nil.
// ast.Errors are flattened into one entry per error.
func NewOutputErrors(err error) OutputErrors {
	switch e := err.(type) {
	case nil:
		return nil
	case ast.Errors:
		var errs OutputErrors
		for _, x := range e {
			if x != nil {
				errs = append(errs, NewOutputErrors(x)...)
			}
		}
		return errs
	case *ast.Error:
		return OutputErrors{{Code: e.Code, Message: e.Message, Location: e.Location, err: e}}
	case *topdown.Error:
		return OutputErrors{{Code: e.Code, Message: e.Message, Location: e.Location, err: e}}
	case *loader.Error:
		return OutputErrors{{Code: e.Code, Message: e.Message, Details: e.Path, err: e}}
	default:
		return OutputErrors{{Message: err.Error(), err: err}}
	}
}

// JSON writes x to w as indented JSON.
func JSON(w io.Writer, x any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(x)
}

// Pretty writes r to w for humans: the trace first, then errors, bindings
// and metrics. Empty parts are skipped.
func Pretty(w io.Writer, r Output) error {
	if len(r.Explanation) > 0 {
		topdown.PrettyTrace(w, r.Explanation)
	}
	if len(r.Errors) > 0 {
		if _, err := fmt.Fprintln(w, r.Errors); err != nil {
			return err
		}
	}
	if len(r.Bindings) > 0 {
		if err := Bindings(w, r.Bindings); err != nil {
			return err
		}
	}
	if r.Metrics != nil {
		renderTable(w, []string{"Metric", "Value"}, metricRows(r.Metrics))
	}
	return nil
}

// Bindings writes a Name/Value table of bindings sorted by name. Nothing is
// written for an empty map.
func Bindings(w io.Writer, bindings map[string]int64) error {
	names := slices.Sorted(maps.Keys(bindings))
	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, strconv.FormatInt(bindings[name], 10)}
	}
	renderTable(w, []string{"Name", "Value"}, rows)
	return nil
}

// metricRows returns one row per metric sorted by name. Histograms expand to
// one row per statistic.
func metricRows(m metrics.Metrics) [][]string {
	var rows [][]string
	for name, value := range m.All() {
		stats, ok := value.(map[string]any)
		if !ok {
			rows = append(rows, []string{name, fmt.Sprint(value)})
			continue
		}
		for stat, v := range stats {
			rows = append(rows, []string{name + "_" + stat, fmt.Sprint(v)})
		}
	}
	slices.SortFunc(rows, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})
	return rows
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}
