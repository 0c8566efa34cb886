// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package repl implements a Read-Eval-Print-Loop (REPL) for interacting with
// the interpreter.
//
// The REPL is typically used from the command line, however, it can also be used as a library.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/peterh/liner"

	"github.com/open-policy-agent/tiny/internal/levenshtein"
	"github.com/open-policy-agent/tiny/internal/presentation"
	"github.com/open-policy-agent/tiny/logging"
	"github.com/open-policy-agent/tiny/program"
	"github.com/open-policy-agent/tiny/storage"
	"github.com/open-policy-agent/tiny/topdown"
)

// maxDistanceForHint is the edit distance below which a variable name is
// suggested for an undefined one.
const maxDistanceForHint = 3

// REPL represents an instance of the interactive shell.
type REPL struct {
	output io.Writer
	store  storage.Store
	logger logging.Logger

	outputFormat string
	explain      bool
	historyPath  string
	initPrompt   string
	banner       string
	lines        int
}

// New returns a new instance of the REPL. Every line entered runs against
// store, so bindings persist for the whole session.
func New(store storage.Store, historyPath string, output io.Writer, outputFormat string, banner string) *REPL {
	return &REPL{
		output:       output,
		store:        store,
		logger:       logging.NewNoOpLogger(),
		outputFormat: outputFormat,
		historyPath:  historyPath,
		initPrompt:   "> ",
		banner:       banner,
	}
}

// WithLogger sets the logger passed to every program run by the REPL.
func (r *REPL) WithLogger(logger logging.Logger) *REPL {
	r.logger = logger
	return r
}

// Loop will run until the user enters "exit", Ctrl+C, Ctrl+D, or an unexpected error occurs.
func (r *REPL) Loop(ctx context.Context) {

	// Initialize the liner library.
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)
	r.loadHistory(line)

	if len(r.banner) > 0 {
		fmt.Fprintln(r.output, r.banner)
	}

	line.SetCompleter(func(s string) []string {
		return r.complete(ctx, s)
	})

	for {

		input, err := line.Prompt(r.initPrompt)

		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(r.output, "Exiting")
			break
		}

		if err != nil {
			fmt.Fprintln(r.output, "error (fatal):", err)
			os.Exit(1)
		}

		if err := r.OneShot(ctx, input); err != nil {
			if errors.Is(err, errStop) {
				line.AppendHistory(input)
				break
			}
			r.printError(ctx, err)
		}

		line.AppendHistory(input)
	}

	r.saveHistory(line)
}

// OneShot evaluates the line and prints the result. If an error occurs it is
// returned for the caller to display.
func (r *REPL) OneShot(ctx context.Context, line string) error {

	if cmd := newCommand(line); cmd != nil {
		switch cmd.op {
		case "dump":
			return r.cmdDump(ctx, cmd.args)
		case "json":
			return r.cmdFormat("json")
		case "pretty":
			return r.cmdFormat("pretty")
		case "show":
			return r.cmdShow(ctx)
		case "trace":
			return r.cmdTrace()
		case "help":
			return r.cmdHelp()
		case "exit":
			return r.cmdExit()
		}
	}

	if strings.TrimSpace(line) == "" {
		return nil
	}

	return r.evalLine(ctx, line)
}

func (r *REPL) evalLine(ctx context.Context, line string) error {

	r.lines++

	opts := []func(*program.Program){
		program.Source("repl", []byte(line)),
		program.Row(r.lines),
		program.Store(r.store),
		program.Output(r.output),
		program.Logger(r.logger),
	}

	var tracer *topdown.BufferTracer
	if r.explain {
		tracer = topdown.NewBufferTracer()
		opts = append(opts, program.Tracer(tracer))
	}

	err := program.New(opts...).Run(ctx)

	if tracer != nil {
		topdown.PrettyTrace(r.output, *tracer)
	}

	return err
}

func (r *REPL) complete(ctx context.Context, line string) (c []string) {

	names, err := r.store.Names(ctx)
	if err != nil {
		fmt.Fprintln(r.output, "error:", err)
		return c
	}

	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasSuffix(line, " ") {
		return c
	}

	prefix := line[:len(line)-len(fields[len(fields)-1])]
	last := fields[len(fields)-1]

	if len(fields) == 1 {
		for _, cmd := range builtin {
			if strings.HasPrefix(cmd.name, last) {
				c = append(c, cmd.name)
			}
		}
	}

	for _, name := range names {
		if strings.HasPrefix(name, last) {
			c = append(c, prefix+name)
		}
	}

	return c
}

func (r *REPL) cmdDump(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return r.dump(ctx, r.output)
	case 1:
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return r.dump(ctx, f)
	}
	return badArgs("dump <path>", "expects at most one argument")
}

func (r *REPL) dump(ctx context.Context, w io.Writer) error {
	bindings, err := storage.Dump(ctx, r.store)
	if err != nil {
		return err
	}
	return presentation.JSON(w, bindings)
}

func (r *REPL) cmdExit() error {
	return errStop
}

func (r *REPL) cmdFormat(s string) error {
	r.outputFormat = s
	return nil
}

func (r *REPL) cmdHelp() error {
	fmt.Fprintln(r.output, "")
	printHelpExamples(r.output, r.initPrompt)
	printHelpCommands(r.output)
	return nil
}

func (r *REPL) cmdShow(ctx context.Context) error {
	bindings, err := storage.Dump(ctx, r.store)
	if err != nil {
		return err
	}
	if r.outputFormat == "json" {
		return presentation.JSON(r.output, bindings)
	}
	if len(bindings) == 0 {
		fmt.Fprintln(r.output, "no variables defined")
		return nil
	}
	return presentation.Bindings(r.output, bindings)
}

func (r *REPL) cmdTrace() error {
	r.explain = !r.explain
	return nil
}

func (r *REPL) printError(ctx context.Context, err error) {
	if r.outputFormat == "json" {
		if err := presentation.JSON(r.output, presentation.Output{Errors: presentation.NewOutputErrors(err)}); err != nil {
			fmt.Fprintln(r.output, "error:", err)
		}
		return
	}
	fmt.Fprintln(r.output, "error:", err)
	r.printHint(ctx, err)
}

// printHint suggests bound variables spelled like the undefined one.
func (r *REPL) printHint(ctx context.Context, err error) {
	name, ok := topdown.UndefinedVar(err)
	if !ok {
		return
	}

	names, err := r.store.Names(ctx)
	if err != nil {
		r.logger.Debug("Failed to list variables: %v", err)
		return
	}

	closest := levenshtein.ClosestStrings(maxDistanceForHint, name, slices.Values(names))
	switch len(closest) {
	case 0:
	case 1:
		fmt.Fprintf(r.output, "hint: did you mean %v?\n", closest[0])
	default:
		fmt.Fprintf(r.output, "hint: did you mean any of %v?\n", strings.Join(closest, ", "))
	}
}

func (r *REPL) loadHistory(prompt *liner.State) {
	if f, err := os.Open(r.historyPath); err == nil {
		if _, err := prompt.ReadHistory(f); err != nil {
			r.logger.Debug("Failed to read history: %v", err)
		}
		f.Close()
	}
}

func (r *REPL) saveHistory(prompt *liner.State) {
	if f, err := os.Create(r.historyPath); err == nil {
		if _, err := prompt.WriteHistory(f); err != nil {
			r.logger.Debug("Failed to write history: %v", err)
		}
		f.Close()
	}
}

type commandDesc struct {
	name string
	args []string
	help string
}

func (c commandDesc) syntax() string {
	if len(c.args) > 0 {
		return fmt.Sprintf("%v %v", c.name, strings.Join(c.args, " "))
	}
	return c.name
}

type exampleDesc struct {
	example string
	comment string
}

var examples = [...]exampleDesc{
	{"x = 2 + 3", "bind x"},
	{"print x + 10", "print a value"},
	{"show", "list the variables defined so far"},
}

var extra = [...]commandDesc{
	{"<stmt>", []string{}, "evaluate the statement"},
}

var builtin = [...]commandDesc{
	{"show", []string{}, "show variables defined in this session"},
	{"json", []string{}, "set output format to JSON"},
	{"pretty", []string{}, "set output format to pretty"},
	{"trace", []string{}, "toggle full trace"},
	{"dump", []string{"[path]"}, "dump variables as JSON"},
	{"help", []string{}, "print this message"},
	{"exit", []string{}, "exit back to shell (or ctrl+c, ctrl+d)"},
}

type command struct {
	op   string
	args []string
}

// newCommand returns the REPL command on line, or nil if the line is a
// statement. A line such as "show = 1" assigns to a variable.
func newCommand(line string) *command {
	p := strings.Fields(line)
	if len(p) == 0 {
		return nil
	}
	if len(p) > 1 && p[1] == "=" {
		return nil
	}
	for _, c := range builtin {
		if c.name == p[0] {
			if len(c.args) == 0 && len(p) > 1 {
				return nil
			}
			return &command{
				op:   c.name,
				args: p[1:],
			}
		}
	}
	return nil
}

func printHelpExamples(output io.Writer, promptSymbol string) {

	fmt.Fprintln(output, "Examples")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	maxLength := 0
	for _, ex := range examples {
		if len(ex.example) > maxLength {
			maxLength = len(ex.example)
		}
	}

	f := fmt.Sprintf("%v%%-%dv # %%v\n", promptSymbol, maxLength+1)

	for _, ex := range examples {
		fmt.Fprintf(output, f, ex.example, ex.comment)
	}

	fmt.Fprintln(output, "")
}

func printHelpCommands(output io.Writer) {

	fmt.Fprintln(output, "Commands")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	all := extra[:]
	all = append(all, builtin[:]...)

	maxLength := 0

	for _, c := range all {
		length := len(c.syntax())
		if length > maxLength {
			maxLength = length
		}
	}

	f := fmt.Sprintf("%%%dv : %%v\n", maxLength)

	for _, c := range all {
		fmt.Fprintf(output, f, c.syntax(), c.help)
	}

	fmt.Fprintln(output, "")
}
