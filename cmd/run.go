// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/open-policy-agent/tiny/cmd/formats"
	"github.com/open-policy-agent/tiny/filewatcher"
	pr "github.com/open-policy-agent/tiny/internal/presentation"
	"github.com/open-policy-agent/tiny/loader"
	"github.com/open-policy-agent/tiny/logging"
	"github.com/open-policy-agent/tiny/metrics"
	"github.com/open-policy-agent/tiny/program"
	"github.com/open-policy-agent/tiny/storage/inmem"
	"github.com/open-policy-agent/tiny/topdown"
)

// run executes the program named by args[0] and returns the process exit
// code. Printed values go to stdout; errors, traces and metrics go to stderr.
func run(ctx context.Context, args []string, params *runParams, stdout, stderr io.Writer) int {

	if len(args) == 0 {
		fmt.Fprintln(stderr, "error:", errNoSource)
		return 1
	}

	logger, err := params.logging.logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	r := &runner{
		params: params,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}

	m := r.newMetrics()
	src, err := r.load(args[0], m)
	if err == nil {
		err = r.exec(ctx, src, m)
	} else {
		r.report(err, m, nil)
	}

	if params.watch {
		return r.watch(ctx, args[0])
	}

	if err != nil {
		return 1
	}
	return 0
}

type runner struct {
	params *runParams
	stdout io.Writer
	stderr io.Writer
	logger logging.Logger
}

// newMetrics returns a metrics collection if metrics were requested, or nil.
func (r *runner) newMetrics() metrics.Metrics {
	if r.params.metrics {
		return metrics.New()
	}
	return nil
}

func (r *runner) load(path string, m metrics.Metrics) (*loader.SourceFile, error) {
	if m != nil {
		m.Timer(metrics.LoadSource).Start()
		defer m.Timer(metrics.LoadSource).Stop()
	}
	return loader.File(path, r.params.maxBytes)
}

// exec runs src with a fresh store and reports the outcome.
func (r *runner) exec(ctx context.Context, src *loader.SourceFile, m metrics.Metrics) error {

	opts := []func(*program.Program){
		program.Source(src.Name, src.Raw),
		program.Store(inmem.New()),
		program.Output(r.stdout),
		program.Metrics(m),
		program.Logger(r.logger),
	}

	var tracer *topdown.BufferTracer
	if r.params.explain {
		tracer = topdown.NewBufferTracer()
		opts = append(opts, program.Tracer(tracer))
	}

	err := program.New(opts...).Run(ctx)

	r.report(err, m, tracer)
	return err
}

func (r *runner) report(err error, m metrics.Metrics, tracer *topdown.BufferTracer) {

	out := pr.Output{
		Errors:  pr.NewOutputErrors(err),
		Metrics: m,
	}

	if tracer != nil {
		out.Explanation = *tracer
	}

	if out.Errors == nil && out.Metrics == nil && len(out.Explanation) == 0 {
		return
	}

	var renderErr error
	switch r.params.format.String() {
	case formats.JSON:
		renderErr = pr.JSON(r.stderr, out)
	default:
		renderErr = pr.Pretty(r.stderr, out)
	}

	if renderErr != nil {
		r.logger.Error("Failed to render output: %v", renderErr)
	}
}

// watch re-runs the program on every change to path until ctx is done.
func (r *runner) watch(ctx context.Context, path string) int {

	logger := r.logger.WithFields(map[string]any{"path": path})

	rerun := func(ctx context.Context, src *loader.SourceFile) error {
		return r.exec(ctx, src, r.newMetrics())
	}

	onReload := func(_ context.Context, elapsed time.Duration, err error) {
		// exec reports its own errors, load errors are reported here.
		if loader.IsError(err) {
			r.report(err, nil, nil)
		}
		if err != nil {
			logger.Debug("Re-run failed after %v.", elapsed)
			return
		}
		logger.Debug("Re-ran program in %v.", elapsed)
	}

	w := filewatcher.New([]string{path}, r.params.maxBytes, rerun, onReload, r.logger)
	if err := w.Start(ctx); err != nil {
		fmt.Fprintln(r.stderr, "error:", err)
		return 1
	}

	logger.Info("Watching for changes.")
	<-ctx.Done()
	return 0
}
