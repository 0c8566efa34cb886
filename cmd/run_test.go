// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-policy-agent/tiny/cmd/formats"
	"github.com/open-policy-agent/tiny/util/test"
)

func TestRun(t *testing.T) {

	tests := []struct {
		note      string
		src       string
		expCode   int
		expStdout string
		expStderr string
	}{
		{
			note:      "assign then print",
			src:       "x = 5\nprint x\n",
			expStdout: "5\n",
		},
		{
			note:      "assignment chain",
			src:       "x = 2 + 3\ny = x + 10\nprint y\n",
			expStdout: "15\n",
		},
		{
			note:      "undefined variable",
			src:       "print z\n",
			expCode:   1,
			expStderr: "eval_undefined_error: undefined variable: z",
		},
		{
			note:      "missing equals",
			src:       "x 5\n",
			expCode:   1,
			expStderr: "tiny_parse_error: expected '=' after identifier",
		},
		{
			note:      "reassignment",
			src:       "x = 1\nx = x + 1\nprint x\n",
			expStdout: "2\n",
		},
		{
			note:      "illegal character",
			src:       "print 1\nx = 2 * 3\n",
			expCode:   1,
			expStderr: "tiny_lex_error: unexpected character: *",
		},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			files := map[string]string{"/prog.tiny": tc.src}

			test.WithTempFS(files, func(rootDir string) {
				var stdout, stderr bytes.Buffer
				path := filepath.Join(rootDir, "prog.tiny")

				code := run(context.Background(), []string{path}, newRunParams(), &stdout, &stderr)

				if code != tc.expCode {
					t.Fatalf("Expected exit code %d but got %d (stderr: %s)", tc.expCode, code, stderr.String())
				}
				if stdout.String() != tc.expStdout {
					t.Fatalf("Expected stdout %q but got %q", tc.expStdout, stdout.String())
				}
				if tc.expStderr == "" && stderr.Len() > 0 {
					t.Fatalf("Expected no stderr output but got %q", stderr.String())
				}
				if !strings.Contains(stderr.String(), tc.expStderr) {
					t.Fatalf("Expected stderr to contain %q but got %q", tc.expStderr, stderr.String())
				}
				if tc.expCode != 0 && !strings.Contains(stderr.String(), path) {
					t.Fatalf("Expected error location to name %v but got %q", path, stderr.String())
				}
			})
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.tiny")

	code := run(context.Background(), []string{path}, newRunParams(), &stdout, &stderr)

	if code != 1 {
		t.Fatalf("Expected exit code 1 but got %d", code)
	}
	exp := "1 error occurred: " + path + ": io_error: open: no such file or directory\n"
	if stderr.String() != exp {
		t.Fatalf("Expected %q but got %q", exp, stderr.String())
	}
}

func TestRunFileTooLarge(t *testing.T) {
	files := map[string]string{"/prog.tiny": "x = 1\nprint x\n"}

	test.WithTempFS(files, func(rootDir string) {
		var stdout, stderr bytes.Buffer
		params := newRunParams()
		params.maxBytes = 8

		code := run(context.Background(), []string{filepath.Join(rootDir, "prog.tiny")}, params, &stdout, &stderr)

		if code != 1 || stdout.Len() != 0 {
			t.Fatalf("Expected exit code 1 and no output but got %d %q", code, stdout.String())
		}
		if !strings.Contains(stderr.String(), "file exceeds maximum size of 8 bytes") {
			t.Fatalf("Unexpected stderr %q", stderr.String())
		}
	})
}

func TestRunNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, newRunParams(), &stdout, &stderr); code != 1 {
		t.Fatalf("Expected exit code 1 but got %d", code)
	}

	if err := RootCommand.PreRunE(RootCommand, nil); !errors.Is(err, errNoSource) {
		t.Fatalf("Expected usage error but got %v", err)
	}
}

func TestRunFileNamedLikeSubcommand(t *testing.T) {
	if cmd, _, err := RootCommand.Find([]string{"parse"}); err != nil || cmd != parseCommand {
		t.Fatalf("Expected bare name to select the parse subcommand but got %v %v", cmd.Name(), err)
	}

	cmd, args, err := RootCommand.Find([]string{"./parse"})
	if err != nil || cmd != RootCommand || len(args) != 1 || args[0] != "./parse" {
		t.Fatalf("Expected prefixed path to run as a program but got %v %v %v", cmd.Name(), args, err)
	}

	if !strings.Contains(RootCommand.Long, "'tiny ./parse'") {
		t.Fatalf("Expected help to explain how to run a file named like a subcommand:\n%s", RootCommand.Long)
	}

	files := map[string]string{"/parse": "print 5\n"}
	test.WithTempFS(files, func(rootDir string) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{filepath.Join(rootDir, "parse")}, newRunParams(), &stdout, &stderr)
		if code != 0 || stdout.String() != "5\n" {
			t.Fatalf("Expected program output but got %d %q %q", code, stdout.String(), stderr.String())
		}
	})
}

func TestRunJSONFormat(t *testing.T) {
	files := map[string]string{"/prog.tiny": "print q"}

	test.WithTempFS(files, func(rootDir string) {
		var stdout, stderr bytes.Buffer
		params := newRunParams()
		if err := params.format.Set(formats.JSON); err != nil {
			t.Fatal(err)
		}

		code := run(context.Background(), []string{filepath.Join(rootDir, "prog.tiny")}, params, &stdout, &stderr)
		if code != 1 {
			t.Fatalf("Expected exit code 1 but got %d", code)
		}

		var result struct {
			Errors []struct {
				Code     string `json:"code"`
				Message  string `json:"message"`
				Location struct {
					Row int `json:"row"`
					Col int `json:"col"`
				} `json:"location"`
			} `json:"errors"`
		}
		if err := json.Unmarshal(stderr.Bytes(), &result); err != nil {
			t.Fatalf("Expected JSON on stderr but got %q", stderr.String())
		}
		if len(result.Errors) != 1 || result.Errors[0].Code != "eval_undefined_error" || result.Errors[0].Location.Col != 7 {
			t.Fatalf("Unexpected errors %+v", result.Errors)
		}
	})
}

func TestRunMetricsAndExplain(t *testing.T) {
	files := map[string]string{"/prog.tiny": "x = 1\nprint x + 1\n"}

	test.WithTempFS(files, func(rootDir string) {
		var stdout, stderr bytes.Buffer
		params := newRunParams()
		params.metrics = true
		params.explain = true

		code := run(context.Background(), []string{filepath.Join(rootDir, "prog.tiny")}, params, &stdout, &stderr)
		if code != 0 {
			t.Fatalf("Expected exit code 0 but got %d: %s", code, stderr.String())
		}
		if stdout.String() != "2\n" {
			t.Fatalf("Expected output on stdout only but got %q", stdout.String())
		}

		for _, exp := range []string{
			"Enter x = 1\n",
			"Exit print x + 1 = 2\n",
			"| counter_tiny_statements ",
			"| timer_tiny_load_source_ns ",
		} {
			if !strings.Contains(stderr.String(), exp) {
				t.Fatalf("Expected stderr to contain %q but got:\n%s", exp, stderr.String())
			}
		}
	})
}

func TestRunDebugLogging(t *testing.T) {
	files := map[string]string{"/prog.tiny": "x = 1\n"}

	test.WithTempFS(files, func(rootDir string) {
		var stdout, stderr bytes.Buffer
		params := newRunParams()
		if err := params.logging.level.Set("debug"); err != nil {
			t.Fatal(err)
		}
		if err := params.logging.format.Set("json"); err != nil {
			t.Fatal(err)
		}

		if code := run(context.Background(), []string{filepath.Join(rootDir, "prog.tiny")}, params, &stdout, &stderr); code != 0 {
			t.Fatalf("Expected exit code 0 but got %d", code)
		}

		lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
			t.Fatalf("Expected JSON log line but got %q", lines[len(lines)-1])
		}
		if entry["msg"] != "Program finished." || entry["run_id"] == nil {
			t.Fatalf("Unexpected log entry %v", entry)
		}
	})
}

func TestRunCommandFlags(t *testing.T) {
	for _, name := range []string{"log-level", "log-format", "config-file", "max-bytes"} {
		if RootCommand.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("Expected persistent flag %v", name)
		}
	}
	for _, name := range []string{"format", "metrics", "explain", "watch"} {
		if RootCommand.Flags().Lookup(name) == nil {
			t.Fatalf("Expected flag %v", name)
		}
	}

	var names []string
	for _, c := range RootCommand.Commands() {
		names = append(names, c.Name())
	}
	for _, exp := range []string{"parse", "repl", "version"} {
		if !strings.Contains(strings.Join(names, ","), exp) {
			t.Fatalf("Expected subcommand %v in %v", exp, names)
		}
	}
}
