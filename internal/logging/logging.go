// Copyright 2021 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/open-policy-agent/tiny/logging"
)

// Supported values for the log format flag.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatJSONPretty = "json-pretty"
)

// NewLogger returns a standard logger writing to w at the given level and
// format.
func NewLogger(level, format string, w io.Writer) (*logging.StandardLogger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logging.New()
	logger.SetOutput(w)
	logger.SetFormatter(GetFormatter(format, ""))
	logger.SetLevel(lvl)
	return logger, nil
}

func GetLevel(level string) (logging.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logging.Debug, nil
	case "", "info":
		return logging.Info, nil
	case "warn":
		return logging.Warn, nil
	case "error":
		return logging.Error, nil
	default:
		return logging.Debug, fmt.Errorf("invalid log level: %v", level)
	}
}

func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case FormatText:
		return &prettyFormatter{}
	case FormatJSONPretty:
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// prettyFormatter implements the Logrus Formatter interface
// and provides a more simple, but easier to read, text formatter
// option than the default logrus.TextFormatter.
type prettyFormatter struct{}

const (
	fieldIndent     = 2
	multiLineIndent = 6
)

func (*prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)

	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(b, "[%s] %s\n", level, e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		stringVal, err := formatField(e.Data[k])
		if err != nil {
			return nil, err
		}

		b.WriteString(strings.Repeat(" ", fieldIndent))
		b.WriteString(k)
		if strings.Contains(stringVal, "\n") {
			b.WriteString(" = |\n")
			b.WriteString(strings.Repeat(" ", multiLineIndent))
		} else {
			b.WriteString(" = ")
		}
		b.WriteString(stringVal)
		b.WriteString("\n")
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// formatField keeps multi-line strings as-is but indented. Everything else
// is rendered as JSON.
func formatField(v any) (string, error) {
	if s, ok := v.(string); ok && strings.Contains(s, "\n") {
		lines := strings.Split(s, "\n")
		return strings.Join(lines, "\n"+strings.Repeat(" ", multiLineIndent)) + "\n", nil
	}
	bs, err := json.MarshalIndent(v, strings.Repeat(" ", multiLineIndent), "  ")
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
