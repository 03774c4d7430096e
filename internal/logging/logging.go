// SPDX-License-Identifier: EPL-2.0

// Package logging builds the zap loggers used by the command line.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLevel = errors.New("unknown log level")

// Option adjusts the logger built by New.
type Option func(*settings)

type settings struct {
	level       zapcore.Level
	development bool
	json        bool
	out         io.Writer
	fields      []zap.Field
}

// WithLevel sets the minimum level. Unknown names fall back to info;
// use ParseLevel to reject them up front.
func WithLevel(name string) Option {
	return func(s *settings) {
		if lvl, err := ParseLevel(name); err == nil {
			s.level = lvl
		}
	}
}

// WithDevelopment adds caller information and stack traces on warnings.
func WithDevelopment(dev bool) Option {
	return func(s *settings) { s.development = dev }
}

// WithJSON switches from the console encoder to JSON lines.
func WithJSON(json bool) Option {
	return func(s *settings) { s.json = json }
}

// WithOutput redirects log lines; the default is stderr.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// WithFields attaches fields to every entry.
func WithFields(fields ...zap.Field) Option {
	return func(s *settings) { s.fields = append(s.fields, fields...) }
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// New builds a logger from opts.
func New(opts ...Option) *zap.Logger {
	s := settings{level: zapcore.InfoLevel, out: os.Stderr}
	for _, opt := range opts {
		opt(&s)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if s.json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(s.out), zap.NewAtomicLevelAt(s.level))

	zopts := []zap.Option{zap.Fields(s.fields...)}
	if s.development {
		zopts = append(zopts, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	return zap.New(core, zopts...)
}
