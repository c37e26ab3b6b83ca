// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package zaplogr provides a logr.Logger that writes through a
// zap.Logger, for feeding the parser's trace output to zap.
package zaplogr

import (
	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logr.Logger sinking to z.
// V(0) logs at zap's info level, higher verbosities at debug level.
func New(z *zap.Logger) logr.Logger {
	return logr.New(&sink{z: z.Sugar()})
}

type sink struct {
	z *zap.SugaredLogger
}

var _ logr.LogSink = (*sink)(nil)

func (s *sink) Init(logr.RuntimeInfo) {}

func (s *sink) Enabled(level int) bool {
	return s.z.Desugar().Core().Enabled(zapLevel(level))
}

func (s *sink) Info(level int, msg string, keysAndValues ...interface{}) {
	if zapLevel(level) == zapcore.DebugLevel {
		s.z.Debugw(msg, keysAndValues...)
		return
	}
	s.z.Infow(msg, keysAndValues...)
}

func (s *sink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.z.Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

func (s *sink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return &sink{z: s.z.With(keysAndValues...)}
}

func (s *sink) WithName(name string) logr.LogSink {
	return &sink{z: s.z.Named(name)}
}

func zapLevel(level int) zapcore.Level {
	if level > 0 {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
