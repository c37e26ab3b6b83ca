// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logruslogr provides a logr.Logger that writes through a
// logrus.Logger, for feeding the parser's trace output to logrus.
package logruslogr

import (
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// New returns a logr.Logger sinking to l.
// V(0) logs at logrus's info level, higher verbosities at debug level.
func New(l *logrus.Logger) logr.Logger {
	return logr.New(&sink{l: l})
}

type sink struct {
	l      *logrus.Logger
	fields logrus.Fields
	name   string
}

var _ logr.LogSink = (*sink)(nil)

func (s *sink) Init(logr.RuntimeInfo) {}

func (s *sink) Enabled(level int) bool {
	return s.l.IsLevelEnabled(logrusLevel(level))
}

func (s *sink) Info(level int, msg string, keysAndValues ...interface{}) {
	s.entry(keysAndValues).Log(logrusLevel(level), msg)
}

func (s *sink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.entry(keysAndValues).WithError(err).Error(msg)
}

func (s *sink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	fields := make(logrus.Fields, len(s.fields)+len(keysAndValues)/2)
	for k, v := range s.fields {
		fields[k] = v
	}
	addFields(fields, keysAndValues)
	return &sink{l: s.l, fields: fields, name: s.name}
}

func (s *sink) WithName(name string) logr.LogSink {
	if s.name != "" {
		name = s.name + "." + name
	}
	return &sink{l: s.l, fields: s.fields, name: name}
}

func (s *sink) entry(keysAndValues []interface{}) *logrus.Entry {
	fields := make(logrus.Fields, len(s.fields)+len(keysAndValues)/2+1)
	for k, v := range s.fields {
		fields[k] = v
	}
	if s.name != "" {
		fields["logger"] = s.name
	}
	addFields(fields, keysAndValues)
	return s.l.WithFields(fields)
}

func addFields(fields logrus.Fields, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
}

func logrusLevel(level int) logrus.Level {
	if level > 0 {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
