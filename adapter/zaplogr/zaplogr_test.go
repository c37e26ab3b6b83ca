// Copyright 2025 The Arpeggio Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zaplogr

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	log.Info("plain", "k", "v")
	log.V(1).Info("verbose")
	log.V(2).Info("more verbose")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Errorf("V(0) logged at %s, want info", entries[0].Level)
	}
	if v, ok := entries[0].ContextMap()["k"]; !ok || v != "v" {
		t.Errorf("V(0) context = %v, want k=v", entries[0].ContextMap())
	}
	for _, e := range entries[1:] {
		if e.Level != zapcore.DebugLevel {
			t.Errorf("%q logged at %s, want debug", e.Message, e.Level)
		}
	}
}

func TestVerbosityGating(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := New(zap.New(core))

	if log.V(1).Enabled() {
		t.Error("V(1) enabled with an info-level sink")
	}
	log.V(1).Info("dropped")
	if logs.Len() != 0 {
		t.Errorf("got %d entries, want 0", logs.Len())
	}
}

func TestError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	log.Error(errors.New("boom"), "failed", "k", "v")
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("got %v, want one error entry", entries)
	}
	ctx := entries[0].ContextMap()
	if ctx["k"] != "v" {
		t.Errorf("context = %v, want k=v", ctx)
	}
}

func TestWithValuesAndName(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core)).WithName("parser").WithValues("rule", "expr")

	log.Info("hello")
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].LoggerName != "parser" {
		t.Errorf("logger name %q, want parser", entries[0].LoggerName)
	}
	if entries[0].ContextMap()["rule"] != "expr" {
		t.Errorf("context = %v, want rule=expr", entries[0].ContextMap())
	}
}
