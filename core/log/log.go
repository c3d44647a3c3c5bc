// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a logging system that works well with context.Context.
// It stores a severity level and a set of key/value tags on the context, and
// only pays the formatting cost for a log line when that severity is active.
//
// Basic usage is:
//
//	log.I(ctx, "starting pass %v", pass)
//	log.ErrorAt(ctx).With("file", path).Log("lexical error")
//
// To control the destination use log.SetHandler, and to control the filter
// use severity.Filter on the context.
package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minic-lang/minic/core/fault/severity"
)

// Handler receives rendered log lines.
type Handler interface {
	Handle(level severity.Level, tags []Tag, message string)
}

// Tag is a single key/value pair attached to a log line.
type Tag struct {
	Key   string
	Value interface{}
}

// WriterHandler adapts an io.Writer into a Handler.
type WriterHandler struct{ W io.Writer }

// Handle implements Handler.
func (h WriterHandler) Handle(level severity.Level, tags []Tag, message string) {
	fmt.Fprintf(h.W, "%v: %v", level, message)
	for _, t := range tags {
		fmt.Fprintf(h.W, " %v=%v", t.Key, t.Value)
	}
	fmt.Fprintln(h.W)
}

var handler Handler = WriterHandler{os.Stderr}

// SetHandler installs the handler that rendered log lines are sent to.
func SetHandler(h Handler) { handler = h }

type tagsKeyType struct{}

// Logger is a severity-gated, tag-carrying log line builder.
// Loggers are cheap immutable values; chain With to accumulate tags and
// finish with Log or Logf.
type Logger struct {
	ctx    context.Context
	level  severity.Level
	active bool
	tags   []Tag
}

// From builds a Logger at Info severity from ctx. Use the At/Info/ErrorAt/...
// helpers to pick a different severity.
func From(ctx context.Context) Logger { return At(ctx, severity.Info) }

// At builds a Logger at the given severity, filtered by the context.
func At(ctx context.Context, level severity.Level) Logger {
	tags, _ := ctx.Value(tagsKeyType{}).([]Tag)
	return Logger{ctx: ctx, level: level, active: severity.Enabled(ctx, level), tags: tags}
}

// Emergency, Alert, Critical, ErrorAt, Warning, Notice, Info and Debug return a
// Logger at the matching severity for ctx.
func Emergency(ctx context.Context) Logger { return At(ctx, severity.Emergency) }
func Alert(ctx context.Context) Logger     { return At(ctx, severity.Alert) }
func Critical(ctx context.Context) Logger  { return At(ctx, severity.Critical) }
func ErrorAt(ctx context.Context) Logger   { return At(ctx, severity.Error) }
func Warning(ctx context.Context) Logger   { return At(ctx, severity.Warning) }
func Notice(ctx context.Context) Logger    { return At(ctx, severity.Notice) }
func Info(ctx context.Context) Logger      { return At(ctx, severity.Info) }
func Debug(ctx context.Context) Logger     { return At(ctx, severity.Debug) }

// Active returns true if the logger is not being suppressed by the filter.
func (l Logger) Active() bool { return l.active }

// With returns a copy of l with an additional key/value tag.
func (l Logger) With(key string, value interface{}) Logger {
	if !l.active {
		return l
	}
	tags := make([]Tag, len(l.tags), len(l.tags)+1)
	copy(tags, l.tags)
	l.tags = append(tags, Tag{key, value})
	return l
}

// Log sends message to the handler if the logger is active.
func (l Logger) Log(message string) {
	if !l.active {
		return
	}
	handler.Handle(l.level, l.tags, message)
}

// Logf formats and sends a message to the handler if the logger is active.
func (l Logger) Logf(format string, args ...interface{}) {
	if !l.active {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// WithTag returns a context.Context with an additional key/value tag that
// every Logger built from it (via From/At/...) will automatically carry.
func WithTag(ctx context.Context, key string, value interface{}) context.Context {
	tags, _ := ctx.Value(tagsKeyType{}).([]Tag)
	next := make([]Tag, len(tags), len(tags)+1)
	copy(next, tags)
	next = append(next, Tag{key, value})
	return context.WithValue(ctx, tagsKeyType{}, next)
}

// I, W, E and D are shorthand package-level helpers for the common severities.
func I(ctx context.Context, format string, args ...interface{}) { Info(ctx).Logf(format, args...) }
func W(ctx context.Context, format string, args ...interface{}) { Warning(ctx).Logf(format, args...) }
func E(ctx context.Context, format string, args ...interface{}) { ErrorAt(ctx).Logf(format, args...) }
func D(ctx context.Context, format string, args ...interface{}) { Debug(ctx).Logf(format, args...) }

// F logs a fatal message, and if fatal is true terminates the process.
func F(ctx context.Context, fatal bool, format string, args ...interface{}) {
	Emergency(ctx).Logf(format, args...)
	if fatal {
		os.Exit(1)
	}
}
