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

// Package severity defines the logging severity levels shared by the core
// logger and the diagnostics it reports.
package severity

import (
	"context"
	"strconv"
)

// Level defines the severity level of a logging message.
// The levels match the ones defined in rfc5424 for syslog.
type Level int32

const (
	// Emergency indicates the system is unusable, no further data should be trusted.
	Emergency Level = iota
	// Alert indicates action must be taken immediately.
	Alert
	// Critical indicates errors severe enough to terminate processing.
	Critical
	// Error indicates non terminal failure conditions that may have an effect on results.
	Error
	// Warning indicates issues that might affect performance or compatibility, but could be ignored.
	Warning
	// Notice indicates normal but significant conditions.
	Notice
	// Info indicates minor informational messages that should generally be ignored.
	Info
	// Debug indicates verbose debug-level messages.
	Debug
)

// DefaultLevel is the severity assumed for a context that never called NewContext.
var DefaultLevel = Notice

// DefaultFilter is the default severity to filter at.
var DefaultFilter = Debug

type levelKeyType struct{}
type filterKeyType struct{}

// NewContext returns a new context with the severity set to level.
func NewContext(ctx context.Context, level Level) context.Context {
	return context.WithValue(ctx, levelKeyType{}, level)
}

// FromContext returns the current severity level of the context.
func FromContext(ctx context.Context) Level {
	if v, ok := ctx.Value(levelKeyType{}).(Level); ok {
		return v
	}
	return DefaultLevel
}

// GetFilter returns the current severity level filter of the context.
func GetFilter(ctx context.Context) Level {
	if v, ok := ctx.Value(filterKeyType{}).(Level); ok {
		return v
	}
	return DefaultFilter
}

// Filter returns a new context with the severity level filter set.
// Levels numerically greater than level (i.e. less severe) are suppressed.
func Filter(ctx context.Context, level Level) context.Context {
	return context.WithValue(ctx, filterKeyType{}, level)
}

// Enabled tests if the specified level is currently enabled for logging in the given context.
func Enabled(ctx context.Context, level Level) bool {
	return level <= GetFilter(ctx)
}

var levelToName = map[Level]string{
	Emergency: "Emergency",
	Alert:     "Alert",
	Critical:  "Critical",
	Error:     "Error",
	Warning:   "Warning",
	Notice:    "Notice",
	Info:      "Info",
	Debug:     "Debug",
}

// String returns the name of the severity level.
func (l Level) String() string {
	if name, ok := levelToName[l]; ok {
		return name
	}
	return strconv.Itoa(int(l))
}
