/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package log is the engine-wide singleton logger: a level-gated
// console writer (colored via fatih/color) plus a rotating log file
// (via gopkg.in/natefinch/lumberjack.v2) that always captures full
// detail regardless of the configured console level.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kraken-mutate/mutantkraken/internal/mutation"
)

// Level is a logging verbosity threshold.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

// ParseLevel converts the config's log_level string into a Level,
// defaulting to Info for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "trace":
		return Trace
	case "debug":
		return Debug
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

var (
	fgRed     = color.New(color.FgRed).SprintFunc()
	fgGreen   = color.New(color.FgGreen).SprintFunc()
	fgYellow  = color.New(color.FgYellow).SprintFunc()
	fgHiBlack = color.New(color.FgHiBlack).SprintFunc()
)

type logger struct {
	level   Level
	console io.Writer
	file    io.Writer
}

var (
	mu       sync.Mutex
	instance *logger
)

// Init sets up the singleton logger: console writes go to w (the CLI
// passes color.Output, i.e. stdout) gated by level, file writes go to a lumberjack-rotated
// file at logFilePath and always capture everything regardless of
// level, so the log file remains the authoritative full-detail record
// the user-visible short message points to.
func Init(level Level, w io.Writer, logFilePath string) {
	mu.Lock()
	defer mu.Unlock()
	instance = &logger{
		level:   level,
		console: w,
		file: &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Reset removes the current logger instance; logging calls become no-ops.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

func get() *logger {
	mu.Lock()
	defer mu.Unlock()

	return instance
}

func (l *logger) log(level Level, levelTag string, colored string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(l.file, "[%s] %s\n", levelTag, msg)
	if level >= l.level {
		_, _ = fmt.Fprintf(l.console, "%s: %s\n", colored, msg)
	}
}

func Tracef(format string, args ...any) {
	if l := get(); l != nil {
		l.log(Trace, "TRACE", fgHiBlack("TRACE"), format, args...)
	}
}

func Debugf(format string, args ...any) {
	if l := get(); l != nil {
		l.log(Debug, "DEBUG", fgHiBlack("DEBUG"), format, args...)
	}
}

func Infof(format string, args ...any) {
	if l := get(); l != nil {
		l.log(Info, "INFO", fgGreen("INFO"), format, args...)
	}
}

func Warnf(format string, args ...any) {
	if l := get(); l != nil {
		l.log(Warn, "WARN", fgYellow("WARN"), format, args...)
	}
}

func Errorf(format string, args ...any) {
	if l := get(); l != nil {
		l.log(Error, "ERROR", fgRed("ERROR"), format, args...)
	}
}

// Mutation logs a finalized mutation.Mutation's result, colored by
// outcome.
func Mutation(m *mutation.Mutation) {
	l := get()
	if l == nil {
		return
	}
	result := m.Result()
	var colored string
	switch result {
	case mutation.Killed:
		colored = fgGreen(result)
	case mutation.Survived:
		colored = fgRed(result)
	case mutation.BuildFailed, mutation.Timeout, mutation.Failed:
		colored = fgYellow(result)
	default:
		colored = fgHiBlack(result)
	}
	line := fmt.Sprintf("%s%s %s at %s:%d", padding(result), colored, m.Operator(), m.FilePath(), m.LineNumber())
	_, _ = fmt.Fprintln(l.console, line)
	_, _ = fmt.Fprintf(l.file, "[RESULT] %s %s at %s:%d\n", result, m.Operator(), m.FilePath(), m.LineNumber())
}

func padding(r mutation.Result) string {
	const width = 13
	s := r.String()
	if len(s) >= width {
		return ""
	}
	pad := make([]byte, width-len(s))
	for i := range pad {
		pad[i] = ' '
	}

	return string(pad)
}
