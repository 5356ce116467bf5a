// Copyright (C) 2022-2023, VigilantDoomer
//
// This file is part of VigilantBSP program.
//
// VigilantBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantBSP.  If not, see <https://www.gnu.org/licenses/>.

// Package bsplog is the central log (stdout/stderr) of the compiler, one
// step removed from the teacher's globally-shared MyLogger: instead of a
// package-level var, callers hold their own *Logger so concurrent
// BuildTree_r subtrees never fight over one global mutex more than they
// have to, while still serializing actual writes to the underlying stream.
package bsplog

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger serializes writes to stdout/stderr from many goroutines and gates
// Verbose calls behind a configured verbosity level.
type Logger struct {
	verbosity int

	mu     sync.Mutex
	slots  []string
	syslog *log.Logger
	errlog *log.Logger
}

// New returns a Logger writing to stdout/stderr at the given verbosity.
func New(verbosity int) *Logger {
	return &Logger{
		verbosity: verbosity,
		syslog:    log.New(os.Stdout, "", 0),
		errlog:    log.New(os.Stderr, "", 0),
	}
}

// Printf writes an unconditional line to stdout.
func (l *Logger) Printf(format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.syslog.Printf(format, a...)
}

// Error writes to stderr. It does not stop execution.
func (l *Logger) Error(format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errlog.Printf(format, a...)
}

// Verbose writes to stdout only if level is at or below the logger's
// configured verbosity, for the increasingly chatty detail a `-v -v -v`
// user asked for.
func (l *Logger) Verbose(level int, format string, a ...interface{}) {
	if level > l.verbosity {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.syslog.Printf(format, a...)
}

// Stat writes an unconditional summary line to stdout, regardless of
// verbosity - counters like node/leaf/fragment totals that a caller always
// wants to see once a build finishes, not gated behind -v.
func (l *Logger) Stat(format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.syslog.Printf(format, a...)
}

// Push writes into slot, clobbering whatever was written there before -
// used by a subtree that wants to report only its final progress line
// rather than every intermediate one.
func (l *Logger) Push(slot int, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for slot >= len(l.slots) {
		l.slots = append(l.slots, "")
	}
	l.slots[slot] = fmt.Sprintf(format, a...)
}

// Flush prints every slot written by Push, in order, and clears them.
func (l *Logger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.slots {
		if s != "" {
			l.syslog.Print(s)
		}
	}
	l.slots = nil
}

// Sync blocks until any write in flight completes, used before the process
// exits so a deferred Flush from another goroutine isn't lost.
func (l *Logger) Sync() {
	l.mu.Lock()
	l.mu.Unlock()
}
