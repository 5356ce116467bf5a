// Copyright (C) 2022, VigilantDoomer
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

// options.go
package brushbsp

import "github.com/vigilantdoomer/brushbsp/bsplog"

// Options carries the numeric knobs spec §6 names as consumed collaborator
// state. Like the teacher's ProgramConfig, an Options value is built once
// and treated as read-only for the remainder of a build; BuildTree and
// ChopBrushes only ever take a *Options, never mutate it, so it may be
// shared freely across the fork/join tree of goroutines.
type Options struct {
	// WorldExtent is the maximum coordinate magnitude defining the legal
	// world volume; brushes or clip results outside it are bogus.
	WorldExtent float64
	// MicroVolume is the minimum brush volume kept after a split; smaller
	// fragments are discarded.
	MicroVolume float64
	// OnEpsilon is the general-purpose "close enough to be on the plane"
	// tolerance used by callers outside this package (kept here because
	// options are meant to travel as one bundle); the core itself uses the
	// named epsilon constants in plane.go for its own tests.
	OnEpsilon float64
	// MidsplitBrushFraction, when nonzero, switches a node to the midsplit
	// strategy once its brush count divided by the entity's total brush
	// count exceeds this fraction.
	MidsplitBrushFraction float64
	// MaxNodeSize, when >= 64, switches a node to midsplit once any axis
	// of its bounds exceeds MaxNodeSize - Epsilon.
	MaxNodeSize float64
	// Epsilon is subtracted from MaxNodeSize before the size comparison.
	Epsilon float64

	// Log receives progress and diagnostic output. A nil Log is valid and
	// simply silences it, so tests can build an Options without any I/O.
	Log *bsplog.Logger
}

// verbose forwards to opts.Log.Verbose if a logger is configured, else it
// is a silent no-op. Every call site in this package that wants to narrate
// progress goes through this instead of nil-checking opts.Log directly.
func (o *Options) verbose(level int, format string, a ...interface{}) {
	if o == nil || o.Log == nil {
		return
	}
	o.Log.Verbose(level, format, a...)
}

// stat forwards to opts.Log.Stat if a logger is configured, else it is a
// silent no-op, for the unconditional counter summaries that print
// regardless of verbosity.
func (o *Options) stat(format string, a ...interface{}) {
	if o == nil || o.Log == nil {
		return
	}
	o.Log.Stat(format, a...)
}

// DefaultOptions returns the values ericw-tools-derived compilers ship as
// defaults, suitable for tests and the cmd/brushbsp demo.
func DefaultOptions() *Options {
	return &Options{
		WorldExtent:           1 << 15,
		MicroVolume:           1.0,
		OnEpsilon:             0.1,
		MidsplitBrushFraction: 0,
		MaxNodeSize:           1024,
		Epsilon:               0.1,
	}
}
