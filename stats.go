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

// stats.go
package brushbsp

import "sync/atomic"

// Stats mirrors bspstats_t from the original source one field at a time.
// Every counter is updated with atomic ops since BuildTree_r recurses
// concurrently over sibling subtrees.
type Stats struct {
	// Nodes is the total number of internal nodes created, including Nonvis.
	Nodes int64
	// Nonvis counts nodes created by splitting on a side that wasn't visible.
	Nonvis int64
	// QualitySearch counts nodes chosen by the 4-pass quality search.
	QualitySearch int64
	// Midsplit counts nodes chosen by the midsplit strategy.
	Midsplit int64
	// Leafs is the total number of leaves.
	Leafs int64
	// Bogus counts split children rejected as degenerate (no usable
	// bounds) or for exceeding world extents.
	Bogus int64
	// BrushesRemoved counts brushes entirely consumed by a split (both
	// children degenerate).
	BrushesRemoved int64
	// BrushesOneSided counts brushes where only one child survived a split.
	BrushesOneSided int64
	// TinyVolumes counts split results dropped for falling below
	// Options.MicroVolume.
	TinyVolumes int64

	LeafStats ContentStats
}

func (s *Stats) incNodes()           { atomic.AddInt64(&s.Nodes, 1) }
func (s *Stats) incNonvis()          { atomic.AddInt64(&s.Nonvis, 1) }
func (s *Stats) incQualitySearch()   { atomic.AddInt64(&s.QualitySearch, 1) }
func (s *Stats) incMidsplit()        { atomic.AddInt64(&s.Midsplit, 1) }
func (s *Stats) incLeafs()           { atomic.AddInt64(&s.Leafs, 1) }
func (s *Stats) incBogus()           { atomic.AddInt64(&s.Bogus, 1) }
func (s *Stats) incBrushesRemoved()  { atomic.AddInt64(&s.BrushesRemoved, 1) }
func (s *Stats) incBrushesOneSided() { atomic.AddInt64(&s.BrushesOneSided, 1) }
func (s *Stats) incTinyVolumes()     { atomic.AddInt64(&s.TinyVolumes, 1) }

// ChopStats mirrors chopstats_t: what ChopBrushes did to the input set.
type ChopStats struct {
	// Swallowed counts brushes entirely absorbed by a higher-priority one.
	Swallowed int
	// FromSplit counts fragments produced by a real (partial) subtraction.
	FromSplit int
}
