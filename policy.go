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

// policy.go
package brushbsp

// Contents is an opaque per-brush/per-leaf content tag (solid, empty,
// water, ...). Its meaning is entirely owned by the target-game policy;
// the core only ever combines, compares and stores it.
type Contents any

// ContentStats accumulates whatever a ContentsPolicy wants to report about
// the leaves counted into it (e.g. "N solid leafs, M water leafs"). It is
// opaque to the core, which only ever creates one via NewStats and hands
// leaf contents to CountInStats.
type ContentStats interface {
	// Summary renders the accumulated counts for logging.
	Summary() string
}

// ContentsPolicy is the target-game content policy the core consumes
// (spec §6): it decides what "empty" means, how two contents values
// combine into a leaf, and which brushes are detail vs. structural or
// solid for the chopper and BrushGE.
type ContentsPolicy interface {
	EmptyContents() Contents
	Combine(a, b Contents) Contents
	IsAnyDetail(c Contents) bool
	IsSolid(c Contents) bool
	NewStats() ContentStats
	CountInStats(c Contents, stats ContentStats)
}

// MapBrush is the per-brush source reference the core treats as an opaque
// back-reference (spec §3): map parsing, texture/wad resolution and entity
// handling all live outside this package. Contents here is what
// ContentsPolicy.IsAnyDetail/IsSolid classify brushes by; it is usually,
// but need not be, identical to the Contents on the Brush itself (which
// tracks what a fragment currently carries after chopping/splitting).
type MapBrush struct {
	// Contents is the original, unfragmented brush's content tag.
	Contents Contents
	// Line is a diagnostic-only source location (e.g. a line number in the
	// originating .map file), reported in warnings.
	Line int
}
