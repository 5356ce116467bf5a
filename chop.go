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

// chop.go
package brushbsp

import "github.com/dhconnelly/rtreego"

// spatialEpsilon pads a degenerate (zero-thickness) AABB dimension before
// handing it to rtreego, which rejects non-positive rectangle lengths.
const spatialEpsilon = 0.03125

// brushSpatial adapts a *Brush to rtreego.Spatial so ChopBrushes can query
// candidate overlaps in the R-tree instead of testing every pair.
type brushSpatial struct {
	brush *Brush
}

func (bs brushSpatial) Bounds() rtreego.Rect {
	min := bs.brush.Bounds.Min
	lengths := []float64{
		spatialLength(bs.brush.Bounds, 0),
		spatialLength(bs.brush.Bounds, 1),
		spatialLength(bs.brush.Bounds, 2),
	}
	point := rtreego.Point{min.X, min.Y, min.Z}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		// Only possible if a length collapsed to <= 0 despite the clamp
		// above, which would mean a NaN slipped into the brush's bounds.
		invariantf("chop: degenerate spatial bounds for brush: %v", err)
	}
	return rect
}

func spatialLength(b AABB, axis int) float64 {
	l := b.Max.Component(axis) - b.Min.Component(axis)
	if l < spatialEpsilon {
		return spatialEpsilon
	}
	return l
}

// buildSpatialIndex inserts every brush into a fresh R-tree so ChopBrushes
// can ask "who might I overlap" in roughly log time instead of the
// original's flat pairwise scan.
func buildSpatialIndex(brushes []*Brush) *rtreego.Rtree {
	tree := rtreego.NewTree(3, 8, 25)
	for _, b := range brushes {
		tree.Insert(brushSpatial{brush: b})
	}
	return tree
}

func candidateOverlaps(tree *rtreego.Rtree, b *Brush) []*Brush {
	spatial := brushSpatial{brush: b}
	hits := tree.SearchIntersect(spatial.Bounds())
	out := make([]*Brush, 0, len(hits))
	for _, h := range hits {
		if bs, ok := h.(brushSpatial); ok && bs.brush != b {
			out = append(out, bs.brush)
		}
	}
	return out
}

// ChopBrushes carves every overlapping pair of input brushes down to a
// disjoint set, per spec §4.5: whichever brush in a colliding pair has
// bite priority (BrushGE) survives whole, and the other is fragmented by
// SubtractBrush around it. The result covers the same solid volume as the
// input with no interior overlaps, which BuildTree's split counting depends
// on to stay accurate; the one exception is a pair where each brush may
// bite the other and both cuts would leave more than one fragment, which
// is left overlapping.
func ChopBrushes(brushes []*Brush, store *PlaneStore, policy ContentsPolicy, opts *Options) ([]*Brush, ChopStats) {
	var stats ChopStats

	list := make([]*Brush, len(brushes))
	copy(list, brushes)

restart:
	index := buildSpatialIndex(list)

	const unattempted = 1 << 30

	for _, b1 := range list {
		for _, b2 := range candidateOverlaps(index, b1) {
			if b1 == b2 {
				continue
			}
			if BrushesDisjoint(b1, b2) {
				continue
			}

			var sub, sub2 []*Brush
			c1, c2 := unattempted, unattempted

			if BrushGE(b2, b1, policy) {
				sub = SubtractBrush(b1, b2, store, opts)
				if len(sub) == 1 && sub[0] == b1 {
					continue // didn't really intersect
				}
				if len(sub) == 0 {
					// b1 is fully swallowed by b2.
					list = replaceBrush(list, b1, nil)
					stats.Swallowed++
					goto restart
				}
				c1 = len(sub)
			}

			if BrushGE(b1, b2, policy) {
				sub2 = SubtractBrush(b2, b1, store, opts)
				if len(sub2) == 1 && sub2[0] == b2 {
					continue // didn't really intersect
				}
				if len(sub2) == 0 {
					// b2 is fully swallowed by b1.
					list = replaceBrush(list, b2, nil)
					stats.Swallowed++
					goto restart
				}
				c2 = len(sub2)
			}

			if len(sub) == 0 && len(sub2) == 0 {
				continue // neither one can bite
			}

			// Only accept a fragmentation if at least one direction leaves
			// the other brush whole; if both would fragment, leave the
			// pair overlapping rather than split both.
			if c1 != unattempted && c2 != unattempted && c1 > 1 && c2 > 1 {
				continue
			}

			if c1 < c2 {
				list = replaceBrush(list, b1, sub)
				stats.FromSplit += len(sub)
				opts.verbose(2, "chop: cut brush replaced with %d fragment(s)\n", len(sub))
			} else {
				list = replaceBrush(list, b2, sub2)
				stats.FromSplit += len(sub2)
				opts.verbose(2, "chop: cut brush replaced with %d fragment(s)\n", len(sub2))
			}
			goto restart
		}
	}

	opts.stat("chop: %d brushes swallowed, %d fragments produced, %d remain\n", stats.Swallowed, stats.FromSplit, len(list))
	return list, stats
}

// replaceBrush returns a copy of list with old removed and fragments
// appended in its place; fragments may be nil to just remove old.
func replaceBrush(list []*Brush, old *Brush, fragments []*Brush) []*Brush {
	out := make([]*Brush, 0, len(list)+len(fragments))
	for _, b := range list {
		if b == old {
			continue
		}
		out = append(out, b)
	}
	return append(out, fragments...)
}

// SubtractBrush returns the pieces of cut lying outside keep, splitting
// cut successively against every one of keep's planes and keeping only the
// portion in front (outside) at each step - the classic CSG brush
// subtraction used by BrushBSP-style carving. If cut lies entirely inside
// keep, the result is empty. If at any step the inside piece vanishes, cut
// and keep don't actually overlap along keep's remaining volume: whatever
// fragments were collected so far are discarded and the result is
// []*Brush{cut} unchanged (the caller checks for this to avoid an
// unnecessary rebuild).
func SubtractBrush(cut, keep *Brush, store *PlaneStore, opts *Options) []*Brush {
	if BrushesDisjoint(cut, keep) {
		return []*Brush{cut}
	}

	var out []*Brush
	remaining := cut
	dummyStats := &Stats{}

	for _, side := range keep.Sides {
		outside, inside := SplitBrush(remaining, side.PlaneNum, store, opts, dummyStats)
		if inside == nil {
			return []*Brush{cut}
		}
		if outside != nil {
			out = append(out, outside)
		}
		remaining = inside
	}

	// remaining is the part of cut inside every one of keep's half-spaces
	// - i.e. inside keep - and is discarded.
	return out
}
