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

// brush.go
package brushbsp

// SkipTexInfo is the sentinel texinfo reference given to synthetic
// mid-split faces, matching the original's map.skip_texinfo.
const SkipTexInfo = -1

// SideFlags are the per-side bits spec §3 names. Tested is per-plane-
// selection-pass scratch and must never be read across node boundaries;
// OnNode persists for the life of one BuildTree call and is reset to false
// on every input side once the whole tree finishes.
type SideFlags struct {
	Bevel    bool
	Visible  bool
	HintSkip bool
	Hint     bool
	Tested   bool
	OnNode   bool
}

// Side is one planar face of a brush.
type Side struct {
	PlaneNum int
	Winding  Winding
	TexInfo  int
	Flags    SideFlags
}

func (s *Side) plane(store *PlaneStore) Plane {
	return store.Get(s.PlaneNum)
}

func (s *Side) positivePlane(store *PlaneStore) Plane {
	return store.GetPositive(s.PlaneNum)
}

// Brush is a convex polyhedron: the intersection of its sides' half-spaces.
type Brush struct {
	Sides    []Side
	Bounds   AABB
	Contents Contents

	// MapBrush is the non-owning back-reference to the source brush this
	// fragment (or its ancestors) came from.
	MapBrush *MapBrush
	// OriginalPtr points at the root ancestor brush a chain of splits
	// descends from, so it can be found in one hop instead of walking a
	// chain. SplitBrush sets it on every fragment it creates.
	OriginalPtr *Brush

	// side/testSide are per-plane-selection-pass scratch classification
	// bits (PSideFront | PSideBack | ...). They are local to whichever
	// brush-list partition is being processed by the current goroutine and
	// must never be read by a sibling subtree.
	side, testSide int
}

// originalBrush returns the ancestor to record for leaf accounting: the
// root of the split chain if this fragment came from a split, else itself.
func (b *Brush) originalBrush() *Brush {
	if b.OriginalPtr != nil {
		return b.OriginalPtr
	}
	return b
}

// copy returns a shallow duplicate: same Sides backing semantics (each
// Side's Winding is not deep-copied, since it is replaced wholesale by
// every operation that would otherwise need to mutate it), used where the
// original needs a disposable brush it can consume (CheckPlaneAgainstVolume
// splits a copy of the node's volume rather than the node's own volume).
func (b *Brush) copy() *Brush {
	sides := make([]Side, len(b.Sides))
	copy(sides, b.Sides)
	return &Brush{
		Sides:       sides,
		Bounds:      b.Bounds,
		Contents:    b.Contents,
		MapBrush:    b.MapBrush,
		OriginalPtr: b.OriginalPtr,
	}
}

// updateBounds recomputes Bounds from the vertices of every side's
// winding. It reports false (and leaves Bounds untouched) if the brush is
// degenerate: no side has a winding, or fewer than 3 sides remain.
func (b *Brush) updateBounds() bool {
	if len(b.Sides) < 3 {
		return false
	}
	bounds := EmptyAABB()
	any := false
	for _, s := range b.Sides {
		for _, p := range s.Winding {
			bounds.ExtendPoint(p)
			any = true
		}
	}
	if !any || !bounds.Valid() {
		return false
	}
	b.Bounds = bounds
	return true
}

// BrushFromBounds builds a 6-sided axial brush from an AABB, interning its
// six axis planes and clipping their base windings against each other.
func BrushFromBounds(bounds AABB, store *PlaneStore, worldExtent float64) *Brush {
	b := &Brush{Sides: make([]Side, 6)}

	for i := 0; i < 3; i++ {
		normal := Vec3{}
		normal.SetComponent(i, 1)
		plane := NewPlane(normal, bounds.Max.Component(i))
		b.Sides[i] = Side{PlaneNum: store.AddOrFind(plane)}

		normal = Vec3{}
		normal.SetComponent(i, -1)
		plane = NewPlane(normal, -bounds.Min.Component(i))
		b.Sides[3+i] = Side{PlaneNum: store.AddOrFind(plane)}
	}

	CreateBrushWindings(b, store, worldExtent)
	return b
}

// CreateBrushWindings computes each side's winding as its plane's base
// winding clipped behind every other side's plane, discarding sides that
// clip away to nothing.
func CreateBrushWindings(b *Brush, store *PlaneStore, worldExtent float64) {
	kept := b.Sides[:0]
	for i := range b.Sides {
		side := b.Sides[i]
		plane := store.Get(side.PlaneNum)
		w := BaseWindingForPlane(plane, worldExtent)

		for j := range b.Sides {
			if i == j {
				continue
			}
			if w == nil {
				break
			}
			other := store.Get(b.Sides[j].PlaneNum)
			w = w.ClipBack(other)
		}

		if len(w) == 0 {
			continue
		}
		side.Winding = w
		kept = append(kept, side)
	}
	b.Sides = kept
	b.updateBounds()
}

// BrushVolume computes the brush's volume by fanning tetrahedra from an
// arbitrary vertex (the first vertex of the last side that has a winding)
// to every face.
func BrushVolume(b *Brush, store *PlaneStore) float64 {
	var corner Vec3
	found := false
	for _, s := range b.Sides {
		if len(s.Winding) > 0 {
			corner = s.Winding[0]
			found = true
		}
	}
	if !found {
		return 0
	}

	var volume float64
	for _, s := range b.Sides {
		if len(s.Winding) == 0 {
			continue
		}
		plane := store.Get(s.PlaneNum)
		d := -(corner.Dot(plane.Normal) - plane.Dist)
		area := s.Winding.Area()
		volume += d * area
	}
	return volume / 3
}

// BrushesDisjoint reports whether a and b definitely do not intersect.
// There are false negatives (returns false while they don't actually
// overlap) for some non-axial combinations, but never a false positive.
func BrushesDisjoint(a, b *Brush) bool {
	if a.Bounds.DisjointOrTouching(b.Bounds) {
		return true
	}
	for _, as := range a.Sides {
		for _, bs := range b.Sides {
			if as.PlaneNum == (bs.PlaneNum ^ 1) {
				return true
			}
		}
	}
	return false
}

// BrushGE reports whether b1 is allowed to bite b2 while carving
// overlapping brushes (spec §4.5): detail brushes may never bite
// structural ones, and only solid brushes may bite at all.
func BrushGE(b1, b2 *Brush, policy ContentsPolicy) bool {
	if policy.IsAnyDetail(b1.MapBrush.Contents) && !policy.IsAnyDetail(b2.MapBrush.Contents) {
		return false
	}
	return policy.IsSolid(b1.MapBrush.Contents)
}
