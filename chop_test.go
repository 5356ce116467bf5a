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

package brushbsp

import "testing"

func TestSubtractBrushDisjointReturnsUnchanged(t *testing.T) {
	store := NewPlaneStore()
	opts := DefaultOptions()

	cut := BrushFromBounds(AABB{Min: Vec3{X: -8, Y: -8, Z: -8}, Max: Vec3{X: 8, Y: 8, Z: 8}}, store, opts.WorldExtent)
	keep := BrushFromBounds(AABB{Min: Vec3{X: 100, Y: 100, Z: 100}, Max: Vec3{X: 116, Y: 116, Z: 116}}, store, opts.WorldExtent)

	out := SubtractBrush(cut, keep, store, opts)
	if len(out) != 1 || out[0] != cut {
		t.Fatalf("expected disjoint subtraction to return cut unchanged, got %v", out)
	}
}

func TestSubtractBrushFullyInsideVanishes(t *testing.T) {
	store := NewPlaneStore()
	opts := DefaultOptions()

	keep := BrushFromBounds(AABB{Min: Vec3{X: -32, Y: -32, Z: -32}, Max: Vec3{X: 32, Y: 32, Z: 32}}, store, opts.WorldExtent)
	cut := BrushFromBounds(AABB{Min: Vec3{X: -4, Y: -4, Z: -4}, Max: Vec3{X: 4, Y: 4, Z: 4}}, store, opts.WorldExtent)

	out := SubtractBrush(cut, keep, store, opts)
	if len(out) != 0 {
		t.Fatalf("expected brush entirely inside keep to vanish, got %d fragments", len(out))
	}
}

func TestSubtractBrushPartialOverlapProducesFragments(t *testing.T) {
	store := NewPlaneStore()
	opts := DefaultOptions()

	keep := BrushFromBounds(AABB{Min: Vec3{X: -32, Y: -32, Z: -32}, Max: Vec3{X: 0, Y: 32, Z: 32}}, store, opts.WorldExtent)
	cut := BrushFromBounds(AABB{Min: Vec3{X: -16, Y: -16, Z: -16}, Max: Vec3{X: 16, Y: 16, Z: 16}}, store, opts.WorldExtent)

	out := SubtractBrush(cut, keep, store, opts)
	if len(out) == 0 {
		t.Fatalf("expected at least one fragment outside keep")
	}
	for _, f := range out {
		if f.Bounds.Max.X <= 0 {
			t.Errorf("fragment %+v unexpectedly entirely inside keep's half", f.Bounds)
		}
	}
}

func TestChopBrushesRemovesOverlap(t *testing.T) {
	store := NewPlaneStore()
	policy := testPolicy{}
	opts := DefaultOptions()

	solid := BrushFromBounds(AABB{Min: Vec3{X: -32, Y: -32, Z: -32}, Max: Vec3{X: 32, Y: 32, Z: 32}}, store, opts.WorldExtent)
	solid.MapBrush = &MapBrush{Contents: "solid"}

	detail := BrushFromBounds(AABB{Min: Vec3{X: -8, Y: -8, Z: -8}, Max: Vec3{X: 8, Y: 8, Z: 8}}, store, opts.WorldExtent)
	detail.MapBrush = &MapBrush{Contents: "detail"}

	out, stats := ChopBrushes([]*Brush{solid, detail}, store, policy, opts)

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if !BrushesDisjoint(out[i], out[j]) {
				t.Errorf("brushes %d and %d still overlap after chopping", i, j)
			}
		}
	}
	if stats.Swallowed == 0 && stats.FromSplit == 0 {
		t.Errorf("expected chopping to record some activity given fully-overlapping input")
	}
}

func TestChopBrushesDetailNeverBitesStructural(t *testing.T) {
	store := NewPlaneStore()
	policy := testPolicy{}
	opts := DefaultOptions()

	structural := BrushFromBounds(AABB{Min: Vec3{X: -8, Y: -8, Z: -8}, Max: Vec3{X: 8, Y: 8, Z: 8}}, store, opts.WorldExtent)
	structural.MapBrush = &MapBrush{Contents: "solid"}

	detail := BrushFromBounds(AABB{Min: Vec3{X: -32, Y: -32, Z: -32}, Max: Vec3{X: 32, Y: 32, Z: 32}}, store, opts.WorldExtent)
	detail.MapBrush = &MapBrush{Contents: "detail"}

	out, _ := ChopBrushes([]*Brush{structural, detail}, store, policy, opts)

	foundWholeStructural := false
	for _, b := range out {
		if b.MapBrush.Contents == "solid" {
			vol := BrushVolume(b, store)
			want := BrushVolume(structural, store)
			if abs64(vol-want) < 1e-2 {
				foundWholeStructural = true
			}
		}
	}
	if !foundWholeStructural {
		t.Errorf("expected the structural brush to survive whole since detail can never bite it")
	}
}
