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

func TestBoxOnPlaneSideAxial(t *testing.T) {
	bounds := unitCubeBounds()
	p := NewPlane(Vec3{X: 1}, 0)

	side := BoxOnPlaneSide(bounds, p)
	if side != PSideBoth {
		t.Fatalf("expected box straddling plane at x=0 to be PSideBoth, got %d", side)
	}

	front := BoxOnPlaneSide(bounds, NewPlane(Vec3{X: 1}, -100))
	if front != PSideFront {
		t.Fatalf("expected box entirely in front, got %d", front)
	}

	back := BoxOnPlaneSide(bounds, NewPlane(Vec3{X: 1}, 100))
	if back != PSideBack {
		t.Fatalf("expected box entirely behind, got %d", back)
	}
}

func TestSplitBrushProducesTwoHalvesForCenterPlane(t *testing.T) {
	store := NewPlaneStore()
	opts := DefaultOptions()
	stats := &Stats{}

	b := BrushFromBounds(unitCubeBounds(), store, opts.WorldExtent)
	planeNum := store.AddOrFind(NewPlane(Vec3{X: 1}, 0))

	front, back := SplitBrush(b, planeNum, store, opts, stats)
	if front == nil || back == nil {
		t.Fatalf("expected both children, got front=%v back=%v", front, back)
	}

	if front.Bounds.Min.X < -1e-6 {
		t.Errorf("front child extends behind split plane: %+v", front.Bounds)
	}
	if back.Bounds.Max.X > 1e-6 {
		t.Errorf("back child extends in front of split plane: %+v", back.Bounds)
	}

	fv := BrushVolume(front, store)
	bv := BrushVolume(back, store)
	want := BrushVolume(b, store) / 2
	if abs64(fv-want) > 1e-2 || abs64(bv-want) > 1e-2 {
		t.Errorf("expected roughly equal halves, got front=%v back=%v want=%v", fv, bv, want)
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestSplitBrushPlaneMissingBrushReturnsWholeOnOneSide(t *testing.T) {
	store := NewPlaneStore()
	opts := DefaultOptions()
	stats := &Stats{}

	b := BrushFromBounds(unitCubeBounds(), store, opts.WorldExtent)
	planeNum := store.AddOrFind(NewPlane(Vec3{X: 1}, 100))

	front, back := SplitBrush(b, planeNum, store, opts, stats)
	if front != nil {
		t.Errorf("expected nil front when brush is entirely behind the plane")
	}
	if back == nil {
		t.Errorf("expected non-nil back")
	}
}

func TestDivideBoundsAxial(t *testing.T) {
	bounds := unitCubeBounds()
	p := NewPlane(Vec3{X: 1}, 0)
	front, back := DivideBounds(bounds, p)

	if front.Min.X != 0 || front.Max.X != bounds.Max.X {
		t.Errorf("front X range = [%v,%v], want [0,%v]", front.Min.X, front.Max.X, bounds.Max.X)
	}
	if back.Max.X != 0 || back.Min.X != bounds.Min.X {
		t.Errorf("back X range = [%v,%v], want [%v,0]", back.Min.X, back.Max.X, bounds.Min.X)
	}
}

func TestSplitPlaneMetricPrefersCenteredPlane(t *testing.T) {
	bounds := unitCubeBounds()
	centered := NewPlane(Vec3{X: 1}, 0)
	offCenter := NewPlane(Vec3{X: 1}, 6)

	mCentered := SplitPlaneMetric(centered, bounds)
	mOff := SplitPlaneMetric(offCenter, bounds)

	if mCentered >= mOff {
		t.Errorf("expected centered plane metric (%v) < off-center metric (%v)", mCentered, mOff)
	}
}

func TestTestBrushToPlanenumDetectsFacingSide(t *testing.T) {
	store := NewPlaneStore()
	opts := DefaultOptions()
	b := BrushFromBounds(unitCubeBounds(), store, opts.WorldExtent)

	// Every side of a fresh axial brush should register PSideFacing
	// against its own plane.
	for _, s := range b.Sides {
		side, _, _, _ := TestBrushToPlanenum(b, s.PlaneNum, store)
		if side&PSideFacing == 0 {
			t.Errorf("expected PSideFacing for brush's own plane %d, got side=%d", s.PlaneNum, side)
		}
	}
}
