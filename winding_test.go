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

import (
	"math"
	"testing"
)

func squareWinding() Winding {
	return Winding{
		{X: -10, Y: -10, Z: 0},
		{X: 10, Y: -10, Z: 0},
		{X: 10, Y: 10, Z: 0},
		{X: -10, Y: 10, Z: 0},
	}
}

func TestBaseWindingForPlaneLiesInPlane(t *testing.T) {
	p := NewPlane(Vec3{Z: 1}, 50)
	w := BaseWindingForPlane(p, 1<<15)
	if len(w) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(w))
	}
	for _, v := range w {
		if math.Abs(p.DistanceTo(v)) > 1e-6 {
			t.Errorf("vertex %v not on plane: dist=%v", v, p.DistanceTo(v))
		}
	}
}

func TestWindingClipSplitsAcrossPlane(t *testing.T) {
	w := squareWinding()
	p := NewPlane(Vec3{X: 1}, 0)

	front, back := w.Clip(p, 0)
	if front == nil || back == nil {
		t.Fatalf("expected both front and back non-nil, got front=%v back=%v", front, back)
	}
	for _, v := range front {
		if v.X < -1e-9 {
			t.Errorf("front vertex %v has negative X", v)
		}
	}
	for _, v := range back {
		if v.X > 1e-9 {
			t.Errorf("back vertex %v has positive X", v)
		}
	}
}

func TestWindingClipEntirelyOnOneSide(t *testing.T) {
	w := squareWinding()
	p := NewPlane(Vec3{X: 1}, 100)

	front, back := w.Clip(p, 0)
	if front != nil {
		t.Fatalf("expected nil front, got %v", front)
	}
	if len(back) != len(w) {
		t.Fatalf("expected back to equal input, got %v", back)
	}
}

func TestWindingClipBack(t *testing.T) {
	w := squareWinding()
	p := NewPlane(Vec3{X: 1}, 0)
	back := w.ClipBack(p)
	for _, v := range back {
		if v.X > 1e-9 {
			t.Errorf("ClipBack vertex %v has positive X", v)
		}
	}
}

func TestWindingFlipReversesOrder(t *testing.T) {
	w := squareWinding()
	flipped := w.Flip()
	if len(flipped) != len(w) {
		t.Fatalf("length mismatch after flip")
	}
	for i := range w {
		if flipped[len(w)-1-i] != w[i] {
			t.Errorf("flip mismatch at %d", i)
		}
	}
}

func TestWindingArea(t *testing.T) {
	w := squareWinding()
	area := w.Area()
	if math.Abs(area-400) > 1e-6 {
		t.Errorf("Area() = %v, want 400", area)
	}
}

func TestWindingIsTiny(t *testing.T) {
	big := squareWinding()
	if big.IsTiny(tinyWindingSize) {
		t.Errorf("expected large square to not be tiny")
	}

	sliver := Winding{
		{X: 0, Y: 0, Z: 0},
		{X: 0.1, Y: 0, Z: 0},
		{X: 0.1, Y: 0.1, Z: 0},
	}
	if !sliver.IsTiny(tinyWindingSize) {
		t.Errorf("expected sliver to be tiny")
	}
}

func TestWindingIsHuge(t *testing.T) {
	huge := BaseWindingForPlane(NewPlane(Vec3{Z: 1}, 0), 1<<15)
	if !huge.IsHuge(1 << 15) {
		t.Errorf("expected unclipped base winding to be huge")
	}
	small := squareWinding()
	if small.IsHuge(1 << 15) {
		t.Errorf("expected small square to not be huge")
	}
}

func TestWindingBounds(t *testing.T) {
	w := squareWinding()
	b := w.Bounds()
	if b.Min != (Vec3{X: -10, Y: -10, Z: 0}) || b.Max != (Vec3{X: 10, Y: 10, Z: 0}) {
		t.Errorf("Bounds() = %+v, want min(-10,-10,0) max(10,10,0)", b)
	}
}
