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

func TestPlaneStoreInternsIdenticalPlanes(t *testing.T) {
	s := NewPlaneStore()
	p := NewPlane(Vec3{X: 1}, 64)

	id1 := s.AddOrFind(p)
	id2 := s.AddOrFind(p)

	if id1 != id2 {
		t.Fatalf("expected same id for identical plane, got %d and %d", id1, id2)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 stored halves after one insert, got %d", s.Len())
	}
}

func TestPlaneStoreFindsReversedPlaneAsFlip(t *testing.T) {
	s := NewPlaneStore()
	p := NewPlane(Vec3{X: 1}, 64)
	rev := NewPlane(Vec3{X: -1}, -64)

	id := s.AddOrFind(p)
	revID := s.AddOrFind(rev)

	if revID != id^1 {
		t.Fatalf("expected reversed plane to be id^1 (%d), got %d", id^1, revID)
	}
	if s.Len() != 2 {
		t.Fatalf("expected reversed plane to reuse the pair, got Len()=%d", s.Len())
	}
}

func TestPlaneStoreDistinctPlanesGetDistinctIds(t *testing.T) {
	s := NewPlaneStore()
	id1 := s.AddOrFind(NewPlane(Vec3{X: 1}, 0))
	id2 := s.AddOrFind(NewPlane(Vec3{Y: 1}, 0))

	if id1 == id2 {
		t.Fatalf("expected distinct ids for distinct planes")
	}
}

func TestGetPositiveReturnsEvenID(t *testing.T) {
	s := NewPlaneStore()
	id := s.AddOrFind(NewPlane(Vec3{X: -1}, -32))

	got := s.GetPositive(id)
	want := s.Get(id &^ 1)
	if got != want {
		t.Fatalf("GetPositive(%d) = %v, want Get(%d) = %v", id, got, id&^1, want)
	}
}

func TestClassifyPlaneType(t *testing.T) {
	cases := []struct {
		n    Vec3
		want PlaneType
	}{
		{Vec3{X: 1}, PlaneAxialX},
		{Vec3{X: -1}, PlaneAxialX},
		{Vec3{Y: 1}, PlaneAxialY},
		{Vec3{Z: 1}, PlaneAxialZ},
		{Vec3{X: 0.7, Y: 0.7}, PlaneAnyX},
	}
	for _, c := range cases {
		if got := classifyPlaneType(c.n); got != c.want {
			t.Errorf("classifyPlaneType(%v) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestPlaneDistanceTo(t *testing.T) {
	p := NewPlane(Vec3{X: 1}, 10)
	if d := p.DistanceTo(Vec3{X: 15}); d != 5 {
		t.Errorf("DistanceTo = %v, want 5", d)
	}
	if d := p.DistanceTo(Vec3{X: 10}); d != 0 {
		t.Errorf("DistanceTo on-plane = %v, want 0", d)
	}
}
