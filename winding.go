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

// winding.go
package brushbsp

// Winding is an ordered sequence of points forming a convex polygon lying
// in a single plane.
type Winding []Vec3

const (
	sideFront = 0
	sideBack  = 1
	sideOn    = 2
)

// baseWindingSize is how far BaseWindingForPlane's initial square extends
// from the plane's origin. It must exceed any brush's bounds, including
// after the world bounds get grown by SideSpace, so it is derived from the
// configured world extent rather than a fixed constant.
func baseWindingSize(worldExtent float64) float64 {
	return worldExtent*4 + SideSpace*8
}

// BaseWindingForPlane returns a huge square lying in the plane, the
// starting point for clipping a plane down to a brush side's face.
func BaseWindingForPlane(p Plane, worldExtent float64) Winding {
	// Find the major axis of the normal.
	axis := 0
	max := -1.0
	for i := 0; i < 3; i++ {
		v := absf(p.Normal.Component(i))
		if v > max {
			max = v
			axis = i
		}
	}

	up := Vec3{}
	switch axis {
	case 0, 1:
		up.Z = 1
	case 2:
		up.X = 1
	}

	v := up.Dot(p.Normal)
	up = up.Sub(p.Normal.Scale(v)).Normalize()

	org := p.Normal.Scale(p.Dist)
	right := up.Cross(p.Normal)

	size := baseWindingSize(worldExtent)
	up = up.Scale(size)
	right = right.Scale(size)

	return Winding{
		org.Sub(right).Add(up),
		org.Add(right).Add(up),
		org.Add(right).Sub(up),
		org.Sub(right).Sub(up),
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Clip splits w against plane, returning the portion(s) in front of and
// behind it. Points within epsilon of the plane are considered "on" it and
// are copied to both results. Either result may be nil if w lies entirely
// on the other side.
func (w Winding) Clip(plane Plane, epsilon float64) (front, back Winding) {
	n := len(w)
	if n == 0 {
		return nil, nil
	}

	dists := make([]float64, n)
	sides := make([]int, n)
	var counts [3]int

	for i, p := range w {
		d := plane.DistanceTo(p)
		dists[i] = d
		switch {
		case d > epsilon:
			sides[i] = sideFront
		case d < -epsilon:
			sides[i] = sideBack
		default:
			sides[i] = sideOn
		}
		counts[sides[i]]++
	}

	if counts[sideFront] == 0 {
		return nil, w
	}
	if counts[sideBack] == 0 {
		return w, nil
	}

	for i := 0; i < n; i++ {
		p1 := w[i]

		if sides[i] == sideOn {
			front = append(front, p1)
			back = append(back, p1)
			continue
		}
		if sides[i] == sideFront {
			front = append(front, p1)
		} else {
			back = append(back, p1)
		}

		next := (i + 1) % n
		if sides[next] == sideOn || sides[next] == sides[i] {
			continue
		}

		p2 := w[next]
		t := dists[i] / (dists[i] - dists[next])
		mid := Lerp(p1, p2, t)
		front = append(front, mid)
		back = append(back, mid)
	}

	return front, back
}

// ClipBack returns only the portion of w behind plane (used to intersect a
// base winding with each of a brush's other half-spaces in turn). A nil
// result means w lies entirely in front of plane.
func (w Winding) ClipBack(plane Plane) Winding {
	_, back := w.Clip(plane, 0)
	return back
}

// Flip reverses point order, used to make a mid-split face point the other
// way when it is pushed onto both child brushes.
func (w Winding) Flip() Winding {
	out := make(Winding, len(w))
	for i, p := range w {
		out[len(w)-1-i] = p
	}
	return out
}

// Area computes the polygon's area via a fan triangulation from its first
// vertex.
func (w Winding) Area() float64 {
	if len(w) < 3 {
		return 0
	}
	var total Vec3
	for i := 1; i < len(w)-1; i++ {
		e1 := w[i].Sub(w[0])
		e2 := w[i+1].Sub(w[0])
		total = total.Add(e1.Cross(e2))
	}
	return 0.5 * total.Length()
}

// tinyWindingSize is the edge-length threshold below which SplitBrush
// treats a candidate mid-face as noise rather than a real split. The
// original leaves this as an unparametrized default inside WindingIsTiny;
// we fix it at a value well below any legal brush face in Quake map units.
const tinyWindingSize = 0.5

// IsTiny reports whether w has fewer than 3 edges longer than size. Such a
// sliver would be crunched out of existence by downstream vertex snapping.
func (w Winding) IsTiny(size float64) bool {
	n := len(w)
	if n < 3 {
		return true
	}
	edges := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if w[j].Sub(w[i]).Length() > size {
			edges++
			if edges == 3 {
				return false
			}
		}
	}
	return true
}

// IsHuge reports whether any vertex still carries a coordinate from
// BaseWindingForPlane's initial square, i.e. clipping failed to bound it.
func (w Winding) IsHuge(worldExtent float64) bool {
	for _, p := range w {
		if absf(p.X) > worldExtent || absf(p.Y) > worldExtent || absf(p.Z) > worldExtent {
			return true
		}
	}
	return false
}

// Bounds computes the AABB enclosing every vertex.
func (w Winding) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range w {
		b.ExtendPoint(p)
	}
	return b
}
