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

// vec.go
package brushbsp

import "math"

// Vec3 is a 3D point or direction. brushbsp works purely in double precision,
// unlike the fixed-point 2D geometry of the Doom nodebuilder this package was
// grown from.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}
func (a Vec3) Negate() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LengthSquared() float64 {
	return a.Dot(a)
}

func (a Vec3) Length() float64 {
	return math.Sqrt(a.LengthSquared())
}

func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Component returns the i'th axis value (0=X, 1=Y, 2=Z), used by axis-driven
// code (BoxOnPlaneSide, DivideBounds) that iterates over axes generically.
func (a Vec3) Component(i int) float64 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

func (a *Vec3) SetComponent(i int, v float64) {
	switch i {
	case 0:
		a.X = v
	case 1:
		a.Y = v
	default:
		a.Z = v
	}
}

// Lerp linearly interpolates from a to b by t in [0, 1].
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + t*(b.X-a.X),
		a.Y + t*(b.Y-a.Y),
		a.Z + t*(b.Z-a.Z),
	}
}

// AABB is an axis-aligned bounding box. A degenerate (zero-volume, e.g. a
// single point) box is legal and arises for planar or line-like windings
// during clipping.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a bounds value with Min > Max on every axis, the
// identity element for repeated calls to ExtendPoint/ExtendBounds.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

func (b AABB) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

func (b *AABB) ExtendPoint(p Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

func (b *AABB) ExtendBounds(o AABB) {
	b.ExtendPoint(o.Min)
	b.ExtendPoint(o.Max)
}

// Grow returns the bounds expanded by amount on every side, used to build
// the root node's volume from the entity's bounds (SIDESPACE).
func (b AABB) Grow(amount float64) AABB {
	return AABB{
		Min: Vec3{b.Min.X - amount, b.Min.Y - amount, b.Min.Z - amount},
		Max: Vec3{b.Max.X + amount, b.Max.Y + amount, b.Max.Z + amount},
	}
}

func (b AABB) Extent(axis int) float64 {
	return b.Max.Component(axis) - b.Min.Component(axis)
}

// Volume returns the box's world-unit³ volume; a degenerate (inverted) box
// has zero volume, not negative.
func (b AABB) Volume() float64 {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	if dx < 0 || dy < 0 || dz < 0 {
		return 0
	}
	return dx * dy * dz
}

// DisjointOrTouching reports whether the two boxes have no interior overlap,
// including the case where they only share a boundary face.
func (a AABB) DisjointOrTouching(b AABB) bool {
	return a.Max.X <= b.Min.X || a.Min.X >= b.Max.X ||
		a.Max.Y <= b.Min.Y || a.Min.Y >= b.Max.Y ||
		a.Max.Z <= b.Min.Z || a.Min.Z >= b.Max.Z
}

// ExceedsWorldExtent reports whether any bound of the box lies outside
// [-worldExtent, worldExtent], checked per-axis independently (ported
// literally from SplitBrush's bogus-brush check in the original source,
// which loops mins()[j]/maxs()[j] rather than testing a single combined
// radius).
func (b AABB) ExceedsWorldExtent(worldExtent float64) bool {
	for i := 0; i < 3; i++ {
		if b.Min.Component(i) < -worldExtent || b.Max.Component(i) > worldExtent {
			return true
		}
	}
	return false
}
