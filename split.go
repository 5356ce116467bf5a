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

// split.go
package brushbsp

// PSide bits classify a brush relative to a candidate splitting plane.
const (
	PSideFront  = 1
	PSideBack   = 2
	PSideBoth   = PSideFront | PSideBack
	PSideFacing = 4
)

// BoxOnPlaneSide classifies an AABB against a plane. Axial planes take the
// cheap single-component path; oblique planes project the two extremal
// corners (chosen from the normal's sign per axis) onto the normal.
func BoxOnPlaneSide(bounds AABB, plane Plane) int {
	if plane.Type < PlaneAnyX {
		axis := int(plane.Type)
		side := 0
		if bounds.Max.Component(axis) > plane.Dist+PlaneSideEpsilon {
			side |= PSideFront
		}
		if bounds.Min.Component(axis) < plane.Dist-PlaneSideEpsilon {
			side |= PSideBack
		}
		return side
	}

	var corners [2]Vec3
	for i := 0; i < 3; i++ {
		if plane.Normal.Component(i) < 0 {
			corners[0].SetComponent(i, bounds.Min.Component(i))
			corners[1].SetComponent(i, bounds.Max.Component(i))
		} else {
			corners[1].SetComponent(i, bounds.Min.Component(i))
			corners[0].SetComponent(i, bounds.Max.Component(i))
		}
	}

	dist1 := plane.Normal.Dot(corners[0]) - plane.Dist
	dist2 := plane.Normal.Dot(corners[1]) - plane.Dist
	side := 0
	if dist1 >= PlaneSideEpsilon {
		side = PSideFront
	}
	if dist2 < PlaneSideEpsilon {
		side |= PSideBack
	}
	return side
}

// TestBrushToPlanenum classifies brush against planeNum. If the brush
// already has a side on that plane (or its flip), the classification is
// exact and carries PSideFacing. Otherwise it falls back to BoxOnPlaneSide,
// and if that reports PSideBoth, tallies the split metrics quality-search
// plane selection needs: numSplits (visible, non-onnode sides actually
// crossed), hintSplit (whether a hint face was among them), and
// epsilonBrush (whether some vertex barely pokes through the plane).
func TestBrushToPlanenum(brush *Brush, planeNum int, store *PlaneStore) (side, numSplits int, hintSplit bool, epsilonBrush int) {
	for _, s := range brush.Sides {
		if s.PlaneNum == planeNum {
			return PSideBack | PSideFacing, 0, false, 0
		}
		if s.PlaneNum == (planeNum ^ 1) {
			return PSideFront | PSideFacing, 0, false, 0
		}
	}

	plane := store.Get(planeNum)
	s := BoxOnPlaneSide(brush.Bounds, plane)
	if s != PSideBoth {
		return s, 0, false, 0
	}

	var dFront, dBack float64
	for _, side := range brush.Sides {
		if side.Flags.OnNode || !side.Flags.Visible || len(side.Winding) == 0 {
			continue
		}
		front, back := false, false
		for _, point := range side.Winding {
			d := plane.Normal.Dot(point) - plane.Dist
			if d > dFront {
				dFront = d
			}
			if d < dBack {
				dBack = d
			}
			if d > 0.1 {
				front = true
			}
			if d < -0.1 {
				back = true
			}
		}
		if front && back && !side.Flags.HintSkip {
			numSplits++
			if side.Flags.Hint {
				hintSplit = true
			}
		}
	}

	if (dFront > 0.0 && dFront < 1.0) || (dBack < 0.0 && dBack > -1.0) {
		epsilonBrush++
	}

	return s, numSplits, hintSplit, epsilonBrush
}

// BrushMostlyOnSide votes a whole brush to whichever side of plane holds
// the vertex with the largest absolute signed distance, used when a
// candidate split's mid-face clips away to nothing or a sliver.
func BrushMostlyOnSide(brush *Brush, plane Plane) int {
	max := 0.0
	side := PSideFront
	for _, face := range brush.Sides {
		for _, p := range face.Winding {
			d := plane.Normal.Dot(p) - plane.Dist
			if d > max {
				max = d
				side = PSideFront
			}
			if -d > max {
				max = -d
				side = PSideBack
			}
		}
	}
	return side
}

// SplitBrush partitions brush by planeNum, returning the front and/or back
// child. Either may be nil (the brush lay wholly on one side, or a piece
// was dropped as bogus/tiny); both nil means the brush vanished entirely.
// brush itself is not mutated; callers that mean to consume it should
// discard their reference afterward as the original C++ does by move.
func SplitBrush(brush *Brush, planeNum int, store *PlaneStore, opts *Options, stats *Stats) (front, back *Brush) {
	split := store.Get(planeNum)

	var dFront, dBack float64
	for _, face := range brush.Sides {
		for _, p := range face.Winding {
			d := split.Normal.Dot(p) - split.Dist
			if d > 0 && d > dFront {
				dFront = d
			}
			if d < 0 && d < dBack {
				dBack = d
			}
		}
	}
	if dFront < 0.1 {
		return nil, brush
	}
	if dBack > -0.1 {
		return brush, nil
	}

	w := BaseWindingForPlane(split, opts.WorldExtent)
	for _, face := range brush.Sides {
		if w == nil {
			break
		}
		w = w.ClipBack(store.Get(face.PlaneNum))
	}

	if w == nil || w.IsTiny(tinyWindingSize) {
		if BrushMostlyOnSide(brush, split) == PSideFront {
			return brush, nil
		}
		return nil, brush
	}

	if w.IsHuge(opts.WorldExtent) {
		// Diagnostic only (at verbosity 1); the split still proceeds
		// rather than being rejected.
		opts.verbose(1, "brushbsp: warning: huge mid-split winding on plane %d\n", planeNum)
	}

	midwinding := w

	result := [2]*Brush{
		{MapBrush: brush.MapBrush, Contents: brush.Contents},
		{MapBrush: brush.MapBrush, Contents: brush.Contents},
	}
	for i := range result {
		if brush.OriginalPtr != nil {
			result[i].OriginalPtr = brush.OriginalPtr
		} else {
			result[i].OriginalPtr = brush
		}
	}

	for _, face := range brush.Sides {
		cf, cb := face.Winding.Clip(split, 0)
		if cf != nil {
			fc := face
			fc.Winding = cf
			result[0].Sides = append(result[0].Sides, fc)
		}
		if cb != nil {
			bc := face
			bc.Winding = cb
			result[1].Sides = append(result[1].Sides, bc)
		}
	}

	bogus := [2]bool{}
	for i := 0; i < 2; i++ {
		if !result[i].updateBounds() {
			stats.incBogus()
			bogus[i] = true
		} else if result[i].Bounds.ExceedsWorldExtent(opts.WorldExtent) {
			stats.incBogus()
			bogus[i] = true
		}
		if len(result[i].Sides) < 3 || bogus[i] {
			result[i] = nil
		}
	}

	if result[0] == nil && result[1] == nil {
		stats.incBrushesRemoved()
		return nil, nil
	}
	if result[0] == nil || result[1] == nil {
		stats.incBrushesOneSided()
		if result[0] != nil {
			return brush, nil
		}
		return nil, brush
	}

	for i := 0; i < 2; i++ {
		brushOnFront := i == 0
		mid := Side{
			PlaneNum: planeNum ^ i ^ 1,
			TexInfo:  SkipTexInfo,
			Flags:    SideFlags{OnNode: true},
		}
		if brushOnFront {
			mid.Winding = midwinding.Flip()
		} else {
			mid.Winding = midwinding
		}
		result[i].Sides = append(result[i].Sides, mid)
	}

	for i := 0; i < 2; i++ {
		if BrushVolume(result[i], store) < opts.MicroVolume {
			result[i] = nil
			stats.incTinyVolumes()
		}
	}

	return result[0], result[1]
}

// DivideBounds splits an AABB by plane so that the returned front/back
// boxes fully contain the portion of the input on that side. For oblique
// planes the two results may overlap by design (spec §4.4).
func DivideBounds(bounds AABB, split Plane) (front, back AABB) {
	front, back = bounds, bounds

	if split.Type < PlaneAnyX {
		axis := int(split.Type)
		front.Min.SetComponent(axis, split.Dist)
		back.Max.SetComponent(axis, split.Dist)
		return front, back
	}

	for a := 0; a < 3; a++ {
		if absf(split.Normal.Component(a)) < NormalEpsilon {
			continue
		}
		b := (a + 1) % 3
		c := (a + 2) % 3

		splitMins := bounds.Max.Component(a)
		splitMaxs := bounds.Min.Component(a)

		for i := 0; i < 2; i++ {
			var corner Vec3
			if i == 0 {
				corner.SetComponent(b, bounds.Min.Component(b))
			} else {
				corner.SetComponent(b, bounds.Max.Component(b))
			}
			for j := 0; j < 2; j++ {
				if j == 0 {
					corner.SetComponent(c, bounds.Min.Component(c))
				} else {
					corner.SetComponent(c, bounds.Max.Component(c))
				}

				corner.SetComponent(a, bounds.Min.Component(a))
				dist1 := split.DistanceTo(corner)

				corner.SetComponent(a, bounds.Max.Component(a))
				dist2 := split.DistanceTo(corner)

				mid := bounds.Max.Component(a) - bounds.Min.Component(a)
				mid *= dist1 / (dist1 - dist2)
				mid += bounds.Min.Component(a)

				splitMins = maxf(minf(mid, splitMins), bounds.Min.Component(a))
				splitMaxs = minf(maxf(mid, splitMaxs), bounds.Max.Component(a))
			}
		}

		if split.Normal.Component(a) > 0 {
			front.Min.SetComponent(a, splitMins)
			back.Max.SetComponent(a, splitMaxs)
		} else {
			back.Min.SetComponent(a, splitMins)
			front.Max.SetComponent(a, splitMaxs)
		}
	}

	return front, back
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// SplitPlaneMetric scores a candidate plane for midsplit: the absolute
// difference between the front and back volumes of bounds after dividing
// by p. Smaller is better.
func SplitPlaneMetric(p Plane, bounds AABB) float64 {
	front, back := DivideBounds(bounds, p)
	return absf(front.Volume() - back.Volume())
}
