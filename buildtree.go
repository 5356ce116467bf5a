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

// buildtree.go
package brushbsp

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// scoreHintPenalty overrides a non-hint candidate plane's score outright
// when it would split a hint face, disqualifying it unless every other
// candidate in the pass is at least as bad.
const scoreHintPenalty = -9999999

// BuildTree constructs a BSP tree over brushes using policy to interpret
// their contents and opts to drive plane selection, and returns the tree.
// Every plane the tree references is interned into store, which may be
// pre-populated (e.g. shared with a prior ChopBrushes pass); a nil store is
// replaced by a fresh one that is not handed back to the caller. A panic
// raised by an internal invariant check anywhere in the recursion is
// recovered here and returned as an *InvariantError.
func BuildTree(ctx context.Context, brushes []*Brush, store *PlaneStore, policy ContentsPolicy, opts *Options, stats *Stats) (tree *Tree, err error) {
	if store == nil {
		store = NewPlaneStore()
	}
	if stats == nil {
		stats = &Stats{}
	}
	if stats.LeafStats == nil {
		stats.LeafStats = policy.NewStats()
	}

	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InvariantError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	tree = NewTree()

	bounds := EmptyAABB()
	for _, b := range brushes {
		bounds.ExtendBounds(b.Bounds)
	}

	if len(brushes) == 0 {
		// Degenerate map: no brushes at all. The original hard-codes a
		// single split on plane 0 rather than special-casing an empty
		// tree, so a headnode always exists downstream.
		if store.Len() == 0 {
			store.AddOrFind(NewPlane(Vec3{X: 1}, 0))
		}
		root := tree.newNode(-1)
		n := tree.node(root)
		n.PlaneNum = 0
		n.Bounds = bounds
		front := tree.newNode(root)
		back := tree.newNode(root)
		n.Children = [2]int{front, back}
		tree.node(front).IsLeaf = true
		tree.node(back).IsLeaf = true
		tree.node(front).Contents = policy.EmptyContents()
		tree.node(back).Contents = policy.EmptyContents()
		tree.HeadNode = root
		tree.Bounds = bounds
		return tree, nil
	}

	tree.Bounds = bounds
	volumeBounds := bounds.Grow(SideSpace)
	volume := BrushFromBounds(volumeBounds, store, opts.WorldExtent)

	totalBrushes := len(brushes)
	opts.verbose(1, "brushbsp: building tree over %d brushes\n", totalBrushes)
	root := buildTreeRecursive(ctx, tree, -1, brushes, volume, store, policy, opts, stats, totalBrushes)
	tree.HeadNode = root

	// OnNode marks left on input brushes by SplitBrushList only matter
	// during this build; clear them on every input side.
	for _, b := range brushes {
		for i := range b.Sides {
			b.Sides[i].Flags.OnNode = false
		}
	}
	opts.stat("brushbsp: tree built: %d nodes, %d leafs\n", stats.Nodes, stats.Leafs)
	return tree, nil
}

// buildTreeRecursive implements BuildTree_r: pick a plane (or make a leaf),
// split every brush by it, and recurse into the two halves. The recursion
// forks: once a plane is chosen, the front and back subtrees are built by
// two errgroup goroutines and joined before this call returns, mirroring
// the fork/join task_group pattern of the original compiler.
func buildTreeRecursive(ctx context.Context, tree *Tree, parent int, brushes []*Brush, volume *Brush, store *PlaneStore, policy ContentsPolicy, opts *Options, stats *Stats, totalBrushes int) int {
	idx := tree.newNode(parent)
	node := tree.node(idx)
	node.Bounds = volume.Bounds
	node.Volume = volume

	if len(brushes) == 0 {
		leafNode(node, brushes, policy, stats)
		return idx
	}

	planeNum, nonvis, detailSeparator := SelectSplitPlane(tree, idx, brushes, volume, store, policy, opts, stats, totalBrushes)
	if planeNum == -1 {
		leafNode(node, brushes, policy, stats)
		return idx
	}

	stats.incNodes()
	if nonvis {
		stats.incNonvis()
	}
	node.PlaneNum = planeNum
	node.DetailSeparator = detailSeparator

	frontBrushes, backBrushes := SplitBrushList(brushes, planeNum, store, opts, stats)

	frontVolume, backVolume := SplitBrush(volume, planeNum, store, opts, stats)
	if frontVolume == nil {
		frontVolume = volume.copy()
	}
	if backVolume == nil {
		backVolume = volume.copy()
	}

	var frontIdx, backIdx int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return recoverInvariant(func() {
			frontIdx = buildTreeRecursive(gctx, tree, idx, frontBrushes, frontVolume, store, policy, opts, stats, totalBrushes)
		})
	})
	g.Go(func() error {
		return recoverInvariant(func() {
			backIdx = buildTreeRecursive(gctx, tree, idx, backBrushes, backVolume, store, policy, opts, stats, totalBrushes)
		})
	})
	if err := g.Wait(); err != nil {
		panic(err)
	}

	// Re-fetch: the arena may have grown (and its pointer table with it)
	// while the children were being built.
	node = tree.node(idx)
	node.Children = [2]int{frontIdx, backIdx}
	return idx
}

// recoverInvariant runs fn and turns an *InvariantError panic into a
// returned error instead of letting it crash fn's goroutine outright.
// errgroup.Go does not recover panics on the caller's behalf, so each
// goroutine spawned below must do this itself; the error comes back through
// g.Wait() on the parent's stack, where it's re-panicked so it still
// unwinds to BuildTree's single top-level recover.
func recoverInvariant(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InvariantError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

// leafNode finalizes node as a leaf: merges the contents of every surviving
// brush fragment via policy.Combine and records leaf-level stats.
func leafNode(node *Node, brushes []*Brush, policy ContentsPolicy, stats *Stats) {
	node.IsLeaf = true
	node.PlaneNum = -1
	node.Brushes = brushes

	contents := policy.EmptyContents()
	for _, b := range brushes {
		var c Contents
		if b.MapBrush != nil {
			c = b.MapBrush.Contents
		} else {
			c = b.Contents
		}
		contents = policy.Combine(contents, c)
	}
	node.Contents = contents

	stats.incLeafs()
	if stats.LeafStats != nil {
		policy.CountInStats(contents, stats.LeafStats)
	}
}

// SplitBrushList partitions every brush in brushes against planeNum,
// discarding brushes that vanish and routing those the plane doesn't touch
// straight to whichever side they already lie on.
func SplitBrushList(brushes []*Brush, planeNum int, store *PlaneStore, opts *Options, stats *Stats) (front, back []*Brush) {
	for _, b := range brushes {
		side := b.side

		switch {
		case side&PSideFacing != 0:
			// The plane coincides with one of b's own sides; mark that side
			// OnNode so it's never picked as a candidate again below this
			// node, instead of just routing b whole to front or back.
			for i := range b.Sides {
				if b.Sides[i].PlaneNum&^1 == planeNum {
					b.Sides[i].Flags.OnNode = true
				}
			}
			if side&PSideFront != 0 {
				front = append(front, b)
			} else {
				back = append(back, b)
			}
		case side == PSideFront:
			front = append(front, b)
		case side == PSideBack:
			back = append(back, b)
		default:
			f, bk := SplitBrush(b, planeNum, store, opts, stats)
			if f != nil {
				front = append(front, f)
			}
			if bk != nil {
				back = append(back, bk)
			}
		}
	}
	return front, back
}

// CheckPlaneAgainstParents panics with an *InvariantError if planeNum (or
// its flip) was already used to split an ancestor of node, walking the
// Parent chain up to the root. A side already used as a splitter carries
// OnNode and is filtered out by the caller before a plane ever reaches
// here, so this should never actually fire; a hit means the OnNode
// bookkeeping upstream has a bug, which the build must not paper over by
// silently skipping the candidate.
func CheckPlaneAgainstParents(tree *Tree, nodeIdx int, planeNum int) {
	positive := planeNum &^ 1
	for i := tree.node(nodeIdx).Parent; i != -1; i = tree.node(i).Parent {
		p := tree.node(i)
		if p.PlaneNum&^1 == positive {
			invariantf("plane %d already used to split an ancestor of node %d", positive, nodeIdx)
		}
	}
}

// CheckPlaneAgainstVolume reports whether splitting a copy of volume by
// planeNum would leave both sides non-degenerate, i.e. the plane actually
// passes through the node's remaining space rather than merely grazing it.
func CheckPlaneAgainstVolume(volume *Brush, planeNum int, store *PlaneStore, opts *Options, stats *Stats) bool {
	front, back := SplitBrush(volume.copy(), planeNum, store, opts, stats)
	return front != nil && back != nil
}

// ChooseMidPlaneFromList implements the midsplit strategy: pick the first
// brush side (among the visible, non-bevel, non-OnNode sides of every brush,
// structural and detail alike) whose plane divides bounds most evenly,
// skipping planes that don't actually cut the node's volume.
func ChooseMidPlaneFromList(tree *Tree, nodeIdx int, brushes []*Brush, volume *Brush, store *PlaneStore, opts *Options, stats *Stats) int {
	best := -1
	bestMetric := -1.0

	bounds := volume.Bounds

	for _, b := range brushes {
		for _, s := range b.Sides {
			if !s.Flags.Visible || s.Flags.Bevel || s.Flags.OnNode {
				continue
			}
			plane := store.GetPositive(s.PlaneNum)
			positive := s.PlaneNum &^ 1

			CheckPlaneAgainstParents(tree, nodeIdx, positive)
			if !CheckPlaneAgainstVolume(volume, positive, store, opts, stats) {
				continue
			}

			metric := SplitPlaneMetric(plane, bounds)
			if best == -1 || metric < bestMetric {
				best = positive
				bestMetric = metric
			}
		}
	}

	return best
}

// SelectSplitPlane picks the plane for node, choosing between the cheap
// midsplit strategy and the 4-pass quality search per spec §4.4's gating
// rule (brush-count fraction or oversized bounds forces midsplit); if
// midsplit finds no plane, the quality search is tried instead. It returns
// -1 if no usable plane exists, meaning the caller must leaf out.
func SelectSplitPlane(tree *Tree, nodeIdx int, brushes []*Brush, volume *Brush, store *PlaneStore, policy ContentsPolicy, opts *Options, stats *Stats, totalBrushes int) (planeNum int, nonvis bool, detailSeparator bool) {
	useMidsplit := false

	if opts.MaxNodeSize >= 64 {
		bounds := volume.Bounds
		for axis := 0; axis < 3; axis++ {
			if bounds.Extent(axis) > opts.MaxNodeSize-opts.Epsilon {
				useMidsplit = true
				break
			}
		}
	}
	if !useMidsplit && opts.MidsplitBrushFraction > 0 && totalBrushes > 0 {
		fraction := float64(len(brushes)) / float64(totalBrushes)
		if fraction > opts.MidsplitBrushFraction {
			useMidsplit = true
		}
	}

	// scratch sinks the bogus/tiny-volume counts CheckPlaneAgainstVolume's
	// speculative SplitBrush calls produce while probing candidates; those
	// aren't real splits, so they must not land on the caller's real stats.
	scratch := &Stats{}
	if useMidsplit {
		p := ChooseMidPlaneFromList(tree, nodeIdx, brushes, volume, store, opts, scratch)
		if p != -1 {
			stats.incMidsplit()
			// SplitBrushList classifies off b.side rather than re-testing;
			// quality search populates it as a side effect of scoring, but
			// midsplit never scores, so it must be filled in here.
			for _, b := range brushes {
				side, _, _, _ := TestBrushToPlanenum(b, p, store)
				b.side = side
			}
			return p, false, false
		}
	}

	return qualitySearch(tree, nodeIdx, brushes, volume, store, policy, opts, stats, scratch)
}

// qualitySearch runs the 4-pass search: (visible, structural) then
// (visible, detail) then (invisible, structural) then (invisible, detail),
// stopping at the first pass that finds any candidate plane. Within a
// pass, every eligible side's plane is scored and the best (highest-score)
// one wins. Visibility outranks detail: the visible-detail pass runs
// whenever no visible structural candidate exists, before any invisible
// structural side is considered.
func qualitySearch(tree *Tree, nodeIdx int, brushes []*Brush, volume *Brush, store *PlaneStore, policy ContentsPolicy, opts *Options, stats *Stats, scratch *Stats) (int, bool, bool) {
	// tested is set on a brush's side whenever some other candidate in this
	// call faced it, so a later pass doesn't re-score the same plane. It is
	// scratch for the life of one qualitySearch call only, cleared below
	// regardless of outcome.
	defer func() {
		for _, b := range brushes {
			for i := range b.Sides {
				b.Sides[i].Flags.Tested = false
			}
		}
	}()

	type pass struct {
		visible bool
		detail  bool
	}
	passes := []pass{
		{visible: true, detail: false},
		{visible: true, detail: true},
		{visible: false, detail: false},
		{visible: false, detail: true},
	}

	for passIndex, p := range passes {
		best := -1
		bestScore := 0.0
		bestSet := false

		for _, b := range brushes {
			isDetail := b.MapBrush != nil && policy.IsAnyDetail(b.MapBrush.Contents)
			if isDetail != p.detail {
				continue
			}
			for _, s := range b.Sides {
				if s.Flags.Bevel || s.Flags.OnNode || s.Flags.Tested {
					continue
				}
				if s.Flags.Visible != p.visible {
					continue
				}
				positive := s.PlaneNum &^ 1
				CheckPlaneAgainstParents(tree, nodeIdx, positive)
				if !CheckPlaneAgainstVolume(volume, positive, store, opts, scratch) {
					continue
				}

				score, hintSplit, ok := scorePlane(brushes, positive, store)
				if !ok {
					continue
				}
				// A non-hint candidate that crosses a hint face gets the
				// hint penalty as its score, so it only wins a pass in
				// which no candidate scores higher.
				if hintSplit && !s.Flags.Hint {
					score = scoreHintPenalty
				}

				if !bestSet || score > bestScore {
					best = positive
					bestScore = score
					bestSet = true
					for _, tb := range brushes {
						tb.side = tb.testSide
					}
				}
			}
		}

		if bestSet {
			stats.incQualitySearch()
			opts.verbose(3, "brushbsp: node %d: quality search picked plane %d (visible=%v detail=%v)\n", nodeIdx, best, p.visible, p.detail)
			return best, !p.visible, passIndex > 0
		}
	}

	return -1, false, false
}

// scorePlane implements the scoring formula from spec §4.4:
// 5*facing - 5*splits - |front-back| + 5*axial - 1000*epsilonbrush. facing,
// front and back are independent bit tests on TestBrushToPlanenum's result
// (PSideFacing always carries PSideFront or PSideBack too, so a facing
// brush counts toward both). hintSplit reports whether any brush tested
// against planeNum crossed one of its own hint faces, for the caller to
// replace a non-hint candidate's score with scoreHintPenalty.
func scorePlane(brushes []*Brush, planeNum int, store *PlaneStore) (score float64, hintSplit bool, ok bool) {
	facing, splits, front, back, epsilonBrush := 0, 0, 0, 0, 0

	for _, b := range brushes {
		side, numSplits, hs, eb := TestBrushToPlanenum(b, planeNum, store)
		b.testSide = side
		splits += numSplits
		epsilonBrush += eb
		if hs {
			hintSplit = true
		}
		if side&PSideFacing != 0 {
			facing++
			for i := range b.Sides {
				if b.Sides[i].PlaneNum&^1 == planeNum {
					b.Sides[i].Flags.Tested = true
				}
			}
		}
		if side&PSideFront != 0 {
			front++
		}
		if side&PSideBack != 0 {
			back++
		}
	}

	if facing == 0 && splits == 0 && front == 0 && back == 0 {
		return 0, false, false
	}

	plane := store.Get(planeNum)
	axial := 0
	if plane.Type < PlaneAnyX {
		axial = 1
	}

	diff := front - back
	if diff < 0 {
		diff = -diff
	}

	score = 5*float64(facing) - 5*float64(splits) - float64(diff) + 5*float64(axial) - 1000*float64(epsilonBrush)
	return score, hintSplit, true
}
