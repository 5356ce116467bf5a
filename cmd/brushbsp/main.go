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

// Command brushbsp builds a BSP tree over a fixed demo scene: a big solid
// box with an empty-contents pillar and a detail brush inside it, which
// chopping lets the solid box swallow before the tree is built. It runs
// chopping and tree building end to end without needing a real .map parser.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vigilantdoomer/brushbsp"
	"github.com/vigilantdoomer/brushbsp/bsplog"
)

// quakeContents mirrors the handful of content kinds ericw-tools-derived
// compilers actually branch on.
type quakeContents int

const (
	contentsEmpty quakeContents = iota
	contentsSolid
	contentsDetail
	contentsWater
)

type quakeStats struct {
	solid, detail, water, empty int
}

func (s *quakeStats) Summary() string {
	return fmt.Sprintf("solid=%d detail=%d water=%d empty=%d", s.solid, s.detail, s.water, s.empty)
}

type quakePolicy struct{}

func (quakePolicy) EmptyContents() brushbsp.Contents { return contentsEmpty }

func (quakePolicy) Combine(a, b brushbsp.Contents) brushbsp.Contents {
	ac, bc := a.(quakeContents), b.(quakeContents)
	if ac == contentsSolid || bc == contentsSolid {
		return contentsSolid
	}
	if ac == contentsWater || bc == contentsWater {
		return contentsWater
	}
	return contentsEmpty
}

func (quakePolicy) IsAnyDetail(c brushbsp.Contents) bool {
	cc, ok := c.(quakeContents)
	return ok && cc == contentsDetail
}

func (quakePolicy) IsSolid(c brushbsp.Contents) bool {
	cc, ok := c.(quakeContents)
	return ok && (cc == contentsSolid || cc == contentsDetail)
}

func (quakePolicy) NewStats() brushbsp.ContentStats { return &quakeStats{} }

func (quakePolicy) CountInStats(c brushbsp.Contents, stats brushbsp.ContentStats) {
	qs := stats.(*quakeStats)
	switch c.(quakeContents) {
	case contentsSolid:
		qs.solid++
	case contentsDetail:
		qs.detail++
	case contentsWater:
		qs.water++
	default:
		qs.empty++
	}
}

// markVisible flags every side of b as visible, matching what a real .map
// brush's non-bevel faces would carry by the time BuildTree sees them; the
// quality search tries visible-structural and visible-detail passes before
// falling back to invisible ones.
func markVisible(b *brushbsp.Brush) {
	for i := range b.Sides {
		b.Sides[i].Flags.Visible = true
	}
}

func main() {
	verbosity := flag.Int("v", 0, "verbosity level (0-3)")
	flag.Parse()

	log := bsplog.New(*verbosity)
	opts := brushbsp.DefaultOptions()
	opts.Log = log

	store := brushbsp.NewPlaneStore()
	policy := quakePolicy{}

	worldBounds := brushbsp.AABB{
		Min: brushbsp.Vec3{X: -512, Y: -512, Z: -64},
		Max: brushbsp.Vec3{X: 512, Y: 512, Z: 320},
	}
	hullBox := brushbsp.BrushFromBounds(worldBounds, store, opts.WorldExtent)
	markVisible(hullBox)
	hullBox.Contents = contentsSolid
	hullBox.MapBrush = &brushbsp.MapBrush{Contents: contentsSolid, Line: 1}

	pillarBounds := brushbsp.AABB{
		Min: brushbsp.Vec3{X: -64, Y: -64, Z: -64},
		Max: brushbsp.Vec3{X: 64, Y: 64, Z: 320},
	}
	pillar := brushbsp.BrushFromBounds(pillarBounds, store, opts.WorldExtent)
	markVisible(pillar)
	pillar.Contents = contentsEmpty
	pillar.MapBrush = &brushbsp.MapBrush{Contents: contentsEmpty, Line: 2}

	detailBounds := brushbsp.AABB{
		Min: brushbsp.Vec3{X: 100, Y: 100, Z: -64},
		Max: brushbsp.Vec3{X: 160, Y: 160, Z: 0},
	}
	detail := brushbsp.BrushFromBounds(detailBounds, store, opts.WorldExtent)
	markVisible(detail)
	detail.Contents = contentsDetail
	detail.MapBrush = &brushbsp.MapBrush{Contents: contentsDetail, Line: 3}

	brushes := []*brushbsp.Brush{hullBox, pillar, detail}

	chopped, chopStats := brushbsp.ChopBrushes(brushes, store, policy, opts)
	log.Printf("chop: %d brushes after carving (swallowed=%d fromSplit=%d)\n",
		len(chopped), chopStats.Swallowed, chopStats.FromSplit)

	stats := &brushbsp.Stats{}
	tree, err := brushbsp.BuildTree(context.Background(), chopped, store, policy, opts, stats)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Printf("tree: %d nodes, %d leafs, %d planes interned\n", stats.Nodes, stats.Leafs, store.Len())
	if stats.LeafStats != nil {
		log.Printf("leafs: %s\n", stats.LeafStats.Summary())
	}
	log.Printf("headnode index: %d, arena size: %d\n", tree.HeadNode, len(tree.Nodes))
}
