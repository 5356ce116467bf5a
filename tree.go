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

// tree.go
package brushbsp

import "sync"

// Node is either an internal split (PlaneNum >= 0, exactly two Children) or
// a leaf (PlaneNum == -1, Contents holds the leaf's merged contents and
// Brushes its surviving fragments). Parent is a non-owning index into the
// owning Tree's arena, -1 for the root; it lets CheckPlaneAgainstParents
// walk upward without a pointer cycle across goroutine boundaries.
type Node struct {
	PlaneNum int
	Children [2]int
	Parent   int

	Bounds AABB
	Volume *Brush

	// Brushes holds the fragments that survived into a leaf. It is left nil
	// on internal nodes.
	Brushes []*Brush

	IsLeaf   bool
	Contents Contents

	// DetailSeparator marks a node whose plane the quality search found in
	// any pass after the first (visible structural) one, per spec §4.4's
	// ordering rule.
	DetailSeparator bool
}

// Tree owns every Node created by one BuildTree call in a flat arena, so
// concurrent BuildTree_r goroutines only ever append (under Tree.mu) rather
// than share pointers into each other's stack frames. Nodes is a slice of
// pointers rather than values so that a growth-triggered reallocation of the
// slice header never invalidates a *Node a sibling goroutine already holds.
type Tree struct {
	Nodes    []*Node
	HeadNode int
	Bounds   AABB

	mu sync.Mutex
}

// NewTree returns an empty arena ready for newNode calls from any goroutine.
func NewTree() *Tree {
	return &Tree{HeadNode: -1}
}

// newNode appends a node and returns its index. Safe for concurrent callers.
func (t *Tree) newNode(parent int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, &Node{Parent: parent, PlaneNum: -1, Children: [2]int{-1, -1}})
	return idx
}

func (t *Tree) node(i int) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Nodes[i]
}
