// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"sort"

	"github.com/cpmech/godem/model"
)

// entry is one ellipsoid routed into the tree, carrying everything a leaf
// needs in SoA form (spec.md §4.1: "Each leaf stores color, owning
// particle, ellipsoid index, center, radii, orientation ... in SoA form").
type entry struct {
	ellipsoid int
	owner     int
	color     int
	center    model.Vec3
	radii     [3]float64
	orient    model.Mat3
	aabb      AABB
}

// leaf holds up to LSIZE entries.
type leaf struct {
	aabb    AABB
	entries []entry
}

// node is an internal binary-tree node; exactly one of (left,right) or leaf
// is set.
type node struct {
	aabb        AABB
	left, right *node
	leaf        *leaf
}

// Tree is the median-split partitioning tree of spec.md §4.1.
type Tree struct {
	LSIZE int
	root  *node
	// Imbalance counts leaves that exceeded LSIZE because their points
	// could not be separated by further median splits (degenerate extent).
	Imbalance int
}

// DefaultLSIZE matches the "≤ LSIZE entries" leaf-capacity default used
// when a caller does not override it.
const DefaultLSIZE = 16

// NewTree returns a Tree configured with the given leaf capacity (LSIZE<=0
// selects DefaultLSIZE).
func NewTree(lsize int) *Tree {
	if lsize <= 0 {
		lsize = DefaultLSIZE
	}
	return &Tree{LSIZE: lsize}
}

// Build performs the "create"+"store" operations of spec.md §4.1 in one
// call: it constructs the tree from scratch over the given ellipsoids of
// non-analytical particles, reporting Imbalance. Per spec.md §4.1's store
// policy, the caller should rebuild (call Build again) whenever Imbalance
// is nonzero after some entries changed shard; since Build always
// reconstructs the whole tree, that simply means "call Build every step",
// which is what the CD does.
func (o *Tree) Build(w *model.World) {
	entries := make([]entry, 0, w.Ellipsoids.Len())
	for i := 0; i < w.Ellipsoids.Len(); i++ {
		owner := w.Ellipsoids.Owner[i]
		if w.Flags[owner].Has(model.Analytical) {
			continue
		}
		c := w.Ellipsoids.Center[i]
		r := w.Ellipsoids.Radii[i]
		entries = append(entries, entry{
			ellipsoid: i,
			owner:     owner,
			color:     w.Ellipsoids.Color[i],
			center:    c,
			radii:     r,
			orient:    w.Ellipsoids.Orient[i],
			aabb:      EllipsoidAABB(c, r),
		})
	}
	o.Imbalance = 0
	if len(entries) == 0 {
		o.root = nil
		return
	}
	o.root = o.split(entries, 0)
}

// split recursively median-splits entries, stopping at LSIZE per leaf.
// depth guards against runaway recursion on degenerate (coincident-point)
// inputs: if a split fails to shrink either half, the node becomes an
// over-capacity leaf and Imbalance is incremented (spec.md §4.1 store
// policy: "returns a nonzero imbalance count if the number of ellipsoids
// routed to any leaf exceeds its capacity").
func (o *Tree) split(entries []entry, depth int) *node {
	box := boundingBox(entries)
	if len(entries) <= o.LSIZE || depth > 64 {
		if len(entries) > o.LSIZE {
			o.Imbalance++
		}
		return &node{aabb: box, leaf: &leaf{aabb: box, entries: entries}}
	}
	axis := box.LongestAxis()
	sort.Slice(entries, func(i, j int) bool { return entries[i].center[axis] < entries[j].center[axis] })
	mid := len(entries) / 2
	left := append([]entry{}, entries[:mid]...)
	right := append([]entry{}, entries[mid:]...)
	if len(left) == 0 || len(right) == 0 {
		o.Imbalance++
		return &node{aabb: box, leaf: &leaf{aabb: box, entries: entries}}
	}
	n := &node{aabb: box}
	n.left = o.split(left, depth+1)
	n.right = o.split(right, depth+1)
	return n
}

func boundingBox(entries []entry) AABB {
	box := entries[0].aabb
	for i := 1; i < len(entries); i++ {
		box = box.Union(entries[i].aabb)
	}
	return box
}

// QueryAABB invokes cb for every ellipsoid entry whose own bounding box
// overlaps q (leaves whose box misses q are not visited); cb receives the
// ellipsoid's stable index.
func (o *Tree) QueryAABB(q AABB, cb func(ellipsoidIdx int)) {
	if o.root == nil {
		return
	}
	o.query(o.root, q, cb)
}

func (o *Tree) query(n *node, q AABB, cb func(int)) {
	if !n.aabb.Overlaps(q) {
		return
	}
	if n.leaf != nil {
		for _, e := range n.leaf.entries {
			if e.aabb.Overlaps(q) {
				cb(e.ellipsoid)
			}
		}
		return
	}
	o.query(n.left, q, cb)
	o.query(n.right, q, cb)
}
