// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Ownership tags for Triangles.Owner, following parmec's mesh.h convention:
// a non-negative owner is a particle index; negative values flag obstacle
// or static geometry (spec.md §3 Triangle table).
const (
	// StaticObstacle marks a triangle belonging to immovable geometry.
	StaticObstacle = -1
)

// MovingObstacleOwner returns the Triangles.Owner encoding for moving
// obstacle k, following spec.md §3's "-(k+2)" convention.
func MovingObstacleOwner(k int) int { return -(k + 2) }

// MovingObstacleIndex decodes an Owner value produced by MovingObstacleOwner,
// returning (k, true) if owner encodes a moving obstacle.
func MovingObstacleIndex(owner int) (k int, ok bool) {
	if owner <= -2 {
		return -owner - 2, true
	}
	return 0, false
}

// Triangles is the SoA store of surface triangles: particle-owned (move
// rigidly with the owner), static-obstacle (Owner==StaticObstacle) or
// moving-obstacle (Owner==MovingObstacleOwner(k)).
type Triangles struct {
	Owner  []int     // ownership tag, see constants above
	Verts  [][3]Vec3 // current spatial vertices
	RefLoc [][3]Vec3 // reference (body-local) vertices for particle-owned triangles
	Color  []int
}

// Add appends a triangle with the given current vertices and ownership tag.
// For particle-owned triangles, refLoc holds the vertices expressed in the
// owning particle's reference frame (relative to RefPos), used by the
// shape updater to recompute Verts every step.
func (o *Triangles) Add(owner int, verts, refLoc [3]Vec3, color int) (handle int) {
	o.Owner = append(o.Owner, owner)
	o.Verts = append(o.Verts, verts)
	o.RefLoc = append(o.RefLoc, refLoc)
	o.Color = append(o.Color, color)
	return len(o.Owner) - 1
}

// Reset truncates all slices to zero length.
func (o *Triangles) Reset() {
	o.Owner = o.Owner[:0]
	o.Verts = o.Verts[:0]
	o.RefLoc = o.RefLoc[:0]
	o.Color = o.Color[:0]
}

// Len returns the number of triangles.
func (o *Triangles) Len() int { return len(o.Owner) }

// IsObstacle reports whether triangle i belongs to any obstacle (static or
// moving), i.e. is excluded from rigid-body-driven shape update.
func (o *Triangles) IsObstacle(i int) bool { return o.Owner[i] < 0 }
