// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cpmech/gosl/fun"

// VecFunc is a time-indexed R→R³ function built from three independent
// scalar fun.Func components, matching spec.md §9's "identity of the
// abstraction is time-indexed R→R³ function" design note. A nil component
// is treated as identically zero (fun.Zero).
type VecFunc [3]fun.Func

// At evaluates the vector function at time t.
func (o VecFunc) At(t float64) Vec3 {
	var v Vec3
	for i := 0; i < 3; i++ {
		if o[i] != nil {
			v[i] = o[i].F(t, nil)
		}
	}
	return v
}

// Obstacle is a rigid, prescribed-motion collection of triangles sharing a
// pivot point (spec.md §3 Obstacle table). All triangles in [Start,End) of
// Triangles own this obstacle via MovingObstacleOwner(index). Pivot and Rot
// are the obstacle's current (not reference) position and orientation,
// advanced each step by the obstacle driver (OD) from LinVel/AngVel; a
// triangle's RefLoc for an obstacle-owned triangle holds its vertices
// relative to Pivot at creation time, mirroring how particle-owned
// triangles store vertices relative to the owner's RefPos.
type Obstacle struct {
	Pivot  Vec3
	Rot    Mat3
	Start  int // first triangle index owned by this obstacle
	End    int // one past the last triangle index
	LinVel VecFunc
	AngVel VecFunc
}
