// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"testing"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func TestAABBOverlapsDetectsSeparationAndOverlap(tst *testing.T) {
	chk.PrintTitle("aabb overlap")
	a := SphereAABB(model.Vec3{0, 0, 0}, 1)
	b := SphereAABB(model.Vec3{1.5, 0, 0}, 1)
	if !a.Overlaps(b) {
		tst.Errorf("expected overlapping boxes to report overlap")
	}
	c := SphereAABB(model.Vec3{10, 0, 0}, 1)
	if a.Overlaps(c) {
		tst.Errorf("expected far-apart boxes to report no overlap")
	}
}

func TestAABBUnionContainsBoth(tst *testing.T) {
	chk.PrintTitle("aabb union")
	a := AABB{Lo: model.Vec3{0, 0, 0}, Hi: model.Vec3{1, 1, 1}}
	b := AABB{Lo: model.Vec3{-1, 2, 0}, Hi: model.Vec3{0.5, 3, 1}}
	u := a.Union(b)
	chk.Scalar(tst, "lo x", 1e-15, u.Lo[0], -1)
	chk.Scalar(tst, "hi y", 1e-15, u.Hi[1], 3)
}

func TestEllipsoidAABBUsesLargestSemiAxis(tst *testing.T) {
	chk.PrintTitle("ellipsoid aabb uses max radius")
	box := EllipsoidAABB(model.Vec3{}, [3]float64{1, 3, 2})
	chk.Scalar(tst, "hi x", 1e-15, box.Hi[0], 3)
	chk.Scalar(tst, "lo x", 1e-15, box.Lo[0], -3)
}

func TestLongestAxisPicksMaxExtent(tst *testing.T) {
	chk.PrintTitle("aabb longest axis")
	box := AABB{Lo: model.Vec3{0, 0, 0}, Hi: model.Vec3{1, 5, 2}}
	chk.IntAssert(box.LongestAxis(), 1)
}

func TestTriangleAABBBoundsAllVertices(tst *testing.T) {
	chk.PrintTitle("triangle aabb")
	v := [3]model.Vec3{{0, 0, 0}, {1, -1, 0}, {0.5, 2, 3}}
	box := TriangleAABB(v)
	chk.Scalar(tst, "lo y", 1e-15, box.Lo[1], -1)
	chk.Scalar(tst, "hi z", 1e-15, box.Hi[2], 3)
}
