// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"testing"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func TestUpdateObstaclesAdvancesPivotAndTriangleVertices(tst *testing.T) {
	chk.PrintTitle("obstacle driver: advances pivot/orientation and re-stamps owned triangle vertices")
	w := model.NewWorld()
	w.Obstacles = append(w.Obstacles, model.Obstacle{
		Pivot:  model.Vec3{},
		Rot:    model.Identity3(),
		LinVel: model.VecFunc{constFunc(2), nil, nil},
		AngVel: model.VecFunc{},
	})
	refLoc := [3]model.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	ti := w.Triangles.Add(model.MovingObstacleOwner(0), refLoc, refLoc, 0)
	w.Obstacles[0].Start = ti
	w.Obstacles[0].End = ti + 1

	h := 0.5
	updateObstacles(w, 0, h)

	chk.Scalar(tst, "pivot x = 0 + h*2", 1e-12, w.Obstacles[0].Pivot[0], h*2)
	for k := 0; k < 3; k++ {
		want := w.Obstacles[0].Pivot.Add(refLoc[k]) // Rot stayed identity, AngVel is zero
		chk.Scalar(tst, "vertex x", 1e-12, w.Triangles.Verts[ti][k][0], want[0])
		chk.Scalar(tst, "vertex y", 1e-12, w.Triangles.Verts[ti][k][1], want[1])
		chk.Scalar(tst, "vertex z", 1e-12, w.Triangles.Verts[ti][k][2], want[2])
	}
}

func TestUpdateObstaclesSkipsTrianglesOutsideItsRange(tst *testing.T) {
	chk.PrintTitle("obstacle driver: leaves triangles outside [Start,End) untouched")
	w := model.NewWorld()
	w.Obstacles = append(w.Obstacles, model.Obstacle{
		Pivot:  model.Vec3{},
		Rot:    model.Identity3(),
		LinVel: model.VecFunc{constFunc(5), nil, nil},
	})
	refLoc := [3]model.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	ti := w.Triangles.Add(model.StaticObstacle, refLoc, refLoc, 0)
	original := w.Triangles.Verts[ti]
	w.Obstacles[0].Start, w.Obstacles[0].End = 99, 99 // empty range, excludes ti

	updateObstacles(w, 0, 1)

	chk.Scalar(tst, "untouched vertex x", 1e-15, w.Triangles.Verts[ti][0][0], original[0][0])
}

// constFunc is a trivial fun.Func-satisfying constant, used where
// curve.NewConstantSeries would be overkill for a single test value.
type constFunc float64

func (c constFunc) F(t float64, extra []float64) float64 { return float64(c) }
func (c constFunc) G(t float64, extra []float64) float64 { return 0 }
