// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import "github.com/cpmech/godem/model"

// updateObstacles is the obstacle driver (OD, spec.md §2 data flow's first
// phase): it advances each obstacle's pivot and orientation from its
// LinVel/AngVel callbacks and writes the resulting vertex positions onto
// its owned triangles, run before CD so contact detection sees this step's
// obstacle geometry. Grounded on integrate.Integrator's position-update
// shape (x ← x + h·v; R ← R·exp([h·ω]×)), the same rigid-motion update
// applied here to an obstacle's pivot/orientation instead of a particle's
// mass center.
func updateObstacles(w *model.World, t, h float64) {
	for k := range w.Obstacles {
		ob := &w.Obstacles[k]
		v := ob.LinVel.At(t)
		omega := ob.AngVel.At(t)
		ob.Pivot = ob.Pivot.Add(v.Scale(h))
		ob.Rot = ob.Rot.Mul(model.Rodrigues(omega.Scale(h)))
		for ti := ob.Start; ti < ob.End; ti++ {
			var verts [3]model.Vec3
			for j := 0; j < 3; j++ {
				verts[j] = ob.Pivot.Add(ob.Rot.MulVec(w.Triangles.RefLoc[ti][j]))
			}
			w.Triangles.Verts[ti] = verts
		}
	}
}
