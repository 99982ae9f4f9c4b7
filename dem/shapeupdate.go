// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import "github.com/cpmech/godem/model"

// updateShapes is the shape updater (SU, spec.md §4 item 11): it maps
// referential ellipsoid centers/orientations and particle-owned triangle
// vertices to current-configuration coordinates from each owning
// particle's rotation and position, run once per step after IN and before
// SE/AS (spec.md §2 data flow "… → IN → SU → SE → AS"). Obstacle-owned
// triangles are excluded (driven instead by updateObstacles/OD) and
// analytical particles' shapes are skipped since they carry no contact
// geometry to begin with.
func updateShapes(w *model.World) {
	es := &w.Ellipsoids
	parallelFor(es.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			owner := es.Owner[i]
			if w.Flags[owner].Has(model.Analytical) {
				continue
			}
			es.Center[i] = w.Pos[owner].Add(w.Rot[owner].MulVec(es.RefCtr[i]))
			es.Orient[i] = w.Rot[owner].Mul(es.RefOri[i])
		}
	})

	ts := &w.Triangles
	parallelFor(ts.Len(), func(lo, hi int) {
		for t := lo; t < hi; t++ {
			owner := ts.Owner[t]
			if owner < 0 {
				continue // obstacle-owned: driven by updateObstacles, not rigid-body state
			}
			if w.Flags[owner].Has(model.Analytical) {
				continue
			}
			var v [3]model.Vec3
			for k := 0; k < 3; k++ {
				v[k] = w.Pos[owner].Add(w.Rot[owner].MulVec(ts.RefLoc[t][k]))
			}
			ts.Verts[t] = v
		}
	})
}
