// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restraint implements the restraint applicator (RA, spec.md
// §4.7): projecting out velocity and force/torque components along a
// restrained particle's declared direction set.
package restraint

import "github.com/cpmech/godem/model"

// ApplyToVelocities projects every restrained particle's linear velocity
// and (world-frame) angular velocity, removing the components along its
// declared direction sets (spec.md §4.7 "v ← v − Σ (v·d_j) d_j").
// Run by the dem package's per-step pipeline right after
// prescribe.ApplyVelocity and before the position update.
func ApplyToVelocities(w *model.World) {
	r := &w.Restraints
	for i := 0; i < r.Len(); i++ {
		p := r.Particle[i]
		w.Vel[p] = project(w.Vel[p], r.DirLin[i][:r.NLin[i]])
		omega := w.AngularVelocityWorld(p)
		omega = project(omega, r.DirAng[i][:r.NAng[i]])
		w.RefOmega[p] = w.Rot[p].T().MulVec(omega)
	}
}

// ApplyToForces projects every restrained particle's accumulated force and
// torque the same way (spec.md §4.7 "f ← f − Σ (f·d_j) d_j"). Run by the
// dem package's per-step pipeline right after force assembly, before the
// integrator consumes Force/Torque.
func ApplyToForces(w *model.World) {
	r := &w.Restraints
	for i := 0; i < r.Len(); i++ {
		p := r.Particle[i]
		w.Force[p] = project(w.Force[p], r.DirLin[i][:r.NLin[i]])
		w.Torque[p] = project(w.Torque[p], r.DirAng[i][:r.NAng[i]])
	}
}

func project(v model.Vec3, dirs []model.Vec3) model.Vec3 {
	for _, d := range dirs {
		v = v.Sub(d.Scale(v.Dot(d)))
	}
	return v
}
