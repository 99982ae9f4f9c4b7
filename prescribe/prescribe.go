// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prescribe implements the prescribed-motion driver (PD, spec.md
// §4.8): overriding velocity/angular-velocity components directly, or
// writing the equivalent force/torque for an acceleration-kind binding,
// componentwise per axis. Grounded on fem/essenbcs.go's essential-boundary
// pattern (Fcn fun.Func evaluated each step, applied to a subset of
// components) adapted from FE nodal dofs to rigid-body particle axes.
package prescribe

import "github.com/cpmech/godem/model"

// ApplyAcceleration runs the kind=acceleration half of PD: for every
// prescribed axis bound with PrescribeAcceleration, it overwrites the
// particle's accumulated force/torque component with the equivalent
// f=m·a (τ=J·α), discarding whatever FA had accumulated along that axis
// (spec.md §4.8 "zeroing other accumulated contributions along the
// prescribed axes"). Must run after force assembly (FA) and before the
// velocity update step of the integrator (IN step 2b).
func ApplyAcceleration(w *model.World, t float64) {
	pr := &w.Prescribed
	for i := 0; i < pr.Len(); i++ {
		p := pr.Particle[i]
		if pr.KindLin[i] == model.PrescribeAcceleration {
			f := w.Force[p]
			for axis := 0; axis < 3; axis++ {
				if fn := pr.Lin[i][axis]; fn != nil {
					f[axis] = w.Mass[p] * fn.F(t, nil)
				}
			}
			w.Force[p] = f
		}
		if pr.KindAng[i] == model.PrescribeAcceleration {
			// τ = J·α expressed in the body frame, consistent with the
			// integrator's implicit gyroscopic update (spec.md §4.9 step 2b),
			// so alpha is read as a referential (body-frame) angular
			// acceleration and mapped through J directly.
			tau := w.Rot[p].T().MulVec(w.Torque[p])
			var alpha model.Vec3
			any := false
			for axis := 0; axis < 3; axis++ {
				if fn := pr.Ang[i][axis]; fn != nil {
					alpha[axis] = fn.F(t, nil)
					any = true
				}
			}
			if any {
				jalpha := w.Inertia[p].MulVec(alpha)
				for axis := 0; axis < 3; axis++ {
					if pr.Ang[i][axis] != nil {
						tau[axis] = jalpha[axis]
					}
				}
				w.Torque[p] = w.Rot[p].MulVec(tau)
			}
		}
	}
}

// ApplyVelocity runs the kind=velocity half of PD: for every prescribed
// axis bound with PrescribeVelocity, it overwrites the particle's linear
// velocity or (world-frame) angular velocity component with the callback's
// value (spec.md §4.8 "overwrites v or Ω directly after integrator
// update"). Must run immediately after the integrator's velocity update
// (IN step 2b) and before the position update (step 2d), per spec.md
// §4.9's "Prescribed-velocity override on affected components".
func ApplyVelocity(w *model.World, t float64) {
	pr := &w.Prescribed
	for i := 0; i < pr.Len(); i++ {
		p := pr.Particle[i]
		if pr.KindLin[i] == model.PrescribeVelocity {
			v := w.Vel[p]
			for axis := 0; axis < 3; axis++ {
				if fn := pr.Lin[i][axis]; fn != nil {
					v[axis] = fn.F(t, nil)
				}
			}
			w.Vel[p] = v
		}
		if pr.KindAng[i] == model.PrescribeVelocity {
			omega := w.AngularVelocityWorld(p)
			any := false
			for axis := 0; axis < 3; axis++ {
				if fn := pr.Ang[i][axis]; fn != nil {
					omega[axis] = fn.F(t, nil)
					any = true
				}
			}
			if any {
				w.RefOmega[p] = w.Rot[p].T().MulVec(omega)
			}
		}
	}
}
