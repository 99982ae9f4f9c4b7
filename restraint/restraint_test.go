// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restraint

import (
	"testing"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func newTestParticle(tst *testing.T) (*model.World, int) {
	w := model.NewWorld()
	matIdx, err := w.Materials.Add(model.Material{Density: 1, Young: 1e6, Poisson: 0.3})
	if err != nil {
		tst.Fatalf("material: %v", err)
	}
	p, err := w.AddParticle(2, model.Identity3(), model.Vec3{}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle: %v", err)
	}
	return w, p
}

func TestApplyToVelocitiesProjectsOutRestrainedAxis(tst *testing.T) {
	chk.PrintTitle("restraint velocity projection")
	w, p := newTestParticle(tst)
	w.Vel[p] = model.Vec3{1, 2, 3}
	w.RefOmega[p] = model.Vec3{4, 5, 6}
	if _, err := w.Restraints.Add(p, []model.Vec3{{1, 0, 0}}, []model.Vec3{{0, 0, 1}}); err != nil {
		tst.Fatalf("restraint: %v", err)
	}

	ApplyToVelocities(w)

	chk.Scalar(tst, "vx", 1e-15, w.Vel[p][0], 0)
	chk.Scalar(tst, "vy", 1e-15, w.Vel[p][1], 2)
	chk.Scalar(tst, "vz", 1e-15, w.Vel[p][2], 3)
	chk.Scalar(tst, "ωz (body-frame, R=I so world==body)", 1e-15, w.RefOmega[p][2], 0)
}

func TestApplyToForcesProjectsOutRestrainedAxis(tst *testing.T) {
	chk.PrintTitle("restraint force projection")
	w, p := newTestParticle(tst)
	w.Force[p] = model.Vec3{10, -20, 30}
	w.Torque[p] = model.Vec3{1, 1, 1}
	if _, err := w.Restraints.Add(p, []model.Vec3{{0, 1, 0}}, nil); err != nil {
		tst.Fatalf("restraint: %v", err)
	}

	ApplyToForces(w)

	chk.Scalar(tst, "fx", 1e-15, w.Force[p][0], 10)
	chk.Scalar(tst, "fy", 1e-15, w.Force[p][1], 0)
	chk.Scalar(tst, "fz", 1e-15, w.Force[p][2], 30)
	chk.Scalar(tst, "τx unaffected", 1e-15, w.Torque[p][0], 1)
	chk.Scalar(tst, "τy unaffected", 1e-15, w.Torque[p][1], 1)
	chk.Scalar(tst, "τz unaffected", 1e-15, w.Torque[p][2], 1)
}

func TestMultipleRestrainedParticlesAreIndependent(tst *testing.T) {
	chk.PrintTitle("restraint independence across particles")
	w, p0 := newTestParticle(tst)
	matIdx := w.MatIdx[p0]
	p1, err := w.AddParticle(1, model.Identity3(), model.Vec3{1, 0, 0}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle: %v", err)
	}
	w.Vel[p0] = model.Vec3{5, 0, 0}
	w.Vel[p1] = model.Vec3{0, 5, 0}
	if _, err := w.Restraints.Add(p0, []model.Vec3{{1, 0, 0}}, nil); err != nil {
		tst.Fatalf("restraint: %v", err)
	}

	ApplyToVelocities(w)

	chk.Scalar(tst, "p0 vx restrained", 1e-15, w.Vel[p0][0], 0)
	chk.Scalar(tst, "p1 vy untouched", 1e-15, w.Vel[p1][1], 5)
}
