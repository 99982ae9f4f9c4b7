// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package force

import (
	"testing"

	"github.com/cpmech/godem/contact"
	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func newTwoParticleWorld(tst *testing.T) (*model.World, int, int) {
	w := model.NewWorld()
	matIdx, err := w.Materials.Add(model.Material{Density: 1, Young: 1e6, Poisson: 0.3})
	if err != nil {
		tst.Fatalf("material: %v", err)
	}
	j := 0.4
	J := model.Mat3{{j, 0, 0}, {0, j, 0}, {0, 0, j}}
	a, err := w.AddParticle(1, J, model.Vec3{-1, 0, 0}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle a: %v", err)
	}
	b, err := w.AddParticle(1, J, model.Vec3{1, 0, 0}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle b: %v", err)
	}
	return w, a, b
}

func TestApplyNormalSpringForceOpposesOverlap(tst *testing.T) {
	chk.PrintTitle("force assembler: normal spring-dashpot on overlap")
	w, a, b := newTwoParticleWorld(tst)
	table := NewTable()
	table.Default = ColorPair{Spring: 1000, Damper: 0}
	asm := NewAssembler(table)
	det := contact.NewDetector(4)

	c := contact.Contact{
		Master: a, Slave: b,
		Point:  model.Vec3{0, 0, 0},
		Normal: model.Vec3{1, 0, 0}, // taken as slave-to-master; positions only enter the torque arms, parallel to the force here
		Gap:    -0.01,
	}
	asm.Apply(w, []contact.Contact{c}, det, 0, 0.001)

	// Fn = -k*gap = 1000*0.01 = 10, pushing master along +normal,
	// and slave the opposite way.
	chk.Scalar(tst, "master force x", 1e-10, w.Force[a][0], 10)
	chk.Scalar(tst, "slave force x", 1e-10, w.Force[b][0], -10)
	if w.Kmax[a] != 1000 {
		tst.Errorf("expected Kmax[a]=1000, got %v", w.Kmax[a])
	}
}

func TestApplyNormalForceIsZeroWhenNotPenetrating(tst *testing.T) {
	chk.PrintTitle("force assembler: no repulsive force when gap >= 0")
	w, a, b := newTwoParticleWorld(tst)
	table := NewTable()
	table.Default = ColorPair{Spring: 1000, Damper: 5}
	asm := NewAssembler(table)
	det := contact.NewDetector(4)

	c := contact.Contact{
		Master: a, Slave: b,
		Point:  model.Vec3{0, 0, 0},
		Normal: model.Vec3{1, 0, 0},
		Gap:    0.01, // not actually touching; exercised only to check the F_n>=0 clamp
	}
	asm.Apply(w, []contact.Contact{c}, det, 0, 0.001)

	chk.Scalar(tst, "master force x", 1e-10, w.Force[a][0], 0)
}

func TestApplyFrictionSticksBelowStaticLimit(tst *testing.T) {
	chk.PrintTitle("force assembler: tangential force sticks below static limit")
	w, a, b := newTwoParticleWorld(tst)
	table := NewTable()
	table.Default = ColorPair{Spring: 1000, Damper: 0, FriStat: 0.8, FriDyn: 0.5, Kskn: 1}
	asm := NewAssembler(table)
	det := contact.NewDetector(4)

	w.Vel[a] = model.Vec3{0, 0.001, 0} // small tangential relative velocity

	c := contact.Contact{
		Master: a, Slave: b,
		Point:  model.Vec3{0, 0, 0},
		Normal: model.Vec3{1, 0, 0},
		Gap:    -0.01,
	}
	asm.Apply(w, []contact.Contact{c}, det, 0, 0.001)

	// Fn = 10, static limit = 0.8*10 = 8; tangential trial force magnitude
	// (kt*u = 1000 * (vt*dt) = 1000*(0.001*0.001) = 1e-3) is far below the
	// limit, so it should stick (trial value kept exactly).
	chk.Scalar(tst, "tangential force y", 1e-12, w.Force[a][1], -1e-3)
}

func TestApplyFrictionSlipsAboveStaticLimit(tst *testing.T) {
	chk.PrintTitle("force assembler: tangential force clamps to dynamic limit above slip")
	w, a, b := newTwoParticleWorld(tst)
	table := NewTable()
	table.Default = ColorPair{Spring: 1000, Damper: 0, FriStat: 0.5, FriDyn: 0.3, Kskn: 1000}
	asm := NewAssembler(table)
	det := contact.NewDetector(4)

	w.Vel[a] = model.Vec3{0, 10, 0} // large tangential relative velocity forces slip

	c := contact.Contact{
		Master: a, Slave: b,
		Point:  model.Vec3{0, 0, 0},
		Normal: model.Vec3{1, 0, 0},
		Gap:    -0.01,
	}
	asm.Apply(w, []contact.Contact{c}, det, 0, 0.001)

	// Fn = 10, dynamic limit = 0.3*10 = 3.
	got := w.Force[a][1]
	if got >= 0 {
		tst.Errorf("expected tangential force opposing positive relative velocity, got %v", got)
	}
	mag := got
	if mag < 0 {
		mag = -mag
	}
	chk.Scalar(tst, "tangential force magnitude clamps to dynamic limit", 1e-8, mag, 3)
}

func TestSlaveObstacleStaticGeometryHasZeroKinematics(tst *testing.T) {
	chk.PrintTitle("force assembler: static obstacle slave contributes no counter-force")
	w, a, _ := newTwoParticleWorld(tst)
	table := NewTable()
	table.Default = ColorPair{Spring: 1000}
	asm := NewAssembler(table)
	det := contact.NewDetector(4)

	c := contact.Contact{
		Master: a, Slave: model.StaticObstacle,
		Point:  model.Vec3{-1, 0, 0.5},
		Normal: model.Vec3{0, 0, 1},
		Gap:    -0.02,
	}
	asm.Apply(w, []contact.Contact{c}, det, 0, 0.001)

	chk.Scalar(tst, "master force z", 1e-10, w.Force[a][2], 20)
}
