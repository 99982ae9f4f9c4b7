// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spring

import (
	"testing"

	"github.com/cpmech/godem/curve"
	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func newOneParticleWorld(tst *testing.T, pos model.Vec3) (*model.World, int) {
	w := model.NewWorld()
	matIdx, err := w.Materials.Add(model.Material{Density: 1, Young: 1e6, Poisson: 0.3})
	if err != nil {
		tst.Fatalf("material: %v", err)
	}
	j := 0.4
	J := model.Mat3{{j, 0, 0}, {0, j, 0}, {0, 0, j}}
	p, err := w.AddParticle(1, J, pos, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle: %v", err)
	}
	return w, p
}

func TestLinearSpringWorldAnchorAppliesBackboneForce(tst *testing.T) {
	chk.PrintTitle("linear spring: world-anchored backbone force, stretched")
	w, p := newOneParticleWorld(tst, model.Vec3{5, 0, 0})
	backbone, err := curve.NewLoadCurve([]float64{-10, 0, 10}, []float64{-100, 0, 100})
	if err != nil {
		tst.Fatalf("NewLoadCurve: %v", err)
	}
	ft := w.AddLoadCurve(backbone)

	w.LinSprings.Add(p, model.NoWorldParticle, model.Vec3{}, model.Vec3{0, 0, 0}, model.Follower,
		model.Vec3{}, model.Vec3{}, 0, model.SpringNoOffset, model.NonlinearElastic, ft, model.SpringNoUnload,
		-1e9, 1e9, -1, 0, 0, 0)

	var asm LinearAssembler
	asm.Apply(w, 0, 0.001)

	// spring stretches from world origin to the particle at x=5, so it
	// pulls the particle back toward the origin (force along -x).
	if w.Force[p][0] >= 0 {
		tst.Errorf("expected restoring force toward the anchor, got %v", w.Force[p][0])
	}
	chk.Scalar(tst, "force x magnitude", 1e-9, -w.Force[p][0], 50)
}

func TestLinearSpringUnspringInactiveZeroesForce(tst *testing.T) {
	chk.PrintTitle("linear spring: inactive unspring state zeroes force")
	w, p := newOneParticleWorld(tst, model.Vec3{5, 0, 0})
	backbone, err := curve.NewLoadCurve([]float64{-10, 0, 10}, []float64{-100, 0, 100})
	if err != nil {
		tst.Fatalf("NewLoadCurve: %v", err)
	}
	ft := w.AddLoadCurve(backbone)
	h := w.LinSprings.Add(p, model.NoWorldParticle, model.Vec3{}, model.Vec3{0, 0, 0}, model.Follower,
		model.Vec3{}, model.Vec3{}, 0, model.SpringNoOffset, model.NonlinearElastic, ft, model.SpringNoUnload,
		-1e9, 1e9, -1, 0, 0, 0)
	w.LinSprings.UnspringState[h] = model.SpringInactive

	var asm LinearAssembler
	asm.Apply(w, 0, 0.001)

	chk.Scalar(tst, "force x", 1e-15, w.Force[p][0], 0)
}

func TestLinearSpringYieldClampsForce(tst *testing.T) {
	chk.PrintTitle("linear spring: tension/compression yield clamp")
	w, p := newOneParticleWorld(tst, model.Vec3{50, 0, 0})
	backbone, err := curve.NewLoadCurve([]float64{-100, 0, 100}, []float64{-1000, 0, 1000})
	if err != nil {
		tst.Fatalf("NewLoadCurve: %v", err)
	}
	ft := w.AddLoadCurve(backbone)
	w.LinSprings.Add(p, model.NoWorldParticle, model.Vec3{}, model.Vec3{0, 0, 0}, model.Follower,
		model.Vec3{}, model.Vec3{}, 0, model.SpringNoOffset, model.NonlinearElastic, ft, model.SpringNoUnload,
		-20, 20, -1, 0, 0, 0)

	var asm LinearAssembler
	asm.Apply(w, 0, 0.001)

	// stroke +50 gives an unclamped tensile backbone force of 500 (pulling
	// the particle toward the origin); the tension yield limit 20 clamps it
	// to 20.
	chk.Scalar(tst, "clamped force magnitude", 1e-9, -w.Force[p][0], 20)
}
