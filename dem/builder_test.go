// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"math"
	"testing"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func newTestEngine(tst *testing.T) *Engine {
	e := NewEngine(8, "umfpack", 1)
	if _, err := e.AddMaterial(model.Material{Density: 1, Young: 1e6, Poisson: 0.3}); err != nil {
		tst.Fatalf("AddMaterial: %v", err)
	}
	return e
}

func TestAddSphereComputesMassAndInertiaFromDensityAndRadius(tst *testing.T) {
	chk.PrintTitle("engine builder: AddSphere derives mass/inertia from a uniform solid sphere")
	e := newTestEngine(tst)
	radius := 2.0
	p, s, err := e.AddSphere(model.Vec3{1, 2, 3}, radius, 0, 0, 0)
	if err != nil {
		tst.Fatalf("AddSphere: %v", err)
	}
	wantVol := 4.0 / 3.0 * math.Pi * radius * radius * radius
	wantMass := 1 * wantVol
	wantJ := 2.0 / 5.0 * wantMass * radius * radius

	chk.Scalar(tst, "mass", 1e-9, e.World.Mass[p], wantMass)
	chk.Scalar(tst, "Jxx", 1e-9, e.World.Inertia[p][0][0], wantJ)
	chk.Scalar(tst, "Jyy", 1e-9, e.World.Inertia[p][1][1], wantJ)
	chk.Scalar(tst, "Jzz", 1e-9, e.World.Inertia[p][2][2], wantJ)

	radii := e.World.Ellipsoids.Radii[s]
	chk.Scalar(tst, "sphere radius stored as first semi-axis", 1e-15, radii[0], radius)
	if !e.World.Ellipsoids.IsSphere(s) {
		tst.Errorf("expected AddSphere's ellipsoid to report IsSphere")
	}
}

func TestAddSphereRejectsUnknownMaterial(tst *testing.T) {
	chk.PrintTitle("engine builder: AddSphere rejects an out-of-range material handle")
	e := NewEngine(8, "umfpack", 1)
	_, _, err := e.AddSphere(model.Vec3{}, 1, 99, 0, 0)
	if err == nil {
		tst.Errorf("expected an error for an unknown material handle, got nil")
	}
}

func TestAddEllipsoidRejectsUnknownOwner(tst *testing.T) {
	chk.PrintTitle("engine builder: AddEllipsoid rejects an out-of-range particle handle")
	e := newTestEngine(tst)
	_, err := e.AddEllipsoid(42, model.Vec3{}, [3]float64{1, -1, -1}, model.Identity3(), 0)
	if err == nil {
		tst.Errorf("expected an error for an unknown owner handle, got nil")
	}
}

func TestAddAnalyticalSetsAnalyticalFlag(tst *testing.T) {
	chk.PrintTitle("engine builder: AddAnalytical marks the particle analytical")
	e := newTestEngine(tst)
	p, err := e.AddAnalytical(1, model.Identity3(), model.Vec3{}, 0)
	if err != nil {
		tst.Fatalf("AddAnalytical: %v", err)
	}
	if !e.World.Flags[p].Has(model.Analytical) {
		tst.Errorf("expected the Analytical flag to be set")
	}
}

func TestAddLinearSpringRejectsUnknownPart0(tst *testing.T) {
	chk.PrintTitle("engine builder: AddLinearSpring rejects an unknown part0 handle")
	e := newTestEngine(tst)
	_, err := e.AddLinearSpring(7, model.NoWorldParticle, model.Vec3{}, model.Vec3{}, model.Follower,
		model.Vec3{}, model.Vec3{}, 0, model.SpringNoOffset, model.NonlinearElastic, -1, model.SpringNoUnload,
		-1e9, 1e9, -1, 0, 0, 0)
	if err == nil {
		tst.Errorf("expected an error for an unknown part0 handle, got nil")
	}
}

func TestAddLinearSpringAllowsWorldAnchoredPart1(tst *testing.T) {
	chk.PrintTitle("engine builder: AddLinearSpring allows part1 = NoWorldParticle")
	e := newTestEngine(tst)
	p, err := e.AddParticle(1, model.Identity3(), model.Vec3{}, 0, 0)
	if err != nil {
		tst.Fatalf("AddParticle: %v", err)
	}
	h, err := e.AddLinearSpring(p, model.NoWorldParticle, model.Vec3{}, model.Vec3{}, model.Follower,
		model.Vec3{}, model.Vec3{}, 0, model.SpringNoOffset, model.NonlinearElastic, -1, model.SpringNoUnload,
		-1e9, 1e9, -1, 0, 0, 0)
	if err != nil {
		tst.Fatalf("AddLinearSpring: %v", err)
	}
	if h < 0 {
		tst.Errorf("expected a valid handle, got %d", h)
	}
}

func TestAddJointRejectsUnknownPart1(tst *testing.T) {
	chk.PrintTitle("engine builder: AddJoint rejects an unknown (non-world) part1 handle")
	e := newTestEngine(tst)
	p, err := e.AddParticle(1, model.Identity3(), model.Vec3{}, 0, 0)
	if err != nil {
		tst.Fatalf("AddParticle: %v", err)
	}
	_, err = e.AddJoint(p, 5, model.Vec3{}, model.Vec3{})
	if err == nil {
		tst.Errorf("expected an error for an unknown part1 handle, got nil")
	}
}

func TestAddRestraintRejectsUnknownParticle(tst *testing.T) {
	chk.PrintTitle("engine builder: AddRestraint rejects an unknown particle handle")
	e := newTestEngine(tst)
	_, err := e.AddRestraint(3, []model.Vec3{{1, 0, 0}}, nil)
	if err == nil {
		tst.Errorf("expected an error for an unknown particle handle, got nil")
	}
}

func TestAddLoadCurveRoundTripsThroughWorld(tst *testing.T) {
	chk.PrintTitle("engine builder: AddLoadCurve registers a usable load curve")
	e := newTestEngine(tst)
	h, err := e.AddLoadCurve([]float64{0, 1}, []float64{0, 10})
	if err != nil {
		tst.Fatalf("AddLoadCurve: %v", err)
	}
	lc := e.World.Curve(h)
	if lc == nil {
		tst.Fatalf("Curve: expected a non-nil load curve for handle %d", h)
	}
	chk.Scalar(tst, "midpoint", 1e-12, lc.At(0.5), 5)
}
