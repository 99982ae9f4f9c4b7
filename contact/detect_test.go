// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"testing"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

func newPairWorld(tst *testing.T, gap float64) *model.World {
	w := model.NewWorld()
	matIdx, err := w.Materials.Add(model.Material{Density: 1, Young: 1e6, Poisson: 0.3})
	if err != nil {
		tst.Fatalf("material: %v", err)
	}
	j := 0.4
	J := model.Mat3{{j, 0, 0}, {0, j, 0}, {0, 0, j}}
	pA, err := w.AddParticle(1, J, model.Vec3{0, 0, 0}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle A: %v", err)
	}
	pB, err := w.AddParticle(1, J, model.Vec3{2 + gap, 0, 0}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle B: %v", err)
	}
	if _, err := w.Ellipsoids.Add(pA, model.Vec3{}, [3]float64{1, -1, -1}, model.Identity3(), 0); err != nil {
		tst.Fatalf("ellipsoid A: %v", err)
	}
	if _, err := w.Ellipsoids.Add(pB, model.Vec3{}, [3]float64{1, -1, -1}, model.Identity3(), 0); err != nil {
		tst.Fatalf("ellipsoid B: %v", err)
	}
	// shape updater normally fills Center/Orient from Pos/Rot; wire it
	// directly here since the detector is being tested in isolation.
	w.Ellipsoids.Center[0] = w.Pos[pA]
	w.Ellipsoids.Center[1] = w.Pos[pB]
	return w
}

func TestDetectFindsOverlappingSpherePair(tst *testing.T) {
	chk.PrintTitle("detector: overlapping sphere pair is reported")
	w := newPairWorld(tst, -0.5) // spheres of radius 1 centered 1.5 apart
	d := NewDetector(4)
	contacts := d.Detect(w)
	if len(contacts) != 1 {
		tst.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if contacts[0].Gap >= 0 {
		tst.Errorf("expected negative gap, got %v", contacts[0].Gap)
	}
}

func TestDetectSkipsSeparatedSpherePair(tst *testing.T) {
	chk.PrintTitle("detector: separated sphere pair is not reported")
	w := newPairWorld(tst, 1.0) // centers 3 apart, radii 1 each ⇒ gap=1
	d := NewDetector(4)
	contacts := d.Detect(w)
	chk.IntAssert(len(contacts), 0)
}

func TestDetectSkipsAnalyticalParticles(tst *testing.T) {
	chk.PrintTitle("detector: analytical particles excluded from contact")
	w := model.NewWorld()
	matIdx, err := w.Materials.Add(model.Material{Density: 1, Young: 1e6, Poisson: 0.3})
	if err != nil {
		tst.Fatalf("material: %v", err)
	}
	j := 0.4
	J := model.Mat3{{j, 0, 0}, {0, j, 0}, {0, 0, j}}
	p0, err := w.AddParticle(1, J, model.Vec3{}, matIdx, model.Analytical)
	if err != nil {
		tst.Fatalf("particle: %v", err)
	}
	p1, err := w.AddParticle(1, J, model.Vec3{0.5, 0, 0}, matIdx, 0)
	if err != nil {
		tst.Fatalf("particle: %v", err)
	}
	if _, err := w.Ellipsoids.Add(p0, model.Vec3{}, [3]float64{1, -1, -1}, model.Identity3(), 0); err != nil {
		tst.Fatalf("ellipsoid: %v", err)
	}
	if _, err := w.Ellipsoids.Add(p1, model.Vec3{}, [3]float64{1, -1, -1}, model.Identity3(), 0); err != nil {
		tst.Fatalf("ellipsoid: %v", err)
	}
	w.Ellipsoids.Center[0] = w.Pos[p0]
	w.Ellipsoids.Center[1] = w.Pos[p1]

	d := NewDetector(4)
	contacts := d.Detect(w)
	chk.IntAssert(len(contacts), 0)
}

func TestDetectPersistsTangentialDisplacementAcrossSteps(tst *testing.T) {
	chk.PrintTitle("detector: tangential displacement persists across calls")
	w := newPairWorld(tst, -0.5)
	d := NewDetector(4)

	c1 := d.Detect(w)
	if len(c1) != 1 {
		tst.Fatalf("expected 1 contact, got %d", len(c1))
	}
	d.UpdateTangent(c1[0].Key, model.Vec3{0.01, 0, 0})

	c2 := d.Detect(w)
	if len(c2) != 1 {
		tst.Fatalf("expected 1 contact, got %d", len(c2))
	}
	chk.Scalar(tst, "persisted tangent x", 1e-15, c2[0].Tangent[0], 0.01)
}
