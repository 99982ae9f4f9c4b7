// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// EllipsoidShape is the narrow-phase view of one ellipsoid/sphere: its
// current center, orientation and radii.
type EllipsoidShape struct {
	Center model.Vec3
	Orient model.Mat3
	Radii  [3]float64
}

// IsSphere reports whether the shape is a sphere (r2 < 0), per spec.md §3.
func (o EllipsoidShape) IsSphere() bool { return o.Radii[1] < 0 }

// Closest computes the closest-point pair, outward unit normal and gap
// between two ellipsoid/sphere shapes, following spec.md §4.2: spheres use
// the closed-form line-of-centers solution; otherwise a Newton iteration on
// the Lagrangian stationarity condition of the two-surface closest-point
// problem is used (grounded on the msolid/hyperelast1.go num.NlSolver usage
// pattern for a small dense Newton solve).
func Closest(a, b EllipsoidShape) (pA, pB, normal model.Vec3, gap float64, err error) {
	if a.IsSphere() && b.IsSphere() {
		return closestSpheres(a.Center, a.Radii[0], b.Center, b.Radii[0])
	}
	return closestEllipsoids(a, b)
}

// closestSpheres is the exact line-of-centers solution (spec.md §4.2).
func closestSpheres(cA model.Vec3, rA float64, cB model.Vec3, rB float64) (pA, pB, normal model.Vec3, gap float64, err error) {
	d := cA.Sub(cB)
	dist := d.Norm()
	if dist < 1e-300 {
		normal = model.Vec3{1, 0, 0}
	} else {
		normal = d.Scale(1 / dist)
	}
	pA = cA.Sub(normal.Scale(rA))
	pB = cB.Add(normal.Scale(rB))
	gap = dist - (rA + rB)
	return
}

// closestEllipsoids solves the stationarity conditions of
//
//	L = ½|pA-pB|² + λA·gA(pA) + λB·gB(pB)
//
// where gX(p) = (Qxᵀ(p-cx))ᵢ²/rxᵢ² - 1 is the implicit ellipsoid surface
// equation, via an 8-unknown Newton solve [pA(3), pB(3), λA, λB]. This is
// well-posed for the shallow-penetration regime a penalty-based contact
// law operates in (the overlap magnitude is a small fraction of body size),
// matching spec.md §8 scenario 1's expected ~0.2% max overlap.
func closestEllipsoids(a, b EllipsoidShape) (pA, pB, normal model.Vec3, gap float64, err error) {
	lineOfCenters := a.Center.Sub(b.Center).Unit()
	x0A := a.Center.Sub(lineOfCenters.Scale(effectiveRadius(a, lineOfCenters)))
	x0B := b.Center.Add(lineOfCenters.Scale(effectiveRadius(b, lineOfCenters)))

	x := []float64{x0A[0], x0A[1], x0A[2], x0B[0], x0B[1], x0B[2], 1, 1}

	gFcn := func(shape EllipsoidShape, p model.Vec3) (g float64, dgdp model.Vec3) {
		local := shape.Orient.T().MulVec(p.Sub(shape.Center))
		for i := 0; i < 3; i++ {
			r := shape.Radii[i]
			if r <= 0 {
				r = shape.Radii[0] // degenerate guard; spheres never reach here
			}
			g += local[i] * local[i] / (r * r)
		}
		g -= 1
		// dg/dp = Q * (2*local_i/r_i^2) in local coords, rotated back to world
		var dlocal model.Vec3
		for i := 0; i < 3; i++ {
			r := shape.Radii[i]
			if r <= 0 {
				r = shape.Radii[0]
			}
			dlocal[i] = 2 * local[i] / (r * r)
		}
		dgdp = shape.Orient.MulVec(dlocal)
		return
	}

	ffcn := func(fx, xv []float64) error {
		pa := model.Vec3{xv[0], xv[1], xv[2]}
		pb := model.Vec3{xv[3], xv[4], xv[5]}
		λA, λB := xv[6], xv[7]
		gA, dgA := gFcn(a, pa)
		gB, dgB := gFcn(b, pb)
		d := pa.Sub(pb)
		for i := 0; i < 3; i++ {
			fx[i] = d[i] + λA*dgA[i]
			fx[3+i] = -d[i] + λB*dgB[i]
		}
		fx[6] = gA
		fx[7] = gB
		return nil
	}

	var nls num.NlSolver
	nls.Init(8, ffcn, nil, nil, true, true, nil)
	nls.SetTols(1e-9, 1e-9, 1e-13, num.EPS)
	if serr := nls.Solve(x, true); serr != nil {
		return pA, pB, normal, 0, chk.Err("ellipsoid closest-point Newton iteration failed to converge: %v", serr)
	}

	pA = model.Vec3{x[0], x[1], x[2]}
	pB = model.Vec3{x[3], x[4], x[5]}
	d := pA.Sub(pB)
	dist := d.Norm()
	if dist < 1e-300 {
		normal = lineOfCenters
	} else {
		normal = d.Scale(1 / dist)
	}
	gap = normal.Dot(pB.Sub(pA))
	return
}

// EffectiveRadius returns the ellipsoid's radius along unit direction dir:
// an exact formula for a point on the ellipsoid surface along a ray from
// its center. Used both to seed the Newton iteration and, by the force
// package, as the characteristic contact length for rolling/drilling
// resistance (spec.md §4.3).
func EffectiveRadius(s EllipsoidShape, dir model.Vec3) float64 {
	return effectiveRadius(s, dir)
}

func effectiveRadius(s EllipsoidShape, dir model.Vec3) float64 {
	local := s.Orient.T().MulVec(dir)
	var inv float64
	for i := 0; i < 3; i++ {
		r := s.Radii[i]
		if r <= 0 {
			r = s.Radii[0]
		}
		inv += local[i] * local[i] / (r * r)
	}
	if inv < 1e-300 {
		return s.Radii[0]
	}
	return 1 / math.Sqrt(inv)
}
