// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spring

import (
	"math"

	"github.com/cpmech/godem/curve"
	"github.com/cpmech/godem/model"
)

// TorsionalAssembler evaluates every torsional (roll/pitch/yaw) spring
// against the world state (spec.md §4.5).
type TorsionalAssembler struct{}

// Apply evaluates all torsional springs at the current state. dt is used
// only to estimate the Euler-angle rates φ̇,θ̇,ψ̇ via a first-order
// backward difference against the previously recorded angles.
func (TorsionalAssembler) Apply(w *model.World, dt float64) {
	ts := &w.TorSprings
	for i := 0; i < ts.Len(); i++ {
		applyTorsionalSpring(w, i, dt)
	}
}

func applyTorsionalSpring(w *model.World, i int, dt float64) {
	ts := &w.TorSprings
	part0, part1 := ts.Part0[i], ts.Part1[i]

	z0 := w.Rot[part0].MulVec(ts.RefZ[i])
	x0 := w.Rot[part0].MulVec(ts.RefX[i])

	// relative rotation R1ᵀ·R0 expressed in part0's mating basis, i.e. the
	// rotation that takes part1's transported frame onto part0's.
	var rel model.Mat3
	if part1 >= 0 {
		rel = w.Rot[part1].T().Mul(w.Rot[part0])
	} else {
		rel = w.Rot[part0]
	}
	phi, theta, psi := eulerZYX(rel)

	phiDot, thetaDot, psiDot := 0.0, 0.0, 0.0
	if dt > 0 {
		phiDot = angleRate(ts.Angles[i][0], phi, dt)
		thetaDot = angleRate(ts.Angles[i][1], theta, dt)
		psiDot = angleRate(ts.Angles[i][2], psi, dt)
	}

	var restoreTheta, restorePsi float64
	if ts.Cone[i] {
		theta, restoreTheta = clipToCone(w.Curve(ts.PitchTable[i]), theta)
		psi, restorePsi = clipToCone(w.Curve(ts.YawTable[i]), psi)
	}

	tPhi := tableValue(w, ts.RollTable[i], phi) + tableValue(w, ts.RollDamper[i], phiDot)
	tTheta := tableValue(w, ts.PitchTable[i], theta) + tableValue(w, ts.PitchDamper[i], thetaDot) + restoreTheta
	tPsi := tableValue(w, ts.YawTable[i], psi) + tableValue(w, ts.YawDamper[i], psiDot) + restorePsi

	// recompose the scalar per-axis torques along the current roll (x0),
	// pitch (y = z0×x0) and yaw (z0) axes of part0's mating frame.
	y0 := z0.Cross(x0)
	moment := x0.Scale(tPhi).Add(y0.Scale(tTheta)).Add(z0.Scale(tPsi))

	w.AddForce(part0, model.Vec3{}, moment)
	if part1 >= 0 {
		w.AddForce(part1, model.Vec3{}, moment.Scale(-1))
	}

	ts.Angles[i] = [3]float64{phi, theta, psi}
}

func tableValue(w *model.World, handle int, x float64) float64 {
	lc := w.Curve(handle)
	if lc == nil {
		return 0
	}
	return lc.At(x)
}

func angleRate(prev, cur, dt float64) float64 {
	d := cur - prev
	// unwrap across the +-pi branch cut so a rate estimate near the
	// boundary doesn't spike
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d / dt
}

// clipToCone clamps x into the table's domain [X[0],X[last]] (the cone
// admissibility range, spec.md §4.5) and, when x overshoots, returns a
// stiff restoring moment: minus the slope of the table's end segment on the
// overshoot side (last two points above the domain, first two below) times
// the overshoot distance x - boundary.
func clipToCone(lc *curve.LoadCurve, x float64) (clipped, restore float64) {
	if lc == nil || len(lc.X) == 0 {
		return x, 0
	}
	n := len(lc.X)
	lo, hi := lc.X[0], lc.X[n-1]
	switch {
	case x > hi:
		slope := (lc.Y[n-1] - lc.Y[n-2]) / (lc.X[n-1] - lc.X[n-2])
		return hi, -slope * (x - hi)
	case x < lo:
		slope := (lc.Y[1] - lc.Y[0]) / (lc.X[1] - lc.X[0])
		return lo, -slope * (x - lo)
	default:
		return x, 0
	}
}

// eulerZYX decomposes rotation matrix r into Z-Y-X Euler angles (roll φ
// about x, pitch θ about y, yaw ψ about z), the standard aerospace
// convention r = Rz(ψ)·Ry(θ)·Rx(φ).
func eulerZYX(r model.Mat3) (phi, theta, psi float64) {
	theta = math.Asin(clamp(-r[2][0], -1, 1))
	if math.Abs(r[2][0]) < 1-1e-9 {
		phi = math.Atan2(r[2][1], r[2][2])
		psi = math.Atan2(r[1][0], r[0][0])
	} else {
		// gimbal lock: pitch at +-90deg, roll and yaw become coupled
		phi = math.Atan2(-r[1][2], r[1][1])
		psi = 0
	}
	return
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
