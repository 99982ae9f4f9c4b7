// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package force

import (
	"github.com/cpmech/godem/contact"
	"github.com/cpmech/godem/model"
)

// Assembler evaluates the granular contact force law (spec.md §4.3) over a
// batch of detected contacts and accumulates force/torque onto the owning
// particles. It also feeds the per-particle Kmax/Emax/Krot accumulators the
// adaptive timestep controller reads (spec.md §4.10).
type Assembler struct {
	Table *Table
}

// NewAssembler returns an Assembler backed by table (must not be nil).
func NewAssembler(table *Table) *Assembler {
	return &Assembler{Table: table}
}

// Apply evaluates every contact in cs against w, accumulating forces with
// AddForce and writing back the updated tangential displacement to det for
// next step's persistence (spec.md §4.2/§4.3). t is the current simulation
// time (needed to evaluate moving-obstacle velocities) and dt the step size
// used to integrate the tangential trial displacement.
func (o *Assembler) Apply(w *model.World, cs []contact.Contact, det *contact.Detector, t, dt float64) {
	for _, c := range cs {
		o.applyOne(w, c, det, t, dt)
	}
}

func (o *Assembler) applyOne(w *model.World, c contact.Contact, det *contact.Detector, t, dt float64) {
	cp := o.Table.Get(c.Color1, c.Color2)

	velMaster := w.PointVelocity(c.Master, c.Point)
	velSlave, omegaSlave := slaveKinematics(w, c.Slave, c.Point, t)
	omegaMaster := w.AngularVelocityWorld(c.Master)

	vRel := velMaster.Sub(velSlave)
	vn := vRel.Dot(c.Normal)
	vt := vRel.Sub(c.Normal.Scale(vn))

	// normal spring-dashpot: repulsive only (spec.md §4.3 "F_n = 0 if g>=0").
	Fn := -cp.Spring*c.Gap - cp.Damper*vn
	if Fn < 0 || c.Gap >= 0 {
		Fn = 0
	}

	// tangential trial force with Cundall-Strack return mapping.
	kt := cp.Kskn * cp.Spring
	ct := cp.Kskn * cp.Damper
	uTrial := c.Tangent.Add(vt.Scale(dt))
	ftTrial := uTrial.Scale(-kt).Sub(vt.Scale(ct))

	var ft model.Vec3
	var uNext model.Vec3
	staticLimit := cp.FriStat * Fn
	mag := ftTrial.Norm()
	if kt <= 0 || mag <= staticLimit {
		ft = ftTrial
		uNext = uTrial
	} else {
		dynLimit := cp.FriDyn * Fn
		ft = ftTrial.Scale(dynLimit / mag)
		uNext = ft.Scale(-1 / kt)
	}
	det.UpdateTangent(c.Key, uNext)

	total := c.Normal.Scale(Fn).Add(ft)

	// rolling/drilling resistance: Coulomb-type moments bounded by
	// μ·F_n·EffRadius, opposing the relative angular velocity component
	// (spec.md §4.3).
	omegaRel := omegaMaster.Sub(omegaSlave)
	omegaDrill := c.Normal.Scale(omegaRel.Dot(c.Normal))
	omegaRoll := omegaRel.Sub(omegaDrill)
	rollTorque := boundedOpposing(omegaRoll, cp.FriRol*Fn*c.EffRadius)
	drillTorque := boundedOpposing(omegaDrill, cp.FriDril*Fn*c.EffRadius)
	coupleTorque := rollTorque.Add(drillTorque)

	rMaster := c.Point.Sub(w.Pos[c.Master])
	w.AddForce(c.Master, total, rMaster.Cross(total).Add(coupleTorque))
	bumpAdaptiveAccum(w, c.Master, cp, kt, c.EffRadius)

	if c.Slave >= 0 {
		rSlave := c.Point.Sub(w.Pos[c.Slave])
		w.AddForce(c.Slave, total.Scale(-1), rSlave.Cross(total.Scale(-1)).Sub(coupleTorque))
		bumpAdaptiveAccum(w, c.Slave, cp, kt, c.EffRadius)
	}
}

// slaveKinematics returns the world-frame velocity at point and angular
// velocity of the "slave" side of a contact, which may be a particle, a
// static obstacle (zero motion) or a moving obstacle (prescribed motion).
func slaveKinematics(w *model.World, slave int, point model.Vec3, t float64) (vel, omega model.Vec3) {
	if slave >= 0 {
		return w.PointVelocity(slave, point), w.AngularVelocityWorld(slave)
	}
	if k, ok := model.MovingObstacleIndex(slave); ok {
		ob := w.Obstacles[k]
		omega = ob.AngVel.At(t)
		vel = ob.LinVel.At(t).Add(omega.Cross(point.Sub(ob.Pivot)))
		return
	}
	return model.Vec3{}, model.Vec3{} // StaticObstacle: fixed geometry
}

// boundedOpposing returns a vector of magnitude bound opposing v (zero if
// v is ~zero or bound<=0).
func boundedOpposing(v model.Vec3, bound float64) model.Vec3 {
	n := v.Norm()
	if n < 1e-300 || bound <= 0 {
		return model.Vec3{}
	}
	return v.Scale(-bound / n)
}

// bumpAdaptiveAccum raises particle i's stiffness/damping/rotational-
// stiffness accumulators to at least this contact's contribution, feeding
// the adaptive critical-timestep controller (spec.md §4.10).
func bumpAdaptiveAccum(w *model.World, i int, cp ColorPair, kt, effRadius float64) {
	if cp.Spring > w.Kmax[i] {
		w.Kmax[i] = cp.Spring
	}
	if cp.Damper > w.Emax[i] {
		w.Emax[i] = cp.Damper
	}
	krot := kt * effRadius * effRadius
	if krot > w.Krot[i] {
		w.Krot[i] = krot
	}
}
