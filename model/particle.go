// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/godem/curve"
	"github.com/cpmech/gosl/chk"
)

// ParticleFlags mirrors parmec's constants.h particle flag bitmask.
type ParticleFlags int

const (
	// Analytical marks a particle whose geometry is not used for contact;
	// it is excluded from contact detection and shape update (spec.md §3, §9).
	Analytical ParticleFlags = 1 << iota
	// OutRest is the OUTREST bit of the flag bitmask (spec.md §4.9 step 3).
	// It is stored and carried unchanged; nothing in this module reads it.
	OutRest
)

// Has reports whether f is set in o.
func (o ParticleFlags) Has(f ParticleFlags) bool { return o&f != 0 }

// World is the structure-of-arrays container for every DEM entity, owned
// globally by the engine for the simulation's lifetime (spec.md §3
// "Ownership"). It plays the role gofem's Domain plays for an FE mesh: a
// single passive data store that every behavioural package operates on.
// All lifetimes are simulation-global; arrays grow by doubling and are
// only truncated by Reset.
type World struct {
	Materials MaterialDb

	// particle SoA, indices are stable handles
	Mass     []float64 // m
	InvMass  []float64 // 1/m
	Inertia  []Mat3    // J (SPD)
	InvJ     []Mat3    // J⁻¹
	Pos      []Vec3    // current mass-center x
	RefPos   []Vec3    // reference mass-center X
	Rot      []Mat3    // current rotation R (RᵀR=I)
	RefOmega []Vec3    // referential angular velocity ω
	Vel      []Vec3    // linear velocity v
	Force    []Vec3    // accumulated spatial force f
	Torque   []Vec3    // accumulated spatial torque τ
	MatIdx   []int     // material index
	Flags    []ParticleFlags

	// previous-step kinematics used as the CD reference configuration
	// (spec.md §2: "CD ... using previous-step kinematics").
	PrevPos []Vec3
	PrevRot []Mat3

	// per-particle accumulators built by force assembly, consumed by the
	// adaptive step controller (spec.md §4.10).
	Kmax []float64 // max effective linear stiffness seen this step
	Emax []float64 // max effective linear damping slope seen this step
	Krot []float64 // rotational stiffness estimate

	Ellipsoids Ellipsoids
	Triangles  Triangles
	Obstacles  []Obstacle

	LinSprings LinearSprings
	TorSprings TorsionalSprings
	Joints     Joints
	Restraints Restraints
	Prescribed Prescribed

	// LoadCurves is the global registry every stroke-offset, unloading,
	// force-stroke and torsional table references by handle (spec.md §3
	// Load curve: "used both for spring offset/unloading").
	LoadCurves []*curve.LoadCurve
}

// AddLoadCurve registers a load curve, returning its stable handle.
func (o *World) AddLoadCurve(lc *curve.LoadCurve) int {
	o.LoadCurves = append(o.LoadCurves, lc)
	return len(o.LoadCurves) - 1
}

// Curve returns the load curve for handle, or nil if handle < 0 (the
// convention used throughout for "no curve").
func (o *World) Curve(handle int) *curve.LoadCurve {
	if handle < 0 {
		return nil
	}
	return o.LoadCurves[handle]
}

// NewWorld returns an initialised, empty World.
func NewWorld() *World {
	return &World{}
}

// NumParticles returns the number of particles currently allocated.
func (o *World) NumParticles() int { return len(o.Mass) }

// AddParticle appends a new particle with the given mass, inertia tensor,
// initial position and material, returning its stable handle. This is the
// primitive creation operation used by sphere/meshed/analytical particle
// builders (spec.md §6): the engine package is responsible for computing m
// and J from geometry or accepting them directly for meshed particles
// (spec.md §1 treats mesh-to-particle inertia integration as an external
// collaborator).
func (o *World) AddParticle(mass float64, J Mat3, x Vec3, matIdx int, flags ParticleFlags) (handle int, err error) {
	if mass <= 0 {
		return -1, chk.Err("particle mass must be > 0 (got %g)", mass)
	}
	if matIdx < 0 || matIdx >= len(o.Materials.List) {
		return -1, chk.Err("particle material index %d out of range [0,%d)", matIdx, len(o.Materials.List))
	}
	invJ, err := invertSPD(J)
	if err != nil {
		return -1, chk.Err("particle inertia tensor is not invertible: %v", err)
	}
	o.Mass = append(o.Mass, mass)
	o.InvMass = append(o.InvMass, 1/mass)
	o.Inertia = append(o.Inertia, J)
	o.InvJ = append(o.InvJ, invJ)
	o.Pos = append(o.Pos, x)
	o.RefPos = append(o.RefPos, x)
	o.Rot = append(o.Rot, Identity3())
	o.RefOmega = append(o.RefOmega, Vec3{})
	o.Vel = append(o.Vel, Vec3{})
	o.Force = append(o.Force, Vec3{})
	o.Torque = append(o.Torque, Vec3{})
	o.MatIdx = append(o.MatIdx, matIdx)
	o.Flags = append(o.Flags, flags)
	o.PrevPos = append(o.PrevPos, x)
	o.PrevRot = append(o.PrevRot, Identity3())
	o.Kmax = append(o.Kmax, 0)
	o.Emax = append(o.Emax, 0)
	o.Krot = append(o.Krot, 0)
	return len(o.Mass) - 1, nil
}

// ZeroAccumulators clears per-particle force/torque and stiffness/damping
// accumulators at the start of a step, before force assembly runs.
func (o *World) ZeroAccumulators() {
	for i := range o.Force {
		o.Force[i] = Vec3{}
		o.Torque[i] = Vec3{}
		o.Kmax[i] = 0
		o.Emax[i] = 0
		o.Krot[i] = 0
	}
}

// AddForce accumulates a force and its torque contribution (about the mass
// center) onto particle i. Callers compute the torque themselves, typically
// r×f with lever arm r = application point minus o.Pos[i]; this helper only
// adds the force/torque pair.
func (o *World) AddForce(i int, f, torque Vec3) {
	o.Force[i] = o.Force[i].Add(f)
	o.Torque[i] = o.Torque[i].Add(torque)
}

// AngularVelocityWorld returns particle i's angular velocity expressed in
// the world (spatial) frame. RefOmega is stored in the body frame, so it is
// rotated forward by the current orientation.
func (o *World) AngularVelocityWorld(i int) Vec3 {
	return o.Rot[i].MulVec(o.RefOmega[i])
}

// PointVelocity returns the world-frame velocity of the material point of
// particle i currently located at point, i.e. v + ω×(point-x).
func (o *World) PointVelocity(i int, point Vec3) Vec3 {
	r := point.Sub(o.Pos[i])
	return o.Vel[i].Add(o.AngularVelocityWorld(i).Cross(r))
}

// Reset truncates every slice to zero length, preserving backing arrays
// (spec.md §5 "none shrink until reset()"; spec.md §8 RESET invariant).
func (o *World) Reset() {
	o.Materials.List = o.Materials.List[:0]
	o.Mass = o.Mass[:0]
	o.InvMass = o.InvMass[:0]
	o.Inertia = o.Inertia[:0]
	o.InvJ = o.InvJ[:0]
	o.Pos = o.Pos[:0]
	o.RefPos = o.RefPos[:0]
	o.Rot = o.Rot[:0]
	o.RefOmega = o.RefOmega[:0]
	o.Vel = o.Vel[:0]
	o.Force = o.Force[:0]
	o.Torque = o.Torque[:0]
	o.MatIdx = o.MatIdx[:0]
	o.Flags = o.Flags[:0]
	o.PrevPos = o.PrevPos[:0]
	o.PrevRot = o.PrevRot[:0]
	o.Kmax = o.Kmax[:0]
	o.Emax = o.Emax[:0]
	o.Krot = o.Krot[:0]
	o.Ellipsoids.Reset()
	o.Triangles.Reset()
	o.Obstacles = o.Obstacles[:0]
	o.LinSprings.Reset()
	o.TorSprings.Reset()
	o.Joints.Reset()
	o.Restraints.Reset()
	o.Prescribed.Reset()
	o.LoadCurves = o.LoadCurves[:0]
}

// invertSPD inverts a small symmetric-positive-definite 3x3 matrix via the
// adjugate (cheap and adequate for inertia tensors).
func invertSPD(m Mat3) (inv Mat3, err error) {
	d := m.Det()
	if d <= 1e-300 {
		return inv, chk.Err("matrix is singular or not positive definite (det=%g)", d)
	}
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / d
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / d
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / d
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / d
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / d
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / d
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / d
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / d
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / d
	return
}
