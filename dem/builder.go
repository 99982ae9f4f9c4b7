// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"github.com/cpmech/godem/curve"
	"github.com/cpmech/godem/model"
	"github.com/cpmech/godem/spring"
	"github.com/cpmech/gosl/fun"
)

// AddMaterial registers a material, returning its handle (spec.md §6
// "operations to create materials").
func (o *Engine) AddMaterial(m model.Material) (int, error) {
	return o.World.Materials.Add(m)
}

// AddSphere is AddParticle+AddEllipsoid convenience for the common case of
// a single-shape spherical particle: mass/inertia are computed from
// density and radius assuming a uniform solid sphere.
func (o *Engine) AddSphere(x model.Vec3, radius float64, matIdx, color int, flags model.ParticleFlags) (particle, shape int, err error) {
	mat, err := o.World.Materials.Get(matIdx)
	if err != nil {
		return -1, -1, err
	}
	vol := 4.0 / 3.0 * 3.141592653589793 * radius * radius * radius
	mass := mat.Density * vol
	j := 2.0 / 5.0 * mass * radius * radius
	J := model.Mat3{{j, 0, 0}, {0, j, 0}, {0, 0, j}}
	particle, err = o.World.AddParticle(mass, J, x, matIdx, flags)
	if err != nil {
		return -1, -1, err
	}
	shape, err = o.World.Ellipsoids.Add(particle, model.Vec3{}, [3]float64{radius, -1, -1}, model.Identity3(), color)
	return particle, shape, err
}

// AddParticle creates a bare particle (mass/inertia supplied directly, as
// for a meshed particle whose inertia was integrated externally, spec.md
// §1) with no attached contact shape; callers add ellipsoids/triangles
// separately via AddEllipsoid/AddTriangle.
func (o *Engine) AddParticle(mass float64, J model.Mat3, x model.Vec3, matIdx int, flags model.ParticleFlags) (int, error) {
	return o.World.AddParticle(mass, J, x, matIdx, flags)
}

// AddMeshedParticle creates a particle from externally-integrated
// mass/inertia (spec.md §6 "meshed particles (nodes + element list +
// surface-color list)") together with its node-derived surface triangles;
// this module takes the mesh-to-inertia integration and the node/element
// topology as already resolved by the caller and only wires the resulting
// geometry into the contact/shape-update machinery, per spec.md §1's
// "mesh-characteristic (inertia) integration over simplices ... explicitly
// OUT of scope". triangles gives each triangle vertex's position relative
// to x in the particle's reference frame.
func (o *Engine) AddMeshedParticle(inertia model.InertiaInput, x model.Vec3, matIdx int, flags model.ParticleFlags,
	triangles [][3]model.Vec3, colors []int) (particle int, triangleHandles []int, err error) {
	particle, err = o.World.AddParticle(inertia.Mass, inertia.Inertia, x, matIdx, flags)
	if err != nil {
		return -1, nil, err
	}
	triangleHandles = make([]int, len(triangles))
	for i, tri := range triangles {
		verts := [3]model.Vec3{x.Add(tri[0]), x.Add(tri[1]), x.Add(tri[2])}
		triangleHandles[i] = o.World.Triangles.Add(particle, verts, tri, colors[i])
	}
	return particle, triangleHandles, nil
}

// AddAnalytical creates a particle flagged model.Analytical (spec.md §3
// "ANALYTICAL ⇒ excluded from contact detection"): it participates in
// integration, springs, joints, restraints and prescribed motion but
// carries no contact geometry and is skipped by CD and the shape updater.
func (o *Engine) AddAnalytical(mass float64, J model.Mat3, x model.Vec3, matIdx int) (int, error) {
	return o.World.AddParticle(mass, J, x, matIdx, model.Analytical)
}

// AddEllipsoid attaches an ellipsoid/sphere contact shape to an existing
// particle.
func (o *Engine) AddEllipsoid(owner int, refC model.Vec3, radii [3]float64, refOri model.Mat3, color int) (int, error) {
	if err := o.checkParticle(owner, false); err != nil {
		return -1, err
	}
	return o.World.Ellipsoids.Add(owner, refC, radii, refOri, color)
}

// AddTriangle attaches a particle-owned surface triangle (owner>=0),
// or static/moving obstacle geometry (owner model.StaticObstacle or
// model.MovingObstacleOwner(k)).
func (o *Engine) AddTriangle(owner int, verts, refLoc [3]model.Vec3, color int) int {
	return o.World.Triangles.Add(owner, verts, refLoc, color)
}

// AddObstacle registers a moving-rigid-geometry obstacle driven by the
// given pivot/linear/angular velocity callbacks (spec.md §3 Obstacle,
// §6 "obstacles (triangle list + pivot + velocity callbacks)"). Its
// triangles are added afterwards with owner model.MovingObstacleOwner(handle),
// handle being this call's return value (only known once the obstacle is
// registered), and their range is then recorded with SetObstacleTriangleRange.
func (o *Engine) AddObstacle(pivot model.Vec3, linVel, angVel model.VecFunc) int {
	o.World.Obstacles = append(o.World.Obstacles, model.Obstacle{
		Pivot: pivot, Rot: model.Identity3(), LinVel: linVel, AngVel: angVel,
	})
	return len(o.World.Obstacles) - 1
}

// SetObstacleTriangleRange records which triangles [start,end) belong to
// obstacle handle, once they have been added with owner
// model.MovingObstacleOwner(handle).
func (o *Engine) SetObstacleTriangleRange(handle, start, end int) {
	o.World.Obstacles[handle].Start = start
	o.World.Obstacles[handle].End = end
}

// AddLinearSpring registers a linear spring-dashpot element (spec.md §3/§4.4).
// part1 may be -1 (model.NoWorldParticle) to anchor the spring to a fixed
// world point.
func (o *Engine) AddLinearSpring(part0, part1 int, refP0, refP1 model.Vec3, dir model.DirMode, refDir, planeNormal model.Vec3,
	stroke0 float64, offsetCurve int, kind model.SpringKind, forceTable, unloadTable int, yieldComp, yieldTens float64,
	dashpotTable int, zeta float64, fricCoeff, kskn float64) (int, error) {
	if err := o.checkParticle(part0, false); err != nil {
		return -1, err
	}
	if err := o.checkParticle(part1, true); err != nil {
		return -1, err
	}
	return o.World.LinSprings.Add(part0, part1, refP0, refP1, dir, refDir, planeNormal, stroke0, offsetCurve,
		kind, forceTable, unloadTable, yieldComp, yieldTens, dashpotTable, zeta, fricCoeff, kskn), nil
}

// AddTorsionalSpring registers a roll/pitch/yaw torsional spring element
// (spec.md §3/§4.5). part1 may be -1 to anchor to a fixed world frame.
func (o *Engine) AddTorsionalSpring(part0, part1 int, refZ, refX model.Vec3, rollTable, pitchTable, yawTable int,
	rollDamper, pitchDamper, yawDamper int, cone bool, refPivot model.Vec3, hasPivot bool) (int, error) {
	if err := o.checkParticle(part0, false); err != nil {
		return -1, err
	}
	if err := o.checkParticle(part1, true); err != nil {
		return -1, err
	}
	return o.World.TorSprings.Add(part0, part1, refZ, refX, rollTable, pitchTable, yawTable,
		rollDamper, pitchDamper, yawDamper, cone, refPivot, hasPivot), nil
}

// AddJoint registers a bilateral point-coincidence joint (spec.md §3/§4.6).
// Adding a joint changes the joint solver's sparsity pattern, so the solver
// is told to refactorize on the next Solve. part1 may be -1 to anchor the
// joint to a fixed world point.
func (o *Engine) AddJoint(part0, part1 int, refP0, refP1 model.Vec3) (int, error) {
	if err := o.checkParticle(part0, false); err != nil {
		return -1, err
	}
	if err := o.checkParticle(part1, true); err != nil {
		return -1, err
	}
	h := o.World.Joints.Add(part0, part1, refP0, refP1)
	o.Joints.InvalidateTopology()
	return h, nil
}

// AddRestraint registers a velocity/force restraint on a particle (spec.md
// §3/§4.7).
func (o *Engine) AddRestraint(particle int, dirLin, dirAng []model.Vec3) (int, error) {
	if err := o.checkParticle(particle, false); err != nil {
		return -1, err
	}
	return o.World.Restraints.Add(particle, dirLin, dirAng)
}

// AddPrescribed registers a prescribed-motion binding on a particle
// (spec.md §3/§4.8).
func (o *Engine) AddPrescribed(particle int, kindLin model.PrescribeKind, lin [3]fun.Func, kindAng model.PrescribeKind, ang [3]fun.Func) (int, error) {
	if err := o.checkParticle(particle, false); err != nil {
		return -1, err
	}
	return o.World.Prescribed.Add(particle, kindLin, lin, kindAng, ang), nil
}

// AddLoadCurve registers a piecewise-linear load curve, returning its handle.
func (o *Engine) AddLoadCurve(x, y []float64) (int, error) {
	lc, err := curve.NewLoadCurve(x, y)
	if err != nil {
		return -1, err
	}
	return o.World.AddLoadCurve(lc), nil
}

// AddUnspringRule registers an UNSPRING monitor rule (spec.md §3/§4.11).
func (o *Engine) AddUnspringRule(r *spring.Rule) (int, error) {
	return o.Unspring.AddRule(o.World, r)
}

// AddTimeSeries builds a fun.Func over a piecewise-linear (t,value) table,
// the time-indexed callback shape spec.md §3's Time series and §9's
// "time-indexed R→R³ function" design note both call for (three scalar
// series combine into a model.VecFunc at the call site, e.g. for
// gravity/damping/prescribed-motion/obstacle-velocity bindings).
func (o *Engine) AddTimeSeries(t, v []float64) (fun.Func, error) {
	return curve.NewTimeSeries(t, v)
}
