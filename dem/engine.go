// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dem is the top-level DEM engine: it owns a model.World and every
// behavioural collaborator (CD, FA, spring assemblers, UNSPRING monitor,
// RA, JS, IN/AS) and drives them through the per-step data flow of
// spec.md §2: OD → CD → FA → PD → RA → JS → IN → SU → SE → AS. Grounded on
// fem/fem.go's FEM struct (top-level driver owning Sim/Domains/Solver) and
// fem/domain.go's Domain.Clean/stage-reset pattern, adapted from the FE
// stage/solver split to a single always-on stepping loop, since DEM has no
// notion of "stages" the way gofem's quasi-static FE driver does.
package dem

import (
	"github.com/cpmech/godem/contact"
	"github.com/cpmech/godem/force"
	"github.com/cpmech/godem/integrate"
	"github.com/cpmech/godem/joint"
	"github.com/cpmech/godem/model"
	"github.com/cpmech/godem/spring"
)

// Engine bundles the World with every stateful collaborator. Field names
// mirror the spec's component acronyms in comments so the stepping loop in
// run.go reads like the data-flow diagram it implements.
type Engine struct {
	World *model.World

	Detector   *contact.Detector // CD
	ForceTable *force.Table      // FA contact-law colour table
	ForceAsm   *force.Assembler  // FA

	LinSprings spring.LinearAssembler    // FA (linear springs)
	TorSprings spring.TorsionalAssembler // FA (torsional springs)
	Unspring   *spring.Monitor          // SE

	Joints *joint.Solver // JS

	Integrator *integrate.Integrator // IN

	Gravity integrate.Gravity // nil ⇒ no gravity

	// Adaptive controls AS (spec.md §4.10). HMax bounds the step even when
	// no stiffness has been registered yet (e.g. the very first step).
	Adaptive float64
	HMax     float64

	// Verbose gates Run's io.Pf progress/completion lines, mirroring
	// fem/fem.go's ShowMsg.
	Verbose bool

	t       float64 // current simulation time
	started bool    // whether HalfStepStart has run
}

// NewEngine returns an Engine ready for model-definition calls (builder.go).
// ptCellSize is the partitioning tree's leaf capacity LSIZE (spec.md §4.1;
// <=0 selects contact.DefaultLSIZE); see contact.NewDetector. solverName selects the joint solver's sparse
// backend (passed to gosl/la.GetSolver, e.g. "umfpack").
func NewEngine(ptCellSize int, solverName string, jointRefactorEvery int) *Engine {
	w := model.NewWorld()
	table := force.NewTable()
	return &Engine{
		World:      w,
		Detector:   contact.NewDetector(ptCellSize),
		ForceTable: table,
		ForceAsm:   force.NewAssembler(table),
		Unspring:   spring.NewMonitor(),
		Joints:     joint.NewSolver(solverName, jointRefactorEvery),
		Integrator: &integrate.Integrator{},
		Adaptive:   1.0,
	}
}

// SetGravity installs the global gravity callback (spec.md §6
// "gravity, damping"), consulted by the integrator's velocity update
// (spec.md §4.9 step 2b).
func (o *Engine) SetGravity(g integrate.Gravity) {
	o.Gravity = g
	o.Integrator.Gravity = g
}

// SetDamping installs the global linear/angular velocity damping
// coefficients (spec.md §4.9 step 2b).
func (o *Engine) SetDamping(linear, angular float64) {
	o.Integrator.DampingLin = linear
	o.Integrator.DampingAng = angular
}

// Close releases the joint solver's native sparse-factorization resources.
func (o *Engine) Close() {
	o.Joints.Close()
}

// LinearAccel implements joint.Prediction: the joint-free predicted linear
// acceleration from forces already accumulated this step by FA/PD/RA.
func (o *Engine) LinearAccel(particle int) model.Vec3 {
	return o.World.Force[particle].Scale(o.World.InvMass[particle])
}

// AngularAccel implements joint.Prediction: the joint-free predicted
// angular acceleration (body frame), ignoring the gyroscopic term for the
// prediction (spec.md §4.6 only needs a joint-free relative-velocity
// estimate, not an exact trajectory).
func (o *Engine) AngularAccel(particle int) model.Vec3 {
	tauBody := o.World.Rot[particle].T().MulVec(o.World.Torque[particle])
	return o.World.InvJ[particle].MulVec(tauBody)
}

var _ joint.Prediction = (*Engine)(nil)
