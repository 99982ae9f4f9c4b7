// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package joint solves the bilateral point-coincidence constraints of
// spec.md §4.6 (the "JS" component) via a sparse block-3x3 linear system
// W·R = b, following fem/essenbcs.go's Lagrange-multiplier assembly
// (la.Triplet/la.CCMatrix) and fem/domain.go's la.GetSolver/la.LinSol
// factorization contract, re-targeted from the FEM global Jacobian to the
// per-joint generalized-inverse-inertia matrix spec.md §4.6 describes.
package joint

import (
	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Solver owns the joint-topology-dependent sparsity pattern and the
// factorization reuse policy (spec.md §4.6's "update_precond flag").
type Solver struct {
	// RefactorEvery controls how many Solve calls share one numeric
	// factorization before a fresh Fact() is performed (spec.md §4.6:
	// "values are refactored each step or only when particle
	// inertia/rotation changes sufficiently — the update_precond flag
	// controls this"). 1 means refactor every step (always accurate,
	// most expensive); higher values trade accuracy for speed.
	RefactorEvery int
	// SolverName selects the backend, passed to la.GetSolver (e.g.
	// "umfpack"), mirroring fem/domain.go's sim.LinSol.Name contract.
	SolverName string

	linSol             la.LinSol
	initialized        bool
	topologyVersion    int
	builtForTopology   int
	stepsSinceRefactor int
}

// NewSolver returns a Solver with the given solver backend and refactor
// cadence (refactorEvery<=0 selects 1, i.e. refactor every step).
func NewSolver(solverName string, refactorEvery int) *Solver {
	if refactorEvery <= 0 {
		refactorEvery = 1
	}
	return &Solver{SolverName: solverName, RefactorEvery: refactorEvery, topologyVersion: -1, builtForTopology: -2}
}

// InvalidateTopology forces the next Solve to rebuild the sparsity pattern
// and refactorize, used when a joint is added or removed.
func (o *Solver) InvalidateTopology() {
	o.topologyVersion++
}

// Close releases the linear solver's native resources.
func (o *Solver) Close() {
	if o.initialized {
		o.linSol.Free()
		o.initialized = false
	}
}

// Solve computes every joint's impulse R_i over step h and accumulates the
// resulting force/torque onto the connected particles (spec.md §4.6
// "Accumulation"). predAccel supplies each particle's joint-free predicted
// linear and angular acceleration (from forces/torques already assembled
// by FA/PD/RA this step), used to build the right-hand side.
func (o *Solver) Solve(w *model.World, h float64, predAccel Prediction) error {
	n := w.Joints.Len()
	if n == 0 {
		return nil
	}

	points := make([]model.Vec3, n)
	for i := 0; i < n; i++ {
		points[i] = jointPoint(w, i)
	}

	nnzMax := n * 9
	adjacency := buildAdjacency(w)
	for _, pairs := range adjacency {
		nnzMax += len(pairs) * (len(pairs) - 1) * 9
	}

	var tri la.Triplet
	tri.Init(3*n, 3*n, nnzMax)
	assembleDiagonal(&tri, w, points)
	assembleOffDiagonal(&tri, w, points, adjacency)

	if !o.initialized || o.builtForTopology != o.topologyVersion || o.stepsSinceRefactor >= o.RefactorEvery {
		if o.initialized {
			o.linSol.Free()
		}
		o.linSol = la.GetSolver(o.SolverName)
		if err := o.linSol.InitR(&tri, false, false, false); err != nil {
			return chk.Err("joint solver InitR failed: %v", err)
		}
		if err := o.linSol.Fact(); err != nil {
			return chk.Err("joint solver Fact failed: %v", err)
		}
		o.initialized = true
		o.builtForTopology = o.topologyVersion
		o.stepsSinceRefactor = 0
	}
	o.stepsSinceRefactor++

	b := make([]float64, 3*n)
	assembleRhs(b, w, points, predAccel, h)

	x := make([]float64, 3*n)
	if err := o.linSol.SolveR(x, b, false); err != nil {
		return chk.Err("joint solver SolveR failed: %v", err)
	}

	for i := 0; i < n; i++ {
		R := model.Vec3{x[3*i], x[3*i+1], x[3*i+2]}
		w.Joints.Reaction[i] = R
		accumulate(w, i, points[i], R, h)
	}
	return nil
}

// Prediction supplies, for each particle, the linear and angular
// acceleration implied by forces already accumulated this step (i.e.
// excluding any joint reaction), as spec.md §4.6's right-hand side needs:
// "obtained by predicting velocities one step ahead without joint forces".
type Prediction interface {
	LinearAccel(particle int) model.Vec3
	AngularAccel(particle int) model.Vec3
}

func jointPoint(w *model.World, i int) model.Vec3 {
	p0 := w.Pos[w.Joints.Part0[i]].Add(w.Rot[w.Joints.Part0[i]].MulVec(w.Joints.RefPoint0[i]))
	if w.Joints.Part1[i] < 0 {
		return p0
	}
	p1 := w.Pos[w.Joints.Part1[i]].Add(w.Rot[w.Joints.Part1[i]].MulVec(w.Joints.RefPoint1[i]))
	return p0.Add(p1).Scale(0.5)
}

// buildAdjacency maps each particle to the list of (joint index, slot)
// pairs referencing it, slot 0 or 1 according to which end of the joint
// the particle occupies. World-anchored slots (part1==-1) are omitted.
func buildAdjacency(w *model.World) map[int][][2]int {
	adj := map[int][][2]int{}
	for i := 0; i < w.Joints.Len(); i++ {
		adj[w.Joints.Part0[i]] = append(adj[w.Joints.Part0[i]], [2]int{i, 0})
		if w.Joints.Part1[i] >= 0 {
			adj[w.Joints.Part1[i]] = append(adj[w.Joints.Part1[i]], [2]int{i, 1})
		}
	}
	return adj
}

// blockHJHt returns H·J⁻¹·Hᵀ for lever arm r = x_k - p_i (H = Skew(r)).
func blockHJHt(r model.Vec3, invJ model.Mat3) model.Mat3 {
	H := model.Skew(r)
	return H.Mul(invJ).Mul(H.T())
}

func assembleDiagonal(tri *la.Triplet, w *model.World, points []model.Vec3) {
	for i := 0; i < w.Joints.Len(); i++ {
		var W model.Mat3
		for slot := 0; slot < 2; slot++ {
			k := w.Joints.Part0[i]
			if slot == 1 {
				k = w.Joints.Part1[i]
			}
			if k < 0 {
				continue
			}
			r := w.Pos[k].Sub(points[i])
			term := blockHJHt(r, w.InvJ[k])
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					d := 0.0
					if a == b {
						d = w.InvMass[k]
					}
					W[a][b] += d - term[a][b]
				}
			}
		}
		putBlock(tri, 3*i, 3*i, W)
	}
}

func assembleOffDiagonal(tri *la.Triplet, w *model.World, points []model.Vec3, adj map[int][][2]int) {
	for k, pairs := range adj {
		for a := 0; a < len(pairs); a++ {
			for b := 0; b < len(pairs); b++ {
				if a == b {
					continue
				}
				i, slotI := pairs[a][0], pairs[a][1]
				j, slotJ := pairs[b][0], pairs[b][1]
				ri := w.Pos[k].Sub(points[i])
				rj := w.Pos[k].Sub(points[j])
				Hi := model.Skew(ri)
				Hj := model.Skew(rj)
				term := Hi.Mul(w.InvJ[k]).Mul(Hj.T())
				sign := 1.0
				if slotI != slotJ {
					sign = -1.0
				}
				var W model.Mat3
				for x := 0; x < 3; x++ {
					for y := 0; y < 3; y++ {
						W[x][y] = -sign * term[x][y]
					}
				}
				putBlock(tri, 3*i, 3*j, W)
			}
		}
	}
}

func putBlock(tri *la.Triplet, row, col int, W model.Mat3) {
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			tri.Put(row+a, col+b, W[a][b])
		}
	}
}

func assembleRhs(b []float64, w *model.World, points []model.Vec3, pred Prediction, h float64) {
	for i := 0; i < w.Joints.Len(); i++ {
		v0 := predictedPointVel(w, w.Joints.Part0[i], points[i], pred, h)
		v1 := model.Vec3{}
		if w.Joints.Part1[i] >= 0 {
			v1 = predictedPointVel(w, w.Joints.Part1[i], points[i], pred, h)
		}
		rel := v0.Sub(v1)
		b[3*i+0] = -rel[0]
		b[3*i+1] = -rel[1]
		b[3*i+2] = -rel[2]
	}
}

func predictedPointVel(w *model.World, k int, point model.Vec3, pred Prediction, h float64) model.Vec3 {
	vPred := w.Vel[k].Add(pred.LinearAccel(k).Scale(h))
	omegaPred := w.AngularVelocityWorld(k).Add(pred.AngularAccel(k).Scale(h))
	r := point.Sub(w.Pos[k])
	return vPred.Add(omegaPred.Cross(r))
}

func accumulate(w *model.World, i int, point model.Vec3, R model.Vec3, h float64) {
	impulseRate := R.Scale(1 / h)
	part0, part1 := w.Joints.Part0[i], w.Joints.Part1[i]
	r0 := point.Sub(w.Pos[part0])
	w.AddForce(part0, impulseRate, r0.Cross(impulseRate))
	if part1 >= 0 {
		r1 := point.Sub(w.Pos[part1])
		neg := impulseRate.Scale(-1)
		w.AddForce(part1, neg, r1.Cross(neg))
	}
}
