// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cpmech/gosl/chk"

// Restraints is the SoA store of per-particle velocity/force restraints
// (spec.md §4.7 "Given orthonormalized direction triples D_lin and D_ang
// per restrained particle"). Each particle may be restrained at most once;
// NLin/NAng (0..3) say how many of the three direction slots are active.
type Restraints struct {
	Particle     []int
	DirLin       [][3]Vec3
	NLin         []int
	DirAng       [][3]Vec3
	NAng         []int
}

// Add appends a restraint on particle i with the given (orthonormal)
// linear and angular direction sets, each of length 0..3.
func (o *Restraints) Add(particle int, dirLin, dirAng []Vec3) (handle int, err error) {
	if len(dirLin) > 3 || len(dirAng) > 3 {
		return -1, chk.Err("restraint direction set must have at most 3 directions (got lin=%d, ang=%d)", len(dirLin), len(dirAng))
	}
	if !orthonormal(dirLin) {
		return -1, chk.Err("restraint linear directions must be orthonormal")
	}
	if !orthonormal(dirAng) {
		return -1, chk.Err("restraint angular directions must be orthonormal")
	}
	var dl, da [3]Vec3
	copy(dl[:], dirLin)
	copy(da[:], dirAng)
	o.Particle = append(o.Particle, particle)
	o.DirLin = append(o.DirLin, dl)
	o.NLin = append(o.NLin, len(dirLin))
	o.DirAng = append(o.DirAng, da)
	o.NAng = append(o.NAng, len(dirAng))
	return len(o.Particle) - 1, nil
}

// Len returns the number of restraints.
func (o *Restraints) Len() int { return len(o.Particle) }

// Reset truncates all slices to zero length.
func (o *Restraints) Reset() {
	o.Particle = o.Particle[:0]
	o.DirLin = o.DirLin[:0]
	o.NLin = o.NLin[:0]
	o.DirAng = o.DirAng[:0]
	o.NAng = o.NAng[:0]
}

func orthonormal(dirs []Vec3) bool {
	const tol = 1e-6
	for i, d := range dirs {
		if d.Norm() < 1-tol || d.Norm() > 1+tol {
			return false
		}
		for j := i + 1; j < len(dirs); j++ {
			if d.Dot(dirs[j]) > tol || d.Dot(dirs[j]) < -tol {
				return false
			}
		}
	}
	return true
}
