// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model holds the structure-of-arrays data model shared by every
// DEM component: materials, particles, ellipsoids/spheres, triangles and
// obstacles. It plays the role gofem's inp+msolid packages play for FEM:
// a passive, owned-by-the-engine data store that behavioural packages
// (contact, force, spring, joint, restraint, prescribe, integrate) read
// and mutate.
package model

import "github.com/cpmech/gosl/chk"

// Material holds bulk material constants for a color (surface) used by
// ellipsoids and triangles. Immutable after creation.
type Material struct {
	Density float64 // bulk density > 0
	Young   float64 // Young's modulus > 0
	Poisson float64 // Poisson's ratio in (0, 0.5)
}

// Validate checks the invariants in the Material table of spec.md §3.
func (o Material) Validate() error {
	if o.Density <= 0 {
		return chk.Err("material density must be > 0 (got %g)", o.Density)
	}
	if o.Young <= 0 {
		return chk.Err("material Young modulus must be > 0 (got %g)", o.Young)
	}
	if o.Poisson <= 0 || o.Poisson >= 0.5 {
		return chk.Err("material Poisson ratio must be in (0, 0.5) (got %g)", o.Poisson)
	}
	return nil
}

// MaterialDb is an append-only registry of materials indexed by creation
// order, mirroring gofem's inp/mat.go MatDb lookup-by-name table but keyed
// by integer handle instead, since the model-definition surface (spec.md §6)
// hands out integer handles rather than string names.
type MaterialDb struct {
	List []Material
}

// Add validates and appends a material, returning its handle.
func (o *MaterialDb) Add(m Material) (handle int, err error) {
	if err = m.Validate(); err != nil {
		return -1, err
	}
	o.List = append(o.List, m)
	return len(o.List) - 1, nil
}

// Get fetches a material by handle.
func (o *MaterialDb) Get(handle int) (Material, error) {
	if handle < 0 || handle >= len(o.List) {
		return Material{}, chk.Err("material handle %d out of range [0,%d)", handle, len(o.List))
	}
	return o.List[handle], nil
}

// InertiaInput is the already-computed mass/inertia pair a caller supplies
// for a meshed particle (spec.md §1 treats mesh-to-particle inertia
// integration over simplices as an external collaborator: "this module
// does not compute inertia from a mesh, only consumes already-computed
// m, J").
type InertiaInput struct {
	Mass    float64
	Inertia Mat3 // about the mass center, in the particle's reference frame
}
