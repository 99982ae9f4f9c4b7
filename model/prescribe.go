// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cpmech/gosl/fun"

// PrescribeKind selects whether a Prescribed binding overrides velocity
// directly or writes an equivalent force/torque (spec.md §4.8).
type PrescribeKind int

const (
	PrescribeVelocity PrescribeKind = iota
	PrescribeAcceleration
)

// Prescribed is the SoA store of per-particle, per-axis prescribed-motion
// bindings (spec.md §3 "Prescribed (PR)"). Each of the three linear and
// three angular components is independently either free (nil entry) or bound
// to a fun.Func callback/time-series, so a particle can have e.g. only its
// x-velocity prescribed while y,z remain dynamic.
type Prescribed struct {
	Particle  []int
	KindLin   []PrescribeKind
	Lin       [][3]fun.Func // nil entry ⇒ that axis is free
	KindAng   []PrescribeKind
	Ang       [][3]fun.Func
}

// Add appends a prescribed-motion binding for particle i. Any of lin/ang's
// three entries may be nil to leave that axis unprescribed.
func (o *Prescribed) Add(particle int, kindLin PrescribeKind, lin [3]fun.Func, kindAng PrescribeKind, ang [3]fun.Func) (handle int) {
	o.Particle = append(o.Particle, particle)
	o.KindLin = append(o.KindLin, kindLin)
	o.Lin = append(o.Lin, lin)
	o.KindAng = append(o.KindAng, kindAng)
	o.Ang = append(o.Ang, ang)
	return len(o.Particle) - 1
}

// Len returns the number of prescribed-motion bindings.
func (o *Prescribed) Len() int { return len(o.Particle) }

// Reset truncates all slices to zero length.
func (o *Prescribed) Reset() {
	o.Particle = o.Particle[:0]
	o.KindLin = o.KindLin[:0]
	o.Lin = o.Lin[:0]
	o.KindAng = o.KindAng[:0]
	o.Ang = o.Ang[:0]
}
