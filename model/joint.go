// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Joints is the SoA store of bilateral point-coincidence constraints
// (spec.md §3 implied by §4.6's "Let R_i be the ... impulse at joint i").
// A joint pins a reference point on Part0 to coincide, in velocity, with
// either the corresponding point on Part1 or a fixed world point when
// Part1 == NoWorldParticle.
type Joints struct {
	Part0, Part1     []int
	RefPoint0        []Vec3 // body-local attachment point on Part0
	RefPoint1        []Vec3 // body-local attachment point on Part1 (or world point if Part1==-1)
	Reaction         []Vec3 // last-solved impulse R_i, retained for output/history
}

// Add appends a joint, returning its handle.
func (o *Joints) Add(part0, part1 int, refP0, refP1 Vec3) (handle int) {
	o.Part0 = append(o.Part0, part0)
	o.Part1 = append(o.Part1, part1)
	o.RefPoint0 = append(o.RefPoint0, refP0)
	o.RefPoint1 = append(o.RefPoint1, refP1)
	o.Reaction = append(o.Reaction, Vec3{})
	return len(o.Part0) - 1
}

// Len returns the number of joints.
func (o *Joints) Len() int { return len(o.Part0) }

// Reset truncates all slices to zero length.
func (o *Joints) Reset() {
	o.Part0 = o.Part0[:0]
	o.Part1 = o.Part1[:0]
	o.RefPoint0 = o.RefPoint0[:0]
	o.RefPoint1 = o.RefPoint1[:0]
	o.Reaction = o.Reaction[:0]
}
