// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package force evaluates the granular contact force law of spec.md §4.3:
// normal spring-dashpot, Coulomb friction with a stick/slip return mapping,
// and rolling/drilling resistance moments. Grounded on
// other_examples/3f5155be_akmonengine-feather__constraint-contact.go.go's
// SolveVelocity (impulse-based Coulomb cone structure), adapted to the
// explicit penalty/dashpot law spec.md mandates instead of an impulse
// solve, and cross-checked against original_source/constants.h's surface
// material field order.
package force

import "github.com/cpmech/gosl/chk"

// ColorPair holds the per-color-pair surface material constants, in the
// field order of original_source/constants.h's surface-material enum
// (SPRING, DAMPER, FRISTAT, FRIDYN, FRIROL, FRIDRIL, KSKN).
type ColorPair struct {
	Spring  float64 // normal penalty stiffness k
	Damper  float64 // normal dashpot coefficient c
	FriStat float64 // static friction coefficient μs
	FriDyn  float64 // dynamic friction coefficient μd
	FriRol  float64 // rolling resistance coefficient μr
	FriDril float64 // drilling resistance coefficient μd'
	Kskn    float64 // tangential/normal stiffness-damping ratio
}

// Validate checks the basic non-negativity invariants.
func (o ColorPair) Validate() error {
	if o.Spring < 0 || o.Damper < 0 || o.FriStat < 0 || o.FriDyn < 0 || o.FriRol < 0 || o.FriDril < 0 || o.Kskn < 0 {
		return chk.Err("color-pair surface constants must all be >= 0")
	}
	if o.FriDyn > o.FriStat {
		return chk.Err("dynamic friction (%g) must not exceed static friction (%g)", o.FriDyn, o.FriStat)
	}
	return nil
}

// Table maps a pair of colors to their ColorPair, falling back to the
// default (0,0) pair when no specific entry exists (spec.md §4.3: "retrieve
// the color-pair material or fall back to the default (colors (0,0))").
type Table struct {
	entries map[[2]int]ColorPair
	Default ColorPair
}

// NewTable returns an empty Table; Default must be set by the caller
// (normally during engine configuration) before use.
func NewTable() *Table {
	return &Table{entries: map[[2]int]ColorPair{}}
}

// Set installs the surface constants for the unordered color pair (c1,c2).
func (o *Table) Set(c1, c2 int, cp ColorPair) error {
	if err := cp.Validate(); err != nil {
		return err
	}
	o.entries[orderedKey(c1, c2)] = cp
	return nil
}

// Get returns the ColorPair for (c1,c2), falling back to Default.
func (o *Table) Get(c1, c2 int) ColorPair {
	if cp, ok := o.entries[orderedKey(c1, c2)]; ok {
		return cp
	}
	return o.Default
}

func orderedKey(c1, c2 int) [2]int {
	if c1 <= c2 {
		return [2]int{c1, c2}
	}
	return [2]int{c2, c1}
}
