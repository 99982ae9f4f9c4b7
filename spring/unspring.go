// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spring

import (
	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

// Entity selects which recorded spring quantity an UNSPRING rule
// aggregates (spec.md §3 UNSPRING rule).
type Entity byte

const (
	// SF aggregates the elastic spring force F_s (SprFrc[1]). This is the
	// default when a rule leaves entity unset (spec.md §9 open question:
	// "entity defaults to SF when unset").
	SF Entity = iota
	// Stroke aggregates Stroke[0] (current stroke).
	Stroke
	// STF aggregates the total applied force magnitude (SprFrc[0]).
	STF
)

// Operator combines the per-spring entity values into one aggregate.
type Operator byte

const (
	// Sum is the default operator when unset (spec.md §9 open question).
	Sum Operator = iota
	Min
	Max
)

// Rule is one UNSPRING collective trigger (spec.md §3 UNSPRING rule,
// §4.11).
type Rule struct {
	TestSprings     []int
	ModSprings      []int
	ActivateSprings []int
	Entity          Entity
	Operator        Operator
	Abs             bool
	Lo, Hi          float64 // either may be +-Inf to mean "unbounded on that side"
	NSteps          int     // check period, in global steps
	NFreq           int     // required consecutive exceedances to trigger
	UnloadAction    int     // <0: instant zero force; >=0: load-curve handle fade-out

	stepsSinceCheck int
	exceedRun       int
}

// Monitor owns every UNSPRING rule and the bookkeeping of which springs
// are reserved by which rule (spec.md §4.11's validation contract).
type Monitor struct {
	Rules      []*Rule
	reservedBy map[int]int // spring handle -> rule index
	globalStep int
}

// NewMonitor returns an empty Monitor.
func NewMonitor() *Monitor {
	return &Monitor{reservedBy: map[int]int{}}
}

// AddRule validates and registers a new UNSPRING rule, reserving its
// modified springs (spec.md §4.11: "Validation errors are raised at rule
// definition if (msprings contains a spring already reserved by another
// rule) or (activate contains a currently-active spring)").
func (o *Monitor) AddRule(w *model.World, r *Rule) (handle int, err error) {
	for _, j := range r.ModSprings {
		if j < 0 || j >= w.LinSprings.Len() {
			return -1, chk.Err("UNSPRING rule: modified spring %d out of range", j)
		}
		if owner, ok := o.reservedBy[j]; ok {
			return -1, chk.Err("UNSPRING rule: spring %d already reserved by rule %d", j, owner)
		}
	}
	for _, j := range r.ActivateSprings {
		if j < 0 || j >= w.LinSprings.Len() {
			return -1, chk.Err("UNSPRING rule: activate spring %d out of range", j)
		}
		if w.LinSprings.UnspringState[j] != model.SpringInactive {
			return -1, chk.Err("UNSPRING rule: activate spring %d is currently active", j)
		}
	}
	for _, j := range r.ModSprings {
		w.LinSprings.UnspringState[j] = model.SpringReserved
		o.reservedBy[j] = len(o.Rules)
	}
	o.Rules = append(o.Rules, r)
	return len(o.Rules) - 1, nil
}

// Update runs every rule's periodic check (spec.md §4.11), advancing the
// Monitor's global step counter by one.
func (o *Monitor) Update(w *model.World) {
	o.globalStep++
	for _, r := range o.Rules {
		r.stepsSinceCheck++
		if r.NSteps <= 0 || r.stepsSinceCheck < r.NSteps {
			continue
		}
		r.stepsSinceCheck = 0
		agg := aggregate(w, r)
		inRange := agg >= r.Lo && agg <= r.Hi
		if inRange {
			r.exceedRun = 0
			continue
		}
		r.exceedRun++
		if r.exceedRun >= r.NFreq {
			trigger(w, r)
			r.exceedRun = 0
		}
	}
}

func aggregate(w *model.World, r *Rule) float64 {
	var acc float64
	first := true
	for _, j := range r.TestSprings {
		v := entityValue(w, r.Entity, j)
		if r.Abs && v < 0 {
			v = -v
		}
		switch r.Operator {
		case Min:
			if first || v < acc {
				acc = v
			}
		case Max:
			if first || v > acc {
				acc = v
			}
		default: // Sum
			acc += v
		}
		first = false
	}
	return acc
}

func entityValue(w *model.World, e Entity, j int) float64 {
	switch e {
	case Stroke:
		return w.LinSprings.Stroke[j][0]
	case STF:
		return w.LinSprings.SprFrc[j][0]
	default: // SF
		return w.LinSprings.SprFrc[j][1]
	}
}

func trigger(w *model.World, r *Rule) {
	for _, j := range r.ModSprings {
		if r.UnloadAction < 0 {
			w.LinSprings.UnspringState[j] = model.SpringInactive
		} else {
			w.LinSprings.UnspringState[j] = r.UnloadAction
		}
	}
	for _, j := range r.ActivateSprings {
		if w.LinSprings.UnspringState[j] == model.SpringInactive {
			w.LinSprings.UnspringState[j] = model.SpringNominal
		}
	}
}
