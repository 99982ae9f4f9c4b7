// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"github.com/cpmech/godem/contact"
	"github.com/cpmech/godem/spring"
)

// Reset truncates every World array and rewinds the engine's own step
// state (simulation time, half-step-start flag, contact detector with its
// persisted tangential displacements, joint-solver topology and
// factorization, UNSPRING monitor), so a subsequent Run starts exactly as
// a fresh Engine would (spec.md §8 "reset bit-identical replay invariant"
// and spec.md §5 "none shrink until reset()"). It does not release the
// joint solver's native factorization handle — Close does that.
func (o *Engine) Reset() {
	o.World.Reset()
	o.t = 0
	o.started = false
	o.Detector = contact.NewDetector(o.Detector.Tree.LSIZE)
	o.Joints.InvalidateTopology()
	o.Unspring = spring.NewMonitor()
}
