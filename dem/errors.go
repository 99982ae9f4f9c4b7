// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import "github.com/cpmech/gosl/chk"

// checkParticle validates a particle handle (or -1, meaning "anchored to
// world", where allowWorld permits it), returning a plain error rather
// than panicking: the builder is a library surface callers keep using
// across many Add* calls, not a one-shot input parser that is about to
// exit on failure (spec.md §7 ADD).
func (o *Engine) checkParticle(particle int, allowWorld bool) error {
	if particle == -1 && allowWorld {
		return nil
	}
	if particle < 0 || particle >= o.World.NumParticles() {
		return chk.Err("particle handle %d out of range [0,%d)", particle, o.World.NumParticles())
	}
	return nil
}
