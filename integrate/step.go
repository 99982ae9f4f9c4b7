// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/cpmech/godem/model"
)

// CriticalStep computes the adaptive-step controller's h_crit (spec.md
// §4.10): the minimum, over all particles with a nonzero Kmax/Krot
// accumulator, of the damped-oscillator critical step
// 2/ω_max · (√(1+ζ²) − ζ), combining both the linear estimate
// (ω_max² = kmax/m) and an analogous rotational one (using krot and the
// particle's minimum principal inertia, the conservative choice). Returns
// +Inf if no particle registered a nonzero stiffness this step (e.g. no
// contacts or springs yet exist).
func CriticalStep(w *model.World) float64 {
	hCrit := math.Inf(1)
	for i := 0; i < w.NumParticles(); i++ {
		if w.Kmax[i] > 0 {
			if h := criticalStepOne(w.Kmax[i], w.Emax[i], w.Mass[i]); h < hCrit {
				hCrit = h
			}
		}
		if w.Krot[i] > 0 {
			jmin := minPrincipal(w.Inertia[i])
			if h := criticalStepOne(w.Krot[i], 0, jmin); h < hCrit {
				hCrit = h
			}
		}
	}
	return hCrit
}

// NextStep returns h_{n+1} = adaptive · h_crit (spec.md §4.10), clamped to
// hMax when no stiffness was registered (h_crit = +Inf).
func NextStep(w *model.World, adaptive, hMax float64) float64 {
	h := adaptive * CriticalStep(w)
	if math.IsInf(h, 1) || h > hMax {
		return hMax
	}
	return h
}

func criticalStepOne(kmax, emax, mass float64) float64 {
	omegaMax := math.Sqrt(kmax / mass)
	zeta := emax / (2 * math.Sqrt(kmax*mass))
	return 2 / omegaMax * (math.Sqrt(1+zeta*zeta) - zeta)
}

func minPrincipal(J model.Mat3) float64 {
	// J is SPD but not necessarily diagonal; the diagonal entries bound the
	// true principal moments closely enough for a conservative step
	// estimate without an eigendecomposition.
	m := J[0][0]
	if J[1][1] < m {
		m = J[1][1]
	}
	if J[2][2] < m {
		m = J[2][2]
	}
	return m
}

// SpringCritical computes the critical step implied by a single spring
// stiffness/mass/damping triple. It evaluates one spring only: nothing in
// this module applies it across the linear and torsional springs or
// collects the smallest N per-spring steps.
func SpringCritical(k, c, mass float64) float64 {
	if k <= 0 {
		return math.Inf(1)
	}
	return criticalStepOne(k, c, mass)
}
