// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "math"

// DirMode is a linear spring's direction-tracking mode (spec.md §4.4).
type DirMode byte

const (
	// Follower tracks the line between the two current attachment points.
	Follower DirMode = iota
	// Constant holds the reference direction rigidly rotated by part0.
	Constant
	// Planar projects the constant direction onto the plane of current
	// geometry and renormalizes.
	Planar
	// Project takes the direction from a stored plane normal (part2's
	// geometry) and projects p1 onto that plane.
	Project
)

// Spring status codes (spec.md §4.4, §4.11). A new spring starts in
// SpringNominal: the full nominal force law applies. SpringReserved marks a
// spring claimed as a "modified spring" by some UNSPRING rule without (yet)
// having been triggered. SpringInactive zeroes its force. A value >= 0 is a
// load-curve handle applied as a time-dependent multiplier on the nominal
// force (spec.md §4.11's fade-out action). "Reactivated" (§4.11b) means
// returned to SpringNominal.
const (
	SpringNominal   = -3
	SpringReserved  = -2
	SpringInactive  = -1
	SpringNoOffset  = -1 // sentinel for "no stroke-offset load curve"
	SpringNoUnload  = -1 // sentinel for "no unloading curve"
	NoWorldParticle = -1 // part1 == -1 means "anchored to world"
)

// SpringKind distinguishes the elastic-plastic bookkeeping variants of
// spec.md §4.4 step 3.
type SpringKind byte

const (
	NonlinearElastic SpringKind = iota
	GeneralNonlinear
)

// LinearSprings is the SoA store of linear spring-dashpot elements
// (spec.md §3 Linear spring). Handles are stable across the element's
// lifetime; springs are never removed individually, only deactivated via
// UnspringState, and all slices are truncated together by Reset.
type LinearSprings struct {
	Part0, Part1 []int  // owning particles; Part1 may be NoWorldParticle
	RefPoint0    []Vec3 // reference (body-local) attachment point on part0
	RefPoint1    []Vec3 // reference attachment point on part1 (or world point if Part1==-1)
	Dir          []DirMode
	RefDir       []Vec3 // reference direction for Constant/Planar modes
	PlaneNormal  []Vec3 // fixed plane normal for Project mode

	Stroke0      []float64 // stroke zero-offset
	OffsetCurve  []int     // load-curve handle for time-dependent offset, or SpringNoOffset

	Kind         []SpringKind
	ForceTable   []int // load-curve handle: force-stroke backbone
	UnloadTable  []int // load-curve handle for unloading branch, or SpringNoUnload
	YieldComp    []float64 // <= 0
	YieldTens    []float64 // >= 0

	DashpotTable []int     // load-curve handle for F_d(ṡ), or -1 to use critical-ratio form
	Zeta         []float64 // critical-damping ratio, used when DashpotTable == -1

	FricCoeff []float64 // tangential friction coefficient (<=0 disables)
	Kskn      []float64

	// plastic-branch bookkeeping (spec.md §4.4 step 3)
	Smin []float64 // most negative stroke reached (peak compression excursion)
	Smax []float64 // most positive stroke reached (peak tension excursion)

	// recorded outputs (spec.md §4.4 "Record per spring")
	Stroke  [][3]float64 // [current, peak-compression, peak-tension]
	SprFrc  [][3]float64 // [|F_total·d|, F_s, |F_t|]

	TangentU []Vec3 // accumulated tangential slip displacement

	UnspringState []int // see status codes above
}

// Add appends a new linear spring in its nominal (non-yielded, unused
// plastic-branch) state, returning its handle.
func (o *LinearSprings) Add(part0, part1 int, refP0, refP1 Vec3, dir DirMode, refDir, planeNormal Vec3,
	stroke0 float64, offsetCurve int, kind SpringKind, forceTable, unloadTable int, yieldComp, yieldTens float64,
	dashpotTable int, zeta float64, fricCoeff, kskn float64) (handle int) {
	o.Part0 = append(o.Part0, part0)
	o.Part1 = append(o.Part1, part1)
	o.RefPoint0 = append(o.RefPoint0, refP0)
	o.RefPoint1 = append(o.RefPoint1, refP1)
	o.Dir = append(o.Dir, dir)
	o.RefDir = append(o.RefDir, refDir)
	o.PlaneNormal = append(o.PlaneNormal, planeNormal)
	o.Stroke0 = append(o.Stroke0, stroke0)
	o.OffsetCurve = append(o.OffsetCurve, offsetCurve)
	o.Kind = append(o.Kind, kind)
	o.ForceTable = append(o.ForceTable, forceTable)
	o.UnloadTable = append(o.UnloadTable, unloadTable)
	o.YieldComp = append(o.YieldComp, yieldComp)
	o.YieldTens = append(o.YieldTens, yieldTens)
	o.DashpotTable = append(o.DashpotTable, dashpotTable)
	o.Zeta = append(o.Zeta, zeta)
	o.FricCoeff = append(o.FricCoeff, fricCoeff)
	o.Kskn = append(o.Kskn, kskn)
	o.Smin = append(o.Smin, 0)
	o.Smax = append(o.Smax, 0)
	// Stroke[1]/[2] (peak compression/tension) start at +Inf/-Inf so the
	// first evaluation's math.Min/Max seeds them with the actual stroke
	// instead of falsely reporting a peak at zero.
	o.Stroke = append(o.Stroke, [3]float64{0, math.Inf(1), math.Inf(-1)})
	o.SprFrc = append(o.SprFrc, [3]float64{})
	o.TangentU = append(o.TangentU, Vec3{})
	o.UnspringState = append(o.UnspringState, SpringNominal)
	return len(o.Part0) - 1
}

// Len returns the number of linear springs.
func (o *LinearSprings) Len() int { return len(o.Part0) }

// Reset truncates all slices to zero length.
func (o *LinearSprings) Reset() {
	o.Part0 = o.Part0[:0]
	o.Part1 = o.Part1[:0]
	o.RefPoint0 = o.RefPoint0[:0]
	o.RefPoint1 = o.RefPoint1[:0]
	o.Dir = o.Dir[:0]
	o.RefDir = o.RefDir[:0]
	o.PlaneNormal = o.PlaneNormal[:0]
	o.Stroke0 = o.Stroke0[:0]
	o.OffsetCurve = o.OffsetCurve[:0]
	o.Kind = o.Kind[:0]
	o.ForceTable = o.ForceTable[:0]
	o.UnloadTable = o.UnloadTable[:0]
	o.YieldComp = o.YieldComp[:0]
	o.YieldTens = o.YieldTens[:0]
	o.DashpotTable = o.DashpotTable[:0]
	o.Zeta = o.Zeta[:0]
	o.FricCoeff = o.FricCoeff[:0]
	o.Kskn = o.Kskn[:0]
	o.Smin = o.Smin[:0]
	o.Smax = o.Smax[:0]
	o.Stroke = o.Stroke[:0]
	o.SprFrc = o.SprFrc[:0]
	o.TangentU = o.TangentU[:0]
	o.UnspringState = o.UnspringState[:0]
}

// TorsionalSprings is the SoA store of roll/pitch/yaw spring elements
// (spec.md §3 Torsional spring).
type TorsionalSprings struct {
	Part0, Part1 []int
	RefZ, RefX   []Vec3 // reference axis pair, transported by Part0's rotation

	RollTable, PitchTable, YawTable       []int // load-curve handles: k(angle)
	RollDamper, PitchDamper, YawDamper    []int // load-curve handles: d(rate), or -1

	Cone      []bool
	RefPivot  []Vec3
	HasPivot  []bool

	// last-evaluated angles, used for the next evaluation's rate estimate
	// and retained for output
	Angles [][3]float64 // roll, pitch, yaw
}

// Add appends a torsional spring, returning its handle.
func (o *TorsionalSprings) Add(part0, part1 int, refZ, refX Vec3, rollTable, pitchTable, yawTable int,
	rollDamper, pitchDamper, yawDamper int, cone bool, refPivot Vec3, hasPivot bool) (handle int) {
	o.Part0 = append(o.Part0, part0)
	o.Part1 = append(o.Part1, part1)
	o.RefZ = append(o.RefZ, refZ)
	o.RefX = append(o.RefX, refX)
	o.RollTable = append(o.RollTable, rollTable)
	o.PitchTable = append(o.PitchTable, pitchTable)
	o.YawTable = append(o.YawTable, yawTable)
	o.RollDamper = append(o.RollDamper, rollDamper)
	o.PitchDamper = append(o.PitchDamper, pitchDamper)
	o.YawDamper = append(o.YawDamper, yawDamper)
	o.Cone = append(o.Cone, cone)
	o.RefPivot = append(o.RefPivot, refPivot)
	o.HasPivot = append(o.HasPivot, hasPivot)
	o.Angles = append(o.Angles, [3]float64{})
	return len(o.Part0) - 1
}

// Len returns the number of torsional springs.
func (o *TorsionalSprings) Len() int { return len(o.Part0) }

// Reset truncates all slices to zero length.
func (o *TorsionalSprings) Reset() {
	o.Part0 = o.Part0[:0]
	o.Part1 = o.Part1[:0]
	o.RefZ = o.RefZ[:0]
	o.RefX = o.RefX[:0]
	o.RollTable = o.RollTable[:0]
	o.PitchTable = o.PitchTable[:0]
	o.YawTable = o.YawTable[:0]
	o.RollDamper = o.RollDamper[:0]
	o.PitchDamper = o.PitchDamper[:0]
	o.YawDamper = o.YawDamper[:0]
	o.Cone = o.Cone[:0]
	o.RefPivot = o.RefPivot[:0]
	o.HasPivot = o.HasPivot[:0]
	o.Angles = o.Angles[:0]
}
