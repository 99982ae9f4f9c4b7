// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve implements the piecewise-linear LoadCurve and TimeSeries
// tables of spec.md §3, both exposed through gosl/fun's Func interface so
// they compose with the gravity/damping/prescribed-motion callback contract
// used throughout this module (spec.md §9 design note).
package curve

import "github.com/cpmech/gosl/chk"

// LoadCurve is a piecewise-linear (x,y) table with strictly increasing x,
// used both for a spring's stroke-offset and for its unloading branch
// (spec.md §3 Load curve, §4.4). It implements gosl/fun.Func with its
// F(t,_) method treating t as the lookup abscissa, so the same type serves
// as both a spring's stroke-dependent offset function and (wrapped by
// TimeSeries below) a time-dependent one.
type LoadCurve struct {
	X []float64
	Y []float64
}

// NewLoadCurve validates and builds a LoadCurve from parallel x/y slices.
func NewLoadCurve(x, y []float64) (*LoadCurve, error) {
	if len(x) < 2 || len(x) != len(y) {
		return nil, chk.Err("load curve requires >= 2 points with matching x/y lengths (got %d/%d)", len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, chk.Err("load curve x must be strictly increasing (x[%d]=%g <= x[%d]=%g)", i, x[i], i-1, x[i-1])
		}
	}
	return &LoadCurve{X: append([]float64{}, x...), Y: append([]float64{}, y...)}, nil
}

// F implements gosl/fun.Func. The second argument is unused (LoadCurve is
// a pure 1-D table) but kept to satisfy the interface.
func (o *LoadCurve) F(xq float64, _ []float64) float64 {
	return o.At(xq)
}

// G implements gosl/fun.Func's derivative contract; LoadCurve is
// piecewise-linear so the exact slope is used.
func (o *LoadCurve) G(xq float64, _ []float64) float64 {
	return o.Slope(xq)
}

// At evaluates the table at xq. Outside [X[0], X[last]] the value is
// constant-extrapolated (held at the boundary value) — this is the
// canonical reading spec.md §9 adopts for a curve evaluated past its last
// point, applied uniformly to every LoadCurve use in this module.
func (o *LoadCurve) At(xq float64) float64 {
	n := len(o.X)
	if xq <= o.X[0] {
		return o.Y[0]
	}
	if xq >= o.X[n-1] {
		return o.Y[n-1]
	}
	i := o.locate(xq)
	x0, x1 := o.X[i], o.X[i+1]
	y0, y1 := o.Y[i], o.Y[i+1]
	t := (xq - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// Slope returns the local piecewise-linear slope at xq (constant per
// segment; zero outside the table's domain since the value there is held
// constant).
func (o *LoadCurve) Slope(xq float64) float64 {
	n := len(o.X)
	if xq <= o.X[0] || xq >= o.X[n-1] {
		return 0
	}
	i := o.locate(xq)
	return (o.Y[i+1] - o.Y[i]) / (o.X[i+1] - o.X[i])
}

// locate returns the segment index i such that X[i] <= xq < X[i+1], via
// binary search (the table is typically small; O(log n) is ample).
func (o *LoadCurve) locate(xq float64) int {
	lo, hi := 0, len(o.X)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if o.X[mid] <= xq {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// IsMonotone reports whether Y is monotone (non-decreasing or
// non-increasing), required for the unloading-curve validation of
// spec.md §7 ("unload curve non-monotone — fail at creation").
func (o *LoadCurve) IsMonotone() bool {
	if len(o.Y) < 2 {
		return true
	}
	inc, dec := true, true
	for i := 1; i < len(o.Y); i++ {
		if o.Y[i] < o.Y[i-1] {
			inc = false
		}
		if o.Y[i] > o.Y[i-1] {
			dec = false
		}
	}
	return inc || dec
}
