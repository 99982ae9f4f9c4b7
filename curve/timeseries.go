// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import "github.com/cpmech/gosl/chk"

// TimeSeries is a restartable 1-D lookup over a piecewise-linear (t,value)
// table, or a constant (spec.md §3 Time series). Grounded on
// original_source/timeseries.cpp: lookups are expected to be called with
// mostly-increasing t (the stepping loop advances time monotonically), so a
// "last index" hint makes the common case O(1) instead of O(log n), falling
// back to binary search when the hint misses (a restart or a query out of
// temporal order).
type TimeSeries struct {
	curve  *LoadCurve // nil for a constant series
	cte    float64
	isCte  bool
	lastIx int
}

// NewConstantSeries returns a TimeSeries that always evaluates to v.
func NewConstantSeries(v float64) *TimeSeries {
	return &TimeSeries{cte: v, isCte: true}
}

// NewTimeSeries validates and builds a piecewise-linear TimeSeries.
func NewTimeSeries(t, v []float64) (*TimeSeries, error) {
	c, err := NewLoadCurve(t, v)
	if err != nil {
		return nil, chk.Err("invalid time series: %v", err)
	}
	return &TimeSeries{curve: c}, nil
}

// F implements gosl/fun.Func, used directly as a gravity/damping/prescribed-
// motion callback (spec.md §9: "time-indexed R→R³ function").
func (o *TimeSeries) F(t float64, _ []float64) float64 {
	return o.At(t)
}

// G implements gosl/fun.Func's derivative contract.
func (o *TimeSeries) G(t float64, _ []float64) float64 {
	if o.isCte || o.curve == nil {
		return 0
	}
	return o.curve.Slope(t)
}

// At evaluates the series at time t, using and updating the monotone-access
// hint.
func (o *TimeSeries) At(t float64) float64 {
	if o.isCte || o.curve == nil {
		return o.cte
	}
	x, y := o.curve.X, o.curve.Y
	n := len(x)
	if t <= x[0] || t >= x[n-1] {
		return o.curve.At(t) // held at the boundary value
	}
	if !(o.lastIx < n-1 && x[o.lastIx] <= t && t < x[o.lastIx+1]) {
		o.lastIx = o.curve.locate(t) // hint miss: fresh binary search
	}
	i := o.lastIx
	s := (t - x[i]) / (x[i+1] - x[i])
	return y[i] + s*(y[i+1]-y[i])
}
