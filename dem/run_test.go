// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"testing"

	"github.com/cpmech/godem/model"
	"github.com/cpmech/gosl/chk"
)

type countingSink struct{ frames int }

func (s *countingSink) WriteFrame(t float64, w *model.World) error {
	s.frames++
	return nil
}

type countingHistory struct{ samples int }

func (s *countingHistory) Sample(t float64, e *Engine) {
	s.samples++
}

func TestRunWithNilSinkAndHistoryCompletesWithoutPanicking(tst *testing.T) {
	chk.PrintTitle("run: nil sink/history fall back to NopSink/NopHistory")
	e := buildFreeFallEngine(tst)
	defer e.Close()
	wall, err := e.Run(0.01, 0.001, Interval{}, nil, nil, 0)
	if err != nil {
		tst.Fatalf("Run: %v", err)
	}
	if wall < 0 {
		tst.Errorf("expected a non-negative wall-clock duration, got %v", wall)
	}
}

func TestRunSamplesOutputAtConfiguredCadence(tst *testing.T) {
	chk.PrintTitle("run: output sink is invoked at the configured OutputDt cadence")
	e := buildFreeFallEngine(tst)
	defer e.Close()
	sink := &countingSink{}
	duration, step, outputDt := 0.01, 0.001, 0.004
	if _, err := e.Run(duration, step, Interval{OutputDt: outputDt}, sink, nil, 0); err != nil {
		tst.Fatalf("Run: %v", err)
	}
	// with a fixed step the loop advances t by 0.001 each iteration; a frame
	// is written whenever t has reached the next multiple of outputDt.
	if sink.frames == 0 {
		tst.Errorf("expected at least one output frame to be written")
	}
}

func TestRunSamplesHistoryAtConfiguredCadence(tst *testing.T) {
	chk.PrintTitle("run: history recorder is invoked at the configured HistoryDt cadence")
	e := buildFreeFallEngine(tst)
	defer e.Close()
	hist := &countingHistory{}
	if _, err := e.Run(0.01, 0.001, Interval{HistoryDt: 0.004}, nil, hist, 0); err != nil {
		tst.Fatalf("Run: %v", err)
	}
	if hist.samples == 0 {
		tst.Errorf("expected at least one history sample to be recorded")
	}
}

func TestRunWithZeroIntervalsNeverSamples(tst *testing.T) {
	chk.PrintTitle("run: zero OutputDt/HistoryDt disables both cadences")
	e := buildFreeFallEngine(tst)
	defer e.Close()
	sink := &countingSink{}
	hist := &countingHistory{}
	if _, err := e.Run(0.01, 0.001, Interval{}, sink, hist, 0); err != nil {
		tst.Fatalf("Run: %v", err)
	}
	chk.IntAssert(sink.frames, 0)
	chk.IntAssert(hist.samples, 0)
}

func TestRunWithVerboseEnabledStillCompletesSuccessfully(tst *testing.T) {
	chk.PrintTitle("run: Verbose only gates io.Pf progress/completion lines, not behavior")
	e := buildFreeFallEngine(tst)
	defer e.Close()
	e.Verbose = true
	if _, err := e.Run(0.01, 0.001, Interval{}, nil, nil, 0); err != nil {
		tst.Fatalf("Run: %v", err)
	}
}

func TestRunAdvancesSimulationTimeToExactlyDuration(tst *testing.T) {
	chk.PrintTitle("run: the loop clamps the final step so t lands exactly on duration")
	e := buildFreeFallEngine(tst)
	defer e.Close()
	duration := 0.0105 // not an exact multiple of step=0.001
	if _, err := e.Run(duration, 0.001, Interval{}, nil, nil, 0); err != nil {
		tst.Fatalf("Run: %v", err)
	}
	chk.Scalar(tst, "t == duration", 1e-12, e.t, duration)
}
