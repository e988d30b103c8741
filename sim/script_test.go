// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"strings"
	"testing"

	"github.com/ccnlab/gridnav/agent"
	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/navmodel"
	"github.com/ccnlab/gridnav/numx"
)

func TestScannerTokenSkipsWhitespace(t *testing.T) {
	sc := newScanner(strings.NewReader("  goto   1.5 -2\tfoo\n"))
	want := []string{"goto", "1.5", "-2", "foo"}
	for _, w := range want {
		tok, ok := sc.token()
		if !ok {
			t.Fatalf("expected a token %q, got end of input", w)
		}
		if tok != w {
			t.Fatalf("got token %q, want %q", tok, w)
		}
	}
	if _, ok := sc.token(); ok {
		t.Fatalf("expected end of input after the last token")
	}
}

func TestScannerRealAndInt(t *testing.T) {
	sc := newScanner(strings.NewReader("3.25 -7 notanumber"))
	v, ok := sc.real()
	if !ok || v != 3.25 {
		t.Fatalf("real() = %v, %v; want 3.25, true", v, ok)
	}
	i, ok := sc.int()
	if !ok || i != -7 {
		t.Fatalf("int() = %v, %v; want -7, true", i, ok)
	}
	if _, ok := sc.real(); ok {
		t.Fatalf("real() on a non-numeric token should fail")
	}
}

// TestScannerRestOfLineAfterToken checks that restOfLine, called right
// after a token() read, does not eat a leading character of free text:
// token() already consumed the single separating space.
func TestScannerRestOfLineAfterToken(t *testing.T) {
	sc := newScanner(strings.NewReader("add-label 1 2 hello world\n"))
	for i := 0; i < 3; i++ {
		if _, ok := sc.token(); !ok {
			t.Fatalf("expected a token")
		}
	}
	if got := sc.restOfLine(); got != "hello world" {
		t.Fatalf("restOfLine() = %q, want %q", got, "hello world")
	}
}

func TestGetRewardIDIsStableAndSequential(t *testing.T) {
	s := &Runner{rewardIDs: make(map[string]int)}
	first := s.getRewardID("goal-a")
	second := s.getRewardID("goal-b")
	again := s.getRewardID("goal-a")
	if first != 1 || second != 2 {
		t.Fatalf("got ids %d, %d, want 1, 2", first, second)
	}
	if again != first {
		t.Fatalf("getRewardID(\"goal-a\") changed on a second call: got %d, want %d", again, first)
	}
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	rng := numx.NewRandom()
	model := navmodel.NewModel(navmodel.Config{
		ModuleCount:         1,
		GainMode:            grid.GainModeVelocity,
		GainRatio:           1.5,
		InitialGain:         grid.MaxGain,
		DirectionSamples:    8,
		XYSamples:           3,
		MecDiffOffset:       1,
		SensorCount:         8,
		SensorRange:         25,
		PlaceCellRadius:     7,
		InternalMotorTuning: 0.1,
	}, rng)
	a, err := agent.NewPreset(agent.Vector, model, rng)
	if err != nil {
		t.Fatalf("NewPreset: %v", err)
	}
	model.Settle()
	return New(a, Config{})
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	runner := testRunner(t)
	code := runner.Run(strings.NewReader("set-origin 0 0\nnot-a-real-command\n"))
	if code != 1 {
		t.Fatalf("Run() = %d, want 1 for an unknown command", code)
	}
}

func TestRunAcceptsPlacementAndTrialPhaseCommands(t *testing.T) {
	runner := testRunner(t)
	script := "place-agent 1 2 0\nset-trial-phase red \"phase one\"\n"
	code := runner.Run(strings.NewReader(script))
	if code != 0 {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if runner.x != 1 || runner.y != 2 {
		t.Fatalf("got pose (%v, %v), want (1, 2) after place-agent", runner.x, runner.y)
	}
}
