// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agent

import (
	"testing"

	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/navmodel"
	"github.com/ccnlab/gridnav/numx"
)

func testModel(t *testing.T) *navmodel.Model {
	t.Helper()
	rng := numx.NewRandom()
	conf := navmodel.Config{
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
	}
	return navmodel.NewModel(conf, rng)
}

func TestNewPresetDeltas(t *testing.T) {
	model := testModel(t)
	rng := numx.NewRandom()

	vector, err := NewPreset(Vector, model, rng)
	if err != nil {
		t.Fatalf("NewPreset(Vector): %v", err)
	}
	if vector.ApproachMotorTuning != 0.1 {
		t.Errorf("vector ApproachMotorTuning = %v, want 0.1", vector.ApproachMotorTuning)
	}
	if vector.stateImpl[TopologicalStep] != nil {
		t.Errorf("vector agent should have no topological_step handler")
	}

	strict, err := NewPreset(Strict, model, rng)
	if err != nil {
		t.Fatalf("NewPreset(Strict): %v", err)
	}
	if strict.ReplayConfidenceThreshold != 0.9 || strict.TopologicalResetProbability != 0.25 {
		t.Errorf("strict deltas = %v, %v; want 0.9, 0.25",
			strict.ReplayConfidenceThreshold, strict.TopologicalResetProbability)
	}

	place, err := NewPreset(Place, model, rng)
	if err != nil {
		t.Fatalf("NewPreset(Place): %v", err)
	}
	if !place.PerformTopologicalNavigation {
		t.Errorf("place agent should set PerformTopologicalNavigation")
	}

	if _, err := NewPreset(Preset("bogus"), model, rng); err == nil {
		t.Errorf("NewPreset(bogus) should return an error")
	}
}

// TestForcedMoveTerminates drives a ForcedMove agent towards a nearby goal
// and checks it returns to NoState once within range, matching
// ForcedMoveState's termination condition.
func TestForcedMoveTerminates(t *testing.T) {
	model := testModel(t)
	rng := numx.NewRandom()
	a := New(model, rng, "test",
		initiateNavigationHandler{}, approachSubgoalHandler{},
		topologicalStepHandler{}, replayEpisodeHandler{}, explorationHandler{})

	model.Settle()

	a.SetActiveState(ForcedMove)
	a.Input.X, a.Input.Y = 0, 0
	a.Input.GotoX, a.Input.GotoY = 0.001, 0

	a.Execute()

	if a.ActiveState() != NoState {
		t.Errorf("active state = %v, want NoState after reaching a near goal", a.ActiveState())
	}
}

// TestReceiveRewardFormsPlaceCell checks that one receive_reward tick
// creates a place cell at the current location and records it as the
// reward for the given id.
func TestReceiveRewardFormsPlaceCell(t *testing.T) {
	model := testModel(t)
	rng := numx.NewRandom()
	a := New(model, rng, "test",
		initiateNavigationHandler{}, approachSubgoalHandler{},
		topologicalStepHandler{}, replayEpisodeHandler{}, explorationHandler{})

	model.Settle()

	a.SetActiveState(ReceiveReward)
	a.Input.X, a.Input.Y = 12, -4
	a.Input.RewardID = 1

	a.Execute()

	if a.ActiveState() != NoState {
		t.Errorf("active state = %v, want NoState after receive_reward", a.ActiveState())
	}
	cell, ok := model.PlaceGraph.RewardLocations[1]
	if !ok {
		t.Fatalf("reward id 1 was not recorded")
	}
	if cell.X != 12 || cell.Y != -4 {
		t.Errorf("reward cell at (%v, %v), want (12, -4)", cell.X, cell.Y)
	}
}

func TestStateLabels(t *testing.T) {
	cases := []struct {
		state State
		label string
	}{
		{NoState, "No state"},
		{ForcedMove, "Forced move"},
		{Exploration, "Exploration"},
	}
	for _, c := range cases {
		if got := c.state.Label(); got != c.label {
			t.Errorf("%v.Label() = %q, want %q", int(c.state), got, c.label)
		}
	}
}
