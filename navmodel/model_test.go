// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package navmodel

import (
	"testing"

	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/numx"
)

func testConfig() Config {
	return Config{
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
}

func TestModelHaltModeHalts(t *testing.T) {
	rng := numx.NewRandom()
	m := NewModel(testConfig(), rng)
	m.Settle()

	m.Input = Input{MotorMode: HaltMode}
	m.SimulateTimestep()

	if !m.Output.Halted {
		t.Errorf("HaltMode should always halt")
	}
	if m.Output.Speed != 0 {
		t.Errorf("got speed %v while halted, want 0", m.Output.Speed)
	}
}

func TestModelForcedModeMovesAtFixedSpeed(t *testing.T) {
	rng := numx.NewRandom()
	m := NewModel(testConfig(), rng)
	m.Settle()

	m.Input = Input{MotorMode: ForcedMode, MotorTuning: 0.1, MotorOffset: 0.5}
	m.SimulateTimestep()

	if m.Output.Halted {
		t.Fatalf("ForcedMode with a confident forced bump should not halt")
	}
	if m.Output.Speed != grid.FixedSpeed {
		t.Errorf("got speed %v while moving, want %v", m.Output.Speed, grid.FixedSpeed)
	}
}

func TestModelGridStateRoundTrips(t *testing.T) {
	rng := numx.NewRandom()
	m := NewModel(testConfig(), rng)
	m.Settle()

	if m.ModuleCount() != 1 {
		t.Fatalf("got %d modules, want 1", m.ModuleCount())
	}
	snapshot := m.CaptureModuleActivity(0).Clone()
	snapshot.Values[0] = 12345

	m.RestoreModuleActivity(0, snapshot)
	if m.mecFixedConvolved[0].Current.Values[0] != 12345 {
		t.Fatalf("RestoreModuleActivity did not overwrite the fixed convolved copy")
	}
}
