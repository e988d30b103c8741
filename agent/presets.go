// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agent

import (
	"fmt"

	"github.com/ccnlab/gridnav/navmodel"
	"github.com/ccnlab/gridnav/numx"
)

// Preset names the eight agent variants --agent accepts on the command
// line, matching the named subclasses VectorAgent, DeflectAgent,
// PlaceAgent, CombinedAgent, CombinedNarrowAgent, CombinedStrictAgent,
// NoResumeCombinedStrictAgent and NoTopoCombinedStrictAgent.
type Preset string

const (
	Vector   Preset = "vector"
	Deflect  Preset = "deflect"
	Place    Preset = "place"
	Combined Preset = "combined"
	Narrow   Preset = "narrow"
	Strict   Preset = "strict"
	NoResume Preset = "noresume"
	NoTopo   Preset = "notopo"
)

// unified wires all five navigation-state handlers to their standard
// implementations, matching UnifiedAgent's constructor.
func unified(model *navmodel.Model, rng *numx.Random, label string) *Agent {
	return New(model, rng, label,
		initiateNavigationHandler{}, approachSubgoalHandler{},
		topologicalStepHandler{}, replayEpisodeHandler{}, explorationHandler{})
}

// NewPreset builds the named Agent variant wired to model, matching the
// corresponding concrete Agent subclass's constructor exactly.
func NewPreset(preset Preset, model *navmodel.Model, rng *numx.Random) (*Agent, error) {
	switch preset {
	case Vector:
		a := New(model, rng, "Purely vector-navigating agent",
			initiateNavigationHandler{}, approachSubgoalHandler{}, nil, nil, nil)
		a.ApproachMotorTuning = 0.1
		return a, nil

	case NoResume:
		a := New(model, rng, "Combined vector-place agent, strict replay, no resuming replays",
			initiateNavigationHandler{}, noResumeApproachSubgoalHandler{},
			topologicalStepHandler{}, replayEpisodeHandler{}, explorationHandler{})
		a.ReplayConfidenceThreshold = 0.9
		return a, nil

	case NoTopo:
		a := New(model, rng, "Combined vector-place agent, strict replay, no topological navigation",
			initiateNavigationHandler{}, noTopoApproachSubgoalHandler{},
			topologicalStepHandler{}, replayEpisodeHandler{}, explorationHandler{})
		a.ReplayConfidenceThreshold = 0.9
		return a, nil

	case Deflect:
		a := unified(model, rng, "Vector-navigating agent with obstacle deflection")
		a.FormPlaceCells = false
		return a, nil

	case Place:
		a := unified(model, rng, "Purely topological agent")
		a.PerformTopologicalNavigation = true
		return a, nil

	case Combined:
		return unified(model, rng, "Combined vector-place agent"), nil

	case Narrow:
		a := unified(model, rng, "Combined vector-place agent, sunburst version")
		a.ApproachMotorTuning = 0.1
		a.ExplorationEndProbability = 0.0005
		return a, nil

	case Strict:
		a := unified(model, rng, "Combined vector-place agent, exaggerated traits")
		a.ReplayConfidenceThreshold = 0.9
		a.TopologicalResetProbability = 0.25
		return a, nil

	default:
		return nil, fmt.Errorf("agent: unknown preset %q", preset)
	}
}
