// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package agent implements the behavioral state machine that drives a
// navmodel.Model: approaching a remembered subgoal by grid-decoded vector,
// falling back to replay and topological stepping when the model halts, and
// exploring when a replay walk runs out of path. Grounded on
// original_source/agent.h and agent.cc.
package agent

// State tags one node of the agent's behavioral state machine.
type State int

const (
	NoState State = iota

	ForcedMove
	ReceiveReward

	InitiateNavigation
	ApproachSubgoal
	TopologicalStep
	ReplayEpisode
	Exploration

	stateCount
)

// Label returns a human-readable name for a state, matching state_labels.
func (s State) Label() string {
	switch s {
	case NoState:
		return "No state"
	case ForcedMove:
		return "Forced move"
	case ReceiveReward:
		return "Receive reward"
	case InitiateNavigation:
		return "Initiate navigation"
	case ApproachSubgoal:
		return "Approach subgoal"
	case TopologicalStep:
		return "Topological step"
	case ReplayEpisode:
		return "Replay episode"
	case Exploration:
		return "Exploration"
	default:
		return "Unknown state"
	}
}

// Handler is one state's behavior: given the agent in its current state, it
// mutates the model's inputs as needed and decides the next state, matching
// StateImplementation::hook.
type Handler interface {
	Hook(a *Agent)
}
