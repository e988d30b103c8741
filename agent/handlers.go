// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agent

import (
	"math"

	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/navmodel"
	"github.com/ccnlab/gridnav/placegraph"
)

// distancePerTimestep is how far the agent travels, at FixedSpeed, in one
// simulated millisecond, matching DISTANCE_PER_TIMESTEP.
const distancePerTimestep = 20.0 / 1000.0

// forcedMoveHandler drives the agent directly towards input.GotoX/GotoY at
// a slow, fixed heading, ignoring the grid decoder entirely, matching
// ForcedMoveState.
type forcedMoveHandler struct{}

func (forcedMoveHandler) Hook(a *Agent) {
	a.model.Input.MotorMode = navmodel.ForcedMode
	a.model.Input.MotorTuning = 0.1
	a.model.Input.MotorOffset = mat32.Atan2(a.Input.GotoY-a.Input.Y, a.Input.GotoX-a.Input.X)

	gotoDistance := mat32.Hypot(a.Input.GotoX-a.Input.X, a.Input.GotoY-a.Input.Y)
	if gotoDistance < 2*distancePerTimestep {
		a.nextState = NoState
	}
}

// receiveRewardHandler halts the model for one tick while the place graph
// forms a place cell at the current location and records it as a reward,
// matching ReceiveRewardState.
type receiveRewardHandler struct{}

func (receiveRewardHandler) Hook(a *Agent) {
	a.model.Input.MotorMode = navmodel.HaltMode
	a.model.PlaceGraph.Input.FormPlaceCells = true
	a.model.PlaceGraph.Input.SaveReward = true
	a.nextState = NoState
}

// initiateNavigationHandler points the replay cursor at the goal (directly,
// or via the agent's own cell when topological stepping is enabled) and
// moves on to approach_subgoal, matching InitiateNavigationState.
type initiateNavigationHandler struct{}

func (initiateNavigationHandler) Hook(a *Agent) {
	if !a.PerformTopologicalNavigation {
		a.model.PlaceGraph.Input.ResetReplayTo = placegraph.GoalNode
	} else {
		a.model.PlaceGraph.Input.ResetReplayTo = placegraph.AgentNode
		a.model.PlaceGraph.Input.PropagateReplayTowards = placegraph.GoalNode
	}
	a.nextState = ApproachSubgoal
}

// approachSubgoalHandler is the standard approach-subgoal behavior: stay in
// approach_subgoal while moving, drop into replay_episode when the model
// halts, and advance to topological_step once the subgoal is reached,
// matching ApproachSubgoalState.
type approachSubgoalHandler struct{}

func (approachSubgoalHandler) Hook(a *Agent) {
	switch {
	case a.model.PlaceGraph.Output.AtSubgoal:
		a.nextState = TopologicalStep
	case a.model.Output.Halted:
		a.model.Input.ConfidenceThreshold = a.ReplayConfidenceThreshold
		a.nextState = ReplayEpisode
	default:
		a.nextState = ApproachSubgoal
	}
}

// noResumeApproachSubgoalHandler is the "no resume" variant: a halt resets
// the replay cursor straight back to the goal rather than continuing from
// wherever it last got to, matching NoResumeApproachSubgoalState.
type noResumeApproachSubgoalHandler struct{}

func (noResumeApproachSubgoalHandler) Hook(a *Agent) {
	switch {
	case a.model.PlaceGraph.Output.AtSubgoal:
		a.nextState = TopologicalStep
	case a.model.Output.Halted:
		a.model.PlaceGraph.Input.ResetReplayTo = placegraph.GoalNode
		a.model.Input.MotorTuning = a.ReplayMotorTuning
		a.model.Input.ConfidenceThreshold = a.ReplayConfidenceThreshold
		a.nextState = ReplayEpisode
	default:
		a.nextState = ApproachSubgoal
	}
}

// noTopoApproachSubgoalHandler is the "no topological navigation" variant:
// reaching the subgoal starts a fresh navigation attempt instead of taking
// a topological step, matching NoTopoApproachSubgoalState.
type noTopoApproachSubgoalHandler struct{}

func (noTopoApproachSubgoalHandler) Hook(a *Agent) {
	switch {
	case a.model.PlaceGraph.Output.AtSubgoal:
		a.nextState = InitiateNavigation
	case a.model.Output.Halted:
		a.model.Input.ConfidenceThreshold = a.ReplayConfidenceThreshold
		a.nextState = ReplayEpisode
	default:
		a.nextState = ApproachSubgoal
	}
}

// topologicalStepHandler takes one BFS hop of the replay cursor towards the
// goal from the agent's current cell, then either restarts navigation (with
// probability TopologicalResetProbability) or resumes approaching, matching
// TopologicalStepState.
type topologicalStepHandler struct{}

func (topologicalStepHandler) Hook(a *Agent) {
	a.model.PlaceGraph.Input.ResetReplayTo = placegraph.AgentNode
	a.model.PlaceGraph.Input.PropagateReplayTowards = placegraph.GoalNode
	if a.rng.Uniform() < a.TopologicalResetProbability {
		a.nextState = InitiateNavigation
	} else {
		a.nextState = ApproachSubgoal
	}
}

// replayEpisodeHandler steps the replay cursor one hop back towards the
// agent every tick while the model stays halted; once the walk runs out of
// path it weakens the synapse last crossed and turns around to explore. If
// the model stops halting it resumes approaching. Matches ReplayEpisodeState.
type replayEpisodeHandler struct{}

func (replayEpisodeHandler) Hook(a *Agent) {
	switch {
	case !a.model.Output.Halted:
		a.nextState = ApproachSubgoal
	case a.model.PlaceGraph.Output.ReplayTerminated:
		a.model.PlaceGraph.Input.WeakenSynapse = true
		a.model.Input.MotorMode = navmodel.LastHeadingMode
		a.model.Input.MotorOffset = math.Pi
		a.nextState = Exploration
	default:
		a.model.Input.MotorTuning = a.ReplayMotorTuning
		a.model.Input.ConfidenceThreshold = a.ReplayConfidenceThreshold
		a.model.PlaceGraph.Input.PropagateReplayTowards = placegraph.AgentNode
		a.nextState = ReplayEpisode
	}
}

// explorationHandler wanders along a slowly-drifting random heading until,
// with probability ExplorationEndProbability, it gives up and starts a
// fresh navigation attempt, matching ExplorationState.
type explorationHandler struct{}

func (explorationHandler) Hook(a *Agent) {
	a.model.Input.MotorMode = navmodel.LastHeadingMode
	a.model.Input.MotorTuning = a.ExplorationMotorTuning
	a.model.Input.MotorOffset = 0.02 * a.rng.Normal()
	if a.rng.Uniform() < a.ExplorationEndProbability {
		a.nextState = InitiateNavigation
	} else {
		a.nextState = Exploration
	}
}
