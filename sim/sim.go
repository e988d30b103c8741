// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim runs the scripted simulation loop: it owns the agent's
// ground-truth pose, feeds the arena's border-sensor readings and the
// agent's per-tick outputs back into the model, and interprets the
// line-oriented script commands (goto, trigger-reward, seek-reward,
// set-arena, ...) that drive a run end to end. Grounded on
// original_source/simulation.h and simulation.cc.
package sim

import (
	"fmt"
	"math"
	"os"

	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/agent"
	"github.com/ccnlab/gridnav/arena"
	"github.com/ccnlab/gridnav/numx"
)

// stepsPerSecond is how many simulated timesteps make up one second of
// agent time, matching STEPS_PER_SECOND.
const stepsPerSecond = 1000

// distancePerTimestep mirrors the same constant in package agent; kept
// local so this package doesn't need an unexported cross-package import
// just for one threshold check in the goto command.
const distancePerTimestep = 20.0 / 1000.0

// Config is the set of command-line-level options a Runner is built
// from, matching struct SimulationConf. The plotting flags are accepted
// for script compatibility but have no effect in this headless port; see
// DESIGN.md.
type Config struct {
	LivePlot  bool
	FinalPlot bool
	LitePlot  bool
}

// Runner is one scripted run of an Agent through an Arena: it tracks
// the agent's true pose, the active set of reward locations and fences,
// and the bookkeeping (path length, reward ids) the script commands
// reference.
type Runner struct {
	Agent  *agent.Agent
	Config Config

	globalTimestep int
	x, y           numx.Real
	heading, speed numx.Real

	arena    *arena.Arena
	rewardID int
	gotoX    numx.Real
	gotoY    numx.Real

	rewardIDs map[string]int

	currentTrialPhase        string
	pathLengthInCurrentPhase numx.Real

	fences map[string]*arena.Arena
}

// New builds a Runner driving agent, starting with an empty arena (no
// obstacles) until a set-arena command loads one.
func New(a *agent.Agent, conf Config) *Runner {
	return &Runner{
		Agent:     a,
		Config:    conf,
		arena:     arena.NewArena(nil),
		rewardIDs: make(map[string]int),
		fences:    make(map[string]*arena.Arena),
	}
}

// step runs one timestep: refresh the model's border sensors from the
// current pose, feed the agent its inputs, execute it, integrate the
// agent's reported heading/speed into a new ground-truth position, and
// report whether the scripted loop driving this step should continue.
// Matches Simulation::step.
func (s *Runner) step() bool {
	sensors := s.Agent.Model().BorderSensors.Values
	s.arena.UpdateSensors(float64(s.x), float64(s.y), float64(s.Agent.Model().Config.SensorRange), sensors)

	s.Agent.Input.X = s.x
	s.Agent.Input.Y = s.y
	s.Agent.Input.Heading = s.heading
	s.Agent.Input.Speed = s.speed
	s.Agent.Input.GotoX = s.gotoX
	s.Agent.Input.GotoY = s.gotoY
	s.Agent.Input.RewardID = s.rewardID

	s.Agent.Execute()

	s.heading = numx.ModuloReal(s.Agent.Output.Heading, 2*math.Pi)
	s.speed = s.Agent.Output.Speed

	s.pathLengthInCurrentPhase += s.speed / stepsPerSecond

	ax, ay := s.x, s.y
	s.x += s.speed * mat32.Cos(s.heading) / stepsPerSecond
	s.y += s.speed * mat32.Sin(s.heading) / stepsPerSecond
	bx, by := s.x, s.y

	s.globalTimestep++

	continueLoop := s.Agent.ActiveState() != agent.NoState

	for name, fence := range s.fences {
		if fence.LineIntersects(float64(ax), float64(ay), float64(bx), float64(by)) {
			fmt.Fprintf(os.Stderr, "Agent hit fence %q\n", name)
			continueLoop = false
		}
	}

	if s.arena.LineIntersects(float64(ax), float64(ay), float64(bx), float64(by)) {
		fmt.Fprintf(os.Stderr, "Agent hit arena between %v,%v and %v,%v!\n", ax, ay, bx, by)
		os.Exit(1)
	}

	return continueLoop
}

func (s *Runner) getRewardID(name string) int {
	if id, ok := s.rewardIDs[name]; ok {
		return id
	}
	id := len(s.rewardIDs) + 1
	s.rewardIDs[name] = id
	return id
}

func (s *Runner) reportPathLengthAtEndOfTrialPhase() {
	if s.currentTrialPhase == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "Path length at end of %q: %v\n", s.currentTrialPhase, s.pathLengthInCurrentPhase)
}
