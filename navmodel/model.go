// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package navmodel wires the grid, mecdiff, motor and placegraph packages
// into the full navigation model: a population of grid modules at
// different scales, each compared against a remembered target state and
// decoded into a motor population, chained through a two-stage
// normalization pipeline that also yields a confidence score and halts the
// agent when that confidence is too low. Grounded on
// original_source/model.h and model.cc.
package navmodel

import (
	"math"

	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/mecdiff"
	"github.com/ccnlab/gridnav/motor"
	"github.com/ccnlab/gridnav/numx"
	"github.com/ccnlab/gridnav/placegraph"
)

// settleSteps is how many settling iterations every moving grid module runs,
// under forced velocity gain, before the model is considered ready to
// simulate, matching SETTLE_STEPS.
const settleSteps = 1000

// MotorMode selects how the agent's final heading is produced.
type MotorMode int

const (
	HaltMode MotorMode = iota
	ForcedMode
	GridDecoderMode
	LastHeadingMode
)

// Config is the full set of tunable parameters a Model is built from,
// matching struct ModelConf.
type Config struct {
	ModuleCount             int
	GainMode                grid.GainMode
	GainRatio               numx.Real
	InitialGain             numx.Real
	AlternativeMotorScaling bool
	SimplifiedMecDiff       bool
	DirectionSamples        int
	XYSamples               int
	MecDiffOffset           int
	SensorCount             int
	SensorRange             numx.Real
	PlaceCellRadius         numx.Real
	InternalMotorTuning     numx.Real
}

// Input is read by SimulateTimestep every call.
type Input struct {
	Heading             numx.Real
	Speed               numx.Real
	MotorMode           MotorMode
	MotorTuning         numx.Real
	MotorOffset         numx.Real
	ConfidenceThreshold numx.Real
}

// Output is written by SimulateTimestep every call.
type Output struct {
	Heading numx.Real
	Speed   numx.Real
	Halted  bool
}

// Model is one full agent brain: every grid module, the place graph, and
// the motor pipeline that turns grid-cell alignment into a heading.
type Model struct {
	Config Config
	Input  Input
	Output Output

	PlaceGraph    *placegraph.Graph
	BorderSensors *numx.Vector
	Confidence    numx.Real

	rng *numx.Random

	mecFixed           []*grid.Module
	mecMoving          []*grid.Module
	mecFixedConvolved  []*grid.Convolved
	mecMovingConvolved []*grid.Convolved
	mecDiff            []*mecdiff.Layer
	mecMotor           []*motor.Population
	finalMotor         *motor.Population

	firstNormalizedMotor  *motor.Population
	firstInhibitedMotor   *motor.Population
	secondNormalizedMotor *motor.Population
	secondInhibitedMotor  *motor.Population

	firstBorderMotorInput  *motor.BorderSensorInput
	secondBorderMotorInput *motor.BorderSensorInput
}

// NewModel builds and wires every sub-network, matching Model's
// constructor exactly: one grid module pair (fixed and moving) per scale,
// its convolved readouts, its mecdiff comparison, and a per-module motor
// population that feeds into finalMotor with the appropriate scaling
// factor, followed by the border-inhibition/confidence pipeline.
func NewModel(conf Config, rng *numx.Random) *Model {
	m := &Model{Config: conf, rng: rng}

	m.finalMotor = motor.NewPopulation(conf.DirectionSamples, 1.0, false, rng)

	for i := 0; i < conf.ModuleCount; i++ {
		currentGain := conf.InitialGain / mat32.Pow(conf.GainRatio, numx.Real(i))

		fixed := grid.NewModule(currentGain, conf.GainMode, rng)
		moving := grid.NewModule(currentGain, conf.GainMode, rng)
		moving.AttachVelocity()
		m.mecFixed = append(m.mecFixed, fixed)
		m.mecMoving = append(m.mecMoving, moving)

		fixedConvolved := grid.NewConvolved(fixed, rng)
		movingConvolved := grid.NewConvolved(moving, rng)
		m.mecFixedConvolved = append(m.mecFixedConvolved, fixedConvolved)
		m.mecMovingConvolved = append(m.mecMovingConvolved, movingConvolved)

		layer := mecdiff.NewLayer(conf.SimplifiedMecDiff, movingConvolved, fixedConvolved,
			conf.DirectionSamples, conf.XYSamples, conf.MecDiffOffset, rng)
		m.mecDiff = append(m.mecDiff, layer)

		// The largest-scaled module (i == conf.ModuleCount-1) always gets a
		// scaling factor of 1.0; n counts down from there so the formula
		// below reads the same regardless of module_count.
		n := conf.ModuleCount - 1 - i
		var scalingFactor numx.Real
		if conf.AlternativeMotorScaling {
			var denominator numx.Real
			for l := 0; l <= n; l++ {
				denominator += mat32.Pow(conf.GainRatio, 2*numx.Real(l))
			}
			scalingFactor = mat32.Pow(conf.GainRatio, numx.Real(n)) / denominator
		} else {
			scalingFactor = 1.0 / mat32.Pow(conf.GainRatio, numx.Real(n))
		}

		moduleMotor := motor.NewPopulation(conf.DirectionSamples, scalingFactor, false, rng)
		moduleMotor.AddInput(mecdiff.NewMotorInput(moduleMotor, layer))
		m.mecMotor = append(m.mecMotor, moduleMotor)
		m.finalMotor.AddInput(&motor.PopulationInput{Efferent: m.finalMotor.Base, Afferent: moduleMotor})
	}

	m.PlaceGraph = placegraph.NewGraph(conf.PlaceCellRadius)
	m.BorderSensors = numx.NewVector(conf.SensorCount)

	m.firstNormalizedMotor = motor.NewPopulation(conf.SensorCount, 1.0, true, rng)
	m.firstInhibitedMotor = motor.NewPopulation(conf.SensorCount, 1.0, false, rng)
	m.secondNormalizedMotor = motor.NewPopulation(conf.SensorCount, 1.0, true, rng)
	m.secondInhibitedMotor = motor.NewPopulation(conf.SensorCount, 1.0, false, rng)

	m.firstInhibitedMotor.AddInput(&motor.PopulationInput{
		Efferent: m.firstInhibitedMotor.Base, Afferent: m.firstNormalizedMotor})
	m.secondNormalizedMotor.AddInput(&motor.PopulationInput{
		Efferent: m.secondNormalizedMotor.Base, Afferent: m.firstInhibitedMotor})
	m.secondInhibitedMotor.AddInput(&motor.PopulationInput{
		Efferent: m.secondInhibitedMotor.Base, Afferent: m.secondNormalizedMotor})

	firstBorder := &motor.BorderSensorInput{Efferent: m.firstInhibitedMotor.Base, BorderSensors: m.BorderSensors}
	secondBorder := &motor.BorderSensorInput{Efferent: m.secondInhibitedMotor.Base, BorderSensors: m.BorderSensors}
	m.firstInhibitedMotor.AddInput(firstBorder)
	m.secondInhibitedMotor.AddInput(secondBorder)
	m.firstBorderMotorInput = firstBorder
	m.secondBorderMotorInput = secondBorder

	return m
}

// ModuleCount implements placegraph.GridState.
func (m *Model) ModuleCount() int { return len(m.mecMoving) }

// CaptureModuleActivity implements placegraph.GridState: it snapshots the
// moving, path-integrating copy of module i's convolved activity — the one
// that actually reflects the agent's accumulated self-motion.
func (m *Model) CaptureModuleActivity(module int) *numx.Vector {
	return m.mecMovingConvolved[module].Current
}

// RestoreModuleActivity implements placegraph.GridState: it overwrites the
// fixed (non-path-integrating) copy of module i's convolved activity,
// which is what mecdiff compares the moving copy against.
func (m *Model) RestoreModuleActivity(module int, activity *numx.Vector) {
	m.mecFixedConvolved[module].Current.CopyFrom(activity)
}

// Settle drives every moving grid module to its resting hexagonal pattern,
// forcing velocity gain mode during settlement regardless of the
// configured gain mode so Poisson-gated modules still converge promptly,
// copies each settled convolved readout into the matching fixed convolved
// copy (the fixed modules themselves are never run), then seeds every bump
// tracker and primes the border-inhibition pipeline
// with a zero-strength override so its first real update starts from a
// clean state. Matches Model::settle.
func (m *Model) Settle() {
	for i := 0; i < len(m.mecMoving); i++ {
		previousMode := m.mecMoving[i].Mode
		m.mecMoving[i].Mode = grid.GainModeVelocity
		for t := 0; t < settleSteps; t++ {
			m.mecMoving[i].UpdateAndCommit()
		}
		m.mecMoving[i].Mode = previousMode

		m.mecMovingConvolved[i].UpdateAndCommit()
		m.mecMovingConvolved[i].InitializeBumpTracker()
	}

	for i := range m.mecFixedConvolved {
		m.mecFixedConvolved[i].Current.CopyFrom(m.mecMovingConvolved[i].Current)
		m.mecMovingConvolved[i].InitializeBumpTracker()
	}

	m.firstNormalizedMotor.OverrideActive = true
	m.firstNormalizedMotor.OverrideDirection = 0
	m.firstNormalizedMotor.OverrideStrength = 0

	m.firstNormalizedMotor.UpdateAndCommit()
	m.firstInhibitedMotor.UpdateAndCommit()
	m.secondNormalizedMotor.UpdateAndCommit()
	m.secondInhibitedMotor.UpdateAndCommit()
}

// SimulateTimestep runs one full simulated millisecond: path-integrate
// every grid module, update the place graph, optionally decode a grid-cell
// heading, then run the border-inhibition/confidence pipeline to produce
// the agent's actual next heading and halted state. Matches
// Model::simulate_timestep exactly.
func (m *Model) SimulateTimestep() {
	for i := range m.mecMoving {
		vx := m.Input.Speed * mat32.Cos(m.Input.Heading)
		vy := m.Input.Speed * mat32.Sin(m.Input.Heading)
		m.mecMoving[i].Velocity.SetVelocity(vx, vy)
		m.mecMoving[i].UpdateAndCommit()
		m.mecMovingConvolved[i].UpdateAndCommit()
		m.mecMovingConvolved[i].UpdateBumpTracker()
	}

	m.PlaceGraph.Update(m)

	if m.Input.MotorMode == GridDecoderMode {
		for i := range m.mecDiff {
			m.mecDiff[i].UpdateAndCommit()
			m.mecMotor[i].UpdateAndCommit()
		}
		m.finalMotor.UpdateAndCommit()
	}

	m.Output.Halted = true
	m.Output.Heading = m.Input.Heading

	if m.Input.MotorMode != HaltMode {
		switch m.Input.MotorMode {
		case GridDecoderMode:
			if m.PlaceGraph.Output.SubgoalVisible {
				m.firstNormalizedMotor.OverrideDirection = m.PlaceGraph.Output.SubgoalDirection
				m.firstNormalizedMotor.OverrideStrength = 1
			} else {
				m.firstNormalizedMotor.OverrideDirection = m.finalMotor.Direction
				m.firstNormalizedMotor.OverrideStrength = m.finalMotor.Strength
			}
		case LastHeadingMode:
			m.firstNormalizedMotor.OverrideDirection = m.Input.Heading
			m.firstNormalizedMotor.OverrideStrength = 1
		case ForcedMode:
			m.firstNormalizedMotor.OverrideDirection = 0
			m.firstNormalizedMotor.OverrideStrength = 1
		}
		m.firstNormalizedMotor.OverrideDirection += m.Input.MotorOffset

		borderCellsActive := m.Input.MotorMode != ForcedMode
		m.firstBorderMotorInput.SetActive(borderCellsActive)
		m.secondBorderMotorInput.SetActive(borderCellsActive)

		m.firstNormalizedMotor.NormalizationSpread = m.Input.MotorTuning
		m.secondNormalizedMotor.NormalizationSpread = m.Config.InternalMotorTuning

		m.firstNormalizedMotor.UpdateAndCommit()
		m.firstInhibitedMotor.UpdateAndCommit()
		m.secondNormalizedMotor.UpdateAndCommit()
		m.secondInhibitedMotor.UpdateAndCommit()

		if m.firstNormalizedMotor.Strength > 0 && m.secondNormalizedMotor.Strength > 0 {
			m.Confidence = numx.Real(math.Sqrt(float64(
				m.firstInhibitedMotor.Strength / m.firstNormalizedMotor.Strength *
					m.secondInhibitedMotor.Strength / m.secondNormalizedMotor.Strength)))
		} else {
			m.Confidence = 0
		}

		m.Output.Halted = m.Confidence < m.Input.ConfidenceThreshold
		if m.secondInhibitedMotor.Strength > 0 {
			m.Output.Heading = m.secondInhibitedMotor.Direction
		}
	}

	if m.Output.Halted {
		m.Output.Speed = 0
	} else {
		m.Output.Speed = grid.FixedSpeed
	}
}
