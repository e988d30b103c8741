// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// Module is one medial entorhinal cortex grid module: a driven continuous
// attractor sheet whose recurrent connectivity produces a hexagonal firing
// pattern, and whose activity is pushed around the torus by self-motion
// input. Several Modules of different Gain, sharing no state, make up a
// navmodel.Model's grid-cell population (one per spatial scale).
type Module struct {
	*Sheet
	Mode     GainMode
	rng      *numx.Random
	Velocity *VelocityInput

	// gate holds this step's Poisson activation draw per neuron, valid only
	// under GainModePoisson; recomputed once per Update by refreshGate.
	gate []bool
}

// NewModule constructs a driven grid module of the given gain and gating
// mode, and wires its one permanent input: the fixed recurrent
// connectivity. Call AttachVelocity separately for modules that should
// path-integrate self-motion. rng is retained so Poisson gating can draw
// its own Bernoulli trials independently of any wired input's own draws,
// matching the original's use of a single shared Random for every draw.
func NewModule(gain numx.Real, mode GainMode, rng *numx.Random) *Module {
	m := &Module{Mode: mode, rng: rng}
	m.Sheet = NewSheet(gain, rng, m)
	if mode == GainModePoisson {
		m.gate = make([]bool, NumNeurons)
	}
	m.AddInput(NewRecurrentInput(m))
	return m
}

// AttachVelocity wires a VelocityInput onto this module and returns it.
// Only modules meant to path-integrate the agent's self-motion ("moving"
// copies, in navmodel's terms) get one; a module built without ever
// calling AttachVelocity stays fixed regardless of agent movement,
// matching the original's distinction between mec_fixed and mec_moving.
func (m *Module) AttachVelocity() *VelocityInput {
	m.Velocity = &VelocityInput{Efferent: m.Base, Module: m}
	m.Velocity.SetActive(true)
	m.AddInput(m.Velocity)
	return m.Velocity
}

// refreshGate draws one Bernoulli trial per neuron with success probability
// Gain/MaxGain, matching MecNetwork::update's per-step Poisson gate refresh
// under the Poisson gain mode. Called once at the start of Update.
func (m *Module) refreshGate() {
	p := m.Gain / MaxGain
	for i := range m.gate {
		m.gate[i] = m.rng.Uniform() < p
	}
}

// ShouldUpdate implements netbase.SelectiveRules: under Poisson gain mode
// only gated neurons update this step; under velocity gain mode every
// neuron always updates, since the gain there scales the velocity drive
// itself rather than which neurons get to integrate it.
func (m *Module) ShouldUpdate(neuron int) bool {
	if m.Mode != GainModePoisson {
		return true
	}
	return m.gate[neuron]
}

// Update refreshes the Poisson gate (under GainModePoisson) and then runs
// netbase.Base's Update, so the inputs and UpdateValues both see this
// step's gate.
func (m *Module) Update() {
	if m.Mode == GainModePoisson {
		m.refreshGate()
	}
	m.Base.Update()
}

// UpdateAndCommit shadows netbase.Base's version only to route through
// Module's own Update.
func (m *Module) UpdateAndCommit() {
	m.Update()
	m.Commit()
}

// UpdateValues implements netbase.Rules: the leaky-integrator attractor
// update next[i] = current[i] + 0.1*(max(0, 1+input[i]) - current[i]),
// applied only to neurons this step's gating allows to update, matching
// MecNetwork::update_neuron_values. Un-gated neurons hold their value.
func (m *Module) UpdateValues() {
	cur := m.Current.Values
	next := m.Next.Values
	in := m.Accum.Values
	for i := range cur {
		if !m.ShouldUpdate(i) {
			next[i] = cur[i]
			continue
		}
		driven := numx.Real(1) + in[i]
		if driven < 0 {
			driven = 0
		}
		next[i] = cur[i] + 0.1*(driven-cur[i])
	}
}

// Settle runs the module's recurrent dynamics to convergence from its
// small-noise initial state with no velocity drive, establishing the
// resting hexagonal firing pattern before any self-motion input is
// applied. steps matches the original's SETTLE_STEPS constant, passed in by
// the caller (navmodel) rather than hard-coded here so every module in a
// Model settles together under one shared step count.
func (m *Module) Settle(steps int) {
	for i := 0; i < steps; i++ {
		m.UpdateAndCommit()
	}
}

// Convolved is the 2x2-box-blurred readout of a driven Module's activity.
// Blurring trades a little spatial resolution for a readout far more robust
// to the single-neuron noise of the driven sheet, which is why mecdiff and
// the bump tracker both sample Convolved rather than the driven Module
// directly, matching the original's ConvolutionLayer.
type Convolved struct {
	*Sheet
	convolve *ConvolveInput
}

// NewConvolved builds a Convolved readout of source and wires its only
// input, a ConvolveInput. rng seeds the unused small-noise initial state
// the shared Sheet constructor always applies; the very first AddInputs
// overwrites it.
func NewConvolved(source *Module, rng *numx.Random) *Convolved {
	c := &Convolved{}
	c.Sheet = NewSheet(0, rng, c)
	c.convolve = &ConvolveInput{Source: source, Efferent: c.Base}
	c.convolve.SetActive(true)
	c.AddInput(c.convolve)
	return c
}

// UpdateValues implements netbase.Rules: the convolved sheet has no
// dynamics of its own, so Next is simply whatever AddInputs already wrote
// into Accum.
func (c *Convolved) UpdateValues() {
	copy(c.Next.Values, c.Accum.Values)
}

// ConvolveInput is the sole input of a Convolved readout: it overwrites the
// efferent's Accum with the 2x2 toroidal box blur of Source's current
// activity, matching ConvolutionLayer::convolve.
type ConvolveInput struct {
	netbase.EnableFlag
	Source   *Module
	Efferent *netbase.Base
}

func (c *ConvolveInput) Initialize() {}

func (c *ConvolveInput) AddInputs() {
	src := c.Source.Current.Values
	dst := c.Efferent.Accum.Values
	for y := 0; y < Size; y++ {
		y1 := numx.ModuloInt(y+1, Size)
		for x := 0; x < Size; x++ {
			x1 := numx.ModuloInt(x+1, Size)
			sum := src[CoordsToIndex(x, y)] + src[CoordsToIndex(x1, y)] +
				src[CoordsToIndex(x, y1)] + src[CoordsToIndex(x1, y1)]
			dst[CoordsToIndex(x, y)] += sum * 0.25
		}
	}
}
