// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package netbase provides the generic double-buffered neural layer and
// additive-input abstraction shared by every network in this repository
// (grid, mecdiff, motor). It plays the same structural role here that
// leabra.Layer and leabra.Path play in the teacher package: a base type
// that owns state and dispatches to an embedding type's per-neuron rule,
// plus a one-way back-reference from each additive input to its efferent.
package netbase

import "github.com/ccnlab/gridnav/numx"

// Rules is implemented by every concrete network (grid.Module,
// grid.Convolved, mecdiff.Layer, motor.Population, ...) to supply the one
// thing Base cannot: the per-neuron value update. Base handles
// accumulation, commit, and input bookkeeping.
type Rules interface {
	// UpdateValues computes next from current and the accumulated Accum
	// vector. Called by Base.Update after inputs have been summed.
	UpdateValues()
}

// SelectiveRules is implemented by networks whose neurons are not all
// updated on every step (grid.Module under Poisson gating). ShouldUpdate
// reports whether neuron i participates in this step's update; networks
// that don't implement it are always fully updated.
type SelectiveRules interface {
	ShouldUpdate(neuron int) bool
}

// Input is a named additive contribution to one efferent network. It may be
// independently enabled or disabled; when enabled, AddInputs is invoked on
// every Base.Update of its efferent.
type Input interface {
	// Initialize is called exactly once, before simulation starts, to let an
	// input precompute weight masks or index tables.
	Initialize()
	// AddInputs accumulates this input's contribution into the efferent's
	// Accum vector. Only called while the input is active.
	AddInputs()
}

// EnableFlag is a small mixin concrete Input types can embed to get
// SetActive/Active for free, instead of re-declaring the same bool on every
// input type. Its zero value is active, matching the original Input
// class's `bool active = true` default — stored inverted (disabled, not
// active) specifically so a bare struct literal needs no constructor call
// to start out enabled.
type EnableFlag struct {
	disabled bool
}

func (f *EnableFlag) SetActive(active bool) { f.disabled = !active }
func (f *EnableFlag) Active() bool          { return !f.disabled }

// Base is the double-buffered neuron layer every network embeds. Current
// holds the most recently committed activity; Next is free for writing
// until the next Commit, at which point the two are swapped. Inputs holds
// every additive input registered with AddInput; Accum holds their summed
// contribution for the step currently being computed.
type Base struct {
	Current *numx.Vector
	Next    *numx.Vector
	Accum   *numx.Vector
	Inputs  []Input

	rng   *numx.Random
	rules Rules
}

// NewBase allocates a layer of the given size, seeding Current with small
// positive noise (~1e-4 uniform) as the original Network constructor does,
// and binds rules as the embedding type's per-neuron update logic.
func NewBase(size int, rng *numx.Random, rules Rules) *Base {
	b := &Base{
		Current: numx.NewVector(size),
		Next:    numx.NewVector(size),
		Accum:   numx.NewVector(size),
		rng:     rng,
		rules:   rules,
	}
	for i := range b.Current.Values {
		b.Current.Values[i] = rng.Uniform() * 0.0001
	}
	return b
}

// Size returns the number of neurons in the layer.
func (b *Base) Size() int { return b.Current.Size() }

// AddInput registers input with the layer, initializes it once, and returns
// it back to the caller for convenience (construction call chaining), as
// the original Network::add_input does.
func (b *Base) AddInput(input Input) Input {
	input.Initialize()
	b.Inputs = append(b.Inputs, input)
	return input
}

// ShouldUpdateNeuron reports whether neuron i participates in this step's
// update. Defaults to true unless the embedding rules implement
// SelectiveRules (e.g. Poisson-gated grid modules).
func (b *Base) ShouldUpdateNeuron(i int) bool {
	if sel, ok := b.rules.(SelectiveRules); ok {
		return sel.ShouldUpdate(i)
	}
	return true
}

// updateInputs clears Accum and sums every active input's contribution.
func (b *Base) updateInputs() {
	b.Accum.Clear()
	for _, input := range b.Inputs {
		if ef, ok := input.(interface{ Active() bool }); ok && !ef.Active() {
			continue
		}
		input.AddInputs()
	}
}

// Update clears and re-accumulates every active input, then dispatches to
// the embedding type's UpdateValues to compute Next from Current and Accum.
func (b *Base) Update() {
	b.updateInputs()
	b.rules.UpdateValues()
}

// Commit swaps Current and Next, so the values just computed into Next
// become the new Current and Next becomes free for the following step's
// writes. This is the only place the double-buffering invariant is
// satisfied: writers only ever touch Next, readers only Current.
func (b *Base) Commit() {
	b.Current, b.Next = b.Next, b.Current
}

// UpdateAndCommit is the common Update-then-Commit sequence used by every
// caller that doesn't need to interleave other work between the two steps.
func (b *Base) UpdateAndCommit() {
	b.Update()
	b.Commit()
}
