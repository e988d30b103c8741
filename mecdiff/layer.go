// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mecdiff computes the alignment between a grid module's current
// convolved activity and a target activity snapshot offset slightly in
// each of a set of candidate directions, at each of a set of candidate
// (x, y) anchor points. The resulting population, read out through motor,
// is how the agent decodes "which direction should I move to make my grid
// cells look like they did at the goal". Grounded on
// original_source/mecdiff.h and mecdiff.cc.
package mecdiff

import (
	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/motor"
	"github.com/ccnlab/gridnav/numx"
)

// Layer is one grid module's difference network: a population sampled
// over (direction, x, y) tuples, each neuron scoring how well moving one
// Offset grid-cells in that direction from that anchor would align the
// current convolved sheet with the target convolved sheet.
type Layer struct {
	*netbase.Base

	Simplified       bool
	DirectionSamples int
	XYSamples        int
	Offset           int
}

// NewLayer builds a difference network of directionSamples*xySamples^2
// neurons comparing current against target, both convolved grid-module
// readouts of the same scale. offset is the number of grid-sheet cells a
// neuron's direction hypothesis displaces the target sample by before
// comparing it to current. simplified selects the cheaper "simplified"
// variant (MecDiffSimplifiedInput) over the full shifted-mask comparison.
func NewLayer(simplified bool, current, target *grid.Convolved, directionSamples, xySamples, offset int, rng *numx.Random) *Layer {
	l := &Layer{
		Simplified:       simplified,
		DirectionSamples: directionSamples,
		XYSamples:        xySamples,
		Offset:           offset,
	}
	size := directionSamples * xySamples * xySamples
	l.Base = netbase.NewBase(size, rng, l)

	if simplified {
		l.AddInput(newSimplifiedInput(l, current.Base, 0))
		l.AddInput(newSimplifiedInput(l, target.Base, offset))
	} else {
		l.AddInput(newCurrentInput(l, current.Base))
		l.AddInput(newTargetInput(l, target.Base, offset))
	}
	return l
}

// DirectionSample, XSample and YSample decompose a flat neuron index back
// into its sampled (direction, x, y) tuple, matching
// MecDiffNetwork::direction_sample/x_sample/y_sample.
func (l *Layer) DirectionSample(i int) int { return i % l.DirectionSamples }
func (l *Layer) XSample(i int) int         { return (i / l.DirectionSamples) % l.XYSamples }
func (l *Layer) YSample(i int) int         { return (i / l.DirectionSamples) / l.XYSamples }

// Direction, X and Y convert a neuron's sampled tuple into actual units:
// a heading in radians and a coordinate on the grid module's sheet.
func (l *Layer) Direction(i int) numx.Real {
	return numx.Real(l.DirectionSample(i)) * 2 * mat32.Pi / numx.Real(l.DirectionSamples)
}
func (l *Layer) X(i int) int { return l.XSample(i) * grid.Size / l.XYSamples }
func (l *Layer) Y(i int) int { return l.YSample(i) * grid.Size / l.XYSamples }

// NeuronIndex is the inverse of DirectionSample/XSample/YSample: it packs
// a (direction, x, y) sample back into a flat neuron index.
func (l *Layer) NeuronIndex(direction, x, y int) int {
	return (y*l.XYSamples+x)*l.DirectionSamples + direction
}

// UpdateValues implements netbase.Rules. The simplified variant subtracts
// a fixed bias before rectifying, which is what makes it behave as a
// difference rather than a raw alignment score; matches
// MecDiffNetwork::update_neuron_values.
func (l *Layer) UpdateValues() {
	in := l.Accum.Values
	next := l.Next.Values
	for i, v := range in {
		if l.Simplified {
			v -= 0.6
		}
		if v < 0 {
			v = 0
		}
		next[i] = v
	}
}

// MotorInput sums, for every direction, a Layer's activity across every
// (x, y) anchor into the matching direction-tuned neuron of a motor
// population, matching MecDiffMotorInput. This is how the per-anchor
// difference scores collapse into a single direction/strength readout.
type MotorInput struct {
	netbase.EnableFlag
	Efferent *netbase.Base
	Layer    *Layer
}

func NewMotorInput(efferent *motor.Population, layer *Layer) *MotorInput {
	m := &MotorInput{Efferent: efferent.Base, Layer: layer}
	m.SetActive(true)
	return m
}

func (m *MotorInput) Initialize() {}

func (m *MotorInput) AddInputs() {
	accum := m.Efferent.Accum.Values
	values := m.Layer.Current.Values
	for y := 0; y < m.Layer.XYSamples; y++ {
		for x := 0; x < m.Layer.XYSamples; x++ {
			for d := 0; d < m.Layer.DirectionSamples; d++ {
				accum[d] += values[m.Layer.NeuronIndex(d, x, y)]
			}
		}
	}
}
