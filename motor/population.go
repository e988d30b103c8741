// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package motor implements the ring-of-directions population code used to
// decode a movement direction and strength from upstream activity, and to
// re-express a chosen direction as a fresh bump of activity for downstream
// populations to read. Grounded on original_source/motor.h and motor.cc.
package motor

import (
	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// Population is a ring of DirectionSamples neurons, each tuned to an evenly
// spaced heading around the circle. Every population decodes a
// (Direction, Strength) pair from its own activity on every Commit; a
// normalizing population additionally re-expresses that pair (or an
// externally overridden one) as a clean Gaussian bump, which is what lets
// a chain of these populations implement border inhibition and confidence
// scoring on top of a noisy grid-cell-decoded direction.
type Population struct {
	*netbase.Base

	DirectionSamples int
	ScalingFactor    numx.Real
	Normalize        bool

	// NormalizationSpread is the angular standard deviation of the Gaussian
	// bump a normalizing population re-expresses its decoded direction as.
	// Meaningless unless Normalize is set; the caller must set it before
	// every Update that matters, since it has no sensible universal default.
	NormalizationSpread numx.Real
	NormalizationPeak   numx.Real

	OverrideActive    bool
	OverrideDirection numx.Real
	OverrideStrength  numx.Real

	Direction numx.Real
	Strength  numx.Real
}

// NewPopulation builds a ring of directionSamples neurons. Its initial
// activity is zero rather than the small uniform noise netbase.NewBase
// seeds by default: Population immediately swaps buffers once, the same
// way the original MotorNetwork constructor calls commit() to flip
// current_activity onto the zeroed buffer before anything reads it.
func NewPopulation(directionSamples int, scalingFactor numx.Real, normalize bool, rng *numx.Random) *Population {
	p := &Population{
		DirectionSamples:    directionSamples,
		ScalingFactor:       scalingFactor,
		Normalize:           normalize,
		NormalizationSpread: 2 * mat32.Pi,
		NormalizationPeak:   1,
	}
	p.Base = netbase.NewBase(directionSamples, rng, p)
	p.Base.Commit()
	p.decode()
	return p
}

func sampleAngle(i, n int) numx.Real {
	return numx.Real(i) * 2 * mat32.Pi / numx.Real(n)
}

// vectorSum decodes a (direction, strength) pair from a ring of activity by
// treating each neuron's value as a vector of its own length pointing in
// its preferred direction, then summing the vectors, matching
// MotorNetwork::calculate_direction_and_strength.
func vectorSum(values []numx.Real) (direction, strength numx.Real) {
	var x, y numx.Real
	n := len(values)
	for i, v := range values {
		angle := sampleAngle(i, n)
		x += v * mat32.Cos(angle)
		y += v * mat32.Sin(angle)
	}
	return mat32.Atan2(y, x), mat32.Hypot(x, y)
}

func (p *Population) decode() {
	p.Direction, p.Strength = vectorSum(p.Current.Values)
}

// Commit swaps buffers, then re-decodes Direction/Strength from the newly
// current activity. Population shadows netbase.Base's plain swap with this
// method; call p.Commit() (or p.UpdateAndCommit(), which Population also
// shadows) rather than reaching through to the embedded Base.
func (p *Population) Commit() {
	p.Base.Commit()
	p.decode()
}

// UpdateAndCommit runs one full step: accumulate inputs, compute Next, then
// swap and decode. Shadows netbase.Base's version only to route through
// Population's own Commit instead of Base's.
func (p *Population) UpdateAndCommit() {
	p.Update()
	p.Commit()
}

// UpdateValues implements netbase.Rules. Every neuron first rectifies its
// accumulated input. A normalizing population then discards that shape
// entirely in favor of a clean Gaussian bump at the decoded (or overridden)
// direction, with binary strength and unit peak rescaled by
// NormalizationPeak, matching MotorNetwork::update_neuron_values.
func (p *Population) UpdateValues() {
	in := p.Accum.Values
	next := p.Next.Values
	for i, v := range in {
		if v < 0 {
			v = 0
		}
		next[i] = v
	}
	if !p.Normalize {
		return
	}

	direction, strength := vectorSum(next)
	if p.OverrideActive {
		direction = p.OverrideDirection
		strength = p.OverrideStrength
	}
	if strength > 0 {
		strength = 1
	} else {
		strength = 0
	}

	var peak numx.Real
	for i := range next {
		angle := sampleAngle(i, p.DirectionSamples)
		diff := angleDifference(angle, direction)
		next[i] = strength * mat32.Exp(-(diff*diff)/(2*p.NormalizationSpread*p.NormalizationSpread))
		if next[i] > peak {
			peak = next[i]
		}
	}
	var rescale numx.Real
	if peak > 0 {
		rescale = p.NormalizationPeak / peak
	}
	for i := range next {
		next[i] *= rescale
	}
}

// angleDifference returns a - b wrapped into (-pi, pi].
func angleDifference(a, b numx.Real) numx.Real {
	return mat32.Atan2(mat32.Sin(a-b), mat32.Cos(a-b))
}
