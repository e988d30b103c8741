// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the medial entorhinal cortex (MEC) continuous
// attractor grid module: a toroidal sheet of neurons with recurrent
// center-surround connectivity, its 2x2-blurred convolved readout used for
// decoding and snapshotting, and a bump tracker that follows the attractor's
// activity peak. Grounded on original_source/mec.h and mec.cc.
package grid

import (
	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// Size is the side length of the toroidal neural sheet (MEC_SIZE in the
// original). Every grid module, regardless of scale, uses the same sheet
// size; only the per-module Gain differs.
const Size = 40

// NumNeurons is the number of neurons in one sheet.
const NumNeurons = Size * Size

// MaxSpeed is the maximum supported running speed, in cm/s (MAX_MEC_SPEED).
const MaxSpeed = 120.0

// FixedSpeed is the speed the agent moves at whenever it is not halted, in
// cm/s (FIXED_SPEED).
const FixedSpeed = 20.0

// MaxGain is the gain value at which the Poisson gating mode's per-step
// activation probability saturates to 1 (MAX_MEC_GAIN).
const MaxGain = MaxSpeed / FixedSpeed * 0.01

// BumpTrackerRadius is the disc radius, in sheet cells, used by the bump
// tracker's center-of-mass search (BUMP_TRACKER_RADIUS).
const BumpTrackerRadius = 5

// velocityScale is the empirical constant that converts a velocity
// component along a neuron's preferred direction into an input
// contribution (see VelocityInput and MecRecurrentInput in the original).
const velocityScale = 0.10315

// GainMode selects how a module's Gain parameter is applied: as a
// deterministic scaling of the velocity drive (GainModeVelocity) or as the
// parameter of a per-neuron Bernoulli gate applied every step
// (GainModePoisson).
type GainMode int

const (
	GainModeVelocity GainMode = iota
	GainModePoisson
)

// Direction is a neuron's preferred heading, assigned by the parity of its
// (x, y) sheet coordinates: the four cells of each 2x2 block each prefer a
// different cardinal direction.
type Direction int

const (
	West Direction = iota
	North
	South
	East
)

// DirectionOf returns the preferred direction of the neuron at (x, y),
// matching MecNetwork::directionality: 2*(y%2) + (x%2), indexed against
// {west, north, south, east}.
func DirectionOf(x, y int) Direction {
	return Direction(2*(y%2) + (x % 2))
}

// CoordsToIndex and IndexToX/Y convert between (x, y) sheet coordinates and
// the flat neuron index used by numx.Vector, with y as the outer (row)
// index, matching coords_to_neuron_index / neuron_index_to_x/y.
func CoordsToIndex(x, y int) int { return y*Size + x }
func IndexToX(i int) int         { return i % Size }
func IndexToY(i int) int         { return i / Size }

// lambda/beta/gamma are the center-surround (difference-of-Gaussians)
// connectivity parameters, identical for every grid module regardless of
// scale: lambda = MEC_SIZE*15/40, beta = 3/lambda^2, gamma = 1.05*beta.
const (
	lambda = Size * 15.0 / 40.0
	beta   = 3.0 / (lambda * lambda)
	gamma  = 1.05 * beta
)

// Beta exposes the center-surround beta parameter; mecdiff reuses it to
// build its own shifted-mask weights.
func Beta() numx.Real { return beta }

// Sheet is a toroidal neural sheet of NumNeurons neurons: the base type
// shared by the driven module (Module) and its convolved readout
// (Convolved). It carries the bump-tracking state, since both the driven
// sheet's and the convolved sheet's activity can be tracked, even though in
// practice only the convolved sheet's bump is tracked by navmodel.
type Sheet struct {
	*netbase.Base
	Gain numx.Real

	bumpInitialized bool
	BumpX, BumpY    int
	TotalDX, TotalDY int
}

// NewSheet allocates a sheet of NumNeurons neurons with the given gain.
// rules supplies the embedding type's per-neuron update rule.
func NewSheet(gain numx.Real, rng *numx.Random, rules netbase.Rules) *Sheet {
	return &Sheet{
		Base: netbase.NewBase(NumNeurons, rng, rules),
		Gain: gain,
	}
}

// InitializeBumpTracker seeds (BumpX, BumpY) at the sheet's most active
// neuron, then runs one bump-tracker update to settle it onto the disc
// center of mass before resetting the accumulated displacement to zero —
// matching NeuralSheetNetwork::initialize_bump_tracker.
func (s *Sheet) InitializeBumpTracker() {
	maxActivation := numx.Real(-1)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			a := s.Current.Values[CoordsToIndex(x, y)]
			if a > maxActivation {
				maxActivation = a
				s.BumpX, s.BumpY = x, y
			}
		}
	}
	s.bumpInitialized = true
	s.UpdateBumpTracker()
	s.TotalDX, s.TotalDY = 0, 0
}

// discMass computes the activity mass under the disc of radius
// BumpTrackerRadius centered at (cx, cy), plus the displacement to the
// center of mass of that disc, matching calculate_disc_mass.
func (s *Sheet) discMass(cx, cy int) (mass numx.Real, dx, dy int) {
	var weightedDX, weightedDY numx.Real
	for ddy := -BumpTrackerRadius; ddy <= BumpTrackerRadius; ddy++ {
		for ddx := -BumpTrackerRadius; ddx <= BumpTrackerRadius; ddx++ {
			if ddx*ddx+ddy*ddy > BumpTrackerRadius*BumpTrackerRadius {
				continue
			}
			x := numx.ModuloInt(cx+ddx, Size)
			y := numx.ModuloInt(cy+ddy, Size)
			a := s.Current.Values[CoordsToIndex(x, y)]
			mass += a
			weightedDX += numx.Real(ddx) * a
			weightedDY += numx.Real(ddy) * a
		}
	}
	dx = int(mat32.Round(weightedDX / mass))
	dy = int(mat32.Round(weightedDY / mass))
	return mass, dx, dy
}

// UpdateBumpTracker iteratively hill-climbs the bump location to the
// disc-mass-maximizing center of mass, accumulating the total integer
// displacement since settlement, matching update_bump_tracker.
func (s *Sheet) UpdateBumpTracker() {
	if !s.bumpInitialized {
		return
	}
	for {
		currentMass, dx, dy := s.discMass(s.BumpX, s.BumpY)
		comX := numx.ModuloInt(s.BumpX+dx, Size)
		comY := numx.ModuloInt(s.BumpY+dy, Size)
		newMass, _, _ := s.discMass(comX, comY)
		if newMass > currentMass {
			s.BumpX, s.BumpY = comX, comY
			s.TotalDX += dx
			s.TotalDY += dy
		} else {
			break
		}
	}
}
