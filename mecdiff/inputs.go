// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mecdiff

import (
	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// foldedDistanceSquared mirrors grid's own folding helper; kept local since
// mecdiff's weight functions fold against grid.Size rather than an
// arbitrary afferent size, and importing an unexported helper across
// packages isn't possible.
func foldedDistanceSquared(x, y int) numx.Real {
	if x > grid.Size/2 {
		x = grid.Size - x
	}
	if y > grid.Size/2 {
		y = grid.Size - y
	}
	return numx.Real(x*x + y*y)
}

// currentWeight is MecDiffCurrentInput::get_weight: a non-positive mask,
// zero at the sample point and approaching -0.25 far from it, so afferent
// activity away from the sample point is penalized and activity at it is
// not.
func currentWeight(x, y int) numx.Real {
	d2 := foldedDistanceSquared(x, y)
	return 0.25 * (mat32.Exp(-grid.Beta()*d2) - 1)
}

// targetWeight is MecDiffTargetInput::get_weight: a plain Gaussian
// similarity to the (direction-and-offset-shifted) target sample point.
func targetWeight(x, y int) numx.Real {
	d2 := foldedDistanceSquared(x, y)
	return mat32.Exp(-grid.Beta() * d2)
}

// shiftedSample rounds (x + offset*cos(direction), y + offset*sin(direction))
// to the nearest integer grid cell and wraps it onto the torus, matching
// the offset-and-round pattern shared by MecDiffTargetInput::get_shift and
// MecDiffSimplifiedInput's constructor.
func shiftedSample(x, y int, direction numx.Real, offset int) (int, int) {
	sx := int(mat32.Round(numx.Real(x) + numx.Real(offset)*mat32.Cos(direction)))
	sy := int(mat32.Round(numx.Real(y) + numx.Real(offset)*mat32.Sin(direction)))
	return numx.ModuloInt(sx, grid.Size), numx.ModuloInt(sy, grid.Size)
}

func newCurrentInput(efferent *Layer, afferent *netbase.Base) *netbase.ShiftedMaskInput {
	s := &netbase.ShiftedMaskInput{
		Efferent:     efferent.Base,
		Afferent:     afferent,
		AfferentSize: grid.Size,
		Weight:       currentWeight,
		Shift: func(neuron int) (int, int) {
			return efferent.X(neuron), efferent.Y(neuron)
		},
	}
	s.SetActive(true)
	return s
}

func newTargetInput(efferent *Layer, afferent *netbase.Base, offset int) *netbase.ShiftedMaskInput {
	s := &netbase.ShiftedMaskInput{
		Efferent:     efferent.Base,
		Afferent:     afferent,
		AfferentSize: grid.Size,
		Weight:       targetWeight,
		Shift: func(neuron int) (int, int) {
			return shiftedSample(efferent.X(neuron), efferent.Y(neuron), efferent.Direction(neuron), offset)
		},
	}
	s.SetActive(true)
	return s
}

// simplifiedInput is the cheap approximation to the full shifted-mask
// comparison: instead of summing a Gaussian mask over the whole afferent
// sheet, it simply reads the single afferent neuron at the shifted sample
// point, matching MecDiffSimplifiedInput.
type simplifiedInput struct {
	netbase.EnableFlag
	Efferent *netbase.Base
	Afferent *netbase.Base

	inputIndices []int
}

func newSimplifiedInput(efferent *Layer, afferent *netbase.Base, offset int) *simplifiedInput {
	s := &simplifiedInput{Efferent: efferent.Base, Afferent: afferent}
	s.SetActive(true)
	s.inputIndices = make([]int, efferent.Size())
	for neuron := 0; neuron < efferent.Size(); neuron++ {
		x, y := shiftedSample(efferent.X(neuron), efferent.Y(neuron), efferent.Direction(neuron), offset)
		s.inputIndices[neuron] = grid.CoordsToIndex(x, y)
	}
	return s
}

func (s *simplifiedInput) Initialize() {}

func (s *simplifiedInput) AddInputs() {
	accum := s.Efferent.Accum.Values
	values := s.Afferent.Current.Values
	for neuron, index := range s.inputIndices {
		accum[neuron] += values[index]
	}
}
