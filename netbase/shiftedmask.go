// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netbase

import "github.com/ccnlab/gridnav/numx"

// ShiftedMaskInput is a toroidal, per-neuron-shifted convolution: every
// efferent neuron samples the same base weight mask over the afferent
// sheet, but centered on a location the efferent neuron itself chooses
// (its Shift). grid's recurrent connectivity and mecdiff's current/target
// sampling are both instances of this one pattern, differing only in their
// weight mask and their per-neuron shift — the generic shape mirrors the
// original's abstract MecShiftedMaskInput base class, expressed here as
// composition over two supplied functions instead of virtual methods.
//
// Many efferent neurons often share the same shift (every MEC-diff
// current-input neuron at the same (x, y) anchor, whatever its direction,
// for instance), so the per-step sum for a given shift is computed once and
// reused for the rest of that shift's neurons within the same AddInputs
// call.
type ShiftedMaskInput struct {
	EnableFlag

	Efferent *Base
	Afferent *Base

	// AfferentSize is the side length of the square afferent sheet that
	// Weight and the shifts returned by Shift are expressed in terms of.
	AfferentSize int

	// Weight returns the connection weight for the raw (unfolded) offset
	// (x, y) between a sample point and an afferent neuron's coordinates,
	// for x, y in [0, AfferentSize). Called once per afferent coordinate
	// pair during Initialize to build the doubled weight mask.
	Weight func(x, y int) numx.Real

	// Shift returns, for the efferent neuron at the given index, the
	// (x, y) coordinates in the afferent sheet that its sampling mask is
	// centered on.
	Shift func(efferentNeuron int) (x, y int)

	mask   *numx.Matrix // doubled (2*AfferentSize x 2*AfferentSize) weight mask
	shifts [][2]int

	cacheValid []bool
	cacheSum   []numx.Real
}

func (s *ShiftedMaskInput) Initialize() {
	n := s.AfferentSize
	s.mask = numx.NewMatrix(2*n, 2*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			w := s.Weight(x, y)
			s.mask.Set(x, y, w)
			s.mask.Set(x+n, y, w)
			s.mask.Set(x, y+n, w)
			s.mask.Set(x+n, y+n, w)
		}
	}
	size := s.Efferent.Size()
	s.shifts = make([][2]int, size)
	for i := 0; i < size; i++ {
		x, y := s.Shift(i)
		s.shifts[i] = [2]int{x, y}
	}
	s.cacheValid = make([]bool, n*n)
	s.cacheSum = make([]numx.Real, n*n)
}

// AddInputs accumulates, for every efferent neuron, the sum of the
// afferent sheet's current activity weighted by the mask centered at that
// neuron's shift, caching the sum per distinct shift within this call.
func (s *ShiftedMaskInput) AddInputs() {
	n := s.AfferentSize
	for i := range s.cacheValid {
		s.cacheValid[i] = false
	}
	afferent := s.Afferent.Current.Values
	accum := s.Efferent.Accum.Values
	for neuron := 0; neuron < s.Efferent.Size(); neuron++ {
		if !s.Efferent.ShouldUpdateNeuron(neuron) {
			continue
		}
		shift := s.shifts[neuron]
		cacheIndex := shift[1]*n + shift[0]
		if s.cacheValid[cacheIndex] {
			accum[neuron] += s.cacheSum[cacheIndex]
			continue
		}
		offsetX := n - shift[0]
		offsetY := n - shift[1]
		var sum numx.Real
		for y := 0; y < n; y++ {
			row := s.mask.Row(offsetY + y)[offsetX : offsetX+n]
			afferentRow := afferent[y*n : y*n+n]
			for x := 0; x < n; x++ {
				sum += afferentRow[x] * row[x]
			}
		}
		accum[neuron] += sum
		s.cacheSum[cacheIndex] = sum
		s.cacheValid[cacheIndex] = true
	}
}
