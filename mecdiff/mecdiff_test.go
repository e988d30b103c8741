// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mecdiff

import (
	"testing"

	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/motor"
	"github.com/ccnlab/gridnav/numx"
)

func newTestLayer(t *testing.T, simplified bool) *Layer {
	t.Helper()
	rng := numx.NewRandom()
	current := grid.NewConvolved(grid.NewModule(grid.MaxGain, grid.GainModeVelocity, rng), rng)
	target := grid.NewConvolved(grid.NewModule(grid.MaxGain, grid.GainModeVelocity, rng), rng)
	return NewLayer(simplified, current, target, 4, 2, 1, rng)
}

func TestLayerSampleDecompositionRoundTrips(t *testing.T) {
	l := newTestLayer(t, false)
	for i := 0; i < l.Size(); i++ {
		d, x, y := l.DirectionSample(i), l.XSample(i), l.YSample(i)
		if got := l.NeuronIndex(d, x, y); got != i {
			t.Errorf("NeuronIndex(%d, %d, %d) = %d, want %d", d, x, y, got, i)
		}
	}
}

func TestLayerDirectionAndCoordinates(t *testing.T) {
	l := newTestLayer(t, false)
	// Neuron 0 samples direction 0, x sample 0, y sample 0.
	if d := l.Direction(0); d != 0 {
		t.Errorf("Direction(0) = %v, want 0", d)
	}
	if l.X(0) != 0 || l.Y(0) != 0 {
		t.Errorf("X(0), Y(0) = %d, %d, want 0, 0", l.X(0), l.Y(0))
	}
	// Neuron 1 (direction sample 1 of 4) should be a quarter turn, i.e. pi/2.
	want := numx.Real(3.14159265 / 2)
	if got := l.Direction(1); got < want-1e-4 || got > want+1e-4 {
		t.Errorf("Direction(1) = %v, want ~%v", got, want)
	}
	// xySamples=2, grid.Size=40: sample 1 maps to coordinate 20.
	idx := l.NeuronIndex(0, 1, 0)
	if l.X(idx) != grid.Size/2 {
		t.Errorf("X at xSample=1 = %d, want %d", l.X(idx), grid.Size/2)
	}
}

func TestLayerUpdateValuesRectifiesAndBiases(t *testing.T) {
	plain := newTestLayer(t, false)
	plain.Accum.Values[0] = -1
	plain.Accum.Values[1] = 2
	plain.UpdateValues()
	if plain.Next.Values[0] != 0 {
		t.Errorf("plain: got %v for a negative input, want 0 (rectified)", plain.Next.Values[0])
	}
	if plain.Next.Values[1] != 2 {
		t.Errorf("plain: got %v, want 2 (unbiased)", plain.Next.Values[1])
	}

	simplified := newTestLayer(t, true)
	simplified.Accum.Values[1] = 2
	simplified.UpdateValues()
	if want := numx.Real(1.4); simplified.Next.Values[1] != want {
		t.Errorf("simplified: got %v, want %v (2 - 0.6 bias)", simplified.Next.Values[1], want)
	}
	simplified.Accum.Values[2] = 0.1
	simplified.UpdateValues()
	if simplified.Next.Values[2] != 0 {
		t.Errorf("simplified: got %v for an input below the bias, want 0 (rectified)", simplified.Next.Values[2])
	}
}

func TestMotorInputSumsAcrossAnchors(t *testing.T) {
	l := newTestLayer(t, false)
	for i := range l.Current.Values {
		l.Current.Values[i] = 1
	}

	pop := motor.NewPopulation(l.DirectionSamples, 1, false, numx.NewRandom())
	mi := NewMotorInput(pop, l)
	mi.AddInputs()

	wantPerDirection := numx.Real(l.XYSamples * l.XYSamples)
	for d, v := range pop.Accum.Values {
		if v != wantPerDirection {
			t.Errorf("direction %d accum = %v, want %v (summed over every (x,y) anchor)", d, v, wantPerDirection)
		}
	}
}
