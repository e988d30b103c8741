// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motor

import (
	"math"
	"testing"

	"github.com/ccnlab/gridnav/numx"
)

func TestVectorSumDecodesASingleBump(t *testing.T) {
	n := 8
	values := make([]numx.Real, n)
	values[2] = 1 // sampleAngle(2, 8) = pi/2
	direction, strength := vectorSum(values)
	if strength <= 0 {
		t.Fatalf("strength = %v, want > 0", strength)
	}
	want := numx.Real(math.Pi / 2)
	if diff := direction - want; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("direction = %v, want ~%v", direction, want)
	}
}

func TestPopulationUpdateValuesRectifies(t *testing.T) {
	p := NewPopulation(8, 1, false, numx.NewRandom())
	p.Accum.Values[0] = -1
	p.Accum.Values[1] = 3
	p.UpdateValues()
	if p.Next.Values[0] != 0 {
		t.Errorf("got %v for a negative input, want 0", p.Next.Values[0])
	}
	if p.Next.Values[1] != 3 {
		t.Errorf("got %v, want 3", p.Next.Values[1])
	}
}

func TestPopulationNormalizationProducesAUnitPeakBump(t *testing.T) {
	p := NewPopulation(8, 1, true, numx.NewRandom())
	p.NormalizationPeak = 1
	p.NormalizationSpread = 0.5
	p.Accum.Values[0] = 5
	p.UpdateValues()

	peak := numx.Real(0)
	peakIndex := -1
	for i, v := range p.Next.Values {
		if v > peak {
			peak = v
			peakIndex = i
		}
	}
	if peakIndex != 0 {
		t.Errorf("peak landed on neuron %d, want neuron 0 (the only driven one)", peakIndex)
	}
	if diff := peak - 1; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("peak = %v, want 1 (rescaled to NormalizationPeak)", peak)
	}
}

func TestPopulationNormalizationOverride(t *testing.T) {
	p := NewPopulation(8, 1, true, numx.NewRandom())
	p.OverrideActive = true
	p.OverrideDirection = math.Pi
	p.OverrideStrength = 1
	p.NormalizationSpread = 0.5
	p.UpdateValues()

	_, strength := vectorSum(p.Next.Values)
	if strength <= 0 {
		t.Fatalf("expected a nonzero bump from the overridden direction/strength")
	}
}

func TestPopulationInputScalesSource(t *testing.T) {
	src := NewPopulation(4, 1, false, numx.NewRandom())
	copy(src.Current.Values, []numx.Real{1, 2, 3, 4})
	src.ScalingFactor = 2

	dst := NewPopulation(4, 1, false, numx.NewRandom())
	input := &PopulationInput{Efferent: dst.Base, Afferent: src}
	input.AddInputs()

	want := []numx.Real{2, 4, 6, 8}
	for i, v := range dst.Accum.Values {
		if v != want[i] {
			t.Errorf("Accum[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestBorderSensorInputSubtracts(t *testing.T) {
	dst := NewPopulation(3, 1, false, numx.NewRandom())
	sensors := numx.NewVector(3)
	copy(sensors.Values, []numx.Real{0.1, 0.2, 0.3})
	input := &BorderSensorInput{Efferent: dst.Base, BorderSensors: sensors}
	input.AddInputs()

	want := []numx.Real{-0.1, -0.2, -0.3}
	for i, v := range dst.Accum.Values {
		if diff := v - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Accum[%d] = %v, want %v", i, v, want[i])
		}
	}
}
