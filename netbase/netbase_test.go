// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netbase

import (
	"testing"

	"github.com/ccnlab/gridnav/numx"
)

// copyAccumRules is a minimal Rules implementation: Next is just a copy of
// Accum, enough to exercise Base's accumulate/commit lifecycle without a
// real network's activation function.
type copyAccumRules struct{ base *Base }

func (r *copyAccumRules) UpdateValues() { r.base.Next.CopyFrom(r.base.Accum) }

type constantInput struct {
	EnableFlag
	efferent *Base
	value    numx.Real
}

func (c *constantInput) Initialize() {}
func (c *constantInput) AddInputs() {
	for i := range c.efferent.Accum.Values {
		c.efferent.Accum.Values[i] += c.value
	}
}

func TestBaseUpdateAndCommit(t *testing.T) {
	rng := numx.NewRandom()
	base := NewBase(3, rng, nil)
	base.rules = &copyAccumRules{base: base}
	input := &constantInput{efferent: base, value: 2}
	base.AddInput(input)

	base.UpdateAndCommit()
	for i, v := range base.Current.Values {
		if v != 2 {
			t.Errorf("Current[%d] = %v, want 2", i, v)
		}
	}

	input.SetActive(false)
	base.UpdateAndCommit()
	for i, v := range base.Current.Values {
		if v != 0 {
			t.Errorf("Current[%d] = %v after disabling the input, want 0", i, v)
		}
	}
}

func TestEnableFlagDefaultsActive(t *testing.T) {
	var f EnableFlag
	if !f.Active() {
		t.Fatalf("EnableFlag zero value should be active")
	}
	f.SetActive(false)
	if f.Active() {
		t.Fatalf("SetActive(false) should make Active() false")
	}
}

func TestShiftedMaskInputSumsAfferentSheet(t *testing.T) {
	rng := numx.NewRandom()
	afferent := NewBase(4, rng, nil)
	afferent.rules = &copyAccumRules{base: afferent}
	copy(afferent.Current.Values, []numx.Real{1, 2, 3, 4})

	efferent := NewBase(2, rng, nil)
	efferent.rules = &copyAccumRules{base: efferent}

	shifts := [][2]int{{0, 0}, {1, 1}}
	mask := &ShiftedMaskInput{
		Efferent:     efferent,
		Afferent:     afferent,
		AfferentSize: 2,
		Weight:       func(x, y int) numx.Real { return 1 },
		Shift:        func(i int) (int, int) { return shifts[i][0], shifts[i][1] },
	}
	efferent.AddInput(mask)

	efferent.Update()
	want := afferent.Current.Sum()
	for i, v := range efferent.Accum.Values {
		if v != want {
			t.Errorf("Accum[%d] = %v, want %v (the full afferent sum, regardless of shift)", i, v, want)
		}
	}
}
