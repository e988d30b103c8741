// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numx

import "testing"

func TestRandomUniformRange(t *testing.T) {
	r := NewRandom()
	for i := 0; i < 1000; i++ {
		v := r.Uniform()
		if v < 0 || v >= 1 {
			t.Fatalf("Uniform() = %v, want a value in [0, 1)", v)
		}
	}
}

func TestRandomNormalVaries(t *testing.T) {
	r := NewRandom()
	first := r.Normal()
	differs := false
	for i := 0; i < 100; i++ {
		if r.Normal() != first {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatalf("Normal() returned the same value 100 times in a row")
	}
}
