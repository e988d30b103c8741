// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numx

import (
	"github.com/emer/emergent/v2/erand"
)

// Random is the explicit, constructor-passed stand-in for the original's
// process-wide `Random` class (numerical.h). Every network that needs
// randomness is handed one of these, rather than reaching for a global —
// see spec.md's "Global RNG" design note. A single process-wide instance is
// constructed only at the cmd/gridnav entry point.
type Random struct {
	uniform erand.RndParams
	normal  erand.RndParams
}

// NewRandom builds a Random ready for use. The distributions below are the
// erand equivalents of the original std::uniform_real_distribution<real>()
// (range [0,1), expressed as Mean=0.5, Var=0.5) and
// std::normal_distribution<real>() (Mean=0, Var=1).
func NewRandom() *Random {
	return &Random{
		uniform: erand.RndParams{Dist: erand.Uniform, Mean: 0.5, Var: 0.5},
		normal:  erand.RndParams{Dist: erand.Gaussian, Mean: 0, Var: 1},
	}
}

// Uniform returns a value drawn uniformly from [0, 1).
func (r *Random) Uniform() Real { return Real(r.uniform.Gen(-1)) }

// Normal returns a value drawn from the standard normal distribution.
func (r *Random) Normal() Real { return Real(r.normal.Gen(-1)) }
