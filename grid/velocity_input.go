// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// VelocityInput drives a Module with the agent's current self-motion,
// decomposed into Cartesian components: each directional population of
// neurons (north/south/east/west) receives the signed component of
// velocity along its own preferred axis, matching VelocityInput::add_inputs
// in model.cc. navmodel calls SetVelocity once per simulated timestep,
// before Updating every grid module that is wired to move.
type VelocityInput struct {
	netbase.EnableFlag
	Efferent *netbase.Base
	Module   *Module

	velocityX numx.Real
	velocityY numx.Real
}

func (v *VelocityInput) Initialize() {}

// SetVelocity records the Cartesian self-motion velocity to apply on the
// next AddInputs.
func (v *VelocityInput) SetVelocity(x, y numx.Real) {
	v.velocityX = x
	v.velocityY = y
}

func (v *VelocityInput) AddInputs() {
	accum := v.Efferent.Accum.Values
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			var contribution numx.Real
			switch DirectionOf(x, y) {
			case North:
				contribution = v.velocityY
			case South:
				contribution = -v.velocityY
			case East:
				contribution = v.velocityX
			case West:
				contribution = -v.velocityX
			}
			if v.Module.Mode == GainModeVelocity {
				contribution *= v.Module.Gain
			} else {
				contribution *= MaxGain
			}
			contribution *= velocityScale
			accum[CoordsToIndex(x, y)] += contribution
		}
	}
}
