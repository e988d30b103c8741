// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motor

import (
	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// PopulationInput feeds one Population's current activity, scaled by its
// ScalingFactor, into another: the link that chains mec_motor populations
// into final_motor, and chains the border-inhibition pipeline together,
// matching MotorMotorInput.
type PopulationInput struct {
	netbase.EnableFlag
	Efferent *netbase.Base
	Afferent *Population
}

func (i *PopulationInput) Initialize() {}

func (i *PopulationInput) AddInputs() {
	accum := i.Efferent.Accum.Values
	src := i.Afferent.Current.Values
	scale := i.Afferent.ScalingFactor
	for d := range accum {
		accum[d] += src[d] * scale
	}
}

// BorderSensorInput subtracts a ray of border-proximity sensor activity
// from a population's ring, one sensor ray per direction sample, matching
// BorderMotorInput. It is how the agent's approach direction gets
// inhibited away from nearby walls.
type BorderSensorInput struct {
	netbase.EnableFlag
	Efferent      *netbase.Base
	BorderSensors *numx.Vector
}

func (i *BorderSensorInput) Initialize() {}

func (i *BorderSensorInput) AddInputs() {
	accum := i.Efferent.Accum.Values
	sensors := i.BorderSensors.Values
	for d := range accum {
		accum[d] -= sensors[d]
	}
}
