// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/netbase"
	"github.com/ccnlab/gridnav/numx"
)

// foldedDistanceSquared folds (x, y) into the half-sheet closest to the
// origin before squaring, so the same weight value is reused for a point
// and its mirror image across the torus, matching every get_weight
// override in mec.cc and mecdiff.cc.
func foldedDistanceSquared(x, y, size int) numx.Real {
	if x > size/2 {
		x = size - x
	}
	if y > size/2 {
		y = size - y
	}
	return numx.Real(x*x + y*y)
}

// recurrentWeight is the grid module's center-surround weight:
// exp(-gamma*d^2) - exp(-beta*d^2), matching MecRecurrentInput::get_weight.
func recurrentWeight(x, y int) numx.Real {
	d2 := foldedDistanceSquared(x, y, Size)
	return mat32.Exp(-gamma*d2) - mat32.Exp(-beta*d2)
}

// recurrentShift returns the coordinates a neuron at (x, y) samples its
// recurrent input from: its own position, displaced by one cell in its
// preferred direction, matching MecRecurrentInput::get_shift.
func recurrentShift(x, y int) (int, int) {
	switch DirectionOf(x, y) {
	case North:
		y--
	case South:
		y++
	case East:
		x--
	case West:
		x++
	}
	return numx.ModuloInt(x, Size), numx.ModuloInt(y, Size)
}

// NewRecurrentInput builds the fixed center-surround connectivity every
// driven grid Module carries, wired as a netbase.ShiftedMaskInput whose
// afferent and efferent are the same sheet.
func NewRecurrentInput(m *Module) *netbase.ShiftedMaskInput {
	r := &netbase.ShiftedMaskInput{
		Efferent:     m.Base,
		Afferent:     m.Base,
		AfferentSize: Size,
		Weight:       recurrentWeight,
		Shift: func(neuron int) (int, int) {
			return recurrentShift(IndexToX(neuron), IndexToY(neuron))
		},
	}
	r.SetActive(true)
	return r
}
