// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numx

import "cogentcore.org/core/mat32"

// ModuloInt returns the non-negative remainder of value modulo period, for
// any signed value, matching the original's Periodic::modulo.
func ModuloInt(value, period int) int {
	m := value % period
	if m < 0 {
		m += period
	}
	return m
}

// ModuloReal is the real-valued equivalent of ModuloInt, used to wrap a
// heading into [0, 2*pi).
func ModuloReal(value, period Real) Real {
	return value - period*mat32.Floor(value/period)
}
