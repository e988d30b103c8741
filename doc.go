// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gridnav is the top level of a grid-cell / place-cell spatial
navigation simulator. A simulated rodent moves through a 2D arena and learns
reward locations during exploration, then navigates back to them using
grid-cell-decoded vectors, falling back to topological replay stepping when
vector navigation stalls.

The repository is organized into the following sub-packages:

* numx: aligned vectors, matrices, the process RNG, and periodic (toroidal)
arithmetic shared by every network below.

* netbase: the generic double-buffered neural layer and additive-input
abstraction that every network in this repository embeds.

* grid: the medial entorhinal cortex (MEC) continuous-attractor grid module,
its convolved readout, and the bump tracker used to follow the attractor's
activity peak.

* mecdiff: the grid-difference layer that scores alignment between the
current and goal grid states at sampled (x, y, direction) offsets.

* motor: directional population codes, including the normalization and
border-inhibition pipeline that turns grid-difference support into a heading
and a confidence.

* placegraph: place cells, their synapses, and BFS-based replay.

* navmodel: owns all of the networks above and sequences one simulated
timestep, producing a heading, speed, and halted flag.

* agent: the navigation state machine (forced move, replay, topological
step, exploration, ...) and the preset parameter table for the eight agent
variants.

* arena: border-sensor and fence-crossing geometry.

* sim: the script-driven simulation loop that owns ground-truth coordinates
and drives the agent.

* cmd/gridnav: the command-line entry point.
*/
package gridnav
