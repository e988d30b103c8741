// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package placegraph

import (
	"testing"

	"github.com/ccnlab/gridnav/numx"
)

// fakeGridState is a minimal GridState that snapshots a single module's
// activity as a fixed-size zero vector, enough to exercise Graph.Update
// without pulling in navmodel.
type fakeGridState struct {
	modules []*numx.Vector
}

func newFakeGridState(moduleCount int) *fakeGridState {
	g := &fakeGridState{modules: make([]*numx.Vector, moduleCount)}
	for i := range g.modules {
		g.modules[i] = numx.NewVector(4)
	}
	return g
}

func (g *fakeGridState) ModuleCount() int { return len(g.modules) }

func (g *fakeGridState) CaptureModuleActivity(i int) *numx.Vector { return g.modules[i] }

func (g *fakeGridState) RestoreModuleActivity(i int, v *numx.Vector) { g.modules[i] = v }

func TestGraphFormsCellsAndConnectsThem(t *testing.T) {
	g := NewGraph(7)
	state := newFakeGridState(1)

	g.Input = Input{X: 0, Y: 0, FormPlaceCells: true}
	g.Update(state)
	if len(g.Cells) != 1 {
		t.Fatalf("got %d cells after first update, want 1", len(g.Cells))
	}

	g.Input = Input{X: 20, Y: 0, FormPlaceCells: true}
	g.Update(state)
	if len(g.Cells) != 2 {
		t.Fatalf("got %d cells after second update, want 2", len(g.Cells))
	}
	if len(g.Cells[0].neighbors) != 1 || len(g.Cells[1].neighbors) != 1 {
		t.Fatalf("expected the two cells to be connected to each other")
	}

	g.Input = Input{X: 20.5, Y: 0, FormPlaceCells: true}
	g.Update(state)
	if len(g.Cells) != 2 {
		t.Fatalf("got %d cells after a nearby update, want no new cell", len(g.Cells))
	}
}

// TestGraphReplayWeakeningRemovesEdge builds a three-cell chain
// A (0,0) -- B (20,0) -- C (40,0), walks the replay cursor from the goal
// cell C back to the agent's cell A one hop at a time (as
// ReplayEpisodeState does every tick), and checks that weakening the
// A-B synapse connectionStrength times, once per completed replay
// episode, removes it.
func TestGraphReplayWeakeningRemovesEdge(t *testing.T) {
	g := NewGraph(7)
	state := newFakeGridState(1)

	// Build the chain by walking forward through it, then back, so that
	// every cell transition the graph sees already has an edge and no
	// incidental A-C shortcut gets created by the teleport in step 2.
	g.Input = Input{X: 0, Y: 0, FormPlaceCells: true}
	g.Update(state)
	g.Input = Input{X: 20, Y: 0, FormPlaceCells: true}
	g.Update(state)
	g.Input = Input{X: 40, Y: 0, FormPlaceCells: true, SaveReward: true, RewardID: 1}
	g.Update(state)
	g.Input = Input{X: 20, Y: 0}
	g.Update(state)
	g.Input = Input{X: 0, Y: 0}
	g.Update(state)

	a, b := g.Cells[0], g.Cells[1]

	initialStrength := func() int {
		for _, edge := range a.neighbors {
			if edge.cell == b {
				return edge.strength
			}
		}
		return 0
	}
	if s := initialStrength(); s != connectionStrength {
		t.Fatalf("got initial A-B strength %d, want %d", s, connectionStrength)
	}

	edgeExists := func() bool {
		for _, edge := range a.neighbors {
			if edge.cell == b {
				return true
			}
		}
		return false
	}

	for episode := 0; episode < connectionStrength; episode++ {
		// Reset the replay cursor to the goal cell C.
		g.Input = Input{X: 0, Y: 0, RewardID: 1, ResetReplayTo: GoalNode}
		g.Update(state)

		// Walk it back towards the agent one hop per tick until it
		// reaches A and the walk terminates there.
		for !g.Output.ReplayTerminated {
			g.Input = Input{X: 0, Y: 0, RewardID: 1, PropagateReplayTowards: AgentNode}
			g.Update(state)
		}
		if g.ReplayCell != a {
			t.Fatalf("episode %d: replay settled on cell %d, want cell %d", episode, g.ReplayCell.Index, a.Index)
		}

		// One more tick weakens the synapse back to wherever replay came
		// from, matching ReplayEpisodeState's weaken-then-explore exit.
		g.Input = Input{X: 0, Y: 0, RewardID: 1, WeakenSynapse: true, PropagateReplayTowards: AgentNode}
		g.Update(state)
	}

	if edgeExists() {
		t.Fatalf("expected the A-B edge to be removed after weakening it %d times", connectionStrength)
	}
}
