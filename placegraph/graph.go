// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package placegraph implements the topological map of place cells the
// agent builds as it explores: a graph of locations connected by
// synapses, with a breadth-first "replay" pointer used to find a path back
// to a remembered reward and to transfer the grid-cell state recorded at a
// subgoal back into the grid decoder. Grounded on original_source/graph.h
// and graph.cc.
package placegraph

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"cogentcore.org/core/mat32"
	"github.com/c2h5oh/datasize"

	"github.com/ccnlab/gridnav/numx"
)

// connectionStrength is how many times a synapse between two neighboring
// place cells must be weakened before it is removed, matching
// PLACE_CONNECTION_STRENGTH.
const connectionStrength = 2

// ReplayMode selects what a replay-related Graph.Update request should do
// with the replay pointer: leave it alone, reset or aim it at the goal
// cell, or reset or aim it at the agent's current cell.
type ReplayMode int

const (
	MaintainCurrentNode ReplayMode = iota
	GoalNode
	AgentNode
)

// GridState is the grid-cell population a place cell snapshots when it is
// formed, and restores into when it becomes the active replay target. It
// is implemented by navmodel.Model; Graph depends only on this narrow
// interface to avoid importing navmodel, which itself owns a Graph.
type GridState interface {
	ModuleCount() int
	CaptureModuleActivity(module int) *numx.Vector
	RestoreModuleActivity(module int, activity *numx.Vector)
}

// neighborEdge is one directed synapse record: a neighboring cell and how
// many more times it can be weakened before it disappears.
type neighborEdge struct {
	cell     *Cell
	strength int
}

// Cell is one place cell: a remembered (x, y) location, its synapses to
// nearby cells, and the grid-cell population snapshot taken the moment it
// was formed.
type Cell struct {
	Index int
	X, Y  numx.Real

	neighbors []neighborEdge
	gridState []*numx.Vector

	bfsPredecessor *Cell
	replaySource   *Cell
}

func newCell(index int, x, y numx.Real, state GridState) *Cell {
	c := &Cell{Index: index, X: x, Y: y}
	c.gridState = make([]*numx.Vector, state.ModuleCount())
	for i := range c.gridState {
		c.gridState[i] = state.CaptureModuleActivity(i).Clone()
	}
	return c
}

// transferGridStateToDecoder restores this cell's captured grid-cell
// activity into every module's fixed (non-path-integrating) copy, matching
// PlaceCell::transfer_grid_state_to_decoder.
func (c *Cell) transferGridStateToDecoder(state GridState) {
	for i, snapshot := range c.gridState {
		state.RestoreModuleActivity(i, snapshot)
	}
}

// weakenNeighbor decrements the strength of the synapse to neighbor by
// one, removing it entirely once it reaches zero, matching
// PlaceCell::weaken_neighbor.
func (c *Cell) weakenNeighbor(neighbor *Cell) {
	for i := range c.neighbors {
		if c.neighbors[i].cell != neighbor {
			continue
		}
		c.neighbors[i].strength--
		if c.neighbors[i].strength <= 0 {
			c.neighbors = append(c.neighbors[:i], c.neighbors[i+1:]...)
		}
		return
	}
}

// Distance returns the Euclidean distance from this cell to (x, y).
func (c *Cell) Distance(x, y numx.Real) numx.Real {
	dx, dy := x-c.X, y-c.Y
	return mat32.Hypot(dx, dy)
}

// Direction returns the heading, from (x, y), towards this cell, matching
// PlaceCell::direction.
func (c *Cell) Direction(x, y numx.Real) numx.Real {
	return mat32.Atan2(c.Y-y, c.X-x)
}

// Input holds the values Graph.Update reads every call: the agent's
// current location, the reward bookkeeping for the active episode, and
// which replay operations (if any) to perform this step.
type Input struct {
	X, Y       numx.Real
	RewardID   int
	SaveReward bool

	FormPlaceCells         bool
	WeakenSynapse          bool
	ResetReplayTo          ReplayMode
	PropagateReplayTowards ReplayMode
}

// Output holds the values Graph.Update computes every call.
type Output struct {
	AtGoal           bool
	SubgoalVisible   bool
	SubgoalDirection numx.Real

	AtSubgoal        bool
	ReplayTerminated bool
}

// Graph is the agent's full topological map: every place cell formed so
// far, the synapses between them, and the three cursors (agent, reward,
// replay) PlaceGraph::update advances.
type Graph struct {
	PlaceCellRadius numx.Real

	Input  Input
	Output Output

	Cells           []*Cell
	RewardLocations map[int]*Cell

	AgentCell  *Cell
	RewardCell *Cell
	ReplayCell *Cell
}

// NewGraph builds an empty graph with the given place-cell radius: the
// distance within which an existing place cell is reused rather than
// forming a new one (more precisely, new cells form once the nearest
// existing cell is further than 2x this radius away).
func NewGraph(placeCellRadius numx.Real) *Graph {
	return &Graph{
		PlaceCellRadius: placeCellRadius,
		RewardLocations: make(map[int]*Cell),
	}
}

// Update runs one full place-graph step: visiting (and possibly forming) a
// cell at the current location, connecting it to the previously visited
// cell, recording a reward location if requested, weakening a replay-path
// synapse if requested, advancing the replay cursor if requested, and
// recomputing every output flag. Matches PlaceGraph::update exactly.
func (g *Graph) Update(state GridState) {
	var closestCell *Cell
	closestDist := numx.Real(math.Inf(1))
	for _, cell := range g.Cells {
		d := cell.Distance(g.Input.X, g.Input.Y)
		if closestCell == nil || d < closestDist {
			closestCell = cell
			closestDist = d
		}
	}
	if g.Input.FormPlaceCells && (closestCell == nil || closestDist > 2*g.PlaceCellRadius) {
		newCell := newCell(len(g.Cells), g.Input.X, g.Input.Y, state)
		g.Cells = append(g.Cells, newCell)
		closestCell = newCell
	}

	if g.AgentCell != nil && g.AgentCell != closestCell {
		alreadyConnected := false
		for _, edge := range closestCell.neighbors {
			if edge.cell == g.AgentCell {
				alreadyConnected = true
				break
			}
		}
		if !alreadyConnected {
			closestCell.neighbors = append(closestCell.neighbors, neighborEdge{g.AgentCell, connectionStrength})
			g.AgentCell.neighbors = append(g.AgentCell.neighbors, neighborEdge{closestCell, connectionStrength})
		}
	}
	g.AgentCell = closestCell

	if g.Input.SaveReward {
		if g.Input.RewardID <= 0 {
			panic("placegraph: SaveReward requires a positive RewardID")
		}
		g.RewardLocations[g.Input.RewardID] = g.AgentCell
	}

	if g.Input.WeakenSynapse {
		if g.ReplayCell != nil && g.ReplayCell.replaySource != nil {
			g.ReplayCell.weakenNeighbor(g.ReplayCell.replaySource)
			g.ReplayCell.replaySource.weakenNeighbor(g.ReplayCell)
		}
	}

	g.Output.ReplayTerminated = false

	performReplayUpdate := g.Input.ResetReplayTo != MaintainCurrentNode ||
		g.Input.PropagateReplayTowards != MaintainCurrentNode

	if performReplayUpdate {
		if g.Input.RewardID <= 0 {
			panic("placegraph: replay update requires a positive RewardID")
		}
		rewardCell, ok := g.RewardLocations[g.Input.RewardID]
		if !ok {
			panic("placegraph: replay update requested for an unrecorded reward id")
		}
		g.RewardCell = rewardCell

		if g.Input.ResetReplayTo != MaintainCurrentNode {
			if g.Input.ResetReplayTo == GoalNode {
				g.ReplayCell = g.RewardCell
			} else {
				g.ReplayCell = g.AgentCell
			}
		}

		if g.Input.PropagateReplayTowards != MaintainCurrentNode {
			var bfsStart *Cell
			if g.Input.PropagateReplayTowards == GoalNode {
				bfsStart = g.RewardCell
			} else {
				bfsStart = g.AgentCell
			}
			bfsGoal := g.ReplayCell

			for _, cell := range g.Cells {
				cell.bfsPredecessor = nil
				cell.replaySource = nil
			}
			bfsStart.bfsPredecessor = bfsStart
			fifo := []*Cell{bfsStart}
			for len(fifo) > 0 {
				current := fifo[0]
				fifo = fifo[1:]
				for _, edge := range current.neighbors {
					if edge.cell.bfsPredecessor == nil {
						fifo = append(fifo, edge.cell)
						edge.cell.bfsPredecessor = current
					}
				}
			}

			if bfsGoal.bfsPredecessor != nil {
				bfsGoal.bfsPredecessor.replaySource = bfsGoal
				g.ReplayCell = bfsGoal.bfsPredecessor
				g.Output.ReplayTerminated = g.ReplayCell == g.ReplayCell.bfsPredecessor
			} else {
				g.Output.ReplayTerminated = true
			}
		}

		g.ReplayCell.transferGridStateToDecoder(state)
	}

	g.Output.AtGoal = g.RewardCell != nil &&
		g.RewardCell.Distance(g.Input.X, g.Input.Y) <= g.PlaceCellRadius
	g.Output.AtSubgoal = g.ReplayCell != nil &&
		g.ReplayCell.Distance(g.Input.X, g.Input.Y) <= g.PlaceCellRadius
	g.Output.SubgoalVisible = g.ReplayCell != nil &&
		g.ReplayCell.Distance(g.Input.X, g.Input.Y) <= 3*g.PlaceCellRadius
	if g.Output.SubgoalVisible {
		g.Output.SubgoalDirection = g.ReplayCell.Direction(g.Input.X, g.Input.Y)
	} else {
		g.Output.SubgoalDirection = 0
	}
}

// SizeReport returns a string reporting the number of cells, synapses, and
// total memory footprint of the graph, including the grid-state snapshot
// every cell carries.
func (g *Graph) SizeReport() string {
	var b strings.Builder
	edges := 0
	edgeMem := 0
	snapshotMem := 0
	for _, cell := range g.Cells {
		edges += len(cell.neighbors)
		edgeMem += len(cell.neighbors) * int(unsafe.Sizeof(neighborEdge{}))
		for _, snapshot := range cell.gridState {
			snapshotMem += len(snapshot.Values) * int(unsafe.Sizeof(numx.Real(0)))
		}
	}
	cellMem := len(g.Cells)*int(unsafe.Sizeof(Cell{})) + edgeMem + snapshotMem
	fmt.Fprintf(&b, "Cells: %d\tCellMem: %v\n", len(g.Cells), datasize.ByteSize(cellMem).HumanReadable())
	fmt.Fprintf(&b, "Synapses: %d\tSynMem: %v\n", edges, datasize.ByteSize(edgeMem).HumanReadable())
	fmt.Fprintf(&b, "Grid snapshots: \tSnapshotMem: %v\n", datasize.ByteSize(snapshotMem).HumanReadable())
	return b.String()
}
