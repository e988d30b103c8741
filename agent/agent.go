package agent

import (
	"github.com/ccnlab/gridnav/navmodel"
	"github.com/ccnlab/gridnav/numx"
	"github.com/ccnlab/gridnav/placegraph"
)

// Input holds the values Agent.Execute reads every call: the agent's
// ground-truth pose, its current heading and speed, a forced-move
// destination, and which reward-id the current episode is
// pursuing.
type Input struct {
	X, Y     numx.Real
	Heading  numx.Real
	Speed    numx.Real
	GotoX    numx.Real
	GotoY    numx.Real
	RewardID int
}

// Output holds the values Agent.Execute writes every call, copied straight
// from the underlying model's output.
type Output struct {
	Heading numx.Real
	Speed   numx.Real
	Halted  bool
}

// Agent is one behavioral state machine driving a navmodel.Model: it sets
// the model's inputs every tick according to its active state's handler,
// steps the model once, and advances to whatever state the handler chose.
// Matches class Agent.
type Agent struct {
	Label string

	Input  Input
	Output Output

	// Parameters, tunable per preset; see presets.go for the eight named
	// combinations spec.md defines.
	ApproachMotorTuning          numx.Real
	ReplayMotorTuning            numx.Real
	ExplorationMotorTuning       numx.Real
	ApproachConfidenceThreshold  numx.Real
	ReplayConfidenceThreshold    numx.Real
	FormPlaceCells               bool
	PerformTopologicalNavigation bool
	ExplorationEndProbability    numx.Real
	TopologicalResetProbability  numx.Real

	activeState       State
	nextState         State
	previousState     State
	nextPreviousState State
	stateImpl         [stateCount]Handler

	model *navmodel.Model
	rng   *numx.Random
}

// New builds an Agent wired to model, with the five navigation-related
// states dispatching to the given handlers (nil leaves that state
// unregistered, so reaching it collapses back to NoState). forced_move and
// receive_reward always use their one standard handler, matching how every
// concrete subclass's constructor wires state_impl. Parameters are seeded
// to the Agent constructor's defaults; presets.go overrides a handful per
// named preset.
func New(model *navmodel.Model, rng *numx.Random, label string,
	initiateNavigation, approachSubgoal, topologicalStep, replayEpisode, exploration Handler) *Agent {
	a := &Agent{
		Label: label,
		model: model,
		rng:   rng,

		ApproachMotorTuning:          0.75,
		ReplayMotorTuning:            0.1,
		ExplorationMotorTuning:       0.1,
		ApproachConfidenceThreshold:  0.05,
		ReplayConfidenceThreshold:    0.2,
		FormPlaceCells:               true,
		PerformTopologicalNavigation: false,
		ExplorationEndProbability:    0.003,
		TopologicalResetProbability:  0.05,
	}

	a.stateImpl[ForcedMove] = forcedMoveHandler{}
	a.stateImpl[ReceiveReward] = receiveRewardHandler{}

	a.stateImpl[InitiateNavigation] = initiateNavigation
	a.stateImpl[ApproachSubgoal] = approachSubgoal
	a.stateImpl[TopologicalStep] = topologicalStep
	a.stateImpl[ReplayEpisode] = replayEpisode
	a.stateImpl[Exploration] = exploration

	return a
}

// ActiveState reports the state Agent.Execute will invoke on its next call.
func (a *Agent) ActiveState() State { return a.activeState }

// Model returns the navmodel.Model this agent drives, so callers (the
// scripting front-end) can read its border sensors and place graph
// directly without Agent re-exposing every field it forwards.
func (a *Agent) Model() *navmodel.Model { return a.model }

// SetActiveState forces the next Execute call to start from state,
// bypassing whatever transition its handlers would otherwise have chosen.
// Used by the scripting front-end's goto, trigger-reward and seek-reward
// commands to drop the agent directly into forced_move, receive_reward or
// initiate_navigation.
func (a *Agent) SetActiveState(state State) { a.activeState = state }

// Execute runs one tick: resets the model's and place graph's inputs to
// their per-tick defaults, invokes the active state's handler (which may
// override those defaults and always chooses next_state), steps the model,
// copies its outputs back, and advances state bookkeeping. Matches
// Agent::execute exactly.
func (a *Agent) Execute() {
	a.model.Input.Heading = a.Input.Heading
	a.model.Input.Speed = a.Input.Speed
	a.model.Input.MotorMode = navmodel.GridDecoderMode
	a.model.Input.MotorTuning = a.ApproachMotorTuning
	a.model.Input.MotorOffset = 0
	a.model.Input.ConfidenceThreshold = a.ApproachConfidenceThreshold

	a.model.PlaceGraph.Input.X = a.Input.X
	a.model.PlaceGraph.Input.Y = a.Input.Y
	a.model.PlaceGraph.Input.RewardID = a.Input.RewardID
	a.model.PlaceGraph.Input.SaveReward = false
	a.model.PlaceGraph.Input.FormPlaceCells = a.FormPlaceCells
	a.model.PlaceGraph.Input.WeakenSynapse = false
	a.model.PlaceGraph.Input.ResetReplayTo = placegraph.MaintainCurrentNode
	a.model.PlaceGraph.Input.PropagateReplayTowards = placegraph.MaintainCurrentNode

	a.nextState = a.activeState
	currentHandler := a.stateImpl[a.activeState]
	if currentHandler == nil {
		panic("agent: no handler registered for active state")
	}

	currentHandler.Hook(a)
	a.model.SimulateTimestep()

	a.Output.Heading = a.model.Output.Heading
	a.Output.Speed = a.model.Output.Speed
	a.Output.Halted = a.model.Output.Halted

	a.nextPreviousState = a.previousState
	a.previousState = a.activeState
	a.activeState = a.nextState

	if a.stateImpl[a.activeState] == nil {
		a.activeState = NoState
	}
}
