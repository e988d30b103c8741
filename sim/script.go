// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/mat32"

	"github.com/ccnlab/gridnav/agent"
	"github.com/ccnlab/gridnav/arena"
	"github.com/ccnlab/gridnav/numx"
)

// scanner wraps a whitespace-delimited token reader over the script
// source, plus the ability to read the remainder of the current line —
// needed by the handful of commands (set-title, set-trial-phase, ...)
// whose last argument is free text rather than a single token.
type scanner struct {
	r *bufio.Reader
}

func newScanner(r io.Reader) *scanner { return &scanner{r: bufio.NewReader(r)} }

// token reads the next whitespace-delimited token, skipping any leading
// whitespace (including newlines), matching istream's `>>` operator. It
// returns ok=false at end of input.
func (s *scanner) token() (string, bool) {
	var sb strings.Builder
	seenAny := false
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			break
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if seenAny {
				break
			}
			continue
		}
		seenAny = true
		sb.WriteRune(r)
	}
	if !seenAny {
		return "", false
	}
	return sb.String(), true
}

// restOfLine reads everything up to (and consuming) the next newline,
// matching std::getline called right after a prior token() call: token()
// already consumed the single whitespace separator that terminated it, so
// unlike the original's getline (which must strip that separator itself),
// this needs no further trimming.
func (s *scanner) restOfLine() string {
	line, _ := s.r.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func (s *scanner) real() (numx.Real, bool) {
	tok, ok := s.token()
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false
	}
	return numx.Real(v), true
}

func (s *scanner) int() (int, bool) {
	tok, ok := s.token()
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Run reads and executes script commands from r until input is exhausted
// or an unknown command is seen, matching Simulation::run. It returns 1 on
// an unrecognized script command or on a set-arena/set-fence WKT string
// that fails to parse, and 0 otherwise.
func (s *Runner) Run(r io.Reader) int {
	sc := newScanner(r)

	s.globalTimestep = 0
	s.x, s.y = 0, 0
	s.heading, s.speed = 0, 0
	s.rewardID = 0

	lastCommand := ""
	repetitions := 1
	for {
		command, ok := sc.token()
		if !ok {
			break
		}
		if command == lastCommand {
			repetitions++
		} else {
			repetitions = 1
		}
		if repetitions > 1 {
			fmt.Fprintf(os.Stderr, "Running %s (%dx)\n", command, repetitions)
		} else {
			fmt.Fprintf(os.Stderr, "Running %s\n", command)
		}

		switch command {
		case "goto":
			gotoX, _ := sc.real()
			gotoY, _ := sc.real()
			s.gotoX, s.gotoY = gotoX, gotoY
			gotoDistance := mat32.Hypot(s.gotoX-s.x, s.gotoY-s.y)
			if gotoDistance >= distancePerTimestep {
				s.Agent.SetActiveState(agent.ForcedMove)
				for s.step() {
				}
			}

		case "place-agent":
			s.x, _ = sc.real()
			s.y, _ = sc.real()
			s.heading, _ = sc.real()

		case "trigger-reward":
			name, _ := sc.token()
			s.rewardID = s.getRewardID(name)
			s.Agent.SetActiveState(agent.ReceiveReward)
			for s.step() {
			}
			s.rewardID = 0

		case "seek-reward":
			name, _ := sc.token()
			timestepLimit, _ := sc.int()
			s.rewardID = s.getRewardID(name)
			s.Agent.SetActiveState(agent.InitiateNavigation)

			for timestepLimit > 0 && s.step() && !s.Agent.Model().PlaceGraph.Output.AtGoal {
				timestepLimit--
			}

			succeeded := s.Agent.Model().PlaceGraph.Output.AtGoal
			result := "NO"
			if succeeded {
				result = "YES"
			}
			fmt.Fprintf(os.Stderr, "Successful in reaching reward %q? %s\n", name, result)

			rewardCell := s.Agent.Model().PlaceGraph.RewardLocations[s.rewardID]
			finalDistance := mat32.Hypot(s.x-rewardCell.X, s.y-rewardCell.Y)
			fmt.Fprintf(os.Stderr, "(Final distance to reward %q was %v)\n", name, finalDistance)

			s.rewardID = 0

		case "set-arena":
			wkt := sc.restOfLine()
			a, err := arena.LoadArena(wkt)
			if err != nil {
				fmt.Fprintf(os.Stderr, "set-arena: %v\n", err)
				return 1
			}
			s.arena = a

		case "set-fence":
			name, _ := sc.token()
			wkt := sc.restOfLine()
			a, err := arena.LoadArena(wkt)
			if err != nil {
				fmt.Fprintf(os.Stderr, "set-fence: %v\n", err)
				return 1
			}
			s.fences[name] = a

		case "set-trial-phase":
			_, _ = sc.token() // phase color: plot metadata only
			phaseTitle := sc.restOfLine()
			s.reportPathLengthAtEndOfTrialPhase()
			s.pathLengthInCurrentPhase = 0
			s.currentTrialPhase = phaseTitle

		case "set-title":
			sc.restOfLine() // plot metadata only

		case "set-origin":
			// plot metadata only

		case "set-arena-size":
			sc.real() // plot metadata only

		case "set-scale-bars":
			sc.int() // plot metadata only

		case "add-label":
			sc.real()
			sc.real()
			sc.restOfLine() // plot metadata only

		default:
			fmt.Fprintf(os.Stderr, "Unknown script command \"%s\"!\n", command)
			return 1
		}

		lastCommand = command
	}

	s.reportPathLengthAtEndOfTrialPhase()
	return 0
}
