// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gridnav runs a scripted grid-cell / place-cell navigation agent
// against a script of simulation commands, read from stdin or a file.
// Grounded on original_source/main.cc.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ccnlab/gridnav/agent"
	"github.com/ccnlab/gridnav/grid"
	"github.com/ccnlab/gridnav/navmodel"
	"github.com/ccnlab/gridnav/numx"
	"github.com/ccnlab/gridnav/sim"
)

func usage() int {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Usage: %s --modules=N --agent=A OPTIONS...\n", os.Args[0])
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  --modules=N\t\tUse N grid modules (mandatory).")
	fmt.Fprintln(os.Stderr, "  --agent=A\t\tUse A as the agent type (mandatory). Valid options:")
	fmt.Fprintln(os.Stderr, "           \t\t  vector")
	fmt.Fprintln(os.Stderr, "           \t\t  deflect")
	fmt.Fprintln(os.Stderr, "           \t\t  combined")
	fmt.Fprintln(os.Stderr, "           \t\t  narrow")
	fmt.Fprintln(os.Stderr, "           \t\t  strict")
	fmt.Fprintln(os.Stderr, "           \t\t  noresume")
	fmt.Fprintln(os.Stderr, "           \t\t  notopo")
	fmt.Fprintln(os.Stderr, "           \t\t  place")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  --script=S\t\tUse file S as the simulation script instead of stdin.")
	fmt.Fprintln(os.Stderr, "  --live-plot\t\tAccepted for compatibility; no plots are produced.")
	fmt.Fprintln(os.Stderr, "  --final-plot\t\tAccepted for compatibility; no plots are produced.")
	fmt.Fprintln(os.Stderr, "  --lite-plot\t\tAccepted for compatibility; no plots are produced.")
	fmt.Fprintln(os.Stderr, "  --field-size=N\tUse N as the place field radius.")
	return 1
}

func main() {
	os.Exit(run())
}

func run() int {
	moduleCount := flag.Int("modules", 0, "number of grid modules (mandatory, > 0)")
	agentType := flag.String("agent", "", "agent type (mandatory)")
	scriptSource := flag.String("script", "", "script file to read commands from (default: stdin)")
	fieldSize := flag.Float64("field-size", 7.0, "place field radius")
	livePlot := flag.Bool("live-plot", false, "accepted for compatibility; no plots are produced")
	finalPlot := flag.Bool("final-plot", false, "accepted for compatibility; no plots are produced")
	litePlot := flag.Bool("lite-plot", false, "accepted for compatibility; no plots are produced")
	flag.Parse()

	if *moduleCount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: Module count (--modules=N) must be greater than zero.")
		return usage()
	}

	rng := numx.NewRandom()
	modelConf := navmodel.Config{
		ModuleCount:             *moduleCount,
		GainMode:                grid.GainModePoisson,
		GainRatio:               1.5,
		InitialGain:             grid.MaxGain,
		AlternativeMotorScaling: false,
		SimplifiedMecDiff:       false,
		DirectionSamples:        28,
		XYSamples:               9,
		MecDiffOffset:           7,
		SensorCount:             72,
		SensorRange:             25.0,
		PlaceCellRadius:         numx.Real(*fieldSize),
		InternalMotorTuning:     0.1,
	}
	model := navmodel.NewModel(modelConf, rng)

	preset, err := agent.NewPreset(agent.Preset(*agentType), model, rng)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: Invalid agent type.")
		return usage()
	}

	fmt.Fprintf(os.Stderr, "Module count: %d\n", *moduleCount)
	fmt.Fprintf(os.Stderr, "Agent type: %s\n", *agentType)
	fmt.Fprintf(os.Stderr, "Place field radius: %v\n", *fieldSize)
	fmt.Fprint(os.Stderr, model.PlaceGraph.SizeReport())

	runner := sim.New(preset, sim.Config{
		LivePlot:  *livePlot,
		FinalPlot: *finalPlot,
		LitePlot:  *litePlot,
	})

	model.Settle()

	script := os.Stdin
	if *scriptSource != "" {
		f, err := os.Open(*scriptSource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		script = f
	}

	return runner.Run(script)
}
