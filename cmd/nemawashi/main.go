// SPDX-License-Identifier: MIT

// Command nemawashi loads a scenario, reports the consensus and the influence
// ranking, runs the planned nomikai events and reports the consensus again.
//
//	nemawashi -scenario board.yaml [-connected] [-debug]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"

	"github.com/tsuyama1990/nemawashi/engine"
	"github.com/tsuyama1990/nemawashi/scenario"
)

func main() {
	scenarioFlag := flag.String("scenario", "", "path to a scenario YAML file")
	connectedFlag := flag.Bool("connected", false, "fail unless the network is weakly connected")
	debugFlag := flag.Bool("debug", false, "log per-call details")
	flag.Parse()

	if *scenarioFlag == "" || flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -scenario <file.yaml> [-connected] [-debug]\n", os.Args[0])
		os.Exit(2)
	}

	plog := pterm.DefaultLogger
	if *debugFlag {
		plog = *plog.WithLevel(pterm.LogLevelDebug)
	}
	logger := slog.New(pterm.NewSlogHandler(&plog))

	if err := run(*scenarioFlag, *connectedFlag, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(path string, connected bool, logger *slog.Logger) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	e, err := engine.New(sc.Config, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	net := sc.Network

	pterm.DefaultHeader.WithFullWidth().Println("nemawashi")
	pterm.Info.Printfln("%d stakeholders, %s backend, connected: %t",
		net.Len(), backend(sc.Config, net.Len()), e.IsConnected(net))

	solve := e.Solve
	if connected {
		solve = e.SolveConnected
	}
	before, err := solve(net)
	if err != nil {
		return err
	}
	centrality, err := e.Centrality(net)
	if err != nil {
		return err
	}

	out, err := e.ApplyEvents(net, sc.Events)
	if err != nil {
		return err
	}
	after, err := solve(out.Network)
	if err != nil {
		return err
	}

	table, err := renderOpinions(net.Names(), before, after)
	if err != nil {
		return err
	}
	pterm.Println(table)

	ranking, err := renderRanking(centrality)
	if err != nil {
		return err
	}
	pterm.Println(ranking)

	pterm.Println(renderEvents(out.Applied, sc.Events))
	pterm.Success.Printfln("mean support %.4f → %.4f", mean(before), mean(after))

	return nil
}
