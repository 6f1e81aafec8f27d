// SPDX-License-Identifier: MIT

// Package engine composes the consensus solver, the influence analyzer and
// the nomikai mutator behind one configured value.
//
// An Engine holds only its validated configuration and a logger, so one value
// may be shared by any number of goroutines. Every call is tagged with a
// fresh run id; soft diagnostics are logged under that id and still returned
// to the caller inside the richer results.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/consensus"
	"github.com/tsuyama1990/nemawashi/diag"
	"github.com/tsuyama1990/nemawashi/influence"
	"github.com/tsuyama1990/nemawashi/network"
	"github.com/tsuyama1990/nemawashi/nomikai"
)

// ErrNilEngine is returned by methods called on a nil *Engine.
var ErrNilEngine = errors.New("engine: nil engine")

// Engine runs the three operations with a fixed configuration.
type Engine struct {
	cfg    config.EngineConfig
	logger *slog.Logger
}

// Option configures New.
type Option func(*Engine)

// WithLogger sets the diagnostics logger. A nil logger is ignored.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New validates cfg and returns an Engine.
func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine.New: %w", err)
	}
	e := &Engine{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() config.EngineConfig { return e.cfg }

// Solve returns every stakeholder's consensus opinion.
func (e *Engine) Solve(net *network.Network) (map[string]float64, error) {
	res, err := e.Run(net)
	if err != nil {
		return nil, err
	}

	return res.Opinions, nil
}

// Run is Solve returning the full consensus.Result.
func (e *Engine) Run(net *network.Network) (*consensus.Result, error) {
	return e.solve("solve", net, consensus.Run)
}

// SolveConnected is Solve that first requires a single weakly-connected
// component (matrix.ErrDisconnectedGraph otherwise).
func (e *Engine) SolveConnected(net *network.Network) (map[string]float64, error) {
	res, err := e.solve("solve_connected", net, consensus.RunConnected)
	if err != nil {
		return nil, err
	}

	return res.Opinions, nil
}

func (e *Engine) solve(
	op string,
	net *network.Network,
	run func(*network.Network, config.EngineConfig) (*consensus.Result, error),
) (*consensus.Result, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	log := e.begin(op, net)
	res, err := run(net, e.cfg)
	if err != nil {
		return nil, e.fail(log, err)
	}
	e.report(log, res.Diagnostics)
	log.Debug("consensus done",
		slog.Int("steps", res.Steps),
		slog.Bool("converged", res.Converged),
		slog.String("backend", res.Backend.String()))

	return res, nil
}

// RankInfluencers returns stakeholder names, most influential first.
func (e *Engine) RankInfluencers(net *network.Network) ([]string, error) {
	c, err := e.Centrality(net)
	if err != nil {
		return nil, err
	}

	return c.Ranking(), nil
}

// Centrality returns the full influence analysis.
func (e *Engine) Centrality(net *network.Network) (*influence.Centrality, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	log := e.begin("rank_influencers", net)
	c, err := influence.Analyze(net, e.cfg)
	if err != nil {
		return nil, e.fail(log, err)
	}
	e.report(log, c.Diagnostics)
	log.Debug("centrality done",
		slog.String("method", string(c.Method)),
		slog.Int("iterations", c.Iterations))

	return c, nil
}

// ApplyEvent returns the network after a nomikai with target. A missing
// target returns net itself and logs a warning.
func (e *Engine) ApplyEvent(net *network.Network, target string) (*network.Network, error) {
	out, err := e.ApplyEvents(net, []string{target})
	if err != nil {
		return nil, err
	}

	return out.Network, nil
}

// ApplyEvents runs a plan of events in order.
func (e *Engine) ApplyEvents(net *network.Network, targets []string) (*nomikai.Outcome, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	log := e.begin("apply_event", net)
	out, err := nomikai.ApplyEvents(net, targets, e.cfg)
	if err != nil {
		return nil, e.fail(log, err)
	}
	e.report(log, out.Diagnostics)
	log.Debug("events done", slog.Any("applied", out.Applied))

	return out, nil
}

// IsConnected reports whether net forms one weakly-connected component.
func (e *Engine) IsConnected(net *network.Network) bool {
	return influence.IsConnected(net)
}

// begin returns a logger scoped to one call.
func (e *Engine) begin(op string, net *network.Network) *slog.Logger {
	n := 0
	if net != nil {
		n = net.Len()
	}

	return e.logger.With(
		slog.String("run_id", uuid.New().String()),
		slog.String("op", op),
		slog.Int("stakeholders", n),
	)
}

func (e *Engine) fail(log *slog.Logger, err error) error {
	log.Error("operation failed", slog.Any("error", err))

	return err
}

func (e *Engine) report(log *slog.Logger, list []diag.Diagnostic) {
	for _, d := range list {
		log.Log(context.Background(), level(d.Code), "diagnostic", slog.Any("diag", d))
	}
}

// level maps a diagnostic to its log level: expected numeric adjustments are
// Info, anything that weakens the result is Warn.
func level(c diag.Code) slog.Level {
	switch c {
	case diag.ZeroRowSelfLoop, diag.EigenDenseFallback:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
