// SPDX-License-Identifier: MIT

// Package scenario decodes a YAML description of a stakeholder network, the
// engine configuration to run it with, and a plan of nomikai events.
//
//	engine:
//	  max_steps: 200
//	stakeholders:
//	  - {name: Finance, support: 0.3, stubbornness: 0.9}
//	  - {name: Sales, support: 0.8, stubbornness: 0.5}
//	matrix:
//	  - [0.9, 0.1]
//	  - [0.5, 0.5]
//	events: [Finance]
//
// The weights are given either as dense rows (matrix) or as sparse triples
// (entries, with an optional size that must equal the stakeholder count).
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/matrix"
	"github.com/tsuyama1990/nemawashi/network"
)

// ErrInvalidScenario reports a structurally invalid scenario document.
// Network validation failures keep their own sentinels.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Scenario is a decoded, validated scenario.
type Scenario struct {
	Config  config.EngineConfig
	Network *network.Network
	Events  []string
}

type document struct {
	Engine       config.EngineConfig `yaml:"engine"`
	Stakeholders []stakeholder       `yaml:"stakeholders"`
	Matrix       [][]float64         `yaml:"matrix"`
	Entries      []entry             `yaml:"entries"`
	Size         *int                `yaml:"size"`
	Events       []string            `yaml:"events"`
}

type stakeholder struct {
	Name         string  `yaml:"name"`
	Support      float64 `yaml:"support"`
	Stubbornness float64 `yaml:"stubbornness"`
}

type entry struct {
	Row   int     `yaml:"row"`
	Col   int     `yaml:"col"`
	Value float64 `yaml:"value"`
}

// Parse decodes and validates a scenario. Engine fields absent from the
// document keep their config.Default() values; unknown keys are rejected.
//
// Errors:
//   - ErrInvalidScenario for decoding errors, both or neither of matrix and
//     entries, or a size that disagrees with the stakeholder list.
//   - config.ErrInvalidConfig for a bad engine section.
//   - network and matrix validation sentinels for a bad network.
func Parse(data []byte) (*Scenario, error) {
	doc := document{Engine: config.Default()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidScenario, err)
	}
	if err := doc.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	people := make([]network.Stakeholder, len(doc.Stakeholders))
	for i, s := range doc.Stakeholders {
		people[i] = network.Stakeholder{Name: s.Name, Support: s.Support, Stubbornness: s.Stubbornness}
	}

	net, err := doc.network(people)
	if err != nil {
		return nil, err
	}
	events := doc.Events
	if events == nil {
		events = []string{}
	}

	return &Scenario{Config: doc.Engine, Network: net, Events: events}, nil
}

func (d *document) network(people []network.Stakeholder) (*network.Network, error) {
	tol := network.WithTolerance(d.Engine.Tolerance)
	switch {
	case d.Matrix != nil && d.Entries != nil:
		return nil, fmt.Errorf("%w: both matrix and entries given", ErrInvalidScenario)
	case d.Entries != nil:
		if d.Size != nil && *d.Size != len(people) {
			return nil, fmt.Errorf("%w: size %d but %d stakeholders", ErrInvalidScenario, *d.Size, len(people))
		}
		entries := make([]matrix.Entry, len(d.Entries))
		for k, e := range d.Entries {
			entries[k] = matrix.Entry{Row: e.Row, Col: e.Col, Value: e.Value}
		}
		net, err := network.FromEntries(people, entries, tol)
		if err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
		return net, nil
	case d.Matrix != nil || len(people) == 0:
		if d.Size != nil {
			return nil, fmt.Errorf("%w: size is only meaningful with entries", ErrInvalidScenario)
		}
		net, err := network.FromRows(people, d.Matrix, tol)
		if err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
		return net, nil
	default:
		return nil, fmt.Errorf("%w: %d stakeholders but no matrix or entries", ErrInvalidScenario, len(people))
	}
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	return Parse(data)
}
