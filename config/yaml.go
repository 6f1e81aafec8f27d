// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML document into an EngineConfig. Fields absent from the
// document keep their Default() values; unknown fields are rejected so that a
// misspelled key fails loudly instead of silently keeping a default.
// The result is validated.
func Parse(data []byte) (EngineConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return EngineConfig{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}

	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Encode writes cfg as a YAML document with two-space indentation.
func Encode(w io.Writer, cfg EngineConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode yaml: %w", err)
	}

	return enc.Close()
}
