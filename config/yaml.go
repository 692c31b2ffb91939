// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// readYAML overlays the YAML file at configFilePath onto cfg.
//
// A missing file is skipped. Unknown keys are rejected so that typos surface
// at startup instead of silently falling back to defaults.
func (cfg *ServerConfig) readYAML(configFilePath string) error {
	if configFilePath == "" {
		return nil
	}

	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		log.Info().
			Str("path", configFilePath).
			Msg("No YAML configuration file found, skipping")

		return nil
	}

	raw, err := os.ReadFile(configFilePath) // #nosec G304 -- only loading a config file
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}

	if err := cfg.decodeYAML(raw); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", configFilePath, err)
	}

	log.Info().
		Str("path", configFilePath).
		Msg("Successfully loaded configuration")

	return nil
}

func (cfg *ServerConfig) decodeYAML(raw []byte) error {
	return yaml.UnmarshalWithOptions(raw, cfg, yaml.Strict())
}
