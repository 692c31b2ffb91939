// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"codeberg.org/hopps/uikit/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host       string `env:"UIKIT_HOST,overwrite" yaml:"host"`
		Port       string `env:"UIKIT_PORT,overwrite" yaml:"port"`
		UnixSocket string `env:"UIKIT_UNIXSOCKET" yaml:"unixSocket"`
	} `yaml:"basic"`

	Icons struct {
		// Dir replaces the embedded icon catalog with a directory on disk.
		Dir                 string `env:"UIKIT_ICONS_DIR,overwrite" yaml:"dir"`
		RenderCacheSize     int    `env:"UIKIT_ICONS_RENDER_CACHE_SIZE,overwrite" yaml:"renderCacheSize"`
		RenderCacheCompress bool   `env:"UIKIT_ICONS_RENDER_CACHE_COMPRESS,overwrite" yaml:"renderCacheCompress"`
	} `yaml:"icons"`

	HTTPCache struct {
		IconMaxAge time.Duration `env:"UIKIT_CACHE_CONTROL_ICON_MAX_AGE,overwrite" yaml:"iconMaxAge"`
	} `yaml:"httpCache"`

	Response struct {
		Compress bool `env:"UIKIT_RESPONSE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"response"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
	} `yaml:"-"`

	Development struct {
		InDevelopment bool `env:"UIKIT_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"UIKIT_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"UIKIT_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"UIKIT_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled bool `env:"UIKIT_LIMITER,overwrite" yaml:"enabled"`
		// Rate is the sustained number of requests per second per client.
		Rate  int `env:"UIKIT_LIMITER_RATE,overwrite" yaml:"rate"`
		Burst int `env:"UIKIT_LIMITER_BURST,overwrite" yaml:"burst"`
	} `yaml:"limiter"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"UIKIT_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from defaults, a YAML file, a .env file
// and the environment, in that order.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	// Precedence: -config flag, then UIKIT_CONFIGFILE, then the flag default
	// with a fallback to ./config.yml.
	var configFilePath string

	if configFlagUserSet {
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("UIKIT_CONFIGFILE"); envVar != "" {
		configFilePath = envVar
	} else {
		configFilePath = parsedConfigFlagValue
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// staticSkippedPathPrefixes are not logged by the request logger.
var staticSkippedPathPrefixes = []string{"/icons/", "/healthz"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
