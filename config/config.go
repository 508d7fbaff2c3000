// SPDX-License-Identifier: MIT

// Package config loads process configuration from an optional YAML file and
// CWNOTE_-prefixed environment variables, with env taking precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Log     LogConfig     `koanf:"log"`
	Backend BackendConfig `koanf:"backend"`
	Export  ExportConfig  `koanf:"export"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console, json
}

type BackendConfig struct {
	Type   string `koanf:"type"` // cloudwatch, http
	URL    string `koanf:"url"`
	Token  string `koanf:"token"`
	Region string `koanf:"region"`
}

type ExportConfig struct {
	Dir string `koanf:"dir"`
}

// Load reads the config file at path (skipped when empty) and then the
// environment (CWNOTE_BACKEND_TYPE -> backend.type).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("log.level", "info")
	k.Set("log.format", "console")
	k.Set("backend.type", "cloudwatch")
	k.Set("export.dir", ".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("CWNOTE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "CWNOTE_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the store constructors cannot satisfy.
func (c *Config) Validate() error {
	switch c.Backend.Type {
	case "cloudwatch":
	case "http":
		if c.Backend.URL == "" {
			return fmt.Errorf("backend.url is required for the http backend")
		}
	default:
		return fmt.Errorf("unknown backend type %q", c.Backend.Type)
	}
	return nil
}
