// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for the Linear client
// with support for multiple sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Values set programmatically or by command-line flags
//  2. Environment variables (LINEAR_API_KEY, LINEAR_API_URL, LINEAR_TIMEOUT)
//  3. A YAML configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
)

// FromEnv builds a validated Config from the environment alone. It fails
// with a ConfigError when LINEAR_API_KEY is unset, before any network
// call can be attempted.
func FromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, &linearerrors.ConfigError{
			Field:   "api_key",
			Message: fmt.Sprintf("missing %s environment variable", EnvAPIKey),
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides on top. If configPath is empty, it searches standard locations:
//   - .linear.yaml (current directory)
//   - .linear.yml (current directory)
//   - ~/.linear/config.yaml
//   - ~/.linear/config.yml
//
// It succeeds with defaults if no config file is found. The result is not
// validated, so callers can fill in the API key from another source first.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(expandPath(configPath), cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultPaths() []string {
	home := homeDir()
	return []string{
		".linear.yaml",
		".linear.yml",
		filepath.Join(home, ".linear", "config.yaml"),
		filepath.Join(home, ".linear", "config.yml"),
	}
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	if apiURL := os.Getenv(EnvAPIURL); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if timeout := os.Getenv(EnvTimeout); timeout != "" {
		seconds, err := parsePositiveInt(timeout)
		if err != nil {
			return &linearerrors.ConfigError{Field: "timeout", Message: fmt.Sprintf("%s: %v", EnvTimeout, err)}
		}
		cfg.Timeout = seconds
	}
	if pageSize := os.Getenv(EnvPageSize); pageSize != "" {
		size, err := parsePositiveInt(pageSize)
		if err != nil {
			return &linearerrors.ConfigError{Field: "page_size", Message: fmt.Sprintf("%s: %v", EnvPageSize, err)}
		}
		cfg.PageSize = size
	}
	return nil
}

// Validate checks that the configuration can be used to build a client.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &linearerrors.ConfigError{Field: "api_key", Message: "API key is required"}
	}
	if c.APIURL == "" {
		return &linearerrors.ConfigError{Field: "api_url", Message: "API URL cannot be empty"}
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &linearerrors.ConfigError{Field: "api_url", Message: fmt.Sprintf("invalid API URL %q", c.APIURL)}
	}
	if c.Timeout < 1 {
		return &linearerrors.ConfigError{Field: "timeout", Message: fmt.Sprintf("must be at least 1 second, got: %d", c.Timeout)}
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return &linearerrors.ConfigError{
			Field:   "page_size",
			Message: fmt.Sprintf("must be between 1 and %d, got: %d", MaxPageSize, c.PageSize),
		}
	}
	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir(), path[2:])
	}
	return os.ExpandEnv(path)
}

func homeDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE") // Windows
	}
	return home
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}
