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

package config

import "time"

// Environment variables recognized by FromEnv and LoadConfig.
const (
	EnvAPIKey   = "LINEAR_API_KEY"
	EnvAPIURL   = "LINEAR_API_URL"
	EnvTimeout  = "LINEAR_TIMEOUT"
	EnvPageSize = "LINEAR_PAGE_SIZE"
)

// Built-in defaults.
const (
	DefaultAPIURL   = "https://api.linear.app/graphql"
	DefaultTimeout  = 30
	DefaultPageSize = 50

	// MaxPageSize is the largest page the Linear API serves.
	MaxPageSize = 250
)

// Config holds the settings needed to talk to the Linear API. It can be
// built programmatically, read from the environment, or loaded from a
// YAML file with environment overrides.
type Config struct {
	// APIKey is sent verbatim in the Authorization header. Required.
	APIKey string `yaml:"api_key"`

	// APIURL is the GraphQL endpoint.
	APIURL string `yaml:"api_url"`

	// Timeout is the per-request timeout in seconds. Must be at least 1.
	Timeout int `yaml:"timeout"`

	// PageSize is the default number of nodes requested per page by list
	// operations that do not set their own.
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns a Config with every optional setting at its
// default. The API key is left empty.
func DefaultConfig() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		PageSize: DefaultPageSize,
	}
}

// New returns a default Config carrying apiKey.
func New(apiKey string) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	return cfg
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
