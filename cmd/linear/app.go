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

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/linear-go/internal/credential"
	"github.com/sirseerhq/linear-go/internal/output"
	"github.com/sirseerhq/linear-go/pkg/config"
	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/linear"
	"github.com/sirseerhq/linear-go/pkg/version"
)

// app carries the global flags and the collaborators shared by every
// subcommand.
type app struct {
	configPath string
	apiKey     string
	format     string
	debug      bool

	// openStore opens the credential store. Replaced in tests.
	openStore func() (*credential.Store, error)
}

func newApp() *app {
	return &app{openStore: credential.Open}
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linear",
		Short: "Work with Linear issues from the command line",
		Long: `linear is a command-line client for the Linear GraphQL API.

It reads, creates, updates and deletes issues, comments and attachments,
and lists teams, users and workflow states.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := output.ParseFormat(a.format)
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Configuration file (default: .linear.yaml or ~/.linear/config.yaml)")
	flags.StringVar(&a.apiKey, "api-key", "", "Linear API key (overrides LINEAR_API_KEY and the stored key)")
	flags.StringVar(&a.format, "format", string(output.FormatTable), "Output format: table or ndjson")
	flags.BoolVar(&a.debug, "debug", false, "Log each request to stderr")

	rootCmd.AddCommand(
		newIssuesCommand(a),
		newCommentsCommand(a),
		newAttachmentsCommand(a),
		newTeamsCommand(a),
		newUsersCommand(a),
		newStatesCommand(a),
		newAuthCommand(a),
	)
	return rootCmd
}

// loadConfig resolves the configuration, filling in the API key from the
// credential store when neither the flag nor the environment set one.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.apiKey != "" {
		cfg.APIKey = a.apiKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = a.storedKey()
	}
	if cfg.APIKey == "" {
		return nil, &linearerrors.ConfigError{
			Field:   "api_key",
			Message: "no API key found; use --api-key, set " + config.EnvAPIKey + ", or run \"linear auth set-key\"",
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// storedKey returns the key saved in the credential store, or "".
func (a *app) storedKey() string {
	store, err := a.openStore()
	if err != nil {
		a.logger().Debug("credential store unavailable", "error", err)
		return ""
	}
	key, err := store.APIKey()
	if err != nil {
		if !errors.Is(err, credential.ErrNoAPIKey) {
			a.logger().Debug("reading stored API key", "error", err)
		}
		return ""
	}
	return key
}

func (a *app) logger() *slog.Logger {
	if !a.debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (a *app) client() (*linear.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return linear.NewClient(cfg, linear.WithLogger(a.logger()))
}

// writer returns a RecordWriter on the command's output in the selected
// format.
func (a *app) writer(cmd *cobra.Command, columns []output.Column) (output.RecordWriter, error) {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return output.New(format, cmd.OutOrStdout(), columns...), nil
}

// writeOne prints a single record.
func (a *app) writeOne(cmd *cobra.Command, columns []output.Column, record any) error {
	w, err := a.writer(cmd, columns)
	if err != nil {
		return err
	}
	if err := w.Write(record); err != nil {
		return err
	}
	return w.Close()
}

// writeAll drains it, printing each value as it arrives. limit caps the
// number of records; zero means no cap.
func writeAll[T any](a *app, cmd *cobra.Command, columns []output.Column, it *linear.Iterator[T], limit int) error {
	w, err := a.writer(cmd, columns)
	if err != nil {
		return err
	}
	n := 0
	for it.Next() {
		if err := w.Write(it.Value()); err != nil {
			return err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	// Rows already fetched are flushed even when a later page fails.
	closeErr := w.Close()
	if err := it.Err(); err != nil {
		return err
	}
	return closeErr
}
