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

// Package credential keeps the CLI's Linear API key in the system keyring.
package credential

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	serviceName = "linear-go"

	// apiKeyItem is the keyring entry holding the API key.
	apiKeyItem = "api-key"

	// PasswordEnv names the variable holding the file backend's passphrase.
	PasswordEnv = "LINEAR_KEYRING_PASSWORD"

	// fallbackPassphrase is published with this source, so a file
	// keyring encrypted with it is obfuscated rather than protected.
	fallbackPassphrase = "linear-go-file-key"
)

// ErrNoAPIKey is returned when no API key has been stored.
var ErrNoAPIKey = errors.New("no API key stored in the keyring")

// Store reads and writes the API key.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store backed by the platform keyring, falling back to an
// encrypted file under ~/.config/linear-go/credentials.
//
// The file backend's passphrase comes from LINEAR_KEYRING_PASSWORD, or
// from a prompt when stdin is a terminal. Without either it uses a fixed
// passphrase that ships with the program: the file is then readable by
// anyone who can read it from disk, so prefer a platform keyring or set
// LINEAR_KEYRING_PASSWORD on headless machines.
func Open() (*Store, error) {
	prompt := filePassword(os.Getenv, term.IsTerminal(int(os.Stdin.Fd())))
	ring, err := keyring.Open(keyringConfig("~/.config/linear-go/credentials", prompt))
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

func keyringConfig(fileDir string, password keyring.PromptFunc) keyring.Config {
	return keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         password,
		KeychainTrustApplication: true,
	}
}

// filePassword chooses how the file backend gets its passphrase.
func filePassword(getenv func(string) string, interactive bool) keyring.PromptFunc {
	if pw := getenv(PasswordEnv); pw != "" {
		return keyring.FixedStringPrompt(pw)
	}
	if interactive {
		return keyring.TerminalPrompt
	}
	return keyring.FixedStringPrompt(fallbackPassphrase)
}

// NewStore wraps an existing keyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// APIKey returns the stored API key, or ErrNoAPIKey.
func (s *Store) APIKey() (string, error) {
	item, err := s.ring.Get(apiKeyItem)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	if len(item.Data) == 0 {
		return "", ErrNoAPIKey
	}
	return string(item.Data), nil
}

// SetAPIKey stores key, replacing any previous one.
func (s *Store) SetAPIKey(key string) error {
	if key == "" {
		return errors.New("API key must not be empty")
	}
	err := s.ring.Set(keyring.Item{
		Key:         apiKeyItem,
		Data:        []byte(key),
		Label:       "Linear API key",
		Description: "Personal API key used by the linear CLI",
	})
	if err != nil {
		return fmt.Errorf("storing API key: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the stored key. Removing a missing key is not an error.
func (s *Store) DeleteAPIKey() error {
	err := s.ring.Remove(apiKeyItem)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting API key: %w", err)
	}
	return nil
}
