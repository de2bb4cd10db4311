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

package credential

import (
	"errors"
	"reflect"
	"testing"

	"github.com/99designs/keyring"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(keyring.NewArrayKeyring(nil))

	if _, err := store.APIKey(); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("APIKey() on empty keyring error = %v, want ErrNoAPIKey", err)
	}

	if err := store.SetAPIKey("lin_api_123"); err != nil {
		t.Fatalf("SetAPIKey() error = %v", err)
	}
	key, err := store.APIKey()
	if err != nil || key != "lin_api_123" {
		t.Errorf("APIKey() = %q, %v", key, err)
	}

	if err := store.DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() error = %v", err)
	}
	if _, err := store.APIKey(); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("APIKey() after delete error = %v, want ErrNoAPIKey", err)
	}
	if err := store.DeleteAPIKey(); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
}

func TestSetAPIKeyRejectsEmpty(t *testing.T) {
	store := NewStore(keyring.NewArrayKeyring(nil))
	if err := store.SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") expected error")
	}
}

func TestFilePassword(t *testing.T) {
	env := func(value string) func(string) string {
		return func(name string) string {
			if name == PasswordEnv {
				return value
			}
			return ""
		}
	}

	tests := []struct {
		name        string
		env         string
		interactive bool
		want        string
		wantPrompt  bool
	}{
		{"environment wins", "s3cret", true, "s3cret", false},
		{"environment without terminal", "s3cret", false, "s3cret", false},
		{"terminal prompts", "", true, "", true},
		{"headless falls back", "", false, fallbackPassphrase, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := filePassword(env(tt.env), tt.interactive)
			isTerminal := reflect.ValueOf(prompt).Pointer() == reflect.ValueOf(keyring.TerminalPrompt).Pointer()
			if isTerminal != tt.wantPrompt {
				t.Fatalf("terminal prompt = %v, want %v", isTerminal, tt.wantPrompt)
			}
			if tt.wantPrompt {
				return
			}
			got, err := prompt("passphrase")
			if err != nil || got != tt.want {
				t.Errorf("prompt() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestFileBackendUsesPassphrase(t *testing.T) {
	dir := t.TempDir()
	open := func(passphrase string) *Store {
		t.Helper()
		cfg := keyringConfig(dir, keyring.FixedStringPrompt(passphrase))
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		ring, err := keyring.Open(cfg)
		if err != nil {
			t.Fatalf("keyring.Open() error = %v", err)
		}
		return NewStore(ring)
	}

	if err := open("s3cret").SetAPIKey("lin_api_file"); err != nil {
		t.Fatalf("SetAPIKey() error = %v", err)
	}

	key, err := open("s3cret").APIKey()
	if err != nil || key != "lin_api_file" {
		t.Errorf("APIKey() with the same passphrase = %q, %v", key, err)
	}

	key, err = open(fallbackPassphrase).APIKey()
	if err == nil || errors.Is(err, ErrNoAPIKey) {
		t.Errorf("APIKey() with another passphrase = %q, %v, want a decryption error", key, err)
	}
}
