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

// Package main implements the linear command-line interface, a thin shell
// over the linear-go client library.
//
// Every resource operation of the library is reachable from a subcommand:
//
//	linear issues get|create|update|delete|list
//	linear comments get|create|update|delete|list
//	linear attachments get|create-url|create|update|delete|list
//	linear teams get|list
//	linear users get|list|me
//	linear states get|list
//	linear auth set-key|clear-key|whoami
//
// Results are printed as a table by default, or as NDJSON with
// --format ndjson. A .env file in the working directory is loaded at
// start-up.
//
// The API key is resolved in this order:
//   - the --api-key flag
//   - LINEAR_API_KEY, or api_key in the configuration file
//   - the key stored with "linear auth set-key"
//
// When no platform keyring is available the key is kept in an encrypted
// file. Set LINEAR_KEYRING_PASSWORD to choose its passphrase; otherwise
// the CLI prompts on a terminal or falls back to a built-in passphrase.
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication, rate limit or not-found error
//   - 3: Network error
package main
