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

// Package models defines the domain values returned by the Linear client.
//
// Values are built by the client from server payloads only and are never
// modified by the library afterwards: an update returns a fresh value
// rather than changing the one the caller holds. The JSON tags describe the
// output encoding used by the CLI (NDJSON), not the GraphQL wire format.
package models

import "time"

// Node carries the fields shared by every Linear entity.
type Node struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// IsArchived reports whether the entity has been archived.
func (n Node) IsArchived() bool {
	return n.ArchivedAt != nil
}

// Organization is a reference to the workspace an entity belongs to.
type Organization struct {
	ID string `json:"id"`
}
