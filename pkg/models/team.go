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

package models

import "strings"

// Team is a Linear team.
type Team struct {
	Node
	Name         string       `json:"name"`
	Key          string       `json:"key"`
	Description  string       `json:"description,omitempty"`
	Organization Organization `json:"organization"`
	Private      bool         `json:"private"`

	// DefaultIssueState is the state new issues start in, when configured.
	DefaultIssueState *WorkflowState `json:"default_issue_state,omitempty"`

	// AutoArchivePeriod and AutoClosePeriod are in days; 0 disables them.
	AutoArchivePeriod int `json:"auto_archive_period"`
	AutoClosePeriod   int `json:"auto_close_period"`

	CyclesEnabled     bool `json:"cycles_enabled"`
	CycleDuration     int  `json:"cycle_duration"`
	CycleCooldownTime int  `json:"cycle_cooldown_time"`
	TriageEnabled     bool `json:"triage_enabled"`
}

// IssueKeyPrefix returns the prefix used in issue identifiers, e.g. "ENG"
// for ENG-123.
func (t Team) IssueKeyPrefix() string {
	return strings.ToUpper(t.Key)
}

// Ref returns the minimal reference form of the team.
func (t Team) Ref() TeamRef {
	createdAt, updatedAt := t.CreatedAt, t.UpdatedAt
	org := t.Organization
	return TeamRef{
		ID:           t.ID,
		Name:         t.Name,
		Key:          t.Key,
		Description:  t.Description,
		Organization: &org,
		CreatedAt:    &createdAt,
		UpdatedAt:    &updatedAt,
		ArchivedAt:   t.ArchivedAt,
	}
}
