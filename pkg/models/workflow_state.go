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

import (
	"fmt"
	"strings"
	"time"
)

// WorkflowStateType is the lifecycle category of a workflow state.
type WorkflowStateType string

const (
	StateTriage    WorkflowStateType = "triage"
	StateBacklog   WorkflowStateType = "backlog"
	StateUnstarted WorkflowStateType = "unstarted"
	StateStarted   WorkflowStateType = "started"
	StateCompleted WorkflowStateType = "completed"
	StateCanceled  WorkflowStateType = "canceled"
	StateDuplicate WorkflowStateType = "duplicate"
)

// WorkflowStateTypes lists every state type in workflow order.
var WorkflowStateTypes = []WorkflowStateType{
	StateTriage, StateBacklog, StateUnstarted, StateStarted,
	StateCompleted, StateCanceled, StateDuplicate,
}

// Valid reports whether t is one of the known state types.
func (t WorkflowStateType) Valid() bool {
	for _, known := range WorkflowStateTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseWorkflowStateType converts a wire or user-supplied value into a
// WorkflowStateType. Matching is case-insensitive.
func ParseWorkflowStateType(s string) (WorkflowStateType, error) {
	t := WorkflowStateType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown workflow state type %q", s)
	}
	return t, nil
}

// TeamRef is the minimal team form embedded in workflow states and users.
// Only ID is guaranteed; the rest is filled when the query selected it.
type TeamRef struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Key          string        `json:"key,omitempty"`
	Description  string        `json:"description,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
	CreatedAt    *time.Time    `json:"created_at,omitempty"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
	ArchivedAt   *time.Time    `json:"archived_at,omitempty"`
}

// WorkflowState is a named status an issue can occupy.
type WorkflowState struct {
	Node
	Name        string            `json:"name"`
	Type        WorkflowStateType `json:"type"`
	Color       string            `json:"color"`
	Position    *float64          `json:"position,omitempty"`
	Description string            `json:"description,omitempty"`
	Team        TeamRef           `json:"team"`
}
