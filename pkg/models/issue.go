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
	"strconv"
	"strings"
	"time"
)

// Priority is an issue priority. The ordinal is the wire value.
type Priority int

const (
	NoPriority Priority = iota
	PriorityUrgent
	PriorityHigh
	PriorityMedium
	PriorityLow
)

var priorityNames = [...]string{"No priority", "Urgent", "High", "Medium", "Low"}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p >= NoPriority && p <= PriorityLow
}

func (p Priority) String() string {
	if !p.Valid() {
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}
	return priorityNames[p]
}

// PriorityFromWire converts the numeric wire value into a Priority.
// Fractional or out-of-range values are rejected.
func PriorityFromWire(v float64) (Priority, error) {
	p := Priority(int(v))
	if float64(p) != v || !p.Valid() {
		return 0, fmt.Errorf("invalid issue priority %v", v)
	}
	return p, nil
}

// ParsePriority accepts either the ordinal ("2") or the name ("high",
// "no priority", "none").
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if p := Priority(n); p.Valid() {
			return p, nil
		}
		return 0, fmt.Errorf("invalid issue priority %q: must be between 0 and 4", s)
	}
	switch s {
	case "none", "no priority", "nopriority":
		return NoPriority, nil
	}
	for i, name := range priorityNames {
		if strings.ToLower(name) == s {
			return Priority(i), nil
		}
	}
	return 0, fmt.Errorf("invalid issue priority %q", s)
}

// IssueRef is the minimal issue form used for parent and child links.
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title,omitempty"`
	Number     int    `json:"number,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Issue is a Linear issue.
type Issue struct {
	Node
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	State       WorkflowState `json:"state"`
	Priority    Priority      `json:"priority"`
	Number      int           `json:"number"`
	Identifier  string        `json:"identifier"`
	Team        Team          `json:"team"`
	Assignee    *User         `json:"assignee,omitempty"`
	Creator     *User         `json:"creator,omitempty"`

	// DueDate is a calendar date (YYYY-MM-DD) without time zone.
	DueDate string `json:"due_date,omitempty"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
	LabelIDs    []string   `json:"label_ids,omitempty"`
	Parent      *IssueRef  `json:"parent,omitempty"`
	Children    []IssueRef `json:"children,omitempty"`
	URL         string     `json:"url"`
	BranchName  string     `json:"branch_name,omitempty"`
	Estimate    *float64   `json:"estimate,omitempty"`
}

// IsCompleted reports whether the issue sits in a completed workflow state.
// CompletedAt is informational; it can lag behind or outlive a state change.
func (i Issue) IsCompleted() bool {
	return i.State.Type == StateCompleted
}

// IsCanceled reports whether the issue sits in a canceled workflow state.
func (i Issue) IsCanceled() bool {
	return i.State.Type == StateCanceled
}

// IsActive reports whether the issue is neither completed, canceled nor
// archived.
func (i Issue) IsActive() bool {
	return !i.IsCompleted() && !i.IsCanceled() && !i.IsArchived()
}

// Ref returns the minimal reference form of the issue.
func (i Issue) Ref() IssueRef {
	return IssueRef{ID: i.ID, Identifier: i.Identifier, Title: i.Title, Number: i.Number, URL: i.URL}
}
