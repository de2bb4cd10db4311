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
	"encoding/json"
	"testing"
	"time"
)

func TestIssueStatusHelpers(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name          string
		stateType     WorkflowStateType
		completedAt   *time.Time
		canceledAt    *time.Time
		archived      bool
		wantCompleted bool
		wantCanceled  bool
		wantActive    bool
	}{
		{"started", StateStarted, nil, nil, false, false, false, true},
		{"started archived", StateStarted, nil, nil, true, false, false, false},
		{"completed", StateCompleted, &now, nil, false, true, false, false},
		{"completed archived", StateCompleted, &now, nil, true, true, false, false},
		{"canceled", StateCanceled, nil, &now, false, false, true, false},
		{"canceled archived", StateCanceled, nil, &now, true, false, true, false},
		{"completed without timestamp", StateCompleted, nil, nil, false, true, false, false},
		{"canceled without timestamp", StateCanceled, nil, nil, false, false, true, false},
		{"reopened with stale completedAt", StateStarted, &now, nil, false, false, false, true},
		{"reopened with stale canceledAt", StateUnstarted, nil, &now, false, false, false, true},
		{"duplicate", StateDuplicate, nil, nil, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := Issue{
				State:       WorkflowState{Type: tt.stateType},
				CompletedAt: tt.completedAt,
				CanceledAt:  tt.canceledAt,
			}
			if tt.archived {
				issue.ArchivedAt = &now
			}

			if got := issue.IsCompleted(); got != tt.wantCompleted {
				t.Errorf("IsCompleted() = %v, want %v", got, tt.wantCompleted)
			}
			if got := issue.IsCanceled(); got != tt.wantCanceled {
				t.Errorf("IsCanceled() = %v, want %v", got, tt.wantCanceled)
			}
			if got := issue.IsActive(); got != tt.wantActive {
				t.Errorf("IsActive() = %v, want %v", got, tt.wantActive)
			}
		})
	}
}

func TestPriorityFromWire(t *testing.T) {
	tests := []struct {
		in      float64
		want    Priority
		wantErr bool
	}{
		{0, NoPriority, false},
		{1, PriorityUrgent, false},
		{2, PriorityHigh, false},
		{3, PriorityMedium, false},
		{4, PriorityLow, false},
		{5, 0, true},
		{-1, 0, true},
		{2.5, 0, true},
	}

	for _, tt := range tests {
		got, err := PriorityFromWire(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("PriorityFromWire(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("PriorityFromWire(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPriorityMarshalsAsOrdinal(t *testing.T) {
	for p := NoPriority; p <= PriorityLow; p++ {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%v) failed: %v", p, err)
		}
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", data, err)
		}
		back, err := PriorityFromWire(n)
		if err != nil || back != p {
			t.Errorf("round trip of %v gave %v (err %v)", p, back, err)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := map[string]Priority{
		"0":      NoPriority,
		"none":   NoPriority,
		"Urgent": PriorityUrgent,
		" high ": PriorityHigh,
		"3":      PriorityMedium,
		"low":    PriorityLow,
	}
	for in, want := range tests {
		got, err := ParsePriority(in)
		if err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePriority(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"9", "critical", ""} {
		if _, err := ParsePriority(in); err == nil {
			t.Errorf("ParsePriority(%q) expected error", in)
		}
	}
}

func TestParseWorkflowStateType(t *testing.T) {
	got, err := ParseWorkflowStateType("Started")
	if err != nil || got != StateStarted {
		t.Errorf("ParseWorkflowStateType(Started) = %q, %v", got, err)
	}
	if _, err := ParseWorkflowStateType("paused"); err == nil {
		t.Error("ParseWorkflowStateType(paused) expected error")
	}
}

func TestAttachmentResolveSource(t *testing.T) {
	t.Run("from metadata", func(t *testing.T) {
		a := Attachment{Metadata: map[string]any{"source": "figma"}}
		a.ResolveSource()
		if a.Source == nil || *a.Source != SourceFigma {
			t.Fatalf("Source = %v, want figma", a.Source)
		}
		if a.SourceName() != "Figma" {
			t.Errorf("SourceName() = %q, want Figma", a.SourceName())
		}
		if a.IsFile() || a.IsURL() {
			t.Error("figma attachment should be neither file nor url")
		}
	})

	t.Run("payload source wins", func(t *testing.T) {
		src := SourceURL
		a := Attachment{Source: &src, Metadata: map[string]any{"source": "github"}}
		a.ResolveSource()
		if *a.Source != SourceURL {
			t.Errorf("Source = %q, want url", *a.Source)
		}
		if !a.IsURL() {
			t.Error("IsURL() = false, want true")
		}
	})

	t.Run("unknown metadata", func(t *testing.T) {
		a := Attachment{Metadata: map[string]any{"source": "dropbox"}}
		a.ResolveSource()
		if a.Source != nil {
			t.Errorf("Source = %q, want nil", *a.Source)
		}
		if a.SourceName() != "Unknown" {
			t.Errorf("SourceName() = %q, want Unknown", a.SourceName())
		}
	})

	t.Run("generic is a file", func(t *testing.T) {
		a := Attachment{Metadata: map[string]any{"source": "generic"}}
		a.ResolveSource()
		if !a.IsFile() {
			t.Error("IsFile() = false, want true")
		}
	})
}

func TestUserTeamHelpers(t *testing.T) {
	u := User{Teams: []TeamRef{{ID: "team-1"}, {ID: "team-2"}}}

	ids := u.TeamIDs()
	if len(ids) != 2 || ids[0] != "team-1" || ids[1] != "team-2" {
		t.Errorf("TeamIDs() = %v", ids)
	}
	if id, ok := u.DefaultTeamID(); !ok || id != "team-1" {
		t.Errorf("DefaultTeamID() = %q, %v", id, ok)
	}
	if !u.InTeam("team-2") || u.InTeam("team-3") {
		t.Error("InTeam() returned wrong membership")
	}

	if _, ok := (User{}).DefaultTeamID(); ok {
		t.Error("DefaultTeamID() on user without teams should report false")
	}
}

func TestTeamIssueKeyPrefix(t *testing.T) {
	team := Team{Key: "eng"}
	if got := team.IssueKeyPrefix(); got != "ENG" {
		t.Errorf("IssueKeyPrefix() = %q, want ENG", got)
	}
}

func TestIssueOptionalFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(Issue{Node: Node{ID: "issue-1"}, Title: "Bug"})
	if err != nil {
		t.Fatalf("Failed to marshal Issue: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Failed to unmarshal to map: %v", err)
	}
	for _, key := range []string{"archived_at", "completed_at", "assignee", "parent", "estimate"} {
		if _, exists := m[key]; exists {
			t.Errorf("%s should be omitted when unset", key)
		}
	}
}
