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

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "authentication error",
			err:      &AuthenticationError{},
			sentinel: ErrAuthentication,
			want:     true,
		},
		{
			name:     "wrapped rate limit error",
			err:      fmt.Errorf("listing issues: %w", &RateLimitError{}),
			sentinel: ErrRateLimit,
			want:     true,
		},
		{
			name:     "network error is a client error",
			err:      &NetworkError{StatusCode: 502},
			sentinel: ErrClient,
			want:     true,
		},
		{
			name:     "query error is not a network error",
			err:      &QueryError{},
			sentinel: ErrNetworkFailure,
			want:     false,
		},
		{
			name:     "operation error is not found only when flagged",
			err:      &OperationError{Resource: ResourceIssue, Operation: OpCreate},
			sentinel: ErrNotFound,
			want:     false,
		},
		{
			name:     "not found operation error",
			err:      NotFound(ResourceIssue, OpGet, "ENG-1"),
			sentinel: ErrNotFound,
			want:     true,
		},
		{
			name:     "config error",
			err:      &ConfigError{Field: "api_key", Message: "required"},
			sentinel: ErrConfig,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrClient,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.sentinel); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestNetworkErrorUnwrapsCause(t *testing.T) {
	err := &NetworkError{Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected NetworkError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "deadline exceeded") {
		t.Errorf("Error() = %q, want cause in message", err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&AuthenticationError{}, "invalid API key (HTTP 401)"},
		{&RateLimitError{RetryAfter: "60"}, "API rate limit exceeded (HTTP 429), retry after 60"},
		{&NetworkError{StatusCode: 500}, "request failed with status 500"},
		{
			&QueryError{Errors: []GraphQLError{{Message: "bad field"}, {Message: "bad arg"}}},
			"GraphQL query failed: bad field; bad arg",
		},
		{NotFound(ResourceWorkflowState, OpGet, "s1"), "workflow_state get failed: Workflow state s1 not found (id: s1)"},
		{&ConfigError{Field: "timeout", Message: "must be at least 1"}, "invalid configuration: timeout: must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationErrorIncludesInput(t *testing.T) {
	err := &OperationError{
		Resource:  ResourceIssue,
		Operation: OpCreate,
		Message:   "Failed to create issue",
		Input:     map[string]any{"title": "Broken build", "teamId": "team-1"},
	}

	msg := err.Error()
	for _, want := range []string{"issue create failed", `"title":"Broken build"`, `"teamId":"team-1"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	var opErr *OperationError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &opErr) {
		t.Fatal("errors.As failed for wrapped OperationError")
	}
	if opErr.Operation != OpCreate {
		t.Errorf("Operation = %s, want %s", opErr.Operation, OpCreate)
	}
}

func TestParentNotFound(t *testing.T) {
	err := ParentNotFound(ResourceComment, ResourceIssue, "issue-9")

	if !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrOperationFailed) {
		t.Errorf("ParentNotFound should match ErrNotFound and ErrOperationFailed")
	}
	if err.Resource != ResourceComment || err.Operation != OpList {
		t.Errorf("got %s %s, want comment list", err.Resource, err.Operation)
	}
	if !strings.Contains(err.Error(), "Issue issue-9 not found") {
		t.Errorf("Error() = %q", err.Error())
	}
}
