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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/sirseerhq/linear-go/internal/credential"
	"github.com/sirseerhq/linear-go/internal/testutil"
	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
)

// cliEnv isolates a CLI run from the developer's environment and points
// it at server.
func cliEnv(t *testing.T, server *testutil.MockServer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LINEAR_API_KEY", "")
	t.Setenv("LINEAR_TIMEOUT", "")
	t.Setenv("LINEAR_PAGE_SIZE", "")
	t.Setenv("LINEAR_API_URL", "")
	if server != nil {
		t.Setenv("LINEAR_API_URL", server.URL)
	}
}

// runCLI executes the root command with args against store and returns
// what it printed.
func runCLI(t *testing.T, store *credential.Store, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	if store == nil {
		store = credential.NewStore(keyring.NewArrayKeyring(nil))
	}
	a := newApp()
	a.openStore = func() (*credential.Store, error) { return store, nil }

	var out bytes.Buffer
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), 1},
		{"config", &linearerrors.ConfigError{Field: "api_key", Message: "missing"}, 1},
		{"query", &linearerrors.QueryError{Message: "bad field"}, 1},
		{"authentication", &linearerrors.AuthenticationError{}, 2},
		{"rate limit", &linearerrors.RateLimitError{RetryAfter: "30"}, 2},
		{"not found", linearerrors.NotFound(linearerrors.ResourceIssue, linearerrors.OpGet, "issue-1"), 2},
		{"wrapped auth", fmt.Errorf("listing: %w", &linearerrors.AuthenticationError{}), 2},
		{"network", &linearerrors.NetworkError{StatusCode: 502}, 3},
		{"rejected mutation", &linearerrors.OperationError{
			Resource:  linearerrors.ResourceIssue,
			Operation: linearerrors.OpCreate,
			Message:   "rejected",
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIssuesGetNDJSON(t *testing.T) {
	issue := testutil.NewIssueBuilder(42).WithID("issue-42").WithTitle("Fix login").Build()
	server := testutil.NewDataServer(t, map[string]any{"issue": issue})
	cliEnv(t, server)

	out, err := runCLI(t, nil, nil, "issues", "get", "ENG-42", "--api-key", "lin_api_test", "--format", "ndjson")
	if err != nil {
		t.Fatalf("issues get: %v", err)
	}

	records := testutil.AssertNDJSONOutput(t, out, 1, "id", "identifier", "title", "state", "team", "url")
	if records[0]["identifier"] != "ENG-42" || records[0]["title"] != "Fix login" {
		t.Errorf("unexpected record: %v", records[0])
	}

	req := server.LastRequest(t)
	if req.Operation != "Issue" {
		t.Errorf("operation = %q, want Issue", req.Operation)
	}
	if req.Variables["id"] != "ENG-42" {
		t.Errorf("id variable = %v, want ENG-42", req.Variables["id"])
	}
	if got := req.Header.Get("Authorization"); got != "lin_api_test" {
		t.Errorf("Authorization = %q, want lin_api_test", got)
	}
}

func TestIssuesListTableStopsAtLimit(t *testing.T) {
	page1 := testutil.Connection([]map[string]any{
		testutil.NewIssueBuilder(1).WithID("issue-1").Build(),
		testutil.NewIssueBuilder(2).WithID("issue-2").Build(),
	}, true, "cursor-2")
	page2 := testutil.Connection([]map[string]any{
		testutil.NewIssueBuilder(3).WithID("issue-3").Build(),
		testutil.NewIssueBuilder(4).WithID("issue-4").Build(),
	}, true, "cursor-4")
	server := testutil.NewSequenceServer(t,
		testutil.Data(map[string]any{"issues": page1}),
		testutil.Data(map[string]any{"issues": page2}),
	)
	cliEnv(t, server)

	out, err := runCLI(t, nil, nil, "issues", "list", "--api-key", "k", "--team", "team-1", "--limit", "3", "--page-size", "2")
	if err != nil {
		t.Fatalf("issues list: %v", err)
	}

	for _, key := range []string{"ENG-1", "ENG-2", "ENG-3"} {
		testutil.AssertContainsString(t, out, key)
	}
	testutil.AssertNotContainsString(t, out, "ENG-4")
	if got := server.RequestCount(); got != 2 {
		t.Errorf("RequestCount() = %d, want 2", got)
	}

	reqs := server.Requests()
	if reqs[1].Variables["after"] != "cursor-2" {
		t.Errorf("second request after = %v, want cursor-2", reqs[1].Variables["after"])
	}
	filter, _ := reqs[0].Variables["filter"].(map[string]any)
	if _, ok := filter["team"]; !ok {
		t.Errorf("filter = %v, want a team condition", reqs[0].Variables["filter"])
	}
}

func TestIssuesListTableKeepsRowsBeforeFailedPage(t *testing.T) {
	page1 := testutil.Connection([]map[string]any{
		testutil.NewIssueBuilder(1).WithID("issue-1").Build(),
		testutil.NewIssueBuilder(2).WithID("issue-2").Build(),
	}, true, "cursor-2")
	server := testutil.NewSequenceServer(t,
		testutil.Data(map[string]any{"issues": page1}),
		testutil.Response{Status: http.StatusBadGateway, Body: "upstream unavailable"},
	)
	cliEnv(t, server)

	out, err := runCLI(t, nil, nil, "issues", "list", "--api-key", "k", "--page-size", "2")
	testutil.AssertErrorIs(t, err, linearerrors.ErrNetworkFailure)
	if got := mapErrorToExitCode(err); got != 3 {
		t.Errorf("exit code = %d, want 3", got)
	}

	for _, key := range []string{"ENG-1", "ENG-2"} {
		testutil.AssertContainsString(t, out, key)
	}
	if got := server.RequestCount(); got != 2 {
		t.Errorf("RequestCount() = %d, want 2", got)
	}
}

func TestIssuesCreateRequiresTeamAndTitle(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{})
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "issues", "create", "--api-key", "k", "--title", "No team")
	testutil.AssertErrorIs(t, err, linearerrors.ErrOperationFailed)
	if mapErrorToExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", mapErrorToExitCode(err))
	}
	testutil.AssertNoRequests(t, server)
}

func TestIssuesUpdateSendsOnlyChangedFields(t *testing.T) {
	issue := testutil.NewIssueBuilder(7).WithID("issue-7").WithTitle("Renamed").WithPriority(2).Build()
	server := testutil.NewDataServer(t, map[string]any{
		"issueUpdate": testutil.Payload(true, "issue", issue),
	})
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "issues", "update", "issue-7", "--api-key", "k", "--title", "Renamed", "--priority", "high")
	testutil.AssertNoError(t, err)

	input, _ := server.LastRequest(t).Variables["input"].(map[string]any)
	if input["title"] != "Renamed" {
		t.Errorf("input title = %v, want Renamed", input["title"])
	}
	if input["priority"] != float64(2) {
		t.Errorf("input priority = %v, want 2", input["priority"])
	}
	for _, key := range []string{"description", "stateId", "assigneeId", "estimate", "labelIds"} {
		if _, ok := input[key]; ok {
			t.Errorf("input contains unset field %q: %v", key, input)
		}
	}
}

func TestIssuesGetNotFoundExitCode(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{"issue": nil})
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "issues", "get", "missing", "--api-key", "k")
	testutil.AssertErrorIs(t, err, linearerrors.ErrNotFound)
	if got := mapErrorToExitCode(err); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}
}

func TestAuthenticationFailureExitCode(t *testing.T) {
	server := testutil.NewErrorServer(t, 401)
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "teams", "list", "--api-key", "bad")
	testutil.AssertErrorIs(t, err, linearerrors.ErrAuthentication)
	if got := mapErrorToExitCode(err); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}
}

func TestAPIKeyResolution(t *testing.T) {
	viewer := testutil.NewUserBuilder("user-1").WithName("Ada").AsViewer().Build()

	t.Run("stored key", func(t *testing.T) {
		server := testutil.NewDataServer(t, map[string]any{"viewer": viewer})
		cliEnv(t, server)
		store := credential.NewStore(keyring.NewArrayKeyring(nil))
		if err := store.SetAPIKey("lin_api_stored"); err != nil {
			t.Fatal(err)
		}

		out, err := runCLI(t, store, nil, "auth", "whoami")
		if err != nil {
			t.Fatalf("auth whoami: %v", err)
		}
		testutil.AssertContainsString(t, out, "Ada <user-1@example.com>")
		if got := server.LastRequest(t).Header.Get("Authorization"); got != "lin_api_stored" {
			t.Errorf("Authorization = %q, want lin_api_stored", got)
		}
	})

	t.Run("environment beats stored key", func(t *testing.T) {
		server := testutil.NewDataServer(t, map[string]any{"viewer": viewer})
		cliEnv(t, server)
		t.Setenv("LINEAR_API_KEY", "lin_api_env")
		store := credential.NewStore(keyring.NewArrayKeyring(nil))
		_ = store.SetAPIKey("lin_api_stored")

		if _, err := runCLI(t, store, nil, "users", "me"); err != nil {
			t.Fatalf("users me: %v", err)
		}
		if got := server.LastRequest(t).Header.Get("Authorization"); got != "lin_api_env" {
			t.Errorf("Authorization = %q, want lin_api_env", got)
		}
	})

	t.Run("flag beats environment", func(t *testing.T) {
		server := testutil.NewDataServer(t, map[string]any{"viewer": viewer})
		cliEnv(t, server)
		t.Setenv("LINEAR_API_KEY", "lin_api_env")

		if _, err := runCLI(t, nil, nil, "users", "me", "--api-key", "lin_api_flag"); err != nil {
			t.Fatalf("users me: %v", err)
		}
		if got := server.LastRequest(t).Header.Get("Authorization"); got != "lin_api_flag" {
			t.Errorf("Authorization = %q, want lin_api_flag", got)
		}
	})

	t.Run("no key anywhere", func(t *testing.T) {
		server := testutil.NewDataServer(t, map[string]any{"viewer": viewer})
		cliEnv(t, server)

		_, err := runCLI(t, nil, nil, "users", "me")
		testutil.AssertErrorIs(t, err, linearerrors.ErrConfig)
		testutil.AssertNoRequests(t, server)
	})
}

func TestAuthSetAndClearKey(t *testing.T) {
	cliEnv(t, nil)
	store := credential.NewStore(keyring.NewArrayKeyring(nil))

	if _, err := runCLI(t, store, strings.NewReader("lin_api_piped\n"), "auth", "set-key"); err != nil {
		t.Fatalf("auth set-key: %v", err)
	}
	key, err := store.APIKey()
	if err != nil || key != "lin_api_piped" {
		t.Fatalf("APIKey() = %q, %v; want lin_api_piped", key, err)
	}

	if _, err := runCLI(t, store, nil, "auth", "clear-key"); err != nil {
		t.Fatalf("auth clear-key: %v", err)
	}
	if _, err := store.APIKey(); !errors.Is(err, credential.ErrNoAPIKey) {
		t.Errorf("APIKey() after clear: err = %v, want ErrNoAPIKey", err)
	}
}

func TestInvalidFormatRejectedBeforeRequest(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{})
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "teams", "list", "--api-key", "k", "--format", "xml")
	testutil.AssertErrorContains(t, err, "unknown output format")
	testutil.AssertNoRequests(t, server)
}

func TestAttachmentsCreateFromSource(t *testing.T) {
	attachment := testutil.Attachment("att-1", "issue-1", "https://figma.com/file/abc", "figma", map[string]any{"source": "figma"})
	server := testutil.NewDataServer(t, map[string]any{
		"attachmentCreate": testutil.Payload(true, "attachment", attachment),
	})
	cliEnv(t, server)

	out, err := runCLI(t, nil, nil, "attachments", "create", "--api-key", "k", "--format", "ndjson",
		"--source", "figma", "--issue", "issue-1", "--url", "https://figma.com/file/abc",
		"--title", "Mockups", "--meta", "frame=42")
	if err != nil {
		t.Fatalf("attachments create: %v", err)
	}

	input, _ := server.LastRequest(t).Variables["input"].(map[string]any)
	meta, _ := input["metadata"].(map[string]any)
	if meta["source"] != "figma" || meta["frame"] != "42" {
		t.Errorf("metadata = %v, want source=figma frame=42", input["metadata"])
	}

	records := testutil.AssertNDJSONOutput(t, out, 1, "id", "url", "issue_id")
	if records[0]["source"] != "figma" {
		t.Errorf("source = %v, want figma", records[0]["source"])
	}
}

func TestAttachmentsCreateUnknownSource(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{})
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "attachments", "create", "--api-key", "k",
		"--source", "dropbox", "--issue", "issue-1", "--url", "https://example.com", "--title", "x")
	testutil.AssertErrorContains(t, err, "unknown attachment source")
	testutil.AssertNoRequests(t, server)
}

func TestCommentsDelete(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{
		"commentDelete": map[string]any{"success": true},
	})
	cliEnv(t, server)

	out, err := runCLI(t, nil, nil, "comments", "delete", "comment-1", "--api-key", "k")
	if err != nil {
		t.Fatalf("comments delete: %v", err)
	}
	if strings.TrimSpace(out) != "Deleted comment comment-1" {
		t.Errorf("output = %q", out)
	}
	if got := server.LastRequest(t).Operation; got != "CommentDelete" {
		t.Errorf("operation = %q, want CommentDelete", got)
	}
}

func TestStatesListUnknownTeam(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{"team": nil})
	cliEnv(t, server)

	_, err := runCLI(t, nil, nil, "states", "list", "team-missing", "--api-key", "k")
	testutil.AssertErrorIs(t, err, linearerrors.ErrNotFound)
}

func TestUsersListFiltersByTeam(t *testing.T) {
	users := testutil.Connection([]map[string]any{
		testutil.NewUserBuilder("user-1").WithTeams("team-1").Build(),
		testutil.NewUserBuilder("user-2").WithTeams("team-2").Build(),
	}, false, "")
	server := testutil.NewDataServer(t, map[string]any{"users": users})
	cliEnv(t, server)

	out, err := runCLI(t, nil, nil, "users", "list", "--api-key", "k", "--team", "team-1", "--format", "ndjson")
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	records := testutil.AssertNDJSONOutput(t, out, 1, "id", "email")
	if records[0]["id"] != "user-1" {
		t.Errorf("id = %v, want user-1", records[0]["id"])
	}
}
