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

package linear

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/linear-go/internal/testutil"
	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
)

func TestCommentsGet(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{
		"comment": testutil.Comment("comment-1", "issue-1", "Looks good", "", "comment-2", "comment-3"),
	})
	client := newTestClient(t, server)

	comment, err := client.Comments.Get(context.Background(), "comment-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if comment.Body != "Looks good" || comment.IssueID != "issue-1" || comment.UserID != "user-1" {
		t.Errorf("comment = %+v", comment)
	}
	if comment.IsReply() {
		t.Error("top-level comment reported as reply")
	}
	if !reflect.DeepEqual(comment.ChildIDs, []string{"comment-2", "comment-3"}) {
		t.Errorf("ChildIDs = %v", comment.ChildIDs)
	}
}

func TestCommentsGetNotFound(t *testing.T) {
	client := newTestClient(t, testutil.NewDataServer(t, map[string]any{"comment": nil}))

	_, err := client.Comments.Get(context.Background(), "gone")
	var opErr *linearerrors.OperationError
	if !errors.As(err, &opErr) || !errors.Is(err, linearerrors.ErrNotFound) {
		t.Fatalf("Get() error = %v, want not-found OperationError", err)
	}
	if opErr.Resource != linearerrors.ResourceComment {
		t.Errorf("Resource = %s, want comment", opErr.Resource)
	}
}

func TestCommentsCreateReply(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{
		"commentCreate": testutil.Payload(true, "comment", testutil.Comment("comment-9", "issue-1", "Agreed", "comment-1")),
	})
	client := newTestClient(t, server)

	comment, err := client.Comments.Create(context.Background(), CommentCreateInput{
		IssueID:  "issue-1",
		Body:     "Agreed",
		ParentID: graphql.NewString("comment-1"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !comment.IsReply() || comment.ParentID != "comment-1" {
		t.Errorf("ParentID = %q", comment.ParentID)
	}

	input := server.LastRequest(t).Variables["input"]
	want := map[string]any{"issueId": "issue-1", "body": "Agreed", "parentId": "comment-1"}
	if !reflect.DeepEqual(input, want) {
		t.Errorf("input = %v, want %v", input, want)
	}
}

func TestCommentsCreateTopLevelOmitsParent(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{
		"commentCreate": testutil.Payload(true, "comment", testutil.Comment("comment-9", "issue-1", "Hi", "")),
	})
	client := newTestClient(t, server)

	if _, err := client.Comments.Create(context.Background(), CommentCreateInput{IssueID: "issue-1", Body: "Hi"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	input := server.LastRequest(t).Variables["input"].(map[string]any)
	if _, ok := input["parentId"]; ok {
		t.Error("parentId should be omitted for top-level comments")
	}
}

func TestCommentsUpdateSendsOnlyBody(t *testing.T) {
	server := testutil.NewDataServer(t, map[string]any{
		"commentUpdate": testutil.Payload(true, "comment", testutil.Comment("comment-1", "issue-1", "Edited", "")),
	})
	client := newTestClient(t, server)

	comment, err := client.Comments.Update(context.Background(), "comment-1", "Edited")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if comment.Body != "Edited" {
		t.Errorf("Body = %q", comment.Body)
	}
	req := server.LastRequest(t)
	if !reflect.DeepEqual(req.Variables["input"], map[string]any{"body": "Edited"}) {
		t.Errorf("input = %v", req.Variables["input"])
	}
}

func TestCommentsUpdateRejected(t *testing.T) {
	client := newTestClient(t, testutil.NewDataServer(t, map[string]any{
		"commentUpdate": testutil.Payload(false, "comment", nil),
	}))

	_, err := client.Comments.Update(context.Background(), "comment-1", "x")
	var opErr *linearerrors.OperationError
	if !errors.As(err, &opErr) || opErr.Operation != linearerrors.OpUpdate || opErr.ID != "comment-1" {
		t.Errorf("Update() error = %v", err)
	}
}

func TestCommentsDelete(t *testing.T) {
	client := newTestClient(t, testutil.NewDataServer(t, map[string]any{
		"commentDelete": map[string]any{"success": true},
	}))
	if err := client.Comments.Delete(context.Background(), "comment-1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestCommentsListForIssue(t *testing.T) {
	server := testutil.NewSequenceServer(t,
		testutil.Data(map[string]any{"issue": map[string]any{"comments": testutil.Connection([]map[string]any{
			testutil.Comment("c1", "issue-1", "one", ""),
		}, true, "cursor1")}}),
		testutil.Data(map[string]any{"issue": map[string]any{"comments": testutil.Connection([]map[string]any{
			testutil.Comment("c2", "issue-1", "two", "c1"),
		}, false, "")}}),
	)
	client := newTestClient(t, server)

	comments, err := client.Comments.ListForIssue(context.Background(), "issue-1", ListOptions{First: 1}).Collect()
	if err != nil {
		t.Fatalf("ListForIssue() error = %v", err)
	}
	if len(comments) != 2 || comments[1].ParentID != "c1" {
		t.Errorf("comments = %+v", comments)
	}

	reqs := server.Requests()
	if len(reqs) != 2 || reqs[1].Variables["after"] != "cursor1" || reqs[0].Variables["issueId"] != "issue-1" {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestCommentsListForMissingIssue(t *testing.T) {
	client := newTestClient(t, testutil.NewDataServer(t, map[string]any{"issue": nil}))

	it := client.Comments.ListForIssue(context.Background(), "issue-gone", ListOptions{})
	if it.Next() {
		t.Fatal("Next() = true for a missing issue")
	}

	var opErr *linearerrors.OperationError
	if !errors.As(it.Err(), &opErr) {
		t.Fatalf("Err() = %v, want OperationError", it.Err())
	}
	if opErr.Resource != linearerrors.ResourceComment || opErr.Operation != linearerrors.OpList || opErr.ID != "issue-gone" {
		t.Errorf("OperationError = %+v", opErr)
	}
	if !errors.Is(it.Err(), linearerrors.ErrNotFound) {
		t.Error("missing parent should match ErrNotFound")
	}
}

func TestCommentsListStopsWhenIssueDisappears(t *testing.T) {
	server := testutil.NewSequenceServer(t,
		testutil.Data(map[string]any{"issue": map[string]any{"comments": testutil.Connection([]map[string]any{
			testutil.Comment("c1", "issue-1", "one", ""),
		}, true, "cursor1")}}),
		testutil.Data(map[string]any{"issue": nil}),
	)
	client := newTestClient(t, server)

	comments, err := client.Comments.ListForIssue(context.Background(), "issue-1", ListOptions{}).Collect()
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Errorf("comments yielded before failure = %+v", comments)
	}
	if !errors.Is(err, linearerrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
