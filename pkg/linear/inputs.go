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
	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/linear-go/pkg/models"
)

// Mutation inputs are typed so that only fields the server accepts can be
// expressed. Optional members are pointers and are omitted from the request
// when nil; use graphql.NewString and friends to set them.

// IssueCreateInput is the input of Issues.Create. TeamID and Title are required.
type IssueCreateInput struct {
	TeamID      graphql.String   `json:"teamId"`
	Title       graphql.String   `json:"title"`
	Description *graphql.String  `json:"description,omitempty"`
	StateID     *graphql.String  `json:"stateId,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	AssigneeID  *graphql.String  `json:"assigneeId,omitempty"`
	ParentID    *graphql.String  `json:"parentId,omitempty"`
	Estimate    *graphql.Float   `json:"estimate,omitempty"`
	DueDate     *graphql.String  `json:"dueDate,omitempty"`
	LabelIDs    []graphql.String `json:"labelIds,omitempty"`
}

// IssueUpdateInput is the input of Issues.Update. Every field is optional;
// nil fields are left unchanged on the server.
type IssueUpdateInput struct {
	Title       *graphql.String  `json:"title,omitempty"`
	Description *graphql.String  `json:"description,omitempty"`
	StateID     *graphql.String  `json:"stateId,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	AssigneeID  *graphql.String  `json:"assigneeId,omitempty"`
	ParentID    *graphql.String  `json:"parentId,omitempty"`
	Estimate    *graphql.Float   `json:"estimate,omitempty"`
	DueDate     *graphql.String  `json:"dueDate,omitempty"`
	LabelIDs    []graphql.String `json:"labelIds,omitempty"`
}

// CommentCreateInput is the input of Comments.Create. Set ParentID to
// reply to an existing comment.
type CommentCreateInput struct {
	IssueID  graphql.String  `json:"issueId"`
	Body     graphql.String  `json:"body"`
	ParentID *graphql.String `json:"parentId,omitempty"`
}

type commentUpdateInput struct {
	Body graphql.String `json:"body"`
}

// AttachmentURLInput is the input of Attachments.CreateURL.
// Title defaults to the URL.
type AttachmentURLInput struct {
	IssueID  graphql.String
	URL      graphql.String
	Title    *graphql.String
	Subtitle *graphql.String
	Metadata map[string]any
}

// AttachmentSourceInput is the input of Attachments.CreateFromSource.
// SourceType narrows the kind of object within the source, e.g. "file" for
// a Google Drive document.
type AttachmentSourceInput struct {
	IssueID    graphql.String
	URL        graphql.String
	Title      graphql.String
	Subtitle   *graphql.String
	SourceType *graphql.String
	Metadata   map[string]any
}

// attachmentCreateInput is the wire form of both attachment create inputs.
type attachmentCreateInput struct {
	IssueID  graphql.String  `json:"issueId"`
	URL      graphql.String  `json:"url"`
	Title    graphql.String  `json:"title"`
	Subtitle *graphql.String `json:"subtitle,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// AttachmentUpdateInput is the input of Attachments.Update. The server
// requires a title on every update.
type AttachmentUpdateInput struct {
	Title    graphql.String  `json:"title"`
	Subtitle *graphql.String `json:"subtitle,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// ListOptions controls paging for every list operation.
type ListOptions struct {
	// First is the page size. Zero uses the client default; values above
	// the server maximum are clamped.
	First int

	// After resumes listing after the given cursor.
	After string
}

// IssueListOptions filters Issues.List. Zero-valued filters are not sent.
type IssueListOptions struct {
	ListOptions

	TeamID     string
	AssigneeID string
	CreatorID  string
	StateType  models.WorkflowStateType

	// Priority is a pointer so that NoPriority can be filtered on.
	Priority *models.Priority

	// IncludeArchived lists archived issues too. By default only issues
	// without an archive time are returned.
	IncludeArchived bool
}

// filter builds the IssueFilter variable, or nil when nothing is filtered.
func (o IssueListOptions) filter() map[string]any {
	filter := map[string]any{}
	if o.TeamID != "" {
		filter["team"] = map[string]any{"id": map[string]any{"eq": o.TeamID}}
	}
	if o.AssigneeID != "" {
		filter["assignee"] = map[string]any{"id": map[string]any{"eq": o.AssigneeID}}
	}
	if o.CreatorID != "" {
		filter["creator"] = map[string]any{"id": map[string]any{"eq": o.CreatorID}}
	}
	if o.StateType != "" {
		filter["state"] = map[string]any{"type": map[string]any{"eq": string(o.StateType)}}
	}
	if o.Priority != nil {
		filter["priority"] = map[string]any{"eq": int(*o.Priority)}
	}
	if !o.IncludeArchived {
		filter["archivedAt"] = map[string]any{"null": true}
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}

// TeamListOptions filters Teams.List.
type TeamListOptions struct {
	ListOptions
	IncludeArchived bool
}

// UserListOptions filters Users.List. TeamID is applied client-side to
// each page, so a page may yield fewer users than requested.
type UserListOptions struct {
	ListOptions
	TeamID          string
	IncludeArchived bool
	IncludeDisabled bool
}

// WorkflowStateListOptions filters WorkflowStates.List.
type WorkflowStateListOptions struct {
	ListOptions
	IncludeArchived bool
}
