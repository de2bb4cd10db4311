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

	"github.com/shurcooL/graphql"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// CommentsService handles comment operations.
type CommentsService struct {
	client *Client
}

type commentPayload struct {
	Success graphql.Boolean `json:"success"`
	Comment *commentNode    `json:"comment"`
}

// Get fetches a comment by id.
func (s *CommentsService) Get(ctx context.Context, id string) (models.Comment, error) {
	node, err := field[commentNode](ctx, s.client, commentGetQuery, "comment", map[string]any{"id": graphql.String(id)})
	if err != nil {
		return models.Comment{}, err
	}
	if node == nil {
		return models.Comment{}, linearerrors.NotFound(linearerrors.ResourceComment, linearerrors.OpGet, id)
	}
	return node.toModel()
}

// Create adds a comment to an issue, or a reply when ParentID is set.
func (s *CommentsService) Create(ctx context.Context, input CommentCreateInput) (models.Comment, error) {
	payload, err := field[commentPayload](ctx, s.client, commentCreateMutation, "commentCreate", map[string]any{"input": input})
	if err != nil {
		return models.Comment{}, err
	}
	if payload == nil || !payload.Success || payload.Comment == nil {
		return models.Comment{}, rejected(linearerrors.ResourceComment, linearerrors.OpCreate, "", input)
	}
	return payload.Comment.toModel()
}

// Update replaces the body of a comment. The body is the only mutable field.
func (s *CommentsService) Update(ctx context.Context, id, body string) (models.Comment, error) {
	input := commentUpdateInput{Body: graphql.String(body)}
	vars := map[string]any{"id": graphql.String(id), "input": input}
	payload, err := field[commentPayload](ctx, s.client, commentUpdateMutation, "commentUpdate", vars)
	if err != nil {
		return models.Comment{}, err
	}
	if payload == nil || !payload.Success || payload.Comment == nil {
		return models.Comment{}, rejected(linearerrors.ResourceComment, linearerrors.OpUpdate, id, input)
	}
	return payload.Comment.toModel()
}

// Delete deletes a comment.
func (s *CommentsService) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, linearerrors.ResourceComment, commentDeleteMutation, "commentDelete", id)
}

type issueCommentsData struct {
	Comments connection[commentNode] `json:"comments"`
}

// ListForIssue returns an iterator over the comments of an issue. If the
// issue disappears while iterating, the iterator stops with an
// OperationError matching ErrNotFound.
func (s *CommentsService) ListForIssue(ctx context.Context, issueID string, opts ListOptions) *Iterator[models.Comment] {
	return newIterator(ctx, opts.After, func(ctx context.Context, cursor string) ([]models.Comment, pageInfo, error) {
		vars := s.client.pageVariables(map[string]any{"issueId": graphql.String(issueID)}, opts.First, cursor)

		issue, err := field[issueCommentsData](ctx, s.client, issueCommentsQuery, "issue", vars)
		if err != nil {
			return nil, pageInfo{}, err
		}
		if issue == nil {
			return nil, pageInfo{}, linearerrors.ParentNotFound(linearerrors.ResourceComment, linearerrors.ResourceIssue, issueID)
		}

		comments := make([]models.Comment, 0, len(issue.Comments.Nodes))
		for i := range issue.Comments.Nodes {
			comment, err := issue.Comments.Nodes[i].toModel()
			if err != nil {
				return nil, pageInfo{}, err
			}
			comments = append(comments, comment)
		}
		return comments, issue.Comments.PageInfo, nil
	})
}
