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
	"log/slog"

	"github.com/shurcooL/graphql"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// IssuesService handles issue operations.
type IssuesService struct {
	client *Client
}

type issuePayload struct {
	Success graphql.Boolean `json:"success"`
	Issue   *issueNode      `json:"issue"`
}

// Get fetches an issue by id or identifier (e.g. "ENG-123").
func (s *IssuesService) Get(ctx context.Context, id string) (models.Issue, error) {
	node, err := field[issueNode](ctx, s.client, issueGetQuery, "issue", map[string]any{"id": graphql.String(id)})
	if err != nil {
		return models.Issue{}, err
	}
	if node == nil {
		return models.Issue{}, linearerrors.NotFound(linearerrors.ResourceIssue, linearerrors.OpGet, id)
	}
	issue, err := node.toModel()
	if err != nil {
		return models.Issue{}, invalidPayload(linearerrors.ResourceIssue, linearerrors.OpGet, id, err)
	}
	return issue, nil
}

// Create creates an issue.
func (s *IssuesService) Create(ctx context.Context, input IssueCreateInput) (models.Issue, error) {
	if input.TeamID == "" || input.Title == "" {
		return models.Issue{}, &linearerrors.OperationError{
			Resource:  linearerrors.ResourceIssue,
			Operation: linearerrors.OpCreate,
			Input:     input,
			Message:   "teamId and title are required",
		}
	}

	payload, err := field[issuePayload](ctx, s.client, issueCreateMutation, "issueCreate", map[string]any{"input": input})
	if err != nil {
		return models.Issue{}, err
	}
	if payload == nil || !payload.Success || payload.Issue == nil {
		return models.Issue{}, rejected(linearerrors.ResourceIssue, linearerrors.OpCreate, "", input)
	}

	issue, err := payload.Issue.toModel()
	if err != nil {
		return models.Issue{}, invalidPayload(linearerrors.ResourceIssue, linearerrors.OpCreate, string(payload.Issue.ID), err)
	}
	s.client.logger.Debug("issue created", slog.String("id", issue.ID), slog.String("identifier", issue.Identifier))
	return issue, nil
}

// Update changes the fields set in input and returns the updated issue.
func (s *IssuesService) Update(ctx context.Context, id string, input IssueUpdateInput) (models.Issue, error) {
	vars := map[string]any{"id": graphql.String(id), "input": input}
	payload, err := field[issuePayload](ctx, s.client, issueUpdateMutation, "issueUpdate", vars)
	if err != nil {
		return models.Issue{}, err
	}
	if payload == nil || !payload.Success || payload.Issue == nil {
		return models.Issue{}, rejected(linearerrors.ResourceIssue, linearerrors.OpUpdate, id, input)
	}

	issue, err := payload.Issue.toModel()
	if err != nil {
		return models.Issue{}, invalidPayload(linearerrors.ResourceIssue, linearerrors.OpUpdate, id, err)
	}
	return issue, nil
}

// Delete deletes an issue. Linear moves deleted issues to the trash.
func (s *IssuesService) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, linearerrors.ResourceIssue, issueDeleteMutation, "issueDelete", id)
}

// List returns an iterator over the issues matching opts.
func (s *IssuesService) List(ctx context.Context, opts IssueListOptions) *Iterator[models.Issue] {
	filter := opts.filter()
	return newIterator(ctx, opts.After, func(ctx context.Context, cursor string) ([]models.Issue, pageInfo, error) {
		vars := map[string]any{}
		if filter != nil {
			vars["filter"] = filter
		}
		vars = s.client.pageVariables(vars, opts.First, cursor)

		conn, err := field[connection[issueNode]](ctx, s.client, issueListQuery, "issues", vars)
		if err != nil {
			return nil, pageInfo{}, err
		}
		if conn == nil {
			return nil, pageInfo{}, &linearerrors.OperationError{
				Resource:  linearerrors.ResourceIssue,
				Operation: linearerrors.OpList,
				Message:   "response contained no issues connection",
			}
		}

		issues := make([]models.Issue, 0, len(conn.Nodes))
		for i := range conn.Nodes {
			issue, err := conn.Nodes[i].toModel()
			if err != nil {
				return nil, pageInfo{}, invalidPayload(linearerrors.ResourceIssue, linearerrors.OpList, string(conn.Nodes[i].ID), err)
			}
			issues = append(issues, issue)
		}
		return issues, conn.PageInfo, nil
	})
}
