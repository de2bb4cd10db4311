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

// WorkflowStatesService handles workflow state lookups. States are
// read-only.
type WorkflowStatesService struct {
	client *Client
}

// Get fetches a workflow state by id.
func (s *WorkflowStatesService) Get(ctx context.Context, id string) (models.WorkflowState, error) {
	var query struct {
		WorkflowState *stateNode `graphql:"workflowState(id: $id)"`
	}
	if err := s.client.query.Query(ctx, &query, map[string]any{"id": graphql.String(id)}); err != nil {
		return models.WorkflowState{}, err
	}
	if query.WorkflowState == nil {
		return models.WorkflowState{}, linearerrors.NotFound(linearerrors.ResourceWorkflowState, linearerrors.OpGet, id)
	}
	state, err := query.WorkflowState.toModel()
	if err != nil {
		return models.WorkflowState{}, invalidPayload(linearerrors.ResourceWorkflowState, linearerrors.OpGet, id, err)
	}
	return state, nil
}

// List returns an iterator over a team's workflow states. An unknown team
// stops the iterator with an OperationError matching ErrNotFound.
func (s *WorkflowStatesService) List(ctx context.Context, teamID string, opts WorkflowStateListOptions) *Iterator[models.WorkflowState] {
	return newIterator(ctx, opts.After, func(ctx context.Context, cursor string) ([]models.WorkflowState, pageInfo, error) {
		var query struct {
			Team *struct {
				States connection[stateNode] `graphql:"states(first: $first, after: $after, includeArchived: $includeArchived)"`
			} `graphql:"team(id: $teamId)"`
		}
		vars := s.client.queryPageVariables(map[string]any{
			"teamId":          graphql.String(teamID),
			"includeArchived": graphql.Boolean(opts.IncludeArchived),
		}, opts.First, cursor)

		if err := s.client.query.Query(ctx, &query, vars); err != nil {
			return nil, pageInfo{}, err
		}
		if query.Team == nil {
			return nil, pageInfo{}, linearerrors.ParentNotFound(linearerrors.ResourceWorkflowState, linearerrors.ResourceTeam, teamID)
		}

		conn := query.Team.States
		states := make([]models.WorkflowState, 0, len(conn.Nodes))
		for i := range conn.Nodes {
			state, err := conn.Nodes[i].toModel()
			if err != nil {
				return nil, pageInfo{}, invalidPayload(linearerrors.ResourceWorkflowState, linearerrors.OpList, string(conn.Nodes[i].ID), err)
			}
			states = append(states, state)
		}
		return states, conn.PageInfo, nil
	})
}
