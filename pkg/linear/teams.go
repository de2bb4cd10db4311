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

// TeamsService handles team operations. Teams are read-only.
type TeamsService struct {
	client *Client
}

// Get fetches a team by id or key.
func (s *TeamsService) Get(ctx context.Context, id string) (models.Team, error) {
	var query struct {
		Team *teamNode `graphql:"team(id: $id)"`
	}
	if err := s.client.query.Query(ctx, &query, map[string]any{"id": graphql.String(id)}); err != nil {
		return models.Team{}, err
	}
	if query.Team == nil {
		return models.Team{}, linearerrors.NotFound(linearerrors.ResourceTeam, linearerrors.OpGet, id)
	}
	team, err := query.Team.toModel()
	if err != nil {
		return models.Team{}, invalidPayload(linearerrors.ResourceTeam, linearerrors.OpGet, id, err)
	}
	return team, nil
}

// List returns an iterator over the teams visible to the API key.
func (s *TeamsService) List(ctx context.Context, opts TeamListOptions) *Iterator[models.Team] {
	return newIterator(ctx, opts.After, func(ctx context.Context, cursor string) ([]models.Team, pageInfo, error) {
		var query struct {
			Teams *connection[teamNode] `graphql:"teams(first: $first, after: $after, includeArchived: $includeArchived)"`
		}
		vars := s.client.queryPageVariables(map[string]any{"includeArchived": graphql.Boolean(opts.IncludeArchived)}, opts.First, cursor)

		if err := s.client.query.Query(ctx, &query, vars); err != nil {
			return nil, pageInfo{}, err
		}
		if query.Teams == nil {
			return nil, pageInfo{}, &linearerrors.OperationError{
				Resource:  linearerrors.ResourceTeam,
				Operation: linearerrors.OpList,
				Message:   "response contained no teams connection",
			}
		}

		conn := query.Teams
		teams := make([]models.Team, 0, len(conn.Nodes))
		for i := range conn.Nodes {
			team, err := conn.Nodes[i].toModel()
			if err != nil {
				return nil, pageInfo{}, invalidPayload(linearerrors.ResourceTeam, linearerrors.OpList, string(conn.Nodes[i].ID), err)
			}
			teams = append(teams, team)
		}
		return teams, conn.PageInfo, nil
	})
}
