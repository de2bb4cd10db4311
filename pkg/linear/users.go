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

// UsersService handles user operations. Users are read-only.
type UsersService struct {
	client *Client
}

// Get fetches a user by id.
func (s *UsersService) Get(ctx context.Context, id string) (models.User, error) {
	var query struct {
		User *userNode `graphql:"user(id: $id)"`
	}
	if err := s.client.query.Query(ctx, &query, map[string]any{"id": graphql.String(id)}); err != nil {
		return models.User{}, err
	}
	if query.User == nil {
		return models.User{}, linearerrors.NotFound(linearerrors.ResourceUser, linearerrors.OpGet, id)
	}
	return query.User.toModel(), nil
}

// Me returns the user the API key belongs to.
func (s *UsersService) Me(ctx context.Context) (models.User, error) {
	var query struct {
		Viewer *userNode
	}
	if err := s.client.query.Query(ctx, &query, nil); err != nil {
		return models.User{}, err
	}
	if query.Viewer == nil {
		return models.User{}, &linearerrors.OperationError{
			Resource:  linearerrors.ResourceUser,
			Operation: linearerrors.OpMe,
			NotFound:  true,
			Message:   "no viewer returned for the API key",
		}
	}
	return query.Viewer.toModel(), nil
}

// List returns an iterator over the organization's users. When TeamID is
// set, users outside that team are skipped as each page arrives.
func (s *UsersService) List(ctx context.Context, opts UserListOptions) *Iterator[models.User] {
	return newIterator(ctx, opts.After, func(ctx context.Context, cursor string) ([]models.User, pageInfo, error) {
		var query struct {
			Users *connection[userNode] `graphql:"users(first: $first, after: $after, includeArchived: $includeArchived, includeDisabled: $includeDisabled)"`
		}
		vars := s.client.queryPageVariables(map[string]any{
			"includeArchived": graphql.Boolean(opts.IncludeArchived),
			"includeDisabled": graphql.Boolean(opts.IncludeDisabled),
		}, opts.First, cursor)

		if err := s.client.query.Query(ctx, &query, vars); err != nil {
			return nil, pageInfo{}, err
		}
		if query.Users == nil {
			return nil, pageInfo{}, &linearerrors.OperationError{
				Resource:  linearerrors.ResourceUser,
				Operation: linearerrors.OpList,
				Message:   "response contained no users connection",
			}
		}

		users := make([]models.User, 0, len(query.Users.Nodes))
		for i := range query.Users.Nodes {
			user := query.Users.Nodes[i].toModel()
			if opts.TeamID != "" && !user.InTeam(opts.TeamID) {
				continue
			}
			users = append(users, user)
		}
		return users, query.Users.PageInfo, nil
	})
}
