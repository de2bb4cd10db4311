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

import "time"

// User is a member of a Linear organization.
type User struct {
	Node
	Name         string       `json:"name"`
	DisplayName  string       `json:"display_name,omitempty"`
	Email        string       `json:"email"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Organization Organization `json:"organization"`
	Active       bool         `json:"active"`
	LastSeen     *time.Time   `json:"last_seen,omitempty"`
	Timezone     string       `json:"timezone,omitempty"`

	// IsMe is set on the user the API key belongs to.
	IsMe bool `json:"is_me"`

	// Teams holds the user's teams in server order, ids only.
	Teams []TeamRef `json:"teams,omitempty"`
}

// TeamIDs returns the ids of the user's teams in server order.
func (u User) TeamIDs() []string {
	ids := make([]string, 0, len(u.Teams))
	for _, team := range u.Teams {
		ids = append(ids, team.ID)
	}
	return ids
}

// DefaultTeamID returns the user's first team, if any.
func (u User) DefaultTeamID() (string, bool) {
	if len(u.Teams) == 0 {
		return "", false
	}
	return u.Teams[0].ID, true
}

// InTeam reports whether the user belongs to the given team.
func (u User) InTeam(teamID string) bool {
	for _, team := range u.Teams {
		if team.ID == teamID {
			return true
		}
	}
	return false
}
