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

package testutil

import (
	"fmt"
	"time"
)

// baseTime is the creation time of every built entity.
var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func nodeFields(id string) map[string]any {
	return map[string]any{
		"id":         id,
		"createdAt":  timestamp(baseTime),
		"updatedAt":  timestamp(baseTime.Add(time.Hour)),
		"archivedAt": nil,
	}
}

// Connection wraps nodes in a connection with the given page info. An empty
// cursor is encoded as null.
func Connection(nodes []map[string]any, hasNextPage bool, endCursor string) map[string]any {
	var cursor any
	if endCursor != "" {
		cursor = endCursor
	}
	if nodes == nil {
		nodes = []map[string]any{}
	}
	return map[string]any{
		"nodes": nodes,
		"pageInfo": map[string]any{
			"hasNextPage": hasNextPage,
			"endCursor":   cursor,
		},
	}
}

// TeamRef builds the reference form of a team.
func TeamRef(id, key string) map[string]any {
	team := nodeFields(id)
	team["name"] = "Team " + key
	team["key"] = key
	team["description"] = nil
	team["organization"] = map[string]any{"id": "org-1"}
	return team
}

// Team builds a full team payload.
func Team(id, key string) map[string]any {
	team := TeamRef(id, key)
	team["private"] = false
	team["defaultIssueState"] = State("state-backlog", "Backlog", "backlog", id)
	team["autoArchivePeriod"] = 6
	team["autoClosePeriod"] = nil
	team["cyclesEnabled"] = true
	team["cycleDuration"] = 2
	team["cycleCooldownTime"] = 0
	team["triageEnabled"] = false
	return team
}

// State builds a workflow state payload.
func State(id, name, stateType, teamID string) map[string]any {
	state := nodeFields(id)
	state["name"] = name
	state["type"] = stateType
	state["color"] = "#95a2b3"
	state["position"] = 1.0
	state["description"] = nil
	state["team"] = map[string]any{"id": teamID}
	return state
}

// UserBuilder provides a fluent API for user payloads.
type UserBuilder struct {
	id      string
	name    string
	active  bool
	isMe    bool
	teamIDs []string
}

// NewUserBuilder creates a user builder with defaults.
func NewUserBuilder(id string) *UserBuilder {
	return &UserBuilder{id: id, name: "User " + id, active: true}
}

// WithName sets the user's name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithTeams sets the user's team memberships.
func (b *UserBuilder) WithTeams(teamIDs ...string) *UserBuilder {
	b.teamIDs = teamIDs
	return b
}

// AsViewer marks the user as the owner of the API key.
func (b *UserBuilder) AsViewer() *UserBuilder {
	b.isMe = true
	return b
}

// Inactive marks the user as disabled.
func (b *UserBuilder) Inactive() *UserBuilder {
	b.active = false
	return b
}

// Build creates the user payload.
func (b *UserBuilder) Build() map[string]any {
	user := nodeFields(b.id)
	user["name"] = b.name
	user["displayName"] = b.id
	user["email"] = b.id + "@example.com"
	user["avatarUrl"] = nil
	user["organization"] = map[string]any{"id": "org-1"}
	user["active"] = b.active
	user["lastSeen"] = timestamp(baseTime.Add(24 * time.Hour))
	user["timezone"] = "Europe/Berlin"
	user["isMe"] = b.isMe

	teams := make([]map[string]any, 0, len(b.teamIDs))
	for _, id := range b.teamIDs {
		teams = append(teams, map[string]any{"id": id})
	}
	user["teams"] = map[string]any{"nodes": teams}
	return user
}

// IssueBuilder provides a fluent API for issue payloads.
type IssueBuilder struct {
	id          string
	number      int
	title       string
	description any
	priority    float64
	stateType   string
	assigneeID  string
	parentID    string
	completedAt *time.Time
	canceledAt  *time.Time
	archivedAt  *time.Time
	estimate    any
	labelIDs    []string
}

// NewIssueBuilder creates an issue builder with defaults.
func NewIssueBuilder(number int) *IssueBuilder {
	return &IssueBuilder{
		id:        fmt.Sprintf("issue-%d", number),
		number:    number,
		title:     fmt.Sprintf("Issue %d", number),
		stateType: "unstarted",
		labelIDs:  []string{},
	}
}

// WithID overrides the generated id.
func (b *IssueBuilder) WithID(id string) *IssueBuilder {
	b.id = id
	return b
}

// WithTitle sets the issue title.
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.title = title
	return b
}

// WithDescription sets the issue description.
func (b *IssueBuilder) WithDescription(description string) *IssueBuilder {
	b.description = description
	return b
}

// WithPriority sets the wire priority value.
func (b *IssueBuilder) WithPriority(priority float64) *IssueBuilder {
	b.priority = priority
	return b
}

// WithStateType sets the type of the issue's workflow state.
func (b *IssueBuilder) WithStateType(stateType string) *IssueBuilder {
	b.stateType = stateType
	return b
}

// WithAssignee sets the assignee.
func (b *IssueBuilder) WithAssignee(userID string) *IssueBuilder {
	b.assigneeID = userID
	return b
}

// WithParent links the issue to a parent issue.
func (b *IssueBuilder) WithParent(parentID string) *IssueBuilder {
	b.parentID = parentID
	return b
}

// WithEstimate sets the estimate.
func (b *IssueBuilder) WithEstimate(estimate float64) *IssueBuilder {
	b.estimate = estimate
	return b
}

// WithLabels sets the label ids.
func (b *IssueBuilder) WithLabels(ids ...string) *IssueBuilder {
	b.labelIDs = ids
	return b
}

// Completed marks the issue as completed at t.
func (b *IssueBuilder) Completed(t time.Time) *IssueBuilder {
	b.completedAt = &t
	b.stateType = "completed"
	return b
}

// WithCompletedAt sets the completion time without touching the state, as
// seen on an issue reopened after completion.
func (b *IssueBuilder) WithCompletedAt(t time.Time) *IssueBuilder {
	b.completedAt = &t
	return b
}

// Canceled marks the issue as canceled at t.
func (b *IssueBuilder) Canceled(t time.Time) *IssueBuilder {
	b.canceledAt = &t
	b.stateType = "canceled"
	return b
}

// Archived marks the issue as archived at t.
func (b *IssueBuilder) Archived(t time.Time) *IssueBuilder {
	b.archivedAt = &t
	return b
}

// Build creates the issue payload.
func (b *IssueBuilder) Build() map[string]any {
	issue := nodeFields(b.id)
	issue["title"] = b.title
	issue["description"] = b.description
	issue["state"] = State("state-"+b.stateType, b.stateType, b.stateType, "team-1")
	issue["priority"] = b.priority
	issue["number"] = b.number
	issue["identifier"] = fmt.Sprintf("ENG-%d", b.number)
	issue["team"] = TeamRef("team-1", "ENG")
	issue["assignee"] = nil
	issue["creator"] = NewUserBuilder("user-creator").Build()
	issue["dueDate"] = nil
	issue["startedAt"] = nil
	issue["completedAt"] = optionalTime(b.completedAt)
	issue["canceledAt"] = optionalTime(b.canceledAt)
	issue["archivedAt"] = optionalTime(b.archivedAt)
	issue["labelIds"] = b.labelIDs
	issue["parent"] = nil
	issue["children"] = map[string]any{"nodes": []map[string]any{}}
	issue["url"] = fmt.Sprintf("https://linear.app/acme/issue/ENG-%d", b.number)
	issue["branchName"] = fmt.Sprintf("eng-%d", b.number)
	issue["estimate"] = b.estimate

	if b.assigneeID != "" {
		issue["assignee"] = NewUserBuilder(b.assigneeID).Build()
	}
	if b.parentID != "" {
		issue["parent"] = map[string]any{"id": b.parentID, "identifier": "ENG-0", "title": "Parent", "number": 0, "url": ""}
	}
	return issue
}

func optionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timestamp(*t)
}

// Comment builds a comment payload. An empty parentID makes a top-level
// comment.
func Comment(id, issueID, body, parentID string, childIDs ...string) map[string]any {
	comment := nodeFields(id)
	comment["body"] = body
	comment["issue"] = map[string]any{"id": issueID}
	comment["user"] = map[string]any{"id": "user-1"}
	comment["parent"] = nil
	if parentID != "" {
		comment["parent"] = map[string]any{"id": parentID}
	}
	children := make([]map[string]any, 0, len(childIDs))
	for _, child := range childIDs {
		children = append(children, map[string]any{"id": child})
	}
	comment["children"] = map[string]any{"nodes": children}
	return comment
}

// Attachment builds an attachment payload. source may be nil to leave it
// to the metadata.
func Attachment(id, issueID, url string, source any, metadata map[string]any) map[string]any {
	attachment := nodeFields(id)
	attachment["title"] = url
	attachment["subtitle"] = nil
	attachment["source"] = source
	attachment["sourceType"] = nil
	attachment["url"] = url
	attachment["issue"] = map[string]any{"id": issueID}
	attachment["creator"] = map[string]any{"id": "user-1"}
	attachment["metadata"] = metadata
	attachment["groupBySource"] = true
	return attachment
}

// Payload builds a mutation payload with the entity under key.
func Payload(success bool, key string, entity map[string]any) map[string]any {
	payload := map[string]any{"success": success}
	if key != "" {
		payload[key] = entity
	}
	return payload
}
