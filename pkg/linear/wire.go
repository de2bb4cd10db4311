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
	"encoding/json"
	"fmt"
	"time"

	"github.com/shurcooL/graphql"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// The node types below mirror the fragments in queries.go. They are
// decoded straight from the data member and converted into models.
// Team, user and workflow state nodes double as struct queries, so their
// field names must also resolve to the right GraphQL fields; a graphql
// tag overrides the name where the two differ.

type pageInfo struct {
	HasNextPage graphql.Boolean `json:"hasNextPage"`
	EndCursor   graphql.String  `json:"endCursor"`
}

type connection[T any] struct {
	Nodes    []T      `json:"nodes"`
	PageInfo pageInfo `json:"pageInfo"`
}

type idNode struct {
	ID graphql.String `json:"id"`
}

func (n *idNode) id() string {
	if n == nil {
		return ""
	}
	return string(n.ID)
}

func (n *idNode) organization() models.Organization {
	return models.Organization{ID: n.id()}
}

type teamRefNode struct {
	ID           graphql.String `json:"id"`
	Name         graphql.String `json:"name"`
	Key          graphql.String `json:"key"`
	Description  graphql.String `json:"description"`
	Organization *idNode        `json:"organization"`
	CreatedAt    *time.Time     `json:"createdAt"`
	UpdatedAt    *time.Time     `json:"updatedAt"`
	ArchivedAt   *time.Time     `json:"archivedAt"`
}

func (n *teamRefNode) toModel() models.TeamRef {
	if n == nil {
		return models.TeamRef{}
	}
	ref := models.TeamRef{
		ID:          string(n.ID),
		Name:        string(n.Name),
		Key:         string(n.Key),
		Description: string(n.Description),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		ArchivedAt:  n.ArchivedAt,
	}
	if n.Organization != nil {
		org := n.Organization.organization()
		ref.Organization = &org
	}
	return ref
}

// toTeam widens a team reference into a Team. Settings that were not
// selected keep their zero values.
func (n *teamRefNode) toTeam() models.Team {
	if n == nil {
		return models.Team{}
	}
	team := models.Team{
		Node:         models.Node{ID: string(n.ID), ArchivedAt: n.ArchivedAt},
		Name:         string(n.Name),
		Key:          string(n.Key),
		Description:  string(n.Description),
		Organization: n.Organization.organization(),
	}
	if n.CreatedAt != nil {
		team.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		team.UpdatedAt = *n.UpdatedAt
	}
	return team
}

type stateNode struct {
	ID          graphql.String `json:"id"`
	Name        graphql.String `json:"name"`
	Type        graphql.String `json:"type"`
	Color       graphql.String `json:"color"`
	Position    *graphql.Float `json:"position"`
	Description graphql.String `json:"description"`
	Team        *teamRefNode   `json:"team"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	ArchivedAt  *time.Time     `json:"archivedAt"`
}

func (n *stateNode) toModel() (models.WorkflowState, error) {
	stateType, err := models.ParseWorkflowStateType(string(n.Type))
	if err != nil {
		return models.WorkflowState{}, err
	}
	state := models.WorkflowState{
		Node:        models.Node{ID: string(n.ID), CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt, ArchivedAt: n.ArchivedAt},
		Name:        string(n.Name),
		Type:        stateType,
		Color:       string(n.Color),
		Description: string(n.Description),
		Team:        n.Team.toModel(),
	}
	if n.Position != nil {
		pos := float64(*n.Position)
		state.Position = &pos
	}
	return state, nil
}

type userNode struct {
	ID           graphql.String      `json:"id"`
	Name         graphql.String      `json:"name"`
	DisplayName  graphql.String      `json:"displayName"`
	Email        graphql.String      `json:"email"`
	AvatarURL    graphql.String      `json:"avatarUrl" graphql:"avatarUrl"`
	Organization *idNode             `json:"organization"`
	Active       *graphql.Boolean    `json:"active"`
	LastSeen     *time.Time          `json:"lastSeen"`
	Timezone     graphql.String      `json:"timezone"`
	IsMe         graphql.Boolean     `json:"isMe"`
	Teams        *connection[idNode] `json:"teams"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	ArchivedAt   *time.Time          `json:"archivedAt"`
}

func (n *userNode) toModel() models.User {
	// Summary selections omit active; users are active unless told otherwise.
	active := n.Active == nil || bool(*n.Active)

	user := models.User{
		Node:         models.Node{ID: string(n.ID), CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt, ArchivedAt: n.ArchivedAt},
		Name:         string(n.Name),
		DisplayName:  string(n.DisplayName),
		Email:        string(n.Email),
		AvatarURL:    string(n.AvatarURL),
		Organization: n.Organization.organization(),
		Active:       active,
		LastSeen:     n.LastSeen,
		Timezone:     string(n.Timezone),
		IsMe:         bool(n.IsMe),
	}
	if n.Teams != nil {
		user.Teams = make([]models.TeamRef, 0, len(n.Teams.Nodes))
		for _, team := range n.Teams.Nodes {
			user.Teams = append(user.Teams, models.TeamRef{ID: string(team.ID)})
		}
	}
	return user
}

type teamNode struct {
	ID                graphql.String  `json:"id"`
	Name              graphql.String  `json:"name"`
	Key               graphql.String  `json:"key"`
	Description       graphql.String  `json:"description"`
	Organization      *idNode         `json:"organization"`
	Private           graphql.Boolean `json:"private"`
	DefaultIssueState *stateNode      `json:"defaultIssueState"`
	AutoArchivePeriod graphql.Float   `json:"autoArchivePeriod"`
	AutoClosePeriod   *graphql.Float  `json:"autoClosePeriod"`
	CyclesEnabled     graphql.Boolean `json:"cyclesEnabled"`
	CycleDuration     graphql.Float   `json:"cycleDuration"`
	CycleCooldownTime graphql.Float   `json:"cycleCooldownTime"`
	TriageEnabled     graphql.Boolean `json:"triageEnabled"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	ArchivedAt        *time.Time      `json:"archivedAt"`
}

func (n *teamNode) toModel() (models.Team, error) {
	team := models.Team{
		Node:              models.Node{ID: string(n.ID), CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt, ArchivedAt: n.ArchivedAt},
		Name:              string(n.Name),
		Key:               string(n.Key),
		Description:       string(n.Description),
		Organization:      n.Organization.organization(),
		Private:           bool(n.Private),
		AutoArchivePeriod: int(n.AutoArchivePeriod),
		CyclesEnabled:     bool(n.CyclesEnabled),
		CycleDuration:     int(n.CycleDuration),
		CycleCooldownTime: int(n.CycleCooldownTime),
		TriageEnabled:     bool(n.TriageEnabled),
	}
	if n.AutoClosePeriod != nil {
		team.AutoClosePeriod = int(*n.AutoClosePeriod)
	}
	if n.DefaultIssueState != nil {
		state, err := n.DefaultIssueState.toModel()
		if err != nil {
			return models.Team{}, err
		}
		team.DefaultIssueState = &state
	}
	return team, nil
}

type issueRefNode struct {
	ID         graphql.String `json:"id"`
	Identifier graphql.String `json:"identifier"`
	Title      graphql.String `json:"title"`
	Number     graphql.Float  `json:"number"`
	URL        graphql.String `json:"url"`
}

func (n issueRefNode) toModel() models.IssueRef {
	return models.IssueRef{
		ID:         string(n.ID),
		Identifier: string(n.Identifier),
		Title:      string(n.Title),
		Number:     int(n.Number),
		URL:        string(n.URL),
	}
}

type issueNode struct {
	ID          graphql.String            `json:"id"`
	Title       graphql.String            `json:"title"`
	Description graphql.String            `json:"description"`
	State       *stateNode                `json:"state"`
	Priority    graphql.Float             `json:"priority"`
	Number      graphql.Float             `json:"number"`
	Identifier  graphql.String            `json:"identifier"`
	Team        *teamRefNode              `json:"team"`
	Assignee    *userNode                 `json:"assignee"`
	Creator     *userNode                 `json:"creator"`
	DueDate     graphql.String            `json:"dueDate"`
	StartedAt   *time.Time                `json:"startedAt"`
	CompletedAt *time.Time                `json:"completedAt"`
	CanceledAt  *time.Time                `json:"canceledAt"`
	LabelIDs    []graphql.String          `json:"labelIds"`
	Parent      *issueRefNode             `json:"parent"`
	Children    *connection[issueRefNode] `json:"children"`
	URL         graphql.String            `json:"url"`
	BranchName  graphql.String            `json:"branchName"`
	Estimate    *graphql.Float            `json:"estimate"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
	ArchivedAt  *time.Time                `json:"archivedAt"`
}

func (n *issueNode) toModel() (models.Issue, error) {
	priority, err := models.PriorityFromWire(float64(n.Priority))
	if err != nil {
		return models.Issue{}, err
	}

	issue := models.Issue{
		Node:        models.Node{ID: string(n.ID), CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt, ArchivedAt: n.ArchivedAt},
		Title:       string(n.Title),
		Description: string(n.Description),
		Priority:    priority,
		Number:      int(n.Number),
		Identifier:  string(n.Identifier),
		Team:        n.Team.toTeam(),
		DueDate:     string(n.DueDate),
		StartedAt:   n.StartedAt,
		CompletedAt: n.CompletedAt,
		CanceledAt:  n.CanceledAt,
		URL:         string(n.URL),
		BranchName:  string(n.BranchName),
	}

	if n.State != nil {
		if issue.State, err = n.State.toModel(); err != nil {
			return models.Issue{}, err
		}
	}
	if n.Assignee != nil {
		assignee := n.Assignee.toModel()
		issue.Assignee = &assignee
	}
	if n.Creator != nil {
		creator := n.Creator.toModel()
		issue.Creator = &creator
	}
	if len(n.LabelIDs) > 0 {
		issue.LabelIDs = make([]string, 0, len(n.LabelIDs))
		for _, id := range n.LabelIDs {
			issue.LabelIDs = append(issue.LabelIDs, string(id))
		}
	}
	if n.Parent != nil {
		parent := n.Parent.toModel()
		issue.Parent = &parent
	}
	if n.Children != nil {
		for _, child := range n.Children.Nodes {
			issue.Children = append(issue.Children, child.toModel())
		}
	}
	if n.Estimate != nil {
		estimate := float64(*n.Estimate)
		issue.Estimate = &estimate
	}
	return issue, nil
}

type commentNode struct {
	ID         graphql.String      `json:"id"`
	Body       graphql.String      `json:"body"`
	Issue      *idNode             `json:"issue"`
	User       *idNode             `json:"user"`
	Parent     *idNode             `json:"parent"`
	Children   *connection[idNode] `json:"children"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	ArchivedAt *time.Time          `json:"archivedAt"`
}

func (n *commentNode) toModel() (models.Comment, error) {
	comment := models.Comment{
		Node:     models.Node{ID: string(n.ID), CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt, ArchivedAt: n.ArchivedAt},
		Body:     string(n.Body),
		IssueID:  n.Issue.id(),
		UserID:   n.User.id(),
		ParentID: n.Parent.id(),
	}
	if n.Children != nil {
		for _, child := range n.Children.Nodes {
			comment.ChildIDs = append(comment.ChildIDs, string(child.ID))
		}
	}
	return comment, nil
}

type attachmentNode struct {
	ID            graphql.String   `json:"id"`
	Title         graphql.String   `json:"title"`
	Subtitle      graphql.String   `json:"subtitle"`
	Source        json.RawMessage  `json:"source"`
	SourceType    graphql.String   `json:"sourceType"`
	URL           graphql.String   `json:"url"`
	Issue         *idNode          `json:"issue"`
	Creator       *idNode          `json:"creator"`
	Metadata      json.RawMessage  `json:"metadata"`
	GroupBySource *graphql.Boolean `json:"groupBySource"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	ArchivedAt    *time.Time       `json:"archivedAt"`
}

func (n *attachmentNode) toModel() (models.Attachment, error) {
	attachment := models.Attachment{
		Node:          models.Node{ID: string(n.ID), CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt, ArchivedAt: n.ArchivedAt},
		Title:         string(n.Title),
		Subtitle:      string(n.Subtitle),
		SourceType:    string(n.SourceType),
		URL:           string(n.URL),
		IssueID:       n.Issue.id(),
		CreatorID:     n.Creator.id(),
		Metadata:      decodeMetadata(n.Metadata),
		GroupBySource: n.GroupBySource == nil || bool(*n.GroupBySource),
	}

	// A string source must be a known one. Other shapes (null, or the
	// structured object some integrations report) count as absent.
	var source string
	if err := json.Unmarshal(n.Source, &source); err == nil && source != "" {
		parsed, err := models.ParseAttachmentSource(source)
		if err != nil {
			return models.Attachment{}, err
		}
		attachment.Source = &parsed
	}
	attachment.ResolveSource()

	return attachment, nil
}

// decodeMetadata accepts metadata as a JSON object or as a string holding
// one. Anything else yields an empty map.
func decodeMetadata(raw json.RawMessage) map[string]any {
	metadata := map[string]any{}
	if len(raw) == 0 {
		return metadata
	}
	if err := json.Unmarshal(raw, &metadata); err == nil {
		if metadata == nil {
			metadata = map[string]any{}
		}
		return metadata
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		var inner map[string]any
		if err := json.Unmarshal([]byte(encoded), &inner); err == nil && inner != nil {
			return inner
		}
	}
	return map[string]any{}
}

// invalidPayload reports a server value the domain model rejects.
func invalidPayload(resource linearerrors.Resource, op linearerrors.Operation, id string, err error) error {
	return &linearerrors.OperationError{
		Resource:  resource,
		Operation: op,
		ID:        id,
		Message:   fmt.Sprintf("invalid %s in response: %v", resource, err),
	}
}
