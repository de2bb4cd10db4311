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

package main

import (
	"strings"
	"time"

	"github.com/sirseerhq/linear-go/internal/output"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// column builds a table column for records of type T. Records of any other
// type render as an empty cell.
func column[T any](header string, value func(T) any) output.Column {
	return output.Column{
		Header: header,
		Value: func(record any) any {
			v, ok := record.(T)
			if !ok {
				return ""
			}
			return value(v)
		},
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// truncate shortens s to n runes for table cells.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var issueColumns = []output.Column{
	column("ID", func(i models.Issue) any { return i.ID }),
	column("KEY", func(i models.Issue) any { return i.Identifier }),
	column("TITLE", func(i models.Issue) any { return truncate(i.Title, 60) }),
	column("STATE", func(i models.Issue) any { return i.State.Name }),
	column("PRIORITY", func(i models.Issue) any { return i.Priority.String() }),
	column("ASSIGNEE", func(i models.Issue) any {
		if i.Assignee == nil {
			return ""
		}
		return i.Assignee.Name
	}),
}

var commentColumns = []output.Column{
	column("ID", func(c models.Comment) any { return c.ID }),
	column("ISSUE", func(c models.Comment) any { return c.IssueID }),
	column("PARENT", func(c models.Comment) any { return c.ParentID }),
	column("REPLIES", func(c models.Comment) any { return len(c.ChildIDs) }),
	column("BODY", func(c models.Comment) any { return truncate(c.Body, 60) }),
	column("CREATED", func(c models.Comment) any { return formatTime(&c.CreatedAt) }),
}

var attachmentColumns = []output.Column{
	column("ID", func(a models.Attachment) any { return a.ID }),
	column("TITLE", func(a models.Attachment) any { return truncate(a.Title, 40) }),
	column("SOURCE", func(a models.Attachment) any { return a.SourceName() }),
	column("URL", func(a models.Attachment) any { return a.URL }),
}

var teamColumns = []output.Column{
	column("ID", func(t models.Team) any { return t.ID }),
	column("KEY", func(t models.Team) any { return t.Key }),
	column("NAME", func(t models.Team) any { return t.Name }),
	column("PRIVATE", func(t models.Team) any { return t.Private }),
	column("ARCHIVED", func(t models.Team) any { return t.IsArchived() }),
}

var userColumns = []output.Column{
	column("ID", func(u models.User) any { return u.ID }),
	column("NAME", func(u models.User) any { return u.Name }),
	column("EMAIL", func(u models.User) any { return u.Email }),
	column("ACTIVE", func(u models.User) any { return u.Active }),
	column("TEAMS", func(u models.User) any { return strings.Join(u.TeamIDs(), ",") }),
}

var stateColumns = []output.Column{
	column("ID", func(s models.WorkflowState) any { return s.ID }),
	column("NAME", func(s models.WorkflowState) any { return s.Name }),
	column("TYPE", func(s models.WorkflowState) any { return string(s.Type) }),
	column("COLOR", func(s models.WorkflowState) any { return s.Color }),
	column("TEAM", func(s models.WorkflowState) any { return s.Team.ID }),
}
