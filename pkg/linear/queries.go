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

import "strings"

// Documents are hand-written and assembled from the fragments below.
// Each document lists exactly the fragments it spreads, directly or
// through another fragment, since unused fragments fail server validation.
// Team, user and workflow state reads are struct queries built from the
// node types in wire.go instead.

const teamRefFields = `
fragment TeamRefFields on Team {
  id
  name
  key
  description
  organization { id }
  createdAt
  updatedAt
  archivedAt
}`

const stateFields = `
fragment StateFields on WorkflowState {
  id
  name
  type
  color
  position
  description
  team { ...TeamRefFields }
  createdAt
  updatedAt
  archivedAt
}`

const userSummaryFields = `
fragment UserSummaryFields on User {
  id
  name
  displayName
  email
  avatarUrl
  organization { id }
  createdAt
  updatedAt
  archivedAt
}`

const issueFields = `
fragment IssueFields on Issue {
  id
  title
  description
  state { ...StateFields }
  priority
  number
  identifier
  team { ...TeamRefFields }
  assignee { ...UserSummaryFields }
  creator { ...UserSummaryFields }
  dueDate
  startedAt
  completedAt
  canceledAt
  labelIds
  parent { id identifier title number url }
  children { nodes { id identifier title number url } }
  url
  branchName
  estimate
  createdAt
  updatedAt
  archivedAt
}`

const commentFields = `
fragment CommentFields on Comment {
  id
  body
  issue { id }
  user { id }
  parent { id }
  children { nodes { id } }
  createdAt
  updatedAt
  archivedAt
}`

const attachmentFields = `
fragment AttachmentFields on Attachment {
  id
  title
  subtitle
  source
  sourceType
  url
  issue { id }
  creator { id }
  metadata
  groupBySource
  createdAt
  updatedAt
  archivedAt
}`

const pageInfoSelection = `pageInfo { hasNextPage endCursor }`

func document(operation string, fragments ...string) string {
	return strings.TrimSpace(operation) + "\n" + strings.Join(fragments, "\n")
}

var issueFragments = []string{issueFields, stateFields, teamRefFields, userSummaryFields}

// Issues
var (
	issueGetQuery = document(`
query Issue($id: String!) {
  issue(id: $id) { ...IssueFields }
}`, issueFragments...)

	issueCreateMutation = document(`
mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue { ...IssueFields }
  }
}`, issueFragments...)

	issueUpdateMutation = document(`
mutation IssueUpdate($id: String!, $input: IssueUpdateInput!) {
  issueUpdate(id: $id, input: $input) {
    success
    issue { ...IssueFields }
  }
}`, issueFragments...)

	issueDeleteMutation = document(`
mutation IssueDelete($id: String!) {
  issueDelete(id: $id) { success }
}`)

	issueListQuery = document(`
query Issues($first: Int!, $after: String, $filter: IssueFilter) {
  issues(first: $first, after: $after, filter: $filter) {
    nodes { ...IssueFields }
    `+pageInfoSelection+`
  }
}`, issueFragments...)
)

// Comments
var (
	commentGetQuery = document(`
query Comment($id: String!) {
  comment(id: $id) { ...CommentFields }
}`, commentFields)

	commentCreateMutation = document(`
mutation CommentCreate($input: CommentCreateInput!) {
  commentCreate(input: $input) {
    success
    comment { ...CommentFields }
  }
}`, commentFields)

	commentUpdateMutation = document(`
mutation CommentUpdate($id: String!, $input: CommentUpdateInput!) {
  commentUpdate(id: $id, input: $input) {
    success
    comment { ...CommentFields }
  }
}`, commentFields)

	commentDeleteMutation = document(`
mutation CommentDelete($id: String!) {
  commentDelete(id: $id) { success }
}`)

	issueCommentsQuery = document(`
query IssueComments($issueId: String!, $first: Int!, $after: String) {
  issue(id: $issueId) {
    comments(first: $first, after: $after) {
      nodes { ...CommentFields }
      `+pageInfoSelection+`
    }
  }
}`, commentFields)
)

// Attachments
var (
	attachmentGetQuery = document(`
query Attachment($id: String!) {
  attachment(id: $id) { ...AttachmentFields }
}`, attachmentFields)

	attachmentCreateMutation = document(`
mutation AttachmentCreate($input: AttachmentCreateInput!) {
  attachmentCreate(input: $input) {
    success
    attachment { ...AttachmentFields }
  }
}`, attachmentFields)

	attachmentUpdateMutation = document(`
mutation AttachmentUpdate($id: String!, $input: AttachmentUpdateInput!) {
  attachmentUpdate(id: $id, input: $input) {
    success
    attachment { ...AttachmentFields }
  }
}`, attachmentFields)

	attachmentDeleteMutation = document(`
mutation AttachmentDelete($id: ID!) {
  attachmentDelete(id: $id) {
    success
    _destroyedId
  }
}`)

	issueAttachmentsQuery = document(`
query IssueAttachments($issueId: String!, $first: Int!, $after: String) {
  issue(id: $issueId) {
    attachments(first: $first, after: $after) {
      nodes { ...AttachmentFields }
      `+pageInfoSelection+`
    }
  }
}`, attachmentFields)
)
