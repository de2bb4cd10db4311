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
	"maps"

	"github.com/shurcooL/graphql"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// AttachmentsService handles attachment operations.
type AttachmentsService struct {
	client *Client
}

type attachmentPayload struct {
	Success    graphql.Boolean `json:"success"`
	Attachment *attachmentNode `json:"attachment"`
}

// Get fetches an attachment by id.
func (s *AttachmentsService) Get(ctx context.Context, id string) (models.Attachment, error) {
	node, err := field[attachmentNode](ctx, s.client, attachmentGetQuery, "attachment", map[string]any{"id": graphql.String(id)})
	if err != nil {
		return models.Attachment{}, err
	}
	if node == nil {
		return models.Attachment{}, linearerrors.NotFound(linearerrors.ResourceAttachment, linearerrors.OpGet, id)
	}
	attachment, err := node.toModel()
	if err != nil {
		return models.Attachment{}, invalidPayload(linearerrors.ResourceAttachment, linearerrors.OpGet, id, err)
	}
	return attachment, nil
}

// CreateURL attaches a plain URL to an issue. The source is recorded in the
// metadata as "url"; the caller's metadata map is not modified.
func (s *AttachmentsService) CreateURL(ctx context.Context, input AttachmentURLInput) (models.Attachment, error) {
	title := input.URL
	if input.Title != nil && *input.Title != "" {
		title = *input.Title
	}
	return s.create(ctx, attachmentCreateInput{
		IssueID:  input.IssueID,
		URL:      input.URL,
		Title:    title,
		Subtitle: input.Subtitle,
		Metadata: withSource(input.Metadata, models.SourceURL, nil),
	})
}

// CreateFromSource attaches a resource from an integration such as Figma
// or Google Drive. A URL source is handled by CreateURL.
func (s *AttachmentsService) CreateFromSource(ctx context.Context, source models.AttachmentSource, input AttachmentSourceInput) (models.Attachment, error) {
	if source == models.SourceURL {
		title := input.Title
		return s.CreateURL(ctx, AttachmentURLInput{
			IssueID:  input.IssueID,
			URL:      input.URL,
			Title:    &title,
			Subtitle: input.Subtitle,
			Metadata: input.Metadata,
		})
	}
	if !source.Valid() {
		return models.Attachment{}, &linearerrors.OperationError{
			Resource:  linearerrors.ResourceAttachment,
			Operation: linearerrors.OpCreate,
			Message:   "unknown attachment source " + string(source),
		}
	}

	return s.create(ctx, attachmentCreateInput{
		IssueID:  input.IssueID,
		URL:      input.URL,
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Metadata: withSource(input.Metadata, source, input.SourceType),
	})
}

func (s *AttachmentsService) create(ctx context.Context, input attachmentCreateInput) (models.Attachment, error) {
	payload, err := field[attachmentPayload](ctx, s.client, attachmentCreateMutation, "attachmentCreate", map[string]any{"input": input})
	if err != nil {
		return models.Attachment{}, err
	}
	if payload == nil || !payload.Success || payload.Attachment == nil {
		return models.Attachment{}, rejected(linearerrors.ResourceAttachment, linearerrors.OpCreate, "", input)
	}

	attachment, err := payload.Attachment.toModel()
	if err != nil {
		return models.Attachment{}, invalidPayload(linearerrors.ResourceAttachment, linearerrors.OpCreate, string(payload.Attachment.ID), err)
	}
	return attachment, nil
}

// Update changes an attachment's title, subtitle or metadata.
func (s *AttachmentsService) Update(ctx context.Context, id string, input AttachmentUpdateInput) (models.Attachment, error) {
	vars := map[string]any{"id": graphql.String(id), "input": input}
	payload, err := field[attachmentPayload](ctx, s.client, attachmentUpdateMutation, "attachmentUpdate", vars)
	if err != nil {
		return models.Attachment{}, err
	}
	if payload == nil || !payload.Success || payload.Attachment == nil {
		return models.Attachment{}, rejected(linearerrors.ResourceAttachment, linearerrors.OpUpdate, id, input)
	}

	attachment, err := payload.Attachment.toModel()
	if err != nil {
		return models.Attachment{}, invalidPayload(linearerrors.ResourceAttachment, linearerrors.OpUpdate, id, err)
	}
	return attachment, nil
}

// Delete deletes an attachment.
func (s *AttachmentsService) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, linearerrors.ResourceAttachment, attachmentDeleteMutation, "attachmentDelete", id)
}

type issueAttachmentsData struct {
	Attachments connection[attachmentNode] `json:"attachments"`
}

// ListForIssue returns an iterator over the attachments of an issue.
func (s *AttachmentsService) ListForIssue(ctx context.Context, issueID string, opts ListOptions) *Iterator[models.Attachment] {
	return newIterator(ctx, opts.After, func(ctx context.Context, cursor string) ([]models.Attachment, pageInfo, error) {
		vars := s.client.pageVariables(map[string]any{"issueId": graphql.String(issueID)}, opts.First, cursor)

		issue, err := field[issueAttachmentsData](ctx, s.client, issueAttachmentsQuery, "issue", vars)
		if err != nil {
			return nil, pageInfo{}, err
		}
		if issue == nil {
			return nil, pageInfo{}, linearerrors.ParentNotFound(linearerrors.ResourceAttachment, linearerrors.ResourceIssue, issueID)
		}

		attachments := make([]models.Attachment, 0, len(issue.Attachments.Nodes))
		for i := range issue.Attachments.Nodes {
			attachment, err := issue.Attachments.Nodes[i].toModel()
			if err != nil {
				return nil, pageInfo{}, invalidPayload(linearerrors.ResourceAttachment, linearerrors.OpList, string(issue.Attachments.Nodes[i].ID), err)
			}
			attachments = append(attachments, attachment)
		}
		return attachments, issue.Attachments.PageInfo, nil
	})
}

// withSource returns a copy of metadata with the source recorded in it.
func withSource(metadata map[string]any, source models.AttachmentSource, sourceType *graphql.String) map[string]any {
	out := maps.Clone(metadata)
	if out == nil {
		out = map[string]any{}
	}
	out[models.MetadataSourceKey] = string(source)
	if sourceType != nil && *sourceType != "" {
		out[models.MetadataSourceTypeKey] = string(*sourceType)
	}
	return out
}
