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

import (
	"fmt"
	"strings"
)

// AttachmentSource is the integration an attachment originates from.
type AttachmentSource string

const (
	SourceGoogleDrive AttachmentSource = "gdrive"
	SourceFigma       AttachmentSource = "figma"
	SourceGitHub      AttachmentSource = "github"
	SourceGitLab      AttachmentSource = "gitlab"
	SourceURL         AttachmentSource = "url"
	SourceGeneric     AttachmentSource = "generic"
)

// AttachmentSources lists every known attachment source.
var AttachmentSources = []AttachmentSource{
	SourceGoogleDrive, SourceFigma, SourceGitHub, SourceGitLab, SourceURL, SourceGeneric,
}

// Valid reports whether s is a known source.
func (s AttachmentSource) Valid() bool {
	for _, known := range AttachmentSources {
		if s == known {
			return true
		}
	}
	return false
}

// ParseAttachmentSource converts a wire or user-supplied value into an
// AttachmentSource. Matching is case-insensitive.
func ParseAttachmentSource(v string) (AttachmentSource, error) {
	s := AttachmentSource(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown attachment source %q", v)
	}
	return s, nil
}

// MetadataSourceKey is the metadata entry the source is recorded under.
const MetadataSourceKey = "source"

// MetadataSourceTypeKey is the metadata entry the source type is recorded under.
const MetadataSourceTypeKey = "sourceType"

// Attachment links an external resource to an issue.
type Attachment struct {
	Node
	Title         string            `json:"title"`
	Subtitle      string            `json:"subtitle,omitempty"`
	Source        *AttachmentSource `json:"source,omitempty"`
	SourceType    string            `json:"source_type,omitempty"`
	URL           string            `json:"url"`
	IssueID       string            `json:"issue_id"`
	CreatorID     string            `json:"creator_id,omitempty"`
	Metadata      map[string]any    `json:"metadata,omitempty"`
	GroupBySource bool              `json:"group_by_source"`
}

// IsFile reports whether the attachment is a generic file upload.
func (a Attachment) IsFile() bool {
	return a.Source != nil && *a.Source == SourceGeneric
}

// IsURL reports whether the attachment is a plain URL link.
func (a Attachment) IsURL() bool {
	return a.Source != nil && *a.Source == SourceURL
}

// SourceName returns a display name for the source, or "Unknown".
func (a Attachment) SourceName() string {
	if a.Source == nil || *a.Source == "" {
		return "Unknown"
	}
	s := string(*a.Source)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ResolveSource fills Source from Metadata when the payload carried no
// source of its own. Unknown metadata values leave Source unset.
func (a *Attachment) ResolveSource() {
	if a.Source != nil {
		return
	}
	raw, ok := a.Metadata[MetadataSourceKey].(string)
	if !ok {
		return
	}
	if s, err := ParseAttachmentSource(raw); err == nil {
		a.Source = &s
	}
}
