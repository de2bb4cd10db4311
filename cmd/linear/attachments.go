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
	"fmt"

	"github.com/shurcooL/graphql"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/linear-go/pkg/linear"
	"github.com/sirseerhq/linear-go/pkg/models"
)

func newAttachmentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attachments",
		Aliases: []string{"attachment"},
		Short:   "Get, create, update, delete and list issue attachments",
	}
	cmd.AddCommand(
		newAttachmentGetCommand(a),
		newAttachmentCreateURLCommand(a),
		newAttachmentCreateCommand(a),
		newAttachmentUpdateCommand(a),
		newAttachmentDeleteCommand(a),
		newAttachmentListCommand(a),
	)
	return cmd
}

// metadata converts --meta key=value pairs to attachment metadata.
func metadata(pairs map[string]string) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	m := make(map[string]any, len(pairs))
	for k, v := range pairs {
		m[k] = v
	}
	return m
}

func newAttachmentGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			attachment, err := client.Attachments.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeOne(cmd, attachmentColumns, attachment)
		},
	}
}

func newAttachmentCreateURLCommand(a *app) *cobra.Command {
	var (
		issueID  string
		url      string
		title    string
		subtitle string
		meta     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "create-url",
		Short: "Attach a URL to an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			attachment, err := client.Attachments.CreateURL(cmd.Context(), linear.AttachmentURLInput{
				IssueID:  graphql.String(issueID),
				URL:      graphql.String(url),
				Title:    optionalString(cmd.Flags(), "title", title),
				Subtitle: optionalString(cmd.Flags(), "subtitle", subtitle),
				Metadata: metadata(meta),
			})
			if err != nil {
				return err
			}
			return a.writeOne(cmd, attachmentColumns, attachment)
		},
	}

	cmd.Flags().StringVar(&issueID, "issue", "", "Issue ID")
	cmd.Flags().StringVar(&url, "url", "", "URL to attach")
	cmd.Flags().StringVar(&title, "title", "", "Title (default: the URL)")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Subtitle")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Metadata key=value pairs")
	_ = cmd.MarkFlagRequired("issue")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newAttachmentCreateCommand(a *app) *cobra.Command {
	var (
		source     string
		issueID    string
		url        string
		title      string
		subtitle   string
		sourceType string
		meta       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Attach a resource from an integration (gdrive, figma, github, gitlab, url)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := models.ParseAttachmentSource(source)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			attachment, err := client.Attachments.CreateFromSource(cmd.Context(), src, linear.AttachmentSourceInput{
				IssueID:    graphql.String(issueID),
				URL:        graphql.String(url),
				Title:      graphql.String(title),
				Subtitle:   optionalString(cmd.Flags(), "subtitle", subtitle),
				SourceType: optionalString(cmd.Flags(), "source-type", sourceType),
				Metadata:   metadata(meta),
			})
			if err != nil {
				return err
			}
			return a.writeOne(cmd, attachmentColumns, attachment)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Integration: gdrive, figma, github, gitlab or url")
	cmd.Flags().StringVar(&issueID, "issue", "", "Issue ID")
	cmd.Flags().StringVar(&url, "url", "", "URL of the resource")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Subtitle")
	cmd.Flags().StringVar(&sourceType, "source-type", "", "Kind of object within the source, e.g. file")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Metadata key=value pairs")
	for _, name := range []string{"source", "issue", "url", "title"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newAttachmentUpdateCommand(a *app) *cobra.Command {
	var (
		title    string
		subtitle string
		meta     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an attachment's title, subtitle or metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			attachment, err := client.Attachments.Update(cmd.Context(), args[0], linear.AttachmentUpdateInput{
				Title:    graphql.String(title),
				Subtitle: optionalString(cmd.Flags(), "subtitle", subtitle),
				Metadata: metadata(meta),
			})
			if err != nil {
				return err
			}
			return a.writeOne(cmd, attachmentColumns, attachment)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (required by the API on every update)")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Subtitle")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Metadata key=value pairs")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newAttachmentDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.Attachments.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted attachment %s\n", args[0])
			return nil
		},
	}
}

func newAttachmentListCommand(a *app) *cobra.Command {
	var page listFlags

	cmd := &cobra.Command{
		Use:   "list <issue-id>",
		Short: "List the attachments of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			it := client.Attachments.ListForIssue(cmd.Context(), args[0], page.options())
			return writeAll(a, cmd, attachmentColumns, it, page.limit)
		},
	}

	page.register(cmd.Flags())
	return cmd
}
