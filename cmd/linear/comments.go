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
)

func newCommentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Get, create, update, delete and list issue comments",
	}
	cmd.AddCommand(
		newCommentGetCommand(a),
		newCommentCreateCommand(a),
		newCommentUpdateCommand(a),
		newCommentDeleteCommand(a),
		newCommentListCommand(a),
	)
	return cmd
}

func newCommentGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			comment, err := client.Comments.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeOne(cmd, commentColumns, comment)
		},
	}
}

func newCommentCreateCommand(a *app) *cobra.Command {
	var (
		issueID  string
		body     string
		parentID string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Comment on an issue, or reply to a comment with --parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			input := linear.CommentCreateInput{
				IssueID: graphql.String(issueID),
				Body:    graphql.String(body),
			}
			if parentID != "" {
				input.ParentID = graphql.NewString(graphql.String(parentID))
			}
			comment, err := client.Comments.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			return a.writeOne(cmd, commentColumns, comment)
		},
	}

	cmd.Flags().StringVar(&issueID, "issue", "", "Issue ID")
	cmd.Flags().StringVar(&body, "body", "", "Comment body (markdown)")
	cmd.Flags().StringVar(&parentID, "parent", "", "Comment ID to reply to")
	_ = cmd.MarkFlagRequired("issue")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newCommentUpdateCommand(a *app) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the body of a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			comment, err := client.Comments.Update(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.writeOne(cmd, commentColumns, comment)
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "New comment body (markdown)")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newCommentDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.Comments.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s\n", args[0])
			return nil
		},
	}
}

func newCommentListCommand(a *app) *cobra.Command {
	var page listFlags

	cmd := &cobra.Command{
		Use:   "list <issue-id>",
		Short: "List the comments of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			it := client.Comments.ListForIssue(cmd.Context(), args[0], page.options())
			return writeAll(a, cmd, commentColumns, it, page.limit)
		},
	}

	page.register(cmd.Flags())
	return cmd
}
