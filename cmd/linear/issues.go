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
	"github.com/spf13/pflag"

	"github.com/sirseerhq/linear-go/pkg/linear"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// issueFields holds the flags shared by issues create and issues update.
type issueFields struct {
	title       string
	description string
	stateID     string
	priority    string
	assigneeID  string
	parentID    string
	estimate    float64
	dueDate     string
	labelIDs    []string
}

func (f *issueFields) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.title, "title", "", "Issue title")
	flags.StringVar(&f.description, "description", "", "Issue description (markdown)")
	flags.StringVar(&f.stateID, "state", "", "Workflow state ID")
	flags.StringVar(&f.priority, "priority", "", "Priority: 0-4 or none, urgent, high, medium, low")
	flags.StringVar(&f.assigneeID, "assignee", "", "Assignee user ID")
	flags.StringVar(&f.parentID, "parent", "", "Parent issue ID")
	flags.Float64Var(&f.estimate, "estimate", 0, "Estimate in points")
	flags.StringVar(&f.dueDate, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringSliceVar(&f.labelIDs, "label", nil, "Label ID (repeatable)")
}

// optionalString returns a pointer to the flag value if the flag was set.
func optionalString(flags *pflag.FlagSet, name, value string) *graphql.String {
	if !flags.Changed(name) {
		return nil
	}
	return graphql.NewString(graphql.String(value))
}

func (f *issueFields) optionals(flags *pflag.FlagSet) (linear.IssueUpdateInput, error) {
	in := linear.IssueUpdateInput{
		Title:       optionalString(flags, "title", f.title),
		Description: optionalString(flags, "description", f.description),
		StateID:     optionalString(flags, "state", f.stateID),
		AssigneeID:  optionalString(flags, "assignee", f.assigneeID),
		ParentID:    optionalString(flags, "parent", f.parentID),
		DueDate:     optionalString(flags, "due", f.dueDate),
	}
	if flags.Changed("priority") {
		p, err := models.ParsePriority(f.priority)
		if err != nil {
			return in, err
		}
		in.Priority = &p
	}
	if flags.Changed("estimate") {
		in.Estimate = graphql.NewFloat(graphql.Float(f.estimate))
	}
	for _, id := range f.labelIDs {
		in.LabelIDs = append(in.LabelIDs, graphql.String(id))
	}
	return in, nil
}

func newIssuesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "Get, create, update, delete and list issues",
	}
	cmd.AddCommand(
		newIssueGetCommand(a),
		newIssueCreateCommand(a),
		newIssueUpdateCommand(a),
		newIssueDeleteCommand(a),
		newIssueListCommand(a),
	)
	return cmd
}

func newIssueGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one issue by ID or identifier (e.g. ENG-123)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			issue, err := client.Issues.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeOne(cmd, issueColumns, issue)
		},
	}
}

func newIssueCreateCommand(a *app) *cobra.Command {
	var (
		teamID string
		fields issueFields
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		Long: `Create an issue in a team.

--team and --title are required; every other field is optional.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := fields.optionals(cmd.Flags())
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			issue, err := client.Issues.Create(cmd.Context(), linear.IssueCreateInput{
				TeamID:      graphql.String(teamID),
				Title:       graphql.String(fields.title),
				Description: opt.Description,
				StateID:     opt.StateID,
				Priority:    opt.Priority,
				AssigneeID:  opt.AssigneeID,
				ParentID:    opt.ParentID,
				Estimate:    opt.Estimate,
				DueDate:     opt.DueDate,
				LabelIDs:    opt.LabelIDs,
			})
			if err != nil {
				return err
			}
			return a.writeOne(cmd, issueColumns, issue)
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Team ID")
	fields.register(cmd.Flags())
	return cmd
}

func newIssueUpdateCommand(a *app) *cobra.Command {
	var fields issueFields

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an issue",
		Long:  "Update an issue. Only the flags given are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := fields.optionals(cmd.Flags())
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			issue, err := client.Issues.Update(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return a.writeOne(cmd, issueColumns, issue)
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func newIssueDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.Issues.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted issue %s\n", args[0])
			return nil
		},
	}
}

// listFlags holds the paging flags shared by every list command.
type listFlags struct {
	limit    int
	pageSize int
	after    string
}

func (f *listFlags) register(flags *pflag.FlagSet) {
	flags.IntVar(&f.limit, "limit", 0, "Stop after this many results (0 for all)")
	flags.IntVar(&f.pageSize, "page-size", 0, "Results per request (default from configuration)")
	flags.StringVar(&f.after, "after", "", "Resume after this cursor")
}

func (f *listFlags) options() linear.ListOptions {
	return linear.ListOptions{First: f.pageSize, After: f.after}
}

func newIssueListCommand(a *app) *cobra.Command {
	var (
		page            listFlags
		teamID          string
		assigneeID      string
		creatorID       string
		stateType       string
		priority        string
		includeArchived bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := linear.IssueListOptions{
				ListOptions:     page.options(),
				TeamID:          teamID,
				AssigneeID:      assigneeID,
				CreatorID:       creatorID,
				IncludeArchived: includeArchived,
			}
			if stateType != "" {
				t, err := models.ParseWorkflowStateType(stateType)
				if err != nil {
					return err
				}
				opts.StateType = t
			}
			if priority != "" {
				p, err := models.ParsePriority(priority)
				if err != nil {
					return err
				}
				opts.Priority = &p
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			return writeAll(a, cmd, issueColumns, client.Issues.List(cmd.Context(), opts), page.limit)
		},
	}

	page.register(cmd.Flags())
	cmd.Flags().StringVar(&teamID, "team", "", "Only issues of this team")
	cmd.Flags().StringVar(&assigneeID, "assignee", "", "Only issues assigned to this user")
	cmd.Flags().StringVar(&creatorID, "creator", "", "Only issues created by this user")
	cmd.Flags().StringVar(&stateType, "state-type", "", "Only issues in states of this type (triage, backlog, unstarted, started, completed, canceled, duplicate)")
	cmd.Flags().StringVar(&priority, "priority", "", "Only issues with this priority")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived issues")
	return cmd
}
