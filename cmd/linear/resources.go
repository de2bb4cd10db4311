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
	"github.com/spf13/cobra"

	"github.com/sirseerhq/linear-go/pkg/linear"
)

func newTeamsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Show and list teams",
	}
	cmd.AddCommand(newTeamGetCommand(a), newTeamListCommand(a))
	return cmd
}

func newTeamGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			team, err := client.Teams.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeOne(cmd, teamColumns, team)
		},
	}
}

func newTeamListCommand(a *app) *cobra.Command {
	var (
		page            listFlags
		includeArchived bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			it := client.Teams.List(cmd.Context(), linear.TeamListOptions{
				ListOptions:     page.options(),
				IncludeArchived: includeArchived,
			})
			return writeAll(a, cmd, teamColumns, it, page.limit)
		},
	}

	page.register(cmd.Flags())
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived teams")
	return cmd
}

func newUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Show and list users",
	}
	cmd.AddCommand(newUserGetCommand(a), newUserListCommand(a), newUserMeCommand(a))
	return cmd
}

func newUserGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			user, err := client.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeOne(cmd, userColumns, user)
		},
	}
}

func newUserMeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user the API key belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			user, err := client.Users.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeOne(cmd, userColumns, user)
		},
	}
}

func newUserListCommand(a *app) *cobra.Command {
	var (
		page            listFlags
		teamID          string
		includeArchived bool
		includeDisabled bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			it := client.Users.List(cmd.Context(), linear.UserListOptions{
				ListOptions:     page.options(),
				TeamID:          teamID,
				IncludeArchived: includeArchived,
				IncludeDisabled: includeDisabled,
			})
			return writeAll(a, cmd, userColumns, it, page.limit)
		},
	}

	page.register(cmd.Flags())
	cmd.Flags().StringVar(&teamID, "team", "", "Only members of this team")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived users")
	cmd.Flags().BoolVar(&includeDisabled, "include-disabled", false, "Include deactivated users")
	return cmd
}

func newStatesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "states",
		Aliases: []string{"state"},
		Short:   "Show and list workflow states",
	}
	cmd.AddCommand(newStateGetCommand(a), newStateListCommand(a))
	return cmd
}

func newStateGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one workflow state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			state, err := client.WorkflowStates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.writeOne(cmd, stateColumns, state)
		},
	}
}

func newStateListCommand(a *app) *cobra.Command {
	var (
		page            listFlags
		includeArchived bool
	)

	cmd := &cobra.Command{
		Use:   "list <team-id>",
		Short: "List the workflow states of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			it := client.WorkflowStates.List(cmd.Context(), args[0], linear.WorkflowStateListOptions{
				ListOptions:     page.options(),
				IncludeArchived: includeArchived,
			})
			return writeAll(a, cmd, stateColumns, it, page.limit)
		},
	}

	page.register(cmd.Flags())
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived states")
	return cmd
}
