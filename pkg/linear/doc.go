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

// Package linear is a typed client for the Linear GraphQL API.
//
// A Client exposes one service per resource: Issues, Comments,
// Attachments, Teams, Users and WorkflowStates. Each operation builds a
// hand-written GraphQL document, executes it over HTTPS and decodes the
// result into the values of package models. List operations return an
// Iterator that fetches pages lazily through Relay-style cursors.
//
// Basic usage:
//
//	client, err := linear.NewClientFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	issue, err := client.Issues.Create(ctx, linear.IssueCreateInput{
//		TeamID: graphql.String(teamID),
//		Title:  "Login fails on Safari",
//	})
//
// Errors all match errors.Is(err, errors.ErrClient) from package
// pkg/errors; the narrower sentinels and typed errors there identify
// authentication, rate limit, network, query and operation failures.
// Nothing is retried.
package linear
