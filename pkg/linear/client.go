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
	"io"
	"log/slog"
	"net/http"

	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/linear-go/internal/transport"
	"github.com/sirseerhq/linear-go/pkg/config"
	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/models"
)

// Executor runs a single GraphQL document and decodes the data member of
// the response into out. The HTTP transport is the production
// implementation; tests may substitute their own.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any, out any) error
}

// Querier runs a query derived from the shape of a struct, the way
// github.com/shurcooL/graphql builds one from its graphql tags. The
// HTTP transport implements it. Team, user and workflow state reads go
// through a Querier.
type Querier interface {
	Query(ctx context.Context, q any, variables map[string]any) error
}

// Client is the entry point of the library. Resource operations hang off
// the exported service fields.
//
// A Client reuses one HTTP client for all calls. It holds no locks and is
// meant to be used from one goroutine at a time.
type Client struct {
	exec     Executor
	query    Querier
	logger   *slog.Logger
	pageSize int

	Issues         *IssuesService
	Comments       *CommentsService
	Attachments    *AttachmentsService
	Teams          *TeamsService
	Users          *UsersService
	WorkflowStates *WorkflowStatesService
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
	executor   Executor
}

// WithHTTPClient sets the HTTP client used for requests. Its transport is
// wrapped to add authentication; the configured timeout still applies.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithLogger sets the logger that receives debug records for each request.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithExecutor replaces the HTTP transport for document-based operations.
// When exec also implements Querier it serves the struct-based reads too;
// otherwise those still use the HTTP transport.
func WithExecutor(exec Executor) Option {
	return func(o *clientOptions) {
		o.executor = exec
	}
}

// NewClient creates a Client from cfg. The configuration is validated
// first, so a missing API key fails here rather than on the first call.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &linearerrors.ConfigError{Field: "api_key", Message: "configuration is required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tr := transport.New(transport.Options{
		Endpoint:   cfg.APIURL,
		APIKey:     cfg.APIKey,
		Timeout:    cfg.TimeoutDuration(),
		HTTPClient: o.httpClient,
		Logger:     o.logger,
	})
	var exec Executor = tr
	if o.executor != nil {
		exec = o.executor
	}
	querier, ok := exec.(Querier)
	if !ok {
		querier = tr
	}

	c := &Client{
		exec:     exec,
		query:    querier,
		logger:   o.logger,
		pageSize: cfg.PageSize,
	}
	c.Issues = &IssuesService{client: c}
	c.Comments = &CommentsService{client: c}
	c.Attachments = &AttachmentsService{client: c}
	c.Teams = &TeamsService{client: c}
	c.Users = &UsersService{client: c}
	c.WorkflowStates = &WorkflowStatesService{client: c}
	return c, nil
}

// NewClientFromEnv creates a Client configured from LINEAR_API_KEY,
// LINEAR_API_URL, LINEAR_TIMEOUT and LINEAR_PAGE_SIZE.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg, opts...)
}

// Query executes a raw GraphQL document and returns the data member as a
// nested map, unmodified. It is the escape hatch for fields the typed
// services do not cover.
func (c *Client) Query(ctx context.Context, document string, variables map[string]any) (map[string]any, error) {
	var data map[string]any
	if err := c.exec.Execute(ctx, document, variables, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// Me returns the user the API key belongs to.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	return c.Users.Me(ctx)
}

// first resolves a requested page size against the client default and
// the server maximum.
func (c *Client) first(requested int) int {
	switch {
	case requested <= 0:
		return c.pageSize
	case requested > config.MaxPageSize:
		return config.MaxPageSize
	default:
		return requested
	}
}

// pageVariables adds the paging variables shared by every list query.
func (c *Client) pageVariables(vars map[string]any, first int, cursor string) map[string]any {
	if vars == nil {
		vars = map[string]any{}
	}
	vars["first"] = graphql.Int(c.first(first))
	if cursor != "" {
		vars["after"] = graphql.String(cursor)
	} else {
		delete(vars, "after")
	}
	return vars
}

// queryPageVariables is pageVariables for struct queries. Their documents
// always declare $after, so the first page sends it as null.
func (c *Client) queryPageVariables(vars map[string]any, first int, cursor string) map[string]any {
	vars = c.pageVariables(vars, first, cursor)
	if _, ok := vars["after"]; !ok {
		vars["after"] = (*graphql.String)(nil)
	}
	return vars
}

// field executes document and decodes the named top-level field into T.
// A null or missing field yields nil without an error.
func field[T any](ctx context.Context, c *Client, document, name string, vars map[string]any) (*T, error) {
	var data map[string]*T
	if err := c.exec.Execute(ctx, document, vars, &data); err != nil {
		return nil, err
	}
	return data[name], nil
}

// mutationPayload is the shape shared by every delete payload.
type mutationPayload struct {
	Success graphql.Boolean `json:"success"`
}

// deleteEntity runs a delete mutation and checks its success flag.
func deleteEntity(ctx context.Context, c *Client, resource linearerrors.Resource, document, name, id string) error {
	payload, err := field[mutationPayload](ctx, c, document, name, map[string]any{"id": graphql.String(id)})
	if err != nil {
		return err
	}
	if payload == nil || !payload.Success {
		return &linearerrors.OperationError{
			Resource:  resource,
			Operation: linearerrors.OpDelete,
			ID:        id,
			Message:   "server did not confirm the deletion",
		}
	}
	c.logger.Debug("deleted", slog.String("resource", string(resource)), slog.String("id", id))
	return nil
}

// rejected builds the error for a mutation whose payload reported failure.
func rejected(resource linearerrors.Resource, op linearerrors.Operation, id string, input any) error {
	return &linearerrors.OperationError{
		Resource:  resource,
		Operation: op,
		ID:        id,
		Input:     input,
		Message:   "server reported success: false",
	}
}
