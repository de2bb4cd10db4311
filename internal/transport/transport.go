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

// Package transport executes GraphQL operations against the Linear API.
//
// It owns the single HTTP exchange behind every client operation. Two
// entry points share one authenticated HTTP client: Execute posts a
// hand-written document after a local parse check, and Query builds the
// document from the shape of a struct with github.com/shurcooL/graphql.
// Either way the response is mapped onto the error taxonomy in
// pkg/errors before the data member reaches the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shurcooL/graphql"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
	"github.com/sirseerhq/linear-go/pkg/version"
)

// maxResponseSize caps how much of a response body is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// maxErrorBody limits how much of an unexpected body ends up in an error.
const maxErrorBody = 512

// Options configures a Transport.
type Options struct {
	// Endpoint is the GraphQL URL, e.g. https://api.linear.app/graphql.
	Endpoint string

	// APIKey is sent verbatim in the Authorization header.
	APIKey string

	// Timeout bounds each request. Zero keeps the HTTP client's own timeout.
	Timeout time.Duration

	// HTTPClient is copied and its transport wrapped with authentication.
	// When nil a client with a pooled transport is created.
	HTTPClient *http.Client

	// Logger receives debug records for every exchange. Nil discards them.
	Logger *slog.Logger
}

// Transport posts GraphQL operations to a single endpoint.
// A Transport is safe to reuse across sequential calls.
type Transport struct {
	endpoint string
	client   *http.Client
	gql      *graphql.Client
	logger   *slog.Logger
}

// New creates a Transport from opts.
func New(opts Options) *Transport {
	var hc http.Client
	if opts.HTTPClient != nil {
		hc = *opts.HTTPClient
	}

	base := hc.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}
	hc.Transport = &authTransport{apiKey: opts.APIKey, base: base}
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Transport{
		endpoint: opts.Endpoint,
		client:   &hc,
		gql:      graphql.NewClient(opts.Endpoint, &hc),
		logger:   logger,
	}
}

// request is the POST body.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Execute sends query with variables and decodes the response's data
// member into out. out may be nil when the caller only needs the error.
//
// Errors are mapped one-to-one:
//   - a document that does not parse yields *errors.QueryError, without I/O
//   - HTTP 401 yields *errors.AuthenticationError
//   - HTTP 429 yields *errors.RateLimitError
//   - any other non-2xx status yields *errors.NetworkError with StatusCode
//   - a body with an "errors" member yields *errors.QueryError
//   - transport failures and malformed JSON yield *errors.NetworkError
func (t *Transport) Execute(ctx context.Context, query string, variables map[string]any, out any) error {
	op, err := Parse(query)
	if err != nil {
		return err
	}

	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return &linearerrors.QueryError{Message: fmt.Sprintf("failed to encode variables for %s: %v", op, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return &linearerrors.NetworkError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	t.logger.DebugContext(ctx, "graphql request",
		slog.String("operation", op.Name),
		slog.String("type", op.Type),
		slog.Any("variables", variableNames(variables)))

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.DebugContext(ctx, "graphql request failed",
			slog.String("operation", op.Name), slog.Any("error", err))
		return MapError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	t.logger.DebugContext(ctx, "graphql response",
		slog.String("operation", op.Name),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(raw)),
		slog.Duration("elapsed", time.Since(start)))
	if err != nil {
		return &linearerrors.NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return decodeEnvelope(raw, out)
}

// Query sends the query derived from the struct q, as built by
// github.com/shurcooL/graphql, and decodes the data member into q.
// Field selections and arguments come from q's graphql struct tags;
// variables must use the graphql scalar types so their declarations
// can be derived. Errors are mapped the same way as for Execute.
func (t *Transport) Query(ctx context.Context, q any, variables map[string]any) error {
	shape := fmt.Sprintf("%T", q)
	t.logger.DebugContext(ctx, "graphql request",
		slog.String("operation", shape),
		slog.String("type", "query"),
		slog.Any("variables", variableNames(variables)))

	start := time.Now()
	err := t.gql.Query(ctx, q, variables)
	t.logger.DebugContext(ctx, "graphql response",
		slog.String("operation", shape),
		slog.Bool("ok", err == nil),
		slog.Duration("elapsed", time.Since(start)))
	return MapError(err)
}

// MapError converts an error from the HTTP client or the graphql library
// into the error taxonomy. Errors that already belong to it are returned
// unwrapped; GraphQL errors become *errors.QueryError and everything else
// becomes *errors.NetworkError.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, linearerrors.ErrClient) {
		var uerr *url.Error
		if errors.As(err, &uerr) && errors.Is(uerr.Err, linearerrors.ErrClient) {
			return uerr.Err
		}
		return err
	}

	// The graphql library reports server errors as an unexported slice
	// type whose JSON form is the response's errors array.
	if raw, jerr := json.Marshal(err); jerr == nil && bytes.HasPrefix(raw, []byte("[")) {
		var entries []linearerrors.GraphQLError
		if json.Unmarshal(raw, &entries) == nil && len(entries) > 0 {
			return &linearerrors.QueryError{Errors: entries}
		}
	}

	return &linearerrors.NetworkError{Err: err}
}

// decodeEnvelope splits a 2xx body into its errors and data members.
func decodeEnvelope(raw []byte, out any) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &linearerrors.NetworkError{Err: fmt.Errorf("invalid JSON response: %w", err)}
	}

	if rawErrors, ok := envelope["errors"]; ok {
		qerr := &linearerrors.QueryError{}
		if err := json.Unmarshal(rawErrors, &qerr.Errors); err != nil {
			qerr.Message = "GraphQL query failed: " + snippet(rawErrors)
		}
		return qerr
	}

	data, ok := envelope["data"]
	if !ok || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &linearerrors.NetworkError{Err: fmt.Errorf("invalid response data: %w", err)}
	}
	return nil
}

func variableNames(variables map[string]any) []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	return names
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
// A body of exactly limit bytes is accepted; the error surfaces on the first
// byte past it.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read > lr.limit {
		return 0, lr.exceeded()
	}

	// Read one byte past the limit to tell an exact fit from an overflow.
	remaining := lr.limit + 1 - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n - int(lr.read-lr.limit), lr.exceeded()
	}

	return n, err
}

func (lr *limitedReader) exceeded() error {
	return fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
}

// authTransport adds the API key, identification headers and the
// response size limit to every request, and turns error statuses into
// the error taxonomy so both Execute and Query see the same errors.
type authTransport struct {
	apiKey string
	base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper. A 401, 429 or other non-2xx
// response is consumed and returned as an error instead.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	// Linear expects personal API keys without a scheme prefix
	req.Header.Set("Authorization", t.apiKey)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseSize,
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	return nil, statusError(resp)
}

// statusError reads and closes the body of a non-2xx response.
func statusError(resp *http.Response) error {
	var raw []byte
	if resp.Body != nil {
		raw, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		resp.Body.Close()
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &linearerrors.AuthenticationError{Body: snippet(raw)}
	case http.StatusTooManyRequests:
		return &linearerrors.RateLimitError{RetryAfter: resp.Header.Get("Retry-After")}
	}

	nerr := &linearerrors.NetworkError{StatusCode: resp.StatusCode}
	if s := snippet(raw); s != "" {
		nerr.Err = fmt.Errorf("%s", s)
	}
	return nerr
}
