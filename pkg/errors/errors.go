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

// Package errors defines the error taxonomy returned by the Linear client.
//
// Every error produced by the library matches ErrClient with errors.Is.
// Narrower checks use the sentinel of each failure class, and the typed
// errors carry the diagnostic payload (status code, server errors, the
// attempted input) for errors.As callers.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for consistent error handling and exit code mapping.
var (
	// ErrClient is matched by every error the library returns.
	ErrClient = errors.New("linear client error")

	// ErrConfig indicates missing or invalid client configuration.
	ErrConfig = errors.New("invalid configuration")

	// ErrAuthentication indicates the API key was rejected (HTTP 401).
	ErrAuthentication = errors.New("linear authentication failed")

	// ErrRateLimit indicates the API rate limit was exceeded (HTTP 429).
	// The client never retries; callers decide when to try again.
	ErrRateLimit = errors.New("linear rate limit exceeded")

	// ErrNetworkFailure indicates a transport failure or an unexpected
	// HTTP status.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrQueryFailed indicates the server answered with a GraphQL errors array,
	// or the document could not be parsed before sending.
	ErrQueryFailed = errors.New("graphql query failed")

	// ErrOperationFailed indicates the request round-tripped but the server
	// rejected the operation (success:false, or no result).
	ErrOperationFailed = errors.New("operation rejected")

	// ErrNotFound indicates a get or list targeted an entity the server
	// reported as absent.
	ErrNotFound = errors.New("entity not found")
)

// ConfigError reports a configuration value that failed validation.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrConfig or ErrClient.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig || target == ErrClient
}

// AuthenticationError is returned for HTTP 401 responses.
type AuthenticationError struct {
	Body string
}

func (e *AuthenticationError) Error() string {
	msg := "invalid API key (HTTP 401)"
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is reports whether target is ErrAuthentication or ErrClient.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication || target == ErrClient
}

// RateLimitError is returned for HTTP 429 responses.
type RateLimitError struct {
	// RetryAfter is the raw Retry-After header, when the server sent one.
	RetryAfter string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("API rate limit exceeded (HTTP 429), retry after %s", e.RetryAfter)
	}
	return "API rate limit exceeded (HTTP 429)"
}

// Is reports whether target is ErrRateLimit or ErrClient.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimit || target == ErrClient
}

// NetworkError is returned when the request could not be completed, the
// server answered with a non-2xx status other than 401/429, or the body
// was not valid JSON.
type NetworkError struct {
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("request failed with status %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	case e.Err != nil:
		return "network error: " + e.Err.Error()
	default:
		return "network error"
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetworkFailure or ErrClient.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetworkFailure || target == ErrClient
}

// Location points into the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is a single entry of a response's errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Locations  []Location     `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// QueryError is returned when the server reports GraphQL errors, or when
// a document fails the pre-send parse check.
type QueryError struct {
	Message string
	Errors  []GraphQLError
}

func (e *QueryError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "GraphQL query failed"
	}
	if len(e.Errors) == 0 {
		return msg
	}
	messages := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		messages = append(messages, ge.Message)
	}
	return msg + ": " + strings.Join(messages, "; ")
}

// Is reports whether target is ErrQueryFailed or ErrClient.
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed || target == ErrClient
}

// Resource names the entity family an OperationError belongs to.
type Resource string

const (
	ResourceIssue         Resource = "issue"
	ResourceComment       Resource = "comment"
	ResourceAttachment    Resource = "attachment"
	ResourceTeam          Resource = "team"
	ResourceUser          Resource = "user"
	ResourceWorkflowState Resource = "workflow_state"
)

// Operation names the resource method that failed.
type Operation string

const (
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
	OpMe     Operation = "me"
)

// OperationError is returned when a request succeeded at the transport
// level but the server rejected the operation or returned no entity.
type OperationError struct {
	Resource  Resource
	Operation Operation
	Message   string

	// ID is the target entity (or parent container for list operations).
	ID string

	// Input is the mutation input that was sent, if any.
	Input any

	// NotFound is set when the server returned null for the target.
	NotFound bool
}

func (e *OperationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s failed", e.Resource, e.Operation)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " (id: %s)", e.ID)
	}
	if e.Input != nil {
		if data, err := json.Marshal(e.Input); err == nil {
			fmt.Fprintf(&b, " (input: %s)", data)
		}
	}
	return b.String()
}

// Is reports whether target is ErrOperationFailed or ErrClient, and
// ErrNotFound when the target entity was absent.
func (e *OperationError) Is(target error) bool {
	switch target {
	case ErrOperationFailed, ErrClient:
		return true
	case ErrNotFound:
		return e.NotFound
	}
	return false
}

// NotFound builds the OperationError returned when the server answers a
// lookup with null.
func NotFound(resource Resource, op Operation, id string) *OperationError {
	return &OperationError{
		Resource:  resource,
		Operation: op,
		ID:        id,
		NotFound:  true,
		Message:   fmt.Sprintf("%s %s not found", resourceLabel(resource), id),
	}
}

// ParentNotFound builds the OperationError returned when the container a
// list operation walks (an issue, a team) is absent.
func ParentNotFound(resource, parent Resource, parentID string) *OperationError {
	return &OperationError{
		Resource:  resource,
		Operation: OpList,
		ID:        parentID,
		NotFound:  true,
		Message:   fmt.Sprintf("%s %s not found", resourceLabel(parent), parentID),
	}
}

func resourceLabel(r Resource) string {
	switch r {
	case ResourceWorkflowState:
		return "Workflow state"
	case "":
		return "Entity"
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}
