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

// Package testutil provides a mock Linear GraphQL server and payload
// builders for tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/sirseerhq/linear-go/internal/transport"
)

// Request is a GraphQL request received by a MockServer.
type Request struct {
	Operation string
	Query     string
	Variables map[string]any
	Header    http.Header
}

// Response is what a Responder sends back. A zero Status means 200.
type Response struct {
	Status int
	Header map[string]string
	Body   any
}

// Responder produces the response for one request.
type Responder func(req Request) Response

// MockServer records every GraphQL request and answers through a Responder.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewMockServer starts a server answering with respond. It is closed when
// the test ends.
func NewMockServer(t *testing.T, respond Responder) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		req := Request{Query: body.Query, Variables: body.Variables, Header: r.Header.Clone()}
		if op, err := transport.Parse(body.Query); err == nil {
			req.Operation = op.Name
		}

		m.mu.Lock()
		m.requests = append(m.requests, req)
		m.mu.Unlock()

		resp := respond(req)
		for k, v := range resp.Header {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", "application/json")
		if resp.Status != 0 {
			w.WriteHeader(resp.Status)
		}
		switch b := resp.Body.(type) {
		case nil:
		case string:
			_, _ = w.Write([]byte(b))
		default:
			_ = json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(m.Close)
	return m
}

// NewSequenceServer answers the n-th request with the n-th response and
// repeats the last one afterwards.
func NewSequenceServer(t *testing.T, responses ...Response) *MockServer {
	t.Helper()
	var mu sync.Mutex
	next := 0
	return NewMockServer(t, func(req Request) Response {
		mu.Lock()
		defer mu.Unlock()
		resp := responses[next]
		if next < len(responses)-1 {
			next++
		}
		return resp
	})
}

// NewDataServer answers every request with the given data member.
func NewDataServer(t *testing.T, data map[string]any) *MockServer {
	t.Helper()
	return NewMockServer(t, func(Request) Response {
		return Data(data)
	})
}

// NewErrorServer answers every request with statusCode.
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(Request) Response {
		return Response{Status: statusCode, Body: `{"message":"` + http.StatusText(statusCode) + `"}`}
	})
}

// NewRateLimitServer answers every request with 429 and a Retry-After header.
func NewRateLimitServer(t *testing.T, retryAfter int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(Request) Response {
		return Response{
			Status: http.StatusTooManyRequests,
			Header: map[string]string{"Retry-After": strconv.Itoa(retryAfter)},
			Body:   `{"message":"API rate limit exceeded"}`,
		}
	})
}

// Requests returns a copy of the requests received so far.
func (m *MockServer) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// RequestCount returns how many requests were received.
func (m *MockServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request. It fails the test when none
// was received.
func (m *MockServer) LastRequest(t *testing.T) Request {
	t.Helper()
	reqs := m.Requests()
	if len(reqs) == 0 {
		t.Fatal("mock server received no requests")
	}
	return reqs[len(reqs)-1]
}

// Data wraps data in a successful GraphQL envelope.
func Data(data map[string]any) Response {
	return Response{Body: map[string]any{"data": data}}
}

// Errors builds a GraphQL errors response with one entry per message.
func Errors(messages ...string) Response {
	errs := make([]map[string]any, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, map[string]any{"message": msg})
	}
	return Response{Body: map[string]any{"data": nil, "errors": errs}}
}
