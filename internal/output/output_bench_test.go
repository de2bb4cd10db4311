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

package output

import (
	"fmt"
	"io"
	"testing"
	"time"
)

// sampleIssue mirrors the shape of an issue record for benchmarking
type sampleIssue struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LabelIDs    []string  `json:"label_ids"`
}

func createSampleIssue(num int) sampleIssue {
	now := time.Now()
	return sampleIssue{
		ID:          fmt.Sprintf("issue-%d", num),
		Identifier:  fmt.Sprintf("ENG-%d", num),
		Title:       "Intermittent 502s from the billing webhook after deploys",
		Description: "After each deploy the billing webhook returns 502 for roughly a minute. Requests are retried by the sender, so no events are lost, but alerts fire every time.",
		State:       "In Progress",
		Priority:    2,
		CreatedAt:   now.Add(-72 * time.Hour),
		UpdatedAt:   now.Add(-2 * time.Hour),
		LabelIDs:    []string{"label-bug", "label-billing"},
	}
}

// BenchmarkNDJSONWriter_Write benchmarks writing single records
func BenchmarkNDJSONWriter_Write(b *testing.B) {
	w := NewNDJSONWriter(io.Discard)
	issue := createSampleIssue(1)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := w.Write(issue); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTableWriter benchmarks buffering and rendering a full table
func BenchmarkTableWriter(b *testing.B) {
	columns := []Column{
		{Header: "KEY", Value: func(r any) any { return r.(sampleIssue).Identifier }},
		{Header: "TITLE", Value: func(r any) any { return r.(sampleIssue).Title }},
		{Header: "STATE", Value: func(r any) any { return r.(sampleIssue).State }},
	}
	issues := make([]sampleIssue, 250)
	for i := range issues {
		issues[i] = createSampleIssue(i + 1)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := NewTableWriter(io.Discard, columns...)
		for _, issue := range issues {
			if err := w.Write(issue); err != nil {
				b.Fatal(err)
			}
		}
		if err := w.Close(); err != nil {
			b.Fatal(err)
		}
	}
}
