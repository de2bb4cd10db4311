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

// Package output renders CLI results either as an aligned table for people
// or as NDJSON for pipelines.
//
// Both formats implement RecordWriter. Records are written one at a time as
// an Iterator yields them; the NDJSON writer emits each line immediately,
// while the table writer buffers rows until Close renders them.
//
//	w := output.NewTableWriter(os.Stdout, output.Column{Header: "ID", Value: ...})
//	for it.Next() {
//		if err := w.Write(it.Value()); err != nil {
//			return err
//		}
//	}
//	return w.Close()
package output

import (
	"fmt"
	"io"
	"strings"
)

// RecordWriter writes CLI records in one output format.
type RecordWriter interface {
	// Write adds a single record to the output.
	Write(record any) error

	// Close flushes buffered output. It does not close the underlying
	// io.Writer.
	Close() error
}

// Format selects the output format.
type Format string

const (
	FormatTable  Format = "table"
	FormatNDJSON Format = "ndjson"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatNDJSON:
		return f, nil
	case "json":
		return FormatNDJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected table or ndjson)", s)
}

// New returns a RecordWriter for format. columns are used by the table
// format only.
func New(format Format, w io.Writer, columns ...Column) RecordWriter {
	if format == FormatNDJSON {
		return NewNDJSONWriter(w)
	}
	return NewTableWriter(w, columns...)
}
