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

	"github.com/jedib0t/go-pretty/v6/table"
)

// Column describes one table column. Value extracts the cell from a record.
type Column struct {
	Header string
	Value  func(record any) any
}

// TableWriter collects rows and renders them as a table on Close.
type TableWriter struct {
	tw      table.Writer
	columns []Column
	rows    int
}

// NewTableWriter creates a table writer on w with the given columns.
func NewTableWriter(w io.Writer, columns ...Column) *TableWriter {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	header := make(table.Row, 0, len(columns))
	for _, col := range columns {
		header = append(header, col.Header)
	}
	if len(header) > 0 {
		tw.AppendHeader(header)
	}
	return &TableWriter{tw: tw, columns: columns}
}

// Write appends one row. Without columns the record is printed with %v.
func (w *TableWriter) Write(record any) error {
	if len(w.columns) == 0 {
		w.tw.AppendRow(table.Row{fmt.Sprintf("%v", record)})
		w.rows++
		return nil
	}

	row := make(table.Row, 0, len(w.columns))
	for _, col := range w.columns {
		row = append(row, col.Value(record))
	}
	w.tw.AppendRow(row)
	w.rows++
	return nil
}

// Rows returns the number of rows written.
func (w *TableWriter) Rows() int {
	return w.rows
}

// Close renders the table.
func (w *TableWriter) Close() error {
	w.tw.Render()
	return nil
}
