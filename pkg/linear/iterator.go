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
	"iter"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
)

// pageFetcher requests the page that starts after cursor. An empty cursor
// requests the first page.
type pageFetcher[T any] func(ctx context.Context, cursor string) ([]T, pageInfo, error)

// Iterator walks a paginated connection lazily. Pages are requested one at
// a time, only after the previous page has been consumed, so abandoning an
// Iterator leaves no request in flight.
//
// An Iterator is forward-only and cannot be restarted. It is not safe for
// concurrent use.
//
//	it := client.Issues.List(ctx, linear.IssueListOptions{TeamID: teamID})
//	for it.Next() {
//		issue := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T any] struct {
	ctx    context.Context
	fetch  pageFetcher[T]
	cursor string

	page    []T
	pos     int
	current T
	more    bool
	pages   int
	err     error
}

func newIterator[T any](ctx context.Context, after string, fetch pageFetcher[T]) *Iterator[T] {
	return &Iterator[T]{
		ctx:    ctx,
		fetch:  fetch,
		cursor: after,
		more:   true,
	}
}

// Next advances to the next value, requesting a new page when the current
// one is exhausted. It returns false at the end of the connection or on
// the first error; check Err afterwards.
func (it *Iterator[T]) Next() bool {
	for it.pos >= len(it.page) {
		if !it.more || it.err != nil {
			return false
		}
		if err := it.ctx.Err(); err != nil {
			it.stop(err)
			return false
		}

		nodes, info, err := it.fetch(it.ctx, it.cursor)
		it.pages++
		if err != nil {
			it.stop(err)
			return false
		}

		it.page, it.pos = nodes, 0
		it.more = bool(info.HasNextPage)
		it.cursor = string(info.EndCursor)
		if it.more && it.cursor == "" {
			it.stop(&linearerrors.QueryError{Message: "server reported another page without an end cursor"})
			return it.pos < len(it.page) && it.advance()
		}
	}
	return it.advance()
}

func (it *Iterator[T]) advance() bool {
	it.current = it.page[it.pos]
	it.pos++
	return true
}

func (it *Iterator[T]) stop(err error) {
	it.err = err
	it.more = false
}

// Value returns the value Next advanced to.
func (it *Iterator[T]) Value() T {
	return it.current
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Pages reports how many page requests have been issued so far.
func (it *Iterator[T]) Pages() int {
	return it.pages
}

// Cursor returns the end cursor of the last fetched page. Passing it as
// ListOptions.After to a new list call resumes after that page.
func (it *Iterator[T]) Cursor() string {
	return it.cursor
}

// All returns the remaining values as a range-over-func sequence. An error
// is yielded once, as the final pair, with the zero value.
func (it *Iterator[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for it.Next() {
			if !yield(it.Value(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains the iterator. On error it returns the values gathered so
// far together with the error.
func (it *Iterator[T]) Collect() ([]T, error) {
	var values []T
	for it.Next() {
		values = append(values, it.Value())
	}
	return values, it.Err()
}
