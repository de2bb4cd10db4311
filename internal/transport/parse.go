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

package transport

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	linearerrors "github.com/sirseerhq/linear-go/pkg/errors"
)

// Operation describes the first operation of a parsed document.
type Operation struct {
	// Name is the operation name, or "anonymous".
	Name string

	// Type is "query", "mutation" or "subscription".
	Type string
}

func (o Operation) String() string {
	return o.Type + " " + o.Name
}

// Parse checks that query is a syntactically valid GraphQL document with
// at least one operation. Schema validation is left to the server.
func Parse(query string) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "document", Input: query})
	if err != nil {
		return Operation{}, &linearerrors.QueryError{Message: fmt.Sprintf("invalid GraphQL document: %v", err)}
	}
	if len(doc.Operations) == 0 {
		return Operation{}, &linearerrors.QueryError{Message: "invalid GraphQL document: no operation defined"}
	}

	first := doc.Operations[0]
	op := Operation{Name: first.Name, Type: string(first.Operation)}
	if op.Name == "" {
		op.Name = "anonymous"
	}
	if op.Type == "" {
		op.Type = "query"
	}
	return op, nil
}
