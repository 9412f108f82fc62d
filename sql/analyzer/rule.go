// Copyright 2018 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"github.com/cubrid-go/rewriter/sql"
	"github.com/cubrid-go/rewriter/sql/graph"
)

// RuleFunc is one named pass over a statement rooted at root. It mutates c
// in place; the teacher's analyzer rules return a new tree because its
// plan nodes are immutable, but the parse graph arena here is mutated
// directly, so a rule only needs to report failure.
type RuleFunc func(ctx *sql.Context, a *Analyzer, c *graph.ParserContext, root graph.NodeId) error

// Rule pairs a RuleFunc with the name that shows up in tracing and logs.
type Rule struct {
	Name  string
	Apply RuleFunc
}

// Batch is an ordered group of rules run once per statement, in order. The
// source runs predicate normalization, rewriting and partition pruning as
// three such fixed-order batches rather than an iterate-to-fixpoint loop,
// so Batch has no MaxIterations knob the way a fixpoint-rule engine would.
type Batch struct {
	Name  string
	Rules []Rule
}
