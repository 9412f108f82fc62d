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
	"github.com/cubrid-go/rewriter/sql/log"
	"github.com/cubrid-go/rewriter/sql/partition"
	"github.com/cubrid-go/rewriter/sql/predicate"
	"github.com/cubrid-go/rewriter/sql/rewrite"
)

// Analyzer runs the fixed, three-batch pipeline spec.md §2 describes over a
// parse graph: normalize every predicate chain, rewrite joins and
// subqueries, then prune partitioned specs. Unlike the teacher's
// iterate-to-fixpoint rule engine, this pipeline runs each batch exactly
// once per statement, in a fixed order, since the source itself is a
// single-pass rewriter rather than a fixpoint optimizer.
type Analyzer struct {
	Config  Config
	Catalog partition.Catalog
	Batches []Batch
}

// NewAnalyzer builds the standard three-batch pipeline: normalize, rewrite,
// prune. catalog may be nil, in which case the prune batch is a no-op and
// auto-parameterization never treats any column as a partition key.
func NewAnalyzer(cfg Config, catalog partition.Catalog) *Analyzer {
	return &Analyzer{
		Config:  cfg,
		Catalog: catalog,
		Batches: []Batch{
			{Name: "normalize", Rules: []Rule{{Name: "predicate.NormalizeQuery", Apply: normalizeRule}}},
			{Name: "rewrite", Rules: []Rule{{Name: "rewrite.RewriteQuery", Apply: rewriteRule}}},
			{Name: "prune", Rules: []Rule{{Name: "partition.Prune", Apply: pruneRule}}},
		},
	}
}

// RewriteQueries runs every batch, in order, over the statement rooted at
// root: normalize, then rewrite, then prune, matching spec.md §2's control
// flow. Each batch gets its own tracing span; a rule returning an error
// aborts the whole pipeline immediately, and the caller decides whether that
// error is fatal to the statement. A statement that pruning finds cannot be
// prepared for plan caching is not reported as an error: the prune batch
// sets the query's CannotPrepare flag instead.
func (a *Analyzer) RewriteQueries(ctx *sql.Context, c *graph.ParserContext, root graph.NodeId) error {
	for _, batch := range a.Batches {
		batchCtx, finish := ctx.StartSpan(batch.Name)
		for _, rule := range batch.Rules {
			log.Infof("analyzer: running rule %s", rule.Name)
			if err := rule.Apply(batchCtx, a, c, root); err != nil {
				finish()
				return err
			}
		}
		finish()
	}
	return nil
}

func normalizeRule(ctx *sql.Context, a *Analyzer, c *graph.ParserContext, root graph.NodeId) error {
	return normalizeStatement(ctx, a, c, root)
}

func normalizeStatement(ctx *sql.Context, a *Analyzer, c *graph.ParserContext, node graph.NodeId) error {
	if c.Aborted() {
		return sql.ErrAborted.New("cancelled during normalize")
	}
	n := c.Get(node)
	if n == nil || n.Query == nil {
		return nil
	}
	if n.Kind == graph.KindUnion || n.Kind == graph.KindDifference || n.Kind == graph.KindIntersection {
		if err := normalizeStatement(ctx, a, c, n.Query.Left); err != nil {
			return err
		}
		return normalizeStatement(ctx, a, c, n.Query.Right)
	}

	q := n.Query
	for _, specID := range q.FromSpecs {
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil || spec.Spec.DerivedTable == graph.InvalidID {
			continue
		}
		if err := normalizeStatement(ctx, a, c, spec.Spec.DerivedTable); err != nil {
			return err
		}
	}

	predicate.NormalizeQuery(ctx, c, q, a.Config.normalizeConfig(), a.isPartitionKey(c))
	return nil
}

func rewriteRule(ctx *sql.Context, a *Analyzer, c *graph.ParserContext, root graph.NodeId) error {
	if c.Aborted() {
		return sql.ErrAborted.New("cancelled before rewrite")
	}
	rewrite.RewriteQuery(c, root)
	return nil
}

func pruneRule(ctx *sql.Context, a *Analyzer, c *graph.ParserContext, root graph.NodeId) error {
	return pruneStatement(ctx, a, c, root)
}

func pruneStatement(ctx *sql.Context, a *Analyzer, c *graph.ParserContext, node graph.NodeId) error {
	if c.Aborted() {
		return sql.ErrAborted.New("cancelled during prune")
	}
	n := c.Get(node)
	if n == nil || n.Query == nil {
		return nil
	}
	if n.Kind == graph.KindUnion || n.Kind == graph.KindDifference || n.Kind == graph.KindIntersection {
		if err := pruneStatement(ctx, a, c, n.Query.Left); err != nil {
			return err
		}
		return pruneStatement(ctx, a, c, n.Query.Right)
	}

	q := n.Query
	for _, specID := range q.FromSpecs {
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil {
			continue
		}
		if spec.Spec.DerivedTable != graph.InvalidID {
			if err := pruneStatement(ctx, a, c, spec.Spec.DerivedTable); err != nil {
				return err
			}
			continue
		}
		if a.Catalog == nil {
			continue
		}
		d, ok, err := a.Catalog.FetchClass(spec.Spec.EntityName)
		if err != nil {
			return sql.ErrPartitionWorkFailed.New(err.Error())
		}
		if !ok {
			continue
		}
		if partition.Prune(c, specID, spec.Spec, d, q.Where) {
			q.CannotPrepare = true
			log.Infof("analyzer: spec %s cannot be prepared for plan caching", spec.Spec.EntityName)
		}
	}
	return nil
}

// isPartitionKey closes over the analyzer's catalog for
// predicate.AutoParameterize's PartitionKeyTest: a column must never be
// auto-parameterized if it is the partitioning key, since pruning needs its
// literal value.
func (a *Analyzer) isPartitionKey(c *graph.ParserContext) predicate.PartitionKeyTest {
	return func(specID graph.NodeId, column string) bool {
		if a.Catalog == nil {
			return false
		}
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil {
			return false
		}
		d, ok, err := a.Catalog.FetchClass(spec.Spec.EntityName)
		if err != nil || !ok {
			return false
		}
		return d.KeyAttr == column
	}
}
