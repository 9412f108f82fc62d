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

package rewrite

import "github.com/cubrid-go/rewriter/sql/graph"

// AnalyzePathJoin implements analyze_path_join (§4.C.1). FROM specs are
// examined in reverse declaration order (deepest path link first), so a
// path spec that this pass upgrades to PATH_INNER is already reflected by
// the time an enclosing path spec's WHERE-folding runs. Only specs joined
// LEFT or RIGHT OUTER are candidates; plain inner joins have no outer
// semantics to classify.
func AnalyzePathJoin(c *graph.ParserContext, q *graph.QueryInfo) {
	for i := len(q.FromSpecs) - 1; i >= 0; i-- {
		specID := q.FromSpecs[i]
		spec := c.Get(specID)
		if spec == nil || spec.Spec == nil || !isOuterPath(spec.Spec) {
			continue
		}
		spec.Spec.MetaClass = classifyPathJoin(c, q.Where, specID)
		if spec.Spec.MetaClass == graph.MetaClassPathInner {
			spec.Spec.JoinType = graph.JoinInner
		}
	}
}

func isOuterPath(s *graph.SpecInfo) bool {
	return s.JoinType == graph.JoinLeftOuter || s.JoinType == graph.JoinRightOuter
}

func classifyPathJoin(c *graph.ParserContext, where, specID graph.NodeId) graph.MetaClass {
	if foldsToExcluded(c, where, specID) {
		return graph.MetaClassPathInner
	}
	if referencesSpec(c, where, specID) {
		return graph.MetaClassPathOuterWeasel
	}
	return graph.MetaClassPathOuter
}

func referencesSpec(c *graph.ParserContext, root, specID graph.NodeId) bool {
	found := false
	graph.Inspect(c, root, func(_ graph.NodeId, n *graph.Node) bool {
		if n.Kind == graph.KindName && n.Name != nil && n.Name.SpecID == specID {
			found = true
			return false
		}
		return true
	})
	return found
}
