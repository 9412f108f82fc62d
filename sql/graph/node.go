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

package graph

import "github.com/cubrid-go/rewriter/sql"

// NodeId is a stable index into a ParserContext's arena. It replaces the
// source's raw node pointer: two NodeIds are the same node iff they are
// numerically equal, and a Spec's Id (§3) is simply its own NodeId.
type NodeId uint32

// InvalidID marks "no node" (the equivalent of a nil pointer).
const InvalidID NodeId = 0

// SubRange is one sub-range of a RANGE atom (§3): an operator plus the
// bound node(s) it needs. EQ_NA uses only Lo (a single point); the two-sided
// ops use both Lo and Hi; the four open ops (GE_INF, GT_INF, INF_LE, INF_LT) use only the bound
// their name implies.
type SubRange struct {
	Op SubRangeOp
	Lo NodeId
	Hi NodeId
}

// ExprInfo is the payload of a KindExpr node: the PRED / EVAL_TERM /
// NOT_TERM shapes of §3 collapse onto one struct because in this encoding
// the discriminant is Op, not a second-level node kind.
type ExprInfo struct {
	Op        ExprOp
	Arg1      NodeId
	Arg2      NodeId
	Arg3      NodeId // BETWEEN's second bound, before folding into Arg2's sub-range
	SubRanges []SubRange
	// SubOp is the underlying comparison an OpAny/OpSome/OpAll node quantifies
	// over (e.g. OpGt for "> ANY (...)"), used by the subquery-to-join
	// rewrite (§4.C.3) to pick MIN()/MAX() for the rewritten projection.
	SubOp ExprOp
}

// NameInfo is the payload of a KindName node.
type NameInfo struct {
	SpecID     NodeId
	ColumnName string
	Resolved   bool
}

// FunctionInfo is the payload of a KindFunction node. The rewriter only
// needs to recognize a handful of function names (INST_NUM, ORDERBY_NUM,
// NVL/DECODE/... for nullability analysis, MIN/MAX for subquery rewriting)
// rather than evaluate arbitrary functions, so this stays a name + args
// pair rather than a typed catalog of builtins.
type FunctionInfo struct {
	Name string
	Args []NodeId
}

// HostVarInfo is the payload of a KindHostVar node: a numbered placeholder
// that auto-parameterization (§4.B.9) substitutes for a literal constant so
// a cached plan can be rebound to different values without re-normalizing.
type HostVarInfo struct {
	Index      int
	Type       sql.TypeEnum
	OrigColumn string // the attribute the bound value came from, for diagnostics
}

// SpecInfo is the payload of a KindSpec node: the from-list entry described
// in §3's "Spec" subsection. It is stored on the Node so a Spec's identity
// (its own NodeId) threads through NAME.SpecID references exactly as in the
// source, where a Spec's id is its own node address.
type SpecInfo struct {
	EntityName      string
	FlatEntityList  []string // resolved class-hierarchy / partition-child expansion
	DerivedTable    NodeId
	DerivedType     DerivedTableType
	RangeVar        string
	AsAttrList      []string
	PathEntities    []NodeId
	PathConjuncts   []NodeId
	MetaClass       MetaClass
	JoinType        JoinType
	OnCond          NodeId
	Location        int
	PartitionPruned bool
}

// QueryInfo is the payload shared by SELECT/UPDATE/DELETE/INSERT/UNION/
// DIFFERENCE/INTERSECTION nodes: everything the rewriter's entry point
// (rewrite_queries, §2) needs to reach per statement.
type QueryInfo struct {
	FromSpecs      []NodeId
	SelectList     []NodeId
	Where          NodeId // head of CNF chain
	Having         NodeId
	StartWith      NodeId
	ConnectBy      NodeId
	AfterCBFilter  NodeId
	OrderBy        []NodeId
	GroupBy        []NodeId
	OrderedHint    bool
	CannotPrepare  bool
	PartitionPruned bool

	// For UNION/DIFFERENCE/INTERSECTION: the two operand statements.
	Left  NodeId
	Right NodeId

	// IsTopLevel marks this query as the top-level result producer (not the
	// body of a derived table or subquery), relevant to
	// PruneUnnecessaryOrderBy's "not a top-level result producer" test
	// (§4.C.6).
	IsTopLevel bool

	// CorrelationLevel is the number of enclosing statements a NAME inside
	// this query resolves into; 0 means the subquery is self-contained
	// (uncorrelated), the precondition for §4.C.3's subquery-to-join
	// rewrite. HasOrderByNum and OrderByLimited support §4.C.6's
	// "unnecessary ORDER BY" test.
	CorrelationLevel int
	HasOrderByNum    bool
	OrderByLimited   bool
}

// Node is the tagged-union graph vertex described in §3.
type Node struct {
	ID       NodeId
	Kind     Kind
	TypeEnum sql.TypeEnum
	DataType *sql.DataType
	Line     int
	Column   int

	Next   NodeId
	OrNext NodeId

	Location int
	Flags    Flags

	Expr     *ExprInfo
	Name     *NameInfo
	Spec     *SpecInfo
	Query    *QueryInfo
	Value    *sql.Value
	Function *FunctionInfo
	HostVar  *HostVarInfo
}

// ParserContext owns the arena: every Node allocated through it is freed
// transitively when the context is discarded (simply dropping the slice, in
// this GC'd encoding). It also carries the cooperative-cancellation flag
// described in §5.
type ParserContext struct {
	arena   []*Node
	aborted bool
	abortErr error
}

// NewParserContext returns an empty context. Index 0 is reserved so
// InvalidID never aliases a real node.
func NewParserContext() *ParserContext {
	return &ParserContext{arena: make([]*Node, 1, 64)}
}

// Alloc reserves a new node of the given kind and returns it, already
// registered in the arena under its own ID.
func (c *ParserContext) Alloc(kind Kind) *Node {
	n := &Node{Kind: kind}
	n.ID = NodeId(len(c.arena))
	c.arena = append(c.arena, n)
	return n
}

// Get resolves a NodeId back to its Node, or nil for InvalidID or an id
// outside the arena (never valid in a well-formed graph, but Get is total
// so walk code need not special-case it).
func (c *ParserContext) Get(id NodeId) *Node {
	if id == InvalidID || int(id) >= len(c.arena) {
		return nil
	}
	return c.arena[id]
}

func (c *ParserContext) Abort(err error) {
	c.aborted = true
	c.abortErr = err
}

func (c *ParserContext) Aborted() bool   { return c.aborted }
func (c *ParserContext) AbortErr() error { return c.abortErr }

// NewExpr allocates a KindExpr node with the given operator and operands.
func (c *ParserContext) NewExpr(op ExprOp, arg1, arg2 NodeId) *Node {
	n := c.Alloc(KindExpr)
	n.Expr = &ExprInfo{Op: op, Arg1: arg1, Arg2: arg2}
	return n
}

// NewName allocates a KindName node resolved (or not) to specID.
func (c *ParserContext) NewName(specID NodeId, column string) *Node {
	n := c.Alloc(KindName)
	n.Name = &NameInfo{SpecID: specID, ColumnName: column, Resolved: specID != InvalidID}
	return n
}

// NewLiteral allocates a KindValue node holding a constant.
func (c *ParserContext) NewLiteral(v sql.Value) *Node {
	n := c.Alloc(KindValue)
	vv := v
	n.Value = &vv
	n.TypeEnum = v.Type
	n.Flags.Set(FlagConstant)
	return n
}

// NewSpec allocates a KindSpec node for entityName with range variable
// alias.
func (c *ParserContext) NewSpec(entityName, rangeVar string) *Node {
	n := c.Alloc(KindSpec)
	n.Spec = &SpecInfo{EntityName: entityName, RangeVar: rangeVar, FlatEntityList: []string{entityName}}
	return n
}

// NewFunction allocates a KindFunction node.
func (c *ParserContext) NewFunction(name string, args ...NodeId) *Node {
	n := c.Alloc(KindFunction)
	n.Function = &FunctionInfo{Name: name, Args: args}
	return n
}

// NewHostVar allocates a KindHostVar node standing in for a literal of the
// given domain, numbered index within its statement.
func (c *ParserContext) NewHostVar(index int, t sql.TypeEnum, origColumn string) *Node {
	n := c.Alloc(KindHostVar)
	n.HostVar = &HostVarInfo{Index: index, Type: t, OrigColumn: origColumn}
	n.TypeEnum = t
	return n
}

// IsInstNum reports whether n is the pseudocolumn function INST_NUM().
func (c *ParserContext) IsInstNum(n *Node) bool {
	return n != nil && n.Kind == KindFunction && n.Function != nil && n.Function.Name == "INST_NUM"
}

// NewQuery allocates a query-shaped node (SELECT/UPDATE/DELETE/INSERT).
func (c *ParserContext) NewQuery(kind Kind) *Node {
	n := c.Alloc(kind)
	n.Query = &QueryInfo{}
	return n
}

// --- predicates on Node, used throughout the normalizer ---

// IsAttr reports whether n denotes an attribute reference, looking through
// PRIOR exactly as qo_is_attr / PRIOR-transparency in §4.B.2/§4.B.3.
func (c *ParserContext) IsAttr(n *Node) bool {
	n = c.StripPrior(n)
	return n != nil && n.Kind == KindName
}

// StripPrior unwraps a PRIOR(x) wrapper, returning x; returns n unchanged if
// it is not a PRIOR node.
func (c *ParserContext) StripPrior(n *Node) *Node {
	if n != nil && n.Kind == KindExpr && n.Expr != nil && n.Expr.Op == OpPrior {
		return c.Get(n.Expr.Arg1)
	}
	return n
}

// IsConstant reports whether n is a literal value (not an expression).
func (c *ParserContext) IsConstant(n *Node) bool {
	return n != nil && n.Kind == KindValue
}

// NameEqual reports whether two NAME nodes refer to the same (spec, column)
// pair — the graph's notion of "the same attribute".
func (c *ParserContext) NameEqual(a, b *Node) bool {
	if a == nil || b == nil || a.Kind != KindName || b.Kind != KindName {
		return false
	}
	return a.Name.SpecID == b.Name.SpecID && a.Name.ColumnName == b.Name.ColumnName
}

// CopyNode performs a shallow structural copy of n (a new arena slot with
// the same payload values), used by rewrites that need a second reference
// to a subtree (e.g. the duplicated bound in comparison-pair folding, or
// PRIOR-wrapper duplication during unary-minus elimination).
func (c *ParserContext) CopyNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := c.Alloc(n.Kind)
	cp.TypeEnum = n.TypeEnum
	cp.DataType = n.DataType
	cp.Line, cp.Column = n.Line, n.Column
	cp.Location = n.Location
	cp.Flags = n.Flags
	if n.Expr != nil {
		e := *n.Expr
		e.SubRanges = append([]SubRange(nil), n.Expr.SubRanges...)
		cp.Expr = &e
	}
	if n.Name != nil {
		nm := *n.Name
		cp.Name = &nm
	}
	if n.Value != nil {
		v := *n.Value
		cp.Value = &v
	}
	if n.Spec != nil {
		sp := *n.Spec
		cp.Spec = &sp
	}
	if n.Query != nil {
		q := *n.Query
		cp.Query = &q
	}
	if n.Function != nil {
		f := *n.Function
		f.Args = append([]NodeId(nil), n.Function.Args...)
		cp.Function = &f
	}
	if n.HostVar != nil {
		hv := *n.HostVar
		cp.HostVar = &hv
	}
	return cp
}
