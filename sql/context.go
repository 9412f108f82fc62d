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

package sql

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
)

// Context carries the per-request state the rewriter, pruner and serializer
// need: a cancellable context.Context, an optional tracing span, and a
// session id used to namespace plan-cache entries. One Context belongs to
// exactly one request; a second request gets its own Context and, per the
// concurrency model, never touches the first one's state.
type Context struct {
	context.Context
	Span      opentracing.Span
	SessionID uuid.UUID
}

// NewContext wraps ctx with a fresh session id and no active span.
func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, SessionID: uuid.NewV4()}
}

// NewEmptyContext returns a Context suitable for tests and standalone use.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// StartSpan starts a child span named name, returning a new *Context carrying it
// and a func to finish the span. Safe to call when c.Span is nil: it starts
// a root span in that case.
func (c *Context) StartSpan(name string) (*Context, func()) {
	var span opentracing.Span
	if c.Span != nil {
		span = opentracing.StartSpan(name, opentracing.ChildOf(c.Span.Context()))
	} else {
		span = opentracing.StartSpan(name)
	}
	child := &Context{Context: c.Context, Span: span, SessionID: c.SessionID}
	return child, span.Finish
}
