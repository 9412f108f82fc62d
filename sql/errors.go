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

import errors "gopkg.in/src-d/go-errors.v1"

// Error kinds, per the error handling design: all are non-resumable within
// one statement except ErrCannotPrepare, which is a soft signal that
// disables plan caching rather than a failure.
var (
	// ErrSemantic is raised when the semantic checker has already rejected
	// the statement; the rewriter must not run on a semantically invalid tree.
	ErrSemantic = errors.NewKind("semantic error: %s")

	// ErrOutOfMemory is raised when arena allocation fails.
	ErrOutOfMemory = errors.NewKind("out of memory allocating parse graph node")

	// ErrInvalidXASLNode is raised when the serializer meets a variant it
	// does not know how to encode.
	ErrInvalidXASLNode = errors.NewKind("invalid xasl node: %s")

	// ErrPartitionWorkFailed is raised when a catalog read fails during
	// pruning.
	ErrPartitionWorkFailed = errors.NewKind("partition work failed: %s")

	// ErrCannotPrepare is a soft error: the pruner saw an unbound
	// host-variable in a partition-key expression. The statement is marked
	// non-cacheable and execution proceeds with a full scan; it is not
	// surfaced to the caller as a failure.
	ErrCannotPrepare = errors.NewKind("cannot prepare: %s")

	// ErrAborted is raised when a pass observes a cancelled ParserContext.
	ErrAborted = errors.NewKind("parser context aborted: %s")
)
