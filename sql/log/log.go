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

// Package log adapts the rewriter's logging calls onto the teacher's vitess
// logging shim, itself a thin wrapper over logrus. Keeping the indirection
// here (rather than importing logrus directly from every package) mirrors
// gopkg.in/src-d/go-vitess.v0/vt/log, so swapping the backing logger later
// touches one file.
package log

import vtlog "gopkg.in/src-d/go-vitess.v0/vt/log"

var (
	Info   = vtlog.Info
	Infof  = vtlog.Infof
	Warning  = vtlog.Warning
	Warningf = vtlog.Warningf
	Error  = vtlog.Error
	Errorf = vtlog.Errorf
)
