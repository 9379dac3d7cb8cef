// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decltable maps DeclId to *declmodel.Decl with get-or-create
// semantics: the discovery walker reserves a zero-initialized Decl before
// recursing into a cursor's children, so a self-referential record sees
// its own in-progress Decl instead of recursing forever (spec.md §4.6).
package decltable

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cxmodel-dev/cxmodel/internal/declmodel"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
)

// Table is the DeclId -> *declmodel.Decl map. Not safe for concurrent
// use; owned exclusively by one discovery pass.
type Table struct {
	m *orderedmap.OrderedMap[ident.DeclId, *declmodel.Decl]
}

// New returns a new, empty Table.
func New() *Table {
	return &Table{m: orderedmap.New[ident.DeclId, *declmodel.Decl]()}
}

// Reserve returns the existing Decl for id if one is already present
// (ignoring kind and identity — the caller's in-progress recursion will
// observe whatever is already there), or creates, stores and returns a
// new zero-initialized Decl via declmodel.New otherwise. The boolean
// result reports whether this call created the Decl: callers use it to
// decide whether to proceed with filling in kind-specific payload, since
// an existing Decl must never be re-initialized.
func (t *Table) Reserve(id ident.DeclId, kind declmodel.Kind, identity ident.Identity) (*declmodel.Decl, bool) {
	if d, ok := t.m.Get(id); ok {
		return d, false
	}
	d := declmodel.New(id, kind, identity)
	t.m.Set(id, d)
	return d, true
}

// Get returns the Decl for id, if present.
func (t *Table) Get(id ident.DeclId) (*declmodel.Decl, bool) {
	return t.m.Get(id)
}

// Has reports whether id has been reserved.
func (t *Table) Has(id ident.DeclId) bool {
	_, ok := t.m.Get(id)
	return ok
}

// Len returns the number of declarations in the table.
func (t *Table) Len() int { return t.m.Len() }

// Each calls f for every Decl in insertion (discovery) order, stopping
// early if f returns false. C10 (exposure/output builder) relies on this
// order being the discovery order.
func (t *Table) Each(f func(*declmodel.Decl) bool) {
	for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
		if !f(pair.Value) {
			return
		}
	}
}
