// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typeregistry canonicalizes materialized types by
// (fully-qualified spelling, analyzer-equality): a second occurrence of
// an analyzer-equal type returns the existing *typemodel.Type object
// instead of building a new one, which is what lets cyclic records close
// the loop without infinite recursion (spec.md §4.5).
package typeregistry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/typemodel"
)

// entry pairs a materialized Type with the analyzer handle it was built
// from, so a second lookup can test analyzer-equality against it.
type entry struct {
	handle analyzer.Type
	typ    *typemodel.Type
}

// Registry canonicalizes types. It is not safe for concurrent use; the
// discovery walker owns it exclusively for the duration of one pass.
type Registry struct {
	bySpelling *orderedmap.OrderedMap[string, []entry]
}

// New returns a new, empty Registry.
func New() *Registry {
	return &Registry{bySpelling: orderedmap.New[string, []entry]()}
}

// GetOrCreate returns the canonical *typemodel.Type for t. If a
// previously registered type with the same spelling is analyzer-equal to
// t, that existing object is returned and build is not called. Otherwise
// build is invoked to materialize a new *typemodel.Type, which is then
// registered under t's spelling for future lookups.
//
// build must not itself call GetOrCreate for t's own spelling+handle
// before returning, or it would recurse forever on a self-referential
// type; the discovery walker instead registers a placeholder via
// GetOrReserve before recursing into a type's dependencies (see
// GetOrReserve).
func (r *Registry) GetOrCreate(t analyzer.Type, build func() *typemodel.Type) *typemodel.Type {
	spelling := t.Spelling()
	if existing, ok := r.bySpelling.Get(spelling); ok {
		for _, e := range existing {
			if e.handle.Equal(t) {
				return e.typ
			}
		}
	}
	built := build()
	r.register(spelling, t, built)
	return built
}

// Reserve registers a zero-initialized *typemodel.Type for t before the
// caller recurses into t's structural dependencies (record fields,
// function parameters), mirroring the decl table's reserve-before-recurse
// rule so a cyclic record's self-reference resolves to the same object
// instead of recursing forever. The caller fills in the returned Type's
// fields in place once recursion returns.
func (r *Registry) Reserve(t analyzer.Type, placeholder *typemodel.Type) *typemodel.Type {
	r.register(t.Spelling(), t, placeholder)
	return placeholder
}

// GetOrReserve looks up an analyzer-equal entry for t; if found it
// returns (existing, false). Otherwise it registers a fresh zero-valued
// *typemodel.Type immediately (before the caller has filled in anything)
// and returns (placeholder, true). Callers fill the placeholder's fields
// in place only when isNew is true; this is what lets a self-referential
// record's pointer-to-self field resolve to the same object instead of
// recursing into building that type's own fields a second time.
func (r *Registry) GetOrReserve(t analyzer.Type) (typ *typemodel.Type, isNew bool) {
	spelling := t.Spelling()
	if existing, ok := r.bySpelling.Get(spelling); ok {
		for _, e := range existing {
			if e.handle.Equal(t) {
				return e.typ, false
			}
		}
	}
	placeholder := &typemodel.Type{}
	r.register(spelling, t, placeholder)
	return placeholder, true
}

func (r *Registry) register(spelling string, t analyzer.Type, typ *typemodel.Type) {
	existing, _ := r.bySpelling.Get(spelling)
	r.bySpelling.Set(spelling, append(existing, entry{handle: t, typ: typ}))
}

// Len returns the number of distinct spellings registered (not the total
// number of analyzer-equal variants under each spelling).
func (r *Registry) Len() int { return r.bySpelling.Len() }
