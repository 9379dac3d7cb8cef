// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package idset implements an insertion-ordered set of declaration ids,
// used by the dependency graph for a node's outgoing edges and parents
// (spec.md §3: "keyed sets — duplicates are no-ops").
//
// Unlike the concurrent-safe set it is adapted from, this set is not
// synchronized: the discovery walker and shaking engine are both
// single-threaded, stack-recursive passes over one graph (spec.md §5).
package idset

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cxmodel-dev/cxmodel/internal/ident"
)

// New returns a new, empty set.
func New() *Set {
	return &Set{m: orderedmap.New[ident.DeclId, struct{}]()}
}

// Set is an insertion-ordered set of DeclIds.
type Set struct {
	m *orderedmap.OrderedMap[ident.DeclId, struct{}]
}

// Add adds id to the set and reports whether it wasn't already present.
// A no-op (returns false) if id is already in the set, per the graph's
// "duplicates are no-ops" invariant.
func (s *Set) Add(id ident.DeclId) bool {
	if _, ok := s.m.Get(id); ok {
		return false
	}
	s.m.Set(id, struct{}{})
	return true
}

// Has reports whether id is in the set.
func (s *Set) Has(id ident.DeclId) bool {
	_, ok := s.m.Get(id)
	return ok
}

// Len returns the number of elements in the set.
func (s *Set) Len() int { return s.m.Len() }

// Each calls f for every element in insertion order, stopping early if f
// returns false.
func (s *Set) Each(f func(ident.DeclId) bool) {
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		if !f(pair.Key) {
			return
		}
	}
}

// Slice returns the set's elements as a slice, in insertion order.
func (s *Set) Slice() []ident.DeclId {
	out := make([]ident.DeclId, 0, s.m.Len())
	s.Each(func(id ident.DeclId) bool {
		out = append(out, id)
		return true
	})
	return out
}
