// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diagnostics implements the "Diagnostics flag" output spec.md
// §6 names (one line per exposed declaration, tagged by how it earned
// inclusion) and a structural registry diff used to verify shaking's
// idempotency.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/kylelemons/godebug/pretty"

	"github.com/cxmodel-dev/cxmodel/internal/decltable"
	"github.com/cxmodel-dev/cxmodel/internal/declmodel"
	"github.com/cxmodel-dev/cxmodel/internal/depgraph"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
	"github.com/cxmodel-dev/cxmodel/internal/shaking"
)

// Sink writes diagnostic lines. The zero value is not usable; use
// NewSink.
type Sink struct {
	w io.Writer
}

// NewSink returns a Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Emit writes one "{INCL|ENF}: <decl-id>" line per entry in registry
// whose status is included or enforced, in table's discovery order.
// Excluded and unknown entries never appear here: they were never
// exposed, so a trace of "what got exposed and why" has nothing to say
// about them.
func (s *Sink) Emit(table *decltable.Table, registry *shaking.Registry) {
	table.Each(func(d *declmodel.Decl) bool {
		switch registry.Get(d.ID) {
		case shaking.Included:
			fmt.Fprintf(s.w, "INCL: %s\n", d.ID)
		case shaking.Enforced:
			fmt.Fprintf(s.w, "ENF: %s\n", d.ID)
		}
		return true
	})
}

// EdgeReasons writes one "<parent> -> <child> (<reason>)" line per
// edge table's owner graph recorded a reason for, for a caller trying
// to understand why a specific declaration ended up reachable.
func (s *Sink) EdgeReasons(edges []EdgeReason) {
	for _, e := range edges {
		fmt.Fprintf(s.w, "%s -> %s (%s)\n", e.From, e.To, e.Reason)
	}
}

// EdgeReason is one recorded graph edge and why it was added.
type EdgeReason struct {
	From, To ident.DeclId
	Reason   string
}

// CollectEdgeReasons walks every edge g's discovery pass recorded a
// reason for, in node insertion order, for callers building an
// "explain this edge" report.
func CollectEdgeReasons(g *depgraph.Graph) []EdgeReason {
	var out []EdgeReason
	g.Each(func(n *depgraph.Node) bool {
		g.VisitNodeEdges(n.ID, func(target ident.DeclId) bool {
			if reason, ok := g.EdgeReason(n.ID, target); ok {
				out = append(out, EdgeReason{From: n.ID, To: target, Reason: reason})
			}
			return true
		})
		return true
	})
	return out
}

// Diff renders a structural diff between two inclusion registry
// snapshots using pretty-printed Go values, the way the extract
// subcommand's -verify_idempotent check (a second shaking.Run over the
// same graph must produce an identical registry) reports a mismatch. An
// empty string means the snapshots are identical.
func Diff(before, after map[ident.DeclId]shaking.Status) string {
	return pretty.Compare(before, after)
}
