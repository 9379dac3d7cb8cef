// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaking implements the inclusion pass: starting from a
// dependency graph's synthetic root, it propagates inclusion status
// through the graph's edges with promotion, exclusion contagion and
// enforcement override, producing a final InclusionRegistry (spec.md
// §4.9).
package shaking

import (
	log "github.com/golang/glog"

	"github.com/cxmodel-dev/cxmodel/internal/depgraph"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
)

// Status is the InclusionRegistry's value set, strictly ordered
// unknown < excluded < included < enforced for promotion purposes.
type Status int

const (
	Unknown Status = iota
	Excluded
	Included
	Enforced
)

// String renders the Status for diagnostics.
func (s Status) String() string {
	switch s {
	case Excluded:
		return "excluded"
	case Included:
		return "included"
	case Enforced:
		return "enforced"
	default:
		return "unknown"
	}
}

// Registry is the DeclId -> Status map the shaking engine produces.
type Registry struct {
	m map[ident.DeclId]Status
}

func newRegistry() *Registry {
	return &Registry{m: make(map[ident.DeclId]Status)}
}

// Get returns id's status, defaulting to Unknown if never touched.
func (r *Registry) Get(id ident.DeclId) Status {
	return r.m[id]
}

// Exposed reports whether id's status is included or enforced, the
// condition the exposure builder (C10) filters on.
func (r *Registry) Exposed(id ident.DeclId) bool {
	s := r.Get(id)
	return s == Included || s == Enforced
}

// Snapshot returns a copy of the registry's entries, for diagnostics'
// idempotency diff.
func (r *Registry) Snapshot() map[ident.DeclId]Status {
	out := make(map[ident.DeclId]Status, len(r.m))
	for k, v := range r.m {
		out[k] = v
	}
	return out
}

// promote sets registry[node] to newStatus if it's an improvement,
// reporting whether it did, along with node's resulting status (the
// promoted one if promotion happened, else the one already there).
func (r *Registry) promote(node ident.DeclId, newStatus Status) (promoted bool, resulting Status) {
	current := r.m[node]
	if current < newStatus {
		r.m[node] = newStatus
		return true, newStatus
	}
	return false, current
}

// Run executes the shaking engine over g and returns the resulting
// InclusionRegistry. It performs the primary traversal from the root,
// then the enforcement-rescue second pass described in spec.md §4.9.
func Run(g *depgraph.Graph) *Registry {
	r := newRegistry()

	g.VisitNodeEdges(ident.RootID, func(target ident.DeclId) bool {
		n, ok := g.FindNode(target)
		if !ok {
			log.Fatalf("shaking: root edge to unknown node %q", target)
		}
		if n.Status == filterpat.Ignored {
			return true
		}
		followEdge(g, r, target, n.Status == filterpat.Enforced)
		return true
	})

	rescue(g, r)

	return r
}

// followEdge implements spec.md §4.9's `follow-edge(node, enforced)`.
//
// Termination relies solely on the registry's promotion being monotone
// over a totally-ordered, height-4 status set: a call that does not
// promote its node returns immediately without recursing, so any cyclic
// path through the graph can only drive a finite number of promotions
// before every node on it stops recursing further.
func followEdge(g *depgraph.Graph, r *Registry, node ident.DeclId, enforced bool) bool {
	n, ok := g.FindNode(node)
	if !ok {
		log.Fatalf("shaking: follow-edge on unknown node %q", node)
	}

	newStatus := newStatusFor(enforced, n.Status)
	promoted, resulting := r.promote(node, newStatus)
	if resulting == Excluded {
		// node's status, after this call, is Excluded — whether it was
		// already Excluded from a prior traversal or became so just now.
		// Either way, this edge is poisoned and contagion propagates to
		// whoever followed it here.
		return true
	}
	recurse := n.Status != filterpat.Excluded
	if !promoted || !recurse {
		return false
	}

	contagion := false
	g.VisitNodeEdges(node, func(target ident.DeclId) bool {
		if followEdge(g, r, target, enforced) {
			contagion = true
		}
		return true
	})
	if contagion {
		r.m[node] = Excluded
		return true
	}
	return false
}

func newStatusFor(enforced bool, filterStatus filterpat.Status) Status {
	if enforced {
		return Enforced
	}
	switch filterStatus {
	case filterpat.Included:
		return Included
	case filterpat.Excluded:
		return Excluded
	case filterpat.Ignored:
		return Included
	case filterpat.Enforced:
		return Enforced
	default:
		return Included
	}
}

// rescue implements the enforcement-rescue second pass: for every node
// whose registry status is Enforced, walk upward through parents back to
// the root, clearing every visited node to Unknown (see the Open
// Question resolution this repo adopts — documented in DESIGN.md), then
// re-running follow-edge on the root's edges along that path.
func rescue(g *depgraph.Graph, r *Registry) {
	var enforcedNodes []ident.DeclId
	for id, status := range r.m {
		if status == Enforced {
			enforcedNodes = append(enforcedNodes, id)
		}
	}

	rootEdgesToRequeue := make(map[ident.DeclId]bool)
	clearedVisited := make(map[ident.DeclId]bool)

	for _, start := range enforcedNodes {
		walkUpward(g, r, start, clearedVisited, rootEdgesToRequeue)
	}

	if len(rootEdgesToRequeue) == 0 {
		return
	}

	// Replay in the graph's own root-edge order (not map iteration order,
	// which Go randomizes), so the replay order is deterministic. An
	// enforced re-traversal promotes an Excluded node to Enforced rather
	// than reading it as poisoned, so a node replayed earlier does not
	// re-poison an enforced one replayed later.
	g.VisitNodeEdges(ident.RootID, func(target ident.DeclId) bool {
		if !rootEdgesToRequeue[target] {
			return true
		}
		n, ok := g.FindNode(target)
		if !ok {
			return true
		}
		followEdge(g, r, target, n.Status == filterpat.Enforced)
		return true
	})
}

// walkUpward walks node's parents toward the root, clearing each
// visited node back to Unknown and, whenever a parent is the root,
// recording the root->node edge for re-queueing.
func walkUpward(g *depgraph.Graph, r *Registry, node ident.DeclId, visited map[ident.DeclId]bool, rootEdges map[ident.DeclId]bool) {
	if visited[node] {
		return
	}
	visited[node] = true

	n, ok := g.FindNode(node)
	if !ok {
		return
	}

	if node != ident.RootID {
		r.m[node] = Unknown
	}

	n.Parents.Each(func(parent ident.DeclId) bool {
		if parent == ident.RootID {
			rootEdges[node] = true
		}
		walkUpward(g, r, parent, visited, rootEdges)
		return true
	})
}
