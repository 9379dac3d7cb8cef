// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package depgraph

import (
	"testing"

	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
)

func TestNewHasRoot(t *testing.T) {
	g := New()
	if !g.HasNode(ident.RootID) {
		t.Fatal("New() graph has no root node")
	}
	if g.Root().Status != filterpat.Ignored {
		t.Fatalf("root status = %v, want Ignored", g.Root().Status)
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	g := New()
	n1 := g.AddNode("a", filterpat.Included)
	n2 := g.AddNode("a", filterpat.Excluded)
	if n1 != n2 {
		t.Fatal("AddNode returned distinct nodes for the same id")
	}
	if n1.Status != filterpat.Included {
		t.Fatalf("second AddNode changed status to %v, want it to stay Included", n1.Status)
	}
}

func TestAdoptCreatesEdgeAndParent(t *testing.T) {
	g := New()
	g.Adopt("p", "c")
	pn, _ := g.FindNode("p")
	cn, _ := g.FindNode("c")
	if !pn.Edges.Has("c") {
		t.Fatal("Adopt did not add edge p->c")
	}
	if !cn.Parents.Has("p") {
		t.Fatal("Adopt did not add p to c's parents")
	}
}

func TestAdoptIsIdempotent(t *testing.T) {
	g := New()
	g.Adopt("p", "c")
	g.Adopt("p", "c")
	pn, _ := g.FindNode("p")
	if pn.Edges.Len() != 1 {
		t.Fatalf("Edges.Len() = %d after duplicate Adopt, want 1", pn.Edges.Len())
	}
}

func TestVisitNodeEdgesOrder(t *testing.T) {
	g := New()
	g.Adopt("p", "z")
	g.Adopt("p", "a")
	g.Adopt("p", "m")
	var got []ident.DeclId
	g.VisitNodeEdges("p", func(target ident.DeclId) bool {
		got = append(got, target)
		return true
	})
	want := []ident.DeclId{"z", "a", "m"}
	for i, id := range want {
		if got[i] != id {
			t.Fatalf("VisitNodeEdges order[%d] = %v, want %v", i, got[i], id)
		}
	}
}
