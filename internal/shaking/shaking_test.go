// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaking

import (
	"testing"

	"github.com/cxmodel-dev/cxmodel/internal/depgraph"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
)

// mutualStructGraph builds the S1/S2/S3 scenario's shape directly
// (without a walker): struct A { struct B* b; }; struct B { struct A* a; };
// with root->A and root->B edges and a mutual A<->B dependency edge
// (standing in for the pointer-to-struct edge the walker would record).
func mutualStructGraph(statusA, statusB filterpat.Status) *depgraph.Graph {
	g := depgraph.New()
	g.AddNode("A", statusA)
	g.AddNode("B", statusB)
	g.Adopt(ident.RootID, "A")
	g.Adopt(ident.RootID, "B")
	g.Adopt("A", "B")
	g.Adopt("B", "A")
	return g
}

func TestScenarioS1IncludeBothViaPointerEdge(t *testing.T) {
	// include-pattern "A": A is Included, B is discovered but not matched
	// by any pattern (Ignored) until reached through A's edge.
	g := mutualStructGraph(filterpat.Included, filterpat.Ignored)
	r := Run(g)
	if got := r.Get("A"); got != Included {
		t.Errorf("A = %v, want Included", got)
	}
	if got := r.Get("B"); got != Included {
		t.Errorf("B = %v, want Included (required via pointer edge)", got)
	}
}

func TestScenarioS2ExcludeContagionPoisonsAncestor(t *testing.T) {
	g := mutualStructGraph(filterpat.Included, filterpat.Excluded)
	r := Run(g)
	if got := r.Get("B"); got != Excluded {
		t.Errorf("B = %v, want Excluded", got)
	}
	if got := r.Get("A"); got != Excluded {
		t.Errorf("A = %v, want Excluded (contagion from B)", got)
	}
}

func TestScenarioS3EnforcementRescue(t *testing.T) {
	g := mutualStructGraph(filterpat.Enforced, filterpat.Excluded)
	r := Run(g)
	if got := r.Get("A"); got != Enforced {
		t.Errorf("A = %v, want Enforced", got)
	}
	if got := r.Get("B"); got != Enforced {
		t.Errorf("B = %v, want Enforced (rescued via A's re-traversal)", got)
	}
}

func TestIgnoredRootEdgeNeverVisited(t *testing.T) {
	g := depgraph.New()
	g.AddNode("X", filterpat.Ignored)
	g.Adopt(ident.RootID, "X")
	r := Run(g)
	if got := r.Get("X"); got != Unknown {
		t.Errorf("X = %v, want Unknown (root edges to Ignored targets are never followed)", got)
	}
}

func TestIncludedChainPromotesAllDescendants(t *testing.T) {
	g := depgraph.New()
	g.AddNode("A", filterpat.Included)
	g.AddNode("B", filterpat.Ignored)
	g.AddNode("C", filterpat.Ignored)
	g.Adopt(ident.RootID, "A")
	g.Adopt("A", "B")
	g.Adopt("B", "C")
	r := Run(g)
	for _, id := range []ident.DeclId{"A", "B", "C"} {
		if got := r.Get(id); got != Included {
			t.Errorf("%s = %v, want Included", id, got)
		}
	}
}

func TestDiamondWithOneExcludedLegPoisonsApex(t *testing.T) {
	// root -> A -> {B, C}; C is excluded. A requires both B and C; C is
	// excluded, so A is poisoned even though B is fine.
	g := depgraph.New()
	g.AddNode("A", filterpat.Included)
	g.AddNode("B", filterpat.Ignored)
	g.AddNode("C", filterpat.Excluded)
	g.Adopt(ident.RootID, "A")
	g.Adopt("A", "B")
	g.Adopt("A", "C")
	r := Run(g)
	if got := r.Get("B"); got != Included {
		t.Errorf("B = %v, want Included", got)
	}
	if got := r.Get("C"); got != Excluded {
		t.Errorf("C = %v, want Excluded", got)
	}
	if got := r.Get("A"); got != Excluded {
		t.Errorf("A = %v, want Excluded (contagion from C)", got)
	}
}

func TestExposedReflectsIncludedAndEnforcedOnly(t *testing.T) {
	r := newRegistry()
	r.m["inc"] = Included
	r.m["enf"] = Enforced
	r.m["exc"] = Excluded
	if !r.Exposed("inc") || !r.Exposed("enf") {
		t.Error("Included/Enforced should be Exposed")
	}
	if r.Exposed("exc") || r.Exposed("never-touched") {
		t.Error("Excluded/Unknown should not be Exposed")
	}
}

func TestRunTerminatesOnSelfCycle(t *testing.T) {
	g := depgraph.New()
	g.AddNode("A", filterpat.Included)
	g.Adopt(ident.RootID, "A")
	g.Adopt("A", "A")
	r := Run(g)
	if got := r.Get("A"); got != Included {
		t.Errorf("A = %v, want Included", got)
	}
}
