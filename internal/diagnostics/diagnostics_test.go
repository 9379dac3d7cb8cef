// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cxmodel-dev/cxmodel/internal/decltable"
	"github.com/cxmodel-dev/cxmodel/internal/declmodel"
	"github.com/cxmodel-dev/cxmodel/internal/depgraph"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
	"github.com/cxmodel-dev/cxmodel/internal/shaking"
)

func TestEmitWritesOnlyIncludedAndEnforcedLines(t *testing.T) {
	table := decltable.New()
	table.Reserve("a", declmodel.Struct, ident.Identity{ID: "a", IsDecl: true})
	table.Reserve("b", declmodel.Struct, ident.Identity{ID: "b", IsDecl: true})
	table.Reserve("c", declmodel.Struct, ident.Identity{ID: "c", IsDecl: true})

	g := depgraph.New()
	g.AddNode("a", filterpat.Included)
	g.AddNode("b", filterpat.Enforced)
	g.AddNode("c", filterpat.Excluded)
	g.Adopt(ident.RootID, "a")
	g.Adopt(ident.RootID, "b")
	g.Adopt(ident.RootID, "c")
	registry := shaking.Run(g)

	var buf bytes.Buffer
	NewSink(&buf).Emit(table, registry)

	got := buf.String()
	if !strings.Contains(got, "INCL: a\n") {
		t.Errorf("output %q missing INCL line for a", got)
	}
	if !strings.Contains(got, "ENF: b\n") {
		t.Errorf("output %q missing ENF line for b", got)
	}
	if strings.Contains(got, "c\n") {
		t.Errorf("output %q should not mention excluded c", got)
	}
}

func TestDiffEmptyForIdenticalSnapshots(t *testing.T) {
	a := map[ident.DeclId]shaking.Status{"x": shaking.Included}
	b := map[ident.DeclId]shaking.Status{"x": shaking.Included}
	if got := Diff(a, b); got != "" {
		t.Errorf("Diff(identical) = %q, want empty", got)
	}
}

func TestDiffNonEmptyForDivergentSnapshots(t *testing.T) {
	a := map[ident.DeclId]shaking.Status{"x": shaking.Included}
	b := map[ident.DeclId]shaking.Status{"x": shaking.Excluded}
	if got := Diff(a, b); got == "" {
		t.Error("Diff(divergent) = empty, want a structural diff")
	}
}

func TestCollectEdgeReasonsIncludesRecordedReasons(t *testing.T) {
	g := depgraph.New()
	g.AddNode("a", filterpat.Included)
	g.AddNode("b", filterpat.Ignored)
	g.AdoptWithReason(ident.RootID, "a", "owned-child")
	g.AdoptWithReason("a", "b", "type-dependency")

	reasons := CollectEdgeReasons(g)
	found := map[string]string{}
	for _, r := range reasons {
		found[string(r.From)+"->"+string(r.To)] = r.Reason
	}
	if found["->a"] != "owned-child" {
		t.Errorf("reasons = %v, want root->a tagged owned-child", found)
	}
	if found["a->b"] != "type-dependency" {
		t.Errorf("reasons = %v, want a->b tagged type-dependency", found)
	}
}
