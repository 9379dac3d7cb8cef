// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/analyzer/fake"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
)

// buildTwoStructsPointerLinked mirrors the walker package's S1 fixture:
// struct B { int x; }; struct A { B *b; }; only A matches any pattern.
func buildTwoStructsPointerLinked() *fake.Cursor {
	intType := fake.NewType(analyzer.TypeArithmetic, "int")

	bStruct := fake.NewCursor(analyzer.CursorStructDecl, "B")
	x := fake.NewCursor(analyzer.CursorFieldDecl, "x")
	x.TypeVal = intType
	bStruct.Adopt(x)

	bRecordType := fake.NewType(analyzer.TypeRecord, "B")
	bRecordType.DeclVal = bStruct
	bPtrType := fake.NewType(analyzer.TypePointer, "B *")
	bPtrType.PointeeVal = bRecordType

	aStruct := fake.NewCursor(analyzer.CursorStructDecl, "A")
	b := fake.NewCursor(analyzer.CursorFieldDecl, "b")
	b.TypeVal = bPtrType
	aStruct.Adopt(b)

	tu := fake.NewCursor(analyzer.CursorTranslationUnit, "")
	tu.Adopt(bStruct)
	tu.Adopt(aStruct)
	return tu
}

func TestRunExposesPointerLinkedDependency(t *testing.T) {
	root := buildTwoStructsPointerLinked()
	cfg := Config{Patterns: filterpat.Config{IncludedName: []string{"A"}}}

	model, err := Run(context.Background(), analyzer.TranslationUnit{Root: root}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	names := map[string]bool{}
	for _, d := range model.Decls {
		names[d.Name] = true
	}
	if !names["A"] || !names["B"] {
		t.Fatalf("Decls = %v, want both A and B exposed", names)
	}
}

func TestRunExcludesUnmatchedDeclarations(t *testing.T) {
	root := buildTwoStructsPointerLinked()
	// No pattern matches anything; everything defaults to ignored and
	// stays unexposed since nothing roots it.
	model, err := Run(context.Background(), analyzer.TranslationUnit{Root: root}, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(model.Decls) != 0 {
		t.Fatalf("Decls = %v, want none exposed", model.Decls)
	}
}

// failingIndex.Parse fails for every path in fails and returns good for
// any other path, for RunMany's error-aggregation test.
type failingIndex struct {
	fails map[string]bool
	good  *fake.Cursor
}

func (f *failingIndex) Dispose() {}

func (f *failingIndex) Parse(path string, opts analyzer.Options) (analyzer.TranslationUnit, error) {
	if f.fails[path] {
		return analyzer.TranslationUnit{}, errors.New("boom")
	}
	return analyzer.TranslationUnit{Root: f.good}, nil
}

func TestRunManyAggregatesPerSourceErrorsWithoutDroppingGoodOnes(t *testing.T) {
	idx := &failingIndex{fails: map[string]bool{"bad.c": true}, good: buildTwoStructsPointerLinked()}
	cfg := Config{Patterns: filterpat.Config{IncludedName: []string{"A"}}, ParallelJobs: 2}

	srcs := []Source{{Path: "good1.c"}, {Path: "bad.c"}, {Path: "good2.c"}}
	res, err := RunMany(context.Background(), idx, srcs, cfg)
	if err == nil {
		t.Fatal("RunMany returned nil error, want the bad.c failure reported")
	}
	if res.Models[0] == nil || res.Models[2] == nil {
		t.Fatalf("good sources should still have produced a Model: %+v", res.Models)
	}
	if res.Models[1] != nil {
		t.Fatalf("bad.c should have a nil Model, got %+v", res.Models[1])
	}
	if res.Errs[1] == nil {
		t.Fatal("bad.c should have a recorded error")
	}
}
