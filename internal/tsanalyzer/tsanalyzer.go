// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsanalyzer is a best-effort analyzer.Index backed by
// tree-sitter's C and C++ grammars, for callers that don't have a real
// semantic front-end (libclang or similar) available. It recognizes the
// syntactic shape of struct/union/enum/typedef/function/variable
// declarations well enough to drive the discovery walker, but it does
// no semantic analysis: there is no overload resolution, no macro
// expansion, no template instantiation, and USRs are synthesized from
// the file path and the declaring node's byte offset rather than
// computed by a real compiler front-end. Prefer a real semantic analyzer where one is available;
// this package exists for environments where only source text is.
package tsanalyzer

import (
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	tsc "github.com/smacker/go-tree-sitter/c"
	tscpp "github.com/smacker/go-tree-sitter/cpp"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/errutil"
)

// Index parses translation units with tree-sitter.
type Index struct{}

// NewIndex returns a new Index. There is no session state to dispose
// beyond what each TranslationUnit itself holds, so Dispose is a no-op.
func NewIndex() *Index { return &Index{} }

func (i *Index) Dispose() {}

// Parse reads the file at path and parses it with the C or C++ grammar
// selected by opts.Language.
func (i *Index) Parse(path string, opts analyzer.Options) (tu analyzer.TranslationUnit, err error) {
	defer errutil.Annotatef(&err, "tsanalyzer: Parse(%s)", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return analyzer.TranslationUnit{}, err
	}

	parser := sitter.NewParser()
	if opts.Language == analyzer.LanguageCXX {
		parser.SetLanguage(tscpp.GetLanguage())
	} else {
		parser.SetLanguage(tsc.GetLanguage())
	}

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return analyzer.TranslationUnit{}, err
	}

	f := &file{path: path, src: src, root: tree.RootNode()}
	root := wrap(f, tree.RootNode(), nil)
	return analyzer.TranslationUnit{Root: root}, nil
}
