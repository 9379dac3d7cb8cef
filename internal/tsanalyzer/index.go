// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsanalyzer

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

// declIndex maps a translation unit's tag names (struct/union/class/enum)
// and typedef names back to their defining node, so a bare reference
// (`struct Foo *`, a typedef'd type_identifier, a forward declaration)
// can be resolved to the node that actually carries a body. Built once
// per file and cached, since the discovery walker resolves many
// references against the same translation unit.
type declIndex struct {
	tags     map[string]*sitter.Node // "struct:Foo", "union:Foo", "class:Foo", "enum:Foo"
	typedefs map[string]*sitter.Node
}

func buildDeclIndex(root *sitter.Node, src []byte) *declIndex {
	idx := &declIndex{tags: map[string]*sitter.Node{}, typedefs: map[string]*sitter.Node{}}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "struct_specifier", "union_specifier", "class_specifier", "enum_specifier":
			if body := n.ChildByFieldName("body"); body != nil {
				if name := n.ChildByFieldName("name"); name != nil {
					idx.tags[tagPrefix(n.Type())+":"+name.Content(src)] = n
				}
			}
		case "type_definition":
			if name := declaratorName(n.ChildByFieldName("declarator"), src); name != "" {
				idx.typedefs[name] = n
			}
		}
		for i := uint32(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(int(i)))
		}
	}
	walk(root)
	return idx
}

func tagPrefix(nodeType string) string {
	switch nodeType {
	case "struct_specifier":
		return "struct"
	case "union_specifier":
		return "union"
	case "class_specifier":
		return "class"
	case "enum_specifier":
		return "enum"
	}
	return nodeType
}

// declaratorName is declaredName's standalone counterpart for use before
// any *Cursor exists (index construction runs directly over raw nodes).
func declaratorName(decl *sitter.Node, src []byte) string {
	for decl != nil {
		switch decl.Type() {
		case "identifier", "field_identifier", "type_identifier":
			return decl.Content(src)
		case "pointer_declarator", "array_declarator", "parenthesized_declarator",
			"reference_declarator", "function_declarator":
			decl = decl.ChildByFieldName("declarator")
		default:
			return ""
		}
	}
	return ""
}

func (idx *declIndex) lookup(kind analyzer.CursorKind, name string) *sitter.Node {
	if name == "" {
		return nil
	}
	switch kind {
	case analyzer.CursorStructDecl:
		return idx.tags["struct:"+name]
	case analyzer.CursorUnionDecl:
		return idx.tags["union:"+name]
	case analyzer.CursorClassDecl:
		return idx.tags["class:"+name]
	case analyzer.CursorEnumDecl:
		return idx.tags["enum:"+name]
	case analyzer.CursorReference:
		// A bodyless struct/union/class/enum_specifier doesn't carry
		// which tag namespace it belongs to beyond the keyword already
		// baked into its node type, which the caller didn't pass down;
		// try all four, in the order C programmers hit them most.
		for _, prefix := range [...]string{"struct", "union", "class", "enum"} {
			if n := idx.tags[prefix+":"+name]; n != nil {
				return n
			}
		}
	}
	return nil
}

func (idx *declIndex) lookupTag(prefix, name string) *sitter.Node {
	return idx.tags[prefix+":"+name]
}

func (idx *declIndex) lookupTypedef(name string) *sitter.Node {
	return idx.typedefs[name]
}

// file is the shared, read-only state every Cursor in one translation
// unit's tree refers back to: the source bytes (for Content/Spelling
// extraction), the path (for Location.File) and the lazily-built decl
// index used to resolve tag/typedef references.
type file struct {
	path string
	src  []byte
	root *sitter.Node

	once sync.Once
	idx  *declIndex
}

func (f *file) defIndex() *declIndex {
	f.once.Do(func() {
		f.idx = buildDeclIndex(f.root, f.src)
	})
	return f.idx
}
