// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsanalyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

// declarationType builds the analyzer.Type for a field/variable/
// parameter/function declaration: its base type specifier (the "type"
// field) wrapped by whatever pointer/array/function declarator syntax
// surrounds the declared name (the "declarator" field).
func (c *Cursor) declarationType() analyzer.Type {
	if c.IsNull() {
		return nil
	}
	base := c.node.ChildByFieldName("type")
	if base == nil {
		return nil
	}
	return buildType(c.file, base, c.node.ChildByFieldName("declarator"))
}

// buildType walks declarator's pointer/array/function wrapping down to
// the identifier it names, then resolves base at the bottom. Each level
// it unwraps becomes one Type wrapping the next.
func buildType(f *file, base *sitter.Node, declarator *sitter.Node) *Type {
	if declarator == nil {
		return buildBaseType(f, base)
	}
	switch declarator.Type() {
	case "pointer_declarator":
		pointee := buildType(f, base, declarator.ChildByFieldName("declarator"))
		return &Type{file: f, kind: analyzer.TypePointer, name: pointee.Spelling() + " *", pointee: pointee}
	case "reference_declarator":
		pointee := buildType(f, base, declarator.ChildByFieldName("declarator"))
		return &Type{file: f, kind: analyzer.TypeLValueReference, name: pointee.Spelling() + " &", pointee: pointee}
	case "array_declarator":
		elem := buildType(f, base, declarator.ChildByFieldName("declarator"))
		size, ok := arraySize(f, declarator.ChildByFieldName("size"))
		kind := analyzer.TypeIncompleteArray
		if ok {
			kind = analyzer.TypeConstantArray
		}
		return &Type{file: f, kind: kind, name: elem.Spelling() + "[]", element: elem, arrLen: size, hasArr: ok}
	case "function_declarator":
		ret := buildType(f, base, declarator.ChildByFieldName("declarator"))
		params := buildParameterTypes(f, declarator.ChildByFieldName("parameters"))
		return &Type{file: f, kind: analyzer.TypeFunctionProto, name: ret.Spelling() + "(...)", ret: ret, params: params}
	case "parenthesized_declarator":
		return buildType(f, base, declarator.ChildByFieldName("declarator"))
	case "identifier", "field_identifier", "type_identifier":
		return buildBaseType(f, base)
	default:
		return buildBaseType(f, base)
	}
}

func buildParameterTypes(f *file, paramList *sitter.Node) []*Type {
	if paramList == nil {
		return nil
	}
	var params []*Type
	for i := uint32(0); i < paramList.NamedChildCount(); i++ {
		p := paramList.NamedChild(int(i))
		if p.Type() != "parameter_declaration" {
			continue // variadic_parameter and friends carry no type
		}
		base := p.ChildByFieldName("type")
		if base == nil {
			continue
		}
		params = append(params, buildType(f, base, p.ChildByFieldName("declarator")))
	}
	return params
}

// arraySize parses a constant array dimension. Non-literal dimensions
// (a variable, a missing size for `T arr[]`) are reported as "no
// constant size", matching spec's "0 for non-constant" rule upstream in
// internal/typemodel.
func arraySize(f *file, size *sitter.Node) (int64, bool) {
	if size == nil || size.Type() != "number_literal" {
		return 0, false
	}
	var n int64
	if _, err := fmt.Sscanf(size.Content(f.src), "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// buildBaseType resolves the type specifier at the bottom of a
// declarator chain: a primitive/sized type, or a struct/union/class/enum
// tag or typedef name resolved against the file's decl index.
func buildBaseType(f *file, base *sitter.Node) *Type {
	switch base.Type() {
	case "primitive_type":
		name := base.Content(f.src)
		if name == "void" {
			return &Type{file: f, kind: analyzer.TypeVoid, name: name}
		}
		return &Type{file: f, kind: analyzer.TypeArithmetic, name: name}
	case "sized_type_specifier", "primitive_type_declarator":
		return &Type{file: f, kind: analyzer.TypeArithmetic, name: base.Content(f.src)}
	case "struct_specifier", "union_specifier", "class_specifier":
		return buildTagType(f, base)
	case "enum_specifier":
		return buildTagType(f, base)
	case "type_identifier":
		name := base.Content(f.src)
		if def := f.defIndex().lookupTypedef(name); def != nil {
			return &Type{file: f, kind: analyzer.TypeTypedef, name: name, declNode: def}
		}
		// A referenced typedef this translation unit never defines (an
		// opaque library type): leave it unresolved rather than guess.
		return &Type{file: f, kind: analyzer.TypeUnknown, name: name}
	default:
		return &Type{file: f, kind: analyzer.TypeUnknown, name: base.Content(f.src)}
	}
}

func buildTagType(f *file, base *sitter.Node) *Type {
	keyword, kind := tagKeywordAndKind(base.Type())
	name := ""
	if n := base.ChildByFieldName("name"); n != nil {
		name = n.Content(f.src)
	}
	if base.ChildByFieldName("body") != nil {
		return &Type{file: f, kind: kind, name: keyword + " " + name, declNode: base}
	}
	def := f.defIndex().lookupTag(keyword, name)
	return &Type{file: f, kind: kind, name: keyword + " " + name, declNode: def}
}

func tagKeywordAndKind(nodeType string) (string, analyzer.TypeKind) {
	switch nodeType {
	case "struct_specifier":
		return "struct", analyzer.TypeRecord
	case "union_specifier":
		return "union", analyzer.TypeRecord
	case "class_specifier":
		return "class", analyzer.TypeRecord
	case "enum_specifier":
		return "enum", analyzer.TypeEnum
	}
	return nodeType, analyzer.TypeUnknown
}
