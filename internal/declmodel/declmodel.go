// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package declmodel defines the closed DeclKind set and the per-kind
// payloads a Decl carries, and the mechanical cursor-kind to DeclKind
// mapping the discovery walker uses when it materializes a declaration.
package declmodel

import (
	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
	"github.com/cxmodel-dev/cxmodel/internal/typemodel"
)

// Kind is the closed set of declaration kinds.
type Kind int

const (
	Unknown Kind = iota
	Struct
	Union
	Class
	Enum
	EnumConstant
	Field
	Function
	Method
	Parameter
	Typedef
	Variable
	TemplateParameter
)

// String renders the Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case Struct:
		return "struct"
	case Union:
		return "union"
	case Class:
		return "class"
	case Enum:
		return "enum"
	case EnumConstant:
		return "enum-constant"
	case Field:
		return "field"
	case Function:
		return "function"
	case Method:
		return "method"
	case Parameter:
		return "parameter"
	case Typedef:
		return "typedef"
	case Variable:
		return "variable"
	case TemplateParameter:
		return "template-parameter"
	default:
		return "unknown"
	}
}

// KindFromCursor maps a cursor's kind to the closed Kind set. Cursor kinds
// the walker treats as transparent syntax (invalid/attribute/reference/
// statement/linkage-spec/translation-unit/namespace) also map to Unknown
// here, but the walker tells the two apart itself: transparent kinds are
// skipped entirely, while any other cursor mapping to Unknown is still
// graph-registered, just with no kind-specific payload.
func KindFromCursor(ck analyzer.CursorKind) Kind {
	switch ck {
	case analyzer.CursorStructDecl:
		return Struct
	case analyzer.CursorUnionDecl:
		return Union
	case analyzer.CursorClassDecl, analyzer.CursorClassTemplate, analyzer.CursorClassTemplatePartialSpecialization:
		return Class
	case analyzer.CursorEnumDecl:
		return Enum
	case analyzer.CursorEnumConstantDecl:
		return EnumConstant
	case analyzer.CursorFieldDecl:
		return Field
	case analyzer.CursorFunctionDecl, analyzer.CursorFunctionTemplate:
		return Function
	case analyzer.CursorMethodDecl:
		return Method
	case analyzer.CursorParmDecl:
		return Parameter
	case analyzer.CursorTypedefDecl:
		return Typedef
	case analyzer.CursorVarDecl:
		return Variable
	case analyzer.CursorTemplateTypeParameter, analyzer.CursorNonTypeTemplateParameter, analyzer.CursorTemplateTemplateParameter:
		return TemplateParameter
	default:
		return Unknown
	}
}

// IsRecordKind reports whether k is one of the record kinds (struct/union/
// class), which carry a StructPayload of ordered field decls.
func IsRecordKind(k Kind) bool { return k == Struct || k == Union || k == Class }

// StructPayload is struct/union/class's payload: the ordered field decls.
type StructPayload struct {
	Fields []ident.DeclId
}

// EnumPayload is enum's payload: ordered constants and the underlying
// integer type.
type EnumPayload struct {
	Constants []ident.DeclId
	Underlying *typemodel.Type
}

// EnumConstantPayload is enum-constant's payload.
type EnumConstantPayload struct {
	Value int64
}

// FunctionPayload is function/method's payload.
type FunctionPayload struct {
	Return     *typemodel.Type
	Parameters []ident.DeclId
	Variadic   bool
	Storage    analyzer.StorageClass
	Convention analyzer.CallingConvention
}

// FieldPayload is field's payload.
type FieldPayload struct {
	OffsetBits    int64
	HasOffset     bool
	IsBitField    bool
	BitFieldWidth int
	HasBitWidth   bool
}

// TypedefPayload is typedef's payload: the aliased type.
type TypedefPayload struct {
	Aliased *typemodel.Type
}

// Decl is one materialized declaration. Exactly one Decl exists per DeclId
// per translation context; the decl table enforces this by reserving a
// zero-initialized Decl before the walker recurses into the cursor's
// children, so self-referential records observe the in-progress Decl
// instead of recursing forever.
type Decl struct {
	ID        ident.DeclId
	Kind      Kind
	Name      string
	Qualified string
	Location  ident.Location
	Comment   string
	Type      *typemodel.Type

	// Owner is the enclosing record's DeclId for methods and fields;
	// nil for declarations with no owner (the graph edge for those runs
	// through the root instead, see internal/walker).
	Owner *ident.DeclId

	// MangledName is populated only when the analyzer supplies one.
	// Mangled-name computation itself is out of scope; this merely
	// threads through whatever the front-end already computed.
	MangledName string

	// Exactly one of these is populated, selected by Kind. Unpopulated
	// payloads are the zero value.
	Struct       StructPayload
	Enum         EnumPayload
	EnumConstant EnumConstantPayload
	Function     FunctionPayload
	Field        FieldPayload
	Typedef      TypedefPayload
}

// New constructs the zero-initialized Decl the decl table reserves before
// recursing into id's children. Kind-specific payload fields are filled
// in later, by the same call that first reserved id; subsequent lookups
// of the same id must not call New again.
func New(id ident.DeclId, kind Kind, identity ident.Identity) *Decl {
	return &Decl{
		ID:        id,
		Kind:      kind,
		Name:      identity.Name,
		Qualified: identity.Qualified,
		Location:  identity.Location,
	}
}
