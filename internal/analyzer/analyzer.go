// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyzer declares the abstract interface cxmodel drives to
// extract a declaration graph from a C or C++ translation unit.
//
// The real front-end (a C/C++ syntactic/semantic analyzer such as libclang)
// is an external collaborator and out of scope for this repository: this
// package only names the operations the discovery walker needs from it,
// isolating the core from any particular front-end's ABI or binding
// library. See internal/analyzer/fake for an in-memory implementation used
// by tests, and internal/tsanalyzer for a tree-sitter-backed best-effort
// implementation over real source files.
package analyzer

// CursorKind is a closed classification of what a Cursor denotes, coarse
// enough that any real front-end's native enum can be mapped onto it at
// the binding boundary.
type CursorKind int

const (
	// CursorInvalid marks a null cursor or "no declaration found" result.
	// Per spec, these are skipped by the walker, never added to the graph.
	CursorInvalid CursorKind = iota
	CursorTranslationUnit
	CursorNamespace
	CursorLinkageSpec // extern "C" { ... } blocks
	CursorStructDecl
	CursorUnionDecl
	CursorClassDecl
	CursorEnumDecl
	CursorEnumConstantDecl
	CursorFunctionDecl
	CursorMethodDecl
	CursorFieldDecl
	CursorVarDecl
	CursorParmDecl
	CursorTypedefDecl
	CursorTemplateTypeParameter
	CursorNonTypeTemplateParameter
	CursorTemplateTemplateParameter
	CursorClassTemplate
	CursorClassTemplatePartialSpecialization
	CursorFunctionTemplate
	CursorBaseSpecifier
	CursorAttribute
	CursorReference  // a reference to a prior decl (e.g. a TypeRef)
	CursorStatement  // statement/expression nodes the walker doesn't materialize
	CursorUnexposed  // front-end reported something it can't classify further
	CursorUnknown
)

// String renders the CursorKind for diagnostics.
func (k CursorKind) String() string {
	switch k {
	case CursorInvalid:
		return "invalid"
	case CursorTranslationUnit:
		return "translation-unit"
	case CursorNamespace:
		return "namespace"
	case CursorLinkageSpec:
		return "linkage-spec"
	case CursorStructDecl:
		return "struct"
	case CursorUnionDecl:
		return "union"
	case CursorClassDecl:
		return "class"
	case CursorEnumDecl:
		return "enum"
	case CursorEnumConstantDecl:
		return "enum-constant"
	case CursorFunctionDecl:
		return "function"
	case CursorMethodDecl:
		return "method"
	case CursorFieldDecl:
		return "field"
	case CursorVarDecl:
		return "variable"
	case CursorParmDecl:
		return "parameter"
	case CursorTypedefDecl:
		return "typedef"
	case CursorTemplateTypeParameter, CursorNonTypeTemplateParameter, CursorTemplateTemplateParameter:
		return "template-parameter"
	case CursorClassTemplate:
		return "class-template"
	case CursorClassTemplatePartialSpecialization:
		return "class-template-partial-specialization"
	case CursorFunctionTemplate:
		return "function-template"
	case CursorBaseSpecifier:
		return "base-specifier"
	case CursorAttribute:
		return "attribute"
	case CursorReference:
		return "reference"
	case CursorStatement:
		return "statement"
	case CursorUnexposed:
		return "unexposed"
	default:
		return "unknown"
	}
}

// TypeKind is a closed classification of a front-end type, coarse enough
// to drive internal/typemodel's category classification directly.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeVoid
	TypeArithmetic // all integer/float/bool/char kinds
	TypeAux        // complex, vector, nullptr, member-pointer, block-pointer
	TypePointer
	TypeLValueReference
	TypeRValueReference
	TypeConstantArray
	TypeIncompleteArray
	TypeVariableArray
	TypeDependentSizedArray
	TypeRecord
	TypeEnum
	TypeTypedef
	TypeFunctionProto
	TypeFunctionNoProto
	TypeElaborated // sugar; unwraps via Named()
	TypeUnexposed  // sugar; unwraps via Canonical()
	TypeAttributed // sugar; unwraps via Modified()
	TypeUnknown
)

// TemplateArgumentKind classifies one template argument.
type TemplateArgumentKind int

const (
	TemplateArgUnknown TemplateArgumentKind = iota
	TemplateArgType
	TemplateArgIntegral
	TemplateArgTemplate
	TemplateArgNullPtr
)

// StorageClass mirrors a function/variable's storage class.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageExtern
	StorageStatic
	StorageAuto
	StoragePrivateExtern
)

// CallingConvention mirrors a function's calling convention.
type CallingConvention int

const (
	CallDefault CallingConvention = iota
	CallCDecl
	CallStdCall
	CallFastCall
	CallThisCall
	CallVectorCall
	CallUnknown
)

// Language selects the front-end's parsing mode.
type Language int

const (
	LanguageC Language = iota
	LanguageCXX
)

// Location is a source position, derived from a cursor's spelling location.
type Location struct {
	File   string
	Line   int
	Column int
}

// Options carries the configuration surface passed through to the
// front-end verbatim: include/framework paths, target triple, language,
// standard, ABI, arch and CPU.
type Options struct {
	IncludePaths   []string
	FrameworkPaths []string
	Target         string
	Language       Language
	Standard       string
	ABI            string
	Arch           string
	CPU            string
}

// Index opens a parsing session against one or more translation units.
type Index interface {
	// Parse analyzes the file at path under opts and returns its
	// translation unit. An error here is an "analyzer failure" per the
	// error-handling design: no partial model is ever produced.
	Parse(path string, opts Options) (TranslationUnit, error)

	// Dispose releases all resources owned by the index, including any
	// translation units it produced.
	Dispose()
}

// TranslationUnit is one parsed file.
type TranslationUnit struct {
	// Root is the translation-unit cursor; its Children are top-level
	// declarations.
	Root Cursor
}

// Cursor is a handle to a position in the front-end's AST.
type Cursor interface {
	// Kind classifies this cursor.
	Kind() CursorKind

	// IsNull reports whether this is the null cursor ("no declaration
	// found"). Per spec, null cursors are skipped, never added to the
	// graph.
	IsNull() bool

	// Spelling is the cursor's simple (unqualified) name.
	Spelling() string

	// MangledName is the front-end's computed link-time symbol name, if
	// it computes one for this cursor's kind; "" otherwise. Mangled-name
	// computation itself is out of scope here — this only threads
	// through whatever the front-end already did.
	MangledName() string

	// USR is the front-end's stable, globally-unique symbol identifier
	// for the declaration this cursor denotes. Two cursors denoting the
	// same declaration (forward decl vs. definition, same template
	// instantiation) MUST produce equal USRs.
	USR() string

	// SemanticParent is the cursor's enclosing namespace/record/function,
	// used to build a qualified name and to detect the
	// parent-is-translation-unit quirk (§4.7 rule 3).
	SemanticParent() Cursor

	// Location is this cursor's spelling location.
	Location() Location

	// Comment is any documentation comment attached to this cursor.
	Comment() string

	// CursorType is the type of the entity this cursor denotes (the
	// variable/field/function/typedef's type; zero value for cursors
	// with no associated type).
	CursorType() Type

	// Children enumerates this cursor's syntactic children, in source
	// order.
	Children() []Cursor

	// Definition returns the defining cursor for a forward declaration,
	// and true, if the front-end can find one. IsForwardDeclaration
	// reports whether this cursor itself lacks a definition body.
	Definition() (Cursor, bool)
	IsForwardDeclaration() bool

	// SpecializedTemplate returns the primary template cursor for a
	// template specialization (the C7 "specialization → primary" edge).
	SpecializedTemplate() (Cursor, bool)

	// EnumConstantValue returns an enum constant's signed 64-bit value.
	EnumConstantValue() (int64, bool)

	// StorageClass and CallingConvention and IsVariadic describe
	// function/method/variable cursors.
	StorageClass() StorageClass
	CallingConvention() CallingConvention
	IsVariadic() bool

	// FieldOffsetBits, IsBitField and BitFieldWidth describe field
	// cursors.
	FieldOffsetBits() (int64, bool)
	IsBitField() bool
	BitFieldWidth() (int, bool)

	// Equal reports whether two cursors denote the same AST position.
	// This is stronger than USR equality (e.g. two reference cursors to
	// the same decl are Equal-distinct but USR-equal); the discovery
	// walker only relies on USR equality for decl identity.
	Equal(other Cursor) bool
}

// Type is a handle to a front-end type.
type Type interface {
	Kind() TypeKind
	Spelling() string
	SizeOf() int64
	AlignOf() int64

	// Pointee is valid for TypePointer/TypeLValueReference/TypeRValueReference.
	Pointee() (Type, bool)

	// Element and ArraySize are valid for the array kinds. ArraySize
	// returns 0 for incomplete/variable/dependent arrays, per spec.
	Element() (Type, bool)
	ArraySize() (int64, bool)

	// Fields visits a record type's direct fields as cursors (used when a
	// record is only reachable through a Type, e.g. a template
	// instantiation, not through its own decl cursor).
	Fields() []Cursor

	// TemplateArgumentCount, TemplateArgumentType and
	// TemplateArgumentKind describe a class/function template
	// specialization's arguments.
	TemplateArgumentCount() int
	TemplateArgumentType(i int) (Type, bool)
	TemplateArgumentKind(i int) TemplateArgumentKind

	// Canonical, Named and Modified unwrap sugar: Unexposed→Canonical,
	// Elaborated→Named, Attributed→Modified.
	Canonical() Type
	Named() (Type, bool)
	Modified() (Type, bool)

	// Declaration links a unique (record/enum/typedef/function-proto)
	// type back to its defining cursor.
	Declaration() (Cursor, bool)

	// ReturnType and ParameterTypes are valid for TypeFunctionProto.
	ReturnType() (Type, bool)
	ParameterTypes() []Type

	// Equal reports whether two type handles denote the same analyzer
	// type (the "analyzer-equality" the type registry canonicalizes on).
	Equal(other Type) bool
}
