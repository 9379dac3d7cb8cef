// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsanalyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

// Cursor adapts one tree-sitter node to analyzer.Cursor. Everything this
// backend doesn't specifically recognize maps to CursorUnexposed, which
// the discovery walker treats as transparent: skipped but still
// recursed into, so declarations nested inside syntax this package
// doesn't model by name (preprocessor conditionals, statements,
// expressions) are still found.
type Cursor struct {
	file   *file
	node   *sitter.Node
	parent *Cursor // syntactic parent, for SemanticParent's namespace/record walk
}

func wrap(f *file, n *sitter.Node, parent *Cursor) *Cursor {
	if n == nil {
		return nil
	}
	return &Cursor{file: f, node: n, parent: parent}
}

func (c *Cursor) IsNull() bool { return c == nil || c.node == nil }

func (c *Cursor) Kind() analyzer.CursorKind {
	if c.IsNull() {
		return analyzer.CursorInvalid
	}
	switch c.node.Type() {
	case "translation_unit":
		return analyzer.CursorTranslationUnit
	case "linkage_specification":
		return analyzer.CursorLinkageSpec
	case "namespace_definition":
		return analyzer.CursorNamespace
	case "struct_specifier":
		if c.node.ChildByFieldName("body") != nil {
			return analyzer.CursorStructDecl
		}
		return analyzer.CursorReference
	case "union_specifier":
		if c.node.ChildByFieldName("body") != nil {
			return analyzer.CursorUnionDecl
		}
		return analyzer.CursorReference
	case "class_specifier":
		if c.node.ChildByFieldName("body") != nil {
			return analyzer.CursorClassDecl
		}
		return analyzer.CursorReference
	case "enum_specifier":
		if c.node.ChildByFieldName("body") != nil {
			return analyzer.CursorEnumDecl
		}
		return analyzer.CursorReference
	case "enumerator":
		return analyzer.CursorEnumConstantDecl
	case "field_declaration":
		if c.isFunctionDeclarator(c.node.ChildByFieldName("declarator")) {
			return analyzer.CursorMethodDecl
		}
		return analyzer.CursorFieldDecl
	case "function_definition":
		if c.inRecordBody() {
			return analyzer.CursorMethodDecl
		}
		return analyzer.CursorFunctionDecl
	case "declaration":
		if c.isFunctionDeclarator(c.node.ChildByFieldName("declarator")) {
			if c.inRecordBody() {
				return analyzer.CursorMethodDecl
			}
			return analyzer.CursorFunctionDecl
		}
		return analyzer.CursorVarDecl
	case "parameter_declaration":
		return analyzer.CursorParmDecl
	case "type_definition":
		return analyzer.CursorTypedefDecl
	case "base_class_clause":
		return analyzer.CursorBaseSpecifier
	case "comment":
		return analyzer.CursorAttribute
	case "ERROR":
		return analyzer.CursorInvalid
	default:
		return analyzer.CursorUnexposed
	}
}

// isFunctionDeclarator reports whether decl, after unwrapping pointer
// wrapping, is a function_declarator: `int f(int)` and `int (*f)(int)`
// both count, the latter as a function pointer rather than a plain
// variable.
func (c *Cursor) isFunctionDeclarator(decl *sitter.Node) bool {
	for decl != nil {
		switch decl.Type() {
		case "function_declarator":
			return true
		case "pointer_declarator", "parenthesized_declarator", "reference_declarator":
			decl = decl.ChildByFieldName("declarator")
		default:
			return false
		}
	}
	return false
}

// inRecordBody reports whether c.node's immediate syntactic parent is a
// struct/union/class body (field_declaration_list), i.e. this is a
// member rather than a free function.
func (c *Cursor) inRecordBody() bool {
	if c.parent == nil || c.parent.node == nil {
		return false
	}
	return c.parent.node.Type() == "field_declaration_list"
}

func (c *Cursor) Spelling() string {
	if c.IsNull() {
		return ""
	}
	switch c.node.Type() {
	case "struct_specifier", "union_specifier", "class_specifier", "enum_specifier":
		if n := c.node.ChildByFieldName("name"); n != nil {
			return c.text(n)
		}
		return ""
	case "enumerator":
		if n := c.node.ChildByFieldName("name"); n != nil {
			return c.text(n)
		}
	case "field_declaration", "declaration", "parameter_declaration":
		return c.declaredName(c.node.ChildByFieldName("declarator"))
	case "function_definition":
		return c.declaredName(c.node.ChildByFieldName("declarator"))
	case "type_definition":
		return c.declaredName(c.node.ChildByFieldName("declarator"))
	}
	return c.text(c.node)
}

// declaredName walks a (possibly pointer/array/function-wrapped)
// declarator down to the identifier it ultimately names.
func (c *Cursor) declaredName(decl *sitter.Node) string {
	for decl != nil {
		switch decl.Type() {
		case "identifier", "field_identifier", "type_identifier":
			return c.text(decl)
		case "pointer_declarator", "array_declarator", "parenthesized_declarator",
			"reference_declarator", "function_declarator":
			next := decl.ChildByFieldName("declarator")
			if next == nil {
				return ""
			}
			decl = next
		default:
			return ""
		}
	}
	return ""
}

func (c *Cursor) MangledName() string { return "" } // not computed by this backend

func (c *Cursor) USR() string {
	if c.IsNull() {
		return ""
	}
	// No real semantic USR is available without a compiler front-end;
	// the byte offset of the declaring node gives a stable, unique id
	// within one parse, which is all decl-table identity requires here.
	return fmt.Sprintf("ts:%s:%d", c.file.path, c.node.StartByte())
}

func (c *Cursor) SemanticParent() analyzer.Cursor {
	if c.IsNull() || c.parent == nil {
		return nil
	}
	// Skip over pure syntax containers (field_declaration_list, the
	// translation unit's own statement list) to the nearest cursor that
	// is itself a meaningful declaration or the translation unit.
	p := c.parent
	for p != nil && p.Kind() == analyzer.CursorUnexposed {
		p = p.parent
	}
	if p == nil {
		return nil
	}
	return p
}

func (c *Cursor) Location() analyzer.Location {
	if c.IsNull() {
		return analyzer.Location{}
	}
	pt := c.node.StartPoint()
	return analyzer.Location{File: c.file.path, Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}

func (c *Cursor) Comment() string {
	// Doc-comment association would need scanning preceding sibling
	// comment nodes; not attempted by this syntax-only backend.
	return ""
}

func (c *Cursor) CursorType() analyzer.Type {
	if c.IsNull() {
		return nil
	}
	switch c.node.Type() {
	case "field_declaration", "declaration", "parameter_declaration", "function_definition", "type_definition":
		return c.declarationType()
	case "enumerator":
		return &Type{file: c.file, kind: analyzer.TypeArithmetic, name: "int"}
	case "enum_specifier":
		// An explicit "enum Foo : T" underlying-type clause, else the
		// implicit int every enum without one has.
		if base := c.node.ChildByFieldName("underlying_type"); base != nil {
			return buildBaseType(c.file, base)
		}
		return &Type{file: c.file, kind: analyzer.TypeArithmetic, name: "int"}
	}
	return nil
}

func (c *Cursor) Children() []analyzer.Cursor {
	if c.IsNull() {
		return nil
	}
	n := c.node.NamedChildCount()
	out := make([]analyzer.Cursor, 0, n)
	for i := uint32(0); i < n; i++ {
		child := c.node.NamedChild(int(i))
		// A record or enum body is a pure container: its members are
		// listed as this cursor's own children, keeping the body as
		// their syntactic parent so inRecordBody still sees it.
		if t := child.Type(); t == "field_declaration_list" || t == "enumerator_list" {
			body := wrap(c.file, child, c)
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				out = append(out, wrap(c.file, child.NamedChild(int(j)), body))
			}
			continue
		}
		out = append(out, wrap(c.file, child, c))
	}
	return out
}

func (c *Cursor) Definition() (analyzer.Cursor, bool) {
	if c.IsNull() {
		return nil, false
	}
	def := c.file.defIndex().lookup(c.Kind(), c.Spelling())
	if def == nil || def == c.node {
		return nil, false
	}
	return wrap(c.file, def, nil), true
}

func (c *Cursor) IsForwardDeclaration() bool {
	if c.IsNull() {
		return false
	}
	switch c.node.Type() {
	case "struct_specifier", "union_specifier", "class_specifier", "enum_specifier":
		return c.node.ChildByFieldName("body") == nil && c.Spelling() != ""
	}
	return false
}

func (c *Cursor) SpecializedTemplate() (analyzer.Cursor, bool) {
	// Template instantiation tracking needs semantic analysis this
	// syntax-only backend doesn't have.
	return nil, false
}

func (c *Cursor) EnumConstantValue() (int64, bool) {
	// Without constant evaluation, only explicit integer-literal
	// initializers are understood; implicit successor values (the
	// common case) are not computed by this backend.
	if c.IsNull() || c.node.Type() != "enumerator" {
		return 0, false
	}
	v := c.node.ChildByFieldName("value")
	if v == nil || v.Type() != "number_literal" {
		return 0, false
	}
	var n int64
	if _, err := fmt.Sscanf(c.text(v), "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

func (c *Cursor) StorageClass() analyzer.StorageClass {
	if c.IsNull() {
		return analyzer.StorageNone
	}
	for i := uint32(0); i < c.node.ChildCount(); i++ {
		switch c.node.Child(int(i)).Type() {
		case "extern":
			return analyzer.StorageExtern
		case "static":
			return analyzer.StorageStatic
		}
	}
	return analyzer.StorageNone
}

func (c *Cursor) CallingConvention() analyzer.CallingConvention { return analyzer.CallDefault }

func (c *Cursor) IsVariadic() bool {
	if c.IsNull() {
		return false
	}
	params := functionParameterList(c.node)
	if params == nil {
		return false
	}
	for i := uint32(0); i < params.NamedChildCount(); i++ {
		if params.NamedChild(int(i)).Type() == "variadic_parameter" {
			return true
		}
	}
	return false
}

func (c *Cursor) FieldOffsetBits() (int64, bool) {
	// Layout requires target ABI knowledge this backend doesn't model.
	return 0, false
}

func (c *Cursor) IsBitField() bool {
	if c.IsNull() || c.node.Type() != "field_declaration" {
		return false
	}
	return c.node.ChildByFieldName("bitfield_clause") != nil
}

func (c *Cursor) BitFieldWidth() (int, bool) {
	if !c.IsBitField() {
		return 0, false
	}
	clause := c.node.ChildByFieldName("bitfield_clause")
	for i := uint32(0); i < clause.NamedChildCount(); i++ {
		n := clause.NamedChild(int(i))
		if n.Type() == "number_literal" {
			var width int
			if _, err := fmt.Sscanf(c.text(n), "%d", &width); err == nil {
				return width, true
			}
		}
	}
	return 0, false
}

func (c *Cursor) Equal(other analyzer.Cursor) bool {
	o, ok := other.(*Cursor)
	return ok && o != nil && c != nil && o.node == c.node
}

func (c *Cursor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.file.src)
}

// functionParameterList finds the parameter_list under a function-shaped
// declarator, unwrapping pointer/parenthesized wrapping the same way
// isFunctionDeclarator does.
func functionParameterList(n *sitter.Node) *sitter.Node {
	decl := n.ChildByFieldName("declarator")
	for decl != nil {
		switch decl.Type() {
		case "function_declarator":
			return decl.ChildByFieldName("parameters")
		case "pointer_declarator", "parenthesized_declarator", "reference_declarator":
			decl = decl.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}
