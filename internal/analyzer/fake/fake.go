// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fake is a hermetic, in-memory implementation of
// internal/analyzer's interfaces, built from literal Cursor/Type trees
// instead of invoking a real C/C++ front-end. It is intended for tests:
// construct a *Cursor tree directly (see NewCursor and NewType), and
// pass its root to internal/walker.Walk.
package fake

import "github.com/cxmodel-dev/cxmodel/internal/analyzer"

// Cursor is a literal, mutable node in a fake AST. Its exported fields
// double as both the construction API and the storage: build a tree by
// setting fields and appending to Kids, then pass it to code expecting
// an analyzer.Cursor.
type Cursor struct {
	KindVal      analyzer.CursorKind
	Null         bool
	Name         string
	Mangled      string
	USRVal       string
	Parent       *Cursor
	Loc          analyzer.Location
	CommentVal   string
	TypeVal      *Type
	Kids         []*Cursor
	DefCursor    *Cursor // non-nil only for forward declarations
	SpecTemplate *Cursor
	EnumValue    int64
	HasEnumValue bool
	Storage      analyzer.StorageClass
	Convention   analyzer.CallingConvention
	Variadic     bool
	OffsetBits   int64
	HasOffset    bool
	BitField     bool
	BitWidth     int
	HasBitWidth  bool
}

// NewCursor returns a non-null Cursor of the given kind and name. Callers
// set any additional fields and append children directly.
func NewCursor(kind analyzer.CursorKind, name string) *Cursor {
	return &Cursor{KindVal: kind, Name: name, USRVal: name}
}

// Adopt appends child to c.Kids and sets child.Parent to c, returning c
// for chaining.
func (c *Cursor) Adopt(child *Cursor) *Cursor {
	child.Parent = c
	c.Kids = append(c.Kids, child)
	return c
}

func (c *Cursor) Kind() analyzer.CursorKind { return c.KindVal }
func (c *Cursor) IsNull() bool              { return c == nil || c.Null }
func (c *Cursor) Spelling() string          { return c.Name }
func (c *Cursor) MangledName() string       { return c.Mangled }
func (c *Cursor) USR() string               { return c.USRVal }

func (c *Cursor) SemanticParent() analyzer.Cursor {
	if c.Parent == nil {
		return nil
	}
	return c.Parent
}

func (c *Cursor) Location() analyzer.Location { return c.Loc }
func (c *Cursor) Comment() string             { return c.CommentVal }

func (c *Cursor) CursorType() analyzer.Type {
	if c.TypeVal == nil {
		return nil
	}
	return c.TypeVal
}

func (c *Cursor) Children() []analyzer.Cursor {
	out := make([]analyzer.Cursor, len(c.Kids))
	for i, k := range c.Kids {
		out[i] = k
	}
	return out
}

func (c *Cursor) Definition() (analyzer.Cursor, bool) {
	if c.DefCursor == nil {
		return nil, false
	}
	return c.DefCursor, true
}

func (c *Cursor) IsForwardDeclaration() bool { return c.DefCursor != nil }

func (c *Cursor) SpecializedTemplate() (analyzer.Cursor, bool) {
	if c.SpecTemplate == nil {
		return nil, false
	}
	return c.SpecTemplate, true
}

func (c *Cursor) EnumConstantValue() (int64, bool) { return c.EnumValue, c.HasEnumValue }
func (c *Cursor) StorageClass() analyzer.StorageClass           { return c.Storage }
func (c *Cursor) CallingConvention() analyzer.CallingConvention { return c.Convention }
func (c *Cursor) IsVariadic() bool                              { return c.Variadic }
func (c *Cursor) FieldOffsetBits() (int64, bool)                { return c.OffsetBits, c.HasOffset }
func (c *Cursor) IsBitField() bool                              { return c.BitField }
func (c *Cursor) BitFieldWidth() (int, bool)                    { return c.BitWidth, c.HasBitWidth }

// Equal compares by pointer identity: two fake cursors denote the same
// AST position only if they are literally the same node.
func (c *Cursor) Equal(other analyzer.Cursor) bool {
	o, ok := other.(*Cursor)
	return ok && o == c
}

// Type is a literal, mutable fake analyzer.Type.
type Type struct {
	KindVal    analyzer.TypeKind
	Name       string
	Size       int64
	Align      int64
	PointeeVal *Type
	ElementVal *Type
	ArrayLen   int64
	HasArrLen  bool
	FieldsVal  []*Cursor
	NamedVal   *Type
	CanonVal   *Type
	ModifiedVal *Type
	DeclVal    *Cursor
	ReturnVal  *Type
	ParamsVal  []*Type
	Args       []TemplateArg
}

// TemplateArg is one template argument for NewType-constructed types.
type TemplateArg struct {
	Kind analyzer.TemplateArgumentKind
	Type *Type
}

// NewType returns a fake Type of the given kind and spelling.
func NewType(kind analyzer.TypeKind, name string) *Type {
	return &Type{KindVal: kind, Name: name}
}

func (t *Type) Kind() analyzer.TypeKind { return t.KindVal }
func (t *Type) Spelling() string        { return t.Name }
func (t *Type) SizeOf() int64           { return t.Size }
func (t *Type) AlignOf() int64          { return t.Align }

func (t *Type) Pointee() (analyzer.Type, bool) {
	if t.PointeeVal == nil {
		return nil, false
	}
	return t.PointeeVal, true
}

func (t *Type) Element() (analyzer.Type, bool) {
	if t.ElementVal == nil {
		return nil, false
	}
	return t.ElementVal, true
}

func (t *Type) ArraySize() (int64, bool) { return t.ArrayLen, t.HasArrLen }

func (t *Type) Fields() []analyzer.Cursor {
	out := make([]analyzer.Cursor, len(t.FieldsVal))
	for i, f := range t.FieldsVal {
		out[i] = f
	}
	return out
}

func (t *Type) TemplateArgumentCount() int { return len(t.Args) }

func (t *Type) TemplateArgumentType(i int) (analyzer.Type, bool) {
	if i < 0 || i >= len(t.Args) || t.Args[i].Type == nil {
		return nil, false
	}
	return t.Args[i].Type, true
}

func (t *Type) TemplateArgumentKind(i int) analyzer.TemplateArgumentKind {
	if i < 0 || i >= len(t.Args) {
		return analyzer.TemplateArgUnknown
	}
	return t.Args[i].Kind
}

func (t *Type) Canonical() analyzer.Type {
	if t.CanonVal == nil {
		return t
	}
	return t.CanonVal
}

func (t *Type) Named() (analyzer.Type, bool) {
	if t.NamedVal == nil {
		return nil, false
	}
	return t.NamedVal, true
}

func (t *Type) Modified() (analyzer.Type, bool) {
	if t.ModifiedVal == nil {
		return nil, false
	}
	return t.ModifiedVal, true
}

func (t *Type) Declaration() (analyzer.Cursor, bool) {
	if t.DeclVal == nil {
		return nil, false
	}
	return t.DeclVal, true
}

func (t *Type) ReturnType() (analyzer.Type, bool) {
	if t.ReturnVal == nil {
		return nil, false
	}
	return t.ReturnVal, true
}

func (t *Type) ParameterTypes() []analyzer.Type {
	out := make([]analyzer.Type, len(t.ParamsVal))
	for i, p := range t.ParamsVal {
		out[i] = p
	}
	return out
}

// Equal compares by pointer identity, matching Cursor.Equal.
func (t *Type) Equal(other analyzer.Type) bool {
	o, ok := other.(*Type)
	return ok && o == t
}
