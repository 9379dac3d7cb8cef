// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typemodel

import (
	"testing"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

// stubType is a minimal analyzer.Type for exercising Classify/Resolve
// without a real front-end.
type stubType struct {
	kind     analyzer.TypeKind
	named    analyzer.Type
	modified analyzer.Type
	canon    analyzer.Type
	arrSize  int64
	hasArr   bool
}

func (s stubType) Kind() analyzer.TypeKind { return s.kind }
func (s stubType) Spelling() string        { return "" }
func (s stubType) SizeOf() int64           { return 0 }
func (s stubType) AlignOf() int64          { return 0 }
func (s stubType) Pointee() (analyzer.Type, bool)        { return nil, false }
func (s stubType) Element() (analyzer.Type, bool)        { return nil, false }
func (s stubType) ArraySize() (int64, bool)              { return s.arrSize, s.hasArr }
func (s stubType) Fields() []analyzer.Cursor              { return nil }
func (s stubType) TemplateArgumentCount() int             { return 0 }
func (s stubType) TemplateArgumentType(int) (analyzer.Type, bool) { return nil, false }
func (s stubType) TemplateArgumentKind(int) analyzer.TemplateArgumentKind {
	return analyzer.TemplateArgUnknown
}
func (s stubType) Canonical() analyzer.Type { return s.canon }
func (s stubType) Named() (analyzer.Type, bool) {
	if s.named == nil {
		return nil, false
	}
	return s.named, true
}
func (s stubType) Modified() (analyzer.Type, bool) {
	if s.modified == nil {
		return nil, false
	}
	return s.modified, true
}
func (s stubType) Declaration() (analyzer.Cursor, bool)   { return nil, false }
func (s stubType) ReturnType() (analyzer.Type, bool)      { return nil, false }
func (s stubType) ParameterTypes() []analyzer.Type        { return nil }
func (s stubType) Equal(other analyzer.Type) bool         { return s.kind == other.Kind() }

func TestClassifyDirectKinds(t *testing.T) {
	tests := []struct {
		kind analyzer.TypeKind
		want Category
	}{
		{analyzer.TypeArithmetic, Arithmetic},
		{analyzer.TypeAux, Aux},
		{analyzer.TypePointer, Pointer},
		{analyzer.TypeLValueReference, Reference},
		{analyzer.TypeRValueReference, Reference},
		{analyzer.TypeConstantArray, Array},
		{analyzer.TypeIncompleteArray, Array},
		{analyzer.TypeRecord, Unique},
		{analyzer.TypeEnum, Unique},
		{analyzer.TypeTypedef, Unique},
		{analyzer.TypeFunctionProto, Unique},
		{analyzer.TypeVoid, Unknown},
	}
	for _, tc := range tests {
		if got := Classify(stubType{kind: tc.kind}); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestClassifyUnwrapsElaboratedToNamed(t *testing.T) {
	named := stubType{kind: analyzer.TypeRecord}
	elaborated := stubType{kind: analyzer.TypeElaborated, named: named}
	if got := Classify(elaborated); got != Unique {
		t.Errorf("Classify(elaborated->record) = %v, want Unique", got)
	}
}

func TestClassifyUnwrapsAttributedToModified(t *testing.T) {
	modified := stubType{kind: analyzer.TypePointer}
	attributed := stubType{kind: analyzer.TypeAttributed, modified: modified}
	if got := Classify(attributed); got != Pointer {
		t.Errorf("Classify(attributed->pointer) = %v, want Pointer", got)
	}
}

func TestClassifyUnwrapsUnexposedToCanonical(t *testing.T) {
	canon := stubType{kind: analyzer.TypeArithmetic}
	unexposed := stubType{kind: analyzer.TypeUnexposed, canon: canon}
	if got := Classify(unexposed); got != Arithmetic {
		t.Errorf("Classify(unexposed->arithmetic) = %v, want Arithmetic", got)
	}
}

func TestClassifyUnexposedFixedPointStopsAtUnknown(t *testing.T) {
	// canon points back to an unexposed type (no progress); must not
	// loop forever and must report Unknown.
	var loop stubType
	loop = stubType{kind: analyzer.TypeUnexposed}
	loop.canon = stubType{kind: analyzer.TypeUnexposed}
	if got := Classify(loop); got != Unknown {
		t.Errorf("Classify(unexposed fixed point) = %v, want Unknown", got)
	}
}

func TestArraySizeZeroForNonConstant(t *testing.T) {
	if got := ArraySize(stubType{kind: analyzer.TypeIncompleteArray}); got != 0 {
		t.Errorf("ArraySize(incomplete) = %d, want 0", got)
	}
	if got := ArraySize(stubType{kind: analyzer.TypeConstantArray, arrSize: 4, hasArr: true}); got != 4 {
		t.Errorf("ArraySize(constant 4) = %d, want 4", got)
	}
}

func TestHasDeclaration(t *testing.T) {
	if !HasDeclaration(Unique) {
		t.Error("HasDeclaration(Unique) = false, want true")
	}
	if HasDeclaration(Arithmetic) {
		t.Error("HasDeclaration(Arithmetic) = true, want false")
	}
}
