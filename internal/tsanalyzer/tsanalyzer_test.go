// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsanalyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

func parseString(t *testing.T, src string, lang analyzer.Language) analyzer.TranslationUnit {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.c")
	if lang == analyzer.LanguageCXX {
		path = filepath.Join(dir, "in.cc")
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx := NewIndex()
	defer idx.Dispose()
	tu, err := idx.Parse(path, analyzer.Options{Language: lang})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tu
}

func findByKind(t *testing.T, c analyzer.Cursor, kind analyzer.CursorKind, name string) analyzer.Cursor {
	t.Helper()
	var found analyzer.Cursor
	var walk func(c analyzer.Cursor)
	walk = func(c analyzer.Cursor) {
		if found != nil || c == nil || c.IsNull() {
			return
		}
		if c.Kind() == kind && (name == "" || c.Spelling() == name) {
			found = c
			return
		}
		for _, child := range c.Children() {
			walk(child)
			if found != nil {
				return
			}
		}
	}
	walk(c)
	if found == nil {
		t.Fatalf("no cursor of kind %v named %q found", kind, name)
	}
	return found
}

func TestParseStructWithPointerField(t *testing.T) {
	tu := parseString(t, `
struct Node {
	int value;
	struct Node *next;
};
`, analyzer.LanguageC)

	decl := findByKind(t, tu.Root, analyzer.CursorStructDecl, "Node")
	if decl.Spelling() != "Node" {
		t.Errorf("Spelling() = %q, want Node", decl.Spelling())
	}

	var fields []analyzer.Cursor
	for _, child := range decl.Children() {
		if child.Kind() == analyzer.CursorFieldDecl {
			fields = append(fields, child)
		}
	}
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}

	next := fields[1]
	if next.Spelling() != "next" {
		t.Fatalf("Spelling() = %q, want next", next.Spelling())
	}
	typ := next.CursorType()
	if typ == nil || typ.Kind() != analyzer.TypePointer {
		t.Fatalf("CursorType() = %v, want a pointer type", typ)
	}
	pointee, ok := typ.Pointee()
	if !ok || pointee == nil || pointee.Kind() != analyzer.TypeRecord {
		t.Fatalf("Pointee() = %v, want a record type", pointee)
	}
	if pointeeDecl, ok := pointee.Declaration(); !ok || pointeeDecl == nil || !pointeeDecl.Equal(decl) {
		t.Errorf("Pointee().Declaration() did not resolve back to struct Node")
	}
}

func TestParseForwardDeclarationResolvesToDefinition(t *testing.T) {
	tu := parseString(t, `
struct Widget;

struct Widget *make_widget(void);

struct Widget {
	int id;
};
`, analyzer.LanguageC)

	ref := findByKind(t, tu.Root, analyzer.CursorReference, "Widget")
	if !ref.IsForwardDeclaration() {
		t.Error("IsForwardDeclaration() = false, want true for a bodyless struct Widget;")
	}
	def, ok := ref.Definition()
	if !ok || def == nil {
		t.Fatalf("Definition() = (_, %v), want a resolved definition", ok)
	}
	if def.Kind() != analyzer.CursorStructDecl {
		t.Errorf("Definition().Kind() = %v, want CursorStructDecl", def.Kind())
	}
}

func TestEnumConstantsAndUnderlyingType(t *testing.T) {
	tu := parseString(t, `
enum Color {
	RED = 1,
	GREEN,
	BLUE = 3,
};
`, analyzer.LanguageC)

	decl := findByKind(t, tu.Root, analyzer.CursorEnumDecl, "Color")
	typ := decl.CursorType()
	if typ == nil || typ.Kind() != analyzer.TypeArithmetic {
		t.Fatalf("CursorType() = %v, want the implicit int underlying type", typ)
	}

	red := findByKind(t, decl, analyzer.CursorEnumConstantDecl, "RED")
	if v, ok := red.EnumConstantValue(); !ok || v != 1 {
		t.Errorf("RED value = (%d, %v), want (1, true)", v, ok)
	}

	blue := findByKind(t, decl, analyzer.CursorEnumConstantDecl, "BLUE")
	if v, ok := blue.EnumConstantValue(); !ok || v != 3 {
		t.Errorf("BLUE value = (%d, %v), want (3, true)", v, ok)
	}

	// GREEN has no explicit initializer; this backend doesn't compute
	// the implicit successor value.
	green := findByKind(t, decl, analyzer.CursorEnumConstantDecl, "GREEN")
	if _, ok := green.EnumConstantValue(); ok {
		t.Error("GREEN EnumConstantValue() ok = true, want false (no explicit literal)")
	}
}

func TestFunctionDeclaratorVariadicAndParameters(t *testing.T) {
	tu := parseString(t, `
int sum(int a, int b, ...);
`, analyzer.LanguageC)

	decl := findByKind(t, tu.Root, analyzer.CursorFunctionDecl, "sum")
	if !decl.IsVariadic() {
		t.Error("IsVariadic() = false, want true")
	}
	typ := decl.CursorType()
	if typ == nil || typ.Kind() != analyzer.TypeFunctionProto {
		t.Fatalf("CursorType() = %v, want a function prototype", typ)
	}
	if got := len(typ.ParameterTypes()); got != 2 {
		t.Errorf("len(ParameterTypes()) = %d, want 2", got)
	}
	if ret, ok := typ.ReturnType(); !ok || ret == nil || ret.Kind() != analyzer.TypeArithmetic {
		t.Errorf("ReturnType() = %v, want arithmetic int", ret)
	}
}

func TestMethodInsideClassBodyIsDistinguishedFromFreeFunction(t *testing.T) {
	tu := parseString(t, `
class Shape {
public:
	int area();
};
`, analyzer.LanguageCXX)

	cls := findByKind(t, tu.Root, analyzer.CursorClassDecl, "Shape")
	area := findByKind(t, cls, analyzer.CursorMethodDecl, "area")
	if area.Kind() != analyzer.CursorMethodDecl {
		t.Errorf("Kind() = %v, want CursorMethodDecl", area.Kind())
	}
}

func TestBitFieldWidth(t *testing.T) {
	tu := parseString(t, `
struct Flags {
	unsigned int active : 1;
	unsigned int level : 3;
};
`, analyzer.LanguageC)

	decl := findByKind(t, tu.Root, analyzer.CursorStructDecl, "Flags")
	active := findByKind(t, decl, analyzer.CursorFieldDecl, "active")
	if !active.IsBitField() {
		t.Fatal("IsBitField() = false, want true")
	}
	if w, ok := active.BitFieldWidth(); !ok || w != 1 {
		t.Errorf("BitFieldWidth() = (%d, %v), want (1, true)", w, ok)
	}
}
