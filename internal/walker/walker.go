// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package walker implements the discovery pass (C7): a depth-first
// visitor over a translation unit's cursor tree that drives identity
// computation (C1), type classification (C3), decl materialization
// (C4), the type registry (C5) and decl table (C6), recording the
// dependency graph's nodes, edges and parent links (C8) as it goes
// (spec.md §4.7).
package walker

import (
	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/decltable"
	"github.com/cxmodel-dev/cxmodel/internal/declmodel"
	"github.com/cxmodel-dev/cxmodel/internal/depgraph"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/ident"
	"github.com/cxmodel-dev/cxmodel/internal/typemodel"
	"github.com/cxmodel-dev/cxmodel/internal/typeregistry"
)

// Result bundles the stores the discovery pass fills in.
type Result struct {
	Decls *decltable.Table
	Types *typeregistry.Registry
	Graph *depgraph.Graph
}

// Edge reasons, recorded for internal/diagnostics only; the shaking
// engine does not consult them.
const (
	reasonOwnedChild     = "owned-child"
	reasonTypeDependency = "type-dependency"
	reasonTemplateArg    = "template-arg"
)

type walker struct {
	decls      *decltable.Table
	types      *typeregistry.Registry
	graph      *depgraph.Graph
	classifier *filterpat.Classifier
	source     string
}

// Walk runs the discovery pass over tu's root cursor and returns the
// populated stores. source is the translation unit's path, used for the
// classifier's source-pattern matching.
func Walk(tu analyzer.TranslationUnit, classifier *filterpat.Classifier, source string) Result {
	w := &walker{
		decls:      decltable.New(),
		types:      typeregistry.New(),
		graph:      depgraph.New(),
		classifier: classifier,
		source:     source,
	}
	w.visit(tu.Root, ident.RootID)
	return Result{Decls: w.decls, Types: w.types, Graph: w.graph}
}

// visit implements spec.md §4.7 rules 1-4. It returns the DeclId
// materialized for c (if any) and whether one was materialized, so
// callers building ordered payloads (struct fields, enum constants,
// function parameters) can collect children's ids in cursor order.
func (w *walker) visit(c analyzer.Cursor, parent ident.DeclId) (ident.DeclId, bool) {
	if c == nil || c.IsNull() {
		return "", false
	}

	kind := c.Kind()

	// Rule 2: forward declarations redirect to their definition. A Decl
	// is only ever created for the definition.
	if c.IsForwardDeclaration() {
		if def, ok := c.Definition(); ok && !def.Equal(c) {
			return w.visit(def, parent)
		}
	}

	declKind := declmodel.KindFromCursor(kind)

	// Rule 3: parameter/field/template-parameter cursors whose semantic
	// parent is the translation unit are a front-end quirk; they do not
	// denote a real member and must not be materialized.
	if isQuirkKind(declKind) && isTUChild(c) {
		w.recurseChildren(c, parent)
		return "", false
	}

	// Rule 1: invalid/attribute/reference/statement/linkage-spec cursors
	// (and the translation unit/namespace themselves, which have no
	// DeclKind of their own) are transparent: skip, but still recurse so
	// declarations nested inside e.g. `extern "C" { ... }` are found.
	if isTransparentKind(kind) {
		w.recurseChildren(c, parent)
		return "", false
	}

	// A declaration cursor of a kind this repo doesn't model (declKind ==
	// Unknown) is still graph-registered below with an empty payload, so
	// filter patterns can still reach it by name; it is not transparent
	// the way a namespace or reference cursor is.

	identity := ident.Of(c)
	if !identity.IsDecl {
		return "", false
	}
	id := identity.ID

	decl, created := w.decls.Reserve(id, declKind, identity)
	status := w.classifier.Classify(identity.Qualified, w.source)
	w.graph.AddNode(id, status)
	w.graph.AdoptWithReason(parent, id, reasonOwnedChild)

	if !created {
		return id, true
	}

	decl.Comment = c.Comment()
	decl.MangledName = c.MangledName()
	if parent != ident.RootID && (declKind == declmodel.Method || declKind == declmodel.Field) {
		owner := parent
		decl.Owner = &owner
	}

	// Record/union/class decls are their own type; materializing their
	// CursorType here would both self-reference and re-walk their own
	// fields a second time (fillPayload already does that below). Every
	// other kind's CursorType is the thing it actually needs.
	if !declmodel.IsRecordKind(declKind) {
		if t := c.CursorType(); t != nil {
			decl.Type = w.materializeType(t, id)
		}
	}

	w.fillPayload(c, decl, declKind, id)
	w.recurseChildren(c, id)

	return id, true
}

func (w *walker) recurseChildren(c analyzer.Cursor, parent ident.DeclId) {
	for _, child := range c.Children() {
		w.visit(child, parent)
	}
}

// fillPayload dispatches to the kind-specific payload extraction.
// Children (fields/constants/parameters) are filled in by a dedicated
// pass over c.Children() here, rather than by recurseChildren's general
// visit, so that ordering and kind-filtering is explicit and the
// resulting ids land in the right payload slice.
func (w *walker) fillPayload(c analyzer.Cursor, decl *declmodel.Decl, declKind declmodel.Kind, id ident.DeclId) {
	switch declKind {
	case declmodel.Struct, declmodel.Union, declmodel.Class:
		for _, child := range c.Children() {
			if declmodel.KindFromCursor(child.Kind()) != declmodel.Field {
				continue
			}
			if childID, ok := w.visit(child, id); ok {
				decl.Struct.Fields = append(decl.Struct.Fields, childID)
			}
		}
	case declmodel.Enum:
		decl.Enum.Underlying = decl.Type
		for _, child := range c.Children() {
			if declmodel.KindFromCursor(child.Kind()) != declmodel.EnumConstant {
				continue
			}
			if childID, ok := w.visit(child, id); ok {
				decl.Enum.Constants = append(decl.Enum.Constants, childID)
			}
		}
	case declmodel.EnumConstant:
		if v, ok := c.EnumConstantValue(); ok {
			decl.EnumConstant.Value = v
		}
	case declmodel.Function, declmodel.Method:
		decl.Function.Variadic = c.IsVariadic()
		decl.Function.Storage = c.StorageClass()
		decl.Function.Convention = c.CallingConvention()
		if decl.Type != nil && decl.Type.Category == typemodel.Unique {
			decl.Function.Return = decl.Type.Return
		}
		for _, child := range c.Children() {
			if declmodel.KindFromCursor(child.Kind()) != declmodel.Parameter {
				continue
			}
			if childID, ok := w.visit(child, id); ok {
				decl.Function.Parameters = append(decl.Function.Parameters, childID)
			}
		}
	case declmodel.Field:
		if off, ok := c.FieldOffsetBits(); ok {
			decl.Field.OffsetBits = off
			decl.Field.HasOffset = true
		}
		decl.Field.IsBitField = c.IsBitField()
		if width, ok := c.BitFieldWidth(); ok {
			decl.Field.BitFieldWidth = width
			decl.Field.HasBitWidth = true
		}
	case declmodel.Typedef:
		decl.Typedef.Aliased = decl.Type
	}
}

// materializeType resolves t, canonicalizes it through the type
// registry, and for Unique categories (record/enum/typedef/
// function-proto) recursively visits the defining cursor so the
// corresponding Decl exists — with the root as parent link, per spec.md
// §4.7 rule 5: this node becomes root-reachable, not a child of the
// referring field/parameter/return/typedef. owner is that referring
// decl's id; an explicit owner->declaration edge is recorded so shaking
// can reach the dependency even though it is not cursor-tree-owned by
// owner.
func (w *walker) materializeType(t analyzer.Type, owner ident.DeclId) *typemodel.Type {
	resolved := typemodel.Resolve(t)
	typ, isNew := w.types.GetOrReserve(resolved)
	if isNew {
		typ.Kind = resolved.Kind()
		typ.RawKind = int(resolved.Kind())
		typ.Category = typemodel.Classify(t)
		typ.Name = resolved.Spelling()
		typ.Size = resolved.SizeOf()
		typ.Align = resolved.AlignOf()

		switch typ.Category {
		case typemodel.Pointer, typemodel.Reference:
			if pointee, ok := resolved.Pointee(); ok {
				typ.Pointee = w.materializeType(pointee, owner)
			}
		case typemodel.Array:
			typ.ArrayLen = typemodel.ArraySize(resolved)
			if elem, ok := resolved.Element(); ok {
				typ.Element = w.materializeType(elem, owner)
			}
		case typemodel.Unique:
			if declCursor, hasDecl := resolved.Declaration(); hasDecl {
				if declID, ok := w.visit(declCursor, ident.RootID); ok {
					typ.Declaration = declID
					typ.HasDeclaration = true
				}
			} else {
				// No defining cursor reachable (e.g. a template
				// instantiation's synthesized record type): the fields
				// are only reachable through the Type itself.
				for _, fieldCursor := range resolved.Fields() {
					if childID, ok := w.visit(fieldCursor, owner); ok {
						typ.Fields = append(typ.Fields, childID)
					}
				}
			}
			if resolved.Kind() == analyzer.TypeFunctionProto {
				if ret, ok := resolved.ReturnType(); ok {
					typ.Return = w.materializeType(ret, owner)
				}
				for _, p := range resolved.ParameterTypes() {
					typ.Parameters = append(typ.Parameters, w.materializeType(p, owner))
				}
			}
		}
	}

	// The owner->declaration edge is per-caller, not per-type: every
	// decl whose field/parameter/return/typedef resolves to this type
	// needs its own edge into the dependency, even when the Type object
	// itself was canonicalized on an earlier call from a different
	// owner (otherwise only the first referencer could ever pull the
	// dependency into inclusion).
	if typ.Category == typemodel.Unique && typ.HasDeclaration {
		w.graph.AdoptWithReason(owner, typ.Declaration, reasonTypeDependency)
	}
	return typ
}

func isTransparentKind(k analyzer.CursorKind) bool {
	switch k {
	case analyzer.CursorInvalid, analyzer.CursorAttribute, analyzer.CursorReference,
		analyzer.CursorStatement, analyzer.CursorUnexposed, analyzer.CursorLinkageSpec,
		analyzer.CursorTranslationUnit, analyzer.CursorNamespace, analyzer.CursorBaseSpecifier:
		return true
	default:
		return false
	}
}

func isQuirkKind(k declmodel.Kind) bool {
	return k == declmodel.Parameter || k == declmodel.Field || k == declmodel.TemplateParameter
}

func isTUChild(c analyzer.Cursor) bool {
	parent := c.SemanticParent()
	return parent != nil && !parent.IsNull() && parent.Kind() == analyzer.CursorTranslationUnit
}
