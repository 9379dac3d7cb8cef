// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ident computes stable declaration identity, qualified names and
// source locations from analyzer cursors.
package ident

import (
	"strings"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
)

// DeclId is an opaque, globally unique identifier for a declaration within
// one translation context, derived from the front-end's stable symbol id
// (USR) for a cursor. The empty DeclId is reserved for the synthetic root
// node.
type DeclId string

// RootID is the synthetic root node's DeclId.
const RootID DeclId = ""

// IsRoot reports whether id denotes the synthetic root.
func (id DeclId) IsRoot() bool { return id == RootID }

// Location is an immutable source position.
type Location struct {
	File   string
	Line   int
	Column int
}

// Identity is the triple C1 computes for a cursor: its DeclId, qualified
// name and simple (unqualified) name.
type Identity struct {
	ID         DeclId
	Name       string
	Qualified  string
	Location   Location
	IsDecl     bool // false for null cursors / "no declaration found"
}

// Of computes the Identity for c. Null cursors and cursors the front-end
// could not resolve to a declaration map to the zero Identity with
// IsDecl=false; the discovery walker must treat these as non-decls and
// skip them rather than add them to the graph.
func Of(c analyzer.Cursor) Identity {
	if c == nil || c.IsNull() {
		return Identity{}
	}
	loc := c.Location()
	return Identity{
		ID:        DeclId(c.USR()),
		Name:      c.Spelling(),
		Qualified: QualifiedName(c),
		Location:  Location{File: loc.File, Line: loc.Line, Column: loc.Column},
		IsDecl:    true,
	}
}

// QualifiedName joins a cursor's semantic-parent chain (namespaces,
// records) with "::" and appends the cursor's own spelling. Parents that
// are the translation unit itself, or that have no spelling (e.g. an
// anonymous namespace is still named by the front-end as "" and is
// skipped here), do not contribute a path segment.
func QualifiedName(c analyzer.Cursor) string {
	var segments []string
	for cur := c; cur != nil && !cur.IsNull(); cur = cur.SemanticParent() {
		if cur.Kind() == analyzer.CursorTranslationUnit {
			break
		}
		if name := cur.Spelling(); name != "" {
			segments = append(segments, name)
		}
	}
	// segments were collected from innermost (c itself) to outermost;
	// reverse to get source order.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "::")
}
