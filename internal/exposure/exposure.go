// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exposure assembles the final ordered sequence of exposed
// declarations from a decl table and the shaking engine's inclusion
// registry (spec.md §4.10).
package exposure

import (
	"github.com/cxmodel-dev/cxmodel/internal/decltable"
	"github.com/cxmodel-dev/cxmodel/internal/declmodel"
	"github.com/cxmodel-dev/cxmodel/internal/shaking"
)

// Build iterates table in discovery (insertion) order and returns every
// Decl whose registry status is included or enforced, in that same
// order. A Decl is exposed iff registry.Exposed(d.ID), per spec.md §3's
// invariant.
func Build(table *decltable.Table, registry *shaking.Registry) []*declmodel.Decl {
	out := make([]*declmodel.Decl, 0, table.Len())
	table.Each(func(d *declmodel.Decl) bool {
		if registry.Exposed(d.ID) {
			out = append(out, d)
		}
		return true
	})
	return out
}
