// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extractor owns one translation's end-to-end pipeline: wiring
// the discovery walker (C7) to the shaking engine (C9) and the exposure
// builder (C10), and batching that pipeline across many translation
// units (spec.md §4.11).
package extractor

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/declmodel"
	"github.com/cxmodel-dev/cxmodel/internal/exposure"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/shaking"
	"github.com/cxmodel-dev/cxmodel/internal/telemetry"
	"github.com/cxmodel-dev/cxmodel/internal/walker"
)

// Config is the user-facing configuration surface (spec.md §6): the
// eight classifier pattern lists plus the analyzer options passed
// through verbatim, and the batch runner's concurrency bound.
type Config struct {
	Patterns filterpat.Config
	Analyzer analyzer.Options

	// ParallelJobs bounds RunMany's concurrency. 0 or negative means
	// "no limit beyond Go's own scheduler", mirroring errgroup.Group's
	// default SetLimit(-1) semantics.
	ParallelJobs int
}

// Model is the result of one translation: the ordered sequence of
// exposed declarations exposure.Build produced, plus the stores behind
// it for diagnostics to inspect.
type Model struct {
	Decls    []*declmodel.Decl
	Registry *shaking.Registry
	Walked   walker.Result
}

// Source identifies one translation unit RunMany should process: the
// path passed to the analyzer, and a caller-side label for the unit.
// The classifier's source patterns are matched against the file path
// the analyzer reports for the translation unit's root cursor, not
// against the Source label.
type Source struct {
	Path   string
	Source string
}

// Run drives one translation unit through discovery, shaking and
// exposure and returns its Model. Per spec.md §7's "analyzer failure:
// no partial model is returned" rule, Run either returns a complete
// Model or a nil one with a non-nil error — there is no partial result
// to discard, since the walker, shaking and exposure phases here never
// themselves fail (only the analyzer's Parse can, and that happens
// before Run is even called).
func Run(ctx context.Context, tu analyzer.TranslationUnit, cfg Config) (*Model, error) {
	classifier := filterpat.Compile(cfg.Patterns)

	source := ""
	if tu.Root != nil && !tu.Root.IsNull() {
		source = tu.Root.Location().File
	}

	telemetry.Add(ctx, "discovery-start")
	result := walker.Walk(tu, classifier, source)
	telemetry.Add(ctx, "discovery-done")

	registry := shaking.Run(result.Graph)
	telemetry.Add(ctx, "shaking-done")

	decls := exposure.Build(result.Decls, registry)
	telemetry.Add(ctx, "exposure-done")

	return &Model{Decls: decls, Registry: registry, Walked: result}, nil
}

// RunOne parses path with idx under cfg.Analyzer and runs the pipeline
// over it, wrapping any analyzer failure with the translation unit's
// path so a batch caller (or the CLI) can tell which unit failed.
func RunOne(ctx context.Context, idx analyzer.Index, src Source, cfg Config) (*Model, error) {
	tu, err := idx.Parse(src.Path, cfg.Analyzer)
	if err != nil {
		return nil, errors.Wrapf(err, "extractor: parsing %s", src.Path)
	}
	model, err := Run(ctx, tu, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "extractor: processing %s", src.Path)
	}
	return model, nil
}

// BatchResult is RunMany's per-source output, keeping results aligned
// with the Sources slice the caller passed in (including entries for
// sources that failed, whose Model is nil and Err is set) rather than
// silently dropping failures from the result ordering.
type BatchResult struct {
	Sources []Source
	Models  []*Model
	Errs    []error
}

// RunMany runs RunOne over every source in srcs, fanning out up to
// cfg.ParallelJobs translation units at a time. Each translation unit
// owns its own decl table, type registry and dependency graph (spec.md
// §5's "exclusively owned by a single translation context" rule), so
// running them concurrently shares nothing and needs no synchronization
// beyond errgroup's own bookkeeping.
//
// One bad translation unit does not stop the others: every source runs
// to completion, and all per-source errors are collected into a single
// *multierror.Error rather than the first one short-circuiting the
// batch, so a CLI invocation over a whole source tree reports every
// failing file in one run instead of one-at-a-time.
func RunMany(ctx context.Context, idx analyzer.Index, srcs []Source, cfg Config) (*BatchResult, error) {
	res := &BatchResult{
		Sources: srcs,
		Models:  make([]*Model, len(srcs)),
		Errs:    make([]error, len(srcs)),
	}

	// A plain errgroup.Group, not WithContext: one source failing must
	// not cancel the others, so Go funcs always return nil here and
	// report failure through res.Errs instead of through the group.
	var g errgroup.Group
	if cfg.ParallelJobs > 0 {
		g.SetLimit(cfg.ParallelJobs)
	}

	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			model, err := RunOne(ctx, idx, src, cfg)
			res.Models[i] = model
			res.Errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var merr *multierror.Error
	for i, err := range res.Errs {
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", srcs[i].Path, err))
		}
	}
	if merr != nil {
		return res, merr
	}
	return res, nil
}
