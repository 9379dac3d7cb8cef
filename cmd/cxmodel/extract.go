// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"flag"
	log "github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/cxmodel-dev/cxmodel/internal/analyzer"
	"github.com/cxmodel-dev/cxmodel/internal/diagnostics"
	"github.com/cxmodel-dev/cxmodel/internal/extractor"
	"github.com/cxmodel-dev/cxmodel/internal/filterpat"
	"github.com/cxmodel-dev/cxmodel/internal/shaking"
	"github.com/cxmodel-dev/cxmodel/internal/telemetry"
	"github.com/cxmodel-dev/cxmodel/internal/tsanalyzer"
)

// extractCmd implements the extract subcommand: parse one or more C/C++
// translation units, discover their declaration graph, shake it against
// the pattern lists, and print the exposed declarations.
type extractCmd struct {
	includedName, includedSource string
	excludedName, excludedSource string
	enforcedName, enforcedSource string
	ignoredName, ignoredSource   string

	includePaths, frameworkPaths string
	target, language, standard   string
	abi, arch, cpu               string

	parallelJobs     int
	diagnosticsFlag  bool
	profileFlag      bool
	verifyIdempotent bool
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "extract a declaration graph from C/C++ sources" }
func (*extractCmd) Usage() string {
	return `Usage: cxmodel extract [flags] <source> [<source>...]
`
}

func (cmd *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.includedName, "included_name", "", "Comma-separated glob/regex patterns matching qualified names to include.")
	f.StringVar(&cmd.includedSource, "included_source", "", "Comma-separated glob/regex patterns matching source paths to include.")
	f.StringVar(&cmd.excludedName, "excluded_name", "", "Comma-separated glob/regex patterns matching qualified names to exclude.")
	f.StringVar(&cmd.excludedSource, "excluded_source", "", "Comma-separated glob/regex patterns matching source paths to exclude.")
	f.StringVar(&cmd.enforcedName, "enforced_name", "", "Comma-separated glob/regex patterns matching qualified names to force-include.")
	f.StringVar(&cmd.enforcedSource, "enforced_source", "", "Comma-separated glob/regex patterns matching source paths to force-include.")
	f.StringVar(&cmd.ignoredName, "ignored_name", "", "Comma-separated glob/regex patterns matching qualified names to ignore.")
	f.StringVar(&cmd.ignoredSource, "ignored_source", "", "Comma-separated glob/regex patterns matching source paths to ignore.")

	f.StringVar(&cmd.includePaths, "include_paths", "", "Comma-separated include directories, passed through to the analyzer verbatim.")
	f.StringVar(&cmd.frameworkPaths, "framework_paths", "", "Comma-separated framework directories, passed through to the analyzer verbatim.")
	f.StringVar(&cmd.target, "target", "", "Target triple, passed through to the analyzer verbatim.")
	f.StringVar(&cmd.language, "language", "c", "Source language: c or c++.")
	f.StringVar(&cmd.standard, "standard", "", "Language standard (e.g. c17, c++20), passed through to the analyzer verbatim.")
	f.StringVar(&cmd.abi, "abi", "", "ABI, passed through to the analyzer verbatim.")
	f.StringVar(&cmd.arch, "arch", "", "Target architecture, passed through to the analyzer verbatim.")
	f.StringVar(&cmd.cpu, "cpu", "", "Target CPU, passed through to the analyzer verbatim.")

	f.IntVar(&cmd.parallelJobs, "parallel_jobs", 0, "Concurrency bound carried in the extractor configuration. extract processes its sources one at a time, so this has no effect on it.")
	f.BoolVar(&cmd.diagnosticsFlag, "diagnostics", false, "Print one INCL/ENF line per exposed declaration.")
	f.BoolVar(&cmd.profileFlag, "profile", false, "Print per-phase timing for each translation unit.")
	f.BoolVar(&cmd.verifyIdempotent, "verify_idempotent", false, "Re-run shaking and report any divergence from the first pass.")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (cmd *extractCmd) config() extractor.Config {
	lang := analyzer.LanguageC
	if cmd.language == "c++" || cmd.language == "cxx" || cmd.language == "cpp" {
		lang = analyzer.LanguageCXX
	}
	return extractor.Config{
		Patterns: filterpat.Config{
			IncludedName:   splitList(cmd.includedName),
			IncludedSource: splitList(cmd.includedSource),
			ExcludedName:   splitList(cmd.excludedName),
			ExcludedSource: splitList(cmd.excludedSource),
			EnforcedName:   splitList(cmd.enforcedName),
			EnforcedSource: splitList(cmd.enforcedSource),
			IgnoredName:    splitList(cmd.ignoredName),
			IgnoredSource:  splitList(cmd.ignoredSource),
		},
		Analyzer: analyzer.Options{
			IncludePaths:   splitList(cmd.includePaths),
			FrameworkPaths: splitList(cmd.frameworkPaths),
			Target:         cmd.target,
			Language:       lang,
			Standard:       cmd.standard,
			ABI:            cmd.abi,
			Arch:           cmd.arch,
			CPU:            cmd.cpu,
		},
		ParallelJobs: cmd.parallelJobs,
	}
}

func (cmd *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		log.Errorf("extract: no source files given")
		return subcommands.ExitUsageError
	}

	idx := tsanalyzer.NewIndex()
	defer idx.Dispose()

	srcs := make([]extractor.Source, f.NArg())
	for i, path := range f.Args() {
		srcs[i] = extractor.Source{Path: path, Source: path}
	}

	cfg := cmd.config()
	status := subcommands.ExitSuccess
	for _, src := range srcs {
		if cmd.profileFlag {
			ctx = telemetry.NewContext(ctx)
		}
		model, err := extractor.RunOne(ctx, idx, src, cfg)
		if err != nil {
			log.Errorf("extract: %v", err)
			status = subcommands.ExitFailure
			continue
		}

		for _, d := range model.Decls {
			fmt.Fprintf(os.Stdout, "%s %s %s\n", d.Kind, d.Qualified, d.ID)
		}

		if cmd.diagnosticsFlag {
			diagnostics.NewSink(os.Stdout).Emit(model.Walked.Decls, model.Registry)
		}
		if cmd.verifyIdempotent {
			rerun := shaking.Run(model.Walked.Graph)
			if diff := diagnostics.Diff(model.Registry.Snapshot(), rerun.Snapshot()); diff != "" {
				log.Errorf("extract: shaking is not idempotent for %s:\n%s", src.Path, diff)
				status = subcommands.ExitFailure
			}
		}
		if cmd.profileFlag {
			fmt.Fprintf(os.Stderr, "%s: %s\n", src.Path, telemetry.Dump(ctx))
		}
	}
	return status
}

// extractCommand returns an initialized extractCmd for registration
// with the subcommands package.
func extractCommand() *extractCmd {
	return &extractCmd{}
}
