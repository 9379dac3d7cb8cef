// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filterpat compiles the eight user-supplied pattern lists
// (included/excluded/enforced/ignored × name/source) into a single
// classifier and applies spec's fixed priority order to any
// (qualified-name, source-path) pair the discovery walker encounters.
package filterpat

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"
	log "github.com/golang/glog"
)

// Status is the per-declaration classification a Classifier produces.
type Status int

const (
	// Ignored is the default status: neither tracked nor exposed unless
	// promoted by the shaking engine's "ignored → included" rule.
	Ignored Status = iota
	Included
	Excluded
	Enforced
)

// String renders the Status for diagnostics.
func (s Status) String() string {
	switch s {
	case Included:
		return "included"
	case Excluded:
		return "excluded"
	case Enforced:
		return "enforced"
	default:
		return "ignored"
	}
}

// Config is the eight raw pattern lists from the configuration surface.
type Config struct {
	IncludedName, IncludedSource []string
	ExcludedName, ExcludedSource []string
	EnforcedName, EnforcedSource []string
	IgnoredName, IgnoredSource   []string
}

// matcher is a single compiled pattern: a glob if the pattern compiles as
// one, otherwise an anchored regular expression. "glob/regex-style" in the
// configuration surface's description is honored by trying both.
type matcher struct {
	raw string
	g   glob.Glob
	re  *regexp.Regexp
}

func compile(pattern string) matcher {
	if g, err := glob.Compile(pattern); err == nil {
		return matcher{raw: pattern, g: g}
	}
	// Not a valid glob; fall back to a regex anchored at both ends, so it
	// must match the whole string the way a glob does.
	if re, err := regexp.Compile("^(?:" + pattern + ")$"); err == nil {
		return matcher{raw: pattern, re: re}
	}
	log.Warningf("filterpat: pattern %q is neither a valid glob nor a valid regexp; it will never match", pattern)
	return matcher{raw: pattern}
}

func (m matcher) match(s string) bool {
	switch {
	case m.g != nil:
		return m.g.Match(s)
	case m.re != nil:
		return m.re.MatchString(s)
	default:
		return false
	}
}

func compileAll(patterns []string) []matcher {
	out := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, compile(p))
	}
	return out
}

func anyMatch(matchers []matcher, s string) bool {
	for _, m := range matchers {
		if m.match(s) {
			return true
		}
	}
	return false
}

// Classifier is a compiled Config, ready to classify (name, source) pairs.
type Classifier struct {
	includedName, includedSource []matcher
	excludedName, excludedSource []matcher
	enforcedName, enforcedSource []matcher
	ignoredName, ignoredSource   []matcher
}

// Compile compiles cfg's eight pattern lists once. Compilation never
// fails: an unparseable pattern is logged and simply never matches,
// matching spec's "unknown kind is not an error" posture for malformed
// input rather than aborting the whole run over one bad pattern.
func Compile(cfg Config) *Classifier {
	c := &Classifier{
		includedName:   compileAll(cfg.IncludedName),
		includedSource: compileAll(cfg.IncludedSource),
		excludedName:   compileAll(cfg.ExcludedName),
		excludedSource: compileAll(cfg.ExcludedSource),
		enforcedName:   compileAll(cfg.EnforcedName),
		enforcedSource: compileAll(cfg.EnforcedSource),
		ignoredName:    compileAll(cfg.IgnoredName),
		ignoredSource:  compileAll(cfg.IgnoredSource),
	}
	log.Infof("filterpat: compiled %d included, %d excluded, %d enforced, %d ignored patterns",
		len(c.includedName)+len(c.includedSource),
		len(c.excludedName)+len(c.excludedSource),
		len(c.enforcedName)+len(c.enforcedSource),
		len(c.ignoredName)+len(c.ignoredSource))
	return c
}

// Classify applies the fixed priority order from spec §4.2:
//  1. enforced (name or source)
//  2. excluded (name or source)
//  3. ignored (name or source)
//  4. included (name or source)
//  5. default: ignored
//
// Priority is fixed across categories and does not depend on list order
// within a category; each case short-circuits, so ties within one
// priority level are impossible.
func (c *Classifier) Classify(qualifiedName, source string) Status {
	if anyMatch(c.enforcedName, qualifiedName) || anyMatch(c.enforcedSource, source) {
		return Enforced
	}
	if anyMatch(c.excludedName, qualifiedName) || anyMatch(c.excludedSource, source) {
		return Excluded
	}
	if anyMatch(c.ignoredName, qualifiedName) || anyMatch(c.ignoredSource, source) {
		return Ignored
	}
	if anyMatch(c.includedName, qualifiedName) || anyMatch(c.includedSource, source) {
		return Included
	}
	return Ignored
}

func (c *Classifier) String() string {
	return fmt.Sprintf("Classifier{included:%d excluded:%d enforced:%d ignored:%d}",
		len(c.includedName)+len(c.includedSource),
		len(c.excludedName)+len(c.excludedSource),
		len(c.enforcedName)+len(c.enforcedSource),
		len(c.ignoredName)+len(c.ignoredSource))
}
