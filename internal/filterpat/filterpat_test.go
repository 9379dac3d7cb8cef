// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filterpat

import "testing"

func TestClassifyPriority(t *testing.T) {
	c := Compile(Config{
		IncludedName: []string{"ns::*"},
		ExcludedName: []string{"ns::Bad*"},
		EnforcedName: []string{"ns::BadButEnforced"},
		IgnoredName:  []string{"ns::Skip*"},
	})

	tests := []struct {
		name string
		want Status
	}{
		{"ns::Good", Included},
		{"ns::BadThing", Excluded},
		{"ns::BadButEnforced", Enforced},
		{"ns::SkipThis", Ignored},
		{"other::Thing", Ignored},
	}
	for _, tc := range tests {
		if got := c.Classify(tc.name, ""); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyBySource(t *testing.T) {
	c := Compile(Config{
		IncludedSource: []string{"**/public/*.h"},
		ExcludedSource: []string{"**/internal/*.h"},
	})

	tests := []struct {
		source string
		want   Status
	}{
		{"/repo/public/api.h", Included},
		{"/repo/internal/detail.h", Excluded},
		{"/repo/other/x.h", Ignored},
	}
	for _, tc := range tests {
		if got := c.Classify("Anything", tc.source); got != tc.want {
			t.Errorf("Classify(_, %q) = %v, want %v", tc.source, got, tc.want)
		}
	}
}

func TestClassifyGlobCharClassAndAlternation(t *testing.T) {
	c := Compile(Config{
		IncludedName: []string{"ns::{Foo,Bar}[0-9]"},
	})
	if got := c.Classify("ns::Foo4", ""); got != Included {
		t.Errorf("Classify(ns::Foo4) = %v, want Included", got)
	}
	if got := c.Classify("ns::Bar9", ""); got != Included {
		t.Errorf("Classify(ns::Bar9) = %v, want Included", got)
	}
	if got := c.Classify("ns::Baz1", ""); got != Ignored {
		t.Errorf("Classify(ns::Baz1) = %v, want Ignored", got)
	}
}

func TestClassifyUnparseablePatternNeverMatches(t *testing.T) {
	c := Compile(Config{
		IncludedName: []string{"abc["},
	})
	if got := c.Classify("abc[", ""); got != Ignored {
		t.Errorf("Classify on unparseable pattern = %v, want Ignored (never matches)", got)
	}
}
