// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The program cxmodel extracts a reachability-shaken declaration graph
// from C and C++ translation units.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"flag"
	"github.com/google/subcommands"

	"github.com/cxmodel-dev/cxmodel/internal/version"
)

const groupOther = "working with this tool"
const groupExtract = "extracting declaration graphs"

func main() {
	ctx := context.Background()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	defaultExplain := commander.Explain
	commander.Explain = func(w io.Writer) {
		fmt.Fprintf(w, "cxmodel extracts a two-pass-discovered, reachability-shaken declaration graph from C and C++ source.\n\n")
		defaultExplain(w)
	}

	commander.Register(commander.HelpCommand(), groupOther)
	commander.Register(commander.FlagsCommand(), groupOther)
	commander.Register(version.Command(), groupOther)

	commander.Register(extractCommand(), groupExtract)

	flag.Usage = func() {
		commander.HelpCommand().Execute(ctx, flag.CommandLine)
	}

	flag.Parse()

	os.Exit(int(commander.Execute(ctx)))
}
