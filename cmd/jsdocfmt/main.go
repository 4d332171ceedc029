// Command jsdocfmt formats JSDoc comments in JavaScript and TypeScript
// sources.
//
// # Usage
//
//	jsdocfmt [flags] <file|directory|-> ...
//	jsdocfmt watch [flags] <file|directory> ...
//	jsdocfmt schema
//
// Directories are walked recursively for .js, .jsx, .mjs, .cjs, .ts, .mts,
// .cts, and .tsx files, skipping hidden directories and node_modules. Files
// are rewritten in place unless -d or -l is given. A "-" argument reads
// source from stdin and writes the result to stdout.
//
// # Configuration
//
// Options are read from the nearest .jsdocfmt.yaml, .jsdocfmt.yml, or
// .jsdocfmt.toml in the directory of each file or its parents, or from the
// file named by --config. Flags override file values. Run "jsdocfmt schema"
// for the JSON Schema of the file format.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := a.rootCmd().ExecuteContext(ctx)
	err = errors.Join(err, a.stopProfiler())

	stop()

	if err != nil {
		if !errors.Is(err, errWouldChange) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}

		os.Exit(1)
	}
}
