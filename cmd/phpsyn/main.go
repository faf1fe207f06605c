/*
Phpsyn parses PHP source into a syntax tree and prints it.

Given a file, it parses the file's contents once and prints the resulting
tree to stdout. Given no file, it starts an interactive session that reads
PHP snippets one line at a time and prints the tree for each.

Usage:

	phpsyn [flags] [FILE]

The flags are:

	-v, --version
		Print the current version of phpsyn and exit.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline where possible. Has no effect when FILE is given.

	-c, --command SOURCE
		Parse the given PHP source immediately and exit, instead of reading
		a file or starting an interactive session.

	-s, --short-tags
		Enable short open tags ("<?" in addition to "<?php" and "<?=").

	--stats
		After a successful parse, also print a count of nodes by kind and
		the elapsed parse time.

In interactive mode, type a PHP statement (with or without a "<?php" open
tag; one is added automatically if missing) and press enter to see its
tree. EOF (Ctrl-D) ends the session.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/dekarrin/phpsyn"
	"github.com/dekarrin/phpsyn/internal/input"
	"github.com/dekarrin/phpsyn/internal/phpast"
	"github.com/dekarrin/phpsyn/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates a parse failure either in one-shot or
	// interactive mode.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading input or setting up the session.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Print the current version of phpsyn")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	oneShot     *string = pflag.StringP("command", "c", "", "Parse the given PHP source immediately and exit")
	shortTags   *bool   = pflag.BoolP("short-tags", "s", false, "Enable short open tags")
	showStats   *bool   = pflag.Bool("stats", false, "Print a per-kind node count and elapsed time after a successful parse")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	opts := phpsyn.Options{ShortTagsEnabled: *shortTags}

	if *oneShot != "" {
		runOne(*oneShot, opts)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		runFile(args[0], opts)
		return
	}

	runInteractive(opts)
}

func runFile(path string, opts phpsyn.Options) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	runOne(string(src), opts)
}

func runOne(src string, opts phpsyn.Options) {
	start := time.Now()
	tree, err := phpsyn.ParseWithOptions([]byte(src), opts)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
		return
	}

	printResult(tree, elapsed)
}

func runInteractive(opts phpsyn.Options) {
	reader, err := newSourceReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	for {
		line, err := reader.ReadSnippet()
		if err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}

		src := line
		if !strings.Contains(src, "<?") {
			src = "<?php " + src
		}

		start := time.Now()
		tree, err := phpsyn.ParseWithOptions([]byte(src), opts)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			continue
		}

		printResult(tree, elapsed)
	}
}

func newSourceReader() (input.SourceReader, error) {
	if !*forceDirect {
		ir, err := input.NewInteractiveReader()
		if err == nil {
			return ir, nil
		}
	}
	return input.NewDirectReader(os.Stdin), nil
}

func printResult(tree *phpast.Tree, elapsed time.Duration) {
	fmt.Println(tree.Dump(tree.Root))

	if *showStats {
		counter := phpast.NewKindCounter()
		phpast.Walk(counter, tree, tree.Root)

		fmt.Printf("\n%d nodes, %s elapsed\n", tree.Arena.Len(), humanize.SI(elapsed.Seconds(), "s"))
		for kind, count := range counter.Counts {
			fmt.Printf("  %-30s %d\n", kind, count)
		}
	}
}
