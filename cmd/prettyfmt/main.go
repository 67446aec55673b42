// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command prettyfmt lays out structured documents with package pretty.
//
// Usage:
//
//	prettyfmt [flags] [inputs...]
//
// Inputs are file paths or doublestar globs. If no input is provided, the
// document is read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	stdinName    = "<stdin>"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		cfg       config
		widthFlag int
		colorFlag string
		verbose   bool
	)

	flags := pflag.NewFlagSet("prettyfmt", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.IntVarP(&widthFlag, "width", "w", 0, "Maximum line width (0 uses terminal width if available)")
	flags.IntVar(&cfg.indent, "indent", 0, "Spaces per nesting level (0 uses the default of 2)")
	flags.StringVarP(&cfg.format, "format", "f", formatAuto, "Input format: "+strings.Join(formats, "|"))
	flags.BoolVar(&cfg.fill, "fill", false, "Pack as many array elements on each line as fit")
	flags.StringVar(&colorFlag, "color", "auto", "Colored output: auto|on|off")
	flags.BoolVar(&cfg.dump, "dump", false, "Print the token stream with its computed sizes instead of rendering it")
	flags.BoolVar(&cfg.trim, "trim", true, "Remove spaces at the end of lines")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Trace layout decisions to stderr")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: prettyfmt [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, the document is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return 2
	}

	if !slices.Contains(formats, cfg.format) {
		fmt.Fprintf(stderr, "unknown format %q\n", cfg.format)
		return 2
	}
	if widthFlag < 0 || cfg.indent < 0 {
		fmt.Fprintln(stderr, "width and indent must not be negative")
		return 2
	}

	var err error
	cfg.width = resolveWidth(widthFlag, stdout)
	cfg.color, err = resolveColor(colorFlag, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if verbose {
		trace := gologadapter.New()
		trace.SetOutput(stderr)
		trace.SetTraceLevel(tracing.LevelDebug)
		tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace { return trace }))
	}

	inputs, err := expandInputs(flags.Args())
	if err != nil {
		fail(stderr, err)
		return 1
	}

	outputs, err := formatAll(cfg, inputs, stdin)
	for _, out := range outputs {
		if _, werr := io.WriteString(stdout, out); werr != nil {
			fail(stderr, werr)
			return 1
		}
	}
	if err != nil {
		fail(stderr, err)
		return 1
	}
	return 0
}

// formatAll formats every input concurrently, and returns their outputs in
// input order.
//
// If any input fails, the outputs that precede it are returned along with
// its error.
func formatAll(cfg config, inputs []string, stdin io.Reader) ([]string, error) {
	// Stdin can only be read once, no matter how many times it is named.
	var stdinData []byte
	if slices.Contains(inputs, stdinName) {
		var err error
		stdinData, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stdinName, err)
		}
	}

	outputs := make([]string, len(inputs))
	errs := make([]error, len(inputs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range inputs {
		g.Go(func() error {
			var data []byte
			var err error
			if name == stdinName {
				data = stdinData
			} else {
				data, err = os.ReadFile(name)
			}
			if err == nil {
				outputs[i], err = cfg.render(name, data)
			}
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", name, err)
			}
			return errs[i]
		})
	}
	_ = g.Wait() // Every error is recorded in errs.

	for i, err := range errs {
		if err != nil {
			return outputs[:i], err
		}
	}
	return outputs, nil
}

// expandInputs resolves glob patterns among args. No args means stdin.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinName}, nil
	}

	var inputs []string
	for _, arg := range args {
		if arg == "-" {
			inputs = append(inputs, stdinName)
			continue
		}
		if !strings.ContainsAny(arg, "*?[{") {
			inputs = append(inputs, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no files match", arg)
		}
		slices.Sort(matches)
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

func resolveWidth(width int, out io.Writer) int {
	if width > 0 {
		return width
	}
	if fd, ok := terminal(out); ok {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func resolveColor(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		_, ok := terminal(out)
		return ok && !color.NoColor, nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (use auto|on|off)", mode)
	}
}

// terminal returns the file descriptor of out, if it is a terminal.
func terminal(out io.Writer) (int, bool) {
	f, ok := out.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

func fail(stderr io.Writer, err error) {
	red := color.New(color.FgRed)
	if f, ok := stderr.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		red.DisableColor()
	}
	_, _ = red.Fprintf(stderr, "prettyfmt: %v\n", err)
}
