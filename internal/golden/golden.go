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

// Package golden provides a framework for writing file-based golden tests.
//
// A corpus is a directory of input files. Each input is passed to a test
// function which produces one or more outputs; each output is compared
// against a file next to the input, named after the input plus the output's
// extension. Missing output files are treated as empty.
//
// Setting the corpus's refresh environment variable to a glob (such as "**")
// rewrites the output files of every matching input instead of comparing them.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus.
type Corpus struct {
	// The directory containing the inputs, relative to the test's working
	// directory.
	Root string

	// The environment variable that triggers a refresh, e.g.
	// "PRETTY_REFRESH".
	Refresh string

	// The extensions of input files, without a leading dot.
	Extensions []string

	// The outputs each test produces.
	Outputs []Output
}

// Output describes one output of a corpus test.
type Output struct {
	// The extension appended to the input's path to name this output, without
	// a leading dot.
	Extension string
}

// Run executes a golden test for every input in the corpus.
//
// test is called with the path of the input relative to the root, its
// contents, and a slice with one element per [Output], which it should fill
// in.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	t.Helper()

	paths, err := c.inputs()
	if err != nil {
		t.Fatalf("golden: could not list corpus %q: %v", c.Root, err)
	}
	if len(paths) == 0 {
		t.Fatalf("golden: corpus %q is empty", c.Root)
	}

	refresh := os.Getenv(c.Refresh)
	if refresh != "" && !doublestar.ValidatePattern(refresh) {
		t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(filepath.Join(c.Root, path))
			if err != nil {
				t.Fatalf("golden: %v", err)
			}

			outputs := make([]string, len(c.Outputs))
			test(t, path, string(input), outputs)

			if refresh != "" && doublestar.MatchUnvalidated(refresh, path) {
				c.refresh(t, path, outputs)
				return
			}
			c.compare(t, path, outputs)
		})
	}
}

// inputs returns the paths of all inputs in the corpus, sorted.
func (c Corpus) inputs() ([]string, error) {
	fsys := os.DirFS(c.Root)

	var paths []string
	for _, ext := range c.Extensions {
		matches, err := doublestar.Glob(fsys, "**/*."+ext)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func (c Corpus) compare(t *testing.T, path string, outputs []string) {
	t.Helper()

	for i, output := range c.Outputs {
		name := path + "." + output.Extension
		want, err := os.ReadFile(filepath.Join(c.Root, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("golden: %v", err)
		}

		if got := outputs[i]; got != string(want) {
			t.Errorf("golden: output %q does not match (set %s=%s to refresh):\n%s",
				name, c.Refresh, path, diff(name, string(want), got))
		}
	}
}

func (c Corpus) refresh(t *testing.T, path string, outputs []string) {
	t.Helper()

	for i, output := range c.Outputs {
		name := filepath.Join(c.Root, path+"."+output.Extension)
		if outputs[i] == "" {
			if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("golden: %v", err)
			}
			continue
		}
		if err := os.WriteFile(name, []byte(outputs[i]), 0o600); err != nil {
			t.Fatalf("golden: %v", err)
		}
	}
}

// diff returns a unified diff between want and got.
func diff(name, want, got string) string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: name,
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("want:\n%s\ngot:\n%s", want, got)
	}

	// Make the end of the output visible, since trailing newlines matter.
	return strings.TrimRight(text, "\n") + "\n<EOF>"
}
