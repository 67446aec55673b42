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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// runWith runs the command and returns its exit code, stdout and stderr.
func runWith(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunStdin(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runWith(t, `{"a": [1, 2]}`, "-w", "80")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"a": [1, 2]}`+"\n", stdout)

	code, stdout, stderr = runWith(t, `{"abc": 1, "d": 2}`, "--width=12")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "{\n  \"abc\": 1,\n  \"d\": 2\n}\n", stdout)

	code, stdout, stderr = runWith(t, `{"abc": 1, "d": 2}`, "-w", "12", "--indent", "4", "-")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "{\n    \"abc\": 1,\n    \"d\": 2\n}\n", stdout)
}

func TestRunFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), `[1]`)
	writeFile(t, filepath.Join(dir, "a.yaml"), "x: y\n")
	writeFile(t, filepath.Join(dir, "sub", "c.pp"), `
		margin 5
		group "(" ")" { "aaaa" break "bbbb" }
	`)

	code, stdout, stderr := runWith(t, "", "-w", "80", filepath.Join(dir, "**", "*"))
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"x": "y"}`+"\n"+`[1]`+"\n"+"(aaaa\n  bbbb\n)\n", stdout)
}

func TestRunDump(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runWith(t, `"a" break "b"`, "-f", "tokens", "--dump")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "\"a\"\n<br width=1 size=2>\n\"b\"\n", stdout)
}

func TestRunDescriptorSet(t *testing.T) {
	t.Parallel()

	data, err := proto.Marshal(&descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{{
			Name:    proto.String("a.proto"),
			Package: proto.String("a"),
		}},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "set.binpb")
	writeFile(t, path, string(data))

	code, stdout, stderr := runWith(t, "", "-w", "80", path)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, `file {name: "a.proto" package: "a"}`+"\n", stdout)
}

func TestRunColor(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runWith(t, `{"k": "v"}`, "--color", "on", "-w", "12")
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "\x1b[")
	assert.Equal(t, 1, strings.Count(stdout, "\n"))

	code, stdout, _ = runWith(t, `{"k": "v"}`, "--color", "auto")
	assert.Equal(t, 0, code)
	assert.NotContains(t, stdout, "\x1b[")
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"a": [`)

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{name: "flag", args: []string{"--bogus"}, code: 2, stderr: "unknown flag"},
		{name: "format", args: []string{"-f", "xml"}, code: 2, stderr: `unknown format "xml"`},
		{name: "color", args: []string{"--color", "maybe"}, code: 2, stderr: "invalid --color value"},
		{name: "width", args: []string{"-w", "-3"}, code: 2, stderr: "must not be negative"},
		{name: "glob", args: []string{filepath.Join(dir, "*.nothing")}, code: 1, stderr: "no files match"},
		{name: "missing", args: []string{filepath.Join(dir, "missing.json")}, code: 1, stderr: "missing.json"},
		{name: "parse", args: []string{bad}, code: 1, stderr: "bad.json: jsonfmt: document 0"},
		{name: "help", args: []string{"--help"}, code: 0, stderr: "Usage: prettyfmt"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runWith(t, "", test.args...)
			assert.Equal(t, test.code, code)
			assert.Contains(t, stderr, test.stderr)
			if code != 0 {
				assert.Empty(t, stdout)
			}
		})
	}
}

func TestRunPartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, good, `[1]`)
	writeFile(t, bad, `[`)

	code, stdout, stderr := runWith(t, "", good, bad, good)
	assert.Equal(t, 1, code)
	assert.Equal(t, "[1]\n", stdout)
	assert.Contains(t, stderr, "bad.json")
}

func TestRunStdinTwice(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runWith(t, `[1]`, "-w", "80", "-", "-")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "[1]\n[1]\n", stdout)
}

func TestFormatAllKeepsEarlierOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var inputs []string
	for i := range 64 {
		path := filepath.Join(dir, fmt.Sprintf("%02d.json", i))
		writeFile(t, path, fmt.Sprintf("[%d]", i))
		inputs = append(inputs, path)
	}
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `[`)
	inputs = append(inputs, bad)

	// The bad input is the last to be scheduled, so it may fail before or
	// after any of the others have run.
	cfg := config{format: formatAuto, width: 80}
	outputs, err := formatAll(cfg, inputs, nil)
	require.ErrorContains(t, err, "bad.json")
	require.Len(t, outputs, 64)
	for i, out := range outputs {
		assert.Equal(t, fmt.Sprintf("[%d]\n", i), out)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	auto := config{format: formatAuto}
	assert.Equal(t, formatTokens, auto.detect("x.pp"))
	assert.Equal(t, formatDescriptorSet, auto.detect("x.binpb"))
	assert.Equal(t, formatYAML, auto.detect("X.YML"))
	assert.Equal(t, formatJSON, auto.detect("x.json"))
	assert.Equal(t, formatJSON, auto.detect(stdinName))

	tokens := config{format: formatTokens}
	assert.Equal(t, formatTokens, tokens.detect("x.json"))
}

func TestExpandInputs(t *testing.T) {
	t.Parallel()

	inputs, err := expandInputs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{stdinName}, inputs)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), "1")
	writeFile(t, filepath.Join(dir, "a.json"), "2")
	writeFile(t, filepath.Join(dir, "c.txt"), "3")

	inputs, err = expandInputs([]string{"-", filepath.Join(dir, "*.json"), "plain.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		stdinName,
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		"plain.yaml",
	}, inputs)
}
