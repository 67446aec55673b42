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

package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pretty"
	"github.com/bufbuild/pretty/experimental/tokenfmt"
	"github.com/bufbuild/pretty/internal/golden"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Refresh:    "PRETTY_REFRESH",
		Extensions: []string{"pp"},
		Outputs: []golden.Output{
			{Extension: "txt"},
			{Extension: "dump"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		file, err := tokenfmt.Parse(path, text)
		require.NoError(t, err)

		outputs[0], err = pretty.Render(file.Options(), file.Stream())
		require.NoError(t, err)
		outputs[1], err = pretty.Dump(file.Options(), file.Stream())
		require.NoError(t, err)
	})
}
