// Copyright 2025 the voltshift authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fsops_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltshift/voltshift/pkg/fsops"
)

// 🧪 writeTree creates files under root from relative path -> content
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// 🧪 TestRelocateMovesEverythingButKept tests relocation completeness
func TestRelocateMovesEverythingButKept(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeTree(t, src, map[string]string{
		"a.ts":          "a",
		"b.css":         "b",
		"electron/c.ts": "c",
	})

	outcome, err := fsops.Relocate(testContext(t), fsops.Migration{
		SourceDir:    src,
		DestDir:      filepath.Join(src, "ui"),
		KeepPatterns: []string{"electron"},
	})
	require.NoError(t, err)
	assert.Equal(t, fsops.RelocateMoved, outcome)

	// Moved, byte for byte.
	for rel, want := range map[string]string{
		"ui/a.ts":  "a",
		"ui/b.css": "b",
	} {
		data, err := os.ReadFile(filepath.Join(src, rel))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}

	// Originals gone, excluded subtree untouched.
	_, err = os.Stat(filepath.Join(src, "a.ts"))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(src, "electron", "c.ts"))
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}

// 🧪 TestRelocateExistingDestIsNoop tests directory-level idempotence
func TestRelocateExistingDestIsNoop(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeTree(t, src, map[string]string{
		"a.ts":          "a",
		"ui/main.js":    "already migrated",
		"electron/c.ts": "c",
	})

	outcome, err := fsops.Relocate(testContext(t), fsops.Migration{
		SourceDir:    src,
		DestDir:      filepath.Join(src, "ui"),
		KeepPatterns: []string{"electron"},
	})
	require.NoError(t, err)
	assert.Equal(t, fsops.RelocateSkipped, outcome)

	// Nothing moved.
	data, err := os.ReadFile(filepath.Join(src, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

// 🧪 TestRelocateNothingToMove tests the all-excluded case
func TestRelocateNothingToMove(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeTree(t, src, map[string]string{
		"electron/c.ts": "c",
	})

	outcome, err := fsops.Relocate(testContext(t), fsops.Migration{
		SourceDir:    src,
		DestDir:      filepath.Join(src, "ui"),
		KeepPatterns: []string{"electron"},
	})
	require.NoError(t, err)
	assert.Equal(t, fsops.RelocateNothing, outcome)

	// Destination never created.
	_, err = os.Stat(filepath.Join(src, "ui"))
	assert.True(t, os.IsNotExist(err))
}

// 🧪 TestRelocateMissingSourceIsFatal tests the fatal precondition
func TestRelocateMissingSourceIsFatal(t *testing.T) {
	root := t.TempDir()

	_, err := fsops.Relocate(testContext(t), fsops.Migration{
		SourceDir: filepath.Join(root, "src"),
		DestDir:   filepath.Join(root, "src", "ui"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

// 🧪 TestRelocateKeepPatternGlobs tests doublestar keep patterns
func TestRelocateKeepPatternGlobs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeTree(t, src, map[string]string{
		"a.ts":       "a",
		"keep.local": "k",
	})

	outcome, err := fsops.Relocate(testContext(t), fsops.Migration{
		SourceDir:    src,
		DestDir:      filepath.Join(src, "ui"),
		KeepPatterns: []string{"*.local"},
	})
	require.NoError(t, err)
	assert.Equal(t, fsops.RelocateMoved, outcome)

	_, err = os.Stat(filepath.Join(src, "keep.local"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(src, "ui", "a.ts"))
	assert.NoError(t, err)
}
