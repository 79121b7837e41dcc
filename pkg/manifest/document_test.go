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

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltshift/voltshift/pkg/manifest"
)

// 🧪 TestParsePreservesFieldOrder tests ordered round-tripping
func TestParsePreservesFieldOrder(t *testing.T) {
	input := []byte(`{
  "name": "demo",
  "version": "1.0.0",
  "zeta": {"nested": [1, 2, 3]},
  "alpha": "later-but-first-alphabetically",
  "scripts": {
    "start": "node index.js"
  }
}`)

	doc, err := manifest.Parse(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "version", "zeta", "alpha", "scripts"}, doc.Keys())

	out, err := doc.MarshalIndent()
	require.NoError(t, err)

	// Unrelated fields survive untouched, in order.
	reparsed, err := manifest.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, doc.Keys(), reparsed.Keys())

	raw, ok := reparsed.Raw("zeta")
	require.True(t, ok)
	assert.JSONEq(t, `{"nested": [1, 2, 3]}`, string(raw))
}

// 🧪 TestMarshalIsStable tests that marshal output re-marshals identically
func TestMarshalIsStable(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{"b": "2", "a": "1", "scripts": {"z": "last", "a": "first"}}`))
	require.NoError(t, err)

	first, err := doc.MarshalIndent()
	require.NoError(t, err)

	reparsed, err := manifest.Parse(first)
	require.NoError(t, err)
	second, err := reparsed.MarshalIndent()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

// 🧪 TestDocumentAccessors tests field get/set behavior
func TestDocumentAccessors(t *testing.T) {
	doc, err := manifest.Parse([]byte(`{"name": "demo", "private": true}`))
	require.NoError(t, err)

	name, ok := doc.String("name")
	require.True(t, ok)
	assert.Equal(t, "demo", name)

	// Present but not a string.
	_, ok = doc.String("private")
	assert.False(t, ok)

	// Absent nested map comes back empty, not nil.
	scripts, err := doc.Map("scripts")
	require.NoError(t, err)
	assert.Equal(t, 0, scripts.Len())

	// New fields append at the end.
	doc.SetString("type", "module")
	assert.Equal(t, []string{"name", "private", "type"}, doc.Keys())
}

// 🧪 TestMapOrder tests ordered map insertion semantics
func TestMapOrder(t *testing.T) {
	m := manifest.NewMap()
	m.Set("z", "1")
	m.Set("a", "2")
	m.Set("z", "updated")

	assert.Equal(t, []string{"z", "a"}, m.Keys())
	v, ok := m.Get("z")
	require.True(t, ok)
	assert.Equal(t, "updated", v)
}

// 🧪 TestParseRejectsNonObject tests the malformed manifest case
func TestParseRejectsNonObject(t *testing.T) {
	_, err := manifest.Parse([]byte(`["not", "an", "object"]`))
	require.Error(t, err)
}
