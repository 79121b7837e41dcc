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

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltshift/voltshift/pkg/config"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 TestLoadMissingFileYieldsDefaults tests that no config file is fine
func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(testContext(t), filepath.Join(t.TempDir(), ".voltshift.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Scripts)
	assert.Empty(t, cfg.KeepPatterns)
}

// 🧪 TestLoadYAML tests YAML parsing
func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".voltshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scripts:
  lint: eslint .
dev_dependencies:
  typescript: ^5.5.0
keep_patterns:
  - assets
entry_candidates:
  - app.tsx
`), 0644))

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, "eslint .", cfg.Scripts["lint"])
	assert.Equal(t, "^5.5.0", cfg.DevDependencies["typescript"])
	assert.Equal(t, []string{"assets"}, cfg.KeepPatterns)
	assert.Equal(t, []string{"app.tsx"}, cfg.EntryCandidates)
}

// 🧪 TestLoadYAMLRejectsUnknownFields tests strict decoding
func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".voltshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_field: true\n"), 0644))

	_, err := config.Load(testContext(t), path)
	require.Error(t, err)
}

// 🧪 TestLoadHCL tests HCL parsing
func TestLoadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".voltshift.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
scripts = {
  lint = "eslint ."
}
keep_patterns = ["assets", "*.local"]
`), 0644))

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, "eslint .", cfg.Scripts["lint"])
	assert.Equal(t, []string{"assets", "*.local"}, cfg.KeepPatterns)
}

// 🧪 TestLoadUnknownExtension tests the no-parser error
func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".voltshift.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := config.Load(testContext(t), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

// 🧪 TestValidate tests config validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: config.Config{
				Scripts:         map[string]string{"lint": "eslint ."},
				DevDependencies: map[string]string{"typescript": "^5.5.0"},
			},
		},
		{
			name:    "empty_script_command",
			cfg:     config.Config{Scripts: map[string]string{"lint": ""}},
			wantErr: true,
		},
		{
			name:    "empty_dependency_version",
			cfg:     config.Config{DevDependencies: map[string]string{"typescript": ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
