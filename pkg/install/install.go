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

// Package install runs the project's package manager after a migration.
// It is an external collaborator: it is only ever invoked once every
// file mutation has succeeded.
package install

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Detect picks the package manager from the lock file present at
// root: pnpm-lock.yaml wins over yarn.lock, npm is the fallback.
func Detect(root string) string {
	if _, err := os.Stat(filepath.Join(root, "pnpm-lock.yaml")); err == nil {
		return "pnpm"
	}
	if _, err := os.Stat(filepath.Join(root, "yarn.lock")); err == nil {
		return "yarn"
	}
	return "npm"
}

// 📥 Run executes `<pm> install` in root, streaming output to the
// current process.
func Run(ctx context.Context, root string) error {
	pm := Detect(root)
	zerolog.Ctx(ctx).Info().Str("package_manager", pm).Msg("installing dependencies")

	cmd := exec.CommandContext(ctx, pm, "install")
	cmd.Dir = root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Errorf("running %s install: %w", pm, err)
	}
	return nil
}
