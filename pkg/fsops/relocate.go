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

package fsops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 RelocateOutcome classifies what Relocate did.
type RelocateOutcome int

const (
	RelocateSkipped RelocateOutcome = iota // destDir already existed, treated as already migrated
	RelocateNothing                        // every child was excluded, nothing to move
	RelocateMoved                          // children moved into destDir
)

// 📦 Migration describes a one-shot subtree relocation: every immediate
// child of SourceDir not matching a KeepPattern is moved under DestDir.
// When DestDir is nested under SourceDir its own name is implicitly kept.
type Migration struct {
	SourceDir    string   // Directory whose children move; missing is fatal
	DestDir      string   // Target directory; pre-existing means already migrated
	KeepPatterns []string // doublestar patterns matched against child names
}

// kept reports whether a child name matches any keep pattern.
func (m Migration) kept(name string) (bool, error) {
	for _, pattern := range m.KeepPatterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, errors.Errorf("matching keep pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// 🚚 Relocate moves the non-kept children of m.SourceDir into m.DestDir.
//
// Each child is moved with an atomic rename when the filesystem allows
// it; a failed rename falls back to a recursive copy followed by removal
// of the original, so the migration completes across device or
// permission boundaries at the cost of atomicity. A missing source
// directory is an error; an existing destination is a no-op.
func Relocate(ctx context.Context, m Migration) (RelocateOutcome, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(m.SourceDir); err != nil {
		if os.IsNotExist(err) {
			return RelocateSkipped, errors.Errorf("source directory %s does not exist", m.SourceDir)
		}
		return RelocateSkipped, errors.Errorf("statting source directory: %w", err)
	}

	if exists, err := Exists(m.DestDir); err != nil {
		return RelocateSkipped, err
	} else if exists {
		logger.Debug().Str("dest", m.DestDir).Msg("destination exists, relocation already done")
		return RelocateSkipped, nil
	}

	entries, err := os.ReadDir(m.SourceDir)
	if err != nil {
		return RelocateSkipped, errors.Errorf("reading source directory: %w", err)
	}

	// The destination may live inside the source; never move it into itself.
	destName := ""
	if filepath.Dir(m.DestDir) == filepath.Clean(m.SourceDir) {
		destName = filepath.Base(m.DestDir)
	}

	var moving []string
	for _, entry := range entries {
		name := entry.Name()
		if name == destName {
			continue
		}
		keep, err := m.kept(name)
		if err != nil {
			return RelocateSkipped, err
		}
		if keep {
			logger.Debug().Str("name", name).Msg("child kept in place")
			continue
		}
		moving = append(moving, name)
	}

	if len(moving) == 0 {
		return RelocateNothing, nil
	}

	if err := os.MkdirAll(m.DestDir, 0755); err != nil {
		return RelocateSkipped, errors.Errorf("creating destination directory: %w", err)
	}

	for _, name := range moving {
		src := filepath.Join(m.SourceDir, name)
		dst := filepath.Join(m.DestDir, name)

		if err := os.Rename(src, dst); err == nil {
			logger.Debug().Str("from", src).Str("to", dst).Msg("renamed")
			continue
		}

		// Cross-device or permission boundary: copy then delete.
		logger.Debug().Str("from", src).Str("to", dst).Msg("rename failed, falling back to copy+delete")

		info, err := os.Stat(src)
		if err != nil {
			return RelocateSkipped, errors.Errorf("statting %s: %w", src, err)
		}
		if info.IsDir() {
			if err := copyDir(src, dst); err != nil {
				return RelocateSkipped, errors.Errorf("copying %s: %w", src, err)
			}
		} else {
			if err := copyFile(src, dst); err != nil {
				return RelocateSkipped, errors.Errorf("copying %s: %w", src, err)
			}
		}
		if err := os.RemoveAll(src); err != nil {
			return RelocateSkipped, errors.Errorf("removing original %s: %w", src, err)
		}
	}

	return RelocateMoved, nil
}
