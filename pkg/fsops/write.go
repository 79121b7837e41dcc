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
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ BackupSuffix is appended to a file's path when the writer backs it
// up before an overwrite. Single generation: a re-run replaces it.
const BackupSuffix = ".bak-voltshift"

// 📊 WriteOutcome classifies what the guarded writer did to a path.
type WriteOutcome int

const (
	OutcomeUnchanged WriteOutcome = iota // File existed with identical content, nothing written
	OutcomeCreated                       // File did not exist, written fresh
	OutcomeWrote                         // File existed, backed up and overwritten
)

// String returns a string representation of WriteOutcome
func (o WriteOutcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeCreated:
		return "created"
	case OutcomeWrote:
		return "wrote"
	default:
		return "unknown"
	}
}

// 📄 WriteResult reports what a guarded write did, including the
// degraded backup path so callers and tests can observe it instead of
// relying on log output.
type WriteResult struct {
	Path        string       // Path that was written (or left alone)
	Outcome     WriteOutcome // What happened
	BackupPath  string       // Set when a backup was created
	BackupErr   error        // Set when a backup was attempted and failed (write still proceeded)
	DiffRegions int          // Number of differing regions between old and new content, 0 unless overwritten
}

// Exists reports whether path exists on disk.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// 🔍 SameContent reports whether path exists and holds exactly content.
func SameContent(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("reading file: %w", err)
	}
	return bytes.Equal(existing, content), nil
}

// 💾 Backup copies path to path+BackupSuffix. A missing original is not
// an error; the caller decided an overwrite is coming and only needs the
// current content preserved if there is any.
func Backup(ctx context.Context, path string) (string, error) {
	backupPath := path + BackupSuffix

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(path, backupPath); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("backup", backupPath).Msg("backed up file")
	return backupPath, nil
}

// ✍️ Write is the guarded write every artifact goes through.
//
// A missing file is created (parent directories included). An existing
// file with identical content is left alone unless force is set. An
// existing file with different content is backed up best-effort and then
// overwritten; a failed backup degrades the result (BackupErr) but never
// blocks the write. Forced writes skip the identity short-circuit
// entirely so the caller always gets a fresh backup before mutation.
func Write(ctx context.Context, path string, content []byte, force bool) (WriteResult, error) {
	logger := zerolog.Ctx(ctx)
	res := WriteResult{Path: path}

	if path == "" {
		return res, errors.New("path is required")
	}

	exists, err := Exists(path)
	if err != nil {
		return res, err
	}

	if !exists {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return res, errors.Errorf("creating directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return res, errors.Errorf("writing file %s: %w", path, err)
		}
		res.Outcome = OutcomeCreated
		return res, nil
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return res, errors.Errorf("reading file %s: %w", path, err)
	}

	if !force && bytes.Equal(existing, content) {
		res.Outcome = OutcomeUnchanged
		return res, nil
	}

	// Count how far apart old and new are before destroying anything.
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(string(existing), string(content), false) {
		if d.Type != diffmatchpatch.DiffEqual {
			res.DiffRegions++
		}
	}

	backupPath, err := Backup(ctx, path)
	if err != nil {
		// Best effort: the overwrite must still proceed.
		logger.Warn().Err(err).Str("path", path).Msg("backup failed, overwriting anyway")
		res.BackupErr = err
	} else {
		res.BackupPath = backupPath
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return res, errors.Errorf("writing file %s: %w", path, err)
	}

	logger.Debug().
		Str("path", path).
		Int("diff_regions", res.DiffRegions).
		Bool("forced", force).
		Msg("overwrote file")

	res.Outcome = OutcomeWrote
	return res, nil
}

// WriteIfAbsent writes content to path only when nothing exists there.
// Used for placeholder assets that must never clobber user files, even
// under force.
func WriteIfAbsent(ctx context.Context, path string, content []byte) (WriteResult, error) {
	exists, err := Exists(path)
	if err != nil {
		return WriteResult{Path: path}, err
	}
	if exists {
		return WriteResult{Path: path, Outcome: OutcomeUnchanged}, nil
	}
	return Write(ctx, path, content, false)
}
