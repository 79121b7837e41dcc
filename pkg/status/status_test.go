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

package status_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"

	"github.com/voltshift/voltshift/pkg/fsops"
	"github.com/voltshift/voltshift/pkg/status"
)

func testReporter(t *testing.T) *status.Reporter {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return status.NewReporter(logger.WithContext(context.Background()))
}

// 🧪 TestWriteTranslation tests write-result to change mapping
func TestWriteTranslation(t *testing.T) {
	r := testReporter(t)

	change := r.Write(fsops.WriteResult{Path: "a.txt", Outcome: fsops.OutcomeCreated})
	assert.Equal(t, status.FileCreated, change.Type)

	change = r.Write(fsops.WriteResult{Path: "a.txt", Outcome: fsops.OutcomeUnchanged})
	assert.Equal(t, status.FileUnchanged, change.Type)

	change = r.Write(fsops.WriteResult{
		Path:       "a.txt",
		Outcome:    fsops.OutcomeWrote,
		BackupPath: "a.txt.bak-voltshift",
	})
	assert.Equal(t, status.FileWrote, change.Type)
	assert.Contains(t, change.Description, "backup at")

	// A failed best-effort backup degrades to a warning, not an error.
	change = r.Write(fsops.WriteResult{
		Path:      "a.txt",
		Outcome:   fsops.OutcomeWrote,
		BackupErr: errors.New("disk full"),
	})
	assert.Equal(t, status.FileWarning, change.Type)
	assert.Contains(t, change.Description, "without backup")
}

// 🧪 TestSummary tests outcome counting and formatting
func TestSummary(t *testing.T) {
	var s status.Summary
	s.Add(status.Change{Type: status.FileCreated})
	s.Add(status.Change{Type: status.FileWrote})
	s.Add(status.Change{Type: status.FileUnchanged})
	s.Add(status.Change{Type: status.FileSatisfied})
	s.Add(status.Change{Type: status.FileWarning})

	assert.Equal(t, 1, s.Created)
	assert.Equal(t, 1, s.Wrote)
	assert.Equal(t, 2, s.Unchanged)
	assert.Equal(t, 1, s.Warnings)

	out := s.Format()
	assert.Contains(t, out, "1 created")
	assert.Contains(t, out, "2 unchanged")
	assert.Contains(t, out, "1 warnings")
}
