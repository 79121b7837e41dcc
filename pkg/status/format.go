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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 📊 Summary counts the outcomes of a whole run.
type Summary struct {
	Created   int
	Wrote     int
	Unchanged int
	Skipped   int
	Warnings  int
}

// Add folds one change into the summary.
func (s *Summary) Add(change Change) {
	switch change.Type {
	case FileCreated:
		s.Created++
	case FileWrote:
		s.Wrote++
	case FileUnchanged, FileSatisfied:
		s.Unchanged++
	case FileSkipped:
		s.Skipped++
	case FileWarning:
		s.Warnings++
	}
}

// Format renders the summary as a single colored line.
func (s *Summary) Format() string {
	parts := []string{
		color.New(color.FgGreen).Sprintf("%d created", s.Created),
		color.New(color.FgCyan).Sprintf("%d wrote", s.Wrote),
		fmt.Sprintf("%d unchanged", s.Unchanged),
	}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.Skipped))
	}
	if s.Warnings > 0 {
		parts = append(parts, color.New(color.FgYellow).Sprintf("%d warnings", s.Warnings))
	}
	return strings.Join(parts, ", ")
}
