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
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/voltshift/voltshift/pkg/fsops"
)

func init() {
	// Unchanged/skipped artifacts report through debug-level printers and
	// still get their one line.
	pterm.EnableDebugMessages()
}

// 🎨 ChangeType represents what happened to an artifact
type ChangeType int

const (
	FileCreated ChangeType = iota
	FileWrote
	FileUnchanged
	FileSatisfied
	FileSkipped
	FileWarning
	FileError
)

// 🖼️ Change represents one reported artifact outcome
type Change struct {
	Type        ChangeType
	Path        string
	Description string
	Error       error
}

// 📢 Reporter provides user-friendly per-artifact feedback, mirrored
// into zerolog for debugging.
type Reporter struct {
	log zerolog.Logger
}

// 🎯 NewReporter creates a new reporter
func NewReporter(ctx context.Context) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 Report logs one artifact change with appropriate prefix and color
func (r *Reporter) Report(change Change) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileCreated:
		action = "created"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case FileWrote:
		action = "wrote"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "🔄"})
	case FileUnchanged:
		action = "unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "👍"})
	case FileSatisfied:
		action = "already satisfied"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "👍"})
	case FileSkipped:
		action = "skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FileWarning:
		action = "warning"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"})
	case FileError:
		action = "error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		r.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		r.log.Info().Msg(msg)
	}
}

// 📊 Stage logs the start of a pipeline stage
func (r *Reporter) Stage(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	r.log.Info().Msg(description)
}

// ⚠️ Warn logs a non-fatal condition
func (r *Reporter) Warn(description string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
	r.log.Warn().Msg(description)
}

// ✅ Done logs migration completion
func (r *Reporter) Done(description string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
	r.log.Info().Msg(description)
}

// 📄 Write translates a guarded write result into a reported change and
// returns it so callers can fold it into a summary.
func (r *Reporter) Write(res fsops.WriteResult) Change {
	change := Change{Path: res.Path}

	switch res.Outcome {
	case fsops.OutcomeCreated:
		change.Type = FileCreated
	case fsops.OutcomeWrote:
		change.Type = FileWrote
		if res.BackupPath != "" {
			change.Description = fmt.Sprintf("backup at %s", res.BackupPath)
		}
	default:
		change.Type = FileUnchanged
	}

	if res.BackupErr != nil {
		change.Type = FileWarning
		change.Description = fmt.Sprintf("wrote without backup: %v", res.BackupErr)
	}

	r.Report(change)
	return change
}
