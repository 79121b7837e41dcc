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

// Package patch locates and rewrites a single anchor fragment inside a
// text document. The anchor is one structurally distinguished piece of
// text (the module script tag in index.html); everything around it is
// the user's and stays untouched.
package patch

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/voltshift/voltshift/pkg/fsops"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome classifies what Apply did to the document.
type Outcome int

const (
	Created   Outcome = iota // Document did not exist, created from the fallback template
	Replaced                 // First pattern match rewritten to the desired fragment
	Inserted                 // No match; fragment inserted before the closing marker
	Satisfied                // Desired fragment already present, nothing written
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Replaced:
		return "replaced"
	case Inserted:
		return "inserted"
	case Satisfied:
		return "already satisfied"
	default:
		return "unknown"
	}
}

// ⚓ Anchor describes the fragment the patcher drives a document toward.
type Anchor struct {
	Pattern      *regexp.Regexp // Matches the existing fragment to replace; first match wins
	Fragment     string         // Desired fragment text
	InsertBefore string         // Closing marker the fragment is inserted before when no match exists
	Fallback     []byte         // Full document template used when the document is missing
}

// 📄 Result reports the patch outcome together with the underlying
// write, so callers can see backups and degraded paths.
type Result struct {
	Outcome Outcome
	Write   fsops.WriteResult
}

// 🩹 Apply patches the document at path toward the anchor's fragment.
//
// A missing document is created whole from the fallback. Otherwise the
// first pattern match is replaced; with no match, a verbatim copy of the
// fragment anywhere in the document counts as already satisfied, and
// failing that the fragment is inserted before the closing marker.
// Modified documents persist through the guarded writer with force set;
// a read-back-equal document still short-circuits to Satisfied here, so
// re-running is byte-stable.
func Apply(ctx context.Context, path string, a Anchor) (Result, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Result{}, errors.Errorf("reading document %s: %w", path, err)
		}
		res, err := fsops.Write(ctx, path, a.Fallback, false)
		if err != nil {
			return Result{}, err
		}
		return Result{Outcome: Created, Write: res}, nil
	}

	content := string(data)
	var patched string
	var outcome Outcome

	if loc := a.Pattern.FindStringIndex(content); loc != nil {
		if matches := a.Pattern.FindAllStringIndex(content, -1); len(matches) > 1 {
			logger.Warn().
				Str("path", path).
				Int("matches", len(matches)).
				Msg("multiple anchor matches, rewriting the first only")
		}
		patched = content[:loc[0]] + a.Fragment + content[loc[1]:]
		outcome = Replaced
	} else if strings.Contains(content, a.Fragment) {
		// A differently-placed but verbatim fragment already satisfies us.
		return Result{Outcome: Satisfied, Write: fsops.WriteResult{Path: path, Outcome: fsops.OutcomeUnchanged}}, nil
	} else if idx := strings.Index(content, a.InsertBefore); idx >= 0 {
		patched = content[:idx] + "  " + a.Fragment + "\n" + content[idx:]
		outcome = Inserted
	} else {
		logger.Warn().
			Str("path", path).
			Str("marker", a.InsertBefore).
			Msg("no anchor match and no closing marker, appending fragment")
		patched = content + a.Fragment + "\n"
		outcome = Inserted
	}

	if patched == content {
		return Result{Outcome: Satisfied, Write: fsops.WriteResult{Path: path, Outcome: fsops.OutcomeUnchanged}}, nil
	}

	res, err := fsops.Write(ctx, path, []byte(patched), true)
	if err != nil {
		return Result{}, err
	}
	return Result{Outcome: outcome, Write: res}, nil
}
