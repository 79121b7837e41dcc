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

package manifest

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ DemotedPrefix prefixes the key under which a conflicting
// pre-existing script value survives a merge.
const DemotedPrefix = "_backup_"

// 🔀 Demotion records one script conflict resolution: the desired value
// won at Name, the original survives at DemotedPrefix+Name.
type Demotion struct {
	Name     string // Original script name
	Original string // Value moved to the demoted key
	Desired  string // Value now at the original key
}

// 📊 MergeReport records everything a merge changed, for reporting and
// for tests; the merge itself never prints.
type MergeReport struct {
	ScriptsAdded    []string   // Scripts inserted fresh
	ScriptsKept     []string   // Scripts already at the desired value
	ScriptsDemoted  []Demotion // Scripts whose old value was demoted
	DepsAdded       []string   // Dependencies inserted into devDependencies
	DepsKept        []string   // Dependencies left at their existing declaration
	TypeOverridden  string     // Previous "type" value when it differed, "" otherwise
	MainAlreadySet  bool       // "main" existed and was left alone
	DemotedConflict []string   // Demoted keys that already existed and were not overwritten
}

// Changed reports whether the merge mutated the document at all.
func (r *MergeReport) Changed() bool {
	return len(r.ScriptsAdded) > 0 || len(r.ScriptsDemoted) > 0 || len(r.DepsAdded) > 0
}

// 🎯 Desired is what the merge drives the manifest toward.
type Desired struct {
	Scripts         *Map   // name -> command, overwrite-with-backup semantics
	DevDependencies *Map   // name -> version range, keep-existing semantics
	Type            string // top-level module-mode marker, forced
	Main            string // top-level entry point, set only if absent
}

// 🔀 Merge merges desired scripts and dependencies into doc.
//
// Scripts converge on the desired value: a differing pre-existing
// command is first copied to its demoted key (never clobbering an
// existing demoted key) and then replaced. Dependencies are the
// integrator's prerogative: a name already declared in either
// dependencies or devDependencies blocks insertion, whichever map it
// lives in. The merge never deletes a key.
func Merge(ctx context.Context, doc *Document, desired Desired) (*MergeReport, error) {
	logger := zerolog.Ctx(ctx)
	report := &MergeReport{}

	scripts, err := doc.Map("scripts")
	if err != nil {
		return nil, err
	}

	if desired.Scripts != nil {
		for _, name := range desired.Scripts.Keys() {
			command, _ := desired.Scripts.Get(name)
			existing, ok := scripts.Get(name)
			switch {
			case !ok:
				scripts.Set(name, command)
				report.ScriptsAdded = append(report.ScriptsAdded, name)
			case existing == command:
				report.ScriptsKept = append(report.ScriptsKept, name)
			default:
				demoted := DemotedPrefix + name
				if prior, exists := scripts.Get(demoted); exists {
					// A previous run already preserved a value there; never
					// overwrite a backup.
					if prior != existing {
						report.DemotedConflict = append(report.DemotedConflict, demoted)
					}
				} else {
					scripts.Set(demoted, existing)
				}
				scripts.Set(name, command)
				report.ScriptsDemoted = append(report.ScriptsDemoted, Demotion{
					Name:     name,
					Original: existing,
					Desired:  command,
				})
				logger.Warn().
					Str("script", name).
					Str("demoted_to", demoted).
					Msg("existing script differs, preserved under demoted key")
			}
		}
	}

	if err := doc.SetMap("scripts", scripts); err != nil {
		return nil, errors.Errorf("setting scripts: %w", err)
	}

	deps, err := doc.Map("dependencies")
	if err != nil {
		return nil, err
	}
	devDeps, err := doc.Map("devDependencies")
	if err != nil {
		return nil, err
	}

	if desired.DevDependencies != nil {
		for _, name := range desired.DevDependencies.Keys() {
			version, _ := desired.DevDependencies.Get(name)
			// Keep-existing wins across both maps: a declaration anywhere
			// blocks insertion, even though we only ever write devDependencies.
			if deps.Has(name) || devDeps.Has(name) {
				report.DepsKept = append(report.DepsKept, name)
				continue
			}
			devDeps.Set(name, version)
			report.DepsAdded = append(report.DepsAdded, name)
		}
	}

	if err := doc.SetMap("devDependencies", devDeps); err != nil {
		return nil, errors.Errorf("setting devDependencies: %w", err)
	}

	if desired.Type != "" {
		if existing, ok := doc.String("type"); ok && existing != desired.Type {
			report.TypeOverridden = existing
			logger.Warn().
				Str("was", existing).
				Str("now", desired.Type).
				Msg("overriding manifest type")
		}
		doc.SetString("type", desired.Type)
	}

	if desired.Main != "" {
		if doc.Has("main") {
			report.MainAlreadySet = true
		} else {
			doc.SetString("main", desired.Main)
		}
	}

	return report, nil
}
