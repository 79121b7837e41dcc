package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/voltshift/voltshift/pkg/fsops"
	"github.com/voltshift/voltshift/pkg/manifest"
	"github.com/voltshift/voltshift/pkg/scaffold"
	"github.com/voltshift/voltshift/pkg/status"
)

// Doctor reports what a run would do without touching disk. The same
// preflight conditions are fatal; everything else is a per-artifact
// one-liner.
func (m *Migrator) Doctor(ctx context.Context) error {
	if err := m.preflight(ctx); err != nil {
		return err
	}

	m.reporter.Stage("inspecting project")

	// Relocation state. An interrupted previous run leaves the
	// destination in place; recovery is deleting it and re-running.
	destExists, err := fsops.Exists(m.path(SourceDir, UIDir))
	if err != nil {
		return err
	}
	if destExists {
		m.reporter.Report(status.Change{
			Type:        status.FileSatisfied,
			Path:        m.path(SourceDir, UIDir),
			Description: "source tree already relocated",
		})
	} else {
		m.reporter.Report(status.Change{
			Type:        status.FileSkipped,
			Path:        m.path(SourceDir, UIDir),
			Description: "source tree would be relocated here",
		})
	}

	// Generated artifacts.
	artifacts := []struct {
		path    string
		content []byte
	}{
		{m.path(ElectronDir, "main.js"), []byte(scaffold.ElectronMain)},
		{m.path(ElectronDir, "preload.js"), []byte(scaffold.ElectronPreload)},
		{m.path("vite.config.mjs"), []byte(scaffold.ViteConfig)},
		{m.path("electron-builder.yml"), []byte(scaffold.ElectronBuilderConfig)},
	}
	for _, a := range artifacts {
		exists, err := fsops.Exists(a.path)
		if err != nil {
			return err
		}
		if !exists {
			m.reporter.Report(status.Change{Type: status.FileSkipped, Path: a.path, Description: "would be created"})
			continue
		}
		same, err := fsops.SameContent(a.path, a.content)
		if err != nil {
			return err
		}
		if same {
			m.reporter.Report(status.Change{Type: status.FileUnchanged, Path: a.path})
		} else {
			m.reporter.Report(status.Change{Type: status.FileWarning, Path: a.path, Description: "differs, would be backed up and overwritten"})
		}
	}

	// Index anchor.
	entry := m.entryPath()
	indexData, err := os.ReadFile(m.path(IndexFile))
	switch {
	case os.IsNotExist(err):
		m.reporter.Report(status.Change{Type: status.FileSkipped, Path: m.path(IndexFile), Description: "would be created from template"})
	case err != nil:
		return err
	default:
		content := string(indexData)
		tag := scaffold.EntryScriptTag(entry)
		switch {
		case scaffold.ModuleScriptPattern.MatchString(content):
			if scaffold.ModuleScriptPattern.FindString(content) == tag {
				m.reporter.Report(status.Change{Type: status.FileSatisfied, Path: m.path(IndexFile)})
			} else {
				m.reporter.Report(status.Change{Type: status.FileWarning, Path: m.path(IndexFile), Description: "module script tag would be rewritten"})
			}
		default:
			m.reporter.Report(status.Change{Type: status.FileSkipped, Path: m.path(IndexFile), Description: "script tag would be inserted"})
		}
	}

	// Placeholder assets.
	for _, name := range []string{"icon.png", "logo.png"} {
		exists, err := fsops.Exists(m.path(PublicDir, name))
		if err != nil {
			return err
		}
		if exists {
			m.reporter.Report(status.Change{Type: status.FileUnchanged, Path: m.path(PublicDir, name)})
		} else {
			m.reporter.Report(status.Change{Type: status.FileSkipped, Path: m.path(PublicDir, name), Description: "would be created"})
		}
	}

	// Manifest merge, in memory only.
	doc, err := manifest.Load(ctx, m.path(Manifest))
	if err != nil {
		return err
	}
	report, err := manifest.Merge(ctx, doc, m.desired())
	if err != nil {
		return err
	}
	for _, name := range report.ScriptsAdded {
		m.reporter.Report(status.Change{Type: status.FileSkipped, Path: Manifest, Description: fmt.Sprintf("script %q would be added", name)})
	}
	for _, d := range report.ScriptsDemoted {
		m.reporter.Report(status.Change{Type: status.FileWarning, Path: Manifest, Description: fmt.Sprintf("script %q would be demoted to %q", d.Name, manifest.DemotedPrefix+d.Name)})
	}
	for _, name := range report.DepsAdded {
		m.reporter.Report(status.Change{Type: status.FileSkipped, Path: Manifest, Description: fmt.Sprintf("devDependency %q would be added", name)})
	}
	for _, name := range report.DepsKept {
		m.reporter.Report(status.Change{Type: status.FileUnchanged, Path: Manifest, Description: fmt.Sprintf("dependency %q kept as declared", name)})
	}
	if report.TypeOverridden != "" {
		m.reporter.Report(status.Change{Type: status.FileWarning, Path: Manifest, Description: fmt.Sprintf("type %q would be overridden with %q", report.TypeOverridden, scaffold.ManifestType)})
	}

	m.reporter.Done("doctor finished, nothing was modified")
	return nil
}
