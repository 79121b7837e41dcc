// Package migrate sequences the transformation as an ordered pipeline
// of named stages. Each stage works only through the guarded filesystem
// primitives; a failed stage halts the pipeline and nothing after it
// runs. There is no rollback: backups left on disk are the recovery
// path.
package migrate

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/voltshift/voltshift/pkg/config"
	"github.com/voltshift/voltshift/pkg/fsops"
	"github.com/voltshift/voltshift/pkg/install"
	"github.com/voltshift/voltshift/pkg/manifest"
	"github.com/voltshift/voltshift/pkg/patch"
	"github.com/voltshift/voltshift/pkg/scaffold"
	"github.com/voltshift/voltshift/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Well-known project layout. The source directory is the project root
// marker: without it there is nothing to migrate.
const (
	SourceDir   = "src"
	UIDir       = "ui"
	ElectronDir = "electron"
	PublicDir   = "public"
	IndexFile   = "index.html"
	Manifest    = "package.json"
)

// Config is the explicit run configuration, constructed once by the CLI
// and threaded by value into every stage. No stage reads ambient
// process state.
type Config struct {
	RootDirectory  string
	ForceOverwrite bool
	AutoInstall    bool
}

// Options wires a Migrator together.
type Options struct {
	Config   Config
	Tool     *config.Config   // optional project-side tuning, nil means defaults
	Reporter *status.Reporter // per-artifact console reporting
}

// Migrator runs the pipeline.
type Migrator struct {
	cfg      Config
	tool     *config.Config
	reporter *status.Reporter
	summary  status.Summary
}

// New creates a new migrator with the given options.
func New(opts Options) (*Migrator, error) {
	if opts.Config.RootDirectory == "" {
		return nil, errors.New("root directory is required")
	}
	if opts.Reporter == nil {
		return nil, errors.New("reporter is required")
	}
	tool := opts.Tool
	if tool == nil {
		tool = &config.Config{}
	}
	return &Migrator{
		cfg:      opts.Config,
		tool:     tool,
		reporter: opts.Reporter,
	}, nil
}

func (m *Migrator) path(parts ...string) string {
	return filepath.Join(append([]string{m.cfg.RootDirectory}, parts...)...)
}

// stage is one named pipeline step.
type stage struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes the full pipeline in order, stopping at the first fatal
// stage. Dependency installation only ever happens after every file
// mutation succeeded.
func (m *Migrator) Run(ctx context.Context) error {
	stages := []stage{
		{"checking project", m.preflight},
		{"backing up manifest", m.backupManifest},
		{"relocating source tree", m.relocateSource},
		{"generating electron entries", m.generateEntries},
		{"generating config documents", m.generateConfigs},
		{"patching index.html", m.patchIndex},
		{"creating placeholder assets", m.placeholderAssets},
		{"merging manifest", m.mergeManifest},
	}
	if m.cfg.AutoInstall {
		stages = append(stages, stage{"installing dependencies", m.installDeps})
	}

	for _, s := range stages {
		m.reporter.Stage(s.name)
		if err := s.run(ctx); err != nil {
			return errors.Errorf("%s: %w", s.name, err)
		}
	}

	m.reporter.Done("migration complete: " + m.summary.Format())
	return nil
}

// track folds a write result into the run summary after reporting it.
func (m *Migrator) track(res fsops.WriteResult) {
	m.summary.Add(m.reporter.Write(res))
}

func (m *Migrator) preflight(ctx context.Context) error {
	srcExists, err := fsops.Exists(m.path(SourceDir))
	if err != nil {
		return err
	}
	if !srcExists {
		return errors.Errorf("source directory %s does not exist", m.path(SourceDir))
	}

	manifestExists, err := fsops.Exists(m.path(Manifest))
	if err != nil {
		return err
	}
	if !manifestExists {
		return errors.Errorf("manifest %s does not exist", m.path(Manifest))
	}

	return nil
}

// backupManifest takes the unconditional pre-transformation copy of
// package.json. Unlike artifact backups this one is not best-effort:
// the manifest is the one file whose loss is unacceptable.
func (m *Migrator) backupManifest(ctx context.Context) error {
	backupPath, err := fsops.Backup(ctx, m.path(Manifest))
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("backup", backupPath).Msg("manifest backed up")
	return nil
}

func (m *Migrator) relocateSource(ctx context.Context) error {
	keep := append([]string{ElectronDir}, m.tool.KeepPatterns...)
	outcome, err := fsops.Relocate(ctx, fsops.Migration{
		SourceDir:    m.path(SourceDir),
		DestDir:      m.path(SourceDir, UIDir),
		KeepPatterns: keep,
	})
	if err != nil {
		return err
	}

	switch outcome {
	case fsops.RelocateSkipped:
		m.reporter.Report(status.Change{
			Type:        status.FileSkipped,
			Path:        m.path(SourceDir, UIDir),
			Description: "already migrated",
		})
	case fsops.RelocateNothing:
		m.reporter.Report(status.Change{
			Type:        status.FileSkipped,
			Path:        m.path(SourceDir),
			Description: "nothing to relocate",
		})
	case fsops.RelocateMoved:
		m.reporter.Report(status.Change{
			Type: status.FileCreated,
			Path: m.path(SourceDir, UIDir),
		})
	}
	return nil
}

func (m *Migrator) generateEntries(ctx context.Context) error {
	artifacts := []struct {
		path    string
		content []byte
	}{
		{m.path(ElectronDir, "main.js"), []byte(scaffold.ElectronMain)},
		{m.path(ElectronDir, "preload.js"), []byte(scaffold.ElectronPreload)},
	}

	for _, a := range artifacts {
		res, err := fsops.Write(ctx, a.path, a.content, m.cfg.ForceOverwrite)
		if err != nil {
			return err
		}
		m.track(res)
	}
	return nil
}

func (m *Migrator) generateConfigs(ctx context.Context) error {
	artifacts := []struct {
		path    string
		content []byte
	}{
		{m.path("vite.config.mjs"), []byte(scaffold.ViteConfig)},
		{m.path("electron-builder.yml"), []byte(scaffold.ElectronBuilderConfig)},
	}

	for _, a := range artifacts {
		res, err := fsops.Write(ctx, a.path, a.content, m.cfg.ForceOverwrite)
		if err != nil {
			return err
		}
		m.track(res)
	}
	return nil
}

// entryPath returns the absolute URL path of the UI entry module,
// resolved against the relocated tree.
func (m *Migrator) entryPath() string {
	candidates := scaffold.EntryCandidates
	if len(m.tool.EntryCandidates) > 0 {
		candidates = m.tool.EntryCandidates
	}
	entry := patch.LocateEntry(m.path(SourceDir, UIDir), candidates, scaffold.DefaultEntry)
	return "/" + SourceDir + "/" + UIDir + "/" + entry
}

func (m *Migrator) patchIndex(ctx context.Context) error {
	entry := m.entryPath()
	res, err := patch.Apply(ctx, m.path(IndexFile), patch.Anchor{
		Pattern:      scaffold.ModuleScriptPattern,
		Fragment:     scaffold.EntryScriptTag(entry),
		InsertBefore: scaffold.BodyCloseMarker,
		Fallback:     scaffold.IndexHTML(entry),
	})
	if err != nil {
		return err
	}

	if res.Outcome == patch.Satisfied {
		change := status.Change{Type: status.FileSatisfied, Path: m.path(IndexFile)}
		m.reporter.Report(change)
		m.summary.Add(change)
		return nil
	}
	m.track(res.Write)
	return nil
}

func (m *Migrator) placeholderAssets(ctx context.Context) error {
	for _, name := range []string{"icon.png", "logo.png"} {
		res, err := fsops.WriteIfAbsent(ctx, m.path(PublicDir, name), scaffold.PlaceholderPNG)
		if err != nil {
			return err
		}
		m.track(res)
	}
	return nil
}

// desired assembles the built-in desired state overlaid with the tool
// config. Overlay keys are applied in sorted order so runs are
// deterministic.
func (m *Migrator) desired() manifest.Desired {
	scripts := scaffold.Scripts()
	for _, name := range sortedKeys(m.tool.Scripts) {
		scripts.Set(name, m.tool.Scripts[name])
	}

	deps := scaffold.DevDependencies()
	for _, name := range sortedKeys(m.tool.DevDependencies) {
		deps.Set(name, m.tool.DevDependencies[name])
	}

	return manifest.Desired{
		Scripts:         scripts,
		DevDependencies: deps,
		Type:            scaffold.ManifestType,
		Main:            scaffold.ManifestMain,
	}
}

func (m *Migrator) mergeManifest(ctx context.Context) error {
	doc, err := manifest.Load(ctx, m.path(Manifest))
	if err != nil {
		return err
	}

	report, err := manifest.Merge(ctx, doc, m.desired())
	if err != nil {
		return err
	}

	for _, d := range report.ScriptsDemoted {
		m.reporter.Warn(fmt.Sprintf("script %q differs, kept old value at %q", d.Name, manifest.DemotedPrefix+d.Name))
		m.summary.Warnings++
	}
	if report.TypeOverridden != "" {
		m.reporter.Warn(fmt.Sprintf("manifest type %q overridden with %q", report.TypeOverridden, scaffold.ManifestType))
		m.summary.Warnings++
	}
	for _, key := range report.DemotedConflict {
		m.reporter.Warn(fmt.Sprintf("demoted key %q already holds a different value, left untouched", key))
		m.summary.Warnings++
	}

	res, err := manifest.Save(ctx, doc, m.path(Manifest))
	if err != nil {
		return err
	}
	m.track(res)
	return nil
}

func (m *Migrator) installDeps(ctx context.Context) error {
	return install.Run(ctx, m.cfg.RootDirectory)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
