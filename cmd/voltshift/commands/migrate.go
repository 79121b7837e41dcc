package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/voltshift/voltshift/cmd/voltshift/opts"
	"github.com/voltshift/voltshift/pkg/config"
	"github.com/voltshift/voltshift/pkg/migrate"
	"github.com/voltshift/voltshift/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// newMigrator builds a migrator from the shared flags.
func newMigrator(cmd *cobra.Command, o *opts.RootOpts) (*migrate.Migrator, error) {
	ctx := cmd.Context()

	root, err := filepath.Abs(o.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root directory: %w", err)
	}

	// The config file is looked up inside the project root unless an
	// explicit path was given.
	configPath := o.ConfigFile
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(root, configPath)
	}

	tool, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	return migrate.New(migrate.Options{
		Config: migrate.Config{
			RootDirectory:  root,
			ForceOverwrite: o.Force,
			AutoInstall:    o.Install,
		},
		Tool:     tool,
		Reporter: status.NewReporter(ctx),
	})
}

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run the migration",
		Long: `Migrate transforms the project in place. It will:
1. Back up package.json
2. Relocate src/ into src/ui/ (keeping electron/)
3. Generate the electron entries and root config documents
4. Point index.html at the relocated UI entry
5. Merge scripts and dependencies into package.json
Re-running against an already migrated project changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(cmd, o)
			if err != nil {
				return err
			}
			if err := m.Run(cmd.Context()); err != nil {
				return errors.Errorf("migrating project: %w", err)
			}
			return nil
		},
	}
}
