package commands

import (
	"github.com/spf13/cobra"
	"github.com/voltshift/voltshift/cmd/voltshift/opts"
	"gitlab.com/tozd/go/errors"
)

// NewDoctorCmd creates a new doctor command
func NewDoctorCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report what a migration would do without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(cmd, o)
			if err != nil {
				return err
			}
			if err := m.Doctor(cmd.Context()); err != nil {
				return errors.Errorf("inspecting project: %w", err)
			}
			return nil
		},
	}
}
