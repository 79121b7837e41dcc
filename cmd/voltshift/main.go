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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/voltshift/voltshift/cmd/voltshift/commands"
	"github.com/voltshift/voltshift/cmd/voltshift/opts"
)

var rootOpts opts.RootOpts

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&rootOpts.Root, "root", "r", ".", "project root directory")
	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", ".voltshift.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Force, "force", "f", false, "overwrite generated artifacts even when unchanged")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Install, "install", "i", false, "install dependencies after migrating")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if rootOpts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

func main() {
	root := &cobra.Command{
		Use:   "voltshift",
		Short: "Migrate a web project to a Vite + Electron layout",
		Long: `voltshift converts an existing web project into a Vite + Electron
layout in one idempotent pass. Nothing pre-existing is lost: files are
backed up before any overwrite and conflicting manifest values survive
under demoted keys.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addRootFlags(root)
	root.AddCommand(commands.NewMigrateCmd(&rootOpts))
	root.AddCommand(commands.NewDoctorCmd(&rootOpts))
	root.AddCommand(commands.NewVersionCmd())

	// Bare invocation migrates, mirroring the original one-shot script.
	root.RunE = commands.NewMigrateCmd(&rootOpts).RunE

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := log.WithContext(context.Background())

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
