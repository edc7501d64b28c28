package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/photorc/cmd/photorc/commands"
	"github.com/walteh/photorc/cmd/photorc/opts"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	// Root options are filled in after flag parsing
	o := &opts.RootOpts{}

	// Create root command. Running it bare is the same as "rename": the
	// tool is single-purpose, so "photorc [execute]" works without a
	// subcommand.
	rootCmd := &cobra.Command{
		Use:   "photorc [execute]",
		Short: "Normalize timestamp-named photo files in a directory",
		Long: `photorc renames photo files like 2022-01-14-14-33-00_photo_12.683_MB.jpg
to 20220114_143300_photo.jpg, numbering photos taken in the same second
_1, _2, ... in lexicographic order of their original names.

It previews by default and only renames when told to execute.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			built, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*o = *built
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			apply, err := commands.ParseModeArg(args)
			if err != nil {
				return err
			}
			return commands.Run(cmd.Context(), o, apply)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRenameCmd(o),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
