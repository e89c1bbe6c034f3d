package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/warehouse-apps/router-launcher/internal/config"
	"github.com/warehouse-apps/router-launcher/internal/launcher"
	"github.com/warehouse-apps/router-launcher/internal/model"
)

// startCommandName is the only first argument that launches the router.
const startCommandName = "start"

// NewStartCommand creates the "start" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStartCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   startCommandName + " [<optional_parameters>]",
		Short: "Start the router, appending parameters to its fixed flags",
		Long: `Start the router with "-l info -c <config>" followed by any parameters.

Output of the whole invocation goes to the daemon log unless --pdb is
one of the first three parameters. The launcher exits with the router's
exit code.`,

		// Everything after "start" belongs to the router, so cobra must
		// neither validate the count nor parse -h/--help out of it.
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd.Context(), cmd, o, args)
		},
	}

	return cmd
}

// runStart resolves the configuration, launches the router and turns a
// non-zero router exit into a silent CLIError carrying that code.
func runStart(ctx context.Context, cmd *cobra.Command, o *options, args []string) error {
	// Configuration problems are warnings. They are handed to the
	// launcher so they land in the daemon log, not on the terminal.
	cfg, warnings := config.Resolve(AppName)

	// The command's streams are the inherited ones; tests swap them via
	// SetOut/SetErr/SetIn. Caller options are applied last so they win.
	opts := []launcher.Option{
		launcher.WithWarnings(warnings),
		launcher.WithVersion(Version + " (" + Commit + ", " + Date + ")"),
		launcher.WithStreams(launcher.Streams{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}),
	}
	opts = append(opts, o.launcherOptions...)

	code, err := launcher.New(cfg, opts...).Start(ctx, args)
	if err != nil {
		// Only output setup failures get here; Run prints them.
		return err
	}

	// A failing router is not a launcher error: propagate its code
	// without printing anything.
	if code != int(model.ExitSuccess) {
		return model.ExitStatus(code, nil)
	}
	return nil
}
