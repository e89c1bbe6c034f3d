// Package cli implements the cobra-based dispatch for the router launcher.
//
// The launcher recognizes a single subcommand, "start". Every other first
// argument, including none at all, prints the usage line and exits 1.
// Cobra's default help and completion commands are disabled and flag
// parsing is turned off so that nothing but "start" is ever recognized
// and every token after it reaches the router untouched.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/warehouse-apps/router-launcher/internal/config"
	"github.com/warehouse-apps/router-launcher/internal/launcher"
	"github.com/warehouse-apps/router-launcher/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package and logged when the router starts.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"

	// AppName selects the compiled deployment profile. It is injected from
	// the main package, which receives it through ldflags.
	AppName = config.DefaultAppName
)

// options holds what NewRootCommand wires into the start command.
type options struct {
	programName     string
	launcherOptions []launcher.Option
}

// Option customizes the root command.
type Option func(*options)

// WithProgramName sets the name shown in the usage line.
func WithProgramName(name string) Option {
	return func(o *options) { o.programName = name }
}

// WithLauncherOptions appends options applied to every Launcher the start
// command builds.
func WithLauncherOptions(opts ...launcher.Option) Option {
	return func(o *options) { o.launcherOptions = append(o.launcherOptions, opts...) }
}

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself only reports usage. Its single subcommand,
// start, launches the router.
func NewRootCommand(opts ...Option) *cobra.Command {
	o := &options{
		programName: filepath.Base(os.Args[0]),
	}
	for _, opt := range opts {
		opt(o)
	}

	// Both the root and the replacement help command answer with the
	// usage line; neither ever starts the router.
	usage := func(cmd *cobra.Command, args []string) error {
		return usageError(cmd.OutOrStdout(), o.programName)
	}

	rootCmd := &cobra.Command{
		// Use is also the program name printed in the usage line.
		Use:   o.programName,
		Short: "Start the " + AppName + " router",

		// Any first argument reaches RunE instead of cobra's
		// "unknown command" error, so it can be answered with usage.
		Args: cobra.ArbitraryArgs,

		// Flags are never parsed at the root: --help and --version are
		// unrecognized subcommands here, not cobra built-ins.
		DisableFlagParsing: true,

		// SilenceUsage prevents cobra from printing its generated usage
		// text on error. The launcher prints its own one-line usage.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing "Error: ..." itself.
		// Run prints non-silent CLIErrors instead.
		SilenceErrors: true,

		// No "completion" subcommand; it would be a second recognized
		// first argument.
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

		RunE: usage,
	}

	// Replace the implicit "help" subcommand so that "help" is a usage
	// error like any other unrecognized subcommand. The hidden name can
	// never be reached because Run only executes invocations of start.
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:                "__help",
		Hidden:             true,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               usage,
	})

	// Register the only subcommand.
	rootCmd.AddCommand(NewStartCommand(o))

	return rootCmd
}

// usageError prints the usage line and returns the silent usage error.
func usageError(w io.Writer, programName string) error {
	fmt.Fprintf(w, "Usage: %s {start} [<optional_parameters>]\n", programName)
	return model.NewCLIError(model.ExitUsage, "")
}

// Run executes the root command with args and returns the process exit
// code. CLIError types carry their own exit codes; other errors map to 1.
//
// Only a literal "start" as the first argument is dispatched. Cobra's
// command lookup skips flag-like tokens before matching a subcommand, so
// "-v=1 start" would otherwise reach start.
func Run(rootCmd *cobra.Command, args []string) int {
	inv := model.NewInvocation(args)
	if inv.Subcommand != startCommandName {
		_ = usageError(rootCmd.OutOrStdout(), rootCmd.Name())
		return int(model.ExitUsage)
	}

	// Always non-nil; a nil slice would make cobra read os.Args.
	rootCmd.SetArgs(inv.Positional())

	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if !cliErr.Silent() {
			printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
		}
		return int(cliErr.Code)
	}

	printError(rootCmd.ErrOrStderr(), err.Error(), nil)
	return int(model.ExitGeneralError)
}

// Execute runs the root command against the process arguments and exits.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(Run(rootCmd, os.Args[1:]))
}

// printError writes "Error: <message>" to w.
func printError(w io.Writer, message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}
