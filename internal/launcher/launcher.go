package launcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-apps/router-launcher/internal/logging"
	"github.com/warehouse-apps/router-launcher/internal/model"
)

// Launcher starts the router for one invocation. Build it with New.
type Launcher struct {
	cfg      model.Config
	streams  Streams
	environ  func() []string
	command  []string
	now      func() time.Time
	relay    []os.Signal
	warnings []error
	version  string
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithStreams replaces the inherited standard streams.
func WithStreams(s Streams) Option {
	return func(l *Launcher) { l.streams = s }
}

// WithEnviron replaces the base environment the router inherits.
func WithEnviron(environ func() []string) Option {
	return func(l *Launcher) { l.environ = environ }
}

// WithCommand replaces the interpreter and script that precede the fixed
// flags. The default is "<python_base>/bin/python3 <app_bin>".
func WithCommand(command ...string) Option {
	return func(l *Launcher) { l.command = command }
}

// WithClock replaces the clock used to name preserved daemon logs.
func WithClock(now func() time.Time) Option {
	return func(l *Launcher) { l.now = now }
}

// WithRelaySignals replaces the signals forwarded to the router. No
// signals disables relaying.
func WithRelaySignals(sigs ...os.Signal) Option {
	return func(l *Launcher) { l.relay = sigs }
}

// WithWarnings passes configuration warnings to be logged once the
// invocation's output is open.
func WithWarnings(warnings []error) Option {
	return func(l *Launcher) { l.warnings = warnings }
}

// WithVersion sets the launcher build identification logged at start.
func WithVersion(version string) Option {
	return func(l *Launcher) { l.version = version }
}

// New returns a Launcher for the resolved configuration.
func New(cfg model.Config, opts ...Option) *Launcher {
	l := &Launcher{
		cfg:     cfg,
		streams: StdStreams(),
		environ: os.Environ,
		command: []string{cfg.Interpreter(), cfg.AppBin},
		now:     time.Now,
		relay:   DefaultRelaySignals,
		version: "dev",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Argv returns the full router command line for the given pass-through
// arguments: command, fixed flags, then args verbatim.
func (l *Launcher) Argv(args []string) []string {
	flags := l.cfg.FixedFlags()
	argv := make([]string, 0, len(l.command)+len(flags)+len(args))
	argv = append(argv, l.command...)
	argv = append(argv, flags...)
	return append(argv, args...)
}

// Start runs the router with args appended to the fixed flags and returns
// the router's exit code. "rc=<code>" is written to the invocation's
// stdout, which is the log file unless the debug sentinel is present.
//
// The returned error is non-nil only when the launcher could not set up
// its output; a router that fails to start is reported through the code.
func (l *Launcher) Start(ctx context.Context, args []string) (int, error) {
	inv := model.Invocation{Subcommand: "start", Args: args}
	debug := HasDebugSentinel(inv.Positional())

	var (
		out       *Output
		preserved string
		keepErr   error
	)
	if debug {
		out = inheritOutput(l.streams)
	} else {
		preserved, keepErr = preserveDaemonLog(l.cfg.LogFile, l.now())
		var err error
		out, err = openLogOutput(l.cfg.LogFile)
		if err != nil {
			return int(model.ExitGeneralError), model.WrapCLIError(model.ExitGeneralError,
				"failed to redirect output", err)
		}
	}
	defer func() { _ = out.Close() }()

	logger, levelErr := logging.New(out.Stderr, l.cfg.LogLevel)
	if levelErr != nil {
		logger.Warn(levelErr.Error())
	}
	for _, w := range l.warnings {
		logger.WithError(w).Warn("ignoring deployment configuration")
	}
	if keepErr != nil {
		logger.WithError(keepErr).Warn("previous daemon log not preserved")
	} else if preserved != "" {
		logger.WithField("path", preserved).Info("preserved previous daemon log")
	}
	if !out.Redirected() {
		logger.Info("debug sentinel present, output not redirected")
	}

	l.preflight(logger)

	argv := l.Argv(args)
	logger.WithFields(logrus.Fields{
		"app":      l.cfg.AppName,
		"argv":     argv,
		"launcher": l.version,
	}).Info("starting router")

	code, err := child{
		argv:   argv,
		env:    BuildEnv(l.environ(), l.cfg),
		stdin:  l.streams.Stdin,
		stdout: out.Stdout,
		stderr: out.Stderr,
		relay:  l.relay,
	}.run(ctx, logger)
	if err != nil {
		logger.WithError(err).Error("router failed to start")
	}

	fmt.Fprintf(out.Stdout, "rc=%d\n", code)
	return code, nil
}

// preflight logs what the router is about to run with. Nothing here can
// stop the launch; the router reports its own configuration errors.
func (l *Launcher) preflight(logger *logrus.Logger) {
	if _, err := os.Stat(l.cfg.ActivateScript()); err != nil {
		logger.WithField("path", l.cfg.ActivateScript()).Warn("runtime activation script not found")
	}

	rc, err := LoadRouterConfig(l.cfg.AppConfig)
	if err != nil {
		logger.WithError(err).Warn("router config not readable")
		return
	}
	logger.WithFields(logrus.Fields{
		"config":      l.cfg.AppConfig,
		"log_file":    rc.LogFile,
		"log_level":   rc.LogLevel,
		"source":      rc.RedactedSource(),
		"destination": rc.Destination,
	}).Info("router config")
}
