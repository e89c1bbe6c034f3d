// Package model defines the domain types for the router launcher.
//
// The launcher has no persistent data model. The types here are the
// resolved configuration record, the invocation being dispatched, and
// the exit-code carrying error used to translate failures into process
// exit statuses.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config is the fully resolved configuration for one launcher invocation.
//
// A Config is built once by config.Resolve and passed by value to the
// launch routine. Nothing in the launcher mutates it after resolution, so
// every component observes the same values for the whole invocation.
type Config struct {
	// AppName is the router program name, e.g. "router_accessdb-usermap".
	// It names the router script, its config file and the daemon log.
	AppName string `mapstructure:"app_name"`

	// AppHome is the deployment root holding PROD/, conf/ and var/.
	AppHome string `mapstructure:"app_home"`

	// PythonBase is the runtime base directory: the virtualenv that
	// provides bin/python3, bin/activate and lib/.
	PythonBase string `mapstructure:"python_base"`

	// WarehouseDjango is the external warehouse django library directory
	// appended to the child's import path.
	WarehouseDjango string `mapstructure:"warehouse_django"`

	// LibDir is the router's own library directory, first on the import path.
	LibDir string `mapstructure:"lib_dir"`

	// AppBin is the router script handed to the interpreter.
	AppBin string `mapstructure:"app_bin"`

	// AppConfig is the router configuration file passed with -c.
	AppConfig string `mapstructure:"app_config"`

	// WarehouseConfig is exported to the child as APP_CONFIG and is read
	// by the warehouse settings module.
	WarehouseConfig string `mapstructure:"warehouse_config"`

	// SettingsModule is exported as DJANGO_SETTINGS_MODULE.
	SettingsModule string `mapstructure:"settings_module"`

	// LogFile receives the combined output of the invocation unless the
	// debug sentinel is present.
	LogFile string `mapstructure:"log_file"`

	// LogLevel is the launcher's own logrus level name.
	LogLevel string `mapstructure:"log_level"`
}

// Interpreter returns the python interpreter inside the runtime base.
func (c Config) Interpreter() string {
	return filepath.Join(c.PythonBase, "bin", "python3")
}

// ActivateScript returns the runtime activation script path.
func (c Config) ActivateScript() string {
	return filepath.Join(c.PythonBase, "bin", "activate")
}

// LibraryPath returns the shared library search path for the child.
func (c Config) LibraryPath() string {
	return filepath.Join(c.PythonBase, "lib")
}

// ImportPath returns the child's PYTHONPATH: the router's own library
// directory followed by the warehouse django library.
func (c Config) ImportPath() string {
	return strings.Join([]string{c.LibDir, c.WarehouseDjango}, string(filepath.ListSeparator))
}

// FixedFlags returns the flags that always precede pass-through arguments:
// informational log level and the router config file.
func (c Config) FixedFlags() []string {
	return []string{"-l", "info", "-c", c.AppConfig}
}

// Invocation is the ordered command line handed to the launcher, minus
// the program name. It is consumed once and discarded at exit.
type Invocation struct {
	// Subcommand is the first positional argument ("" when absent).
	Subcommand string

	// Args are the tokens following the subcommand, passed through verbatim.
	Args []string
}

// NewInvocation splits raw command-line arguments into subcommand and
// pass-through arguments.
func NewInvocation(argv []string) Invocation {
	if len(argv) == 0 {
		return Invocation{}
	}
	return Invocation{Subcommand: argv[0], Args: argv[1:]}
}

// Positional returns the invocation as positional parameters, subcommand
// first, the way an init script sees $1, $2, ...
func (inv Invocation) Positional() []string {
	out := make([]string, 0, len(inv.Args)+1)
	out = append(out, inv.Subcommand)
	return append(out, inv.Args...)
}

// ExitCode defines the launcher's process exit codes. Codes outside the
// named constants are child exit codes propagated verbatim.
type ExitCode int

const (
	// ExitSuccess indicates the child ran and exited 0.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates a launcher-internal failure, or a child
	// that could not be started for an unclassified reason.
	ExitGeneralError ExitCode = 1

	// ExitUsage indicates an unrecognized subcommand.
	ExitUsage ExitCode = 1

	// ExitNotExecutable mirrors the shell status for a command that exists
	// but cannot be executed.
	ExitNotExecutable ExitCode = 126

	// ExitNotFound mirrors the shell status for a command that does not exist.
	ExitNotFound ExitCode = 127
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
//
// A CLIError with an empty Message is silent: the exit code is
// propagated without printing anything, which is how usage errors and
// child exit statuses are reported.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Silent reports whether the error should be reported only through the
// exit code.
func (e *CLIError) Silent() bool {
	return e.Message == ""
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitStatus creates a silent CLIError propagating a child's exit code.
func ExitStatus(code int, err error) *CLIError {
	return &CLIError{Code: ExitCode(code), Err: err}
}
