// Package model defines the value types shared by the router launcher.
//
// Config is the immutable configuration record produced by the config
// package; Invocation is the dispatched command line. The package also
// defines exit codes (ExitCode) and a custom error type (CLIError) that
// carries exit codes for proper OS process exit handling.
package model
