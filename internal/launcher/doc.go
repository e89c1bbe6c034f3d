// Package launcher starts the router process for the "start" subcommand.
//
// One call to Launcher.Start performs the whole sequence:
//
//	resolve output → preserve previous daemon log → log preflight checks
//	→ build child environment → spawn router → relay signals → wait
//	→ print rc=<code> → release output
//
// The router is a python script run by the interpreter inside the
// runtime base directory. The launcher replaces the init script's
// "source bin/activate" with the equivalent environment variables, and
// its "exec >LOG 2>&1" with a log file handle owned for the duration of
// the invocation.
//
// The launcher never retries. The child's exit status becomes the
// launcher's exit status, and supervision is left to the init system.
package launcher
