package launcher

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-apps/router-launcher/internal/model"
)

// DefaultRelaySignals are forwarded from the launcher to the router so an
// init system stop reaches the router as it would after exec.
var DefaultRelaySignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
	syscall.SIGQUIT,
}

// child describes one router process to run.
type child struct {
	argv   []string
	env    []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	relay  []os.Signal
}

// run starts the child, relays signals to it until it exits, and returns
// its exit code. A non-nil error means the child could not be started;
// the code is then the shell-equivalent status for the failure.
func (c child) run(ctx context.Context, logger *logrus.Logger) (int, error) {
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Env = c.env
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	// Subscribe before Start so a signal arriving during startup is not lost.
	var sigs chan os.Signal
	if len(c.relay) > 0 {
		sigs = make(chan os.Signal, len(c.relay))
		signal.Notify(sigs, c.relay...)
		defer signal.Stop(sigs)
	}

	if err := cmd.Start(); err != nil {
		return startFailureCode(err), err
	}
	logger.WithField("pid", cmd.Process.Pid).Info("router started")

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	for {
		select {
		case sig := <-sigs:
			logger.WithField("signal", sig.String()).Info("relaying signal to router")
			if err := cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
				logger.WithError(err).Warn("failed to relay signal")
			}
		case err := <-done:
			return exitCode(err), nil
		}
	}
}

// exitCode converts the result of Wait into a process exit code. A child
// killed by a signal reports 128+signal, as a shell would.
func exitCode(err error) int {
	if err == nil {
		return int(model.ExitSuccess)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return int(model.ExitGeneralError)
}

// startFailureCode maps a Start error to the status a shell reports for
// the same failure.
func startFailureCode(err error) int {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return int(model.ExitNotFound)
	case errors.Is(err, fs.ErrPermission):
		return int(model.ExitNotExecutable)
	default:
		return int(model.ExitGeneralError)
	}
}
