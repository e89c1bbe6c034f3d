package launcher

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Streams are the standard streams the launcher inherited.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdStreams returns the process's own standard streams.
func StdStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Output is where the launcher and the router write for one invocation:
// either the inherited streams or a single log file receiving both.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer

	// file is non-nil when output is redirected; Close releases it.
	file *os.File
}

// Redirected reports whether output goes to the log file.
func (o *Output) Redirected() bool {
	return o.file != nil
}

// Close flushes and releases the log file. It is a no-op for inherited
// streams and safe to call more than once.
func (o *Output) Close() error {
	if o.file == nil {
		return nil
	}
	f := o.file
	o.file = nil
	if err := f.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		_ = f.Close()
		return fmt.Errorf("failed to flush log file: %w", err)
	}
	return f.Close()
}

// inheritOutput keeps the launcher's own streams.
func inheritOutput(s Streams) *Output {
	return &Output{Stdout: s.Stdout, Stderr: s.Stderr}
}

// openLogOutput truncates (or creates) the log file and returns an Output
// sending both streams to it. Writes append, so the launcher's lines and
// the router's interleave in order.
func openLogOutput(path string) (*Output, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &Output{Stdout: f, Stderr: f, file: f}, nil
}

// trivialDaemonLog matches a log that is empty or holds nothing but the
// router's startup banner, each allowing one trailing newline.
var trivialDaemonLog = regexp.MustCompile(`^(?:started with pid \d+)?\n?$`)

// preservedSuffixFormat is appended to preserved daemon logs.
const preservedSuffixFormat = "2006-01-02_15:04:05"

// preserveDaemonLog copies the previous daemon log aside before it is
// truncated, unless it is missing, empty or only the startup banner. The
// copy keeps the original's permission bits.
// It returns the path of the copy, or "" when nothing was preserved.
func preserveDaemonLog(path string, now time.Time) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat previous log %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read previous log %s: %w", path, err)
	}

	if trivialDaemonLog.Match(data) {
		return "", nil
	}

	dest := path + "." + now.Format(preservedSuffixFormat)
	if err := writeFileMode(dest, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to preserve previous log as %s: %w", dest, err)
	}
	return dest, nil
}

// writeFileMode writes data to path with exactly perm, which os.WriteFile
// would filter through the umask and ignore for an existing file.
func writeFileMode(path string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
