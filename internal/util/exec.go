package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ipmifan/ipmifan/internal/ui"
)

// SafeCmdExecution runs the given executable and returns its trimmed stdout.
// The executable must pass CheckFilePermissionsForExecution, since the daemon
// usually runs as root.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %s", executable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		ui.Warning("Command timed out: %s", executable)
		return "", ctx.Err()
	}

	if err != nil {
		return "", err
	}

	return strings.Trim(string(out), "\n"), nil
}

// RunCommand runs the given executable and returns its trimmed stdout together
// with the process exit code. Unlike SafeCmdExecution a non-zero exit code is
// not an error, since some tools (smartctl in particular) encode state in it.
func RunCommand(ctx context.Context, executable string, args []string, timeout time.Duration) (string, int, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", -1, fmt.Errorf("cannot execute %s: %s", executable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		ui.Warning("Command timed out: %s", executable)
		return "", -1, ctx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return strings.Trim(string(out), "\n"), exitErr.ExitCode(), err
		}
		return "", -1, err
	}

	return strings.Trim(string(out), "\n"), 0, nil
}
