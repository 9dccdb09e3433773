package pid

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"
)

const pidFile = "ipmifan.pid"

func path() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Write creates the PID file of the daemon. It fails when another live
// process already owns the file, so two daemons never fight over the BMC.
func Write() error {
	pidFilePath := path()

	if content, err := os.ReadFile(pidFilePath); err == nil {
		oldPid, err := strconv.Atoi(strings.TrimSpace(string(content)))
		if err == nil && processAlive(oldPid) {
			return fmt.Errorf("already running with pid %d", oldPid)
		}
	}

	reader := strings.NewReader(strconv.Itoa(os.Getpid()))
	return atomic.WriteFile(pidFilePath, reader)
}

// Remove deletes the PID file, ignoring a file that is already gone.
func Remove() {
	_ = os.Remove(path())
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
