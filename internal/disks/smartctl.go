package disks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ipmifan/ipmifan/internal/util"
)

var ErrSmartctlFailed = errors.New("smartctl failed")

const smartctlTimeout = 15 * time.Second

// Runner executes the smartctl binary. Swapped out in tests.
type Runner func(ctx context.Context, executable string, args []string, timeout time.Duration) (string, int, error)

// Smartctl queries and controls disk power states without waking up
// sleeping disks.
type Smartctl interface {
	// ReadPowerState reports the spin state of the given device. The
	// query itself never wakes a disk, smartctl is invoked with
	// "-n standby".
	ReadPowerState(ctx context.Context, device string) (PowerState, error)
	// CommandStandby asks the disk to spin down immediately.
	CommandStandby(ctx context.Context, device string) error
}

type smartctl struct {
	path string
	run  Runner
}

func NewSmartctl(path string) Smartctl {
	return &smartctl{
		path: path,
		run:  util.RunCommand,
	}
}

func (s *smartctl) ReadPowerState(ctx context.Context, device string) (PowerState, error) {
	output, exitCode, err := s.run(ctx, s.path, []string{"-i", "-n", "standby", device}, smartctlTimeout)

	// exit code 2 means the disk is in standby and the query was skipped,
	// that is a valid answer rather than a failure
	if exitCode != 0 && exitCode != 2 {
		return PowerStateUnknown, fmt.Errorf("%w: %s: exit code %d: %s", ErrSmartctlFailed, device, exitCode, err)
	}
	if err != nil && exitCode == 0 {
		return PowerStateUnknown, fmt.Errorf("%w: %s: %s", ErrSmartctlFailed, device, err)
	}

	if strings.Contains(output, "STANDBY") {
		return PowerStateStandby, nil
	}
	return PowerStateActive, nil
}

func (s *smartctl) CommandStandby(ctx context.Context, device string) error {
	_, exitCode, err := s.run(ctx, s.path, []string{"-s", "standby,now", device}, smartctlTimeout)
	if exitCode != 0 {
		return fmt.Errorf("%w: standby %s: exit code %d: %s", ErrSmartctlFailed, device, exitCode, err)
	}
	if err != nil {
		return fmt.Errorf("%w: standby %s: %s", ErrSmartctlFailed, device, err)
	}
	return nil
}
