package ipmi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/ipmifan/ipmifan/internal/util"
)

// FanMode is the BMC fan control mode. Zone duty levels only stick in
// FanModeFull, the other modes let the BMC override them.
type FanMode int

const (
	FanModeStandard FanMode = 0
	FanModeFull     FanMode = 1
	FanModeOptimal  FanMode = 2
	FanModeHeavyIO  FanMode = 4
)

func (m FanMode) String() string {
	switch m {
	case FanModeStandard:
		return "STANDARD"
	case FanModeFull:
		return "FULL"
	case FanModeOptimal:
		return "OPTIMAL"
	case FanModeHeavyIO:
		return "HEAVY IO"
	}
	return fmt.Sprintf("UNKNOWN (%d)", int(m))
}

// Zone identifies a BMC fan zone.
type Zone int

const (
	ZoneCpu Zone = 0
	ZoneHd  Zone = 1
)

func (z Zone) String() string {
	switch z {
	case ZoneCpu:
		return "CPU"
	case ZoneHd:
		return "HD"
	}
	return fmt.Sprintf("ZONE %d", int(z))
}

var ErrCommandFailed = errors.New("ipmi command failed")

const commandTimeout = 10 * time.Second

// Executor runs the ipmitool binary. Swapped out in tests.
type Executor func(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error)

// Ipmi issues fan related raw commands to the BMC through ipmitool.
type Ipmi interface {
	// GetFanMode reads the current fan control mode from the BMC.
	GetFanMode(ctx context.Context) (FanMode, error)
	// SetFanMode switches the fan control mode and waits for the BMC to
	// settle before returning.
	SetFanMode(ctx context.Context, mode FanMode) error
	// SetFanLevel sets the duty level (0..100) of a zone and waits for
	// the fans to settle before returning.
	SetFanLevel(ctx context.Context, zone Zone, level int) error
}

type ipmitool struct {
	config  configuration.IpmiConfig
	execute Executor
}

func NewIpmi(config configuration.IpmiConfig) Ipmi {
	return &ipmitool{
		config:  config,
		execute: util.SafeCmdExecution,
	}
}

func (i *ipmitool) GetFanMode(ctx context.Context) (FanMode, error) {
	output, err := i.execute(ctx, i.config.Command, []string{"raw", "0x30", "0x45", "0x00"}, commandTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: read fan mode: %s", ErrCommandFailed, err)
	}

	// ipmitool prints raw response bytes in hex, e.g. " 01"
	mode, err := strconv.ParseInt(strings.TrimSpace(output), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: unexpected fan mode output %q", ErrCommandFailed, output)
	}

	return FanMode(mode), nil
}

func (i *ipmitool) SetFanMode(ctx context.Context, mode FanMode) error {
	args := []string{"raw", "0x30", "0x45", "0x01", strconv.Itoa(int(mode))}
	if _, err := i.execute(ctx, i.config.Command, args, commandTimeout); err != nil {
		return fmt.Errorf("%w: set fan mode %s: %s", ErrCommandFailed, mode, err)
	}

	ui.Debug("Fan mode set to %s, waiting %s for the BMC to settle", mode, i.config.FanModeDelay)
	settle(i.config.FanModeDelay)
	return nil
}

func (i *ipmitool) SetFanLevel(ctx context.Context, zone Zone, level int) error {
	level = int(util.Coerce(float64(level), 0, 100))

	args := []string{"raw", "0x30", "0x70", "0x66", "0x01", strconv.Itoa(int(zone)), strconv.Itoa(level)}
	if _, err := i.execute(ctx, i.config.Command, args, commandTimeout); err != nil {
		return fmt.Errorf("%w: set %s zone level to %d: %s", ErrCommandFailed, zone, level, err)
	}

	settle(i.config.FanLevelDelay)
	return nil
}

// settle waits out the configured delay unconditionally. The command already
// reached the BMC, aborting the wait on shutdown would only skip the pacing,
// not the effect.
func settle(delay time.Duration) {
	if delay > 0 {
		time.Sleep(delay)
	}
}
