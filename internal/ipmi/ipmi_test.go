package ipmi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

type fakeExecutor struct {
	executable string
	args       []string
	output     string
	err        error
}

func (f *fakeExecutor) execute(_ context.Context, executable string, args []string, _ time.Duration) (string, error) {
	f.executable = executable
	f.args = args
	return f.output, f.err
}

func testIpmi(fake *fakeExecutor) *ipmitool {
	return &ipmitool{
		config: configuration.IpmiConfig{
			Command:       "/usr/bin/ipmitool",
			FanModeDelay:  time.Millisecond,
			FanLevelDelay: time.Millisecond,
		},
		execute: fake.execute,
	}
}

func TestGetFanMode(t *testing.T) {
	// GIVEN
	fake := &fakeExecutor{output: " 01"}
	ipmi := testIpmi(fake)

	// WHEN
	mode, err := ipmi.GetFanMode(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, FanModeFull, mode)
	assert.Equal(t, []string{"raw", "0x30", "0x45", "0x00"}, fake.args)
}

func TestGetFanModeUnparsableOutput(t *testing.T) {
	// GIVEN
	fake := &fakeExecutor{output: "garbage"}
	ipmi := testIpmi(fake)

	// WHEN
	_, err := ipmi.GetFanMode(context.Background())

	// THEN
	assert.ErrorIs(t, err, ErrCommandFailed)
}

func TestSetFanMode(t *testing.T) {
	// GIVEN
	fake := &fakeExecutor{}
	ipmi := testIpmi(fake)

	// WHEN
	err := ipmi.SetFanMode(context.Background(), FanModeFull)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/usr/bin/ipmitool", fake.executable)
	assert.Equal(t, []string{"raw", "0x30", "0x45", "0x01", "1"}, fake.args)
}

func TestSetFanLevel(t *testing.T) {
	// GIVEN
	fake := &fakeExecutor{}
	ipmi := testIpmi(fake)

	// WHEN
	err := ipmi.SetFanLevel(context.Background(), ZoneHd, 68)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"raw", "0x30", "0x70", "0x66", "0x01", "1", "68"}, fake.args)
}

func TestSetFanLevelCoercesOutOfRangeValues(t *testing.T) {
	// GIVEN
	fake := &fakeExecutor{}
	ipmi := testIpmi(fake)

	// WHEN
	err := ipmi.SetFanLevel(context.Background(), ZoneCpu, 140)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"raw", "0x30", "0x70", "0x66", "0x01", "0", "100"}, fake.args)
}

func TestSetFanLevelCommandFailure(t *testing.T) {
	// GIVEN
	fake := &fakeExecutor{err: errors.New("exit status 1")}
	ipmi := testIpmi(fake)

	// WHEN
	err := ipmi.SetFanLevel(context.Background(), ZoneCpu, 50)

	// THEN
	assert.ErrorIs(t, err, ErrCommandFailed)
}

func TestFanModeString(t *testing.T) {
	assert.Equal(t, "STANDARD", FanModeStandard.String())
	assert.Equal(t, "FULL", FanModeFull.String())
	assert.Equal(t, "OPTIMAL", FanModeOptimal.String())
	assert.Equal(t, "HEAVY IO", FanModeHeavyIO.String())
	assert.Equal(t, "UNKNOWN (3)", FanMode(3).String())
}
