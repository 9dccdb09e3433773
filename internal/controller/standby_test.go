package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipmifan/ipmifan/internal/disks"
	"github.com/ipmifan/ipmifan/internal/journal"
)

type mockSmartctl struct {
	states       map[string]disks.PowerState
	readErrors   map[string]error
	standbySent  []string
	standbyError error
}

func (m *mockSmartctl) ReadPowerState(_ context.Context, device string) (disks.PowerState, error) {
	if err := m.readErrors[device]; err != nil {
		return disks.PowerStateUnknown, err
	}
	return m.states[device], nil
}

func (m *mockSmartctl) CommandStandby(_ context.Context, device string) error {
	if m.standbyError != nil {
		return m.standbyError
	}
	m.standbySent = append(m.standbySent, device)
	m.states[device] = disks.PowerStateStandby
	return nil
}

func fourDisks() []string {
	return []string{"/dev/sda", "/dev/sdb", "/dev/sdc", "/dev/sdd"}
}

func TestGuardStaysIdleBelowLimit(t *testing.T) {
	// GIVEN
	smart := &mockSmartctl{states: map[string]disks.PowerState{
		"/dev/sda": disks.PowerStateStandby,
		"/dev/sdb": disks.PowerStateActive,
		"/dev/sdc": disks.PowerStateActive,
		"/dev/sdd": disks.PowerStateActive,
	}}
	guard := NewStandbyGuard(smart, fourDisks(), 2, journal.NewJournal(""))

	// WHEN
	err := guard.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, smart.standbySent)
	assert.False(t, guard.Snapshot().InStandby)
}

func TestGuardForcesRemainingDisksAtLimit(t *testing.T) {
	// GIVEN
	smart := &mockSmartctl{states: map[string]disks.PowerState{
		"/dev/sda": disks.PowerStateStandby,
		"/dev/sdb": disks.PowerStateStandby,
		"/dev/sdc": disks.PowerStateActive,
		"/dev/sdd": disks.PowerStateActive,
	}}
	guard := NewStandbyGuard(smart, fourDisks(), 2, journal.NewJournal(""))

	// WHEN
	err := guard.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"/dev/sdc", "/dev/sdd"}, smart.standbySent)
	snapshot := guard.Snapshot()
	assert.True(t, snapshot.InStandby)
	assert.Equal(t, disks.PowerStateStandby, snapshot.States["/dev/sdc"])
}

func TestGuardIsIdempotentInStandby(t *testing.T) {
	// GIVEN
	smart := &mockSmartctl{states: map[string]disks.PowerState{
		"/dev/sda": disks.PowerStateStandby,
		"/dev/sdb": disks.PowerStateStandby,
		"/dev/sdc": disks.PowerStateActive,
		"/dev/sdd": disks.PowerStateActive,
	}}
	guard := NewStandbyGuard(smart, fourDisks(), 2, journal.NewJournal(""))
	assert.NoError(t, guard.Run(context.Background()))
	sent := len(smart.standbySent)

	// WHEN
	assert.NoError(t, guard.Run(context.Background()))

	// THEN
	// all disks already sleep, no further commands
	assert.Len(t, smart.standbySent, sent)
	assert.True(t, guard.Snapshot().InStandby)
}

func TestGuardReturnsToActiveWhenDiskWakes(t *testing.T) {
	// GIVEN
	smart := &mockSmartctl{states: map[string]disks.PowerState{
		"/dev/sda": disks.PowerStateStandby,
		"/dev/sdb": disks.PowerStateStandby,
		"/dev/sdc": disks.PowerStateActive,
		"/dev/sdd": disks.PowerStateActive,
	}}
	guard := NewStandbyGuard(smart, fourDisks(), 2, journal.NewJournal(""))
	assert.NoError(t, guard.Run(context.Background()))
	assert.True(t, guard.Snapshot().InStandby)

	// WHEN
	// an external access spins a disk back up
	smart.states["/dev/sda"] = disks.PowerStateActive
	sent := len(smart.standbySent)
	assert.NoError(t, guard.Run(context.Background()))

	// THEN
	// the guard observes the wakeup without acting on it
	assert.False(t, guard.Snapshot().InStandby)
	assert.Len(t, smart.standbySent, sent)
}

func TestGuardKeepsLastKnownStateOnReadError(t *testing.T) {
	// GIVEN
	smart := &mockSmartctl{
		states: map[string]disks.PowerState{
			"/dev/sda": disks.PowerStateStandby,
			"/dev/sdb": disks.PowerStateStandby,
			"/dev/sdc": disks.PowerStateActive,
			"/dev/sdd": disks.PowerStateActive,
		},
	}
	guard := NewStandbyGuard(smart, fourDisks(), 3, journal.NewJournal(""))
	assert.NoError(t, guard.Run(context.Background()))

	// WHEN
	smart.readErrors = map[string]error{"/dev/sda": errors.New("exit status 1")}
	assert.NoError(t, guard.Run(context.Background()))

	// THEN
	// sda still counts as standby from the previous cycle
	assert.Equal(t, disks.PowerStateStandby, guard.Snapshot().States["/dev/sda"])
}

func TestGuardToleratesStandbyCommandFailure(t *testing.T) {
	// GIVEN
	smart := &mockSmartctl{
		states: map[string]disks.PowerState{
			"/dev/sda": disks.PowerStateStandby,
			"/dev/sdb": disks.PowerStateStandby,
			"/dev/sdc": disks.PowerStateActive,
			"/dev/sdd": disks.PowerStateActive,
		},
		standbyError: errors.New("exit status 4"),
	}
	guard := NewStandbyGuard(smart, fourDisks(), 2, journal.NewJournal(""))

	// WHEN
	err := guard.Run(context.Background())

	// THEN
	// the transition still happens, spindown is best effort
	assert.NoError(t, err)
	assert.True(t, guard.Snapshot().InStandby)
}
