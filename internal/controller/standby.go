package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ipmifan/ipmifan/internal/disks"
	"github.com/ipmifan/ipmifan/internal/journal"
	"github.com/ipmifan/ipmifan/internal/ui"
)

// GuardSnapshot is a point-in-time view of the standby guard state.
type GuardSnapshot struct {
	InStandby bool                        `json:"inStandby"`
	ChangedAt time.Time                   `json:"changedAt"`
	States    map[string]disks.PowerState `json:"states"`
}

// StandbyGuard keeps the disks of the HD zone spinning down together.
// When at least limit disks have entered standby on their own, the guard
// sends the remaining ones to standby as well, so a half-sleeping array
// does not keep fans and power draw up for a few stragglers. The guard
// never wakes a disk.
type StandbyGuard struct {
	smart   disks.Smartctl
	devices []string
	limit   int
	journal journal.Journal

	mu        sync.Mutex
	states    map[string]disks.PowerState
	inStandby bool
	changedAt time.Time
}

func NewStandbyGuard(smart disks.Smartctl, devices []string, limit int, eventJournal journal.Journal) *StandbyGuard {
	return &StandbyGuard{
		smart:   smart,
		devices: devices,
		limit:   limit,
		journal: eventJournal,
		states:  make(map[string]disks.PowerState, len(devices)),
	}
}

// Run performs one guard evaluation. Called once per HD zone cycle,
// before the temperature sampling, so a standby decision is visible to
// the same cycle's sensors.
func (g *StandbyGuard) Run(ctx context.Context) error {
	standbyCount := g.refreshStates(ctx)

	g.mu.Lock()
	inStandby := g.inStandby
	g.mu.Unlock()

	if !inStandby && standbyCount >= g.limit {
		forced := g.forceStandby(ctx)
		g.transition(true, standbyCount+forced)
		return nil
	}

	if inStandby && standbyCount < len(g.devices) {
		g.transition(false, standbyCount)
	}

	return nil
}

func (g *StandbyGuard) transition(toStandby bool, standbyCount int) {
	g.mu.Lock()
	g.inStandby = toStandby
	g.changedAt = time.Now()
	g.mu.Unlock()

	state := "ACTIVE"
	if toStandby {
		state = "STANDBY"
	}
	message := g.transitionMessage(state, standbyCount)
	ui.Info("Standby guard: %s", message)
	g.journal.RecordStandbyTransition("hd", message)
}

// refreshStates polls every disk and returns how many are in standby.
// A failed query keeps the previously known state of that disk.
func (g *StandbyGuard) refreshStates(ctx context.Context) int {
	fresh := make(map[string]disks.PowerState, len(g.devices))
	for _, device := range g.devices {
		state, err := g.smart.ReadPowerState(ctx, device)
		if err != nil {
			ui.Warning("Could not read power state of %s: %v", device, err)
			g.mu.Lock()
			state = g.states[device]
			g.mu.Unlock()
		}
		fresh[device] = state
	}

	standbyCount := 0
	for _, state := range fresh {
		if state == disks.PowerStateStandby {
			standbyCount++
		}
	}

	g.mu.Lock()
	g.states = fresh
	g.mu.Unlock()
	return standbyCount
}

// forceStandby sends every still active disk to standby, best effort.
// Returns the number of disks that accepted the command.
func (g *StandbyGuard) forceStandby(ctx context.Context) int {
	g.mu.Lock()
	pending := make([]string, 0, len(g.devices))
	for _, device := range g.devices {
		if g.states[device] != disks.PowerStateStandby {
			pending = append(pending, device)
		}
	}
	g.mu.Unlock()

	forced := 0
	for _, device := range pending {
		if err := g.smart.CommandStandby(ctx, device); err != nil {
			ui.Warning("Could not send %s to standby: %v", device, err)
			continue
		}
		g.mu.Lock()
		g.states[device] = disks.PowerStateStandby
		g.mu.Unlock()
		forced++
	}
	return forced
}

func (g *StandbyGuard) transitionMessage(state string, standbyCount int) string {
	return fmt.Sprintf("%s: %d of %d disks in standby", state, standbyCount, len(g.devices))
}

func (g *StandbyGuard) Snapshot() GuardSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	states := make(map[string]disks.PowerState, len(g.states))
	for device, state := range g.states {
		states[device] = state
	}
	return GuardSnapshot{
		InStandby: g.inStandby,
		ChangedAt: g.changedAt,
		States:    states,
	}
}
