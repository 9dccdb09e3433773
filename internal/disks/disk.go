package disks

// PowerState is the spin state of a disk as reported by smartctl.
type PowerState int

const (
	PowerStateUnknown PowerState = iota
	PowerStateActive
	PowerStateStandby
)

func (s PowerState) String() string {
	switch s {
	case PowerStateActive:
		return "ACTIVE"
	case PowerStateStandby:
		return "STANDBY"
	}
	return "UNKNOWN"
}
