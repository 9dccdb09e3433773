package configuration

import "time"

type IpmiConfig struct {
	// Full path of the ipmitool binary.
	Command string `json:"command"`
	// Time to wait after a set-fan-mode command, to give the BMC and the
	// fans time to apply the new mode.
	FanModeDelay time.Duration `json:"fanModeDelay"`
	// Time to wait after a set-fan-level command, to give the fans time
	// to spin up/down.
	FanLevelDelay time.Duration `json:"fanLevelDelay"`
}
