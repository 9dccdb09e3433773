package configuration

type SensorConfig struct {
	ID string `json:"id"`

	File *FileSensorConfig `json:"file,omitempty"`
	Cmd  *CmdSensorConfig  `json:"cmd,omitempty"`
}

type FileSensorConfig struct {
	// Path to a sysfs-like file containing the temperature in
	// millidegrees celsius. May contain glob characters, which are
	// resolved once at startup.
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	// Executable that prints the temperature in °C to stdout.
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
