package configuration

import (
	"os"
	"time"

	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Ipmi IpmiConfig `json:"ipmi"`

	CpuZone ZoneConfig   `json:"cpuZone"`
	HdZone  HdZoneConfig `json:"hdZone"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Journal    JournalConfig    `json:"journal"`
}

var CurrentConfig Configuration

// InitConfig sets up the config file search paths and default values.
func InitConfig(cfgFile string) {
	viper.SetConfigName("ipmifan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/ipmifan/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("ipmi.command", "/usr/bin/ipmitool")
	viper.SetDefault("ipmi.fanModeDelay", 10*time.Second)
	viper.SetDefault("ipmi.fanLevelDelay", 2*time.Second)

	viper.SetDefault("cpuZone.enabled", false)
	viper.SetDefault("cpuZone.count", 1)
	viper.SetDefault("cpuZone.aggregate", AggregateAverage)
	viper.SetDefault("cpuZone.steps", 6)
	viper.SetDefault("cpuZone.sensitivity", 3.0)
	viper.SetDefault("cpuZone.pollingInterval", 2*time.Second)
	viper.SetDefault("cpuZone.minTemp", 30.0)
	viper.SetDefault("cpuZone.maxTemp", 60.0)
	viper.SetDefault("cpuZone.minLevel", 35)
	viper.SetDefault("cpuZone.maxLevel", 100)

	viper.SetDefault("hdZone.enabled", false)
	viper.SetDefault("hdZone.count", 1)
	viper.SetDefault("hdZone.aggregate", AggregateAverage)
	viper.SetDefault("hdZone.steps", 4)
	viper.SetDefault("hdZone.sensitivity", 2.0)
	viper.SetDefault("hdZone.pollingInterval", 10*time.Second)
	viper.SetDefault("hdZone.minTemp", 32.0)
	viper.SetDefault("hdZone.maxTemp", 46.0)
	viper.SetDefault("hdZone.minLevel", 35)
	viper.SetDefault("hdZone.maxLevel", 100)
	viper.SetDefault("hdZone.standbyGuard.enabled", false)
	viper.SetDefault("hdZone.standbyGuard.limit", 1)
	viper.SetDefault("hdZone.standbyGuard.smartctlPath", "/usr/sbin/smartctl")

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
	viper.SetDefault("journal.path", "")
}

// DetectConfigFile reads the config file from the search paths and
// returns the path of the file that was used.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		aggregateFunctionHookFunc(),
	)

	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook))
	if err != nil {
		ui.Fatal("unable to decode config into struct, %v", err)
	}
}
