package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ipmifan/ipmifan/internal/api"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/disks"
	"github.com/ipmifan/ipmifan/internal/ipmi"
	"github.com/ipmifan/ipmifan/internal/journal"
	"github.com/ipmifan/ipmifan/internal/pid"
	"github.com/ipmifan/ipmifan/internal/sensors"
	"github.com/ipmifan/ipmifan/internal/statistics"
	"github.com/ipmifan/ipmifan/internal/ui"
)

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Fatal("Fan control requires root permissions to talk to the BMC, please run ipmifan as root")
	}

	if err := pid.Write(); err != nil {
		ui.Fatal("Could not create PID file: %v", err)
	}
	defer pid.Remove()

	config := &configuration.CurrentConfig
	if err := config.ResolveSensorPaths(); err != nil {
		ui.Fatal("Could not resolve sensor paths: %v", err)
	}

	eventJournal := journal.NewJournal(config.Journal.Path)
	fanControl := ipmi.NewIpmi(config.Ipmi)

	ctx, cancel := context.WithCancel(context.Background())

	ensureFullFanMode(ctx, fanControl)

	guard := initializeGuard(config, eventJournal)
	controllers := initializeControllers(config, fanControl, guard, eventJournal)
	if len(controllers) == 0 {
		ui.Fatal("No enabled zones, exiting.")
	}

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: promhttp.Handler(),
			}
			g.Add(func() error {
				err := server.ListenAndServe()
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST Api
			rest := api.CreateRestService(controllers, guard, eventJournal)
			g.Add(func() error {
				addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
				ui.Info("Starting REST api on %s", addr)
				err := rest.Start(addr)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		// === zone controllers
		for _, zoneController := range controllers {
			c := zoneController
			g.Add(func() error {
				err := c.Run(ctx)
				ui.Info("Controller for %s zone stopped.", c.Name())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error in %s zone controller: %v", c.Name(), err)
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received termination signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		pid.Remove()
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

// ensureFullFanMode switches the BMC to FULL mode if it is in any other
// mode. Zone duty levels set by the controllers only stick in FULL mode.
func ensureFullFanMode(ctx context.Context, fanControl ipmi.Ipmi) {
	mode, err := fanControl.GetFanMode(ctx)
	if err != nil {
		ui.Fatal("Could not read the current fan mode: %v", err)
	}
	ui.Info("Current fan mode: %s", mode)

	if mode != ipmi.FanModeFull {
		ui.Info("Switching fan mode to %s", ipmi.FanModeFull)
		if err := fanControl.SetFanMode(ctx, ipmi.FanModeFull); err != nil {
			ui.Fatal("Could not switch the fan mode: %v", err)
		}
	}
}

func initializeGuard(config *configuration.Configuration, eventJournal journal.Journal) *controller.StandbyGuard {
	if !config.HdZone.Enabled || !config.HdZone.StandbyGuard.Enabled {
		return nil
	}

	devices := make([]string, 0, len(config.HdZone.Disks))
	for _, disk := range config.HdZone.Disks {
		devices = append(devices, disk.Device)
	}

	if len(devices) == 1 {
		ui.Info("Standby guard disabled, it needs at least two disks to coordinate")
		return nil
	}

	smart := disks.NewSmartctl(config.HdZone.StandbyGuard.SmartctlPath)
	return controller.NewStandbyGuard(smart, devices, config.HdZone.StandbyGuard.Limit, eventJournal)
}

func initializeControllers(
	config *configuration.Configuration,
	fanControl ipmi.Ipmi,
	guard *controller.StandbyGuard,
	eventJournal journal.Journal,
) []controller.ZoneController {
	var controllers []controller.ZoneController
	var allSensors []sensors.Sensor

	if config.CpuZone.Enabled {
		zoneSensors := initializeSensors(config.CpuZone.Sensors)
		allSensors = append(allSensors, zoneSensors...)
		controllers = append(controllers, controller.NewZoneController(
			"cpu", ipmi.ZoneCpu, config.CpuZone, zoneSensors, fanControl, nil, eventJournal))
	}

	if config.HdZone.Enabled {
		zoneSensors := initializeSensors(config.HdZone.Sensors)
		allSensors = append(allSensors, zoneSensors...)
		controllers = append(controllers, controller.NewZoneController(
			"hd", ipmi.ZoneHd, config.HdZone.ZoneConfig, zoneSensors, fanControl, guard, eventJournal))
	}

	statistics.Register(statistics.NewZoneCollector(controllers))
	statistics.Register(statistics.NewSensorCollector(allSensors))
	if guard != nil {
		statistics.Register(statistics.NewDiskCollector(guard))
	}

	return controllers
}

func initializeSensors(configs []configuration.SensorConfig) []sensors.Sensor {
	var sensorList []sensors.Sensor
	for _, config := range configs {
		sensor, err := sensors.NewSensor(config)
		if err != nil {
			ui.Fatal("Unable to process sensor configuration: %s", config.ID)
		}

		currentValue, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Error reading sensor %s: %v", config.ID, err)
		}
		sensor.SetMovingAvg(currentValue)

		sensors.RegisterSensor(sensor)
		sensorList = append(sensorList, sensor)
	}
	return sensorList
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
	}
	return strings.TrimSpace(string(stdout))
}
