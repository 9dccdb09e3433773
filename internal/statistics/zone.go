package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ipmifan/ipmifan/internal/controller"
)

type ZoneCollector struct {
	controllers []controller.ZoneController

	temperature     *prometheus.Desc
	movingAvg       *prometheus.Desc
	level           *prometheus.Desc
	commandFailures *prometheus.Desc
}

func NewZoneCollector(controllers []controller.ZoneController) *ZoneCollector {
	return &ZoneCollector{
		controllers: controllers,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, "zone", "temperature"),
			"Aggregated zone temperature in °C",
			[]string{"zone"}, nil,
		),
		movingAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, "zone", "temperature_moving_avg"),
			"Moving average of the aggregated zone temperature in °C",
			[]string{"zone"}, nil,
		),
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, "zone", "fan_level"),
			"Fan duty level last applied to the zone (0..100)",
			[]string{"zone"}, nil,
		),
		commandFailures: prometheus.NewDesc(prometheus.BuildFQName(namespace, "zone", "command_failures_total"),
			"Number of failed fan level commands for the zone",
			[]string{"zone"}, nil,
		),
	}
}

func (collector *ZoneCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.movingAvg
	ch <- collector.level
	ch <- collector.commandFailures
}

func (collector *ZoneCollector) Collect(ch chan<- prometheus.Metric) {
	for _, zoneController := range collector.controllers {
		snapshot := zoneController.Snapshot()
		if snapshot.TemperatureValid {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, snapshot.Temperature, snapshot.Zone)
			ch <- prometheus.MustNewConstMetric(collector.movingAvg, prometheus.GaugeValue, snapshot.MovingAvg, snapshot.Zone)
		}
		if snapshot.LevelValid {
			ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(snapshot.Level), snapshot.Zone)
		}
		ch <- prometheus.MustNewConstMetric(collector.commandFailures, prometheus.CounterValue, float64(snapshot.CommandFailures), snapshot.Zone)
	}
}
