package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ipmifan/ipmifan/internal/sensors"
)

type SensorCollector struct {
	sensors []sensors.Sensor

	movingAvg *prometheus.Desc
}

func NewSensorCollector(s []sensors.Sensor) *SensorCollector {
	return &SensorCollector{
		sensors: s,
		movingAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, "sensor", "temperature_moving_avg"),
			"Moving average temperature of the sensor in °C",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.movingAvg
}

func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.sensors {
		ch <- prometheus.MustNewConstMetric(collector.movingAvg, prometheus.GaugeValue, sensor.GetMovingAvg(), sensor.GetId())
	}
}
