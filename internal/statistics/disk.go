package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/disks"
)

type DiskCollector struct {
	guard *controller.StandbyGuard

	standby      *prometheus.Desc
	arrayStandby *prometheus.Desc
}

func NewDiskCollector(guard *controller.StandbyGuard) *DiskCollector {
	return &DiskCollector{
		guard: guard,
		standby: prometheus.NewDesc(prometheus.BuildFQName(namespace, "disk", "standby"),
			"1 if the disk is in standby, 0 otherwise",
			[]string{"device"}, nil,
		),
		arrayStandby: prometheus.NewDesc(prometheus.BuildFQName(namespace, "disk", "array_standby"),
			"1 while the standby guard considers the whole array asleep",
			nil, nil,
		),
	}
}

func (collector *DiskCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.standby
	ch <- collector.arrayStandby
}

func (collector *DiskCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.guard.Snapshot()

	for device, state := range snapshot.States {
		value := 0.0
		if state == disks.PowerStateStandby {
			value = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.standby, prometheus.GaugeValue, value, device)
	}

	arrayValue := 0.0
	if snapshot.InStandby {
		arrayValue = 1.0
	}
	ch <- prometheus.MustNewConstMetric(collector.arrayStandby, prometheus.GaugeValue, arrayValue)
}
