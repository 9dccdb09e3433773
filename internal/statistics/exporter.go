package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "ipmifan"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
