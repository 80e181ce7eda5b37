package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var provisionOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_provision_operations_total",
		Help: "Replication provisioning operations issued through the admin API.",
	},
	[]string{"op", "result"},
)

func observeProvision(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	provisionOperations.WithLabelValues(op, result).Inc()
}
