package imapparser

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gmimap/go-gmimap"
)

var (
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmimap_parse_total",
			Help: "Number of FETCH responses parsed, by result: ok or the error kind.",
		},
		[]string{"result"},
	)
	unknownAttributes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmimap_unknown_attribute_total",
			Help: "Number of FETCH responses rejected for an attribute missing from the grammar. Names are logged.",
		},
	)
)

func observeParse(err error) {
	result := "ok"
	if err != nil {
		result = gmimap.KindOf(err).String()
	}
	parseTotal.WithLabelValues(result).Inc()
}
