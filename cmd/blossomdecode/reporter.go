package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// prometheusReporter is the decoder.Reporter implementation this CLI wires
// in behind -metrics: a decode counter and a weight histogram, the one
// concrete consumer of decoder.Reporter in this repository (spec 6.6).
type prometheusReporter struct {
	decodes prometheus.Counter
	weight  prometheus.Histogram
}

func newPrometheusReporter(reg prometheus.Registerer) *prometheusReporter {
	factory := promauto.With(reg)

	return &prometheusReporter{
		decodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "blossomdecode_decodes_total",
			Help: "Total number of syndromes decoded.",
		}),
		weight: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "blossomdecode_decode_weight",
			Help:    "Matching weight of each decoded syndrome.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ReportDecode implements decoder.Reporter.
func (r *prometheusReporter) ReportDecode(_ int, weight int64, _ []byte) {
	r.decodes.Inc()
	r.weight.Observe(float64(weight))
}
