package observability

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "gazeseq"
)

var (
	RowVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "row", "verify_duration_seconds"),
		Help:    "Duration of row verification in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"verifier"})
	RowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "row", "rejected_total"),
		Help: "Rows excluded from traces, by the verifier that rejected them",
	}, []string{"verifier"})
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "analysis", "stage_duration_seconds"),
		Help:    "Duration of an analysis pipeline stage in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"stage"})
	PatternsDiscovered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "analysis", "patterns_discovered"),
		Help: "Number of patterns returned by the pattern source in the last run",
	}, []string{"dataset", "source"})
	CellsCounted = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "counter", "cells_total"),
		Help: "Pattern x participant cells evaluated by the occurrence counter",
	})
	WorkerCalcDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last batch dataset calculation in seconds",
	}, []string{"dataset"})
)

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.Wrap(err, "failed to write metrics textfile")
	}
	return nil
}
