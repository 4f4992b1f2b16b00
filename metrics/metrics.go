// Package metrics defines the Prometheus collectors of an emufog run.
//
// Collectors are registered in a caller-provided registry; the command line
// writes them to a textfile for the node exporter after the run.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "emufog"

// Label values of Conversions.
const (
	StepCrossSystem = "cross_system"
	StepHighDegree  = "high_degree"
	StepConnector   = "connector"
)

// Label values of Duration.
const (
	PhaseBackbone  = "backbone"
	PhaseDevices   = "devices"
	PhasePlacement = "placement"
)

// Metrics holds the collectors of one run.
type Metrics struct {
	// Conversions counts nodes converted to the backbone, by step.
	Conversions *prometheus.CounterVec
	// Devices counts attached device nodes.
	Devices prometheus.Counter
	// Placements counts fog placements, by fog type id.
	Placements *prometheus.CounterVec
	// FailedRuns counts failed placement runs.
	FailedRuns prometheus.Counter
	// BudgetLeft is the number of fog nodes left after placement.
	BudgetLeft prometheus.Gauge
	// Duration observes the wall time of each phase in seconds.
	Duration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "backbone",
			Name:      "conversions_total",
			Help:      "Number of nodes converted to backbone nodes.",
		}, []string{"step"}),
		Devices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "devices_total",
			Help:      "Number of device nodes attached to edge nodes.",
		}),
		Placements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "fog",
			Name:      "placements_total",
			Help:      "Number of fog nodes placed.",
		}, []string{"fog_type"}),
		FailedRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "fog",
			Name:      "failed_runs_total",
			Help:      "Number of placement runs that did not cover every device.",
		}),
		BudgetLeft: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "fog",
			Name:      "budget_left",
			Help:      "Number of fog nodes left after placement.",
		}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "phase_duration_seconds",
			Help:      "Wall time of each pipeline phase.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"phase"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{
		m.Conversions, m.Devices, m.Placements, m.FailedRuns, m.BudgetLeft, m.Duration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering collector")
		}
	}
	return m, nil
}

// WriteFile writes all metrics gathered from g to path in the text
// exposition format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, g), "writing %s", path)
}
