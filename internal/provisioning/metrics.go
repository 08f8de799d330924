package provisioning

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run provisioning metrics on its own registry. A nil
// *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	stepDuration *prometheus.HistogramVec
	ensureTotal  *prometheus.CounterVec
	pollAttempts *prometheus.CounterVec
}

// NewMetrics creates and registers the provisioning collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lexdeploy_step_duration_seconds",
			Help:    "Duration of provisioning steps including readiness waits.",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}, []string{"kind", "state"}),
		ensureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdeploy_ensure_total",
			Help: "Resources ensured, by how they were obtained.",
		}, []string{"kind", "resolution"}),
		pollAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdeploy_poll_attempts_total",
			Help: "Readiness status fetches, by final poll outcome.",
		}, []string{"kind", "outcome"}),
	}
	m.Registry.MustRegister(m.stepDuration, m.ensureTotal, m.pollAttempts)
	return m
}

func (m *Metrics) observeStep(kind Kind, state StepState, d time.Duration) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(string(kind), string(state)).Observe(d.Seconds())
}

func (m *Metrics) observeEnsure(kind Kind, resolution Resolution) {
	if m == nil {
		return
	}
	m.ensureTotal.WithLabelValues(string(kind), string(resolution)).Inc()
}

func (m *Metrics) observePoll(kind Kind, outcome string, attempts int) {
	if m == nil || attempts == 0 {
		return
	}
	m.pollAttempts.WithLabelValues(string(kind), outcome).Add(float64(attempts))
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
