// Package metrics exposes Prometheus counters for product lifecycle handling.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stockwatch"

// Lifecycle counts strategy decisions and delivered notifications.
// A nil *Lifecycle is valid and records nothing.
type Lifecycle struct {
	decisions     *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewLifecycle registers the lifecycle counters on reg.
func NewLifecycle(reg prometheus.Registerer) (*Lifecycle, error) {
	m := &Lifecycle{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_decisions_total",
			Help:      "Lifecycle decisions taken per product type.",
		}, []string{"product_type", "decision"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Notifications handed to the notifier, by kind and outcome.",
		}, []string{"kind", "result"}),
	}

	for _, c := range []prometheus.Collector{m.decisions, m.notifications} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register lifecycle metrics: %w", err)
		}
	}

	return m, nil
}

// ObserveDecision records one decision taken for a product type.
func (m *Lifecycle) ObserveDecision(productType, decision string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(productType, decision).Inc()
}

// ObserveNotification records one notification attempt.
func (m *Lifecycle) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notifications.WithLabelValues(kind, result).Inc()
}

// Decisions exposes the decision counter vector.
func (m *Lifecycle) Decisions() *prometheus.CounterVec {
	return m.decisions
}

// Notifications exposes the notification counter vector.
func (m *Lifecycle) Notifications() *prometheus.CounterVec {
	return m.notifications
}
