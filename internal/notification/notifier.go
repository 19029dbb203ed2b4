// Package notification delivers product lifecycle alerts.
package notification

import (
	"context"
	"time"

	"stockwatch/internal/metrics"
)

// Kind identifies the type of a lifecycle notification.
type Kind string

const (
	KindDelay      Kind = "DELAY"
	KindOutOfStock Kind = "OUT_OF_STOCK"
	KindExpiration Kind = "EXPIRATION"
)

// Notifier sends lifecycle notifications. Implementations return delivery
// failures to the caller instead of retrying.
type Notifier interface {
	// SendDelayNotification announces that a restock arrives in leadTime days.
	SendDelayNotification(ctx context.Context, leadTime int, productName string) error

	// SendOutOfStockNotification announces that a product will have no stock
	// for the relevant period.
	SendOutOfStockNotification(ctx context.Context, productName string) error

	// SendExpirationNotification announces that a product's shelf life ended.
	SendExpirationNotification(ctx context.Context, productName string, expiryDate time.Time) error
}

// Event is the wire form of a notification.
type Event struct {
	Kind        Kind       `json:"kind"`
	ProductName string     `json:"productName"`
	LeadTime    *int       `json:"leadTime,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	OccurredAt  time.Time  `json:"occurredAt"`
}

// instrumented counts every notification handed to the wrapped Notifier.
type instrumented struct {
	next    Notifier
	metrics *metrics.Lifecycle
}

// NewInstrumented wraps next so each send is recorded in m.
func NewInstrumented(next Notifier, m *metrics.Lifecycle) Notifier {
	return &instrumented{next: next, metrics: m}
}

func (n *instrumented) SendDelayNotification(ctx context.Context, leadTime int, productName string) error {
	err := n.next.SendDelayNotification(ctx, leadTime, productName)
	n.metrics.ObserveNotification(string(KindDelay), err)
	return err
}

func (n *instrumented) SendOutOfStockNotification(ctx context.Context, productName string) error {
	err := n.next.SendOutOfStockNotification(ctx, productName)
	n.metrics.ObserveNotification(string(KindOutOfStock), err)
	return err
}

func (n *instrumented) SendExpirationNotification(ctx context.Context, productName string, expiryDate time.Time) error {
	err := n.next.SendExpirationNotification(ctx, productName, expiryDate)
	n.metrics.ObserveNotification(string(KindExpiration), err)
	return err
}
