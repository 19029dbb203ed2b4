package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// logNotifier writes notifications to the structured log.
type logNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a Notifier that only logs.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With().Str("notifier", "log").Logger(),
	}
}

func (n *logNotifier) SendDelayNotification(_ context.Context, leadTime int, productName string) error {
	n.logger.Info().
		Str("kind", string(KindDelay)).
		Str("product", productName).
		Int("lead_time_days", leadTime).
		Msg("restock delayed")
	return nil
}

func (n *logNotifier) SendOutOfStockNotification(_ context.Context, productName string) error {
	n.logger.Info().
		Str("kind", string(KindOutOfStock)).
		Str("product", productName).
		Msg("product out of stock")
	return nil
}

func (n *logNotifier) SendExpirationNotification(_ context.Context, productName string, expiryDate time.Time) error {
	n.logger.Info().
		Str("kind", string(KindExpiration)).
		Str("product", productName).
		Time("expiry_date", expiryDate).
		Msg("product expired")
	return nil
}
