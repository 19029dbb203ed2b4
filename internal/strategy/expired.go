package strategy

import (
	"context"
	"fmt"

	"stockwatch/internal/model"
)

// ExpiredStrategy handles perishable products. ExpiryDate must be set.
type ExpiredStrategy struct {
	deps deps
}

// Handle consumes one unit while the product is in stock and fresh.
// Otherwise it announces the expiration and clears the stock. The
// notification repeats on every call once stock is zero.
func (s *ExpiredStrategy) Handle(ctx context.Context, product *model.Product) error {
	now := s.deps.clock.Now()

	if product.Available > 0 && product.ExpiryDate.After(now) {
		product.Available--
		if err := s.deps.save(ctx, product, DecisionConsumed); err != nil {
			return err
		}
		s.deps.observe(product, DecisionConsumed)
		return nil
	}

	if err := s.deps.notifier.SendExpirationNotification(ctx, product.Name, *product.ExpiryDate); err != nil {
		return fmt.Errorf("failed to send expiration notification: %w", err)
	}
	product.Available = 0
	if err := s.deps.save(ctx, product, DecisionExpired); err != nil {
		return err
	}
	s.deps.observe(product, DecisionExpired)
	return nil
}
