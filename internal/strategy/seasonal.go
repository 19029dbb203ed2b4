package strategy

import (
	"context"
	"fmt"

	"stockwatch/internal/model"
)

// SeasonalStrategy handles products sold only between SeasonStartDate and
// SeasonEndDate. Both dates must be set.
type SeasonalStrategy struct {
	deps deps
}

func (s *SeasonalStrategy) Handle(ctx context.Context, product *model.Product) error {
	now := s.deps.clock.Now()
	restock := now.AddDate(0, 0, product.LeadTime)

	switch {
	case restock.After(*product.SeasonEndDate):
		if err := s.deps.notifier.SendOutOfStockNotification(ctx, product.Name); err != nil {
			return fmt.Errorf("failed to send out of stock notification: %w", err)
		}
		product.Available = 0
		if err := s.deps.save(ctx, product, DecisionRestockAfterSeason); err != nil {
			return err
		}
		s.deps.observe(product, DecisionRestockAfterSeason)
		return nil

	case product.SeasonStartDate.After(now):
		if err := s.deps.notifier.SendOutOfStockNotification(ctx, product.Name); err != nil {
			return fmt.Errorf("failed to send out of stock notification: %w", err)
		}
		if err := s.deps.save(ctx, product, DecisionSeasonNotStarted); err != nil {
			return err
		}
		s.deps.observe(product, DecisionSeasonNotStarted)
		return nil

	default:
		return s.deps.notifyDelay(ctx, product.LeadTime, product)
	}
}
