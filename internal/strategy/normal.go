package strategy

import (
	"context"

	"stockwatch/internal/model"
)

// NormalStrategy handles products without seasonal or expiry rules.
type NormalStrategy struct {
	deps deps
}

// Handle leaves the product untouched.
func (s *NormalStrategy) Handle(_ context.Context, product *model.Product) error {
	s.deps.observe(product, DecisionNoop)
	return nil
}

// NotifyDelay records a new restock lead time and announces it.
func (s *NormalStrategy) NotifyDelay(ctx context.Context, leadTime int, product *model.Product) error {
	return s.deps.notifyDelay(ctx, leadTime, product)
}
