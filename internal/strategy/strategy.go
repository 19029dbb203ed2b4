// Package strategy applies the per-type inventory lifecycle rules to a product.
package strategy

import (
	"context"
	"fmt"

	"stockwatch/internal/clock"
	"stockwatch/internal/metrics"
	"stockwatch/internal/model"
	"stockwatch/internal/notification"
	"stockwatch/internal/repository"

	"github.com/rs/zerolog"
)

// Decision labels recorded for every handled product.
const (
	DecisionNoop               = "noop"
	DecisionDelay              = "delay"
	DecisionRestockAfterSeason = "restock_after_season"
	DecisionSeasonNotStarted   = "season_not_started"
	DecisionConsumed           = "consumed"
	DecisionExpired            = "expired"
)

// Strategy applies the lifecycle rules of one product type.
// Handle may mutate Available and LeadTime, persists the product when it
// changes state and sends the matching notification.
type Strategy interface {
	Handle(ctx context.Context, product *model.Product) error
}

// deps are the collaborators shared by every strategy.
type deps struct {
	repo     repository.ProductRepository
	notifier notification.Notifier
	clock    clock.Clock
	metrics  *metrics.Lifecycle
	logger   zerolog.Logger
}

// Factory selects the strategy for a product type.
type Factory struct {
	deps deps
}

// NewFactory creates a factory whose strategies share the given collaborators.
// m may be nil.
func NewFactory(
	repo repository.ProductRepository,
	notifier notification.Notifier,
	clk clock.Clock,
	m *metrics.Lifecycle,
	logger zerolog.Logger,
) *Factory {
	return &Factory{
		deps: deps{
			repo:     repo,
			notifier: notifier,
			clock:    clk,
			metrics:  m,
			logger:   logger.With().Str("component", "strategy").Logger(),
		},
	}
}

// GetStrategy returns a fresh strategy for the product's type.
// Unknown types are handled as NORMAL.
func (f *Factory) GetStrategy(product *model.Product) Strategy {
	switch product.Type {
	case model.ProductTypeSeasonal:
		return &SeasonalStrategy{deps: f.deps}
	case model.ProductTypeExpirable:
		return &ExpiredStrategy{deps: f.deps}
	case model.ProductTypeNormal:
		return f.Normal()
	default:
		f.deps.logger.Warn().
			Int64("product_id", product.ID).
			Str("product_type", string(product.Type)).
			Msg("unknown product type, falling back to normal")
		return f.Normal()
	}
}

// Normal returns the strategy for NORMAL products.
func (f *Factory) Normal() *NormalStrategy {
	return &NormalStrategy{deps: f.deps}
}

// save persists the product and records the decision that led to the write.
func (d deps) save(ctx context.Context, product *model.Product, decision string) error {
	if err := d.repo.Update(ctx, product); err != nil {
		d.logger.Error().Err(err).
			Int64("product_id", product.ID).
			Str("decision", decision).
			Msg("failed to persist product")
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return nil
}

// notifyDelay sets the lead time, persists the product and announces the delay.
func (d deps) notifyDelay(ctx context.Context, leadTime int, product *model.Product) error {
	product.LeadTime = leadTime
	if err := d.save(ctx, product, DecisionDelay); err != nil {
		return err
	}

	if err := d.notifier.SendDelayNotification(ctx, leadTime, product.Name); err != nil {
		return fmt.Errorf("failed to send delay notification: %w", err)
	}

	d.observe(product, DecisionDelay)
	return nil
}

func (d deps) observe(product *model.Product, decision string) {
	d.metrics.ObserveDecision(string(product.Type), decision)
	d.logger.Debug().
		Int64("product_id", product.ID).
		Str("product_type", string(product.Type)).
		Str("decision", decision).
		Int("available", product.Available).
		Int("lead_time", product.LeadTime).
		Msg("lifecycle decision applied")
}
