package service

import (
	"context"
	"fmt"

	"stockwatch/internal/model"
	"stockwatch/internal/repository"
	"stockwatch/internal/strategy"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "stockwatch/internal/service"

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	strategies  *strategy.Factory
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	strategies *strategy.Factory,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		strategies:  strategies,
		tracer:      otel.Tracer(tracerName),
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		s.logger.Warn().Int64("product_id", id).Msg("product ID is not positive")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (s *productService) GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to get products by IDs")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("requested", len(ids)).
		Int("found", len(products)).
		Msg("retrieved products by IDs")

	return products, nil
}

func (s *productService) NotifyDelay(ctx context.Context, leadTime int, product *model.Product) (err error) {
	ctx, span := s.startSpan(ctx, "ProductService.NotifyDelay", product)
	span.SetAttributes(attribute.Int("product.lead_time", leadTime))
	defer func() { endSpan(span, err) }()

	if err = s.strategies.Normal().NotifyDelay(ctx, leadTime, product); err != nil {
		s.logger.Error().Err(err).
			Int64("product_id", product.ID).
			Int("lead_time", leadTime).
			Msg("failed to notify delay")
		return err
	}

	return nil
}

func (s *productService) HandleProduct(ctx context.Context, product *model.Product) error {
	return s.handle(ctx, "ProductService.HandleProduct", product)
}

func (s *productService) HandleSeasonalProduct(ctx context.Context, product *model.Product) error {
	return s.handle(ctx, "ProductService.HandleSeasonalProduct", product)
}

func (s *productService) HandleExpiredProduct(ctx context.Context, product *model.Product) error {
	return s.handle(ctx, "ProductService.HandleExpiredProduct", product)
}

func (s *productService) HandleByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.HandleProduct(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) NotifyDelayByID(ctx context.Context, id int64, leadTime int) (*model.Product, error) {
	if leadTime < 0 {
		return nil, model.ErrInvalidLeadTime
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.NotifyDelay(ctx, leadTime, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) handle(ctx context.Context, op string, product *model.Product) (err error) {
	ctx, span := s.startSpan(ctx, op, product)
	defer func() { endSpan(span, err) }()

	if err = s.strategies.GetStrategy(product).Handle(ctx, product); err != nil {
		s.logger.Error().Err(err).
			Int64("product_id", product.ID).
			Str("product_type", string(product.Type)).
			Msg("failed to handle product")
		return err
	}

	s.logger.Debug().
		Int64("product_id", product.ID).
		Int("available", product.Available).
		Int("lead_time", product.LeadTime).
		Msg("product handled")

	return nil
}

func (s *productService) startSpan(ctx context.Context, name string, product *model.Product) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("product.id", product.ID),
		attribute.String("product.type", string(product.Type)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
