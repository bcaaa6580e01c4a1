package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
	"github.com/google/uuid"
)

var _ port.CatalogReader = (*CatalogService)(nil)
var _ port.CatalogWriter = (*CatalogService)(nil)
var _ port.CatalogCounter = (*CatalogService)(nil)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type CatalogService struct {
	repo     port.ProductsRepository
	producer port.ProductEventsProducer
}

func NewCatalog(
	repo port.ProductsRepository,
	producer port.ProductEventsProducer,
) CatalogService {
	return CatalogService{repo, producer}
}

func (s CatalogService) ListProducts(
	ctx context.Context, q domain.ProductQuery,
) (domain.ProductPage, error) {
	const op = "CatalogService.ListProducts"

	if err := ctx.Err(); err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	q = normalizeQuery(q)

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return page, nil
}

func (s CatalogService) GetProduct(
	ctx context.Context, id int64,
) (domain.Product, error) {
	const op = "CatalogService.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.EventCreated, created)
	return created, nil
}

func (s CatalogService) UpdateProduct(
	ctx context.Context, id int64, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.ID = id
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.EventUpdated, updated)
	return updated, nil
}

func (s CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogService.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.EventDeleted, deleted)
	return nil
}

func (s CatalogService) CountProducts(
	ctx context.Context, category string,
) (int64, error) {
	const op = "CatalogService.CountProducts"

	n, err := s.repo.Count(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// emitEvent publishes to the audit stream on a best-effort basis:
// a broker outage must not fail the catalog mutation itself.
func (s CatalogService) emitEvent(
	ctx context.Context, kind domain.EventKind, p domain.Product,
) {
	const op = "CatalogService.emitEvent"

	if s.producer == nil {
		return
	}

	ev := domain.ProductEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		Product:   p,
		Actor:     domain.ActorFromContext(ctx),
		UnixMilli: time.Now().UnixMilli(),
	}
	if err := s.producer.ProduceEvent(ctx, ev); err != nil {
		slog.Warn("failed to produce product event",
			"op", op, "kind", kind, "productID", p.ID, "err", err)
	}
}

func normalizeQuery(q domain.ProductQuery) domain.ProductQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = defaultPageSize
	}
	if q.Size > maxPageSize {
		q.Size = maxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	return q
}

func validateProduct(p domain.Product) error {
	if len(strings.TrimSpace(p.ProductName)) < 2 {
		return domain.ValidationError{
			Field:   "productName",
			Message: "must be at least 2 characters",
		}
	}
	if strings.TrimSpace(p.Category) == "" {
		return domain.ValidationError{
			Field:   "category",
			Message: "is required",
		}
	}
	if p.Price <= 0 {
		return domain.ValidationError{
			Field:   "price",
			Message: "must be greater than zero",
		}
	}
	if p.StockQuantity < 0 {
		return domain.ValidationError{
			Field:   "stockQuantity",
			Message: "must not be negative",
		}
	}
	return nil
}
