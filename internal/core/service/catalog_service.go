package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/metrics"
)

// CreateProductFailed is shown when the server rejects a new product.
const CreateProductFailed = "Error al crear el producto"

// FormValidator checks struct tags; *validate.Validator satisfies it.
type FormValidator interface {
	Validate(i any) error
}

type catalogService struct {
	api      ports.ProductAPI
	validate FormValidator
	log      zerolog.Logger

	mu       sync.RWMutex
	last     []domain.Product
	creating inFlight
}

// NewCatalogService returns a CatalogService implementation.
func NewCatalogService(api ports.ProductAPI, validate FormValidator, log zerolog.Logger) ports.CatalogService {
	return &catalogService{api: api, validate: validate, log: log}
}

func (s *catalogService) List(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.api.ListProducts(ctx, domain.ProductQuery{Category: category})
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching products")
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.mu.Lock()
	s.last = append([]domain.Product(nil), products...)
	s.mu.Unlock()
	return products, nil
}

func (s *catalogService) Filter(term string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterProducts(s.last, term)
}

func (s *catalogService) Get(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrProductNotFound
	}
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *catalogService) Create(ctx context.Context, form ports.ProductForm) ([]domain.Product, error) {
	if !s.creating.acquire() {
		metrics.ProductsCreatedTotal.WithLabelValues("busy").Inc()
		return nil, domain.ErrRequestInFlight
	}
	defer s.creating.release()

	payload, err := s.coerce(form)
	if err != nil {
		metrics.ProductsCreatedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	created, err := s.api.CreateProduct(ctx, payload)
	if err != nil {
		metrics.ProductsCreatedTotal.WithLabelValues("rejected").Inc()
		s.log.Error().Err(err).Str("name", payload.Name).Msg("error creating product")
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		return nil, &domain.UserAlert{Message: CreateProductFailed, Err: err}
	}

	metrics.ProductsCreatedTotal.WithLabelValues("ok").Inc()
	s.log.Info().Int("product_id", created.ID).Str("name", created.Name).Msg("product created")

	// The product exists once the POST succeeded; a failed re-fetch only
	// leaves the last fetched list in place.
	products, err := s.List(ctx, "")
	if err != nil {
		s.log.Error().Err(err).Int("product_id", created.ID).Msg("product list not refreshed after create")
		s.mu.RLock()
		defer s.mu.RUnlock()
		return append([]domain.Product(nil), s.last...), nil
	}
	return products, nil
}

// coerce applies the required check and turns the typed price and stock into
// numbers.
func (s *catalogService) coerce(form ports.ProductForm) (domain.NewProduct, error) {
	if err := s.validate.Validate(form); err != nil {
		return domain.NewProduct{}, fmt.Errorf("%w: %v", domain.ErrInvalidProductForm, err)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	if err != nil {
		return domain.NewProduct{}, fmt.Errorf("%w: price must be a number", domain.ErrInvalidProductForm)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(form.Stock))
	if err != nil {
		return domain.NewProduct{}, fmt.Errorf("%w: stock must be a whole number", domain.ErrInvalidProductForm)
	}

	return domain.NewProduct{
		Name:        form.Name,
		Category:    form.Category,
		Price:       price,
		Stock:       stock,
		Description: form.Description,
	}, nil
}
