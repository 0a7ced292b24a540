package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/metrics"
)

// CompareFailed is shown when a suggestion fails without a server detail.
const CompareFailed = "Error al comparar precios"

// SuggestionDispatcher fans a batch of product ids out to workers.
type SuggestionDispatcher interface {
	Dispatch(ctx context.Context, productIDs []int, fn func(ctx context.Context, productID int) ports.SuggestionResult) []ports.SuggestionResult
}

type priceService struct {
	products   ports.ProductAPI
	prices     ports.PriceAPI
	dispatcher SuggestionDispatcher
	log        zerolog.Logger

	suggesting inFlight
}

// NewPriceService returns a PriceService implementation. A nil dispatcher
// makes SuggestAll run sequentially.
func NewPriceService(products ports.ProductAPI, prices ports.PriceAPI, dispatcher SuggestionDispatcher, log zerolog.Logger) ports.PriceService {
	return &priceService{
		products:   products,
		prices:     prices,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (s *priceService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx, domain.ProductQuery{})
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching products")
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Suggest requests one suggestion. A second call while the first is pending
// is rejected with ErrRequestInFlight.
func (s *priceService) Suggest(ctx context.Context, productID int) (*domain.PriceSuggestion, error) {
	if productID <= 0 {
		return nil, domain.ErrNoProductSelected
	}
	if !s.suggesting.acquire() {
		metrics.SuggestionsTotal.WithLabelValues("busy").Inc()
		return nil, domain.ErrRequestInFlight
	}
	defer s.suggesting.release()

	res := s.suggest(ctx, productID)
	return res.Suggestion, res.Err
}

// SuggestAll requests suggestions for every id, bypassing the single-flight
// guard. Results keep the order of productIDs.
func (s *priceService) SuggestAll(ctx context.Context, productIDs []int) []ports.SuggestionResult {
	if s.dispatcher != nil {
		return s.dispatcher.Dispatch(ctx, productIDs, s.suggest)
	}
	results := make([]ports.SuggestionResult, len(productIDs))
	for i, id := range productIDs {
		results[i] = s.suggest(ctx, id)
	}
	return results
}

func (s *priceService) History(ctx context.Context, productID int) ([]domain.PriceComparison, error) {
	history, err := s.prices.ListComparisons(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	return history, nil
}

func (s *priceService) Alerts(ctx context.Context) ([]domain.PriceAlert, error) {
	alerts, err := s.prices.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list price alerts: %w", err)
	}
	return alerts, nil
}

func (s *priceService) suggest(ctx context.Context, productID int) ports.SuggestionResult {
	suggestion, err := s.prices.SuggestPrice(ctx, productID)
	if err != nil {
		metrics.SuggestionsTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Int("product_id", productID).Msg("price suggestion failed")
		if errors.Is(err, domain.ErrUnauthorized) {
			return ports.SuggestionResult{ProductID: productID, Err: err}
		}
		return ports.SuggestionResult{ProductID: productID, Err: domain.AlertFrom(err, CompareFailed)}
	}

	metrics.SuggestionsTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Int("product_id", productID).
		Int("comparison_id", suggestion.ComparisonID).
		Int("sources", len(suggestion.MarketSources)).
		Msg("price suggestion received")
	return ports.SuggestionResult{ProductID: productID, Suggestion: suggestion}
}
