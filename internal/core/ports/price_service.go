package ports

import (
	"context"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// SuggestionResult pairs a product with its suggestion or the failure.
type SuggestionResult struct {
	ProductID  int
	Suggestion *domain.PriceSuggestion
	Err        error
}

// PriceService drives the price comparison view.
type PriceService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Suggest(ctx context.Context, productID int) (*domain.PriceSuggestion, error)
	SuggestAll(ctx context.Context, productIDs []int) []SuggestionResult
	History(ctx context.Context, productID int) ([]domain.PriceComparison, error)
	Alerts(ctx context.Context) ([]domain.PriceAlert, error)
}
