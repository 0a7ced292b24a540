package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// SuggestPrice asks the API to compare market prices for one product. The
// product id travels in the query string; the body is empty.
func (c *Client) SuggestPrice(ctx context.Context, productID int) (*domain.PriceSuggestion, error) {
	q := url.Values{}
	q.Set("product_id", strconv.Itoa(productID))

	var out domain.PriceSuggestion
	err := c.do(ctx, request{
		endpoint: "prices.suggest",
		method:   http.MethodPost,
		path:     "/api/prices/suggest",
		query:    q,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComparisons returns past comparisons, optionally for one product.
func (c *Client) ListComparisons(ctx context.Context, productID int) ([]domain.PriceComparison, error) {
	q := url.Values{}
	if productID > 0 {
		q.Set("product_id", strconv.Itoa(productID))
	}

	var out []domain.PriceComparison
	err := c.do(ctx, request{
		endpoint: "prices.comparisons",
		method:   http.MethodGet,
		path:     "/api/prices/comparisons",
		query:    q,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAlerts(ctx context.Context) ([]domain.PriceAlert, error) {
	var out []domain.PriceAlert
	err := c.do(ctx, request{
		endpoint: "prices.alerts",
		method:   http.MethodGet,
		path:     "/api/prices/alerts",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
