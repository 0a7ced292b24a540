package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// ListProducts fetches the catalog. Zero-valued query fields are omitted.
func (c *Client) ListProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	q := url.Values{}
	if query.Category != "" {
		q.Set("category", query.Category)
	}
	if query.Skip > 0 {
		q.Set("skip", strconv.Itoa(query.Skip))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}

	var out []domain.Product
	err := c.do(ctx, request{
		endpoint: "products.list",
		method:   http.MethodGet,
		path:     "/api/products",
		query:    q,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, request{
		endpoint: "products.get",
		method:   http.MethodGet,
		path:     "/api/products/" + strconv.Itoa(id),
	}, &out)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", domain.ErrProductNotFound, err)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.NewProduct) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, request{
		endpoint: "products.create",
		method:   http.MethodPost,
		path:     "/api/products",
		json:     p,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
