package ports

import (
	"context"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// ProductForm holds the create form exactly as typed. Price and Stock are
// coerced to numbers only after the required check passes.
type ProductForm struct {
	Name        string `json:"name"        form:"name"        validate:"required"`
	Category    string `json:"category"    form:"category"    validate:"required"`
	Price       string `json:"price"       form:"price"       validate:"required"`
	Stock       string `json:"stock"       form:"stock"       validate:"required"`
	Description string `json:"description" form:"description"`
}

// CatalogService drives the product list/create view.
type CatalogService interface {
	// List fetches the whole collection and remembers it for Filter.
	List(ctx context.Context, category string) ([]domain.Product, error)
	// Filter matches term against the last fetched list, never the server.
	Filter(term string) []domain.Product
	Get(ctx context.Context, id int) (*domain.Product, error)
	// Create posts the form and then re-fetches the full list exactly once.
	Create(ctx context.Context, form ProductForm) ([]domain.Product, error)
}
