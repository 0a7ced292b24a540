package ports

import (
	"context"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// AuthAPI is the authentication surface of the storefront API.
// Me takes the token explicitly so a freshly issued token can be checked
// before it becomes the session's token.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Me(ctx context.Context, token string) (*domain.User, error)
}

// ProductAPI is the catalog surface of the storefront API.
type ProductAPI interface {
	ListProducts(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.NewProduct) (*domain.Product, error)
}

// PriceAPI is the price comparison surface of the storefront API.
type PriceAPI interface {
	SuggestPrice(ctx context.Context, productID int) (*domain.PriceSuggestion, error)
	ListComparisons(ctx context.Context, productID int) ([]domain.PriceComparison, error)
	ListAlerts(ctx context.Context) ([]domain.PriceAlert, error)
}
