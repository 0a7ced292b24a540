package view

import (
	"strconv"

	"github.com/mobicorp/storefront/internal/core/domain"
)

const (
	EmptyCatalogMessage = "No se encontraron muebles"
	LoadingMessage      = "Cargando..."
)

// ProductCard is one product as the catalog grid shows it.
type ProductCard struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Stock       string `json:"stock"`
	Description string `json:"description,omitempty"`
}

// CatalogView is the product list screen: the filtered cards plus what the
// create form needs.
type CatalogView struct {
	Query        string        `json:"query"`
	Items        []ProductCard `json:"items"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Categories   []string      `json:"categories"`
}

// NewProductCard formats a single product.
func NewProductCard(p domain.Product) ProductCard {
	card := ProductCard{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    FormatOptionalBs(p.Price),
		Stock:    strconv.Itoa(p.Stock) + " unidades",
	}
	if p.Description != nil {
		card.Description = *p.Description
	}
	return card
}

// NewCatalogView builds the list screen for products already filtered by query.
func NewCatalogView(products []domain.Product, query string) CatalogView {
	v := CatalogView{
		Query:      query,
		Items:      make([]ProductCard, 0, len(products)),
		Categories: domain.Categories,
	}
	for _, p := range products {
		v.Items = append(v.Items, NewProductCard(p))
	}
	if len(v.Items) == 0 {
		v.EmptyMessage = EmptyCatalogMessage
	}
	return v
}
