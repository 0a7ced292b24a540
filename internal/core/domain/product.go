package domain

import "strings"

// Categories is the fixed furniture catalogue offered by the create form.
var Categories = []string{
	"Sillas Ejecutivas",
	"Escritorios",
	"Mesas de Reunión",
	"Muebles de Oficina",
	"Estanterías",
	"Archiveros",
	"Sofás y Sillones",
	"Muebles de Recepción",
	"Accesorios",
}

// Product is a read-only copy of a catalog item owned by the server.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price"`
	Stock       int       `json:"stock"`
	SKU         *string   `json:"sku,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}

// NewProduct is the payload for POST /api/products after numeric coercion.
type NewProduct struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

// ProductQuery carries the optional server-side list filters.
type ProductQuery struct {
	Category string
	Skip     int
	Limit    int
}

// FilterProducts keeps the products whose name or category contains term,
// ignoring case. An empty term keeps everything. The input is not modified.
func FilterProducts(products []Product, term string) []Product {
	needle := strings.ToLower(term)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}
