package domain

// MarketSource is one third-party price data point.
type MarketSource struct {
	Source string  `json:"source"`
	Price  float64 `json:"price"`
	URL    *string `json:"url,omitempty"`
}

// HasLink reports whether the source carries a non-empty URL.
func (m MarketSource) HasLink() bool {
	return m.URL != nil && *m.URL != ""
}

// PriceSuggestion is computed by the server per request and never cached.
type PriceSuggestion struct {
	SuggestedPrice float64        `json:"suggested_price"`
	MinPrice       float64        `json:"min_price"`
	MaxPrice       float64        `json:"max_price"`
	AvgPrice       float64        `json:"avg_price"`
	MarketSources  []MarketSource `json:"market_sources"`
	ComparisonID   int            `json:"comparison_id"`
}

// PriceComparison is a stored suggestion from GET /api/prices/comparisons.
type PriceComparison struct {
	ID             int       `json:"id"`
	ProductID      int       `json:"product_id"`
	MinPrice       float64   `json:"min_price"`
	MaxPrice       float64   `json:"max_price"`
	AvgPrice       float64   `json:"avg_price"`
	SuggestedPrice float64   `json:"suggested_price"`
	SourceCount    int       `json:"source_count"`
	CreatedAt      Timestamp `json:"created_at"`
	Product        *Product  `json:"product,omitempty"`
}

// PriceAlert flags a product whose market average drifted from its list price.
type PriceAlert struct {
	ID               int       `json:"id"`
	ProductID        int       `json:"product_id"`
	ProductName      string    `json:"product_name"`
	OldPrice         float64   `json:"old_price"`
	NewPrice         float64   `json:"new_price"`
	VariationPercent float64   `json:"variation_percent"`
	CreatedAt        Timestamp `json:"created_at"`
}
