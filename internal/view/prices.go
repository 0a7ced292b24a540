package view

import (
	"strconv"

	"github.com/mobicorp/storefront/internal/core/domain"
)

const (
	SourceLinkLabel   = "Ver fuente"
	SelectPlaceholder = "Seleccionar un producto"
)

// ProductOption is an entry of the product selector: "<name> - <category>".
type ProductOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// SourceRow is one market source of a suggestion.
type SourceRow struct {
	Source    string `json:"source"`
	Price     string `json:"price"`
	URL       string `json:"url,omitempty"`
	LinkLabel string `json:"link_label,omitempty"`
}

// SuggestionPanel is the result block of a price comparison.
type SuggestionPanel struct {
	ComparisonID int         `json:"comparison_id"`
	Suggested    string      `json:"suggested_price"`
	Min          string      `json:"min_price"`
	Avg          string      `json:"avg_price"`
	Max          string      `json:"max_price"`
	Sources      []SourceRow `json:"sources"`
}

// ComparisonView is the price comparison screen. CanCompare mirrors the
// enabled state of the compare button.
type ComparisonView struct {
	Placeholder string           `json:"placeholder"`
	Options     []ProductOption  `json:"options"`
	SelectedID  int              `json:"selected_id,omitempty"`
	CanCompare  bool             `json:"can_compare"`
	Suggestion  *SuggestionPanel `json:"suggestion,omitempty"`
}

type HistoryRow struct {
	ID          int    `json:"id" csv:"id"`
	Product     string `json:"product" csv:"product"`
	Suggested   string `json:"suggested_price" csv:"suggested_price"`
	Range       string `json:"range" csv:"range"`
	SourceCount int    `json:"source_count" csv:"source_count"`
	CreatedAt   string `json:"created_at" csv:"created_at"`
}

type AlertRow struct {
	ProductID int    `json:"product_id" csv:"product_id"`
	Product   string `json:"product" csv:"product"`
	OldPrice  string `json:"old_price" csv:"old_price"`
	NewPrice  string `json:"new_price" csv:"new_price"`
	Variation string `json:"variation" csv:"variation"`
	CreatedAt string `json:"created_at" csv:"created_at"`
}

const dateLayout = "2006-01-02 15:04"

func NewProductOption(p domain.Product) ProductOption {
	return ProductOption{ID: p.ID, Label: p.Name + " - " + p.Category}
}

// NewComparisonView builds the screen for the given products. suggestion may
// be nil when nothing was compared yet.
func NewComparisonView(products []domain.Product, selectedID int, suggestion *domain.PriceSuggestion) ComparisonView {
	v := ComparisonView{
		Placeholder: SelectPlaceholder,
		Options:     make([]ProductOption, 0, len(products)),
		SelectedID:  selectedID,
		CanCompare:  selectedID > 0,
	}
	for _, p := range products {
		v.Options = append(v.Options, NewProductOption(p))
	}
	if suggestion != nil {
		panel := NewSuggestionPanel(*suggestion)
		v.Suggestion = &panel
	}
	return v
}

// NewSuggestionPanel formats a suggestion. Sources keep the server's order;
// only sources with a URL get a link.
func NewSuggestionPanel(s domain.PriceSuggestion) SuggestionPanel {
	panel := SuggestionPanel{
		ComparisonID: s.ComparisonID,
		Suggested:    FormatBs(s.SuggestedPrice),
		Min:          FormatBs(s.MinPrice),
		Avg:          FormatBs(s.AvgPrice),
		Max:          FormatBs(s.MaxPrice),
		Sources:      make([]SourceRow, 0, len(s.MarketSources)),
	}
	for _, src := range s.MarketSources {
		row := SourceRow{Source: src.Source, Price: FormatBs(src.Price)}
		if src.HasLink() {
			row.URL = *src.URL
			row.LinkLabel = SourceLinkLabel
		}
		panel.Sources = append(panel.Sources, row)
	}
	return panel
}

func NewHistoryRows(comparisons []domain.PriceComparison) []HistoryRow {
	rows := make([]HistoryRow, 0, len(comparisons))
	for _, c := range comparisons {
		product := "#" + strconv.Itoa(c.ProductID)
		if c.Product != nil {
			product = c.Product.Name
		}
		rows = append(rows, HistoryRow{
			ID:          c.ID,
			Product:     product,
			Suggested:   FormatBs(c.SuggestedPrice),
			Range:       FormatBs(c.MinPrice) + " - " + FormatBs(c.MaxPrice),
			SourceCount: c.SourceCount,
			CreatedAt:   formatDate(c.CreatedAt),
		})
	}
	return rows
}

func NewAlertRows(alerts []domain.PriceAlert) []AlertRow {
	rows := make([]AlertRow, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, AlertRow{
			ProductID: a.ProductID,
			Product:   a.ProductName,
			OldPrice:  FormatBs(a.OldPrice),
			NewPrice:  FormatBs(a.NewPrice),
			Variation: FormatPercent(a.VariationPercent),
			CreatedAt: formatDate(a.CreatedAt),
		})
	}
	return rows
}

func formatDate(ts domain.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(dateLayout)
}
