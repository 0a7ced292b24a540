package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/view"
)

func TestPriceHandler_Page(t *testing.T) {
	e := newEcho()
	h := NewPriceHandler(&stubPriceService{products: catalogFixture()})

	rec := httptest.NewRecorder()
	if err := h.Page(e.NewContext(httptest.NewRequest(http.MethodGet, "/prices?product_id=2", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp view.ComparisonView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.SelectedID != 2 || !resp.CanCompare || len(resp.Options) != 2 {
		t.Fatalf("unexpected view: %+v", resp)
	}
	if resp.Options[0].Label != "Silla Ejecutiva - Sillas Ejecutivas" {
		t.Fatalf("unexpected label %q", resp.Options[0].Label)
	}
}

func TestPriceHandler_Suggest(t *testing.T) {
	e := newEcho()
	link := "http://b"
	h := NewPriceHandler(&stubPriceService{
		suggestFn: func(id int) (*domain.PriceSuggestion, error) {
			if id != 1 {
				t.Fatalf("unexpected product id %d", id)
			}
			return &domain.PriceSuggestion{
				SuggestedPrice: 150.5, MinPrice: 100, MaxPrice: 200, AvgPrice: 150,
				MarketSources: []domain.MarketSource{{Source: "A", Price: 100}, {Source: "B", Price: 200, URL: &link}},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	if err := h.Suggest(e.NewContext(formRequest(http.MethodPost, "/prices/suggest", url.Values{"product_id": {"1"}}), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var panel view.SuggestionPanel
	_ = json.Unmarshal(rec.Body.Bytes(), &panel)
	if panel.Suggested != "Bs. 150.50" || len(panel.Sources) != 2 || panel.Sources[1].LinkLabel != view.SourceLinkLabel {
		t.Fatalf("unexpected panel: %+v", panel)
	}
}

func TestPriceHandler_Suggest_NoSelection(t *testing.T) {
	e := newEcho()
	h := NewPriceHandler(&stubPriceService{
		suggestFn: func(id int) (*domain.PriceSuggestion, error) {
			if id != 0 {
				t.Fatalf("expected no selection, got %d", id)
			}
			return nil, domain.ErrNoProductSelected
		},
	})

	err := h.Suggest(e.NewContext(formRequest(http.MethodPost, "/prices/suggest", url.Values{"product_id": {"abc"}}), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrNoProductSelected) {
		t.Fatalf("expected ErrNoProductSelected, got %v", err)
	}
}

func TestPriceHandler_HistoryAndAlerts(t *testing.T) {
	e := newEcho()
	stub := &stubPriceService{
		history: []domain.PriceComparison{{ID: 1, ProductID: 4, SuggestedPrice: 10}},
		alerts:  []domain.PriceAlert{{ProductName: "Silla", OldPrice: 1, NewPrice: 2, VariationPercent: 100}},
	}
	h := NewPriceHandler(stub)

	rec := httptest.NewRecorder()
	if err := h.History(e.NewContext(httptest.NewRequest(http.MethodGet, "/prices/history?product_id=4", nil), rec)); err != nil {
		t.Fatalf("history: %v", err)
	}
	if stub.historyID != 4 {
		t.Fatalf("expected product filter 4, got %d", stub.historyID)
	}
	var rows []view.HistoryRow
	_ = json.Unmarshal(rec.Body.Bytes(), &rows)
	if len(rows) != 1 || rows[0].Suggested != "Bs. 10.00" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	rec = httptest.NewRecorder()
	if err := h.Alerts(e.NewContext(httptest.NewRequest(http.MethodGet, "/prices/alerts", nil), rec)); err != nil {
		t.Fatalf("alerts: %v", err)
	}
	var alerts []view.AlertRow
	_ = json.Unmarshal(rec.Body.Bytes(), &alerts)
	if len(alerts) != 1 || alerts[0].Variation != "+100.0%" {
		t.Fatalf("unexpected alerts: %+v", alerts)
	}
}
