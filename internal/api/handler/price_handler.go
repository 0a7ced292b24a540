package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/view"
)

// PriceHandler serves the price comparison views.
type PriceHandler struct {
	prices ports.PriceService
}

func NewPriceHandler(prices ports.PriceService) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// Page handles GET /prices.
//
// @Summary      Price comparison view
// @Tags         prices
// @Produce      json
// @Param        product_id  query     int  false  "Preselected product"
// @Success      200         {object}  view.ComparisonView
// @Router       /prices [get]
func (h *PriceHandler) Page(c echo.Context) error {
	products, err := h.prices.ListProducts(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	return c.JSON(http.StatusOK, view.NewComparisonView(products, productIDValue(c), nil))
}

// Suggest handles POST /prices/suggest.
//
// @Summary      Compare market prices
// @Description  Asks the API for a suggested price for one product.
// @Tags         prices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        product_id  formData  int  true  "Product to compare"
// @Success      200         {object}  view.SuggestionPanel
// @Failure      400         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Failure      502         {object}  map[string]string
// @Router       /prices/suggest [post]
func (h *PriceHandler) Suggest(c echo.Context) error {
	s, err := h.prices.Suggest(c.Request().Context(), productIDValue(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.NewSuggestionPanel(*s))
}

// History handles GET /prices/history.
//
// @Summary      Past comparisons
// @Tags         prices
// @Produce      json
// @Param        product_id  query  int  false  "Only this product"
// @Success      200         {array}  view.HistoryRow
// @Router       /prices/history [get]
func (h *PriceHandler) History(c echo.Context) error {
	comparisons, err := h.prices.History(c.Request().Context(), productIDValue(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.NewHistoryRows(comparisons))
}

// Alerts handles GET /prices/alerts.
//
// @Summary      Price alerts
// @Tags         prices
// @Produce      json
// @Success      200  {array}  view.AlertRow
// @Router       /prices/alerts [get]
func (h *PriceHandler) Alerts(c echo.Context) error {
	alerts, err := h.prices.Alerts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.NewAlertRows(alerts))
}
