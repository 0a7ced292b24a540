package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/view"
)

// ProductHandler serves the catalog views.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /products.
//
// @Summary      Product list view
// @Description  Fetches the catalog, then filters it by name or category with q.
// @Tags         products
// @Produce      json
// @Param        q         query     string  false  "Case-insensitive search over name and category"
// @Param        category  query     string  false  "Server-side category filter"
// @Success      200       {object}  view.CatalogView
// @Failure      303       "Redirect to /login when the session ends"
// @Failure      502       {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	q := c.QueryParam("q")
	if _, err := h.catalog.List(c.Request().Context(), c.QueryParam("category")); err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	return c.JSON(http.StatusOK, view.NewCatalogView(h.catalog.Filter(q), q))
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Description  Posts the form, then returns the freshly re-fetched catalog.
// @Tags         products
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      ports.ProductForm  true  "Product form as typed"
// @Success      201   {object}  view.CatalogView
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var form ports.ProductForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	products, err := h.catalog.Create(c.Request().Context(), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view.NewCatalogView(products, ""))
}

// Get handles GET /products/:id.
//
// @Summary      Product detail
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  view.ProductCard
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.NewProductCard(*p))
}
