package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the request body (JSON or form) into dst and runs the
// echo validator on it.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// productIDValue reads product_id from the query string or form body.
// Anything missing or non-numeric is 0, i.e. "nothing selected".
func productIDValue(c echo.Context) int {
	id, err := strconv.Atoi(strings.TrimSpace(c.FormValue("product_id")))
	if err != nil || id < 0 {
		return 0
	}
	return id
}
