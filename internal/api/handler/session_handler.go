package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/view"
)

const (
	LoginFailed    = "Error al iniciar sesión"
	RegisterFailed = "Error al registrar la cuenta"

	// HomeLocation is where a successful login or registration lands.
	HomeLocation = "/products"
)

// SessionHandler serves the login, register, and logout views.
type SessionHandler struct {
	sessions ports.SessionService
	now      func() time.Time
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"     form:"email"     validate:"required,email"`
	Password string `json:"password"  form:"password"  validate:"required"`
	FullName string `json:"full_name" form:"full_name" validate:"required"`
	Role     string `json:"role"      form:"role"      validate:"omitempty,oneof=sales admin logistics"`
}

// LoginPage handles GET /login.
//
// @Summary      Login view
// @Description  Returns the current session summary so the login form can tell whether the operator is already signed in.
// @Tags         session
// @Produce      json
// @Success      200  {object}  view.UserCard
// @Router       /login [get]
func (h *SessionHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, view.NewUserCard(h.sessions.Current(), h.now()))
}

// Login handles POST /login.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      303   "Redirect to /products"
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.sessions.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return domain.AlertFrom(err, LoginFailed)
	}
	return c.Redirect(http.StatusSeeOther, HomeLocation)
}

// Register handles POST /register.
//
// @Summary      Register and log in
// @Tags         session
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  registerRequest  true  "Account details; role defaults to sales"
// @Success      303   "Redirect to /products"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.sessions.Register(c.Request().Context(), req.Email, req.Password, req.FullName, req.Role); err != nil {
		return domain.AlertFrom(err, RegisterFailed)
	}
	return c.Redirect(http.StatusSeeOther, HomeLocation)
}

// Logout handles POST /logout.
//
// @Summary      Log out
// @Tags         session
// @Success      303  "Redirect to /login"
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, domain.LoginLocation)
}

// Me handles GET /me.
//
// @Summary      Current operator
// @Tags         session
// @Produce      json
// @Success      200  {object}  view.UserCard
// @Failure      303  "Redirect to /login without a session"
// @Router       /me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, view.NewUserCard(h.sessions.Current(), h.now()))
}
