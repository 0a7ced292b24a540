package handler

import (
	"context"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
)

type stubSessionService struct {
	session    domain.Session
	loginFn    func(email, password string) error
	registerFn func(email, password, fullName, role string) error
	loggedOut  bool
}

func (s *stubSessionService) Token() string                      { return s.session.Token }
func (s *stubSessionService) Restore(context.Context) error      { return nil }
func (s *stubSessionService) Current() domain.Session            { return s.session }
func (s *stubSessionService) Logout(context.Context)             { s.loggedOut = true }
func (s *stubSessionService) HandleUnauthorized(context.Context) {}

func (s *stubSessionService) Login(_ context.Context, email, password string) error {
	return s.loginFn(email, password)
}

func (s *stubSessionService) Register(_ context.Context, email, password, fullName, role string) error {
	return s.registerFn(email, password, fullName, role)
}

type stubCatalogService struct {
	products []domain.Product
	listErr  error
	listCat  string
	createFn func(form ports.ProductForm) ([]domain.Product, error)
	getFn    func(id int) (*domain.Product, error)
}

func (s *stubCatalogService) List(_ context.Context, category string) ([]domain.Product, error) {
	s.listCat = category
	return s.products, s.listErr
}

func (s *stubCatalogService) Filter(term string) []domain.Product {
	return domain.FilterProducts(s.products, term)
}

func (s *stubCatalogService) Get(_ context.Context, id int) (*domain.Product, error) {
	return s.getFn(id)
}

func (s *stubCatalogService) Create(_ context.Context, form ports.ProductForm) ([]domain.Product, error) {
	return s.createFn(form)
}

type stubPriceService struct {
	products  []domain.Product
	suggestFn func(id int) (*domain.PriceSuggestion, error)
	history   []domain.PriceComparison
	historyID int
	alerts    []domain.PriceAlert
}

func (s *stubPriceService) ListProducts(context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubPriceService) Suggest(_ context.Context, id int) (*domain.PriceSuggestion, error) {
	return s.suggestFn(id)
}

func (s *stubPriceService) SuggestAll(context.Context, []int) []ports.SuggestionResult { return nil }

func (s *stubPriceService) History(_ context.Context, id int) ([]domain.PriceComparison, error) {
	s.historyID = id
	return s.history, nil
}

func (s *stubPriceService) Alerts(context.Context) ([]domain.PriceAlert, error) {
	return s.alerts, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
