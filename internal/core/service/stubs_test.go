package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubTokenStore struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
	cleared int
	saved   []string
}

func (s *stubTokenStore) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.loadErr
}

func (s *stubTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	s.saved = append(s.saved, token)
	return nil
}

func (s *stubTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared++
	return nil
}

type stubAuthAPI struct {
	loginFn    func(email, password string) (string, error)
	registerFn func(reg domain.Registration) (*domain.User, error)
	meFn       func(token string) (*domain.User, error)
	meTokens   []string
}

func (a *stubAuthAPI) Login(_ context.Context, email, password string) (string, error) {
	return a.loginFn(email, password)
}

func (a *stubAuthAPI) Register(_ context.Context, reg domain.Registration) (*domain.User, error) {
	return a.registerFn(reg)
}

func (a *stubAuthAPI) Me(_ context.Context, token string) (*domain.User, error) {
	a.meTokens = append(a.meTokens, token)
	return a.meFn(token)
}

type stubNavigator struct {
	calls []string
}

func (n *stubNavigator) ToLogin(_ context.Context, from string) {
	n.calls = append(n.calls, from)
}

type stubProductAPI struct {
	mu         sync.Mutex
	products   []domain.Product
	listErr    error
	createErr  error
	listCalls  int
	created    []domain.NewProduct
	createGate chan struct{} // if set, CreateProduct blocks until closed
}

func (p *stubProductAPI) ListProducts(_ context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	if q.Category == "" {
		return append([]domain.Product(nil), p.products...), nil
	}
	var out []domain.Product
	for _, pr := range p.products {
		if pr.Category == q.Category {
			out = append(out, pr)
		}
	}
	return out, nil
}

func (p *stubProductAPI) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pr := range p.products {
		if pr.ID == id {
			clone := pr
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (p *stubProductAPI) CreateProduct(_ context.Context, np domain.NewProduct) (*domain.Product, error) {
	if p.createGate != nil {
		<-p.createGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.created = append(p.created, np)
	price := np.Price
	created := domain.Product{ID: len(p.products) + 1, Name: np.Name, Category: np.Category, Price: &price, Stock: np.Stock}
	p.products = append(p.products, created)
	return &created, nil
}

type stubPriceAPI struct {
	mu          sync.Mutex
	suggestFn   func(productID int) (*domain.PriceSuggestion, error)
	calls       []int
	comparisons []domain.PriceComparison
	alerts      []domain.PriceAlert
}

func (p *stubPriceAPI) SuggestPrice(_ context.Context, productID int) (*domain.PriceSuggestion, error) {
	p.mu.Lock()
	p.calls = append(p.calls, productID)
	p.mu.Unlock()
	return p.suggestFn(productID)
}

func (p *stubPriceAPI) ListComparisons(_ context.Context, productID int) ([]domain.PriceComparison, error) {
	var out []domain.PriceComparison
	for _, c := range p.comparisons {
		if productID == 0 || c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p *stubPriceAPI) ListAlerts(context.Context) ([]domain.PriceAlert, error) {
	return p.alerts, nil
}

var errUnauthorizedResponse = &domain.APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}

var errNetwork = errors.New("dial tcp: connection refused")
