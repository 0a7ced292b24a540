package ports

import (
	"context"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// SessionService is the auth session store shared by every view.
type SessionService interface {
	TokenSource
	UnauthorizedHandler

	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password, fullName, role string) error
	Logout(ctx context.Context)
	Current() domain.Session
}
