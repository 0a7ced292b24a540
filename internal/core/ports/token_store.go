package ports

import "context"

// TokenKey is the fixed key the bearer token is persisted under.
const TokenKey = "token"

// TokenStore persists the single bearer token outside the process.
// Load returns "" and a nil error when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// TokenSource supplies the token the HTTP layer attaches to requests.
// An empty string means the request goes out without Authorization.
type TokenSource interface {
	Token() string
}
