package ports

import "context"

// UnauthorizedHandler receives the event the HTTP layer emits on a 401.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}

// Navigator lets the hosting application decide what "go to login" means:
// a redirect for the console, a hint on stderr for the CLI.
type Navigator interface {
	ToLogin(ctx context.Context, from string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, from string)

func (f NavigatorFunc) ToLogin(ctx context.Context, from string) { f(ctx, from) }

type locationKey struct{}

// WithLocation records the view the operator is on when ctx's requests run.
func WithLocation(ctx context.Context, location string) context.Context {
	return context.WithValue(ctx, locationKey{}, location)
}

// LocationFrom returns the location stored by WithLocation, or "".
func LocationFrom(ctx context.Context) string {
	loc, _ := ctx.Value(locationKey{}).(string)
	return loc
}
