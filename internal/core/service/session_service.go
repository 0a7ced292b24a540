package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/metrics"
)

// SessionService holds the current user and token and persists the token
// through a TokenStore. It is the TokenSource of the HTTP layer and the
// receiver of its unauthorized events.
type SessionService struct {
	api   ports.AuthAPI
	store ports.TokenStore
	nav   ports.Navigator
	log   zerolog.Logger

	mu      sync.RWMutex
	session domain.Session
}

// NewSessionService returns an unauthenticated session. Call Restore to pick
// up a previously persisted token. nav may be nil when the host never
// navigates.
func NewSessionService(api ports.AuthAPI, store ports.TokenStore, nav ports.Navigator, log zerolog.Logger) *SessionService {
	return &SessionService{
		api:     api,
		store:   store,
		nav:     nav,
		log:     log,
		session: domain.Session{State: domain.SessionUnauthenticated},
	}
}

// Token returns the bearer token of the current session, or "".
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Current returns a copy of the session.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Restore resumes a persisted session. With no stored token the session stays
// unauthenticated. Any failure while fetching the user clears the token.
func (s *SessionService) Restore(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		s.reset()
		return fmt.Errorf("restore session: load token: %w", err)
	}
	if token == "" {
		s.reset()
		return nil
	}

	if err := s.transition(domain.Session{Token: token, State: domain.SessionLoading}); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return s.fetchUser(ctx, token)
}

// Login exchanges credentials for a token, persists it, and fetches the
// current user with it.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := s.transition(domain.Session{Token: token, State: domain.SessionLoading}); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.store.Save(ctx, token); err != nil {
		s.reset()
		return fmt.Errorf("login: persist token: %w", err)
	}
	return s.fetchUser(ctx, token)
}

// Register creates the account and then logs in with the same credentials.
// An empty role registers as domain.DefaultRole.
func (s *SessionService) Register(ctx context.Context, email, password, fullName, role string) error {
	if role == "" {
		role = domain.DefaultRole
	}
	if _, err := s.api.Register(ctx, domain.Registration{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     role,
	}); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("account registered")
	return s.Login(ctx, email, password)
}

// Logout drops the token and user. A failing store is logged, never returned.
func (s *SessionService) Logout(ctx context.Context) {
	s.clearStore(ctx)
	s.reset()
	s.log.Info().Msg("logged out")
}

// HandleUnauthorized applies the 401 policy: clear the session, then ask the
// host to navigate to login unless the operator is already there.
func (s *SessionService) HandleUnauthorized(ctx context.Context) {
	metrics.UnauthorizedEventsTotal.Inc()
	s.clearStore(ctx)
	s.reset()

	from := ports.LocationFrom(ctx)
	s.log.Warn().Str("location", from).Msg("session rejected by server")
	if s.nav != nil && from != domain.LoginLocation {
		s.nav.ToLogin(ctx, from)
	}
}

// fetchUser completes a loading session. The result is dropped if the session
// moved on (logout, another login) while the request was in flight.
func (s *SessionService) fetchUser(ctx context.Context, token string) error {
	user, err := s.api.Me(ctx, token)

	s.mu.Lock()
	stale := s.session.State != domain.SessionLoading || s.session.Token != token
	s.mu.Unlock()
	if stale {
		return fmt.Errorf("fetch user: %w", domain.ErrNotAuthenticated)
	}

	if err != nil {
		s.clearStore(ctx)
		s.reset()
		s.log.Warn().Err(err).Msg("could not fetch current user, session cleared")
		return fmt.Errorf("fetch user: %w", err)
	}

	if err := s.transition(domain.Session{User: user, Token: token, State: domain.SessionAuthenticated}); err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	s.log.Info().Int("user_id", user.ID).Str("role", user.Role).Msg("session authenticated")
	return nil
}

func (s *SessionService) transition(next domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.State.CanTransitionTo(next.State) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, s.session.State, next.State)
	}
	s.session = next
	metrics.SessionTransitionsTotal.WithLabelValues(string(next.State)).Inc()
	return nil
}

func (s *SessionService) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{State: domain.SessionUnauthenticated}
	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.SessionUnauthenticated)).Inc()
}

func (s *SessionService) clearStore(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear persisted token")
	}
}
