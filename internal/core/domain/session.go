package domain

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionState represents the lifecycle state of the client session.
type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionLoading         SessionState = "loading"
	SessionAuthenticated   SessionState = "authenticated"
)

// LoginLocation is where hosts send the operator when the session ends.
const LoginLocation = "/login"

// validSessionTransitions defines the allowed session state machine transitions.
var validSessionTransitions = map[SessionState][]SessionState{
	SessionUnauthenticated: {SessionLoading, SessionUnauthenticated},
	SessionLoading:         {SessionLoading, SessionAuthenticated, SessionUnauthenticated},
	SessionAuthenticated:   {SessionLoading, SessionUnauthenticated},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validSessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is the client-side view of the authenticated operator.
// User is nil unless State is SessionAuthenticated.
type Session struct {
	User  *User
	Token string
	State SessionState
}

// Authenticated reports whether the session holds both a user and a token.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil && s.Token != ""
}

// TokenInfo carries the claims readable from a bearer token without verifying it.
// The server remains the only authority on token validity.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

var ErrOpaqueToken = errors.New("token is not a readable JWT")

// InspectToken decodes the claims of a JWT bearer token without checking its
// signature. Tokens that are not JWTs yield ErrOpaqueToken.
func InspectToken(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, ErrOpaqueToken
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time.UTC()
	}
	return info, nil
}
