package view

import (
	"time"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// UserCard is the "who am I" summary of a session.
type UserCard struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Active       bool   `json:"is_active"`
	State        string `json:"state"`
	TokenSubject string `json:"token_subject,omitempty"`
	TokenExpires string `json:"token_expires,omitempty"`
	TokenExpired bool   `json:"token_expired,omitempty"`
}

// NewUserCard summarises s. Token claims are read without verification and
// only when the token is a JWT.
func NewUserCard(s domain.Session, now time.Time) UserCard {
	card := UserCard{State: string(s.State)}
	if s.User != nil {
		card.ID = s.User.ID
		card.Email = s.User.Email
		card.FullName = s.User.FullName
		card.Role = s.User.Role
		card.Active = s.User.IsActive
	}
	if info, err := domain.InspectToken(s.Token); err == nil {
		card.TokenSubject = info.Subject
		if !info.ExpiresAt.IsZero() {
			card.TokenExpires = info.ExpiresAt.Format(dateLayout)
			card.TokenExpired = info.Expired(now)
		}
	}
	return card
}
