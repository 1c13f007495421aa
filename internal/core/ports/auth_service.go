package ports

import (
	"context"
	"time"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

// RegisterInput carries a sign-up request into the auth service.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	LoadUser(ctx context.Context, id int64) (*domain.User, error)
}

// SessionStore tracks revoked session tokens so a logout takes effect before
// the token's natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
