package ports

import (
	"context"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
// Every failure is reported as domain.ErrUnauthorized.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
