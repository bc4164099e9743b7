package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// AuthService defines registration and credential-based token issuance.
type AuthService interface {
	Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)
	// Login verifies the identifier/password pair and returns a signed
	// bearer token together with the authenticated user.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
