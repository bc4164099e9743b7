package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// CredentialStore defines the persistence interface for user credentials.
// The auth service stays decoupled from any particular storage technology.
type CredentialStore interface {
	// FindByIdentifier resolves a user by username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
