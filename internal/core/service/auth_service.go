package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
	"github.com/taskhub/task-api/internal/core/token"
	"github.com/taskhub/task-api/internal/pkg/metrics"
)

// AuthService implements registration and credential-based token issuance.
type AuthService struct {
	creds  ports.CredentialStore
	issuer *token.Issuer
	log    zerolog.Logger
}

func NewAuthService(creds ports.CredentialStore, issuer *token.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{creds: creds, issuer: issuer, log: log}
}

// Register creates a new user account. The role is constrained to the closed
// Owner/Guest enum before anything is stored.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	verr := &domain.ValidationError{}
	if username == "" {
		verr.Add("username", "is required")
	}
	if password == "" {
		verr.Add("password", "is required")
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		verr.Add("role", err.Error())
	}
	if !verr.Empty() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.creds.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies the identifier/password pair and issues a signed bearer
// token. A missing user and a wrong password are indistinguishable to the
// caller so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.creds.FindByIdentifier(ctx, identifier)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	// bcrypt's comparison is constant-time over the hash.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return tok, user, nil
}
