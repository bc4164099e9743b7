// Package token implements issuance and validation of the signed bearer
// tokens used on every protected call. Tokens are standard JWTs signed with
// HMAC-SHA256 over a shared secret; both sides of the exchange are pure
// functions of the token, the clock and the immutable Config.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/task-api/internal/core/domain"
)

// Config holds the process-wide token settings, loaded once at startup and
// never mutated afterwards.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Claims is the decoded, verified content of a bearer token.
type Claims struct {
	Subject  string
	Username string
	Role     domain.Role
}

type jwtClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer turns a verified identity into a signed bearer token.
type Issuer struct {
	cfg Config
	now func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Issuer{cfg: cfg, now: time.Now}
}

// Issue builds the claim set for user, signs it with HS256 and returns the
// serialized token.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := i.now().UTC()
	claims := jwtClaims{
		Name: user.Username,
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.cfg.Secret))
}

// Validator turns an incoming bearer token back into a verified identity.
type Validator struct {
	cfg    Config
	parser *jwt.Parser
}

func NewValidator(cfg Config) *Validator {
	return &Validator{
		cfg: cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			// Expiry is checked with zero tolerance; no clock-skew allowance.
			jwt.WithLeeway(0),
		),
	}
}

// Validate parses and verifies raw. Failures are reported as one of the
// domain token errors so callers can log the subtype while surfacing a
// uniform "unauthorized" outcome.
func (v *Validator) Validate(raw string) (*Claims, error) {
	var claims jwtClaims
	_, err := v.parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.cfg.Secret), nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}

	role, rerr := domain.ParseRole(claims.Role)
	if rerr != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &Claims{
		Subject:  claims.Subject,
		Username: claims.Name,
		Role:     role,
	}, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrSignatureMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		// Malformed structure, wrong issuer/audience, missing expiry, etc.
		return domain.ErrTokenInvalid
	}
}
