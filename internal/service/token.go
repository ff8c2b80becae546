package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenType is reported to clients next to every access token.
	TokenType       = "bearer"
	defaultTokenTTL = 30 * time.Minute
)

// Claims is what a verified token says about its bearer.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AccessToken is a signed token plus its expiry instant.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 tokens whose subject is a user's email.
// The key is fixed for the lifetime of the process.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(signingKey string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{key: []byte(signingKey), ttl: ttl, now: time.Now}
}

// Issue signs a token for subject that expires after the configured TTL.
func (s *TokenService) Issue(subject string) (AccessToken, error) {
	if subject == "" {
		return AccessToken{}, errors.New("issue token: empty subject")
	}
	now := s.now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Value: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *TokenService) Verify(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &rc, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, classifyTokenError(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSignature
	}
	if rc.Subject == "" {
		return Claims{}, authError(KindMalformed, errors.New("token has no subject"))
	}

	c := Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return authError(KindMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return authError(KindInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return authError(KindExpired, err)
	default:
		return authError(KindMalformed, err)
	}
}
