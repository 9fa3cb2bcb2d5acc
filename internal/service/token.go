package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ufukozendev/noobgg-sub002/config"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
)

// Claims are the bearer token claims the API relies on. Subject is the
// identity provider's user id and keys every user-owned row.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"preferred_username,omitempty"`
}

// TokenService verifies HS256 bearer tokens issued by the identity provider
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
}

// Verify parses the token and checks signature, expiry, issuer and audience
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(30 * time.Second),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, errors.New("token has no subject"))
	}
	return claims, nil
}

// Issue signs a token for subject. Used by the CLI to mint development tokens.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
