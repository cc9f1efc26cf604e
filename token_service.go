package manutauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultAccessTokenTTL is the fixed validity window of an access token.
// The unit is part of the type on purpose: the source variants disagreed on
// whether 300 meant seconds, minutes, or days, so the duration carries it.
const DefaultAccessTokenTTL = 300 * time.Minute

// TokenService issues and validates HS256 signed access tokens. It holds
// only read-only configuration and is safe for concurrent use.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	logger     Logger
	now        func() time.Time
}

// NewTokenService creates a new TokenService instance. A non-positive ttl
// falls back to DefaultAccessTokenTTL.
func NewTokenService(signingKey []byte, ttl time.Duration, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &TokenService{
		signingKey: signingKey,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// TTL returns the configured validity window.
func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// WithClock overrides the issuance clock, mostly for tests.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

// Generate issues an access token for the given subject email and CPF
func (ts *TokenService) Generate(email, cpf string) (string, error) {
	now := ts.now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   NormalizeEmail(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		CPF:       cpf,
		TokenType: TokenTypeAccess,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary access claims using the configured signing key.
func (ts *TokenService) SignClaims(claims *AccessClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses a token string, verifies the signature and expiry, and
// returns the structured claims. It does not check the type claim; that
// belongs to the session resolver.
func (ts *TokenService) Validate(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
				WithTextCode(ErrTokenMalformed.TextCode)
		}
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
