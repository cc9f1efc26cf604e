package manutauth

import (
	"context"
	"reflect"
)

// Auther authenticates credentials and mints access tokens. It is
// stateless beyond its read-only configuration and safe for concurrent use.
type Auther struct {
	provider     IdentityProvider
	signingKey   []byte
	logger       Logger
	tokenService *TokenService
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetAccessTokenTTL(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		signingKey:   []byte(opts.GetSigningKey()),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() *TokenService {
	return s.tokenService
}

// Login verifies the identifier/senha pair and returns a signed access
// token. A missing account and a wrong password produce the same
// ErrInvalidCredentials outcome.
func (s *Auther) Login(ctx context.Context, identifier, senha string) (string, error) {
	var err error
	var identity Identity

	if identity, err = s.provider.VerifyIdentity(ctx, identifier, senha); err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	return s.tokenService.Generate(identity.Email(), identity.CPF())
}

// SessionFromToken decodes and validates a raw token into its claims.
func (s *Auther) SessionFromToken(raw string) (*AccessClaims, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}
	return claims, nil
}

// IdentityFromSession reloads the live identity referenced by the claims.
func (s *Auther) IdentityFromSession(ctx context.Context, claims *AccessClaims) (Identity, error) {
	if claims == nil {
		return nil, ErrTokenMissingClaims
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, claims.Subject())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier", "error", err)
		return nil, err
	}

	return identity, nil
}

var _ Authenticator = (*Auther)(nil)
