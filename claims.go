package manutauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by every access token:
// sub (normalized email), id (CPF), type, exp and iat.
type AccessClaims struct {
	jwt.RegisteredClaims
	CPF       string `json:"id,omitempty"`
	TokenType string `json:"type,omitempty"`
}

// Subject returns the sub claim, the normalized account email
func (c *AccessClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// SecondaryID returns the id claim, the funcionario's CPF
func (c *AccessClaims) SecondaryID() string {
	return c.CPF
}

// Type returns the type claim
func (c *AccessClaims) Type() string {
	return c.TokenType
}

// Expires returns the expiration time, zero when the claim is absent
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time, zero when the claim is absent
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// HasRequiredClaims reports whether sub, id and exp are all present and
// non-empty. The type claim is checked separately by the session resolver.
func (c *AccessClaims) HasRequiredClaims() bool {
	return c.Subject() != "" && c.CPF != "" && c.RegisteredClaims.ExpiresAt != nil
}
