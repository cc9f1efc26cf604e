package manutauth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// BaseConfig is a plain value implementation of Config.
type BaseConfig struct {
	SigningKey     string        `json:"signing_key"`
	SigningMethod  string        `json:"signing_method"`
	ContextKey     string        `json:"context_key"`
	AccessTokenTTL time.Duration `json:"access_token_ttl"`
	TokenLookup    string        `json:"token_lookup"`
	AuthScheme     string        `json:"auth_scheme"`
}

// NewBaseConfig returns a config with the package defaults and the given
// signing key.
func NewBaseConfig(signingKey string) *BaseConfig {
	return &BaseConfig{
		SigningKey:     signingKey,
		SigningMethod:  "HS256",
		ContextKey:     "funcionario",
		AccessTokenTTL: DefaultAccessTokenTTL,
		TokenLookup:    "header:Authorization",
		AuthScheme:     "Bearer",
	}
}

func (c *BaseConfig) GetSigningKey() string    { return c.SigningKey }
func (c *BaseConfig) GetSigningMethod() string { return c.SigningMethod }
func (c *BaseConfig) GetContextKey() string    { return c.ContextKey }
func (c *BaseConfig) GetAccessTokenTTL() time.Duration {
	return c.AccessTokenTTL
}
func (c *BaseConfig) GetTokenLookup() string { return c.TokenLookup }
func (c *BaseConfig) GetAuthScheme() string  { return c.AuthScheme }

// Validate checks the config holds the minimum viable values.
func (c *BaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.SigningMethod, validation.Required, validation.In("HS256", "HS384", "HS512")),
	)
}

var _ Config = (*BaseConfig)(nil)
