package jwtware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-router"
)

var (
	defaultTokenLookup       = "header:" + router.HeaderAuthorization
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")
	ErrNivelDenied           = errors.New("access denied: nivel requirement not met")
)

// SessionResolver interface for resolving sessions without import cycles.
// This mirrors the SessionResolver.Resolve method from the root package.
type SessionResolver interface {
	Resolve(ctx context.Context, raw string) (Principal, error)
}

// SessionResolverFunc adapts a function into a SessionResolver.
type SessionResolverFunc func(ctx context.Context, raw string) (Principal, error)

func (f SessionResolverFunc) Resolve(ctx context.Context, raw string) (Principal, error) {
	return f(ctx, raw)
}

// Principal interface for the resolved funcionario without import cycles.
// This mirrors the Funcionario getters from the root package.
type Principal interface {
	GetEmail() string
	GetCPF() string
	GetNivel() string
}

// ValidationListener is invoked after a session has been resolved but before
// authorization checks.
type ValidationListener func(ctx router.Context, principal Principal) error

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	TokenLookup    string
	AuthScheme     string
	// SessionResolver is required for token validation and principal lookup
	SessionResolver SessionResolver

	// RequiredNiveis lists the acceptable access levels for the route,
	// matched by exact equality. Empty means any resolved principal passes.
	RequiredNiveis []string

	// NivelChecker is an optional function to validate niveis against custom logic
	NivelChecker func(Principal, []string) bool

	// ContextEnricher is an optional function to propagate the principal to the
	// standard Go context. If provided, it will be called after successful resolution.
	ContextEnricher func(c context.Context, principal Principal) context.Context

	// ValidationListeners are invoked after session resolution succeeds. Use them to
	// emit events or perform bookkeeping before the request proceeds.
	ValidationListeners []ValidationListener
}

func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, err := ExtractRawTokenFromContext(ctx, cfg.getExtractors())
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			principal, err := cfg.SessionResolver.Resolve(ctx.Context(), raw)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if err := cfg.runValidationListeners(ctx, principal); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if err := performAuthorizationChecks(principal, cfg); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, principal)

			// if a context enricher we use it to propagate the principal to the standard context
			if cfg.ContextEnricher != nil {
				stdCtx := ctx.Context()
				stdCtxWithPrincipal := cfg.ContextEnricher(stdCtx, principal)
				ctx.SetContext(stdCtxWithPrincipal)
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// performAuthorizationChecks validates the resolved principal's nivel against
// the configured requirements. Matching is exact: no nivel implies another.
func performAuthorizationChecks(principal Principal, cfg Config) error {
	if len(cfg.RequiredNiveis) == 0 && cfg.NivelChecker == nil {
		return nil
	}

	if cfg.NivelChecker != nil {
		if !cfg.NivelChecker(principal, cfg.RequiredNiveis) {
			return fmt.Errorf("%w: custom nivel check failed", ErrNivelDenied)
		}
		return nil
	}

	got := principal.GetNivel()
	for _, nivel := range cfg.RequiredNiveis {
		if got == nivel {
			return nil
		}
	}

	return fmt.Errorf("%w: nivel '%s' is not one of %v", ErrNivelDenied, got, cfg.RequiredNiveis)
}

func ExtractRawTokenFromContext(ctx router.Context, extractors []JWTExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(ctx)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			if errors.Is(err, ErrNivelDenied) {
				return c.Status(router.StatusForbidden).SendString(err.Error())
			}
			if err.Error() == ErrJWTMissingOrMalformed.Error() {
				return c.Status(router.StatusUnauthorized).SendString(ErrJWTMissingOrMalformed.Error())
			}
			return c.Status(router.StatusUnauthorized).SendString("Invalid or expired token")
		}
	}

	if cfg.SessionResolver == nil {
		panic("AUTH: JWT middleware configuration: SessionResolver is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "funcionario"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func (cfg *Config) getExtractors() []JWTExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

func (cfg *Config) runValidationListeners(ctx router.Context, principal Principal) error {
	for _, listener := range cfg.ValidationListeners {
		if listener == nil {
			continue
		}
		if err := listener(ctx, principal); err != nil {
			return err
		}
	}
	return nil
}

func GetExtractors(tokenLookup string, authSchemes ...string) []JWTExtractor {
	extractors := make([]JWTExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	// header:Authorization,cookie:jwt,query:auth_token,param:token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		//header:Authorization
		parts := strings.Split(strings.TrimSpace(rootPart), ":")

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, jwtFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, jwtFromQuery(parts[1]))
		case "param":
			extractors = append(extractors, jwtFromParam(parts[1]))
		case "cookie":
			extractors = append(extractors, jwtFromCookie(parts[1]))
		}
	}

	return extractors
}

type JWTExtractor func(c router.Context) (string, error)

// jwtFromHeader returns a function that extracts token from the request header.
func jwtFromHeader(header string, authScheme string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		a := c.GetString(header, "")
		l := len(authScheme)
		if l == 0 {
			fmt.Println("[WARNING] Missing auth scheme in config definition")
			return "", ErrJWTMissingOrMalformed
		}
		authScheme = strings.TrimSpace(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrJWTMissingOrMalformed
	}
}

// jwtFromQuery returns a function that extracts token from the query string.
func jwtFromQuery(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Query(param, "")
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}

// jwtFromParam returns a function that extracts token from the url param string.
func jwtFromParam(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Param(param)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}

// jwtFromCookie returns a function that extracts token from the named cookie.
func jwtFromCookie(name string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}
