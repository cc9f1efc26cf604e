package manutauth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/manutapi/go-manut-auth/middleware/jwtware"
)

// RouteAuthenticator wires the authenticator and session resolver into
// go-router middleware and handles the token cookie lifecycle.
type RouteAuthenticator struct {
	auth             Authenticator
	resolver         *SessionResolver
	cfg              Config
	cookieDuration   time.Duration
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, resolver *SessionResolver, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := DefaultAccessTokenTTL
	if cfg.GetAccessTokenTTL() > 0 {
		cookieDuration = cfg.GetAccessTokenTTL()
	}

	a := &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		resolver:       resolver,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// ProtectedRoute guards a route group with session resolution. Any resolved
// principal passes; use RequireNivel for level-gated routes.
func (a *RouteAuthenticator) ProtectedRoute(errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return a.middleware(nil, errorHandler)
}

// RequireNivel guards a route group and additionally requires the resolved
// principal's nivel to match one of the given levels exactly.
func (a *RouteAuthenticator) RequireNivel(errorHandler func(router.Context, error) error, niveis ...Nivel) router.MiddlewareFunc {
	return a.middleware(niveis, errorHandler)
}

func (a *RouteAuthenticator) middleware(niveis []Nivel, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = a.ErrorHandler
	}

	return jwtware.New(jwtware.Config{
		ErrorHandler:    errorHandler,
		ContextKey:      a.cfg.GetContextKey(),
		TokenLookup:     a.cfg.GetTokenLookup(),
		AuthScheme:      a.cfg.GetAuthScheme(),
		SessionResolver: a.resolverAdapter(),
		RequiredNiveis:  niveisToStrings(niveis),
		ContextEnricher: func(ctx context.Context, principal jwtware.Principal) context.Context {
			if fun, ok := principal.(*Funcionario); ok {
				return WithContext(ctx, fun)
			}
			return ctx
		},
	})
}

// resolverAdapter bridges the concrete resolver to the middleware's local
// interface so the subpackage does not import this one.
func (a *RouteAuthenticator) resolverAdapter() jwtware.SessionResolver {
	return jwtware.SessionResolverFunc(func(ctx context.Context, raw string) (jwtware.Principal, error) {
		fun, err := a.resolver.Resolve(ctx, raw)
		if err != nil {
			return nil, err
		}
		return fun, nil
	})
}

// Login authenticates the payload and, on success, sets the token cookie.
// The token is also returned so JSON clients can carry it in a header.
func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) (string, error) {
	token, err := a.auth.Login(ctx.Context(), payload.GetIdentifier(), payload.GetSenha())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}

	a.setCookieToken(ctx, token, a.cookieDuration)
	return token, nil
}

func (a *RouteAuthenticator) Logout(ctx router.Context) {
	a.cookieDel(ctx, a.cfg.GetContextKey())
}

// MakeClientRouteAuthErrorHandler normalizes middleware failures into the
// error taxonomy before delegating. With optional set the request proceeds
// unauthenticated instead of failing.
func (a *RouteAuthenticator) MakeClientRouteAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if errors.As(err, &richErr) {
			// already in the taxonomy
		} else if errors.Is(err, jwtware.ErrNivelDenied) {
			richErr = ErrNivelRequired
		} else if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	status := router.StatusUnauthorized
	if richErr.Category == errors.CategoryAuthz {
		status = router.StatusForbidden
	}

	return c.JSON(status, errorResponse(richErr))
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		switch {
		case errors.Is(err, jwtware.ErrNivelDenied):
			richErr = ErrNivelRequired
		case IsMalformedError(err):
			richErr = ErrTokenMalformed
		default:
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}
	}

	a.Logger.Info(
		"Middleware error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return a.AuthErrorHandler(c, richErr)
	default:
		return c.JSON(router.StatusInternalServerError, errorResponse(
			errors.New("internal server error", errors.CategoryInternal).
				WithCode(errors.CodeInternal),
		))
	}
}

// errorResponse is the JSON error envelope surfaced to API clients.
func errorResponse(richErr *errors.Error) map[string]any {
	body := map[string]any{
		"detail": richErr.Message,
	}
	if richErr.TextCode != "" {
		body["code"] = richErr.TextCode
	}
	return body
}
