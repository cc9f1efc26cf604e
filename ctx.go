package manutauth

import (
	"context"

	"github.com/goliatone/go-router"
)

var funcionarioCtxKey = &contextKey{"funcionario"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the Funcionario in the given context
func WithContext(r context.Context, fun *Funcionario) context.Context {
	return context.WithValue(r, funcionarioCtxKey, fun)
}

// FromContext finds the funcionario from the context.
func FromContext(ctx context.Context) (*Funcionario, bool) {
	raw, ok := ctx.Value(funcionarioCtxKey).(*Funcionario)
	return raw, ok
}

// WithClaimsContext sets the AccessClaims in the given context
func WithClaimsContext(r context.Context, claims *AccessClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AccessClaims from the standard context
func GetClaims(ctx context.Context) (*AccessClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*AccessClaims)
	return raw, ok
}

// GetRouterFuncionario extracts the resolved funcionario from the router
// context under the given local key.
func GetRouterFuncionario(ctx router.Context, key string) (*Funcionario, bool) {
	if key == "" {
		key = "funcionario" // Default key used by the session middleware
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	fun, ok := raw.(*Funcionario)
	return fun, ok
}

// HasNivel is a convenience check directly from the standard context.
// Use HasNivelFromRouter for router-based contexts.
func HasNivel(ctx context.Context, niveis ...Nivel) bool {
	fun, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return RequireAnyNivel(fun, niveis...) == nil
}

// HasNivelFromRouter is a convenience check directly from the router context
func HasNivelFromRouter(ctx router.Context, niveis ...Nivel) bool {
	fun, ok := GetRouterFuncionario(ctx, "")
	if !ok {
		return false
	}
	return RequireAnyNivel(fun, niveis...) == nil
}
