package manutauth_test

import (
	"context"
	"testing"

	manutauth "github.com/manutapi/go-manut-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncionarioContextRoundTrip(t *testing.T) {
	fun := &manutauth.Funcionario{
		CPF:   "12345678901",
		Email: "worker@example.com",
		Nivel: manutauth.NivelGestor,
	}

	ctx := manutauth.WithContext(context.Background(), fun)

	got, ok := manutauth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, fun, got)

	_, ok = manutauth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &manutauth.AccessClaims{CPF: "12345678901"}

	ctx := manutauth.WithClaimsContext(context.Background(), claims)

	got, ok := manutauth.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, claims, got)

	_, ok = manutauth.GetClaims(context.Background())
	assert.False(t, ok)
}

func TestHasNivel(t *testing.T) {
	fun := &manutauth.Funcionario{Nivel: manutauth.NivelGestor}
	ctx := manutauth.WithContext(context.Background(), fun)

	assert.True(t, manutauth.HasNivel(ctx, manutauth.NivelGestor))
	assert.True(t, manutauth.HasNivel(ctx, manutauth.NivelGestor, manutauth.NivelMestre))
	assert.False(t, manutauth.HasNivel(ctx, manutauth.NivelMestre))
	assert.False(t, manutauth.HasNivel(context.Background(), manutauth.NivelGestor))
}
