package manutauth_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	manutauth "github.com/manutapi/go-manut-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a map-backed FuncionarioStore for end to end flows.
type memStore struct {
	byEmail map[string]*manutauth.Funcionario
}

func newMemStore(funs ...*manutauth.Funcionario) *memStore {
	s := &memStore{byEmail: map[string]*manutauth.Funcionario{}}
	for _, f := range funs {
		s.byEmail[manutauth.NormalizeEmail(f.Email)] = f
	}
	return s
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*manutauth.Funcionario, error) {
	if fun, ok := s.byEmail[manutauth.NormalizeEmail(email)]; ok {
		return fun, nil
	}
	return nil, repository.NewRecordNotFound()
}

func (s *memStore) GetByEmailAndCPF(ctx context.Context, email, cpf string) (*manutauth.Funcionario, error) {
	fun, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if fun.CPF != cpf {
		return nil, repository.NewRecordNotFound()
	}
	return fun, nil
}

func TestLoginToSessionFlow(t *testing.T) {
	senha := "correct horse battery staple"
	hash, err := manutauth.HashPassword(senha)
	require.NoError(t, err)

	fun := &manutauth.Funcionario{
		ID:        uuid.New(),
		CPF:       "12345678901",
		Nome:      "Maria Silva",
		Email:     "maria.silva@example.com",
		SenhaHash: hash,
		Nivel:     manutauth.NivelGestor,
	}

	store := newMemStore(fun)
	provider := manutauth.NewFuncionarioProvider(store).WithLogger(quietLogger{})
	auther := manutauth.NewAuthenticator(provider, &testConfig{signingKey: testSigningKey}).
		WithLogger(quietLogger{})
	resolver := manutauth.NewSessionResolver(auther.TokenService(), store).
		WithLogger(quietLogger{})

	t.Run("login then resolve", func(t *testing.T) {
		token, err := auther.Login(context.Background(), " Maria.Silva@Example.COM ", senha)
		require.NoError(t, err)

		resolved, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, fun.CPF, resolved.CPF)
		assert.Equal(t, manutauth.NivelGestor, resolved.Nivel)
	})

	t.Run("garbage token never resolves", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "garbage")
		require.Error(t, err)
		assert.True(t, manutauth.IsUnauthorizedError(err))
	})

	t.Run("deleting the account invalidates outstanding tokens", func(t *testing.T) {
		token, err := auther.Login(context.Background(), fun.Email, senha)
		require.NoError(t, err)

		removed := newMemStore()
		strictResolver := manutauth.NewSessionResolver(auther.TokenService(), removed).
			WithLogger(quietLogger{})

		_, err = strictResolver.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, manutauth.ErrFuncionarioNotFound)
	})

	t.Run("token claims must agree with the store", func(t *testing.T) {
		// Token minted for the right email but a CPF the store does not hold.
		token, err := auther.TokenService().Generate(fun.Email, "00000000000")
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, manutauth.ErrFuncionarioNotFound)
	})

	t.Run("wrong token type is rejected after restore", func(t *testing.T) {
		claims, err := auther.SessionFromToken(mustToken(t, auther, fun.Email, fun.CPF))
		require.NoError(t, err)
		claims.TokenType = "refresh_token"

		raw, err := auther.TokenService().SignClaims(claims)
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), raw)
		assert.ErrorIs(t, err, manutauth.ErrTokenWrongType)
	})
}

func mustToken(t *testing.T, auther *manutauth.Auther, email, cpf string) string {
	t.Helper()
	token, err := auther.TokenService().Generate(email, cpf)
	require.NoError(t, err)
	return token
}
