package manutauth_test

import (
	"context"
	"time"

	manutauth "github.com/manutapi/go-manut-auth"
	"github.com/stretchr/testify/mock"
)

// MockFuncionarioStore implements manutauth.FuncionarioStore for testing
type MockFuncionarioStore struct {
	mock.Mock
}

func (m *MockFuncionarioStore) GetByEmail(ctx context.Context, email string) (*manutauth.Funcionario, error) {
	args := m.Called(ctx, email)
	if fun, ok := args.Get(0).(*manutauth.Funcionario); ok {
		return fun, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFuncionarioStore) GetByEmailAndCPF(ctx context.Context, email, cpf string) (*manutauth.Funcionario, error) {
	args := m.Called(ctx, email, cpf)
	if fun, ok := args.Get(0).(*manutauth.Funcionario); ok {
		return fun, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTokenValidator implements manutauth.TokenValidator for testing
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) Validate(tokenString string) (*manutauth.AccessClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*manutauth.AccessClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthenticator implements manutauth.Authenticator for testing
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, senha string) (string, error) {
	args := m.Called(ctx, identifier, senha)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) SessionFromToken(raw string) (*manutauth.AccessClaims, error) {
	args := m.Called(raw)
	if claims, ok := args.Get(0).(*manutauth.AccessClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) IdentityFromSession(ctx context.Context, claims *manutauth.AccessClaims) (manutauth.Identity, error) {
	args := m.Called(ctx, claims)
	if identity, ok := args.Get(0).(manutauth.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLogger implements manutauth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockLoginPayload implements manutauth.LoginPayload for testing
type MockLoginPayload struct {
	mock.Mock
}

func (m *MockLoginPayload) GetIdentifier() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLoginPayload) GetSenha() string {
	args := m.Called()
	return args.String(0)
}

// testConfig is a minimal manutauth.Config for tests
type testConfig struct {
	signingKey string
	ttl        time.Duration
}

func (c *testConfig) GetSigningKey() string            { return c.signingKey }
func (c *testConfig) GetSigningMethod() string         { return "HS256" }
func (c *testConfig) GetContextKey() string            { return "funcionario" }
func (c *testConfig) GetAccessTokenTTL() time.Duration { return c.ttl }
func (c *testConfig) GetTokenLookup() string           { return "header:Authorization" }
func (c *testConfig) GetAuthScheme() string            { return "Bearer" }

// quietLogger discards all output
type quietLogger struct{}

func (quietLogger) Debug(format string, args ...any) {}
func (quietLogger) Info(format string, args ...any)  {}
func (quietLogger) Error(format string, args ...any) {}
