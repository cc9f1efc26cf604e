package manutauth

import (
	"github.com/uptrace/bun"
)

// Module bundles the auth components wired over a single database handle.
type Module struct {
	Repo     RepositoryManager
	Provider *FuncionarioProvider
	Auther   *Auther
	Resolver *SessionResolver
	HTTP     *RouteAuthenticator
}

// New wires repositories, the identity provider, the authenticator, the
// session resolver, and the HTTP adapter over db.
func New(db *bun.DB, cfg Config) (*Module, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	repo := NewRepositoryManager(db)
	store := NewFuncionarioStore(repo.Funcionarios())
	provider := NewFuncionarioProvider(store)
	auther := NewAuthenticator(provider, cfg)
	resolver := NewSessionResolver(auther.TokenService(), store)

	httpAuth, err := NewHTTPAuthenticator(auther, resolver, cfg)
	if err != nil {
		return nil, err
	}

	return &Module{
		Repo:     repo,
		Provider: provider,
		Auther:   auther,
		Resolver: resolver,
		HTTP:     httpAuth,
	}, nil
}

func validateConfig(cfg Config) error {
	if v, ok := cfg.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// WithLogger propagates the logger through every component.
func (m *Module) WithLogger(l Logger) *Module {
	m.Provider.WithLogger(l)
	m.Auther.WithLogger(l)
	m.Resolver.WithLogger(l)
	m.HTTP.Logger = l
	return m
}
