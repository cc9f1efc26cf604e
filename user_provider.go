package manutauth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// FuncionarioStore is the user-store collaborator the auth core consumes.
type FuncionarioStore interface {
	GetByEmail(ctx context.Context, email string) (*Funcionario, error)
	GetByEmailAndCPF(ctx context.Context, email, cpf string) (*Funcionario, error)
}

// FuncionarioProvider resolves identities against the funcionarios store.
type FuncionarioProvider struct {
	store  FuncionarioStore
	logger Logger
}

// fallbackHash is compared against when the account does not exist, so a
// lookup miss costs a bcrypt verification just like a password mismatch.
var fallbackHash = RandomPasswordHash()

// NewFuncionarioProvider will create a new FuncionarioProvider
func NewFuncionarioProvider(store FuncionarioStore) *FuncionarioProvider {
	return &FuncionarioProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (p *FuncionarioProvider) WithLogger(l Logger) *FuncionarioProvider {
	p.logger = l
	return p
}

// VerifyIdentity will find the funcionario, compare the password, and
// return the identity. Lookup miss and password mismatch are collapsed
// into ErrInvalidCredentials.
func (p FuncionarioProvider) VerifyIdentity(ctx context.Context, identifier, senha string) (Identity, error) {
	fun, err := p.store.GetByEmail(ctx, NormalizeEmail(identifier))
	if err != nil {
		if errors.IsNotFound(err) {
			VerifyPassword(senha, fallbackHash)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve funcionario during verification")
	}

	if fun == nil {
		VerifyPassword(senha, fallbackHash)
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(senha, fun.SenhaHash) {
		return nil, ErrInvalidCredentials
	}

	return funcionarioIdentity{
		id:    fun.ID.String(),
		email: fun.GetEmail(),
		cpf:   fun.CPF,
		nivel: string(fun.Nivel),
	}, nil
}

// FindIdentityByIdentifier loads an identity without verifying a password.
func (p FuncionarioProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	fun, err := p.store.GetByEmail(ctx, NormalizeEmail(identifier))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrFuncionarioNotFound
		}
		return nil, err
	}

	if fun == nil {
		return nil, ErrFuncionarioNotFound
	}

	return funcionarioIdentity{
		id:    fun.ID.String(),
		email: fun.GetEmail(),
		cpf:   fun.CPF,
		nivel: string(fun.Nivel),
	}, nil
}

type funcionarioIdentity struct {
	id    string
	email string
	cpf   string
	nivel string
}

func (a funcionarioIdentity) ID() string {
	return a.id
}

func (a funcionarioIdentity) Email() string {
	return a.email
}

func (a funcionarioIdentity) CPF() string {
	return a.cpf
}

func (a funcionarioIdentity) Nivel() string {
	return a.nivel
}

var _ Identity = funcionarioIdentity{}
var _ IdentityProvider = (*FuncionarioProvider)(nil)
