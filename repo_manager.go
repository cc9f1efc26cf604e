package manutauth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Funcionarios() Funcionarios
	Atividades() Atividades
}

type mngr struct {
	db           *bun.DB
	funcionarios Funcionarios
	atividades   Atividades
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:           db,
		funcionarios: NewFuncionariosRepository(db),
		atividades:   NewAtividadesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.funcionarios == nil {
		return errors.New("repository funcionarios should be initialized")
	}

	if m.atividades == nil {
		return errors.New("repository atividades should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Funcionarios() Funcionarios {
	return m.funcionarios
}

func (m mngr) Atividades() Atividades {
	return m.atividades
}
