package manutauth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type RegisterFuncionarioMessage struct {
	CPF            string     `json:"cpf"`
	Nome           string     `json:"nome"`
	Email          string     `json:"email"`
	Telefone       string     `json:"telefone"`
	DataNascimento *time.Time `json:"data_nascimento"`
	Senha          string     `json:"senha"`
	Departamento   string     `json:"departamento"`
	Cargo          string     `json:"cargo"`
	InicioTurno    string     `json:"inicio_turno"`
	FimTurno       string     `json:"fim_turno"`
	Nivel          string     `json:"nivel_de_acesso"`
	OnResponse     func(*Funcionario)
}

func (e RegisterFuncionarioMessage) Type() string { return "funcionario.register" }

type RegisterFuncionarioHandler struct {
	repo RepositoryManager
}

func NewRegisterFuncionarioHandler(repo RepositoryManager) *RegisterFuncionarioHandler {
	return &RegisterFuncionarioHandler{repo: repo}
}

func (h *RegisterFuncionarioHandler) Execute(ctx context.Context, event RegisterFuncionarioMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during funcionario registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterFuncionarioHandler) execute(ctx context.Context, event RegisterFuncionarioMessage) error {
	fun := &Funcionario{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	nivel, err := ParseNivel(event.Nivel)
	if err != nil {
		return err
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if existing, err := h.repo.Funcionarios().GetByEmailTx(ctx, tx, event.Email); err == nil && existing != nil {
			return ErrFuncionarioAlreadyExists
		} else if err != nil && !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing funcionario")
		}

		hash, err := HashPassword(event.Senha)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid senha provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash senha")
		}

		fun.CPF = event.CPF
		fun.Nome = event.Nome
		fun.Email = event.Email
		fun.Telefone = event.Telefone
		fun.DataNascimento = event.DataNascimento
		fun.SenhaHash = hash
		fun.Departamento = event.Departamento
		fun.Cargo = event.Cargo
		fun.InicioTurno = event.InicioTurno
		fun.FimTurno = event.FimTurno
		fun.Nivel = nivel

		if fun, err = h.repo.Funcionarios().CreateTx(ctx, tx, fun); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create funcionario")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "funcionario registration transaction failed")
	}

	if event.OnResponse != nil {
		event.OnResponse(fun)
	}

	return nil
}
