package manutauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var UpdateFuncionarioSenhaSQL = `UPDATE "funcionarios" AS "fun"
SET
	"senha" = ?,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"fun"."deleted_at" IS NULL
AND (
	"fun"."id" = ?
) RETURNING *;`

type Funcionarios interface {
	repository.Repository[*Funcionario]

	Register(ctx context.Context, fun *Funcionario) (*Funcionario, error)
	RegisterTx(ctx context.Context, tx bun.IDB, fun *Funcionario) (*Funcionario, error)
	Create(ctx context.Context, record *Funcionario, criteria ...repository.InsertCriteria) (*Funcionario, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Funcionario, criteria ...repository.InsertCriteria) (*Funcionario, error)

	GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*Funcionario, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string, criteria ...repository.SelectCriteria) (*Funcionario, error)
	GetByEmailAndCPF(ctx context.Context, email, cpf string) (*Funcionario, error)
	GetByEmailAndCPFTx(ctx context.Context, tx bun.IDB, email, cpf string) (*Funcionario, error)

	UpdateSenha(ctx context.Context, id uuid.UUID, senhaHash string) error
	UpdateSenhaTx(ctx context.Context, tx bun.IDB, id uuid.UUID, senhaHash string) error
}

type funcionarios struct {
	repository.Repository[*Funcionario]
	db *bun.DB
}

var (
	_ Funcionarios                        = (*funcionarios)(nil)
	_ repository.Repository[*Funcionario] = (*funcionarios)(nil)
)

func NewFuncionariosRepository(db *bun.DB) Funcionarios {
	repo := repository.NewRepository[*Funcionario](db, repository.ModelHandlers[*Funcionario]{
		NewRecord: func() *Funcionario { return &Funcionario{} },
		GetID: func(f *Funcionario) uuid.UUID {
			if f == nil {
				return uuid.Nil
			}
			return f.ID
		},
		SetID: func(f *Funcionario, id uuid.UUID) {
			if f != nil {
				f.ID = id
			}
		},
		GetIdentifier: func() string { return "email" },
	})

	return &funcionarios{
		Repository: repo,
		db:         db,
	}
}

func (a *funcionarios) Register(ctx context.Context, fun *Funcionario) (*Funcionario, error) {
	return a.RegisterTx(ctx, a.db, fun)
}

func (a *funcionarios) RegisterTx(ctx context.Context, tx bun.IDB, fun *Funcionario) (*Funcionario, error) {
	return a.CreateTx(ctx, tx, fun)
}

func (a *funcionarios) Create(ctx context.Context, record *Funcionario, criteria ...repository.InsertCriteria) (*Funcionario, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *funcionarios) CreateTx(ctx context.Context, tx bun.IDB, record *Funcionario, criteria ...repository.InsertCriteria) (*Funcionario, error) {
	prepareFuncionarioDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *funcionarios) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*Funcionario, error) {
	return a.GetByEmailTx(ctx, a.db, email, criteria...)
}

func (a *funcionarios) GetByEmailTx(ctx context.Context, tx bun.IDB, email string, criteria ...repository.SelectCriteria) (*Funcionario, error) {
	normalized := NormalizeEmail(email)

	record := &Funcionario{}
	q := tx.NewSelect().Model(record)

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("?TableAlias.email = ?", normalized).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": normalized,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *funcionarios) GetByEmailAndCPF(ctx context.Context, email, cpf string) (*Funcionario, error) {
	return a.GetByEmailAndCPFTx(ctx, a.db, email, cpf)
}

// GetByEmailAndCPFTx requires both identifiers to match the same row. Used
// by the session resolver so a token whose claims disagree with the store
// resolves to nothing.
func (a *funcionarios) GetByEmailAndCPFTx(ctx context.Context, tx bun.IDB, email, cpf string) (*Funcionario, error) {
	normalized := NormalizeEmail(email)
	cpf = strings.TrimSpace(cpf)

	record := &Funcionario{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", normalized).
		Where("?TableAlias.cpf = ?", cpf).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": normalized,
					"cpf":   cpf,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *funcionarios) UpdateSenha(ctx context.Context, id uuid.UUID, senhaHash string) error {
	return a.UpdateSenhaTx(ctx, a.db, id, senhaHash)
}

func (a *funcionarios) UpdateSenhaTx(ctx context.Context, tx bun.IDB, id uuid.UUID, senhaHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, UpdateFuncionarioSenhaSQL, senhaHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

// repoStore adapts the repository to the narrower FuncionarioStore contract
// the auth core consumes.
type repoStore struct {
	repo Funcionarios
}

func NewFuncionarioStore(repo Funcionarios) FuncionarioStore {
	return repoStore{repo: repo}
}

func (s repoStore) GetByEmail(ctx context.Context, email string) (*Funcionario, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s repoStore) GetByEmailAndCPF(ctx context.Context, email, cpf string) (*Funcionario, error) {
	return s.repo.GetByEmailAndCPF(ctx, email, cpf)
}

func prepareFuncionarioDefaults(record *Funcionario) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)
	record.CPF = strings.TrimSpace(record.CPF)

	if record.Nivel == "" {
		record.Nivel = NivelFuncionario
	}

	if record.ID == uuid.Nil {
		// Deterministic ID derived from the CPF so re-registration attempts
		// collide instead of minting a second identity.
		if id, err := hashid.NewUUID(record.CPF); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}
	}
}
