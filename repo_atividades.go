package manutauth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Atividades interface {
	repository.Repository[*Atividade]

	GetByOrdemServico(ctx context.Context, ordem int64) (*Atividade, error)
	GetByOrdemServicoTx(ctx context.Context, tx bun.IDB, ordem int64) (*Atividade, error)
	ListPage(ctx context.Context, skip, limit int) ([]*Atividade, error)
	ListByCriador(ctx context.Context, cpf string) ([]*Atividade, error)
}

type atividades struct {
	repository.Repository[*Atividade]
	db *bun.DB
}

var (
	_ Atividades                        = (*atividades)(nil)
	_ repository.Repository[*Atividade] = (*atividades)(nil)
)

func NewAtividadesRepository(db *bun.DB) Atividades {
	repo := repository.NewRepository[*Atividade](db, repository.ModelHandlers[*Atividade]{
		NewRecord: func() *Atividade { return &Atividade{} },
		GetID: func(a *Atividade) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Atividade, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string { return "ordem_servico" },
	})

	return &atividades{
		Repository: repo,
		db:         db,
	}
}

func (a *atividades) Create(ctx context.Context, record *Atividade, criteria ...repository.InsertCriteria) (*Atividade, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *atividades) CreateTx(ctx context.Context, tx bun.IDB, record *Atividade, criteria ...repository.InsertCriteria) (*Atividade, error) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *atividades) GetByOrdemServico(ctx context.Context, ordem int64) (*Atividade, error) {
	return a.GetByOrdemServicoTx(ctx, a.db, ordem)
}

func (a *atividades) GetByOrdemServicoTx(ctx context.Context, tx bun.IDB, ordem int64) (*Atividade, error) {
	record := &Atividade{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.ordem_servico = ?", ordem).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"ordem_servico": ordem,
				})
		}
		return nil, err
	}

	return record, nil
}

// ListPage returns an offset window of atividades ordered by service order.
func (a *atividades) ListPage(ctx context.Context, skip, limit int) ([]*Atividade, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}

	var records []*Atividade
	err := a.db.NewSelect().
		Model(&records).
		Order("ordem_servico ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *atividades) ListByCriador(ctx context.Context, cpf string) ([]*Atividade, error) {
	var records []*Atividade
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.funcionario_criador = ?", cpf).
		Order("ordem_servico ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}
