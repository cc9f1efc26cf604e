package manutauth_test

import (
	"context"
	"database/sql"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	manutauth "github.com/manutapi/go-manut-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	sqliteCreateFuncionarios = `CREATE TABLE funcionarios (
    id TEXT NOT NULL PRIMARY KEY,
    cpf TEXT NOT NULL UNIQUE,
    nome TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    telefone TEXT,
    data_nascimento TIMESTAMP NULL,
    senha TEXT,
    departamento TEXT,
    cargo TEXT,
    inicio_turno TEXT,
    fim_turno TEXT,
    nivel TEXT NOT NULL,
    data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    deleted_at TIMESTAMP NULL
);`
	sqliteCreateAtividades = `CREATE TABLE atividades (
    id TEXT NOT NULL PRIMARY KEY,
    ordem_servico INTEGER NOT NULL UNIQUE,
    nome TEXT NOT NULL,
    departamento TEXT,
    tipo_manutencao TEXT NOT NULL,
    data_abertura TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    data_fechamento TIMESTAMP NULL,
    prioridade INTEGER NOT NULL,
    descricao TEXT,
    funcionario_criador TEXT NOT NULL,
    deleted_at TIMESTAMP NULL
);`
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec(sqliteCreateFuncionarios)
	require.NoError(t, err)
	_, err = bunDB.Exec(sqliteCreateAtividades)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = bunDB.Close()
		_ = db.Close()
	})

	return bunDB
}

func seedFuncionario(t *testing.T, repo manutauth.Funcionarios, email, cpf, senha string) *manutauth.Funcionario {
	t.Helper()

	hash, err := manutauth.HashPassword(senha)
	require.NoError(t, err)

	fun, err := repo.Register(context.Background(), &manutauth.Funcionario{
		CPF:       cpf,
		Nome:      "Maria Silva",
		Email:     email,
		SenhaHash: hash,
		Nivel:     manutauth.NivelFuncionario,
	})
	require.NoError(t, err)

	return fun
}

func TestFuncionariosRepositoryRegister(t *testing.T) {
	db := setupTestDB(t)
	repo := manutauth.NewFuncionariosRepository(db)

	fun := seedFuncionario(t, repo, "  Maria.Silva@Example.COM ", "12345678901", "super-secret")

	assert.Equal(t, "maria.silva@example.com", fun.Email)
	assert.Equal(t, "12345678901", fun.CPF)
	assert.NotEmpty(t, fun.ID)

	t.Run("lookups normalize the email", func(t *testing.T) {
		found, err := repo.GetByEmail(context.Background(), "MARIA.SILVA@example.com")
		require.NoError(t, err)
		assert.Equal(t, fun.ID, found.ID)
	})

	t.Run("same cpf derives the same id", func(t *testing.T) {
		_, err := repo.Register(context.Background(), &manutauth.Funcionario{
			CPF:       "12345678901",
			Nome:      "Maria Silva",
			Email:     "other@example.com",
			SenhaHash: "x",
			Nivel:     manutauth.NivelFuncionario,
		})
		assert.Error(t, err)
	})
}

func TestFuncionariosRepositoryGetByEmailAndCPF(t *testing.T) {
	db := setupTestDB(t)
	repo := manutauth.NewFuncionariosRepository(db)

	fun := seedFuncionario(t, repo, "maria@example.com", "12345678901", "super-secret")

	t.Run("both identifiers match", func(t *testing.T) {
		found, err := repo.GetByEmailAndCPF(context.Background(), "maria@example.com", "12345678901")
		require.NoError(t, err)
		assert.Equal(t, fun.ID, found.ID)
	})

	t.Run("cpf mismatch resolves to nothing", func(t *testing.T) {
		_, err := repo.GetByEmailAndCPF(context.Background(), "maria@example.com", "00000000000")
		require.Error(t, err)
		assert.True(t, goerrors.IsNotFound(err))
	})

	t.Run("email mismatch resolves to nothing", func(t *testing.T) {
		_, err := repo.GetByEmailAndCPF(context.Background(), "someone@example.com", "12345678901")
		require.Error(t, err)
		assert.True(t, goerrors.IsNotFound(err))
	})
}

func TestFuncionariosRepositoryUpdateSenha(t *testing.T) {
	db := setupTestDB(t)
	repo := manutauth.NewFuncionariosRepository(db)

	fun := seedFuncionario(t, repo, "maria@example.com", "12345678901", "super-secret")

	hash, err := manutauth.HashPassword("brand-new-secret")
	require.NoError(t, err)

	err = repo.UpdateSenha(context.Background(), fun.ID, hash)
	require.NoError(t, err)

	reloaded, err := repo.GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.NoError(t, manutauth.ComparePasswordAndHash("brand-new-secret", reloaded.SenhaHash))
	assert.Error(t, manutauth.ComparePasswordAndHash("super-secret", reloaded.SenhaHash))

	t.Run("soft deleted row is not updatable", func(t *testing.T) {
		err := repo.UpdateSenha(context.Background(), fun.ID, hash)
		require.NoError(t, err)

		_, delErr := db.Exec("UPDATE funcionarios SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?", fun.ID.String())
		require.NoError(t, delErr)

		err = repo.UpdateSenha(context.Background(), fun.ID, hash)
		require.Error(t, err)
		assert.True(t, repository.IsRecordNotFound(err))
	})
}

func TestFuncionariosRepositorySoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := manutauth.NewFuncionariosRepository(db)

	fun := seedFuncionario(t, repo, "maria@example.com", "12345678901", "super-secret")

	_, err := db.Exec("UPDATE funcionarios SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?", fun.ID.String())
	require.NoError(t, err)

	_, err = repo.GetByEmail(context.Background(), "maria@example.com")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))

	_, err = repo.GetByEmailAndCPF(context.Background(), "maria@example.com", "12345678901")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}

func TestAtividadesRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := manutauth.NewAtividadesRepository(db)
	ctx := context.Background()

	for i, criador := range []string{"12345678901", "12345678901", "98765432100"} {
		_, err := repo.Create(ctx, &manutauth.Atividade{
			OrdemServico:       int64(100 + i),
			Nome:               "Troca de rolamento",
			TipoManutencao:     manutauth.TipoCorretiva,
			Prioridade:         3,
			FuncionarioCriador: criador,
		})
		require.NoError(t, err)
	}

	t.Run("get by ordem de servico", func(t *testing.T) {
		atv, err := repo.GetByOrdemServico(ctx, 101)
		require.NoError(t, err)
		assert.Equal(t, int64(101), atv.OrdemServico)

		_, err = repo.GetByOrdemServico(ctx, 999)
		require.Error(t, err)
		assert.True(t, goerrors.IsNotFound(err))
	})

	t.Run("list page orders by ordem de servico", func(t *testing.T) {
		page, err := repo.ListPage(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, int64(100), page[0].OrdemServico)
		assert.Equal(t, int64(101), page[1].OrdemServico)

		rest, err := repo.ListPage(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, int64(102), rest[0].OrdemServico)
	})

	t.Run("list by criador", func(t *testing.T) {
		mine, err := repo.ListByCriador(ctx, "12345678901")
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})
}
