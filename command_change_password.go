package manutauth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type ChangePasswordMessage struct {
	Email      string `json:"email"`
	SenhaAtual string `json:"senha_atual"`
	SenhaNova  string `json:"senha_nova"`
}

func (e ChangePasswordMessage) Type() string { return "funcionario.change_password" }

// ChangePasswordHandler rotates a funcionario's password after verifying
// the current one. The caller is expected to have authenticated the
// request already; the current-password check here is an extra gate, not
// the session check.
type ChangePasswordHandler struct {
	repo RepositoryManager
}

func NewChangePasswordHandler(repo RepositoryManager) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

func (h *ChangePasswordHandler) Execute(ctx context.Context, event ChangePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password change",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ChangePasswordHandler) execute(ctx context.Context, event ChangePasswordMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		fun, err := h.repo.Funcionarios().GetByEmailTx(ctx, tx, event.Email)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrFuncionarioNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load funcionario")
		}

		if err := ComparePasswordAndHash(event.SenhaAtual, fun.SenhaHash); err != nil {
			return ErrSenhaAtualIncorreta
		}

		hash, err := HashPassword(event.SenhaNova)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid senha provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash senha")
		}

		return h.repo.Funcionarios().UpdateSenhaTx(ctx, tx, fun.ID, hash)
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "password change transaction failed")
	}

	return nil
}
