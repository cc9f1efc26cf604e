package manutauth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// SessionResolver reconstructs the authenticated principal from a bearer
// token: decode, claim checks, type check, expiry re-check, then a live
// reload from the store by normalized email and CPF. Each call is
// independent; the resolver holds no per-request state.
type SessionResolver struct {
	validator TokenValidator
	store     FuncionarioStore
	logger    Logger
	now       func() time.Time
}

// NewSessionResolver creates a resolver over the given validator and store.
func NewSessionResolver(validator TokenValidator, store FuncionarioStore) *SessionResolver {
	return &SessionResolver{
		validator: validator,
		store:     store,
		logger:    defLogger{},
		now:       time.Now,
	}
}

func (r *SessionResolver) WithLogger(l Logger) *SessionResolver {
	r.logger = l
	return r
}

// WithClock overrides the expiry re-check clock, mostly for tests.
func (r *SessionResolver) WithClock(now func() time.Time) *SessionResolver {
	if now != nil {
		r.now = now
	}
	return r
}

// Resolve validates raw and returns the live funcionario it references.
// Every rejection maps into the error taxonomy; unexpected failures are
// wrapped as internal errors and never carry raw detail to the caller.
func (r *SessionResolver) Resolve(ctx context.Context, raw string) (*Funcionario, error) {
	claims, err := r.validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	if claims.Subject() == "" || claims.SecondaryID() == "" {
		return nil, ErrTokenMissingClaims
	}

	if claims.Type() != TokenTypeAccess {
		return nil, ErrTokenWrongType
	}

	// Redundant with the codec's own expiry validation on purpose: both
	// checks must pass independently.
	exp := claims.Expires()
	if exp.IsZero() {
		return nil, ErrTokenMissingClaims
	}
	if !r.now().Before(exp) {
		return nil, ErrTokenExpired
	}

	fun, err := r.store.GetByEmailAndCPF(ctx, NormalizeEmail(claims.Subject()), claims.SecondaryID())
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrFuncionarioNotFound
		}
		r.logger.Error("session resolve funcionario lookup failed", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve session principal")
	}

	if fun == nil {
		return nil, ErrFuncionarioNotFound
	}

	return fun, nil
}
