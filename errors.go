package manutauth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside the HTTP status.
const (
	TextCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	TextCodeTokenMalformed       = "TOKEN_MALFORMED"
	TextCodeTokenSignature       = "TOKEN_SIGNATURE_INVALID"
	TextCodeTokenExpired         = "TOKEN_EXPIRED"
	TextCodeTokenWrongType       = "TOKEN_WRONG_TYPE"
	TextCodeTokenMissingClaims   = "TOKEN_MISSING_CLAIMS"
	TextCodeFuncionarioNotFound  = "FUNCIONARIO_NOT_FOUND"
	TextCodeFuncionarioConflict  = "FUNCIONARIO_EXISTS"
	TextCodeNivelRequired        = "NIVEL_REQUIRED"
	TextCodeSenhaAtualIncorrecta = "SENHA_ATUAL_INCORRETA"
)

// ErrInvalidCredentials is the single login failure outcome. A missing
// account and a wrong password both collapse into this error so callers
// cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCredentials)

// ErrMismatchedHashAndPassword is returned by ComparePasswordAndHash when the
// plaintext does not match the stored hash.
var ErrMismatchedHashAndPassword = errors.New("mismatched password and hash", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCredentials)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrTokenMalformed covers tokens that cannot be parsed as a compact JWT
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrTokenSignatureInvalid covers tokens whose signature does not verify
// against the configured signing key
var ErrTokenSignatureInvalid = errors.New("token signature is invalid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenSignature)

// ErrTokenExpired covers tokens whose exp claim is in the past
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenWrongType covers well-formed tokens whose type claim is not
// the access_token literal
var ErrTokenWrongType = errors.New("wrong token type", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenWrongType)

// ErrTokenMissingClaims covers tokens missing sub, id, or exp
var ErrTokenMissingClaims = errors.New("token is missing required claims", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMissingClaims)

// ErrFuncionarioNotFound means the token verified but the funcionario it
// references is no longer resolvable in the store. Surfaced as an
// unauthorized outcome, not a 404, so a deleted account cannot be probed.
var ErrFuncionarioNotFound = errors.New("funcionario not found", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeFuncionarioNotFound)

// ErrFuncionarioAlreadyExists rejects duplicate registrations by email
var ErrFuncionarioAlreadyExists = errors.New("funcionario already exists", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeFuncionarioConflict)

// ErrNivelRequired is the forbidden outcome: a resolved principal whose
// nivel does not satisfy the route's requirement
var ErrNivelRequired = errors.New("nivel permission required", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode(TextCodeNivelRequired)

// ErrSenhaAtualIncorreta rejects a password change when the current
// password does not verify
var ErrSenhaAtualIncorreta = errors.New("senha atual incorreta", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeSenhaAtualIncorrecta)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUnauthorizedError reports whether err is one of the expected
// authentication failures, as opposed to an authorization or internal one.
func IsUnauthorizedError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth
}

// IsForbiddenError reports whether err is an authorization failure for a
// resolved principal.
func IsForbiddenError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuthz
}
