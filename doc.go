// Package manutauth provides the authentication and authorization core for
// a maintenance management backend: bcrypt credential hashing, JWT access
// token issuance and validation, session resolution, and nivel-based route
// guards.
//
// Identity model:
//   - Funcionario records carry a Nivel field persisted via Bun. Levels form
//     a closed set (funcionario, gestor, mestre) compared by exact equality;
//     there is no hierarchy between them.
//   - Tokens carry the normalized email as subject and the CPF as a secondary
//     identifier, so every resolved session is reloaded from the store and a
//     deleted or altered account invalidates outstanding tokens.
//
// Session pipeline:
//   - SessionResolver validates the raw token, checks the claim set and the
//     token type, re-checks expiry, and reloads the funcionario by email and
//     CPF. Each stage maps failures into the shared error taxonomy so HTTP
//     handlers can translate them into 401 or 403 responses uniformly.
//
// HTTP integration:
//   - RouteAuthenticator adapts the core into go-router middleware through
//     the middleware/jwtware subpackage, and AuthController exposes the JSON
//     endpoints for registration, login, current user, and password change.
package manutauth
