package manutauth

import "github.com/goliatone/go-errors"

// AllNiveis is the closed set of recognized access levels.
func AllNiveis() []Nivel {
	return []Nivel{NivelFuncionario, NivelGestor, NivelMestre}
}

// IsValid reports whether n is one of the recognized levels.
func (n Nivel) IsValid() bool {
	switch n {
	case NivelFuncionario, NivelGestor, NivelMestre:
		return true
	}
	return false
}

func (n Nivel) String() string {
	return string(n)
}

// ParseNivel maps a raw string to a Nivel, rejecting anything outside the
// closed set. No trimming or case folding happens here; levels are stored
// and compared verbatim.
func ParseNivel(raw string) (Nivel, error) {
	n := Nivel(raw)
	if !n.IsValid() {
		return "", errors.New("unrecognized nivel de acesso", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("NIVEL_INVALID").
			WithMetadata(map[string]any{"nivel": raw})
	}
	return n, nil
}

// NivelIn reports whether got matches any of the allowed levels by exact
// equality. There is no hierarchy: mestre does not imply gestor.
func NivelIn(got Nivel, allowed ...Nivel) bool {
	for _, n := range allowed {
		if got == n {
			return true
		}
	}
	return false
}

// RequireNivel returns nil only when the funcionario carries exactly the
// required level. A missing level is a distinct failure from a wrong one.
func RequireNivel(fun *Funcionario, required Nivel) error {
	return RequireAnyNivel(fun, required)
}

// RequireAnyNivel returns nil when the funcionario's level matches any of
// the given levels.
func RequireAnyNivel(fun *Funcionario, allowed ...Nivel) error {
	if fun == nil || fun.Nivel == "" {
		return ErrNivelRequired
	}
	if !NivelIn(fun.Nivel, allowed...) {
		clone := ErrNivelRequired.Clone()
		if clone == nil {
			return ErrNivelRequired
		}
		clone.Source = ErrNivelRequired
		return clone.WithMetadata(map[string]any{
			"nivel":    fun.Nivel.String(),
			"required": niveisToStrings(allowed),
		})
	}
	return nil
}

func niveisToStrings(niveis []Nivel) []string {
	out := make([]string, 0, len(niveis))
	for _, n := range niveis {
		out = append(out, n.String())
	}
	return out
}
