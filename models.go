package manutauth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Nivel is the funcionario's authorization level
type Nivel string

const (
	// NivelFuncionario is the base level (i.e. own activities, chat)
	NivelFuncionario Nivel = "funcionario"
	// NivelGestor is a manager (i.e. department activities, assignments)
	NivelGestor Nivel = "gestor"
	// NivelMestre is the master level (i.e. full administration)
	NivelMestre Nivel = "mestre"
)

// TokenTypeAccess is the only token type the session resolver accepts.
const TokenTypeAccess = "access_token"

// Funcionario is the employee model
type Funcionario struct {
	bun.BaseModel  `bun:"table:funcionarios,alias:fun"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CPF            string     `bun:"cpf,notnull,unique" json:"cpf,omitempty"`
	Nome           string     `bun:"nome,notnull" json:"nome,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Telefone       string     `bun:"telefone" json:"telefone,omitempty"`
	DataNascimento *time.Time `bun:"data_nascimento" json:"data_nascimento,omitempty"`
	SenhaHash      string     `bun:"senha" json:"-"`
	Departamento   string     `bun:"departamento" json:"departamento,omitempty"`
	Cargo          string     `bun:"cargo" json:"cargo,omitempty"`
	InicioTurno    string     `bun:"inicio_turno" json:"inicio_turno,omitempty"`
	FimTurno       string     `bun:"fim_turno" json:"fim_turno,omitempty"`
	Nivel          Nivel      `bun:"nivel,notnull" json:"nivel,omitempty"`
	DataCriacao    *time.Time `bun:"data_criacao,nullzero,default:current_timestamp" json:"data_criacao,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// GetEmail returns the normalized account email.
func (f *Funcionario) GetEmail() string {
	return NormalizeEmail(f.Email)
}

// GetCPF returns the stable secondary identifier.
func (f *Funcionario) GetCPF() string {
	return f.CPF
}

// GetNivel returns the authorization level as a plain string.
func (f *Funcionario) GetNivel() string {
	return string(f.Nivel)
}

// NormalizeEmail applies the canonical form used for lookups and token
// subjects: trimmed and lower cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TipoManutencao is the maintenance category of an atividade
type TipoManutencao string

const (
	// TipoCorretiva is unplanned repair work
	TipoCorretiva TipoManutencao = "corretiva"
	// TipoPreditiva is condition-triggered work
	TipoPreditiva TipoManutencao = "preditiva"
	// TipoPreventiva is scheduled work
	TipoPreventiva TipoManutencao = "preventiva"
)

// IsValid checks if the maintenance type is one of the closed set
func (t TipoManutencao) IsValid() bool {
	switch t {
	case TipoCorretiva, TipoPreditiva, TipoPreventiva:
		return true
	default:
		return false
	}
}

// Atividade is the maintenance work order model
type Atividade struct {
	bun.BaseModel      `bun:"table:atividades,alias:atv"`
	ID                 uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OrdemServico       int64          `bun:"ordem_servico,notnull,unique" json:"ordem_servico,omitempty"`
	Nome               string         `bun:"nome,notnull" json:"nome,omitempty"`
	Departamento       string         `bun:"departamento" json:"departamento,omitempty"`
	TipoManutencao     TipoManutencao `bun:"tipo_manutencao,notnull" json:"tipo_manutencao,omitempty"`
	DataAbertura       *time.Time     `bun:"data_abertura,nullzero,default:current_timestamp" json:"data_abertura,omitempty"`
	DataFechamento     *time.Time     `bun:"data_fechamento,nullzero" json:"data_fechamento,omitempty"`
	Prioridade         int            `bun:"prioridade,notnull" json:"prioridade,omitempty"`
	Descricao          string         `bun:"descricao" json:"descricao,omitempty"`
	FuncionarioCriador string         `bun:"funcionario_criador,notnull" json:"funcionario_criador,omitempty"`
	DeletedAt          *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}
