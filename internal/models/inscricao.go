package models

import "time"

// StatusInscricao represents the lifecycle of an inscricao.
type StatusInscricao string

// Possible inscricao statuses.
const (
	InscricaoPendente   StatusInscricao = "pendente"
	InscricaoConfirmada StatusInscricao = "confirmada"
	InscricaoCancelada  StatusInscricao = "cancelada"
)

// Inscricao is a cliente's claim on a seat in an atividade. The seat is
// reserved when the inscricao is created and released when it is cancelled.
type Inscricao struct {
	ID                 string          `db:"id" json:"id"`
	ClienteID          string          `db:"cliente_id" json:"clienteId"`
	AtividadeID        string          `db:"atividade_id" json:"atividadeId"`
	Status             StatusInscricao `db:"status" json:"status"`
	CriadaEm           time.Time       `db:"criada_em" json:"criadaEm"`
	ConfirmadaEm       *time.Time      `db:"confirmada_em" json:"confirmadaEm,omitempty"`
	CanceladaEm        *time.Time      `db:"cancelada_em" json:"canceladaEm,omitempty"`
	MotivoCancelamento string          `db:"motivo_cancelamento" json:"motivoCancelamento,omitempty"`
}

// InscricaoDetail enriches Inscricao with both parent records.
type InscricaoDetail struct {
	Inscricao
	Cliente   *Cliente   `json:"cliente,omitempty"`
	Atividade *Atividade `json:"atividade,omitempty"`
}

// InscricaoFilter captures filtering criteria for listing inscricoes.
type InscricaoFilter struct {
	ClienteID   string
	AtividadeID string
	Status      StatusInscricao
	Page        int
	PageSize    int
}

// InscricaoStats aggregates inscricao counts by status.
type InscricaoStats struct {
	Total     int            `json:"total"`
	PorStatus map[string]int `json:"porStatus"`
}
