package models

import "time"

// StatusAtividade represents the lifecycle of an atividade.
type StatusAtividade string

// Possible atividade statuses.
const (
	AtividadeAtiva   StatusAtividade = "ativa"
	AtividadeInativa StatusAtividade = "inativa"
)

// Atividade is a scheduled offering with a finite number of seats.
// Invariant: 0 <= VagasOcupadas <= VagasTotal after every inscricao change.
type Atividade struct {
	ID            string          `db:"id" json:"id"`
	Nome          string          `db:"nome" json:"nome"`
	Descricao     string          `db:"descricao" json:"descricao,omitempty"`
	Unidade       string          `db:"unidade" json:"unidade,omitempty"`
	Categoria     string          `db:"categoria" json:"categoria,omitempty"`
	ResponsavelID string          `db:"responsavel_id" json:"responsavelId"`
	VagasTotal    int             `db:"vagas_total" json:"vagasTotal"`
	VagasOcupadas int             `db:"vagas_ocupadas" json:"vagasOcupadas"`
	Status        StatusAtividade `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// VagasRestantes returns the number of seats still available.
func (a Atividade) VagasRestantes() int {
	remaining := a.VagasTotal - a.VagasOcupadas
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AtividadeDetail enriches Atividade with the resolved responsavel.
type AtividadeDetail struct {
	Atividade
	Responsavel *Responsavel `json:"responsavel,omitempty"`
}

// AtividadeFilter captures filtering criteria for listing atividades.
type AtividadeFilter struct {
	Nome          string
	Unidade       string
	Categoria     string
	ResponsavelID string
	Status        StatusAtividade
	Page          int
	PageSize      int
}

// AtividadeStats aggregates atividade counts for the admin dashboard.
type AtividadeStats struct {
	Total      int            `json:"total"`
	PorStatus  map[string]int `json:"porStatus"`
	PorUnidade map[string]int `json:"porUnidade"`
}
