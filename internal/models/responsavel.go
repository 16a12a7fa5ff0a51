package models

import "time"

// Responsavel is the staff member accountable for one or more atividades.
type Responsavel struct {
	ID        string         `db:"id" json:"id"`
	Nome      string         `db:"nome" json:"nome"`
	Matricula string         `db:"matricula" json:"matricula"`
	Email     string         `db:"email" json:"email"`
	Unidade   string         `db:"unidade" json:"unidade,omitempty"`
	Telefone  string         `db:"telefone" json:"telefone,omitempty"`
	Status    StatusCadastro `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// ResponsavelDetail enriches Responsavel with the atividades it owns.
type ResponsavelDetail struct {
	Responsavel
	Atividades []Atividade `json:"atividades"`
}

// ResponsavelFilter captures filtering criteria for listing responsaveis.
type ResponsavelFilter struct {
	Nome     string
	Email    string
	Unidade  string
	Status   StatusCadastro
	Page     int
	PageSize int
}

// ResponsavelStats aggregates one responsavel's atividade counts by status.
type ResponsavelStats struct {
	ResponsavelID string         `json:"responsavelId"`
	Total         int            `json:"total"`
	PorStatus     map[string]int `json:"porStatus"`
}
