package models

import "time"

// TipoAvaliacao classifies submitted feedback.
type TipoAvaliacao string

// Possible avaliacao types.
const (
	AvaliacaoElogio   TipoAvaliacao = "elogio"
	AvaliacaoCritica  TipoAvaliacao = "critica"
	AvaliacaoSugestao TipoAvaliacao = "sugestao"
)

// StatusAvaliacao represents the response lifecycle of an avaliacao.
type StatusAvaliacao string

// Possible avaliacao statuses.
const (
	AvaliacaoPendente   StatusAvaliacao = "pendente"
	AvaliacaoRespondida StatusAvaliacao = "respondida"
)

// PrioridadeAvaliacao ranks avaliacoes for triage.
type PrioridadeAvaliacao string

// Possible avaliacao priorities.
const (
	PrioridadeBaixa  PrioridadeAvaliacao = "baixa"
	PrioridadeNormal PrioridadeAvaliacao = "normal"
	PrioridadeAlta   PrioridadeAvaliacao = "alta"
)

// Avaliacao records free-form feedback submitted by a cliente or visitor.
type Avaliacao struct {
	ID            string              `db:"id" json:"id"`
	Tipo          TipoAvaliacao       `db:"tipo" json:"tipo"`
	Titulo        string              `db:"titulo" json:"titulo"`
	Descricao     string              `db:"descricao" json:"descricao"`
	Categoria     string              `db:"categoria" json:"categoria,omitempty"`
	IPOrigem      string              `db:"ip_origem" json:"-"`
	UserAgent     string              `db:"user_agent" json:"-"`
	Status        StatusAvaliacao     `db:"status" json:"status"`
	Visivel       bool                `db:"visivel" json:"visivel"`
	Prioridade    PrioridadeAvaliacao `db:"prioridade" json:"prioridade"`
	Resposta      string              `db:"resposta" json:"resposta,omitempty"`
	RespondidaPor string              `db:"respondida_por" json:"respondidaPor,omitempty"`
	RespondidaEm  *time.Time          `db:"respondida_em" json:"respondidaEm,omitempty"`
	CriadaEm      time.Time           `db:"criada_em" json:"criadaEm"`
}

// AvaliacaoFilter captures filtering criteria for listing avaliacoes.
type AvaliacaoFilter struct {
	Tipo       TipoAvaliacao
	Categoria  string
	Status     StatusAvaliacao
	Prioridade PrioridadeAvaliacao
	Page       int
	PageSize   int
}

// AvaliacaoStats aggregates avaliacao counts for the admin dashboard.
type AvaliacaoStats struct {
	Total       int            `json:"total"`
	Pendentes   int            `json:"pendentes"`
	Respondidas int            `json:"respondidas"`
	PorTipo     map[string]int `json:"porTipo"`
}
