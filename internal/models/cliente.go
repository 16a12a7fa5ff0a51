package models

import "time"

// StatusCadastro represents the lifecycle state shared by cadastre entities.
type StatusCadastro string

// Possible cadastre statuses.
const (
	StatusAtivo   StatusCadastro = "ativo"
	StatusInativo StatusCadastro = "inativo"
)

// Endereco holds the address fields resolved from a CEP lookup.
type Endereco struct {
	Logradouro string `db:"logradouro" json:"logradouro,omitempty"`
	Bairro     string `db:"bairro" json:"bairro,omitempty"`
	Cidade     string `db:"cidade" json:"cidade,omitempty"`
	Estado     string `db:"estado" json:"estado,omitempty"`
}

// Cliente represents a community member served by the platform.
type Cliente struct {
	ID             string         `db:"id" json:"id"`
	Nome           string         `db:"nome" json:"nome"`
	Email          string         `db:"email" json:"email"`
	DataNascimento *time.Time     `db:"data_nascimento" json:"dataNascimento,omitempty"`
	Telefone       string         `db:"telefone" json:"telefone,omitempty"`
	CEP            string         `db:"cep" json:"cep,omitempty"`
	Endereco
	Status    StatusCadastro `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// ClienteFilter captures filtering criteria for listing clientes.
type ClienteFilter struct {
	Nome     string
	Email    string
	Cidade   string
	Status   StatusCadastro
	Page     int
	PageSize int
}

// ClienteStats aggregates cliente counts for the admin dashboard.
type ClienteStats struct {
	Total     int            `json:"total"`
	PorStatus map[string]int `json:"porStatus"`
	PorCidade map[string]int `json:"porCidade"`
}
