package models

import (
	"time"

	"github.com/lib/pq"
)

// AdminUser is a staff account used purely for authentication. It lives in a
// collection distinct from Responsavel.
type AdminUser struct {
	ID         string         `db:"id" json:"id"`
	Email      string         `db:"email" json:"email"`
	SenhaHash  string         `db:"senha_hash" json:"-"`
	Nome       string         `db:"nome" json:"nome"`
	Permissoes pq.StringArray `db:"permissoes" json:"permissoes"`
	Status     StatusCadastro `db:"status" json:"status"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination normalises page/limit and derives the page count.
func NewPagination(page, limit, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
