package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifies which verification path authenticated the caller.
type Role string

// Caller roles.
const (
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// LoginRequest holds the credential pair submitted to the auth gateway.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// LoginResponse returns the issued token and the resolved identity.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresIn int64     `json:"expiresIn,omitempty"`
	Usuario   UserInfo  `json:"usuario"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// UserInfo describes the authenticated caller in responses.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome,omitempty"`
	Role  Role   `json:"role"`
}

// RegisterClienteRequest creates an identity-provider account plus a Cliente
// record in a single call.
type RegisterClienteRequest struct {
	Nome           string `json:"nome" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Senha          string `json:"senha" validate:"required,min=6"`
	DataNascimento string `json:"dataNascimento,omitempty"`
	Telefone       string `json:"telefone,omitempty"`
	CEP            string `json:"cep,omitempty"`
}

// CreateAdminRequest provisions a staff account.
type CreateAdminRequest struct {
	Nome       string   `json:"nome" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Senha      string   `json:"senha" validate:"required,min=6"`
	Permissoes []string `json:"permissoes,omitempty"`
}

// JWTClaims represents the locally signed staff token payload.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Nome   string `json:"nome"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the verified caller attached to the request context by the
// token middleware, regardless of which verification path succeeded.
type Principal struct {
	ID    string
	Email string
	Nome  string
	Role  Role
}
