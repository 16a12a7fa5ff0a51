// Package identity talks to the external identity provider that owns
// customer accounts and customer-scoped tokens. Staff tokens are issued
// locally and never touch this provider.
package identity

import (
	"context"
	"errors"
)

// Sentinel errors mapped from provider responses.
var (
	ErrEmailExists     = errors.New("email ja cadastrado no provedor de identidade")
	ErrAccountNotFound = errors.New("conta nao encontrada no provedor de identidade")
	ErrInvalidToken    = errors.New("token invalido")
)

// Account is the provider-side record for a customer.
type Account struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Disabled bool   `json:"disabled"`
}

// VerifiedToken carries the identity asserted by a provider-issued token.
type VerifiedToken struct {
	UID    string                 `json:"uid"`
	Email  string                 `json:"email"`
	Claims map[string]interface{} `json:"claims"`
}

// Provider abstracts the identity-provider SDK so services can be tested
// against fakes.
type Provider interface {
	CreateAccount(ctx context.Context, email, senha string) (*Account, error)
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	MintCustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error)
	VerifyToken(ctx context.Context, token string) (*VerifiedToken, error)
}
