package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/comunitech/acolhe-api/internal/identity"
	"github.com/comunitech/acolhe-api/internal/models"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

type fakeAdminRepo struct {
	admins map[string]*models.AdminUser
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeAdminRepo) Create(ctx context.Context, user *models.AdminUser) error {
	if f.admins == nil {
		f.admins = map[string]*models.AdminUser{}
	}
	if user.ID == "" {
		user.ID = "adm-new"
	}
	stored := *user
	f.admins[user.ID] = &stored
	return nil
}

type fakeIdentityProvider struct {
	accounts map[string]*identity.Account
	tokens   map[string]*identity.VerifiedToken
	minted   int
}

func (f *fakeIdentityProvider) CreateAccount(ctx context.Context, email, senha string) (*identity.Account, error) {
	if _, ok := f.accounts[email]; ok {
		return nil, identity.ErrEmailExists
	}
	if f.accounts == nil {
		f.accounts = map[string]*identity.Account{}
	}
	account := &identity.Account{UID: "uid-" + email, Email: email}
	f.accounts[email] = account
	return account, nil
}

func (f *fakeIdentityProvider) AccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	if a, ok := f.accounts[email]; ok {
		return a, nil
	}
	return nil, identity.ErrAccountNotFound
}

func (f *fakeIdentityProvider) MintCustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error) {
	f.minted++
	return "custom-token-" + uid, nil
}

func (f *fakeIdentityProvider) VerifyToken(ctx context.Context, token string) (*identity.VerifiedToken, error) {
	if v, ok := f.tokens[token]; ok {
		return v, nil
	}
	return nil, identity.ErrInvalidToken
}

type fakeClienteAccounts struct {
	clientes map[string]*models.Cliente
}

func (f *fakeClienteAccounts) FindByEmail(ctx context.Context, email string) (*models.Cliente, error) {
	if c, ok := f.clientes[email]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

type fakeRegistrar struct {
	created *models.Cliente
}

func (f *fakeRegistrar) Create(ctx context.Context, req CreateClienteRequest) (*models.Cliente, error) {
	f.created = &models.Cliente{ID: "cli-reg", Nome: req.Nome, Email: req.Email, Status: models.StatusAtivo}
	return f.created, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeAdminRepo, *fakeIdentityProvider, *fakeClienteAccounts) {
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)

	admins := &fakeAdminRepo{admins: map[string]*models.AdminUser{
		"adm-1": {ID: "adm-1", Email: "admin@acolhe.org", Nome: "Admin", SenhaHash: string(hash), Status: models.StatusAtivo},
	}}
	provider := &fakeIdentityProvider{
		accounts: map[string]*identity.Account{
			"maria@example.com": {UID: "uid-maria", Email: "maria@example.com"},
		},
		tokens: map[string]*identity.VerifiedToken{},
	}
	clientes := &fakeClienteAccounts{clientes: map[string]*models.Cliente{
		"maria@example.com": {ID: "cli-1", Nome: "Maria", Email: "maria@example.com", Status: models.StatusAtivo},
	}}
	svc := NewAuthService(admins, clientes, &fakeRegistrar{}, provider,
		AuthConfig{Secret: "test-secret", Expiration: 24 * time.Hour, Issuer: "acolhe-api"},
		validator.New(), zap.NewNop())
	return svc, admins, provider, clientes
}

func TestLoginStaffPath(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@acolhe.org", Senha: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, resp.Usuario.Role)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.Token)

	principal, err := svc.VerifyBearer(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "adm-1", principal.ID)
	assert.Equal(t, models.RoleStaff, principal.Role)
}

func TestLoginCustomerPath(t *testing.T) {
	svc, _, provider, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "maria@example.com", Senha: "qualquer"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Usuario.Role)
	assert.Equal(t, "cli-1", resp.Usuario.ID)
	assert.Equal(t, 1, provider.minted)
}

func TestLoginUnknownEmailGeneric401(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ninguem@example.com", Senha: "x"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "credenciais invalidas", appErr.Message)
}

func TestLoginWrongStaffPasswordFallsThrough(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@acolhe.org", Senha: "errada"})
	require.Error(t, err)
	assert.Equal(t, "credenciais invalidas", appErrors.FromError(err).Message)
}

func TestLoginInactiveClienteRejected(t *testing.T) {
	svc, _, _, clientes := newAuthFixture(t)
	clientes.clientes["maria@example.com"].Status = models.StatusInativo

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "maria@example.com", Senha: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestRegisterClienteConflict(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.RegisterCliente(context.Background(), models.RegisterClienteRequest{
		Nome: "Maria", Email: "maria@example.com", Senha: "senha123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRegisterClienteSuccess(t *testing.T) {
	svc, _, provider, _ := newAuthFixture(t)

	resp, err := svc.RegisterCliente(context.Background(), models.RegisterClienteRequest{
		Nome: "Novo", Email: "novo@example.com", Senha: "senha123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Usuario.Role)
	assert.Equal(t, "cli-reg", resp.Usuario.ID)
	assert.Contains(t, provider.accounts, "novo@example.com")
}

func TestCreateAdminStripsHash(t *testing.T) {
	svc, admins, _, _ := newAuthFixture(t)

	created, err := svc.CreateAdmin(context.Background(), models.CreateAdminRequest{
		Nome: "Nova Admin", Email: "nova@acolhe.org", Senha: "senha123", Permissoes: []string{"gerenciar"},
	})
	require.NoError(t, err)
	assert.Empty(t, created.SenhaHash)

	stored, err := admins.FindByEmail(context.Background(), "nova@acolhe.org")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.SenhaHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.SenhaHash), []byte("senha123")))
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.CreateAdmin(context.Background(), models.CreateAdminRequest{
		Nome: "Duplicada", Email: "admin@acolhe.org", Senha: "senha123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestVerifyBearerProviderPath(t *testing.T) {
	svc, _, provider, _ := newAuthFixture(t)
	provider.tokens["provider-token"] = &identity.VerifiedToken{UID: "uid-maria", Email: "maria@example.com"}

	principal, err := svc.VerifyBearer(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "cli-1", principal.ID)
	assert.Equal(t, models.RoleCustomer, principal.Role)
}

func TestVerifyBearerGarbageToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.VerifyBearer(context.Background(), "nem-jwt-nem-provider")
	require.Error(t, err)
	assert.Equal(t, "token invalido", appErrors.FromError(err).Message)
}

func TestVerifyBearerInactiveAdmin(t *testing.T) {
	svc, admins, _, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@acolhe.org", Senha: "segredo123"})
	require.NoError(t, err)

	admins.admins["adm-1"].Status = models.StatusInativo
	_, err = svc.VerifyBearer(context.Background(), resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
