package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/comunitech/acolhe-api/internal/identity"
	"github.com/comunitech/acolhe-api/internal/models"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

const bcryptCost = 12

type adminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id string) (*models.AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.AdminUser) error
}

type clienteAccountReader interface {
	FindByEmail(ctx context.Context, email string) (*models.Cliente, error)
}

type clienteRegistrar interface {
	Create(ctx context.Context, req CreateClienteRequest) (*models.Cliente, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService authenticates two distinct populations through a single
// gateway: staff accounts with locally issued JWTs and clientes backed by
// the external identity provider. Lookup order is always staff first.
type AuthService struct {
	admins    adminRepository
	clientes  clienteAccountReader
	registrar clienteRegistrar
	provider  identity.Provider
	config    AuthConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs AuthService.
func NewAuthService(admins adminRepository, clientes clienteAccountReader, registrar clienteRegistrar, provider identity.Provider, config AuthConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{admins: admins, clientes: clientes, registrar: registrar, provider: provider, config: config, validator: validate, logger: logger}
}

// Login resolves the credential pair against the staff collection first and
// the cliente population second. Every failure collapses into the same
// generic 401 so callers cannot probe which path rejected them.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados de login invalidos")
	}

	if resp, ok := s.loginStaff(ctx, req); ok {
		return resp, nil
	}
	if resp, ok := s.loginCustomer(ctx, req); ok {
		return resp, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "credenciais invalidas")
}

func (s *AuthService) loginStaff(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, bool) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("staff lookup failed", zap.Error(err))
		}
		return nil, false
	}
	if admin.Status != models.StatusAtivo {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, false
	}

	token, expiresAt, err := s.generateStaffToken(admin)
	if err != nil {
		s.logger.Error("failed to sign staff token", zap.Error(err))
		return nil, false
	}
	return &models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(time.Until(expiresAt).Seconds()),
		IssuedAt:  time.Now().UTC(),
		Usuario: models.UserInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Nome:  admin.Nome,
			Role:  models.RoleStaff,
		},
	}, true
}

func (s *AuthService) loginCustomer(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, bool) {
	cliente, err := s.clientes.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("cliente lookup failed", zap.Error(err))
		}
		return nil, false
	}
	if cliente.Status != models.StatusAtivo {
		return nil, false
	}

	account, err := s.provider.AccountByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, identity.ErrAccountNotFound) {
			s.logger.Warn("identity provider lookup failed", zap.Error(err))
		}
		return nil, false
	}
	if account.Disabled {
		return nil, false
	}

	token, err := s.provider.MintCustomToken(ctx, account.UID, map[string]interface{}{
		"role":      string(models.RoleCustomer),
		"clienteId": cliente.ID,
	})
	if err != nil {
		s.logger.Error("failed to mint customer token", zap.Error(err))
		return nil, false
	}
	return &models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		IssuedAt:  time.Now().UTC(),
		Usuario: models.UserInfo{
			ID:    cliente.ID,
			Email: cliente.Email,
			Nome:  cliente.Nome,
			Role:  models.RoleCustomer,
		},
	}, true
}

// RegisterCliente provisions an identity-provider account plus the cliente
// record and returns a freshly minted customer session.
func (s *AuthService) RegisterCliente(ctx context.Context, req models.RegisterClienteRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados de cadastro invalidos")
	}

	account, err := s.provider.CreateAccount(ctx, req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email ja cadastrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar conta")
	}

	cliente, err := s.registrar.Create(ctx, CreateClienteRequest{
		Nome:           req.Nome,
		Email:          req.Email,
		DataNascimento: req.DataNascimento,
		Telefone:       req.Telefone,
		CEP:            req.CEP,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.provider.MintCustomToken(ctx, account.UID, map[string]interface{}{
		"role":      string(models.RoleCustomer),
		"clienteId": cliente.ID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao emitir token")
	}

	return &models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		IssuedAt:  time.Now().UTC(),
		Usuario: models.UserInfo{
			ID:    cliente.ID,
			Email: cliente.Email,
			Nome:  cliente.Nome,
			Role:  models.RoleCustomer,
		},
	}, nil
}

// CreateAdmin provisions a staff account. The response never carries the
// password hash.
func (s *AuthService) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*models.AdminUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do administrador invalidos")
	}
	exists, err := s.admins.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email ja cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao processar senha")
	}

	admin := &models.AdminUser{
		Email:      req.Email,
		SenhaHash:  string(hash),
		Nome:       req.Nome,
		Permissoes: req.Permissoes,
		Status:     models.StatusAtivo,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar administrador")
	}
	admin.SenhaHash = ""
	return admin, nil
}

// VerifyBearer resolves a bearer token through the ordered verifier chain:
// the local staff signature first, the identity provider second. The first
// chain link that succeeds wins.
func (s *AuthService) VerifyBearer(ctx context.Context, token string) (*models.Principal, error) {
	if claims, err := s.parseStaffToken(token); err == nil {
		admin, err := s.admins.FindByID(ctx, claims.UserID)
		if err != nil || admin.Status != models.StatusAtivo {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token invalido")
		}
		return &models.Principal{ID: admin.ID, Email: admin.Email, Nome: admin.Nome, Role: models.RoleStaff}, nil
	}

	verified, err := s.provider.VerifyToken(ctx, token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token invalido")
	}
	cliente, err := s.clientes.FindByEmail(ctx, verified.Email)
	if err != nil || cliente.Status != models.StatusAtivo {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "cliente invalido ou inativo")
	}
	return &models.Principal{ID: cliente.ID, Email: cliente.Email, Nome: cliente.Nome, Role: models.RoleCustomer}, nil
}

func (s *AuthService) generateStaffToken(admin *models.AdminUser) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &models.JWTClaims{
		UserID: admin.ID,
		Email:  admin.Email,
		Nome:   admin.Nome,
		Role:   models.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *AuthService) parseStaffToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
