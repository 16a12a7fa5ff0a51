package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comunitech/acolhe-api/internal/models"
)

func ownershipRouter(principal *models.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/clientes/:idCliente/inscricoes",
		func(c *gin.Context) {
			if principal != nil {
				c.Set(ContextUserKey, principal)
			}
		},
		Ownership("idCliente"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func TestOwnershipStaffAlwaysPasses(t *testing.T) {
	router := ownershipRouter(&models.Principal{ID: "adm-1", Role: models.RoleStaff})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clientes/cli-99/inscricoes", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOwnershipCustomerOwnResource(t *testing.T) {
	router := ownershipRouter(&models.Principal{ID: "cli-1", Role: models.RoleCustomer})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clientes/cli-1/inscricoes", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOwnershipCustomerForeignResource(t *testing.T) {
	router := ownershipRouter(&models.Principal{ID: "cli-1", Role: models.RoleCustomer})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clientes/cli-2/inscricoes", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOwnershipMissingPrincipal(t *testing.T) {
	router := ownershipRouter(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clientes/cli-1/inscricoes", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireStaffRejectsCustomer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/criar-admin",
		func(c *gin.Context) {
			c.Set(ContextUserKey, &models.Principal{ID: "cli-1", Role: models.RoleCustomer})
		},
		RequireStaff(),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/criar-admin", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
