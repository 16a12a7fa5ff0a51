package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/middleware"
	"github.com/comunitech/acolhe-api/internal/service"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth         *AuthHandler
	Clientes     *ClienteHandler
	Responsaveis *ResponsavelHandler
	Atividades   *AtividadeHandler
	Inscricoes   *InscricaoHandler
	Avaliacoes   *AvaliacaoHandler
}

// RegisterRoutes mounts all API routes under prefix. Write routes and admin
// views sit behind the bearer middleware; ownership checks restrict customers
// to their own records.
func RegisterRoutes(r *gin.Engine, prefix, version string, h Handlers, auth *service.AuthService, metrics *service.MetricsService) {
	r.GET("/health", healthHandler(version))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "rota nao encontrada"))
	})

	api := r.Group(prefix)

	authRequired := middleware.Auth(auth)
	staffOnly := middleware.RequireStaff()

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/registrar-cliente", h.Auth.RegisterCliente)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/verificar-token", authRequired, h.Auth.VerifyToken)
		authGroup.POST("/criar-admin", authRequired, staffOnly, h.Auth.CreateAdmin)
	}

	clientes := api.Group("/clientes", authRequired)
	{
		clientes.GET("", staffOnly, h.Clientes.List)
		clientes.GET("/admin/estatisticas", staffOnly, h.Clientes.Stats)
		clientes.GET("/cep/:cep", h.Clientes.LookupCEP)
		clientes.GET("/:id", middleware.Ownership("id"), h.Clientes.Get)
		clientes.POST("", h.Clientes.Create)
		clientes.PUT("/:id", middleware.Ownership("id"), h.Clientes.Update)
		clientes.DELETE("/:id", staffOnly, h.Clientes.Delete)
	}

	responsaveis := api.Group("/responsaveis", authRequired, staffOnly)
	{
		responsaveis.GET("", h.Responsaveis.List)
		responsaveis.GET("/:id", h.Responsaveis.Get)
		responsaveis.GET("/:id/estatisticas", h.Responsaveis.Stats)
		responsaveis.POST("", h.Responsaveis.Create)
		responsaveis.PUT("/:id", h.Responsaveis.Update)
		responsaveis.DELETE("/:id", h.Responsaveis.Delete)
	}

	atividades := api.Group("/atividades")
	{
		atividades.GET("", h.Atividades.List)
		atividades.GET("/:id", h.Atividades.Get)
		atividades.GET("/admin/estatisticas", authRequired, staffOnly, h.Atividades.Stats)
		atividades.POST("", authRequired, staffOnly, h.Atividades.Create)
		atividades.PUT("/:id", authRequired, staffOnly, h.Atividades.Update)
		atividades.DELETE("/:id", authRequired, staffOnly, h.Atividades.Delete)
	}

	inscricoes := api.Group("/inscricoes", authRequired)
	{
		inscricoes.GET("", staffOnly, h.Inscricoes.List)
		inscricoes.GET("/admin/estatisticas", staffOnly, h.Inscricoes.Stats)
		inscricoes.GET("/admin/exportar", staffOnly, h.Inscricoes.Export)
		inscricoes.GET("/cliente/:idCliente", middleware.Ownership("idCliente"), h.Inscricoes.ByCliente)
		inscricoes.GET("/atividade/:idAtividade", staffOnly, h.Inscricoes.ByAtividade)
		inscricoes.GET("/:id", h.Inscricoes.Get)
		inscricoes.POST("", h.Inscricoes.Create)
		inscricoes.PUT("/:id/confirmar", staffOnly, h.Inscricoes.Confirm)
		inscricoes.PUT("/:id/cancelar", h.Inscricoes.Cancel)
	}

	avaliacoes := api.Group("/avaliacoes")
	{
		avaliacoes.GET("", authRequired, staffOnly, h.Avaliacoes.List)
		avaliacoes.GET("/admin/pendentes", authRequired, staffOnly, h.Avaliacoes.Pendentes)
		avaliacoes.GET("/admin/estatisticas", authRequired, staffOnly, h.Avaliacoes.Stats)
		avaliacoes.GET("/:id", authRequired, staffOnly, h.Avaliacoes.Get)
		avaliacoes.POST("", h.Avaliacoes.Create)
		avaliacoes.PUT("/:id/responder", authRequired, staffOnly, h.Avaliacoes.Respond)
	}
}

func healthHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "api operacional",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		})
	}
}
