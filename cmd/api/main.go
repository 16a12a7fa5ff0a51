package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comunitech/acolhe-api/api/swagger"
	"github.com/comunitech/acolhe-api/internal/handler"
	"github.com/comunitech/acolhe-api/internal/identity"
	"github.com/comunitech/acolhe-api/internal/middleware"
	"github.com/comunitech/acolhe-api/internal/repository"
	"github.com/comunitech/acolhe-api/internal/service"
	"github.com/comunitech/acolhe-api/pkg/cache"
	"github.com/comunitech/acolhe-api/pkg/cep"
	"github.com/comunitech/acolhe-api/pkg/config"
	"github.com/comunitech/acolhe-api/pkg/database"
	"github.com/comunitech/acolhe-api/pkg/logger"
	corsmiddleware "github.com/comunitech/acolhe-api/pkg/middleware/cors"
	reqidmiddleware "github.com/comunitech/acolhe-api/pkg/middleware/requestid"
)

// @title Acolhe API
// @version 1.0.0
// @description Community services backend: clientes, atividades, inscricoes e avaliacoes
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis connection failed", "error", err)
	}
	defer redisClient.Close()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	clienteRepo := repository.NewClienteRepository(db)
	responsavelRepo := repository.NewResponsavelRepository(db)
	atividadeRepo := repository.NewAtividadeRepository(db)
	inscricaoRepo := repository.NewInscricaoRepository(db)
	avaliacaoRepo := repository.NewAvaliacaoRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	cepClient := cep.New(cfg.CEP.PrimaryURL, cfg.CEP.SecondaryURL, cfg.CEP.Timeout, logr)
	identityProvider := identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.Identity.Timeout)

	ttl := cfg.Stats.CacheTTL

	clienteSvc := service.NewClienteService(clienteRepo, inscricaoRepo, cepClient, cacheRepo, ttl, nil, logr)
	responsavelSvc := service.NewResponsavelService(responsavelRepo, atividadeRepo, nil, logr)
	atividadeSvc := service.NewAtividadeService(atividadeRepo, responsavelRepo, inscricaoRepo, cacheRepo, ttl, nil, logr)
	inscricaoSvc := service.NewInscricaoService(inscricaoRepo, clienteRepo, atividadeRepo, cacheRepo, ttl, nil, logr)
	avaliacaoSvc := service.NewAvaliacaoService(avaliacaoRepo, cacheRepo, ttl, nil, logr)
	authSvc := service.NewAuthService(adminRepo, clienteRepo, clienteSvc, identityProvider, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, nil, logr)
	metricsSvc := service.NewMetricsService()

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Clientes:     handler.NewClienteHandler(clienteSvc, cepClient),
		Responsaveis: handler.NewResponsavelHandler(responsavelSvc),
		Atividades:   handler.NewAtividadeHandler(atividadeSvc),
		Inscricoes:   handler.NewInscricaoHandler(inscricaoSvc),
		Avaliacoes:   handler.NewAvaliacaoHandler(avaliacaoSvc),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, cfg.APIPrefix, cfg.Version, handlers, authSvc, metricsSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
