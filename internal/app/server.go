// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"insurance-service/internal/config"
	"insurance-service/internal/db"
	analyticsHandler "insurance-service/internal/handlers/analytics"
	authHandler "insurance-service/internal/handlers/auth"
	claimHandler "insurance-service/internal/handlers/claim"
	creditHandler "insurance-service/internal/handlers/credit"
	policyHandler "insurance-service/internal/handlers/policy"
	settingsHandler "insurance-service/internal/handlers/settings"
	wsHandler "insurance-service/internal/handlers/websocket"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/jwt"
	"insurance-service/internal/pkg/session"
	"insurance-service/internal/repository/postgres"
	analyticsUsecase "insurance-service/internal/service/analytics"
	authUsecase "insurance-service/internal/service/auth"
	claimUsecase "insurance-service/internal/service/claim"
	creditUsecase "insurance-service/internal/service/credit"
	policyUsecase "insurance-service/internal/service/policy"
	settingsUsecase "insurance-service/internal/service/settings"
	"insurance-service/internal/websocket"
	wsHandlers "insurance-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{cfg: cfg, engine: gin.New(), logger: logger}
}

// Start wires every dependency and serves until ctx is cancelled, then
// drains in-flight requests within the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	// ----- PostgreSQL -----
	if s.cfg.RunMigrations {
		if err := db.RunMigrations(s.cfg.Postgres.DSN()); err != nil {
			return err
		}
		s.logger.Info("database migrations applied")
	}

	pool, err := db.NewPool(ctx, s.cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(ctx, db.RedisConfig{
		Address:  s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pool)
	creditRepo := postgres.NewCreditRepository(dbWrapper)
	claimRepo := postgres.NewClaimRepository(dbWrapper)
	policyRepo := postgres.NewPolicyRepository(dbWrapper)
	analyticsRepo := postgres.NewAnalyticsRepository(dbWrapper)
	settingsRepo := postgres.NewSettingsRepository(pool)

	// ----- Auth -----
	authService := authUsecase.NewAuthService(
		userRepo,
		jwtManager,
		session.NewRateLimiter(redisClient),
		session.NewRevocationList(redisClient),
		s.logger,
	)

	if err := authService.EnsureAgentExists(ctx, authUsecase.BootstrapAgent{
		Email:     s.cfg.AgentEmail,
		Password:  s.cfg.AgentPassword,
		FirstName: s.cfg.AgentFirstName,
		LastName:  s.cfg.AgentLastName,
	}); err != nil {
		// not fatal, agents can still be promoted in the database
		s.logger.Error("failed to ensure bootstrap agent", zap.Error(err))
	}

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(authService, s.logger)

	// ----- Services (Usecases) -----
	creditService := creditUsecase.NewCreditService(creditRepo, s.logger)
	claimService := claimUsecase.NewClaimService(claimRepo, policyRepo, hub, s.logger)
	policyService := policyUsecase.NewPolicyService(policyRepo, userRepo, creditRepo, hub, s.logger)
	analyticsService := analyticsUsecase.NewAnalyticsService(analyticsRepo, policyRepo, claimRepo, s.logger)
	settingsService := settingsUsecase.NewSettingsService(settingsRepo, s.logger)

	hub.RegisterHandler(wsHandlers.NewRecordsHandler(claimService, policyService, s.logger))

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	// ----- Middlewares -----
	metrics := middleware.NewMetrics()
	metrics.Registerer().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "insurance",
		Name:      "websocket_connections",
		Help:      "Open websocket connections.",
	}, func() float64 { return float64(hub.TotalClients()) }))

	s.engine.Use(
		middleware.RequestID(),
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins),
		metrics.Middleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, s.logger, &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authService, s.logger),
		CreditHandler:    creditHandler.NewCreditHandler(creditService, s.logger),
		AnalyticsHandler: analyticsHandler.NewAnalyticsHandler(analyticsService, s.logger),
		ClaimHandler:     claimHandler.NewClaimHandler(claimService),
		PolicyHandler:    policyHandler.NewPolicyHandler(policyService),
		SettingsHandler:  settingsHandler.NewSettingsHandler(settingsService, s.logger),
		WSHandler:        wsHandler.NewWebSocketHandler(hub, s.cfg.AllowedOrigins, s.logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(authService),
		Metrics:          metrics,
		HealthChecks: map[string]HealthCheck{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	})

	// ----- Start HTTP -----
	httpServer := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
