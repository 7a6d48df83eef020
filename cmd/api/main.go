package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tallyhq/tally-backend/docs"
	"github.com/tallyhq/tally-backend/internal/config"
	"github.com/tallyhq/tally-backend/internal/handler"
	"github.com/tallyhq/tally-backend/internal/middleware"
	"github.com/tallyhq/tally-backend/internal/repository/postgres"
	"github.com/tallyhq/tally-backend/internal/service"
)

// @title Tally API
// @version 1.0
// @description Shared-cost ledger and settlement API
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	groupRepo := postgres.NewGroupRepository(pool)
	participantRepo := postgres.NewParticipantRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)

	// Initialize services
	groupService := service.NewGroupService(groupRepo)
	participantService := service.NewParticipantService(participantRepo, groupRepo)
	categoryService := service.NewCategoryService(categoryRepo, groupRepo)
	expenseService := service.NewExpenseService(expenseRepo, participantRepo, categoryRepo, groupRepo)
	settlementService := service.NewSettlementService(settlementRepo, participantRepo, groupRepo)
	balanceService := service.NewBalanceService(participantRepo, expenseRepo, settlementRepo, groupRepo)
	chargeService := service.NewChargeService(groupRepo, participantRepo, expenseRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, expenseRepo, groupRepo)

	// Initialize handlers
	groupHandler := handler.NewGroupHandler(groupService)
	participantHandler := handler.NewParticipantHandler(participantService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	settlementHandler := handler.NewSettlementHandler(settlementService)
	balanceHandler := handler.NewBalanceHandler(balanceService)
	chargeHandler := handler.NewChargeHandler(chargeService)
	budgetHandler := handler.NewBudgetHandler(budgetService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Per-client rate limiting
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Register API routes
	handler.RegisterRoutes(e, groupHandler, participantHandler, categoryHandler, expenseHandler, settlementHandler, balanceHandler, chargeHandler, budgetHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
