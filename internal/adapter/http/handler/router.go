package handler

import (
	"wallet-ledger-engine/config"
	"wallet-ledger-engine/internal/adapter/http/middleware"
	"wallet-ledger-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	LockSvc        ports.FundLockService
	ComplianceSvc  ports.ComplianceService
	WithdrawalSvc  ports.WithdrawalService
	Guard          ports.ContractGuard
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Limits         config.LimitsConfig
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Gateway integration (signature verified upstream) ---
	webhookHandler := NewWebhookHandler(deps.Guard)
	v1.POST("/webhooks/gateway/payment", webhookHandler.ConfirmPayment)

	// --- JWT-authenticated platform routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	walletHandler := NewWalletHandler(deps.LedgerSvc, deps.LockSvc)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("/:id/balance", walletHandler.GetBalance)
	}

	locks := v1.Group("/locks", jwtAuth)
	{
		locks.POST("", walletHandler.CreateLock)
		locks.POST("/:id/release", walletHandler.ReleaseLock)
	}

	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalSvc, deps.Limits)
	withdrawals := v1.Group("/withdrawals", jwtAuth)
	{
		withdrawals.POST("", withdrawalHandler.Request)
		withdrawals.POST("/:lock_id/settle", withdrawalHandler.Settle)
		withdrawals.POST("/:lock_id/cancel", withdrawalHandler.Cancel)
	}

	complianceHandler := NewComplianceHandler(deps.ComplianceSvc)
	users := v1.Group("/users", jwtAuth)
	{
		users.GET("/:id/compliance", complianceHandler.GetSnapshot)
	}

	// --- Admin routes (JWT + admin role) ---
	adminHandler := NewAdminHandler(deps.Guard)
	admin := v1.Group("/admin", jwtAuth, middleware.RequireRole("admin"))
	{
		admin.POST("/overrides", adminHandler.ApplyOverride)
		admin.PUT("/subscriptions/:id/terms", adminHandler.UpdateTerms)
		admin.POST("/subscriptions/:id/verify", adminHandler.VerifyIntegrity)
	}

	return r
}
