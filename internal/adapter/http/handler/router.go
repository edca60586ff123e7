package handler

import (
	"balance-ledger/internal/adapter/http/middleware"
	"balance-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AccountSvc     ports.AccountService
	LedgerSvc      ports.LedgerService
	HistorySvc     ports.HistoryService
	CatalogSvc     ports.CatalogService
	TokenSvc       ports.TokenService
	RateLimiter    middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(middleware.AuditLog(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.AccountSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Authenticated routes ---
	secured := v1.Group("", middleware.JWTAuth(deps.TokenSvc, deps.Logger))

	serviceHandler := NewServiceHandler(deps.CatalogSvc)
	balanceHandler := NewBalanceHandler(deps.LedgerSvc)
	txHandler := NewTransactionHandler(deps.LedgerSvc, deps.HistorySvc)

	secured.GET("/services", rl("balance"), serviceHandler.List)
	secured.GET("/balance", rl("balance"), balanceHandler.GetBalance)
	secured.POST("/topup", rl("topup"), balanceHandler.TopUp)

	tx := secured.Group("/transaction")
	{
		tx.POST("", rl("transaction"), txHandler.Pay)
		tx.GET("/history", rl("history"), txHandler.History)
		tx.GET("/summary", rl("history"), txHandler.Summary)
	}

	return r
}
