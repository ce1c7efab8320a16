package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Accounts     *handler.AccountHandler
	Transactions *handler.TransactionHandler
	Health       *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/healthz", h.Health.Health)

	accounts := router.Group("/accounts/:userId")
	{
		accounts.PUT("", h.Accounts.OpenAccount)
		accounts.GET("/balance", h.Accounts.GetBalance)
		accounts.GET("/earnings", h.Accounts.GetEarnings)
		accounts.GET("/transactions", h.Accounts.GetHistory)
		accounts.GET("/reconciliation", h.Accounts.Reconcile)
		accounts.POST("/transactions", h.Transactions.CreateTransaction)
		if h.Accounts.StreamingEnabled() {
			accounts.GET("/balance/stream", h.Accounts.StreamBalance)
		}
	}

	transactions := router.Group("/transactions/:entryId")
	{
		transactions.POST("/complete", h.Transactions.CompletePending)
		transactions.POST("/fail", h.Transactions.FailPending)
	}

	creators := router.Group("/creators/:creatorId")
	{
		creators.POST("/earnings", h.Transactions.RecordEarning)
		creators.POST("/withdrawals", h.Transactions.Withdraw)
	}

	router.POST("/purchases", h.Transactions.SettlePurchase)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, origins []string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(origins))
}
