package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Luismorlan/ledger_in_go/api/handlers"
	"github.com/Luismorlan/ledger_in_go/api/middleware"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine         *gin.Engine
	chainHandler   *handlers.ChainHandler
	blockHandler   *handlers.BlockHandler
	accountHandler *handlers.AccountHandler
	txHandler      *handlers.TxHandler
}

// NewRouter creates a new Router with all handlers
func NewRouter(node handlers.Node) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:         gin.New(),
		chainHandler:   handlers.NewChainHandler(node),
		blockHandler:   handlers.NewBlockHandler(node),
		accountHandler: handlers.NewAccountHandler(node),
		txHandler:      handlers.NewTxHandler(node),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.CORS())
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	// Health check
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	{
		chain := v1.Group("/chain")
		{
			chain.GET("", r.chainHandler.Get)
			chain.GET("/validity", r.chainHandler.Validity)
		}

		blocks := v1.Group("/blocks")
		{
			blocks.GET("", r.blockHandler.List)
			blocks.GET("/latest", r.blockHandler.GetLatest)
			blocks.GET("/:index", r.blockHandler.GetByIndex)
			blocks.POST("/seal", r.blockHandler.Seal)
		}

		accounts := v1.Group("/accounts")
		{
			accounts.GET("", r.accountHandler.List)
			accounts.GET("/:id", r.accountHandler.Get)
		}

		txs := v1.Group("/transactions")
		{
			txs.GET("/pending", r.txHandler.Pending)
			txs.POST("", r.txHandler.Submit)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
