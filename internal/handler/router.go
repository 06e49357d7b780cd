package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"auction-house/internal/handler/api"
	"auction-house/internal/handler/middleware"
	"auction-house/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type handlers struct {
	listing *api.ListingHandler
	account *api.AccountHandler
	auth    *middleware.AuthMiddleware
}

func NewRouter(engine *gin.Engine, cfg config.Config, listingHandler *api.ListingHandler, accountHandler *api.AccountHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers{listing: listingHandler, account: accountHandler, auth: authMiddleware})
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := h.auth.RequireAuth()

	apiGroup := engine.Group("/api")
	{
		listings := apiGroup.Group("/listings")
		addRoutes(listings, []route{
			{Method: http.MethodGet, Path: "", Handler: h.listing.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.listing.Get},
			{Method: http.MethodPost, Path: "", Handler: h.listing.Create, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodPost, Path: "/:id/purchase", Handler: h.listing.Purchase, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.listing.Cancel, Mw: []gin.HandlerFunc{requireAuth}},
		})

		addRoutes(apiGroup.Group("/sellers"), []route{
			{Method: http.MethodGet, Path: "/:id/listings", Handler: h.listing.ListBySeller},
		})

		me := apiGroup.Group("/me")
		me.Use(requireAuth)
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "/history", Handler: h.account.History},
				{Method: http.MethodGet, Path: "/balance", Handler: h.account.Balance},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
