package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/api"
	"character-chat/backend/internal/service"
	"character-chat/backend/pkg/config"
	"character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/pkg/middleware"
	"character-chat/backend/pkg/validator"
)

// Dependencies carries the wired services the routes need.
type Dependencies struct {
	Characters *service.CharacterService
	Search     *service.SearchService
	Sessions   *service.SessionService
	Chat       *service.ChatService
	Checkout   service.CheckoutCreator
	Logger     *logger.Logger
}

// Router is the main router for the application
type Router struct {
	Engine *gin.Engine
	Logger *logger.Logger
	Config *config.Config
	deps   Dependencies
}

// New builds the engine with the shared middleware chain.
func New(deps Dependencies) *Router {
	logger.SetGlobal(deps.Logger)
	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first so every request gets a request-scoped logger.
	engine.Use(logger.Middleware(deps.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(corsMiddleware(cfg.Security.AllowedOrigins))

	rateLimiter := middleware.NewRateLimiter(deps.Logger)
	engine.Use(rateLimiter.Middleware())

	if apiValidator, err := validator.NewOpenAPIValidator(cfg.OpenAPISchemaPath); err != nil {
		deps.Logger.Warn("OpenAPI validation disabled", "schema", cfg.OpenAPISchemaPath, "error", err.Error())
	} else {
		engine.Use(apiValidator.Middleware())
	}

	return &Router{
		Engine: engine,
		Logger: deps.Logger,
		Config: cfg,
		deps:   deps,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	chatHandler := api.NewChatHandler(r.deps.Chat)
	characterHandler := api.NewCharacterHandler(r.deps.Characters, r.deps.Search)
	sessionHandler := api.NewSessionHandler(r.deps.Sessions)
	paymentHandler := api.NewPaymentHandler(r.deps.Checkout)

	r.Engine.GET("/api/health", api.HealthHandler)

	apiRoutes := r.Engine.Group("/api")
	{
		apiRoutes.POST("/chat", chatHandler.Generate)
		apiRoutes.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)

		characterRoutes := apiRoutes.Group("/characters")
		{
			characterRoutes.GET("", characterHandler.List)
			characterRoutes.POST("", characterHandler.Create)
			characterRoutes.GET("/search", characterHandler.Search)
			characterRoutes.GET("/:id", characterHandler.Get)
		}

		sessionRoutes := apiRoutes.Group("/sessions")
		{
			sessionRoutes.POST("", sessionHandler.Start)
			sessionRoutes.GET("/:id", sessionHandler.Get)
			sessionRoutes.DELETE("/:id", sessionHandler.Delete)
			sessionRoutes.POST("/:id/messages", sessionHandler.Send)
			sessionRoutes.GET("/:id/messages", sessionHandler.Messages)
		}
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
