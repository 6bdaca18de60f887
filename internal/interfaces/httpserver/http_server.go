package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-server/internal/config"
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure"
	middleware "todo-server/internal/interfaces/httpserver/middlewares"
	"todo-server/internal/interfaces/httpserver/routes/api"
	"todo-server/internal/interfaces/httpserver/routes/auth"
)

type HTTPServer struct {
	engine      *gin.Engine
	infra       *infrastructure.Infrastructure
	authRoute   *auth.AuthRoute
	apiRoute    *api.APIRoute
	userService *user.Service
	config      *config.Config
}

func NewHttpServer(
	authRoute *auth.AuthRoute,
	apiRoute *api.APIRoute,
	infra *infrastructure.Infrastructure,
	userService *user.Service,
	cfg *config.Config,
) *HTTPServer {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HTTPServer{
		gin.New(),
		infra,
		authRoute,
		apiRoute,
		userService,
		cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": config.Version})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		if err := server.infra.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

// Engine exposes the configured router, mainly for tests.
func (httpServer *HTTPServer) Engine() *gin.Engine {
	return httpServer.engine
}

// RegisterRoutes binds the public and protected route groups.
func (httpServer *HTTPServer) RegisterRoutes() {
	root := httpServer.engine.Group("/")

	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.infra.TokenService, httpServer.userService, httpServer.infra.Logger),
	)

	httpServer.authRoute.RegisterRouter(root)
	httpServer.apiRoute.RegisterRouter(protected)
}

func (httpServer *HTTPServer) Run() error {
	httpServer.RegisterRoutes()
	return httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort))
}
