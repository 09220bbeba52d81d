package httpserver

import (
	"fmt"
	"net/http"

	"freightdesk/services/support-api/internal/config"
	"freightdesk/services/support-api/internal/domain/user"
	"freightdesk/services/support-api/internal/infrastructure"
	"freightdesk/services/support-api/internal/infrastructure/audit"
	middleware "freightdesk/services/support-api/internal/interfaces/httpserver/middlewares"
	v1 "freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1"
	staticswagger "freightdesk/services/support-api/swagger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "freightdesk/services/support-api/docs/swagger"
)

type HTTPServer struct {
	engine  *gin.Engine
	infra   *infrastructure.Infrastructure
	v1Route *v1.V1Route
	users   *user.Service
	audit   *audit.Recorder
	config  *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	users *user.Service,
	auditRecorder *audit.Recorder,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		users,
		auditRecorder,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.MetricsMiddleware())

	// Root health check (for backwards compatibility)
	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness gates on the JWKS cache so the pod only receives
	// traffic it can actually authenticate.
	server.engine.GET("/readyz", func(c *gin.Context) {
		if !infra.JWTValidator.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "initializing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, "ok")
	})

	if cfg.EnableSwagger {
		server.bindSwagger()
		staticswagger.Register(server.engine)
	}
	return &server
}

func (s *HTTPServer) bindSwagger() {
	g := s.engine.Group("/")
	g.GET("/api/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			ServeSwaggerSpec()(c)
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")
	httpServer.v1Route.RegisterPublicRouter(root)

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.infra.JWTValidator, httpServer.users, httpServer.infra.Logger),
		middleware.AdminAudit(httpServer.audit),
	)
	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
