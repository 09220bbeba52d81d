package v1

import (
	"net/http"
	"time"

	"freightdesk/services/support-api/internal/config"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1/conversation"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1/shipment"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1/users"

	"github.com/gin-gonic/gin"
)

type V1Route struct {
	conversation *conversation.ConversationRoute
	shipment     *shipment.ShipmentRoute
	users        *users.UsersRoute
}

func NewV1Route(
	conversation *conversation.ConversationRoute,
	shipment *shipment.ShipmentRoute,
	users *users.UsersRoute,
) *V1Route {
	return &V1Route{
		conversation,
		shipment,
		users,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.conversation.RegisterRouter(v1Router)
	v1Route.shipment.RegisterRouter(v1Router)
	v1Route.users.RegisterRouter(v1Router)

	// Legacy provisioning endpoints predate the /v1 prefix.
	v1Route.users.RegisterLegacyRouter(router)
}

// RegisterPublicRouter registers endpoints that do not require authentication
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the API server and environment reload timestamp.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information including version number and environment reload timestamp"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetGlobal().EnvReloadedAt.Format(time.RFC3339),
	})
}

// GetHealthz godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API server. Used by orchestrators and monitoring systems.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Health status OK"
// @Router /v1/healthz [get]
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz godoc
// @Summary Readiness check endpoint
// @Description Returns the readiness status of the API server. Indicates if the service is ready to accept traffic.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Readiness status ready"
// @Router /v1/readyz [get]
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
