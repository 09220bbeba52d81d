package routes

import (
	v1 "freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1/conversation"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1/shipment"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes/v1/users"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	conversation.NewConversationRoute,
	shipment.NewShipmentRoute,
	users.NewUsersRoute,
)
