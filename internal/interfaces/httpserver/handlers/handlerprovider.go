package handlers

import (
	"github.com/google/wire"

	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers/conversationhandler"
	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers/shipmenthandler"
	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers/userhandler"
)

var HandlerProvider = wire.NewSet(
	conversationhandler.NewConversationHandler,
	shipmenthandler.NewShipmentHandler,
	userhandler.NewUserHandler,
)
