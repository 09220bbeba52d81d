package domain

import (
	"github.com/google/wire"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/shipment"
	"freightdesk/services/support-api/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Conversation domain
	conversation.NewService,

	// Shipment domain
	shipment.NewService,

	// User domain
	user.NewService,
)
